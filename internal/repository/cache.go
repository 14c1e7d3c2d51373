package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/logger"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
)

// CachedProgramRepository is a read-through Redis cache in front of another
// ProgramRepository. Writes go to the inner repository and drop the cached
// copy. Any Redis error degrades to a direct read.
type CachedProgramRepository struct {
	inner  ProgramRepository
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewCachedProgramRepository wraps inner. A nil client disables caching.
func NewCachedProgramRepository(inner ProgramRepository, client *redis.Client, ttl time.Duration, prefix string) *CachedProgramRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if prefix == "" {
		prefix = "swingbooking:program"
	}
	return &CachedProgramRepository{inner: inner, client: client, ttl: ttl, prefix: prefix}
}

func (r *CachedProgramRepository) key(id uuid.UUID) string {
	return r.prefix + ":" + id.String()
}

func (r *CachedProgramRepository) Create(ctx context.Context, program *model.Program) error {
	return r.inner.Create(ctx, program)
}

func (r *CachedProgramRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Program, error) {
	if r.client == nil {
		return r.inner.GetByID(ctx, id)
	}

	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	switch {
	case err == nil:
		var p model.Program
		if jsonErr := json.Unmarshal(data, &p); jsonErr == nil {
			return &p, nil
		}
		logger.Debug("program cache: dropping undecodable entry", "program", id)
	case !errors.Is(err, redis.Nil):
		logger.Debug("program cache: get failed", "program", id, "err", err)
	}

	p, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(p); err == nil {
		if err := r.client.Set(ctx, r.key(id), data, r.ttl).Err(); err != nil {
			logger.Debug("program cache: set failed", "program", id, "err", err)
		}
	}
	return p, nil
}

func (r *CachedProgramRepository) UpdateConditions(ctx context.Context, id uuid.UUID, conditions datatypes.JSON) error {
	if err := r.inner.UpdateConditions(ctx, id, conditions); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *CachedProgramRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ProgramStatus) error {
	if err := r.inner.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *CachedProgramRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if r.client == nil {
		return
	}
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		logger.Warn("program cache: invalidate failed", "program", id, "err", err)
	}
}
