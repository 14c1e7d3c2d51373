package memory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/repository"
)

type ProgramRepository struct{ s *Store }

func (r *ProgramRepository) Create(_ context.Context, p *model.Program) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = model.ProgramStatusDraft
	}
	now := r.s.now()
	p.CreatedAt, p.UpdatedAt = now, now
	r.s.programs[p.ID] = clone(*p)
	return nil
}

func (r *ProgramRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Program, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.programs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p = clone(p)
	return &p, nil
}

func (r *ProgramRepository) UpdateConditions(_ context.Context, id uuid.UUID, conditions datatypes.JSON) error {
	return r.update(id, func(p *model.Program) {
		p.Conditions = append(datatypes.JSON(nil), conditions...)
	})
}

func (r *ProgramRepository) UpdateStatus(_ context.Context, id uuid.UUID, status model.ProgramStatus) error {
	return r.update(id, func(p *model.Program) { p.Status = status })
}

func (r *ProgramRepository) update(id uuid.UUID, fn func(p *model.Program)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.programs[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(&p)
	p.UpdatedAt = r.s.now()
	r.s.programs[id] = p
	return nil
}

func clone(p model.Program) model.Program {
	p.Conditions = append(datatypes.JSON(nil), p.Conditions...)
	return p
}
