package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/repository"
)

type ApplicationRepository struct{ s *Store }

func (r *ApplicationRepository) Create(_ context.Context, app *model.Application) ([]model.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sl, ok := r.s.slots[app.SlotID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if sl.Status != model.SlotStatusOpen {
		return nil, model.ErrSlotNotOpen
	}
	p, ok := r.s.programs[sl.ProgramID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if p.Status != model.ProgramStatusPublished {
		return nil, model.ErrSlotNotOpen
	}

	key := model.ApplicationKey(app.SlotID, app.ArtistID)
	if _, dup := r.s.activeApps[key]; dup {
		return nil, model.ErrDuplicateApplication
	}

	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	app.Status = model.ApplicationStatusPending
	app.ActiveKey = &key
	app.CreatedAt = r.s.tick()
	app.UpdatedAt = app.CreatedAt

	r.s.applications[app.ID] = *app
	r.s.activeApps[key] = app.ID

	return r.s.record(model.NewEvent(model.EventTypeApplicationReceived, &sl).WithApplication(app)), nil
}

func (r *ApplicationRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.applications[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *ApplicationRepository) ListBySlot(_ context.Context, slotID uuid.UUID) ([]model.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []model.Application
	for _, a := range r.s.applications {
		if a.SlotID == slotID {
			out = append(out, a)
		}
	}
	sortApplications(out)
	return out, nil
}

func (r *ApplicationRepository) Withdraw(_ context.Context, id uuid.UUID) (*model.Application, []model.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.applications[id]
	if !ok {
		return nil, nil, repository.ErrNotFound
	}
	if a.Status != model.ApplicationStatusPending {
		return nil, nil, model.ErrNotPending
	}

	if a.ActiveKey != nil {
		delete(r.s.activeApps, *a.ActiveKey)
	}
	a.Status = model.ApplicationStatusCancelled
	a.ActiveKey = nil
	a.UpdatedAt = r.s.now()
	r.s.applications[id] = a

	sl := r.s.slots[a.SlotID]
	return &a, r.s.record(model.NewEvent(model.EventTypeApplicationWithdrawn, &sl).WithApplication(&a)), nil
}
