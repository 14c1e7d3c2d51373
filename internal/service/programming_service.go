package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/calendar"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/conditions"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/logger"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/notify"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/repository"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/roadmap"
)

// Repositories groups the stores the engine works on.
type Repositories struct {
	Programs     repository.ProgramRepository
	Slots        repository.SlotRepository
	Applications repository.ApplicationRepository
	Bookings     repository.BookingRepository
	Events       repository.EventRepository
}

// ProgrammingService drives program scheduling: slot generation, the
// application/booking lifecycle, conditions resolution and roadmaps. It holds
// no mutable state; mutual exclusion lives in the repositories.
type ProgrammingService struct {
	programs     repository.ProgramRepository
	slots        repository.SlotRepository
	applications repository.ApplicationRepository
	bookings     repository.BookingRepository
	events       repository.EventRepository

	planner   calendar.WeekPlanner
	resolver  conditions.Resolver
	assembler roadmap.Assembler
	notifier  notify.Notifier
}

func NewProgrammingService(
	repos Repositories,
	planner calendar.WeekPlanner,
	resolver conditions.Resolver,
	assembler roadmap.Assembler,
	notifier notify.Notifier,
) *ProgrammingService {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &ProgrammingService{
		programs:     repos.Programs,
		slots:        repos.Slots,
		applications: repos.Applications,
		bookings:     repos.Bookings,
		events:       repos.Events,
		planner:      planner,
		resolver:     resolver,
		assembler:    assembler,
		notifier:     notifier,
	}
}

// ===== Programs =====

type CreateProgramInput struct {
	ClientID   uuid.UUID
	Title      string
	Type       model.ProgramType
	Conditions []byte
}

// CreateProgram stores a new DRAFT program.
func (s *ProgrammingService) CreateProgram(ctx context.Context, in CreateProgramInput) (*model.Program, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || !in.Type.Valid() {
		return nil, ErrInvalidProgram
	}
	raw, err := normalizeConditions(in.Conditions)
	if err != nil {
		return nil, err
	}

	p := &model.Program{
		ClientID:   in.ClientID,
		Title:      title,
		Type:       in.Type,
		Status:     model.ProgramStatusDraft,
		Conditions: raw,
	}
	if err := s.programs.Create(ctx, p); err != nil {
		return nil, storageErr("create program", err)
	}

	logger.Info("program created", "program", p.ID, "type", p.Type)
	return p, nil
}

func (s *ProgrammingService) GetProgram(ctx context.Context, id uuid.UUID) (*model.Program, error) {
	p, err := s.programs.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr("get program", err)
	}
	return p, nil
}

// SetProgramStatus publishes, unpublishes or cancels a program.
func (s *ProgrammingService) SetProgramStatus(ctx context.Context, id uuid.UUID, status model.ProgramStatus) error {
	if !status.Valid() {
		return ErrInvalidProgram
	}
	if err := s.programs.UpdateStatus(ctx, id, status); err != nil {
		return storageErr("set program status", err)
	}
	logger.Info("program status changed", "program", id, "status", status)
	return nil
}

// UpdateConditions replaces the baseline conditions of a program. The next
// resolution sees the new values; existing booking snapshots do not change.
func (s *ProgrammingService) UpdateConditions(ctx context.Context, programID uuid.UUID, raw []byte) error {
	normalized, err := normalizeConditions(raw)
	if err != nil {
		return err
	}
	if err := s.programs.UpdateConditions(ctx, programID, normalized); err != nil {
		return storageErr("update conditions", err)
	}
	return nil
}

// UpdateSlotOverride replaces the conditions override of one slot.
func (s *ProgrammingService) UpdateSlotOverride(ctx context.Context, slotID uuid.UUID, raw []byte) error {
	normalized, err := normalizeConditions(raw)
	if err != nil {
		return err
	}
	if err := s.slots.UpdateOverride(ctx, slotID, normalized); err != nil {
		return storageErr("update slot override", err)
	}
	return nil
}

// normalizeConditions accepts an empty blob or a JSON object. The content is
// not validated further: resolution is lenient.
func normalizeConditions(raw []byte) (datatypes.JSON, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, ErrInvalidConditions
	}
	return datatypes.JSON(raw), nil
}

// ===== Slots =====

// GenerateWeeks plans Sunday-aligned weeks covering [start, end]. Pure.
func (s *ProgrammingService) GenerateWeeks(start, end time.Time) ([]calendar.WeekSeed, error) {
	return s.planner.Generate(start, end)
}

// GenerateWeeklySlots plans the weeks of a residency and stores them as one
// batch.
func (s *ProgrammingService) GenerateWeeklySlots(ctx context.Context, programID uuid.UUID, start, end time.Time) ([]model.Slot, error) {
	seeds, err := s.weeksOf(ctx, programID, start, end)
	if err != nil {
		return nil, err
	}

	slots := make([]model.Slot, 0, len(seeds))
	for _, seed := range seeds {
		slots = append(slots, model.NewWeekSlot(programID, seed))
	}
	return s.CreateSlots(ctx, programID, slots)
}

// PlannedWeek is a generated week with the stored slots it collides with.
type PlannedWeek struct {
	Seed      calendar.WeekSeed `json:"seed"`
	Conflicts []model.Slot      `json:"conflicts,omitempty"`
}

// PlanWeeklySlots is GenerateWeeklySlots without the write. If any week has
// conflicts, generating the same range is rejected as a whole.
func (s *ProgrammingService) PlanWeeklySlots(ctx context.Context, programID uuid.UUID, start, end time.Time) ([]PlannedWeek, error) {
	seeds, err := s.weeksOf(ctx, programID, start, end)
	if err != nil {
		return nil, err
	}

	plan := make([]PlannedWeek, 0, len(seeds))
	for _, seed := range seeds {
		conflicts, err := s.slots.ListOverlapping(ctx, programID, seed.Range())
		if err != nil {
			return nil, storageErr("list overlapping slots", err)
		}
		plan = append(plan, PlannedWeek{Seed: seed, Conflicts: conflicts})
	}
	return plan, nil
}

func (s *ProgrammingService) weeksOf(ctx context.Context, programID uuid.UUID, start, end time.Time) ([]calendar.WeekSeed, error) {
	p, err := s.programs.GetByID(ctx, programID)
	if err != nil {
		return nil, storageErr("get program", err)
	}
	if !p.IsWeekly() {
		return nil, ErrWrongProgramType
	}
	return s.planner.Generate(start, end)
}

// AddDates stores single-date slots for a multi-date program.
func (s *ProgrammingService) AddDates(ctx context.Context, programID uuid.UUID, days ...time.Time) ([]model.Slot, error) {
	p, err := s.programs.GetByID(ctx, programID)
	if err != nil {
		return nil, storageErr("get program", err)
	}
	if p.IsWeekly() {
		return nil, ErrWrongProgramType
	}

	slots := make([]model.Slot, 0, len(days))
	for _, d := range days {
		if d.IsZero() {
			return nil, model.ErrInvalidRange
		}
		slots = append(slots, model.NewDateSlot(programID, d))
	}
	return s.CreateSlots(ctx, programID, slots)
}

// CreateSlots inserts a batch of slots. Either every slot is stored or none
// is; an overlap yields a *model.OverlapError.
func (s *ProgrammingService) CreateSlots(ctx context.Context, programID uuid.UUID, slots []model.Slot) ([]model.Slot, error) {
	if len(slots) == 0 {
		return nil, nil
	}

	created, events, err := s.slots.CreateBatch(ctx, programID, slots)
	if err != nil {
		if errors.Is(err, model.ErrOverlapConflict) {
			logger.Debug("slot batch rejected", "program", programID, "err", err)
		}
		return nil, storageErr("create slots", err)
	}

	logger.Info("slots created", "program", programID, "count", len(created))
	s.publish(ctx, events)
	return created, nil
}

// CancelSlot withdraws an unbooked slot. Pending applications are rejected.
func (s *ProgrammingService) CancelSlot(ctx context.Context, slotID uuid.UUID) (*model.Slot, error) {
	slot, events, err := s.slots.Cancel(ctx, slotID)
	if err != nil {
		return nil, storageErr("cancel slot", err)
	}

	logger.Info("slot cancelled", "slot", slotID, "rejected", len(events)-1)
	s.publish(ctx, events)
	return slot, nil
}

// SlotView is a slot with its effective conditions.
type SlotView struct {
	Slot       model.Slot           `json:"slot"`
	Conditions conditions.Effective `json:"conditions"`
}

// ListSlots pages through the slots of a program by start date.
func (s *ProgrammingService) ListSlots(ctx context.Context, programID uuid.UUID, page, pageSize int) (calendar.Page[SlotView], error) {
	p, err := s.programs.GetByID(ctx, programID)
	if err != nil {
		return calendar.Page[SlotView]{}, storageErr("get program", err)
	}

	page, pageSize, offset := calendar.PageBounds(page, pageSize)
	slots, total, err := s.slots.ListByProgram(ctx, programID, pageSize, offset)
	if err != nil {
		return calendar.Page[SlotView]{}, storageErr("list slots", err)
	}

	views := make([]SlotView, 0, len(slots))
	for i := range slots {
		views = append(views, SlotView{
			Slot:       slots[i],
			Conditions: s.resolver.Resolve(conditions.InputFor(p, &slots[i])),
		})
	}
	return calendar.NewPage(views, page, pageSize, int(total)), nil
}

// ===== Applications =====

// Apply registers an artist on an open slot of a published program.
func (s *ProgrammingService) Apply(ctx context.Context, slotID, artistID uuid.UUID, option string) (*model.Application, error) {
	app := &model.Application{
		SlotID:   slotID,
		ArtistID: artistID,
		Option:   strings.TrimSpace(option),
	}
	events, err := s.applications.Create(ctx, app)
	if err != nil {
		return nil, storageErr("apply", err)
	}

	logger.Info("application received", "slot", slotID, "artist", artistID, "application", app.ID)
	s.publish(ctx, events)
	return app, nil
}

// WithdrawApplication cancels a pending application.
func (s *ProgrammingService) WithdrawApplication(ctx context.Context, applicationID uuid.UUID) (*model.Application, error) {
	app, events, err := s.applications.Withdraw(ctx, applicationID)
	if err != nil {
		return nil, storageErr("withdraw application", err)
	}

	logger.Info("application withdrawn", "application", applicationID, "slot", app.SlotID)
	s.publish(ctx, events)
	return app, nil
}

// ListApplications pages through the applications of a slot, oldest first.
func (s *ProgrammingService) ListApplications(ctx context.Context, slotID uuid.UUID, page, pageSize int) (calendar.Page[model.Application], error) {
	apps, err := s.applications.ListBySlot(ctx, slotID)
	if err != nil {
		return calendar.Page[model.Application]{}, storageErr("list applications", err)
	}
	return calendar.Paginate(apps, page, pageSize), nil
}

// ===== Bookings =====

// Confirm books the slot for the artist of the application. Under concurrent
// calls for the same slot exactly one succeeds; the others get
// model.ErrAlreadyBooked and are not retried.
func (s *ProgrammingService) Confirm(ctx context.Context, slotID, applicationID uuid.UUID) (*repository.ConfirmResult, error) {
	res, err := s.bookings.Confirm(ctx, slotID, applicationID, s.snapshot)
	if err != nil {
		if errors.Is(err, model.ErrAlreadyBooked) {
			logger.Debug("confirm lost", "slot", slotID, "application", applicationID)
		}
		return nil, storageErr("confirm", err)
	}

	logger.Info("booking confirmed",
		"slot", slotID,
		"booking", res.Booking.ID,
		"artist", res.Booking.ArtistID,
		"rejected", len(res.Rejected),
	)
	s.publish(ctx, res.Events)
	return res, nil
}

// CancelBooking cancels a confirmed booking and reopens its slot.
func (s *ProgrammingService) CancelBooking(ctx context.Context, bookingID uuid.UUID, reason string) (*repository.CancelResult, error) {
	res, err := s.bookings.Cancel(ctx, bookingID, strings.TrimSpace(reason))
	if err != nil {
		return nil, storageErr("cancel booking", err)
	}

	logger.Info("booking cancelled", "booking", bookingID, "slot", res.Slot.ID, "reopened", len(res.Reopened))
	s.publish(ctx, res.Events)
	return res, nil
}

func (s *ProgrammingService) snapshot(program *model.Program, slot *model.Slot, _ *model.Application) (datatypes.JSON, error) {
	raw, err := s.resolver.Resolve(conditions.InputFor(program, slot)).Snapshot()
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// ===== Conditions and roadmaps =====

// ResolveConditions returns the current effective conditions of a slot.
func (s *ProgrammingService) ResolveConditions(ctx context.Context, slotID uuid.UUID) (conditions.Effective, error) {
	_, _, eff, err := s.load(ctx, slotID)
	return eff, err
}

// PreviewRoadmap assembles the roadmap of a slot from its current conditions.
// When the slot is booked the booking is shown too.
func (s *ProgrammingService) PreviewRoadmap(ctx context.Context, slotID uuid.UUID) (roadmap.Roadmap, error) {
	p, slot, eff, err := s.load(ctx, slotID)
	if err != nil {
		return roadmap.Roadmap{}, err
	}

	var booking *model.Booking
	b, err := s.bookings.GetActiveBySlot(ctx, slotID)
	switch {
	case err == nil:
		booking = b
	case !errors.Is(err, repository.ErrNotFound):
		return roadmap.Roadmap{}, storageErr("get booking", err)
	}

	return s.assembler.Assemble(p, slot, booking, eff), nil
}

// Roadmap assembles the roadmap of a booking from the conditions agreed at
// confirmation time. A cancelled booking has no roadmap: its slot may be open
// again or booked by someone else.
func (s *ProgrammingService) Roadmap(ctx context.Context, bookingID uuid.UUID) (roadmap.Roadmap, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return roadmap.Roadmap{}, storageErr("get booking", err)
	}
	if b.Status != model.BookingStatusConfirmed {
		return roadmap.Roadmap{}, model.ErrBookingNotActive
	}
	p, slot, eff, err := s.load(ctx, b.SlotID)
	if err != nil {
		return roadmap.Roadmap{}, err
	}

	if len(b.ConditionsSnapshot) > 0 {
		snap, err := conditions.DecodeSnapshot(b.ConditionsSnapshot)
		if err != nil {
			logger.Warn("roadmap: unreadable snapshot, using current conditions", "booking", bookingID, "err", err)
		} else {
			eff = snap
		}
	}

	return s.assembler.Assemble(p, slot, b, eff), nil
}

func (s *ProgrammingService) load(ctx context.Context, slotID uuid.UUID) (*model.Program, *model.Slot, conditions.Effective, error) {
	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, nil, conditions.Effective{}, storageErr("get slot", err)
	}
	p, err := s.programs.GetByID(ctx, slot.ProgramID)
	if err != nil {
		return nil, nil, conditions.Effective{}, storageErr("get program", err)
	}
	return p, slot, s.resolver.Resolve(conditions.InputFor(p, slot)), nil
}

// ===== History =====

// History pages through the audit events of a program, oldest first.
func (s *ProgrammingService) History(ctx context.Context, programID uuid.UUID, page, pageSize int) (calendar.Page[model.Event], error) {
	page, pageSize, offset := calendar.PageBounds(page, pageSize)
	events, total, err := s.events.ListByProgram(ctx, programID, pageSize, offset)
	if err != nil {
		return calendar.Page[model.Event]{}, storageErr("list events", err)
	}
	return calendar.NewPage(events, page, pageSize, int(total)), nil
}

// publish hands committed events to the notifier. A failure is logged and
// does not undo the change.
func (s *ProgrammingService) publish(ctx context.Context, events []model.Event) {
	if len(events) == 0 {
		return
	}
	if err := s.notifier.Notify(ctx, events...); err != nil {
		logger.Warn("notify failed", "events", len(events), "err", err)
	}
}
