package absence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shiftbook/shiftbook/internal/event_bus"
	"github.com/shiftbook/shiftbook/internal/metrics"
	"github.com/shiftbook/shiftbook/internal/rules"
	"github.com/shiftbook/shiftbook/internal/utils"
	"github.com/shiftbook/shiftbook/pkg/user"
	"github.com/shiftbook/shiftbook/pkg/workcal"
	log "github.com/sirupsen/logrus"
)

// Balance is the owner's vacation allowance for the current calendar year.
type Balance struct {
	TotalDays     int
	UsedDays      int
	AvailableDays int
}

type Service interface {
	Create(ctx context.Context, entry Entry) (Entry, error)
	Update(ctx context.Context, uid uuid.UUID, entry Entry) (Entry, error)
	Delete(ctx context.Context, uid uuid.UUID) error
	ListForMonth(ctx context.Context, year int, month time.Month) ([]Entry, error)
	Validate(ctx context.Context, entry Entry) error
	VacationBalance(ctx context.Context) (Balance, error)
}

type ServiceImpl struct {
	repo      Repository
	validator *Validator
	locks     *utils.OwnerLock
	clock     utils.Clock
	bus       *event_bus.EventBus
}

// NewService builds the entry service. bus may be nil; lifecycle events are
// then skipped.
func NewService(repo Repository, validator *Validator, locks *utils.OwnerLock, clock utils.Clock, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, validator: validator, locks: locks, clock: clock, bus: bus}
}

func (s *ServiceImpl) Create(ctx context.Context, entry Entry) (Entry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to get current user: %w", err)
	}
	entry = normalize(entry)

	unlock := s.locks.Lock(userId)
	defer unlock()

	if err := s.validator.Validate(ctx, userId, entry, uuid.Nil); err != nil {
		observeValidation(err)
		return Entry{}, err
	}
	metrics.IncEntryValidation(metrics.KindNonAccountingEntry, metrics.OutcomeAccepted)

	uid, err := s.repo.StoreEntry(ctx, userId, entry)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to store non-accounting entry: %w", err)
	}
	entry.UID = uuid.NullUUID{UUID: uid, Valid: true}
	s.publish(ctx, event_bus.NonAccountingEntryStored, entry)
	return entry, nil
}

func (s *ServiceImpl) Update(ctx context.Context, uid uuid.UUID, entry Entry) (Entry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to get current user: %w", err)
	}
	entry = normalize(entry)
	entry.UID = uuid.NullUUID{UUID: uid, Valid: true}

	unlock := s.locks.Lock(userId)
	defer unlock()

	if err := s.validator.Validate(ctx, userId, entry, uid); err != nil {
		observeValidation(err)
		return Entry{}, err
	}
	metrics.IncEntryValidation(metrics.KindNonAccountingEntry, metrics.OutcomeAccepted)

	found, err := s.repo.UpdateEntry(ctx, userId, entry)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to update non-accounting entry: %w", err)
	}
	if !found {
		return Entry{}, ErrEntryNotFound
	}
	s.publish(ctx, event_bus.NonAccountingEntryStored, entry)
	return entry, nil
}

// Delete removes an entry without any business-rule check.
func (s *ServiceImpl) Delete(ctx context.Context, uid uuid.UUID) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	found, err := s.repo.DeleteEntry(ctx, userId, uid)
	if err != nil {
		return fmt.Errorf("failed to delete non-accounting entry: %w", err)
	}
	if !found {
		return ErrEntryNotFound
	}
	s.publish(ctx, event_bus.NonAccountingEntryDeleted, Entry{UID: uuid.NullUUID{UUID: uid, Valid: true}})
	return nil
}

func (s *ServiceImpl) ListForMonth(ctx context.Context, year int, month time.Month) ([]Entry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	from, to := workcal.MonthRange(year, month)
	return s.repo.GetEntries(ctx, userId, from, to)
}

// Validate runs the admissibility check without persisting anything.
func (s *ServiceImpl) Validate(ctx context.Context, entry Entry) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	entry = normalize(entry)
	return s.validator.Validate(ctx, userId, entry, uuid.Nil)
}

func (s *ServiceImpl) VacationBalance(ctx context.Context) (Balance, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Balance{}, fmt.Errorf("failed to get current user: %w", err)
	}
	yearStart := time.Date(s.clock.Now().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	used, err := s.repo.VacationDaysUsed(ctx, userId, yearStart, yearStart.AddDate(1, 0, 0))
	if err != nil {
		return Balance{}, rules.StoreFailure(err)
	}
	return Balance{
		TotalDays:     workcal.VacationDaysPerYear,
		UsedDays:      used,
		AvailableDays: workcal.VacationDaysPerYear - used,
	}, nil
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, entry Entry) {
	if s.bus == nil {
		return
	}
	payload := event_bus.NonAccountingEntryChanged{
		StartDate: workcal.FormatDate(entry.StartDate),
		Days:      entry.Days,
		Type:      string(entry.Type),
	}
	if entry.UID.Valid {
		payload.UID = entry.UID.UUID.String()
	}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, eventType, payload)); err != nil {
		log.Warnf("entry event handler failed: %v", err)
	}
}

func normalize(entry Entry) Entry {
	entry.StartDate = workcal.DateOnly(entry.StartDate)
	entry.Month = int(entry.StartDate.Month())
	entry.Year = entry.StartDate.Year()
	return entry
}

func observeValidation(err error) {
	if _, ok := rules.AsViolation(err); ok {
		metrics.IncEntryValidation(metrics.KindNonAccountingEntry, metrics.OutcomeRejected)
	}
}
