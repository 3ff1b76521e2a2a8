package timeentry

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

type Service interface {
	Create(ctx context.Context, entry Entry) (Entry, error)
	Update(ctx context.Context, uid uuid.UUID, entry Entry) (Entry, error)
	Delete(ctx context.Context, uid uuid.UUID) error
	ListForMonth(ctx context.Context, year int, month time.Month) ([]Entry, error)
	Validate(ctx context.Context, entry Entry) error
}

type ServiceImpl struct {
	repo      Repository
	validator *Validator
	locks     *utils.OwnerLock
	bus       *event_bus.EventBus
}

// NewService builds the entry service. bus may be nil; lifecycle events are
// then skipped.
func NewService(repo Repository, validator *Validator, locks *utils.OwnerLock, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, validator: validator, locks: locks, bus: bus}
}

func (s *ServiceImpl) Create(ctx context.Context, entry Entry) (Entry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to get current user: %w", err)
	}
	entry = normalize(entry)

	// The conflict check and the insert must not interleave with another
	// write for the same owner.
	unlock := s.locks.Lock(userId)
	defer unlock()

	if err := s.validator.Validate(ctx, userId, entry, uuid.Nil); err != nil {
		observeValidation(err)
		return Entry{}, err
	}
	metrics.IncEntryValidation(metrics.KindTimeEntry, metrics.OutcomeAccepted)

	uid, err := s.repo.StoreEntry(ctx, userId, entry)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to store time entry: %w", err)
	}
	entry.UID = uuid.NullUUID{UUID: uid, Valid: true}
	s.publish(ctx, event_bus.TimeEntryStored, entry)
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
	metrics.IncEntryValidation(metrics.KindTimeEntry, metrics.OutcomeAccepted)

	found, err := s.repo.UpdateEntry(ctx, userId, entry)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to update time entry: %w", err)
	}
	if !found {
		return Entry{}, ErrEntryNotFound
	}
	s.publish(ctx, event_bus.TimeEntryStored, entry)
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
		return fmt.Errorf("failed to delete time entry: %w", err)
	}
	if !found {
		return ErrEntryNotFound
	}
	s.publish(ctx, event_bus.TimeEntryDeleted, Entry{UID: uuid.NullUUID{UUID: uid, Valid: true}})
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
	return s.validator.Validate(ctx, userId, normalize(entry), uuid.Nil)
}

func normalize(entry Entry) Entry {
	entry.Date = workcal.DateOnly(entry.Date)
	entry.Month = int(entry.Date.Month())
	entry.Year = entry.Date.Year()
	return entry
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, entry Entry) {
	if s.bus == nil {
		return
	}
	payload := event_bus.TimeEntryChanged{
		Date:  workcal.FormatDate(entry.Date),
		Hours: entry.Hours(),
	}
	if entry.UID.Valid {
		payload.UID = entry.UID.UUID.String()
	}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, eventType, payload)); err != nil {
		log.Warnf("entry event handler failed: %v", err)
	}
}

func observeValidation(err error) {
	if _, ok := rules.AsViolation(err); ok {
		metrics.IncEntryValidation(metrics.KindTimeEntry, metrics.OutcomeRejected)
	}
}
