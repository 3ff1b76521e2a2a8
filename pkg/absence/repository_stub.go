package absence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shiftbook/shiftbook/pkg/workcal"
)

type RepositoryStub struct {
	entries map[int][]Entry
	// FailWith, when set, is returned by every query. Used to exercise the
	// store-unavailable paths.
	FailWith error
}

func NewStubRepository() *RepositoryStub {
	return &RepositoryStub{entries: map[int][]Entry{}}
}

func (s *RepositoryStub) Cleanup() {
	s.entries = map[int][]Entry{}
	s.FailWith = nil
}

func (s *RepositoryStub) StoreEntry(ctx context.Context, userId int, entry Entry) (uuid.UUID, error) {
	if s.FailWith != nil {
		return uuid.Nil, s.FailWith
	}
	uid := uuid.New()
	entry.UID = uuid.NullUUID{UUID: uid, Valid: true}
	s.entries[userId] = append(s.entries[userId], entry)
	return uid, nil
}

func (s *RepositoryStub) GetAll(ctx context.Context, userId int) ([]Entry, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	return append([]Entry(nil), s.entries[userId]...), nil
}

func (s *RepositoryStub) GetEntries(ctx context.Context, userId int, from, to time.Time) ([]Entry, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	var result []Entry
	for _, e := range s.entries[userId] {
		if !e.StartDate.Before(from) && e.StartDate.Before(to) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (s *RepositoryStub) Periods(ctx context.Context, userId int) ([]workcal.DatePeriod, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	var periods []workcal.DatePeriod
	for _, e := range s.entries[userId] {
		periods = append(periods, e.Period())
	}
	return periods, nil
}

func (s *RepositoryStub) VacationDaysUsed(ctx context.Context, userId int, from, to time.Time) (int, error) {
	if s.FailWith != nil {
		return 0, s.FailWith
	}
	used := 0
	for _, e := range s.entries[userId] {
		if e.Type == TypeVacation && !e.StartDate.Before(from) && e.StartDate.Before(to) {
			used += e.Days
		}
	}
	return used, nil
}

func (s *RepositoryStub) UpdateEntry(ctx context.Context, userId int, entry Entry) (bool, error) {
	if s.FailWith != nil {
		return false, s.FailWith
	}
	for i, e := range s.entries[userId] {
		if e.UID.Valid && entry.UID.Valid && e.UID.UUID == entry.UID.UUID {
			s.entries[userId][i] = entry
			return true, nil
		}
	}
	return false, nil
}

func (s *RepositoryStub) DeleteEntry(ctx context.Context, userId int, uid uuid.UUID) (bool, error) {
	if s.FailWith != nil {
		return false, s.FailWith
	}
	for i, e := range s.entries[userId] {
		if e.UID.Valid && e.UID.UUID == uid {
			s.entries[userId] = append(s.entries[userId][:i], s.entries[userId][i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
