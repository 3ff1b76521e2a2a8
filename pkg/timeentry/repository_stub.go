package timeentry

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

func (s *RepositoryStub) GetEntriesForDate(ctx context.Context, userId int, date time.Time) ([]Entry, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	var result []Entry
	for _, e := range s.entries[userId] {
		if e.Date.Equal(workcal.DateOnly(date)) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (s *RepositoryStub) GetEntries(ctx context.Context, userId int, from, to time.Time) ([]Entry, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	var result []Entry
	for _, e := range s.entries[userId] {
		if !e.Date.Before(from) && e.Date.Before(to) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (s *RepositoryStub) EntryDates(ctx context.Context, userId int, from, to time.Time) ([]time.Time, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	seen := map[string]bool{}
	var dates []time.Time
	for _, e := range s.entries[userId] {
		if !e.Date.Before(from) && e.Date.Before(to) && !seen[workcal.FormatDate(e.Date)] {
			seen[workcal.FormatDate(e.Date)] = true
			dates = append(dates, e.Date)
		}
	}
	return dates, nil
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
