package holiday

import (
	"context"
	"time"

	"github.com/shiftbook/shiftbook/pkg/workcal"
)

// RepositoryStub is an in-memory holiday table for tests. It satisfies both
// Repository and workcal.HolidayLookup.
type RepositoryStub struct {
	holidays map[string]string
}

func NewStubRepository(holidays ...Holiday) *RepositoryStub {
	stub := &RepositoryStub{holidays: map[string]string{}}
	for _, h := range holidays {
		stub.holidays[workcal.FormatDate(h.Date)] = h.Name
	}
	return stub
}

func (s *RepositoryStub) IsHoliday(ctx context.Context, day time.Time) (bool, error) {
	_, ok := s.holidays[workcal.FormatDate(day)]
	return ok, nil
}

func (s *RepositoryStub) ForYear(ctx context.Context, year int) ([]Holiday, error) {
	var result []Holiday
	for dateStr, name := range s.holidays {
		date, err := workcal.ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		if date.Year() == year {
			result = append(result, Holiday{Date: date, Name: name})
		}
	}
	return result, nil
}

func (s *RepositoryStub) Store(ctx context.Context, holiday Holiday) error {
	s.holidays[workcal.FormatDate(holiday.Date)] = holiday.Name
	return nil
}

func (s *RepositoryStub) Delete(ctx context.Context, day time.Time) (bool, error) {
	key := workcal.FormatDate(day)
	if _, ok := s.holidays[key]; !ok {
		return false, nil
	}
	delete(s.holidays, key)
	return true, nil
}
