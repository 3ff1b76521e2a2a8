package holiday

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shiftbook/shiftbook/pkg/workcal"
	log "github.com/sirupsen/logrus"
)

var ErrHolidayNotFound = errors.New("holiday not found")

type Repository interface {
	IsHoliday(ctx context.Context, day time.Time) (bool, error)
	ForYear(ctx context.Context, year int) ([]Holiday, error)
	Store(ctx context.Context, holiday Holiday) error
	Delete(ctx context.Context, day time.Time) (bool, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) IsHoliday(ctx context.Context, day time.Time) (bool, error) {
	query := `SELECT COUNT(1) FROM national_holidays WHERE holiday_date = $1`
	var count int
	err := r.db.QueryRowContext(ctx, query, workcal.FormatDate(day)).Scan(&count)
	if err != nil {
		err := fmt.Errorf("could not query holiday table: %w", err)
		log.Error(err)
		return false, err
	}
	return count > 0, nil
}

func (r *RepositoryImpl) ForYear(ctx context.Context, year int) ([]Holiday, error) {
	query := `SELECT holiday_date, name FROM national_holidays
				WHERE holiday_date >= $1 AND holiday_date < $2
				ORDER BY holiday_date`

	from := fmt.Sprintf("%04d-01-01", year)
	to := fmt.Sprintf("%04d-01-01", year+1)
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		err := fmt.Errorf("could not query holidays: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	holidays := make([]Holiday, 0, 16)
	for rows.Next() {
		var dateStr, name string
		if err := rows.Scan(&dateStr, &name); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		date, err := workcal.ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, Holiday{Date: date, Name: name})
	}
	return holidays, rows.Err()
}

func (r *RepositoryImpl) Store(ctx context.Context, holiday Holiday) error {
	query := `INSERT INTO national_holidays (holiday_date, name) VALUES ($1, $2)
				ON CONFLICT (holiday_date) DO UPDATE SET name = excluded.name`
	_, err := r.db.ExecContext(ctx, query, workcal.FormatDate(holiday.Date), holiday.Name)
	if err != nil {
		err := fmt.Errorf("could not store holiday: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, day time.Time) (bool, error) {
	query := `DELETE FROM national_holidays WHERE holiday_date = $1`
	result, err := r.db.ExecContext(ctx, query, workcal.FormatDate(day))
	if err != nil {
		err := fmt.Errorf("could not delete holiday: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
