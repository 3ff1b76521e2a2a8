package timeentry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shiftbook/shiftbook/pkg/workcal"
	log "github.com/sirupsen/logrus"
)

var ErrEntryNotFound = errors.New("time entry not found")

type Repository interface {
	StoreEntry(ctx context.Context, userId int, entry Entry) (uuid.UUID, error)
	GetEntriesForDate(ctx context.Context, userId int, date time.Time) ([]Entry, error)
	GetEntries(ctx context.Context, userId int, from, to time.Time) ([]Entry, error)
	EntryDates(ctx context.Context, userId int, from, to time.Time) ([]time.Time, error)
	UpdateEntry(ctx context.Context, userId int, entry Entry) (bool, error)
	DeleteEntry(ctx context.Context, userId int, uid uuid.UUID) (bool, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) StoreEntry(ctx context.Context, userId int, entry Entry) (uuid.UUID, error) {
	query := `INSERT INTO time_entries (
				uid,
				user_id,
				entry_date,
				start_minutes,
				end_minutes,
				comment,
				month,
				year
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	uid := uuid.New()
	_, err := r.db.ExecContext(ctx, query,
		uid.String(),
		userId,
		workcal.FormatDate(entry.Date),
		int(entry.Start),
		int(entry.End),
		entry.Comment,
		entry.Month,
		entry.Year,
	)
	if err != nil {
		err := fmt.Errorf("could not store time entry: %w", err)
		log.Error(err)
		return uuid.Nil, err
	}
	return uid, nil
}

func (r *RepositoryImpl) GetEntriesForDate(ctx context.Context, userId int, date time.Time) ([]Entry, error) {
	query := `SELECT uid, entry_date, start_minutes, end_minutes, comment, month, year
				FROM time_entries
				WHERE user_id = $1 AND entry_date = $2
				ORDER BY start_minutes`

	rows, err := r.db.QueryContext(ctx, query, userId, workcal.FormatDate(date))
	if err != nil {
		err := fmt.Errorf("could not query time entries: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

// GetEntries returns the owner's entries within the half-open date range [from, to).
func (r *RepositoryImpl) GetEntries(ctx context.Context, userId int, from, to time.Time) ([]Entry, error) {
	query := `SELECT uid, entry_date, start_minutes, end_minutes, comment, month, year
				FROM time_entries
				WHERE user_id = $1 AND entry_date >= $2 AND entry_date < $3
				ORDER BY entry_date, start_minutes`

	rows, err := r.db.QueryContext(ctx, query, userId, workcal.FormatDate(from), workcal.FormatDate(to))
	if err != nil {
		err := fmt.Errorf("could not query time entries: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

// EntryDates returns the distinct dates with at least one entry in [from, to).
func (r *RepositoryImpl) EntryDates(ctx context.Context, userId int, from, to time.Time) ([]time.Time, error) {
	query := `SELECT DISTINCT entry_date
				FROM time_entries
				WHERE user_id = $1 AND entry_date >= $2 AND entry_date < $3
				ORDER BY entry_date`

	rows, err := r.db.QueryContext(ctx, query, userId, workcal.FormatDate(from), workcal.FormatDate(to))
	if err != nil {
		err := fmt.Errorf("could not query time entry dates: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	dates := make([]time.Time, 0, 8)
	for rows.Next() {
		var dateStr string
		if err := rows.Scan(&dateStr); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		date, err := workcal.ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}
	return dates, rows.Err()
}

func (r *RepositoryImpl) UpdateEntry(ctx context.Context, userId int, entry Entry) (bool, error) {
	query := `UPDATE time_entries
				SET entry_date = $1, start_minutes = $2, end_minutes = $3, comment = $4, month = $5, year = $6
				WHERE uid = $7 AND user_id = $8`

	result, err := r.db.ExecContext(ctx, query,
		workcal.FormatDate(entry.Date),
		int(entry.Start),
		int(entry.End),
		entry.Comment,
		entry.Month,
		entry.Year,
		entry.UID.UUID.String(),
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update time entry: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *RepositoryImpl) DeleteEntry(ctx context.Context, userId int, uid uuid.UUID) (bool, error) {
	query := `DELETE FROM time_entries WHERE uid = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, uid.String(), userId)
	if err != nil {
		err := fmt.Errorf("could not delete time entry: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	entries := make([]Entry, 0, 10)
	for rows.Next() {
		var uid uuid.NullUUID
		var dateStr string
		var startMinutes, endMinutes int
		var comment string
		var month, year int
		if err := rows.Scan(&uid, &dateStr, &startMinutes, &endMinutes, &comment, &month, &year); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		date, err := workcal.ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			UID:     uid,
			Date:    date,
			Start:   workcal.TimeOfDay(startMinutes),
			End:     workcal.TimeOfDay(endMinutes),
			Comment: comment,
			Month:   month,
			Year:    year,
		})
	}
	return entries, rows.Err()
}
