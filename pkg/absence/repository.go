package absence

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

var ErrEntryNotFound = errors.New("non-accounting entry not found")

type Repository interface {
	StoreEntry(ctx context.Context, userId int, entry Entry) (uuid.UUID, error)
	GetAll(ctx context.Context, userId int) ([]Entry, error)
	GetEntries(ctx context.Context, userId int, from, to time.Time) ([]Entry, error)
	Periods(ctx context.Context, userId int) ([]workcal.DatePeriod, error)
	VacationDaysUsed(ctx context.Context, userId int, from, to time.Time) (int, error)
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
	query := `INSERT INTO non_accounting_entries (
				uid,
				user_id,
				start_date,
				days,
				entry_type,
				comment,
				month,
				year
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	uid := uuid.New()
	_, err := r.db.ExecContext(ctx, query,
		uid.String(),
		userId,
		workcal.FormatDate(entry.StartDate),
		entry.Days,
		string(entry.Type),
		entry.Comment,
		entry.Month,
		entry.Year,
	)
	if err != nil {
		err := fmt.Errorf("could not store non-accounting entry: %w", err)
		log.Error(err)
		return uuid.Nil, err
	}
	return uid, nil
}

// GetAll returns the owner's full non-accounting history; overlap checks are
// unbounded because stored intervals may reach into any month.
func (r *RepositoryImpl) GetAll(ctx context.Context, userId int) ([]Entry, error) {
	query := `SELECT uid, start_date, days, entry_type, comment, month, year
				FROM non_accounting_entries
				WHERE user_id = $1
				ORDER BY start_date`

	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query non-accounting entries: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

// GetEntries returns entries whose start date falls within [from, to).
func (r *RepositoryImpl) GetEntries(ctx context.Context, userId int, from, to time.Time) ([]Entry, error) {
	query := `SELECT uid, start_date, days, entry_type, comment, month, year
				FROM non_accounting_entries
				WHERE user_id = $1 AND start_date >= $2 AND start_date < $3
				ORDER BY start_date`

	rows, err := r.db.QueryContext(ctx, query, userId, workcal.FormatDate(from), workcal.FormatDate(to))
	if err != nil {
		err := fmt.Errorf("could not query non-accounting entries: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Periods returns all stored intervals of the owner as date periods. The
// signature matches timeentry.AbsencePeriods so it can be injected directly.
func (r *RepositoryImpl) Periods(ctx context.Context, userId int) ([]workcal.DatePeriod, error) {
	query := `SELECT start_date, days FROM non_accounting_entries WHERE user_id = $1`

	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query non-accounting periods: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	periods := make([]workcal.DatePeriod, 0, 8)
	for rows.Next() {
		var dateStr string
		var days int
		if err := rows.Scan(&dateStr, &days); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		start, err := workcal.ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		periods = append(periods, workcal.DatePeriod{Start: start, Days: days})
	}
	return periods, rows.Err()
}

// VacationDaysUsed sums vacation days of entries starting within [from, to).
func (r *RepositoryImpl) VacationDaysUsed(ctx context.Context, userId int, from, to time.Time) (int, error) {
	query := `SELECT COALESCE(SUM(days), 0) FROM non_accounting_entries
				WHERE user_id = $1 AND entry_type = $2 AND start_date >= $3 AND start_date < $4`

	var used int
	err := r.db.QueryRowContext(ctx, query, userId, string(TypeVacation),
		workcal.FormatDate(from), workcal.FormatDate(to)).Scan(&used)
	if err != nil {
		err := fmt.Errorf("could not sum vacation days: %w", err)
		log.Error(err)
		return 0, err
	}
	return used, nil
}

func (r *RepositoryImpl) UpdateEntry(ctx context.Context, userId int, entry Entry) (bool, error) {
	query := `UPDATE non_accounting_entries
				SET start_date = $1, days = $2, entry_type = $3, comment = $4, month = $5, year = $6
				WHERE uid = $7 AND user_id = $8`

	result, err := r.db.ExecContext(ctx, query,
		workcal.FormatDate(entry.StartDate),
		entry.Days,
		string(entry.Type),
		entry.Comment,
		entry.Month,
		entry.Year,
		entry.UID.UUID.String(),
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update non-accounting entry: %w", err)
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
	query := `DELETE FROM non_accounting_entries WHERE uid = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, uid.String(), userId)
	if err != nil {
		err := fmt.Errorf("could not delete non-accounting entry: %w", err)
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
	entries := make([]Entry, 0, 8)
	for rows.Next() {
		var uid uuid.NullUUID
		var dateStr, entryType, comment string
		var days, month, year int
		if err := rows.Scan(&uid, &dateStr, &days, &entryType, &comment, &month, &year); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		start, err := workcal.ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			UID:       uid,
			StartDate: start,
			Days:      days,
			Type:      Type(entryType),
			Comment:   comment,
			Month:     month,
			Year:      year,
		})
	}
	return entries, rows.Err()
}
