package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ekaramchari/hr-backend-go/internal/domain/holiday"
	"github.com/ekaramchari/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.Repository {
	return &holidayRepository{db: db}
}

// GetActiveByDate implements holiday.Repository.
func (r *holidayRepository) GetActiveByDate(ctx context.Context, date time.Time) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, holiday_date, holiday_name, holiday_type, is_active
		FROM holidays
		WHERE holiday_date = $1 AND is_active = true
	`

	var h holiday.Holiday
	err := q.QueryRow(ctx, query, date).Scan(&h.ID, &h.Date, &h.Name, &h.Type, &h.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return holiday.Holiday{}, holiday.ErrHolidayNotFound
		}
		return holiday.Holiday{}, fmt.Errorf("failed to get holiday by date: %w", err)
	}

	return h, nil
}

// ListForYear implements holiday.Repository.
func (r *holidayRepository) ListForYear(ctx context.Context, year int) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, holiday_date, holiday_name, holiday_type, is_active
		FROM holidays
		WHERE EXTRACT(YEAR FROM holiday_date) = $1 AND is_active = true
		ORDER BY holiday_date
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.Type, &h.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}

	return holidays, rows.Err()
}
