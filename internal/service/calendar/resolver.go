package calendar

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ekaramchari/hr-backend-go/internal/domain/calendar"
	"github.com/ekaramchari/hr-backend-go/internal/domain/holiday"
)

type resolver struct {
	weeklyOff   calendar.WeeklyOff
	holidayRepo holiday.Repository
	logger      *slog.Logger
}

// NewResolver builds the day classifier. Weekly off wins over holidays:
// a holiday landing on an off day is still reported as a weekend.
func NewResolver(weeklyOff calendar.WeeklyOff, holidayRepo holiday.Repository, logger *slog.Logger) calendar.Resolver {
	return &resolver{
		weeklyOff:   weeklyOff,
		holidayRepo: holidayRepo,
		logger:      logger,
	}
}

// Classify implements calendar.Resolver. A holiday lookup failure degrades
// to "no holiday" rather than blocking the caller; the day is then treated
// as a workday and the error is logged.
func (r *resolver) Classify(ctx context.Context, date time.Time) (calendar.Day, error) {
	day := calendar.Day{Date: date}

	if r.weeklyOff.Contains(date.Weekday()) {
		day.IsWeekend = true
		return day, nil
	}

	h, err := r.holidayRepo.GetActiveByDate(ctx, date)
	if err != nil {
		if !errors.Is(err, holiday.ErrHolidayNotFound) {
			r.logger.Warn("holiday lookup failed, treating day as workday",
				"date", date.Format("2006-01-02"),
				"error", err)
		}
		day.IsWorkday = true
		return day, nil
	}

	day.IsHoliday = true
	day.HolidayName = &h.Name
	return day, nil
}
