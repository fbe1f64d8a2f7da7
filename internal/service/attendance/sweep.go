package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ekaramchari/hr-backend-go/internal/domain/attendance"
	"github.com/ekaramchari/hr-backend-go/internal/domain/audit"
	"github.com/ekaramchari/hr-backend-go/internal/domain/directory"
)

const (
	autoAbsentRemarks    = "Auto-marked absent (no check-in)"
	adminFinalizeRemarks = "Finalized by admin"
)

// FinalizeDay implements attendance.Service. The sweep is idempotent: every
// write is conditional on the row still being open, so re-running it (or
// racing an interactive checkout) changes nothing twice. Non-workdays are
// skipped outright, so weekends and holidays never accrue Absent rows.
func (s *attendanceService) FinalizeDay(ctx context.Context, actor *directory.Actor, date time.Time) (attendance.SweepResult, error) {
	date = dateOnly(date.In(s.policy.Timezone))
	now := s.now().In(s.policy.Timezone)
	today := dateOnly(now)

	result := attendance.SweepResult{Date: date.Format("2006-01-02")}

	if date.After(today) {
		return result, attendance.ErrSweepDateInFuture
	}

	day, err := s.calendar.Classify(ctx, date)
	if err != nil {
		return result, fmt.Errorf("failed to classify date: %w", err)
	}
	switch {
	case day.IsWeekend:
		result.SkipReason = "weekly off"
		return result, nil
	case day.IsHoliday:
		result.SkipReason = "holiday"
		if day.HolidayName != nil {
			result.SkipReason = "holiday: " + *day.HolidayName
		}
		return result, nil
	}

	employees, err := s.directoryRepo.ListActiveEligible(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list employees: %w", err)
	}

	cutoff := date.Add(s.policy.SweepCutoff)
	if date.Equal(today) && now.Before(cutoff) {
		cutoff = now
	}

	for _, emp := range employees {
		rec, err := s.repo.Find(ctx, emp.ID, date)
		if err != nil {
			s.logger.Error("sweep: failed to read record",
				"employee_id", emp.ID, "date", result.Date, "error", err)
			result.Skipped++
			continue
		}

		switch {
		case rec == nil:
			created, err := s.repo.MarkAbsent(ctx, emp.ID, date, autoAbsentRemarks)
			if err != nil {
				s.logger.Error("sweep: failed to mark absent",
					"employee_id", emp.ID, "date", result.Date, "error", err)
				result.Skipped++
				continue
			}
			if created {
				result.AbsentMarked++
			} else {
				result.Skipped++
			}

		case rec.CheckIn != nil && rec.CheckOut == nil:
			out := cutoff
			if out.Before(*rec.CheckIn) {
				out = *rec.CheckIn
			}
			workHours := attendance.WorkHours(*rec.CheckIn, out)
			overtime := attendance.Overtime(workHours)
			status := attendance.StatusFromHours(workHours)
			remarks := "Auto checkout at " + out.Format("15:04:05")

			err := s.repo.CompleteCheckOut(ctx, rec.ID, out, workHours, &overtime, &status, &remarks)
			if err != nil {
				if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
					result.Skipped++
					continue
				}
				s.logger.Error("sweep: failed to auto-checkout",
					"employee_id", emp.ID, "date", result.Date, "error", err)
				result.Skipped++
				continue
			}
			result.AutoCheckout++
			if status == attendance.StatusPresent {
				result.PresentFromCheckout++
			} else {
				result.HalfDayFromCheckout++
			}

		default:
			// Already settled: checked out, on leave, or an admin override.
			result.Skipped++
		}
	}

	s.record(ctx, actor, audit.ActionSweep, fmt.Sprintf(
		"Finalized %s: %d absent, %d auto-checkout, %d skipped",
		result.Date, result.AbsentMarked, result.AutoCheckout, result.Skipped))

	s.logger.Info("attendance sweep completed",
		"date", result.Date,
		"absent_marked", result.AbsentMarked,
		"auto_checkout", result.AutoCheckout,
		"present_marked", result.PresentFromCheckout,
		"half_day_marked", result.HalfDayFromCheckout,
		"skipped", result.Skipped)

	return result, nil
}

// FinalizePending implements attendance.Service. It closes the date's
// dangling check-ins at the policy cutoff (capped at the current time on the
// same day) without touching employees who never checked in.
func (s *attendanceService) FinalizePending(ctx context.Context, actor directory.Actor, date time.Time) (attendance.FinalizeResult, error) {
	date = dateOnly(date.In(s.policy.Timezone))
	now := s.now().In(s.policy.Timezone)
	today := dateOnly(now)

	result := attendance.FinalizeResult{Date: date.Format("2006-01-02")}

	if date.After(today) {
		return result, attendance.ErrSweepDateInFuture
	}

	open, err := s.repo.ListOpenForDate(ctx, date)
	if err != nil {
		return result, fmt.Errorf("failed to list open records: %w", err)
	}

	cutoff := date.Add(s.policy.SweepCutoff)
	if date.Equal(today) && now.Before(cutoff) {
		cutoff = now
	}

	for _, rec := range open {
		out := cutoff
		if out.Before(*rec.CheckIn) {
			out = *rec.CheckIn
		}
		workHours := attendance.WorkHours(*rec.CheckIn, out)
		overtime := attendance.Overtime(workHours)
		status := attendance.StatusFromHours(workHours)
		remarks := adminFinalizeRemarks

		err := s.repo.CompleteCheckOut(ctx, rec.ID, out, workHours, &overtime, &status, &remarks)
		if err != nil {
			if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
				continue
			}
			s.logger.Error("finalize: failed to checkout",
				"employee_id", rec.EmployeeID, "date", result.Date, "error", err)
			continue
		}
		result.Processed++
	}

	s.record(ctx, &actor, audit.ActionFinalize,
		fmt.Sprintf("Finalized %d pending check-ins for %s", result.Processed, result.Date))

	return result, nil
}
