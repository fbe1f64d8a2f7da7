package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/ekaramchari/hr-backend-go/internal/config"
	"github.com/ekaramchari/hr-backend-go/internal/domain/attendance"
)

// AttendanceJobs wires the finalization sweep into the scheduler.
type AttendanceJobs struct {
	attendanceSvc attendance.Service
	policy        config.AttendanceConfig
}

func NewAttendanceJobs(attendanceSvc attendance.Service, policy config.AttendanceConfig) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceSvc: attendanceSvc,
		policy:        policy,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("finalize_previous_day", j.policy.SweepInterval, j.FinalizePreviousDay)
}

// FinalizePreviousDay sweeps yesterday. The sweep itself is idempotent, so
// firing every interval is harmless; runs after a completed day only settle
// what is still open.
func (j *AttendanceJobs) FinalizePreviousDay(ctx context.Context) error {
	yesterday := time.Now().In(j.policy.Timezone).AddDate(0, 0, -1)

	result, err := j.attendanceSvc.FinalizeDay(ctx, nil, yesterday)
	if err != nil {
		return err
	}

	if result.SkipReason != "" {
		slog.Debug("Cron: previous day needs no finalization",
			"date", result.Date, "reason", result.SkipReason)
		return nil
	}

	slog.Info("Cron: previous day finalized",
		"date", result.Date,
		"absent_marked", result.AbsentMarked,
		"auto_checkout", result.AutoCheckout,
		"skipped", result.Skipped)
	return nil
}
