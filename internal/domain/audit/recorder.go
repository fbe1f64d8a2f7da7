package audit

import (
	"context"

	"github.com/ekaramchari/hr-backend-go/internal/domain/directory"
)

// Actions recorded by the attendance core.
const (
	ActionCheckIn       = "CHECK_IN"
	ActionCheckOut      = "CHECK_OUT"
	ActionAdminCheckOut = "ADMIN_CHECKOUT"
	ActionMark          = "MARK_ATTENDANCE"
	ActionSweep         = "AUTO_MARK_ATTENDANCE"
	ActionFinalize      = "FINALIZE_ATTENDANCE"
)

// ModuleAttendance tags every event originating from this core.
const ModuleAttendance = "ATTENDANCE"

// Recorder is the audit sink. Interactive operations and sweeps treat it as
// fire-and-forget and only log a failure; the admin mark override records
// inside the same transaction as its write.
type Recorder interface {
	Record(ctx context.Context, actor *directory.Actor, action, module, description string) error
}
