package postgresql

import (
	"context"
	"fmt"

	"github.com/ekaramchari/hr-backend-go/internal/domain/audit"
	"github.com/ekaramchari/hr-backend-go/internal/domain/directory"
	"github.com/ekaramchari/hr-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type activityLogRepository struct {
	db *database.DB
}

func NewActivityLogRepository(db *database.DB) audit.Recorder {
	return &activityLogRepository{db: db}
}

// Record implements audit.Recorder. A nil actor records a system event
// (scheduled sweep) with no user attached.
func (r *activityLogRepository) Record(ctx context.Context, actor *directory.Actor, action, module, description string) error {
	q := GetQuerier(ctx, r.db)

	var userID *string
	if actor != nil {
		userID = &actor.UserID
	}

	query := `
		INSERT INTO activity_logs (id, user_id, action, module, description)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := q.Exec(ctx, query, uuid.NewString(), userID, action, module, description); err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}

	return nil
}
