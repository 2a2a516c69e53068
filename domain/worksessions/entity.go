package worksessions

import (
	"github.com/uptrace/bun"

	"github.com/taskorch/dashboard/pkg/uuidcodec"
)

// WorkSession represents a row in the work_sessions table: one
// orchestrator client currently holding a session.
type WorkSession struct {
	bun.BaseModel `bun:"table:work_sessions,alias:w"`

	SessionID    string  `bun:"session_id,pk" json:"session_id"`
	ClientID     *string `bun:"client_id" json:"client_id"`
	UserContext  *string `bun:"user_context" json:"user_context"`
	StartedAt    *string `bun:"started_at" json:"started_at"`
	LastActivity *string `bun:"last_activity" json:"last_activity"`
}

// TaskLock represents a row in the task_locks table joined with the
// owning session's client info.
type TaskLock struct {
	bun.BaseModel `bun:"table:task_locks,alias:l"`

	ID        uuidcodec.ID `bun:"id,pk"`
	TaskID    uuidcodec.ID `bun:"task_id"`
	SessionID *string      `bun:"session_id"`
	LockedAt  *string      `bun:"locked_at"`
	ExpiresAt *string      `bun:"expires_at"`

	// Populated by the joined query only
	ClientID    *string `bun:"client_id,scanonly"`
	UserContext *string `bun:"user_context,scanonly"`
}

// TaskLockDTO is the lock shape returned to the frontend.
type TaskLockDTO struct {
	ID          string  `json:"id"`
	TaskID      string  `json:"task_id"`
	SessionID   *string `json:"session_id"`
	LockedAt    *string `json:"locked_at"`
	ExpiresAt   *string `json:"expires_at"`
	ClientID    *string `json:"client_id"`
	UserContext *string `json:"user_context"`
}

// ToDTO projects the row.
func (l *TaskLock) ToDTO() TaskLockDTO {
	return TaskLockDTO{
		ID:          l.ID.String(),
		TaskID:      l.TaskID.String(),
		SessionID:   l.SessionID,
		LockedAt:    l.LockedAt,
		ExpiresAt:   l.ExpiresAt,
		ClientID:    l.ClientID,
		UserContext: l.UserContext,
	}
}
