package tasks

import (
	"github.com/uptrace/bun"

	"github.com/taskorch/dashboard/pkg/uuidcodec"
)

// Task represents a row in the tasks table. Orchestrator files disagree
// on column naming (title vs name, summary vs description, modified_at
// vs updated_at), so every variant is mapped and reconciled in ToDTO.
type Task struct {
	bun.BaseModel `bun:"table:tasks,alias:t"`

	ID          uuidcodec.ID `bun:"id,pk"`
	FeatureID   uuidcodec.ID `bun:"feature_id"`
	ProjectID   uuidcodec.ID `bun:"project_id"`
	Title       *string      `bun:"title"`
	Name        *string      `bun:"name"`
	Summary     *string      `bun:"summary"`
	Description *string      `bun:"description"`
	Status      *string      `bun:"status"`
	Priority    *string      `bun:"priority"`
	Complexity  *int         `bun:"complexity"`
	CreatedAt   *string      `bun:"created_at"`
	UpdatedAt   *string      `bun:"updated_at"`
	ModifiedAt  *string      `bun:"modified_at"`

	// Populated by list queries only
	EffectiveProjectID uuidcodec.ID `bun:"computed_project_id,scanonly"`
	ProjectName        *string      `bun:"project_name,scanonly"`
	FeatureName        *string      `bun:"feature_name,scanonly"`
}

// TaskDTO is the task shape returned to the frontend.
type TaskDTO struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Status      string  `json:"status"`
	Summary     *string `json:"summary"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Complexity  *int    `json:"complexity"`
	CreatedAt   *string `json:"created_at"`
	UpdatedAt   *string `json:"updated_at"`
	ModifiedAt  *string `json:"modified_at"`
	FeatureID   *string `json:"feature_id"`
	FeatureName *string `json:"feature_name"`
	ProjectID   *string `json:"project_id"`
	ProjectName *string `json:"project_name"`
}

// ToDTO reconciles the column variants into the frontend shape: title
// falls back to name, summary to description, modified_at mirrors
// updated_at, and the effective project id wins over the task's own
// column when a list query computed it. Pure projection, no I/O.
func (t *Task) ToDTO() TaskDTO {
	title := ""
	if t.Title != nil && *t.Title != "" {
		title = *t.Title
	} else if t.Name != nil {
		title = *t.Name
	}

	summary := t.Summary
	if summary == nil {
		summary = t.Description
	}

	status := ""
	if t.Status != nil {
		status = NormalizeStatus(*t.Status)
	}

	modifiedAt := t.ModifiedAt
	if modifiedAt == nil {
		modifiedAt = t.UpdatedAt
	}

	projectID := t.ProjectID
	if !t.EffectiveProjectID.IsZero() {
		projectID = t.EffectiveProjectID
	}

	return TaskDTO{
		ID:          t.ID.String(),
		Title:       title,
		Status:      status,
		Summary:     summary,
		Name:        title,
		Description: summary,
		Priority:    t.Priority,
		Complexity:  t.Complexity,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		ModifiedAt:  modifiedAt,
		FeatureID:   renderID(t.FeatureID),
		FeatureName: t.FeatureName,
		ProjectID:   renderID(projectID),
		ProjectName: t.ProjectName,
	}
}

func renderID(id uuidcodec.ID) *string {
	if id.IsZero() {
		return nil
	}
	s := id.String()
	return &s
}

// CreateTaskRequest is the request body for creating a task
type CreateTaskRequest struct {
	Title      string  `json:"title"`
	Summary    *string `json:"summary"`
	Status     string  `json:"status"`
	Priority   string  `json:"priority"`
	Complexity int     `json:"complexity"`
	FeatureID  *string `json:"feature_id"`
	ProjectID  *string `json:"project_id"`
}

// StatusUpdateRequest is the request body for PUT /:id/status
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// PriorityUpdateRequest is the request body for PUT /:id/priority
type PriorityUpdateRequest struct {
	Priority string `json:"priority"`
}

// ComplexityUpdateRequest is the request body for PUT /:id/complexity
type ComplexityUpdateRequest struct {
	Complexity int `json:"complexity"`
}

// PatchTaskRequest is the request body for PATCH /:id. Nil means "leave
// unchanged"; an explicit empty feature_id or project_id clears the link.
type PatchTaskRequest struct {
	Title      *string `json:"title"`
	Summary    *string `json:"summary"`
	Status     *string `json:"status"`
	Priority   *string `json:"priority"`
	Complexity *int    `json:"complexity"`
	FeatureID  *string `json:"feature_id"`
	ProjectID  *string `json:"project_id"`
}

// MutationResponse wraps a mutated task with the original API's
// success/message envelope.
type MutationResponse struct {
	Success bool    `json:"success"`
	Task    TaskDTO `json:"task"`
	Message string  `json:"message"`
}
