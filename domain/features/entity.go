package features

import (
	"github.com/uptrace/bun"

	"github.com/taskorch/dashboard/domain/tasks"
	"github.com/taskorch/dashboard/pkg/uuidcodec"
)

// Feature represents a row in the features table.
type Feature struct {
	bun.BaseModel `bun:"table:features,alias:f"`

	ID          uuidcodec.ID `bun:"id,pk"`
	ProjectID   uuidcodec.ID `bun:"project_id"`
	Name        *string      `bun:"name"`
	Summary     *string      `bun:"summary"`
	Description *string      `bun:"description"`
	Status      *string      `bun:"status"`
	Priority    *string      `bun:"priority"`
	CreatedAt   *string      `bun:"created_at"`
	UpdatedAt   *string      `bun:"updated_at"`
	ModifiedAt  *string      `bun:"modified_at"`
}

// FeatureDTO is the feature shape returned to the frontend, with its
// tasks nested.
type FeatureDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Summary     *string         `json:"summary"`
	Description *string         `json:"description"`
	Status      *string         `json:"status"`
	Priority    *string         `json:"priority"`
	CreatedAt   *string         `json:"created_at"`
	UpdatedAt   *string         `json:"updated_at"`
	ProjectID   *string         `json:"project_id"`
	Tasks       []tasks.TaskDTO `json:"tasks"`
}

// ToDTO projects the row; status and priority pass through as stored.
func (f *Feature) ToDTO(taskList []tasks.TaskDTO) FeatureDTO {
	name := ""
	if f.Name != nil {
		name = *f.Name
	}
	if taskList == nil {
		taskList = []tasks.TaskDTO{}
	}

	var projectID *string
	if !f.ProjectID.IsZero() {
		s := f.ProjectID.String()
		projectID = &s
	}

	return FeatureDTO{
		ID:          f.ID.String(),
		Name:        name,
		Summary:     f.Summary,
		Description: f.Description,
		Status:      f.Status,
		Priority:    f.Priority,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
		ProjectID:   projectID,
		Tasks:       taskList,
	}
}
