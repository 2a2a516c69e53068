package projects

import (
	"github.com/uptrace/bun"

	"github.com/taskorch/dashboard/domain/features"
	"github.com/taskorch/dashboard/pkg/uuidcodec"
)

// Project represents a row in the projects table.
type Project struct {
	bun.BaseModel `bun:"table:projects,alias:p"`

	ID          uuidcodec.ID `bun:"id,pk"`
	Name        *string      `bun:"name"`
	Summary     *string      `bun:"summary"`
	Description *string      `bun:"description"`
	Status      *string      `bun:"status"`
	CreatedAt   *string      `bun:"created_at"`
	UpdatedAt   *string      `bun:"updated_at"`
	ModifiedAt  *string      `bun:"modified_at"`
}

// ProjectDTO is the project shape returned to the frontend, with its
// features (and their tasks) nested.
type ProjectDTO struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Summary     *string               `json:"summary"`
	Description *string               `json:"description"`
	Status      *string               `json:"status"`
	CreatedAt   *string               `json:"created_at"`
	UpdatedAt   *string               `json:"updated_at"`
	Features    []features.FeatureDTO `json:"features"`
}

// ToDTO projects the row with the given features nested.
func (p *Project) ToDTO(featureList []features.FeatureDTO) ProjectDTO {
	name := ""
	if p.Name != nil {
		name = *p.Name
	}
	if featureList == nil {
		featureList = []features.FeatureDTO{}
	}

	return ProjectDTO{
		ID:          p.ID.String(),
		Name:        name,
		Summary:     p.Summary,
		Description: p.Description,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Features:    featureList,
	}
}

// modifiedOrCreated is the display timestamp for project lists.
func (p *Project) modifiedOrCreated() *string {
	if p.ModifiedAt != nil {
		return p.ModifiedAt
	}
	return p.CreatedAt
}

// ProjectSummary is one row of the project selector list: the project
// plus its aggregate counts and completion percentages.
type ProjectSummary struct {
	ID                             string  `json:"id"`
	Name                           string  `json:"name"`
	Status                         *string `json:"status"`
	FeatureCount                   int     `json:"feature_count"`
	TaskCount                      int     `json:"task_count"`
	CompletedTaskCount             int     `json:"completed_task_count"`
	CompletedFeatureCount          int     `json:"completed_feature_count"`
	TaskCompletionPercentage       int     `json:"task_completion_percentage"`
	ComplexityCompletionPercentage int     `json:"complexity_completion_percentage"`
	FeatureCompletionPercentage    int     `json:"feature_completion_percentage"`
	TotalComplexity                int     `json:"total_complexity"`
	CompletedComplexity            int     `json:"completed_complexity"`
	ModifiedAt                     *string `json:"modified_at"`
	CreatedAt                      *string `json:"created_at"`
}

// SummaryResponse wraps the summary list with its count.
type SummaryResponse struct {
	Projects []ProjectSummary `json:"projects"`
	Count    int              `json:"count"`
}

// MostRecentResponse is the lightweight shape used for dashboard
// auto-loading.
type MostRecentResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Status     *string `json:"status"`
	ModifiedAt *string `json:"modified_at"`
	CreatedAt  *string `json:"created_at"`
}

// Overview response shapes.

type OverviewProject struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Summary    *string `json:"summary"`
	Status     *string `json:"status"`
	CreatedAt  *string `json:"created_at"`
	ModifiedAt *string `json:"modified_at"`
}

type OverviewFeature struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Status          *string `json:"status"`
	TaskCount       int     `json:"task_count"`
	CompletedCount  int     `json:"completed_count"`
	InProgressCount int     `json:"in_progress_count"`
}

type OverviewTask struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Status      string  `json:"status"`
	Priority    *string `json:"priority"`
	Complexity  *int    `json:"complexity"`
	FeatureName *string `json:"feature_name"`
	ModifiedAt  *string `json:"modified_at"`
}

// OverviewStats carries both the display counts of the (possibly
// recency-filtered) task list and the unfiltered project totals; the
// percentages are always computed from the totals.
type OverviewStats struct {
	FeatureCount                   int `json:"feature_count"`
	TaskCount                      int `json:"task_count"`
	CompletedCount                 int `json:"completed_count"`
	DependencyCount                int `json:"dependency_count"`
	SectionCount                   int `json:"section_count"`
	TotalTaskCount                 int `json:"total_task_count"`
	TotalCompletedCount            int `json:"total_completed_count"`
	TaskCompletionPercentage       int `json:"task_completion_percentage"`
	ComplexityCompletionPercentage int `json:"complexity_completion_percentage"`
	FeatureCompletionPercentage    int `json:"feature_completion_percentage"`
}

type OverviewResponse struct {
	Project  OverviewProject   `json:"project"`
	Features []OverviewFeature `json:"features"`
	Tasks    []OverviewTask    `json:"tasks"`
	Stats    OverviewStats     `json:"stats"`
}
