package analytics

// TaskCounts breaks the global task count down by status.
type TaskCounts struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	InProgress     int     `json:"in_progress"`
	Pending        int     `json:"pending"`
	CompletionRate float64 `json:"completion_rate"`
}

// StatsResponse is the global dashboard statistics payload.
type StatsResponse struct {
	Projects     int        `json:"projects"`
	Features     int        `json:"features"`
	Tasks        TaskCounts `json:"tasks"`
	Dependencies int        `json:"dependencies"`
	Sections     int        `json:"sections"`
	Templates    int        `json:"templates"`
	LastUpdated  string     `json:"last_updated"`
}

// OverviewResponse is the analytics payload, optionally scoped to one
// project.
type OverviewResponse struct {
	TaskStatusDistribution   map[string]int `json:"task_status_distribution"`
	TaskPriorityDistribution map[string]int `json:"task_priority_distribution"`
	AverageComplexity        float64        `json:"average_complexity"`
	BlockedTasks             int            `json:"blocked_tasks"`
	Timestamp                string         `json:"timestamp"`
	ProjectID                *string        `json:"project_id"`
}

// SearchResult is one hit of the global search, tagged with its entity
// type.
type SearchResult struct {
	ID      string  `json:"id"`
	Type    string  `json:"type"`
	Name    string  `json:"name"`
	Summary *string `json:"summary"`
	Status  *string `json:"status"`
}

// SearchResponse wraps search hits with the query and count.
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
	Count   int            `json:"count"`
}

// Activity is one row of the recent-activity feed.
type Activity struct {
	Datetime   *string `json:"datetime"`
	Project    string  `json:"project"`
	EntityType string  `json:"entity_type"`
	EntityName string  `json:"entity_name"`
	EntityID   string  `json:"entity_id"`
	Action     string  `json:"action"`
}

// ActivityResponse wraps the merged activity feed with its count.
type ActivityResponse struct {
	Activities []Activity `json:"activities"`
	Count      int        `json:"count"`
}
