package dependencies

import (
	"github.com/uptrace/bun"

	"github.com/taskorch/dashboard/pkg/uuidcodec"
)

// Dependency represents a row in the dependencies table: a typed edge
// between two tasks.
type Dependency struct {
	bun.BaseModel `bun:"table:dependencies,alias:d"`

	ID         uuidcodec.ID `bun:"id,pk"`
	FromTaskID uuidcodec.ID `bun:"from_task_id"`
	ToTaskID   uuidcodec.ID `bun:"to_task_id"`
	Type       *string      `bun:"type"`
	CreatedAt  *string      `bun:"created_at"`

	// Populated by joined queries only
	FromTaskTitle *string `bun:"from_task_title,scanonly"`
	ToTaskTitle   *string `bun:"to_task_title,scanonly"`
}

// DependencyDTO is the dependency shape returned to the frontend.
type DependencyDTO struct {
	ID            string  `json:"id"`
	FromTaskID    string  `json:"from_task_id"`
	ToTaskID      string  `json:"to_task_id"`
	Type          string  `json:"type"`
	CreatedAt     *string `json:"created_at"`
	FromTaskTitle *string `json:"from_task_title"`
	ToTaskTitle   *string `json:"to_task_title"`
}

// ToDTO projects the row; a missing type defaults to BLOCKS.
func (d *Dependency) ToDTO() DependencyDTO {
	depType := "BLOCKS"
	if d.Type != nil && *d.Type != "" {
		depType = *d.Type
	}

	return DependencyDTO{
		ID:            d.ID.String(),
		FromTaskID:    d.FromTaskID.String(),
		ToTaskID:      d.ToTaskID.String(),
		Type:          depType,
		CreatedAt:     d.CreatedAt,
		FromTaskTitle: d.FromTaskTitle,
		ToTaskTitle:   d.ToTaskTitle,
	}
}

// GraphNode is one task in the dependency graph visualization.
type GraphNode struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Status     string `json:"status"`
	Priority   string `json:"priority"`
	Complexity int    `json:"complexity"`
}

// GraphEdge is one dependency edge of the visualization.
type GraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// GraphResponse is the dependency graph payload. CircularDependencies
// lists each detected cycle as the node ids along it.
type GraphResponse struct {
	Nodes                []GraphNode `json:"nodes"`
	Edges                []GraphEdge `json:"edges"`
	CircularDependencies [][]string  `json:"circular_dependencies"`
}
