package dependencies

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/taskorch/dashboard/domain/tasks"
	"github.com/taskorch/dashboard/pkg/logger"
)

// Service handles business logic for dependencies
type Service struct {
	repo *Repository
	log  *slog.Logger
}

// NewService creates a new dependency service
func NewService(repo *Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With(logger.Scope("dependencies.svc")),
	}
}

// List returns all dependencies with task titles.
func (s *Service) List(ctx context.Context) ([]DependencyDTO, error) {
	deps, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]DependencyDTO, len(deps))
	for i := range deps {
		result[i] = deps[i].ToDTO()
	}
	return result, nil
}

// ListForTask returns dependencies touching one task.
func (s *Service) ListForTask(ctx context.Context, taskID string) ([]DependencyDTO, error) {
	deps, err := s.repo.ListForTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	result := make([]DependencyDTO, len(deps))
	for i := range deps {
		result[i] = deps[i].ToDTO()
	}
	return result, nil
}

// Graph returns the visualization payload: nodes for the selected
// tasks, edges between them, and the cycles found among BLOCKS edges.
func (s *Service) Graph(ctx context.Context, projectID, featureID string) (*GraphResponse, error) {
	taskRows, err := s.repo.GraphTasks(ctx, projectID, featureID)
	if err != nil {
		return nil, err
	}

	nodes := make([]GraphNode, 0, len(taskRows))
	inGraph := make(map[string]struct{}, len(taskRows))
	for i := range taskRows {
		row := &taskRows[i]
		id := row.ID.String()
		inGraph[id] = struct{}{}

		label := ""
		if row.Title != nil && *row.Title != "" {
			label = *row.Title
		} else if row.Name != nil {
			label = *row.Name
		}

		status := "pending"
		if row.Status != nil && *row.Status != "" {
			status = tasks.NormalizeStatus(*row.Status)
		}
		priority := "medium"
		if row.Priority != nil && *row.Priority != "" {
			priority = strings.ToLower(*row.Priority)
		}
		complexity := 5
		if row.Complexity != nil {
			complexity = *row.Complexity
		}

		nodes = append(nodes, GraphNode{
			ID:         id,
			Label:      label,
			Status:     status,
			Priority:   priority,
			Complexity: complexity,
		})
	}

	// Edge endpoints are compared by canonical id so the filter works
	// regardless of how either side is stored.
	deps, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	edges := make([]GraphEdge, 0, len(deps))
	blocking := make(map[string][]string)
	for i := range deps {
		dto := deps[i].ToDTO()
		_, fromIn := inGraph[dto.FromTaskID]
		_, toIn := inGraph[dto.ToTaskID]
		if !fromIn && !toIn {
			continue
		}

		edges = append(edges, GraphEdge{
			Source: dto.FromTaskID,
			Target: dto.ToTaskID,
			Type:   dto.Type,
		})
		if dto.Type == "BLOCKS" {
			blocking[dto.FromTaskID] = append(blocking[dto.FromTaskID], dto.ToTaskID)
		}
	}

	return &GraphResponse{
		Nodes:                nodes,
		Edges:                edges,
		CircularDependencies: findCycles(blocking),
	}, nil
}

// findCycles runs a colored DFS over the BLOCKS adjacency and returns
// each cycle as the node ids along it, closing back on the first node.
func findCycles(adj map[string][]string) [][]string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(adj))
	var stack []string
	cycles := [][]string{}

	var visit func(node string)
	visit = func(node string) {
		color[node] = gray
		stack = append(stack, node)

		for _, next := range adj[node] {
			switch color[next] {
			case white:
				visit(next)
			case gray:
				// Back edge: the cycle is the stack from next onward
				start := len(stack) - 1
				for start >= 0 && stack[start] != next {
					start--
				}
				if start >= 0 {
					cycle := make([]string, 0, len(stack)-start+1)
					cycle = append(cycle, stack[start:]...)
					cycle = append(cycle, next)
					cycles = append(cycles, cycle)
				}
			}
		}

		stack = stack[:len(stack)-1]
		color[node] = black
	}

	// Deterministic order keeps the output stable across runs
	roots := make([]string, 0, len(adj))
	for node := range adj {
		roots = append(roots, node)
	}
	sort.Strings(roots)

	for _, node := range roots {
		if color[node] == white {
			visit(node)
		}
	}

	return cycles
}
