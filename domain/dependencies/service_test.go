package dependencies

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskorch/dashboard/internal/testutil"
)

const (
	projectA = "11111111-1111-4111-8111-111111111111"
	taskOne  = "33333333-3333-4333-8333-333333333333"
	taskTwo  = "44444444-4444-4444-8444-444444444444"
	taskTri  = "55555555-5555-4555-8555-555555555555"
	depOne   = "66666666-6666-4666-8666-666666666666"
	depTwo   = "77777777-7777-4777-8777-777777777777"
	depTri   = "88888888-8888-4888-8888-888888888888"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(t *testing.T) (*Service, *testutil.TestDB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return NewService(NewRepository(db.Store(), discardLogger()), discardLogger()), db
}

func seedChain(t *testing.T, db *testutil.TestDB, enc testutil.IDEncoding) {
	t.Helper()
	db.InsertProject(t, testutil.ProjectFixture{ID: projectA, Name: "Alpha", Encoding: enc})
	db.InsertTask(t, testutil.TaskFixture{ID: taskOne, ProjectID: projectA, Title: "First", Status: "PENDING", Priority: "HIGH", Complexity: 3, Encoding: enc})
	db.InsertTask(t, testutil.TaskFixture{ID: taskTwo, ProjectID: projectA, Title: "Second", Status: "COMPLETED", Encoding: enc})
	db.InsertDependency(t, testutil.DependencyFixture{ID: depOne, FromTaskID: taskOne, ToTaskID: taskTwo, Encoding: enc})
}

func TestListJoinsTitles(t *testing.T) {
	svc, db := newService(t)
	seedChain(t, db, testutil.BinaryID)

	deps, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, deps, 1)

	dep := deps[0]
	assert.Equal(t, taskOne, dep.FromTaskID)
	assert.Equal(t, taskTwo, dep.ToTaskID)
	assert.Equal(t, "BLOCKS", dep.Type)
	require.NotNil(t, dep.FromTaskTitle)
	assert.Equal(t, "First", *dep.FromTaskTitle)
	require.NotNil(t, dep.ToTaskTitle)
	assert.Equal(t, "Second", *dep.ToTaskTitle)
}

func TestListForTaskBinaryThenTextFallback(t *testing.T) {
	for _, enc := range []testutil.IDEncoding{testutil.BinaryID, testutil.TextID} {
		name := "binary storage"
		if enc == testutil.TextID {
			name = "text storage"
		}
		t.Run(name, func(t *testing.T) {
			svc, db := newService(t)
			seedChain(t, db, enc)

			// Either endpoint of the edge finds it
			for _, id := range []string{taskOne, taskTwo} {
				deps, err := svc.ListForTask(context.Background(), id)
				require.NoError(t, err)
				require.Len(t, deps, 1, "task %s", id)
				assert.Equal(t, depOne, deps[0].ID)
			}
		})
	}
}

func TestListForTaskUnknown(t *testing.T) {
	svc, db := newService(t)
	seedChain(t, db, testutil.BinaryID)

	deps, err := svc.ListForTask(context.Background(), "99999999-9999-4999-8999-999999999999")
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestGraphNodesEdgesAndDefaults(t *testing.T) {
	svc, db := newService(t)
	seedChain(t, db, testutil.BinaryID)

	graph, err := svc.Graph(context.Background(), projectA, "")
	require.NoError(t, err)

	require.Len(t, graph.Nodes, 2)
	byID := map[string]GraphNode{}
	for _, n := range graph.Nodes {
		byID[n.ID] = n
	}

	first := byID[taskOne]
	assert.Equal(t, "First", first.Label)
	assert.Equal(t, "pending", first.Status)
	assert.Equal(t, "high", first.Priority)
	assert.Equal(t, 3, first.Complexity)

	// NULL priority and complexity fall back to defaults
	second := byID[taskTwo]
	assert.Equal(t, "medium", second.Priority)
	assert.Equal(t, 5, second.Complexity)

	require.Len(t, graph.Edges, 1)
	assert.Equal(t, taskOne, graph.Edges[0].Source)
	assert.Equal(t, taskTwo, graph.Edges[0].Target)

	assert.Empty(t, graph.CircularDependencies)
	require.NotNil(t, graph.CircularDependencies)
}

func TestGraphDetectsCycle(t *testing.T) {
	svc, db := newService(t)
	enc := testutil.BinaryID
	db.InsertProject(t, testutil.ProjectFixture{ID: projectA, Name: "Alpha", Encoding: enc})
	db.InsertTask(t, testutil.TaskFixture{ID: taskOne, ProjectID: projectA, Title: "A", Status: "PENDING", Encoding: enc})
	db.InsertTask(t, testutil.TaskFixture{ID: taskTwo, ProjectID: projectA, Title: "B", Status: "PENDING", Encoding: enc})
	db.InsertTask(t, testutil.TaskFixture{ID: taskTri, ProjectID: projectA, Title: "C", Status: "PENDING", Encoding: enc})
	db.InsertDependency(t, testutil.DependencyFixture{ID: depOne, FromTaskID: taskOne, ToTaskID: taskTwo, Encoding: enc})
	db.InsertDependency(t, testutil.DependencyFixture{ID: depTwo, FromTaskID: taskTwo, ToTaskID: taskTri, Encoding: enc})
	db.InsertDependency(t, testutil.DependencyFixture{ID: depTri, FromTaskID: taskTri, ToTaskID: taskOne, Encoding: enc})

	graph, err := svc.Graph(context.Background(), projectA, "")
	require.NoError(t, err)

	require.Len(t, graph.CircularDependencies, 1)
	cycle := graph.CircularDependencies[0]
	// Cycle closes back on its starting node and visits all three tasks
	require.Len(t, cycle, 4)
	assert.Equal(t, cycle[0], cycle[len(cycle)-1])
	assert.ElementsMatch(t, []string{taskOne, taskTwo, taskTri}, cycle[:3])
}

func TestFindCyclesTwoNodeLoop(t *testing.T) {
	adj := map[string][]string{}
	assert.Empty(t, findCycles(adj))

	adj = map[string][]string{"a": {"b"}, "b": {"a"}}
	cycles := findCycles(adj)
	require.Len(t, cycles, 1)
	assert.Equal(t, cycles[0][0], cycles[0][len(cycles[0])-1])
}

func TestGraphOnLegacyColumnSet(t *testing.T) {
	// Older files have no name, description or updated_at columns on
	// tasks; the node query selects whatever columns exist.
	db := testutil.NewLegacyTestDB(t)
	svc := NewService(NewRepository(db.Store(), discardLogger()), discardLogger())

	db.InsertTask(t, testutil.TaskFixture{ID: taskOne, Title: "First", Status: "PENDING", Encoding: testutil.TextID})
	db.InsertTask(t, testutil.TaskFixture{ID: taskTwo, Title: "Second", Status: "COMPLETED", Encoding: testutil.TextID})
	db.InsertDependency(t, testutil.DependencyFixture{ID: depOne, FromTaskID: taskOne, ToTaskID: taskTwo, Encoding: testutil.TextID})

	got, err := svc.Graph(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, got.Nodes, 2)
	require.Len(t, got.Edges, 1)
}
