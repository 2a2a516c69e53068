// Package testutil provides in-memory database fixtures for tests.
package testutil

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/taskorch/dashboard/internal/database"
	"github.com/taskorch/dashboard/pkg/uuidcodec"
)

//go:embed schema.sql
var schemaSQL string

//go:embed legacy_schema.sql
var legacySchemaSQL string

var dbCounter atomic.Int64

// TestDB wraps an in-memory orchestrator database.
type TestDB struct {
	DB *bun.DB
}

// NewTestDB creates an empty in-memory database with the orchestrator
// schema applied. The database is private to the test and is torn down
// with t.Cleanup.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	return newTestDB(t, schemaSQL)
}

// NewLegacyTestDB creates an in-memory database with the older
// orchestrator schema, which has no updated_at columns and no
// name/description variants on tasks. Fixture inserters that write
// updated_at do not work against it; seed with raw SQL instead.
func NewLegacyTestDB(t *testing.T) *TestDB {
	t.Helper()
	return newTestDB(t, legacySchemaSQL)
}

func newTestDB(t *testing.T, schema string) *TestDB {
	t.Helper()

	// A unique shared-cache name keeps the database alive across the
	// pool's connections for the duration of the test.
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbCounter.Add(1))
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		t.Fatalf("apply test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return &TestDB{DB: db}
}

// Store wraps the test database in a read-write Store.
func (d *TestDB) Store() *database.Store {
	return database.NewStoreWithDB(d.DB, ":memory:", false)
}

// ReadOnlyStore wraps the test database in a read-only Store.
func (d *TestDB) ReadOnlyStore() *database.Store {
	return database.NewStoreWithDB(d.DB, ":memory:", true)
}

// IDEncoding selects how a fixture stores its identifier columns.
type IDEncoding int

const (
	// BinaryID stores ids as 16-byte BLOBs (older orchestrator files).
	BinaryID IDEncoding = iota
	// TextID stores ids as canonical dashed text (newer files).
	TextID
)

// encode renders an id in the fixture's storage encoding.
func (e IDEncoding) encode(id string) any {
	if e == TextID {
		return id
	}
	b, ok := uuidcodec.Decode(id)
	if !ok {
		panic(fmt.Sprintf("testutil: bad fixture id %q", id))
	}
	return b
}

// Now returns a stable timestamp string for fixtures.
func Now() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05")
}

// ProjectFixture describes a project row.
type ProjectFixture struct {
	ID          string
	Name        string
	Description string
	Status      string
	CreatedAt   string
	ModifiedAt  string
	Encoding    IDEncoding
}

// InsertProject inserts a project row.
func (d *TestDB) InsertProject(t *testing.T, p ProjectFixture) {
	t.Helper()
	if p.CreatedAt == "" {
		p.CreatedAt = Now()
	}
	if p.ModifiedAt == "" {
		p.ModifiedAt = p.CreatedAt
	}
	_, err := d.DB.ExecContext(context.Background(),
		`INSERT INTO projects (id, name, description, status, created_at, updated_at, modified_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Encoding.encode(p.ID), p.Name, p.Description, p.Status, p.CreatedAt, p.CreatedAt, p.ModifiedAt,
	)
	if err != nil {
		t.Fatalf("insert project: %v", err)
	}
}

// FeatureFixture describes a feature row.
type FeatureFixture struct {
	ID          string
	ProjectID   string
	Name        string
	Description string
	Status      string
	Priority    string
	CreatedAt   string
	ModifiedAt  string
	Encoding    IDEncoding
}

// InsertFeature inserts a feature row. An empty ProjectID leaves the
// column NULL, producing an orphaned feature.
func (d *TestDB) InsertFeature(t *testing.T, f FeatureFixture) {
	t.Helper()
	if f.CreatedAt == "" {
		f.CreatedAt = Now()
	}
	if f.ModifiedAt == "" {
		f.ModifiedAt = f.CreatedAt
	}
	var projectID any
	if f.ProjectID != "" {
		projectID = f.Encoding.encode(f.ProjectID)
	}
	_, err := d.DB.ExecContext(context.Background(),
		`INSERT INTO features (id, project_id, name, description, status, priority, created_at, updated_at, modified_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.Encoding.encode(f.ID), projectID, f.Name, f.Description, f.Status, f.Priority, f.CreatedAt, f.CreatedAt, f.ModifiedAt,
	)
	if err != nil {
		t.Fatalf("insert feature: %v", err)
	}
}

// TaskFixture describes a task row.
type TaskFixture struct {
	ID         string
	FeatureID  string
	ProjectID  string
	Title      string
	Summary    string
	Status     string
	Priority   string
	Complexity int
	CreatedAt  string
	ModifiedAt string
	Encoding   IDEncoding
}

// InsertTask inserts a task row. Empty FeatureID and ProjectID leave the
// columns NULL; a task with both unset is an orphan.
func (d *TestDB) InsertTask(t *testing.T, task TaskFixture) {
	t.Helper()
	if task.CreatedAt == "" {
		task.CreatedAt = Now()
	}
	if task.ModifiedAt == "" {
		task.ModifiedAt = task.CreatedAt
	}
	var featureID, projectID, complexity any
	if task.FeatureID != "" {
		featureID = task.Encoding.encode(task.FeatureID)
	}
	if task.ProjectID != "" {
		projectID = task.Encoding.encode(task.ProjectID)
	}
	if task.Complexity != 0 {
		complexity = task.Complexity
	}
	_, err := d.DB.ExecContext(context.Background(),
		`INSERT INTO tasks (id, feature_id, project_id, title, summary, status, priority, complexity, created_at, modified_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.Encoding.encode(task.ID), featureID, projectID, task.Title, task.Summary, task.Status, task.Priority, complexity, task.CreatedAt, task.ModifiedAt,
	)
	if err != nil {
		t.Fatalf("insert task: %v", err)
	}
}

// DependencyFixture describes a dependency edge between two tasks.
type DependencyFixture struct {
	ID         string
	FromTaskID string
	ToTaskID   string
	Type       string
	CreatedAt  string
	Encoding   IDEncoding
}

// InsertDependency inserts a dependency row.
func (d *TestDB) InsertDependency(t *testing.T, dep DependencyFixture) {
	t.Helper()
	if dep.CreatedAt == "" {
		dep.CreatedAt = Now()
	}
	if dep.Type == "" {
		dep.Type = "BLOCKS"
	}
	_, err := d.DB.ExecContext(context.Background(),
		`INSERT INTO dependencies (id, from_task_id, to_task_id, type, created_at) VALUES (?, ?, ?, ?, ?)`,
		dep.Encoding.encode(dep.ID), dep.Encoding.encode(dep.FromTaskID), dep.Encoding.encode(dep.ToTaskID), dep.Type, dep.CreatedAt,
	)
	if err != nil {
		t.Fatalf("insert dependency: %v", err)
	}
}

// SectionFixture describes a documentation section attached to an entity.
type SectionFixture struct {
	ID            string
	EntityType    string
	EntityID      string
	Title         string
	Content       string
	ContentFormat string
	Ordinal       int
	CreatedAt     string
	Encoding      IDEncoding
}

// InsertSection inserts a section row.
func (d *TestDB) InsertSection(t *testing.T, s SectionFixture) {
	t.Helper()
	if s.CreatedAt == "" {
		s.CreatedAt = Now()
	}
	if s.ContentFormat == "" {
		s.ContentFormat = "markdown"
	}
	_, err := d.DB.ExecContext(context.Background(),
		`INSERT INTO sections (id, entity_type, entity_id, title, usage_description, content, content_format, ordinal, tags, created_at, modified_at) VALUES (?, ?, ?, ?, '', ?, ?, ?, '', ?, ?)`,
		s.Encoding.encode(s.ID), s.EntityType, s.Encoding.encode(s.EntityID), s.Title, s.Content, s.ContentFormat, s.Ordinal, s.CreatedAt, s.CreatedAt,
	)
	if err != nil {
		t.Fatalf("insert section: %v", err)
	}
}

// InsertTag inserts an entity tag row.
func (d *TestDB) InsertTag(t *testing.T, id, entityType, entityID, tag string, enc IDEncoding) {
	t.Helper()
	_, err := d.DB.ExecContext(context.Background(),
		`INSERT INTO entity_tags (id, entity_type, entity_id, tag, created_at) VALUES (?, ?, ?, ?, ?)`,
		enc.encode(id), entityType, enc.encode(entityID), tag, Now(),
	)
	if err != nil {
		t.Fatalf("insert tag: %v", err)
	}
}

// InsertTemplate inserts a template row.
func (d *TestDB) InsertTemplate(t *testing.T, id, name, category string, enabled bool, enc IDEncoding) {
	t.Helper()
	enabledInt := 0
	if enabled {
		enabledInt = 1
	}
	_, err := d.DB.ExecContext(context.Background(),
		`INSERT INTO templates (id, name, description, category, is_enabled, created_at, updated_at) VALUES (?, ?, '', ?, ?, ?, ?)`,
		enc.encode(id), name, category, enabledInt, Now(), Now(),
	)
	if err != nil {
		t.Fatalf("insert template: %v", err)
	}
}

// InsertWorkSession inserts a work session row.
func (d *TestDB) InsertWorkSession(t *testing.T, sessionID, clientID, lastActivity string) {
	t.Helper()
	if lastActivity == "" {
		lastActivity = Now()
	}
	_, err := d.DB.ExecContext(context.Background(),
		`INSERT INTO work_sessions (session_id, client_id, user_context, started_at, last_activity) VALUES (?, ?, '', ?, ?)`,
		sessionID, clientID, lastActivity, lastActivity,
	)
	if err != nil {
		t.Fatalf("insert work session: %v", err)
	}
}

// InsertTaskLock inserts a task lock row with the given expiry.
func (d *TestDB) InsertTaskLock(t *testing.T, id, taskID, sessionID string, expiresAt time.Time, enc IDEncoding) {
	t.Helper()
	_, err := d.DB.ExecContext(context.Background(),
		`INSERT INTO task_locks (id, task_id, session_id, locked_at, expires_at) VALUES (?, ?, ?, ?, ?)`,
		enc.encode(id), enc.encode(taskID), sessionID, Now(), expiresAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		t.Fatalf("insert task lock: %v", err)
	}
}
