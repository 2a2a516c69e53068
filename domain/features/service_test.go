package features

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskorch/dashboard/domain/tasks"
	"github.com/taskorch/dashboard/internal/testutil"
	"github.com/taskorch/dashboard/pkg/apperror"
)

const (
	projectA = "11111111-1111-4111-8111-111111111111"
	projectB = "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa"
	featureA = "22222222-2222-4222-8222-222222222222"
	featureB = "bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbbb"
	taskOne  = "33333333-3333-4333-8333-333333333333"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(t *testing.T) (*Service, *testutil.TestDB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	repo := NewRepository(db.Store(), discardLogger())
	taskRepo := tasks.NewRepository(db.Store(), discardLogger())
	return NewService(repo, taskRepo, discardLogger()), db
}

func seed(t *testing.T, db *testutil.TestDB, enc testutil.IDEncoding) {
	t.Helper()
	db.InsertProject(t, testutil.ProjectFixture{ID: projectA, Name: "Alpha", Status: "ACTIVE", Encoding: enc})
	db.InsertProject(t, testutil.ProjectFixture{ID: projectB, Name: "Beta", Status: "ACTIVE", Encoding: enc})
	db.InsertFeature(t, testutil.FeatureFixture{ID: featureA, ProjectID: projectA, Name: "Login", Status: "IN_PROGRESS", Encoding: enc})
	db.InsertFeature(t, testutil.FeatureFixture{ID: featureB, ProjectID: projectB, Name: "Billing", Status: "PENDING", Encoding: enc})
	db.InsertTask(t, testutil.TaskFixture{ID: taskOne, FeatureID: featureA, Title: "Build form", Status: "PENDING", Priority: "HIGH", Complexity: 3, Encoding: enc})
}

func TestListNestsTasks(t *testing.T) {
	svc, db := newService(t)
	seed(t, db, testutil.BinaryID)

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	byID := map[string]FeatureDTO{}
	for _, f := range all {
		byID[f.ID] = f
	}

	login := byID[featureA]
	assert.Equal(t, "Login", login.Name)
	require.Len(t, login.Tasks, 1)
	assert.Equal(t, "Build form", login.Tasks[0].Title)

	// Feature with no tasks gets an empty list, not null
	billing := byID[featureB]
	require.NotNil(t, billing.Tasks)
	assert.Empty(t, billing.Tasks)
}

func TestListProjectFilterMatchesEveryEncoding(t *testing.T) {
	for _, enc := range []testutil.IDEncoding{testutil.BinaryID, testutil.TextID} {
		name := "binary storage"
		if enc == testutil.TextID {
			name = "text storage"
		}
		t.Run(name, func(t *testing.T) {
			svc, db := newService(t)
			seed(t, db, enc)

			for _, form := range []string{
				projectA,
				"11111111111141118111111111111111",
				"11111111-1111-4111-8111-111111111111",
			} {
				got, err := svc.List(context.Background(), form)
				require.NoError(t, err, "form %q", form)
				require.Len(t, got, 1, "form %q", form)
				assert.Equal(t, featureA, got[0].ID)
			}
		})
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc, db := newService(t)
	seed(t, db, testutil.BinaryID)

	_, err := svc.GetByID(context.Background(), "99999999-9999-4999-8999-999999999999")
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPStatus)
	assert.Equal(t, "feature_not_found", appErr.Code)
}

func TestGetByIDNestsTasks(t *testing.T) {
	svc, db := newService(t)
	seed(t, db, testutil.TextID)

	got, err := svc.GetByID(context.Background(), "22222222222242228222222222222222")
	require.NoError(t, err)
	assert.Equal(t, featureA, got.ID)
	require.NotNil(t, got.ProjectID)
	assert.Equal(t, projectA, *got.ProjectID)
	require.Len(t, got.Tasks, 1)
}
