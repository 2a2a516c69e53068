package tags

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskorch/dashboard/internal/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestListGroupsAndSplits(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRepository(db.Store(), discardLogger())

	taskID := "33333333-3333-4333-8333-333333333333"
	featID := "22222222-2222-4222-8222-222222222222"
	db.InsertTag(t, "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaa1", "TASK", taskID, "backend", testutil.BinaryID)
	db.InsertTag(t, "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaa2", "FEATURE", featID, "backend", testutil.BinaryID)
	db.InsertTag(t, "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaa3", "TASK", taskID, "ui", testutil.BinaryID)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Most used first
	assert.Equal(t, "backend", got[0].Tag)
	assert.Equal(t, 2, got[0].Count)
	assert.ElementsMatch(t, []string{"TASK", "FEATURE"}, got[0].EntityTypes)

	assert.Equal(t, "ui", got[1].Tag)
	assert.Equal(t, 1, got[1].Count)
	assert.Equal(t, []string{"TASK"}, got[1].EntityTypes)
}

func TestListEmptyTable(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRepository(db.Store(), discardLogger())

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NotNil(t, got)
}
