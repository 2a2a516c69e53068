package worksessions

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskorch/dashboard/internal/testutil"
)

const taskOne = "33333333-3333-4333-8333-333333333333"

func newRepo(t *testing.T) (*Repository, *testutil.TestDB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return NewRepository(db.Store(), slog.New(slog.NewTextHandler(io.Discard, nil))), db
}

func TestListSessionsOrder(t *testing.T) {
	repo, db := newRepo(t)
	db.InsertWorkSession(t, "sess-old", "client-a", "2020-01-01T00:00:00")
	db.InsertWorkSession(t, "sess-new", "client-b", "2030-01-01T00:00:00")

	got, err := repo.ListSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "sess-new", got[0].SessionID)
	assert.Equal(t, "sess-old", got[1].SessionID)
}

func TestListActiveLocksSkipsExpired(t *testing.T) {
	repo, db := newRepo(t)
	db.InsertWorkSession(t, "sess-1", "client-a", "")
	db.InsertTaskLock(t, "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaa1", taskOne, "sess-1", time.Now().Add(time.Hour), testutil.BinaryID)
	db.InsertTaskLock(t, "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaa2", taskOne, "sess-1", time.Now().Add(-time.Hour), testutil.BinaryID)

	got, err := repo.ListActiveLocks(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)

	lock := got[0].ToDTO()
	assert.Equal(t, "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaa1", lock.ID)
	assert.Equal(t, taskOne, lock.TaskID)
	require.NotNil(t, lock.ClientID)
	assert.Equal(t, "client-a", *lock.ClientID)
}
