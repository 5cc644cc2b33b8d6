package memory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/domain"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "chat_history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAppendAndHistoryOrder(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s1", domain.RoleUser, "hello"))
	require.NoError(t, store.Append(ctx, "s1", domain.RoleAssistant, "hi there"))
	require.NoError(t, store.Append(ctx, "s1", domain.RoleUser, "how are you"))

	history, err := store.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history, 3)
	require.Equal(t, "hello", history[0].Content)
	require.Equal(t, domain.RoleAssistant, history[1].Role)
	require.Equal(t, "how are you", history[2].Content)
	require.Equal(t, int64(1), history[0].Index)
	require.Equal(t, int64(3), history[2].Index)
}

func TestSessionsAreIsolated(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "alice", domain.RoleUser, "from alice"))
	require.NoError(t, store.Append(ctx, "bob", domain.RoleUser, "from bob"))

	history, err := store.History(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "from alice", history[0].Content)
}

func TestHistoryOfUnknownSessionIsEmpty(t *testing.T) {
	store := openStore(t)

	history, err := store.History(context.Background(), "nobody")
	require.NoError(t, err)
	require.Empty(t, history)
}

func TestClearThenReadIsEmpty(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s1", domain.RoleUser, "hello"))
	require.NoError(t, store.Append(ctx, "s1", domain.RoleAssistant, "hi"))
	require.NoError(t, store.Clear(ctx, "s1"))

	history, err := store.History(ctx, "s1")
	require.NoError(t, err)
	require.Empty(t, history)
}

func TestAppendAfterClearKeepsOnlyNewTurns(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s1", domain.RoleUser, "old question"))
	require.NoError(t, store.Clear(ctx, "s1"))
	require.NoError(t, store.Append(ctx, "s1", domain.RoleUser, "new question"))

	history, err := store.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "new question", history[0].Content)
}

func TestClearUnknownSessionIsNoop(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.Clear(context.Background(), "nobody"))
}
