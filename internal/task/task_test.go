package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_api/internal/model"
	"storefront_api/internal/repository"
	"storefront_api/internal/testutil"
)

func TestTokenCleanupTask_RunOnce(t *testing.T) {
	db := testutil.NewDB(t)
	store := repository.NewStore(db)
	ctx := context.Background()

	now := time.Now()
	fresh := testutil.CreateUser(t, db, "fresh@example.com", false, false)
	stale := testutil.CreateUser(t, db, "stale@example.com", false, false)
	require.NoError(t, store.Tokens.Save(ctx, &model.AuthToken{Key: "fresh", UserID: fresh.ID, ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, store.Tokens.Save(ctx, &model.AuthToken{Key: "stale", UserID: stale.ID, ExpiresAt: now.Add(-time.Hour)}))

	task := NewTokenCleanupTask(store.Tokens, "")
	task.now = func() time.Time { return now }

	n, err := task.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	kept, err := store.Tokens.GetByKey(ctx, "fresh")
	require.NoError(t, err)
	assert.NotNil(t, kept)

	gone, err := store.Tokens.GetByKey(ctx, "stale")
	require.NoError(t, err)
	assert.Nil(t, gone)

	// 再次执行无可清理
	n, err = task.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTokenCleanupTask_StartStop(t *testing.T) {
	db := testutil.NewDB(t)
	store := repository.NewStore(db)

	task := NewTokenCleanupTask(store.Tokens, "@every 1h")
	require.NoError(t, task.Start())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	task.Stop(ctx)
}

func TestTokenCleanupTask_InvalidSpec(t *testing.T) {
	db := testutil.NewDB(t)
	task := NewTokenCleanupTask(repository.NewStore(db).Tokens, "not a spec")
	assert.Error(t, task.Start())
}
