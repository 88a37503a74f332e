package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"scriptdeck/internal/database"
)

func openTestDB(t *testing.T) *testDB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("../migrations")
	require.NoError(t, err)

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrations(db, migrations))
	return &testDB{Scripts: NewScriptRepo(db), KV: NewKVRepo(db)}
}

type testDB struct {
	Scripts *ScriptRepo
	KV      *KVRepo
}

func TestScriptRepoLifecycle(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	tdb := openTestDB(t)

	id := uuid.NewString()
	require.NoError(t, tdb.Scripts.Upsert(ctx, Script{ID: id, Name: "fetch", Body: `http.get(url)`}))
	require.NoError(t, tdb.Scripts.Upsert(ctx, Script{ID: uuid.NewString(), Name: "audit", Body: `print(clock.iso())`}))

	list, err := tdb.Scripts.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// name order
	require.Equal(t, "audit", list[0].Name)
	require.Equal(t, "fetch", list[1].Name)

	got, err := tdb.Scripts.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, `http.get(url)`, got.Body)
	require.Nil(t, got.LastRunAt)

	// rename + edit via upsert on the same id
	require.NoError(t, tdb.Scripts.Upsert(ctx, Script{ID: id, Name: "fetch2", Body: "1+1"}))
	got, err = tdb.Scripts.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "fetch2", got.Name)
	require.Equal(t, "1+1", got.Body)

	at := database.Now()
	require.NoError(t, tdb.Scripts.RecordRun(ctx, id, "2+2", at))
	got, err = tdb.Scripts.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "2+2", got.Body)
	require.NotNil(t, got.LastRunAt)
	require.Equal(t, at.Unix(), got.LastRunAt.Unix())

	require.Error(t, tdb.Scripts.RecordRun(ctx, uuid.NewString(), "1", at))

	require.NoError(t, tdb.Scripts.Delete(ctx, id))
	got, err = tdb.Scripts.Get(ctx, id)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestKVRepo(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	tdb := openTestDB(t)

	_, ok, err := tdb.KV.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, tdb.KV.Set(ctx, "a", "1"))
	require.NoError(t, tdb.KV.Set(ctx, "b", "2"))
	require.NoError(t, tdb.KV.Set(ctx, "a", "3")) // upsert

	v, ok, err := tdb.KV.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "3", v)

	entries, err := tdb.KV.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "a", entries[0].Key)
	require.Equal(t, "b", entries[1].Key)

	require.NoError(t, tdb.KV.Delete(ctx, "a"))
	entries, err = tdb.KV.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
