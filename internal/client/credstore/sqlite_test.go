package credstore

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE credentials (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestSQLiteStore_GetMissingKeyIsEmpty(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))

	v, err := s.Get(context.Background(), KeySessionToken)
	require.NoError(t, err)
	require.Empty(t, v)
}

func TestSQLiteStore_SetGetOverwrite(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeySessionToken, "abc"))
	v, err := s.Get(ctx, KeySessionToken)
	require.NoError(t, err)
	require.Equal(t, "abc", v)

	require.NoError(t, s.Set(ctx, KeySessionToken, "def"))
	v, err = s.Get(ctx, KeySessionToken)
	require.NoError(t, err)
	require.Equal(t, "def", v)
}

func TestSQLiteStore_SetManyIsAtomicallyVisible(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.SetMany(ctx, map[string]string{
		KeySessionToken: "tok",
		KeyRefreshToken: "ref",
	}))

	v, err := s.Get(ctx, KeySessionToken)
	require.NoError(t, err)
	require.Equal(t, "tok", v)
	v, err = s.Get(ctx, KeyRefreshToken)
	require.NoError(t, err)
	require.Equal(t, "ref", v)
}

func TestSQLiteStore_DeleteAndClear(t *testing.T) {
	db := setupDB(t)
	s := NewSQLiteStore(db)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyClientID, "42"))
	require.NoError(t, s.Set(ctx, KeySessionToken, "tok"))

	require.NoError(t, s.Delete(ctx, KeyClientID))
	v, err := s.Get(ctx, KeyClientID)
	require.NoError(t, err)
	require.Empty(t, v)

	require.NoError(t, s.Clear(ctx))
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM credentials`).Scan(&n))
	require.Equal(t, 0, n)
}

func TestOpenSQLite_MigratesSchema(t *testing.T) {
	db, err := OpenSQLite(context.Background(), "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := NewSQLiteStore(db)
	require.NoError(t, s.Set(context.Background(), KeySessionToken, "tok"))
}
