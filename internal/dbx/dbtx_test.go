package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS comments (id INTEGER PRIMARY KEY, content TEXT NOT NULL)`)
	require.NoError(t, err)
	return db
}

func commentCount(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM comments`).Scan(&n))
	return n
}

func insertComment(ctx context.Context, tx DBTX, content string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO comments(content) VALUES (?)`, content)
	return err
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	db := openTestDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		if err := insertComment(ctx, tx, "first"); err != nil {
			return err
		}
		return insertComment(ctx, tx, "second")
	})

	require.NoError(t, err)
	require.Equal(t, 2, commentCount(t, db))
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	boom := errors.New("boom")

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, insertComment(ctx, tx, "discarded"))
		return boom
	})

	require.ErrorIs(t, err, boom)
	require.Equal(t, 0, commentCount(t, db))
}

func TestWithTx_RollsBackAndRepanics(t *testing.T) {
	db := openTestDB(t)

	require.PanicsWithValue(t, "kaput", func() {
		_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
			require.NoError(t, insertComment(ctx, tx, "discarded"))
			panic("kaput")
		})
	})
	require.Equal(t, 0, commentCount(t, db))
}

func TestWithTx_BeginError(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Close())

	called := false
	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		called = true
		return nil
	})

	require.Error(t, err)
	require.False(t, called, "fn must not run without a transaction")
}
