package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table'`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	for _, table := range []string{"trades", "accounts", "strategies", "imports", "notes"} {
		assert.True(t, found[table], table)
	}
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	want := sampleTrade("persist")
	require.NoError(t, j.Save(want))
	require.NoError(t, j.SaveAccount(Account{Name: "Main", StartingBalance: 2500}))
	require.NoError(t, j.Close())

	j, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	got, err := j.FindByTicket("persist")
	require.NoError(t, err)
	assertSameTrade(t, want, got)

	a, err := j.FindAccount("main")
	require.NoError(t, err)
	assert.Equal(t, 2500.0, a.StartingBalance)
}

func TestSQLiteNullTimes(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	tr := sampleTrade("pending")
	tr.CloseTime = time.Time{}
	require.NoError(t, j.Save(tr))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var closeTime sql.NullTime
	require.NoError(t, db.QueryRow(`SELECT close_time FROM trades WHERE ticket = ?`, "pending").Scan(&closeTime))
	assert.False(t, closeTime.Valid, "zero close time is stored as NULL")
}
