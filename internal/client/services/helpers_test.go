package services

import (
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/monicli/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/monicli/internal/client/repositories/records"
	"github.com/dmitrijs2005/monicli/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func online() bool  { return true }
func offline() bool { return false }

func setupStore(t *testing.T) (records.Repository, metadata.Repository) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE records (
  local_id TEXT PRIMARY KEY,
  record_type TEXT NOT NULL,
  remote_id INTEGER,
  contact_id INTEGER NOT NULL DEFAULT 0,
  payload TEXT NOT NULL,
  sync_status TEXT NOT NULL DEFAULT 'pending',
  sync_error TEXT NOT NULL DEFAULT '',
  last_sync_attempt TIMESTAMP,
  deleted INTEGER NOT NULL DEFAULT 0,
  created_at TIMESTAMP NOT NULL,
  updated_at TIMESTAMP NOT NULL
);
CREATE TABLE metadata (key TEXT PRIMARY KEY, value TEXT NOT NULL);
`)
	require.NoError(t, err)
	return records.NewSQLiteRepository(db), metadata.NewSQLiteRepository(db)
}
