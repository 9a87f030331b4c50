// Package handoff is the one-shot storage channel between checkout and the
// confirmation page: a value is written once per session, read once, then
// deleted in the same transaction. It is a channel, not a cache.
package handoff

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Keys written at order completion.
const (
	KeyCustomer = "datiCliente"
	KeyOrder    = "ultimoOrdine"
)

type Store struct{ db *sqlx.DB }

func Open(dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		// in-memory sqlite is one database per connection
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	schema := `
CREATE TABLE IF NOT EXISTS handoff(
  session_id TEXT NOT NULL,
  key        TEXT NOT NULL,
  value      TEXT NOT NULL,
  created_at TEXT,
  PRIMARY KEY(session_id, key)
);`
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Put(sessionID, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO handoff(session_id, key, value, created_at)
		VALUES(?, ?, ?, ?)
		ON CONFLICT(session_id, key) DO UPDATE SET value = excluded.value, created_at = excluded.created_at
	`, sessionID, key, string(b), time.Now().UTC().Format(time.RFC3339))
	return err
}

// Take reads and deletes in one transaction. The second Take for the same
// key misses: ok is false and dst is untouched.
func (s *Store) Take(sessionID, key string, dst any) (bool, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	var raw string
	err = tx.Get(&raw, `SELECT value FROM handoff WHERE session_id = ? AND key = ?`, sessionID, key)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if _, err := tx.Exec(`DELETE FROM handoff WHERE session_id = ? AND key = ?`, sessionID, key); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(raw), dst)
}
