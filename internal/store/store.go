// internal/store/store.go

// Package store persists bridge settings that can be changed at runtime
// over MQTT, so they survive a restart.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS bridge_settings (
	name  TEXT PRIMARY KEY,
	value INTEGER NOT NULL
);`

// Setting names.
const (
	ModbusUpdateSec = "modbus_update_sec"
	StatusUpdateSec = "status_update_sec"
)

// Store is a small key/value table in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Uint16 returns a stored value; ok is false when nothing is stored.
func (s *Store) Uint16(name string) (v uint16, ok bool, err error) {
	var raw int64
	err = s.db.QueryRow("SELECT value FROM bridge_settings WHERE name = ?", name).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if raw < 0 || raw > 0xFFFF {
		return 0, false, fmt.Errorf("store: %s out of range: %d", name, raw)
	}
	return uint16(raw), true, nil
}

// SetUint16 stores a value, replacing any previous one.
func (s *Store) SetUint16(name string, v uint16) error {
	_, err := s.db.Exec(
		"INSERT INTO bridge_settings (name, value) VALUES (?, ?) "+
			"ON CONFLICT(name) DO UPDATE SET value = excluded.value",
		name,
		int64(v),
	)
	return err
}
