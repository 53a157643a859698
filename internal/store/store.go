// Package store is the durable local state of the client: session
// credentials, viewer preferences, the last good menu snapshot per language
// and the recorded change history. It stands in for the browser local
// storage of the original web client.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/agusnoopy3000/Carta-QR/internal/models"
)

const credentialsKey = "adminAuth"

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS snapshots (
			language TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			fetched_at DATETIME NOT NULL
		);
		CREATE TABLE IF NOT EXISTS change_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			data TEXT NOT NULL,
			recorded_at DATETIME NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initialising store schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Setting(key string) (string, bool) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", false
	}
	return value, true
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) DeleteSetting(key string) error {
	_, err := s.db.Exec(`DELETE FROM settings WHERE key = ?`, key)
	return err
}

// Credentials returns the persisted encoded Basic pair, if any.
func (s *Store) Credentials() (string, bool) {
	return s.Setting(credentialsKey)
}

func (s *Store) SaveCredentials(encoded string) error {
	return s.SetSetting(credentialsKey, encoded)
}

func (s *Store) ClearCredentials() error {
	return s.DeleteSetting(credentialsKey)
}

// SaveSnapshot replaces the cached snapshot for a language.
func (s *Store) SaveSnapshot(language string, snapshot *models.MenuSnapshot, fetchedAt time.Time) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO snapshots (language, data, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(language) DO UPDATE SET data = excluded.data, fetched_at = excluded.fetched_at`,
		language, string(data), fetchedAt,
	)
	return err
}

// Snapshot loads the cached snapshot for a language. maxAge of zero accepts
// any age; older entries are reported as absent but kept on disk.
func (s *Store) Snapshot(language string, maxAge time.Duration) (*models.MenuSnapshot, time.Time, bool) {
	var data string
	var fetchedAt time.Time
	err := s.db.QueryRow(
		`SELECT data, fetched_at FROM snapshots WHERE language = ?`, language,
	).Scan(&data, &fetchedAt)
	if err != nil {
		return nil, time.Time{}, false
	}
	if maxAge > 0 && time.Since(fetchedAt) > maxAge {
		return nil, time.Time{}, false
	}

	var snapshot models.MenuSnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, time.Time{}, false
	}
	return &snapshot, fetchedAt, true
}

// AppendChange records one serialized change event.
func (s *Store) AppendChange(data []byte, recordedAt time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO change_log (data, recorded_at) VALUES (?, ?)`,
		string(data), recordedAt,
	)
	return err
}

// RecentChanges returns up to limit serialized change events, newest first.
func (s *Store) RecentChanges(limit int) ([][]byte, error) {
	rows, err := s.db.Query(
		`SELECT data FROM change_log ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out [][]byte
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		out = append(out, []byte(data))
	}
	return out, rows.Err()
}
