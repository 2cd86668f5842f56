// Package storage is the persistence gateway for the portal: a
// sqlite-backed key-value store holding the user list, the recovery
// token list and the single current-session slot as JSON documents
// under fixed keys. Collections are replaced whole on save; there are
// no partial updates at the storage level.
package storage

import (
	"database/sql"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/UniPortal-io/uniportal/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

const (
	keyUsers   = "uniportal_users"
	keyTokens  = "uniportal_tokens"
	keySession = "uniportal_session"
)

// Store is the key-value persistence gateway. A store without a
// backend is in degraded mode: reads return empty, writes are no-ops.
type Store struct {
	mu  sync.Mutex
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the sqlite database at path and seeds the
// default dataset on first run. When the backend cannot be opened the
// returned store runs in degraded mode rather than failing.
func Open(path string) *Store {
	s := &Store{now: time.Now}

	db, err := sql.Open("sqlite3", path)
	if err == nil {
		err = db.Ping()
	}
	if err == nil {
		err = initTables(db)
	}
	if err != nil {
		log.Printf("storage: no backend available at %s, running degraded: %v", path, err)
		return s
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s.db = db
	s.seed()
	return s
}

// Disabled returns a store with no backend, for non-interactive
// contexts where persistence is unavailable.
func Disabled() *Store {
	return &Store{now: time.Now}
}

// SetClock overrides the store's time source, used by tests that
// simulate session expiry.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Available reports whether a persistence backend is attached.
func (s *Store) Available() bool {
	return s.db != nil
}

func initTables(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS records (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	return err
}

func (s *Store) getRaw(key string) ([]byte, bool) {
	if s.db == nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var value string
	err := s.db.QueryRow("SELECT value FROM records WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		log.Printf("storage: reading %s: %v", key, err)
		return nil, false
	}
	return []byte(value), true
}

func (s *Store) putRaw(key string, value []byte) {
	if s.db == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT INTO records (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, string(value),
	)
	if err != nil {
		log.Printf("storage: writing %s: %v", key, err)
	}
}

func (s *Store) deleteRaw(key string) {
	if s.db == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM records WHERE key = ?", key); err != nil {
		log.Printf("storage: deleting %s: %v", key, err)
	}
}

func (s *Store) hasKey(key string) bool {
	_, ok := s.getRaw(key)
	return ok
}

// Users returns the stored user collection.
func (s *Store) Users() []models.User {
	data, ok := s.getRaw(keyUsers)
	if !ok {
		return nil
	}
	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		log.Printf("storage: decoding users: %v", err)
		return nil
	}
	return users
}

// SaveUsers replaces the stored user collection.
func (s *Store) SaveUsers(users []models.User) {
	data, err := json.Marshal(users)
	if err != nil {
		log.Printf("storage: encoding users: %v", err)
		return
	}
	s.putRaw(keyUsers, data)
}

// Tokens returns the stored recovery-token collection.
func (s *Store) Tokens() []models.RecoveryToken {
	data, ok := s.getRaw(keyTokens)
	if !ok {
		return nil
	}
	var tokens []models.RecoveryToken
	if err := json.Unmarshal(data, &tokens); err != nil {
		log.Printf("storage: decoding tokens: %v", err)
		return nil
	}
	return tokens
}

// SaveTokens replaces the stored recovery-token collection.
func (s *Store) SaveTokens(tokens []models.RecoveryToken) {
	data, err := json.Marshal(tokens)
	if err != nil {
		log.Printf("storage: encoding tokens: %v", err)
		return
	}
	s.putRaw(keyTokens, data)
}

// Session returns the current session, or nil when none is stored.
// An expired session is deleted and reported as absent.
func (s *Store) Session() *models.Session {
	data, ok := s.getRaw(keySession)
	if !ok {
		return nil
	}
	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		log.Printf("storage: decoding session: %v", err)
		return nil
	}
	if models.Expired(session.ExpiresAt, s.now()) {
		s.deleteRaw(keySession)
		return nil
	}
	return &session
}

// SaveSession stores the current session, replacing any previous one.
func (s *Store) SaveSession(session models.Session) {
	data, err := json.Marshal(session)
	if err != nil {
		log.Printf("storage: encoding session: %v", err)
		return
	}
	s.putRaw(keySession, data)
}

// ClearSession removes the current session.
func (s *Store) ClearSession() {
	s.deleteRaw(keySession)
}

// Reset clears all three collections and re-seeds the default dataset.
func (s *Store) Reset() {
	s.deleteRaw(keyUsers)
	s.deleteRaw(keyTokens)
	s.deleteRaw(keySession)
	s.seed()
}

// FindUserByEmail returns a copy of the user with the given email,
// compared case-insensitively, or nil when no user matches.
func (s *Store) FindUserByEmail(email string) *models.User {
	email = strings.TrimSpace(email)
	for _, u := range s.Users() {
		if strings.EqualFold(u.Email, email) {
			user := u
			return &user
		}
	}
	return nil
}

// UpdateUser applies mutate to the user with the given email and saves
// the collection. Reports whether a user matched.
func (s *Store) UpdateUser(email string, mutate func(*models.User)) bool {
	users := s.Users()
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			mutate(&users[i])
			s.SaveUsers(users)
			return true
		}
	}
	return false
}
