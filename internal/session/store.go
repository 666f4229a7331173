package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kanishkm/recyclit/internal/logger"
	"github.com/kanishkm/recyclit/internal/models"
)

var ErrIncompleteSession = errors.New("session needs both a user and a token")

// Store holds the authenticated identity for the running client. The
// zero session means logged out; Login and Logout are the only
// mutators, so user and token can never be half-set.
//
// With a file path the session survives restarts. Anything suspect on
// disk (unreadable JSON, a half-set record, an expired token) is
// discarded and treated as logged out.
type Store struct {
	mu      sync.RWMutex
	current models.Session
	file    string
	log     *logger.Logger
}

// NewStore creates a store persisting to file, or purely in-memory
// when file is empty.
func NewStore(file string) *Store {
	return &Store{
		file: file,
		log:  logger.New("session"),
	}
}

// Current returns the session as of this call. Fetches read it again
// after they resolve to detect that it changed while they were in
// flight.
func (s *Store) Current() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Login installs an authenticated session and persists it.
func (s *Store) Login(user models.User, token string) error {
	sess := models.NewSession(user, token)
	if !sess.Authenticated() {
		return ErrIncompleteSession
	}
	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	s.persist(sess)
	return nil
}

// Logout clears the session and removes any persisted copy.
func (s *Store) Logout() {
	s.mu.Lock()
	s.current = models.Session{}
	s.mu.Unlock()
	if s.file != "" {
		if err := os.Remove(s.file); err != nil && !os.IsNotExist(err) {
			s.log.Warn("failed to remove session file: %v", err)
		}
	}
}

type persistedSession struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Load restores a previously persisted session. Missing, corrupt,
// half-set, or expired records all resolve to logged out; the stale
// file is removed so the next run starts clean.
func (s *Store) Load() {
	if s.file == "" {
		return
	}

	raw, err := os.ReadFile(s.file)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("failed to read session file: %v", err)
		}
		return
	}

	var saved persistedSession
	if err := json.Unmarshal(raw, &saved); err != nil {
		s.log.Warn("discarding corrupt session file: %v", err)
		s.discard()
		return
	}
	if saved.User == nil || saved.User.ID == "" || saved.Token == "" {
		s.log.Warn("discarding half-set session file")
		s.discard()
		return
	}
	if tokenExpired(saved.Token) {
		s.log.Info("stored token expired, logging out")
		s.discard()
		return
	}

	s.mu.Lock()
	s.current = models.NewSession(*saved.User, saved.Token)
	s.mu.Unlock()
}

func (s *Store) discard() {
	if err := os.Remove(s.file); err != nil && !os.IsNotExist(err) {
		s.log.Warn("failed to remove session file: %v", err)
	}
}

func (s *Store) persist(sess models.Session) {
	if s.file == "" {
		return
	}

	raw, err := json.Marshal(persistedSession{User: sess.User, Token: sess.Token})
	if err != nil {
		s.log.Warn("failed to encode session: %v", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.file), 0o700); err != nil {
		s.log.Warn("failed to create session dir: %v", err)
		return
	}
	if err := os.WriteFile(s.file, raw, 0o600); err != nil {
		s.log.Warn("failed to write session file: %v", err)
	}
}

// tokenExpired inspects the token's exp claim without verifying the
// signature; the backend is the authority on validity, this only
// avoids restoring a session the backend is guaranteed to reject.
// Tokens that don't parse or carry no exp claim are let through.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
