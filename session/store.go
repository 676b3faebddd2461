package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyUsername   = errors.New("username is required")
	ErrInvalidPassword = errors.New("invalid password")
)

// Session is the per-client authentication state. The zero UserID means
// the client has not logged in.
type Session struct {
	ID        string
	UserID    string
	IsAdmin   bool
	ExpiresAt time.Time
}

// Store keeps sessions in memory, keyed by their opaque token. Expired
// sessions are dropped lazily on lookup and in bulk by Sweep.
type Store struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	ttl         time.Duration
	adminSecret string
	now         func() time.Time
}

func NewStore(ttl time.Duration, adminSecret string) *Store {
	return &Store{
		sessions:    make(map[string]*Session),
		ttl:         ttl,
		adminSecret: adminSecret,
		now:         time.Now,
	}
}

// GetOrCreate resolves a client token to its session, creating a fresh
// unauthenticated one when the token is empty, unknown, or expired. The
// second return value reports whether a new session was created, in which
// case the caller must hand the new id back to the client.
func (s *Store) GetOrCreate(token string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != "" {
		if sess, ok := s.sessions[token]; ok {
			if s.now().Before(sess.ExpiresAt) {
				return *sess, false
			}
			delete(s.sessions, token)
		}
	}

	sess := &Session{
		ID:        uuid.NewString(),
		ExpiresAt: s.now().Add(s.ttl),
	}
	s.sessions[sess.ID] = sess
	return *sess, true
}

// Get returns the session for a token if it exists and has not expired.
func (s *Store) Get(token string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[token]
	if !ok || s.now().After(sess.ExpiresAt) {
		return Session{}, false
	}
	return *sess, true
}

// LoginUser sets the session's user id to the trimmed username. Fails if
// the username is empty or whitespace.
func (s *Store) LoginUser(token, username string) (string, error) {
	userID := strings.TrimSpace(username)
	if userID == "" {
		return "", ErrEmptyUsername
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.session(token).UserID = userID
	return userID, nil
}

// LoginAdmin marks the session as admin when the password matches the
// configured secret.
func (s *Store) LoginAdmin(token, password string) error {
	if password != s.adminSecret {
		return ErrInvalidPassword
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(token)
	sess.IsAdmin = true
	sess.UserID = "admin"
	return nil
}

// Logout destroys the session record. The token behaves as a new
// unauthenticated session on the next request.
func (s *Store) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
}

// Sweep drops all expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for token, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

// session returns the live record for a token, resurrecting it under the
// same token if it expired between middleware resolution and the handler.
// Caller must hold the write lock.
func (s *Store) session(token string) *Session {
	sess, ok := s.sessions[token]
	if !ok || s.now().After(sess.ExpiresAt) {
		sess = &Session{ID: token, ExpiresAt: s.now().Add(s.ttl)}
		s.sessions[token] = sess
	}
	return sess
}
