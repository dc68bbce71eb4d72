package api

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenFileName is the fixed key the access token persists under inside
// the config directory, mirroring the dashboard's single stored
// credential.
const TokenFileName = "planbrew_token"

// State is an authentication-state value.
type State int

const (
	// StateUnknown is the documented initial value: the stored token has
	// not been looked at yet. Only the zero Session reports it.
	StateUnknown State = iota
	StateSignedOut
	StateSignedIn
)

func (s State) String() string {
	switch s {
	case StateSignedIn:
		return "signed-in"
	case StateSignedOut:
		return "signed-out"
	default:
		return "unknown"
	}
}

// Session is the explicit session-context object holding the single
// access token. There are exactly two mutation points — login calls Set,
// logout calls Clear — and every gateway call reads Current. Reads are
// guarded because bubbletea commands run off the update loop.
//
// Subscribers observe authentication-state transitions; each Subscribe
// returns its own cancellation handle.
type Session struct {
	mu     sync.RWMutex
	token  string
	path   string
	loaded bool

	subs    map[int]chan State
	nextSub int
}

// NewSession loads any persisted token from the file under dir. A missing
// file simply means signed out.
func NewSession(dir string) (*Session, error) {
	s := &Session{
		path: filepath.Join(dir, TokenFileName),
		subs: make(map[int]chan State),
	}

	b, err := os.ReadFile(s.path)
	switch {
	case err == nil:
		s.token = strings.TrimSpace(string(b))
	case os.IsNotExist(err):
		// signed out
	default:
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}
	s.loaded = true
	return s, nil
}

// Current returns the stored access token, or "" when signed out.
func (s *Session) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// State returns the current authentication state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	switch {
	case !s.loaded:
		return StateUnknown
	case s.token == "":
		return StateSignedOut
	default:
		return StateSignedIn
	}
}

// Set stores the token and persists it under the fixed key with 0600
// permissions. Sign-in is one of the two mutation points.
func (s *Session) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	s.token = token
	s.loaded = true
	s.notifyLocked()
	return nil
}

// Clear discards the token, in memory and on disk. Used at sign-out and
// to silently drop an invalid stored token.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	s.token = ""
	s.loaded = true
	s.notifyLocked()
	return nil
}

// Subscribe returns a stream of authentication-state values. The current
// state is delivered immediately, then every transition. The returned
// cancel func releases the subscription; each subscriber holds exactly
// one.
func (s *Session) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++

	ch := make(chan State, 4)
	ch <- s.stateLocked()
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (s *Session) notifyLocked() {
	state := s.stateLocked()
	for _, ch := range s.subs {
		select {
		case ch <- state:
		default:
			// A subscriber that stopped draining misses transitions
			// rather than blocking the writer.
		}
	}
}
