package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cousoworks/tech-store/internal/entity"
	"github.com/cousoworks/tech-store/internal/logging"
)

// SessionState distinguishes "not logged in" from "logged in, pending server
// confirmation" so callers can render the difference.
type SessionState int

const (
	// SessionAnonymous: no session at all.
	SessionAnonymous SessionState = iota
	// SessionRestoring: a persisted session is exposed optimistically and
	// has not yet been confirmed by the server.
	SessionRestoring
	// SessionActive: the server has accepted the token in this run.
	SessionActive
)

// SessionStore owns the authenticated identity and the bearer token. All
// mutations go through it; everything else only reads.
type SessionStore struct {
	mu      sync.RWMutex
	api     AuthAPI
	vault   SessionVault
	state   SessionState
	session entity.Session
}

func NewSessionStore(api AuthAPI, vault SessionVault) *SessionStore {
	return &SessionStore{api: api, vault: vault}
}

// Token implements the REST client's token source. Empty when anonymous.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == SessionAnonymous {
		return ""
	}
	return s.session.Token
}

func (s *SessionStore) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Current returns the session when one exists, optimistic or confirmed.
func (s *SessionStore) Current() (entity.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session, s.state != SessionAnonymous
}

// Authenticated reports whether a session exists. A restoring session
// counts: the UI treats it as signed in until the server says otherwise.
func (s *SessionStore) Authenticated() bool {
	_, ok := s.Current()
	return ok
}

// Login exchanges credentials for a session. On any failure the previous
// session, if there was one, stays untouched.
func (s *SessionStore) Login(ctx context.Context, email, password string) (entity.Session, error) {
	sess, err := s.api.Login(ctx, email, password)
	if err != nil {
		return entity.Session{}, classifyAPIError(err)
	}
	s.install(ctx, sess)
	return sess, nil
}

// Register validates the form locally, then creates the account. Validation
// failures never reach the network.
func (s *SessionStore) Register(ctx context.Context, form entity.RegisterForm) (entity.Session, error) {
	if err := validateRegisterForm(form); err != nil {
		return entity.Session{}, err
	}
	sess, err := s.api.Register(ctx, form.Email, strings.TrimSpace(form.Name), form.Surname, form.Password)
	if err != nil {
		return entity.Session{}, classifyAPIError(err)
	}
	s.install(ctx, sess)
	return sess, nil
}

func validateRegisterForm(form entity.RegisterForm) error {
	switch {
	case form.Password != form.ConfirmPassword:
		return &entity.ValidationError{Message: "passwords do not match"}
	case len(form.Password) < 6:
		return &entity.ValidationError{Message: "password must be at least 6 characters"}
	case !strings.Contains(form.Email, "@"):
		return &entity.ValidationError{Message: "enter a valid email"}
	case len(strings.TrimSpace(form.Name)) < 2:
		return &entity.ValidationError{Message: "name must be at least 2 characters"}
	}
	return nil
}

// install makes sess the active session and persists the pair. A vault
// write failure costs persistence across restarts, not the session itself.
func (s *SessionStore) install(ctx context.Context, sess entity.Session) {
	s.mu.Lock()
	s.session = sess
	s.state = SessionActive
	s.mu.Unlock()

	if err := s.vault.Save(sess); err != nil {
		logging.FromCtx(ctx).Warn("could not persist session", "error", err)
	}
}

// Logout unconditionally clears the session and the persisted pair.
func (s *SessionStore) Logout() {
	s.mu.Lock()
	s.session = entity.Session{}
	s.state = SessionAnonymous
	s.mu.Unlock()
	_ = s.vault.Clear()
}

// Restore loads the persisted session, if any, and exposes it optimistically
// without touching the network. It returns true when there is a session to
// revalidate. A stored JWT that is already past its expiry is discarded
// immediately instead of burning a round trip on a guaranteed 401.
func (s *SessionStore) Restore() bool {
	sess, err := s.vault.Load()
	if err != nil {
		return false
	}
	if tokenExpired(sess.Token) {
		_ = s.vault.Clear()
		return false
	}
	s.mu.Lock()
	s.session = sess
	s.state = SessionRestoring
	s.mu.Unlock()
	return true
}

// Revalidate confirms a restored session against the server. Rejection of
// the token forces a logout; a transport failure keeps the optimistic
// session so a flaky network does not sign the user out.
func (s *SessionStore) Revalidate(ctx context.Context) error {
	s.mu.RLock()
	state := s.state
	s.mu.RUnlock()
	if state == SessionAnonymous {
		return nil
	}

	user, err := s.api.Profile(ctx)
	if err != nil {
		if entity.IsStatus(err, 401, 403) {
			logging.FromCtx(ctx).Info("stored session rejected, signing out")
			s.Logout()
			return classifyAPIError(err)
		}
		return classifyAPIError(err)
	}

	s.mu.Lock()
	s.session.User = user
	s.state = SessionActive
	sess := s.session
	s.mu.Unlock()

	// Keep the persisted profile fresh; the token is unchanged.
	if err := s.vault.Save(sess); err != nil {
		logging.FromCtx(ctx).Warn("could not persist session", "error", err)
	}
	return nil
}

// tokenExpired peeks at the exp claim without verifying the signature; the
// client has no key material and does not need any. Opaque tokens and
// tokens without exp are assumed live and left to the server to judge.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
