// Package session is the single source of truth for "who is logged in and
// with what privilege". State lives in the encrypted session cookie, so it
// survives reloads within one browser profile and needs no server-side store.
package session

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Cookie keys, kept stable across releases.
const (
	tokenKey = "token"
	roleKey  = "role"
)

// Session is a snapshot of the persisted token/role pair. Zero value means
// unauthenticated. Role is set if and only if Token is set.
type Session struct {
	Token string
	Role  string
}

// Present reports whether a logged-in session exists.
func (s Session) Present() bool { return s.Token != "" }

// Username extracts the subject claim from the bearer token for display.
// The token stays opaque for authorization purposes; no signature check
// happens here, the remote API is the authority.
func (s Session) Username() string {
	if s.Token == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return ""
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}

// Store mutates and reads the session cookie. It owns the token/role pair;
// everything else in the app holds read access only.
type Store struct {
	logger *zap.Logger
}

func NewStore(logger *zap.Logger) *Store {
	return &Store{logger: logger}
}

// Login persists token and role together. A missing role (or token) makes
// the whole call a no-op: a half-valid session must never reach the cookie.
// Callers treat the no-op as such, not as an error.
func (st *Store) Login(c *gin.Context, token, role string) {
	if token == "" || role == "" {
		st.logger.Warn("Refusing to persist half-valid session",
			zap.Bool("has_token", token != ""),
			zap.Bool("has_role", role != ""),
		)
		return
	}

	s := sessions.Default(c)
	s.Set(tokenKey, token)
	s.Set(roleKey, role)
	if err := s.Save(); err != nil {
		st.logger.Error("Failed to save session", zap.Error(err))
	}
}

// Logout clears both fields unconditionally. Idempotent.
func (st *Store) Logout(c *gin.Context) {
	s := sessions.Default(c)
	s.Delete(tokenKey)
	s.Delete(roleKey)
	if err := s.Save(); err != nil {
		st.logger.Error("Failed to clear session", zap.Error(err))
	}
}

// Current is a pure read of the persisted pair. If the cookie somehow holds
// one field without the other, the whole session reads as empty rather than
// leaking a half-valid state.
func (st *Store) Current(c *gin.Context) Session {
	s := sessions.Default(c)

	token, _ := s.Get(tokenKey).(string)
	role, _ := s.Get(roleKey).(string)
	if token == "" || role == "" {
		return Session{}
	}

	return Session{Token: token, Role: role}
}
