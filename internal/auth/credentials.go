// Package auth holds the bearer credential for the current session. The token
// is an opaque string issued by the backend at login, persisted to local
// storage so a restart keeps the user signed in.
package auth

import (
	"errors"
	"strconv"
	"sync"

	"github.com/golang-jwt/jwt"
	"go.uber.org/zap"

	"ecommerce-storefront-platform/internal/models"
	"ecommerce-storefront-platform/internal/storage"
)

const (
	keyToken  = "bearer_token"
	keyRole   = "role"
	keyUserID = "current_user_id"
)

// Credentials stores the bearer token plus the role and user id the backend
// issued alongside it. It implements api.TokenSource.
type Credentials struct {
	mu     sync.RWMutex
	store  *storage.Store
	logger *zap.Logger

	token  string
	role   models.UserRole
	userID int
}

// NewCredentials loads any persisted session from store
func NewCredentials(store *storage.Store, logger *zap.Logger) *Credentials {
	c := &Credentials{store: store, logger: logger}

	token, err := store.Get(keyToken)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			logger.Warn("failed to load saved credential", zap.Error(err))
		}
		return c
	}
	c.token = token

	if role, err := store.Get(keyRole); err == nil {
		if code, err := strconv.Atoi(role); err == nil {
			c.role = models.UserRole(code)
		}
	}
	if id, err := store.Get(keyUserID); err == nil {
		if parsed, err := strconv.Atoi(id); err == nil {
			c.userID = parsed
		}
	}
	return c
}

// Token returns the current bearer token, or empty when signed out
func (c *Credentials) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// IsAuthenticated reports whether a credential is present
func (c *Credentials) IsAuthenticated() bool {
	return c.Token() != ""
}

// Role returns the role of the current session. When the token is a JWT the
// role claim wins over the stored value; opaque tokens fall back to the role
// persisted at login.
func (c *Credentials) Role() models.UserRole {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if role, ok := roleClaim(c.token); ok {
		return role
	}
	return c.role
}

// UserID returns the id of the signed-in user, or 0
func (c *Credentials) UserID() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

// Set persists a new session
func (c *Credentials) Set(token string, role models.UserRole, userID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Set(keyToken, token); err != nil {
		return err
	}
	if err := c.store.Set(keyRole, strconv.Itoa(int(role))); err != nil {
		return err
	}
	if err := c.store.Set(keyUserID, strconv.Itoa(userID)); err != nil {
		return err
	}

	c.token = token
	c.role = role
	c.userID = userID
	return nil
}

// Clear forgets the session in memory and storage. Used at logout and by the
// 401 handler.
func (c *Credentials) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range []string{keyToken, keyRole, keyUserID} {
		if err := c.store.Delete(key); err != nil {
			c.logger.Warn("failed to clear credential", zap.String("key", key), zap.Error(err))
		}
	}
	c.token = ""
	c.role = 0
	c.userID = 0
}

// roleClaim extracts the role claim from a JWT without verifying the
// signature. Verification belongs to the backend; the client only needs the
// claim to gate dashboard screens before a request is made.
func roleClaim(token string) (models.UserRole, bool) {
	if token == "" {
		return 0, false
	}
	claims := jwt.MapClaims{}
	parser := new(jwt.Parser)
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return 0, false
	}
	code, ok := claims["role"].(float64)
	if !ok {
		return 0, false
	}
	role := models.UserRole(int(code))
	if !role.IsValid() {
		return 0, false
	}
	return role, true
}
