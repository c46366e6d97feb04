package services

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"ecommerce-storefront-platform/internal/api"
	"ecommerce-storefront-platform/internal/auth"
	"ecommerce-storefront-platform/internal/models"
)

// loginResponse is the session payload returned by /login and /register
type loginResponse struct {
	Token string          `json:"token"`
	Role  models.UserRole `json:"role"`
	ID    int             `json:"id"`
}

// cartResetter is the slice of the cart store the auth flow needs: a login or
// logout changes whose cart the state mirrors, so the mirror must be dropped.
type cartResetter interface {
	Reset()
}

// AuthService manages the session: it exchanges credentials with the backend
// and keeps the local credential store and dependent state in sync.
type AuthService struct {
	client *api.Client
	creds  *auth.Credentials
	cart   cartResetter
	logger *zap.Logger
}

// NewAuthService creates the session manager
func NewAuthService(client *api.Client, creds *auth.Credentials, cart cartResetter, logger *zap.Logger) *AuthService {
	return &AuthService{client: client, creds: creds, cart: cart, logger: logger}
}

// Login signs the user in and persists the issued credential
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	var resp loginResponse
	if err := s.client.Post(ctx, "/login", req, &resp); err != nil {
		return nil, err
	}
	if err := s.creds.Set(resp.Token, resp.Role, resp.ID); err != nil {
		return nil, err
	}

	// Cached responses belong to the previous (anonymous) session
	s.client.ClearCache()
	s.cart.Reset()

	user, err := s.CurrentUser(ctx)
	if err != nil {
		s.logger.Warn("failed to load profile after login", zap.Error(err))
		return &models.User{ID: resp.ID, Role: resp.Role, Email: req.Email}, nil
	}
	return user, nil
}

// Register creates an account; the backend signs the new user in directly
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	var resp loginResponse
	if err := s.client.Post(ctx, "/register", req, &resp); err != nil {
		return nil, err
	}
	if err := s.creds.Set(resp.Token, resp.Role, resp.ID); err != nil {
		return nil, err
	}

	s.client.ClearCache()
	s.cart.Reset()

	user, err := s.CurrentUser(ctx)
	if err != nil {
		s.logger.Warn("failed to load profile after registration", zap.Error(err))
		return &models.User{ID: resp.ID, Role: resp.Role, Name: req.Name, Email: req.Email}, nil
	}
	return user, nil
}

// Logout ends the session. The backend call is best-effort: local state is
// cleared even when the server is unreachable.
func (s *AuthService) Logout(ctx context.Context) {
	if s.creds.IsAuthenticated() {
		if err := s.client.Get(ctx, "/logout", nil, api.BypassCache()); err != nil {
			s.logger.Warn("logout request failed", zap.Error(err))
		}
	}
	s.creds.Clear()
	s.cart.Reset()
	s.client.ClearCache()
}

// CurrentUser returns the signed-in user's profile
func (s *AuthService) CurrentUser(ctx context.Context) (*models.User, error) {
	userID := s.creds.UserID()
	if userID == 0 {
		return nil, &api.Error{Kind: api.KindUnauthenticated, Message: "not signed in"}
	}

	var user models.User
	err := s.client.Get(ctx, "/user/"+strconv.Itoa(userID), &user, api.BypassCache())
	if err != nil {
		return nil, err
	}
	return &user, nil
}
