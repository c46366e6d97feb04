package services

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"ecommerce-storefront-platform/internal/api"
	"ecommerce-storefront-platform/internal/auth"
	"ecommerce-storefront-platform/internal/models"
)

// DashboardService is the admin CRUD client behind the dashboard screens.
// Role rules mirror the backend: plain users get no dashboard at all, and
// managers may look at the users table but only admins may change it. The
// local role is checked before any request so an operation that is certain to
// be denied never leaves the process.
type DashboardService struct {
	client *api.Client
	creds  *auth.Credentials
	logger *zap.Logger
}

// NewDashboardService creates the dashboard client
func NewDashboardService(client *api.Client, creds *auth.Credentials, logger *zap.Logger) *DashboardService {
	return &DashboardService{client: client, creds: creds, logger: logger}
}

// ListUsers returns all accounts
func (s *DashboardService) ListUsers(ctx context.Context) ([]models.User, error) {
	if err := s.requireDashboard(); err != nil {
		return nil, err
	}
	var users []models.User
	if err := s.client.Get(ctx, "/users", &users, api.BypassCache()); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser returns one account by id
func (s *DashboardService) GetUser(ctx context.Context, id int) (*models.User, error) {
	if err := s.requireDashboard(); err != nil {
		return nil, err
	}
	var user models.User
	if err := s.client.Get(ctx, "/user/"+strconv.Itoa(id), &user, api.BypassCache()); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates an account. Admin only.
func (s *DashboardService) CreateUser(ctx context.Context, req *models.UserCreateRequest) (*models.User, error) {
	if err := s.requireUserManagement(); err != nil {
		return nil, err
	}
	var user models.User
	if err := s.client.Post(ctx, "/user/add", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser edits an account. Admin only.
func (s *DashboardService) UpdateUser(ctx context.Context, id int, req *models.UserUpdateRequest) (*models.User, error) {
	if err := s.requireUserManagement(); err != nil {
		return nil, err
	}
	var user models.User
	if err := s.client.Post(ctx, "/user/edit/"+strconv.Itoa(id), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an account. Admin only.
func (s *DashboardService) DeleteUser(ctx context.Context, id int) error {
	if err := s.requireUserManagement(); err != nil {
		return err
	}
	return s.client.Delete(ctx, "/user/"+strconv.Itoa(id), nil)
}

// CreateProduct adds a catalog product
func (s *DashboardService) CreateProduct(ctx context.Context, req *models.ProductCreateRequest) (*models.Product, error) {
	if err := s.requireDashboard(); err != nil {
		return nil, err
	}
	var product models.Product
	if err := s.client.Post(ctx, "/product/add", req, &product); err != nil {
		return nil, err
	}
	s.invalidateProductLists()
	return &product, nil
}

// UpdateProduct edits a catalog product
func (s *DashboardService) UpdateProduct(ctx context.Context, id int, req *models.ProductCreateRequest) (*models.Product, error) {
	if err := s.requireDashboard(); err != nil {
		return nil, err
	}
	var product models.Product
	if err := s.client.Post(ctx, "/product/edit/"+strconv.Itoa(id), req, &product); err != nil {
		return nil, err
	}
	s.invalidateProductLists("/product/" + strconv.Itoa(id))
	return &product, nil
}

// DeleteProduct removes a catalog product
func (s *DashboardService) DeleteProduct(ctx context.Context, id int) error {
	if err := s.requireDashboard(); err != nil {
		return err
	}
	if err := s.client.Delete(ctx, "/product/"+strconv.Itoa(id), nil); err != nil {
		return err
	}
	s.invalidateProductLists("/product/" + strconv.Itoa(id))
	return nil
}

// CreateCategory adds a category
func (s *DashboardService) CreateCategory(ctx context.Context, req *models.CategoryCreateRequest) (*models.Category, error) {
	if err := s.requireDashboard(); err != nil {
		return nil, err
	}
	var category models.Category
	if err := s.client.Post(ctx, "/category/add", req, &category); err != nil {
		return nil, err
	}
	s.client.Invalidate("/categories")
	return &category, nil
}

// UpdateCategory edits a category
func (s *DashboardService) UpdateCategory(ctx context.Context, id int, req *models.CategoryCreateRequest) (*models.Category, error) {
	if err := s.requireDashboard(); err != nil {
		return nil, err
	}
	var category models.Category
	if err := s.client.Post(ctx, "/category/edit/"+strconv.Itoa(id), req, &category); err != nil {
		return nil, err
	}
	s.client.Invalidate("/categories", "/category/"+strconv.Itoa(id))
	return &category, nil
}

// DeleteCategory removes a category
func (s *DashboardService) DeleteCategory(ctx context.Context, id int) error {
	if err := s.requireDashboard(); err != nil {
		return err
	}
	if err := s.client.Delete(ctx, "/category/"+strconv.Itoa(id), nil); err != nil {
		return err
	}
	s.client.Invalidate("/categories", "/category/"+strconv.Itoa(id))
	return nil
}

// requireDashboard rejects callers whose role has no dashboard access
func (s *DashboardService) requireDashboard() error {
	if !s.creds.IsAuthenticated() {
		return &api.Error{Kind: api.KindUnauthenticated, Message: "Please log in to access the dashboard"}
	}
	if !s.creds.Role().CanAccessDashboard() {
		return &api.Error{Kind: api.KindForbidden, Message: "operation not permitted"}
	}
	return nil
}

// requireUserManagement additionally rejects managers, who may view but not
// modify accounts
func (s *DashboardService) requireUserManagement() error {
	if err := s.requireDashboard(); err != nil {
		return err
	}
	if !s.creds.Role().CanManageUsers() {
		return &api.Error{Kind: api.KindForbidden, Message: "operation not permitted"}
	}
	return nil
}

func (s *DashboardService) invalidateProductLists(extra ...string) {
	paths := append([]string{"/products", "/latest-sale", "/top-rated"}, extra...)
	s.client.Invalidate(paths...)
}
