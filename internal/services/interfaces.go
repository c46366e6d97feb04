package services

import (
	"context"

	"ecommerce-storefront-platform/internal/models"
)

var (
	_ CartServiceInterface      = (*CartService)(nil)
	_ FavoritesServiceInterface = (*FavoritesService)(nil)
	_ CatalogServiceInterface   = (*CatalogService)(nil)
	_ AuthServiceInterface      = (*AuthService)(nil)
	_ DashboardServiceInterface = (*DashboardService)(nil)
)

// CartServiceInterface defines the interface for the shared cart store
type CartServiceInterface interface {
	State() CartState
	FetchCart(ctx context.Context) error
	AddToCart(ctx context.Context, productID, quantity int) error
	UpdateCartItem(ctx context.Context, itemID, quantity int) error
	RemoveFromCart(ctx context.Context, itemID int) error
	ClearCart(ctx context.Context) error
	CartCount(ctx context.Context) int
	Reset()
}

// FavoritesServiceInterface defines the interface for the local favorites set
type FavoritesServiceInterface interface {
	List() []models.Product
	Add(product models.Product) error
	Remove(productID int) error
	IsFavorite(productID int) bool
	Clear() error
}

// CatalogServiceInterface defines the interface for catalog reads
type CatalogServiceInterface interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int) (*models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id int) (*models.Category, error)
	TopRated(ctx context.Context) ([]models.Product, error)
	LatestSale(ctx context.Context) ([]models.Product, error)
	ProductRatings(ctx context.Context, productID int) ([]models.Rating, error)
	RatingStats(ctx context.Context, productID int) (*models.RatingStats, error)
	UserRating(ctx context.Context, productID int) (*models.Rating, error)
	SubmitRating(ctx context.Context, req *models.RatingRequest) (*models.Rating, error)
	DeleteRating(ctx context.Context, ratingID int) error
}

// AuthServiceInterface defines the interface for session management
type AuthServiceInterface interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, error)
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Logout(ctx context.Context)
	CurrentUser(ctx context.Context) (*models.User, error)
}

// DashboardServiceInterface defines the interface for the admin CRUD screens
type DashboardServiceInterface interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id int) (*models.User, error)
	CreateUser(ctx context.Context, req *models.UserCreateRequest) (*models.User, error)
	UpdateUser(ctx context.Context, id int, req *models.UserUpdateRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id int) error

	CreateProduct(ctx context.Context, req *models.ProductCreateRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int, req *models.ProductCreateRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int) error

	CreateCategory(ctx context.Context, req *models.CategoryCreateRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, id int, req *models.CategoryCreateRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int) error
}
