package services

import (
	"context"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"ecommerce-storefront-platform/internal/api"
	"ecommerce-storefront-platform/internal/models"
)

// CatalogService is the read-side client for the public catalog endpoints.
// Responses go through the shared GET cache; the catalog changes rarely and
// is the same for every visitor.
type CatalogService struct {
	client *api.Client
	logger *zap.Logger
}

// NewCatalogService creates a catalog client
func NewCatalogService(client *api.Client, logger *zap.Logger) *CatalogService {
	return &CatalogService{client: client, logger: logger}
}

// ListProducts returns the full catalog
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.client.Get(ctx, "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct returns one product by id
func (s *CatalogService) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	if err := s.client.Get(ctx, "/product/"+strconv.Itoa(id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListCategories returns all categories
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.client.Get(ctx, "/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory returns one category by id
func (s *CatalogService) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	var category models.Category
	if err := s.client.Get(ctx, "/category/"+strconv.Itoa(id), &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// TopRated returns the products the backend ranks highest
func (s *CatalogService) TopRated(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.client.Get(ctx, "/top-rated", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// LatestSale returns the products currently on sale
func (s *CatalogService) LatestSale(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.client.Get(ctx, "/latest-sale", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ProductRatings returns every rating left on a product
func (s *CatalogService) ProductRatings(ctx context.Context, productID int) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := s.client.Get(ctx, "/product/"+strconv.Itoa(productID)+"/ratings", &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}

// RatingStats returns the aggregate rating for a product
func (s *CatalogService) RatingStats(ctx context.Context, productID int) (*models.RatingStats, error) {
	var stats models.RatingStats
	if err := s.client.Get(ctx, "/product/"+strconv.Itoa(productID)+"/rating-stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// UserRating returns the signed-in user's rating of a product, bypassing the
// cache: the value is per-user, not shared.
func (s *CatalogService) UserRating(ctx context.Context, productID int) (*models.Rating, error) {
	var rating models.Rating
	err := s.client.Get(ctx, "/product/"+strconv.Itoa(productID)+"/user-rating", &rating, api.BypassCache())
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// SubmitRating creates or replaces the user's rating of a product
func (s *CatalogService) SubmitRating(ctx context.Context, req *models.RatingRequest) (*models.Rating, error) {
	var rating models.Rating
	if err := s.client.Post(ctx, "/rating", req, &rating); err != nil {
		return nil, err
	}
	s.invalidateProductCache(req.ProductID)
	return &rating, nil
}

// DeleteRating removes a rating by id
func (s *CatalogService) DeleteRating(ctx context.Context, ratingID int) error {
	if err := s.client.Delete(ctx, "/rating/"+strconv.Itoa(ratingID), nil); err != nil {
		return err
	}
	s.client.Invalidate("/top-rated")
	return nil
}

func (s *CatalogService) invalidateProductCache(productID int) {
	id := strconv.Itoa(productID)
	s.client.Invalidate(
		"/product/"+id+"/ratings",
		"/product/"+id+"/rating-stats",
		"/top-rated",
	)
}

// SortOrder names the supported product orderings
type SortOrder string

const (
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
	SortNewest    SortOrder = "newest"
)

// FilterByCategory returns the products belonging to category
func FilterByCategory(products []models.Product, category string) []models.Product {
	if category == "" {
		return products
	}
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// SortProducts returns a sorted copy of products
func SortProducts(products []models.Product, order SortOrder) []models.Product {
	sorted := make([]models.Product, len(products))
	copy(sorted, products)

	switch order {
	case SortPriceAsc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })
	case SortPriceDesc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price > sorted[j].Price })
	case SortNewest:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })
	}
	return sorted
}

// Paginate returns the page-th slice of products (1-based) with perPage items
func Paginate(products []models.Product, page, perPage int) []models.Product {
	if page < 1 || perPage < 1 {
		return []models.Product{}
	}
	start := (page - 1) * perPage
	if start >= len(products) {
		return []models.Product{}
	}
	end := start + perPage
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}
