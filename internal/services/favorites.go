package services

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"ecommerce-storefront-platform/internal/models"
	"ecommerce-storefront-platform/internal/storage"
)

const favoritesKey = "favorites"

// FavoritesService maintains the user's wishlist: a deduplicated set of
// product snapshots, keyed by product id, kept entirely on this device.
// Nothing here talks to the backend. The full collection is re-serialized to
// storage on every change and loaded once at construction; a corrupt payload
// is treated as an empty set rather than an error.
type FavoritesService struct {
	mu     sync.Mutex
	store  *storage.Store
	logger *zap.Logger
	items  []models.Product
}

// NewFavoritesService loads any persisted favorites from store
func NewFavoritesService(store *storage.Store, logger *zap.Logger) *FavoritesService {
	s := &FavoritesService{
		store:  store,
		logger: logger,
		items:  []models.Product{},
	}

	raw, err := store.Get(favoritesKey)
	if err != nil {
		if err != storage.ErrKeyNotFound {
			logger.Warn("failed to load favorites", zap.Error(err))
		}
		return s
	}

	var items []models.Product
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Warn("discarding corrupt favorites payload", zap.Error(err))
		return s
	}
	if items != nil {
		s.items = items
	}
	return s
}

// List returns the favorites in insertion order
func (s *FavoritesService) List() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Product, len(s.items))
	copy(out, s.items)
	return out
}

// Add appends the product snapshot; adding an already-favorited product is a
// no-op.
func (s *FavoritesService) Add(product models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing.ID == product.ID {
			return nil
		}
	}
	s.items = append(s.items, product)
	return s.persist()
}

// Remove drops the product with the given id; removing an unknown id is a
// no-op.
func (s *FavoritesService) Remove(productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != productID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(s.items) {
		return nil
	}
	s.items = kept
	return s.persist()
}

// IsFavorite reports membership by product id
func (s *FavoritesService) IsFavorite(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.ID == productID {
			return true
		}
	}
	return false
}

// Clear empties the set
func (s *FavoritesService) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []models.Product{}
	return s.persist()
}

func (s *FavoritesService) persist() error {
	data, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("failed to serialize favorites: %w", err)
	}
	if err := s.store.Set(favoritesKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist favorites: %w", err)
	}
	return nil
}
