package services

import (
	"go.uber.org/zap"

	"ecommerce-storefront-platform/internal/storage"
)

const cartOpenKey = "cart_open"

// Preferences persists small UI flags across restarts, under their own
// storage keys so they never mix with favorites or credentials.
type Preferences struct {
	store  *storage.Store
	logger *zap.Logger
}

// NewPreferences creates the preferences accessor
func NewPreferences(store *storage.Store, logger *zap.Logger) *Preferences {
	return &Preferences{store: store, logger: logger}
}

// CartOpen reports whether the cart panel was left open last session
func (p *Preferences) CartOpen() bool {
	value, err := p.store.Get(cartOpenKey)
	if err != nil {
		return false
	}
	return value == "true"
}

// SetCartOpen records the cart panel state
func (p *Preferences) SetCartOpen(open bool) {
	value := "false"
	if open {
		value = "true"
	}
	if err := p.store.Set(cartOpenKey, value); err != nil {
		p.logger.Warn("failed to persist cart panel state", zap.Error(err))
	}
}
