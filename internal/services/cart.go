package services

import (
	"context"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"ecommerce-storefront-platform/internal/api"
	"ecommerce-storefront-platform/internal/auth"
	"ecommerce-storefront-platform/internal/models"
)

// cartEnvelope is the response shape of every cart endpoint
type cartEnvelope struct {
	Success bool        `json:"success"`
	Data    models.Cart `json:"data"`
}

type cartCountEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		Count int `json:"count"`
	} `json:"data"`
}

// CartState is the client-held snapshot of the server-owned cart
type CartState struct {
	Items   []models.CartItem
	Summary models.CartSummary
	Loading bool
	Err     string
}

// CartService mirrors the current user's cart. It is constructed once at
// startup and shared by reference between every consumer (cart screen, cart
// badge, add-to-cart flows); all of them read the same state.
//
// The service never applies optimistic deltas: each successful call replaces
// items and summary wholesale with the server's returned truth. Responses
// carry a sequence number taken at issue time so a slow response can never
// overwrite the result of a request issued after it.
type CartService struct {
	client *api.Client
	creds  *auth.Credentials
	logger *zap.Logger

	mu      sync.Mutex
	state   CartState
	issued  uint64
	applied uint64
}

// NewCartService creates the shared cart store
func NewCartService(client *api.Client, creds *auth.Credentials, logger *zap.Logger) *CartService {
	return &CartService{
		client: client,
		creds:  creds,
		logger: logger,
		state:  emptyCartState(),
	}
}

func emptyCartState() CartState {
	return CartState{Items: []models.CartItem{}}
}

// State returns a snapshot of the current cart state
func (s *CartService) State() CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state
	snapshot.Items = make([]models.CartItem, len(s.state.Items))
	copy(snapshot.Items, s.state.Items)
	return snapshot
}

// FetchCart loads the cart from the backend. Without a credential it resets
// the state to an empty cart and makes no network call; an anonymous visitor
// simply has no cart, which is not an error.
func (s *CartService) FetchCart(ctx context.Context) error {
	if !s.creds.IsAuthenticated() {
		s.Reset()
		return nil
	}

	seq := s.begin()
	var envelope cartEnvelope
	err := s.client.Get(ctx, "/cart", &envelope, api.BypassCache())
	return s.adopt(seq, envelope.Data, err, "Failed to load cart")
}

// AddToCart adds quantity units of a product. Quantity is clamped into
// [1, 99] before the request; zero resolves to 1.
func (s *CartService) AddToCart(ctx context.Context, productID, quantity int) error {
	if err := s.requireAuth("Please log in to add items to cart"); err != nil {
		return err
	}

	req := &models.AddToCartRequest{
		ProductID: productID,
		Quantity:  models.ClampQuantity(quantity),
	}

	seq := s.begin()
	var envelope cartEnvelope
	err := s.client.Post(ctx, "/cart", req, &envelope)
	s.invalidateCartCache()
	return s.adopt(seq, envelope.Data, err, "Failed to add item to cart")
}

// UpdateCartItem changes the quantity of an existing cart line
func (s *CartService) UpdateCartItem(ctx context.Context, itemID, quantity int) error {
	if err := s.requireAuth("Please log in to update your cart"); err != nil {
		return err
	}

	req := &models.UpdateCartItemRequest{Quantity: models.ClampQuantity(quantity)}

	seq := s.begin()
	var envelope cartEnvelope
	err := s.client.Put(ctx, cartItemPath(itemID), req, &envelope)
	s.invalidateCartCache()
	return s.adopt(seq, envelope.Data, err, "Failed to update cart item")
}

// RemoveFromCart deletes one cart line
func (s *CartService) RemoveFromCart(ctx context.Context, itemID int) error {
	if err := s.requireAuth("Please log in to update your cart"); err != nil {
		return err
	}

	seq := s.begin()
	var envelope cartEnvelope
	err := s.client.Delete(ctx, cartItemPath(itemID), &envelope)
	s.invalidateCartCache()
	return s.adopt(seq, envelope.Data, err, "Failed to remove item from cart")
}

// ClearCart empties the cart. Clearing an already empty cart succeeds.
func (s *CartService) ClearCart(ctx context.Context) error {
	if err := s.requireAuth("Please log in to update your cart"); err != nil {
		return err
	}

	seq := s.begin()
	var envelope cartEnvelope
	err := s.client.Delete(ctx, "/cart", &envelope)
	s.invalidateCartCache()
	return s.adopt(seq, envelope.Data, err, "Failed to clear cart")
}

// CartCount returns the number of units in the cart (summed quantities).
// Any failure yields 0 silently; a badge is not worth an error banner.
func (s *CartService) CartCount(ctx context.Context) int {
	if !s.creds.IsAuthenticated() {
		return 0
	}

	var envelope cartCountEnvelope
	if err := s.client.Get(ctx, "/cart/count", &envelope, api.BypassCache()); err != nil {
		s.logger.Warn("cart count unavailable", zap.Error(err))
		return 0
	}
	return envelope.Data.Count
}

// Reset drops the state back to an empty cart. Called on logout and when the
// credential is absent; in-flight responses issued before the reset are
// discarded when they arrive.
func (s *CartService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = emptyCartState()
	s.applied = s.issued
}

// begin allocates a sequence number for a new request and raises Loading
func (s *CartService) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	s.state.Loading = true
	return s.issued
}

// adopt applies the outcome of the request with the given sequence number.
// A response older than the last applied one is dropped so overlapping calls
// cannot resolve out of order; the caller still gets its error back.
func (s *CartService) adopt(seq uint64, cart models.Cart, err error, fallback string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq == s.issued {
		s.state.Loading = false
	}
	if seq <= s.applied {
		s.logger.Debug("dropping stale cart response", zap.Uint64("seq", seq))
		return err
	}
	s.applied = seq

	if err != nil {
		s.state.Err = errorMessage(err, fallback)
		return err
	}

	items := cart.Items
	if items == nil {
		items = []models.CartItem{}
	}
	s.state.Items = items
	s.state.Summary = cart.Summary
	s.state.Err = ""
	return nil
}

// requireAuth gates mutating operations: without a credential the call fails
// with an authentication error and performs no network call.
func (s *CartService) requireAuth(message string) error {
	if s.creds.IsAuthenticated() {
		return nil
	}

	s.mu.Lock()
	s.state.Err = message
	s.mu.Unlock()

	return &api.Error{Kind: api.KindUnauthenticated, Message: message}
}

// invalidateCartCache drops any cached cart reads after a mutation. Cart GETs
// bypass the cache, but other readers sharing the client must not see a stale
// cart either.
func (s *CartService) invalidateCartCache() {
	s.client.Invalidate("/cart", "/cart/count")
}

func cartItemPath(itemID int) string {
	return "/cart/" + strconv.Itoa(itemID)
}

// errorMessage picks the user-facing message for a failed store operation:
// messages the backend addressed to the user pass through, transport and
// server faults collapse to the operation's generic message.
func errorMessage(err error, fallback string) string {
	switch api.ErrorKind(err) {
	case api.KindUnauthenticated, api.KindForbidden, api.KindNotFound, api.KindValidation:
		return err.Error()
	default:
		return fallback
	}
}
