package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ecommerce-storefront-platform/internal/api"
	"ecommerce-storefront-platform/internal/auth"
	"ecommerce-storefront-platform/internal/models"
	"ecommerce-storefront-platform/internal/storage"
)

const testToken = "test-token"

// stubBackend is an in-process stand-in for the remote storefront API. It
// owns the authoritative cart, computes summaries server-side, and records
// every request so tests can assert exactly which calls were made.
type stubBackend struct {
	t      *testing.T
	server *httptest.Server

	mu            sync.Mutex
	requests      []string
	items         []models.CartItem
	nextItemID    int
	forcedSummary *models.CartSummary
	forcedStatus  map[string]int
	products      []models.Product
	categories    []models.Category
	users         map[int]models.User
	ratings       map[int]models.Rating
	nextRatingID  int
	loginRole     models.UserRole
	loginUserID   int
}

func newStubBackend(t *testing.T) *stubBackend {
	b := &stubBackend{
		t:            t,
		nextItemID:   1,
		nextRatingID: 1,
		forcedStatus: map[string]int{},
		users:        map[int]models.User{},
		ratings:      map[int]models.Rating{},
		loginRole:    models.RoleUser,
		loginUserID:  7,
		products: []models.Product{
			{ID: 42, Title: "Wireless Mouse", Price: 24.50, Category: "electronics"},
			{ID: 43, Title: "Desk Lamp", Price: 39.99, Discount: 5, Category: "home"},
		},
		categories: []models.Category{
			{ID: 1, Title: "electronics"},
			{ID: 2, Title: "home"},
		},
	}
	b.users[7] = models.User{ID: 7, Name: "Test User", Email: "test@example.com", Role: models.RoleUser}

	r := chi.NewRouter()
	r.Get("/cart", b.requireAuth(b.handleGetCart))
	r.Post("/cart", b.requireAuth(b.handleAddItem))
	r.Put("/cart/{id}", b.requireAuth(b.handleUpdateItem))
	r.Delete("/cart/{id}", b.requireAuth(b.handleRemoveItem))
	r.Delete("/cart", b.requireAuth(b.handleClearCart))
	r.Get("/cart/count", b.requireAuth(b.handleCartCount))

	r.Get("/products", b.handleListProducts)
	r.Get("/product/{id}", b.handleGetProduct)
	r.Get("/categories", b.handleListCategories)
	r.Get("/category/{id}", b.handleGetCategory)
	r.Get("/top-rated", b.handleListProducts)
	r.Get("/latest-sale", b.handleLatestSale)
	r.Get("/product/{id}/ratings", b.handleProductRatings)
	r.Get("/product/{id}/rating-stats", b.handleRatingStats)
	r.Get("/product/{id}/user-rating", b.requireAuth(b.handleUserRating))
	r.Post("/rating", b.requireAuth(b.handleSubmitRating))
	r.Delete("/rating/{id}", b.requireAuth(b.handleDeleteRating))

	r.Post("/login", b.handleLogin)
	r.Post("/register", b.handleRegister)
	r.Get("/logout", b.requireAuth(b.handleLogout))
	r.Get("/user/{id}", b.requireAuth(b.handleGetUser))
	r.Get("/users", b.requireAuth(b.handleListUsers))
	r.Post("/user/add", b.requireAuth(b.handleCreateUser))
	r.Post("/user/edit/{id}", b.requireAuth(b.handleUpdateUser))
	r.Delete("/user/{id}", b.requireAuth(b.handleDeleteUser))

	b.server = httptest.NewServer(b.record(r))
	t.Cleanup(b.server.Close)
	return b
}

// record notes every request and applies any forced status before routing
func (b *stubBackend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := r.Method + " " + r.URL.Path
		b.mu.Lock()
		b.requests = append(b.requests, call)
		forced := b.forcedStatus[call]
		b.mu.Unlock()

		if forced != 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(forced)
			json.NewEncoder(w).Encode(map[string]string{"message": "forced failure"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *stubBackend) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "unauthenticated"})
			return
		}
		next(w, r)
	}
}

func (b *stubBackend) forceSummary(summary models.CartSummary) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.forcedSummary = &summary
}

func (b *stubBackend) forceStatus(method, path string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.forcedStatus[method+" "+path] = status
}

func (b *stubBackend) callCount(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	count := 0
	for _, call := range b.requests {
		if call == method+" "+path {
			count++
		}
	}
	return count
}

func (b *stubBackend) totalCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}

// summary computes the aggregate the way a well-behaved backend would, unless
// a test pinned a forced summary to prove the client trusts it verbatim.
func (b *stubBackend) summary() models.CartSummary {
	if b.forcedSummary != nil {
		return *b.forcedSummary
	}
	var s models.CartSummary
	for _, item := range b.items {
		s.Subtotal += item.UnitPrice * float64(item.Quantity)
		s.TotalItems += item.Quantity
	}
	return s
}

func (b *stubBackend) writeCart(w http.ResponseWriter) {
	items := b.items
	if items == nil {
		items = []models.CartItem{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    models.Cart{Items: items, Summary: b.summary()},
	})
}

func (b *stubBackend) handleGetCart(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writeCart(w)
}

func (b *stubBackend) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req models.AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "invalid body"})
		return
	}
	if req.Quantity < models.MinQuantity || req.Quantity > models.MaxQuantity {
		writeValidationError(w, "quantity", "The quantity must be between 1 and 99.")
		return
	}
	if req.ProductID <= 0 {
		writeValidationError(w, "product_id", "The product id field is required.")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var product models.Product
	for _, p := range b.products {
		if p.ID == req.ProductID {
			product = p
			break
		}
	}
	if product.ID == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "product not found"})
		return
	}

	merged := false
	for i := range b.items {
		if b.items[i].ProductID == req.ProductID {
			b.items[i].Quantity += req.Quantity
			merged = true
			break
		}
	}
	if !merged {
		b.items = append(b.items, models.CartItem{
			ID:        b.nextItemID,
			ProductID: product.ID,
			Quantity:  req.Quantity,
			UnitPrice: product.Price,
			Product:   product,
		})
		b.nextItemID++
	}
	b.writeCart(w)
}

func (b *stubBackend) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var req models.UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "invalid body"})
		return
	}
	if req.Quantity < models.MinQuantity || req.Quantity > models.MaxQuantity {
		writeValidationError(w, "quantity", "The quantity must be between 1 and 99.")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.items {
		if b.items[i].ID == itemID {
			b.items[i].Quantity = req.Quantity
			b.writeCart(w)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "cart item not found"})
}

func (b *stubBackend) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, _ := strconv.Atoi(chi.URLParam(r, "id"))

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.items {
		if b.items[i].ID == itemID {
			b.items = append(b.items[:i], b.items[i+1:]...)
			b.writeCart(w)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "cart item not found"})
}

func (b *stubBackend) handleClearCart(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = nil
	b.writeCart(w)
}

func (b *stubBackend) handleCartCount(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    map[string]int{"count": b.summary().TotalItems},
	})
}

func (b *stubBackend) handleListProducts(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.products)
}

func (b *stubBackend) handleLatestSale(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	onSale := []models.Product{}
	for _, p := range b.products {
		if p.Discount > 0 {
			onSale = append(onSale, p)
		}
	}
	writeJSON(w, http.StatusOK, onSale)
}

func (b *stubBackend) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range b.products {
		if p.ID == id {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "product not found"})
}

func (b *stubBackend) handleListCategories(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.categories)
}

func (b *stubBackend) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.categories {
		if c.ID == id {
			writeJSON(w, http.StatusOK, c)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "category not found"})
}

func (b *stubBackend) handleProductRatings(w http.ResponseWriter, r *http.Request) {
	productID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	b.mu.Lock()
	defer b.mu.Unlock()
	ratings := []models.Rating{}
	for _, rating := range b.ratings {
		if rating.ProductID == productID {
			ratings = append(ratings, rating)
		}
	}
	writeJSON(w, http.StatusOK, ratings)
}

func (b *stubBackend) handleRatingStats(w http.ResponseWriter, r *http.Request) {
	productID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	b.mu.Lock()
	defer b.mu.Unlock()
	var sum, count int
	for _, rating := range b.ratings {
		if rating.ProductID == productID {
			sum += rating.Rate
			count++
		}
	}
	stats := models.RatingStats{Count: count}
	if count > 0 {
		stats.Average = float64(sum) / float64(count)
	}
	writeJSON(w, http.StatusOK, stats)
}

func (b *stubBackend) handleUserRating(w http.ResponseWriter, r *http.Request) {
	productID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, rating := range b.ratings {
		if rating.ProductID == productID && rating.UserID == b.loginUserID {
			writeJSON(w, http.StatusOK, rating)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "rating not found"})
}

func (b *stubBackend) handleSubmitRating(w http.ResponseWriter, r *http.Request) {
	var req models.RatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Rate < 1 || req.Rate > 5 {
		writeValidationError(w, "rate", "The rate must be between 1 and 5.")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// One rating per user per product: resubmitting replaces it
	for id, existing := range b.ratings {
		if existing.ProductID == req.ProductID && existing.UserID == b.loginUserID {
			existing.Rate = req.Rate
			existing.Comment = req.Comment
			b.ratings[id] = existing
			writeJSON(w, http.StatusOK, existing)
			return
		}
	}
	rating := models.Rating{
		ID:        b.nextRatingID,
		ProductID: req.ProductID,
		UserID:    b.loginUserID,
		Rate:      req.Rate,
		Comment:   req.Comment,
	}
	b.ratings[rating.ID] = rating
	b.nextRatingID++
	writeJSON(w, http.StatusOK, rating)
}

func (b *stubBackend) handleDeleteRating(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.ratings[id]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "rating not found"})
		return
	}
	delete(b.ratings, id)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (b *stubBackend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeValidationError(w, "email", "The email field is required.")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": testToken,
		"role":  b.loginRole,
		"id":    b.loginUserID,
	})
}

func (b *stubBackend) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeValidationError(w, "email", "The email field is required.")
		return
	}
	if req.Name == "" {
		writeValidationError(w, "name", "The name field is required.")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	id := 100 + len(b.users)
	b.users[id] = models.User{ID: id, Name: req.Name, Email: req.Email, Role: models.RoleUser}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": testToken,
		"role":  models.RoleUser,
		"id":    id,
	})
}

func (b *stubBackend) handleLogout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (b *stubBackend) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	b.mu.Lock()
	defer b.mu.Unlock()
	if user, ok := b.users[id]; ok {
		writeJSON(w, http.StatusOK, user)
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "user not found"})
}

func (b *stubBackend) handleListUsers(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	users := make([]models.User, 0, len(b.users))
	for _, u := range b.users {
		users = append(users, u)
	}
	writeJSON(w, http.StatusOK, users)
}

func (b *stubBackend) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.UserCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "name", "The name field is required.")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	id := len(b.users) + 100
	user := models.User{ID: id, Name: req.Name, Email: req.Email, Role: req.Role}
	b.users[id] = user
	writeJSON(w, http.StatusOK, user)
}

func (b *stubBackend) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var req models.UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "name", "The name field is required.")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	user, ok := b.users[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "user not found"})
		return
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Role != 0 {
		user.Role = req.Role
	}
	b.users[id] = user
	writeJSON(w, http.StatusOK, user)
}

func (b *stubBackend) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.users, id)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeValidationError(w http.ResponseWriter, field, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
		"message": "The given data was invalid.",
		"errors":  map[string][]string{field: {message}},
	})
}

// testStack bundles the wired-up client stack tests exercise
type testStack struct {
	backend *stubBackend
	store   *storage.Store
	creds   *auth.Credentials
	client  *api.Client
	cart    *CartService
}

func newTestStack(t *testing.T, authenticated bool, clientOpts ...api.Option) *testStack {
	backend := newStubBackend(t)

	store, err := storage.Open(filepath.Join(t.TempDir(), "storefront.db"))
	if err != nil {
		t.Fatalf("failed to open test storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	creds := auth.NewCredentials(store, zap.NewNop())
	if authenticated {
		if err := creds.Set(testToken, models.RoleUser, 7); err != nil {
			t.Fatalf("failed to store test credential: %v", err)
		}
	}

	opts := append([]api.Option{api.WithTokenSource(creds)}, clientOpts...)
	client := api.NewClient(backend.server.URL, 5*time.Second, opts...)

	return &testStack{
		backend: backend,
		store:   store,
		creds:   creds,
		client:  client,
		cart:    NewCartService(client, creds, zap.NewNop()),
	}
}
