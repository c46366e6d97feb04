package models

// Quantity bounds enforced client-side before any network call.
const (
	MinQuantity = 1
	MaxQuantity = 99
)

// CartItem represents one product line in the cart. The embedded product
// snapshot lets consumers render the line without a second fetch; UnitPrice is
// the price captured at add-time and may diverge from the catalog price.
type CartItem struct {
	ID        int     `json:"id"`
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Product   Product `json:"product"`
}

// CartSummary is the server-computed aggregate over the cart. The client
// trusts these values verbatim and never recomputes them locally.
type CartSummary struct {
	Subtotal   float64 `json:"subtotal"`
	TotalItems int     `json:"total_items"`
}

// Cart is the items+summary payload shape returned by every cart endpoint
type Cart struct {
	Items   []CartItem  `json:"items"`
	Summary CartSummary `json:"summary"`
}

// ClampQuantity forces q into the [MinQuantity, MaxQuantity] domain.
// Zero means "not specified" and resolves to the minimum.
func ClampQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}
