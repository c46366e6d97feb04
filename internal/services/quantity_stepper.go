package services

import "ecommerce-storefront-platform/internal/models"

// QuantityStepper holds the pending quantity a consumer picks before calling
// AddToCart. It is local state, independent of the cart itself: the increment
// control is disabled at 99, the decrement at 1, and Reset returns it to 1
// after a successful add.
type QuantityStepper struct {
	value int
}

// NewQuantityStepper starts at the minimum quantity
func NewQuantityStepper() *QuantityStepper {
	return &QuantityStepper{value: models.MinQuantity}
}

// Value returns the current pending quantity
func (q *QuantityStepper) Value() int {
	if q.value == 0 {
		return models.MinQuantity
	}
	return q.value
}

// CanInc reports whether the quantity may be raised further
func (q *QuantityStepper) CanInc() bool {
	return q.Value() < models.MaxQuantity
}

// CanDec reports whether the quantity may be lowered further
func (q *QuantityStepper) CanDec() bool {
	return q.Value() > models.MinQuantity
}

// Inc raises the quantity by one, clamped at the maximum
func (q *QuantityStepper) Inc() {
	q.value = models.ClampQuantity(q.Value() + 1)
}

// Dec lowers the quantity by one, clamped at the minimum
func (q *QuantityStepper) Dec() {
	q.value = models.ClampQuantity(q.Value() - 1)
}

// Set forces the quantity to n, clamped into the valid range
func (q *QuantityStepper) Set(n int) {
	q.value = models.ClampQuantity(n)
}

// Reset returns the stepper to 1, as after a successful add
func (q *QuantityStepper) Reset() {
	q.value = models.MinQuantity
}
