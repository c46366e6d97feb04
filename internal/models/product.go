package models

import "time"

// Product represents a catalog product with its denormalized display fields
type Product struct {
	ID        int            `json:"id"`
	Title     string         `json:"title"`
	About     string         `json:"about,omitempty"`
	Desc      string         `json:"desc,omitempty"`
	Price     float64        `json:"price"`
	Discount  float64        `json:"discount"`
	Rate      string         `json:"rate,omitempty"`
	Status    string         `json:"status,omitempty"`
	Category  string         `json:"category"`
	Images    []ProductImage `json:"images,omitempty"`
	CreatedAt time.Time      `json:"created_at,omitempty"`
	UpdatedAt time.Time      `json:"updated_at,omitempty"`
}

// ProductImage is one image record attached to a product
type ProductImage struct {
	ID        int       `json:"id"`
	ProductID int       `json:"product_id"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// PrimaryImage returns the first image URL, or empty when the product has none
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].Image
}

// OnSale reports whether the product carries a discount
func (p *Product) OnSale() bool {
	return p.Discount > 0
}

// SalePrice returns the effective price after discount
func (p *Product) SalePrice() float64 {
	if p.Discount <= 0 {
		return p.Price
	}
	return p.Price - p.Discount
}
