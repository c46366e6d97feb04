package models

import "time"

// Rating is one user's rating of a product
type Rating struct {
	ID        int       `json:"id"`
	ProductID int       `json:"product_id"`
	UserID    int       `json:"user_id"`
	Rate      int       `json:"rate"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// RatingStats is the backend aggregate over a product's ratings
type RatingStats struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}
