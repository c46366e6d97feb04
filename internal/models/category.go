package models

import (
	"errors"
	"strings"
)

// Category represents a product category
type Category struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Image string `json:"image,omitempty"`
}

// Validate validates the category data
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return errors.New("category title is required")
	}
	return nil
}
