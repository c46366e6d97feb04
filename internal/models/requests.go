package models

// AddToCartRequest is the body for POST /cart
type AddToCartRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// UpdateCartItemRequest is the body for PUT /cart/:id
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// LoginRequest is the body for POST /login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body for POST /register
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserCreateRequest is the body for POST /user/add
type UserCreateRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     UserRole `json:"role"`
}

// UserUpdateRequest is the body for POST /user/edit/:id
type UserUpdateRequest struct {
	Name  string   `json:"name,omitempty"`
	Email string   `json:"email,omitempty"`
	Role  UserRole `json:"role,omitempty"`
}

// ProductCreateRequest is the body for POST /product/add and /product/edit/:id
type ProductCreateRequest struct {
	Title    string   `json:"title"`
	About    string   `json:"about,omitempty"`
	Desc     string   `json:"desc,omitempty"`
	Price    float64  `json:"price"`
	Discount float64  `json:"discount,omitempty"`
	Category string   `json:"category"`
	Images   []string `json:"images,omitempty"`
}

// CategoryCreateRequest is the body for POST /category/add and /category/edit/:id
type CategoryCreateRequest struct {
	Title string `json:"title"`
	Image string `json:"image,omitempty"`
}

// RatingRequest is the body for POST /rating
type RatingRequest struct {
	ProductID int    `json:"product_id"`
	Rate      int    `json:"rate"`
	Comment   string `json:"comment,omitempty"`
}
