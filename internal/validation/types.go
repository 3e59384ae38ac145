package validation

// CreateAccountRequest is the payload for POST /accounts.
type CreateAccountRequest struct {
	FullName string `json:"fullName" validate:"required,notblank,max=200"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
	Role     string `json:"role" validate:"required,oneof=customer vendor"`
}

// CreateSessionRequest is the payload for POST /sessions.
type CreateSessionRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// PlaceOrderRequest is the payload for POST /orders.
type PlaceOrderRequest struct {
	UserID   int64  `json:"userId" validate:"required,gt=0"`
	FullName string `json:"fullName" validate:"max=200"`
	Items    string `json:"items" validate:"required,notblank,max=2000"`
}

// UpdateOrderStatusRequest is the payload for PATCH /orders/{id}. The value
// itself is parsed by models.ParseOrderStatus.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,notblank"`
}
