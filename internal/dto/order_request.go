package dto

type ShippingAddressRequest struct {
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	Zip     string `json:"zip" validate:"required"`
}

type OrderRequest struct {
	UserID          string                 `json:"-"`
	IdempotencyKey  string                 `json:"-"`
	ShippingAddress ShippingAddressRequest `json:"shippingAddress"`
}

type OrderStatusRequest struct {
	OrderID string `json:"-"`
	Status  string `json:"status" validate:"required"`
}
