package dto

import "github.com/shopspring/decimal"

type ProductRequest struct {
	Name        string           `json:"name" validate:"required"`
	Brand       string           `json:"brand" validate:"required"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Image       string           `json:"image" validate:"omitempty,url"`
	Images      []string         `json:"images" validate:"omitempty,dive,url"`
	Stock       *int             `json:"stock" validate:"omitempty,min=0"`
}

type ProductUpdateRequest struct {
	ID          string           `json:"-"`
	Name        *string          `json:"name" validate:"omitempty,min=1"`
	Brand       *string          `json:"brand" validate:"omitempty,min=1"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Image       *string          `json:"image" validate:"omitempty,url"`
	Images      []string         `json:"images" validate:"omitempty,dive,url"`
	Stock       *int             `json:"stock" validate:"omitempty,min=0"`
}

type ProductStockRequest struct {
	ID    string `json:"-"`
	Stock *int   `json:"stock" validate:"required,min=0"`
}
