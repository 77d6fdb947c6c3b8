package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ProductID accepts both JSON strings and JSON numbers and always holds the
// string form.
type ProductID string

func (p *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = ProductID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("productId must be a string or a number: %w", err)
	}
	// 1, 1.0 and 1e0 name the same product
	d, err := decimal.NewFromString(n.String())
	if err != nil || !d.IsInteger() {
		return fmt.Errorf("productId %s is not an integer", n.String())
	}
	*p = ProductID(d.String())
	return nil
}

type CartItemRequest struct {
	UserID    string           `json:"-"`
	ProductID ProductID        `json:"productId" validate:"required"`
	Name      string           `json:"name" validate:"required"`
	Price     *decimal.Decimal `json:"price" validate:"required"`
	Image     string           `json:"image" validate:"required"`
	Brand     string           `json:"brand"`
	Quantity  *int             `json:"quantity" validate:"omitempty,min=1,max=10000"`
}

type CartQuantityRequest struct {
	UserID    string `json:"-"`
	ProductID string `json:"-"`
	Quantity  *int   `json:"quantity" validate:"required,min=1,max=10000"`
}
