package domain

import (
	"fmt"
	"time"

	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartItem struct {
	ProductID string          `bson:"product_id" json:"productId"`
	Name      string          `bson:"name" json:"name"`
	Price     decimal.Decimal `bson:"price" json:"price"`
	Image     string          `bson:"image" json:"image"`
	Brand     string          `bson:"brand,omitempty" json:"brand,omitempty"`
	Quantity  int             `bson:"quantity" json:"quantity"`
}

// Cart totals are derived from Items. Every mutating method recalculates them, so
// callers never assign TotalQuantity or TotalPrice directly.
type Cart struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        string             `bson:"user_id" json:"userId"`
	Items         []CartItem         `bson:"items" json:"items"`
	TotalQuantity int                `bson:"total_quantity" json:"totalQuantity"`
	TotalPrice    decimal.Decimal    `bson:"total_price" json:"totalPrice"`
	Version       int64              `bson:"version" json:"-"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}

func NewCart(userID string, now time.Time) Cart {
	return Cart{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		Items:      []CartItem{},
		TotalPrice: decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (c *Cart) indexOf(productID string) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// MaxLineQuantity bounds a single cart line so quantities and totals never overflow.
const MaxLineQuantity = 10000

var errQuantityLimit = errs.NewValidationError(
	fmt.Sprintf("Quantity of a cart item cannot exceed %d", MaxLineQuantity),
	errs.FieldError{Field: "quantity", Tag: "max"},
)

// AddItem merges the item into an existing line for the same product, keeping the
// unit price recorded when that line was first added. The cart is left unchanged
// when the merged quantity would exceed MaxLineQuantity.
func (c *Cart) AddItem(item CartItem) error {
	if item.Quantity < 1 || item.Quantity > MaxLineQuantity {
		return errQuantityLimit
	}

	if i := c.indexOf(item.ProductID); i >= 0 {
		if c.Items[i].Quantity > MaxLineQuantity-item.Quantity {
			return errQuantityLimit
		}
		c.Items[i].Quantity += item.Quantity
	} else {
		c.Items = append(c.Items, item)
	}
	c.Recalculate()
	return nil
}

func (c *Cart) SetQuantity(productID string, quantity int) error {
	if quantity < 1 || quantity > MaxLineQuantity {
		return errQuantityLimit
	}

	i := c.indexOf(productID)
	if i < 0 {
		return errs.ErrCartItemNotFound
	}
	c.Items[i].Quantity = quantity
	c.Recalculate()
	return nil
}

// RemoveItem reports whether a line was removed.
func (c *Cart) RemoveItem(productID string) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	c.Recalculate()
	return true
}

func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.Recalculate()
}

func (c *Cart) ComputedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(LineTotal(item.Price, item.Quantity))
	}
	return total
}

func (c *Cart) Recalculate() {
	if c.Items == nil {
		c.Items = []CartItem{}
	}

	quantity := 0
	for _, item := range c.Items {
		quantity += item.Quantity
	}
	c.TotalQuantity = quantity
	c.TotalPrice = c.ComputedTotal()
}

// Clone returns a copy whose Items slice shares no memory with c.
func (c Cart) Clone() Cart {
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	return c
}
