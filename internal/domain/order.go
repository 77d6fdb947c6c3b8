package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var orderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func (s OrderStatus) IsValid() bool {
	for _, status := range orderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type ShippingAddress struct {
	Address string `bson:"address" json:"address"`
	City    string `bson:"city" json:"city"`
	Zip     string `bson:"zip" json:"zip"`
}

type OrderItem struct {
	ProductID string          `bson:"product_id" json:"productId"`
	Name      string          `bson:"name" json:"name"`
	Price     decimal.Decimal `bson:"price" json:"price"`
	Quantity  int             `bson:"quantity" json:"quantity"`
	Image     string          `bson:"image" json:"image"`
	Brand     string          `bson:"brand,omitempty" json:"brand,omitempty"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          string             `bson:"user_id" json:"userId"`
	Items           []OrderItem        `bson:"items" json:"items"`
	ShippingAddress ShippingAddress    `bson:"shipping_address" json:"shippingAddress"`
	TotalAmount     decimal.Decimal    `bson:"total_amount" json:"totalAmount"`
	Status          OrderStatus        `bson:"status" json:"status"`
	IdempotencyKey  string             `bson:"idempotency_key,omitempty" json:"-"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}

// NewOrderFromCart snapshots the cart lines. The stored cart total is used unless
// it disagrees with the lines, in which case the recomputed sum wins.
func NewOrderFromCart(cart Cart, address ShippingAddress, idempotencyKey string, now time.Time) Order {
	items := make([]OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
			Brand:     item.Brand,
		})
	}

	total := cart.TotalPrice
	if computed := cart.ComputedTotal(); !computed.Equal(total) {
		total = computed
	}

	return Order{
		ID:              primitive.NewObjectID(),
		UserID:          cart.UserID,
		Items:           items,
		ShippingAddress: address,
		TotalAmount:     total,
		Status:          OrderStatusPending,
		IdempotencyKey:  idempotencyKey,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (o Order) Clone() Order {
	items := make([]OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}
