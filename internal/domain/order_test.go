package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusIsValid(t *testing.T) {
	for _, status := range []OrderStatus{"pending", "processing", "shipped", "delivered", "cancelled"} {
		assert.True(t, status.IsValid(), status)
	}

	for _, status := range []OrderStatus{"", "PENDING", "refunded"} {
		assert.False(t, status.IsValid(), status)
	}
}

func TestNewOrderFromCart(t *testing.T) {
	now := time.Now()
	c := NewCart("u1", now)
	require.NoError(t, c.AddItem(item("p1", 500, 2)))
	address := ShippingAddress{Address: "A", City: "B", Zip: "12345"}

	order := NewOrderFromCart(c, address, "key-1", now)

	assert.Equal(t, "u1", order.UserID)
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Equal(t, address, order.ShippingAddress)
	assert.Equal(t, "key-1", order.IdempotencyKey)
	assert.True(t, decimal.NewFromInt(1000).Equal(order.TotalAmount))
	require.Len(t, order.Items, 1)
	assert.Equal(t, "p1", order.Items[0].ProductID)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.True(t, decimal.NewFromInt(500).Equal(order.Items[0].Price))
	assert.False(t, order.ID.IsZero())
}

func TestNewOrderFromCartRecomputesStaleTotal(t *testing.T) {
	c := NewCart("u1", time.Now())
	require.NoError(t, c.AddItem(item("p1", 500, 2)))
	c.TotalPrice = decimal.NewFromInt(1)

	order := NewOrderFromCart(c, ShippingAddress{Address: "A", City: "B", Zip: "1"}, "", time.Now())

	assert.True(t, decimal.NewFromInt(1000).Equal(order.TotalAmount))
}

func TestOrderSnapshotIsFrozen(t *testing.T) {
	c := NewCart("u1", time.Now())
	require.NoError(t, c.AddItem(item("p1", 500, 2)))

	order := NewOrderFromCart(c, ShippingAddress{Address: "A", City: "B", Zip: "1"}, "", time.Now())
	c.Items[0].Quantity = 99
	c.Items[0].Price = decimal.NewFromInt(1)
	c.Clear()

	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.True(t, decimal.NewFromInt(500).Equal(order.Items[0].Price))
	assert.True(t, decimal.NewFromInt(1000).Equal(order.TotalAmount))
}

func TestTranscriptRecent(t *testing.T) {
	tr := Transcript{}
	assert.Empty(t, tr.Recent(5))

	for i := 0; i < 7; i++ {
		tr.Messages = append(tr.Messages, ChatMessage{Role: ChatRoleUser, Content: string(rune('a' + i))})
	}

	recent := tr.Recent(5)
	require.Len(t, recent, 5)
	assert.Equal(t, "c", recent[0].Content)
	assert.Equal(t, "g", recent[4].Content)
	assert.Len(t, tr.Recent(10), 7)
}
