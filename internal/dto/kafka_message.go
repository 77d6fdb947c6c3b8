package dto

import "github.com/shopspring/decimal"

const EventOrderCreated = "order_created"

type KafkaMessage struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}

type OrderCreatedEvent struct {
	OrderID     string           `json:"order_id"`
	UserID      string           `json:"user_id"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
	Items       []OrderEventItem `json:"items"`
	CreatedAt   int64            `json:"created_at"`
}

type OrderEventItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}
