package domain

import "time"

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

const (
	IntentGreeting      = "greeting"
	IntentOrderStatus   = "order_status"
	IntentProductSearch = "product_search"
	IntentGeneral       = "general"
)

type ChatMessage struct {
	Role      string    `bson:"role" json:"role"`
	Content   string    `bson:"content" json:"content"`
	Intent    string    `bson:"intent,omitempty" json:"intent,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

type Transcript struct {
	SessionID string        `bson:"session_id" json:"sessionId"`
	UserID    string        `bson:"user_id,omitempty" json:"userId,omitempty"`
	Messages  []ChatMessage `bson:"messages" json:"messages"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updatedAt"`
}

// Recent returns at most n of the newest messages, oldest first.
func (t Transcript) Recent(n int) []ChatMessage {
	if n <= 0 || len(t.Messages) == 0 {
		return nil
	}
	if len(t.Messages) <= n {
		return t.Messages
	}
	return t.Messages[len(t.Messages)-n:]
}
