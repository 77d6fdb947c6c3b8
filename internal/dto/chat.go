package dto

type ChatRequest struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"-"`
	Message   string `json:"message" validate:"required"`
}

type ChatResponse struct {
	SessionID string `json:"sessionId"`
	Reply     string `json:"reply"`
	Intent    string `json:"intent"`
}
