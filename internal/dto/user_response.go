package dto

type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

type UserResponse struct {
	ExternalID string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
}
