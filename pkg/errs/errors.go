package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer   = http.StatusInternalServerError
	ErrStatusClient           = http.StatusBadRequest
	ErrStatusNotLoggedIn      = http.StatusUnauthorized
	ErrStatusNoPermission     = http.StatusForbidden
	ErrStatusUnauthorized     = http.StatusUnauthorized
	ErrStatusNotFound         = http.StatusNotFound
	ErrStatusEmailAlreadyUsed = http.StatusBadRequest
	ErrStatusConflict         = http.StatusConflict
	ErrStatusBadGateway       = http.StatusBadGateway
)

var (
	ErrInternalServer          = errors.New("Internal server error")
	ErrClient                  = errors.New("Bad request")
	ErrNotLoggedIn             = errors.New("Unauthorized access")
	ErrInvalidCredentialsEmail = errors.New("Email or password is incorrect")
	ErrForbidden               = errors.New("Forbidden access")
	ErrNotFound                = errors.New("Resource not found")
	ErrAccountNotFound         = errors.New("Account not found")
	ErrEmailAlreadyUsed        = errors.New("Email has already been used")
	ErrTokenExpired            = errors.New("The token is already expired")
	ErrConflict                = errors.New("Conflicting record found")
	ErrUpstreamUnavailable     = errors.New("Upstream service unavailable")

	ErrCartEmpty         = errors.New("Cart is empty")
	ErrCartNotFound      = errors.New("Cart not found")
	ErrCartItemNotFound  = errors.New("Cart item not found")
	ErrOrderNotFound     = errors.New("Order not found")
	ErrProductNotFound   = errors.New("Product not found")
	ErrCartWriteConflict = errors.New("Cart was modified concurrently, please retry")
	ErrInvalidStatus     = errors.New("Invalid order status")
)

var errorMap = map[error]int{
	ErrInternalServer:          ErrStatusInternalServer,
	ErrClient:                  ErrStatusClient,
	ErrNotLoggedIn:             ErrStatusNotLoggedIn,
	ErrInvalidCredentialsEmail: ErrStatusUnauthorized,
	ErrForbidden:               ErrStatusNoPermission,
	ErrNotFound:                ErrStatusNotFound,
	ErrAccountNotFound:         ErrStatusNotFound,
	ErrEmailAlreadyUsed:        ErrStatusEmailAlreadyUsed,
	ErrTokenExpired:            ErrStatusUnauthorized,
	ErrConflict:                ErrStatusConflict,
	ErrUpstreamUnavailable:     ErrStatusBadGateway,

	ErrCartEmpty:         ErrStatusClient,
	ErrCartNotFound:      ErrStatusNotFound,
	ErrCartItemNotFound:  ErrStatusNotFound,
	ErrOrderNotFound:     ErrStatusNotFound,
	ErrProductNotFound:   ErrStatusNotFound,
	ErrCartWriteConflict: ErrStatusConflict,
	ErrInvalidStatus:     ErrStatusClient,
}

// GetErrorStatusCode resolves wrapped errors too, so callers may add context with %w.
func GetErrorStatusCode(err error) int {
	if errStatusCode, ok := errorMap[err]; ok {
		return errStatusCode
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ErrStatusClient
	}

	for target, code := range errorMap {
		if errors.Is(err, target) {
			return code
		}
	}

	return errorMap[ErrInternalServer]
}

// IsClientError reports whether err maps to a 4xx status.
func IsClientError(err error) bool {
	code := GetErrorStatusCode(err)
	return code >= 400 && code < 500
}
