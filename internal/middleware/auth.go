package middleware

import (
	"strings"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/response"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func setTokenUser(c echo.Context, user utils.TokenUser) {
	c.Set(utils.ContextKeyUserID, user.UserID)
	c.Set(utils.ContextKeyRole, user.Role)
	c.Set(utils.ContextKeyName, user.Name)

	logger := log.Ctx(c.Request().Context()).With().Str("user_id", user.UserID).Logger()
	c.SetRequest(c.Request().WithContext(logger.WithContext(c.Request().Context())))
}

// IsLoggedIn rejects requests without a valid bearer token.
func IsLoggedIn(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
			}

			user, err := utils.ParseJWTToken(token, secret)
			if err != nil {
				log.Ctx(c.Request().Context()).Warn().Err(err).Str("component", "IsLoggedIn").Msg("")
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
			}

			setTokenUser(c, user)
			return next(c)
		}
	}
}

// IsAdmin must run after IsLoggedIn.
func IsAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := utils.ExtractTokenUser(c)
		if user.UserID == "" {
			return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
		}
		if user.Role != domain.RoleAdmin {
			return response.WriteErrorResponse(c, errs.ErrForbidden, nil)
		}
		return next(c)
	}
}

// OptionalAuth attaches the caller identity when a token is sent. An invalid
// token is still rejected instead of silently treating the caller as anonymous.
func OptionalAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return next(c)
			}

			user, err := utils.ParseJWTToken(token, secret)
			if err != nil {
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
			}

			setTokenUser(c, user)
			return next(c)
		}
	}
}
