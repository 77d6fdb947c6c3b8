package controller

import (
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// bind rejects bodies that cannot be decoded before they reach validation.
func bind(e echo.Context, component string, payload interface{}) error {
	if err := e.Bind(payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", component).Msg("")
		return errs.NewValidationError("Malformed request body")
	}
	return nil
}
