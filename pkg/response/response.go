package response

import (
	"net/http"

	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Error   interface{} `json:"error,omitempty"`
}

func WriteSuccessResponse(c echo.Context, message string, data interface{}) error {
	return writeSuccess(c, http.StatusOK, message, data)
}

func WriteCreatedResponse(c echo.Context, message string, data interface{}) error {
	return writeSuccess(c, http.StatusCreated, message, data)
}

func writeSuccess(c echo.Context, status int, message string, data interface{}) error {
	resp := SuccessResponse{}
	resp.Success = true
	resp.Message = message
	resp.Data = data

	return c.JSON(status, resp)
}

// WriteErrorResponse never exposes the text of unexpected errors; those are logged
// and replaced with the generic internal server error message.
func WriteErrorResponse(c echo.Context, err error, details interface{}) error {
	statusCode := errs.GetErrorStatusCode(err)
	resp := ErrorResponse{}
	resp.Success = false
	resp.Message = err.Error()
	resp.Error = details

	if statusCode >= http.StatusInternalServerError {
		log.Ctx(c.Request().Context()).Error().Err(err).Str("component", "WriteErrorResponse").Msg("")
		resp.Message = errs.ErrInternalServer.Error()
		resp.Error = nil
		if statusCode == errs.ErrStatusBadGateway {
			resp.Message = errs.ErrUpstreamUnavailable.Error()
		}
	}

	if resp.Error == nil {
		if fields := errs.FieldErrors(err); fields != nil {
			resp.Error = fields
		}
	}

	return c.JSON(statusCode, resp)
}
