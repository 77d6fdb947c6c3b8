package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, fn func(c echo.Context) error) (int, map[string]interface{}) {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, fn(c))

	body := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestWriteSuccessResponse(t *testing.T) {
	code, body := write(t, func(c echo.Context) error {
		return WriteSuccessResponse(c, "ok", map[string]int{"count": 2})
	})

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "ok", body["message"])
	assert.Equal(t, map[string]interface{}{"count": float64(2)}, body["data"])

	code, body = write(t, func(c echo.Context) error {
		return WriteCreatedResponse(c, "", nil)
	})
	assert.Equal(t, http.StatusCreated, code)
	assert.NotContains(t, body, "data")
	assert.NotContains(t, body, "message")
}

func TestWriteErrorResponse(t *testing.T) {
	type TestCase struct {
		Name            string
		Err             error
		ExpectedStatus  int
		ExpectedMessage string
		HasDetails      bool
	}

	testCases := []TestCase{
		{Name: "Not found", Err: errs.ErrProductNotFound, ExpectedStatus: http.StatusNotFound, ExpectedMessage: errs.ErrProductNotFound.Error()},
		{
			Name:            "Validation with fields",
			Err:             errs.NewValidationError("Invalid or missing fields: quantity", errs.FieldError{Field: "quantity", Tag: "min"}),
			ExpectedStatus:  http.StatusBadRequest,
			ExpectedMessage: "Invalid or missing fields: quantity",
			HasDetails:      true,
		},
		{Name: "Unexpected error is hidden", Err: errors.New("connection reset by peer"), ExpectedStatus: http.StatusInternalServerError, ExpectedMessage: errs.ErrInternalServer.Error()},
		{Name: "Upstream error", Err: fmt.Errorf("llm: %w", errs.ErrUpstreamUnavailable), ExpectedStatus: http.StatusBadGateway, ExpectedMessage: errs.ErrUpstreamUnavailable.Error()},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			code, body := write(t, func(c echo.Context) error {
				return WriteErrorResponse(c, tc.Err, nil)
			})

			assert.Equal(t, tc.ExpectedStatus, code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.ExpectedMessage, body["message"])
			if tc.HasDetails {
				assert.Equal(t, []interface{}{map[string]interface{}{"field": "quantity", "tag": "min"}}, body["error"])
			} else {
				assert.NotContains(t, body, "error")
			}
		})
	}
}
