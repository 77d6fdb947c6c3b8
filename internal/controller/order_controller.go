package controller

import (
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/service"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/response"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/utils"
	"github.com/labstack/echo/v4"
)

const HeaderIdempotencyKey = "Idempotency-Key"

type OrderController struct {
	service service.OrderService
}

func CreateOrderController(e *echo.Group, service service.OrderService, isLoggedIn echo.MiddlewareFunc) {
	c := OrderController{
		service: service,
	}

	g := e.Group("/orders", isLoggedIn)
	g.POST("", c.PlaceOrder)
	g.GET("", c.ListOrders)
	g.GET("/:id", c.GetOrder)
}

func (c *OrderController) PlaceOrder(e echo.Context) error {
	payload := dto.OrderRequest{}
	if err := bind(e, "PlaceOrder", &payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	payload.UserID = utils.ExtractTokenUser(e).UserID
	payload.IdempotencyKey = e.Request().Header.Get(HeaderIdempotencyKey)

	order, err := c.service.PlaceOrder(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "order placed", order)
}

func (c *OrderController) ListOrders(e echo.Context) error {
	user := utils.ExtractTokenUser(e)

	orders, err := c.service.ListOrders(e.Request().Context(), user.UserID)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfuly retrieved orders record", orders)
}

func (c *OrderController) GetOrder(e echo.Context) error {
	user := utils.ExtractTokenUser(e)

	order, err := c.service.GetOrder(e.Request().Context(), user.UserID, e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", order)
}
