package controller

import (
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/service"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/response"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/utils"
	"github.com/labstack/echo/v4"
)

type CartController struct {
	service service.CartService
}

func CreateCartController(e *echo.Group, service service.CartService, isLoggedIn echo.MiddlewareFunc) {
	c := CartController{
		service: service,
	}

	g := e.Group("/cart", isLoggedIn)
	g.GET("", c.GetCart)
	g.POST("", c.AddItem)
	g.PUT("/:productId", c.UpdateItemQuantity)
	g.DELETE("/:productId", c.RemoveItem)
	g.DELETE("", c.ClearCart)
}

func (c *CartController) GetCart(e echo.Context) error {
	user := utils.ExtractTokenUser(e)

	cart, err := c.service.GetCart(e.Request().Context(), user.UserID)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", cart)
}

func (c *CartController) AddItem(e echo.Context) error {
	payload := dto.CartItemRequest{}
	if err := bind(e, "AddItem", &payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	payload.UserID = utils.ExtractTokenUser(e).UserID

	cart, err := c.service.AddItem(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "item added to cart", cart)
}

func (c *CartController) UpdateItemQuantity(e echo.Context) error {
	payload := dto.CartQuantityRequest{}
	if err := bind(e, "UpdateItemQuantity", &payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	payload.UserID = utils.ExtractTokenUser(e).UserID
	payload.ProductID = e.Param("productId")

	cart, err := c.service.UpdateItemQuantity(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", cart)
}

func (c *CartController) RemoveItem(e echo.Context) error {
	user := utils.ExtractTokenUser(e)

	cart, err := c.service.RemoveItem(e.Request().Context(), user.UserID, e.Param("productId"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", cart)
}

func (c *CartController) ClearCart(e echo.Context) error {
	user := utils.ExtractTokenUser(e)

	cart, err := c.service.ClearCart(e.Request().Context(), user.UserID)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "cart cleared", cart)
}
