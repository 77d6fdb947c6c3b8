package controller

import (
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/service"
	pkgdto "github.com/alimikegami/point-of-sales/storefront-service/pkg/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/response"
	"github.com/labstack/echo/v4"
)

type AdminController struct {
	productService service.ProductService
	orderService   service.OrderService
}

func CreateAdminController(e *echo.Group, productService service.ProductService, orderService service.OrderService, isLoggedIn echo.MiddlewareFunc, isAdmin echo.MiddlewareFunc) {
	c := AdminController{
		productService: productService,
		orderService:   orderService,
	}

	g := e.Group("/admin", isLoggedIn, isAdmin)
	g.POST("/products", c.CreateProduct)
	g.PUT("/products/:id", c.UpdateProduct)
	g.DELETE("/products/:id", c.DeleteProduct)
	g.PUT("/products/:id/stock", c.SetStock)
	g.GET("/orders", c.GetOrders)
	g.PUT("/orders/:id/status", c.UpdateOrderStatus)
}

func (c *AdminController) CreateProduct(e echo.Context) error {
	payload := dto.ProductRequest{}
	if err := bind(e, "CreateProduct", &payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	product, err := c.productService.CreateProduct(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "product created", product)
}

func (c *AdminController) UpdateProduct(e echo.Context) error {
	payload := dto.ProductUpdateRequest{}
	if err := bind(e, "UpdateProduct", &payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	payload.ID = e.Param("id")

	product, err := c.productService.UpdateProduct(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "product updated", product)
}

func (c *AdminController) DeleteProduct(e echo.Context) error {
	err := c.productService.DeleteProduct(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "product deleted", nil)
}

func (c *AdminController) SetStock(e echo.Context) error {
	payload := dto.ProductStockRequest{}
	if err := bind(e, "SetStock", &payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	payload.ID = e.Param("id")

	product, err := c.productService.SetStock(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", product)
}

func (c *AdminController) GetOrders(e echo.Context) error {
	filter := pkgdto.Filter{}
	if err := bind(e, "GetOrders", &filter); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.orderService.ListAllOrders(e.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfuly retrieved orders record", resp)
}

func (c *AdminController) UpdateOrderStatus(e echo.Context) error {
	payload := dto.OrderStatusRequest{}
	if err := bind(e, "UpdateOrderStatus", &payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	payload.OrderID = e.Param("id")

	order, err := c.orderService.UpdateOrderStatus(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "order status updated", order)
}
