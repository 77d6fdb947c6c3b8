package controller

import (
	"strings"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/service"
	pkgdto "github.com/alimikegami/point-of-sales/storefront-service/pkg/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/response"
	"github.com/labstack/echo/v4"
)

type ProductController struct {
	service service.ProductService
}

func CreateProductController(e *echo.Group, service service.ProductService) {
	c := ProductController{
		service: service,
	}

	e.GET("/products", c.GetProducts)
	e.GET("/products/brands", c.GetBrands)
	e.GET("/products/:id", c.GetProduct)
}

func (c *ProductController) GetProducts(e echo.Context) error {
	filter := pkgdto.Filter{}
	if err := bind(e, "GetProducts", &filter); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	var (
		resp pkgdto.PaginationResponse
		err  error
	)
	ctx := e.Request().Context()
	switch {
	case strings.TrimSpace(filter.Q) != "":
		resp, err = c.service.SearchProducts(ctx, filter.Q, filter)
	case strings.TrimSpace(filter.Brand) != "":
		resp, err = c.service.ListProductsByBrand(ctx, filter.Brand, filter)
	default:
		resp, err = c.service.ListProducts(ctx, filter)
	}
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfuly retrieved products record", resp)
}

func (c *ProductController) GetBrands(e echo.Context) error {
	brands, err := c.service.ListBrands(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", brands)
}

func (c *ProductController) GetProduct(e echo.Context) error {
	product, err := c.service.GetProduct(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", product)
}
