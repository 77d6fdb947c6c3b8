package controller

import (
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/service"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/response"
	"github.com/labstack/echo/v4"
)

type UserController struct {
	service service.UserService
}

func CreateUserController(e *echo.Group, service service.UserService) {
	uc := UserController{
		service: service,
	}
	e.POST("/users/register", uc.Register)
	e.POST("/users/login", uc.Login)
}

func (c *UserController) Register(e echo.Context) error {
	payload := dto.UserRequest{}
	if err := bind(e, "Register", &payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	user, err := c.service.Register(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "user registered", user)
}

func (c *UserController) Login(e echo.Context) error {
	payload := dto.LoginRequest{}
	if err := bind(e, "Login", &payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	respPayload, err := c.service.Login(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", respPayload)
}
