package controller

import (
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/service"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/response"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/utils"
	"github.com/labstack/echo/v4"
)

type ChatController struct {
	service service.ChatService
}

func CreateChatController(e *echo.Group, service service.ChatService, optionalAuth echo.MiddlewareFunc) {
	c := ChatController{
		service: service,
	}

	g := e.Group("/chat", optionalAuth)
	g.POST("", c.SendMessage)
	g.GET("/:sessionId", c.GetTranscript)
}

func (c *ChatController) SendMessage(e echo.Context) error {
	payload := dto.ChatRequest{}
	if err := bind(e, "SendMessage", &payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	payload.UserID = utils.ExtractTokenUser(e).UserID

	resp, err := c.service.SendMessage(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ChatController) GetTranscript(e echo.Context) error {
	user := utils.ExtractTokenUser(e)

	transcript, err := c.service.GetTranscript(e.Request().Context(), e.Param("sessionId"), user.UserID)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", transcript)
}
