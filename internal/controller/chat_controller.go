// FILE: internal/controller/chat_controller.go
package controller

import (
	"csupport-chat-be/internal/dto"
	"csupport-chat-be/internal/pkg/serverutils"
	"csupport-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendMessage(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Post("/message", c.SendMessage)
	h.Get("/history/:session_id", c.GetHistory)
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.ChatMessageRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, err.Error())
	}

	resp := c.service.HandleMessage(ctx.UserContext(), &req)
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Message processed", resp)
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	if sessionID == "" {
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, "session_id is required")
	}

	history, err := c.service.History(ctx.UserContext(), sessionID)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusInternalServerError, "Failed to load history")
	}

	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "History loaded", history)
}
