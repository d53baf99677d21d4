package controller

import (
	"github.com/gofiber/fiber/v2"

	"ai-legalchat-be/internal/dto"
	"ai-legalchat-be/internal/pkg/serverutils"
	"ai-legalchat-be/internal/service"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	Generate(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.Chat)
	r.Post("/generate", c.Generate)
	r.Get("/chat/:sessionId", c.GetHistory)
	r.Delete("/chat/:sessionId", c.DeleteSession)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("invalid request body")
	}

	if req.Options != nil {
		if err := serverutils.ValidateRequest(req.Options); err != nil {
			return err
		}
	}

	res, err := c.chatService.Chat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *chatController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("invalid request body")
	}

	if req.Options != nil {
		if err := serverutils.ValidateRequest(req.Options); err != nil {
			return err
		}
	}

	res, err := c.chatService.Generate(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("sessionId")

	res, err := c.chatService.GetHistory(ctx.Context(), sessionID)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *chatController) DeleteSession(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("sessionId")

	res, err := c.chatService.DeleteSession(ctx.Context(), sessionID)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
