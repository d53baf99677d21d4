package bootstrap

import (
	"time"

	"ai-legalchat-be/internal/config"
	"ai-legalchat-be/internal/controller"
	"ai-legalchat-be/internal/pkg/logger"
	"ai-legalchat-be/internal/repository/memory"
	"ai-legalchat-be/internal/service"
	"ai-legalchat-be/pkg/llm/lawgpt"
	"ai-legalchat-be/pkg/rag/prompt"
	"ai-legalchat-be/pkg/rag/retriever"
)

type Container struct {
	// Controllers
	ChatController   controller.IChatController
	HealthController controller.IHealthController

	// Exposed for main.go (Sync on shutdown)
	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Outbound Clients
	modelClient := lawgpt.NewClient(cfg.Model.BaseURL, cfg.Model.APIKey)

	contextRetriever := retriever.NewClient(
		cfg.Rag.BaseURL,
		time.Duration(cfg.Rag.TimeoutSeconds)*time.Second,
		sysLogger,
	)
	if cfg.Rag.BaseURL == "" {
		sysLogger.Info("bootstrap", "retrieval disabled (RAG_SERVICE_URL not set)", nil)
	}

	// 3. Pipeline Components
	promptBuilder := prompt.NewBuilder(
		cfg.Prompt.Jurisdiction,
		cfg.Prompt.ContextThreshold,
		cfg.Prompt.StrictOnly,
	)

	convRepo := memory.NewConversationRepository()

	chatService := service.NewChatService(
		modelClient,
		contextRetriever,
		promptBuilder,
		convRepo,
		cfg.Generation,
		sysLogger,
	)

	// 4. Controllers
	return &Container{
		ChatController:   controller.NewChatController(chatService),
		HealthController: controller.NewHealthController(chatService),
		Logger:           sysLogger,
	}
}
