package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"ai-legalchat-be/internal/config"
	"ai-legalchat-be/internal/dto"
	"ai-legalchat-be/internal/pkg/logger"
	"ai-legalchat-be/internal/pkg/serverutils"
	"ai-legalchat-be/internal/repository/contract"
	"ai-legalchat-be/pkg/llm"
	"ai-legalchat-be/pkg/rag/prompt"
	"ai-legalchat-be/pkg/rag/retriever"
	"ai-legalchat-be/pkg/store"
)

// IChatService defines the request orchestrator
type IChatService interface {
	Chat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error)
	Generate(ctx context.Context, request *dto.GenerateRequest) (*dto.GenerateResponse, error)
	GetHistory(ctx context.Context, sessionID string) (*dto.GetHistoryResponse, error)
	DeleteSession(ctx context.Context, sessionID string) (*dto.DeleteSessionResponse, error)
	Health(ctx context.Context) *dto.HealthResponse
}

// chatService composes the retriever, prompt builder, model client, and
// conversation store for each inbound request.
type chatService struct {
	modelClient   llm.ModelClient
	retriever     retriever.ContextRetriever
	promptBuilder *prompt.Builder
	convRepo      contract.ConversationRepository
	generation    config.GenerationConfig
	log           logger.ILogger
}

func NewChatService(
	modelClient llm.ModelClient,
	contextRetriever retriever.ContextRetriever,
	promptBuilder *prompt.Builder,
	convRepo contract.ConversationRepository,
	generation config.GenerationConfig,
	log logger.ILogger,
) IChatService {
	return &chatService{
		modelClient:   modelClient,
		retriever:     contextRetriever,
		promptBuilder: promptBuilder,
		convRepo:      convRepo,
		generation:    generation,
		log:           log,
	}
}

// Chat runs the full pipeline: validate, resolve session, retrieve
// context, build prompt, call the model, record the exchange.
func (s *chatService) Chat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	message := strings.TrimSpace(request.Message)
	if message == "" {
		return nil, serverutils.NewBadRequest("message is required")
	}

	sessionID := request.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	conversation, found := s.convRepo.Get(sessionID)
	if !found {
		conversation = store.NewConversation(sessionID)
	}

	retrieved := s.retriever.Retrieve(ctx, message)

	built := s.promptBuilder.Build(retrieved, message)
	if built.Refuse {
		// Strict-only policy with no usable context: answer with the
		// canned refusal, skip the model, leave history untouched.
		s.log.Info("chat", "refused without model call", map[string]interface{}{
			"session_id": sessionID,
		})
		return &dto.ChatResponse{
			Response:  prompt.RefusalMessage,
			SessionID: sessionID,
			Timestamp: time.Now().UTC(),
		}, nil
	}

	modelReq := &llm.ModelRequest{
		Message: built.Prompt,
		Options: s.resolveOptions(request.Options, built.Grounded),
		History: serializeHistory(conversation),
	}

	modelResp, err := s.modelClient.Chat(ctx, modelReq)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	conversation.Append(message, modelResp.Response, now)
	s.convRepo.Save(conversation)

	s.log.Info("chat", "chat turn completed", map[string]interface{}{
		"session_id":  sessionID,
		"grounded":    built.Grounded,
		"history_len": conversation.Len(),
	})

	return &dto.ChatResponse{
		Response:  modelResp.Response,
		SessionID: sessionID,
		ModelName: modelResp.ModelName,
		Timestamp: now,
	}, nil
}

// Generate is the stateless variant: no retrieval, no prompt
// engineering, no history.
func (s *chatService) Generate(ctx context.Context, request *dto.GenerateRequest) (*dto.GenerateResponse, error) {
	promptText := strings.TrimSpace(request.Prompt)
	if promptText == "" {
		return nil, serverutils.NewBadRequest("prompt is required")
	}

	modelReq := &llm.ModelRequest{
		Message: promptText,
		Options: s.resolveOptions(request.Options, false),
	}

	modelResp, err := s.modelClient.Generate(ctx, modelReq)
	if err != nil {
		return nil, err
	}

	return &dto.GenerateResponse{
		Response:  modelResp.Response,
		Timestamp: time.Now().UTC(),
	}, nil
}

func (s *chatService) GetHistory(ctx context.Context, sessionID string) (*dto.GetHistoryResponse, error) {
	entries := make([]dto.HistoryEntryDTO, 0, store.MaxExchanges)

	if conversation, found := s.convRepo.Get(sessionID); found {
		for _, ex := range conversation.Exchanges {
			entries = append(entries, dto.HistoryEntryDTO{
				User:      ex.User,
				Assistant: ex.Assistant,
				Timestamp: ex.CreatedAt,
			})
		}
	}

	return &dto.GetHistoryResponse{
		SessionID: sessionID,
		History:   entries,
	}, nil
}

func (s *chatService) DeleteSession(ctx context.Context, sessionID string) (*dto.DeleteSessionResponse, error) {
	s.convRepo.Delete(sessionID)
	return &dto.DeleteSessionResponse{
		Message:   "Session deleted",
		SessionID: sessionID,
	}, nil
}

// Health proxies the downstream health check; the gateway itself is
// healthy as long as the process serves requests.
func (s *chatService) Health(ctx context.Context) *dto.HealthResponse {
	resp := &dto.HealthResponse{
		Status:    "ok",
		Backend:   "ai-legalchat-gateway",
		Timestamp: time.Now().UTC(),
	}

	if err := s.modelClient.Health(ctx); err != nil {
		s.log.Warn("health", "model server health check failed", map[string]interface{}{
			"error": err.Error(),
		})
		resp.Status = "degraded"
		resp.ModelServer = "offline"
		return resp
	}

	resp.ModelServer = "online"
	return resp
}

// resolveOptions merges caller overrides onto the configured defaults.
// Grounded answers run with the stricter sampling profile.
func (s *chatService) resolveOptions(overrides *dto.GenerationOptionsDTO, grounded bool) llm.GenerationOptions {
	opts := llm.GenerationOptions{
		MaxLength:   s.generation.MaxLength,
		Temperature: s.generation.Temperature,
		TopP:        s.generation.TopP,
	}
	if grounded {
		opts.Temperature = s.generation.StrictTemperature
		opts.RepetitionPenalty = s.generation.RepetitionPenalty
	}

	if overrides != nil {
		if overrides.MaxLength > 0 {
			opts.MaxLength = overrides.MaxLength
		}
		if overrides.Temperature > 0 {
			opts.Temperature = overrides.Temperature
		}
		if overrides.TopP > 0 {
			opts.TopP = overrides.TopP
		}
	}
	return opts
}

// serializeHistory flattens the conversation into the role/content wire
// format the model server expects, oldest first.
func serializeHistory(conversation *store.Conversation) []llm.HistoryMessage {
	if conversation.Len() == 0 {
		return nil
	}
	history := make([]llm.HistoryMessage, 0, conversation.Len()*2)
	for _, ex := range conversation.Exchanges {
		history = append(history,
			llm.HistoryMessage{Role: "user", Content: ex.User},
			llm.HistoryMessage{Role: "assistant", Content: ex.Assistant},
		)
	}
	return history
}
