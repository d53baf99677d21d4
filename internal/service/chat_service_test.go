package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-legalchat-be/internal/config"
	"ai-legalchat-be/internal/dto"
	"ai-legalchat-be/internal/pkg/serverutils"
	"ai-legalchat-be/internal/repository/memory"
	"ai-legalchat-be/pkg/llm"
	"ai-legalchat-be/pkg/rag/prompt"
)

// --- Test doubles ---

type stubModelClient struct {
	chatCalls     int
	generateCalls int
	lastRequest   *llm.ModelRequest
	response      *llm.ModelResponse
	err           error
	healthErr     error
}

func (s *stubModelClient) Chat(ctx context.Context, req *llm.ModelRequest) (*llm.ModelResponse, error) {
	s.chatCalls++
	s.lastRequest = req
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func (s *stubModelClient) Generate(ctx context.Context, req *llm.ModelRequest) (*llm.ModelResponse, error) {
	s.generateCalls++
	s.lastRequest = req
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func (s *stubModelClient) Health(ctx context.Context) error {
	return s.healthErr
}

type stubRetriever struct {
	context string
}

func (s *stubRetriever) Retrieve(ctx context.Context, query string) string {
	return s.context
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func defaultGeneration() config.GenerationConfig {
	return config.GenerationConfig{
		MaxLength:         512,
		Temperature:       0.7,
		TopP:              0.9,
		StrictTemperature: 0.2,
		RepetitionPenalty: 1.1,
	}
}

type fixture struct {
	service  IChatService
	model    *stubModelClient
	repo     *memory.ConversationRepository
	retrieve *stubRetriever
}

func newFixture(retrieved string, strictOnly bool) *fixture {
	model := &stubModelClient{
		response: &llm.ModelResponse{Response: "assistant reply", ModelName: "lawgpt-7b"},
	}
	repo := memory.NewConversationRepository()
	ret := &stubRetriever{context: retrieved}
	builder := prompt.NewBuilder("Indian law", 40, strictOnly)

	return &fixture{
		service:  NewChatService(model, ret, builder, repo, defaultGeneration(), nopLogger{}),
		model:    model,
		repo:     repo,
		retrieve: ret,
	}
}

// --- Chat flow ---

func TestChatBlankMessageRejected(t *testing.T) {
	f := newFixture("", false)

	for _, message := range []string{"", "   ", "\n\t"} {
		_, err := f.service.Chat(context.Background(), &dto.ChatRequest{Message: message, SessionID: "s1"})

		var appErr *serverutils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	}

	assert.Equal(t, 0, f.model.chatCalls, "model must not be called for blank messages")
	_, found := f.repo.Get("s1")
	assert.False(t, found, "history must not be created for rejected requests")
}

func TestChatGroundedFlow(t *testing.T) {
	retrieved := "Section 420 of the Indian Penal Code punishes cheating and dishonestly inducing delivery of property."
	f := newFixture(retrieved, false)

	res, err := f.service.Chat(context.Background(), &dto.ChatRequest{
		Message:   "What is Section 420?",
		SessionID: "s1",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.model.chatCalls, "model called once")
	assert.Contains(t, f.model.lastRequest.Message, retrieved, "strict template embeds context verbatim")
	assert.Contains(t, f.model.lastRequest.Message, "What is Section 420?", "prompt contains the literal question")
	assert.Equal(t, 0.2, f.model.lastRequest.Options.Temperature, "grounded answers use the strict profile")
	assert.Equal(t, 1.1, f.model.lastRequest.Options.RepetitionPenalty)

	assert.Equal(t, "assistant reply", res.Response)
	assert.Equal(t, "s1", res.SessionID)
	assert.Equal(t, "lawgpt-7b", res.ModelName)
	assert.False(t, res.Timestamp.IsZero())

	conv, found := f.repo.Get("s1")
	require.True(t, found)
	require.Equal(t, 1, conv.Len())
	assert.Equal(t, "What is Section 420?", conv.Exchanges[0].User)
	assert.Equal(t, "assistant reply", conv.Exchanges[0].Assistant)
}

func TestChatFallbackFlowWithoutContext(t *testing.T) {
	f := newFixture("", false)

	_, err := f.service.Chat(context.Background(), &dto.ChatRequest{
		Message:   "What is anticipatory bail?",
		SessionID: "s1",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.model.chatCalls)
	assert.Contains(t, f.model.lastRequest.Message, "general knowledge")
	assert.Equal(t, 0.7, f.model.lastRequest.Options.Temperature, "fallback keeps the default profile")
	assert.Zero(t, f.model.lastRequest.Options.RepetitionPenalty)
}

func TestChatGeneratesSessionIDWhenAbsent(t *testing.T) {
	f := newFixture("", false)

	res, err := f.service.Chat(context.Background(), &dto.ChatRequest{Message: "hello"})
	require.NoError(t, err)
	require.NotEmpty(t, res.SessionID)

	_, found := f.repo.Get(res.SessionID)
	assert.True(t, found, "history stored under the generated session key")
}

func TestChatModelFailureLeavesHistoryUntouched(t *testing.T) {
	f := newFixture("", false)

	// Seed one successful turn.
	_, err := f.service.Chat(context.Background(), &dto.ChatRequest{Message: "first", SessionID: "s1"})
	require.NoError(t, err)

	f.model.err = &llm.ModelServiceError{Message: "model call timed out"}
	_, err = f.service.Chat(context.Background(), &dto.ChatRequest{Message: "second", SessionID: "s1"})

	var modelErr *llm.ModelServiceError
	require.ErrorAs(t, err, &modelErr)

	conv, found := f.repo.Get("s1")
	require.True(t, found)
	assert.Equal(t, 1, conv.Len(), "failed turn must not be recorded")
	assert.Equal(t, "first", conv.Exchanges[0].User)
}

func TestChatHistoryWindowAndSerialization(t *testing.T) {
	f := newFixture("", false)

	for i := 1; i <= 11; i++ {
		f.model.response = &llm.ModelResponse{Response: fmt.Sprintf("a%d", i)}
		_, err := f.service.Chat(context.Background(), &dto.ChatRequest{
			Message:   fmt.Sprintf("q%d", i),
			SessionID: "s1",
		})
		require.NoError(t, err)
	}

	conv, found := f.repo.Get("s1")
	require.True(t, found)
	assert.Equal(t, 10, conv.Len(), "window capped at 10")
	assert.Equal(t, "q2", conv.Exchanges[0].User, "turn #1 discarded")
	assert.Equal(t, "q11", conv.Exchanges[9].User)

	// The 11th call saw the first 10 turns serialized oldest-first.
	history := f.model.lastRequest.History
	require.Len(t, history, 20)
	assert.Equal(t, llm.HistoryMessage{Role: "user", Content: "q1"}, history[0])
	assert.Equal(t, llm.HistoryMessage{Role: "assistant", Content: "a1"}, history[1])
	assert.Equal(t, llm.HistoryMessage{Role: "assistant", Content: "a10"}, history[19])
}

func TestChatCallerOptionsOverrideDefaults(t *testing.T) {
	f := newFixture("", false)

	_, err := f.service.Chat(context.Background(), &dto.ChatRequest{
		Message:   "hello",
		SessionID: "s1",
		Options: &dto.GenerationOptionsDTO{
			MaxLength:   128,
			Temperature: 0.5,
		},
	})
	require.NoError(t, err)

	opts := f.model.lastRequest.Options
	assert.Equal(t, 128, opts.MaxLength)
	assert.Equal(t, 0.5, opts.Temperature)
	assert.Equal(t, 0.9, opts.TopP, "unset fields keep the configured default")
}

func TestChatStrictOnlyRefusesWithoutModelCall(t *testing.T) {
	f := newFixture("", true)

	res, err := f.service.Chat(context.Background(), &dto.ChatRequest{
		Message:   "What is Section 302?",
		SessionID: "s1",
	})
	require.NoError(t, err)

	assert.Equal(t, prompt.RefusalMessage, res.Response)
	assert.Equal(t, 0, f.model.chatCalls, "refusal must skip the model")
	_, found := f.repo.Get("s1")
	assert.False(t, found, "refusal must not mutate history")
}

// --- Generate flow ---

func TestGenerateBlankPromptRejected(t *testing.T) {
	f := newFixture("", false)

	_, err := f.service.Generate(context.Background(), &dto.GenerateRequest{Prompt: "  "})

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, 0, f.model.generateCalls)
}

func TestGenerateStateless(t *testing.T) {
	f := newFixture("substantial context that would trigger grounding in the chat flow", false)

	res, err := f.service.Generate(context.Background(), &dto.GenerateRequest{Prompt: "raw prompt"})
	require.NoError(t, err)

	assert.Equal(t, 1, f.model.generateCalls)
	assert.Equal(t, "raw prompt", f.model.lastRequest.Message, "no prompt engineering on generate")
	assert.Empty(t, f.model.lastRequest.History, "no history on generate")
	assert.Equal(t, "assistant reply", res.Response)
}

// --- History operations ---

func TestGetHistoryEmptyForUnknownSession(t *testing.T) {
	f := newFixture("", false)

	res, err := f.service.GetHistory(context.Background(), "missing")
	require.NoError(t, err)

	assert.Equal(t, "missing", res.SessionID)
	assert.NotNil(t, res.History)
	assert.Empty(t, res.History)
}

func TestDeleteSessionThenGetHistory(t *testing.T) {
	f := newFixture("", false)

	_, err := f.service.Chat(context.Background(), &dto.ChatRequest{Message: "hello", SessionID: "s1"})
	require.NoError(t, err)

	del, err := f.service.DeleteSession(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", del.SessionID)

	res, err := f.service.GetHistory(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, res.History)

	// Deleting an absent session is idempotent.
	_, err = f.service.DeleteSession(context.Background(), "s1")
	assert.NoError(t, err)
}

// --- Health ---

func TestHealthReflectsModelServer(t *testing.T) {
	f := newFixture("", false)

	res := f.service.Health(context.Background())
	assert.Equal(t, "ok", res.Status)
	assert.Equal(t, "online", res.ModelServer)

	f.model.healthErr = errors.New("connection refused")
	res = f.service.Health(context.Background())
	assert.Equal(t, "degraded", res.Status)
	assert.Equal(t, "offline", res.ModelServer)
}

func TestChatTrimsMessageBeforeRetrieval(t *testing.T) {
	f := newFixture("", false)

	_, err := f.service.Chat(context.Background(), &dto.ChatRequest{
		Message:   "  What is Section 420?  ",
		SessionID: "s1",
	})
	require.NoError(t, err)

	conv, _ := f.repo.Get("s1")
	assert.Equal(t, "What is Section 420?", conv.Exchanges[0].User)
	assert.True(t, strings.Contains(f.model.lastRequest.Message, "What is Section 420?"))
}
