package llm

import (
	"context"
	"fmt"
)

// HistoryMessage is a conversation turn in the wire format the model
// server expects ("user" or "assistant" roles).
type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerationOptions carries the sampling parameters for one model call.
// Zero values mean "use the server default" and are omitted on the wire.
type GenerationOptions struct {
	MaxLength         int
	Temperature       float64
	TopP              float64
	RepetitionPenalty float64
}

// ModelRequest is a single inference request.
type ModelRequest struct {
	Message string
	Options GenerationOptions
	History []HistoryMessage
}

// ModelResponse is the model server's reply.
type ModelResponse struct {
	Response  string
	ModelName string
}

// ModelClient defines the contract for the downstream inference service.
type ModelClient interface {
	// Chat sends an engineered prompt plus serialized history.
	Chat(ctx context.Context, req *ModelRequest) (*ModelResponse, error)

	// Generate sends a raw prompt without history.
	Generate(ctx context.Context, req *ModelRequest) (*ModelResponse, error)

	// Health checks whether the model server is reachable.
	Health(ctx context.Context) error
}

// ModelServiceError covers every way a model call can fail: non-success
// status (with downstream detail when the payload carries one), connection
// failure, or the per-call timeout.
type ModelServiceError struct {
	StatusCode int // 0 when the request never reached the server
	Message    string
}

func (e *ModelServiceError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("model service error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("model service unreachable: %s", e.Message)
}
