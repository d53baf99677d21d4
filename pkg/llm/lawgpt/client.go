package lawgpt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-legalchat-be/pkg/llm"
)

// CallTimeout bounds every inference call. The model server can take tens
// of seconds on long generations; anything past this is surfaced as a
// ModelServiceError rather than left hanging.
const CallTimeout = 60 * time.Second

type Client struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// Ensure Client implements llm.ModelClient
var _ llm.ModelClient = &Client{}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout: CallTimeout,
		},
	}
}

// --- Request/Response structs (internal to this package) ---

type inferenceRequest struct {
	Message             string               `json:"message"`
	MaxLength           int                  `json:"max_length,omitempty"`
	Temperature         float64              `json:"temperature,omitempty"`
	TopP                float64              `json:"top_p,omitempty"`
	RepetitionPenalty   float64              `json:"repetition_penalty,omitempty"`
	ConversationHistory []llm.HistoryMessage `json:"conversation_history,omitempty"`
}

type inferenceResponse struct {
	Response  string `json:"response"`
	ModelName string `json:"model_name,omitempty"`
}

type errorResponse struct {
	Error  string `json:"error,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// --- Interface Implementation ---

func (c *Client) Chat(ctx context.Context, req *llm.ModelRequest) (*llm.ModelResponse, error) {
	return c.call(ctx, "/chat", req)
}

func (c *Client) Generate(ctx context.Context, req *llm.ModelRequest) (*llm.ModelResponse, error) {
	return c.call(ctx, "/generate", req)
}

func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/health", nil)
	if err != nil {
		return &llm.ModelServiceError{Message: err.Error()}
	}
	req.Header.Set("X-API-Key", c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return &llm.ModelServiceError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &llm.ModelServiceError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("health check returned status %d", resp.StatusCode),
		}
	}
	return nil
}

func (c *Client) call(ctx context.Context, endpoint string, req *llm.ModelRequest) (*llm.ModelResponse, error) {
	payload := inferenceRequest{
		Message:             req.Message,
		MaxLength:           req.Options.MaxLength,
		Temperature:         req.Options.Temperature,
		TopP:                req.Options.TopP,
		RepetitionPenalty:   req.Options.RepetitionPenalty,
		ConversationHistory: req.History,
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, &llm.ModelServiceError{Message: fmt.Sprintf("marshal request: %v", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+endpoint, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, &llm.ModelServiceError{Message: fmt.Sprintf("create request: %v", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-API-Key", c.APIKey)

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &llm.ModelServiceError{Message: "model call timed out"}
		}
		return nil, &llm.ModelServiceError{Message: err.Error()}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &llm.ModelServiceError{Message: fmt.Sprintf("read response: %v", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &llm.ModelServiceError{
			StatusCode: resp.StatusCode,
			Message:    extractErrorDetail(bodyBytes, resp.StatusCode),
		}
	}

	var infResp inferenceResponse
	if err := json.Unmarshal(bodyBytes, &infResp); err != nil {
		return nil, &llm.ModelServiceError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unmarshal response: %v", err),
		}
	}

	return &llm.ModelResponse{
		Response:  infResp.Response,
		ModelName: infResp.ModelName,
	}, nil
}

// extractErrorDetail pulls the downstream-provided message out of an error
// payload when present, falling back to the bare status.
func extractErrorDetail(body []byte, status int) string {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		if errResp.Error != "" {
			return errResp.Error
		}
		if errResp.Detail != "" {
			return errResp.Detail
		}
	}
	return fmt.Sprintf("model server returned status %d", status)
}
