package retriever

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"ai-legalchat-be/internal/pkg/logger"
)

// TopK is the fixed result-count parameter sent to the retrieval service.
const TopK = 5

// DefaultTimeout keeps a degraded retrieval service from stalling the
// pipeline. Retrieval is best-effort, so a short bound is fine.
const DefaultTimeout = 5 * time.Second

// ContextRetriever fetches supporting passages for a query. Implementations
// must never fail: on any problem they return empty context.
type ContextRetriever interface {
	Retrieve(ctx context.Context, query string) string
}

type Client struct {
	BaseURL string
	Client  *http.Client
	log     logger.ILogger
}

var _ ContextRetriever = &Client{}

// NewClient creates a retrieval client. An empty baseURL disables retrieval
// entirely: Retrieve returns "" without a network call.
func NewClient(baseURL string, timeout time.Duration, log logger.ILogger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

type retrieveRequest struct {
	Query string `json:"query"`
	K     int    `json:"k"`
}

type retrieveResponse struct {
	Context string `json:"context"`
}

// Retrieve queries the retrieval service for supporting context.
// Every failure path degrades to empty context; the caller always gets a
// string back.
func (c *Client) Retrieve(ctx context.Context, query string) string {
	if c.BaseURL == "" {
		return ""
	}

	payload, err := json.Marshal(retrieveRequest{Query: query, K: TopK})
	if err != nil {
		c.warn("marshal retrieve request", err)
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/retrieve", bytes.NewBuffer(payload))
	if err != nil {
		c.warn("create retrieve request", err)
		return ""
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		c.warn("retrieval service unreachable", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if c.log != nil {
			c.log.Warn("retriever", "retrieval service returned non-success status", map[string]interface{}{
				"status": resp.StatusCode,
			})
		}
		return ""
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		c.warn("read retrieve response", err)
		return ""
	}

	var result retrieveResponse
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		c.warn("malformed retrieve payload", err)
		return ""
	}

	return result.Context
}

func (c *Client) warn(message string, err error) {
	if c.log == nil {
		return
	}
	c.log.Warn("retriever", message, map[string]interface{}{"error": err.Error()})
}
