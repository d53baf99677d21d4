package dto

import "time"

// GenerationOptionsDTO lets clients override the default sampling
// parameters. Absent fields keep the configured defaults.
type GenerationOptionsDTO struct {
	MaxLength   int     `json:"maxLength,omitempty" validate:"omitempty,min=1,max=2048"`
	Temperature float64 `json:"temperature,omitempty" validate:"omitempty,gt=0,lte=2"`
	TopP        float64 `json:"topP,omitempty" validate:"omitempty,gt=0,lte=1"`
}

type ChatRequest struct {
	Message   string                `json:"message"`
	SessionID string                `json:"sessionId,omitempty"`
	Options   *GenerationOptionsDTO `json:"options,omitempty"`
}

type ChatResponse struct {
	Response  string    `json:"response"`
	SessionID string    `json:"sessionId"`
	ModelName string    `json:"modelName,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type GenerateRequest struct {
	Prompt  string                `json:"prompt"`
	Options *GenerationOptionsDTO `json:"options,omitempty"`
}

type GenerateResponse struct {
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryEntryDTO is one user/assistant pair in a session's history.
type HistoryEntryDTO struct {
	User      string    `json:"user"`
	Assistant string    `json:"assistant"`
	Timestamp time.Time `json:"timestamp"`
}

type GetHistoryResponse struct {
	SessionID string            `json:"sessionId"`
	History   []HistoryEntryDTO `json:"history"`
}

type DeleteSessionResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

type HealthResponse struct {
	Status      string    `json:"status"`
	Backend     string    `json:"backend"`
	ModelServer string    `json:"modelServer,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
