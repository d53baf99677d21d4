package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Model      ModelConfig
	Rag        RagConfig
	Prompt     PromptConfig
	Generation GenerationConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RateLimitPerMinute int
}

type ModelConfig struct {
	BaseURL string
	APIKey  string
}

type RagConfig struct {
	BaseURL        string // empty disables retrieval
	TimeoutSeconds int
}

type PromptConfig struct {
	Jurisdiction     string
	ContextThreshold int
	// StrictOnly switches the empty-context behavior from
	// general-knowledge fallback to a canned refusal without a model call.
	StrictOnly bool
}

type GenerationConfig struct {
	MaxLength         int
	Temperature       float64
	TopP              float64
	StrictTemperature float64
	RepetitionPenalty float64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "5000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/gateway.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000"),
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
		},
		Model: ModelConfig{
			BaseURL: getEnv("MODEL_SERVER_URL", "http://localhost:8000"),
			APIKey:  getEnv("MODEL_API_KEY", ""),
		},
		Rag: RagConfig{
			BaseURL:        getEnv("RAG_SERVICE_URL", ""),
			TimeoutSeconds: getEnvAsInt("RAG_TIMEOUT_SECONDS", 5),
		},
		Prompt: PromptConfig{
			Jurisdiction:     getEnv("PROMPT_JURISDICTION", "Indian law"),
			ContextThreshold: getEnvAsInt("PROMPT_CONTEXT_THRESHOLD", 40),
			StrictOnly:       getEnvAsBool("PROMPT_STRICT_ONLY", false),
		},
		Generation: GenerationConfig{
			MaxLength:         getEnvAsInt("GEN_MAX_LENGTH", 512),
			Temperature:       getEnvAsFloat("GEN_TEMPERATURE", 0.7),
			TopP:              getEnvAsFloat("GEN_TOP_P", 0.9),
			StrictTemperature: getEnvAsFloat("GEN_STRICT_TEMPERATURE", 0.2),
			RepetitionPenalty: getEnvAsFloat("GEN_REPETITION_PENALTY", 1.1),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
