package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr          string
	LLMBaseURL    string
	LLMAPIKey     string
	LLMModel      string
	ChatTimeout   time.Duration
	KnowledgePath string
	LogDir        string
}

func LoadConfig() Config {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	return Config{
		Addr:          getEnv("ADDR", ":8000"),
		LLMBaseURL:    getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMAPIKey:     getEnv("LLM_API_KEY", os.Getenv("OPENAI_API_KEY")),
		LLMModel:      getEnv("LLM_MODEL", "gpt-4o-mini"),
		ChatTimeout:   getDuration("CHAT_TIMEOUT", 30*time.Second),
		KnowledgePath: getEnv("KNOWLEDGE_PATH", ""),
		LogDir:        getEnv("LOG_DIR", "./logs"),
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
