package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Keys     APIKeys
	Ai       AIConfig
	Chat     ChatConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type APIKeys struct {
	GoogleGemini string
	OpenAI       string
	ClickTopic   string // Suggestion-click analytics topic
}

type AIConfig struct {
	OllamaBaseURL string
	OllamaModel   string
	OpenAIModel   string
}

type ChatConfig struct {
	SupportInbox        string
	AutoResolveDelay    int // seconds
	EscalationThreshold int // unresolved turns before automatic escalation
	FailureWindow       int // seconds, rolling TTL on the failure counter
	AnswerCacheTTL      int // seconds
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "CSupport"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			OpenAI:       getEnv("OPENAI_API_KEY", ""),
			ClickTopic:   getEnv("SUGGESTION_CLICK_TOPIC_NAME", "SUGGESTION_CLICKED"),
		},
		Ai: AIConfig{
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:   getEnv("OLLAMA_MODEL", "llama3.1:8b"),
			OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
		Chat: ChatConfig{
			SupportInbox:        getEnv("SUPPORT_INBOX", ""),
			AutoResolveDelay:    getEnvAsInt("AUTO_RESOLVE_DELAY_SECONDS", 120),
			EscalationThreshold: getEnvAsInt("FAILURE_ESCALATION_THRESHOLD", 5),
			FailureWindow:       getEnvAsInt("FAILURE_WINDOW_SECONDS", 900),
			AnswerCacheTTL:      getEnvAsInt("ANSWER_CACHE_TTL_SECONDS", 3600),
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
