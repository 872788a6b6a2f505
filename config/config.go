package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Firebase FirebaseConfig
	LLM      LLMConfig
	Redis    RedisConfig
	Database DatabaseConfig
	App      AppConfig
}

type ServerConfig struct {
	Port               string
	CORSAllowedOrigins []string
}

// StoreConfig selects the project store backend.
type StoreConfig struct {
	Backend   string // firebase | memory
	CacheSize int
	CacheTTL  time.Duration
	BusyTTL   time.Duration
}

type FirebaseConfig struct {
	CredentialsPath string
	ProjectID       string
	DatabaseURL     string
	AuthRequired    bool
}

type LLMConfig struct {
	Provider      string // openai | gemini
	OpenAIAPIKey  string
	OpenAIBaseURL string
	GeminiAPIKey  string
	Timeout       time.Duration
	RatePerMinute int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type DatabaseConfig struct {
	DSN string
}

type AppConfig struct {
	Environment     string
	Version         string
	UsageReportCron string
	VocabularyPath  string
}

const (
	BackendFirebase = "firebase"
	BackendMemory   = "memory"

	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Store: StoreConfig{
			Backend:   strings.ToLower(getEnv("STORE_BACKEND", BackendFirebase)),
			CacheSize: getEnvAsInt("PROJECT_CACHE_SIZE", 256),
			CacheTTL:  getEnvAsDuration("PROJECT_CACHE_TTL", 30*time.Second),
			BusyTTL:   getEnvAsDuration("SESSION_BUSY_TTL", 2*time.Minute),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			DatabaseURL:     getEnv("FIREBASE_DATABASE_URL", ""),
			AuthRequired:    getEnvAsBool("FIREBASE_AUTH_REQUIRED", false),
		},
		LLM: LoadLLM(),
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Database: DatabaseConfig{
			DSN: getEnv("DB_DSN", ""),
		},
		App: AppConfig{
			Environment:     getEnv("APP_ENV", "development"),
			Version:         getEnv("APP_VERSION", "1.0.0"),
			UsageReportCron: getEnv("USAGE_REPORT_CRON", "0 5 0 * * *"),
			VocabularyPath:  getEnv("VOCABULARY_PATH", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings the service cannot run without. Model
// credentials are optional: without them generation uses the heuristic path.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Store.Backend {
	case BackendMemory:
	case BackendFirebase:
		if c.Firebase.DatabaseURL == "" {
			return fmt.Errorf("FIREBASE_DATABASE_URL is required for STORE_BACKEND=firebase")
		}
		if c.Firebase.CredentialsPath == "" && !c.Firebase.emulated() {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required for STORE_BACKEND=firebase")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", BackendFirebase, BackendMemory, c.Store.Backend)
	}

	if c.Firebase.AuthRequired && c.Firebase.CredentialsPath == "" {
		return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required when FIREBASE_AUTH_REQUIRED is set")
	}

	if c.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}

	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", ProviderOpenAI, ProviderGemini, c.LLM.Provider)
	}

	return nil
}

// emulated reports whether the database URL points at the local emulator,
// which needs no service account.
func (f FirebaseConfig) emulated() bool {
	return !strings.HasPrefix(f.DatabaseURL, "https://") || os.Getenv("FIREBASE_DATABASE_EMULATOR_HOST") != ""
}

// LoadLLM reads only the model settings. Tools that need no store use it
// instead of Load.
func LoadLLM() LLMConfig {
	return LLMConfig{
		Provider:      strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI)),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		Timeout:       getEnvAsDuration("LLM_TIMEOUT", 60*time.Second),
		RatePerMinute: getEnvAsInt("LLM_RATE_PER_MINUTE", 30),
	}
}

// ModelAPIKey returns the credential for the configured provider and the
// name of the variable it comes from.
func (l LLMConfig) ModelAPIKey() (key, field string) {
	if l.Provider == ProviderGemini {
		return l.GeminiAPIKey, "GEMINI_API_KEY"
	}
	return l.OpenAIAPIKey, "OPENAI_API_KEY"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
