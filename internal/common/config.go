package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration. Loaded once at process start
// and read-only afterwards.
type Config struct {
	OpenAI   OpenAIConfig
	OCR      OCRConfig
	Filter   FilterConfig
	Analysis AnalysisConfig
	Acquire  AcquireConfig
	Output   OutputConfig
}

// OpenAIConfig holds credentials and model selection for both the embedding
// and the structured-extraction capability.
type OpenAIConfig struct {
	APIKey         string
	BaseURL        string
	ChatModel      string
	EmbeddingModel string
	Temperature    float32
	Timeout        time.Duration
}

// OCRConfig holds the external OCR toolchain configuration.
type OCRConfig struct {
	Pdftoppm  string
	Tesseract string
	Language  string
	DPI       int
	MaxPages  int
}

// FilterConfig holds the relevance-filter stage configuration.
type FilterConfig struct {
	ScoreThreshold float64
	TopLimit       int
	BatchDelay     time.Duration
	UtterancesFile string
}

// AnalysisConfig holds the defect-extraction stage configuration.
type AnalysisConfig struct {
	ScoreThreshold  float64
	OutputPageLimit int
}

// AcquireConfig bounds remote file acquisition.
type AcquireConfig struct {
	MaxDownloadBytes int64
	Timeout          time.Duration
}

// OutputConfig holds artifact output configuration.
type OutputConfig struct {
	Dir string
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			BaseURL:        getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			ChatModel:      getEnv("OPENAI_MODEL", "gpt-4.1-mini"),
			EmbeddingModel: getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			Temperature:    getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:        getEnvAsDuration("OPENAI_TIMEOUT", 90*time.Second),
		},
		OCR: OCRConfig{
			Pdftoppm:  getEnv("OCR_PDFTOPPM", "pdftoppm"),
			Tesseract: getEnv("OCR_TESSERACT", "tesseract"),
			Language:  getEnv("OCR_LANGUAGE", "rus"),
			DPI:       getEnvAsInt("OCR_DPI", 300),
			MaxPages:  getEnvAsInt("OCR_MAX_PAGES", 0),
		},
		Filter: FilterConfig{
			ScoreThreshold: getEnvAsFloat64("SEMANTIC_SCORE_THRESHOLD", 0.5),
			TopLimit:       getEnvAsInt("SEMANTIC_TOP_PAGES", 10),
			BatchDelay:     getEnvAsDuration("SEMANTIC_BATCH_DELAY", 100*time.Millisecond),
			UtterancesFile: getEnv("UTTERANCES_FILE", ""),
		},
		Analysis: AnalysisConfig{
			ScoreThreshold:  getEnvAsFloat64("DEFECT_SCORE_THRESHOLD", 0.5),
			OutputPageLimit: getEnvAsInt("DEFECT_PAGE_LIMIT", 8),
		},
		Acquire: AcquireConfig{
			MaxDownloadBytes: getEnvAsInt64("MAX_DOWNLOAD_BYTES", 50<<20),
			Timeout:          getEnvAsDuration("DOWNLOAD_TIMEOUT", 2*time.Minute),
		},
		Output: OutputConfig{
			Dir: getEnv("OUTPUT_DIR", "./result"),
		},
	}
}

// Validate validates the loaded configuration.
func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return NewAppError(ErrInvalidInput, "OPENAI_API_KEY is required", nil)
	}
	if c.Filter.ScoreThreshold < 0 || c.Filter.ScoreThreshold > 1 {
		return NewAppError(ErrInvalidInput, "SEMANTIC_SCORE_THRESHOLD must be in [0,1]", nil)
	}
	if c.Analysis.ScoreThreshold < 0 || c.Analysis.ScoreThreshold > 1 {
		return NewAppError(ErrInvalidInput, "DEFECT_SCORE_THRESHOLD must be in [0,1]", nil)
	}
	if c.Filter.TopLimit <= 0 {
		return NewAppError(ErrInvalidInput, "SEMANTIC_TOP_PAGES must be positive", nil)
	}
	if c.Analysis.OutputPageLimit <= 0 {
		return NewAppError(ErrInvalidInput, "DEFECT_PAGE_LIMIT must be positive", nil)
	}
	return nil
}

// Helper functions for environment variable parsing.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
