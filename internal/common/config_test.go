package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg := LoadConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "gpt-4.1-mini", cfg.OpenAI.ChatModel)
	assert.Equal(t, "text-embedding-3-small", cfg.OpenAI.EmbeddingModel)
	assert.Equal(t, 0.5, cfg.Filter.ScoreThreshold)
	assert.Equal(t, 10, cfg.Filter.TopLimit)
	assert.Equal(t, 100*time.Millisecond, cfg.Filter.BatchDelay)
	assert.Equal(t, 8, cfg.Analysis.OutputPageLimit)
	assert.Equal(t, "rus", cfg.OCR.Language)
	assert.Equal(t, 300, cfg.OCR.DPI)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SEMANTIC_SCORE_THRESHOLD", "0.7")
	t.Setenv("SEMANTIC_TOP_PAGES", "5")
	t.Setenv("SEMANTIC_BATCH_DELAY", "250ms")
	t.Setenv("OUTPUT_DIR", "/tmp/reports")

	cfg := LoadConfig()
	assert.Equal(t, 0.7, cfg.Filter.ScoreThreshold)
	assert.Equal(t, 5, cfg.Filter.TopLimit)
	assert.Equal(t, 250*time.Millisecond, cfg.Filter.BatchDelay)
	assert.Equal(t, "/tmp/reports", cfg.Output.Dir)
}

func TestValidateRejectsBadConfig(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	cfg := LoadConfig()
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SEMANTIC_SCORE_THRESHOLD", "1.5")
	cfg = LoadConfig()
	assert.Error(t, cfg.Validate())
}

func TestAppErrorUnwrapsSentinelAndCause(t *testing.T) {
	cause := assert.AnError
	err := NewAppError(ErrExtraction, "OCR failed", cause)

	assert.ErrorIs(t, err, ErrExtraction)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "OCR failed")
}

func TestUserMessage(t *testing.T) {
	assert.Contains(t, UserMessage(NewAppError(ErrAcquisition, "x", nil)), "PDF")
	assert.Contains(t, UserMessage(NewAppError(ErrFilterService, "x", nil)), "позже")
	assert.NotEmpty(t, UserMessage(assert.AnError))
}
