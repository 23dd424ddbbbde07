package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"TUTOR_CONFIG", "PORT", "DEFAULT_LLM", "GEMINI_API_KEY", "GEMINI_MODEL",
		"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL", "TUTOR_SUBJECTS",
		"LLM_RATE_LIMIT", "LLM_RATE_BURST", "REQUEST_TIMEOUT", "LOG_LEVEL",
		"LOG_FORMAT", "TELEGRAM_BOT_TOKEN", "WEBHOOK_URL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "gemini", cfg.DefaultLLM)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, []string{"math", "physics", "chemistry", "cs", "general"}, cfg.Subjects)
	assert.Equal(t, 70*time.Second, cfg.RequestTimeout)
	assert.Empty(t, cfg.OpenAIAPIKey)
}

func TestLoad_MissingDefaultKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "o-key")

	_, err := Load()
	assert.ErrorContains(t, err, "GEMINI_API_KEY")

	t.Setenv("DEFAULT_LLM", "openai")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.DefaultLLM)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "tutor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9090"
default_llm: gpt
openai_api_key: from-file
openai_model: gpt-4.1-mini
subjects: [math, physics]
rate_limit: 2.5
request_timeout: 30s
log_level: debug
`), 0o600))
	t.Setenv("TUTOR_CONFIG", path)
	t.Setenv("OPENAI_MODEL", "gpt-5-mini")
	t.Setenv("TUTOR_SUBJECTS", "chemistry, cs ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "gpt", cfg.DefaultLLM)
	assert.Equal(t, "from-file", cfg.OpenAIAPIKey)
	assert.Equal(t, "gpt-5-mini", cfg.OpenAIModel)
	assert.Equal(t, []string{"chemistry", "cs"}, cfg.Subjects)
	assert.Equal(t, 2.5, cfg.RateLimit)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_BadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-key")

	t.Setenv("LLM_RATE_LIMIT", "fast")
	_, err := Load()
	assert.ErrorContains(t, err, "LLM_RATE_LIMIT")

	t.Setenv("LLM_RATE_LIMIT", "")
	t.Setenv("REQUEST_TIMEOUT", "70")
	_, err = Load()
	assert.ErrorContains(t, err, "REQUEST_TIMEOUT")

	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("TUTOR_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = Load()
	assert.Error(t, err)
}

func TestValidate_UnknownEngine(t *testing.T) {
	cfg := defaults()
	cfg.DefaultLLM = "claude"
	assert.ErrorContains(t, cfg.Validate(), "unknown default llm")
}
