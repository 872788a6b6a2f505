package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrkim-kr/echarts-ai-studio/config"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/service"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/vocabulary"
)

func TestBuildGenerator(t *testing.T) {
	ctx := context.Background()
	vocab := vocabulary.Default()

	tests := []struct {
		name   string
		cfg    config.LLMConfig
		wantOn bool
	}{
		{name: "no key", cfg: config.LLMConfig{Provider: config.ProviderOpenAI}, wantOn: false},
		{name: "openai", cfg: config.LLMConfig{Provider: config.ProviderOpenAI, OpenAIAPIKey: "sk-test"}, wantOn: true},
		{name: "gemini key only counts for gemini", cfg: config.LLMConfig{Provider: config.ProviderOpenAI, GeminiAPIKey: "g"}, wantOn: false},
		{name: "gemini", cfg: config.LLMConfig{Provider: config.ProviderGemini, GeminiAPIKey: "g"}, wantOn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := BuildGenerator(ctx, tt.cfg, vocab, service.NewMetrics(nil), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOn, gen.ModelConfigured())
		})
	}
}

func TestLoadVocabulary(t *testing.T) {
	v, err := LoadVocabulary("")
	require.NoError(t, err)
	assert.Same(t, vocabulary.Default(), v)

	_, err = LoadVocabulary(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("edit_intent: []\n"), 0o600))
	_, err = LoadVocabulary(path)
	assert.Error(t, err)
}
