package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/jrkim-kr/echarts-ai-studio/config"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/contract"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/llm"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/service"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/vocabulary"
)

// LoadVocabulary reads the keyword vocabulary from path, or returns the
// embedded default when path is empty.
func LoadVocabulary(path string) (*vocabulary.Vocabulary, error) {
	if path == "" {
		return vocabulary.Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	return vocabulary.Parse(b)
}

// BuildGenerator wires the model client selected by cfg.Provider. A missing
// API key is not an error: the generator runs heuristic-only and says so.
func BuildGenerator(ctx context.Context, cfg config.LLMConfig, vocab *vocabulary.Vocabulary, metrics *service.Metrics, usage service.UsageRecorder) (*service.Generator, error) {
	opts := []service.Option{
		service.WithVocabulary(vocab),
		service.WithMetrics(metrics),
	}
	if usage != nil {
		opts = append(opts, service.WithUsageRecorder(usage))
	}

	key, field := cfg.ModelAPIKey()
	if key == "" {
		opts = append(opts, service.WithMissingCredential(field))
		return service.NewGenerator(opts...), nil
	}

	httpClient := &http.Client{}
	var (
		client llm.Client
		models contract.Models
	)
	switch cfg.Provider {
	case config.ProviderGemini:
		gc, err := llm.NewGeminiClient(ctx, key, "", httpClient)
		if err != nil {
			return nil, err
		}
		client, models = gc, contract.GeminiModels
	default:
		client, models = llm.NewOpenAIClient(key, cfg.OpenAIBaseURL, httpClient), contract.OpenAIModels
	}

	client = llm.Wrap(client,
		llm.RateLimit(cfg.RatePerMinute),
		llm.Timeout(cfg.Timeout),
		llm.Observe(metrics.ObserveModel),
	)
	opts = append(opts, service.WithModel(client, contract.NewBuilder(models, vocab)))
	return service.NewGenerator(opts...), nil
}
