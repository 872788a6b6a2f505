package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/contract"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"
)

func TestGeminiClient_Complete(t *testing.T) {
	var captured map[string]any
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "gemini-2.5-flash-lite:generateContent"), r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": `{"series":[{"type":"pie","data":[]}]}`}},
				},
			}},
			"usageMetadata": map[string]any{
				"promptTokenCount":     40,
				"candidatesTokenCount": 12,
				"totalTokenCount":      52,
			},
		})
	})

	c, err := NewGeminiClient(context.Background(), "test-key", srv.URL+"/", srv.Client())
	require.NoError(t, err)
	assert.Equal(t, "gemini", c.Provider())

	payload := contract.NewBuilder(contract.GeminiModels, nil).Build(contract.Request{Prompt: "파이 차트"})
	out, err := c.Complete(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, `{"series":[{"type":"pie","data":[]}]}`, out.Content)
	assert.Equal(t, 40, out.Usage.PromptTokens)
	assert.Equal(t, 12, out.Usage.CompletionTokens)
	assert.Equal(t, 52, out.Usage.TotalTokens)
	assert.Contains(t, captured, "systemInstruction")
	assert.Contains(t, captured, "generationConfig")
}

func TestGeminiClient_ServerError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":500,"message":"backend failure","status":"INTERNAL"}}`))
	})

	c, err := NewGeminiClient(context.Background(), "test-key", srv.URL+"/", srv.Client())
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), contract.Payload{Model: "gemini-2.5-flash", UserText: "x"})
	assert.True(t, domain.IsModelUnavailable(err))
}
