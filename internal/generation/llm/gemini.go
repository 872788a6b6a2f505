package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	genai "google.golang.org/genai"

	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/contract"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"
)

const providerGemini = "gemini"

// GeminiClient is a thin wrapper around the official genai client.
type GeminiClient struct {
	cli *genai.Client
}

func NewGeminiClient(ctx context.Context, apiKey, baseURL string, httpClient *http.Client) (*GeminiClient, error) {
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	cli, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &GeminiClient{cli: cli}, nil
}

func (g *GeminiClient) Provider() string { return providerGemini }

func (g *GeminiClient) Complete(ctx context.Context, p contract.Payload) (*Completion, error) {
	parts, err := geminiParts(p)
	if err != nil {
		return nil, err
	}

	temperature := p.Temperature
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: p.System}}},
		Temperature:       &temperature,
		MaxOutputTokens:   int32(p.MaxTokens),
	}
	if p.JSONOnly {
		cfg.ResponseMIMEType = "application/json"
	}

	resp, err := g.cli.Models.GenerateContent(ctx, p.Model,
		[]*genai.Content{{Role: "user", Parts: parts}},
		cfg,
	)
	if err != nil {
		return nil, classifyGeminiError(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, unavailable(providerGemini, domain.ErrEmptyResponse)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	if strings.TrimSpace(sb.String()) == "" {
		return nil, unavailable(providerGemini, domain.ErrEmptyResponse)
	}

	usage := domain.Usage{Model: p.Model, HasImage: p.Image != nil}
	if md := resp.UsageMetadata; md != nil {
		usage.PromptTokens = int(md.PromptTokenCount)
		usage.CompletionTokens = int(md.CandidatesTokenCount)
		usage.TotalTokens = int(md.TotalTokenCount)
	}
	return &Completion{Content: sb.String(), Usage: usage}, nil
}

func geminiParts(p contract.Payload) ([]*genai.Part, error) {
	var parts []*genai.Part
	if p.UserText != "" {
		parts = append(parts, &genai.Part{Text: p.UserText})
	}
	if p.Image != nil {
		data, err := base64.StdEncoding.DecodeString(p.Image.Base64)
		if err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
		parts = append(parts,
			&genai.Part{InlineData: &genai.Blob{MIMEType: p.Image.MIMEType, Data: data}},
			&genai.Part{Text: p.ImageText},
		)
	}
	return parts, nil
}

func classifyGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &domain.ModelUnavailableError{
			Provider:   providerGemini,
			StatusCode: apiErr.Code,
			Quota:      isQuotaRejection(apiErr.Code, apiErr.Message+" "+apiErr.Status),
			Err:        err,
		}
	}
	return unavailable(providerGemini, err)
}
