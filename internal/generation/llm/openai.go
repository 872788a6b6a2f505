package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/contract"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"
)

const providerOpenAI = "openai"

type OpenAIClient struct {
	cli *openai.Client
}

// NewOpenAIClient builds a chat-completions client. baseURL may point at any
// OpenAI-compatible endpoint ending in /v1; empty means api.openai.com.
func NewOpenAIClient(apiKey, baseURL string, httpClient *http.Client) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &OpenAIClient{cli: openai.NewClientWithConfig(cfg)}
}

func (c *OpenAIClient) Provider() string { return providerOpenAI }

func (c *OpenAIClient) Complete(ctx context.Context, p contract.Payload) (*Completion, error) {
	req := openai.ChatCompletionRequest{
		Model:       p.Model,
		Messages:    openAIMessages(p),
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
	}
	if p.JSONOnly {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.cli.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return nil, unavailable(providerOpenAI, domain.ErrEmptyResponse)
	}

	return &Completion{
		Content: resp.Choices[0].Message.Content,
		Usage: domain.Usage{
			Model:            p.Model,
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
			HasImage:         p.Image != nil,
		},
	}, nil
}

func openAIMessages(p contract.Payload) []openai.ChatCompletionMessage {
	msgs := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: p.System},
	}
	if p.UserText != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: p.UserText})
	}
	if p.Image != nil {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{
					Type:     openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{URL: p.Image.DataURL()},
				},
				{Type: openai.ChatMessagePartTypeText, Text: p.ImageText},
			},
		})
	}
	return msgs
}

func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &domain.ModelUnavailableError{
			Provider:   providerOpenAI,
			StatusCode: apiErr.HTTPStatusCode,
			Quota:      isQuotaRejection(apiErr.HTTPStatusCode, apiErr.Message+" "+fmt.Sprint(apiErr.Code)),
			Err:        err,
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &domain.ModelUnavailableError{
			Provider:   providerOpenAI,
			StatusCode: reqErr.HTTPStatusCode,
			Quota:      isQuotaRejection(reqErr.HTTPStatusCode, err.Error()),
			Err:        err,
		}
	}
	return unavailable(providerOpenAI, err)
}

// isQuotaRejection matches a 429 whose message blames quota, billing or budget.
// Plain rate limiting stays a regular unavailability.
func isQuotaRejection(status int, message string) bool {
	if status != http.StatusTooManyRequests {
		return false
	}
	m := strings.ToLower(message)
	return strings.Contains(m, "quota") || strings.Contains(m, "billing") || strings.Contains(m, "budget")
}
