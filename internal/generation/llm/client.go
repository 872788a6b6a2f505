// Package llm talks to hosted chat-completion models. Every failure that
// keeps a usable answer from coming back is reported as a
// domain.ModelUnavailableError so callers can fall back uniformly.
package llm

import (
	"context"

	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/contract"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"
)

// Completion is the raw text of the first choice plus token usage.
type Completion struct {
	Content string
	Usage   domain.Usage
}

// Client sends one contract payload and returns the model's answer.
type Client interface {
	Provider() string
	Complete(ctx context.Context, p contract.Payload) (*Completion, error)
}

// Middleware decorates a Client with a cross-cutting concern.
type Middleware func(Client) Client

// Wrap applies middlewares left to right: Wrap(c, A, B) == A(B(c)).
func Wrap(inner Client, mws ...Middleware) Client {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		out = mws[i](out)
	}
	return out
}

func unavailable(provider string, err error) error {
	return &domain.ModelUnavailableError{Provider: provider, Err: err}
}
