package llm

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/contract"
)

// RateLimit bounds outgoing requests to perMinute with a burst of one.
// perMinute <= 0 disables the limiter.
func RateLimit(perMinute int) Middleware {
	return func(next Client) Client {
		if perMinute <= 0 {
			return next
		}
		lim := rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
		return &rateLimited{next: next, lim: lim}
	}
}

type rateLimited struct {
	next Client
	lim  *rate.Limiter
}

func (c *rateLimited) Provider() string { return c.next.Provider() }

func (c *rateLimited) Complete(ctx context.Context, p contract.Payload) (*Completion, error) {
	if err := c.lim.Wait(ctx); err != nil {
		return nil, unavailable(c.next.Provider(), err)
	}
	return c.next.Complete(ctx, p)
}

// Timeout caps how long one completion may take. A timeout surfaces as an
// unavailable model, never as a retry.
func Timeout(d time.Duration) Middleware {
	return func(next Client) Client {
		if d <= 0 {
			return next
		}
		return &timed{next: next, d: d}
	}
}

type timed struct {
	next Client
	d    time.Duration
}

func (c *timed) Provider() string { return c.next.Provider() }

func (c *timed) Complete(ctx context.Context, p contract.Payload) (*Completion, error) {
	ctx, cancel := context.WithTimeout(ctx, c.d)
	defer cancel()
	return c.next.Complete(ctx, p)
}

// Observer is told about every finished call.
type Observer func(provider, model string, elapsed time.Duration, err error)

// Observe reports call latency and outcome to fn.
func Observe(fn Observer) Middleware {
	return func(next Client) Client {
		if fn == nil {
			return next
		}
		return &observed{next: next, fn: fn}
	}
}

type observed struct {
	next Client
	fn   Observer
}

func (c *observed) Provider() string { return c.next.Provider() }

func (c *observed) Complete(ctx context.Context, p contract.Payload) (*Completion, error) {
	start := time.Now()
	out, err := c.next.Complete(ctx, p)
	c.fn(c.next.Provider(), p.Model, time.Since(start), err)
	return out, err
}
