package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/contract"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"
)

type fakeClient struct {
	complete func(ctx context.Context, p contract.Payload) (*Completion, error)
}

func (f *fakeClient) Provider() string { return "fake" }

func (f *fakeClient) Complete(ctx context.Context, p contract.Payload) (*Completion, error) {
	return f.complete(ctx, p)
}

func TestWrap_Order(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return Observe(func(string, string, time.Duration, error) { order = append(order, name) })
	}
	inner := &fakeClient{complete: func(context.Context, contract.Payload) (*Completion, error) {
		order = append(order, "inner")
		return &Completion{Content: "{}"}, nil
	}}

	c := Wrap(inner, tag("outer"), tag("middle"))
	_, err := c.Complete(context.Background(), contract.Payload{})
	require.NoError(t, err)
	assert.Equal(t, []string{"inner", "middle", "outer"}, order)
	assert.Equal(t, "fake", c.Provider())
}

func TestTimeout(t *testing.T) {
	inner := &fakeClient{complete: func(ctx context.Context, _ contract.Payload) (*Completion, error) {
		<-ctx.Done()
		return nil, unavailable("fake", ctx.Err())
	}}

	c := Wrap(inner, Timeout(10*time.Millisecond))
	_, err := c.Complete(context.Background(), contract.Payload{})
	assert.True(t, domain.IsModelUnavailable(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimit(t *testing.T) {
	calls := 0
	inner := &fakeClient{complete: func(context.Context, contract.Payload) (*Completion, error) {
		calls++
		return &Completion{}, nil
	}}
	c := Wrap(inner, RateLimit(1))

	_, err := c.Complete(context.Background(), contract.Payload{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.Complete(ctx, contract.Payload{})
	assert.True(t, domain.IsModelUnavailable(err))
	assert.Equal(t, 1, calls)
}

func TestRateLimit_Disabled(t *testing.T) {
	inner := &fakeClient{}
	assert.Same(t, Client(inner), RateLimit(0)(inner))
}

func TestObserve_ReportsError(t *testing.T) {
	boom := errors.New("boom")
	var seen error
	var model string
	inner := &fakeClient{complete: func(context.Context, contract.Payload) (*Completion, error) {
		return nil, boom
	}}

	c := Wrap(inner, Observe(func(_ string, m string, _ time.Duration, err error) {
		seen, model = err, m
	}))
	_, _ = c.Complete(context.Background(), contract.Payload{Model: "gpt-4o"})
	assert.Equal(t, boom, seen)
	assert.Equal(t, "gpt-4o", model)
}
