// Package usage keeps a ledger of model token usage and reports on it.
package usage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS chart_generation_usage (
	id                UUID PRIMARY KEY,
	model             TEXT NOT NULL,
	prompt_tokens     INTEGER NOT NULL,
	completion_tokens INTEGER NOT NULL,
	total_tokens      INTEGER NOT NULL,
	total_cost_usd    DOUBLE PRECISION NOT NULL,
	total_cost_krw    DOUBLE PRECISION NOT NULL,
	has_image         BOOLEAN NOT NULL DEFAULT FALSE,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS chart_generation_usage_created_at_idx
	ON chart_generation_usage (created_at);
`

// Ledger stores one row per model call in PostgreSQL.
type Ledger struct {
	db  *sql.DB
	now func() time.Time
}

// NewLedger creates a new Ledger
func NewLedger(db *sql.DB) *Ledger {
	return &Ledger{db: db, now: time.Now}
}

// EnsureSchema creates the ledger table if it does not exist.
func (l *Ledger) EnsureSchema(ctx context.Context) error {
	if _, err := l.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create usage schema: %w", err)
	}
	return nil
}

// Ping reports whether the database answers.
func (l *Ledger) Ping(ctx context.Context) error {
	return l.db.PingContext(ctx)
}

// Record inserts u. It satisfies the generation service's UsageRecorder.
func (l *Ledger) Record(ctx context.Context, u domain.Usage) error {
	query := `
		INSERT INTO chart_generation_usage (
			id, model, prompt_tokens, completion_tokens, total_tokens,
			total_cost_usd, total_cost_krw, has_image, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := l.db.ExecContext(ctx, query,
		uuid.New().String(),
		u.Model,
		u.PromptTokens,
		u.CompletionTokens,
		u.TotalTokens,
		u.TotalCostUSD,
		u.TotalCostKRW,
		u.HasImage,
		l.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record usage: %w", err)
	}
	return nil
}

// ModelTotal is the usage of one model over a period.
type ModelTotal struct {
	Model            string  `json:"model"`
	Calls            int64   `json:"calls"`
	PromptTokens     int64   `json:"prompt_tokens"`
	CompletionTokens int64   `json:"completion_tokens"`
	TotalCostUSD     float64 `json:"total_cost_usd"`
	TotalCostKRW     float64 `json:"total_cost_krw"`
}

// Totals sums usage per model for calls in [from, to).
func (l *Ledger) Totals(ctx context.Context, from, to time.Time) ([]ModelTotal, error) {
	query := `
		SELECT model, COUNT(*), COALESCE(SUM(prompt_tokens), 0), COALESCE(SUM(completion_tokens), 0),
		       COALESCE(SUM(total_cost_usd), 0), COALESCE(SUM(total_cost_krw), 0)
		FROM chart_generation_usage
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY model
		ORDER BY model
	`
	rows, err := l.db.QueryContext(ctx, query, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query usage totals: %w", err)
	}
	defer rows.Close()

	var out []ModelTotal
	for rows.Next() {
		var t ModelTotal
		if err := rows.Scan(&t.Model, &t.Calls, &t.PromptTokens, &t.CompletionTokens, &t.TotalCostUSD, &t.TotalCostKRW); err != nil {
			return nil, fmt.Errorf("failed to scan usage totals: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate usage totals: %w", err)
	}
	return out, nil
}
