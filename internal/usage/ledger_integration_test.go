package usage

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"
)

// setupTestPostgres connects to TEST_DB_DSN.
// Skips test if TEST_DB_DSN is not set
func setupTestPostgres(t *testing.T) *sql.DB {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set, skipping PostgreSQL integration test")
	}

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, db.PingContext(ctx))
	return db
}

func TestLedger_Postgres(t *testing.T) {
	db := setupTestPostgres(t)
	ctx := context.Background()
	const model = "integration-test-model"

	l := NewLedger(db)
	require.NoError(t, l.EnsureSchema(ctx))
	// idempotent
	require.NoError(t, l.EnsureSchema(ctx))

	t.Cleanup(func() {
		_, _ = db.Exec(`DELETE FROM chart_generation_usage WHERE model = $1`, model)
	})

	day := time.Date(2001, 2, 3, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return day.Add(time.Hour) }
	require.NoError(t, l.Record(ctx, domain.Usage{Model: model, PromptTokens: 100, CompletionTokens: 20, TotalCostUSD: 0.5, TotalCostKRW: 700}))
	require.NoError(t, l.Record(ctx, domain.Usage{Model: model, PromptTokens: 50, CompletionTokens: 10, TotalCostUSD: 0.25, TotalCostKRW: 350, HasImage: true}))

	// a call on the next day stays out of the window
	l.now = func() time.Time { return day.Add(25 * time.Hour) }
	require.NoError(t, l.Record(ctx, domain.Usage{Model: model, PromptTokens: 1}))

	totals, err := l.Totals(ctx, day, day.Add(24*time.Hour))
	require.NoError(t, err)

	var got *ModelTotal
	for i := range totals {
		if totals[i].Model == model {
			got = &totals[i]
		}
	}
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.Calls)
	assert.Equal(t, int64(150), got.PromptTokens)
	assert.Equal(t, int64(30), got.CompletionTokens)
	assert.InDelta(t, 0.75, got.TotalCostUSD, 1e-9)
	assert.InDelta(t, 1050, got.TotalCostKRW, 1e-9)
}
