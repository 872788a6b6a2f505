package usage

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"
)

func setupLedger(t *testing.T) (*Ledger, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	l := NewLedger(db)
	l.now = func() time.Time { return time.Date(2024, 3, 5, 0, 5, 0, 0, time.UTC) }
	return l, mock, db
}

func TestLedger_EnsureSchema(t *testing.T) {
	l, mock, _ := setupLedger(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS chart_generation_usage`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, l.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	l := NewLedger(db)

	mock.ExpectPing()
	require.NoError(t, l.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	assert.Error(t, l.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_Record(t *testing.T) {
	l, mock, _ := setupLedger(t)

	t.Run("inserts one row per call", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO chart_generation_usage`).
			WithArgs(sqlmock.AnyArg(), "gpt-4o", 1000, 500, 1500, 0.0075, 9.75, true, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := l.Record(context.Background(), domain.Usage{
			Model:            "gpt-4o",
			PromptTokens:     1000,
			CompletionTokens: 500,
			TotalTokens:      1500,
			TotalCostUSD:     0.0075,
			TotalCostKRW:     9.75,
			HasImage:         true,
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps database errors", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO chart_generation_usage`).
			WillReturnError(errors.New("connection refused"))

		err := l.Record(context.Background(), domain.Usage{Model: "gpt-4o-mini"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to record usage")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLedger_DailyReport(t *testing.T) {
	l, mock, _ := setupLedger(t)

	from := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"model", "count", "prompt", "completion", "usd", "krw"}).
		AddRow("gpt-4o", 2, 2000, 1000, 0.015, 19.5).
		AddRow("gpt-4o-mini", 10, 8000, 4000, 0.0036, 4.68)
	mock.ExpectQuery(`FROM chart_generation_usage`).
		WithArgs(from, to).
		WillReturnRows(rows)

	r, err := l.DailyReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, from, r.Day)
	require.Len(t, r.Totals, 2)
	assert.Equal(t, ModelTotal{
		Model: "gpt-4o", Calls: 2, PromptTokens: 2000, CompletionTokens: 1000,
		TotalCostUSD: 0.015, TotalCostKRW: 19.5,
	}, r.Totals[0])
	assert.Equal(t, "usage 2024-03-04: calls=12 cost_usd=0.0186 cost_krw=24 models=2", r.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_TotalsQueryError(t *testing.T) {
	l, mock, _ := setupLedger(t)

	mock.ExpectQuery(`FROM chart_generation_usage`).WillReturnError(sql.ErrConnDone)
	_, err := l.DailyReport(context.Background())
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

func TestScheduler_RejectsBadSpec(t *testing.T) {
	l, _, _ := setupLedger(t)
	s := NewScheduler(l, "not a schedule")
	assert.Error(t, s.Start())
}

func TestScheduler_RunsReport(t *testing.T) {
	l, mock, _ := setupLedger(t)
	mock.ExpectQuery(`FROM chart_generation_usage`).
		WillReturnRows(sqlmock.NewRows([]string{"model", "count", "prompt", "completion", "usd", "krw"}))

	s := NewScheduler(l, "")
	assert.Equal(t, DefaultReportSpec, s.spec)
	s.runReport()
	assert.NoError(t, mock.ExpectationsWereMet())
}
