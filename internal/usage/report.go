package usage

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultReportSpec runs the daily report at 00:05:00 (seconds field first).
const DefaultReportSpec = "0 5 0 * * *"

// Report is one day's usage.
type Report struct {
	Day    time.Time
	Totals []ModelTotal
}

func (r Report) String() string {
	var calls int64
	var usd, krw float64
	for _, t := range r.Totals {
		calls += t.Calls
		usd += t.TotalCostUSD
		krw += t.TotalCostKRW
	}
	return fmt.Sprintf("usage %s: calls=%d cost_usd=%.4f cost_krw=%.0f models=%d",
		r.Day.Format("2006-01-02"), calls, usd, krw, len(r.Totals))
}

// DailyReport builds the report for the UTC day before now.
func (l *Ledger) DailyReport(ctx context.Context) (*Report, error) {
	now := l.now().UTC()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -1)

	totals, err := l.Totals(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return &Report{Day: start, Totals: totals}, nil
}

// Scheduler runs the daily usage report on a cron schedule.
type Scheduler struct {
	ledger *Ledger
	spec   string
	cron   *cron.Cron
}

func NewScheduler(ledger *Ledger, spec string) *Scheduler {
	if spec == "" {
		spec = DefaultReportSpec
	}
	return &Scheduler{
		ledger: ledger,
		spec:   spec,
		cron:   cron.New(cron.WithSeconds()),
	}
}

// Start registers the report job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runReport); err != nil {
		return fmt.Errorf("invalid report schedule %q: %w", s.spec, err)
	}
	s.cron.Start()
	log.Printf("usage report scheduled (%s)", s.spec)
	return nil
}

// Stop stops the scheduler and waits for a running report to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runReport() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	r, err := s.ledger.DailyReport(ctx)
	if err != nil {
		log.Printf("usage report failed: %v", err)
		return
	}
	log.Println(r.String())
	for _, t := range r.Totals {
		log.Printf("  model=%s calls=%d prompt_tokens=%d completion_tokens=%d cost_usd=%.4f",
			t.Model, t.Calls, t.PromptTokens, t.CompletionTokens, t.TotalCostUSD)
	}
}
