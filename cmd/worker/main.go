package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jrkim-kr/echarts-ai-studio/config"
	"github.com/jrkim-kr/echarts-ai-studio/internal/bootstrap"
	"github.com/jrkim-kr/echarts-ai-studio/internal/usage"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: worker <report|schedule>")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Database.DSN == "" {
		log.Fatal("DB_DSN is required for usage reporting")
	}

	ledger, closeDB, err := bootstrap.OpenUsageLedger(ctx, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("usage db: %v", err)
	}
	defer closeDB()

	switch os.Args[1] {
	case "report":
		runReport(ctx, ledger)
	case "schedule":
		runSchedule(ctx, ledger, cfg.App.UsageReportCron)
	default:
		log.Printf("unknown command: %s", os.Args[1])
		closeDB()
		os.Exit(1)
	}
}

// runReport prints yesterday's usage once.
func runReport(ctx context.Context, ledger *usage.Ledger) {
	r, err := ledger.DailyReport(ctx)
	if err != nil {
		log.Fatalf("usage report: %v", err)
	}
	log.Println(r.String())
}

// runSchedule keeps running the daily report until interrupted.
func runSchedule(ctx context.Context, ledger *usage.Ledger, spec string) {
	s := usage.NewScheduler(ledger, spec)
	if err := s.Start(); err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	<-ctx.Done()
	log.Println("stopping scheduler")
	s.Stop()
}
