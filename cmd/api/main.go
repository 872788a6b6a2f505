package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jrkim-kr/echarts-ai-studio/config"
	httpapi "github.com/jrkim-kr/echarts-ai-studio/internal/api/http"
	authmw "github.com/jrkim-kr/echarts-ai-studio/internal/auth/middleware"
	"github.com/jrkim-kr/echarts-ai-studio/internal/bootstrap"
	gensvc "github.com/jrkim-kr/echarts-ai-studio/internal/generation/service"
	projsvc "github.com/jrkim-kr/echarts-ai-studio/internal/projects/service"
	sessrepo "github.com/jrkim-kr/echarts-ai-studio/internal/session/repository"
	sesssvc "github.com/jrkim-kr/echarts-ai-studio/internal/session/service"
)

const serviceName = "echarts-ai-studio"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := gensvc.NewMetrics(reg)

	vocab, err := bootstrap.LoadVocabulary(cfg.App.VocabularyPath)
	if err != nil {
		log.Fatalf("vocabulary: %v", err)
	}

	deps := []httpapi.Dependency{}

	var usage gensvc.UsageRecorder
	if cfg.Database.DSN != "" {
		ledger, closeDB, err := bootstrap.OpenUsageLedger(ctx, cfg.Database.DSN)
		if err != nil {
			log.Fatalf("usage db: %v", err)
		}
		defer closeDB()
		usage = ledger
		deps = append(deps, httpapi.Dependency{Name: "postgres", Ping: ledger.Ping})
	} else {
		deps = append(deps, httpapi.Dependency{Name: "postgres"})
	}

	gen, err := bootstrap.BuildGenerator(ctx, cfg.LLM, vocab, metrics, usage)
	if err != nil {
		log.Fatalf("generator: %v", err)
	}
	if !gen.ModelConfigured() {
		_, field := cfg.LLM.ModelAPIKey()
		log.Printf("%s is not set; charts will be built by the heuristic fallback", field)
	}

	ps, err := bootstrap.OpenProjectStore(ctx, cfg)
	if err != nil {
		log.Fatalf("project store: %v", err)
	}
	deps = append(deps, httpapi.Dependency{Name: "projects", Ping: func(ctx context.Context) error {
		_, err := ps.Store.ListRecent(ctx, 1)
		return err
	}})

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()
	deps = append(deps, httpapi.Dependency{Name: "redis", Ping: func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}})

	projects := projsvc.NewProjectService(ps.Store)
	sessions := sesssvc.NewSessionService(sessrepo.NewRedisStore(rdb, cfg.Store.BusyTTL), gen, projects)

	var verifier authmw.TokenVerifier
	if ps.Firebase != nil && ps.Firebase.Auth != nil {
		verifier = ps.Firebase.Auth
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:  serviceName,
		Version:      cfg.App.Version,
		CORSOrigins:  cfg.Server.CORSAllowedOrigins,
		Generator:    gen,
		Projects:     projects,
		Sessions:     sessions,
		Dependencies: deps,
		Gatherer:     reg,
		Verifier:     verifier,
		AuthRequired: cfg.Firebase.AuthRequired,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("%s listening on :%s (store=%s, provider=%s)", serviceName, cfg.Server.Port, cfg.Store.Backend, cfg.LLM.Provider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 15*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
