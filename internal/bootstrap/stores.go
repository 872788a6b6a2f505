package bootstrap

import (
	"context"
	"fmt"

	"github.com/jrkim-kr/echarts-ai-studio/config"
	"github.com/jrkim-kr/echarts-ai-studio/internal/auth"
	"github.com/jrkim-kr/echarts-ai-studio/internal/projects/repository"
)

// ProjectStore is the project persistence chosen by configuration.
// Firebase is nil for the memory backend unless auth needs it.
type ProjectStore struct {
	Store    repository.Store
	Firebase *auth.FirebaseClients
}

// OpenProjectStore builds the project store for cfg.Store.Backend. The
// Firebase store is fronted by a read-through LRU cache.
func OpenProjectStore(ctx context.Context, cfg *config.Config) (*ProjectStore, error) {
	needAuth := cfg.Firebase.AuthRequired

	switch cfg.Store.Backend {
	case config.BackendMemory:
		out := &ProjectStore{Store: repository.NewMemoryStore()}
		if needAuth {
			fb, err := auth.InitializeFirebase(ctx, cfg.Firebase, true)
			if err != nil {
				return nil, err
			}
			out.Firebase = fb
		}
		return out, nil

	case config.BackendFirebase:
		fb, err := auth.InitializeFirebase(ctx, cfg.Firebase, needAuth)
		if err != nil {
			return nil, err
		}
		store := repository.NewCachedStore(repository.NewFirebaseStore(fb.DB), cfg.Store.CacheSize, cfg.Store.CacheTTL)
		return &ProjectStore{Store: store, Firebase: fb}, nil

	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.Store.Backend)
	}
}
