package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"

	"github.com/jrkim-kr/echarts-ai-studio/config"
)

// FirebaseClients holds the Admin SDK clients the service uses. Auth is
// nil unless requested.
type FirebaseClients struct {
	App  *firebase.App
	DB   *db.Client
	Auth *auth.Client
}

// InitializeFirebase initializes the Firebase Admin SDK and returns the
// Realtime Database client, plus an Auth client when withAuth is set.
// Without a credentials file the SDK is expected to talk to the emulator.
func InitializeFirebase(ctx context.Context, cfg config.FirebaseConfig, withAuth bool) (*FirebaseClients, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("FIREBASE_DATABASE_URL is required")
	}

	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:   cfg.ProjectID,
		DatabaseURL: cfg.DatabaseURL,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	dbClient, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Database client: %w", err)
	}
	clients := &FirebaseClients{App: app, DB: dbClient}

	if withAuth {
		authClient, err := app.Auth(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get Auth client: %w", err)
		}
		clients.Auth = authClient
	}

	return clients, nil
}
