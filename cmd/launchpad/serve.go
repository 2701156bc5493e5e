package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/SureshMalla-bit/mallalaunchpad/internal/analytics"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/assist"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/auth"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/config"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/discover"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/llm"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/server"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the job tracker, the AI generators and the admin analytics endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer func() { _ = client.Close() }()

	recordStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	sessions, err := auth.NewSessionService(cfg.SessionSecret, time.Duration(cfg.SessionHours)*time.Hour)
	if err != nil {
		return fmt.Errorf("failed to create session service: %w", err)
	}

	provider, err := auth.NewFirebaseProvider(cfg.FirebaseAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create auth provider: %w", err)
	}

	srv, err := server.New(server.Config{
		Port:       cfg.Port,
		AdminEmail: cfg.AdminEmail,
	}, server.Dependencies{
		Store:     recordStore,
		Auth:      provider,
		Sessions:  sessions,
		Generator: assist.NewGenerator(client),
		Searcher:  discover.NewSearcher(client),
		Analytics: analytics.NewAggregator(recordStore),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// openStore connects to Firestore, or falls back to the in-memory store when
// no project is configured. The in-memory store loses everything on restart.
func openStore(ctx context.Context, cfg *config.Config) (store.RecordStore, error) {
	if cfg.FirestoreProject == "" {
		log.Println("FIRESTORE_PROJECT_ID not set, using in-memory store")
		return store.NewMemoryStore(), nil
	}

	fs, err := store.NewFirestoreStore(ctx, cfg.FirestoreProject)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Firestore: %w", err)
	}
	return fs, nil
}
