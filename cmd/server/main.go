package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	emailPkg "gymhub/internal/adapters/email"
	web "gymhub/internal/adapters/http"
	"gymhub/internal/adapters/storage"
	announcementStore "gymhub/internal/adapters/storage/announcement"
	directoryStore "gymhub/internal/adapters/storage/directory"
	snapshotStore "gymhub/internal/adapters/storage/snapshot"
	"gymhub/internal/apiclient"
	"gymhub/internal/application/orchestrators"
	"gymhub/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	stores := &web.Stores{
		Directory:     directoryStore.NewSQLiteStore(db),
		Announcements: announcementStore.NewSQLiteStore(db),
		Snapshots:     snapshotStore.NewSQLiteStore(db),
	}

	// Seed the default admin if the directory is empty
	adminEmail := envOrDefault("GYMHUB_ADMIN_EMAIL", "admin@gymhub.example")
	adminPassword := envOrDefault("GYMHUB_ADMIN_PASSWORD", "change me before prod")
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), stores.Directory, adminEmail, adminPassword); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	var sender emailPkg.Sender
	if cfg.ResendAPIKey != "" {
		sender = emailPkg.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom)
	} else {
		slog.Warn("email_sender_noop", "reason", "GYMHUB_RESEND_API_KEY not set")
		sender = emailPkg.NewNoopSender()
	}

	mux := web.NewMux(cfg, stores, apiclient.New(cfg.APIBaseURL), sender)

	log.Printf("GymHub %s starting on %s (env=%s)", version, cfg.HTTPAddr, cfg.Env)
	if err := http.ListenAndServe(cfg.HTTPAddr, mux); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
