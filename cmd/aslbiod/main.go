package main

import (
	"context"
	"fmt"
	"log"

	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/config"
	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/identity"
	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/metrics"
	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/server"
	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/store"
	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/telehealth"
)

func main() {
	fmt.Println("ASL Biometrics - Telehealth Identity Verification")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Profiles persist to SQLite when a path is configured, otherwise they
	// live in memory for the lifetime of the process.
	var profiles identity.ProfileStore
	if cfg.DBPath != "" {
		st, err := store.New(cfg.DBPath)
		if err != nil {
			log.Fatalf("Failed to initialize store: %v", err)
		}
		defer st.Close()
		profiles = st.Profiles()
		fmt.Printf("Storing biometric profiles in %s\n", cfg.DBPath)
	} else {
		profiles = identity.NewMemoryProfileStore()
		log.Println("No db_path configured, biometric profiles are in-memory only")
	}

	matcher := identity.NewMatcher(identity.Config{
		Store:                 profiles,
		VerificationThreshold: cfg.VerificationThreshold,
		MinEnrollmentQuality:  cfg.MinEnrollmentQuality,
	})

	sessions := telehealth.NewManager(telehealth.Config{
		Store:        telehealth.NewMemorySessionStore(),
		Matcher:      matcher,
		ChallengeTTL: cfg.ChallengeTTL(),
		SessionTTL:   cfg.SessionTTL(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sessions.StartSweeper(ctx, cfg.SweepInterval())

	m := metrics.New(func() float64 {
		return float64(sessions.Stats().TotalActiveSessions)
	})

	srv := server.New(server.Config{
		Matcher:      matcher,
		Sessions:     sessions,
		Metrics:      m,
		ChallengeTTL: cfg.ChallengeTTL(),
	})

	fmt.Printf("Starting server on %s\n", cfg.Addr)
	if err := srv.ListenAndServe(cfg.Addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
