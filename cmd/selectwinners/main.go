package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"

	"github.com/prizeday/contest-backend/internal/config"
	mongorepo "github.com/prizeday/contest-backend/internal/repositories/mongodb"
	"github.com/prizeday/contest-backend/internal/services"
	"github.com/prizeday/contest-backend/pkg/mailer"
	"github.com/prizeday/contest-backend/pkg/mongodb"
)

// Cron entrypoint for the three daily draws. Without flags it selects the
// session active right now; a (date, session) pair replays a specific one.
func main() {
	date := flag.String("date", "", "contest date (YYYY-MM-DD), defaults to today")
	session := flag.Int("session", 0, "contest session (1-3), defaults to the current one")
	force := flag.Bool("force", false, "draw even when the pool is below the minimum")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer mongoClient.Disconnect(context.Background())

	db := mongoClient.Database(cfg.MongoDB.Database)
	participantRepo := mongorepo.NewParticipantRepository(db)
	contestRepo := mongorepo.NewContestRepository(db)
	winnerRepo := mongorepo.NewWinnerRepository(db)
	userRepo := mongorepo.NewUserRepository(db)

	var gateway mailer.Gateway
	if cfg.Mail.MockMail {
		gateway = mailer.NewMockGateway()
	} else {
		gateway = mailer.NewSMTPGateway(cfg)
	}
	dispatcher := services.NewNotificationDispatcher(gateway, winnerRepo, cfg.Mail.QueueSize)

	svc := services.NewSelectionService(participantRepo, contestRepo, winnerRepo, userRepo, dispatcher, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := func() (interface{}, error) {
		if *date == "" && *session == 0 {
			return svc.SelectCurrent(ctx, time.Now(), *force)
		}
		return svc.SelectWinners(ctx, *date, *session, *force)
	}()

	// Emails still in flight are drained before the process exits.
	dispatcher.Close()

	if err != nil {
		slog.Error("Selection failed", "error", err)
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))
}
