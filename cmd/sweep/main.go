// Command sweep runs one maturity sweep and exits. Intended to be invoked
// by cron at the notification hour, e.g. "0 8 * * *".
package main

import (
	"context"
	"flag"
	"time"

	"github.com/dlow/fd-tracker/internal/config"
	"github.com/dlow/fd-tracker/internal/domain"
	fsrepo "github.com/dlow/fd-tracker/internal/infra/firestore"
	"github.com/dlow/fd-tracker/internal/logger"
	"github.com/dlow/fd-tracker/internal/notify"
)

func main() {
	log := logger.New()

	dateFlag := flag.String("date", "", "Sweep cutoff date YYYY-MM-DD (default: today)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	date := *dateFlag
	if date == "" {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			log.Fatal().Err(err).Str("timezone", cfg.Timezone).Msg("Invalid timezone")
		}
		date = time.Now().In(loc).Format(domain.DateLayout)
	} else if _, err := time.Parse(domain.DateLayout, date); err != nil {
		log.Fatal().Str("date", date).Msg("Invalid --date, want YYYY-MM-DD")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	repo, err := fsrepo.NewRepository(ctx, cfg.ProjectID, cfg.Collection, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create deposit repository")
	}
	defer repo.Close()

	mailer := notify.NewSMTPMailer(notify.SMTPConfig{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort,
		User:       cfg.SMTPUser,
		Password:   cfg.SMTPPass,
		SenderName: cfg.SenderName,
	})
	directory := notify.ParseStaticDirectory(cfg.OwnerDirectory)

	sweeper := notify.NewSweeper(repo, mailer, directory, log)

	matured, err := sweeper.Run(ctx, date)
	if err != nil {
		log.Fatal().Err(err).Msg("Sweep failed")
	}

	log.Info().Str("date", date).Int("matured", matured).Msg("Sweep completed")
}
