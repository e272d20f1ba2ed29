package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/dlow/fd-tracker/internal/api/handlers"
	"github.com/dlow/fd-tracker/internal/api/middleware"
	"github.com/dlow/fd-tracker/internal/config"
	"github.com/dlow/fd-tracker/internal/domain"
	fsrepo "github.com/dlow/fd-tracker/internal/infra/firestore"
	"github.com/dlow/fd-tracker/internal/jobs"
	"github.com/dlow/fd-tracker/internal/jobs/inmemory"
	"github.com/dlow/fd-tracker/internal/logger"
	"github.com/dlow/fd-tracker/internal/notify"
	"github.com/dlow/fd-tracker/internal/rates"
)

func main() {
	var port = flag.String("port", "", "HTTP server port (overrides PORT env)")
	flag.Parse()

	log := logger.New()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *port != "" {
		cfg.Port = *port
	}

	ctx := context.Background()

	// Record store
	repo, err := fsrepo.NewRepository(ctx, cfg.ProjectID, cfg.Collection, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create deposit repository")
	}
	defer repo.Close()

	// Rate extraction pipeline
	gen, err := rates.NewGeminiGenerator(ctx, cfg.GeminiModel)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Gemini client")
	}
	pipeline := rates.NewPipeline(gen, log)

	// Maturity sweep collaborators
	mailer := notify.NewSMTPMailer(notify.SMTPConfig{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort,
		User:       cfg.SMTPUser,
		Password:   cfg.SMTPPass,
		SenderName: cfg.SenderName,
	})
	directory := notify.ParseStaticDirectory(cfg.OwnerDirectory)
	sweeper := notify.NewSweeper(repo, mailer, directory, log)

	// Job infrastructure
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(10, jobStore)

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	jobHandler := func(ctx context.Context, job *jobs.SweepJob) error {
		log.Info().Str("job_id", job.JobID).Str("date", job.Date).Msg("Processing sweep job")

		matured, err := sweeper.Run(ctx, job.Date)
		if err != nil {
			log.Error().Err(err).Str("job_id", job.JobID).Msg("Sweep failed")
			return err
		}

		job.Matured = matured
		return nil
	}

	if err := jobQueue.Start(workerCtx, jobHandler); err != nil {
		log.Fatal().Err(err).Msg("Failed to start sweep worker")
	}

	// Daily sweep schedule at the configured local hour.
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Timezone).Msg("Invalid sweep timezone")
	}
	go scheduleDailySweep(workerCtx, jobQueue, cfg.SweepHour, loc, log)

	// Handlers
	depositsHandler := handlers.NewDepositsHandler(repo, log)
	ratesHandler := handlers.NewRatesHandler(pipeline, log)
	ioHandler := handlers.NewPortfolioIOHandler(repo, log)
	jobsHandler := handlers.NewJobsHandler(jobStore, jobQueue, log)

	// Router
	mux := http.NewServeMux()

	mux.HandleFunc("/api/deposits", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			depositsHandler.ListDeposits(w, r)
		case http.MethodPost:
			depositsHandler.CreateDeposit(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/deposits/summary", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			depositsHandler.GetSummary(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/deposits/draft", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			depositsHandler.DraftFromOffer(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/deposits/import", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			ioHandler.ImportCSV(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/deposits/export", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			ioHandler.ExportCSV(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/deposits/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/deposits/")
		if rest == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Deposit ID is required")
			return
		}

		if id, ok := strings.CutSuffix(rest, "/calendar-link"); ok {
			if r.Method == http.MethodGet {
				depositsHandler.CalendarLink(w, r, id)
			} else {
				middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			}
			return
		}

		switch r.Method {
		case http.MethodPut:
			depositsHandler.UpdateDeposit(w, r, rest)
		case http.MethodDelete:
			depositsHandler.DeleteDeposit(w, r, rest)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/rates/scan", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			ratesHandler.ScanRates(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobsHandler.ListJobs(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs/sweep", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			jobsHandler.TriggerSweep(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobID := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
			if jobID == "" {
				middleware.WriteError(w, http.StatusBadRequest, "Job ID is required")
				return
			}
			jobsHandler.GetJob(w, r, jobID)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Health check endpoint, outside the auth chain.
	authed := middleware.OwnerAuth(middleware.OpaqueVerifier{})(mux)

	root := http.NewServeMux()
	root.Handle("/api/", authed)
	root.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(root),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // rate scans wait on two model calls
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	cancelWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping sweep queue")
	}

	log.Info().Msg("Server exited")
}

// scheduleDailySweep publishes one sweep job at the configured local hour,
// every day, until ctx is cancelled.
func scheduleDailySweep(ctx context.Context, publisher jobs.Publisher, hour int, loc *time.Location, log zerolog.Logger) {
	for {
		now := time.Now().In(loc)
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, loc)
		if !next.After(now) {
			next = next.AddDate(0, 0, 1)
		}

		log.Info().Time("next_run", next).Msg("Next maturity sweep scheduled")

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Until(next)):
		}

		job := &jobs.SweepJob{Date: time.Now().In(loc).Format(domain.DateLayout)}
		if err := publisher.PublishSweep(ctx, job); err != nil {
			log.Error().Err(err).Msg("Failed to publish scheduled sweep")
		}
	}
}
