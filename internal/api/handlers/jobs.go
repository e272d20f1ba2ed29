package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/dlow/fd-tracker/internal/api/middleware"
	"github.com/dlow/fd-tracker/internal/domain"
	"github.com/dlow/fd-tracker/internal/jobs"
)

// JobsHandler exposes sweep-job status and a manual sweep trigger.
type JobsHandler struct {
	store     jobs.JobStore
	publisher jobs.Publisher
	log       zerolog.Logger
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(store jobs.JobStore, publisher jobs.Publisher, log zerolog.Logger) *JobsHandler {
	return &JobsHandler{store: store, publisher: publisher, log: log}
}

// TriggerSweep handles POST /api/jobs/sweep. It enqueues a maturity sweep
// for today, ahead of the daily schedule.
func (h *JobsHandler) TriggerSweep(w http.ResponseWriter, r *http.Request) {
	job := &jobs.SweepJob{
		Date: time.Now().Format(domain.DateLayout),
	}

	if err := h.publisher.PublishSweep(r.Context(), job); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue sweep job")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to enqueue sweep")
		return
	}

	h.log.Info().Str("job_id", job.JobID).Str("date", job.Date).Msg("Sweep job enqueued")
	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"job_id": job.JobID,
		"date":   job.Date,
		"status": string(job.Status),
	})
}

// GetJob handles GET /api/jobs/{id}
func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request, jobID string) {
	job, err := h.store.GetJob(r.Context(), jobID)
	if err != nil {
		middleware.WriteError(w, http.StatusNotFound, "Job not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, job)
}

// ListJobs handles GET /api/jobs
func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := jobs.JobFilter{
		Status: jobs.JobStatus(query.Get("status")),
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	jobsList, err := h.store.ListJobs(r.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list jobs")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobsList,
		"count": len(jobsList),
	})
}
