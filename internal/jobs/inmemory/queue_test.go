package inmemory

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dlow/fd-tracker/internal/jobs"
)

func TestQueue_PublishAndProcess(t *testing.T) {
	store := NewStore()
	queue := NewQueue(10, store)

	processed := make(chan string, 1)
	handler := func(ctx context.Context, job *jobs.SweepJob) error {
		processed <- job.Date
		return nil
	}

	ctx := context.Background()
	if err := queue.Start(ctx, handler); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer queue.Stop(ctx)

	job := &jobs.SweepJob{Date: "2025-01-01"}
	if err := queue.PublishSweep(ctx, job); err != nil {
		t.Fatalf("PublishSweep failed: %v", err)
	}

	select {
	case date := <-processed:
		if date != "2025-01-01" {
			t.Errorf("processed date = %q", date)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("job was never processed")
	}

	deadline := time.After(2 * time.Second)
	for {
		saved, err := store.GetJob(ctx, job.JobID)
		if err != nil {
			t.Fatalf("GetJob failed: %v", err)
		}
		if saved.Status == jobs.JobStatusCompleted {
			if saved.StartedAt == nil || saved.CompletedAt == nil {
				t.Error("completed job missing timestamps")
			}
			return
		}
		select {
		case <-deadline:
			t.Fatalf("job never completed, status %q", saved.Status)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestQueue_PublishFillsDefaults(t *testing.T) {
	queue := NewQueue(1, nil)
	defer queue.Close()

	job := &jobs.SweepJob{Date: "2025-01-01"}
	if err := queue.PublishSweep(context.Background(), job); err != nil {
		t.Fatalf("PublishSweep failed: %v", err)
	}

	if job.JobID == "" {
		t.Error("JobID not assigned")
	}
	if job.Status != jobs.JobStatusPending {
		t.Errorf("Status = %q, want pending", job.Status)
	}
	if job.CreatedAt.IsZero() {
		t.Error("CreatedAt not stamped")
	}
	if job.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", job.MaxRetries)
	}
}

func TestQueue_RetriesFailedSweep(t *testing.T) {
	store := NewStore()
	queue := NewQueue(10, store)

	var calls int32
	handler := func(ctx context.Context, job *jobs.SweepJob) error {
		if atomic.AddInt32(&calls, 1) == 1 {
			return errors.New("store unavailable")
		}
		return nil
	}

	ctx := context.Background()
	if err := queue.Start(ctx, handler); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer queue.Stop(ctx)

	job := &jobs.SweepJob{Date: "2025-01-01", MaxRetries: 2}
	if err := queue.PublishSweep(ctx, job); err != nil {
		t.Fatalf("PublishSweep failed: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		saved, err := store.GetJob(ctx, job.JobID)
		if err != nil {
			t.Fatalf("GetJob failed: %v", err)
		}
		if saved.Status == jobs.JobStatusCompleted {
			if saved.RetryCount != 1 {
				t.Errorf("RetryCount = %d, want 1", saved.RetryCount)
			}
			return
		}
		if saved.Status == jobs.JobStatusFailed {
			t.Fatalf("job failed permanently: %s", saved.Error)
		}
		select {
		case <-deadline:
			t.Fatalf("job never completed, status %q after %d calls", saved.Status, atomic.LoadInt32(&calls))
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestQueue_ExhaustedRetriesFail(t *testing.T) {
	store := NewStore()
	queue := NewQueue(10, store)

	handler := func(ctx context.Context, job *jobs.SweepJob) error {
		return errors.New("always failing")
	}

	ctx := context.Background()
	if err := queue.Start(ctx, handler); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer queue.Stop(ctx)

	job := &jobs.SweepJob{Date: "2025-01-01", MaxRetries: 1}
	if err := queue.PublishSweep(ctx, job); err != nil {
		t.Fatalf("PublishSweep failed: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		saved, err := store.GetJob(ctx, job.JobID)
		if err != nil {
			t.Fatalf("GetJob failed: %v", err)
		}
		if saved.Status == jobs.JobStatusFailed {
			if saved.Error == "" {
				t.Error("failed job carries no error message")
			}
			return
		}
		select {
		case <-deadline:
			t.Fatalf("job never failed, status %q", saved.Status)
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestQueue_PublishAfterStop(t *testing.T) {
	queue := NewQueue(1, nil)
	if err := queue.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if err := queue.PublishSweep(context.Background(), &jobs.SweepJob{Date: "2025-01-01"}); err == nil {
		t.Error("expected error publishing to a stopped queue")
	}
}

func TestStore_ListJobs(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	base := time.Now()
	statuses := []jobs.JobStatus{jobs.JobStatusCompleted, jobs.JobStatusFailed, jobs.JobStatusCompleted}
	for i, status := range statuses {
		job := &jobs.SweepJob{
			JobID:     string(rune('a' + i)),
			Status:    status,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.SaveJob(ctx, job); err != nil {
			t.Fatalf("SaveJob failed: %v", err)
		}
	}

	all, err := store.ListJobs(ctx, jobs.JobFilter{})
	if err != nil {
		t.Fatalf("ListJobs failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d jobs, want 3", len(all))
	}
	if all[0].JobID != "c" || all[2].JobID != "a" {
		t.Errorf("order = %s, %s, %s; want newest first", all[0].JobID, all[1].JobID, all[2].JobID)
	}

	failed, err := store.ListJobs(ctx, jobs.JobFilter{Status: jobs.JobStatusFailed})
	if err != nil {
		t.Fatalf("ListJobs failed: %v", err)
	}
	if len(failed) != 1 || failed[0].JobID != "b" {
		t.Errorf("filtered = %+v", failed)
	}

	page, err := store.ListJobs(ctx, jobs.JobFilter{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("ListJobs failed: %v", err)
	}
	if len(page) != 1 || page[0].JobID != "b" {
		t.Errorf("page = %+v", page)
	}
}

func TestStore_CopiesOnReadAndWrite(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	job := &jobs.SweepJob{JobID: "j1", Status: jobs.JobStatusPending}
	if err := store.SaveJob(ctx, job); err != nil {
		t.Fatalf("SaveJob failed: %v", err)
	}

	job.Status = jobs.JobStatusFailed

	saved, err := store.GetJob(ctx, "j1")
	if err != nil {
		t.Fatalf("GetJob failed: %v", err)
	}
	if saved.Status != jobs.JobStatusPending {
		t.Errorf("stored job mutated through caller's pointer: %q", saved.Status)
	}

	saved.Status = jobs.JobStatusRunning
	again, _ := store.GetJob(ctx, "j1")
	if again.Status != jobs.JobStatusPending {
		t.Errorf("stored job mutated through returned pointer: %q", again.Status)
	}
}
