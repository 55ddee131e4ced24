package inmemory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dvloznov/ledger-audit/internal/jobs"
)

func TestQueueProcessesPublishedJobs(t *testing.T) {
	store := NewStore()
	queue := NewQueue(10, 2, store)
	defer queue.Close()

	var mu sync.Mutex
	processed := make(map[string]bool)
	done := make(chan struct{}, 3)

	handler := func(ctx context.Context, job jobs.Job) error {
		mu.Lock()
		processed[job.GetID()] = true
		mu.Unlock()
		done <- struct{}{}
		return nil
	}

	ctx := context.Background()
	if err := queue.Start(ctx, handler); err != nil {
		t.Fatalf("Start: %v", err)
	}

	uris := []string{
		"gs://parish-scans/a.pdf",
		"gs://parish-scans/b.pdf",
		"gs://parish-scans/c.pdf",
	}
	for _, uri := range uris {
		if err := queue.PublishAudit(ctx, &jobs.AuditJob{GCSURI: uri}); err != nil {
			t.Fatalf("PublishAudit(%s): %v", uri, err)
		}
	}

	for i := 0; i < len(uris); i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for job %d", i)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if len(processed) != 3 {
		t.Errorf("processed %d jobs, want 3", len(processed))
	}
}

func TestQueueRecordsFailure(t *testing.T) {
	store := NewStore()
	queue := NewQueue(10, 1, store)
	defer queue.Close()

	done := make(chan string, 1)
	handler := func(ctx context.Context, job jobs.Job) error {
		auditJob := job.(*jobs.AuditJob)
		if auditJob.RetryCount == 0 {
			done <- job.GetID()
			return errors.New("scan unreadable")
		}
		return nil
	}

	ctx := context.Background()
	if err := queue.Start(ctx, handler); err != nil {
		t.Fatalf("Start: %v", err)
	}

	job := &jobs.AuditJob{GCSURI: "gs://parish-scans/bad.pdf", MaxRetries: 1}
	if err := queue.PublishAudit(ctx, job); err != nil {
		t.Fatalf("PublishAudit: %v", err)
	}

	var jobID string
	select {
	case jobID = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for job")
	}

	// First attempt failed with a retry budget left, so the stored job
	// should be retrying or already re-run to completion.
	deadline := time.Now().Add(3 * time.Second)
	for {
		stored, err := store.GetJob(ctx, jobID)
		if err != nil {
			t.Fatalf("GetJob: %v", err)
		}
		if stored.Status == jobs.JobStatusCompleted {
			if stored.RetryCount != 1 {
				t.Errorf("RetryCount = %d, want 1", stored.RetryCount)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("job never completed after retry; status %q", stored.Status)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func TestPublishAfterCloseFails(t *testing.T) {
	queue := NewQueue(1, 1, nil)
	if err := queue.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := queue.PublishAudit(context.Background(), &jobs.AuditJob{GCSURI: "gs://x/y.pdf"}); err == nil {
		t.Error("expected publish on closed queue to fail")
	}
}
