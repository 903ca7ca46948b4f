package pipeline

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/structify/outliner/internal/outline"
	"github.com/structify/outliner/internal/store"
)

func testWorker(t *testing.T) (*Worker, *store.Store) {
	t.Helper()
	results, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewWorker(outline.New(outline.DefaultConfig()), results, NewStats(time.Hour), log), results
}

func newTestJob(docID, filename string, data []byte) *Job {
	job := &Job{
		ID:        NewJobID(),
		DocID:     docID,
		Status:    StatusQueued,
		Phase:     "queued",
		Filename:  filename,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	job.SetFileData(data)
	return job
}

func TestWorker_ProcessMarkdown(t *testing.T) {
	w, results := testWorker(t)

	input := `# Service Handbook

# Deployment

## Health Checks

### Liveness Probes

The probe hits the health endpoint every ten seconds.
`
	job := newTestJob("doc-md", "handbook.md", []byte(input))
	w.Process(context.Background(), job)

	if job.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s (%v)", job.Status, job.Snapshot().Progress.Errors)
	}
	res, err := results.Load("doc-md")
	if err != nil {
		t.Fatalf("load stored result: %v", err)
	}
	if res.Title != "Service Handbook" {
		t.Errorf("expected title %q, got %q", "Service Handbook", res.Title)
	}
	if len(res.Outline) == 0 {
		t.Fatal("expected a non-empty outline")
	}
	if res.Outline[0].Text != "Deployment" || res.Outline[0].Level != outline.LevelH1 {
		t.Errorf("expected Deployment as first H1, got %v", res.Outline[0])
	}
}

func TestWorker_ProcessUnsupportedFormat(t *testing.T) {
	w, _ := testWorker(t)

	job := newTestJob("doc-zip", "archive.zip", []byte("not a document"))
	w.Process(context.Background(), job)

	if job.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", job.Status)
	}
	if len(job.Snapshot().Progress.Errors) == 0 {
		t.Error("expected an error to be recorded")
	}
}

func TestWorker_TitleFallsBackToFilename(t *testing.T) {
	w, results := testWorker(t)

	// Nothing survives noise filtering, so no title can be inferred.
	job := newTestJob("doc-plain", "quarterly-report.md", []byte("42\n"))
	w.Process(context.Background(), job)

	if job.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", job.Status)
	}
	res, err := results.Load("doc-plain")
	if err != nil {
		t.Fatalf("load stored result: %v", err)
	}
	if res.Title != "quarterly-report" {
		t.Errorf("expected filename fallback title, got %q", res.Title)
	}
}

func TestWorker_CancelledContext(t *testing.T) {
	w, _ := testWorker(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	job := newTestJob("doc-cancel", "doc.md", []byte("# Title\n"))
	w.Process(ctx, job)

	if job.Status != StatusFailed {
		t.Fatalf("expected failed after cancellation, got %s", job.Status)
	}
}
