package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/structify/outliner/internal/decoder"
	"github.com/structify/outliner/internal/outline"
	"github.com/structify/outliner/internal/store"
)

// Worker processes a single document job.
type Worker struct {
	extractor *outline.Extractor
	results   *store.Store
	stats     *Stats
	log       *slog.Logger
}

func NewWorker(ex *outline.Extractor, results *store.Store, stats *Stats, log *slog.Logger) *Worker {
	return &Worker{
		extractor: ex,
		results:   results,
		stats:     stats,
		log:       log,
	}
}

// Process runs the full extraction pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID, "filename", job.Filename)
	start := time.Now()

	// Phase 1: Decode the file into styled fragments.
	job.SetStatus(StatusDecoding, "decoding")
	d, err := decoder.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "decoding")
		return
	}

	frags, err := d.Decode(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("decode failed", "error", err)
		job.AddError(fmt.Sprintf("decode: %s", err))
		job.SetStatus(StatusFailed, "decoding")
		return
	}
	job.SetFragments(len(frags))
	log.Info("decoded document", "fragments", len(frags))

	if ctx.Err() != nil {
		job.AddError(ctx.Err().Error())
		job.SetStatus(StatusFailed, "decoding")
		return
	}

	// Phase 2: Infer the title and heading outline.
	job.SetStatus(StatusExtracting, "extracting")
	res, err := w.extractor.Extract(frags)
	if err != nil {
		var inv *outline.InvalidFragmentError
		if errors.As(err, &inv) {
			log.Error("invalid fragment", "index", inv.Index, "reason", inv.Reason)
		} else {
			log.Error("extraction failed", "error", err)
		}
		job.AddError(fmt.Sprintf("extract: %s", err))
		job.SetStatus(StatusFailed, "extracting")
		return
	}
	if res.Title == "" {
		// Fall back to the filename when the document yields no title.
		res.Title = strings.TrimSuffix(job.Filename, filepath.Ext(job.Filename))
	}
	job.SetResult(res)
	log.Info("extraction complete", "title", res.Title, "headings", len(res.Outline))

	if ctx.Err() != nil {
		job.AddError(ctx.Err().Error())
		job.SetStatus(StatusFailed, "extracting")
		return
	}

	// Phase 3: Persist the result.
	job.SetStatus(StatusStoring, "storing")
	if err := w.results.Save(job.DocID, res); err != nil {
		log.Error("store failed", "error", err)
		job.AddError(fmt.Sprintf("store: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	w.stats.Record(time.Since(start).Milliseconds())
	job.SetStatus(StatusCompleted, "done")
}
