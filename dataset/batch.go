package dataset

import (
	"bytes"
	"context"
	"fmt"
	"sync/atomic"

	"github.com/gogpu/captcha"
	"github.com/gogpu/captcha/internal/parallel"
)

// Job configures one batch run against a single generator.
type Job struct {
	// Count is the number of samples to produce.
	Count int

	// Seed is the master seed. Sample i draws from the stream derived
	// from (Seed, i), never from a shared generator, so the corpus is
	// identical no matter how many workers run it.
	Seed int64

	// Workers caps the parallel workers. Zero or negative uses one worker
	// per CPU.
	Workers int
}

// Result reports what a batch run produced.
type Result struct {
	// Records holds the manifest entries in sample order. Failed samples
	// leave no record.
	Records []Record

	// Failed counts samples that errored and were skipped.
	Failed int
}

// Run generates job.Count samples through gen and writes them via w,
// then stores the manifest. Text lengths cycle through the generator's
// configured range so every length is evenly represented, matching how
// training corpora for this format are conventionally balanced.
//
// Individual sample failures are logged and skipped; the run keeps going.
// Cancelling ctx stops unstarted samples and returns the context error
// without writing a manifest.
func Run(ctx context.Context, gen *captcha.Generator, w *Writer, job Job) (*Result, error) {
	if job.Count < 0 {
		return nil, fmt.Errorf("dataset: negative sample count %d", job.Count)
	}

	log := captcha.Logger()
	log.Info("batch started",
		"tier", string(w.Tier()),
		"count", job.Count,
		"seed", job.Seed,
		"workers", job.Workers)

	minLen, maxLen := gen.LengthRange()
	lengthSpan := maxLen - minLen + 1

	records := make([]*Record, job.Count)
	var done, failed atomic.Int64

	pool := parallel.NewWorkerPool(job.Workers)
	defer pool.Close()

	work := make([]func(), job.Count)
	for i := range work {
		idx := i
		work[i] = func() {
			if ctx.Err() != nil {
				return
			}

			id := ImageID(idx + 1)
			rng := captcha.DeriveRand(job.Seed, uint64(idx))
			text := gen.SampleText(rng, minLen+idx%lengthSpan)

			sample, err := gen.GenerateSample(rng, text)
			if err != nil {
				failed.Add(1)
				log.Warn("sample failed, skipping", "image_id", id, "error", err)
				return
			}

			var buf bytes.Buffer
			if err := sample.Canvas.EncodePNG(&buf); err != nil {
				failed.Add(1)
				log.Warn("encode failed, skipping", "image_id", id, "error", err)
				return
			}
			if err := w.WriteImage(id, buf.Bytes()); err != nil {
				failed.Add(1)
				log.Warn("write failed, skipping", "image_id", id, "error", err)
				return
			}

			records[idx] = &Record{
				Height:        gen.Height(),
				Width:         gen.Width(),
				ImageID:       id,
				CaptchaString: sample.Text,
				Filename:      id + ".png",
				Difficulty:    string(gen.Tier()),
			}

			if n := done.Add(1); n%100 == 0 {
				log.Info("batch progress", "tier", string(w.Tier()), "done", n, "total", job.Count)
			}
		}
	}

	pool.ExecuteAll(work)

	if err := ctx.Err(); err != nil {
		log.Info("batch cancelled", "tier", string(w.Tier()), "done", done.Load())
		return nil, err
	}

	out := make([]Record, 0, job.Count)
	for _, r := range records {
		if r != nil {
			out = append(out, *r)
		}
	}
	if err := w.WriteManifest(out); err != nil {
		return nil, err
	}

	log.Info("batch complete",
		"tier", string(w.Tier()),
		"written", len(out),
		"failed", failed.Load(),
		"manifest", w.ManifestPath())

	return &Result{Records: out, Failed: int(failed.Load())}, nil
}
