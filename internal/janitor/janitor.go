// Package janitor removes listing images that were uploaded for drafts that were never
// submitted.
package janitor

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"marketplace/internal/storage"
)

// ImagePrefix is the storage prefix under which listing images are uploaded.
const ImagePrefix = "listings/"

const batchSize = 500

// ImageIndex reports which image URLs are still referenced by a listing.
type ImageIndex interface {
	ReferencedImages(ctx context.Context, urls []string) (map[string]bool, error)
}

// Result summarizes one sweep.
type Result struct {
	Scanned int
	Deleted int
	Failed  int
}

// Janitor sweeps orphaned images on a cron schedule.
type Janitor struct {
	store     storage.Storage
	index     ImageIndex
	orphanAge time.Duration
	log       zerolog.Logger
	now       func() time.Time
	cron      *cron.Cron
}

// New returns a Janitor deleting unreferenced images older than orphanAge.
func New(store storage.Storage, index ImageIndex, orphanAge time.Duration, log zerolog.Logger) *Janitor {
	return &Janitor{
		store:     store,
		index:     index,
		orphanAge: orphanAge,
		log:       log.With().Str("component", "janitor").Logger(),
		now:       time.Now,
	}
}

// Start schedules Sweep with a six-field (seconds first) cron spec.
func (j *Janitor) Start(schedule string) error {
	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(schedule, j.run); err != nil {
		return fmt.Errorf("janitor schedule %q: %w", schedule, err)
	}
	j.cron = c
	c.Start()
	j.log.Info().Str("schedule", schedule).Dur("orphan_age", j.orphanAge).Msg("janitor started")
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish or ctx to end.
func (j *Janitor) Stop(ctx context.Context) {
	if j.cron == nil {
		return
	}
	select {
	case <-j.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (j *Janitor) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	start := time.Now()
	res, err := j.Sweep(ctx)
	ev := j.log.Info()
	if err != nil {
		ev = j.log.Error().Err(err)
	}
	ev.Int("scanned", res.Scanned).
		Int("deleted", res.Deleted).
		Int("failed", res.Failed).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("janitor sweep")
}

// Sweep deletes images under ImagePrefix that are older than the orphan age and referenced by
// no listing. Individual delete failures are counted and logged, not returned.
func (j *Janitor) Sweep(ctx context.Context) (Result, error) {
	var res Result

	objects, err := j.store.List(ctx, ImagePrefix)
	if err != nil {
		return res, fmt.Errorf("list images: %w", err)
	}
	res.Scanned = len(objects)

	cutoff := j.now().Add(-j.orphanAge)
	candidates := make([]storage.ObjectInfo, 0, len(objects))
	for _, o := range objects {
		if o.LastModified.Before(cutoff) {
			if o.URL == "" {
				o.URL = j.store.PublicURL(o.Key)
			}
			candidates = append(candidates, o)
		}
	}

	for start := 0; start < len(candidates); start += batchSize {
		end := min(start+batchSize, len(candidates))
		batch := candidates[start:end]

		urls := make([]string, len(batch))
		for i, o := range batch {
			urls[i] = o.URL
		}
		referenced, err := j.index.ReferencedImages(ctx, urls)
		if err != nil {
			return res, fmt.Errorf("check references: %w", err)
		}

		for _, o := range batch {
			if referenced[o.URL] {
				continue
			}
			if err := j.store.Delete(ctx, o.Key); err != nil {
				res.Failed++
				j.log.Warn().Err(err).Str("key", o.Key).Msg("delete orphaned image failed")
				continue
			}
			res.Deleted++
		}
	}
	return res, nil
}
