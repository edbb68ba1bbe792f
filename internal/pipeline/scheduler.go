// Package pipeline runs write jobs concurrently, copying or rendering files
// from a source filesystem into a destination filesystem.
package pipeline

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	verrors "github.com/JonSteinn/vspy/internal/errors"
	"github.com/JonSteinn/vspy/internal/fileio"
	"github.com/JonSteinn/vspy/internal/output"
	"github.com/JonSteinn/vspy/internal/render"
)

// WriteJob copies Source to Destination, rendering it first when
// IsTemplate is set.
type WriteJob struct {
	Source      string
	Destination string
	IsTemplate  bool
}

// Result summarizes a successful Run.
type Result struct {
	// Written lists every destination written, sorted.
	Written []string

	Duration time.Duration
}

// Scheduler executes write jobs.
type Scheduler struct {
	Source      afero.Fs
	Destination afero.Fs

	// Workers bounds concurrent jobs. Zero means one goroutine per job.
	Workers int

	// Renderer renders template jobs. Nil selects render.New().
	Renderer *render.Renderer
}

// Run executes all jobs and waits for every one of them to return.
// The first failing job cancels the rest and is returned as a
// *errors.JobError. Files written before the failure are left in place.
func (s *Scheduler) Run(ctx context.Context, jobs []WriteJob, data map[string]any) (*Result, error) {
	start := time.Now()
	renderer := s.Renderer
	if renderer == nil {
		renderer = render.New()
	}

	g, gctx := errgroup.WithContext(ctx)
	if s.Workers > 0 {
		g.SetLimit(s.Workers)
	}

	var mu sync.Mutex
	written := make([]string, 0, len(jobs))

	for _, job := range jobs {
		g.Go(func() error {
			if err := s.runJob(gctx, renderer, job, data); err != nil {
				return &verrors.JobError{Source: job.Source, Destination: job.Destination, Err: err}
			}
			mu.Lock()
			written = append(written, job.Destination)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.Sort(written)
	result := &Result{Written: written, Duration: time.Since(start)}
	output.Debug("write jobs finished", "jobs", len(jobs), "duration", result.Duration)
	return result, nil
}

func (s *Scheduler) runJob(ctx context.Context, renderer *render.Renderer, job WriteJob, data map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content, err := fileio.ReadText(s.Source, job.Source)
	if err != nil {
		return err
	}

	if job.IsTemplate {
		content, err = renderer.Render(job.Source, content, data)
		if err != nil {
			return err
		}
		if err := render.CheckFormat(job.Destination, content); err != nil {
			return fmt.Errorf("rendered output is malformed: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fileio.WriteText(s.Destination, job.Destination, content); err != nil {
		return err
	}

	output.Debug("wrote file", "src", job.Source, "dst", job.Destination, "template", job.IsTemplate)
	return nil
}
