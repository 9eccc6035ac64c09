package convert

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"jsonize/internal/mapping"
)

// Job converts one XML document with one mapping file.
type Job struct {
	ID      string
	XMLPath string
	MapPath string
	OutPath string
}

// Result is the outcome of a Job.
type Result struct {
	Job      Job
	Err      error
	Duration time.Duration
}

// Jobs builds one job per XML file matching pattern. Each output file keeps
// the input's path below the directory part of pattern that has no glob
// characters, so "in/*/x.xml" writes "out/a/x.json" and "out/b/x.json".
// Two inputs mapping to the same output file are an error.
func Jobs(pattern, mapPath, outDir string) ([]Job, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	base := globBase(pattern)

	jobs := make([]Job, 0, len(matches))
	seen := make(map[string]string, len(matches))

	for _, xmlPath := range matches {
		rel, err := filepath.Rel(base, xmlPath)
		if err != nil {
			return nil, fmt.Errorf("output path for %s: %w", xmlPath, err)
		}

		outPath := filepath.Join(outDir, strings.TrimSuffix(rel, filepath.Ext(rel))+".json")
		if prev, dup := seen[outPath]; dup {
			return nil, fmt.Errorf("%s and %s both write %s", prev, xmlPath, outPath)
		}

		seen[outPath] = xmlPath

		jobs = append(jobs, Job{
			XMLPath: xmlPath,
			MapPath: mapPath,
			OutPath: outPath,
		})
	}

	return jobs, nil
}

// globBase returns the longest leading directory of pattern free of glob
// characters.
func globBase(pattern string) string {
	dir := filepath.Dir(pattern)
	for strings.ContainsAny(dir, "*?[") {
		dir = filepath.Dir(dir)
	}

	return dir
}

// Batch runs jobs with at most workers in flight (GOMAXPROCS when workers
// is not positive). Each mapping file is compiled once. A failed job does
// not stop the others; the returned error joins every job error, and
// results keep the order of jobs.
func (c *Converter) Batch(ctx context.Context, jobs []Job, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	compiled := map[string][]*mapping.NodeMap{}
	loadErrs := map[string]error{}

	for _, job := range jobs {
		if _, done := compiled[job.MapPath]; done {
			continue
		}

		if _, failed := loadErrs[job.MapPath]; failed {
			continue
		}

		maps, err := c.LoadMap(job.MapPath)
		if err != nil {
			loadErrs[job.MapPath] = err
			continue
		}

		compiled[job.MapPath] = maps
	}

	results := make([]Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, job := range jobs {
		if job.ID == "" {
			job.ID = uuid.NewString()
		}

		results[i].Job = job

		if err := loadErrs[job.MapPath]; err != nil {
			results[i].Err = err
			c.logger.Error("job failed", "job", job.ID, "xml", job.XMLPath, "error", err)

			continue
		}

		maps := compiled[job.MapPath]

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return err
			}

			start := time.Now()
			err := c.writeJSONFile(job.XMLPath, maps, job.OutPath)
			results[i].Duration = time.Since(start)
			results[i].Err = err

			if err != nil {
				c.logger.Error("job failed", "job", job.ID, "xml", job.XMLPath, "error", err)
				return nil
			}

			c.logger.Info("converted", "job", job.ID, "xml", job.XMLPath, "out", job.OutPath,
				"duration", results[i].Duration)

			return nil
		})
	}

	err := g.Wait()

	var errs []error

	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("job %s (%s): %w", r.Job.ID, r.Job.XMLPath, r.Err))
		}
	}

	if len(errs) > 0 {
		return results, errors.Join(errs...)
	}

	return results, err
}
