package convert

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits for changes to settle.
const DefaultDebounce = 100 * time.Millisecond

// Watch runs job once, then again every time its XML or mapping file
// changes, until ctx is done. Every run is reported to report. Editors that
// replace files on save are handled by watching the parent directories.
func (c *Converter) Watch(ctx context.Context, job Job, debounce time.Duration, report func(Result)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watched := map[string]bool{}

	for _, p := range []string{job.XMLPath, job.MapPath} {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", p, err)
		}

		watched[abs] = true
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dirs := map[string]bool{}
	for p := range watched {
		dirs[filepath.Dir(p)] = true
	}

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	report(c.run(job))

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timerC:
			timerC = nil
			report(c.run(job))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			c.logger.Warn("watcher error", "error", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}

			c.logger.Debug("change detected", "file", event.Name)

			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}

			timerC = timer.C
		}
	}
}

// run reloads the mapping file and converts the document of job.
func (c *Converter) run(job Job) Result {
	start := time.Now()

	err := c.ToJSONFile(job.XMLPath, job.MapPath, job.OutPath)

	r := Result{Job: job, Err: err, Duration: time.Since(start)}
	if err != nil {
		c.logger.Error("conversion failed", "xml", job.XMLPath, "error", err)
	} else {
		c.logger.Info("converted", "xml", job.XMLPath, "out", job.OutPath, "duration", r.Duration)
	}

	return r
}
