package tabfuse

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tabfuse/tabfuse/internal/config"
	"github.com/tabfuse/tabfuse/pkg/constants"
	pkgerrors "github.com/tabfuse/tabfuse/pkg/errors"
	"github.com/tabfuse/tabfuse/pkg/logging"
)

// Watch merges once, then re-merges whenever the config file or a
// source file changes, debounced so editor save bursts trigger a single
// run. A positive watch interval in the config re-merges periodically
// as well. Runs are strictly sequential; the loop owns them all.
//
// Watch returns when ctx ends or the filesystem watcher fails.
func (r *runner) Watch(ctx context.Context) error {
	interval, err := r.cfg.Watch.IntervalDuration()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return pkgerrors.WrapIO("watch", "", err)
	}
	defer func() { _ = watcher.Close() }()

	watched, err := r.addWatchTargets(watcher, make(map[string]struct{}))
	if err != nil {
		return err
	}

	log := logging.FromContext(ctx)
	log.Info().
		Int("files", len(watched)).
		Dur("interval", interval).
		Msg("Watching for changes")

	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	if err := r.watchRun(ctx); err != nil {
		return err
	}

	var (
		debounce      *time.Timer
		debounceC     <-chan time.Time
		configChanged bool
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, ok := watched[abs]; !ok {
				continue
			}
			if abs == r.configAbsPath() {
				configChanged = true
			}
			log.Debug().
				Str("file", abs).
				Str("op", event.Op.String()).
				Msg("Change detected")

			if debounce == nil {
				debounce = time.NewTimer(constants.WatchDebounce)
				debounceC = debounce.C
			} else {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(constants.WatchDebounce)
			}

		case <-debounceC:
			debounce = nil
			debounceC = nil
			if configChanged {
				configChanged = false
				r.reloadConfig(ctx)
				if watched, err = r.addWatchTargets(watcher, watched); err != nil {
					log.Warn().Err(err).Msg("Failed to watch new paths")
				}
			}
			if err := r.watchRun(ctx); err != nil {
				return err
			}

		case <-tick:
			if err := r.watchRun(ctx); err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("Watcher error")
		}
	}
}

// watchRun executes one bounded merge run. Merge failures are logged
// and the loop keeps waiting; only the parent context ending stops it.
func (r *runner) watchRun(ctx context.Context) error {
	runCtx, cancel := context.WithTimeout(ctx, constants.MergeContextTimeout)
	result, err := r.Run(runCtx)
	cancel()

	log := logging.FromContext(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Error().Err(err).Msg("Merge failed, waiting for next change")
		return nil
	}

	log.Info().
		Str("run_id", result.RunID).
		Int("rows", result.Table.Len()).
		Int("unmatched", result.RowsUnmatched()).
		Msg("Merge refreshed")
	return nil
}

// reloadConfig re-reads the config file after it changed. An invalid
// replacement is logged and the previous config stays in effect.
func (r *runner) reloadConfig(ctx context.Context) {
	log := logging.FromContext(ctx)
	path := r.cfg.Path()
	if path == "" {
		return
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Config reload failed, keeping previous config")
		return
	}
	r.cfg = cfg
	log.Info().Str("path", path).Msg("Config reloaded")
}

// addWatchTargets registers the parent directory of every watched file
// so replace-by-rename saves are still observed, and returns the
// updated set of absolute file paths to react to.
func (r *runner) addWatchTargets(watcher *fsnotify.Watcher, watched map[string]struct{}) (map[string]struct{}, error) {
	dirs := make(map[string]struct{})
	for _, path := range r.cfg.WatchPaths() {
		abs, err := filepath.Abs(path)
		if err != nil {
			return watched, pkgerrors.WrapIO("watch", path, err)
		}
		watched[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return watched, pkgerrors.WrapIO("watch", dir, err)
		}
	}
	return watched, nil
}

// configAbsPath returns the loaded config file's absolute path, or
// empty when the config did not come from a file.
func (r *runner) configAbsPath() string {
	path := r.cfg.Path()
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
