package corpus

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/evidencemed/atlas/internal/checksum"
)

// StaleCallback is called once when the corpus file first diverges from the
// loaded snapshot.
type StaleCallback func(path, newChecksum string)

// Watch observes the corpus data file until ctx is cancelled and marks the
// snapshot stale when the file's content changes on disk. Events are
// debounced and checksum-compared so editor touch-without-change writes are
// ignored. The watch covers the file's directory, not the file itself,
// because most editors replace files via rename.
func Watch(ctx context.Context, c *Corpus, path string, logger *slog.Logger, cb StaleCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("corpus_file", abs))

	var checkTimer *time.Timer
	var checkCh <-chan time.Time

	scheduleCheck := func() {
		if checkTimer == nil {
			checkTimer = time.NewTimer(200 * time.Millisecond)
			checkCh = checkTimer.C
		} else {
			checkTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if checkTimer != nil {
				checkTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-checkCh:
			if c.Stale() {
				continue
			}
			sum, err := checksum.SumFile(abs)
			if err != nil {
				logger.Warn("watcher: checksum failed",
					slog.String("path", abs),
					slog.String("error", err.Error()))
				continue
			}
			if sum == c.Checksum() {
				continue
			}
			c.MarkStale()
			logger.Warn("watcher: corpus file changed on disk, restart to reload",
				slog.String("path", abs),
				slog.String("loaded_checksum", c.Checksum()),
				slog.String("disk_checksum", sum))
			if cb != nil {
				cb(abs, sum)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				scheduleCheck()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: error", slog.String("error", err.Error()))
		}
	}
}
