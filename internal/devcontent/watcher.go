package devcontent

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow coalesces the event bursts editors produce on save.
const debounceWindow = 200 * time.Millisecond

// Watch follows the content directory until ctx is cancelled, calling
// onChange with the changed document's type, the same notification shape the
// production webhook carries. The caller wires onChange to the invalidation
// dispatcher.
func (s *Store) Watch(ctx context.Context, onChange func(documentType string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return err
	}

	pending := make(map[string]fsnotify.Op)
	var timer *time.Timer
	timerC := func() <-chan time.Time {
		if timer == nil {
			return nil
		}
		return timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isYAML(event.Name) {
				continue
			}
			pending[event.Name] = event.Op
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
			} else {
				timer.Reset(debounceWindow)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn(ctx, err, "content watcher error")

		case <-timerC():
			timer = nil
			for path, op := range pending {
				s.apply(ctx, path, op, onChange)
			}
			pending = make(map[string]fsnotify.Op)
		}
	}
}

func (s *Store) apply(ctx context.Context, path string, op fsnotify.Op, onChange func(string)) {
	if op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename) {
		if docType := s.dropFile(path); docType != "" {
			s.logger.Info(ctx, "document removed", "path", path, "type", docType)
			onChange(docType)
		}
		return
	}

	docType, err := s.loadFile(path)
	if err != nil {
		// A half-written file shows up as a parse failure; the next
		// event for it will reload.
		s.logger.Warn(ctx, err, "skipping unreadable document", "path", path)
		return
	}
	s.logger.Info(ctx, "document changed", "path", path, "type", docType)
	onChange(docType)
}
