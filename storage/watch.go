package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls fn with the new value of key every time another writer
// replaces it, until ctx is done. The directory is watched rather than the
// file because Set replaces the file with a rename.
//
// Watch blocks. It returns nil when ctx is cancelled.
func (s *FileStore) Watch(ctx context.Context, key string, fn func(data []byte)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(s.dir); err != nil {
		return fmt.Errorf("watch %s: %w", s.dir, err)
	}

	target := filepath.Clean(s.Path(key))
	last, err := s.Get(key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}

			data, err := s.Get(key)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			// Write events can fire several times for one update.
			if bytes.Equal(data, last) {
				continue
			}
			last = data
			fn(data)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %q: %w", key, err)
		}
	}
}
