// Package files keeps track of temporary files which could not be removed
// right away.
package files

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"sync"

	"go.uber.org/multierr"
)

var (
	mu      sync.Mutex
	pending []string
)

// Remove deletes name. When that fails the file is remembered and retried by
// CleanupPending, so callers never leave temporary files behind knowingly.
func Remove(name string) error {
	err := os.Remove(name)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	RemoveLater(name)
	return err
}

// RemoveLater registers name for removal at program exit.
func RemoveLater(name string) {
	mu.Lock()
	defer mu.Unlock()
	pending = append(pending, name)
}

// Pending returns files still waiting for removal.
func Pending() []string {
	mu.Lock()
	defer mu.Unlock()
	return append([]string(nil), pending...)
}

// CleanupPending tries to remove every registered file, files which still
// could not be removed stay registered.
func CleanupPending() error {
	mu.Lock()
	defer mu.Unlock()

	var (
		err  error
		left []string
	)
	for _, name := range pending {
		if e := os.Remove(name); e != nil && !errors.Is(e, fs.ErrNotExist) {
			err = multierr.Append(err, e)
			left = append(left, name)
		}
	}
	pending = left
	return err
}

// CopyFrom copies the whole file name into w.
func CopyFrom(w io.Writer, name string) (err error) {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	_, err = io.Copy(w, f)
	return err
}
