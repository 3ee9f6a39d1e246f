// Package archive visits documents packed into zip archives.
package archive

import (
	"archive/zip"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/maruel/natural"
)

// WalkFunc is called for every matching file, archive is the path passed to
// Walk. Returned error stops the walk.
type WalkFunc func(archive string, file *zip.File) error

// Walk visits files of archive whose names start with prefix in natural name
// order, so "part2.xml" comes before "part10.xml". Archives having entries
// which could escape extraction directory are rejected as a whole.
func Walk(archive, prefix string, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	matched := make([]*zip.File, 0, len(r.File))
	for _, f := range r.File {
		if !isSafePath(f.Name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", f.Name)
		}
		if !f.FileInfo().IsDir() && strings.HasPrefix(f.Name, prefix) {
			matched = append(matched, f)
		}
	}
	slices.SortStableFunc(matched, func(a, b *zip.File) int {
		switch {
		case natural.Less(a.Name, b.Name):
			return -1
		case natural.Less(b.Name, a.Name):
			return 1
		}
		return 0
	})

	for _, f := range matched {
		if err := walkFn(archive, f); err != nil {
			return err
		}
	}
	return nil
}

func isSafePath(name string) bool {
	if strings.HasPrefix(name, `\`) || strings.Contains(name, `\..`) {
		return false
	}
	// directories carry trailing slash which ValidPath rejects
	return fs.ValidPath(strings.TrimSuffix(name, "/"))
}
