package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func makeZip(t *testing.T, names ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	w := zip.NewWriter(f)
	for _, name := range names {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to create %s in zip: %v", name, err)
		}
		if strings.HasSuffix(name, "/") {
			// directory entries take no content
			continue
		}
		if _, err := fw.Write([]byte("<areaTree/>")); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func collect(t *testing.T, path, prefix string) ([]string, error) {
	t.Helper()
	var visited []string
	err := Walk(path, prefix, func(archive string, file *zip.File) error {
		if archive != path {
			t.Errorf("archive = %s, want %s", archive, path)
		}
		visited = append(visited, file.Name)
		return nil
	})
	return visited, err
}

func TestWalk(t *testing.T) {
	path := makeZip(t, "docs/part10.xml", "docs/part2.xml", "docs/", "images/a.png", "docs/part1.xml")

	tests := []struct {
		prefix string
		want   []string
	}{
		{"docs/", []string{"docs/part1.xml", "docs/part2.xml", "docs/part10.xml"}},
		{"images", []string{"images/a.png"}},
		{"", []string{"docs/part1.xml", "docs/part2.xml", "docs/part10.xml", "images/a.png"}},
		{"nothing", nil},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			got, err := collect(t, path, tt.prefix)
			if err != nil {
				t.Fatalf("Walk() error = %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("visited %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWalk_StopsOnError(t *testing.T) {
	path := makeZip(t, "a.xml", "b.xml")
	stop := errors.New("stop")
	calls := 0
	err := Walk(path, "", func(string, *zip.File) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Errorf("Walk() = %v after %d calls", err, calls)
	}
}

func TestWalk_UnsafeEntries(t *testing.T) {
	for _, name := range []string{"../evil.xml", "/abs.xml", "a/../../b.xml"} {
		t.Run(name, func(t *testing.T) {
			if _, err := collect(t, makeZip(t, "ok.xml", name), ""); err == nil {
				t.Error("expected error for unsafe entry")
			}
		})
	}
}

func TestWalk_NotArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.xml")
	if err := os.WriteFile(path, []byte("<areaTree/>"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := collect(t, path, ""); err == nil {
		t.Error("expected error for non zip file")
	}
}
