package convert

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"arender/common"
	"arender/config"
	"arender/state"
)

func setupTestEnvForOutputPath(t *testing.T, noDirs, transliterate bool, template string) *state.LocalEnv {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Document.FileNameTransliterate = transliterate
	cfg.Document.OutputNameTemplate = template
	return &state.LocalEnv{
		Log:    zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller())),
		Cfg:    cfg,
		NoDirs: noDirs,
	}
}

func TestBuildOutputPath(t *testing.T) {
	v := Values{Title: "Test Book", Language: "en", Pages: 12, Format: "ps", SourceFile: "book", JobID: "42"}
	tests := []struct {
		name          string
		src           string
		format        common.OutputFmt
		noDirs        bool
		transliterate bool
		template      string
		want          string
	}{
		{"no dirs", "books/author/book.xml", common.OutputFmtPs, true, false, "",
			filepath.Join("/output", "book.ps")},
		{"keep dirs", "books/author/book.xml", common.OutputFmtPs, false, false, "",
			filepath.Join("/output", "books", "author", "book.ps")},
		{"intermediate input", "book.if.xml", common.OutputFmtPcl, true, false, "",
			filepath.Join("/output", "book.pcl")},
		{"intermediate output", "book.xml", common.OutputFmtIf, true, false, "",
			filepath.Join("/output", "book.if.xml")},
		{"template", "books/book.xml", common.OutputFmtPs, true, false, "{{ .Title }} ({{ .Pages }})",
			filepath.Join("/output", "Test Book (12).ps")},
		{"template with subdirs", "books/book.xml", common.OutputFmtPs, false, false, "{{ .Language }}/{{ .Title }}",
			filepath.Join("/output", "books", "en", "Test Book.ps")},
		{"transliterate", "books/book.xml", common.OutputFmtPs, true, true, "{{ .Title }}",
			filepath.Join("/output", "test-book.ps")},
		{"transliterate default name", "My Book.xml", common.OutputFmtPcl, true, true, "",
			filepath.Join("/output", "my-book.pcl")},
		{"leading dots removed", "book.xml", common.OutputFmtPs, true, false, "..{{ .SourceFile }}",
			filepath.Join("/output", "book.ps")},
		{"broken template", "book.xml", common.OutputFmtPs, true, false, "{{ .Title",
			filepath.Join("/output", "book.ps")},
		{"unknown field", "book.xml", common.OutputFmtPs, true, false, "{{ .Author }}",
			filepath.Join("/output", "book.ps")},
		{"empty expansion", "book.xml", common.OutputFmtPs, true, false, "{{ .Context | trimAll .Context }}  ",
			filepath.Join("/output", "book.ps")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnvForOutputPath(t, tt.noDirs, tt.transliterate, tt.template)
			got := buildOutputPath(v, tt.src, "/output", tt.format, env)
			if got != tt.want {
				t.Errorf("buildOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a", []string{"a"}},
		{filepath.Join("a", "b", "c"), []string{"a", "b", "c"}},
		{filepath.Join("a", "b") + string(filepath.Separator), []string{"a", "b"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := splitPath(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitPath(%q) = %q, want %q", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitPath(%q) = %q, want %q", tt.in, got, tt.want)
				break
			}
		}
	}
}

func TestTrimInputExt(t *testing.T) {
	for in, want := range map[string]string{
		"book.xml":    "book",
		"book.if.xml": "book",
		"book.at":     "book",
		"book":        "book",
		"a.b.xml":     "a.b",
	} {
		if got := trimInputExt(in); got != want {
			t.Errorf("trimInputExt(%q) = %q, want %q", in, got, want)
		}
	}
}
