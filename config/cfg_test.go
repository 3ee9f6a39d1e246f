package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rupor-github/gencfg"

	"arender/common"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_Defaults(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}

	ps := cfg.Rendering.PostScript
	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if ps.LanguageLevel != 3 || ps.OptimizeResources || !ps.DSCCompliant {
		t.Errorf("PostScript defaults = %+v", ps)
	}
	pcl := cfg.Rendering.PCL
	if pcl.Resolution != 600 || pcl.Mode != common.PCLRenderingModeSpeed || pcl.TextRendering != common.PCLTextRenderingAuto {
		t.Errorf("PCL defaults = %+v", pcl)
	}
	if cfg.Rendering.Images.DPI != 96 {
		t.Errorf("Images.DPI = %v, want 96", cfg.Rendering.Images.DPI)
	}
	if cfg.Document.OutputNameTemplate != "" {
		t.Errorf("OutputNameTemplate = %q", cfg.Document.OutputNameTemplate)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	path := writeConfig(t, `version: 1
document:
  output_name_template: "{{ .Title }}"
rendering:
  postscript:
    language_level: 2
    optimize_resources: true
  pcl:
    resolution: 300
    mode: quality
    text_rendering: bitmap
    pjl: true
logging:
  console:
    level: debug
`)
	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if cfg.Rendering.PostScript.LanguageLevel != 2 || !cfg.Rendering.PostScript.OptimizeResources {
		t.Errorf("PostScript = %+v", cfg.Rendering.PostScript)
	}
	pcl := cfg.Rendering.PCL
	if pcl.Resolution != 300 || pcl.Mode != common.PCLRenderingModeQuality || pcl.TextRendering != common.PCLTextRenderingBitmap || !pcl.PJL {
		t.Errorf("PCL = %+v", pcl)
	}
	// template fields are never expanded while loading
	if cfg.Document.OutputNameTemplate != "{{ .Title }}" {
		t.Errorf("OutputNameTemplate = %q", cfg.Document.OutputNameTemplate)
	}
	// untouched values keep defaults
	if cfg.Rendering.Images.DPI != 96 {
		t.Errorf("Images.DPI = %v, want 96", cfg.Rendering.Images.DPI)
	}
	if cfg.Logging.ConsoleLogger.Level != "debug" {
		t.Errorf("console level = %q", cfg.Logging.ConsoleLogger.Level)
	}
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "version: 1\nrendering:\n  pcl\n  invalid indent\n"},
		{"unknown field", "version: 1\nunknown_field: value\n"},
		{"bad version", "version: 2\n"},
		{"bad level", "version: 1\nrendering:\n  postscript:\n    language_level: 1\n"},
		{"bad resolution", "version: 1\nrendering:\n  pcl:\n    resolution: 1200\n"},
		{"bad mode", "version: 1\nrendering:\n  pcl:\n    mode: fancy\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	if _, err := LoadConfiguration("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {}
	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if _, err := unmarshalConfig(data, &Config{}, true); err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Rendering.PCL.Mode = common.PCLRenderingModeQuality

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if !strings.Contains(string(data), "mode: quality") {
		t.Errorf("enum not dumped by name:\n%s", data)
	}

	cfg2, err := unmarshalConfig(data, &Config{}, true)
	if err != nil {
		t.Fatalf("Dumped config cannot be loaded: %v", err)
	}
	if cfg2.Rendering.PCL != cfg.Rendering.PCL {
		t.Errorf("PCL after dump/load = %+v, want %+v", cfg2.Rendering.PCL, cfg.Rendering.PCL)
	}
}
