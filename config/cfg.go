// Package config loads program configuration and prepares logging and debug
// reporting from it.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"arender/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	PostScriptConfig struct {
		LanguageLevel       int  `yaml:"language_level" validate:"oneof=2 3"`
		OptimizeResources   bool `yaml:"optimize_resources"`
		AutoRotateLandscape bool `yaml:"auto_rotate_landscape"`
		SafeSetPageDevice   bool `yaml:"safe_set_page_device"`
		DSCCompliant        bool `yaml:"dsc_compliant"`
		JPEGQuality         int  `yaml:"jpeg_quality_level" validate:"min=40,max=100"`
		// VectorImageDPI is the resolution SVG images are rasterized at.
		VectorImageDPI float64 `yaml:"vector_image_dpi" validate:"gt=0"`
		TempDir        string  `yaml:"temp_dir,omitempty" sanitize:"path_clean" validate:"omitempty,dirpath"`
	}

	PCLConfig struct {
		Resolution    int                     `yaml:"resolution" validate:"oneof=300 600"`
		Mode          common.PCLRenderingMode `yaml:"mode" validate:"gte=0"`
		TextRendering common.PCLTextRendering `yaml:"text_rendering" validate:"gte=0"`
		PJL           bool                    `yaml:"pjl"`
		JobName       string                  `yaml:"job_name,omitempty"`
	}

	IntermediateConfig struct {
		PagesOutOfOrder bool `yaml:"pages_out_of_order"`
		// Trace stores readable painter call trace in the debug report.
		Trace bool `yaml:"trace"`
	}

	ImagesConfig struct {
		BaseDir string  `yaml:"base_dir,omitempty" sanitize:"path_clean"`
		DPI     float64 `yaml:"dpi" validate:"gt=0"`
	}

	RenderingConfig struct {
		PostScript   PostScriptConfig   `yaml:"postscript"`
		PCL          PCLConfig          `yaml:"pcl"`
		Intermediate IntermediateConfig `yaml:"intermediate"`
		Images       ImagesConfig       `yaml:"images"`
	}

	DocumentConfig struct {
		OutputNameTemplate    string `yaml:"output_name_template"`
		FileNameTransliterate bool   `yaml:"file_name_transliterate"`
	}

	Config struct {
		Version   int             `yaml:"version" validate:"eq=1"`
		Document  DocumentConfig  `yaml:"document"`
		Rendering RenderingConfig `yaml:"rendering"`
		Logging   LoggingConfig   `yaml:"logging"`
		Reporting ReporterConfig  `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// only fields we defined are allowed
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at path, puts its
// values over the expanded configuration template and validates the result.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, true)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare returns expanded default configuration.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
