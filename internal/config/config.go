// Package config provides configuration management for the site generator.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrNoInputFiles       = errors.New("input.files must list at least one file")
	ErrEmptyInputFile     = errors.New("input file path is empty")
	ErrMissingOutputPath  = errors.New("output.path is required")
	ErrMissingTitle       = errors.New("site.title is required")
	ErrInvalidRangeMax    = errors.New("render.sugar_range_max must be positive")
	ErrInvalidLogLevel    = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrMissingAssetURL    = errors.New("site.assets urls are required")
	ErrSummaryIsDocument  = errors.New("output.summary_path must differ from output.path")
	ErrConfigFileNotFound = errors.New("config file not found")
)

// Default file names, matching the original generator.
const (
	DefaultVarietiesFile = "strawberry_varieties.json"
	DefaultDiseaseFile   = "strawberry_disease.json"
	DefaultOutputFile    = "strawberry_knowledge_base.html"

	// LocalConfigPath is checked when no --config flag is given.
	LocalConfigPath = "configs/berrypedia.yaml"
	// HomeConfigName is checked in the user's home directory after LocalConfigPath.
	HomeConfigName = ".berrypedia.yaml"
)

// Config represents the complete generator configuration.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

// SiteConfig describes the generated page.
type SiteConfig struct {
	Title          string       `yaml:"title"`
	Brand          string       `yaml:"brand"`
	BrandAccent    string       `yaml:"brand_accent"`
	Lang           string       `yaml:"lang"`
	Description    string       `yaml:"description"`
	FooterMarkdown string       `yaml:"footer_markdown"`
	Assets         AssetsConfig `yaml:"assets"`
}

// AssetsConfig holds the CDN urls the page loads at view time.
type AssetsConfig struct {
	Tailwind    string `yaml:"tailwind"`
	FontAwesome string `yaml:"font_awesome"`
	Alpine      string `yaml:"alpine"`
}

// InputConfig lists the catalog files. Later files override earlier ones per category.
type InputConfig struct {
	Files  []string `yaml:"files"`
	Strict bool     `yaml:"strict"`
}

// OutputConfig defines where results are written.
type OutputConfig struct {
	Path        string `yaml:"path"`
	SummaryPath string `yaml:"summary_path"`
}

// RenderConfig controls normalization and page options.
type RenderConfig struct {
	SanitizeHTML  bool    `yaml:"sanitize_html"`
	SugarRangeMax float64 `yaml:"sugar_range_max"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Site: SiteConfig{
			Title:          "草莓知識百科資料庫",
			Brand:          "草莓知識",
			BrandAccent:    "百科",
			Lang:           "zh-TW",
			Description:    "草莓品種、病蟲害與營養缺素的圖鑑資料庫",
			FooterMarkdown: "資料整理自政府開放資料及各大農業改良場公開資訊\n\n© 2025 草莓知識百科. By XPRAMT",
			Assets: AssetsConfig{
				Tailwind:    "https://cdn.tailwindcss.com",
				FontAwesome: "https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.4.0/css/all.min.css",
				Alpine:      "https://cdn.jsdelivr.net/npm/alpinejs@3.x.x/dist/cdn.min.js",
			},
		},
		Input: InputConfig{
			Files: []string{DefaultVarietiesFile, DefaultDiseaseFile},
		},
		Output: OutputConfig{
			Path: DefaultOutputFile,
		},
		Render: RenderConfig{
			SanitizeHTML:  true,
			SugarRangeMax: 20,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from a YAML file, on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Resolve finds the config file to use. An explicit path must exist; otherwise the local and
// home locations are tried in order. An empty result means "use defaults".
func Resolve(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, explicit)
		}

		return explicit, nil
	}

	candidates := []string{LocalConfigPath}

	if home, err := homedir.Dir(); err == nil {
		candidates = append(candidates, filepath.Join(home, HomeConfigName))
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}

	return "", nil
}

// Load resolves and loads the configuration, falling back to defaults when no file exists.
// It returns the path that was used, or "" for defaults.
func Load(explicit string) (*Config, string, error) {
	path, err := Resolve(explicit)
	if err != nil {
		return nil, "", err
	}

	if path == "" {
		return Default(), "", nil
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, path, err
	}

	return cfg, path, nil
}

// SaveConfig saves configuration to a YAML file.
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Site.Title) == "" {
		return ErrMissingTitle
	}

	if c.Site.Assets.Tailwind == "" || c.Site.Assets.FontAwesome == "" || c.Site.Assets.Alpine == "" {
		return ErrMissingAssetURL
	}

	if len(c.Input.Files) == 0 {
		return ErrNoInputFiles
	}

	for i, f := range c.Input.Files {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("%w: input.files[%d]", ErrEmptyInputFile, i)
		}
	}

	if c.Output.Path == "" {
		return ErrMissingOutputPath
	}

	if c.Output.SummaryPath != "" && filepath.Clean(c.Output.SummaryPath) == filepath.Clean(c.Output.Path) {
		return ErrSummaryIsDocument
	}

	if c.Render.SugarRangeMax <= 0 {
		return ErrInvalidRangeMax
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// ExpandPaths expands a leading ~ in every configured file path.
func (c *Config) ExpandPaths() error {
	for i, f := range c.Input.Files {
		p, err := homedir.Expand(f)
		if err != nil {
			return fmt.Errorf("input.files[%d]: %w", i, err)
		}

		c.Input.Files[i] = p
	}

	for _, p := range []*string{&c.Output.Path, &c.Output.SummaryPath} {
		if *p == "" {
			continue
		}

		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("output path %q: %w", *p, err)
		}

		*p = expanded
	}

	return nil
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Inputs: %d, Strict: %t, Output: %s}",
		len(c.Input.Files),
		c.Input.Strict,
		c.Output.Path,
	)
}
