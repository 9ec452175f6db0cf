// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/captionbox/pkg/adapters/fontstore"
	"github.com/user/captionbox/pkg/adapters/httpfetcher"
)

// Config represents the full configuration for captionbox.
type Config struct {
	Server ServerConfig          `yaml:"server"`
	Fetch  FetchConfig           `yaml:"fetch"`
	Fonts  map[string]FontConfig `yaml:"fonts"`
	Output OutputConfig          `yaml:"output"`

	LogLevel string `yaml:"log_level"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr              string `yaml:"addr"`
	BodyLimit         string `yaml:"body_limit"`
	ReadTimeoutMs     int    `yaml:"read_timeout_ms"`
	WriteTimeoutMs    int    `yaml:"write_timeout_ms"`
	ShutdownTimeoutMs int    `yaml:"shutdown_timeout_ms"`
}

// FetchConfig configures downloads of source images given as URLs.
type FetchConfig struct {
	TimeoutMs    int    `yaml:"timeout_ms"`
	MaxBytes     int64  `yaml:"max_bytes"`
	MaxRedirects int    `yaml:"max_redirects"`
	AllowPrivate bool   `yaml:"allow_private"`
	UserAgent    string `yaml:"user_agent"`
}

// FontConfig configures one font selector.
type FontConfig struct {
	// Path to a TTF/OTF file.
	Path string `yaml:"path"`
	// Fallback is the embedded Go font used when Path cannot be loaded.
	Fallback string `yaml:"fallback"`
	// Color and Border are the default fill and stroke colors for boxes
	// using this font. An empty Border means no stroke.
	Color  string `yaml:"color"`
	Border string `yaml:"border"`
}

// OutputConfig configures image encoding.
type OutputConfig struct {
	JPEGQuality int `yaml:"jpeg_quality"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Addr:              ":8000",
			BodyLimit:         "32M",
			ReadTimeoutMs:     30000,
			WriteTimeoutMs:    60000,
			ShutdownTimeoutMs: 10000,
		},
		Fetch: FetchConfig{
			TimeoutMs:    5000,
			MaxBytes:     httpfetcher.DefaultMaxBytes,
			MaxRedirects: httpfetcher.DefaultMaxRedirects,
			UserAgent:    "captionbox",
		},
		Fonts: defaultFonts(),
		Output: OutputConfig{
			JPEGQuality: 90,
		},
		LogLevel: "info",
		DebugDir: "./debug",
	}
}

func defaultFonts() map[string]FontConfig {
	return map[string]FontConfig{
		"arial": {
			Path:     "/usr/share/fonts/truetype/arial/arial.ttf",
			Fallback: "goregular",
			Color:    "black",
		},
		"impact": {
			Path:     "/usr/share/fonts/truetype/impact/impact.ttf",
			Fallback: "gobold",
			Color:    "white",
			Border:   "black",
		},
	}
}

// LoadFromFile loads configuration from a YAML file on top of Defaults.
// Font selectors are case-insensitive and stored lower-cased. A font entry in
// the file replaces the default entry of the same name, except that an unset
// fallback is inherited from it.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()
	cfg.Fonts = nil

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	fonts, err := mergeFonts(cfg.Fonts)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Fonts = fonts

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// mergeFonts lower-cases the selectors read from a file and lays them over
// the default fonts.
func mergeFonts(file map[string]FontConfig) (map[string]FontConfig, error) {
	fonts := defaultFonts()
	seen := make(map[string]string, len(file))
	for name, fc := range file {
		key := NormalizeFontName(name)
		if key == "" {
			return nil, fmt.Errorf("font with empty name")
		}
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("fonts %q and %q differ only in case", prev, name)
		}
		seen[key] = name
		if def, ok := fonts[key]; ok && fc.Fallback == "" {
			fc.Fallback = def.Fallback
		}
		fonts[key] = fc
	}
	return fonts, nil
}

// NormalizeFontName returns the canonical form of a font selector.
func NormalizeFontName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	if len(c.Fonts) == 0 {
		return fmt.Errorf("no fonts configured")
	}
	for _, name := range c.FontNames() {
		fc := c.Fonts[name]
		if name != NormalizeFontName(name) {
			return fmt.Errorf("font %q: selector must be lower case", name)
		}
		if fc.Path == "" && fc.Fallback == "" {
			return fmt.Errorf("font %s: path or fallback required", name)
		}
		if fc.Color != "" {
			if _, err := ParseColor(fc.Color); err != nil {
				return fmt.Errorf("font %s: color: %w", name, err)
			}
		}
		if fc.Border != "" {
			if _, err := ParseColor(fc.Border); err != nil {
				return fmt.Errorf("font %s: border: %w", name, err)
			}
		}
	}
	if q := c.Output.JPEGQuality; q < 1 || q > 100 {
		return fmt.Errorf("jpeg_quality must be between 1 and 100, got %d", q)
	}
	if c.Fetch.TimeoutMs <= 0 {
		return fmt.Errorf("fetch timeout_ms must be positive")
	}
	return nil
}

// FontNames returns the configured selectors in sorted order.
func (c Config) FontNames() []string {
	names := make([]string, 0, len(c.Fonts))
	for name := range c.Fonts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FontSpecs converts the font section for fontstore.Load.
func (c Config) FontSpecs() []fontstore.Spec {
	specs := make([]fontstore.Spec, 0, len(c.Fonts))
	for _, name := range c.FontNames() {
		fc := c.Fonts[name]
		specs = append(specs, fontstore.Spec{
			Name:     name,
			Path:     fc.Path,
			Fallback: fc.Fallback,
		})
	}
	return specs
}

// FetchOptions converts the fetch section for httpfetcher.New.
func (c Config) FetchOptions() httpfetcher.Options {
	return httpfetcher.Options{
		Timeout:      time.Duration(c.Fetch.TimeoutMs) * time.Millisecond,
		MaxBytes:     c.Fetch.MaxBytes,
		MaxRedirects: c.Fetch.MaxRedirects,
		AllowPrivate: c.Fetch.AllowPrivate,
		UserAgent:    c.Fetch.UserAgent,
	}
}
