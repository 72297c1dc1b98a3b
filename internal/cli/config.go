package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// Color modes accepted by Config.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents common configuration for the ng tools
type Config struct {
	Verbose bool   `json:"verbose" yaml:"verbose" toml:"verbose"`
	Debug   bool   `json:"debug" yaml:"debug" toml:"debug"`
	Color   string `json:"color" yaml:"color" toml:"color"`
	// Language is a semver constraint the front end's language version must satisfy.
	Language string `json:"language" yaml:"language" toml:"language"`

	Serve ServeConfig `json:"serve" yaml:"serve" toml:"serve"`
	Watch WatchConfig `json:"watch" yaml:"watch" toml:"watch"`
	Index IndexConfig `json:"index" yaml:"index" toml:"index"`
}

// ServeConfig configures the lookup service.
type ServeConfig struct {
	Addr     string   `json:"addr" yaml:"addr" toml:"addr"`
	Hosts    []string `json:"hosts" yaml:"hosts" toml:"hosts"`
	CertFile string   `json:"cert_file" yaml:"cert_file" toml:"cert_file"`
	KeyFile  string   `json:"key_file" yaml:"key_file" toml:"key_file"`
}

// WatchConfig configures ngc watch.
type WatchConfig struct {
	Debounce Duration `json:"debounce" yaml:"debounce" toml:"debounce"`
}

// IndexConfig configures the symbol database.
type IndexConfig struct {
	Path string `json:"path" yaml:"path" toml:"path"`
}

// Duration wraps time.Duration so that it reads and writes as a string
// such as "250ms" in every config format.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// MarshalYAML formats the duration as a string scalar
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Color: ColorAuto,
		Serve: ServeConfig{
			Addr:  "127.0.0.1:4433",
			Hosts: []string{"localhost", "127.0.0.1"},
		},
		Watch: WatchConfig{Debounce: Duration{200 * time.Millisecond}},
		Index: IndexConfig{Path: "ng-index.db"},
	}
}

// Format is a configuration file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// detectFormat determines the configuration format from file extension
func detectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unsupported config format: %s", path)
}

// LoadConfig loads configuration from file. Fields missing from the file
// keep their defaults, and a missing file yields the defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if configPath == "" {
		return config, nil
	}

	format, err := detectFormat(configPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(os.ExpandEnv(configPath))
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, config)
	case FormatYAML:
		err = yaml.Unmarshal(data, config)
	case FormatTOML:
		_, err = toml.Decode(string(data), config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig saves configuration to file in the format named by its extension
func (c *Config) SaveConfig(configPath string) error {
	format, err := detectFormat(configPath)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(c, "", "  ")
	case FormatYAML:
		data, err = yaml.Marshal(c)
	case FormatTOML:
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(c)
		data = buf.Bytes()
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the values that have a fixed vocabulary.
func (c *Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q: want auto, always or never", c.Color)
	}
	if c.Language != "" {
		if _, err := semver.NewConstraint(c.Language); err != nil {
			return fmt.Errorf("invalid language constraint %q: %w", c.Language, err)
		}
	}
	if c.Watch.Debounce.Duration < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	return nil
}

// CheckLanguage reports an error when version does not satisfy the
// configured language constraint. An empty constraint accepts any version.
func (c *Config) CheckLanguage(version string) error {
	if c.Language == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(c.Language)
	if err != nil {
		return fmt.Errorf("invalid language constraint %q: %w", c.Language, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid language version %q: %w", version, err)
	}
	if ok, reasons := constraint.Validate(v); !ok {
		return fmt.Errorf("language version %s does not satisfy %q: %v", v, c.Language, reasons[0])
	}
	return nil
}

// ColorEnabled resolves the colour mode for w. Under auto, only a writer
// backed by a terminal file descriptor gets colour.
func (c *Config) ColorEnabled(w io.Writer) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	return ok && os.Getenv("NO_COLOR") == "" && IsTerminal(f.Fd())
}
