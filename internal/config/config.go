// Package config loads the optional YAML configuration file that supplies
// defaults for CLI runs.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdexport/internal/fileutil"
	"github.com/alnah/go-mdexport/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// dirName is the directory under os.UserConfigDir searched for named configs.
const dirName = "go-mdexport"

// Field length limits.
const (
	MaxPathLength      = 4096
	MaxURLLength       = 2048
	MaxStyleNameLength = 64
	MaxStyleRefs       = 64
)

// Types lists the accepted output.type values.
var Types = []string{"html", "pdf", "png", "jpeg"}

// Config mirrors the YAML file. Zero values mean "not set" so that
// environment variables and flags can layer on top.
type Config struct {
	Output   OutputConfig   `yaml:"output"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Styles   StylesConfig   `yaml:"styles"`
	Renderer RendererConfig `yaml:"renderer"`
	Assets   AssetsConfig   `yaml:"assets"`
	Debug    bool           `yaml:"debug"`
}

type OutputConfig struct {
	Type string `yaml:"type"` // html, pdf, png, jpeg
}

type MarkdownConfig struct {
	Breaks bool `yaml:"breaks"`
	Emoji  bool `yaml:"emoji"`
}

type StylesConfig struct {
	Files     []string `yaml:"files"`     // paths, file: URIs or http(s) URLs
	Highlight string   `yaml:"highlight"` // chroma style name
}

type RendererConfig struct {
	Timeout   string `yaml:"timeout"` // Go duration, e.g. "45s"
	NoInstall bool   `yaml:"noInstall"`
}

type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets
}

// DefaultConfig returns an empty configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// Timeout returns the parsed renderer timeout, or zero when unset.
// Validate guarantees the value parses.
func (c *Config) Timeout() time.Duration {
	if c.Renderer.Timeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.Renderer.Timeout)
	return d
}

// Validate checks field lengths and enumerated values.
func (c *Config) Validate() error {
	if t := c.Output.Type; t != "" && !isType(t) {
		return fmt.Errorf("%w: output.type %q (must be one of %s)", ErrInvalidValue, t, strings.Join(Types, ", "))
	}

	if len(c.Styles.Files) > MaxStyleRefs {
		return fmt.Errorf("%w: styles.files has %d entries (max %d)", ErrInvalidValue, len(c.Styles.Files), MaxStyleRefs)
	}
	for i, ref := range c.Styles.Files {
		if err := validateFieldLength(fmt.Sprintf("styles.files[%d]", i), ref, MaxURLLength); err != nil {
			return err
		}
	}
	if err := validateFieldLength("styles.highlight", c.Styles.Highlight, MaxStyleNameLength); err != nil {
		return err
	}

	if c.Renderer.Timeout != "" {
		d, err := time.ParseDuration(c.Renderer.Timeout)
		if err != nil {
			return fmt.Errorf("%w: renderer.timeout %q: %v", ErrInvalidValue, c.Renderer.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: renderer.timeout must be positive, got %s", ErrInvalidValue, d)
		}
	}

	return validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength)
}

func isType(t string) bool {
	t = strings.ToLower(t)
	for _, v := range Types {
		if v == t {
			return true
		}
	}
	return false
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// NotFoundError lists the locations searched for a named config.
// It matches ErrConfigNotFound with errors.Is.
type NotFoundError struct {
	Name  string
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %q (tried %s)", ErrConfigNotFound, e.Name, strings.Join(e.Tried, ", "))
}

func (e *NotFoundError) Unwrap() error { return ErrConfigNotFound }

// LoadConfig reads and validates a config file.
// nameOrPath is either a path (contains a separator or ends in .yaml/.yml)
// or a bare name searched as <name>.yaml|.yml in the working directory, then
// in <user config dir>/go-mdexport/.
func LoadConfig(nameOrPath string) (*Config, string, error) {
	if nameOrPath == "" {
		return nil, "", ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, "", err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", &NotFoundError{Name: nameOrPath, Tried: []string{configPath}}
		}
		return nil, "", fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.Decode(data, &cfg); err != nil {
		return nil, "", fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("%s: %w", configPath, err)
	}

	return &cfg, configPath, nil
}

// Dump renders the effective configuration for verbose logging.
func (c *Config) Dump() string {
	out, err := yamlutil.Encode(c)
	if err != nil {
		return err.Error()
	}
	return string(out)
}

func isFilePath(s string) bool {
	if strings.ContainsAny(s, "/\\") {
		return true
	}
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

// userConfigDir is swapped in tests.
var userConfigDir = os.UserConfigDir

func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	tried := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		local := name + ext
		if fileutil.FileExists(local) {
			return local, nil
		}
		tried = append(tried, local)
	}

	if dir, err := userConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(dir, dirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			tried = append(tried, userPath)
		}
	}

	return "", &NotFoundError{Name: name, Tried: tried}
}
