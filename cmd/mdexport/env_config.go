package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alnah/go-mdexport/internal/config"
)

// Environment variables read by the CLI.
const (
	envPrefix         = "MDEXPORT_"
	envConfigPath     = "MDEXPORT_CONFIG"
	envType           = "MDEXPORT_TYPE"
	envStyles         = "MDEXPORT_STYLES"
	envHighlightStyle = "MDEXPORT_HIGHLIGHT_STYLE"
	envTimeout        = "MDEXPORT_TIMEOUT"
	envAssetPath      = "MDEXPORT_ASSET_PATH"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath     string
	Type           string
	Styles         []string // comma separated
	HighlightStyle string
	Timeout        string // validated with the rest of the config
	AssetPath      string
}

// knownEnvVars lists valid MDEXPORT_* environment variables.
var knownEnvVars = map[string]bool{
	envConfigPath:     true,
	envType:           true,
	envStyles:         true,
	envHighlightStyle: true,
	envTimeout:        true,
	envAssetPath:      true,
}

// loadEnvConfig reads every recognized MDEXPORT_* variable.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath:     os.Getenv(envConfigPath),
		Type:           os.Getenv(envType),
		Styles:         splitList(os.Getenv(envStyles)),
		HighlightStyle: os.Getenv(envHighlightStyle),
		Timeout:        os.Getenv(envTimeout),
		AssetPath:      os.Getenv(envAssetPath),
	}
}

// warnUnknownEnvVars logs unrecognized MDEXPORT_* variables, usually typos.
func warnUnknownEnvVars(logger *slog.Logger) {
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig overlays set variables onto cfg. Environment beats the
// config file; flags are merged afterwards and beat both.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Type != "" {
		cfg.Output.Type = env.Type
	}
	if len(env.Styles) > 0 {
		cfg.Styles.Files = env.Styles
	}
	if env.HighlightStyle != "" {
		cfg.Styles.Highlight = env.HighlightStyle
	}
	if env.Timeout != "" {
		cfg.Renderer.Timeout = env.Timeout
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
}

// splitList splits a comma separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
