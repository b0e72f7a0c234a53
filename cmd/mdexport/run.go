package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	mdexport "github.com/alnah/go-mdexport"
	"github.com/alnah/go-mdexport/internal/config"
	"github.com/alnah/go-mdexport/internal/hints"
)

// errUsage marks command-line mistakes that pflag does not catch.
var errUsage = errors.New("usage error")

// runMain dispatches to a command and returns the process exit code.
// args includes the program name.
func runMain(args []string, env *Environment) int {
	rest := args[1:]
	if len(rest) > 0 {
		switch rest[0] {
		case "doctor":
			return runDoctorCmd(rest[1:], env)
		case "version", "--version":
			fmt.Fprintf(env.Stdout, "mdexport %s\n", Version)
			return ExitSuccess
		case "help":
			return runHelp(rest[1:], env)
		}
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()
	return runExport(ctx, rest, env)
}

// runExport parses flags, merges configuration and performs one export.
func runExport(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseExportFlags(args, env.Stderr)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		fmt.Fprintln(env.Stderr, "Run 'mdexport help' for usage.")
		return ExitUsage
	}
	if flags.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	logger := newLogger(env.Stderr, env.Color, flags.common.quiet, flags.common.verbose || flags.debug)
	warnUnknownEnvVars(logger)

	cfg, err := resolveConfig(flags, loadEnvConfig(), logger)
	if err != nil {
		return reportError(env, err, flags)
	}

	req, err := buildRequest(flags, positional, cfg)
	if err != nil {
		return reportError(env, err, flags)
	}

	conv, err := mdexport.NewConverter(converterOptions(cfg, env, logger)...)
	if err != nil {
		return reportError(env, err, flags)
	}
	defer func() {
		if err := conv.Close(); err != nil {
			logger.Debug("closing converter", "error", err)
		}
	}()

	logger.Debug("exporting", "input", req.InputPath, "output", req.OutputPath, "type", string(req.Format))
	res, err := conv.Convert(ctx, req)
	if err != nil {
		return reportError(env, err, flags)
	}

	if !flags.common.quiet {
		fmt.Fprintln(env.Stdout, res.OutputPath)
		if res.DebugPath != "" {
			fmt.Fprintln(env.Stdout, res.DebugPath)
		}
	}
	return ExitSuccess
}

// resolveConfig layers the config file, MDEXPORT_* variables and flags, in
// increasing precedence, and validates the result.
func resolveConfig(flags *exportFlags, envCfg *envConfig, logger *slog.Logger) (*config.Config, error) {
	cfg := config.DefaultConfig()

	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		loaded, path, err := config.LoadConfig(name)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded config", "path", path)
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	applyFlags(flags, cfg)

	// The type is checked by ParseFormat so the error carries the format hint.
	typ := cfg.Output.Type
	cfg.Output.Type = ""
	err := cfg.Validate()
	cfg.Output.Type = typ
	if err != nil {
		return nil, err
	}

	logger.Debug("effective configuration\n" + cfg.Dump())
	return cfg, nil
}

// applyFlags overlays flags given on the command line, including booleans
// set to false (--emoji=false beats emoji: true in the config file).
func applyFlags(flags *exportFlags, cfg *config.Config) {
	set := flags.changed
	if set == nil {
		return
	}
	if set("type") {
		cfg.Output.Type = flags.format
	}
	if set("breaks") {
		cfg.Markdown.Breaks = flags.render.breaks
	}
	if set("emoji") {
		cfg.Markdown.Emoji = flags.render.emoji
	}
	if set("styles") {
		cfg.Styles.Files = flags.render.styles
	}
	if set("highlight-style") {
		cfg.Styles.Highlight = flags.render.highlightStyle
	}
	if set("timeout") {
		cfg.Renderer.Timeout = flags.renderer.timeout
	}
	if set("asset-path") {
		cfg.Assets.BasePath = flags.renderer.assetPath
	}
	if set("no-install") {
		cfg.Renderer.NoInstall = flags.renderer.noInstall
	}
	if set("debug") {
		cfg.Debug = flags.debug
	}
}

// buildRequest resolves the input, format and output path.
func buildRequest(flags *exportFlags, positional []string, cfg *config.Config) (mdexport.Request, error) {
	input := flags.input
	switch {
	case input == "" && len(positional) > 0:
		input, positional = positional[0], positional[1:]
	case input == "":
		return mdexport.Request{}, mdexport.ErrNoInput
	}
	if len(positional) > 0 {
		return mdexport.Request{}, fmt.Errorf("%w: unexpected arguments %q", errUsage, positional)
	}

	format := mdexport.FormatPDF
	if cfg.Output.Type != "" {
		var err error
		if format, err = mdexport.ParseFormat(cfg.Output.Type); err != nil {
			return mdexport.Request{}, err
		}
	}

	output := flags.output
	if output == "" {
		output = mdexport.DefaultOutputPath(input, format)
	}

	req := mdexport.NewRequest(input, output, format, cfg.Styles.Files)
	req.Breaks = cfg.Markdown.Breaks
	req.Emoji = cfg.Markdown.Emoji
	req.Debug = cfg.Debug
	return req, nil
}

func converterOptions(cfg *config.Config, env *Environment, logger *slog.Logger) []mdexport.Option {
	opts := []mdexport.Option{
		mdexport.WithLogger(logger),
		mdexport.WithAssetPath(cfg.Assets.BasePath),
		mdexport.WithHighlightStyle(cfg.Styles.Highlight),
		mdexport.WithBrowserInstall(!cfg.Renderer.NoInstall),
	}
	if d := cfg.Timeout(); d > 0 {
		opts = append(opts, mdexport.WithTimeout(d))
	}
	if env.Rasterizer != nil {
		opts = append(opts, mdexport.WithRasterizer(env.Rasterizer))
	}
	return opts
}

// reportError prints err with any hint and returns its exit code.
func reportError(env *Environment, err error, flags *exportFlags) int {
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, flags))
	return exitCodeFor(err)
}

func hintFor(err error, flags *exportFlags) string {
	var notFound *config.NotFoundError
	switch {
	case errors.As(err, &notFound):
		return hints.ForConfigNotFound(notFound.Tried)
	case errors.Is(err, mdexport.ErrBrowserNotFound):
		return hints.ForBrowserNotFound(flags.renderer.noInstall)
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, mdexport.ErrBrowserConnect), errors.Is(err, mdexport.ErrPageCreate):
		return hints.ForBrowserConnect()
	case errors.Is(err, mdexport.ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.Is(err, mdexport.ErrTemplateNotFound), errors.Is(err, mdexport.ErrInvalidAssetPath):
		return hints.ForTemplateNotFound(flags.renderer.assetPath)
	case errors.Is(err, mdexport.ErrUnsupportedFormat):
		return hints.ForUnsupportedFormat(mdexport.FormatNames())
	}
	return ""
}
