package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdexport [flags] [input]")
	fmt.Fprintln(w, "       mdexport <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export a Markdown file to HTML, PDF, PNG or JPEG.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  doctor     Check browser and system readiness")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -i, --input <path>        Markdown file (or first argument)")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: input with type extension)")
	fmt.Fprintln(w, "  -t, --type <s>            Output type: html, pdf, png, jpeg (default pdf)")
	fmt.Fprintln(w, "  -d, --debug               Also write <output>_debug.html for rasterized types")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Markdown:")
	fmt.Fprintln(w, "  -b, --breaks              Render single newlines as line breaks")
	fmt.Fprintln(w, "  -e, --emoji               Render :shortcode: emoji as images")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styles:")
	fmt.Fprintln(w, "  -s, --styles <ref>        Stylesheet path, file: URI or http(s) URL")
	fmt.Fprintln(w, "                            Repeatable or comma separated")
	fmt.Fprintln(w, "      --highlight-style <s> Code highlighting style (default github)")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory overriding built-in styles and template")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Browser:")
	fmt.Fprintln(w, "      --timeout <d>         Render timeout (default 30s)")
	fmt.Fprintln(w, "      --no-install          Never download a browser")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment Variables:")
	fmt.Fprintln(w, "  MDEXPORT_CONFIG           Config file name or path")
	fmt.Fprintln(w, "  MDEXPORT_TYPE             Output type")
	fmt.Fprintln(w, "  MDEXPORT_STYLES           Comma separated stylesheet references")
	fmt.Fprintln(w, "  MDEXPORT_HIGHLIGHT_STYLE  Code highlighting style")
	fmt.Fprintln(w, "  MDEXPORT_TIMEOUT          Render timeout")
	fmt.Fprintln(w, "  MDEXPORT_ASSET_PATH       Asset directory")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN           Chrome/Chromium binary to use")
	fmt.Fprintln(w, "  ROD_NO_SANDBOX            Set to 1 to disable the Chrome sandbox")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Precedence: flags > environment > config file > defaults.")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdexport doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that a browser is available for PDF and image export.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json    Output results as JSON")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 ready (warnings allowed), 1 errors found.")
}

// printVersionUsage prints usage for the version command.
func printVersionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdexport version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show version information.")
}

// runHelp prints help for the named command, or the main usage.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		printVersionUsage(env.Stdout)
	case "help":
		printUsage(env.Stdout)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
