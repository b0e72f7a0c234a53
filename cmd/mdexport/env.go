package main

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"

	mdexport "github.com/alnah/go-mdexport"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer
	// Rasterizer replaces the rod browser when non-nil.
	Rasterizer mdexport.Rasterizer
	// Color enables ANSI level prefixes in log output.
	Color bool
}

// DefaultEnv returns the production environment. Output goes through
// colorable writers so ANSI sequences also render on Windows consoles.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout: colorable.NewColorableStdout(),
		Stderr: colorable.NewColorableStderr(),
		Color:  isTerminal(os.Stderr),
	}
}

// isTerminal reports whether f is a character device.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
