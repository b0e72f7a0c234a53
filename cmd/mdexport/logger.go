package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// consoleHandler writes records as "level: message key=value" lines.
// Levels are colored when the destination is a terminal.
type consoleHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Leveler
	color  bool
	attrs  []byte // rendered WithAttrs output, groups already applied
	groups []string
}

var _ slog.Handler = (*consoleHandler)(nil)

var (
	debugPrefix = color.New(color.FgHiBlack).SprintFunc()
	infoPrefix  = color.New(color.FgCyan).SprintFunc()
	warnPrefix  = color.New(color.FgYellow, color.Bold).SprintFunc()
	errorPrefix = color.New(color.FgRed, color.Bold).SprintFunc()
)

func newConsoleHandler(w io.Writer, level slog.Leveler, useColor bool) *consoleHandler {
	return &consoleHandler{mu: &sync.Mutex{}, w: w, level: level, color: useColor}
}

// newLogger builds the CLI logger. quiet keeps errors only; verbose or
// debug enables debug records.
func newLogger(w io.Writer, useColor, quiet, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(newConsoleHandler(w, level, useColor))
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	buf.WriteString(h.prefix(r.Level))
	buf.WriteString(": ")
	buf.WriteString(r.Message)

	buf.Write(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&buf, h.groups, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var buf bytes.Buffer
	for _, a := range attrs {
		writeAttr(&buf, h.groups, a)
	}
	h2 := *h
	h2.attrs = append(slices.Clip(h.attrs), buf.Bytes()...)
	return &h2
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.groups = append(slices.Clip(h.groups), name)
	return &h2
}

func (h *consoleHandler) prefix(level slog.Level) string {
	name := "info"
	paint := infoPrefix
	switch {
	case level >= slog.LevelError:
		name, paint = "error", errorPrefix
	case level >= slog.LevelWarn:
		name, paint = "warning", warnPrefix
	case level < slog.LevelInfo:
		name, paint = "debug", debugPrefix
	}
	if !h.color {
		return name
	}
	return paint(name)
}

func writeAttr(buf *bytes.Buffer, groups []string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		sub := groups
		if a.Key != "" {
			sub = append(slices.Clip(groups), a.Key)
		}
		for _, ga := range a.Value.Group() {
			writeAttr(buf, sub, ga)
		}
		return
	}

	buf.WriteByte(' ')
	for _, g := range groups {
		buf.WriteString(g)
		buf.WriteByte('.')
	}
	buf.WriteString(a.Key)
	buf.WriteByte('=')
	if v := a.Value.String(); v == "" || strings.ContainsAny(v, " \t\n\"=") {
		fmt.Fprintf(buf, "%q", v)
	} else {
		buf.WriteString(v)
	}
}
