package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

// coloredHandler wraps a slog.TextHandler and adds ANSI color codes based on log level.
type coloredHandler struct {
	handler slog.Handler
	writer  io.Writer
	enabled bool
}

func newColoredHandler(w io.Writer, opts *slog.HandlerOptions) *coloredHandler {
	enabled := isTerminal(w)

	coloredWriter := &colorWriter{
		writer:  w,
		enabled: enabled,
	}

	return &coloredHandler{
		handler: slog.NewTextHandler(coloredWriter, opts),
		writer:  w,
		enabled: enabled,
	}
}

func (h *coloredHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *coloredHandler) Handle(ctx context.Context, record slog.Record) error {
	return h.handler.Handle(ctx, record)
}

func (h *coloredHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &coloredHandler{
		handler: h.handler.WithAttrs(attrs),
		writer:  h.writer,
		enabled: h.enabled,
	}
}

func (h *coloredHandler) WithGroup(name string) slog.Handler {
	return &coloredHandler{
		handler: h.handler.WithGroup(name),
		writer:  h.writer,
		enabled: h.enabled,
	}
}

// colorWriter wraps an io.Writer and adds color codes around the level string.
type colorWriter struct {
	writer  io.Writer
	enabled bool
}

func (cw *colorWriter) Write(p []byte) (n int, err error) {
	if !cw.enabled {
		return cw.writer.Write(p)
	}

	text := string(p)

	// slog.TextHandler format: "level=INFO"
	text = strings.ReplaceAll(text, "level=DEBUG", colorCyan+"level=DEBUG"+colorReset)
	text = strings.ReplaceAll(text, "level=INFO", colorGreen+"level=INFO"+colorReset)
	text = strings.ReplaceAll(text, "level=WARN", colorYellow+"level=WARN"+colorReset)
	text = strings.ReplaceAll(text, "level=ERROR", colorRed+"level=ERROR"+colorReset)

	_, err = cw.writer.Write([]byte(text))
	return len(p), err
}

// isTerminal checks if the writer is a terminal (TTY).
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	info, err := file.Stat()
	if err != nil {
		return false
	}

	return (info.Mode() & os.ModeCharDevice) != 0
}

// New builds a structured slog logger honoring the configured level and environment.
// Development environments (local, dev, development) get colored text output on
// a TTY; everything else gets JSON.
func New(appName, level, environment string) *slog.Logger {
	env := strings.ToLower(strings.TrimSpace(environment))
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if env == "local" || env == "dev" || env == "development" {
		handler = newColoredHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler).With("app", appName)
}

func parseLevel(level string) slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
