package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	Level      string
	Format     string
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// Init installs the default slog logger (text, or JSON when Format is "json")
// writing to stdout and, if File is set, to a size-rotated file. The standard
// library logger is routed through the same handler. The returned writer is nil
// without a file; callers close it on exit.
func Init(cfg Config) (*RotatingWriter, error) {
	var (
		out      io.Writer = os.Stdout
		rotating *RotatingWriter
	)
	if path := strings.TrimSpace(cfg.File); path != "" {
		writer, err := NewRotatingWriter(path, cfg.MaxSizeMB, cfg.MaxBackups)
		if err != nil {
			return nil, err
		}
		rotating = writer
		out = io.MultiWriter(os.Stdout, writer)
	}

	handler := newHandler(out, cfg.Format, &slog.HandlerOptions{Level: parseLevel(cfg.Level)})
	slog.SetDefault(slog.New(handler))

	log.SetFlags(0)
	log.SetOutput(slog.NewLogLogger(handler, slog.LevelInfo).Writer())

	return rotating, nil
}

func newHandler(out io.Writer, format string, opts *slog.HandlerOptions) slog.Handler {
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return slog.NewJSONHandler(out, opts)
	}
	return slog.NewTextHandler(out, opts)
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
