package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu  sync.RWMutex
	log = slog.New(slog.NewJSONHandler(os.Stdout, nil))
)

// Init configures the global logger. Level is one of debug, info, warn, error;
// anything else falls back to info.
func Init(level string, pretty bool) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if pretty {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	mu.Lock()
	log = slog.New(handler)
	mu.Unlock()
}

// normalize accepts either key/value pairs or a single trailing value (usually
// an error) and returns slog-compatible args.
func normalize(args []any) []any {
	if len(args) == 1 {
		if err, ok := args[0].(error); ok {
			return []any{"error", err.Error()}
		}
		return []any{"detail", args[0]}
	}
	if len(args)%2 != 0 {
		last := args[len(args)-1]
		args = append(args[:len(args)-1], "detail", last)
	}
	return args
}

func Debug(msg string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Debug(msg, normalize(args)...)
}

func Info(msg string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Error(msg, normalize(args)...)
}
