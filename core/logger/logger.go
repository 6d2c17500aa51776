package logger

import (
	"log/slog"
	"os"
	"sync"
)

var (
	instance *slog.Logger
	once     sync.Once
)

func get() *slog.Logger {
	once.Do(func() {
		instance = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	})
	return instance
}

func Debug(msg string, args ...any) {
	get().Debug(msg, normalize(args)...)
}

func Info(msg string, args ...any) {
	get().Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	get().Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	get().Error(msg, normalize(args)...)
}

// normalize lets callers pass a bare error (or any odd value) in a key
// position without producing a malformed attribute list.
func normalize(args []any) []any {
	out := make([]any, 0, len(args)+1)
	for i := 0; i < len(args); i++ {
		if err, ok := args[i].(error); ok {
			out = append(out, "error", err)
			continue
		}
		if i+1 < len(args) {
			out = append(out, args[i], args[i+1])
			i++
			continue
		}
		out = append(out, "detail", args[i])
	}
	return out
}
