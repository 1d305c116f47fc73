package spkmeans

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with spkmeans-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithRunID adds a run_id field to the logger.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run_id", id),
	}
}

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimensions adds the matrix shape to the logger.
func (l *Logger) WithDimensions(docs, words int) *Logger {
	return &Logger{
		Logger: l.Logger.With("docs", docs, "words", words),
	}
}

// LogRunStart logs the start of a clustering run.
func (l *Logger) LogRunStart(ctx context.Context, threshold float64, maxIterations, workers int) {
	l.InfoContext(ctx, "clustering started",
		"threshold", threshold,
		"max_iterations", maxIterations,
		"workers", workers,
	)
}

// LogIteration logs a completed refinement iteration.
func (l *Logger) LogIteration(ctx context.Context, iteration int, quality, delta float64) {
	l.DebugContext(ctx, "quality",
		"iteration", iteration,
		"quality", quality,
		"delta", delta,
	)
}

// LogRun logs the outcome of a clustering run.
func (l *Logger) LogRun(ctx context.Context, res *Result, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "clustering failed",
			"duration", duration,
			"error", err,
		)
		return
	}
	if res.Regressed {
		l.WarnContext(ctx, "clustering stopped on quality regression",
			"iterations", res.Iterations,
			"quality", res.Quality,
			"duration", duration,
		)
		return
	}
	l.InfoContext(ctx, "clustering completed",
		"iterations", res.Iterations,
		"quality", res.Quality,
		"converged", res.Converged,
		"sizes", res.Sizes(),
		"duration", duration,
	)
}
