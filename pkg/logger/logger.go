package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	// Get log level from environment
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	// Create handler options
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Create handler based on environment
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		// Use text handler for development (more readable)
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		// Use JSON handler for production (structured)
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// WithFields adds multiple fields to logger context
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return &Logger{
		Logger: l.Logger.With(args...),
	}
}

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.Int("size", c.Writer.Size()),
	)
}

// LogSeatsHeld logs a successful seat hold
func (l *Logger) LogSeatsHeld(ctx context.Context, showID, holder string, seats []string) {
	l.Logger.InfoContext(ctx,
		"Seats Held",
		slog.String("show_instance_id", showID),
		slog.String("holder", holder),
		slog.Any("seats", seats),
	)
}

// LogSeatConflict logs a hold/book attempt blocked by other reservations
func (l *Logger) LogSeatConflict(ctx context.Context, showID, holder string, seats []string) {
	l.Logger.WarnContext(ctx,
		"Seat Conflict",
		slog.String("show_instance_id", showID),
		slog.String("holder", holder),
		slog.Any("conflicting_seats", seats),
	)
}

// LogBookingConfirmed logs a confirmed booking
func (l *Logger) LogBookingConfirmed(ctx context.Context, reference, showID string, seatCount int) {
	l.Logger.InfoContext(ctx,
		"Booking Confirmed",
		slog.String("reference", reference),
		slog.String("show_instance_id", showID),
		slog.Int("seats", seatCount),
	)
}

// LogBookingExpired logs a booking reclaimed by the reaper
func (l *Logger) LogBookingExpired(ctx context.Context, reference string) {
	l.Logger.InfoContext(ctx,
		"Booking Expired",
		slog.String("reference", reference),
	)
}

// LogInconsistentState flags a booking whose seat snapshot and live seat
// state disagree. Never resolved silently (surfaced for reconciliation).
func (l *Logger) LogInconsistentState(ctx context.Context, reference string, seats []string) {
	l.Logger.ErrorContext(ctx,
		"Inconsistent Booking State",
		slog.String("reference", reference),
		slog.Any("seats", seats),
	)
}

// InfoWithContext logs an info message with context
func (l *Logger) InfoWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.InfoContext(ctx, msg, args...)
}

// ErrorWithContext logs an error message with context
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2+2)
	args = append(args, slog.String("error", err.Error()))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.ErrorContext(ctx, msg, args...)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
