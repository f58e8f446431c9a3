package logging

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar controls logging verbosity when no explicit level is given.
// When unset or empty, logging is silent.
const LogLevelEnvVar = "PANICREPORT_LOG_LEVEL"

// Initialize creates the logger at the given level. An empty level falls back
// to PANICREPORT_LOG_LEVEL; if that is empty too, a no-op logger is installed.
func Initialize(level string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}
	level = strings.ToLower(strings.TrimSpace(level))

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLevel(level)),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	built, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = built
	return nil
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		// Unknown but explicitly set: info.
		return zapcore.InfoLevel
	}
}

// SetLogger replaces the global logger. Tests use it with zaptest/observer
// style cores.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// GetLogger returns the global logger, a no-op one if Initialize was never
// called.
func GetLogger() *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

// Named returns a child logger for a component.
func Named(component string) *zap.Logger {
	return GetLogger().Named(component)
}

func Debug(msg string, fields ...zap.Field) { GetLogger().Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { GetLogger().Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { GetLogger().Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { GetLogger().Error(msg, fields...) }

// FailureInfo is the subset of a captured failure worth logging.
type FailureInfo interface {
	Error() string
	Lines() []string
}

// LogFailure records that the engine failure reached the crash workflow.
func LogFailure(f FailureInfo) {
	lines := f.Lines()
	first := ""
	if len(lines) > 0 {
		first = lines[0]
	}
	Info("engine failure captured",
		zap.String("summary", first),
		zap.Int("lines", len(lines)),
	)
}

// LogGuardDecision records why the workflow did or did not prompt.
func LogGuardDecision(interactive, terminal, ci, vendor bool) {
	Info("guard decision",
		zap.Bool("interactive", interactive),
		zap.Bool("terminal", terminal),
		zap.Bool("ci", ci),
		zap.Bool("vendor_ci", vendor),
	)
}

// LogSubmission records the result of the single report submission attempt.
func LogSubmission(reportID string, duration time.Duration, err error) {
	fields := []zap.Field{
		zap.Duration("duration", duration),
		zap.Bool("received", reportID != ""),
	}
	if reportID != "" {
		fields = append(fields, zap.String("report_id", reportID))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
		Warn("error report not delivered", fields...)
		return
	}
	Info("error report submitted", fields...)
}

// Sync flushes buffered entries.
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
