package ollamalink

import "time"

// DefaultLockTimeout is the default timeout for acquiring the run lock.
const DefaultLockTimeout = 30 * time.Second

// ManagerOption configures a Manager.
type ManagerOption func(*managerConfig)

// managerConfig holds configuration for Manager construction.
type managerConfig struct {
	// logger receives status and diagnostic messages.
	logger Logger

	// lockTimeout is the maximum duration to wait for the run lock.
	lockTimeout time.Duration
}

// newManagerConfig returns a managerConfig with default values.
func newManagerConfig() *managerConfig {
	return &managerConfig{
		lockTimeout: DefaultLockTimeout,
	}
}

// WithLogger sets a logger for status and diagnostic output.
// If not set, a console logger writing to stderr is used, honoring
// Config.Verbose and Config.Quiet.
func WithLogger(logger Logger) ManagerOption {
	return func(c *managerConfig) {
		c.logger = logger
	}
}

// WithLockTimeout sets the maximum duration Run waits for the advisory run
// lock before failing with ErrLocked.
func WithLockTimeout(d time.Duration) ManagerOption {
	return func(c *managerConfig) {
		if d > 0 {
			c.lockTimeout = d
		}
	}
}

// Logger is the interface for status and diagnostic logging.
// Compatible with slog, zap, logrus, and other structured loggers.
type Logger interface {
	// Debug logs a debug-level message with optional key-value pairs.
	Debug(msg string, keysAndValues ...any)

	// Info logs an info-level message with optional key-value pairs.
	Info(msg string, keysAndValues ...any)

	// Warn logs a warning-level message with optional key-value pairs.
	Warn(msg string, keysAndValues ...any)

	// Error logs an error-level message with optional key-value pairs.
	Error(msg string, keysAndValues ...any)
}

// successLogger is implemented by loggers that render success as a distinct
// severity. The console logger does; structured loggers fall back to Info.
type successLogger interface {
	Success(msg string, keysAndValues ...any)
}

// logSuccess emits msg at success severity when the logger supports it.
func logSuccess(l Logger, msg string, keysAndValues ...any) {
	if s, ok := l.(successLogger); ok {
		s.Success(msg, keysAndValues...)
		return
	}
	l.Info(msg, keysAndValues...)
}
