package core

// Logger is any leveled logger that can ship errors to an error tracker.
// Trailing args may carry an error, a user.User (for attribution) or any
// extra context map.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
