package core

// Logger abstracts the app-wide structured logger so that services can swap
// the console implementation for an error-tracking backed one.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}
