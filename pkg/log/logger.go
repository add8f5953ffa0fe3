// Package log is the structured logging layer shared by the wasp client packages.
//
// Components never reach for a global logger. They either receive a Logger
// explicitly or pull one out of the context with FromContext, which falls back
// to a NoopLogger so library code stays silent unless the application opts in.
package log

// Logger is a leveled, key-value structured logger.
type Logger interface {
	// Debug logs low-level details such as raw frames or encoded payload sizes.
	Debug(msg string, keysAndValues ...any)
	// Info logs routine progress such as connections and submitted requests.
	Info(msg string, keysAndValues ...any)
	// Warn logs recoverable problems such as dropped frames or reconnects.
	Warn(msg string, keysAndValues ...any)
	// Error logs failures that abort an operation.
	Error(msg string, keysAndValues ...any)
	// Fatal logs an unrecoverable failure; the zap backend exits the process.
	Fatal(msg string, keysAndValues ...any)
	// WithKV returns a logger that attaches key/value to every record.
	WithKV(key string, value any) Logger
	// GetAllKV returns the key/value pairs attached with WithKV.
	GetAllKV() []any
	// WithName returns a logger for a named component ("events", "service", ...).
	WithName(name string) Logger
	// Name returns the component name.
	Name() string
	// AddCallerSkip returns a logger that skips extra frames when reporting the caller.
	AddCallerSkip(skip int) Logger
}

// Level is the minimum severity a logger emits.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelFatal Level = "fatal"
)

// Config selects the backend, format, level and destination of a logger.
type Config struct {
	Backend string `env:"LOG_BACKEND" env-default:"zap" validate:"oneof=zap ipfs"`               // zap or ipfs
	Format  string `env:"LOG_FORMAT" env-default:"console" validate:"oneof=console logfmt json"` // console, logfmt or json
	Level   Level  `env:"LOG_LEVEL" env-default:"info"`                                          // debug, info, warn, error, fatal
	Output  string `env:"LOG_OUTPUT" env-default:"stderr"`                                       // stderr, stdout or file path
}

// New builds the logger described by conf.
func New(conf Config) Logger {
	if conf.Backend == "ipfs" {
		return NewIPFSLogger("waspclient", conf.Level)
	}
	return NewZapLogger(conf)
}

// SpanEventRecorder receives log records that should also land on a trace span.
type SpanEventRecorder interface {
	TraceID() string
	SpanID() string
	RecordEvent(name string, keysAndValues ...any)
	RecordError(name string, keysAndValues ...any)
}
