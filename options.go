package structdiff

// Epsilon is the default margin for approximate numeric equality: the
// IEEE-754 binary64 machine epsilon.
const Epsilon = 2.220446049250313e-16

// Options configures a comparison.
type Options struct {
	// UseMargin enables approximate equality for finite numbers: two finite
	// numbers are equal when |actual-expected| <= Margin. Exact equality
	// never applies a margin. NaN never equals NaN either way.
	UseMargin bool
	// Margin is the tolerance used when UseMargin is set. Zero means the
	// machine epsilon. Must be non-negative.
	Margin float64

	// LogLevel selects trace verbosity: "error", "warn", "info", "debug"
	// (default: "warn"). Only consulted when Logger is nil.
	LogLevel string
	// Logger receives comparison traces. Nil means no tracing.
	Logger Logger
}

// DefaultOptions returns the configuration used when none is supplied.
func DefaultOptions() Options {
	return Options{
		UseMargin: false,
		Margin:    0,
		LogLevel:  "warn",
		Logger:    nil,
	}
}

// margin returns the effective tolerance.
func (o Options) margin() float64 {
	if o.Margin > 0 {
		return o.Margin
	}
	return Epsilon
}

// logger returns the effective trace logger. The engine only emits debug
// traces, so anything below LevelDebug collapses to the noop logger.
func (o Options) logger() Logger {
	if o.Logger != nil {
		return o.Logger
	}
	if ParseLogLevel(o.LogLevel) >= LevelDebug {
		return NewLogger(LevelDebug, nil)
	}
	return newNoopLogger()
}
