package engine

// Options configures an R2C or R2X engine, mirroring the teacher's
// poisson.Options functional-options pattern.
type Options struct {
	// BatchMode, on a 3-D domain, treats the highest axis as an independent
	// batch axis: no transform and no redistribution along it (spec.md
	// §4.4's Info.batch_mode).
	BatchMode bool

	// Workers is the number of parallel workers used for per-rank line
	// transforms and redistribution copies. 0 means use runtime.GOMAXPROCS.
	Workers int

	// Ranks is the number of boxes each phase's domain is decomposed into.
	// 0 means use Workers (one box per worker), matching the teacher's
	// convention of reusing the worker count where no finer control is given.
	Ranks int
}

// Option is a function that modifies Options.
type Option func(*Options)

// DefaultOptions returns the default engine options.
func DefaultOptions() Options {
	return Options{}
}

// WithBatchMode enables or disables batch-axis mode.
func WithBatchMode(enabled bool) Option {
	return func(o *Options) { o.BatchMode = enabled }
}

// WithWorkers sets the number of parallel workers.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithRanks sets the number of boxes each phase decomposes its domain into.
func WithRanks(n int) Option {
	return func(o *Options) { o.Ranks = n }
}

// ApplyOptions applies option functions to a base Options struct.
func ApplyOptions(base Options, opts []Option) Options {
	for _, opt := range opts {
		opt(&base)
	}
	return base
}
