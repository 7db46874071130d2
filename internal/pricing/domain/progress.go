package domain

// ProgressFunc is an advisory progress sink: the engine calls it with a
// monotonically non-decreasing fraction in [0,1] as simulations complete.
// It has no effect on the returned price and may be nil.
type ProgressFunc func(fraction float64)
