package poisson

// Workspace holds pre-allocated buffers for solver operations. It remains
// the scratch-space type for PlanNDPeriodic, which transforms arbitrary
// N-dimensional grids in place and so cannot size its buffers through the
// fixed-3-axis engine machinery the rest of this package now runs on.
type Workspace struct {
	// Real holds real-valued intermediate data.
	Real []float64

	// Complex holds complex intermediate data (for FFT).
	Complex []complex128
}

// NewWorkspace creates a Workspace with the given buffer sizes.
func NewWorkspace(realSize, complexSize int) Workspace {
	return Workspace{
		Real:    make([]float64, realSize),
		Complex: make([]complex128, complexSize),
	}
}

// Bytes returns the total memory used by the Workspace in bytes.
func (w *Workspace) Bytes() int {
	return len(w.Real)*8 + len(w.Complex)*16
}
