package profile

// Profiler describes a single profiling session.
type Profiler struct {
	// Mode selects what is profiled, one of [Modes]. Empty disables profiling.
	Mode string
	// Path is the output directory. Empty uses the pkg/profile default.
	Path string
	// Quiet suppresses the start and stop messages of pkg/profile.
	Quiet bool
}

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// Start begins profiling. The returned Stopper is always safe to call, also
// when the binary was built without the pprof tag or p.Mode is unknown.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return nop{}
	}

	return start(p)
}

type nop struct{}

func (nop) Stop() {}
