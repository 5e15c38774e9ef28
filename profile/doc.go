// Package profile provides optional runtime profiling for fol.
//
// Profiling is compiled in only with the "pprof" build tag and uses
// [github.com/pkg/profile]. Without the tag, [Modes] is empty and
// [Profiler.Start] returns a no-op.
//
//	go build -tags pprof -o fol .
//	fol --pprof-mode=cpu parse 'all x. P(x) -> Q(x)'
//	go tool pprof -http=: ~/.cache/fol/pprof/cpu.pprof
//
// Supported modes are allocs, block, clock, cpu, goroutine, heap, mem,
// mutex, thread and trace. Profiles are written to [Profiler.Path] under the
// file name chosen by pkg/profile, e.g. cpu.pprof.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
