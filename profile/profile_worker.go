package profile

import (
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"unicode"

	"github.com/google/pprof/profile"
)

// since we are assuming usage of this package from a single go routine, this channel only has
// one "producer", and one "consumer". it's purpose is to guarantee the order of execution of
// adding / removing a profiling session and sampling events, while enabling the caller
// (frontend.Synthesize) to sample the events asynchronously.
var chCommands = make(chan command, 100)
var onceInit sync.Once

type command struct {
	p      *Profile
	pc     []uintptr
	remove bool
}

func worker() {
	for c := range chCommands {
		if c.p != nil {
			if c.remove {
				for i := 0; i < len(sessions); i++ {
					if sessions[i] == c.p {
						sessions[i] = sessions[len(sessions)-1]
						sessions = sessions[:len(sessions)-1]
						break
					}
				}
				close(c.p.chDone)

				// decrement active sessions
				atomic.AddUint32(&activeSessions, ^uint32(0))
			} else {
				sessions = append(sessions, c.p)
			}
			continue
		}

		// it's a sampling event (cell assignment)
		collectSample(c.pc)
	}

}

// collectSample must be called from the worker go routine
func collectSample(pc []uintptr) {
	// for each session we may have a distinct sample, since ids of functions and locations may mismatch
	samples := make([]*profile.Sample, len(sessions))
	for i := range samples {
		samples[i] = &profile.Sample{Value: []int64{1}} // for now, we just collect new cell count
	}

	frames := runtime.CallersFrames(pc)
	// Loop to get frames.
	// A fixed number of pcs can expand to an indefinite number of Frames.
	for {
		frame, more := frames.Next()

		if strings.Contains(frame.Function, "frontend.synthesizeCircuit") {
			// we stop; previous frame was the .Synthesize definition of the circuit
			break
		}

		// filter layouter internals; region closures stay, they carry the
		// region's call site
		if filterFrontendPrivateFunc(frame.Function) {
			continue
		}

		frame.Function = strings.ReplaceAll(frame.Function, "[...]", "[T]")

		for i := range samples {
			samples[i].Location = append(samples[i].Location, sessions[i].getLocation(&frame))
		}

		if !more {
			break
		}
		if strings.HasSuffix(frame.Function, ".Synthesize") {
			for i := range sessions {
				sessions[i].onceSetName.Do(func() {
					// once per profile session, we set the "name of the binary"
					// here we grep the struct name where "Synthesize" exist: hopefully the circuit Name
					// note: this won't work well for nested Synthesize calls.
					fe := strings.Split(frame.Function, "/")
					circuitName := strings.TrimSuffix(fe[len(fe)-1], ".Synthesize")
					sessions[i].pprof.Mapping = []*profile.Mapping{
						{ID: 1, File: circuitName},
					}
				})
			}
			// break --> we break when we hit frontend.synthesizeCircuit; in case we have nested Synthesize calls in the stack.
		}
	}

	for i := range sessions {
		sessions[i].pprof.Sample = append(sessions[i].pprof.Sample, samples[i])
	}
}

func filterFrontendPrivateFunc(f string) bool {
	const frontendPrefix = "github.com/consensys/plonkish/frontend."
	if strings.HasPrefix(f, frontendPrefix) && len(f) > len(frontendPrefix) {
		// filter layouter private APIs from the trace; methods come through as
		// e.g. frontend.(*Region).assign
		rest := f[len(frontendPrefix):]
		if i := strings.LastIndex(rest, "."); i >= 0 && i+1 < len(rest) {
			rest = rest[i+1:]
		}
		c := []rune(rest)[0]
		if unicode.IsLower(c) {
			return true
		}
	}
	return false
}
