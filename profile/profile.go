// Package profile provides a simple way to generate pprof compatible profiles
// of witness synthesis: each sample is one cell assignment, attributed to the
// circuit code that staged it.
//
// Since witness synthesis is not thread safe and operates in a single
// go-routine, this package is also NOT thread safe and is meant to be called
// in the same go-routine.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/consensys/plonkish/logger"
	"github.com/google/pprof/profile"
)

var (
	sessions       []*Profile // active sessions
	activeSessions uint32
)

// Profile represents an active witness synthesis profiling session.
type Profile struct {
	// defaults to ./plonkish.pprof
	// if blank, profile is not written to disk
	filePath string

	// actual pprof profile struct
	// details on pprof format: https://github.com/google/pprof/blob/main/proto/README.md
	pprof profile.Profile

	functions map[string]*profile.Function
	locations map[uint64]*profile.Location

	onceSetName sync.Once

	chDone chan struct{}
}

// Option defines configuration Options for Profile.
type Option func(*Profile)

// WithPath controls the profile destination file. If blank, profile is not written.
//
// Defaults to ./plonkish.pprof.
func WithPath(path string) Option {
	return func(p *Profile) {
		p.filePath = path
	}
}

// WithNoOutput indicates that the profile is not going to be written to disk.
//
// This is equivalent to WithPath("")
func WithNoOutput() Option {
	return func(p *Profile) {
		p.filePath = ""
	}
}

// Start creates a new active profiling session. When Stop() is called, this session is removed from
// active profiling sessions and may be serialized to disk as a pprof compatible file (see WithPath option).
//
// All calls to profile.Start() and Stop() are meant to be executed in the same go routine (frontend.Synthesize).
//
// It is allowed to create multiple overlapping profiling sessions for one circuit.
func Start(options ...Option) *Profile {

	// start the worker first time a profiling session starts.
	onceInit.Do(func() {
		go worker()
	})

	p := Profile{
		functions: make(map[string]*profile.Function),
		locations: make(map[uint64]*profile.Location),
		filePath:  filepath.Join(".", "plonkish.pprof"),
		chDone:    make(chan struct{}),
	}
	p.pprof.SampleType = []*profile.ValueType{{
		Type: "cells",
		Unit: "count",
	}}

	for _, option := range options {
		option(&p)
	}

	log := logger.Logger()
	if p.filePath == "" {
		log.Warn().Msg("profiling enabled [not writing to disk]")
	} else {
		log.Info().Str("path", p.filePath).Msg("profiling enabled")
	}

	// add the session to active sessions
	chCommands <- command{p: &p}
	atomic.AddUint32(&activeSessions, 1)

	return &p
}

// Stop removes the profile from active session and may write the pprof file to disk. See WithPath option.
func (p *Profile) Stop() {
	log := logger.Logger()

	if p.chDone == nil {
		log.Fatal().Msg("profile stopped multiple times")
	}

	// ask worker routine to remove ourselves from the active sessions
	chCommands <- command{p: p, remove: true}

	// wait for worker routine to remove us.
	<-p.chDone
	p.chDone = nil

	// if filePath is set, serialize profile to disk in pprof format
	if p.filePath != "" {
		f, err := os.Create(p.filePath)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create profile")
		}
		if err := p.pprof.Write(f); err != nil {
			log.Error().Err(err).Msg("writing profile")
		}
		f.Close()
		log.Info().Str("path", p.filePath).Msg("profiling disabled")
	} else {
		log.Warn().Msg("profiling disabled [not writing to disk]")
	}

}

// NbAssignments return number of collected samples (cell assignments) by the profile session
func (p *Profile) NbAssignments() int {
	return len(p.pprof.Sample)
}

// Top return a similar output than pprof top command
func (p *Profile) Top() string {
	type node struct {
		name      string
		where     string
		flat, cum int64
	}

	var total int64
	byName := make(map[string]*node)
	for _, s := range p.pprof.Sample {
		total += s.Value[0]
		seen := make(map[string]bool)
		for i, loc := range s.Location {
			for _, line := range loc.Line {
				n, ok := byName[line.Function.Name]
				if !ok {
					n = &node{
						name:  line.Function.Name,
						where: fmt.Sprintf("%s:%d", shortFilename(line.Function.Filename), line.Line),
					}
					byName[line.Function.Name] = n
				}
				if i == 0 {
					n.flat += s.Value[0]
				}
				if !seen[line.Function.Name] {
					n.cum += s.Value[0]
					seen[line.Function.Name] = true
				}
			}
		}
	}

	if total == 0 {
		return "Showing nodes accounting for 0, 0% of 0 total\n"
	}

	nodes := make([]*node, 0, len(byName))
	for _, n := range byName {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].flat != nodes[j].flat {
			return nodes[i].flat > nodes[j].flat
		}
		if nodes[i].cum != nodes[j].cum {
			return nodes[i].cum > nodes[j].cum
		}
		return nodes[i].name < nodes[j].name
	})

	var sb strings.Builder
	fmt.Fprintf(&sb, "Showing nodes accounting for %d, %s of %d total\n", total, percent(total, total), total)
	sb.WriteString("      flat  flat%   sum%        cum   cum%\n")
	var sum int64
	for _, n := range nodes {
		sum += n.flat
		fmt.Fprintf(&sb, "%10d %6s %6s %10d %6s  %s %s\n",
			n.flat, percent(n.flat, total), percent(sum, total), n.cum, percent(n.cum, total), n.name, n.where)
	}
	return sb.String()
}

// percent formats v/total the way pprof does, trimming "100.00%" to "100%".
func percent(v, total int64) string {
	r := 100 * float64(v) / float64(total)
	if r == 100 {
		return "100%"
	}
	return fmt.Sprintf("%.2f%%", r)
}

func shortFilename(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) <= 2 {
		return path
	}
	return strings.Join(parts[len(parts)-2:], "/")
}

// RecordCellAssignment add a sample (with count == 1) to all the active profiling sessions.
func RecordCellAssignment() {
	if n := atomic.LoadUint32(&activeSessions); n == 0 {
		return // do nothing, no active session.
	}

	// collect the stack and send it async to the worker
	pc := make([]uintptr, 20)
	n := runtime.Callers(3, pc)
	if n == 0 {
		return
	}
	pc = pc[:n]
	chCommands <- command{pc: pc}
}

func (p *Profile) getLocation(frame *runtime.Frame) *profile.Location {
	l, ok := p.locations[uint64(frame.PC)]
	if !ok {
		// first let's see if we have the function.
		f, ok := p.functions[frame.File+frame.Function]
		if !ok {
			fe := strings.Split(frame.Function, "/")
			fName := fe[len(fe)-1]
			f = &profile.Function{
				ID:         uint64(len(p.functions) + 1),
				Name:       fName,
				SystemName: frame.Function,
				Filename:   frame.File,
			}

			p.functions[frame.File+frame.Function] = f
			p.pprof.Function = append(p.pprof.Function, f)
		}

		l = &profile.Location{
			ID:   uint64(len(p.locations) + 1),
			Line: []profile.Line{{Function: f, Line: int64(frame.Line)}},
		}
		p.locations[uint64(frame.PC)] = l
		p.pprof.Location = append(p.pprof.Location, l)
	}

	return l
}
