// internal/sched/engine.go

package sched

import (
	"fmt"
)

// Engine holds one loaded process set and the result of the latest run.
//
// Every policy runs on a private working copy, so the loaded set is left
// untouched and policies can be run back to back. The exception is
// Config.RRInPlace: a Round-Robin run then drains the loaded bursts to zero
// (the historical behaviour) and every later run fails with
// ErrStaleProcessSet until Load or Reset is called.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	cfg     Config
	procs   []Process // loaded set, in load order
	drained bool      // set by an in-place Round-Robin run
	last    *Result   // latest successful run
	clock   SimClock  // end of the latest run
}

// NewEngine creates an empty engine with the given configuration.
// An unknown RRWaiting is kept as is; Round-Robin runs then fail with ErrInvalidInput.
func NewEngine(cfg Config) *Engine {
	if cfg.Quantum <= 0 {
		cfg.Quantum = DefaultConfig().Quantum
	}
	if cfg.RRWaiting == "" {
		cfg.RRWaiting = WaitingStandard
	}
	return &Engine{cfg: cfg}
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Load replaces the working set. The previous result is discarded.
// An empty slice is accepted; runs over it fail with ErrEmptyProcessSet.
func (e *Engine) Load(ps []Process) error {
	if len(ps) > 0 {
		if err := Validate(ps); err != nil {
			return err
		}
	}
	e.Reset()
	for _, p := range ps {
		e.procs = append(e.procs, p.fresh())
	}
	return nil
}

// AddProcess appends one process to the loaded set.
func (e *Engine) AddProcess(p Process) error {
	if e.drained {
		return ErrStaleProcessSet
	}
	if err := validateProcess(p); err != nil {
		return err
	}
	for _, q := range e.procs {
		if q.ID == p.ID {
			return fmt.Errorf("%w: process %d already loaded", ErrInvalidInput, p.ID)
		}
	}
	e.procs = append(e.procs, p.fresh())
	return nil
}

// Reset clears processes and timeline and zeroes the simulated clock.
func (e *Engine) Reset() {
	e.procs = nil
	e.drained = false
	e.last = nil
	e.clock.Reset()
}

// Processes returns a snapshot of the loaded set in load order. Run metrics
// live in Result, not here. After an in-place Round-Robin run the snapshot
// shows the drained (zero) bursts.
func (e *Engine) Processes() []Process {
	return cloneProcesses(e.procs)
}

// Len returns the number of loaded processes.
func (e *Engine) Len() int { return len(e.procs) }

// Drained reports whether an in-place Round-Robin run has consumed the loaded set.
func (e *Engine) Drained() bool { return e.drained }

func (e *Engine) RunFCFS() error { return e.run(PolicyFCFS, 0) }

func (e *Engine) RunSJF() error { return e.run(PolicySJF, 0) }

func (e *Engine) RunPriority() error { return e.run(PolicyPriority, 0) }

// RunRoundRobin runs Round-Robin with an explicit quantum.
func (e *Engine) RunRoundRobin(quantum int) error { return e.run(PolicyRoundRobin, quantum) }

// Run executes the given policy, using the configured quantum for Round-Robin.
func (e *Engine) Run(policy Policy) error {
	return e.run(policy, e.cfg.Quantum)
}

// RunAll executes every policy in order (Round-Robin last, with the configured
// quantum) and returns each result. It stops at the first failure.
func (e *Engine) RunAll() ([]*Result, error) {
	return e.RunAllWithQuantum(e.cfg.Quantum)
}

// RunAllWithQuantum is RunAll with an explicit Round-Robin quantum. The
// quantum is checked before any policy runs.
func (e *Engine) RunAllWithQuantum(quantum int) ([]*Result, error) {
	if err := validateQuantum(quantum); err != nil {
		return nil, err
	}

	results := make([]*Result, 0, len(Policies))
	for _, policy := range Policies {
		if err := e.run(policy, quantum); err != nil {
			return results, fmt.Errorf("%s: %w", policy, err)
		}
		results = append(results, e.last.Clone())
	}
	return results, nil
}

func (e *Engine) run(policy Policy, quantum int) error {
	if e.drained {
		return ErrStaleProcessSet
	}

	var (
		res *Result
		err error
	)
	switch policy {
	case PolicyFCFS:
		res, err = FCFS(e.procs)
	case PolicySJF:
		res, err = SJF(e.procs)
	case PolicyPriority:
		res, err = Priority(e.procs)
	case PolicyRoundRobin:
		res, err = RoundRobin(e.procs, quantum, e.cfg.RRWaiting)
	default:
		err = fmt.Errorf("%w: unknown policy %q", ErrInvalidInput, policy)
	}
	if err != nil {
		return err
	}

	e.last = res
	e.clock.Reset()
	e.clock.AdvanceTo(res.Timeline.Span())

	if policy == PolicyRoundRobin && e.cfg.RRInPlace {
		for i := range e.procs {
			e.procs[i].Burst = 0
			e.procs[i].Remaining = 0
		}
		e.drained = true
	}
	return nil
}

// Result returns a copy of the latest run's result.
func (e *Engine) Result() (*Result, error) {
	if e.last == nil {
		return nil, ErrNoResult
	}
	return e.last.Clone(), nil
}

// Timeline returns the most recently built timeline, nil before any run.
func (e *Engine) Timeline() Timeline {
	if e.last == nil {
		return nil
	}
	return e.last.Timeline.Clone()
}

// Events returns the event trace of the latest run.
func (e *Engine) Events() []StatusEvent {
	if e.last == nil {
		return nil
	}
	return append([]StatusEvent(nil), e.last.Events...)
}

// Clock returns the simulated time at which the latest run finished.
func (e *Engine) Clock() int { return e.clock.Now() }

// ReportAverages returns mean waiting and mean turnaround of the latest run.
func (e *Engine) ReportAverages() (meanWaiting, meanTurnaround float64, err error) {
	if e.last == nil {
		if len(e.procs) == 0 {
			return 0, 0, ErrEmptyProcessSet
		}
		return 0, 0, ErrNoResult
	}
	return Averages(e.last.Processes)
}
