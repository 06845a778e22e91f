package sched

import "fmt"

// ProcessID uniquely identifies a process within one loaded set.
type ProcessID int

// Process represents one simulated process and the metrics a run assigns to it.
type Process struct {
	ID       ProcessID `json:"id" yaml:"id"`
	Arrival  int       `json:"arrival" yaml:"arrival"`   // tick the process becomes eligible
	Burst    int       `json:"burst" yaml:"burst"`       // total service required
	Priority int       `json:"priority" yaml:"priority"` // lower value = dispatched first

	Remaining  int `json:"remaining" yaml:"-"` // service still owed; only Round-Robin moves it before completion
	Completion int `json:"completion" yaml:"-"`
	Turnaround int `json:"turnaround" yaml:"-"`
	Waiting    int `json:"waiting" yaml:"-"`
	Response   int `json:"response" yaml:"-"` // -1 until first dispatch
}

// NewProcess creates a process with zeroed metrics.
// NOTE: Remaining and Response are (re)initialised at the start of every run.
func NewProcess(id ProcessID, arrival, burst, priority int) Process {
	return Process{
		ID:        id,
		Arrival:   arrival,
		Burst:     burst,
		Priority:  priority,
		Remaining: burst,
		Response:  -1,
	}
}

// fresh returns a copy with every run-assigned field cleared.
func (p Process) fresh() Process {
	return NewProcess(p.ID, p.Arrival, p.Burst, p.Priority)
}

// finish records completion at the given tick and derives turnaround and waiting.
func (p *Process) finish(at int) {
	p.Completion = at
	p.Turnaround = p.Completion - p.Arrival
	p.Waiting = p.Turnaround - p.Burst
}

// GanttEntry is one contiguous slice of service granted to a process.
type GanttEntry struct {
	ProcessID ProcessID `json:"process_id"`
	Start     int       `json:"start"`
	End       int       `json:"end"`
}

// Len is the amount of service granted in the slice.
func (g GanttEntry) Len() int { return g.End - g.Start }

// Timeline is the chronological record of slices produced by one run.
// A jump between one entry's End and the next entry's Start is idle time.
type Timeline []GanttEntry

// Busy returns the total service time in the timeline.
func (t Timeline) Busy() int {
	busy := 0
	for _, g := range t {
		busy += g.Len()
	}
	return busy
}

// Span returns the end of the last slice, or 0 for an empty timeline.
func (t Timeline) Span() int {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1].End
}

// ContextSwitches counts dispatches that hand the CPU to a different process.
func (t Timeline) ContextSwitches() int {
	switches := 0
	for i := 1; i < len(t); i++ {
		if t[i].ProcessID != t[i-1].ProcessID {
			switches++
		}
	}
	return switches
}

// Clone returns an independent copy of the timeline.
func (t Timeline) Clone() Timeline {
	if t == nil {
		return nil
	}
	out := make(Timeline, len(t))
	copy(out, t)
	return out
}

// Policy names a scheduling policy.
type Policy string

const (
	PolicyFCFS       Policy = "fcfs"
	PolicySJF        Policy = "sjf"
	PolicyPriority   Policy = "priority"
	PolicyRoundRobin Policy = "rr"
)

// Policies lists every policy in the order RunAll executes them.
var Policies = []Policy{PolicyFCFS, PolicySJF, PolicyPriority, PolicyRoundRobin}

// ParsePolicy accepts the short names plus a few long spellings.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "fcfs", "first-come-first-served":
		return PolicyFCFS, nil
	case "sjf", "shortest-job-first":
		return PolicySJF, nil
	case "priority", "prio":
		return PolicyPriority, nil
	case "rr", "round-robin", "roundrobin":
		return PolicyRoundRobin, nil
	}
	return "", fmt.Errorf("%w: unknown policy %q", ErrInvalidInput, s)
}

// Title is the human-readable policy name.
func (p Policy) Title() string {
	switch p {
	case PolicyFCFS:
		return "First-Come-First-Served"
	case PolicySJF:
		return "Shortest-Job-First (non-preemptive)"
	case PolicyPriority:
		return "Priority (non-preemptive)"
	case PolicyRoundRobin:
		return "Round-Robin"
	default:
		return string(p)
	}
}

// Result is everything one policy run produces.
// Processes are listed in the order the policy processed them (arrival order).
type Result struct {
	Policy    Policy        `json:"policy"`
	Quantum   int           `json:"quantum,omitempty"`
	Processes []Process     `json:"processes"`
	Timeline  Timeline      `json:"timeline"`
	Events    []StatusEvent `json:"-"`
}

// Clone returns a deep copy so callers cannot reach into engine state.
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	out := *r
	out.Processes = cloneProcesses(r.Processes)
	out.Timeline = r.Timeline.Clone()
	out.Events = append([]StatusEvent(nil), r.Events...)
	return &out
}

func cloneProcesses(ps []Process) []Process {
	if ps == nil {
		return nil
	}
	out := make([]Process, len(ps))
	copy(out, ps)
	return out
}
