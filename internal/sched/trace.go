package sched

import "sort"

// run carries the mutable state of one policy execution: the clock, the
// timeline being built and the event trace.
type run struct {
	clock    SimClock
	timeline Timeline
	events   []StatusEvent
}

// workingCopy returns fresh copies of ps, stably sorted with less.
func workingCopy(ps []Process, less func(a, b *Process) bool) []Process {
	procs := make([]Process, len(ps))
	for i := range ps {
		procs[i] = ps[i].fresh()
	}
	sort.SliceStable(procs, func(i, j int) bool {
		return less(&procs[i], &procs[j])
	})
	return procs
}

func byArrival(a, b *Process) bool { return a.Arrival < b.Arrival }

// idleUntil jumps the clock to t, recording the gap if there is one.
func (r *run) idleUntil(t int) {
	from := r.clock.Now()
	if r.clock.AdvanceTo(t) {
		r.events = append(r.events, StatusEvent{
			Tick: from,
			Kind: StatusIdle,
			Ran:  t - from,
		})
	}
}

func (r *run) enqueue(p *Process) {
	r.events = append(r.events, StatusEvent{
		Tick:      r.clock.Now(),
		Kind:      StatusEnqueue,
		ProcessID: p.ID,
		Remaining: p.Remaining,
	})
}

// serve grants p n ticks of service starting now.
func (r *run) serve(p *Process, n int) {
	start := r.clock.Now()
	if p.Response < 0 {
		p.Response = start - p.Arrival
	}
	r.events = append(r.events, StatusEvent{
		Tick:      start,
		Kind:      StatusDispatch,
		ProcessID: p.ID,
		Remaining: p.Remaining,
	})

	r.clock.Advance(n)
	p.Remaining -= n
	r.timeline = append(r.timeline, GanttEntry{
		ProcessID: p.ID,
		Start:     start,
		End:       r.clock.Now(),
	})
}

// preempt records that p gave up the CPU after ran ticks with work left.
func (r *run) preempt(p *Process, ran int) {
	r.events = append(r.events, StatusEvent{
		Tick:      r.clock.Now(),
		Kind:      StatusPreempt,
		ProcessID: p.ID,
		Remaining: p.Remaining,
		Ran:       ran,
	})
}

// complete finalises p at the current tick.
func (r *run) complete(p *Process, ran int) {
	p.finish(r.clock.Now())
	r.events = append(r.events, StatusEvent{
		Tick:      r.clock.Now(),
		Kind:      StatusFinish,
		ProcessID: p.ID,
		Ran:       ran,
	})
}

func (r *run) result(policy Policy, quantum int, procs []Process) *Result {
	return &Result{
		Policy:    policy,
		Quantum:   quantum,
		Processes: procs,
		Timeline:  r.timeline,
		Events:    r.events,
	}
}
