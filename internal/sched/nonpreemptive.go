package sched

// SJF runs non-preemptive shortest-job-first over a private copy of ps.
// Among arrived processes the smallest burst runs next; equal bursts go in
// (arrival, burst) input order.
func SJF(ps []Process) (*Result, error) {
	return nonPreemptive(ps, PolicySJF, func(p *Process) int { return p.Burst })
}

// Priority runs non-preemptive static priority over a private copy of ps.
// Lower priority values run first; a running process is never displaced.
func Priority(ps []Process) (*Result, error) {
	return nonPreemptive(ps, PolicyPriority, func(p *Process) int { return p.Priority })
}

// nonPreemptive is the shared admission/dispatch loop of SJF and Priority.
// The working copy is sorted by (arrival, metric) and the ready tree is keyed
// by (metric, index into that copy).
func nonPreemptive(ps []Process, policy Policy, metric func(*Process) int) (*Result, error) {
	if err := Validate(ps); err != nil {
		return nil, err
	}

	procs := workingCopy(ps, func(a, b *Process) bool {
		if a.Arrival != b.Arrival {
			return a.Arrival < b.Arrival
		}
		return metric(a) < metric(b)
	})

	r := &run{}
	ready := newReadyQueue()
	next := 0
	for next < len(procs) || !ready.Empty() {
		for next < len(procs) && procs[next].Arrival <= r.clock.Now() {
			ready.Push(metric(&procs[next]), next)
			r.enqueue(&procs[next])
			next++
		}

		idx, ok := ready.Pop()
		if !ok {
			// nothing has arrived yet: jump to the next arrival
			r.idleUntil(procs[next].Arrival)
			continue
		}

		p := &procs[idx]
		r.serve(p, p.Burst)
		r.complete(p, p.Burst)
	}
	return r.result(policy, 0, procs), nil
}
