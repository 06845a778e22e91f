package sched

// FCFS runs first-come-first-served over a private copy of ps.
// Processes run strictly in arrival order; equal arrivals keep input order.
func FCFS(ps []Process) (*Result, error) {
	if err := Validate(ps); err != nil {
		return nil, err
	}

	procs := workingCopy(ps, byArrival)
	r := &run{}
	for i := range procs {
		p := &procs[i]
		r.idleUntil(p.Arrival)
		r.enqueue(p)
		r.serve(p, p.Burst)
		r.complete(p, p.Burst)
	}
	return r.result(PolicyFCFS, 0, procs), nil
}
