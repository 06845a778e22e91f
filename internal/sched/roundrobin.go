package sched

import (
	"fmt"

	"github.com/emirpasic/gods/queues/arrayqueue"
)

// WaitingFormula selects how Round-Robin derives waiting time for a finished process.
type WaitingFormula string

const (
	// WaitingStandard uses waiting = turnaround - burst, like every other policy.
	WaitingStandard WaitingFormula = "standard"

	// WaitingLegacy reproduces the historical expression
	// turnaround - (lastSlice - (remaining + lastSlice)). Remaining is always
	// zero at completion, so it reports waiting == turnaround. Kept only for
	// comparing against old output.
	WaitingLegacy WaitingFormula = "legacy"
)

// ParseWaitingFormula maps a config value onto a formula; empty means standard.
func ParseWaitingFormula(s string) (WaitingFormula, error) {
	switch WaitingFormula(s) {
	case "", WaitingStandard:
		return WaitingStandard, nil
	case WaitingLegacy:
		return WaitingLegacy, nil
	}
	return "", fmt.Errorf("%w: unknown round-robin waiting formula %q", ErrInvalidInput, s)
}

// RoundRobin runs round-robin with the given quantum over a private copy of ps.
//
// The copy is sorted by arrival. Processes arriving at tick 0 start in the
// ready queue. After every slice, processes that arrived by the new clock are
// queued before the process that just ran is put back.
func RoundRobin(ps []Process, quantum int, formula WaitingFormula) (*Result, error) {
	if err := validateQuantum(quantum); err != nil {
		return nil, err
	}
	if err := Validate(ps); err != nil {
		return nil, err
	}
	formula, err := ParseWaitingFormula(string(formula))
	if err != nil {
		return nil, err
	}

	procs := workingCopy(ps, byArrival)
	r := &run{}
	queue := arrayqueue.New()
	next := 0

	admit := func() {
		for next < len(procs) && procs[next].Arrival <= r.clock.Now() {
			queue.Enqueue(next)
			r.enqueue(&procs[next])
			next++
		}
	}

	admit()
	for !queue.Empty() || next < len(procs) {
		v, ok := queue.Dequeue()
		if !ok {
			r.idleUntil(procs[next].Arrival)
			admit()
			continue
		}

		idx := v.(int)
		p := &procs[idx]
		exec := min(quantum, p.Remaining)
		r.serve(p, exec)

		// new arrivals go ahead of the returning process
		admit()

		if p.Remaining > 0 {
			r.preempt(p, exec)
			queue.Enqueue(idx)
			continue
		}

		r.complete(p, exec)
		if formula == WaitingLegacy {
			p.Waiting = p.Turnaround - (exec - (p.Remaining + exec))
		}
	}
	return r.result(PolicyRoundRobin, quantum, procs), nil
}
