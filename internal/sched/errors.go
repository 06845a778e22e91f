package sched

import "errors"

var (
	// ErrInvalidInput covers negative arrivals, non-positive bursts or ids,
	// duplicate ids, non-positive quanta and unknown policy names.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyProcessSet is returned when a run or an average is requested over zero processes.
	ErrEmptyProcessSet = errors.New("empty process set")

	// ErrStaleProcessSet is returned when the loaded set was drained by an
	// in-place Round-Robin run and has not been reloaded since.
	ErrStaleProcessSet = errors.New("process set drained by in-place round-robin; reload or reset first")

	// ErrNoResult is returned when results are requested before any run.
	ErrNoResult = errors.New("no scheduling run has completed")
)
