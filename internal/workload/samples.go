// Package workload populates and serialises process sets.
package workload

import "schedsim/internal/sched"

// Samples returns the built-in five-process demonstration set.
func Samples() []sched.Process {
	return []sched.Process{
		sched.NewProcess(1, 0, 5, 2),
		sched.NewProcess(2, 1, 3, 1),
		sched.NewProcess(3, 2, 8, 4),
		sched.NewProcess(4, 3, 6, 3),
		sched.NewProcess(5, 5, 4, 2),
	}
}
