package sched

import "fmt"

// Validate rejects a process set that no policy may run.
func Validate(ps []Process) error {
	if len(ps) == 0 {
		return ErrEmptyProcessSet
	}
	seen := make(map[ProcessID]struct{}, len(ps))
	for _, p := range ps {
		if err := validateProcess(p); err != nil {
			return err
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: process %d appears more than once", ErrInvalidInput, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

func validateProcess(p Process) error {
	switch {
	case p.ID <= 0:
		return fmt.Errorf("%w: process id %d must be positive", ErrInvalidInput, p.ID)
	case p.Arrival < 0:
		return fmt.Errorf("%w: process %d has negative arrival %d", ErrInvalidInput, p.ID, p.Arrival)
	case p.Burst <= 0:
		return fmt.Errorf("%w: process %d has non-positive burst %d", ErrInvalidInput, p.ID, p.Burst)
	}
	return nil
}

func validateQuantum(quantum int) error {
	if quantum <= 0 {
		return fmt.Errorf("%w: quantum %d must be positive", ErrInvalidInput, quantum)
	}
	return nil
}
