package api

import "schedsim/internal/sched"

// ScheduleRequest is the body of a stateless schedule call and of a set replacement.
type ScheduleRequest struct {
	Processes []sched.Process `json:"processes"`
	Quantum   int             `json:"quantum"`
	RRWaiting string          `json:"rr_waiting"`
}

// ScheduleResponse is one finished run plus its aggregate metrics.
type ScheduleResponse struct {
	Policy    sched.Policy    `json:"policy"`
	Quantum   int             `json:"quantum,omitempty"`
	Processes []sched.Process `json:"processes"`
	Timeline  sched.Timeline  `json:"timeline"`
	Summary   sched.Summary   `json:"summary"`
}

func newScheduleResponse(res *sched.Result) (ScheduleResponse, error) {
	s, err := sched.Summarize(res)
	if err != nil {
		return ScheduleResponse{}, err
	}
	return ScheduleResponse{
		Policy:    res.Policy,
		Quantum:   res.Quantum,
		Processes: res.Processes,
		Timeline:  res.Timeline,
		Summary:   s,
	}, nil
}
