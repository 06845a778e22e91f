package sched

// Averages returns mean waiting and mean turnaround time over a finished set.
func Averages(ps []Process) (meanWaiting, meanTurnaround float64, err error) {
	if len(ps) == 0 {
		return 0, 0, ErrEmptyProcessSet
	}

	var waitingSum, turnaroundSum int
	for _, p := range ps {
		waitingSum += p.Waiting
		turnaroundSum += p.Turnaround
	}

	count := float64(len(ps))
	return float64(waitingSum) / count, float64(turnaroundSum) / count, nil
}

// Summary aggregates one run's metrics.
type Summary struct {
	MeanWaiting     float64 `json:"average_waiting_time"`
	MeanTurnaround  float64 `json:"average_turnaround_time"`
	MeanResponse    float64 `json:"average_response_time"`
	Makespan        int     `json:"makespan"`
	BusyTime        int     `json:"busy_time"`
	IdleTime        int     `json:"idle_time"`
	Utilization     float64 `json:"cpu_utilization"`
	Throughput      float64 `json:"throughput"`
	ContextSwitches int     `json:"context_switches"`
}

// Summarize derives the aggregate metrics of a finished run.
func Summarize(res *Result) (Summary, error) {
	if res == nil {
		return Summary{}, ErrNoResult
	}
	meanWaiting, meanTurnaround, err := Averages(res.Processes)
	if err != nil {
		return Summary{}, err
	}

	var responseSum int
	for _, p := range res.Processes {
		responseSum += p.Response
	}
	count := float64(len(res.Processes))

	s := Summary{
		MeanWaiting:     meanWaiting,
		MeanTurnaround:  meanTurnaround,
		MeanResponse:    float64(responseSum) / count,
		Makespan:        res.Timeline.Span(),
		BusyTime:        res.Timeline.Busy(),
		ContextSwitches: res.Timeline.ContextSwitches(),
	}
	s.IdleTime = s.Makespan - s.BusyTime
	if s.Makespan > 0 {
		s.Utilization = float64(s.BusyTime) / float64(s.Makespan)
		s.Throughput = count / float64(s.Makespan)
	}
	return s, nil
}
