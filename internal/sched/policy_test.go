package sched

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleSet is the five-process set the menu program shipped with.
func sampleSet() []Process {
	return []Process{
		NewProcess(1, 0, 5, 2),
		NewProcess(2, 1, 3, 1),
		NewProcess(3, 2, 8, 4),
		NewProcess(4, 3, 6, 3),
		NewProcess(5, 5, 4, 2),
	}
}

func byID(ps []Process) map[ProcessID]Process {
	out := make(map[ProcessID]Process, len(ps))
	for _, p := range ps {
		out[p.ID] = p
	}
	return out
}

func waitingByID(ps []Process) map[ProcessID]int {
	out := make(map[ProcessID]int, len(ps))
	for _, p := range ps {
		out[p.ID] = p.Waiting
	}
	return out
}

func TestFCFSSample(t *testing.T) {
	res, err := FCFS(sampleSet())
	require.NoError(t, err)

	want := Timeline{
		{ProcessID: 1, Start: 0, End: 5},
		{ProcessID: 2, Start: 5, End: 8},
		{ProcessID: 3, Start: 8, End: 16},
		{ProcessID: 4, Start: 16, End: 22},
		{ProcessID: 5, Start: 22, End: 26},
	}
	if diff := cmp.Diff(want, res.Timeline); diff != "" {
		t.Fatalf("timeline mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, map[ProcessID]int{1: 0, 2: 4, 3: 6, 4: 13, 5: 17}, waitingByID(res.Processes))

	meanWaiting, meanTurnaround, err := Averages(res.Processes)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, meanWaiting, 1e-9)
	assert.InDelta(t, 13.2, meanTurnaround, 1e-9)
}

func TestFCFSIdleGapAndStableTies(t *testing.T) {
	res, err := FCFS([]Process{
		NewProcess(7, 6, 2, 0),
		NewProcess(3, 0, 2, 0),
		NewProcess(4, 0, 1, 0),
	})
	require.NoError(t, err)

	want := Timeline{
		{ProcessID: 3, Start: 0, End: 2},
		{ProcessID: 4, Start: 2, End: 3},
		{ProcessID: 7, Start: 6, End: 8},
	}
	if diff := cmp.Diff(want, res.Timeline); diff != "" {
		t.Fatalf("timeline mismatch (-want +got):\n%s", diff)
	}

	var idle []StatusEvent
	for _, ev := range res.Events {
		if ev.Kind == StatusIdle {
			idle = append(idle, ev)
		}
	}
	require.Len(t, idle, 1)
	assert.Equal(t, StatusEvent{Tick: 3, Kind: StatusIdle, Ran: 3}, idle[0])
}

func TestFCFSIsRepeatable(t *testing.T) {
	first, err := FCFS(sampleSet())
	require.NoError(t, err)
	second, err := FCFS(sampleSet())
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(first.Timeline, second.Timeline))
}

func TestSJFSample(t *testing.T) {
	res, err := SJF(sampleSet())
	require.NoError(t, err)

	want := Timeline{
		{ProcessID: 1, Start: 0, End: 5},
		{ProcessID: 2, Start: 5, End: 8},
		{ProcessID: 5, Start: 8, End: 12},
		{ProcessID: 4, Start: 12, End: 18},
		{ProcessID: 3, Start: 18, End: 26},
	}
	if diff := cmp.Diff(want, res.Timeline); diff != "" {
		t.Fatalf("timeline mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, map[ProcessID]int{1: 0, 2: 4, 3: 16, 4: 9, 5: 3}, waitingByID(res.Processes))
}

func TestPrioritySample(t *testing.T) {
	res, err := Priority(sampleSet())
	require.NoError(t, err)

	want := Timeline{
		{ProcessID: 1, Start: 0, End: 5},
		{ProcessID: 2, Start: 5, End: 8},
		{ProcessID: 5, Start: 8, End: 12},
		{ProcessID: 4, Start: 12, End: 18},
		{ProcessID: 3, Start: 18, End: 26},
	}
	if diff := cmp.Diff(want, res.Timeline); diff != "" {
		t.Fatalf("timeline mismatch (-want +got):\n%s", diff)
	}
}

func TestPriorityIsNotPreemptive(t *testing.T) {
	res, err := Priority([]Process{
		NewProcess(1, 0, 10, 9),
		NewProcess(2, 1, 2, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, Timeline{
		{ProcessID: 1, Start: 0, End: 10},
		{ProcessID: 2, Start: 10, End: 12},
	}, res.Timeline)
}

func TestNonPreemptiveTieBreakKeepsInputOrder(t *testing.T) {
	tests := []struct {
		name  string
		run   func([]Process) (*Result, error)
		input []Process
		order []ProcessID
	}{
		{
			name: "sjf equal burst",
			run:  SJF,
			input: []Process{
				NewProcess(3, 0, 2, 0),
				NewProcess(1, 0, 4, 0),
				NewProcess(2, 0, 2, 0),
			},
			order: []ProcessID{3, 2, 1},
		},
		{
			name: "priority equal priority",
			run:  Priority,
			input: []Process{
				NewProcess(9, 0, 7, 1),
				NewProcess(4, 0, 1, 1),
				NewProcess(5, 0, 1, 0),
			},
			order: []ProcessID{5, 9, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.run(tt.input)
			require.NoError(t, err)

			got := make([]ProcessID, 0, len(res.Timeline))
			for _, g := range res.Timeline {
				got = append(got, g.ProcessID)
			}
			assert.Equal(t, tt.order, got)
		})
	}
}

func TestSJFJumpsIdleGap(t *testing.T) {
	res, err := SJF([]Process{
		NewProcess(1, 0, 2, 0),
		NewProcess(2, 5, 3, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, Timeline{
		{ProcessID: 1, Start: 0, End: 2},
		{ProcessID: 2, Start: 5, End: 8},
	}, res.Timeline)
	assert.Equal(t, 0, byID(res.Processes)[2].Waiting)
}

func TestRoundRobinSample(t *testing.T) {
	res, err := RoundRobin(sampleSet(), 2, WaitingStandard)
	require.NoError(t, err)

	want := Timeline{
		{ProcessID: 1, Start: 0, End: 2},
		{ProcessID: 2, Start: 2, End: 4},
		{ProcessID: 3, Start: 4, End: 6},
		{ProcessID: 1, Start: 6, End: 8},
		{ProcessID: 4, Start: 8, End: 10},
		{ProcessID: 2, Start: 10, End: 11},
		{ProcessID: 5, Start: 11, End: 13},
		{ProcessID: 3, Start: 13, End: 15},
		{ProcessID: 1, Start: 15, End: 16},
		{ProcessID: 4, Start: 16, End: 18},
		{ProcessID: 5, Start: 18, End: 20},
		{ProcessID: 3, Start: 20, End: 22},
		{ProcessID: 4, Start: 22, End: 24},
		{ProcessID: 3, Start: 24, End: 26},
	}
	if diff := cmp.Diff(want, res.Timeline); diff != "" {
		t.Fatalf("timeline mismatch (-want +got):\n%s", diff)
	}

	got := byID(res.Processes)
	assert.Equal(t, 16, got[1].Completion)
	assert.Equal(t, 11, got[2].Completion)
	assert.Equal(t, 26, got[3].Completion)
	assert.Equal(t, 24, got[4].Completion)
	assert.Equal(t, 20, got[5].Completion)
	assert.Equal(t, map[ProcessID]int{1: 11, 2: 7, 3: 16, 4: 15, 5: 11}, waitingByID(res.Processes))
	assert.Equal(t, 6, got[5].Response)
	assert.Equal(t, 5, got[4].Response)

	for _, p := range res.Processes {
		assert.Zero(t, p.Remaining, "process %d", p.ID)
		assert.Equal(t, sampleSet()[p.ID-1].Burst, p.Burst, "burst must stay the original value")
	}
}

func TestRoundRobinArrivalsQueueAheadOfReturningProcess(t *testing.T) {
	res, err := RoundRobin([]Process{
		NewProcess(1, 0, 5, 0),
		NewProcess(2, 1, 3, 0),
	}, 2, WaitingStandard)
	require.NoError(t, err)

	// P2 arrived during P1's first slice, so it runs before P1 comes back
	require.GreaterOrEqual(t, len(res.Timeline), 2)
	assert.Equal(t, GanttEntry{ProcessID: 2, Start: 2, End: 4}, res.Timeline[1])
}

func TestRoundRobinLegacyWaiting(t *testing.T) {
	res, err := RoundRobin(sampleSet(), 2, WaitingLegacy)
	require.NoError(t, err)

	// the legacy expression collapses to waiting == turnaround
	for _, p := range res.Processes {
		assert.Equal(t, p.Turnaround, p.Waiting, "process %d", p.ID)
	}
	assert.Equal(t, map[ProcessID]int{1: 16, 2: 10, 3: 24, 4: 21, 5: 15}, waitingByID(res.Processes))
}

func TestRoundRobinQuantumBoundary(t *testing.T) {
	res, err := RoundRobin([]Process{
		NewProcess(1, 0, 2, 0),
		NewProcess(2, 0, 3, 0),
	}, 2, WaitingStandard)
	require.NoError(t, err)

	assert.Equal(t, Timeline{
		{ProcessID: 1, Start: 0, End: 2},
		{ProcessID: 2, Start: 2, End: 4},
		{ProcessID: 2, Start: 4, End: 5},
	}, res.Timeline)

	for _, ev := range res.Events {
		if ev.ProcessID == 1 {
			assert.NotEqual(t, StatusPreempt, ev.Kind, "P1 must finish in one slice")
		}
	}
}

func TestRoundRobinIdleGap(t *testing.T) {
	res, err := RoundRobin([]Process{
		NewProcess(2, 4, 2, 0),
		NewProcess(1, 0, 1, 0),
	}, 2, "")
	require.NoError(t, err)
	assert.Equal(t, Timeline{
		{ProcessID: 1, Start: 0, End: 1},
		{ProcessID: 2, Start: 4, End: 6},
	}, res.Timeline)
}

func TestPoliciesRejectBadInput(t *testing.T) {
	policies := map[string]func([]Process) (*Result, error){
		"fcfs":     FCFS,
		"sjf":      SJF,
		"priority": Priority,
		"rr": func(ps []Process) (*Result, error) {
			return RoundRobin(ps, 2, WaitingStandard)
		},
	}
	inputs := map[string]struct {
		ps  []Process
		err error
	}{
		"empty":            {nil, ErrEmptyProcessSet},
		"negative arrival": {[]Process{NewProcess(1, -1, 3, 0)}, ErrInvalidInput},
		"zero burst":       {[]Process{NewProcess(1, 0, 0, 0)}, ErrInvalidInput},
		"zero id":          {[]Process{NewProcess(0, 0, 1, 0)}, ErrInvalidInput},
		"duplicate id":     {[]Process{NewProcess(1, 0, 1, 0), NewProcess(1, 2, 1, 0)}, ErrInvalidInput},
	}

	for pname, run := range policies {
		for iname, in := range inputs {
			t.Run(pname+"/"+iname, func(t *testing.T) {
				res, err := run(in.ps)
				require.ErrorIs(t, err, in.err)
				assert.Nil(t, res)
			})
		}
	}
}

func TestRoundRobinRejectsQuantum(t *testing.T) {
	for _, q := range []int{0, -3} {
		_, err := RoundRobin(sampleSet(), q, WaitingStandard)
		require.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestRoundRobinRejectsWaitingFormula(t *testing.T) {
	res, err := RoundRobin(sampleSet(), 2, "bogus")
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, res)

	res, err = RoundRobin(sampleSet(), 2, "")
	require.NoError(t, err)
	meanWaiting, _, err := Averages(res.Processes)
	require.NoError(t, err)
	assert.InDelta(t, 12.0, meanWaiting, 1e-9)
}

func TestPoliciesDoNotMutateInput(t *testing.T) {
	for _, policy := range Policies {
		t.Run(string(policy), func(t *testing.T) {
			input := sampleSet()
			var err error
			switch policy {
			case PolicyFCFS:
				_, err = FCFS(input)
			case PolicySJF:
				_, err = SJF(input)
			case PolicyPriority:
				_, err = Priority(input)
			case PolicyRoundRobin:
				_, err = RoundRobin(input, 3, WaitingStandard)
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(sampleSet(), input))
		})
	}
}

// randomSet builds a deterministic pseudo-random process set.
func randomSet(rng *rand.Rand) []Process {
	n := 1 + rng.Intn(12)
	ps := make([]Process, n)
	for i := range ps {
		ps[i] = NewProcess(ProcessID(i+1), rng.Intn(20), 1+rng.Intn(10), rng.Intn(5))
	}
	return ps
}

func TestPolicyInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		ps := randomSet(rng)
		quantum := 1 + rng.Intn(4)

		totalBurst := 0
		for _, p := range ps {
			totalBurst += p.Burst
		}

		results := map[Policy]func() (*Result, error){
			PolicyFCFS:       func() (*Result, error) { return FCFS(ps) },
			PolicySJF:        func() (*Result, error) { return SJF(ps) },
			PolicyPriority:   func() (*Result, error) { return Priority(ps) },
			PolicyRoundRobin: func() (*Result, error) { return RoundRobin(ps, quantum, WaitingStandard) },
		}

		for policy, fn := range results {
			res, err := fn()
			require.NoError(t, err)
			require.Len(t, res.Processes, len(ps))

			// chronological, positive-length slices covering every burst
			served := make(map[ProcessID]int)
			lastEnd := make(map[ProcessID]int)
			slices := make(map[ProcessID]int)
			prevEnd := 0
			for _, g := range res.Timeline {
				require.Greater(t, g.End, g.Start, "%s: empty slice", policy)
				require.GreaterOrEqual(t, g.Start, prevEnd, "%s: overlapping slice", policy)
				if policy == PolicyRoundRobin {
					require.LessOrEqual(t, g.Len(), quantum)
				}
				prevEnd = g.End
				served[g.ProcessID] += g.Len()
				lastEnd[g.ProcessID] = g.End
				slices[g.ProcessID]++
			}
			require.Equal(t, totalBurst, res.Timeline.Busy(), "%s", policy)

			for _, p := range res.Processes {
				require.Equal(t, p.Burst, served[p.ID], "%s: process %d", policy, p.ID)
				require.Equal(t, lastEnd[p.ID], p.Completion, "%s: process %d", policy, p.ID)
				require.GreaterOrEqual(t, p.Completion, p.Arrival+p.Burst)
				require.Equal(t, p.Completion-p.Arrival, p.Turnaround)
				require.Equal(t, p.Turnaround-p.Burst, p.Waiting)
				require.GreaterOrEqual(t, p.Waiting, 0)
				require.GreaterOrEqual(t, p.Response, 0)
				require.LessOrEqual(t, p.Response, p.Waiting)
				if policy != PolicyRoundRobin {
					require.Equal(t, 1, slices[p.ID], "%s: non-preemptive process %d was split", policy, p.ID)
					require.Equal(t, p.Waiting, p.Response)
				}
			}
		}
	}
}
