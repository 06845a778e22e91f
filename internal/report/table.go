// Package report renders scheduling results for people: statistics tables,
// Gantt charts and event traces.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"schedsim/internal/sched"
)

// WriteTitle prints a title framed by dashes.
func WriteTitle(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
	_, _ = fmt.Fprintln(w, strings.Repeat(" ", len(title)/2), title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
}

// WriteTable prints the per-process statistics of a finished run, in the
// order the run processed them, followed by the two averages.
func WriteTable(w io.Writer, ps []sched.Process) error {
	meanWaiting, meanTurnaround, err := sched.Averages(ps)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "AT", "BT", "CT", "TAT", "WT"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, p := range ps {
		table.Append([]string{
			fmt.Sprintf("P%d", p.ID),
			fmt.Sprint(p.Arrival),
			fmt.Sprint(p.Burst),
			fmt.Sprint(p.Completion),
			fmt.Sprint(p.Turnaround),
			fmt.Sprint(p.Waiting),
		})
	}
	table.Render()

	_, _ = fmt.Fprintf(w, "Avg Waiting Time: %.2f\n", meanWaiting)
	_, err = fmt.Fprintf(w, "Avg Turnaround Time: %.2f\n", meanTurnaround)
	return err
}

// WriteSummary prints the timeline-level metrics of a run.
func WriteSummary(w io.Writer, s sched.Summary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	table.AppendBulk([][]string{
		{"Avg Response Time", fmt.Sprintf("%.2f", s.MeanResponse)},
		{"Makespan", fmt.Sprint(s.Makespan)},
		{"Busy", fmt.Sprint(s.BusyTime)},
		{"Idle", fmt.Sprint(s.IdleTime)},
		{"CPU Utilization", fmt.Sprintf("%.2f%%", s.Utilization*100)},
		{"Throughput", fmt.Sprintf("%.2f/t", s.Throughput)},
		{"Context Switches", fmt.Sprint(s.ContextSwitches)},
	})
	table.Render()
}

// WriteResult prints title, table, Gantt chart and summary of one run.
func WriteResult(w io.Writer, res *sched.Result) error {
	title := res.Policy.Title()
	if res.Quantum > 0 {
		title = fmt.Sprintf("%s (quantum=%d)", title, res.Quantum)
	}
	WriteTitle(w, title)

	if err := WriteTable(w, res.Processes); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w)
	if err := WriteGantt(w, res.Timeline); err != nil {
		return err
	}

	s, err := sched.Summarize(res)
	if err != nil {
		return err
	}
	WriteSummary(w, s)
	return nil
}
