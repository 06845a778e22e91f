package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"schedsim/internal/sched"
)

// WriteGantt prints a timeline as a bar of slices with the slice boundaries
// underneath, e.g.
//
//	| P1 | idle | P2 |
//	0    5      7    9
func WriteGantt(w io.Writer, t sched.Timeline) error {
	if _, err := fmt.Fprintln(w, "Gantt chart"); err != nil {
		return err
	}
	if len(t) == 0 {
		_, err := fmt.Fprintln(w, "(empty)")
		return err
	}

	var bar, ticks strings.Builder
	bar.WriteString("|")
	ticks.WriteString(strconv.Itoa(t[0].Start))

	cell := func(label string, end int) {
		fmt.Fprintf(&bar, " %s |", label)
		// put the boundary time under the closing bar
		if pad := bar.Len() - 1 - ticks.Len(); pad > 0 {
			ticks.WriteString(strings.Repeat(" ", pad))
		} else {
			ticks.WriteString(" ")
		}
		ticks.WriteString(strconv.Itoa(end))
	}

	prev := t[0].Start
	for _, g := range t {
		if g.Start > prev {
			cell("idle", g.Start)
		}
		cell(fmt.Sprintf("P%d", g.ProcessID), g.End)
		prev = g.End
	}

	_, err := fmt.Fprintf(w, "%s\n%s\n\n", bar.String(), ticks.String())
	return err
}
