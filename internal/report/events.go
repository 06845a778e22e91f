package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"schedsim/internal/sched"
)

// EventLog writes scheduler event traces as CSV.
type EventLog struct {
	file      *os.File // nil when writing to a caller-owned writer
	csvWriter *csv.Writer
}

var eventLogHeader = []string{"policy", "tick", "event", "process_id", "remaining", "ran_ticks"}

// CreateEventLog opens the given file path for CSV logging of events.
func CreateEventLog(path string) (*EventLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	l, err := NewEventLog(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	l.file = f
	return l, nil
}

// NewEventLog writes the CSV header to w and returns a log appending to it.
func NewEventLog(w io.Writer) (*EventLog, error) {
	cw := csv.NewWriter(w)

	// write header
	if err := cw.Write(eventLogHeader); err != nil {
		return nil, err
	}
	cw.Flush()
	return &EventLog{csvWriter: cw}, cw.Error()
}

// WriteRun appends every event of res.
func (l *EventLog) WriteRun(res *sched.Result) error {
	for _, ev := range res.Events {
		rec := []string{
			string(res.Policy),
			strconv.Itoa(ev.Tick),
			ev.Kind.String(),
			strconv.Itoa(int(ev.ProcessID)),
			strconv.Itoa(ev.Remaining),
			strconv.Itoa(ev.Ran),
		}
		if err := l.csvWriter.Write(rec); err != nil {
			return err
		}
	}
	l.csvWriter.Flush()
	return l.csvWriter.Error()
}

// Close flushes the log and closes the file it owns, if any.
func (l *EventLog) Close() error {
	l.csvWriter.Flush()
	if l.file == nil {
		return l.csvWriter.Error()
	}
	return l.file.Close()
}

// FormatEvent renders one event as a console line.
func FormatEvent(ev sched.StatusEvent) string {
	// an auxiliary function to center the event kind in the output
	center := func(str string, width int) string {
		spaces := int(float64(width-len(str)) / 2)
		return strings.Repeat(" ", spaces) + str + strings.Repeat(" ", width-(spaces+len(str)))
	}

	if ev.Kind == sched.StatusIdle {
		return fmt.Sprintf("Tick: %05d [%s] => CPU idle for %d ticks",
			ev.Tick, center(ev.Kind.String(), 12), ev.Ran)
	}
	return fmt.Sprintf("Tick: %05d [%s] => Process: %04d, remaining: %03d, ran: %03d",
		ev.Tick,
		center(ev.Kind.String(), 12),
		ev.ProcessID,
		ev.Remaining,
		ev.Ran,
	)
}

// WriteTrace prints every event of res with FormatEvent.
func WriteTrace(w io.Writer, res *sched.Result) error {
	for _, ev := range res.Events {
		if _, err := fmt.Fprintln(w, FormatEvent(ev)); err != nil {
			return err
		}
	}
	return nil
}
