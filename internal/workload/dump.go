package workload

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"schedsim/internal/sched"
)

// Delimiters framing a process-list dump.
const (
	DumpStart = "PROCESSES_START"
	DumpEnd   = "PROCESSES_END"
)

// ErrMalformedDump is returned by ParseDump for input that breaks the framing.
var ErrMalformedDump = errors.New("malformed process dump")

// WriteDump writes ps as
//
//	PROCESSES_START
//	P<id>:<arrival>:<burst>:<priority>
//	PROCESSES_END
func WriteDump(w io.Writer, ps []sched.Process) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, DumpStart)
	for _, p := range ps {
		fmt.Fprintf(bw, "P%d:%d:%d:%d\n", p.ID, p.Arrival, p.Burst, p.Priority)
	}
	fmt.Fprintln(bw, DumpEnd)
	return bw.Flush()
}

// ParseDump reads the first framed process list in r. Lines before the start
// delimiter are skipped so a dump can be cut out of mixed console output.
func ParseDump(r io.Reader) ([]sched.Process, error) {
	sc := bufio.NewScanner(r)
	started := false
	ps := []sched.Process{}
	line := 0

	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		switch {
		case !started:
			started = text == DumpStart
		case text == DumpEnd:
			return ps, nil
		default:
			p, err := parseDumpLine(text)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedDump, line, err)
			}
			ps = append(ps, p)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !started {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformedDump, DumpStart)
	}
	return nil, fmt.Errorf("%w: missing %s", ErrMalformedDump, DumpEnd)
}

func parseDumpLine(text string) (sched.Process, error) {
	fields := strings.Split(text, ":")
	if len(fields) != 4 || !strings.HasPrefix(fields[0], "P") {
		return sched.Process{}, fmt.Errorf("want P<id>:<arrival>:<burst>:<priority>, got %q", text)
	}
	fields[0] = strings.TrimPrefix(fields[0], "P")

	var n [4]int
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return sched.Process{}, fmt.Errorf("field %d of %q: %w", i+1, text, err)
		}
		n[i] = v
	}
	return sched.NewProcess(sched.ProcessID(n[0]), n[1], n[2], n[3]), nil
}
