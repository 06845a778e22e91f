package workload

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	yaml "github.com/goccy/go-yaml"

	"schedsim/internal/sched"
)

// file mirrors a YAML workload file:
//
//	processes:
//	  - {id: 1, arrival: 0, burst: 5, priority: 2}
type file struct {
	Processes []sched.Process `yaml:"processes"`
}

// Load reads a process set from path. The extension picks the format:
// .yaml/.yml, .csv (id,arrival,burst[,priority]) or, for anything else, the
// framed dump format.
func Load(path string) ([]sched.Process, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var ps []sched.Process
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		ps, err = DecodeYAML(data)
	case ".csv":
		ps, err = ReadCSV(bytes.NewReader(data))
	default:
		ps, err = ParseDump(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ps, nil
}

// DecodeYAML parses a YAML workload document.
func DecodeYAML(data []byte) ([]sched.Process, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	ps := make([]sched.Process, len(f.Processes))
	for i, p := range f.Processes {
		ps[i] = sched.NewProcess(p.ID, p.Arrival, p.Burst, p.Priority)
	}
	return ps, nil
}

// EncodeYAML renders ps in the format DecodeYAML reads.
func EncodeYAML(ps []sched.Process) ([]byte, error) {
	return yaml.Marshal(file{Processes: ps})
}

// ReadCSV parses rows of id,arrival,burst[,priority]. A leading header row
// starting with "id" is skipped and ids may carry a "P" prefix.
func ReadCSV(r io.Reader) ([]sched.Process, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	if len(rows) > 0 && len(rows[0]) > 0 && strings.EqualFold(rows[0][0], "id") {
		rows = rows[1:]
	}

	ps := make([]sched.Process, 0, len(rows))
	for i, row := range rows {
		if len(row) != 3 && len(row) != 4 {
			return nil, fmt.Errorf("row %d: want 3 or 4 fields, got %d", i+1, len(row))
		}

		var n [4]int
		for j, cell := range row {
			cell = strings.TrimSpace(cell)
			if j == 0 {
				cell = strings.TrimPrefix(cell, "P")
			}
			v, err := strconv.Atoi(cell)
			if err != nil {
				return nil, fmt.Errorf("row %d field %d: %w", i+1, j+1, err)
			}
			n[j] = v
		}
		ps = append(ps, sched.NewProcess(sched.ProcessID(n[0]), n[1], n[2], n[3]))
	}
	return ps, nil
}
