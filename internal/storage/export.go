package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
)

type ExportData struct {
	RunMetadata
	Trace []TraceRow `json:"trace"`
}

type TraceRow struct {
	Step     int    `json:"step"`
	MaxDelta Float  `json:"max_delta"`
	X        Floats `json:"x,omitempty"`
}

func exportData(meta *RunMetadata, tr Trace) ExportData {
	data := ExportData{RunMetadata: *meta, Trace: make([]TraceRow, len(tr.Steps))}
	for i := range tr.Steps {
		data.Trace[i] = TraceRow{Step: tr.Steps[i], MaxDelta: Float(tr.MaxDelta[i])}
		if i < len(tr.X) {
			data.Trace[i].X = tr.X[i]
		}
	}
	return data
}

// ExportJSON writes a run to path, or to stdout when path is "-" or empty.
func ExportJSON(path string, meta *RunMetadata, tr Trace) error {
	if path == "" || path == "-" {
		return WriteJSON(os.Stdout, meta, tr)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteJSON(file, meta, tr); err != nil {
		return err
	}
	return file.Close()
}

func WriteJSON(w io.Writer, meta *RunMetadata, tr Trace) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(meta, tr))
}

// WriteCSV writes one row per trace entry. Rows without an iterate leave
// the x columns empty.
func WriteCSV(w io.Writer, tr Trace, n int) error {
	cw := csv.NewWriter(w)

	header := []string{"step", "max_delta"}
	for i := 0; i < n; i++ {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range tr.Steps {
		row := make([]string, 2, 2+n)
		row[0] = strconv.Itoa(tr.Steps[i])
		row[1] = strconv.FormatFloat(tr.MaxDelta[i], 'g', -1, 64)
		var x []float64
		if i < len(tr.X) {
			x = tr.X[i]
		}
		for j := 0; j < n; j++ {
			if j < len(x) {
				row = append(row, strconv.FormatFloat(x[j], 'g', -1, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
