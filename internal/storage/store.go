package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/nrsolve/internal/config"
	"github.com/san-kum/nrsolve/internal/newton"
)

const (
	metadataFile = "metadata.json"
	iteratesFile = "iterates.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string        `json:"id"`
	Model     string        `json:"model"`
	Method    string        `json:"method"`
	Timestamp time.Time     `json:"timestamp"`
	Config    config.Config `json:"config"`
	Status    string        `json:"status"`
	Steps     int           `json:"steps"`
	Elapsed   time.Duration `json:"elapsed_ns"`
	Solution  Floats        `json:"solution"`
	Problems  []string      `json:"problems,omitempty"`
}

// Trace is the per-step record kept in iterates.csv. Row 0 is the initial
// guess when the iterates were recorded; its MaxDelta is zero.
type Trace struct {
	Steps    []int
	MaxDelta []float64
	X        [][]float64
}

// TraceOf builds a Trace from a result. Without recorded iterates only the
// final solution is kept, next to the full delta history.
func TraceOf(res *newton.Result) Trace {
	var tr Trace
	if len(res.Iterates) > 0 {
		for i, x := range res.Iterates {
			d := 0.0
			if i > 0 {
				d = res.History[i-1]
			}
			tr.Steps = append(tr.Steps, i)
			tr.MaxDelta = append(tr.MaxDelta, d)
			tr.X = append(tr.X, x)
		}
		return tr
	}
	for i, d := range res.History {
		tr.Steps = append(tr.Steps, i+1)
		tr.MaxDelta = append(tr.MaxDelta, d)
		if i == len(res.History)-1 {
			tr.X = append(tr.X, res.X)
		} else {
			tr.X = append(tr.X, nil)
		}
	}
	return tr
}

func (s *Store) Save(cfg *config.Config, res *newton.Result, problems []string) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", cfg.Model, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Model:     cfg.Model,
		Method:    cfg.Method,
		Timestamp: now,
		Config:    *cfg,
		Status:    res.Status.String(),
		Steps:     res.Steps,
		Elapsed:   res.Elapsed,
		Solution:  Floats(res.X),
		Problems:  problems,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, iteratesFile))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteCSV(f, TraceOf(res), len(res.X)); err != nil {
		return "", err
	}
	return runID, f.Close()
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadIterates(runID string) (Trace, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, iteratesFile))
	if err != nil {
		return Trace{}, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return Trace{}, err
	}

	var tr Trace
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 2 {
			continue
		}
		step, err := strconv.Atoi(record[0])
		if err != nil {
			return Trace{}, fmt.Errorf("run %s line %d: step: %w", runID, i+1, err)
		}
		d, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return Trace{}, fmt.Errorf("run %s line %d: max_delta: %w", runID, i+1, err)
		}
		x, err := parseIterate(record[2:])
		if err != nil {
			return Trace{}, fmt.Errorf("run %s line %d: %w", runID, i+1, err)
		}

		tr.Steps = append(tr.Steps, step)
		tr.MaxDelta = append(tr.MaxDelta, d)
		tr.X = append(tr.X, x)
	}
	return tr, nil
}

// parseIterate reads the x columns of one row. A row with every column
// empty carries no iterate.
func parseIterate(fields []string) ([]float64, error) {
	empty := true
	for _, f := range fields {
		if f != "" {
			empty = false
			break
		}
	}
	if empty {
		return nil, nil
	}

	x := make([]float64, len(fields))
	for j, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("x%d: %w", j, err)
		}
		x[j] = v
	}
	return x, nil
}
