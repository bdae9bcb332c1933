// Package storage persists recorded runs as a directory holding
// metadata.json and samples.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/dynmotion/internal/sim"
)

var ErrNoSamples = errors.New("storage: run has no samples")

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunInfo describes how a run was produced.
type RunInfo struct {
	Name     string  `json:"name"`
	Scheme   string  `json:"scheme"`
	Cadence  string  `json:"cadence"`
	Kind     string  `json:"kind"`
	Hz       float64 `json:"hz"`
	Duration float64 `json:"duration"`
}

type RunMetadata struct {
	RunInfo
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Ticks     int                `json:"ticks"`
	Completed bool               `json:"completed"`
	Columns   []string           `json:"columns"`
	Metrics   map[string]float64 `json:"metrics"`
}

func (s *Store) Save(info RunInfo, result *sim.Result) (string, error) {
	if len(result.Samples) == 0 {
		return "", ErrNoSamples
	}

	now := s.now()
	runID := fmt.Sprintf("%s_%s_%d", info.Name, info.Scheme, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		RunInfo:   info,
		ID:        runID,
		Timestamp: now,
		Ticks:     result.Ticks,
		Completed: result.Completed,
		Columns:   columnNames(result),
		Metrics:   result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, "samples.csv"), meta.Columns, result); err != nil {
		return "", err
	}
	return runID, nil
}

func columnNames(result *sim.Result) []string {
	width := len(result.Samples[0])
	cols := make([]string, width)
	for i := range cols {
		if i < len(result.Columns) {
			cols[i] = result.Columns[i]
		} else {
			cols[i] = fmt.Sprintf("x%d", i)
		}
	}
	return cols
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSamples(path string, columns []string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append([]string{"time", "phase"}, columns...)
	if err := w.Write(header); err != nil {
		return err
	}

	for i, sample := range result.Samples {
		row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64), ""}
		if i < len(result.Phases) {
			row[1] = result.Phases[i].String()
		}
		for _, val := range sample {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSamples reads back the recorded samples and their times.
func (s *Store) LoadSamples(runID string) ([]sim.Sample, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []sim.Sample{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	samples := make([]sim.Sample, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		sample := make(sim.Sample, 0, len(record)-2)
		for _, field := range record[2:] {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("run %s at t=%s: %w", runID, record[0], err)
			}
			sample = append(sample, val)
		}
		times = append(times, t)
		samples = append(samples, sample)
	}

	return samples, times, nil
}
