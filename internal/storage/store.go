// Package storage persists sampled simulation runs as run directories
// with JSON metadata and a CSV trajectory table.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
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

// RunMetadata describes a stored run.
type RunMetadata struct {
	ID        string             `json:"id"`
	Scheme    string             `json:"scheme"`
	Timestamp time.Time          `json:"timestamp"`
	Method    string             `json:"method"`
	TMin      float64            `json:"t_min"`
	TMax      float64            `json:"t_max"`
	Species   []string           `json:"species"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Run is a sampled trajectory: Conc[i] and Rates[i] hold the species
// concentrations and rates at Times[i].
type Run struct {
	Meta  RunMetadata
	Times []float64
	Conc  [][]float64
	Rates [][]float64
}

func (s *Store) Save(run *Run) (string, error) {
	runID := fmt.Sprintf("%s_%d", run.Meta.Scheme, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := run.Meta
	meta.ID = runID
	meta.Timestamp = time.Now()

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"time"}
	for _, sp := range meta.Species {
		header = append(header, sp)
	}
	for _, sp := range meta.Species {
		header = append(header, "d"+sp+"/dt")
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range run.Times {
		row := []string{strconv.FormatFloat(run.Times[i], 'g', 10, 64)}
		for _, v := range run.Conc[i] {
			row = append(row, strconv.FormatFloat(v, 'g', 10, 64))
		}
		for _, v := range run.Rates[i] {
			row = append(row, strconv.FormatFloat(v, 'g', 10, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*Run, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	run := &Run{Meta: meta}
	nSpecies := len(meta.Species)
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) != 1+2*nSpecies {
			return nil, fmt.Errorf("storage: run %s row %d has %d fields, want %d",
				runID, i, len(rec), 1+2*nSpecies)
		}
		vals := make([]float64, len(rec))
		for j, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: run %s row %d: %w", runID, i, err)
			}
			vals[j] = v
		}
		run.Times = append(run.Times, vals[0])
		run.Conc = append(run.Conc, vals[1:1+nSpecies])
		run.Rates = append(run.Rates, vals[1+nSpecies:])
	}
	return run, nil
}

// ExportJSON writes a run as indented JSON to path, or stdout when path
// is empty.
func (s *Store) ExportJSON(runID, path string) error {
	run, err := s.Load(runID)
	if err != nil {
		return err
	}

	payload := struct {
		RunMetadata
		Times []float64   `json:"times"`
		Conc  [][]float64 `json:"concentrations"`
		Rates [][]float64 `json:"rates"`
	}{run.Meta, run.Times, run.Conc, run.Rates}

	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
