package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/gocarina/gocsv"
)

type ExportData struct {
	ID        string             `json:"id"`
	Scene     string             `json:"scene"`
	Preset    string             `json:"preset,omitempty"`
	Dt        float64            `json:"dt"`
	Frames    int                `json:"frames"`
	Particles int                `json:"particles"`
	Times     []float64          `json:"times"`
	Energy    []float64          `json:"kinetic_energy"`
	Overlap   []float64          `json:"max_overlap"`
	Contacts  []int              `json:"contacts"`
	Metrics   map[string]float64 `json:"metrics"`
}

func (s *Store) exportData(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return nil, err
	}

	data := &ExportData{
		ID:        meta.ID,
		Scene:     meta.Scene,
		Preset:    meta.Preset,
		Dt:        meta.Dt,
		Frames:    meta.Frames,
		Particles: meta.Particles,
		Times:     make([]float64, len(samples)),
		Energy:    make([]float64, len(samples)),
		Overlap:   make([]float64, len(samples)),
		Contacts:  make([]int, len(samples)),
		Metrics:   meta.Metrics,
	}
	for i, smp := range samples {
		data.Times[i] = smp.Time
		data.Energy[i] = smp.KineticEnergy
		data.Overlap[i] = smp.MaxOverlap
		data.Contacts[i] = smp.Contacts
	}
	return data, nil
}

func (s *Store) ExportJSON(w io.Writer, runID string) error {
	data, err := s.exportData(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (s *Store) ExportJSONFile(path, runID string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return s.ExportJSON(file, runID)
}

// ExportCSV writes the particle snapshots of a run.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	rows, err := s.LoadParticles(runID)
	if err != nil {
		return err
	}
	return gocsv.Marshal(rows, w)
}
