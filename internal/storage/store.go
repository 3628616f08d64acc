package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/verletsim/internal/render"
	"github.com/san-kum/verletsim/internal/sim"
)

const (
	metadataFile  = "metadata.json"
	samplesFile   = "samples.csv"
	particlesFile = "particles.csv"
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
	ID        string             `json:"id"`
	Scene     string             `json:"scene"`
	Preset    string             `json:"preset,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Frames    int                `json:"frames"`
	Particles int                `json:"particles"`
	TickRate  int                `json:"tick_rate"`
	Dt        float64            `json:"dt"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	GravityX  float64            `json:"gravity_x"`
	GravityY  float64            `json:"gravity_y"`
	Metrics   map[string]float64 `json:"metrics"`
}

// SampleRecord is one row of samples.csv.
type SampleRecord struct {
	Frame         int     `csv:"frame"`
	Time          float64 `csv:"time"`
	KineticEnergy float64 `csv:"kinetic_energy"`
	MaxOverlap    float64 `csv:"max_overlap"`
	Contacts      int     `csv:"contacts"`
}

// ParticleRecord is one row of particles.csv: a particle in a snapshot.
type ParticleRecord struct {
	Frame  int     `csv:"frame"`
	Time   float64 `csv:"time"`
	Index  int     `csv:"index"`
	X      float64 `csv:"x"`
	Y      float64 `csv:"y"`
	PrevX  float64 `csv:"prev_x"`
	PrevY  float64 `csv:"prev_y"`
	Mass   float64 `csv:"mass"`
	Radius float64 `csv:"radius"`
	Color  string  `csv:"color"`
}

// Save writes a run directory and returns its ID. meta.ID and
// meta.Timestamp are filled in; meta.Metrics defaults to result.Metrics.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Scene, now.UnixNano())
	meta.Timestamp = now
	meta.Frames = result.Frames
	if meta.Metrics == nil {
		meta.Metrics = result.Metrics
	}
	meta.Metrics = finiteMetrics(meta.Metrics)

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := writeRun(runDir, meta, result); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return meta.ID, nil
}

func writeRun(runDir string, meta RunMetadata, result *sim.Result) error {
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return err
	}
	samples := make([]*SampleRecord, len(result.Samples))
	for i, smp := range result.Samples {
		samples[i] = &SampleRecord{
			Frame:         smp.Frame,
			Time:          smp.Time,
			KineticEnergy: smp.KineticEnergy,
			MaxOverlap:    smp.MaxOverlap,
			Contacts:      smp.Contacts,
		}
	}
	if err := writeCSV(filepath.Join(runDir, samplesFile), &samples); err != nil {
		return err
	}

	particles := make([]*ParticleRecord, 0)
	for _, snap := range result.Snapshots {
		for _, p := range snap.Particles {
			particles = append(particles, &ParticleRecord{
				Frame:  snap.Frame,
				Time:   snap.Time,
				Index:  p.Index,
				X:      p.X,
				Y:      p.Y,
				PrevX:  p.PrevX,
				PrevY:  p.PrevY,
				Mass:   p.Mass,
				Radius: p.Radius,
				Color:  render.Hex(render.Color(p.X, p.Y, meta.Width, meta.Height)),
			})
		}
	}
	return writeCSV(filepath.Join(runDir, particlesFile), &particles)
}

// finiteMetrics drops NaN and infinite values, which JSON cannot encode.
func finiteMetrics(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out[k] = v
	}
	return out
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
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]*SampleRecord, error) {
	var rows []*SampleRecord
	if err := readCSV(filepath.Join(s.baseDir, runID, samplesFile), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) LoadParticles(runID string) ([]*ParticleRecord, error) {
	var rows []*ParticleRecord
	if err := readCSV(filepath.Join(s.baseDir, runID, particlesFile), &rows); err != nil {
		return nil, err
	}
	return rows, nil
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

func writeCSV(path string, rows any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return gocsv.MarshalFile(rows, f)
}

func readCSV(path string, rows any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := gocsv.UnmarshalFile(f, rows); err != nil {
		// gocsv reports an empty file (header only) as an error
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil
		}
		return fmt.Errorf("storage: read %s: %w", filepath.Base(path), err)
	}
	return nil
}
