package model

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/zsketch/zsketch/pkg/errors"
)

// ModelFile is the on-disk TOML description of a circuit model:
//
//	title = "Randles cell"
//	circuit = "R0-p(R1,C1)"
//	parameters = [100.0, 250.0, 1e-6]
//
//	[frequency]
//	start = 0.1
//	end = 1e5
//	points = 50
type ModelFile struct {
	Title      string    `toml:"title"`
	Expression string    `toml:"circuit"`
	Parameters []float64 `toml:"parameters"`
	Frequency  Sweep     `toml:"frequency"`
}

// Sweep describes a logarithmic frequency sweep.
type Sweep struct {
	Start  float64 `toml:"start"`
	End    float64 `toml:"end"`
	Points int     `toml:"points"`
}

// Default sweep bounds, matching the usual EIS measurement window.
const (
	DefaultSweepStart  = 0.1
	DefaultSweepEnd    = 1e5
	DefaultSweepPoints = 50
)

// LoadModelFile reads and validates a TOML model file. Missing frequency
// fields fall back to the default sweep.
func LoadModelFile(path string) (ModelFile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ModelFile{}, errors.New(errors.ErrCodeFileNotFound, "model file not found: %s", path)
	}
	if err != nil {
		return ModelFile{}, errors.Wrap(errors.ErrCodeInternal, err, "read model file %s", path)
	}

	var m ModelFile
	if err := toml.Unmarshal(data, &m); err != nil {
		return ModelFile{}, errors.Wrap(errors.ErrCodeInvalidModel, err, "parse model file %s", path)
	}

	if m.Expression == "" {
		return ModelFile{}, errors.New(errors.ErrCodeInvalidModel, "model file %s has no circuit expression", path)
	}
	if m.Frequency.Start == 0 {
		m.Frequency.Start = DefaultSweepStart
	}
	if m.Frequency.End == 0 {
		m.Frequency.End = DefaultSweepEnd
	}
	if m.Frequency.Points == 0 {
		m.Frequency.Points = DefaultSweepPoints
	}
	if err := errors.ValidateFrequencyRange(m.Frequency.Start, m.Frequency.End, m.Frequency.Points); err != nil {
		return ModelFile{}, err
	}

	return m, nil
}

// Circuit builds the evaluatable model from the file.
func (m ModelFile) Circuit() (*Circuit, error) {
	return New(m.Expression, m.Parameters)
}

// Frequencies returns the sweep's logarithmic frequency grid.
func (m ModelFile) Frequencies() []float64 {
	return LogSpace(m.Frequency.Start, m.Frequency.End, m.Frequency.Points)
}
