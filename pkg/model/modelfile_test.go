package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zsketch/zsketch/pkg/errors"
)

func writeModelFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write model file: %v", err)
	}
	return path
}

func TestLoadModelFile(t *testing.T) {
	path := writeModelFile(t, `
title = "Randles cell"
circuit = "R0-p(R1,C1)"
parameters = [100.0, 250.0, 1e-6]

[frequency]
start = 0.01
end = 1e6
points = 80
`)

	m, err := LoadModelFile(path)
	if err != nil {
		t.Fatalf("LoadModelFile() error = %v", err)
	}
	if m.Title != "Randles cell" {
		t.Errorf("Title = %q", m.Title)
	}
	if m.Expression != "R0-p(R1,C1)" {
		t.Errorf("Expression = %q", m.Expression)
	}
	if len(m.Parameters) != 3 {
		t.Errorf("Parameters = %v, want 3 values", m.Parameters)
	}
	if m.Frequency.Start != 0.01 || m.Frequency.End != 1e6 || m.Frequency.Points != 80 {
		t.Errorf("Frequency = %+v", m.Frequency)
	}

	c, err := m.Circuit()
	if err != nil {
		t.Fatalf("Circuit() error = %v", err)
	}
	if c.Circuit() != m.Expression {
		t.Errorf("Circuit().Circuit() = %q, want %q", c.Circuit(), m.Expression)
	}
	if got := len(m.Frequencies()); got != 80 {
		t.Errorf("Frequencies() length = %d, want 80", got)
	}
}

func TestLoadModelFileDefaultSweep(t *testing.T) {
	path := writeModelFile(t, `
circuit = "R0"
parameters = [100.0]
`)

	m, err := LoadModelFile(path)
	if err != nil {
		t.Fatalf("LoadModelFile() error = %v", err)
	}
	if m.Frequency.Start != DefaultSweepStart {
		t.Errorf("Start = %v, want %v", m.Frequency.Start, DefaultSweepStart)
	}
	if m.Frequency.End != DefaultSweepEnd {
		t.Errorf("End = %v, want %v", m.Frequency.End, DefaultSweepEnd)
	}
	if m.Frequency.Points != DefaultSweepPoints {
		t.Errorf("Points = %v, want %v", m.Frequency.Points, DefaultSweepPoints)
	}
}

func TestLoadModelFileMissingCircuit(t *testing.T) {
	path := writeModelFile(t, `title = "no circuit"`)

	_, err := LoadModelFile(path)
	if err == nil {
		t.Fatal("LoadModelFile() error = nil, want missing circuit error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidModel) {
		t.Errorf("LoadModelFile() error = %v, want INVALID_MODEL", err)
	}
}

func TestLoadModelFileNotFound(t *testing.T) {
	_, err := LoadModelFile(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatal("LoadModelFile() error = nil, want not found error")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("LoadModelFile() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadModelFileBadTOML(t *testing.T) {
	path := writeModelFile(t, `circuit = [not toml`)

	_, err := LoadModelFile(path)
	if err == nil {
		t.Fatal("LoadModelFile() error = nil, want parse error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidModel) {
		t.Errorf("LoadModelFile() error = %v, want INVALID_MODEL", err)
	}
}
