package model

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/zsketch/zsketch/pkg/errors"
)

func TestPredictResistor(t *testing.T) {
	c, err := New("R0", []float64{100})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	z := c.Predict([]float64{0.1, 1e3, 1e5})
	for i, got := range z {
		if got != complex(100, 0) {
			t.Errorf("Z[%d] = %v, want (100+0i)", i, got)
		}
	}
}

func TestPredictRandles(t *testing.T) {
	// R0-p(R1,C1) at the characteristic frequency w*R1*C1 = 1:
	// the parallel branch reduces to R1/(1+j) = 50 - 50j.
	c, err := New("R0-p(R1,C1)", []float64{10, 100, 1e-6})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	f := 1e4 / (2 * math.Pi)
	z := c.Predict([]float64{f})[0]

	want := complex(60, -50)
	if cmplx.Abs(z-want) > 1e-9 {
		t.Errorf("Z = %v, want %v", z, want)
	}
}

func TestPredictParallelResistors(t *testing.T) {
	c, err := New("p(R1,R2)", []float64{100, 100})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	z := c.Predict([]float64{42})[0]
	if cmplx.Abs(z-complex(50, 0)) > 1e-9 {
		t.Errorf("Z = %v, want (50+0i)", z)
	}
}

func TestParamNames(t *testing.T) {
	c, err := New("R0-p(R1,CPE1)", []float64{10, 100, 1e-5, 0.8})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	want := []string{"R0", "R1", "CPE1_0", "CPE1_1"}
	got := c.ParamNames()
	if len(got) != len(want) {
		t.Fatalf("ParamNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("name %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNewRejectsWrongParamCount(t *testing.T) {
	_, err := New("R0-C1", []float64{100})
	if err == nil {
		t.Fatal("New() error = nil, want parameter count mismatch")
	}
	if !errors.Is(err, errors.ErrCodeInvalidModel) {
		t.Errorf("New() error = %v, want INVALID_MODEL", err)
	}
}

func TestNewRejectsEmptyParallelGroup(t *testing.T) {
	// "p()" parses as a degenerate group; evaluating it would divide by a
	// zero admittance.
	_, err := New("R0-p()", []float64{100})
	if err == nil {
		t.Fatal("New() error = nil, want empty group rejection")
	}
	if !errors.Is(err, errors.ErrCodeInvalidModel) {
		t.Errorf("New() error = %v, want INVALID_MODEL", err)
	}
}

func TestNewRejectsUnknownComponent(t *testing.T) {
	_, err := New("R0-X1", []float64{100, 1})
	if err == nil {
		t.Fatal("New() error = nil, want unmodelable component error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidModel) {
		t.Errorf("New() error = %v, want INVALID_MODEL", err)
	}
}

func TestNewRejectsDrawableOnlyComponent(t *testing.T) {
	// LED draws fine but has no small-signal impedance.
	_, err := New("R0-LED1", []float64{100, 1})
	if err == nil {
		t.Fatal("New() error = nil, want unmodelable component error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidModel) {
		t.Errorf("New() error = %v, want INVALID_MODEL", err)
	}
}

func TestModelable(t *testing.T) {
	for _, tag := range []string{"R", "C", "L", "CPE", "W", "Wo", "Ws", "Zarc"} {
		if !Modelable(tag) {
			t.Errorf("Modelable(%q) = false, want true", tag)
		}
	}
	for _, tag := range []string{"LED", "GND", "D", "X"} {
		if Modelable(tag) {
			t.Errorf("Modelable(%q) = true, want false", tag)
		}
	}
}

func TestChiSquared(t *testing.T) {
	meas := []complex128{1, 2i}
	if chi, err := ChiSquared(meas, meas); err != nil || chi != 0 {
		t.Errorf("ChiSquared(identical) = %v, %v, want 0, nil", chi, err)
	}

	chi, err := ChiSquared([]complex128{2}, []complex128{1})
	if err != nil {
		t.Fatalf("ChiSquared() error = %v", err)
	}
	if math.Abs(chi-1) > 1e-12 {
		t.Errorf("ChiSquared() = %v, want 1", chi)
	}

	if _, err := ChiSquared([]complex128{1}, []complex128{1, 2}); err == nil {
		t.Error("ChiSquared(length mismatch) error = nil, want error")
	}
}

func TestLogSpace(t *testing.T) {
	freqs := LogSpace(0.1, 1e5, 50)
	if len(freqs) != 50 {
		t.Fatalf("LogSpace() length = %d, want 50", len(freqs))
	}
	if math.Abs(freqs[0]-0.1) > 1e-12 {
		t.Errorf("first frequency = %v, want 0.1", freqs[0])
	}
	if math.Abs(freqs[49]-1e5) > 1e-6 {
		t.Errorf("last frequency = %v, want 1e5", freqs[49])
	}
	for i := 1; i < len(freqs); i++ {
		if freqs[i] <= freqs[i-1] {
			t.Fatalf("grid not increasing at %d: %v <= %v", i, freqs[i], freqs[i-1])
		}
	}
}
