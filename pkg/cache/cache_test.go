package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "missing"); err != nil || ok {
		t.Errorf("Get(missing) = ok=%v, err=%v, want miss", ok, err)
	}

	if err := c.Set(ctx, "k", []byte("payload"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, ok, err := c.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get() = ok=%v, err=%v, want hit", ok, err)
	}
	if string(data) != "payload" {
		t.Errorf("Get() = %q, want payload", data)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("Get() hit after Delete()")
	}

	// Deleting an absent key is not an error.
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete(absent) error = %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Errorf("Get(expired) = ok=%v, err=%v, want miss", ok, err)
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Errorf("Get() = ok=%v, err=%v, want always miss", ok, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestKeysDistinguishInputs(t *testing.T) {
	base := LayoutKeyOpts{Direction: "right", Spacing: 1}

	a := LayoutKey("R0-p(R1,C1)", base)
	b := LayoutKey("R0-p(R1,L1)", base)
	if a == b {
		t.Error("LayoutKey identical for different expressions")
	}

	c := LayoutKey("R0-p(R1,C1)", LayoutKeyOpts{Direction: "up", Spacing: 1})
	if a == c {
		t.Error("LayoutKey identical for different directions")
	}

	if a != LayoutKey("R0-p(R1,C1)", base) {
		t.Error("LayoutKey not deterministic")
	}

	svg := ArtifactKey("R0", base, ArtifactKeyOpts{Kind: "schematic", Format: "svg"})
	png := ArtifactKey("R0", base, ArtifactKeyOpts{Kind: "schematic", Format: "png"})
	if svg == png {
		t.Error("ArtifactKey identical for different formats")
	}

	f1 := FigureKey("R0", []float64{100}, [3]float64{0.1, 1e5, 50}, ArtifactKeyOpts{Kind: "bode", Format: "svg"})
	f2 := FigureKey("R0", []float64{200}, [3]float64{0.1, 1e5, 50}, ArtifactKeyOpts{Kind: "bode", Format: "svg"})
	if f1 == f2 {
		t.Error("FigureKey identical for different parameters")
	}
}

func TestKeyPrefixes(t *testing.T) {
	tests := []struct {
		key    string
		prefix string
	}{
		{LayoutKey("R0", LayoutKeyOpts{}), "layout:"},
		{ArtifactKey("R0", LayoutKeyOpts{}, ArtifactKeyOpts{}), "artifact:"},
		{FigureKey("R0", nil, [3]float64{}, ArtifactKeyOpts{}), "figure:"},
	}
	for _, tt := range tests {
		if len(tt.key) <= len(tt.prefix) || tt.key[:len(tt.prefix)] != tt.prefix {
			t.Errorf("key %q missing prefix %q", tt.key, tt.prefix)
		}
	}
}
