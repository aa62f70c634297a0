package adventure

import (
	"math"
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

func TestTweenAlphaReachesTarget(t *testing.T) {
	alpha := 0.0
	g := TweenAlpha(&alpha, 1, time.Second, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	g.Update(500 * time.Millisecond)
	if g.Done {
		t.Fatal("Done after half the duration")
	}
	if math.Abs(alpha-0.5) > 0.01 {
		t.Errorf("alpha = %f at the midpoint, want ~0.5", alpha)
	}

	g.Update(500 * time.Millisecond)
	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if alpha != 1 {
		t.Errorf("alpha = %f, want 1", alpha)
	}
}

func TestTweenColorAllComponents(t *testing.T) {
	c := Color{R: 1, G: 0, B: 0, A: 1}
	target := Color{R: 0, G: 1, B: 0.5, A: 0.5}

	g := TweenColor(&c, target, time.Second, ease.Linear)
	g.Update(500 * time.Millisecond)
	g.Update(500 * time.Millisecond)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(c.R-target.R) > 0.01 {
		t.Errorf("R = %f, want %f", c.R, target.R)
	}
	if math.Abs(c.G-target.G) > 0.01 {
		t.Errorf("G = %f, want %f", c.G, target.G)
	}
	if math.Abs(c.B-target.B) > 0.01 {
		t.Errorf("B = %f, want %f", c.B, target.B)
	}
	if math.Abs(c.A-target.A) > 0.01 {
		t.Errorf("A = %f, want %f", c.A, target.A)
	}
}

func TestTweenGroupDoneStopsUpdating(t *testing.T) {
	alpha := 0.0
	g := TweenAlpha(&alpha, 1, 100*time.Millisecond, ease.Linear)
	g.Update(time.Second)
	if !g.Done {
		t.Fatal("expected Done")
	}

	alpha = 0.25
	g.Update(time.Second)
	if alpha != 0.25 {
		t.Errorf("finished group wrote alpha = %f", alpha)
	}
}

func TestPulseOscillates(t *testing.T) {
	p := NewPulse(0.2, 1, time.Second)
	if p.Value != 0.2 {
		t.Fatalf("Value = %f, want 0.2 at start", p.Value)
	}

	p.Update(500 * time.Millisecond)
	if math.Abs(p.Value-1) > 0.01 {
		t.Errorf("Value = %f after half a period, want ~1", p.Value)
	}

	p.Update(500 * time.Millisecond)
	if math.Abs(p.Value-0.2) > 0.01 {
		t.Errorf("Value = %f after a full period, want ~0.2", p.Value)
	}

	p.Update(250 * time.Millisecond)
	if p.Value <= 0.2 || p.Value >= 1 {
		t.Errorf("Value = %f on the next rise, want strictly between the bounds", p.Value)
	}
}
