package adventure

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// the convenience constructors (TweenAlpha, TweenColor) and call Update each
// frame. The group writes values straight into the target fields.
//
// There is no global animation manager; owners call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// Update advances all tweens by dt and writes values to the target fields.
func (g *TweenGroup) Update(dt time.Duration) {
	if g.Done {
		return
	}
	step := float32(dt.Seconds())
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(step)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenAlpha animates *alpha from its current value to the target.
func TweenAlpha(alpha *float64, to float64, duration time.Duration, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(*alpha), float32(to), float32(duration.Seconds()), fn)
	g.fields[0] = alpha
	return g
}

// TweenColor animates all four components of *c to the target color.
func TweenColor(c *Color, to Color, duration time.Duration, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4}
	d := float32(duration.Seconds())
	g.tweens[0] = gween.New(float32(c.R), float32(to.R), d, fn)
	g.tweens[1] = gween.New(float32(c.G), float32(to.G), d, fn)
	g.tweens[2] = gween.New(float32(c.B), float32(to.B), d, fn)
	g.tweens[3] = gween.New(float32(c.A), float32(to.A), d, fn)
	g.fields[0] = &c.R
	g.fields[1] = &c.G
	g.fields[2] = &c.B
	g.fields[3] = &c.A
	return g
}

// Pulse oscillates a value between two bounds, one half-period per leg. It
// drives the highlight tint of hazards touching an invulnerable player.
type Pulse struct {
	Value    float64
	from, to float64
	half     time.Duration
	leg      *TweenGroup
	forward  bool
}

// NewPulse creates a pulse starting at from and heading to to.
func NewPulse(from, to float64, period time.Duration) *Pulse {
	p := &Pulse{Value: from, from: from, to: to, half: period / 2}
	p.turn()
	return p
}

// Update advances the pulse by dt, turning around at either bound.
func (p *Pulse) Update(dt time.Duration) {
	p.leg.Update(dt)
	if p.leg.Done {
		p.turn()
	}
}

func (p *Pulse) turn() {
	p.forward = !p.forward
	target := p.to
	if !p.forward {
		target = p.from
	}
	p.leg = TweenAlpha(&p.Value, target, p.half, ease.InOutSine)
}
