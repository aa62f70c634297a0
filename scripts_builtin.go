package adventure

import (
	"fmt"
	"math"
	"time"
)

// randomBomb drops a hazard near the player at random whole-second intervals.
type randomBomb struct {
	env         ScriptEnv
	minInterval time.Duration
	maxInterval time.Duration
	radius      int
	next        time.Time
}

type randomBombParams struct {
	MinInterval time.Duration `yaml:"min_interval"`
	MaxInterval time.Duration `yaml:"max_interval"`
	Radius      int           `yaml:"radius"`
}

func newRandomBomb(env ScriptEnv, decode func(any) error) (ScriptUnit, error) {
	p := randomBombParams{MinInterval: 2 * time.Second, MaxInterval: 5 * time.Second, Radius: 50}
	if err := decode(&p); err != nil {
		return nil, err
	}
	if p.MinInterval < time.Second || p.MaxInterval < p.MinInterval {
		return nil, fmt.Errorf("interval [%v, %v) is invalid", p.MinInterval, p.MaxInterval)
	}
	if p.Radius < 0 {
		return nil, fmt.Errorf("radius %d must not be negative", p.Radius)
	}
	return &randomBomb{env: env, minInterval: p.MinInterval, maxInterval: p.MaxInterval, radius: p.Radius}, nil
}

func (b *randomBomb) Initialize() {
	b.schedule()
}

func (b *randomBomb) Execute(w WorldHandle) {
	if !b.env.Clock.Now().After(b.next) {
		return
	}
	b.schedule()

	// Uniform over the disc: sqrt keeps the density flat towards the rim.
	pos := w.PlayerPosition()
	angle := b.env.Rand.Float64() * 2 * math.Pi
	r := float64(b.radius) * math.Sqrt(b.env.Rand.Float64())
	w.SpawnEffect(pos.X+int(r*math.Cos(angle)), pos.Y+int(r*math.Sin(angle)))
}

// schedule picks the next trigger a whole number of seconds in
// [minInterval, maxInterval) from now.
func (b *randomBomb) schedule() {
	lo := int(b.minInterval / time.Second)
	hi := int(b.maxInterval / time.Second)
	secs := lo
	if hi > lo {
		secs += b.env.Rand.IntN(hi - lo)
	}
	b.next = b.env.Clock.Now().Add(time.Duration(secs) * time.Second)
}

// randomPickup offers an invulnerability pickup near the player on a fixed
// interval, unless one is still lying around.
type randomPickup struct {
	env      ScriptEnv
	interval time.Duration
	offset   int
	next     time.Time
}

type randomPickupParams struct {
	Interval time.Duration `yaml:"interval"`
	Offset   int           `yaml:"offset"`
}

func newRandomPickup(env ScriptEnv, decode func(any) error) (ScriptUnit, error) {
	p := randomPickupParams{Interval: 10 * time.Second, Offset: 80}
	if err := decode(&p); err != nil {
		return nil, err
	}
	if p.Interval <= 0 {
		return nil, fmt.Errorf("interval %v must be positive", p.Interval)
	}
	if p.Offset <= 0 {
		return nil, fmt.Errorf("offset %d must be positive", p.Offset)
	}
	return &randomPickup{env: env, interval: p.Interval, offset: p.Offset}, nil
}

func (u *randomPickup) Initialize() {
	u.next = u.env.Clock.Now().Add(u.interval)
}

func (u *randomPickup) Execute(w WorldHandle) {
	now := u.env.Clock.Now()
	if !now.After(u.next) {
		return
	}
	u.next = now.Add(u.interval)
	if w.PickupPresent() {
		return
	}
	pos := w.PlayerPosition()
	dx := u.env.Rand.IntN(2*u.offset) - u.offset
	dy := u.env.Rand.IntN(2*u.offset) - u.offset
	w.SpawnPickup(pos.X+dx, pos.Y+dy)
}
