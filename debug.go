package adventure

import (
	"time"

	"go.uber.org/zap"
)

// frameStats holds per-frame phase timings and counts.
// Only populated when the engine runs in debug mode.
type frameStats struct {
	inputTime  time.Duration
	updateTime time.Duration
	renderTime time.Duration
	entities   int
	state      string
}

// debugLogInterval is how many frames pass between timing log lines.
const debugLogInterval = 60

// debugLog writes phase timings at debug level every debugLogInterval frames.
func (e *Engine) debugLog(stats frameStats) {
	if !e.cfg.Debug || e.frame%debugLogInterval != 0 {
		return
	}
	total := stats.inputTime + stats.updateTime + stats.renderTime
	e.log.Debug("frame timings",
		zap.Uint64("frame", e.frame),
		zap.String("state", stats.state),
		zap.Duration("input", stats.inputTime),
		zap.Duration("update", stats.updateTime),
		zap.Duration("render", stats.renderTime),
		zap.Duration("total", total),
		zap.Int("entities", stats.entities))
}

// debugMaxEntities is the live-entity count past which debug mode warns.
const debugMaxEntities = 1000

func (e *Engine) debugCheckEntityCount(n int) {
	if e.cfg.Debug && n > debugMaxEntities && e.frame%debugLogInterval == 0 {
		e.log.Warn("entity count exceeds threshold", zap.Int("entities", n), zap.Int("threshold", debugMaxEntities))
	}
}
