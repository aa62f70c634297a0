package adventure

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// hudRefresh is how often the HUD text is rebuilt.
const hudRefresh = 500 * time.Millisecond

// HUD is a small text overlay with FPS/TPS, the game state and any extra
// status lines. It redraws its own image about twice a second and uses
// ebitenutil.DebugPrint for text.
type HUD struct {
	ShowFPS bool
	// Status, if set, contributes extra lines such as a score.
	Status func() string

	img   *ebiten.Image
	text  string
	since time.Duration
}

// NewHUD creates an overlay.
func NewHUD(showFPS bool) *HUD {
	return &HUD{ShowFPS: showFPS, since: hudRefresh}
}

// Text returns the most recently built overlay text.
func (h *HUD) Text() string { return h.text }

// Update rebuilds the text when the refresh interval has passed.
func (h *HUD) Update(e *Engine, dt time.Duration) {
	h.since += dt
	if h.since < hudRefresh {
		return
	}
	h.since = 0
	h.text = h.compose(e)
}

func (h *HUD) compose(e *Engine) string {
	var b strings.Builder
	if h.ShowFPS {
		fmt.Fprintf(&b, "FPS: %.1f\nTPS: %.1f\n", ebiten.ActualFPS(), ebiten.ActualTPS())
	}
	if s := e.State(); s != nil {
		fmt.Fprintf(&b, "State: %s\n", s.Name())
	}
	if p := e.World().Player(); p != nil {
		now := e.Clock().Now()
		if p.Invulnerable(now) {
			fmt.Fprintf(&b, "Invulnerable: %.1fs\n", p.InvulnerableUntil().Sub(now).Seconds())
		}
	}
	fmt.Fprintf(&b, "Entities: %d\n", e.World().Registry().Len())
	if h.Status != nil {
		b.WriteString(h.Status())
	}
	return strings.TrimRight(b.String(), "\n")
}

// Draw renders the overlay in the top-left corner of screen.
func (h *HUD) Draw(screen *ebiten.Image) {
	if h.text == "" {
		return
	}
	lines := strings.Count(h.text, "\n") + 1
	width := 0
	for _, l := range strings.Split(h.text, "\n") {
		width = max(width, len(l))
	}
	w, ht := width*6+8, lines*16+4
	if h.img == nil || h.img.Bounds().Dx() != w || h.img.Bounds().Dy() != ht {
		h.img = ebiten.NewImage(w, ht)
	}
	h.img.Clear()
	// Semi-transparent background for readability
	h.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(h.img, h.text)
	screen.DrawImage(h.img, nil)
}
