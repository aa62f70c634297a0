package adventure

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// screenshotRequest remembers which frame and state a capture was asked
// for, so files from a scripted run sort and read in play order.
type screenshotRequest struct {
	label string
	frame uint64
	state string
}

// Screenshot queues a labeled capture of the frame drawn next. Files are
// named <time>_f<frame>_<state>_<label>.png inside the screenshot directory.
func (g *Game) Screenshot(label string) {
	req := screenshotRequest{label: label, state: "none"}
	if g.engine != nil {
		req.frame = g.engine.FrameCount()
		if s := g.engine.State(); s != nil {
			req.state = s.Name()
		}
	}
	g.screenshotQueue = append(g.screenshotQueue, req)
}

// flushScreenshots reads back screen once and writes a PNG for every queued
// request. Called at the end of Game.Draw.
func (g *Game) flushScreenshots(screen *ebiten.Image) {
	if len(g.screenshotQueue) == 0 {
		return
	}
	defer func() { g.screenshotQueue = g.screenshotQueue[:0] }()

	if err := os.MkdirAll(g.screenshotDir, 0o755); err != nil {
		g.log.Warn("screenshot directory unavailable", zap.String("dir", g.screenshotDir), zap.Error(err))
		return
	}

	bounds := screen.Bounds()
	pixels := make([]byte, 4*bounds.Dx()*bounds.Dy())
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, bounds.Dx(), bounds.Dy())

	stamp := time.Now().Format("20060102_150405")
	for _, req := range g.screenshotQueue {
		path := filepath.Join(g.screenshotDir, screenshotName(stamp, req))
		if err := writePNG(path, img); err != nil {
			g.log.Warn("screenshot failed", zap.String("label", req.label), zap.Error(err))
			continue
		}
		g.log.Info("screenshot saved", zap.String("path", path), zap.Uint64("frame", req.frame))
	}
}

func screenshotName(stamp string, req screenshotRequest) string {
	return fmt.Sprintf("%s_f%06d_%s_%s.png", stamp, req.frame, sanitizeLabel(req.state), sanitizeLabel(req.label))
}

// unpremultiply converts ebiten's premultiplied RGBA read-back into
// straight-alpha NRGBA for PNG encoding.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	n := min(len(pixels), len(img.Pix)) &^ 3
	for i := 0; i < n; i += 4 {
		px := pixels[i : i+4 : i+4]
		a := px[3]
		for c := 0; c < 3; c++ {
			v := px[c]
			if a > 0 && a < 255 {
				v = uint8(min(int(v)*255/int(a), 255))
			}
			img.Pix[i+c] = v
		}
		img.Pix[i+3] = a
	}
	return img
}

var screenshotEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("adventure: create %s: %w", path, err)
	}
	if err := screenshotEncoder.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("adventure: encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps letters, digits, '-' and '.', replacing anything else
// with '_'. Blank labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
