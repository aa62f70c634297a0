package adventure

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"time"
)

// Clip is a named animation: an ordered list of frames over a shared sheet.
type Clip struct {
	Name     string
	Frames   []Rect        // source rectangles within the sheet texture
	Duration time.Duration // total clip duration; each frame gets an equal share
	Loop     bool
}

// frameDuration returns the display time of a single frame.
func (c *Clip) frameDuration() time.Duration {
	if len(c.Frames) == 0 {
		return 0
	}
	return c.Duration / time.Duration(len(c.Frames))
}

// SpriteSheet is an image atlas cut into equally sized frames, plus the
// named clips that play over it. A sheet is shared; each entity plays it
// through its own SpriteAnimation.
type SpriteSheet struct {
	Texture     TextureInfo
	FrameWidth  int
	FrameHeight int
	clips       map[string]*Clip
}

// NewSpriteSheet creates an empty sheet over the given texture.
func NewSpriteSheet(tex TextureInfo, frameW, frameH int) *SpriteSheet {
	return &SpriteSheet{
		Texture:     tex,
		FrameWidth:  frameW,
		FrameHeight: frameH,
		clips:       make(map[string]*Clip),
	}
}

// AddClip registers a clip. An existing clip with the same name is replaced.
func (s *SpriteSheet) AddClip(c *Clip) {
	s.clips[c.Name] = c
}

// Clip returns the clip with the given name.
func (s *SpriteSheet) Clip(name string) (*Clip, bool) {
	c, ok := s.clips[name]
	return c, ok
}

// NewAnimation returns a fresh player for this sheet, starting on the named
// clip. An unknown clip name leaves the animation on the sheet's first frame.
func (s *SpriteSheet) NewAnimation(clip string) *SpriteAnimation {
	a := &SpriteAnimation{sheet: s}
	a.Play(clip)
	return a
}

// --- JSON structure types ---

type jsonCell struct {
	Row    int `json:"Row"`
	Column int `json:"Column"`
}

type jsonClip struct {
	StartFrame jsonCell `json:"StartFrame"`
	EndFrame   jsonCell `json:"EndFrame"`
	DurationMs int      `json:"DurationMs"`
	Loop       bool     `json:"Loop"`
}

type jsonSheet struct {
	FileName    string              `json:"FileName"`
	FrameWidth  int                 `json:"FrameWidth"`
	FrameHeight int                 `json:"FrameHeight"`
	Animations  map[string]jsonClip `json:"Animations"`
}

// ParseSpriteSheet parses a sprite sheet description. The image named by
// FileName must already be loaded as tex. Frames run row-major from
// StartFrame to EndFrame inclusive.
func ParseSpriteSheet(jsonData []byte, tex TextureInfo) (*SpriteSheet, error) {
	var js jsonSheet
	if err := json.Unmarshal(jsonData, &js); err != nil {
		return nil, fmt.Errorf("adventure: failed to parse sprite sheet JSON: %w", err)
	}
	return buildSpriteSheet(js, tex)
}

func buildSpriteSheet(js jsonSheet, tex TextureInfo) (*SpriteSheet, error) {
	if js.FrameWidth <= 0 || js.FrameHeight <= 0 {
		return nil, fmt.Errorf("adventure: sprite sheet %q: invalid frame size %dx%d", js.FileName, js.FrameWidth, js.FrameHeight)
	}
	sheet := NewSpriteSheet(tex, js.FrameWidth, js.FrameHeight)
	cols := tex.Width / js.FrameWidth
	if cols <= 0 {
		cols = 1
	}
	for name, jc := range js.Animations {
		start := jc.StartFrame.Row*cols + jc.StartFrame.Column
		end := jc.EndFrame.Row*cols + jc.EndFrame.Column
		if end < start {
			return nil, fmt.Errorf("adventure: sprite sheet %q: clip %q ends before it starts", js.FileName, name)
		}
		clip := &Clip{
			Name:     name,
			Duration: time.Duration(jc.DurationMs) * time.Millisecond,
			Loop:     jc.Loop,
		}
		for i := start; i <= end; i++ {
			clip.Frames = append(clip.Frames, Rect{
				X:      (i % cols) * js.FrameWidth,
				Y:      (i / cols) * js.FrameHeight,
				Width:  js.FrameWidth,
				Height: js.FrameHeight,
			})
		}
		sheet.AddClip(clip)
	}
	return sheet, nil
}

// SingleFrameSheet wraps a whole texture as a one-frame, one-clip sheet.
// Used for static images such as pickups.
func SingleFrameSheet(tex TextureInfo, clip string) *SpriteSheet {
	s := NewSpriteSheet(tex, tex.Width, tex.Height)
	s.AddClip(&Clip{
		Name:   clip,
		Frames: []Rect{{Width: tex.Width, Height: tex.Height}},
		Loop:   true,
	})
	return s
}

// LoadSpriteSheet reads a sheet description from fsys and loads the image it
// names (relative to the description's directory) through the loader.
func LoadSpriteSheet(fsys fs.FS, name string, textures *TextureLoader) (*SpriteSheet, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("adventure: read sprite sheet %s: %w", name, err)
	}
	var js jsonSheet
	if err := json.Unmarshal(data, &js); err != nil {
		return nil, fmt.Errorf("adventure: failed to parse sprite sheet %s: %w", name, err)
	}
	tex, err := textures.Load(path.Join(path.Dir(name), js.FileName))
	if err != nil {
		return nil, err
	}
	return buildSpriteSheet(js, tex)
}

// SpriteAnimation plays clips of a shared SpriteSheet. It advances by
// elapsed time and exposes the current source rectangle for rendering.
type SpriteAnimation struct {
	sheet    *SpriteSheet
	clip     *Clip
	elapsed  time.Duration
	finished bool
}

// Play switches to the named clip. Playing the clip that is already active
// does not restart it. Returns false if the sheet has no such clip.
func (a *SpriteAnimation) Play(name string) bool {
	if a.clip != nil && a.clip.Name == name {
		return true
	}
	c, ok := a.sheet.clips[name]
	if !ok {
		return false
	}
	a.clip = c
	a.elapsed = 0
	a.finished = false
	return true
}

// Restart rewinds the active clip to its first frame.
func (a *SpriteAnimation) Restart() {
	a.elapsed = 0
	a.finished = false
}

// Update advances the animation by dt.
func (a *SpriteAnimation) Update(dt time.Duration) {
	if a.clip == nil || a.finished || dt <= 0 {
		return
	}
	a.elapsed += dt
	if a.clip.Duration <= 0 {
		return
	}
	if a.clip.Loop {
		a.elapsed %= a.clip.Duration
		return
	}
	if a.elapsed >= a.clip.Duration {
		a.elapsed = a.clip.Duration
		a.finished = true
	}
}

// Frame returns the index of the current frame within the active clip.
func (a *SpriteAnimation) Frame() int {
	if a.clip == nil || len(a.clip.Frames) == 0 {
		return 0
	}
	fd := a.clip.frameDuration()
	if fd <= 0 {
		return 0
	}
	i := int(a.elapsed / fd)
	if i >= len(a.clip.Frames) {
		i = len(a.clip.Frames) - 1
	}
	return i
}

// SourceRect returns the sheet rectangle of the current frame.
func (a *SpriteAnimation) SourceRect() Rect {
	if a.clip == nil || len(a.clip.Frames) == 0 {
		return Rect{Width: a.sheet.FrameWidth, Height: a.sheet.FrameHeight}
	}
	return a.clip.Frames[a.Frame()]
}

// Texture returns the sheet texture.
func (a *SpriteAnimation) Texture() TextureID {
	return a.sheet.Texture.ID
}

// ClipName returns the active clip's name, or "" if none is playing.
func (a *SpriteAnimation) ClipName() string {
	if a.clip == nil {
		return ""
	}
	return a.clip.Name
}

// Finished reports whether a non-looping clip has played to its end.
func (a *SpriteAnimation) Finished() bool {
	return a.finished
}

// Draw renders the current frame with its top-left corner at pos.
func (a *SpriteAnimation) Draw(r Renderer, pos Point, tint Color) {
	src := a.SourceRect()
	r.DrawTexture(a.Texture(), src, Rect{X: pos.X, Y: pos.Y, Width: src.Width, Height: src.Height}, tint)
}
