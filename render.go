package adventure

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// TextureID is a renderer-assigned handle for a loaded image.
// TextureWhite (0) is always a 1x1 white pixel.
type TextureID int

// TextureWhite is the built-in 1x1 white texture, used for solid-color quads.
const TextureWhite TextureID = 0

// TextureInfo describes a loaded texture.
type TextureInfo struct {
	ID     TextureID
	Width  int
	Height int
}

// Renderer is the drawing collaborator. The core issues draw calls in world
// space once per frame, terrain first, entities next and the player last.
type Renderer interface {
	// LoadTexture registers an image and returns its handle.
	LoadTexture(img image.Image) TextureInfo
	// DrawTexture draws src of tex into the world-space rectangle dst.
	DrawTexture(tex TextureID, src, dst Rect, tint Color)
	// CameraLookAt centers the camera on a world position.
	CameraLookAt(x, y int)
	// CenterCameraOnScreen makes world coordinates equal screen coordinates.
	CenterCameraOnScreen()
	// SetWorldBounds clamps the camera to the given world rectangle.
	SetWorldBounds(bounds Rect)
	// ViewSize returns the screen size in pixels.
	ViewSize() (w, h int)
	// VisibleBounds returns the world rectangle currently on screen.
	VisibleBounds() Rect
	// ScreenToWorld converts a screen position to world coordinates.
	ScreenToWorld(x, y int) Point
	// Clear starts a new frame filled with c.
	Clear(c Color)
	// Present publishes the frame recorded since Clear.
	Present()
}

// RenderCommand is a single draw instruction recorded during a frame.
// Dst is in screen space.
type RenderCommand struct {
	Texture TextureID
	Src     Rect
	Dst     Rect
	Color   Color
}

// texture is a registered image. The GPU image is created lazily on first
// submission so that loading works without a running game loop.
type texture struct {
	src image.Image
	img *ebiten.Image
}

// CommandRenderer implements Renderer by recording draw commands through a
// Camera. Submit replays the last presented frame onto an ebiten image.
type CommandRenderer struct {
	camera     *Camera
	textures   []texture
	commands   []RenderCommand
	presented  []RenderCommand
	clearColor Color
	debug      bool
	log        *zap.Logger
}

const defaultCommandCap = 1024

// NewCommandRenderer creates a renderer for a screen of the given size.
func NewCommandRenderer(cfg Config, log *zap.Logger) *CommandRenderer {
	if log == nil {
		log = zap.NewNop()
	}
	r := &CommandRenderer{
		camera:     NewCamera(Rect{Width: cfg.Width, Height: cfg.Height}),
		commands:   make([]RenderCommand, 0, defaultCommandCap),
		presented:  make([]RenderCommand, 0, defaultCommandCap),
		clearColor: ColorBlack,
		debug:      cfg.Debug,
		log:        log,
	}
	// Slot 0: white pixel.
	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	white.Set(0, 0, color.White)
	r.textures = append(r.textures, texture{src: white})
	return r
}

// Camera returns the renderer's camera.
func (r *CommandRenderer) Camera() *Camera {
	return r.camera
}

// LoadTexture registers img and returns its handle.
func (r *CommandRenderer) LoadTexture(img image.Image) TextureInfo {
	id := TextureID(len(r.textures))
	r.textures = append(r.textures, texture{src: img})
	b := img.Bounds()
	return TextureInfo{ID: id, Width: b.Dx(), Height: b.Dy()}
}

// DrawTexture records a draw of src from tex into the world rectangle dst.
func (r *CommandRenderer) DrawTexture(tex TextureID, src, dst Rect, tint Color) {
	if dst.Empty() {
		return
	}
	r.commands = append(r.commands, RenderCommand{
		Texture: tex,
		Src:     src,
		Dst:     r.camera.WorldRectToScreen(dst),
		Color:   tint,
	})
}

// CameraLookAt centers the camera on (x, y).
func (r *CommandRenderer) CameraLookAt(x, y int) {
	r.camera.LookAt(float64(x), float64(y))
}

// CenterCameraOnScreen maps world coordinates 1:1 onto the screen.
func (r *CommandRenderer) CenterCameraOnScreen() {
	r.camera.CenterOnScreen()
}

// SetWorldBounds clamps the camera to bounds.
func (r *CommandRenderer) SetWorldBounds(bounds Rect) {
	r.camera.SetBounds(bounds)
}

// ViewSize returns the viewport size.
func (r *CommandRenderer) ViewSize() (int, int) {
	return r.camera.Viewport.Width, r.camera.Viewport.Height
}

// VisibleBounds returns the world rectangle on screen.
func (r *CommandRenderer) VisibleBounds() Rect {
	return r.camera.VisibleBounds()
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (r *CommandRenderer) ScreenToWorld(x, y int) Point {
	wx, wy := r.camera.ScreenToWorld(float64(x), float64(y))
	return Point{int(wx), int(wy)}
}

// Clear discards the commands recorded so far and sets the clear color.
func (r *CommandRenderer) Clear(c Color) {
	r.commands = r.commands[:0]
	r.clearColor = c
}

// Present publishes the recorded frame for Submit.
func (r *CommandRenderer) Present() {
	r.commands, r.presented = r.presented[:0], r.commands
}

// Commands returns the last presented frame. The returned slice MUST NOT be
// mutated.
func (r *CommandRenderer) Commands() []RenderCommand {
	return r.presented
}

// Submit draws the last presented frame onto target.
func (r *CommandRenderer) Submit(target *ebiten.Image) {
	target.Fill(r.clearColor.toRGBA())

	var op ebiten.DrawImageOptions
	for i := range r.presented {
		r.submitCommand(target, &r.presented[i], &op)
	}
}

// submitCommand draws a single command using DrawImage.
func (r *CommandRenderer) submitCommand(target *ebiten.Image, cmd *RenderCommand, op *ebiten.DrawImageOptions) {
	src := cmd.Src
	page := r.page(cmd.Texture)
	if page == nil {
		if r.debug {
			r.log.Debug("texture not found, using magenta placeholder", zap.Int("texture", int(cmd.Texture)))
		}
		page = ensureMagentaImage()
		src = Rect{Width: 1, Height: 1}
	}
	if src.Empty() {
		b := page.Bounds()
		src = Rect{Width: b.Dx(), Height: b.Dy()}
	}
	subImg := page.SubImage(src.image()).(*ebiten.Image)

	op.GeoM.Reset()
	op.GeoM.Scale(float64(cmd.Dst.Width)/float64(src.Width), float64(cmd.Dst.Height)/float64(src.Height))
	op.GeoM.Translate(float64(cmd.Dst.X), float64(cmd.Dst.Y))

	// Apply premultiplied color scale
	op.ColorScale.Reset()
	a := float32(cmd.Color.A)
	op.ColorScale.Scale(float32(cmd.Color.R)*a, float32(cmd.Color.G)*a, float32(cmd.Color.B)*a, a)

	target.DrawImage(subImg, op)
}

// page resolves a handle to its GPU image, creating it on first use.
func (r *CommandRenderer) page(id TextureID) *ebiten.Image {
	if id < 0 || int(id) >= len(r.textures) {
		return nil
	}
	t := &r.textures[id]
	if t.img == nil {
		t.img = ebiten.NewImageFromImage(t.src)
	}
	return t.img
}

// magentaImage stands in for unknown texture ids. Drawing is single-threaded.
var magentaImage *ebiten.Image

func ensureMagentaImage() *ebiten.Image {
	if magentaImage == nil {
		magentaImage = ebiten.NewImage(1, 1)
		magentaImage.Fill(color.RGBA{R: 255, G: 0, B: 255, A: 255})
	}
	return magentaImage
}

// toRGBA converts a Color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
