package adventure

import (
	"context"
	"fmt"
	"image"
	_ "image/png" // PNG decoder for asset images
	"io/fs"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
)

// TextureLoader decodes images from an asset filesystem and registers them
// with a Renderer, caching handles by path. Registration is sequential;
// only decoding runs in parallel.
type TextureLoader struct {
	fsys     fs.FS
	renderer Renderer
	cache    map[string]TextureInfo
}

// NewTextureLoader creates a loader reading from fsys.
func NewTextureLoader(fsys fs.FS, r Renderer) *TextureLoader {
	return &TextureLoader{fsys: fsys, renderer: r, cache: make(map[string]TextureInfo)}
}

// Load returns the texture for name, decoding and registering it on first use.
func (l *TextureLoader) Load(name string) (TextureInfo, error) {
	if info, ok := l.cache[name]; ok {
		return info, nil
	}
	img, err := decodeImage(l.fsys, name)
	if err != nil {
		return TextureInfo{}, err
	}
	info := l.renderer.LoadTexture(img)
	l.cache[name] = info
	return info, nil
}

// LoadAll decodes every uncached image in names concurrently, then registers
// them in sorted name order so handles are deterministic. The first decode
// error cancels the rest and is returned.
func (l *TextureLoader) LoadAll(ctx context.Context, names []string) (map[string]TextureInfo, error) {
	pending := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := l.cache[n]; !ok {
			pending = append(pending, n)
		}
	}
	slices.Sort(pending)
	pending = slices.Compact(pending)

	decoded := make([]image.Image, len(pending))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, name := range pending {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := decodeImage(l.fsys, name)
			if err != nil {
				return err
			}
			decoded[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, name := range pending {
		l.cache[name] = l.renderer.LoadTexture(decoded[i])
	}
	out := make(map[string]TextureInfo, len(names))
	for _, n := range names {
		out[n] = l.cache[n]
	}
	return out, nil
}

// Exists reports whether name is present in the asset filesystem.
func (l *TextureLoader) Exists(name string) bool {
	_, err := fs.Stat(l.fsys, name)
	return err == nil
}

func decodeImage(fsys fs.FS, name string) (image.Image, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("adventure: open image %s: %w", name, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("adventure: decode image %s: %w", name, err)
	}
	return img, nil
}
