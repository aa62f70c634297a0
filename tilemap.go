package adventure

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// GID flag bits (same convention as Tiled TMX format).
const (
	tileFlipH    uint32 = 1 << 31 // horizontal flip
	tileFlipV    uint32 = 1 << 30 // vertical flip
	tileFlipD    uint32 = 1 << 29 // diagonal flip (90° rotation)
	tileFlagMask uint32 = tileFlipH | tileFlipV | tileFlipD
)

var (
	// ErrInvalidLevel reports a map or tileset that cannot be played:
	// malformed JSON, or missing map or tile dimensions.
	ErrInvalidLevel = errors.New("adventure: invalid level")
	// ErrMissingTile reports a tileset entry without a usable image.
	ErrMissingTile = errors.New("adventure: missing tile")
)

// Tile is one catalog entry: the texture a GID draws with and its pixel size.
type Tile struct {
	GID     uint32
	Image   string
	Texture TextureID
	Width   int
	Height  int
}

// TileLayer is a single row-major grid of GIDs. 0 means empty.
type TileLayer struct {
	Name   string
	Width  int
	Height int
	Data   []uint32
}

// Terrain is the immutable tile world produced by world setup.
type Terrain struct {
	Width      int // map width in tiles
	Height     int // map height in tiles
	TileWidth  int
	TileHeight int
	Layers     []TileLayer
	Tiles      map[uint32]Tile // keyed by GID (firstgid + local id)
}

// PixelBounds returns the world rectangle covered by the map.
func (t *Terrain) PixelBounds() Rect {
	return Rect{Width: t.Width * t.TileWidth, Height: t.Height * t.TileHeight}
}

// TileAt returns the catalog entry at the given cell of a layer.
func (t *Terrain) TileAt(layer, col, row int) (Tile, bool) {
	if layer < 0 || layer >= len(t.Layers) {
		return Tile{}, false
	}
	l := &t.Layers[layer]
	if col < 0 || row < 0 || col >= l.Width || row >= l.Height {
		return Tile{}, false
	}
	i := row*l.Width + col
	if i >= len(l.Data) {
		return Tile{}, false
	}
	gid := l.Data[i]
	if gid == 0 {
		return Tile{}, false
	}
	tile, ok := t.Tiles[gid]
	return tile, ok
}

// Checksum fingerprints the geometry: map and tile dimensions, every layer's
// cells and every catalog entry's size. Texture handles are excluded since a
// reload assigns new ones.
func (t *Terrain) Checksum() uint64 {
	h := xxhash.New()
	var buf [4]byte
	put := func(v uint32) {
		binary.LittleEndian.PutUint32(buf[:], v)
		h.Write(buf[:])
	}
	put(uint32(t.Width))
	put(uint32(t.Height))
	put(uint32(t.TileWidth))
	put(uint32(t.TileHeight))
	for _, l := range t.Layers {
		h.WriteString(l.Name)
		put(uint32(l.Width))
		put(uint32(l.Height))
		for _, gid := range l.Data {
			put(gid)
		}
	}
	gids := make([]uint32, 0, len(t.Tiles))
	for gid := range t.Tiles {
		gids = append(gids, gid)
	}
	slices.Sort(gids)
	for _, gid := range gids {
		tile := t.Tiles[gid]
		put(gid)
		put(uint32(tile.Width))
		put(uint32(tile.Height))
	}
	return h.Sum64()
}

// Render draws every non-empty cell intersecting visible, layer by layer.
// Cells are placed on the map grid; each draws its full tile image.
func (t *Terrain) Render(r Renderer, visible Rect) {
	if t.TileWidth <= 0 || t.TileHeight <= 0 {
		return
	}
	for li := range t.Layers {
		l := &t.Layers[li]
		startCol, endCol := visibleSpan(visible.X, visible.Width, t.TileWidth, l.Width)
		startRow, endRow := visibleSpan(visible.Y, visible.Height, t.TileHeight, l.Height)
		for row := startRow; row < endRow; row++ {
			rowOffset := row * l.Width
			for col := startCol; col < endCol; col++ {
				i := rowOffset + col
				if i >= len(l.Data) || l.Data[i] == 0 {
					continue
				}
				tile, ok := t.Tiles[l.Data[i]]
				if !ok || tile.Width == 0 || tile.Height == 0 {
					continue
				}
				r.DrawTexture(tile.Texture,
					Rect{Width: tile.Width, Height: tile.Height},
					Rect{X: col * t.TileWidth, Y: row * t.TileHeight, Width: tile.Width, Height: tile.Height},
					ColorWhite)
			}
		}
	}
}

// visibleSpan returns the half-open cell range [start, end) covering the
// pixel span [pos, pos+size), clamped to [0, cells).
func visibleSpan(pos, size, cell, cells int) (int, int) {
	start := floorDiv(pos, cell)
	end := floorDiv(pos+size+cell-1, cell)
	return max(start, 0), min(end, cells)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// --- Tiled JSON ---

type tiledMap struct {
	Width      *int              `json:"width"`
	Height     *int              `json:"height"`
	TileWidth  *int              `json:"tilewidth"`
	TileHeight *int              `json:"tileheight"`
	Layers     []tiledLayer      `json:"layers"`
	TileSets   []tiledTileSetRef `json:"tilesets"`
}

type tiledLayer struct {
	Name   string   `json:"name"`
	Type   string   `json:"type"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Data   []uint32 `json:"data"`
}

type tiledTileSetRef struct {
	FirstGID uint32 `json:"firstgid"`
	Source   string `json:"source"`
	tiledTileSet
}

type tiledTileSet struct {
	Name  string      `json:"name"`
	Tiles []tiledTile `json:"tiles"`
}

type tiledTile struct {
	ID          *uint32 `json:"id"`
	Image       string  `json:"image"`
	ImageWidth  *int    `json:"imagewidth"`
	ImageHeight *int    `json:"imageheight"`
}

// LoadTerrain reads a Tiled JSON map and its tilesets from fsys and loads
// every tile image through textures. Tilesets may be external (.tsj) or
// embedded; image paths are relative to the file that names them.
func LoadTerrain(ctx context.Context, fsys fs.FS, name string, textures *TextureLoader) (*Terrain, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("adventure: read map %s: %w", name, err)
	}
	var tm tiledMap
	if err := json.Unmarshal(data, &tm); err != nil {
		return nil, fmt.Errorf("%w: parse map %s: %v", ErrInvalidLevel, name, err)
	}
	if tm.Width == nil || tm.Height == nil || *tm.Width <= 0 || *tm.Height <= 0 {
		return nil, fmt.Errorf("%w: %s: invalid level dimensions", ErrInvalidLevel, name)
	}
	if tm.TileWidth == nil || tm.TileHeight == nil || *tm.TileWidth <= 0 || *tm.TileHeight <= 0 {
		return nil, fmt.Errorf("%w: %s: invalid tile dimensions", ErrInvalidLevel, name)
	}

	t := &Terrain{
		Width:      *tm.Width,
		Height:     *tm.Height,
		TileWidth:  *tm.TileWidth,
		TileHeight: *tm.TileHeight,
		Tiles:      make(map[uint32]Tile),
	}
	for _, l := range tm.Layers {
		if l.Type != "" && l.Type != "tilelayer" {
			continue
		}
		w, h := l.Width, l.Height
		if w == 0 {
			w = t.Width
		}
		if h == 0 {
			h = t.Height
		}
		cells := make([]uint32, len(l.Data))
		for i, gid := range l.Data {
			cells[i] = gid &^ tileFlagMask
		}
		t.Layers = append(t.Layers, TileLayer{Name: l.Name, Width: w, Height: h, Data: cells})
	}

	mapDir := path.Dir(name)
	for _, ref := range tm.TileSets {
		ts := ref.tiledTileSet
		dir := mapDir
		if ref.Source != "" {
			src := path.Join(mapDir, ref.Source)
			tsData, err := fs.ReadFile(fsys, src)
			if err != nil {
				return nil, fmt.Errorf("adventure: read tileset %s: %w", src, err)
			}
			ts = tiledTileSet{}
			if err := json.Unmarshal(tsData, &ts); err != nil {
				return nil, fmt.Errorf("%w: parse tileset %s: %v", ErrInvalidLevel, src, err)
			}
			dir = path.Dir(src)
		}
		for _, tt := range ts.Tiles {
			if tt.ID == nil || tt.Image == "" {
				return nil, fmt.Errorf("%w: tileset %q: tile without id or image", ErrMissingTile, ts.Name)
			}
			if tt.ImageWidth == nil || tt.ImageHeight == nil || *tt.ImageWidth <= 0 || *tt.ImageHeight <= 0 {
				return nil, fmt.Errorf("%w: tileset %q: tile %d: invalid tile dimensions", ErrInvalidLevel, ts.Name, *tt.ID)
			}
			gid := ref.FirstGID + *tt.ID
			t.Tiles[gid] = Tile{
				GID:    gid,
				Image:  path.Join(dir, tt.Image),
				Width:  *tt.ImageWidth,
				Height: *tt.ImageHeight,
			}
		}
	}

	images := make([]string, 0, len(t.Tiles))
	for _, tile := range t.Tiles {
		images = append(images, tile.Image)
	}
	loaded, err := textures.LoadAll(ctx, images)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", ErrMissingTile, err)
		}
		return nil, err
	}
	for gid, tile := range t.Tiles {
		tile.Texture = loaded[tile.Image].ID
		t.Tiles[gid] = tile
	}
	return t, nil
}
