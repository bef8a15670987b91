/*
Package ddave implements the Dangerous Dave level format.

Two file sizes exist: a 70 byte title screen holding a bare 10 by 7 tile
grid, and a 1280 byte level holding a 256 byte monster path region, a 100
by 10 tile grid and 24 bytes of padding. A level may carry a separate
monster file of four fixed-stride records; the patrol path in the main
file is shared by every monster.
*/
package ddave

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/camoto-project/gamemap"
)

const (
	titleSize   = 70
	titleWidth  = 10
	titleHeight = 7

	levelSize   = 1280
	levelWidth  = 100
	levelHeight = 10
	pathRegion  = 256
	levelPad    = levelSize - pathRegion - levelWidth*levelHeight

	maxTileCode = 0xff

	viewportX = 320
	viewportY = 160
	tileSide  = 16

	suppEnemies = "enemies"
)

var (
	errSize      = errors.New("ddave: file size does not match any Dangerous Dave level")
	errDims      = errors.New("ddave: map size is not a Dangerous Dave size")
	errTileLayer = errors.New("ddave: tile layer missing")
	errListLayer = errors.New("ddave: monster layer missing")
)

type handler struct{}

func init() {
	gamemap.Register(handler{})
}

func (handler) Metadata() gamemap.Metadata {
	return gamemap.Metadata{
		ID:    "map-ddave",
		Title: "Dangerous Dave level",
		Games: []string{"Dangerous Dave"},
	}
}

// Supps derives the monster filename for full-size levels by swapping the
// extension for ".mon". The synthesized name is lowercased; title screens
// have no supplementary files.
func (handler) Supps(filename string, main []byte) map[string]string {
	if len(main) == titleSize {
		return nil
	}
	name := strings.TrimSuffix(filename, filepath.Ext(filename)) + ".mon"
	return map[string]string{suppEnemies: strings.ToLower(name)}
}

func (handler) Parse(content gamemap.Content) (*gamemap.Map2D, error) {
	main := content[gamemap.MainFile]
	switch len(main) {
	case titleSize:
		tiles, err := decodeTiles(main, titleWidth, titleHeight)
		if err != nil {
			return nil, err
		}
		return newMap(titleWidth, titleHeight, tiles, nil), nil
	case levelSize:
		return parseLevel(main, content[suppEnemies])
	default:
		return nil, fmt.Errorf("%w: %d bytes", errSize, len(main))
	}
}

func parseLevel(main, enemies []byte) (*gamemap.Map2D, error) {
	tiles, err := decodeTiles(main[pathRegion:pathRegion+levelWidth*levelHeight], levelWidth, levelHeight)
	if err != nil {
		return nil, err
	}

	// The level always carries one item per monster slot; a slot the
	// monster file leaves disabled is still present so its record, and
	// the path region, survive a round trip. The game stores a single
	// patrol path for all monsters, so every slot aliases the one Path
	// and an edit through any slot is an edit of the shared path.
	path := decodePath(main[:pathRegion])
	items := make([]*gamemap.Item, enemySlots)
	for i := range items {
		items[i] = &gamemap.Item{
			Code: i,
			Path: path,
			AttributeValues: map[string]any{
				"enabled":    false,
				"pathOffset": 0,
				"calmness":   0,
			},
		}
	}
	if enemies != nil {
		if err := decodeEnemies(enemies, items); err != nil {
			return nil, err
		}
	}

	return newMap(levelWidth, levelHeight, tiles, items), nil
}

func decodeTiles(buf []byte, width, height int) ([][]gamemap.TileCode, error) {
	if len(buf) < width*height {
		return nil, fmt.Errorf("%w: %d tile bytes for a %d x %d grid", errSize, len(buf), width, height)
	}
	tiles := make([][]gamemap.TileCode, height)
	for y := 0; y < height; y++ {
		row := make([]gamemap.TileCode, width)
		for x := 0; x < width; x++ {
			if v := buf[y*width+x]; v != 0 {
				row[x] = gamemap.TileCode(v)
			} else {
				row[x] = gamemap.NoTile
			}
		}
		tiles[y] = row
	}
	return tiles, nil
}

func encodeTiles(dst []byte, tiles [][]gamemap.TileCode, width, height int) {
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := tiles[y][x]
			if c == gamemap.NoTile {
				c = 0
			}
			dst[y*width+x] = byte(c)
		}
	}
}

func newMap(width, height int, tiles [][]gamemap.TileCode, items []*gamemap.Item) *gamemap.Map2D {
	mapSize := gamemap.Size{X: width, Y: height}
	tileSize := gamemap.Size{X: tileSide, Y: tileSide}
	if items == nil {
		items = []*gamemap.Item{}
	}

	return &gamemap.Map2D{
		Map: gamemap.Map{
			Metadata: map[string]string{
				"format": "Dangerous Dave level",
			},
			Attributes: map[string]*gamemap.Attribute{},
			ItemAttributes: map[string]*gamemap.Attribute{
				"enabled": {
					Title: "Monster enabled", Type: gamemap.AttrBool,
				},
				"pathOffset": {
					Title: "Path start offset", Type: gamemap.AttrInt,
					RangeMin: 0, RangeMax: pathRegion - 1,
				},
				"calmness": {
					Title: "Calmness", Type: gamemap.AttrInt,
					RangeMin: 0, RangeMax: 255,
				},
			},
		},
		Viewport: gamemap.Size{X: viewportX, Y: viewportY},
		Background: gamemap.Background{
			Mode:  gamemap.BackgroundSolidColor,
			Color: [3]byte{0, 0, 0},
		},
		MapSize:  &mapSize,
		TileSize: &tileSize,
		Layers: []gamemap.Layer{
			{Tiled: &gamemap.TiledLayer{
				LayerInfo:    gamemap.LayerInfo{Title: "Tiles"},
				Tiles:        tiles,
				MinLayerSize: gamemap.Size{X: titleWidth, Y: titleHeight},
				MaxLayerSize: gamemap.Size{X: levelWidth, Y: levelHeight},
				MinTileSize:  tileSize,
				MaxTileSize:  tileSize,
				Permitted:    permitted,
			}},
			{List: &gamemap.ListLayer{
				LayerInfo: gamemap.LayerInfo{Title: "Monsters"},
				Items:     items,
			}},
		},
	}
}

func permitted(_, _ int, code gamemap.TileCode) gamemap.Permission {
	if code == gamemap.NoTile || (code >= 1 && code <= maxTileCode) {
		return gamemap.Permission{Valid: true}
	}
	return gamemap.Permission{
		Reason: fmt.Sprintf("tile code %v outside 1..%d", code, maxTileCode),
	}
}

// layersOf resolves the two layers every Dangerous Dave map carries: the
// tile grid at index 0 and the monster list at index 1.
func layersOf(m *gamemap.Map2D) (*gamemap.TiledLayer, *gamemap.ListLayer, error) {
	tl := m.TiledLayerAt(0)
	if tl == nil {
		return nil, nil, errTileLayer
	}
	ll := m.ListLayerAt(1)
	if ll == nil {
		return nil, nil, errListLayer
	}
	return tl, ll, nil
}

func (handler) Generate(m *gamemap.Map2D) (gamemap.Content, []string, error) {
	tl, ll, err := layersOf(m)
	if err != nil {
		return nil, nil, err
	}
	if m.MapSize == nil {
		return nil, nil, errDims
	}

	switch *m.MapSize {
	case gamemap.Size{X: titleWidth, Y: titleHeight}:
		buf := make([]byte, titleSize)
		encodeTiles(buf, tl.Tiles, titleWidth, titleHeight)
		return gamemap.Content{gamemap.MainFile: buf}, nil, nil

	case gamemap.Size{X: levelWidth, Y: levelHeight}:
		buf := make([]byte, levelSize)
		notes, err := encodePath(buf[:pathRegion], sharedPath(ll))
		if err != nil {
			return nil, nil, err
		}
		encodeTiles(buf[pathRegion:], tl.Tiles, levelWidth, levelHeight)
		// Trailing padding stays zero.

		enemies, err := encodeEnemies(ll.Items)
		if err != nil {
			return nil, nil, err
		}
		return gamemap.Content{gamemap.MainFile: buf, suppEnemies: enemies}, notes, nil

	default:
		return nil, nil, fmt.Errorf("%w: %d x %d", errDims, m.MapSize.X, m.MapSize.Y)
	}
}

// sharedPath returns the patrol path carried by the monster slots, or nil
// when the layer is empty.
func sharedPath(ll *gamemap.ListLayer) *gamemap.Path {
	for _, it := range ll.Items {
		if it.Path != nil {
			return it.Path
		}
	}
	return nil
}

// QueryResize clamps to the nearer of the two fixed grids.
func (handler) QueryResize(_ *gamemap.Map2D, want gamemap.Size) gamemap.Size {
	if want.X <= titleWidth && want.Y <= titleHeight {
		return gamemap.Size{X: titleWidth, Y: titleHeight}
	}
	return gamemap.Size{X: levelWidth, Y: levelHeight}
}

// Resize is unsupported; both file layouts are fixed grids.
func (handler) Resize(*gamemap.Map2D, gamemap.Size) error {
	return gamemap.ErrUnsupported
}
