/*
Package cosmo implements the Cosmo's Cosmic Adventure level format.

A level is a single self-contained file: a six byte header, a variable
length chunk of actor records and a fixed budget of 32764 16-bit tile
codes. The header packs six map-wide settings into one 16-bit flags
field, and the map height is not stored at all; it is derived by dividing
the tile budget by the stored width.
*/
package cosmo

import (
	"errors"
	"fmt"

	"github.com/camoto-project/gamemap"
	"github.com/camoto-project/gamemap/record"
)

const (
	headerLen = 6

	// The tile region always holds exactly this many 16-bit codes,
	// regardless of the map width. Whatever the width × height grid
	// does not cover is slack.
	tileWords = 32764
	tileBytes = tileWords * 2

	// Each actor record is three 16-bit words; the header counts the
	// chunk in words, so the record count is the stored length over
	// three.
	actorWords = 3

	minWidth = 32
	maxWidth = 2048

	viewportX = 304
	viewportY = 144
	tileSide  = 8
)

var headerSchema = record.Schema{
	{Name: "flags", Kind: record.U16},
	{Name: "mapWidth", Kind: record.U16},
	{Name: "actorLen", Kind: record.U16},
}

var actorSchema = record.Schema{
	{Name: "type", Kind: record.U16},
	{Name: "x", Kind: record.U16},
	{Name: "y", Kind: record.U16},
}

var (
	errSize       = errors.New("cosmo: file size does not match any Cosmo level")
	errWidth      = errors.New("cosmo: bad map width")
	errTileLayer  = errors.New("cosmo: tile layer missing")
	errActorLayer = errors.New("cosmo: actor layer missing")
	errMapSize    = errors.New("cosmo: map size unset")
)

type handler struct{}

func init() {
	gamemap.Register(handler{})
}

func (handler) Metadata() gamemap.Metadata {
	return gamemap.Metadata{
		ID:    "map-cosmo",
		Title: "Cosmo's Cosmic Adventure level",
		Games: []string{"Cosmo's Cosmic Adventure"},
	}
}

// Supps returns nil; a Cosmo level is fully contained in one file.
func (handler) Supps(string, []byte) map[string]string {
	return nil
}

func (handler) Parse(content gamemap.Content) (*gamemap.Map2D, error) {
	main := content[gamemap.MainFile]
	if len(main) < headerLen+tileBytes {
		return nil, fmt.Errorf("%w: %d bytes", errSize, len(main))
	}

	c := record.New(main)
	hdr, err := c.ReadRecord(headerSchema)
	if err != nil {
		return nil, err
	}

	actorLen := int(hdr["actorLen"])
	if actorLen%actorWords != 0 || len(main) != headerLen+actorLen*2+tileBytes {
		return nil, fmt.Errorf("%w: %d bytes for actor chunk of %d words", errSize, len(main), actorLen)
	}

	width := int(hdr["mapWidth"])
	if width < 1 || width > tileWords {
		return nil, fmt.Errorf("%w: %d", errWidth, width)
	}
	height := tileWords / width

	items := make([]*gamemap.Item, 0, actorLen/actorWords)
	for i := 0; i < actorLen/actorWords; i++ {
		rec, err := c.ReadRecord(actorSchema)
		if err != nil {
			return nil, err
		}
		items = append(items, &gamemap.Item{
			Pos:  gamemap.Point{X: int(rec["x"]), Y: int(rec["y"])},
			Code: int(rec["type"]),
		})
	}

	tiles := make([][]gamemap.TileCode, height)
	for y := 0; y < height; y++ {
		row := make([]gamemap.TileCode, width)
		for x := 0; x < width; x++ {
			v, err := c.ReadU16()
			if err != nil {
				return nil, err
			}
			row[x] = tileFromDisk(v)
		}
		tiles[y] = row
	}
	// Slack words of the fixed tile budget beyond the grid.
	if err := c.Skip((tileWords - width*height) * 2); err != nil {
		return nil, err
	}

	f := unpackFlags(uint16(hdr["flags"]))
	return newMap(f, width, height, tiles, items), nil
}

func newMap(f flags, width, height int, tiles [][]gamemap.TileCode, items []*gamemap.Item) *gamemap.Map2D {
	mapSize := gamemap.Size{X: width, Y: height}
	tileSize := gamemap.Size{X: tileSide, Y: tileSide}

	return &gamemap.Map2D{
		Map: gamemap.Map{
			Metadata: map[string]string{
				"format": "Cosmo's Cosmic Adventure level",
			},
			Attributes: f.attributes(),
		},
		Viewport: gamemap.Size{X: viewportX, Y: viewportY},
		Background: gamemap.Background{
			Mode:      gamemap.BackgroundImageTiled,
			ImageCode: f.backdrop,
		},
		MapSize:  &mapSize,
		TileSize: &tileSize,
		Layers: []gamemap.Layer{
			{Tiled: &gamemap.TiledLayer{
				LayerInfo:    gamemap.LayerInfo{Title: "Tiles"},
				Tiles:        tiles,
				MinLayerSize: gamemap.Size{X: minWidth, Y: tileWords / maxWidth},
				MaxLayerSize: gamemap.Size{X: maxWidth, Y: tileWords / minWidth},
				MinTileSize:  tileSize,
				MaxTileSize:  tileSize,
				Permitted:    permitted,
			}},
			{List: &gamemap.ListLayer{
				LayerInfo: gamemap.LayerInfo{Title: "Actors"},
				Items:     items,
			}},
		},
	}
}

// layersOf resolves the two layers every Cosmo map must carry: the tile
// grid at index 0 and the actor list at index 1.
func layersOf(m *gamemap.Map2D) (*gamemap.TiledLayer, *gamemap.ListLayer, error) {
	tl := m.TiledLayerAt(0)
	if tl == nil {
		return nil, nil, errTileLayer
	}
	al := m.ListLayerAt(1)
	if al == nil {
		return nil, nil, errActorLayer
	}
	return tl, al, nil
}

func (handler) Generate(m *gamemap.Map2D) (gamemap.Content, []string, error) {
	tl, al, err := layersOf(m)
	if err != nil {
		return nil, nil, err
	}
	if m.MapSize == nil {
		return nil, nil, errMapSize
	}
	width, height := m.MapSize.X, m.MapSize.Y

	actorLen := len(al.Items) * actorWords
	buf := make([]byte, headerLen+actorLen*2+tileBytes)
	c := record.New(buf)

	err = c.WriteRecord(headerSchema, record.Record{
		"flags":    int64(flagsFromMap(m).pack()),
		"mapWidth": int64(width),
		"actorLen": int64(actorLen),
	})
	if err != nil {
		return nil, nil, err
	}

	for _, it := range al.Items {
		err := c.WriteRecord(actorSchema, record.Record{
			"type": int64(it.Code),
			"x":    int64(it.Pos.X),
			"y":    int64(it.Pos.Y),
		})
		if err != nil {
			return nil, nil, err
		}
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if err := c.WriteU16(tileToDisk(tl.Tiles[y][x])); err != nil {
				return nil, nil, err
			}
		}
	}
	// Slack words stay zero.

	return gamemap.Content{gamemap.MainFile: buf}, nil, nil
}

// QueryResize clamps the wanted width to the permitted range; the height
// always follows from the fixed tile budget.
func (handler) QueryResize(_ *gamemap.Map2D, want gamemap.Size) gamemap.Size {
	w := want.X
	if w < minWidth {
		w = minWidth
	}
	if w > maxWidth {
		w = maxWidth
	}
	return gamemap.Size{X: w, Y: tileWords / w}
}

// Resize regrids the tile layer to the given size, preserving the
// overlapping region and filling new cells with NoTile.
func (h handler) Resize(m *gamemap.Map2D, want gamemap.Size) error {
	tl, _, err := layersOf(m)
	if err != nil {
		return err
	}
	size := h.QueryResize(m, want)

	tiles := make([][]gamemap.TileCode, size.Y)
	for y := range tiles {
		row := make([]gamemap.TileCode, size.X)
		for x := range row {
			row[x] = gamemap.NoTile
			if y < len(tl.Tiles) && x < len(tl.Tiles[y]) {
				row[x] = tl.Tiles[y][x]
			}
		}
		tiles[y] = row
	}

	tl.Tiles = tiles
	m.MapSize = &size
	return nil
}
