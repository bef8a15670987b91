package gamemap

// Size is a width and height pair, in tiles or pixels depending on
// context.
type Size struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Point is a coordinate pair, in tiles or pixels depending on context.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// PaletteRef names a palette owned by something other than the map, such
// as a game-wide graphics file.
type PaletteRef struct {
	ID string
}

// Map is the root entity describing one game level. It is created by a
// format handler's Parse; afterwards callers may adjust attribute values
// but the structure itself belongs to the handler.
type Map struct {
	// Metadata holds free-form descriptive key/value info.
	Metadata map[string]string

	// Attributes are the map-wide settings of the format, keyed by
	// attribute id.
	Attributes map[string]*Attribute

	// ItemAttributes is the schema for per-item values; items reference
	// it through their AttributeValues.
	ItemAttributes map[string]*Attribute

	// Palette references a shared palette. PaletteSupported
	// distinguishes a format with no palette concept (false, nil) from
	// one that supports a palette which is currently unset (true, nil).
	Palette          *PaletteRef
	PaletteSupported bool
}

// BackgroundMode selects how the area behind all layers is filled.
type BackgroundMode int

const (
	BackgroundNone BackgroundMode = iota
	BackgroundImageCentered
	BackgroundImageTiled
	BackgroundSolidColor
)

// Background describes the attachment behind the furthest-back layer.
type Background struct {
	Mode BackgroundMode
	// ImageCode identifies the backdrop image for the image modes; its
	// meaning is format-defined.
	ImageCode int
	// Color is the RGB fill for BackgroundSolidColor.
	Color [3]byte
}

// Map2D is a map with a two-dimensional layout: a viewport, a background
// and an ordered sequence of layers, the first being furthest back.
type Map2D struct {
	Map

	// Viewport is the pixel area visible in-game.
	Viewport Size

	Background Background

	// MapSize is the tile-grid size shared by every layer that does not
	// set its own, or nil when each layer defines its size itself.
	MapSize *Size

	// TileSize is the grid cell size in pixels shared by every layer
	// that does not set its own.
	TileSize *Size

	Layers []Layer
}

// TiledLayerAt returns the tiled layer at index i, or nil when the index
// is out of range or the layer is not tiled.
func (m *Map2D) TiledLayerAt(i int) *TiledLayer {
	if i < 0 || i >= len(m.Layers) {
		return nil
	}
	return m.Layers[i].Tiled
}

// ListLayerAt returns the list layer at index i, or nil when the index is
// out of range or the layer is not a list.
func (m *Map2D) ListLayerAt(i int) *ListLayer {
	if i < 0 || i >= len(m.Layers) {
		return nil
	}
	return m.Layers[i].List
}

// SetItemValue stores a per-item value after validating it against the
// map's ItemAttributes schema.
func (m *Map) SetItemValue(it *Item, id string, v any) error {
	a, ok := m.ItemAttributes[id]
	if err := checkKnown(id, ok); err != nil {
		return err
	}
	if err := a.Check(v); err != nil {
		return err
	}
	if it.AttributeValues == nil {
		it.AttributeValues = make(map[string]any)
	}
	it.AttributeValues[id] = v
	return nil
}
