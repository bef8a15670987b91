package gamemap

import "strconv"

// TileCode is an opaque identifier for what to draw at one grid cell.
// Codes are format-defined; a format with structured codes packs its
// fields into the integer. Two codes are the same tile exactly when the
// integers are equal, and String is stable for use as a display key.
type TileCode int

// NoTile marks an empty grid cell.
const NoTile TileCode = -1

func (c TileCode) String() string {
	if c == NoTile {
		return "-"
	}
	return strconv.Itoa(int(c))
}

// LayerInfo carries the fields shared by both layer variants.
type LayerInfo struct {
	Title string

	// LayerSize and TileSize override the map's MapSize and TileSize
	// when non-nil.
	LayerSize *Size
	TileSize  *Size

	// Offset displaces the layer from the map origin, in tiles.
	Offset Point
}

// Permission is the verdict of a tile placement query.
type Permission struct {
	Valid  bool
	Reason string
}

// TiledLayer is a dense grid of tile codes.
type TiledLayer struct {
	LayerInfo

	// Tiles is indexed [y][x]; NoTile marks an empty cell. Its
	// dimensions must equal the layer's effective size before the map
	// is generated; a mismatch is a limit issue, not a fault.
	Tiles [][]TileCode

	MinLayerSize, MaxLayerSize Size
	MinTileSize, MaxTileSize   Size

	// Permitted, when non-nil, answers IsPermittedAt. Implementations
	// must be cheap; editors call it on every cursor move.
	Permitted func(x, y int, code TileCode) Permission
}

// IsPermittedAt reports whether code may be placed at (x, y). A layer
// without a Permitted capability allows everything.
func (l *TiledLayer) IsPermittedAt(x, y int, code TileCode) Permission {
	if l.Permitted == nil {
		return Permission{Valid: true}
	}
	return l.Permitted(x, y, code)
}

// EffectiveSize resolves the layer's size against the owning map:
// the layer's own size when set, the map's otherwise.
func (l *LayerInfo) EffectiveSize(m *Map2D) Size {
	if l.LayerSize != nil {
		return *l.LayerSize
	}
	if m.MapSize != nil {
		return *m.MapSize
	}
	return Size{}
}

// ListLayer is an unbounded ordered collection of positioned items with
// no implicit grid shape.
type ListLayer struct {
	LayerInfo

	Items []*Item
}

// Layer is a tagged variant: exactly one of Tiled or List is non-nil.
type Layer struct {
	Tiled *TiledLayer
	List  *ListLayer
}
