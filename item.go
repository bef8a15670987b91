package gamemap

// DrawOp is one instruction for drawing an item: a tile code placed at a
// pixel offset relative to the item position.
type DrawOp struct {
	Code   TileCode
	Offset Point
}

// Display describes how an item is drawn: either a static list of draw
// instructions or a pure function recomputing them from the item's
// current attribute values. Exactly one of the two is set. Only external
// rendering collaborators consult it; the codec never does.
type Display struct {
	Static    []DrawOp
	Recompute func(values map[string]any) []DrawOp
}

// DrawOps resolves the display to a concrete instruction list.
func (d Display) DrawOps(values map[string]any) []DrawOp {
	if d.Recompute != nil {
		return d.Recompute(values)
	}
	return d.Static
}

// Path is an ordered sequence of waypoints, each relative to the item's
// own position.
type Path struct {
	Points []Point
}

// Item is one placed object within a list layer.
type Item struct {
	// Pos is the item position, in pixel or tile coordinates as fixed
	// by the owning layer's format.
	Pos Point

	// Code identifies the object; its meaning is format-defined.
	Code int

	// Path is the item's waypoint path, or nil when this item type has
	// no path support.
	Path *Path

	// AttributeValues maps into the owning map's ItemAttributes schema.
	AttributeValues map[string]any

	// IDGroup, IDSource and IDTarget express non-hierarchical links
	// between items, such as a switch driving a platform. Nil when
	// unused.
	IDGroup, IDSource, IDTarget *int

	Display Display
}

// IntValue returns the item's value for the given attribute id as an
// int, or zero when unset.
func (it *Item) IntValue(id string) int {
	n, _ := it.AttributeValues[id].(int)
	return n
}

// BoolValue returns the item's value for the given attribute id as a
// bool, or false when unset.
func (it *Item) BoolValue(id string) bool {
	b, _ := it.AttributeValues[id].(bool)
	return b
}
