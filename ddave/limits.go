package ddave

import (
	"fmt"

	"github.com/camoto-project/gamemap"
)

func (handler) CheckLimits(m *gamemap.Map2D) []string {
	var issues []string

	tl, ll, err := layersOf(m)
	if err != nil {
		return []string{err.Error()}
	}
	if m.MapSize == nil {
		return []string{errDims.Error()}
	}

	size := *m.MapSize
	title := size == gamemap.Size{X: titleWidth, Y: titleHeight}
	level := size == gamemap.Size{X: levelWidth, Y: levelHeight}
	if !title && !level {
		issues = append(issues, fmt.Sprintf("map size %d x %d is neither %d x %d nor %d x %d",
			size.X, size.Y, titleWidth, titleHeight, levelWidth, levelHeight))
	}

	issues = append(issues, checkGrid(tl, size)...)

	if title && len(ll.Items) > 0 {
		issues = append(issues, fmt.Sprintf("a title screen cannot hold monsters, found %d", len(ll.Items)))
	}
	if level {
		if len(ll.Items) != enemySlots {
			issues = append(issues, fmt.Sprintf("%d monster slots, want exactly %d", len(ll.Items), enemySlots))
		}
		issues = append(issues, checkPath(sharedPath(ll))...)
		issues = append(issues, checkSlots(ll)...)
	}

	return issues
}

func checkGrid(tl *gamemap.TiledLayer, size gamemap.Size) []string {
	var issues []string

	if len(tl.Tiles) != size.Y {
		issues = append(issues, fmt.Sprintf("tile grid has %d rows, want %d", len(tl.Tiles), size.Y))
	}
	bad, first := 0, gamemap.Point{}
	for y, row := range tl.Tiles {
		if len(row) != size.X {
			issues = append(issues, fmt.Sprintf("tile row %d has %d columns, want %d", y, len(row), size.X))
		}
		for x, c := range row {
			if p := tl.IsPermittedAt(x, y, c); !p.Valid {
				if bad == 0 {
					first = gamemap.Point{X: x, Y: y}
				}
				bad++
			}
		}
	}
	if bad > 0 {
		issues = append(issues, fmt.Sprintf("%d tiles outside the permitted code range, first at (%d, %d)", bad, first.X, first.Y))
	}

	return issues
}

// checkPath validates the shared patrol path against its fixed region: a
// point budget, the reachable delta range, and deltas that would encode
// as the terminator pair and truncate the path in-game.
func checkPath(p *gamemap.Path) []string {
	if p == nil {
		return nil
	}
	var issues []string

	if len(p.Points) > maxPathPairs {
		issues = append(issues, fmt.Sprintf("monster path has %d points but only %d fit", len(p.Points), maxPathPairs))
	}

	var prev gamemap.Point
	for i, pt := range p.Points {
		dx, dy := pt.X-prev.X, pt.Y-prev.Y
		if dx < -128 || dx > 127 || dy < -128 || dy > 127 {
			issues = append(issues, fmt.Sprintf("path step %d moves by (%d, %d), outside -128..127", i, dx, dy))
		} else if byte(int8(dx)) == pathTerm && byte(int8(dy)) == pathTerm {
			issues = append(issues, fmt.Sprintf("path step %d collides with the terminator pair", i))
		}
		prev = pt
	}

	return issues
}

func checkSlots(ll *gamemap.ListLayer) []string {
	var issues []string

	for i, it := range ll.Items {
		if it.Pos.X < 0 || it.Pos.X > 0xffff || it.Pos.Y < 0 || it.Pos.Y > 0xffff {
			issues = append(issues, fmt.Sprintf("monster %d at (%d, %d) does not fit 16-bit coordinates", i, it.Pos.X, it.Pos.Y))
		}
		if off := it.IntValue("pathOffset"); off < 0 || off >= pathRegion {
			issues = append(issues, fmt.Sprintf("monster %d path offset %d outside the %d byte region", i, off, pathRegion))
		}
		if calm := it.IntValue("calmness"); calm < 0 || calm > 255 {
			issues = append(issues, fmt.Sprintf("monster %d calmness %d outside 0..255", i, calm))
		}
	}

	return issues
}
