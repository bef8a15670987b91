package ddave

import (
	"errors"
	"fmt"

	"github.com/camoto-project/gamemap"
)

// The path region stores up to 128 (dx, dy) pixel delta pairs from the
// previous waypoint, terminated by the sentinel pair 0xEA, 0xEA. A path
// using every pair fills the region exactly and the terminator is
// implicit.
const (
	maxPathPairs = pathRegion / 2
	pathTerm     = 0xea
)

var errPathTooLong = errors.New("ddave: path does not fit its region")

// decodePath expands the delta pairs of the region into absolute
// waypoints. The returned path is never nil; monsters support paths even
// when the current one is empty.
func decodePath(region []byte) *gamemap.Path {
	p := &gamemap.Path{}
	x, y := 0, 0
	for i := 0; i+1 < len(region); i += 2 {
		dx, dy := region[i], region[i+1]
		if dx == pathTerm && dy == pathTerm {
			break
		}
		x += int(int8(dx))
		y += int(int8(dy))
		p.Points = append(p.Points, gamemap.Point{X: x, Y: y})
	}
	return p
}

// encodePath writes the path into dst as delta pairs. dst must be the
// zeroed path region. The terminator is emitted only when a pair of
// space remains; when the path exactly fills the region its omission is
// reported as a note, not an error.
func encodePath(dst []byte, p *gamemap.Path) ([]string, error) {
	var points []gamemap.Point
	if p != nil {
		points = p.Points
	}
	if len(points) > maxPathPairs {
		return nil, fmt.Errorf("%w: %d points, %d fit", errPathTooLong, len(points), maxPathPairs)
	}

	var prev gamemap.Point
	for i, pt := range points {
		dst[i*2] = byte(int8(pt.X - prev.X))
		dst[i*2+1] = byte(int8(pt.Y - prev.Y))
		prev = pt
	}

	if len(points) == maxPathPairs {
		return []string{"monster path fills its whole region; terminator omitted"}, nil
	}
	dst[len(points)*2] = pathTerm
	dst[len(points)*2+1] = pathTerm
	return nil, nil
}
