package cosmo

import (
	"fmt"

	"github.com/camoto-project/gamemap"
)

// Engine population caps. Actor types up to lastLightType are special
// records with their own caps; everything else counts against the
// general actor limit.
const (
	lastPlatformType = 5
	lastFountainType = 8
	lastLightType    = 31

	maxPlatforms = 10
	maxFountains = 10
	maxLights    = 199
	maxActors    = 410

	// The actor chunk length header field is 16 bits wide.
	maxActorLen = 0xffff
)

func (handler) CheckLimits(m *gamemap.Map2D) []string {
	var issues []string

	tl, al, err := layersOf(m)
	if err != nil {
		return []string{err.Error()}
	}
	if m.MapSize == nil {
		return []string{errMapSize.Error()}
	}
	width, height := m.MapSize.X, m.MapSize.Y

	if width < minWidth || width > maxWidth {
		issues = append(issues, fmt.Sprintf("map width %d outside %d..%d", width, minWidth, maxWidth))
	}
	if width >= 1 {
		if want := tileWords / width; height != want {
			issues = append(issues, fmt.Sprintf("map height %d does not match the derived height %d for width %d", height, want, width))
		}
	}

	issues = append(issues, checkGrid(tl, width, height)...)
	issues = append(issues, checkActors(al, width, height)...)

	return issues
}

func checkGrid(tl *gamemap.TiledLayer, width, height int) []string {
	var issues []string

	if len(tl.Tiles) != height {
		issues = append(issues, fmt.Sprintf("tile grid has %d rows, want %d", len(tl.Tiles), height))
	}
	bad, first := 0, gamemap.Point{}
	for y, row := range tl.Tiles {
		if len(row) != width {
			issues = append(issues, fmt.Sprintf("tile row %d has %d columns, want %d", y, len(row), width))
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

func checkActors(al *gamemap.ListLayer, width, height int) []string {
	var issues []string

	var platforms, fountains, lights, actors, offGrid, badCodes int
	for _, it := range al.Items {
		switch {
		case it.Code <= lastPlatformType:
			platforms++
		case it.Code <= lastFountainType:
			fountains++
		case it.Code <= lastLightType:
			lights++
		default:
			actors++
		}
		if it.Pos.X < 0 || it.Pos.X >= width || it.Pos.Y < 0 || it.Pos.Y >= height {
			offGrid++
		}
		if it.Code < 0 || it.Code > 0xffff {
			badCodes++
		}
	}

	if platforms > maxPlatforms {
		issues = append(issues, fmt.Sprintf("%d platforms but the game supports %d", platforms, maxPlatforms))
	}
	if fountains > maxFountains {
		issues = append(issues, fmt.Sprintf("%d fountains but the game supports %d", fountains, maxFountains))
	}
	if lights > maxLights {
		issues = append(issues, fmt.Sprintf("%d lights but the game supports %d", lights, maxLights))
	}
	if actors > maxActors {
		issues = append(issues, fmt.Sprintf("%d actors but the game supports %d", actors, maxActors))
	}
	if n := len(al.Items) * actorWords; n > maxActorLen {
		issues = append(issues, fmt.Sprintf("actor chunk of %d words does not fit the 16-bit header field", n))
	}
	if offGrid > 0 {
		issues = append(issues, fmt.Sprintf("%d actors placed outside the %d x %d grid", offGrid, width, height))
	}
	if badCodes > 0 {
		issues = append(issues, fmt.Sprintf("%d actor codes outside 0..65535", badCodes))
	}

	return issues
}
