package ddave

import (
	"bytes"
	"testing"

	"github.com/camoto-project/gamemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildLevel assembles a 1280 byte level: delta pairs, terminator unless
// the region is full, then tile bytes in raster order.
func buildLevel(deltas [][2]byte, tiles map[int]byte) []byte {
	buf := make([]byte, levelSize)
	i := 0
	for _, d := range deltas {
		buf[i], buf[i+1] = d[0], d[1]
		i += 2
	}
	if i < pathRegion {
		buf[i], buf[i+1] = pathTerm, pathTerm
	}
	for cell, v := range tiles {
		buf[pathRegion+cell] = v
	}
	return buf
}

// buildEnemies assembles the monster file with one enabled record.
func buildEnemies(slot int, x, y, off uint16, calm byte) []byte {
	buf := make([]byte, enemySize)
	base := slot * enemyStride
	buf[base] = 1
	buf[base+2], buf[base+3] = byte(x), byte(x>>8)
	buf[base+4], buf[base+5] = byte(y), byte(y>>8)
	buf[base+6], buf[base+7] = byte(off), byte(off>>8)
	buf[base+8] = calm
	return buf
}

func TestTitleScreenScenario(t *testing.T) {
	h := handler{}
	m, err := h.Parse(gamemap.Content{gamemap.MainFile: make([]byte, titleSize)})
	require.NoError(t, err)

	require.NotNil(t, m.MapSize)
	assert.Equal(t, gamemap.Size{X: 10, Y: 7}, *m.MapSize)

	tl := m.TiledLayerAt(0)
	require.NotNil(t, tl)
	require.Len(t, tl.Tiles, titleHeight)
	for _, row := range tl.Tiles {
		require.Len(t, row, titleWidth)
		for _, c := range row {
			assert.Equal(t, gamemap.NoTile, c)
		}
	}

	ll := m.ListLayerAt(1)
	require.NotNil(t, ll)
	assert.Empty(t, ll.Items)

	assert.Empty(t, h.CheckLimits(m))

	content, notes, err := h.Generate(m)
	require.NoError(t, err)
	assert.Empty(t, notes)
	assert.Equal(t, make([]byte, titleSize), content[gamemap.MainFile])
	assert.NotContains(t, content, suppEnemies)
}

func TestParseRejectsBadSize(t *testing.T) {
	_, err := handler{}.Parse(gamemap.Content{gamemap.MainFile: make([]byte, 100)})
	assert.ErrorIs(t, err, errSize)
}

func TestLevelRoundTrip(t *testing.T) {
	deltas := [][2]byte{{4, 0}, {4, 0}, {0, 0xfe}} // (4,0) (4,0) (0,-2)
	tiles := map[int]byte{0: 1, 105: 17, 999: 255}
	main := buildLevel(deltas, tiles)
	enemies := buildEnemies(1, 120, 64, 0, 3)

	h := handler{}
	m, err := h.Parse(gamemap.Content{gamemap.MainFile: main, suppEnemies: enemies})
	require.NoError(t, err)

	ll := m.ListLayerAt(1)
	require.NotNil(t, ll)
	require.Len(t, ll.Items, enemySlots)

	require.NotNil(t, ll.Items[0].Path)
	assert.Equal(t, []gamemap.Point{{X: 4, Y: 0}, {X: 8, Y: 0}, {X: 8, Y: -2}}, ll.Items[0].Path.Points)

	assert.False(t, ll.Items[0].BoolValue("enabled"))
	assert.True(t, ll.Items[1].BoolValue("enabled"))
	assert.Equal(t, gamemap.Point{X: 120, Y: 64}, ll.Items[1].Pos)
	assert.Equal(t, 3, ll.Items[1].IntValue("calmness"))

	require.Empty(t, h.CheckLimits(m))

	content, notes, err := h.Generate(m)
	require.NoError(t, err)
	assert.Empty(t, notes)
	assert.Equal(t, main, content[gamemap.MainFile])
	assert.Equal(t, enemies, content[suppEnemies])
}

func TestLevelRoundTripWithoutEnemyFile(t *testing.T) {
	main := buildLevel([][2]byte{{10, 10}, {0xec, 0xec}}, map[int]byte{50: 9})

	h := handler{}
	m, err := h.Parse(gamemap.Content{gamemap.MainFile: main})
	require.NoError(t, err)

	// The slots exist even without the monster file so the shared path
	// region still round-trips.
	ll := m.ListLayerAt(1)
	require.Len(t, ll.Items, enemySlots)

	content, _, err := h.Generate(m)
	require.NoError(t, err)
	assert.Equal(t, main, content[gamemap.MainFile])
	assert.Equal(t, make([]byte, enemySize), content[suppEnemies])
}

func TestTerminatorFollowsLastDelta(t *testing.T) {
	main := buildLevel([][2]byte{{1, 2}, {3, 4}}, nil)

	h := handler{}
	m, err := h.Parse(gamemap.Content{gamemap.MainFile: main})
	require.NoError(t, err)
	require.Empty(t, h.CheckLimits(m))

	content, notes, err := h.Generate(m)
	require.NoError(t, err)
	assert.Empty(t, notes)

	region := content[gamemap.MainFile][:pathRegion]
	assert.Equal(t, []byte{1, 2, 3, 4, pathTerm, pathTerm}, region[:6])
	assert.Equal(t, make([]byte, pathRegion-6), region[6:])
}

// The format stores one patrol path for every monster, so the slots
// alias a single Path and an edit through any slot is seen by all and by
// Generate.
func TestMonstersShareOnePath(t *testing.T) {
	h := handler{}
	m, err := h.Parse(gamemap.Content{gamemap.MainFile: buildLevel(nil, nil)})
	require.NoError(t, err)

	ll := m.ListLayerAt(1)
	for _, it := range ll.Items {
		assert.Same(t, ll.Items[0].Path, it.Path)
	}

	ll.Items[2].Path.Points = []gamemap.Point{{X: 5, Y: 0}}
	assert.Equal(t, []gamemap.Point{{X: 5, Y: 0}}, ll.Items[0].Path.Points)

	content, _, err := h.Generate(m)
	require.NoError(t, err)
	assert.Equal(t, []byte{5, 0, pathTerm, pathTerm}, content[gamemap.MainFile][:4])
}

func TestSentinelCollisionDetected(t *testing.T) {
	h := handler{}
	m, err := h.Parse(gamemap.Content{gamemap.MainFile: buildLevel(nil, nil)})
	require.NoError(t, err)

	ll := m.ListLayerAt(1)
	// Two consecutive points 0xEA bytes apart in both axes.
	ll.Items[0].Path.Points = []gamemap.Point{
		{X: 10, Y: 10},
		{X: 10 - 22, Y: 10 - 22},
	}

	issues := h.CheckLimits(m)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "terminator pair")
	assert.Equal(t, issues, h.CheckLimits(m))
}

func TestPathBudget(t *testing.T) {
	h := handler{}
	m, err := h.Parse(gamemap.Content{gamemap.MainFile: buildLevel(nil, nil)})
	require.NoError(t, err)
	ll := m.ListLayerAt(1)

	// Exactly full: safe to save, but the terminator is omitted and
	// Generate says so.
	full := make([]gamemap.Point, maxPathPairs)
	for i := range full {
		full[i] = gamemap.Point{X: i + 1, Y: 0}
	}
	ll.Items[0].Path.Points = full
	require.Empty(t, h.CheckLimits(m))

	content, notes, err := h.Generate(m)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0], "terminator omitted")
	region := content[gamemap.MainFile][:pathRegion]
	assert.False(t, bytes.Contains(region, []byte{pathTerm, pathTerm}))
	assert.Equal(t, byte(1), region[254]) // last delta, not a terminator

	// One point over: a limit issue, and Generate fails hard.
	ll.Items[0].Path.Points = append(full, gamemap.Point{X: maxPathPairs + 1, Y: 0})
	issues := h.CheckLimits(m)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "129 points")

	_, _, err = h.Generate(m)
	assert.ErrorIs(t, err, errPathTooLong)
}

func TestCheckLimitsSlots(t *testing.T) {
	h := handler{}
	m, err := h.Parse(gamemap.Content{gamemap.MainFile: buildLevel(nil, nil)})
	require.NoError(t, err)

	ll := m.ListLayerAt(1)
	ll.Items[2].AttributeValues["pathOffset"] = 300

	issues := h.CheckLimits(m)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "path offset 300")
}

func TestSupps(t *testing.T) {
	h := handler{}

	assert.Nil(t, h.Supps("title.dav", make([]byte, titleSize)))

	supps := h.Supps("LEVEL3.DAV", make([]byte, levelSize))
	require.NotNil(t, supps)
	assert.Equal(t, "level3.mon", supps[suppEnemies])
}

func TestEnemyCodecRoundTrip(t *testing.T) {
	orig := buildEnemies(3, 0x1234, 0x0180, 42, 9)

	items := make([]*gamemap.Item, enemySlots)
	for i := range items {
		items[i] = &gamemap.Item{AttributeValues: map[string]any{}}
	}
	require.NoError(t, decodeEnemies(orig, items))

	assert.True(t, items[3].BoolValue("enabled"))
	assert.Equal(t, gamemap.Point{X: 0x1234, Y: 0x0180}, items[3].Pos)
	assert.Equal(t, 42, items[3].IntValue("pathOffset"))
	assert.Equal(t, 9, items[3].IntValue("calmness"))

	got, err := encodeEnemies(items)
	require.NoError(t, err)
	assert.Equal(t, orig, got)

	assert.ErrorIs(t, decodeEnemies(make([]byte, 10), items), errEnemySize)
}
