package gamemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHandler struct {
	id string
}

func (h fakeHandler) Metadata() Metadata                   { return Metadata{ID: h.id} }
func (fakeHandler) Supps(string, []byte) map[string]string { return nil }
func (fakeHandler) Parse(Content) (*Map2D, error)          { return nil, nil }
func (fakeHandler) CheckLimits(*Map2D) []string            { return nil }
func (fakeHandler) Generate(*Map2D) (Content, []string, error) {
	return nil, nil, nil
}
func (fakeHandler) QueryResize(_ *Map2D, want Size) Size { return want }
func (fakeHandler) Resize(*Map2D, Size) error            { return ErrUnsupported }

func TestRegistry(t *testing.T) {
	Register(fakeHandler{id: "zz-test"})
	Register(fakeHandler{id: "aa-test"})

	assert.Equal(t, "aa-test", Find("aa-test").Metadata().ID)
	assert.Nil(t, Find("no-such-format"))

	var ids []string
	for _, h := range Formats() {
		ids = append(ids, h.Metadata().ID)
	}
	assert.IsNonDecreasing(t, ids)
	assert.Contains(t, ids, "zz-test")
}

func TestAttributeSetInt(t *testing.T) {
	a := &Attribute{Title: "Music track", Type: AttrInt, RangeMin: 0, RangeMax: 31}

	require.NoError(t, a.Set(17))
	assert.Equal(t, 17, a.Int())

	assert.ErrorIs(t, a.Set(32), errValueOutOfRange)
	assert.ErrorIs(t, a.Set("five"), errWrongValueType)
	assert.Equal(t, 17, a.Int())
}

func TestAttributeSetBool(t *testing.T) {
	a := &Attribute{Title: "Rain", Type: AttrBool}

	require.NoError(t, a.Set(true))
	assert.True(t, a.Bool())
	assert.ErrorIs(t, a.Set(1), errWrongValueType)
}

func TestAttributeSetString(t *testing.T) {
	a := &Attribute{Title: "Name", Type: AttrString, RangeMin: 1, RangeMax: 8}

	require.NoError(t, a.Set("LEVEL1"))
	assert.Equal(t, "LEVEL1", a.Text())
	assert.ErrorIs(t, a.Set(""), errValueOutOfRange)
	assert.ErrorIs(t, a.Set("TOO LONG NAME"), errValueOutOfRange)
}

func TestAttributePresets(t *testing.T) {
	single := &Attribute{
		Title:   "Backdrop",
		Type:    AttrPresetSingle,
		Presets: []Preset{{Value: 1, Title: "Hills"}, {Value: 2, Title: "Cave"}},
	}
	require.NoError(t, single.Set(2))
	assert.ErrorIs(t, single.Set(3), errNotAPreset)

	multi := &Attribute{
		Title:   "Hazards",
		Type:    AttrPresetMultiRequired,
		Presets: []Preset{{Value: 1}, {Value: 2}},
	}
	assert.ErrorIs(t, multi.Set([]int{}), errValueOutOfRange)
	assert.ErrorIs(t, multi.Set([]int{9}), errNotAPreset)
	require.NoError(t, multi.Set([]int{1, 2}))
}

func TestSetItemValue(t *testing.T) {
	m := &Map{
		ItemAttributes: map[string]*Attribute{
			"calmness": {Title: "Calmness", Type: AttrInt, RangeMin: 0, RangeMax: 255},
		},
	}
	it := &Item{}

	require.NoError(t, m.SetItemValue(it, "calmness", 7))
	assert.Equal(t, 7, it.IntValue("calmness"))

	assert.ErrorIs(t, m.SetItemValue(it, "calmness", 999), errValueOutOfRange)
	assert.ErrorIs(t, m.SetItemValue(it, "mood", 1), errUnknownAttribute)
}

func TestTileCodeString(t *testing.T) {
	assert.Equal(t, "-", NoTile.String())
	assert.Equal(t, "42", TileCode(42).String())
}

func TestIsPermittedAtDefault(t *testing.T) {
	l := &TiledLayer{}
	assert.True(t, l.IsPermittedAt(0, 0, TileCode(1)).Valid)

	l.Permitted = func(_, _ int, code TileCode) Permission {
		return Permission{Reason: "nothing fits"}
	}
	p := l.IsPermittedAt(0, 0, TileCode(1))
	assert.False(t, p.Valid)
	assert.Equal(t, "nothing fits", p.Reason)
}

func TestEffectiveSize(t *testing.T) {
	m := &Map2D{MapSize: &Size{X: 100, Y: 10}}

	inherit := LayerInfo{}
	assert.Equal(t, Size{X: 100, Y: 10}, inherit.EffectiveSize(m))

	own := LayerInfo{LayerSize: &Size{X: 10, Y: 7}}
	assert.Equal(t, Size{X: 10, Y: 7}, own.EffectiveSize(m))
}
