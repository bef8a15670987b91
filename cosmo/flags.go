package cosmo

import "github.com/camoto-project/gamemap"

// Header flags bit layout: bits 11-15 music, 8-10 animation, 7 vertical
// scroll, 6 horizontal scroll, 5 rain, 0-4 backdrop.
const (
	backdropMask   = 0x1f
	rainBit        = 1 << 5
	scrollHorizBit = 1 << 6
	scrollVertBit  = 1 << 7
	animShift      = 8
	animMask       = 0x07
	musicShift     = 11
	musicMask      = 0x1f
)

type flags struct {
	music     int
	animation int
	backdrop  int

	scrollHoriz bool
	scrollVert  bool
	rain        bool
}

func unpackFlags(v uint16) flags {
	return flags{
		music:       int(v >> musicShift & musicMask),
		animation:   int(v >> animShift & animMask),
		backdrop:    int(v & backdropMask),
		scrollHoriz: v&scrollHorizBit != 0,
		scrollVert:  v&scrollVertBit != 0,
		rain:        v&rainBit != 0,
	}
}

func (f flags) pack() uint16 {
	v := uint16(f.music&musicMask)<<musicShift |
		uint16(f.animation&animMask)<<animShift |
		uint16(f.backdrop&backdropMask)
	if f.scrollHoriz {
		v |= scrollHorizBit
	}
	if f.scrollVert {
		v |= scrollVertBit
	}
	if f.rain {
		v |= rainBit
	}
	return v
}

// attributes exposes the unpacked flags as the map-wide attribute schema.
func (f flags) attributes() map[string]*gamemap.Attribute {
	return map[string]*gamemap.Attribute{
		"music": {
			Title: "Music track", Type: gamemap.AttrInt,
			RangeMin: 0, RangeMax: int(musicMask), Value: f.music,
		},
		"animation": {
			Title: "Palette animation", Type: gamemap.AttrInt,
			RangeMin: 0, RangeMax: int(animMask), Value: f.animation,
		},
		"backdrop": {
			Title: "Backdrop image", Type: gamemap.AttrInt,
			RangeMin: 0, RangeMax: int(backdropMask), Value: f.backdrop,
		},
		"bgScrollHoriz": {
			Title: "Backdrop scrolls horizontally", Type: gamemap.AttrBool,
			Value: f.scrollHoriz,
		},
		"bgScrollVert": {
			Title: "Backdrop scrolls vertically", Type: gamemap.AttrBool,
			Value: f.scrollVert,
		},
		"rain": {
			Title: "Rain", Type: gamemap.AttrBool,
			Value: f.rain,
		},
	}
}

func flagsFromMap(m *gamemap.Map2D) flags {
	return flags{
		music:       m.Attributes["music"].Int(),
		animation:   m.Attributes["animation"].Int(),
		backdrop:    m.Attributes["backdrop"].Int(),
		scrollHoriz: m.Attributes["bgScrollHoriz"].Bool(),
		scrollVert:  m.Attributes["bgScrollVert"].Bool(),
		rain:        m.Attributes["rain"].Bool(),
	}
}
