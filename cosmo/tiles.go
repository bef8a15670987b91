package cosmo

import (
	"fmt"

	"github.com/camoto-project/gamemap"
)

// On disk a tile is a 16-bit word. Values below 16000 are solid tiles
// stored as code × 8; values from 16000 up are masked foreground tiles
// stored as 16000 + (code − 2000) × 40. Both mappings are many-to-one,
// so a logical code always re-encodes to the smallest word of its class.
const (
	solidStep      = 8
	maskedDiskBase = 16000
	maskedCodeBase = 2000
	maskedStep     = 40

	maxSolidCode  = maskedCodeBase - 1
	maxMaskedCode = maskedCodeBase + (0xffff-maskedDiskBase)/maskedStep
)

// tileFromDisk maps an on-disk tile word to its logical code. The whole
// equivalence class of zero (words 0..7) is an empty cell, so the
// canonical re-encoding of any parse is stable under a further parse.
func tileFromDisk(v uint16) gamemap.TileCode {
	if v < maskedDiskBase {
		if c := v / solidStep; c != 0 {
			return gamemap.TileCode(c)
		}
		return gamemap.NoTile
	}
	return gamemap.TileCode(maskedCodeBase + (int(v)-maskedDiskBase)/maskedStep)
}

// tileToDisk maps a logical code back to its canonical on-disk word.
func tileToDisk(c gamemap.TileCode) uint16 {
	switch {
	case c == gamemap.NoTile:
		return 0
	case c < maskedCodeBase:
		return uint16(c) * solidStep
	default:
		return uint16(maskedDiskBase + (int(c)-maskedCodeBase)*maskedStep)
	}
}

func permitted(_, _ int, code gamemap.TileCode) gamemap.Permission {
	if code == gamemap.NoTile || (code >= 1 && code <= maxMaskedCode) {
		return gamemap.Permission{Valid: true}
	}
	return gamemap.Permission{
		Reason: fmt.Sprintf("tile code %v outside 1..%d", code, maxMaskedCode),
	}
}
