/*
Package gamemap converts between an in-memory, format-agnostic model of a
2D tile/actor game level and the exact binary layouts used by MS-DOS-era
games.

Each supported game contributes a format handler which can parse a bundle
of byte buffers into the generic model and generate a structurally
identical bundle back from it. Format packages register their handler on
import, so a program enables formats the same way it enables image codecs:

	import (
		_ "github.com/camoto-project/gamemap/cosmo"
		_ "github.com/camoto-project/gamemap/ddave"
	)

The library performs no I/O of its own; reading and writing the files
whose contents it decodes is left to the caller.
*/
package gamemap

import "errors"

// MainFile is the Content key holding the main file of a map.
const MainFile = "main"

// Content is the byte-buffer bundle exchanged with a format handler: the
// mandatory MainFile entry plus zero or more supplementary buffers keyed
// by the ids the handler's Supps declares.
type Content map[string][]byte

// Metadata statically describes one format handler.
type Metadata struct {
	// ID is the identifier the handler is registered under.
	ID string
	// Title is a short human-readable name for the format.
	Title string
	// Games lists the games known to use the format.
	Games []string
}

// ErrUnsupported is returned by operations a format has no support for,
// such as resizing a fixed-size level.
var ErrUnsupported = errors.New("gamemap: operation not supported by this format")

// FormatHandler is implemented once per supported game. Every method is a
// pure function of its inputs; handlers hold no state between calls and
// may be used concurrently on independent maps.
type FormatHandler interface {
	// Metadata returns the static format descriptor. It is callable
	// without any file content.
	Metadata() Metadata

	// Supps reports the supplementary files expected alongside the named
	// main file, keyed by supplementary id, or nil if the format needs
	// none. Filenames the handler synthesizes are lowercased; a filename
	// merely echoed from the caller passes through untouched. Supps
	// performs no I/O.
	Supps(filename string, main []byte) map[string]string

	// Parse decodes a content bundle into a fresh map. If the main
	// buffer does not match any recognized variant of the format it
	// fails immediately; no partially populated map is ever returned.
	Parse(content Content) (*Map2D, error)

	// CheckLimits reports every structural constraint the map currently
	// violates, in a stable order. An empty list means the map is safe
	// to hand to Generate. It never mutates the map and repeated calls
	// without intervening mutation yield identical lists.
	CheckLimits(m *Map2D) []string

	// Generate serializes the map into a content bundle of the same
	// shape Parse accepts, along with any advisory notes for the
	// caller. The caller is expected to have resolved all CheckLimits
	// issues first; output for a map with outstanding issues is
	// unspecified.
	Generate(m *Map2D) (Content, []string, error)

	// QueryResize clamps the wanted size to the nearest size the format
	// is able to store and returns it. It never mutates the map.
	QueryResize(m *Map2D, want Size) Size

	// Resize changes the map to the given size, which must be one
	// QueryResize would return. Formats without resize support return
	// ErrUnsupported and leave the map untouched.
	Resize(m *Map2D, want Size) error
}
