package gamemap

import (
	"errors"
	"fmt"
)

// AttributeType selects the value shape and constraint rules of an
// attribute.
type AttributeType int

const (
	// AttrPresetSingle holds exactly one of the preset values.
	AttrPresetSingle AttributeType = iota
	// AttrPresetMulti holds zero or more of the preset values.
	AttrPresetMulti
	// AttrPresetMultiRequired holds one or more of the preset values.
	AttrPresetMultiRequired
	// AttrString holds text whose length lies within the range.
	AttrString
	// AttrInt holds an integer within the range.
	AttrInt
	// AttrBool holds a boolean.
	AttrBool
)

// Preset is one allowed value of a preset-typed attribute.
type Preset struct {
	Value int
	Title string
}

var (
	errUnknownAttribute = errors.New("gamemap: unknown attribute")
	errWrongValueType   = errors.New("gamemap: value has the wrong type")
	errValueOutOfRange  = errors.New("gamemap: value out of range")
	errNotAPreset       = errors.New("gamemap: value is not a preset")
)

func checkKnown(id string, ok bool) error {
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownAttribute, id)
	}
	return nil
}

// Attribute is a typed, constrained named value attached to a map or,
// through the ItemAttributes schema, to its items. The handler that
// creates an attribute owns every field except the value; callers change
// the value only through Set.
type Attribute struct {
	Title   string
	Type    AttributeType
	Presets []Preset
	// RangeMin and RangeMax bound AttrInt values and AttrString lengths
	// inclusively. Both zero means unconstrained for strings.
	RangeMin, RangeMax int
	Value              any
}

// Set validates v against the attribute's type, range and presets, then
// stores it.
func (a *Attribute) Set(v any) error {
	if err := a.Check(v); err != nil {
		return err
	}
	a.Value = v
	return nil
}

// Check reports whether v would be a valid value for the attribute,
// without storing it.
func (a *Attribute) Check(v any) error {
	switch a.Type {
	case AttrInt:
		n, ok := v.(int)
		if !ok {
			return fmt.Errorf("%w: %q wants int, got %T", errWrongValueType, a.Title, v)
		}
		if n < a.RangeMin || n > a.RangeMax {
			return fmt.Errorf("%w: %q = %d, want %d..%d", errValueOutOfRange, a.Title, n, a.RangeMin, a.RangeMax)
		}
	case AttrBool:
		if _, ok := v.(bool); !ok {
			return fmt.Errorf("%w: %q wants bool, got %T", errWrongValueType, a.Title, v)
		}
	case AttrString:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: %q wants string, got %T", errWrongValueType, a.Title, v)
		}
		if a.RangeMax > 0 && (len(s) < a.RangeMin || len(s) > a.RangeMax) {
			return fmt.Errorf("%w: %q length %d, want %d..%d", errValueOutOfRange, a.Title, len(s), a.RangeMin, a.RangeMax)
		}
	case AttrPresetSingle:
		n, ok := v.(int)
		if !ok {
			return fmt.Errorf("%w: %q wants int, got %T", errWrongValueType, a.Title, v)
		}
		if !a.isPreset(n) {
			return fmt.Errorf("%w: %q = %d", errNotAPreset, a.Title, n)
		}
	case AttrPresetMulti, AttrPresetMultiRequired:
		ns, ok := v.([]int)
		if !ok {
			return fmt.Errorf("%w: %q wants []int, got %T", errWrongValueType, a.Title, v)
		}
		if a.Type == AttrPresetMultiRequired && len(ns) == 0 {
			return fmt.Errorf("%w: %q needs at least one value", errValueOutOfRange, a.Title)
		}
		for _, n := range ns {
			if !a.isPreset(n) {
				return fmt.Errorf("%w: %q = %d", errNotAPreset, a.Title, n)
			}
		}
	}
	return nil
}

func (a *Attribute) isPreset(n int) bool {
	for _, p := range a.Presets {
		if p.Value == n {
			return true
		}
	}
	return false
}

// Int returns the value as an int, or zero when unset or of another
// type.
func (a *Attribute) Int() int {
	if a == nil {
		return 0
	}
	n, _ := a.Value.(int)
	return n
}

// Bool returns the value as a bool, or false when unset or of another
// type.
func (a *Attribute) Bool() bool {
	if a == nil {
		return false
	}
	b, _ := a.Value.(bool)
	return b
}

// Text returns the value as a string, or "" when unset or of another
// type.
func (a *Attribute) Text() string {
	if a == nil {
		return ""
	}
	s, _ := a.Value.(string)
	return s
}
