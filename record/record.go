/*
Package record implements a fixed-layout binary codec for the header and
record structures of MS-DOS game files.

A record is an ordered schema of named little-endian integer fields of
one, two or four bytes, read from or written to an explicit cursor over a
byte buffer. Reading past the end of the buffer fails; nothing is ever
truncated or padded implicitly, and writing requires the destination
buffer to be pre-sized.
*/
package record

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Kind selects the storage width and signedness of one field.
type Kind int

const (
	U8 Kind = iota
	U16
	U32
	I8
	I16
	I32
)

func (k Kind) size() int {
	switch k {
	case U8, I8:
		return 1
	case U16, I16:
		return 2
	default:
		return 4
	}
}

// Field is one named slot of a record schema.
type Field struct {
	Name string
	Kind Kind
}

// Schema is the ordered field layout of one record.
type Schema []Field

// Size returns the encoded byte length of one record of the schema.
func (s Schema) Size() int {
	n := 0
	for _, f := range s {
		n += f.Kind.size()
	}
	return n
}

// Record holds decoded field values keyed by field name. Unsigned fields
// are stored zero-extended, signed fields sign-extended.
type Record map[string]int64

// ErrOutOfBounds is returned when a read or write would run past the end
// of the buffer.
var ErrOutOfBounds = errors.New("record: cursor out of bounds")

// Cursor is an explicit read/write position over a caller-owned byte
// buffer.
type Cursor struct {
	buf []byte
	pos int
}

// New returns a cursor positioned at the start of buf.
func New(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the current cursor position.
func (c *Cursor) Pos() int {
	return c.pos
}

// Seek moves the cursor to an absolute position within the buffer.
func (c *Cursor) Seek(pos int) error {
	if pos < 0 || pos > len(c.buf) {
		return fmt.Errorf("%w: seek to %d of %d", ErrOutOfBounds, pos, len(c.buf))
	}
	c.pos = pos
	return nil
}

// Skip moves the cursor relative to its current position.
func (c *Cursor) Skip(delta int) error {
	return c.Seek(c.pos + delta)
}

func (c *Cursor) need(n int) error {
	if c.pos+n > len(c.buf) {
		return fmt.Errorf("%w: need %d bytes at %d of %d", ErrOutOfBounds, n, c.pos, len(c.buf))
	}
	return nil
}

// ReadField reads one field of the given kind at the cursor.
func (c *Cursor) ReadField(k Kind) (int64, error) {
	if err := c.need(k.size()); err != nil {
		return 0, err
	}
	b := c.buf[c.pos:]
	c.pos += k.size()

	switch k {
	case U8:
		return int64(b[0]), nil
	case I8:
		return int64(int8(b[0])), nil
	case U16:
		return int64(binary.LittleEndian.Uint16(b)), nil
	case I16:
		return int64(int16(binary.LittleEndian.Uint16(b))), nil
	case U32:
		return int64(binary.LittleEndian.Uint32(b)), nil
	default:
		return int64(int32(binary.LittleEndian.Uint32(b))), nil
	}
}

// WriteField writes one field of the given kind at the cursor. Values are
// truncated to the field width.
func (c *Cursor) WriteField(k Kind, v int64) error {
	if err := c.need(k.size()); err != nil {
		return err
	}
	b := c.buf[c.pos:]
	c.pos += k.size()

	switch k {
	case U8, I8:
		b[0] = byte(v)
	case U16, I16:
		binary.LittleEndian.PutUint16(b, uint16(v))
	default:
		binary.LittleEndian.PutUint32(b, uint32(v))
	}
	return nil
}

// ReadRecord reads one record of the schema at the cursor.
func (c *Cursor) ReadRecord(s Schema) (Record, error) {
	r := make(Record, len(s))
	for _, f := range s {
		v, err := c.ReadField(f.Kind)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		r[f.Name] = v
	}
	return r, nil
}

// WriteRecord writes one record of the schema at the cursor. Fields
// missing from r are written as zero.
func (c *Cursor) WriteRecord(s Schema, r Record) error {
	for _, f := range s {
		if err := c.WriteField(f.Kind, r[f.Name]); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
	}
	return nil
}

// ReadBytes reads n raw bytes at the cursor. The returned slice aliases
// the buffer.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// WriteBytes writes b at the cursor.
func (c *Cursor) WriteBytes(b []byte) error {
	if err := c.need(len(b)); err != nil {
		return err
	}
	copy(c.buf[c.pos:], b)
	c.pos += len(b)
	return nil
}

// ReadU16 reads one unsigned 16-bit field at the cursor.
func (c *Cursor) ReadU16() (uint16, error) {
	v, err := c.ReadField(U16)
	return uint16(v), err
}

// WriteU16 writes one unsigned 16-bit field at the cursor.
func (c *Cursor) WriteU16(v uint16) error {
	return c.WriteField(U16, int64(v))
}

// ReadU8 reads one unsigned byte at the cursor.
func (c *Cursor) ReadU8() (byte, error) {
	v, err := c.ReadField(U8)
	return byte(v), err
}

// WriteU8 writes one unsigned byte at the cursor.
func (c *Cursor) WriteU8(v byte) error {
	return c.WriteField(U8, int64(v))
}
