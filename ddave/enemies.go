package ddave

import (
	"errors"
	"fmt"

	"github.com/camoto-project/gamemap"
	"github.com/camoto-project/gamemap/record"
)

// The monster file holds one fixed-stride record per slot, fields
// interleaved with zero padding:
//
//	offset 0  enabled     u8
//	offset 1  (padding)
//	offset 2  pixel x     u16le
//	offset 4  pixel y     u16le
//	offset 6  path offset u16le
//	offset 8  calmness    u8
//	offset 9  (padding, 7 bytes)
const (
	enemySlots  = 4
	enemyStride = 16
	enemySize   = enemySlots * enemyStride
)

var errEnemySize = errors.New("ddave: monster file size mismatch")

// decodeEnemies fills the monster slot items from the supplementary
// buffer.
func decodeEnemies(buf []byte, items []*gamemap.Item) error {
	if len(buf) != enemySize {
		return fmt.Errorf("%w: %d bytes, want %d", errEnemySize, len(buf), enemySize)
	}

	c := record.New(buf)
	for i, it := range items {
		if err := c.Seek(i * enemyStride); err != nil {
			return err
		}
		enabled, err := c.ReadU8()
		if err != nil {
			return err
		}
		if err := c.Skip(1); err != nil {
			return err
		}
		x, err := c.ReadU16()
		if err != nil {
			return err
		}
		y, err := c.ReadU16()
		if err != nil {
			return err
		}
		off, err := c.ReadU16()
		if err != nil {
			return err
		}
		calm, err := c.ReadU8()
		if err != nil {
			return err
		}

		it.Pos = gamemap.Point{X: int(x), Y: int(y)}
		it.AttributeValues["enabled"] = enabled != 0
		it.AttributeValues["pathOffset"] = int(off)
		it.AttributeValues["calmness"] = int(calm)
	}
	return nil
}

// encodeEnemies serializes the monster slot items back into the
// supplementary buffer layout. Padding bytes stay zero.
func encodeEnemies(items []*gamemap.Item) ([]byte, error) {
	buf := make([]byte, enemySize)
	c := record.New(buf)

	for i, it := range items {
		if i >= enemySlots {
			break
		}
		if err := c.Seek(i * enemyStride); err != nil {
			return nil, err
		}
		enabled := byte(0)
		if it.BoolValue("enabled") {
			enabled = 1
		}
		if err := c.WriteU8(enabled); err != nil {
			return nil, err
		}
		if err := c.Skip(1); err != nil {
			return nil, err
		}
		if err := c.WriteU16(uint16(it.Pos.X)); err != nil {
			return nil, err
		}
		if err := c.WriteU16(uint16(it.Pos.Y)); err != nil {
			return nil, err
		}
		if err := c.WriteU16(uint16(it.IntValue("pathOffset"))); err != nil {
			return nil, err
		}
		if err := c.WriteU8(byte(it.IntValue("calmness"))); err != nil {
			return nil, err
		}
	}
	return buf, nil
}
