package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = Schema{
	{Name: "a", Kind: U8},
	{Name: "b", Kind: U16},
	{Name: "c", Kind: U32},
	{Name: "d", Kind: I8},
	{Name: "e", Kind: I16},
	{Name: "f", Kind: I32},
}

func TestSchemaSize(t *testing.T) {
	assert.Equal(t, 14, testSchema.Size())
}

func TestRecordRoundTrip(t *testing.T) {
	want := Record{
		"a": 0xfe,
		"b": 0xbeef,
		"c": 0xdeadbeef,
		"d": -2,
		"e": -300,
		"f": -70000,
	}

	buf := make([]byte, testSchema.Size())
	require.NoError(t, New(buf).WriteRecord(testSchema, want))

	got, err := New(buf).ReadRecord(testSchema)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLittleEndianLayout(t *testing.T) {
	buf := make([]byte, 2)
	require.NoError(t, New(buf).WriteU16(0x1234))
	assert.Equal(t, []byte{0x34, 0x12}, buf)
}

func TestMissingFieldsWriteZero(t *testing.T) {
	buf := []byte{0xff, 0xff, 0xff}
	require.NoError(t, New(buf).WriteRecord(Schema{{Name: "x", Kind: U8}, {Name: "y", Kind: U16}}, Record{}))
	assert.Equal(t, []byte{0, 0, 0}, buf)
}

func TestReadPastEnd(t *testing.T) {
	c := New([]byte{0x01})

	_, err := c.ReadU16()
	assert.ErrorIs(t, err, ErrOutOfBounds)

	// A failed read must not move the cursor.
	v, err := c.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), v)
}

func TestWritePastEnd(t *testing.T) {
	err := New(make([]byte, 1)).WriteU16(1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestSeekAndSkip(t *testing.T) {
	c := New([]byte{1, 2, 3, 4})

	require.NoError(t, c.Seek(2))
	v, err := c.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, byte(3), v)

	require.NoError(t, c.Skip(-2))
	assert.Equal(t, 1, c.Pos())

	assert.ErrorIs(t, c.Seek(5), ErrOutOfBounds)
	assert.ErrorIs(t, c.Seek(-1), ErrOutOfBounds)
	assert.ErrorIs(t, c.Skip(4), ErrOutOfBounds)
}

func TestBytes(t *testing.T) {
	buf := make([]byte, 4)
	c := New(buf)
	require.NoError(t, c.WriteBytes([]byte{9, 8}))
	assert.ErrorIs(t, c.WriteBytes([]byte{1, 2, 3}), ErrOutOfBounds)

	c = New(buf)
	b, err := c.ReadBytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 8}, b)
	_, err = c.ReadBytes(3)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}
