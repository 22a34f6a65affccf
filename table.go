package wavload

import (
	"encoding/binary"
	"fmt"
)

const tableEntrySize = 4

// Table is a read-only view over the 32-bit entries of a dpds or seek chunk.
// It borrows the decoded buffer. Entries are stored big endian by the
// encoders that produce these tables; At returns them as stored and leaves
// byte order to the caller.
type Table struct {
	ID  [4]byte
	raw []byte
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return len(t.raw) / tableEntrySize
}

// At returns entry i as a little endian machine read of the stored bytes,
// with no byte order correction.
func (t *Table) At(i int) uint32 {
	return binary.LittleEndian.Uint32(t.raw[i*tableEntrySize:])
}

// Raw returns the chunk payload backing the table.
func (t *Table) Raw() []byte {
	if t == nil {
		return nil
	}

	return t.raw
}

// Values copies every entry, decoded with the passed byte order.
func (t *Table) Values(order binary.ByteOrder) []uint32 {
	if t == nil {
		return nil
	}

	out := make([]uint32, t.Len())
	for i := range out {
		out[i] = order.Uint32(t.raw[i*tableEntrySize:])
	}

	return out
}

// FindTable locates the table chunk with the passed ID (CIDDpds or CIDSeek)
// inside the RIFF container. A missing chunk returns a nil table and no error.
func FindTable(buf []byte, id [4]byte) (*Table, error) {
	if len(buf) == 0 {
		return nil, ErrInvalidArgument
	}

	if len(buf) < chunkHeaderSize+4 {
		return nil, fmt.Errorf("%w: %d bytes can't hold a RIFF header", ErrTruncated, len(buf))
	}

	c, err := locateContainer(buf)
	if err != nil {
		return nil, err
	}

	if !c.isWave() && !c.isXWMA() {
		return nil, fmt.Errorf("%w: RIFF sub-type %q", ErrNotAWaveFile, c.form[:])
	}

	if err := c.requireBody(buf); err != nil {
		return nil, err
	}

	ref, ok, err := c.lookup(buf, id)
	if err != nil || !ok {
		return nil, err
	}

	payload, err := ref.Payload(buf)
	if err != nil {
		return nil, err
	}

	if len(payload)%tableEntrySize != 0 {
		return nil, fmt.Errorf("%w: %q table of %d bytes is not a multiple of %d",
			ErrMalformed, id[:], len(payload), tableEntrySize)
	}

	return &Table{ID: id, raw: payload}, nil
}
