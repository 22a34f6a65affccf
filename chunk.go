package wavload

import (
	"encoding/binary"
	"fmt"

	"github.com/go-audio/riff"
)

// chunkHeaderSize is the size of a chunk ID plus its little endian size.
const chunkHeaderSize = 8

var (
	// CIDRiff is the chunk ID of the RIFF container.
	CIDRiff = riff.RiffID
	// CIDWave is the RIFF sub-type of a regular wave file.
	CIDWave = riff.WavFormatID
	// CIDXwma is the RIFF sub-type of an xWMA file.
	CIDXwma = [4]byte{'X', 'W', 'M', 'A'}
	// CIDFmt is the chunk ID of the format chunk.
	CIDFmt = riff.FmtID
	// CIDData is the chunk ID of the sample data chunk.
	CIDData = riff.DataFormatID
	// CIDWsmp is the chunk ID of a DLS wave sample chunk.
	CIDWsmp = [4]byte{'w', 's', 'm', 'p'}
	// CIDSmpl is the chunk ID of a MIDI sampler chunk.
	CIDSmpl = [4]byte{'s', 'm', 'p', 'l'}
	// CIDDpds is the chunk ID of the xWMA decoded packet cumulative data size table.
	CIDDpds = [4]byte{'d', 'p', 'd', 's'}
	// CIDSeek is the chunk ID of the XMA2 seek table.
	CIDSeek = [4]byte{'s', 'e', 'e', 'k'}
)

// ChunkRef locates a chunk inside a buffer. Offset points at the chunk
// header, the payload starts chunkHeaderSize bytes later.
type ChunkRef struct {
	ID     [4]byte
	Offset int
	Size   uint32
}

// PayloadOffset returns the buffer offset of the first payload byte.
func (c ChunkRef) PayloadOffset() int {
	return c.Offset + chunkHeaderSize
}

func (c ChunkRef) payloadEnd() uint64 {
	return uint64(c.Offset) + chunkHeaderSize + uint64(c.Size)
}

// Payload returns the chunk payload as a sub-slice of buf. It fails with
// ErrTruncated if the declared size runs past the end of buf.
func (c ChunkRef) Payload(buf []byte) ([]byte, error) {
	if c.Offset < 0 || c.payloadEnd() > uint64(len(buf)) {
		return nil, fmt.Errorf("%w: %q chunk at offset %d declares %d bytes, buffer holds %d",
			ErrTruncated, c.ID[:], c.Offset, c.Size, len(buf))
	}

	start := c.PayloadOffset()

	return buf[start : start+int(c.Size)], nil
}

func (c ChunkRef) String() string {
	return fmt.Sprintf("%s@%d(%d)", c.ID[:], c.Offset, c.Size)
}

// FindChunk returns the first chunk with the passed ID, walking chunk headers
// from the start of buf. The scan stops when fewer than a header's worth of
// bytes remain. The payload of the returned chunk is not validated; use
// Payload to get a bounds checked view.
func FindChunk(buf []byte, id [4]byte) (ChunkRef, bool) {
	return scanChunks(buf, 0, len(buf), id)
}

// scanChunks walks the headers in buf[start:end]. Chunks are not padded to an
// even size: the next header immediately follows the previous payload.
func scanChunks(buf []byte, start, end int, id [4]byte) (ChunkRef, bool) {
	if end > len(buf) {
		end = len(buf)
	}

	if start < 0 || start >= end {
		return ChunkRef{}, false
	}

	off := uint64(start)
	limit := uint64(end)

	for off+chunkHeaderSize <= limit {
		ref := readChunkHeader(buf, int(off))
		if ref.ID == id {
			return ref, true
		}

		off += chunkHeaderSize + uint64(ref.Size)
	}

	return ChunkRef{}, false
}

func readChunkHeader(buf []byte, off int) ChunkRef {
	ref := ChunkRef{Offset: off}
	copy(ref.ID[:], buf[off:off+4])
	ref.Size = binary.LittleEndian.Uint32(buf[off+4 : off+8])

	return ref
}

// container describes the RIFF chunk and the region holding its sub-chunks.
type container struct {
	riff      ChunkRef
	form      [4]byte
	bodyStart int
	bodyEnd   int
	// clipped is set when the RIFF chunk declares more bytes than buf holds.
	clipped bool
}

func (c container) find(buf []byte, id [4]byte) (ChunkRef, bool) {
	return scanChunks(buf, c.bodyStart, c.bodyEnd, id)
}

// lookup is find for a container that may be cut short. A chunk that isn't
// found in a clipped body could sit past the end of buf, which fails with
// ErrTruncated rather than reporting the chunk as absent.
func (c container) lookup(buf []byte, id [4]byte) (ChunkRef, bool, error) {
	ref, ok := c.find(buf, id)
	if ok {
		return ref, true, nil
	}

	if c.clipped {
		return ChunkRef{}, false, fmt.Errorf("%w: no %q chunk in the %d bytes held, RIFF declares %d",
			ErrTruncated, id[:], len(buf), c.riff.payloadEnd())
	}

	return ChunkRef{}, false, nil
}

func (c container) isWave() bool {
	return c.form == CIDWave
}

func (c container) isXWMA() bool {
	return c.form == CIDXwma
}

// locateContainer finds the RIFF chunk and reads its sub-type. Neither the
// sub-type nor the body is validated, callers differ in how they treat them.
func locateContainer(buf []byte) (container, error) {
	riffChunk, ok := FindChunk(buf, CIDRiff)
	if !ok {
		return container{}, fmt.Errorf("%w: no RIFF chunk", ErrNotAWaveFile)
	}

	if riffChunk.Size < 4 {
		return container{}, fmt.Errorf("%w: RIFF chunk too small (%d bytes)", ErrNotAWaveFile, riffChunk.Size)
	}

	bodyStart := riffChunk.PayloadOffset() + 4
	if bodyStart > len(buf) {
		return container{}, fmt.Errorf("%w: RIFF sub-type past end of buffer", ErrTruncated)
	}

	c := container{riff: riffChunk, bodyStart: bodyStart}
	copy(c.form[:], buf[riffChunk.PayloadOffset():bodyStart])

	end := riffChunk.payloadEnd()
	if end > uint64(len(buf)) {
		end = uint64(len(buf))
		c.clipped = true
	}

	c.bodyEnd = int(end)

	return c, nil
}

// requireBody checks that at least one chunk header follows the sub-type.
func (c container) requireBody(buf []byte) error {
	if c.bodyStart+chunkHeaderSize > len(buf) {
		return fmt.Errorf("%w: RIFF %s body holds no chunk header", ErrTruncated, c.form[:])
	}

	return nil
}

// Chunks lists the chunks held by the RIFF container of buf, in file order.
// A chunk whose payload runs past the buffer is listed but ends the walk.
func Chunks(buf []byte) ([]ChunkRef, error) {
	if len(buf) == 0 {
		return nil, ErrInvalidArgument
	}

	c, err := locateContainer(buf)
	if err != nil {
		return nil, err
	}

	if err := c.requireBody(buf); err != nil {
		return nil, err
	}

	var chunks []ChunkRef

	off := uint64(c.bodyStart)
	for off+chunkHeaderSize <= uint64(c.bodyEnd) {
		ref := readChunkHeader(buf, int(off))
		chunks = append(chunks, ref)

		off += chunkHeaderSize + uint64(ref.Size)
	}

	return chunks, nil
}
