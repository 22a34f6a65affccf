package wavload

import (
	"encoding/binary"
	"fmt"
)

const (
	wsmpHeaderSize = 20
	wsmpLoopSize   = 16
)

// DLS wave sample loop types.
const (
	DLSLoopForward uint32 = 0
	DLSLoopRelease uint32 = 1
)

// DLS wave sample options.
const (
	DLSNoTruncation  uint32 = 0x00000001
	DLSNoCompression uint32 = 0x00000002
)

// DLSSample is the content of a DLS wsmp chunk.
type DLSSample struct {
	// HeaderSize is the declared size of the fixed header; loops follow it.
	HeaderSize uint32
	UnityNote  uint16
	FineTune   int16
	Gain       int32
	Options    uint32
	Loops      []DLSLoop
}

// DLSLoop is one loop entry of a wsmp chunk, in sample frames.
type DLSLoop struct {
	Size   uint32
	Type   uint32
	Start  uint32
	Length uint32
}

// ReadDLSSample decodes a wsmp chunk payload. It fails with ErrMalformed when
// the payload can't hold the header and every declared loop.
func ReadDLSSample(payload []byte) (*DLSSample, error) {
	if len(payload) < wsmpHeaderSize {
		return nil, fmt.Errorf("%w: wsmp chunk of %d bytes, need at least %d", ErrMalformed, len(payload), wsmpHeaderSize)
	}

	s := &DLSSample{
		HeaderSize: binary.LittleEndian.Uint32(payload[0:4]),
		UnityNote:  binary.LittleEndian.Uint16(payload[4:6]),
		FineTune:   int16(binary.LittleEndian.Uint16(payload[6:8])),
		Gain:       int32(binary.LittleEndian.Uint32(payload[8:12])),
		Options:    binary.LittleEndian.Uint32(payload[12:16]),
	}
	loopCount := binary.LittleEndian.Uint32(payload[16:20])

	if s.HeaderSize < wsmpHeaderSize {
		return nil, fmt.Errorf("%w: wsmp header size %d, need at least %d", ErrMalformed, s.HeaderSize, wsmpHeaderSize)
	}

	need := uint64(s.HeaderSize) + uint64(loopCount)*wsmpLoopSize
	if uint64(len(payload)) < need {
		return nil, fmt.Errorf("%w: wsmp chunk of %d bytes can't hold a %d byte header and %d loops",
			ErrMalformed, len(payload), s.HeaderSize, loopCount)
	}

	s.Loops = make([]DLSLoop, loopCount)
	for i := range s.Loops {
		entry := payload[int(s.HeaderSize)+i*wsmpLoopSize:]
		s.Loops[i] = DLSLoop{
			Size:   binary.LittleEndian.Uint32(entry[0:4]),
			Type:   binary.LittleEndian.Uint32(entry[4:8]),
			Start:  binary.LittleEndian.Uint32(entry[8:12]),
			Length: binary.LittleEndian.Uint32(entry[12:16]),
		}
	}

	return s, nil
}

// playLoop returns the first forward or release loop.
func (s *DLSSample) playLoop() (Loop, bool) {
	for _, l := range s.Loops {
		if l.Type == DLSLoopForward || l.Type == DLSLoopRelease {
			return Loop{Start: l.Start, Length: l.Length}, true
		}
	}

	return Loop{}, false
}
