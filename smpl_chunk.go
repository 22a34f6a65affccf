package wavload

import (
	"encoding/binary"
	"fmt"
)

// smpl chunk is documented here:
// https://sites.google.com/site/musicgapi/technical-documents/wav-file-format#smpl

const (
	smplHeaderSize = 36
	smplLoopSize   = 24
)

// Sample loop types of a smpl chunk.
const (
	LoopForward     uint32 = 0
	LoopAlternating uint32 = 1
	LoopBackward    uint32 = 2
)

// SamplerInfo is the content of a smpl chunk.
type SamplerInfo struct {
	// Manufacturer is the MMA manufacturer code of the intended sampler, 0
	// when no particular manufacturer is specified.
	Manufacturer [4]byte
	// Product is the MIDI model ID defined by the manufacturer.
	Product [4]byte
	// SamplePeriod is the duration of one sample in nanoseconds.
	SamplePeriod uint32
	// MIDIUnityNote is the note at which the sample plays at its original rate.
	MIDIUnityNote uint32
	// MIDIPitchFraction is the fraction of a semitone up from the unity note,
	// 0x80000000 meaning 50 cents.
	MIDIPitchFraction uint32
	SMPTEFormat       uint32
	// SMPTEOffset uses the 0xhhmmssff layout.
	SMPTEOffset uint32
	// NumSampleLoops is the loop count declared by the chunk.
	NumSampleLoops uint32
	// SamplerDataSize is the size of the vendor data following the loops.
	SamplerDataSize uint32
	Loops           []SampleLoop
}

// SampleLoop is one loop entry of a smpl chunk. Start and End are inclusive
// sample frame offsets.
type SampleLoop struct {
	CuePointID [4]byte
	Type       uint32
	Start      uint32
	End        uint32
	// Fraction allows fine tuning of the loop points, 0x80000000 is half a sample.
	Fraction uint32
	// PlayCount is the number of times to play the loop, 0 is infinite.
	PlayCount uint32
}

// ReadSampler decodes a smpl chunk payload. It fails with ErrMalformed when
// the payload can't hold the header and every declared loop.
func ReadSampler(payload []byte) (*SamplerInfo, error) {
	if len(payload) < smplHeaderSize {
		return nil, fmt.Errorf("%w: smpl chunk of %d bytes, need at least %d", ErrMalformed, len(payload), smplHeaderSize)
	}

	info := &SamplerInfo{
		SamplePeriod:      binary.LittleEndian.Uint32(payload[8:12]),
		MIDIUnityNote:     binary.LittleEndian.Uint32(payload[12:16]),
		MIDIPitchFraction: binary.LittleEndian.Uint32(payload[16:20]),
		SMPTEFormat:       binary.LittleEndian.Uint32(payload[20:24]),
		SMPTEOffset:       binary.LittleEndian.Uint32(payload[24:28]),
		NumSampleLoops:    binary.LittleEndian.Uint32(payload[28:32]),
		SamplerDataSize:   binary.LittleEndian.Uint32(payload[32:36]),
	}
	copy(info.Manufacturer[:], payload[0:4])
	copy(info.Product[:], payload[4:8])

	need := uint64(smplHeaderSize) + uint64(info.NumSampleLoops)*smplLoopSize
	if uint64(len(payload)) < need {
		return nil, fmt.Errorf("%w: smpl chunk of %d bytes can't hold %d loops",
			ErrMalformed, len(payload), info.NumSampleLoops)
	}

	info.Loops = make([]SampleLoop, info.NumSampleLoops)
	for i := range info.Loops {
		entry := payload[smplHeaderSize+i*smplLoopSize:]
		sampleLoop := &info.Loops[i]
		copy(sampleLoop.CuePointID[:], entry[0:4])
		sampleLoop.Type = binary.LittleEndian.Uint32(entry[4:8])
		sampleLoop.Start = binary.LittleEndian.Uint32(entry[8:12])
		sampleLoop.End = binary.LittleEndian.Uint32(entry[12:16])
		sampleLoop.Fraction = binary.LittleEndian.Uint32(entry[16:20])
		sampleLoop.PlayCount = binary.LittleEndian.Uint32(entry[20:24])
	}

	return info, nil
}

// forwardLoop returns the first forward loop of the chunk. The loop length
// counts the inclusive end frame. Entries ending before they start are
// skipped.
func (s *SamplerInfo) forwardLoop() (Loop, bool) {
	for _, l := range s.Loops {
		if l.Type != LoopForward || l.End < l.Start {
			continue
		}

		return Loop{Start: l.Start, Length: l.End - l.Start + 1}, true
	}

	return Loop{}, false
}
