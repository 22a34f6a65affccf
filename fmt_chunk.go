package wavload

import (
	"bytes"
	"encoding/binary"
)

// Format tags recognized by the format resolver.
const (
	FormatPCM        uint16 = 0x0001
	FormatADPCM      uint16 = 0x0002
	FormatIEEEFloat  uint16 = 0x0003
	FormatWMAudio2   uint16 = 0x0161
	FormatWMAudio3   uint16 = 0x0162
	FormatXMA2       uint16 = 0x0166
	FormatExtensible uint16 = 0xFFFE
)

// Sizes of the fmt chunk layouts, in bytes.
const (
	// waveFormatSize is the legacy WAVEFORMAT header without bits per sample.
	waveFormatSize = 14
	// pcmFormatSize adds the bits per sample field.
	pcmFormatSize = 16
	// waveFormatExSize adds the extra data size (cbSize) field.
	waveFormatExSize = 18
	// extensibleFormatSize holds valid bits, channel mask and sub-format GUID.
	extensibleFormatSize = 40
	// xma2FormatSize is the full XMA2WAVEFORMATEX header.
	xma2FormatSize = 52

	adpcmExtraSize      = 32
	xma2ExtraSize       = xma2FormatSize - waveFormatExSize
	extensibleExtraSize = extensibleFormatSize - waveFormatExSize
)

// ksSubFormatGUIDTail is shared by every KSDATAFORMAT_SUBTYPE derived from a
// legacy format tag: {XXXXXXXX-0000-0010-8000-00AA00389B71}.
var ksSubFormatGUIDTail = [12]byte{0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71}

// Format is the format descriptor read from the fmt chunk.
type Format struct {
	FormatTag      uint16
	Channels       uint16
	SampleRate     uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16
	// ExtraSize is the cbSize field, 0 when the fmt chunk is only 16 bytes.
	ExtraSize uint16
}

// Extensible stores WAVE_FORMAT_EXTENSIBLE extra fields.
type Extensible struct {
	ValidBitsPerSample uint16
	ChannelMask        uint32
	SubFormat          [16]byte
}

// SubFormatTag returns the legacy format tag carried by the sub-format GUID.
func (e *Extensible) SubFormatTag() uint32 {
	if e == nil {
		return 0
	}

	return binary.LittleEndian.Uint32(e.SubFormat[:4])
}

// HasBaseGUID reports whether the sub-format GUID is derived from a legacy
// format tag.
func (e *Extensible) HasBaseGUID() bool {
	return e != nil && bytes.Equal(e.SubFormat[4:], ksSubFormatGUIDTail[:])
}

// readFormat reads the fixed fields of a fmt payload of at least
// pcmFormatSize bytes.
func readFormat(payload []byte) Format {
	f := Format{
		FormatTag:      binary.LittleEndian.Uint16(payload[0:2]),
		Channels:       binary.LittleEndian.Uint16(payload[2:4]),
		SampleRate:     binary.LittleEndian.Uint32(payload[4:8]),
		AvgBytesPerSec: binary.LittleEndian.Uint32(payload[8:12]),
		BlockAlign:     binary.LittleEndian.Uint16(payload[12:14]),
		BitsPerSample:  binary.LittleEndian.Uint16(payload[14:16]),
	}

	if len(payload) >= waveFormatExSize {
		f.ExtraSize = binary.LittleEndian.Uint16(payload[16:18])
	}

	return f
}

// readExtensible reads the extensible fields of a fmt payload of at least
// extensibleFormatSize bytes.
func readExtensible(payload []byte) *Extensible {
	ext := &Extensible{
		ValidBitsPerSample: binary.LittleEndian.Uint16(payload[18:20]),
		ChannelMask:        binary.LittleEndian.Uint32(payload[20:24]),
	}
	copy(ext.SubFormat[:], payload[24:40])

	return ext
}

func effectiveFormatTag(f Format, ext *Extensible) uint16 {
	if f.FormatTag == FormatExtensible && ext != nil {
		return uint16(ext.SubFormatTag())
	}

	return f.FormatTag
}

// MakeSubFormatGUID returns the extensible sub-format GUID for a legacy tag.
func MakeSubFormatGUID(formatTag uint16) [16]byte {
	var guid [16]byte
	binary.LittleEndian.PutUint32(guid[:4], uint32(formatTag))
	copy(guid[4:], ksSubFormatGUIDTail[:])

	return guid
}

// FormatName returns a short human readable name for a format tag.
func FormatName(formatTag uint16) string {
	switch formatTag {
	case FormatPCM:
		return "PCM"
	case FormatADPCM:
		return "MS-ADPCM"
	case FormatIEEEFloat:
		return "IEEE float"
	case FormatWMAudio2:
		return "WMA v2"
	case FormatWMAudio3:
		return "WMA Pro"
	case FormatXMA2:
		return "XMA2"
	case FormatExtensible:
		return "extensible"
	default:
		return "unknown"
	}
}
