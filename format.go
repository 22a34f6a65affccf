package wavload

import (
	"fmt"
)

// minWaveFileSize is the smallest buffer that can hold a RIFF header, a fmt
// chunk header and a legacy WAVEFORMAT.
const minWaveFileSize = 2*chunkHeaderSize + 4 + waveFormatSize

// TableKind names the auxiliary seek table a codec needs to be played.
type TableKind uint8

const (
	// TableNone is reported for codecs that play without a seek table.
	TableNone TableKind = iota
	// TableDpds is reported for xWMA codecs, which need a dpds chunk.
	TableDpds
	// TableSeek is reported for XMA2, which needs a seek chunk.
	TableSeek
)

func (k TableKind) String() string {
	switch k {
	case TableNone:
		return "none"
	case TableDpds:
		return "dpds"
	case TableSeek:
		return "seek"
	default:
		return fmt.Sprintf("TableKind(%d)", uint8(k))
	}
}

// ChunkID returns the ID of the chunk holding the table, if any.
func (k TableKind) ChunkID() ([4]byte, bool) {
	switch k {
	case TableDpds:
		return CIDDpds, true
	case TableSeek:
		return CIDSeek, true
	default:
		return [4]byte{}, false
	}
}

// FormatInfo is the result of FindFormatAndData. FmtChunk and Data are
// sub-slices of the decoded buffer.
type FormatInfo struct {
	// Form is the RIFF sub-type, WAVE or XWMA.
	Form   [4]byte
	Format Format
	// Extensible is set for WAVE_FORMAT_EXTENSIBLE payloads only.
	Extensible *Extensible
	// FmtChunk is the raw fmt payload, codec specific trailing fields included.
	FmtChunk   []byte
	Data       []byte
	DataOffset int
	TableKind  TableKind
}

// FindFormatAndData locates the RIFF container of buf, validates its fmt
// chunk against the codec it announces and locates the data chunk.
func FindFormatAndData(buf []byte) (*FormatInfo, error) {
	if len(buf) == 0 {
		return nil, ErrInvalidArgument
	}

	if len(buf) < minWaveFileSize {
		return nil, fmt.Errorf("%w: %d bytes, a wave file needs at least %d", ErrTruncated, len(buf), minWaveFileSize)
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

	fmtChunk, ok, err := c.lookup(buf, CIDFmt)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, fmt.Errorf("%w: fmt chunk not found", ErrMalformed)
	}

	if fmtChunk.Size < pcmFormatSize {
		return nil, fmt.Errorf("%w: fmt chunk of %d bytes, need at least %d", ErrMalformed, fmtChunk.Size, pcmFormatSize)
	}

	fmtPayload, err := fmtChunk.Payload(buf)
	if err != nil {
		return nil, err
	}

	info := &FormatInfo{
		Form:     c.form,
		Format:   readFormat(fmtPayload),
		FmtChunk: fmtPayload,
	}

	info.TableKind, info.Extensible, err = validateFormat(info.Format, fmtPayload)
	if err != nil {
		return nil, err
	}

	dataChunk, ok, err := c.lookup(buf, CIDData)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, fmt.Errorf("%w: data chunk not found", ErrMalformed)
	}

	if dataChunk.Size == 0 {
		return nil, fmt.Errorf("%w: empty data chunk", ErrMalformed)
	}

	info.Data, err = dataChunk.Payload(buf)
	if err != nil {
		return nil, err
	}

	info.DataOffset = dataChunk.PayloadOffset()

	return info, nil
}

// validateFormat checks the payload shape required by the format tag. Only
// the fields needed to size and classify the payload are checked; channel
// counts, rates and alignment are left to the playback engine.
func validateFormat(f Format, payload []byte) (TableKind, *Extensible, error) {
	switch f.FormatTag {
	case FormatPCM, FormatIEEEFloat:
		// PCMWAVEFORMAT or WAVEFORMATEX, both at least pcmFormatSize.
		return TableNone, nil, nil
	}

	size := len(payload)
	if size < waveFormatExSize {
		return TableNone, nil, fmt.Errorf("%w: %s fmt chunk of %d bytes, need at least %d",
			ErrMalformed, FormatName(f.FormatTag), size, waveFormatExSize)
	}

	if size < waveFormatExSize+int(f.ExtraSize) {
		return TableNone, nil, fmt.Errorf("%w: fmt chunk of %d bytes can't hold %d extra bytes",
			ErrMalformed, size, f.ExtraSize)
	}

	switch f.FormatTag {
	case FormatWMAudio2, FormatWMAudio3:
		return TableDpds, nil, nil

	case FormatXMA2:
		if size < xma2FormatSize || f.ExtraSize < xma2ExtraSize {
			return TableNone, nil, fmt.Errorf("%w: XMA2 fmt chunk of %d bytes with %d extra bytes",
				ErrMalformed, size, f.ExtraSize)
		}

		return TableSeek, nil, nil

	case FormatADPCM:
		if size < waveFormatExSize+adpcmExtraSize || f.ExtraSize < adpcmExtraSize {
			return TableNone, nil, fmt.Errorf("%w: MS-ADPCM fmt chunk of %d bytes with %d extra bytes",
				ErrMalformed, size, f.ExtraSize)
		}

		return TableNone, nil, nil

	case FormatExtensible:
		if size < extensibleFormatSize || f.ExtraSize < extensibleExtraSize {
			return TableNone, nil, fmt.Errorf("%w: extensible fmt chunk of %d bytes with %d extra bytes",
				ErrMalformed, size, f.ExtraSize)
		}

		ext := readExtensible(payload)
		if !ext.HasBaseGUID() {
			return TableNone, nil, fmt.Errorf("%w: extensible sub-format % x", ErrUnsupportedFormat, ext.SubFormat[:])
		}

		// MS-ADPCM and XMA2 can't be wrapped in an extensible header.
		switch ext.SubFormatTag() {
		case uint32(FormatPCM), uint32(FormatIEEEFloat):
			return TableNone, ext, nil
		case uint32(FormatWMAudio2), uint32(FormatWMAudio3):
			return TableDpds, ext, nil
		default:
			return TableNone, nil, fmt.Errorf("%w: extensible sub-format tag %#x", ErrUnsupportedFormat, ext.SubFormatTag())
		}

	default:
		return TableNone, nil, fmt.Errorf("%w: format tag %#x", ErrUnsupportedFormat, f.FormatTag)
	}
}

// EffectiveFormatTag returns the codec tag, resolving extensible headers to
// their sub-format.
func (i *FormatInfo) EffectiveFormatTag() uint16 {
	if i == nil {
		return 0
	}

	return effectiveFormatTag(i.Format, i.Extensible)
}
