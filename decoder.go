package wavload

import "fmt"

// Audio describes a playable audio resource found in a wav buffer. Data,
// FmtChunk and Table borrow the decoded buffer: they are only valid while
// the buffer is kept alive and unmodified.
type Audio struct {
	// Form is the RIFF sub-type, WAVE or XWMA.
	Form   [4]byte
	Format Format
	// Extensible is set for WAVE_FORMAT_EXTENSIBLE files only.
	Extensible *Extensible
	// FmtChunk is the raw fmt payload, for playback engines that need the
	// codec specific header (ADPCM coefficients, XMA2 stream layout).
	FmtChunk []byte
	// Data is the content of the data chunk.
	Data []byte
	// DataOffset is the offset of Data in the decoded buffer.
	DataOffset int
	// Loop is the first playable loop region, zero when there is none.
	Loop Loop
	// TableKind is the seek table the codec requires.
	TableKind TableKind
	// Table is the seek table, nil when the codec needs none or the file
	// doesn't carry it.
	Table *Table
}

// Decode decodes an in-memory wav file, including its loop region and the
// seek table required by xWMA and XMA2 codecs.
func Decode(buf []byte) (*Audio, error) {
	info, err := FindFormatAndData(buf)
	if err != nil {
		return nil, err
	}

	loop, err := FindLoop(buf)
	if err != nil {
		return nil, err
	}

	a := newAudio(info)
	a.Loop = loop

	if id, ok := info.TableKind.ChunkID(); ok {
		a.Table, err = FindTable(buf, id)
		if err != nil {
			return nil, err
		}
	}

	return a, nil
}

// DecodeBasic decodes the format and data of an in-memory wav file. Codecs
// that need a seek table are rejected with ErrUnsupportedFormat; loop
// metadata is not read.
func DecodeBasic(buf []byte) (*Audio, error) {
	info, err := FindFormatAndData(buf)
	if err != nil {
		return nil, err
	}

	if info.TableKind != TableNone {
		return nil, fmt.Errorf("%w: %s needs a %s table", ErrUnsupportedFormat,
			FormatName(info.EffectiveFormatTag()), info.TableKind)
	}

	return newAudio(info), nil
}

func newAudio(info *FormatInfo) *Audio {
	return &Audio{
		Form:       info.Form,
		Format:     info.Format,
		Extensible: info.Extensible,
		FmtChunk:   info.FmtChunk,
		Data:       info.Data,
		DataOffset: info.DataOffset,
		TableKind:  info.TableKind,
	}
}

// EffectiveFormatTag returns the codec tag, resolving extensible headers to
// their sub-format.
func (a *Audio) EffectiveFormatTag() uint16 {
	if a == nil {
		return 0
	}

	return effectiveFormatTag(a.Format, a.Extensible)
}

// String implements the Stringer interface.
func (a *Audio) String() string {
	if a == nil {
		return "<nil>"
	}

	return fmt.Sprintf("%s %s, %d ch, %d Hz, %d bit, %d bytes of data, loop %s, table %s",
		a.Form[:], FormatName(a.EffectiveFormatTag()), a.Format.Channels, a.Format.SampleRate,
		a.Format.BitsPerSample, len(a.Data), a.Loop, a.TableKind)
}
