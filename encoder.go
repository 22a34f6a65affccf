package wavload

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
)

var (
	errNilEncoder              = errors.New("can't encode with a nil encoder")
	errNilBuffer               = errors.New("can't add a nil buffer")
	errNoData                  = errors.New("no sample data to encode")
	errUnsupportedFrameBitSize = errors.New("can't add frames of bit size")
	errNotPCMEncoder           = errors.New("encoder format is not integer PCM")
	errEmptyLoop               = errors.New("a smpl loop spans at least one frame")
)

// Encoder builds an in-memory wav file. Chunks are written in the order
// fmt, wsmp, smpl, seek table, LIST INFO, unknown chunks, data. No pad byte is added
// after odd sized chunks, so every chunk is found by Decode.
type Encoder struct {
	// Form is the RIFF sub-type, WAVE when left empty.
	Form   [4]byte
	Format Format
	// Extensible, when set, turns the fmt chunk into a
	// WAVE_FORMAT_EXTENSIBLE header.
	Extensible *Extensible
	// FmtExtra holds codec specific bytes written after the extra data size
	// field (and after the extensible fields, if any).
	FmtExtra []byte
	// FmtChunk overrides the fmt payload when set, written verbatim.
	FmtChunk []byte

	// DLSSample and Sampler add wsmp and smpl loop chunks.
	DLSSample *DLSSample
	Sampler   *SamplerInfo

	// TableID is CIDDpds or CIDSeek. Table entries are written big endian.
	TableID [4]byte
	Table   []uint32

	// Info adds a LIST INFO chunk when it holds at least one field.
	Info *Info

	// UnknownChunks are written verbatim before the data chunk.
	UnknownChunks []RawChunk

	Data []byte
}

// NewEncoder creates an encoder for uncompressed content of the passed shape.
// formatTag is FormatPCM or FormatIEEEFloat.
func NewEncoder(sampleRate, bitDepth, numChans int, formatTag uint16) *Encoder {
	blockAlign := numChans * bytesPerSample(bitDepth)

	return &Encoder{
		Form: CIDWave,
		Format: Format{
			FormatTag:      formatTag,
			Channels:       uint16(numChans),
			SampleRate:     uint32(sampleRate),
			AvgBytesPerSec: uint32(sampleRate * blockAlign),
			BlockAlign:     uint16(blockAlign),
			BitsPerSample:  uint16(bitDepth),
		},
	}
}

// NewEncoderFromAudio creates an encoder reproducing decoded audio: same fmt
// payload, loop region and seek table. The sample data is copied.
func NewEncoderFromAudio(a *Audio) *Encoder {
	if a == nil {
		return &Encoder{Form: CIDWave}
	}

	enc := &Encoder{
		Form:     a.Form,
		Format:   a.Format,
		FmtChunk: append([]byte(nil), a.FmtChunk...),
		Data:     append([]byte(nil), a.Data...),
	}

	if a.Extensible != nil {
		ext := *a.Extensible
		enc.Extensible = &ext
	}

	switch {
	case a.Loop.IsZero():
	case a.Loop.Length == 0:
		// Only wsmp can carry a loop of no frames.
		enc.DLSSample = &DLSSample{Loops: []DLSLoop{{Type: DLSLoopForward, Start: a.Loop.Start}}}
	default:
		enc.addSmplLoop(a.Loop)
	}

	if a.Table != nil {
		enc.TableID = a.Table.ID
		enc.Table = a.Table.Values(binary.BigEndian)
	}

	return enc
}

// SetLoop adds a forward loop to the smpl chunk, creating it if needed. A
// smpl loop stores its last frame, so a loop of no frames is rejected.
func (e *Encoder) SetLoop(l Loop) error {
	if e == nil {
		return errNilEncoder
	}

	if l.Length == 0 {
		return fmt.Errorf("%w: loop at frame %d has no length", errEmptyLoop, l.Start)
	}

	e.addSmplLoop(l)

	return nil
}

func (e *Encoder) addSmplLoop(l Loop) {
	if e.Sampler == nil {
		e.Sampler = &SamplerInfo{}
		if e.Format.SampleRate > 0 {
			e.Sampler.SamplePeriod = uint32(1e9 / float64(e.Format.SampleRate))
		}
	}

	end := l.Start + l.Length - 1
	e.Sampler.Loops = append([]SampleLoop{{Type: LoopForward, Start: l.Start, End: end}}, e.Sampler.Loops...)
}

// AppendIntBuffer encodes integer samples using the encoder bit depth.
func (e *Encoder) AppendIntBuffer(buf *audio.IntBuffer) error {
	if e == nil {
		return errNilEncoder
	}

	if buf == nil {
		return errNilBuffer
	}

	if e.Format.FormatTag != FormatPCM {
		return errNotPCMEncoder
	}

	w := &chunkWriter{buf: bytes.NewBuffer(e.Data)}

	for _, v := range buf.Data {
		var err error

		switch e.Format.BitsPerSample {
		case 8:
			err = w.addLE(uint8(v))
		case 16:
			err = w.addLE(int16(v))
		case 24:
			err = w.addLE(audio.Int32toInt24LEBytes(int32(v)))
		case 32:
			err = w.addLE(int32(v))
		default:
			return fmt.Errorf("%w: %d", errUnsupportedFrameBitSize, e.Format.BitsPerSample)
		}

		if err != nil {
			return err
		}
	}

	e.Data = w.buf.Bytes()

	return nil
}

// floatToSample quantizes a [-1, 1] sample to a bitDepth PCM integer,
// saturating at full scale. 8 bit results are unsigned.
func floatToSample(v float32, bitDepth int) int {
	if bitDepth < 8 || bitDepth > 32 {
		return 0
	}

	scale := fullScale(bitDepth)
	sample := int(min(math.Round(float64(clampUnit(v))*scale), scale-1))

	if bitDepth == 8 {
		sample += 128
	}

	return sample
}

// AppendFloat32Buffer encodes normalized samples, quantizing them for PCM
// encoders.
func (e *Encoder) AppendFloat32Buffer(buf *audio.Float32Buffer) error {
	if e == nil {
		return errNilEncoder
	}

	if buf == nil {
		return errNilBuffer
	}

	if e.Format.FormatTag == FormatPCM {
		ints := &audio.IntBuffer{Format: buf.Format, Data: make([]int, len(buf.Data))}
		for i, v := range buf.Data {
			ints.Data[i] = floatToSample(v, int(e.Format.BitsPerSample))
		}

		return e.AppendIntBuffer(ints)
	}

	if e.Format.FormatTag != FormatIEEEFloat {
		return fmt.Errorf("%w: format tag %#x", ErrUnsupportedFormat, e.Format.FormatTag)
	}

	w := &chunkWriter{buf: bytes.NewBuffer(e.Data)}

	for _, v := range buf.Data {
		var err error

		switch e.Format.BitsPerSample {
		case 32:
			err = w.addLE(clampUnit(v))
		case 64:
			err = w.addLE(float64(clampUnit(v)))
		default:
			return fmt.Errorf("%w: %d bit float", errUnsupportedFrameBitSize, e.Format.BitsPerSample)
		}

		if err != nil {
			return err
		}
	}

	e.Data = w.buf.Bytes()

	return nil
}

// Bytes returns the encoded wav file.
func (e *Encoder) Bytes() ([]byte, error) {
	if e == nil {
		return nil, errNilEncoder
	}

	if len(e.Data) == 0 {
		return nil, errNoData
	}

	body := &chunkWriter{buf: &bytes.Buffer{}}

	form := e.Form
	if form == [4]byte{} {
		form = CIDWave
	}

	if err := body.addLE(form); err != nil {
		return nil, err
	}

	if err := body.addChunk(CIDFmt, e.fmtPayload()); err != nil {
		return nil, err
	}

	if e.DLSSample != nil {
		if err := body.addChunk(CIDWsmp, encodeDLSSample(e.DLSSample)); err != nil {
			return nil, err
		}
	}

	if e.Sampler != nil {
		if err := body.addChunk(CIDSmpl, encodeSampler(e.Sampler)); err != nil {
			return nil, err
		}
	}

	if e.TableID != [4]byte{} {
		raw := make([]byte, len(e.Table)*tableEntrySize)
		for i, v := range e.Table {
			binary.BigEndian.PutUint32(raw[i*tableEntrySize:], v)
		}

		if err := body.addChunk(e.TableID, raw); err != nil {
			return nil, err
		}
	}

	if !e.Info.IsZero() {
		if err := body.addChunk(CIDList, encodeListInfo(e.Info)); err != nil {
			return nil, err
		}
	}

	for _, ch := range e.UnknownChunks {
		if err := body.addChunk(ch.ID, ch.Data); err != nil {
			return nil, err
		}
	}

	if err := body.addChunk(CIDData, e.Data); err != nil {
		return nil, err
	}

	if uint64(body.buf.Len()) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d byte RIFF body", ErrFileTooLarge, body.buf.Len())
	}

	out := &chunkWriter{buf: bytes.NewBuffer(make([]byte, 0, chunkHeaderSize+body.buf.Len()))}
	if err := out.addChunk(CIDRiff, body.buf.Bytes()); err != nil {
		return nil, err
	}

	return out.buf.Bytes(), nil
}

// WriteTo writes the encoded wav file to w.
func (e *Encoder) WriteTo(w io.Writer) (int64, error) {
	b, err := e.Bytes()
	if err != nil {
		return 0, err
	}

	n, err := w.Write(b)
	if err != nil {
		return int64(n), fmt.Errorf("failed to write wav file: %w", err)
	}

	return int64(n), nil
}

func (e *Encoder) fmtPayload() []byte {
	if len(e.FmtChunk) > 0 {
		return e.FmtChunk
	}

	f := e.Format
	w := &chunkWriter{buf: &bytes.Buffer{}}

	if e.Extensible != nil {
		f.FormatTag = FormatExtensible
	}

	// bytes.Buffer writes don't fail.
	_ = w.addLE(f.FormatTag)
	_ = w.addLE(f.Channels)
	_ = w.addLE(f.SampleRate)
	_ = w.addLE(f.AvgBytesPerSec)
	_ = w.addLE(f.BlockAlign)
	_ = w.addLE(f.BitsPerSample)

	switch {
	case e.Extensible != nil:
		_ = w.addLE(uint16(extensibleExtraSize + len(e.FmtExtra)))
		_ = w.addLE(e.Extensible.ValidBitsPerSample)
		_ = w.addLE(e.Extensible.ChannelMask)
		_ = w.addLE(e.Extensible.SubFormat)
	case len(e.FmtExtra) > 0 || (f.FormatTag != FormatPCM && f.FormatTag != FormatIEEEFloat):
		_ = w.addLE(uint16(len(e.FmtExtra)))
	}

	w.buf.Write(e.FmtExtra)

	return w.buf.Bytes()
}

func encodeSampler(s *SamplerInfo) []byte {
	w := &chunkWriter{buf: &bytes.Buffer{}}

	_ = w.addLE(s.Manufacturer)
	_ = w.addLE(s.Product)
	_ = w.addLE(s.SamplePeriod)
	_ = w.addLE(s.MIDIUnityNote)
	_ = w.addLE(s.MIDIPitchFraction)
	_ = w.addLE(s.SMPTEFormat)
	_ = w.addLE(s.SMPTEOffset)
	_ = w.addLE(uint32(len(s.Loops)))
	_ = w.addLE(uint32(0))

	for _, l := range s.Loops {
		_ = w.addLE(l)
	}

	return w.buf.Bytes()
}

func encodeDLSSample(s *DLSSample) []byte {
	w := &chunkWriter{buf: &bytes.Buffer{}}

	_ = w.addLE(uint32(wsmpHeaderSize))
	_ = w.addLE(s.UnityNote)
	_ = w.addLE(s.FineTune)
	_ = w.addLE(s.Gain)
	_ = w.addLE(s.Options)
	_ = w.addLE(uint32(len(s.Loops)))

	for _, l := range s.Loops {
		_ = w.addLE(DLSLoop{Size: wsmpLoopSize, Type: l.Type, Start: l.Start, Length: l.Length})
	}

	return w.buf.Bytes()
}

type chunkWriter struct {
	buf *bytes.Buffer
}

// addLE serializes and adds the passed value using little endian.
func (w *chunkWriter) addLE(src any) error {
	err := binary.Write(w.buf, binary.LittleEndian, src)
	if err != nil {
		return fmt.Errorf("failed to write little endian: %w", err)
	}

	return nil
}

func (w *chunkWriter) addChunk(id [4]byte, payload []byte) error {
	if uint64(len(payload)) > math.MaxUint32 {
		return fmt.Errorf("%w: %q chunk of %d bytes", ErrFileTooLarge, id[:], len(payload))
	}

	if err := w.addLE(id); err != nil {
		return err
	}

	if err := w.addLE(uint32(len(payload))); err != nil {
		return err
	}

	w.buf.Write(payload)

	return nil
}
