package wavload

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/go-audio/audio"
)

// AudioFormat returns the go-audio format of the decoded content.
func (a *Audio) AudioFormat() *audio.Format {
	if a == nil {
		return nil
	}

	return &audio.Format{
		NumChannels: int(a.Format.Channels),
		SampleRate:  int(a.Format.SampleRate),
	}
}

// NumFrames returns the number of whole sample frames in Data, based on the
// block alignment. Compressed codecs report their number of blocks.
func (a *Audio) NumFrames() int {
	if a == nil || a.Format.BlockAlign == 0 {
		return 0
	}

	return len(a.Data) / int(a.Format.BlockAlign)
}

// Duration returns the play time of Data. PCM and float content is timed by
// frame count, other codecs by their average byte rate.
func (a *Audio) Duration() time.Duration {
	if a == nil {
		return 0
	}

	switch a.EffectiveFormatTag() {
	case FormatPCM, FormatIEEEFloat:
		if a.Format.SampleRate == 0 {
			return 0
		}

		return time.Duration(uint64(a.NumFrames()) * uint64(time.Second) / uint64(a.Format.SampleRate))
	default:
		if a.Format.AvgBytesPerSec == 0 {
			return 0
		}

		return time.Duration(uint64(len(a.Data)) * uint64(time.Second) / uint64(a.Format.AvgBytesPerSec))
	}
}

// IntBuffer copies integer PCM content into a go-audio buffer. Samples keep
// their stored value; 8 bit samples stay unsigned.
func (a *Audio) IntBuffer() (*audio.IntBuffer, error) {
	if a == nil {
		return nil, ErrInvalidArgument
	}

	if tag := a.EffectiveFormatTag(); tag != FormatPCM {
		return nil, fmt.Errorf("%w: %s content is not integer PCM", ErrUnsupportedFormat, FormatName(tag))
	}

	decodeF, err := sampleDecodeFunc(int(a.Format.BitsPerSample))
	if err != nil {
		return nil, err
	}

	width := bytesPerSample(int(a.Format.BitsPerSample))
	buf := &audio.IntBuffer{
		Format:         a.AudioFormat(),
		Data:           make([]int, len(a.Data)/width),
		SourceBitDepth: int(a.Format.BitsPerSample),
	}

	for i := range buf.Data {
		buf.Data[i] = decodeF(a.Data[i*width:])
	}

	return buf, nil
}

// Float32Buffer copies PCM or IEEE float content into a normalized go-audio
// buffer.
func (a *Audio) Float32Buffer() (*audio.Float32Buffer, error) {
	if a == nil {
		return nil, ErrInvalidArgument
	}

	bitDepth := int(a.Format.BitsPerSample)

	switch tag := a.EffectiveFormatTag(); tag {
	case FormatPCM:
		ints, err := a.IntBuffer()
		if err != nil {
			return nil, err
		}

		storageBitsPerSample := bytesPerSample(bitDepth) * 8
		buf := &audio.Float32Buffer{
			Format:         ints.Format,
			Data:           make([]float32, len(ints.Data)),
			SourceBitDepth: bitDepth,
		}

		for i, v := range ints.Data {
			buf.Data[i] = sampleToFloat(v, storageBitsPerSample)
		}

		return buf, nil

	case FormatIEEEFloat:
		buf := &audio.Float32Buffer{Format: a.AudioFormat(), SourceBitDepth: bitDepth}

		switch bitDepth {
		case 32:
			buf.Data = make([]float32, len(a.Data)/4)
			for i := range buf.Data {
				v := math.Float32frombits(binary.LittleEndian.Uint32(a.Data[i*4:]))
				buf.Data[i] = clampUnit(v)
			}
		case 64:
			buf.Data = make([]float32, len(a.Data)/8)
			for i := range buf.Data {
				v := math.Float64frombits(binary.LittleEndian.Uint64(a.Data[i*8:]))
				buf.Data[i] = clampUnit(float32(v))
			}
		default:
			return nil, fmt.Errorf("%w: %d bit float", ErrUnsupportedFormat, bitDepth)
		}

		return buf, nil

	default:
		return nil, fmt.Errorf("%w: %s content can't be converted to float", ErrUnsupportedFormat, FormatName(tag))
	}
}

// sampleDecodeFunc returns a function reading one little endian sample of
// the passed bit depth from the start of a byte slice.
func sampleDecodeFunc(bitsPerSample int) (func([]byte) int, error) {
	switch {
	case bitsPerSample == 8:
		return func(b []byte) int {
			return int(b[0])
		}, nil
	case bitsPerSample > 8 && bitsPerSample <= 16:
		return func(b []byte) int {
			return int(int16(binary.LittleEndian.Uint16(b)))
		}, nil
	case bitsPerSample > 16 && bitsPerSample <= 24:
		return func(b []byte) int {
			return int(audio.Int24LETo32(b[:3]))
		}, nil
	case bitsPerSample > 24 && bitsPerSample <= 32:
		return func(b []byte) int {
			return int(int32(binary.LittleEndian.Uint32(b)))
		}, nil
	default:
		return nil, fmt.Errorf("%w: %d bit PCM", ErrUnsupportedFormat, bitsPerSample)
	}
}

func bytesPerSample(bitDepth int) int {
	return (bitDepth-1)/8 + 1
}

// fullScale is the magnitude of the most negative sample of a signed
// bitDepth integer.
func fullScale(bitDepth int) float64 {
	return float64(uint64(1) << (bitDepth - 1))
}

// sampleToFloat maps a stored PCM sample to [-1, 1). 8 bit samples are
// unsigned, centered on 128.
func sampleToFloat(sample, bitDepth int) float32 {
	if bitDepth < 8 || bitDepth > 32 {
		return 0
	}

	if bitDepth == 8 {
		sample -= 128
	}

	return float32(float64(sample) / fullScale(bitDepth))
}

func clampUnit(v float32) float32 {
	return max(-1, min(v, 1))
}
