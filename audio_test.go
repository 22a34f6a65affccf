package wavload

import (
	"errors"
	"testing"
	"time"
)

func TestAudioDuration(t *testing.T) {
	testCases := []struct {
		name  string
		audio *Audio
		want  time.Duration
	}{
		{
			name:  "PCM by frames",
			audio: &Audio{Format: Format{FormatTag: FormatPCM, SampleRate: 8000, BlockAlign: 4}, Data: make([]byte, 16000)},
			want:  500 * time.Millisecond,
		},
		{
			name:  "extensible float by frames",
			audio: &Audio{Format: Format{FormatTag: FormatExtensible, SampleRate: 1000, BlockAlign: 8}, Extensible: &Extensible{SubFormat: MakeSubFormatGUID(FormatIEEEFloat)}, Data: make([]byte, 8000)},
			want:  time.Second,
		},
		{
			name:  "WMA by byte rate",
			audio: &Audio{Format: Format{FormatTag: FormatWMAudio2, SampleRate: 44100, AvgBytesPerSec: 4000, BlockAlign: 2230}, Data: make([]byte, 10000)},
			want:  2500 * time.Millisecond,
		},
		{
			name:  "zero rate",
			audio: &Audio{Format: Format{FormatTag: FormatPCM, BlockAlign: 2}, Data: make([]byte, 10)},
		},
		{
			name: "nil",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.audio.Duration(); got != tc.want {
				t.Fatalf("Duration()=%s, want %s", got, tc.want)
			}
		})
	}
}

func TestAudioNumFrames(t *testing.T) {
	a := &Audio{Format: Format{BlockAlign: 6}, Data: make([]byte, 20)}
	if got := a.NumFrames(); got != 3 {
		t.Fatalf("NumFrames()=%d, want 3", got)
	}

	if got := (&Audio{}).NumFrames(); got != 0 {
		t.Fatalf("NumFrames() without alignment=%d", got)
	}
}

func TestAudioFormat(t *testing.T) {
	a := &Audio{Format: Format{Channels: 2, SampleRate: 22050}}

	f := a.AudioFormat()
	if f.NumChannels != 2 || f.SampleRate != 22050 {
		t.Fatalf("unexpected format %+v", f)
	}

	if (*Audio)(nil).AudioFormat() != nil {
		t.Fatal("nil audio must have no format")
	}
}

func TestAudioFloat32BufferFromPCM(t *testing.T) {
	testCases := []struct {
		name     string
		bitDepth uint16
		data     []byte
		want     []float32
	}{
		{name: "8 bit", bitDepth: 8, data: []byte{0, 128, 255}, want: []float32{-1, 0, 0.9921875}},
		{name: "16 bit", bitDepth: 16, data: []byte{0x00, 0x40, 0x00, 0x80}, want: []float32{0.5, -1}},
		{name: "24 bit", bitDepth: 24, data: []byte{0x00, 0x00, 0xC0}, want: []float32{-0.5}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := &Audio{Format: Format{FormatTag: FormatPCM, Channels: 1, SampleRate: 8000, BitsPerSample: tc.bitDepth}, Data: tc.data}

			buf, err := a.Float32Buffer()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if buf.SourceBitDepth != int(tc.bitDepth) || buf.Format.SampleRate != 8000 {
				t.Fatalf("unexpected buffer shape %+v", buf)
			}

			for i := range tc.want {
				if buf.Data[i] != tc.want[i] {
					t.Fatalf("sample[%d]=%f, want %f", i, buf.Data[i], tc.want[i])
				}
			}
		})
	}
}

func TestAudioBuffersRejectCompressed(t *testing.T) {
	a := &Audio{Format: Format{FormatTag: FormatADPCM, BitsPerSample: 4}, Data: make([]byte, 8)}

	if _, err := a.IntBuffer(); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("IntBuffer: expected ErrUnsupportedFormat, got %v", err)
	}

	if _, err := a.Float32Buffer(); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Float32Buffer: expected ErrUnsupportedFormat, got %v", err)
	}

	float := &Audio{Format: Format{FormatTag: FormatIEEEFloat, BitsPerSample: 16}, Data: make([]byte, 8)}
	if _, err := float.IntBuffer(); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("IntBuffer on float: expected ErrUnsupportedFormat, got %v", err)
	}

	if _, err := float.Float32Buffer(); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("16 bit float: expected ErrUnsupportedFormat, got %v", err)
	}

	odd := &Audio{Format: Format{FormatTag: FormatPCM, BitsPerSample: 40}, Data: make([]byte, 10)}
	if _, err := odd.IntBuffer(); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("40 bit PCM: expected ErrUnsupportedFormat, got %v", err)
	}

	var nilAudio *Audio
	if _, err := nilAudio.IntBuffer(); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("nil audio: expected ErrInvalidArgument, got %v", err)
	}
}

func TestSampleToFloat(t *testing.T) {
	testCases := []struct {
		name     string
		sample   int
		bitDepth int
		want     float32
	}{
		{"8 bit center", 128, 8, 0},
		{"8 bit min", 0, 8, -1},
		{"16 bit max", 32767, 16, 32767.0 / 32768},
		{"24 bit min", -8388608, 24, -1},
		{"32 bit half", 1073741824, 32, 0.5},
		{"unsupported bit depth", 100, 48, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := sampleToFloat(tc.sample, tc.bitDepth); got != tc.want {
				t.Fatalf("sampleToFloat(%d, %d)=%f, want %f", tc.sample, tc.bitDepth, got, tc.want)
			}
		})
	}
}

func TestBytesPerSample(t *testing.T) {
	for bitDepth, want := range map[int]int{8: 1, 12: 2, 16: 2, 20: 3, 24: 3, 32: 4, 64: 8} {
		if got := bytesPerSample(bitDepth); got != want {
			t.Fatalf("bytesPerSample(%d)=%d, want %d", bitDepth, got, want)
		}
	}
}
