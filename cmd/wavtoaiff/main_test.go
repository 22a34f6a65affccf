package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/wavload"
	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
)

func writeWav(t *testing.T, path string, bitDepth int, samples []int) {
	t.Helper()

	enc := wavload.NewEncoder(22050, bitDepth, 1, wavload.FormatPCM)

	err := enc.AppendIntBuffer(&audio.IntBuffer{
		Format: &audio.Format{NumChannels: 1, SampleRate: 22050},
		Data:   samples,
	})
	if err != nil {
		t.Fatalf("append samples: %v", err)
	}

	b, err := enc.Bytes()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func TestRunConvertsToAIFF(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tone.wav")
	samples := []int{0, 1000, -1000, 32767, -32768, 42}
	writeWav(t, src, 16, samples)

	var out bytes.Buffer
	if err := run([]string{"-path", src}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	outPath := filepath.Join(dir, "tone.aif")
	if !strings.Contains(out.String(), outPath) {
		t.Fatalf("unexpected output %q", out.String())
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("open converted file: %v", err)
	}
	defer f.Close()

	dec := aiff.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatalf("converted file is not a valid aiff")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decode aiff: %v", err)
	}

	if int(dec.BitDepth) != 16 {
		t.Fatalf("bit depth=%d, want 16", dec.BitDepth)
	}

	if buf.Format.SampleRate != 22050 {
		t.Fatalf("sample rate=%d, want 22050", buf.Format.SampleRate)
	}

	if len(buf.Data) != len(samples) {
		t.Fatalf("got %d samples, want %d", len(buf.Data), len(samples))
	}

	for i := range samples {
		if buf.Data[i] != samples[i] {
			t.Fatalf("sample[%d]=%d, want %d", i, buf.Data[i], samples[i])
		}
	}
}

func TestRunMissingPath(t *testing.T) {
	err := run(nil, &bytes.Buffer{})
	if !errors.Is(err, errMissingPath) {
		t.Fatalf("expected errMissingPath, got %v", err)
	}
}

func TestRunRejectsInvalidWav(t *testing.T) {
	src := filepath.Join(t.TempDir(), "bad.wav")
	if err := os.WriteFile(src, bytes.Repeat([]byte{0}, 64), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	err := run([]string{"-path", src}, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error for invalid wav")
	}
}

func TestToSignedSamples(t *testing.T) {
	tests := []struct {
		name     string
		bitDepth int
		in       []int
		want     []int
	}{
		{name: "8bit recentered", bitDepth: 8, in: []int{0, 128, 255}, want: []int{-128, 0, 127}},
		{name: "16bit untouched", bitDepth: 16, in: []int{-5, 0, 5}, want: []int{-5, 0, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toSignedSamples(&audio.IntBuffer{Data: tt.in}, tt.bitDepth)
			for i := range tt.want {
				if got.Data[i] != tt.want[i] {
					t.Fatalf("sample[%d]=%d, want %d", i, got.Data[i], tt.want[i])
				}
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	got, err := expandHome("relative/file.wav")
	if err != nil {
		t.Fatalf("expandHome failed: %v", err)
	}

	if got != "relative/file.wav" {
		t.Fatalf("expandHome changed a relative path: %q", got)
	}
}
