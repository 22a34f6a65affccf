package wavload

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestFindTable(t *testing.T) {
	wma := exFmt(FormatWMAudio2, nil)
	buf := waveFile(wma, rawChunk("dpds", beTable(4096, 8192, 12288)))

	table, err := FindTable(buf, CIDDpds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table.ID != CIDDpds || table.Len() != 3 {
		t.Fatalf("unexpected table %q with %d entries", table.ID[:], table.Len())
	}

	// Entries are read as stored, byte swapping is left to the caller.
	if got := table.At(0); got != 0x00100000 {
		t.Fatalf("At(0)=%#x, want %#x", got, 0x00100000)
	}

	if got := table.At(2); got != binary.LittleEndian.Uint32(beTable(12288)) {
		t.Fatalf("At(2)=%#x", got)
	}

	values := table.Values(binary.BigEndian)
	for i, want := range []uint32{4096, 8192, 12288} {
		if values[i] != want {
			t.Fatalf("value[%d]=%d, want %d", i, values[i], want)
		}
	}

	ref, _ := FindChunk(buf[12:], CIDDpds)
	if &table.Raw()[0] != &buf[12+ref.PayloadOffset()] {
		t.Fatal("table is not a view into the buffer")
	}
}

func TestFindTableMissing(t *testing.T) {
	table, err := FindTable(waveFile(exFmt(FormatWMAudio2, nil)), CIDDpds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table != nil {
		t.Fatalf("expected no table, got %q", table.ID[:])
	}

	if table.Len() != 0 || table.Values(binary.BigEndian) != nil || table.Raw() != nil {
		t.Fatal("nil table must be empty")
	}
}

func TestFindTableXWMA(t *testing.T) {
	buf := riffFile("XWMA",
		rawChunk("fmt ", exFmt(FormatWMAudio3, nil)),
		rawChunk("dpds", beTable(1, 2)),
		rawChunk("data", []byte{1, 2, 3, 4}),
	)

	table, err := FindTable(buf, CIDDpds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table.Len() != 2 {
		t.Fatalf("len=%d, want 2", table.Len())
	}
}

func TestFindTableEmpty(t *testing.T) {
	table, err := FindTable(waveFile(exFmt(FormatXMA2, make([]byte, 34)), rawChunk("seek", nil)), CIDSeek)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table == nil || table.Len() != 0 {
		t.Fatalf("expected an empty table, got %v", table)
	}
}

func TestFindTableErrors(t *testing.T) {
	wma := exFmt(FormatWMAudio2, nil)

	testCases := []struct {
		name string
		buf  []byte
		want error
	}{
		{name: "empty", buf: nil, want: ErrInvalidArgument},
		{name: "shorter than a RIFF header", buf: []byte("RIFF"), want: ErrTruncated},
		{name: "no RIFF", buf: rawChunk("LIST", make([]byte, 8)), want: ErrNotAWaveFile},
		{name: "foreign sub-type", buf: riffFile("AVI ", rawChunk("dpds", beTable(1))), want: ErrNotAWaveFile},
		{name: "no body", buf: rawChunk("RIFF", []byte("WAVE")), want: ErrTruncated},
		{name: "size not a multiple of 4", buf: waveFile(wma, rawChunk("dpds", make([]byte, 6))), want: ErrMalformed},
		{name: "cut inside the dpds header", buf: cutTail(riffFile("WAVE", rawChunk("fmt ", wma), rawChunk("data", []byte{1, 2}), rawChunk("dpds", beTable(1))), 7), want: ErrTruncated},
		{name: "payload past the end", buf: riffFile("WAVE", rawChunk("fmt ", wma), rawChunkSized("dpds", 400, beTable(1, 2))), want: ErrTruncated},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			table, err := FindTable(tc.buf, CIDDpds)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}

			if table != nil {
				t.Fatal("expected no table on error")
			}
		})
	}
}
