package wavload

import (
	"bytes"
	"encoding/binary"
)

// rawChunk builds a chunk whose declared size matches its payload.
func rawChunk(id string, payload []byte) []byte {
	return rawChunkSized(id, uint32(len(payload)), payload)
}

// rawChunkSized builds a chunk declaring size, whatever the payload length.
func rawChunkSized(id string, size uint32, payload []byte) []byte {
	out := make([]byte, 0, chunkHeaderSize+len(payload))
	out = append(out, id[:4]...)
	out = binary.LittleEndian.AppendUint32(out, size)

	return append(out, payload...)
}

// riffFile wraps chunks in a RIFF container of the passed sub-type.
func riffFile(form string, chunks ...[]byte) []byte {
	body := bytes.NewBufferString(form[:4])
	for _, ch := range chunks {
		body.Write(ch)
	}

	return rawChunk("RIFF", body.Bytes())
}

// cutTail drops the last n bytes of buf, keeping the declared RIFF size.
func cutTail(buf []byte, n int) []byte {
	return buf[:len(buf)-n]
}

// waveFile builds a WAVE container with the passed fmt payload, extra
// chunks and a 4 byte data chunk.
func waveFile(fmtPayload []byte, extra ...[]byte) []byte {
	chunks := [][]byte{rawChunk("fmt ", fmtPayload)}
	chunks = append(chunks, extra...)
	chunks = append(chunks, rawChunk("data", []byte{1, 2, 3, 4}))

	return riffFile("WAVE", chunks...)
}

func pcmFmt(tag uint16, channels uint16, sampleRate uint32, bitsPerSample uint16) []byte {
	blockAlign := channels * uint16(bytesPerSample(int(bitsPerSample)))

	out := binary.LittleEndian.AppendUint16(nil, tag)
	out = binary.LittleEndian.AppendUint16(out, channels)
	out = binary.LittleEndian.AppendUint32(out, sampleRate)
	out = binary.LittleEndian.AppendUint32(out, sampleRate*uint32(blockAlign))
	out = binary.LittleEndian.AppendUint16(out, blockAlign)

	return binary.LittleEndian.AppendUint16(out, bitsPerSample)
}

// exFmt builds a WAVEFORMATEX payload whose cbSize matches extra.
func exFmt(tag uint16, extra []byte) []byte {
	return exFmtSized(tag, uint16(len(extra)), extra)
}

func exFmtSized(tag uint16, cbSize uint16, extra []byte) []byte {
	out := pcmFmt(tag, 2, 44100, 16)
	out = binary.LittleEndian.AppendUint16(out, cbSize)

	return append(out, extra...)
}

func extensibleFmt(subFormat [16]byte) []byte {
	extra := binary.LittleEndian.AppendUint16(nil, 16)
	extra = binary.LittleEndian.AppendUint32(extra, 0x3)
	extra = append(extra, subFormat[:]...)

	return exFmt(FormatExtensible, extra)
}

type testLoop struct {
	typ, start, third uint32
}

// smplPayload builds a smpl chunk payload. The third loop field is the
// inclusive end frame.
func smplPayload(loops ...testLoop) []byte {
	out := make([]byte, 28)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(loops)))
	out = binary.LittleEndian.AppendUint32(out, 0)

	for _, l := range loops {
		out = append(out, 'c', 'u', 'e', ' ')
		out = binary.LittleEndian.AppendUint32(out, l.typ)
		out = binary.LittleEndian.AppendUint32(out, l.start)
		out = binary.LittleEndian.AppendUint32(out, l.third)
		out = binary.LittleEndian.AppendUint32(out, 0)
		out = binary.LittleEndian.AppendUint32(out, 0)
	}

	return out
}

// wsmpPayload builds a wsmp chunk payload with a header of headerSize bytes.
// The third loop field is the loop length.
func wsmpPayload(headerSize uint32, loops ...testLoop) []byte {
	out := binary.LittleEndian.AppendUint32(nil, headerSize)
	out = binary.LittleEndian.AppendUint16(out, 60)
	out = binary.LittleEndian.AppendUint16(out, 0xFFF6)
	out = binary.LittleEndian.AppendUint32(out, 0)
	out = binary.LittleEndian.AppendUint32(out, DLSNoTruncation)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(loops)))

	for len(out) < int(headerSize) {
		out = append(out, 0)
	}

	for _, l := range loops {
		out = binary.LittleEndian.AppendUint32(out, wsmpLoopSize)
		out = binary.LittleEndian.AppendUint32(out, l.typ)
		out = binary.LittleEndian.AppendUint32(out, l.start)
		out = binary.LittleEndian.AppendUint32(out, l.third)
	}

	return out
}

func beTable(values ...uint32) []byte {
	var out []byte
	for _, v := range values {
		out = binary.BigEndian.AppendUint32(out, v)
	}

	return out
}
