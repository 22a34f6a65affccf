package wavload

// RawChunk is an opaque chunk written verbatim by the Encoder.
type RawChunk struct {
	ID   [4]byte
	Data []byte
}

// Clone returns a deep copy of c.
func (c RawChunk) Clone() RawChunk {
	out := c
	out.Data = append([]byte(nil), c.Data...)

	return out
}

// knownChunks are the chunks rebuilt by the Encoder from decoded content.
// LIST INFO is rebuilt from Info, other LIST types are not.
var knownChunks = map[[4]byte]bool{
	CIDFmt:  true,
	CIDData: true,
	CIDWsmp: true,
	CIDSmpl: true,
	CIDDpds: true,
	CIDSeek: true,
}

// UnknownChunks returns copies of every container chunk the decoder doesn't
// interpret (cue, bext, fact, ...), in file order, so they can be carried
// over through Encoder.UnknownChunks. A chunk running past the buffer fails
// with ErrTruncated.
func UnknownChunks(buf []byte) ([]RawChunk, error) {
	refs, err := Chunks(buf)
	if err != nil {
		return nil, err
	}

	var out []RawChunk

	for _, ref := range refs {
		if knownChunks[ref.ID] {
			continue
		}

		payload, err := ref.Payload(buf)
		if err != nil {
			return nil, err
		}

		if ref.ID == CIDList {
			if info, err := ReadListInfo(payload); err == nil && info != nil {
				continue
			}
		}

		out = append(out, RawChunk{ID: ref.ID, Data: payload}.Clone())
	}

	return out, nil
}
