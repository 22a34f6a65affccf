package wavload

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

var (
	// CIDList is the chunk ID of a LIST chunk.
	CIDList = [4]byte{'L', 'I', 'S', 'T'}
	// CIDInfo is the list type of a LIST chunk holding text metadata.
	CIDInfo = [4]byte{'I', 'N', 'F', 'O'}

	// See http://bwfmetaedit.sourceforge.net/listinfo.html
	markerIART    = [4]byte{'I', 'A', 'R', 'T'}
	markerISFT    = [4]byte{'I', 'S', 'F', 'T'}
	markerICRD    = [4]byte{'I', 'C', 'R', 'D'}
	markerICOP    = [4]byte{'I', 'C', 'O', 'P'}
	markerIARL    = [4]byte{'I', 'A', 'R', 'L'}
	markerINAM    = [4]byte{'I', 'N', 'A', 'M'}
	markerIENG    = [4]byte{'I', 'E', 'N', 'G'}
	markerIGNR    = [4]byte{'I', 'G', 'N', 'R'}
	markerIPRD    = [4]byte{'I', 'P', 'R', 'D'}
	markerISRC    = [4]byte{'I', 'S', 'R', 'C'}
	markerISBJ    = [4]byte{'I', 'S', 'B', 'J'}
	markerICMT    = [4]byte{'I', 'C', 'M', 'T'}
	markerITRK    = [4]byte{'I', 'T', 'R', 'K'}
	markerITRKBug = [4]byte{'i', 't', 'r', 'k'}
	markerITCH    = [4]byte{'I', 'T', 'C', 'H'}
	markerIKEY    = [4]byte{'I', 'K', 'E', 'Y'}
	markerIMED    = [4]byte{'I', 'M', 'E', 'D'}
)

// Info is the text metadata of a LIST INFO chunk.
type Info struct {
	Artist       string
	Comments     string
	Copyright    string
	CreationDate string
	Engineer     string
	Technician   string
	Genre        string
	Keywords     string
	Medium       string
	Title        string
	Product      string
	Subject      string
	Software     string
	Source       string
	Location     string
	TrackNbr     string
}

// IsZero reports whether no field is set.
func (i *Info) IsZero() bool {
	return i == nil || *i == Info{}
}

func (i *Info) fields() []struct {
	marker [4]byte
	value  *string
} {
	return []struct {
		marker [4]byte
		value  *string
	}{
		{markerIART, &i.Artist},
		{markerICMT, &i.Comments},
		{markerICOP, &i.Copyright},
		{markerICRD, &i.CreationDate},
		{markerIENG, &i.Engineer},
		{markerITCH, &i.Technician},
		{markerIGNR, &i.Genre},
		{markerIKEY, &i.Keywords},
		{markerIMED, &i.Medium},
		{markerINAM, &i.Title},
		{markerIPRD, &i.Product},
		{markerISBJ, &i.Subject},
		{markerISFT, &i.Software},
		{markerISRC, &i.Source},
		{markerIARL, &i.Location},
		{markerITRK, &i.TrackNbr},
	}
}

// ReadListInfo decodes a LIST chunk payload. Lists of another type (adtl)
// yield a nil Info and no error. Unknown entries are skipped. The pad byte
// following an odd sized entry is tolerated.
func ReadListInfo(payload []byte) (*Info, error) {
	if len(payload) < 4 {
		return nil, fmt.Errorf("%w: LIST chunk of %d bytes has no list type", ErrMalformed, len(payload))
	}

	if !bytes.Equal(payload[:4], CIDInfo[:]) {
		return nil, nil
	}

	info := &Info{}
	byMarker := make(map[[4]byte]*string)

	for _, f := range info.fields() {
		byMarker[f.marker] = f.value
	}

	byMarker[markerITRKBug] = &info.TrackNbr

	off := uint64(4)
	for off+chunkHeaderSize <= uint64(len(payload)) {
		entry := readChunkHeader(payload, int(off))

		end := off + chunkHeaderSize + uint64(entry.Size)
		if end > uint64(len(payload)) {
			return nil, fmt.Errorf("%w: INFO entry %q of %d bytes runs past the LIST chunk",
				ErrMalformed, entry.ID[:], entry.Size)
		}

		if dst, ok := byMarker[entry.ID]; ok {
			*dst = nullTermStr(payload[off+chunkHeaderSize : end])
		}

		off = end
		if entry.Size%2 == 1 && off < uint64(len(payload)) && payload[off] == 0 {
			off++
		}
	}

	return info, nil
}

// FindInfo returns the LIST INFO metadata of buf, nil when the container has
// none.
func FindInfo(buf []byte) (*Info, error) {
	if len(buf) == 0 {
		return nil, ErrInvalidArgument
	}

	c, err := locateContainer(buf)
	if err != nil {
		return nil, err
	}

	if err := c.requireBody(buf); err != nil {
		return nil, err
	}

	off := c.bodyStart
	for {
		ref, ok := scanChunks(buf, off, c.bodyEnd, CIDList)
		if !ok && c.clipped {
			return nil, fmt.Errorf("%w: no LIST INFO chunk in the %d bytes held", ErrTruncated, len(buf))
		}

		if !ok {
			return nil, nil
		}

		payload, err := ref.Payload(buf)
		if err != nil {
			return nil, err
		}

		info, err := ReadListInfo(payload)
		if err != nil || info != nil {
			return info, err
		}

		// adtl or another list type, look further.
		off = ref.PayloadOffset() + len(payload)
	}
}

func encodeListInfo(info *Info) []byte {
	buf := bytes.NewBuffer(nil)
	buf.Write(CIDInfo[:])

	for _, field := range info.fields() {
		val := *field.value
		if val == "" {
			continue
		}

		buf.Write(field.marker[:])
		_ = binary.Write(buf, binary.LittleEndian, uint32(len(val)+1))
		buf.WriteString(val)
		buf.WriteByte(0)
	}

	return buf.Bytes()
}

func nullTermStr(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}

	return string(b)
}
