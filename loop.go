package wavload

import (
	"errors"
	"fmt"
)

// Loop is a loop region in sample frames. The zero value means no loop.
type Loop struct {
	Start  uint32
	Length uint32
}

// IsZero reports whether l is the empty loop region.
func (l Loop) IsZero() bool {
	return l.Start == 0 && l.Length == 0
}

func (l Loop) String() string {
	if l.IsZero() {
		return "none"
	}

	return fmt.Sprintf("start=%d length=%d", l.Start, l.Length)
}

// FindLoop returns the first playable loop region of buf. A DLS wsmp chunk is
// preferred over a MIDI smpl chunk. Missing loop metadata, or chunks too small
// for the loops they declare, yield the empty region without error. xWMA
// files never carry loop metadata.
func FindLoop(buf []byte) (Loop, error) {
	if len(buf) == 0 {
		return Loop{}, ErrInvalidArgument
	}

	if len(buf) < chunkHeaderSize+4 {
		return Loop{}, fmt.Errorf("%w: %d bytes can't hold a RIFF header", ErrTruncated, len(buf))
	}

	c, err := locateContainer(buf)
	if err != nil {
		return Loop{}, err
	}

	if c.isXWMA() {
		return Loop{}, nil
	}

	if !c.isWave() {
		return Loop{}, fmt.Errorf("%w: RIFF sub-type %q can't carry loops", ErrMalformed, c.form[:])
	}

	if err := c.requireBody(buf); err != nil {
		return Loop{}, err
	}

	ref, ok, err := c.lookup(buf, CIDWsmp)
	if err != nil {
		return Loop{}, err
	}

	if ok {
		payload, err := ref.Payload(buf)
		if err != nil {
			return Loop{}, err
		}

		dls, err := ReadDLSSample(payload)
		if err != nil && !errors.Is(err, ErrMalformed) {
			return Loop{}, err
		}

		if dls != nil {
			if l, ok := dls.playLoop(); ok {
				return l, nil
			}
		}
	}

	ref, ok, err = c.lookup(buf, CIDSmpl)
	if err != nil {
		return Loop{}, err
	}

	if ok {
		payload, err := ref.Payload(buf)
		if err != nil {
			return Loop{}, err
		}

		smpl, err := ReadSampler(payload)
		if err != nil && !errors.Is(err, ErrMalformed) {
			return Loop{}, err
		}

		if smpl != nil {
			if l, ok := smpl.forwardLoop(); ok {
				return l, nil
			}
		}
	}

	return Loop{}, nil
}
