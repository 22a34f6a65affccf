package wavload

import "errors"

var (
	// ErrInvalidArgument is returned for a nil or empty input buffer.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrTruncated is returned when the buffer is too short to hold a
	// structurally required chunk, or when a chunk's declared size would read
	// past the end of the buffer.
	ErrTruncated = errors.New("truncated wav data")
	// ErrMalformed is returned when a chunk is present but its payload
	// violates the minimum shape required by its codec.
	ErrMalformed = errors.New("malformed wav chunk")
	// ErrNotAWaveFile is returned when no RIFF chunk is found or its sub-type
	// is neither WAVE nor XWMA.
	ErrNotAWaveFile = errors.New("not a wave file")
	// ErrUnsupportedFormat is returned for recognized but unsupported codecs,
	// and by the basic entry points for codecs that need a seek table.
	ErrUnsupportedFormat = errors.New("unsupported wav format")

	// ErrFileIO wraps failures opening, inspecting or reading a file.
	ErrFileIO = errors.New("wav file i/o failure")
	// ErrShortRead is returned when a file yields fewer bytes than its size.
	ErrShortRead = errors.New("short read")
	// ErrFileTooLarge is returned for files that can't be addressed with
	// 32-bit RIFF sizes.
	ErrFileTooLarge = errors.New("wav file too large")
)

// ErrorKind classifies errors returned by this package.
type ErrorKind uint8

const (
	// KindNone is reported for a nil error or one not produced by this package.
	KindNone ErrorKind = iota
	KindInvalidArgument
	KindTruncated
	KindMalformed
	KindNotAWaveFile
	KindUnsupportedFormat
	// KindIO covers file read failures, kept apart from decode failures.
	KindIO
)

var kindNames = [...]string{
	KindNone:              "none",
	KindInvalidArgument:   "invalid argument",
	KindTruncated:         "truncated",
	KindMalformed:         "malformed",
	KindNotAWaveFile:      "not a wave file",
	KindUnsupportedFormat: "unsupported format",
	KindIO:                "i/o",
}

func (k ErrorKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "unknown"
}

// KindOf returns the kind of a decode error.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	case errors.Is(err, ErrTruncated):
		return KindTruncated
	case errors.Is(err, ErrMalformed):
		return KindMalformed
	case errors.Is(err, ErrNotAWaveFile):
		return KindNotAWaveFile
	case errors.Is(err, ErrUnsupportedFormat):
		return KindUnsupportedFormat
	case errors.Is(err, ErrFileIO), errors.Is(err, ErrShortRead), errors.Is(err, ErrFileTooLarge):
		return KindIO
	default:
		return KindNone
	}
}
