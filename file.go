package wavload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ReadFile reads a whole wav file into memory. Failing to open, stat or read
// the file wraps ErrFileIO; a file yielding fewer bytes than its size fails
// with ErrShortRead.
func ReadFile(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidArgument)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileIO, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileIO, err)
	}

	size := fi.Size()
	if size > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrFileTooLarge, path, size)
	}

	if size < minWaveFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, a wave file needs at least %d",
			ErrTruncated, path, size, minWaveFileSize)
	}

	buf := make([]byte, size)

	n, err := io.ReadFull(f, buf)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: read %d of %d bytes from %s", ErrShortRead, n, size, path)
		}

		return nil, fmt.Errorf("%w: %w", ErrFileIO, err)
	}

	return buf, nil
}

// DecodeFile reads and decodes a wav file. The returned Audio keeps the file
// content alive.
func DecodeFile(path string) (*Audio, error) {
	buf, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Decode(buf)
}

// DecodeBasicFile reads a wav file and decodes it with DecodeBasic.
func DecodeBasicFile(path string) (*Audio, error) {
	buf, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	return DecodeBasic(buf)
}

// DecodeFiles decodes multiple files concurrently. Results are returned in
// the order of paths. The first failure cancels the remaining work.
func DecodeFiles(ctx context.Context, paths ...string) ([]*Audio, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*Audio, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			a, err := DecodeFile(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = a

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
