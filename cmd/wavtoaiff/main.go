// This tool converts a PCM wav file into an identical aiff file and stores
// it in the same folder as the source.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/cwbudde/wavload"
	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
)

var errMissingPath = errors.New("you must set the -path flag")

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	flagSet := flag.NewFlagSet("wavtoaiff", flag.ContinueOnError)
	flagSet.SetOutput(out)

	path := flagSet.String("path", "", "The path to the wav file to convert to aiff")

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if *path == "" {
		return errMissingPath
	}

	sourcePath, err := expandHome(*path)
	if err != nil {
		return err
	}

	a, err := wavload.DecodeBasicFile(sourcePath)
	if err != nil {
		return fmt.Errorf("invalid WAV file %s: %w", sourcePath, err)
	}

	buf, err := a.IntBuffer()
	if err != nil {
		return err
	}

	outPath := sourcePath[:len(sourcePath)-len(filepath.Ext(sourcePath))] + ".aif"

	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer outFile.Close()

	bitDepth := int(a.Format.BitsPerSample)
	encoder := aiff.NewEncoder(outFile, int(a.Format.SampleRate), bitDepth, int(a.Format.Channels))

	if err := encoder.Write(toSignedSamples(buf, bitDepth)); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalize %s: %w", outPath, err)
	}

	fmt.Fprintf(out, "Wav file converted to %s\n", outPath)

	return nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	usr, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("failed to get the user home directory: %w", err)
	}

	return strings.Replace(path, "~", usr.HomeDir, 1), nil
}

// toSignedSamples recenters unsigned 8 bit wav samples, aiff stores every
// depth signed.
func toSignedSamples(buf *audio.IntBuffer, bitDepth int) *audio.IntBuffer {
	if bitDepth != 8 {
		return buf
	}

	out := &audio.IntBuffer{
		Format:         buf.Format,
		SourceBitDepth: buf.SourceBitDepth,
		Data:           make([]int, len(buf.Data)),
	}
	for i, v := range buf.Data {
		out.Data[i] = v - 128
	}

	return out
}
