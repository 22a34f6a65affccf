// This command line tool sets the loop region of wav files by writing a smpl
// chunk in a safe way.
// All files are copied and stored in the wavloop folder by the original files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/wavload"
)

var errNoInput = errors.New("you need to pass -file or -dir to indicate what file or folder content to loop")

type options struct {
	start  uint
	length uint
	clear  bool
	outDir string
}

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	flagSet := flag.NewFlagSet("wavloop", flag.ContinueOnError)
	flagSet.SetOutput(out)

	file := flagSet.String("file", "", "Path to the wave file to loop")
	dir := flagSet.String("dir", "", "Directory containing all the wav files to loop")

	var opts options

	flagSet.UintVar(&opts.start, "start", 0, "first sample frame of the loop")
	flagSet.UintVar(&opts.length, "length", 0, "loop length in sample frames, 0 loops to the end of the data")
	flagSet.BoolVar(&opts.clear, "clear", false, "remove every loop instead of setting one")
	flagSet.StringVar(&opts.outDir, "out", "", "output folder, defaults to a wavloop folder next to each file")

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if *file == "" && *dir == "" {
		return errNoInput
	}

	if *file != "" {
		if err := loopFile(*file, opts, out); err != nil {
			return fmt.Errorf("something went wrong when looping %s: %w", *file, err)
		}
	}

	if *dir != "" {
		entries, err := os.ReadDir(*dir)
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", *dir, err)
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasPrefix(strings.ToLower(filepath.Ext(entry.Name())), ".wav") {
				continue
			}

			path := filepath.Join(*dir, entry.Name())
			if err := loopFile(path, opts, out); err != nil {
				log.Printf("something went wrong looping %s - %v", path, err)
			}
		}
	}

	return nil
}

func loopFile(path string, opts options, out io.Writer) error {
	buf, err := wavload.ReadFile(path)
	if err != nil {
		return err
	}

	a, err := wavload.Decode(buf)
	if err != nil {
		return err
	}

	enc := wavload.NewEncoderFromAudio(a)

	// Text metadata and foreign chunks survive the rewrite.
	enc.Info, err = wavload.FindInfo(buf)
	if err != nil {
		return err
	}

	enc.UnknownChunks, err = wavload.UnknownChunks(buf)
	if err != nil {
		return err
	}

	// The decoded loop is replaced, not stacked under the new one.
	enc.Sampler = nil
	enc.DLSSample = nil

	if !opts.clear {
		loop, err := loopRegion(a, opts)
		if err != nil {
			return err
		}

		if err := enc.SetLoop(loop); err != nil {
			return err
		}
	}

	b, err := enc.Bytes()
	if err != nil {
		return err
	}

	outputDir := opts.outDir
	if outputDir == "" {
		outputDir = filepath.Join(filepath.Dir(path), "wavloop")
	}

	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	outPath := filepath.Join(outputDir, filepath.Base(path))
	if err := os.WriteFile(outPath, b, 0o644); err != nil {
		return fmt.Errorf("couldn't write %s: %w", outPath, err)
	}

	fmt.Fprintln(out, "Looped file available at", outPath)

	return nil
}

// loopRegion checks the requested region against the frames held by a.
func loopRegion(a *wavload.Audio, opts options) (wavload.Loop, error) {
	frames := uint(a.NumFrames())
	if opts.start >= frames {
		return wavload.Loop{}, fmt.Errorf("loop start %d is past the last of %d frames", opts.start, frames)
	}

	length := opts.length
	if length == 0 {
		length = frames - opts.start
	}

	if opts.start+length > frames {
		return wavload.Loop{}, fmt.Errorf("loop of %d frames from %d runs past the last of %d frames",
			length, opts.start, frames)
	}

	return wavload.Loop{Start: uint32(opts.start), Length: uint32(length)}, nil
}
