// This tool prints the format, data extent, loop region and seek table of the
// passed wav files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cwbudde/wavload"
)

const usageMessage = "usage: wavinfo [-chunks] [-loops] [-info] file.wav [file.wav...]"

var errMissingPath = errors.New("missing path argument")

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if errors.Is(err, errMissingPath) {
		fmt.Println(usageMessage)
		os.Exit(1)
	}

	log.Fatal(err)
}

func run(args []string, out io.Writer) error {
	flagSet := flag.NewFlagSet("wavinfo", flag.ContinueOnError)
	flagSet.SetOutput(out)

	listChunks := flagSet.Bool("chunks", false, "list every chunk of the RIFF container")
	listLoops := flagSet.Bool("loops", false, "list every loop of the wsmp and smpl chunks")
	showInfo := flagSet.Bool("info", false, "print the LIST INFO text metadata")

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	paths := flagSet.Args()
	if len(paths) < 1 {
		return errMissingPath
	}

	sounds, err := wavload.DecodeFiles(context.Background(), paths...)
	if err != nil {
		return err
	}

	for i, a := range sounds {
		printAudio(out, paths[i], a)

		if !*listChunks && !*listLoops && !*showInfo {
			continue
		}

		buf, err := wavload.ReadFile(paths[i])
		if err != nil {
			return err
		}

		if *listChunks {
			if err := printChunks(out, buf); err != nil {
				return err
			}
		}

		if *listLoops {
			if err := printLoops(out, buf); err != nil {
				return err
			}
		}

		if *showInfo {
			if err := printInfo(out, buf); err != nil {
				return err
			}
		}
	}

	return nil
}

func printAudio(out io.Writer, path string, a *wavload.Audio) {
	fmt.Fprintf(out, "%s:\n", path)
	fmt.Fprintf(out, "Container: %s\n", a.Form[:])
	fmt.Fprintf(out, "Format: %s (%#04x)\n", wavload.FormatName(a.EffectiveFormatTag()), a.Format.FormatTag)
	fmt.Fprintf(out, "Channels: %d\n", a.Format.Channels)
	fmt.Fprintf(out, "SampleRate: %d\n", a.Format.SampleRate)
	fmt.Fprintf(out, "AvgBytesPerSec: %d\n", a.Format.AvgBytesPerSec)
	fmt.Fprintf(out, "BlockAlign: %d\n", a.Format.BlockAlign)
	fmt.Fprintf(out, "BitsPerSample: %d\n", a.Format.BitsPerSample)
	fmt.Fprintf(out, "Data: %d bytes at offset %d\n", len(a.Data), a.DataOffset)
	fmt.Fprintf(out, "Duration: %s\n", a.Duration())
	fmt.Fprintf(out, "Loop: %s\n", a.Loop)

	switch {
	case a.TableKind == wavload.TableNone:
		fmt.Fprintln(out, "Table: none")
	case a.Table == nil:
		fmt.Fprintf(out, "Table: %s (missing)\n", a.TableKind)
	default:
		fmt.Fprintf(out, "Table: %s, %d entries\n", a.TableKind, a.Table.Len())
	}
}

func printChunks(out io.Writer, buf []byte) error {
	chunks, err := wavload.Chunks(buf)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Chunks:")

	for i, c := range chunks {
		fmt.Fprintf(out, "\tchunk [%d]:\t%q offset=%d size=%d\n", i, c.ID[:], c.Offset, c.Size)
	}

	return nil
}

func printLoops(out io.Writer, buf []byte) error {
	if ref, ok := findInContainer(buf, wavload.CIDWsmp); ok {
		payload, err := ref.Payload(buf)
		if err != nil {
			return err
		}

		dls, err := wavload.ReadDLSSample(payload)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "DLS Sample: unity note %d, fine tune %d, gain %d\n", dls.UnityNote, dls.FineTune, dls.Gain)

		for i, l := range dls.Loops {
			fmt.Fprintf(out, "\tloop [%d]:\t%+v\n", i, l)
		}
	}

	if ref, ok := findInContainer(buf, wavload.CIDSmpl); ok {
		payload, err := ref.Payload(buf)
		if err != nil {
			return err
		}

		smpl, err := wavload.ReadSampler(payload)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Sample Info: unity note %d, period %dns\n", smpl.MIDIUnityNote, smpl.SamplePeriod)

		for i, l := range smpl.Loops {
			fmt.Fprintf(out, "\tloop [%d]:\t%+v\n", i, l)
		}
	}

	return nil
}

func printInfo(out io.Writer, buf []byte) error {
	info, err := wavload.FindInfo(buf)
	if err != nil {
		return err
	}

	if info.IsZero() {
		fmt.Fprintln(out, "Info: none")
		return nil
	}

	fmt.Fprintln(out, "Info:")

	for _, field := range []struct{ name, value string }{
		{"Title", info.Title},
		{"Artist", info.Artist},
		{"Comments", info.Comments},
		{"Copyright", info.Copyright},
		{"CreationDate", info.CreationDate},
		{"Engineer", info.Engineer},
		{"Technician", info.Technician},
		{"Genre", info.Genre},
		{"Keywords", info.Keywords},
		{"Medium", info.Medium},
		{"Product", info.Product},
		{"Subject", info.Subject},
		{"Software", info.Software},
		{"Source", info.Source},
		{"Location", info.Location},
		{"TrackNbr", info.TrackNbr},
	} {
		if field.value != "" {
			fmt.Fprintf(out, "\t%s: %s\n", field.name, field.value)
		}
	}

	return nil
}

func findInContainer(buf []byte, id [4]byte) (wavload.ChunkRef, bool) {
	chunks, err := wavload.Chunks(buf)
	if err != nil {
		return wavload.ChunkRef{}, false
	}

	for _, c := range chunks {
		if c.ID == id {
			return c, true
		}
	}

	return wavload.ChunkRef{}, false
}
