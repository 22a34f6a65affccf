package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/cwbudde/wavload"
	"github.com/go-audio/audio"
)

func main() {
	err := run(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("gen-sine", flag.ContinueOnError)

	output := flagSet.String("output", "output.wav", "filename to write to")
	frequency := flagSet.Float64("frequency", 440, "frequency in hertz to generate")
	length := flagSet.Float64("length", 5, "length in seconds of output file")
	bitDepth := flagSet.Int("bits", 16, "bit depth, 32 writes IEEE float samples")
	loop := flagSet.Bool("loop", false, "mark the whole file as a forward loop")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	log.Printf("generating a %f sec sine wav at %f hz", *length, *frequency)

	const sampleRate = 48000

	formatTag := wavload.FormatPCM
	if *bitDepth == 32 {
		formatTag = wavload.FormatIEEEFloat
	}

	enc := wavload.NewEncoder(sampleRate, *bitDepth, 1, formatTag)
	numSamples := int(sampleRate * *length)

	buf := &audio.Float32Buffer{
		Format: &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:   make([]float32, numSamples),
	}

	for i := range buf.Data {
		buf.Data[i] = float32(math.Sin(float64(i) / sampleRate * *frequency * 2 * math.Pi))
	}

	if err := enc.AppendFloat32Buffer(buf); err != nil {
		return err
	}

	if *loop && numSamples > 0 {
		if err := enc.SetLoop(wavload.Loop{Start: 0, Length: uint32(numSamples)}); err != nil {
			return err
		}
	}

	b, err := enc.Bytes()
	if err != nil {
		return err
	}

	if err := os.WriteFile(*output, b, 0o644); err != nil {
		return fmt.Errorf("error writing %s: %w", *output, err)
	}

	return nil
}
