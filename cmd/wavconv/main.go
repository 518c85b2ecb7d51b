// SPDX-License-Identifier: EPL-2.0

// Command wavconv inspects WAV and Wave64 files and transcodes WAV, W64, MP3,
// Ogg Vorbis, AIFF and FLAC input into WAV or W64 output.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
)

var (
	inPath     = flag.String("in", "", "Input file (wav, w64, mp3, ogg, aiff, flac)")
	outPath    = flag.String("out", "", "Output file")
	container  = flag.String("container", "riff", "Output container: riff or w64")
	encoding   = flag.String("format", "pcm", "Output encoding: pcm, float, alaw or mulaw")
	bits       = flag.Int("bits", 0, "Output bits per sample (default depends on -format)")
	rate       = flag.Int("rate", 0, "Resample to this rate in Hz (default keeps the input rate)")
	mono       = flag.Bool("mono", false, "Mix all channels down to one")
	sequential = flag.Bool("sequential", false, "Write the header once with sizes known up front")
	info       = flag.Bool("info", false, "Print the input's format, frame count and loops, then exit")
	verbose    = flag.Bool("v", false, "Log every chunk while parsing WAV input")
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: wavconv -in <input> -info")
	fmt.Fprintln(os.Stderr, "       wavconv -in <input> -out <output.wav> [options]")
	fmt.Fprintln(os.Stderr, "Options:")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("wavconv: ")

	cfg := config{
		In:         *inPath,
		Out:        *outPath,
		Container:  *container,
		Encoding:   *encoding,
		Bits:       *bits,
		Rate:       *rate,
		Mono:       *mono,
		Sequential: *sequential,
		Verbose:    *verbose,
	}

	if cfg.In == "" {
		usage()
		os.Exit(2)
	}

	if *info {
		if err := printInfo(os.Stdout, cfg); err != nil {
			log.Fatal(err)
		}
		return
	}

	if cfg.Out == "" {
		usage()
		os.Exit(2)
	}

	n, err := transcode(cfg)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("wrote %d frames to %s", n, cfg.Out)
}
