package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/wav"
	goaudio "github.com/go-audio/audio"

	"github.com/lixenwraith/chiptale/audio"
	"github.com/lixenwraith/chiptale/constant"
	"github.com/lixenwraith/chiptale/core"
)

// Renders the composed theme loops to WAV files so the musical content
// can be audited without an audio device.
func main() {
	outDir := flag.String("out", "render", "Output directory for WAV files")
	themeName := flag.String("theme", "", "Render a single theme by name (default: all)")
	seconds := flag.Float64("seconds", constant.LoopDuration.Seconds(), "Loop duration to render")
	mixdown := flag.Bool("mix", true, "Also write a combined mix per theme")
	flag.Parse()

	themes := make([]core.Theme, 0, core.ThemeCount)
	if *themeName != "" {
		t, ok := core.ThemeByName(*themeName)
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown theme %q\n", *themeName)
			os.Exit(1)
		}
		themes = append(themes, t)
	} else {
		for t := core.Theme(0); t < core.ThemeCount; t++ {
			themes = append(themes, t)
		}
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	for _, theme := range themes {
		set, err := audio.ComposeLoop(theme, *seconds)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error composing %s: %v\n", theme, err)
			os.Exit(1)
		}

		for id := core.ChannelID(0); id < core.ChannelCount; id++ {
			path := filepath.Join(*outDir, fmt.Sprintf("%s_%s.wav", theme, id))
			if err := writeWAV(path, set.Channel(id)); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
				os.Exit(1)
			}
		}

		if *mixdown {
			path := filepath.Join(*outDir, fmt.Sprintf("%s_mix.wav", theme))
			if err := writeWAV(path, mixChannels(set)); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
				os.Exit(1)
			}
		}

		fmt.Printf("Rendered %s (%d frames per channel)\n", theme, set.Bass.Frames())
	}
}

// mixChannels sums the three loops with hard clipping, the same result
// the live mixer produces at equal channel gains
func mixChannels(set *audio.LoopSet) *audio.SynthBuffer {
	frames := set.Bass.Frames()
	mono := make([]float64, frames)
	for i := 0; i < frames; i++ {
		b, _ := set.Bass.At(i)
		m, _ := set.Melody.At(i)
		p, _ := set.Percussion.At(i)
		mono[i] = float64(b) / 32767
		mono[i] += float64(m) / 32767
		mono[i] += float64(p) / 32767
	}
	return audio.FromMono(mono, 1.0)
}

func writeWAV(path string, buf *audio.SynthBuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	// Interleaved stereo float32, 16-bit source depth
	data := make([]float32, buf.Frames()*2)
	for i := 0; i < buf.Frames(); i++ {
		l, r := buf.At(i)
		data[i*2] = float32(l) / 32767
		data[i*2+1] = float32(r) / 32767
	}

	enc := wav.NewEncoder(f, constant.AudioSampleRate, constant.AudioBitDepth, constant.AudioChannels, 1)
	defer enc.Close()

	return enc.Write(&goaudio.Float32Buffer{
		Format: &goaudio.Format{
			SampleRate:  constant.AudioSampleRate,
			NumChannels: constant.AudioChannels,
		},
		Data:           data,
		SourceBitDepth: constant.AudioBitDepth,
	})
}
