// Command gones runs a cartridge image in a desktop window.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/faiface/pixel/pixelgl"

	"github.com/tiagolobo-student/gones/internal/core"
	"github.com/tiagolobo-student/gones/internal/display"
	"github.com/tiagolobo-student/gones/internal/speakers"
)

func main() {
	pixelgl.Run(run)
}

func run() {
	var (
		romPath  = flag.String("rom", "", "path to an iNES ROM image")
		scale    = flag.Float64("scale", 3, "integer window scale factor")
		verbose  = flag.Bool("verbose", false, "log CPU/PPU diagnostics")
		audioLib = flag.String("audio", "oto", "audio backend: oto, beep, portaudio, nil")
	)
	flag.Parse()

	if *romPath == "" {
		log.Fatal("gones: -rom is required")
	}

	data, err := os.ReadFile(*romPath)
	if err != nil {
		log.Fatalf("gones: reading rom: %v", err)
	}

	console := core.NewConsole(core.WithVerbose(*verbose))
	if err := console.LoadROM(data); err != nil {
		log.Fatalf("gones: loading rom: %v", err)
	}
	console.PowerOn()

	speaker := newSpeaker(*audioLib)
	speaker.Play(console.APUSamples())
	defer speaker.Stop()

	win, err := display.NewWindow("gones", *scale)
	if err != nil {
		log.Fatalf("gones: opening window: %v", err)
	}

	for !win.Closed() {
		start := time.Now()
		console.RunFrame()
		win.Present(console.Framebuffer())
		console.SetButtons(0, win.PollButtons())

		if elapsed := time.Since(start); elapsed < time.Second/60 {
			time.Sleep(time.Second/60 - elapsed)
		}
	}
}

func newSpeaker(name string) speakers.Speaker {
	switch name {
	case "beep":
		s, err := speakers.NewBeepSpeaker(44100)
		if err != nil {
			log.Printf("gones: beep backend unavailable, falling back to nil: %v", err)
			return speakers.Nil{}
		}
		return s
	case "portaudio":
		s, err := speakers.NewPortAudioSpeaker(44100)
		if err != nil {
			log.Printf("gones: portaudio backend unavailable, falling back to nil: %v", err)
			return speakers.Nil{}
		}
		return s
	case "nil":
		return speakers.Nil{}
	default:
		s, err := speakers.NewOtoSpeaker(44100)
		if err != nil {
			log.Printf("gones: oto backend unavailable, falling back to nil: %v", err)
			return speakers.Nil{}
		}
		return s
	}
}
