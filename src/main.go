package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/soundbench/echosynth/src/audio"
	"golang.org/x/sync/errgroup"
)

var (
	outputKind = flag.String("output", "portaudio", "audio output backend (portaudio|oto)")
	enableMidi = flag.Bool("midi", false, "also listen on the first MIDI IN port")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Lshortfile)

	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	engine := audio.NewEngine()
	out, err := audio.NewOutput(*outputKind, engine)
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}
	defer out.Close()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(signalCh)
		cancel()
	}()
	go func() {
		sig := <-signalCh
		log.Printf("Caught signal %s: shutting down...\n", sig)
		cancel()
	}()

	fmt.Println("Analog Synth Ready!")
	fmt.Println("Q = C5 (FL Studio layout)")
	fmt.Println("Press ESC to quit")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return out.Start(gctx)
	})
	g.Go(func() error {
		// keyboard returning (ESC) shuts the whole group down
		defer cancel()
		return audio.RunKeyboard(gctx, engine.Enqueue)
	})
	if *enableMidi {
		g.Go(func() error {
			return audio.RunMidi(gctx, engine.Enqueue)
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("error: %v\n", err)
	}
	log.Println("main() ended.")
}
