package audio

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/gordonklaus/portaudio"
	"github.com/hajimehoshi/oto"
)

// ----- Output ----- //

// Output drives an Engine until the context is cancelled. Start blocks for
// the lifetime of the stream; the current block is always allowed to finish
// before the stream is torn down.
type Output interface {
	Start(ctx context.Context) error
	Close() error
}

// NewOutput ...
func NewOutput(kind string, e *Engine) (Output, error) {
	switch kind {
	case "portaudio":
		return newPortaudioOutput(e)
	case "oto":
		return newOtoOutput(e)
	}
	return nil, fmt.Errorf("unknown output backend %q", kind)
}

// ----- PortAudio backend ----- //

// portaudioOutput renders through a float32 callback stream: the device
// invokes RenderBlock once per blockSize frames on its own thread.
type portaudioOutput struct {
	engine *Engine
}

func newPortaudioOutput(e *Engine) (*portaudioOutput, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	return &portaudioOutput{engine: e}, nil
}

func (o *portaudioOutput) Start(ctx context.Context) error {
	stream, err := portaudio.OpenDefaultStream(0, channelNum, sampleRate, blockSize, func(out []float32) {
		o.engine.RenderBlock(out)
	})
	if err != nil {
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return err
	}
	<-ctx.Done()
	if err := stream.Stop(); err != nil {
		log.Printf("error while stopping stream: %v\n", err)
	}
	return stream.Close()
}

func (o *portaudioOutput) Close() error {
	return portaudio.Terminate()
}

// ----- Oto backend ----- //

const bitDepthInBytes = 2
const bytesPerSample = bitDepthInBytes * channelNum
const bufferSizeInBytes = blockSize * bytesPerSample

// otoOutput renders through oto's pull model: the player reads interleaved
// int16 samples from the engine via io.CopyBuffer, one block at a time.
type otoOutput struct {
	engine     *Engine
	ctx        context.Context
	otoContext *oto.Context
	scratch    []float32 // length: blockSize * channelNum
}

var _ io.Reader = (*otoOutput)(nil)

func newOtoOutput(e *Engine) (*otoOutput, error) {
	otoContext, err := oto.NewContext(sampleRate, channelNum, bitDepthInBytes, bufferSizeInBytes)
	if err != nil {
		return nil, err
	}
	return &otoOutput{
		engine:     e,
		ctx:        context.Background(),
		otoContext: otoContext,
		scratch:    make([]float32, blockSize*channelNum),
	}, nil
}

func (o *otoOutput) Read(buf []byte) (int, error) {
	select {
	case <-o.ctx.Done():
		log.Println("Read() interrupted.")
		return 0, io.EOF
	default:
	}
	frames := len(buf) / bytesPerSample
	for done := 0; done < frames; done += blockSize {
		n := frames - done
		if n > blockSize {
			n = blockSize
		}
		block := o.scratch[:n*channelNum]
		o.engine.RenderBlock(block)
		writeBuffer(block, buf[done*bytesPerSample:])
	}
	return frames * bytesPerSample, nil
}

// writeBuffer converts float32 samples to little-endian int16, clipping at
// full scale (the reverb sum may exceed unity).
func writeBuffer(in []float32, buf []byte) {
	const max = 32767
	for i, v := range in {
		if v > 1 {
			v = 1
		}
		if v < -1 {
			v = -1
		}
		b := int16(v * max)
		buf[2*i] = byte(b)
		buf[2*i+1] = byte(b >> 8)
	}
}

func (o *otoOutput) Start(ctx context.Context) error {
	o.ctx = ctx
	p := o.otoContext.NewPlayer()
	defer func() {
		if err := p.Close(); err != nil {
			log.Printf("error: %v", err)
		}
	}()
	// blocks until cancellation surfaces as io.EOF from Read
	if _, err := io.CopyBuffer(p, o, make([]byte, bufferSizeInBytes)); err != nil {
		return err
	}
	return nil
}

func (o *otoOutput) Close() error {
	return o.otoContext.Close()
}
