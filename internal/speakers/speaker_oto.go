package speakers

import (
	"encoding/binary"
	"math"

	"github.com/hajimehoshi/oto"
)

// OtoSpeaker plays the APU's sample stream through oto's cross-platform
// low-latency output, the teacher's default desktop backend.
type OtoSpeaker struct {
	ctx    *oto.Context
	player *oto.Player
	stop   chan struct{}
}

func NewOtoSpeaker(sampleRate int) (*OtoSpeaker, error) {
	ctx, err := oto.NewContext(sampleRate, 1, 2, 8192)
	if err != nil {
		return nil, err
	}
	return &OtoSpeaker{ctx: ctx, player: ctx.NewPlayer(), stop: make(chan struct{})}, nil
}

func (o *OtoSpeaker) Play(samples <-chan float32) {
	go func() {
		buf := make([]byte, 2)
		for {
			select {
			case <-o.stop:
				return
			case s, ok := <-samples:
				if !ok {
					return
				}
				clamped := math.Max(-1, math.Min(1, float64(s)))
				binary.LittleEndian.PutUint16(buf, uint16(int16(clamped*32767)))
				_, _ = o.player.Write(buf)
			}
		}
	}()
}

func (o *OtoSpeaker) Stop() {
	close(o.stop)
	_ = o.player.Close()
}
