package speakers

import (
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// BeepSpeaker streams the APU's samples through faiface/beep, the
// teacher's alternate backend for platforms where oto isn't available.
type BeepSpeaker struct {
	sampleRate beep.SampleRate
	buf        *circularBuffer
	done       chan struct{}
}

func NewBeepSpeaker(sampleRate int) (*BeepSpeaker, error) {
	sr := beep.SampleRate(sampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/20)); err != nil {
		return nil, err
	}
	return &BeepSpeaker{sampleRate: sr, buf: newCircularBuffer(1 << 16), done: make(chan struct{})}, nil
}

func (b *BeepSpeaker) Play(samples <-chan float32) {
	go func() {
		for {
			select {
			case <-b.done:
				return
			case s, ok := <-samples:
				if !ok {
					return
				}
				b.buf.push(s)
			}
		}
	}()
	speaker.Play(b)
}

// Stream implements beep.Streamer, pulling from the circular buffer and
// emitting silence if the APU hasn't produced a sample yet.
func (b *BeepSpeaker) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		v, got := b.buf.pop()
		if !got {
			v = 0
		}
		samples[i][0] = float64(v)
		samples[i][1] = float64(v)
	}
	return len(samples), true
}
func (b *BeepSpeaker) Err() error { return nil }

func (b *BeepSpeaker) Stop() {
	close(b.done)
	speaker.Clear()
}
