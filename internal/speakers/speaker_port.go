package speakers

import (
	"github.com/gordonklaus/portaudio"
)

// PortAudioSpeaker streams the APU's samples through PortAudio, the
// teacher's third backend option, generally reserved for platforms (or
// debugging setups) where lower-level device control is useful.
type PortAudioSpeaker struct {
	stream *portaudio.Stream
	buf    *circularBuffer
}

func NewPortAudioSpeaker(sampleRate float64) (*PortAudioSpeaker, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	s := &PortAudioSpeaker{buf: newCircularBuffer(1 << 16)}
	stream, err := portaudio.OpenDefaultStream(0, 1, sampleRate, 0, s.callback)
	if err != nil {
		return nil, err
	}
	s.stream = stream
	return s, nil
}

func (s *PortAudioSpeaker) callback(out []float32) {
	for i := range out {
		v, ok := s.buf.pop()
		if !ok {
			v = 0
		}
		out[i] = v
	}
}

func (s *PortAudioSpeaker) Play(samples <-chan float32) {
	go func() {
		for v := range samples {
			s.buf.push(v)
		}
	}()
	_ = s.stream.Start()
}

func (s *PortAudioSpeaker) Stop() {
	_ = s.stream.Stop()
	_ = s.stream.Close()
	portaudio.Terminate()
}
