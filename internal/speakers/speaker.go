// Package speakers adapts the console's APU sample stream to one of
// several audio backends, mirroring the teacher's pluggable speaker
// abstraction (speaker.go/speaker_oto.go/speaker_beep.go/speaker_port.go)
// behind a single narrow interface so the host shell can pick a backend
// at run time (cmd/gones's -audio flag) instead of a build tag.
package speakers

// Speaker consumes float32 PCM samples in [-1, 1] and plays them back.
type Speaker interface {
	Play(samples <-chan float32)
	Stop()
}

// Library names the audio backend a host can request.
type Library int

const (
	LibraryNil Library = iota
	LibraryOto
	LibraryBeep
	LibraryPortAudio
)

// Nil is a no-op Speaker for headless/test runs, grounded in the
// teacher's SpeakerNil found alongside its host-shell code.
type Nil struct{}

func (Nil) Play(samples <-chan float32) {
	go func() {
		for range samples {
		}
	}()
}
func (Nil) Stop() {}
