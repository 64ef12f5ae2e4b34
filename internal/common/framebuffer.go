package common

// FrameWidth and FrameHeight are the NES's fixed visible picture dimensions.
const (
	FrameWidth  = 256
	FrameHeight = 240
)

// Framebuffer holds one fully rendered frame as packed RGBA bytes, plus the
// generation counter the display adapter polls to detect a new frame
// without the PPU needing to know anything about its host's render loop.
type Framebuffer struct {
	Pixels     [FrameWidth * FrameHeight * 4]uint8
	Generation uint64
}

// SetPixel writes one opaque RGB pixel at (x, y).
func (f *Framebuffer) SetPixel(x, y int, r, g, b uint8) {
	i := (y*FrameWidth + x) * 4
	f.Pixels[i] = r
	f.Pixels[i+1] = g
	f.Pixels[i+2] = b
	f.Pixels[i+3] = 0xFF
}

// Present bumps the generation counter, signalling a consumer that a full
// frame is ready to read.
func (f *Framebuffer) Present() {
	f.Generation++
}

// IiInterrupt is the narrow line abstraction the PPU, mappers, and APU
// frame sequencer all assert against; the CPU samples it rather than
// holding a back-reference to any particular asserter.
type IiInterrupt interface {
	Assert()
	Clear()
	Asserted() bool
}

// InterruptLine is a level-triggered IRQ/NMI line shared by any number of
// sources that can assert it (a mapper's IRQ counter, the APU frame
// sequencer, the DMC channel); it stays asserted until the CPU or the
// source explicitly clears it.
type InterruptLine struct {
	asserted bool
}

func (l *InterruptLine) Assert()        { l.asserted = true }
func (l *InterruptLine) Clear()         { l.asserted = false }
func (l *InterruptLine) Asserted() bool { return l.asserted }
