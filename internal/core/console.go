package core

import (
	"bytes"
	"crypto/md5"

	"github.com/tiagolobo-student/gones/internal/apu"
	"github.com/tiagolobo-student/gones/internal/common"
	"github.com/tiagolobo-student/gones/internal/cpu"
	"github.com/tiagolobo-student/gones/internal/mappers"
	"github.com/tiagolobo-student/gones/internal/ppu"
)

const (
	cpuClockHz = 1789773
	ntscFPS    = 60
)

// Region selects the PPU-dot-to-CPU-cycle ratio the console runs at:
// NTSC steps 3 dots per CPU cycle exactly, while PAL and Dendy average a
// fractional ratio tracked with a rational accumulator rather than floating
// point, so the dot sequence stays bit-exact run to run.
type Region int

const (
	RegionNTSC Region = iota
	RegionPAL
	RegionDendy
)

// dotRatio returns the region's dots-per-CPU-cycle ratio as a fraction;
// accumulating the numerator every cycle and dividing by the denominator
// reproduces the documented 3.2 (PAL, over a 5-cycle accumulator) and
// 3.125 (Dendy, over an 8-cycle accumulator) averages using only integers.
func (r Region) dotRatio() (numerator, denominator int) {
	switch r {
	case RegionPAL:
		return 16, 5
	case RegionDendy:
		return 25, 8
	default:
		return 3, 1
	}
}

// Console is the top-level orchestrator wiring CPU, PPU, APU, cartridge
// and controllers together and driving them in cycle-accurate lockstep:
// 1 CPU cycle for every 3 PPU dots, with the APU and any DMA/DMC stealing
// folded into the same loop, matching the teacher's single Step-driven
// Run loop generalized from a fixed NTSC frame-rate timer to an explicit
// RunFrame/Step API a host can drive itself.
type Console struct {
	bus sysBus

	cpu cpu.Cpu
	ppu ppu.Ppu
	apu apu.Apu

	nmiLine    common.InterruptLine
	apuIRQLine common.InterruptLine
	irq        irqOR

	cart *mappers.Cartridge
	fb   common.Framebuffer

	stallCycles int
	dotAccum    int

	opts options
}

type options struct {
	sampleRate  float64
	spriteLimit int
	verbose     bool
	region      Region
}

// Option configures a Console at construction time, following the same
// functional-options shape the teacher's host shell uses.
type Option func(*options)

func WithSampleRate(hz float64) Option {
	return func(o *options) { o.sampleRate = hz }
}
func WithSpriteLimit(limit int) Option {
	return func(o *options) { o.spriteLimit = limit }
}
func WithVerbose(v bool) Option {
	return func(o *options) { o.verbose = v }
}
func WithRegion(r Region) Option {
	return func(o *options) { o.region = r }
}

// NewConsole constructs a powered-off Console ready for LoadROM.
func NewConsole(opts ...Option) *Console {
	o := options{sampleRate: 44100, spriteLimit: 8, region: RegionNTSC}
	for _, opt := range opts {
		opt(&o)
	}
	c := &Console{opts: o}
	return c
}

// LoadROM parses a ROM image and wires it onto the bus, replacing any
// cartridge previously loaded. The console is left powered off; call
// PowerOn to begin execution.
func (c *Console) LoadROM(data []byte) error {
	cart, err := mappers.NewCartridge(data)
	if err != nil {
		return err
	}
	c.cart = cart
	c.wire()
	return nil
}

func (c *Console) wire() {
	c.bus.ram.Init(2048)
	c.bus.nametables.Init(c.cart.Mirroring())
	c.bus.cart = c.cart
	c.bus.ppuRegs = &c.ppu
	c.bus.apuRegs = &c.apu
	c.bus.dma.Init(func(val uint8) { c.ppu.OAMDMAWrite(val) })
	c.bus.controllers.Init()

	c.irq.lines = []common.IiInterrupt{&c.apuIRQLine, c.cart.IRQ()}

	c.ppu.Init(&c.bus, &c.nmiLine, &c.fb)
	c.ppu.SpriteLimit = c.opts.spriteLimit
	c.apu.Init(&c.bus, &c.apuIRQLine, c.opts.sampleRate)
	c.cpu.Init(&c.bus, &c.nmiLine, &c.irq, nil)
	c.cpu.Verbose = c.opts.verbose
}

// PowerOn resets every component to its power-up state.
func (c *Console) PowerOn() {
	c.cpu.Reset()
	c.ppu.Reset()
	c.apu.Reset()
	c.bus.dma.Reset()
	c.bus.controllers.Reset()
	c.nmiLine.Clear()
	c.dotAccum = 0
}

// Reset performs a soft reset (the console's reset button), distinct from
// PowerOn's full power cycle: PPU OAM/VRAM contents and APU channel
// lengths survive a reset on real hardware.
func (c *Console) Reset() {
	c.cpu.Reset()
}

// Step advances the console by exactly one CPU cycle, then the PPU by that
// region's dot ratio and the APU by one tick — the orchestrator ordering
// spec.md §4.1 lays out: (c) step the CPU one cycle, (d) only after that
// cycle completes advance the PPU/APU, so a CPU-originated register write
// and the PPU/APU state it affects always land on the same cycle boundary.
// DMA/DMC cycle stealing is applied transparently: a stolen cycle still
// calls this sequence, it just skips the CPU's own Tick.
func (c *Console) Step() {
	c.bus.nametables.SetMirroring(c.cart.Mirroring())

	if c.stallCycles == 0 {
		c.stallCycles = c.apu.TakeDMCStall()
	}

	switch {
	case c.bus.dma.Active():
		c.bus.dma.Exec(c.bus.Read8)
	case c.stallCycles > 0:
		c.stallCycles--
		if c.stallCycles == 0 {
			c.apu.CompleteDMCFetch()
		}
	default:
		c.cpu.Tick()
	}

	for i, n := 0, c.dotsThisCycle(); i < n; i++ {
		c.ppu.Tick()
		c.cart.Tick(c.ppu.A12OutputHigh())
	}

	c.apu.Tick()
}

// dotsThisCycle reports how many PPU dots the upcoming cycle advances,
// accumulating the region's fractional dot ratio in integer arithmetic so
// the sequence (e.g. PAL's 3,3,3,3,4) repeats identically run to run.
func (c *Console) dotsThisCycle() int {
	num, den := c.opts.region.dotRatio()
	c.dotAccum += num
	dots := c.dotAccum / den
	c.dotAccum -= dots * den
	return dots
}

// RunFrame advances the console until exactly one PPU frame (262
// scanlines) has completed.
func (c *Console) RunFrame() {
	startFrame := c.ppu.FrameCount()
	for c.ppu.FrameCount() == startFrame {
		c.Step()
	}
}

// Framebuffer exposes the most recently completed frame; the returned
// pointer is stable across calls, the host should copy Pixels out before
// the next RunFrame if it needs to retain the data.
func (c *Console) Framebuffer() *common.Framebuffer {
	return &c.fb
}

// APUSamples exposes the channel the APU pushes mixed/filtered output
// samples onto, for a host audio backend to drain.
func (c *Console) APUSamples() <-chan float32 {
	return c.apu.Samples
}

// SetButtons replaces the full 8-button snapshot for one controller port
// (0 or 1).
func (c *Console) SetButtons(port uint8, buttons uint8) {
	c.bus.controllers.SetButtons(port, buttons)
}

// SaveState serialises the full machine state to a byte slice, prefixed
// with the loaded cartridge's fingerprint so LoadState can refuse a state
// captured against a different ROM.
func (c *Console) SaveState() ([]byte, error) {
	var buf bytes.Buffer
	s := common.NewSerialiser(&buf)
	fp := c.cart.Fingerprint()
	if err := s.Serialise(fp); err != nil {
		return nil, common.NewStateError(common.StateCorrupt, "failed to serialise cartridge fingerprint", err)
	}
	for _, comp := range c.stateComponents() {
		if err := s.Serialise(comp); err != nil {
			return nil, common.NewStateError(common.StateCorrupt, "failed to serialise state", err)
		}
	}
	return buf.Bytes(), nil
}

// LoadState restores machine state previously produced by SaveState. The
// cartridge must already be loaded via LoadROM; if its fingerprint doesn't
// match the one the state was captured against, LoadState returns a
// StateCartridgeMismatch error and leaves the console's state untouched.
func (c *Console) LoadState(data []byte) error {
	buf := bytes.NewBuffer(data)
	s := common.NewSerialiser(buf)

	var fp [md5.Size]byte
	if err := s.DeSerialise(&fp); err != nil {
		return common.NewStateError(common.StateCorrupt, "failed to deserialise cartridge fingerprint", err)
	}
	if fp != c.cart.Fingerprint() {
		return common.NewStateError(common.StateCartridgeMismatch, "state was captured against a different cartridge", nil)
	}

	for _, comp := range c.stateComponents() {
		if err := s.DeSerialise(comp); err != nil {
			return common.NewStateError(common.StateCorrupt, "failed to deserialise state", err)
		}
	}
	return nil
}

// stateComponents lists the save-state's wire format; changing the order
// breaks compatibility with states captured by an earlier build.
func (c *Console) stateComponents() []common.Serialisable {
	return []common.Serialisable{
		&c.bus.ram,
		&c.bus.nametables,
		&c.bus.palette,
		&c.bus.controllers,
		&c.bus.dma,
		&c.cpu,
		&c.ppu,
		&c.apu,
		c.cart,
	}
}
