package apu

import (
	"github.com/tiagolobo-student/gones/internal/apu/waves"
	"github.com/tiagolobo-student/gones/internal/common"
)

// NesApuFrameCycles is the CPU-cycle period of the frame sequencer's
// quarter-frame tick in 4-step mode.
const NesApuFrameCycles = 7457

// pulseTable and tndTable are the documented non-linear DAC mixing
// lookups: the NES doesn't sum channel outputs linearly, it runs them
// through two small resistor networks, which these tables reproduce.
var pulseTable [31]float32
var tndTable [203]float32

func init() {
	for i := range pulseTable {
		if i == 0 {
			continue
		}
		pulseTable[i] = 95.52 / (8128.0/float32(i) + 100)
	}
	for i := range tndTable {
		if i == 0 {
			continue
		}
		tndTable[i] = 163.67 / (24329.0/float32(i) + 100)
	}
}

// Apu wires the five sound channels to the frame sequencer and mixes them
// down to a stream of output samples at the host's requested sample rate.
type Apu struct {
	bus Bus

	pulse1, pulse2 *waves.Pulse
	triangle       waves.Triangle
	noise          *waves.Noise
	dmc            waves.DMC

	irq common.IiInterrupt

	frameMode    uint8 // 0 = 4-step, 1 = 5-step
	frameCycle   int
	inhibitIRQ   bool
	frameIrqSet  bool

	// $4017 writes take effect 3 or 4 CPU cycles later depending on
	// parity; pendingMode/pendingDelay model that documented quirk
	pendingWrite bool
	pendingMode  uint8
	pendingDelay int

	cycleParity bool

	sampleRate    float64
	cyclesPerSamp float64
	sampleAccum   float64

	// single-pole filter chain: one high-pass at ~90Hz, one at ~440Hz,
	// one low-pass at ~14kHz, matching the documented analog output stage
	hpf1, hpf2, lpf             float32
	hpf1Prev, hpf2Prev, lpfPrev float32

	Samples chan float32
}

// Bus is the narrow CPU-memory access the DMC channel needs for its
// sample-stream DMA.
type Bus interface {
	Read8(addr uint16) uint8
}

func (a *Apu) Serialise(s common.Serialiser) error {
	if err := s.Serialise(a.frameMode, a.frameCycle, a.inhibitIRQ, a.frameIrqSet,
		a.pendingWrite, a.pendingMode, a.pendingDelay, a.cycleParity); err != nil {
		return err
	}
	return s.Serialise(a.pulse1, a.pulse2, &a.triangle, a.noise, &a.dmc)
}
func (a *Apu) DeSerialise(s common.Serialiser) error {
	if err := s.DeSerialise(&a.frameMode, &a.frameCycle, &a.inhibitIRQ, &a.frameIrqSet,
		&a.pendingWrite, &a.pendingMode, &a.pendingDelay, &a.cycleParity); err != nil {
		return err
	}
	return s.DeSerialise(a.pulse1, a.pulse2, &a.triangle, a.noise, &a.dmc)
}

func (a *Apu) Init(bus Bus, irq common.IiInterrupt, sampleRate float64) {
	a.bus = bus
	a.irq = irq
	a.pulse1 = waves.NewPulse(true)
	a.pulse2 = waves.NewPulse(false)
	a.noise = waves.NewNoise()
	a.dmc.MemRead = bus.Read8
	a.dmc.SetIRQLine(irq)
	a.sampleRate = sampleRate
	a.cyclesPerSamp = 1789773.0 / sampleRate
	a.Samples = make(chan float32, 1<<15)
	a.Reset()
}

func (a *Apu) Reset() {
	a.frameMode = 0
	a.frameCycle = 0
	a.inhibitIRQ = false
}

// TakeDMCStall drains and returns the CPU cycles the DMC's DMA owes; the
// console stalls the CPU this many cycles and then calls the DMC's
// PerformFetch to actually complete the read.
func (a *Apu) TakeDMCStall() int {
	n := a.dmc.StallCycles
	a.dmc.StallCycles = 0
	return n
}
func (a *Apu) CompleteDMCFetch() {
	a.dmc.PerformFetch()
}

// Tick runs exactly one CPU cycle of APU logic: pulse/noise/dmc channels
// clock every other cycle, the triangle clocks every cycle, and the frame
// sequencer advances on its own schedule.
func (a *Apu) Tick() {
	a.triangle.Clock()
	if a.cycleParity {
		a.pulse1.Clock()
		a.pulse2.Clock()
		a.noise.Clock()
		a.dmc.Clock()
	}
	a.cycleParity = !a.cycleParity

	a.frameCycle++
	a.runFrameSequencer()

	if a.pendingWrite {
		a.pendingDelay--
		if a.pendingDelay <= 0 {
			a.pendingWrite = false
			a.frameMode = a.pendingMode
			a.frameCycle = 0
			if a.frameMode == 1 {
				a.quarterFrameTick()
				a.halfFrameTick()
			}
		}
	}

	a.sample()
}

// runFrameSequencer reproduces the documented 4-step/5-step timing table:
//
//	mode 0 (4-step): quarter at 3729/11186, half+quarter at 7457/14915,
//	  IRQ asserted at 14914 and again at 14915 unless inhibited
//	mode 1 (5-step): quarter at 3729/11186, half+quarter at 7457/18640,
//	  no IRQ ever
func (a *Apu) runFrameSequencer() {
	if a.frameMode == 0 {
		switch a.frameCycle {
		case 3729:
			a.quarterFrameTick()
		case 7457:
			a.quarterFrameTick()
			a.halfFrameTick()
		case 11186:
			a.quarterFrameTick()
		case 14914:
			if !a.inhibitIRQ {
				a.raiseIrq()
			}
		case 14915:
			a.quarterFrameTick()
			a.halfFrameTick()
			if !a.inhibitIRQ {
				a.raiseIrq()
			}
			a.frameCycle = 0
		}
	} else {
		switch a.frameCycle {
		case 3729:
			a.quarterFrameTick()
		case 7457:
			a.quarterFrameTick()
			a.halfFrameTick()
		case 11186:
			a.quarterFrameTick()
		case 18640:
			a.quarterFrameTick()
			a.halfFrameTick()
			a.frameCycle = 0
		}
	}
}

func (a *Apu) quarterFrameTick() {
	a.pulse1.ClockEnvelope()
	a.pulse2.ClockEnvelope()
	a.noise.ClockEnvelope()
	a.triangle.ClockLinear()
}
func (a *Apu) halfFrameTick() {
	a.pulse1.ClockLength()
	a.pulse2.ClockLength()
	a.noise.ClockLength()
	a.triangle.ClockLength()
	a.pulse1.ClockSweep()
	a.pulse2.ClockSweep()
}

func (a *Apu) raiseIrq() {
	a.frameIrqSet = true
	if a.irq != nil {
		a.irq.Assert()
	}
}

// mix combines the five channel outputs through the documented two-stage
// non-linear DAC approximation rather than a simple weighted sum.
func (a *Apu) mix() float32 {
	p1 := a.pulse1.Sample()
	p2 := a.pulse2.Sample()
	t := a.triangle.Sample()
	n := a.noise.Sample()
	d := a.dmc.Sample()

	pulseOut := pulseTable[p1+p2]
	tndOut := tndTable[3*t+2*n+d]
	return pulseOut + tndOut
}

// filter applies the analog output stage's 2 high-pass + 1 low-pass
// single-pole chain.
func (a *Apu) filter(in float32) float32 {
	// low-pass, cutoff ~14kHz
	const lpfAlpha = 0.815686
	lp := a.lpfPrev + lpfAlpha*(in-a.lpfPrev)
	a.lpfPrev = lp

	// high-pass, cutoff ~440Hz
	const hpf2Alpha = 0.996
	hp2 := hpf2Alpha * (a.hpf2Prev + lp - a.hpf2)
	a.hpf2 = lp
	a.hpf2Prev = hp2

	// high-pass, cutoff ~90Hz
	const hpf1Alpha = 0.9992
	hp1 := hpf1Alpha * (a.hpf1Prev + hp2 - a.hpf1)
	a.hpf1 = hp2
	a.hpf1Prev = hp1

	return hp1
}

func (a *Apu) sample() {
	a.sampleAccum++
	if a.sampleAccum < a.cyclesPerSamp {
		return
	}
	a.sampleAccum -= a.cyclesPerSamp
	out := a.filter(a.mix())
	select {
	case a.Samples <- out:
	default:
		// host isn't draining fast enough; drop the sample rather than
		// block the emulation loop
	}
}

// Read8/Write8 dispatch the $4000-$4017 register window.
func (a *Apu) Read8(addr uint16) uint8 {
	if addr != 0x4015 {
		return 0
	}
	return a.readStatus()
}

func (a *Apu) readStatus() uint8 {
	var v uint8
	if a.pulse1.Length.Value > 0 {
		v |= 0x01
	}
	if a.pulse2.Length.Value > 0 {
		v |= 0x02
	}
	if a.triangle.Length.Value > 0 {
		v |= 0x04
	}
	if a.noise.Length.Value > 0 {
		v |= 0x08
	}
	if a.dmc.Active() {
		v |= 0x10
	}
	if a.frameIrqSet {
		v |= 0x40
	}
	if a.dmc.IRQ {
		v |= 0x80
	}
	a.frameIrqSet = false
	if a.irq != nil {
		a.irq.Clear()
	}
	return v
}

func (a *Apu) Write8(addr uint16, val uint8) {
	switch addr {
	case 0x4000:
		a.pulse1.WriteControl(val)
	case 0x4001:
		a.pulse1.WriteSweep(val)
	case 0x4002:
		a.pulse1.WriteTimerLo(val)
	case 0x4003:
		a.pulse1.WriteTimerHi(val)
	case 0x4004:
		a.pulse2.WriteControl(val)
	case 0x4005:
		a.pulse2.WriteSweep(val)
	case 0x4006:
		a.pulse2.WriteTimerLo(val)
	case 0x4007:
		a.pulse2.WriteTimerHi(val)
	case 0x4008:
		a.triangle.WriteControl(val)
	case 0x400A:
		a.triangle.WriteTimerLo(val)
	case 0x400B:
		a.triangle.WriteTimerHi(val)
	case 0x400C:
		a.noise.WriteControl(val)
	case 0x400E:
		a.noise.WritePeriod(val)
	case 0x400F:
		a.noise.WriteLength(val)
	case 0x4010:
		a.dmc.WriteControl(val)
	case 0x4011:
		a.dmc.WriteDirectLoad(val)
	case 0x4012:
		a.dmc.WriteSampleAddr(val)
	case 0x4013:
		a.dmc.WriteSampleLength(val)
	case 0x4015:
		a.writeStatus(val)
	case 0x4017:
		a.writeFrameCounter(val)
	}
}

func (a *Apu) writeStatus(val uint8) {
	a.pulse1.SetEnabled(val&0x01 != 0)
	a.pulse2.SetEnabled(val&0x02 != 0)
	a.triangle.SetEnabled(val&0x04 != 0)
	a.noise.SetEnabled(val&0x08 != 0)
	a.dmc.SetEnabled(val&0x10 != 0)
}

// writeFrameCounter implements the documented write-timing quirk: the new
// mode takes effect 3 cycles later on an even CPU cycle, 4 cycles later on
// an odd one, and a 5-step write clocks both half- and quarter-frame units
// as soon as it takes effect. The IRQ-inhibit flag applies at once.
func (a *Apu) writeFrameCounter(val uint8) {
	a.inhibitIRQ = val&0x40 != 0
	if a.inhibitIRQ {
		a.frameIrqSet = false
		if a.irq != nil {
			a.irq.Clear()
		}
	}
	a.pendingWrite = true
	a.pendingMode = (val >> 7) & 1
	if a.cycleParity {
		a.pendingDelay = 3
	} else {
		a.pendingDelay = 4
	}
}
