package waves

import "github.com/tiagolobo-student/gones/internal/common"

// dmcPeriodTable is the NTSC timer-period lookup selected by the low
// nibble written to $4010.
var dmcPeriodTable = [16]uint16{
	428, 380, 340, 320, 286, 254, 226, 214,
	190, 160, 142, 128, 106, 84, 72, 54,
}

// DMC is the delta modulation channel: it streams 1-bit deltas from a
// sample loaded via direct-memory-access from CPU address space, stealing
// CPU cycles to do it. MemRead performs the actual bus read and is wired
// by the console to the shared Bus.
type DMC struct {
	Enabled bool
	IRQ     bool
	Loop    bool

	Timer Timer

	sampleAddr   uint16
	sampleLength uint16
	curAddr      uint16
	bytesLeft    uint16

	sampleBuffer     uint8
	bufferEmpty      bool
	shiftRegister    uint8
	bitsRemaining    uint8
	silence          bool
	output           uint8

	MemRead func(addr uint16) uint8

	// StallCycles accumulates CPU cycles this DMA should steal; the
	// console drains it through Apu.TakeDMCStall whenever no earlier stall
	// is still in progress.
	StallCycles int

	irqLine interface {
		Assert()
	}
}

func (d *DMC) SetIRQLine(line interface{ Assert() }) {
	d.irqLine = line
}

func (d *DMC) WriteControl(val uint8) {
	d.IRQ = val&0x80 != 0
	d.Loop = val&0x40 != 0
	d.Timer.Period = dmcPeriodTable[val&0x0F]
	if !d.IRQ {
		// clearing bit 7 does not clear an already-asserted DMC IRQ:
		// the channel's line only offers Assert
	}
}
func (d *DMC) WriteDirectLoad(val uint8) {
	d.output = val & 0x7F
}
func (d *DMC) WriteSampleAddr(val uint8) {
	d.sampleAddr = 0xC000 + uint16(val)*64
}
func (d *DMC) WriteSampleLength(val uint8) {
	d.sampleLength = uint16(val)*16 + 1
}

func (d *DMC) SetEnabled(enabled bool) {
	d.Enabled = enabled
	if !enabled {
		d.bytesLeft = 0
		return
	}
	if d.bytesLeft == 0 {
		d.restart()
	}
}
func (d *DMC) restart() {
	d.curAddr = d.sampleAddr
	d.bytesLeft = d.sampleLength
}

// Clock advances the timer once per call (Apu.Tick calls it every other
// CPU cycle) and runs the output unit's bit
// shift; sample refills are requested via StallCycles rather than
// performed synchronously, since a real fetch steals up to 4 CPU cycles.
func (d *DMC) Clock() {
	if d.bufferEmpty && d.bytesLeft > 0 && d.MemRead != nil {
		d.fetchSample()
	}
	if !d.Timer.Clock() {
		return
	}
	if !d.silence {
		if d.shiftRegister&1 != 0 {
			if d.output <= 125 {
				d.output += 2
			}
		} else {
			if d.output >= 2 {
				d.output -= 2
			}
		}
	}
	d.shiftRegister >>= 1
	if d.bitsRemaining > 0 {
		d.bitsRemaining--
	}
	if d.bitsRemaining == 0 {
		d.bitsRemaining = 8
		if d.bufferEmpty {
			d.silence = true
		} else {
			d.silence = false
			d.shiftRegister = d.sampleBuffer
			d.bufferEmpty = true
		}
	}
}

// fetchSample requests the stolen-cycle DMA read by adding a fixed 4
// cycles to StallCycles; the console orchestrator stalls the CPU for that
// many cycles and then calls PerformFetch. The stall length does not
// depend on which CPU cycle the fetch lands on.
func (d *DMC) fetchSample() {
	d.StallCycles += 4
}

// PerformFetch is called by the console once the stolen cycles have been
// accounted for; it does the real memory read and advances the sample
// address/length, wrapping and re-triggering the loop flag or asserting
// the DMC IRQ line as appropriate.
func (d *DMC) PerformFetch() {
	if d.bytesLeft == 0 {
		return
	}
	d.sampleBuffer = d.MemRead(d.curAddr)
	d.bufferEmpty = false
	d.curAddr++
	if d.curAddr == 0 {
		d.curAddr = 0x8000
	}
	d.bytesLeft--
	if d.bytesLeft == 0 {
		if d.Loop {
			d.restart()
		} else if d.IRQ && d.irqLine != nil {
			d.irqLine.Assert()
		}
	}
}

func (d *DMC) Active() bool {
	return d.bytesLeft > 0
}

func (d *DMC) Sample() uint8 {
	return d.output
}

// Serialise/DeSerialise skip MemRead and irqLine: both are wired by the
// console's Init after a state load, not part of the channel's own state.
func (d *DMC) Serialise(s common.Serialiser) error {
	return s.Serialise(d.Enabled, d.IRQ, d.Loop, &d.Timer, d.sampleAddr, d.sampleLength,
		d.curAddr, d.bytesLeft, d.sampleBuffer, d.bufferEmpty, d.shiftRegister,
		d.bitsRemaining, d.silence, d.output, d.StallCycles)
}
func (d *DMC) DeSerialise(s common.Serialiser) error {
	return s.DeSerialise(&d.Enabled, &d.IRQ, &d.Loop, &d.Timer, &d.sampleAddr, &d.sampleLength,
		&d.curAddr, &d.bytesLeft, &d.sampleBuffer, &d.bufferEmpty, &d.shiftRegister,
		&d.bitsRemaining, &d.silence, &d.output, &d.StallCycles)
}
