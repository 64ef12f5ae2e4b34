package waves

import "github.com/tiagolobo-student/gones/internal/common"

// dutyTable holds the 4 documented 8-step duty cycle waveforms for the
// pulse channels (12.5%, 25%, 50%, 25% negated).
var dutyTable = [4][8]uint8{
	{0, 1, 0, 0, 0, 0, 0, 0},
	{0, 1, 1, 0, 0, 0, 0, 0},
	{0, 1, 1, 1, 1, 0, 0, 0},
	{1, 0, 0, 1, 1, 1, 1, 1},
}

// Pulse is one of the APU's two square-wave channels.
type Pulse struct {
	Enabled bool
	Duty    uint8
	seq     uint8

	Timer    Timer
	Length   LengthCounter
	Envelope Envelope
	Sweep    Sweep
}

// NewPulse constructs a pulse channel; onesComplement selects pulse 1's
// sweep subtraction convention over pulse 2's.
func NewPulse(onesComplement bool) *Pulse {
	p := &Pulse{}
	p.Sweep.Init(onesComplement)
	return p
}

func (p *Pulse) WriteControl(val uint8) {
	p.Duty = (val >> 6) & 0x03
	p.Length.Halt = val&0x20 != 0
	p.Envelope.Loop = p.Length.Halt
	p.Envelope.Constant = val&0x10 != 0
	p.Envelope.Volume = val & 0x0F
}
func (p *Pulse) WriteSweep(val uint8) {
	p.Sweep.Enabled = val&0x80 != 0
	p.Sweep.Period = (val >> 4) & 0x07
	p.Sweep.Negate = val&0x08 != 0
	p.Sweep.Shift = val & 0x07
	p.Sweep.Reload()
}
func (p *Pulse) WriteTimerLo(val uint8) {
	p.Timer.Period = (p.Timer.Period &^ 0x00FF) | uint16(val)
}
func (p *Pulse) WriteTimerHi(val uint8) {
	p.Timer.Period = (p.Timer.Period &^ 0x0700) | (uint16(val&0x07) << 8)
	p.seq = 0
	p.Envelope.StartFlag = true
	if p.Enabled {
		p.Length.Load(val >> 3)
	}
}

// Clock advances the timer every other CPU cycle (APU channels clock at
// half the CPU rate).
func (p *Pulse) Clock() {
	if p.Timer.Clock() {
		p.seq = (p.seq + 1) % 8
	}
}

func (p *Pulse) ClockEnvelope() { p.Envelope.Clock() }
func (p *Pulse) ClockLength()   { p.Length.Clock() }
func (p *Pulse) ClockSweep() {
	period, _ := p.Sweep.Clock(p.Timer.Period)
	p.Timer.Period = period
}

// Sample returns the channel's current 0-15 output level.
func (p *Pulse) Sample() uint8 {
	if !p.Enabled || p.Length.Silent() || p.Timer.Period < 8 {
		return 0
	}
	if dutyTable[p.Duty][p.seq] == 0 {
		return 0
	}
	return p.Envelope.Output()
}

func (p *Pulse) SetEnabled(enabled bool) {
	p.Enabled = enabled
	if !enabled {
		p.Length.Value = 0
	}
}

func (p *Pulse) Serialise(s common.Serialiser) error {
	return s.Serialise(p.Enabled, p.Duty, p.seq, &p.Timer, &p.Length, &p.Envelope, &p.Sweep)
}
func (p *Pulse) DeSerialise(s common.Serialiser) error {
	return s.DeSerialise(&p.Enabled, &p.Duty, &p.seq, &p.Timer, &p.Length, &p.Envelope, &p.Sweep)
}
