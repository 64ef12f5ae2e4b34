package waves

import "github.com/tiagolobo-student/gones/internal/common"

// noisePeriodTable is the NTSC timer-period lookup selected by the low
// nibble written to $400E.
var noisePeriodTable = [16]uint16{
	4, 8, 16, 32, 64, 96, 128, 160, 202, 254, 380, 508, 762, 1016, 1524, 2034,
}

type Noise struct {
	Enabled bool
	Mode    bool // true selects the 6-bit tap (93-step loop)
	shift   uint16

	Timer    Timer
	Length   LengthCounter
	Envelope Envelope
}

func NewNoise() *Noise {
	return &Noise{shift: 1}
}

func (n *Noise) WriteControl(val uint8) {
	n.Length.Halt = val&0x20 != 0
	n.Envelope.Loop = n.Length.Halt
	n.Envelope.Constant = val&0x10 != 0
	n.Envelope.Volume = val & 0x0F
}
func (n *Noise) WritePeriod(val uint8) {
	n.Mode = val&0x80 != 0
	n.Timer.Period = noisePeriodTable[val&0x0F]
}
func (n *Noise) WriteLength(val uint8) {
	n.Envelope.StartFlag = true
	if n.Enabled {
		n.Length.Load(val >> 3)
	}
}

func (n *Noise) Clock() {
	if !n.Timer.Clock() {
		return
	}
	tapBit := uint(1)
	if n.Mode {
		tapBit = 6
	}
	feedback := (n.shift & 1) ^ ((n.shift >> tapBit) & 1)
	n.shift >>= 1
	n.shift |= feedback << 14
}
func (n *Noise) ClockEnvelope() { n.Envelope.Clock() }
func (n *Noise) ClockLength()   { n.Length.Clock() }

func (n *Noise) Sample() uint8 {
	if !n.Enabled || n.Length.Silent() || n.shift&1 != 0 {
		return 0
	}
	return n.Envelope.Output()
}

func (n *Noise) SetEnabled(enabled bool) {
	n.Enabled = enabled
	if !enabled {
		n.Length.Value = 0
	}
}

func (n *Noise) Serialise(s common.Serialiser) error {
	return s.Serialise(n.Enabled, n.Mode, n.shift, &n.Timer, &n.Length, &n.Envelope)
}
func (n *Noise) DeSerialise(s common.Serialiser) error {
	return s.DeSerialise(&n.Enabled, &n.Mode, &n.shift, &n.Timer, &n.Length, &n.Envelope)
}
