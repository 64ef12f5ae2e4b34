package waves

import "github.com/tiagolobo-student/gones/internal/common"

// triangleSequence is the 32-step staircase the triangle channel steps
// through, one step per timer clock (the triangle clocks every CPU cycle,
// not every other like the pulse/noise channels).
var triangleSequence = [32]uint8{
	15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0,
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
}

type Triangle struct {
	Enabled bool
	seq     uint8

	Timer  Timer
	Length LengthCounter
	Linear LinearCounter
}

func (t *Triangle) WriteControl(val uint8) {
	t.Linear.Control = val&0x80 != 0
	t.Length.Halt = t.Linear.Control
	t.Linear.Reload = val & 0x7F
}
func (t *Triangle) WriteTimerLo(val uint8) {
	t.Timer.Period = (t.Timer.Period &^ 0x00FF) | uint16(val)
}
func (t *Triangle) WriteTimerHi(val uint8) {
	t.Timer.Period = (t.Timer.Period &^ 0x0700) | (uint16(val&0x07) << 8)
	t.Linear.SetReloadFlag()
	if t.Enabled {
		t.Length.Load(val >> 3)
	}
}

// Clock advances the timer every CPU cycle; a silenced channel (length or
// linear counter at zero) still clocks the timer but not the sequencer,
// which is what produces the characteristic ultrasonic pop when a game
// sets the period too low rather than silencing the channel outright.
func (t *Triangle) Clock() {
	if t.Timer.Clock() {
		if t.Length.Value > 0 && t.Linear.Value > 0 {
			t.seq = (t.seq + 1) % 32
		}
	}
}
func (t *Triangle) ClockLinear() { t.Linear.Clock() }
func (t *Triangle) ClockLength() { t.Length.Clock() }

func (t *Triangle) Sample() uint8 {
	if !t.Enabled {
		return 0
	}
	return triangleSequence[t.seq]
}

func (t *Triangle) SetEnabled(enabled bool) {
	t.Enabled = enabled
	if !enabled {
		t.Length.Value = 0
	}
}

func (t *Triangle) Serialise(s common.Serialiser) error {
	return s.Serialise(t.Enabled, t.seq, &t.Timer, &t.Length, &t.Linear)
}
func (t *Triangle) DeSerialise(s common.Serialiser) error {
	return s.DeSerialise(&t.Enabled, &t.seq, &t.Timer, &t.Length, &t.Linear)
}
