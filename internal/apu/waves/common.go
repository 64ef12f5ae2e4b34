package waves

import "github.com/tiagolobo-student/gones/internal/common"

// LengthTable is the hardware's 32-entry length counter lookup, selected by
// the top 5 bits written to $4003/$4007/$400B/$400F.
var LengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

// Timer is a down-counter that reloads and fires on reaching zero; every
// channel's pitch is derived from one of these.
type Timer struct {
	Period uint16
	Value  uint16
}

// Clock decrements once and reports whether it just reloaded (fired).
func (t *Timer) Clock() bool {
	if t.Value == 0 {
		t.Value = t.Period
		return true
	}
	t.Value--
	return false
}

func (t *Timer) Serialise(s common.Serialiser) error {
	return s.Serialise(t.Period, t.Value)
}
func (t *Timer) DeSerialise(s common.Serialiser) error {
	return s.DeSerialise(&t.Period, &t.Value)
}

// LengthCounter silences a channel once it decrements to zero, unless the
// channel's halt/envelope-loop flag is set.
type LengthCounter struct {
	Value uint8
	Halt  bool
}

func (l *LengthCounter) Load(index uint8) {
	l.Value = LengthTable[index&0x1F]
}
func (l *LengthCounter) Clock() {
	if !l.Halt && l.Value > 0 {
		l.Value--
	}
}
func (l *LengthCounter) Silent() bool {
	return l.Value == 0
}

func (l *LengthCounter) Serialise(s common.Serialiser) error {
	return s.Serialise(l.Value, l.Halt)
}
func (l *LengthCounter) DeSerialise(s common.Serialiser) error {
	return s.DeSerialise(&l.Value, &l.Halt)
}

// Envelope implements the documented decay/constant-volume/loop envelope
// shared by the pulse and noise channels.
type Envelope struct {
	StartFlag bool
	Loop      bool
	Constant  bool
	Volume    uint8 // constant volume, or envelope divider period

	decayLevel uint8
	divider    uint8
}

func (e *Envelope) Clock() {
	if e.StartFlag {
		e.StartFlag = false
		e.decayLevel = 15
		e.divider = e.Volume
		return
	}
	if e.divider == 0 {
		e.divider = e.Volume
		if e.decayLevel > 0 {
			e.decayLevel--
		} else if e.Loop {
			e.decayLevel = 15
		}
	} else {
		e.divider--
	}
}
func (e *Envelope) Output() uint8 {
	if e.Constant {
		return e.Volume
	}
	return e.decayLevel
}

func (e *Envelope) Serialise(s common.Serialiser) error {
	return s.Serialise(e.StartFlag, e.Loop, e.Constant, e.Volume, e.decayLevel, e.divider)
}
func (e *Envelope) DeSerialise(s common.Serialiser) error {
	return s.DeSerialise(&e.StartFlag, &e.Loop, &e.Constant, &e.Volume, &e.decayLevel, &e.divider)
}

// Sweep implements the pulse channels' period sweep unit, including the
// documented negate-flag asymmetry: pulse 1 subtracts one extra (one's
// complement), pulse 2 does not (two's complement), which is why
// identical sweep settings produce a slightly different target period on
// the two channels.
type Sweep struct {
	Enabled    bool
	Period     uint8
	Negate     bool
	Shift      uint8
	onesCompl  bool // true for pulse 1, false for pulse 2
	divider    uint8
	reloadFlag bool
}

func (s *Sweep) Init(onesComplement bool) {
	s.onesCompl = onesComplement
}

func (s *Sweep) targetPeriod(timerPeriod uint16) uint16 {
	change := timerPeriod >> s.Shift
	if !s.Negate {
		return timerPeriod + change
	}
	if s.onesCompl {
		return timerPeriod - change - 1
	}
	return timerPeriod - change
}

// Clock runs one half-frame tick; returns the possibly-updated timer
// period and whether the channel should be muted this frame (target
// period out of the valid 8..0x7FF range, or the timer period too low).
func (s *Sweep) Clock(timerPeriod uint16) (uint16, bool) {
	target := s.targetPeriod(timerPeriod)
	muted := timerPeriod < 8 || target > 0x7FF

	if s.divider == 0 && s.Enabled && s.Shift > 0 && !muted {
		timerPeriod = target
	}
	if s.divider == 0 || s.reloadFlag {
		s.divider = s.Period
		s.reloadFlag = false
	} else {
		s.divider--
	}
	return timerPeriod, muted
}
func (s *Sweep) Reload() {
	s.reloadFlag = true
}

func (s *Sweep) Serialise(ser common.Serialiser) error {
	return ser.Serialise(s.Enabled, s.Period, s.Negate, s.Shift, s.onesCompl, s.divider, s.reloadFlag)
}
func (s *Sweep) DeSerialise(ser common.Serialiser) error {
	return ser.DeSerialise(&s.Enabled, &s.Period, &s.Negate, &s.Shift, &s.onesCompl, &s.divider, &s.reloadFlag)
}

// LinearCounter is the triangle channel's extra silencing counter, reset
// by writing $4008's control bit and counter value.
type LinearCounter struct {
	Value   uint8
	Reload  uint8
	Control bool
	reload  bool
}

func (l *LinearCounter) SetReloadFlag() {
	l.reload = true
}
func (l *LinearCounter) Clock() {
	if l.reload {
		l.Value = l.Reload
	} else if l.Value > 0 {
		l.Value--
	}
	if !l.Control {
		l.reload = false
	}
}

func (l *LinearCounter) Serialise(s common.Serialiser) error {
	return s.Serialise(l.Value, l.Reload, l.Control, l.reload)
}
func (l *LinearCounter) DeSerialise(s common.Serialiser) error {
	return s.DeSerialise(&l.Value, &l.Reload, &l.Control, &l.reload)
}
