package waves

import "testing"

func TestTimerClockReloadsOnZero(t *testing.T) {
	tm := Timer{Period: 3, Value: 0}
	fired := tm.Clock()
	if !fired {
		t.Fatalf("expected timer to fire when Value reaches 0")
	}
	if tm.Value != 3 {
		t.Fatalf("Value = %d, want reload to Period (3)", tm.Value)
	}
	if fired2 := tm.Clock(); fired2 {
		t.Fatalf("timer should not fire again immediately after reload")
	}
}

func TestLengthCounterHaltPreventsClock(t *testing.T) {
	var l LengthCounter
	l.Load(0) // LengthTable[0] == 10
	l.Halt = true
	l.Clock()
	if l.Value != 10 {
		t.Fatalf("Value = %d, want 10 (halted length should not decrement)", l.Value)
	}
	l.Halt = false
	l.Clock()
	if l.Value != 9 {
		t.Fatalf("Value = %d, want 9 after one clock", l.Value)
	}
}

func TestEnvelopeConstantVolume(t *testing.T) {
	e := Envelope{Constant: true, Volume: 7}
	if e.Output() != 7 {
		t.Fatalf("Output() = %d, want 7 for constant-volume envelope", e.Output())
	}
}

func TestEnvelopeDecaysToZeroWithoutLoop(t *testing.T) {
	e := Envelope{Volume: 0, StartFlag: true}
	e.Clock() // loads decayLevel=15, divider=0
	for i := 0; i < 20; i++ {
		e.Clock()
	}
	if e.Output() != 0 {
		t.Fatalf("Output() = %d, want 0 after decaying past 15 clocks with Loop=false", e.Output())
	}
}

func TestSweepOnesComplementVsTwosComplementAsymmetry(t *testing.T) {
	var s1, s2 Sweep
	s1.Init(true)  // pulse 1
	s2.Init(false) // pulse 2
	s1.Negate, s2.Negate = true, true
	s1.Shift, s2.Shift = 1, 1

	t1 := s1.targetPeriod(100)
	t2 := s2.targetPeriod(100)
	if t1 != t2-1 {
		t.Fatalf("pulse1 target = %d, pulse2 target = %d; pulse1 should be exactly one less (ones-complement)", t1, t2)
	}
}

func TestSweepMutesOutOfRangeTarget(t *testing.T) {
	var s Sweep
	s.Init(false)
	s.Shift = 0
	s.Negate = false
	_, muted := s.Clock(0x7F0) // target = 0x7F0+0x7F0 > 0x7FF
	if !muted {
		t.Fatalf("expected sweep to mute when target period exceeds 0x7FF")
	}
}

func TestLinearCounterReloadAndControl(t *testing.T) {
	var l LinearCounter
	l.Reload = 5
	l.Control = false
	l.SetReloadFlag()
	l.Clock()
	if l.Value != 5 {
		t.Fatalf("Value = %d, want 5 after reload", l.Value)
	}
	l.Clock() // reload flag cleared since Control is false
	if l.Value != 4 {
		t.Fatalf("Value = %d, want 4 after second clock", l.Value)
	}
}

func TestPulseSampleSilentBelowMinPeriod(t *testing.T) {
	p := NewPulse(true)
	p.Enabled = true
	p.Length.Value = 1
	p.Timer.Period = 2 // below the 8-period hardware floor
	p.Duty = 2
	p.seq = 1 // dutyTable[2][1] == 1
	if got := p.Sample(); got != 0 {
		t.Fatalf("Sample() = %d, want 0 for sub-8 timer period", got)
	}
}

func TestPulseSampleRespectsDutyCycle(t *testing.T) {
	p := NewPulse(true)
	p.Enabled = true
	p.Length.Value = 1
	p.Timer.Period = 100
	p.Envelope.Constant = true
	p.Envelope.Volume = 9
	p.Duty = 0
	p.seq = 0 // dutyTable[0][0] == 0 -> silent step
	if got := p.Sample(); got != 0 {
		t.Fatalf("Sample() = %d, want 0 on a zero step of the duty cycle", got)
	}
	p.seq = 1 // dutyTable[0][1] == 1 -> active step
	if got := p.Sample(); got != 9 {
		t.Fatalf("Sample() = %d, want 9 on an active step of the duty cycle", got)
	}
}

func TestNoiseLfsrTapBitSelectsMode(t *testing.T) {
	n := NewNoise()
	n.shift = 1
	n.Mode = false // tap bit 1
	n.Clock()
	if n.shift == 0 {
		t.Fatalf("LFSR should never settle at 0")
	}
}

func TestDmcEnableStartsOutputUnit(t *testing.T) {
	var d DMC
	d.MemRead = func(uint16) uint8 { return 0 }
	d.WriteSampleAddr(0x10)   // addr = 0xC000 + 0x10*64
	d.WriteSampleLength(0x01) // length = 0x01*16 + 1
	d.SetEnabled(true)
	if !d.Active() {
		t.Fatalf("expected DMC to be active after enabling with a nonzero sample length")
	}
	if d.sampleAddr != 0xC000+0x10*64 {
		t.Fatalf("sampleAddr = %#04x, want %#04x", d.sampleAddr, 0xC000+0x10*64)
	}
}

func TestDmcPerformFetchAdvancesAddressAndAssertsIrqOnExhaustion(t *testing.T) {
	var d DMC
	reads := 0
	d.MemRead = func(uint16) uint8 { reads++; return 0xFF }
	d.IRQ = true
	line := &assertOnlyLine{}
	d.SetIRQLine(line)
	d.WriteSampleAddr(0x00)
	d.WriteSampleLength(0x00) // length = 1 byte
	d.SetEnabled(true)
	d.PerformFetch()
	if reads != 1 {
		t.Fatalf("expected exactly one MemRead call, got %d", reads)
	}
	if d.Active() {
		t.Fatalf("expected DMC to go inactive after its single byte is exhausted")
	}
	if !line.asserted {
		t.Fatalf("expected IRQ line asserted once the sample with IRQ-enable runs out")
	}
}

type assertOnlyLine struct{ asserted bool }

func (a *assertOnlyLine) Assert() { a.asserted = true }
