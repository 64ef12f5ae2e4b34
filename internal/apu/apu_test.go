package apu

import (
	"bytes"
	"testing"

	"github.com/tiagolobo-student/gones/internal/common"
)

type stubBus struct {
	mem [0x10000]uint8
}

func (s *stubBus) Read8(addr uint16) uint8 { return s.mem[addr] }

type stickyLine struct{ asserted bool }

func (s *stickyLine) Assert()        { s.asserted = true }
func (s *stickyLine) Clear()         { s.asserted = false }
func (s *stickyLine) Asserted() bool { return s.asserted }

func newTestApu() (*Apu, *stickyLine) {
	var a Apu
	irq := &stickyLine{}
	a.Init(&stubBus{}, irq, 44100)
	return &a, irq
}

func TestFrameSequencer4StepRaisesIrqAtCycle14915(t *testing.T) {
	a, irq := newTestApu()
	a.frameMode = 0
	a.inhibitIRQ = false
	for i := 0; i < NesApuFrameCycles*2+20; i++ {
		a.Tick()
		if irq.Asserted() {
			break
		}
	}
	if !irq.Asserted() {
		t.Fatalf("expected frame IRQ to be asserted within one 4-step sequence")
	}
}

func TestFrameSequencer4StepInhibited(t *testing.T) {
	a, irq := newTestApu()
	a.frameMode = 0
	a.inhibitIRQ = true
	for i := 0; i < NesApuFrameCycles*2+20; i++ {
		a.Tick()
	}
	if irq.Asserted() {
		t.Fatalf("IRQ should never assert with inhibitIRQ set")
	}
}

func TestFrameSequencer5StepNeverRaisesIrq(t *testing.T) {
	a, irq := newTestApu()
	a.frameMode = 1
	for i := 0; i < 18641*2; i++ {
		a.Tick()
	}
	if irq.Asserted() {
		t.Fatalf("5-step mode should never raise the frame IRQ")
	}
}

func TestWriteFrameCounterDelayParity(t *testing.T) {
	a, _ := newTestApu()
	a.cycleParity = false // next write lands on an "odd" accounted cycle
	a.writeFrameCounter(0x00)
	if a.pendingDelay != 4 {
		t.Fatalf("pendingDelay = %d, want 4 when cycleParity is false", a.pendingDelay)
	}
	a.cycleParity = true
	a.writeFrameCounter(0x00)
	if a.pendingDelay != 3 {
		t.Fatalf("pendingDelay = %d, want 3 when cycleParity is true", a.pendingDelay)
	}
}

func TestWriteFrameCounterInhibitClearsPendingIrq(t *testing.T) {
	a, irq := newTestApu()
	a.frameIrqSet = true
	irq.Assert()
	a.writeFrameCounter(0x40) // bit 6 = inhibit IRQ
	if irq.Asserted() {
		t.Fatalf("expected inhibit-IRQ write to clear any pending frame IRQ immediately")
	}
}

func TestStatusRegisterReportsChannelActivity(t *testing.T) {
	a, _ := newTestApu()
	a.pulse1.Length.Value = 5
	if got := a.readStatus(); got&0x01 == 0 {
		t.Fatalf("status = %#02x, want bit 0 set when pulse1 length > 0", got)
	}
}

func TestMixNonLinearOutputIsBounded(t *testing.T) {
	a, _ := newTestApu()
	a.pulse1.Enabled, a.pulse2.Enabled = true, true
	a.pulse1.Length.Value, a.pulse2.Length.Value = 1, 1
	a.pulse1.Timer.Period, a.pulse2.Timer.Period = 100, 100
	a.pulse1.Envelope.Constant, a.pulse2.Envelope.Constant = true, true
	a.pulse1.Envelope.Volume, a.pulse2.Envelope.Volume = 15, 15
	a.pulse1.Duty, a.pulse2.Duty = 2, 2
	a.pulse1.WriteTimerHi(0) // seeds seq=0; advance once to an active duty step
	a.pulse1.Clock()
	a.pulse2.WriteTimerHi(0)
	a.pulse2.Clock()
	out := a.mix()
	if out <= 0 {
		t.Fatalf("mix() = %f, want a positive output with both pulses driven at max volume", out)
	}
	if out > 2.0 {
		t.Fatalf("mix() = %f, non-linear DAC output should stay well under 2.0", out)
	}
}

func TestSerialiseRoundtripsChannelState(t *testing.T) {
	a, _ := newTestApu()
	a.Write8(0x4000, 0x3F) // pulse1: duty, halt, constant volume 0xF
	a.Write8(0x4002, 0x34) // pulse1 timer lo
	a.Write8(0x4015, 0x01) // enable pulse1
	a.Write8(0x4003, 0x05) // pulse1 timer hi + length load
	for i := 0; i < 1000; i++ {
		a.Tick()
	}
	wantLength := a.pulse1.Length.Value
	wantTimerVal := a.pulse1.Timer.Value

	var buf bytes.Buffer
	s := common.NewSerialiser(&buf)
	if err := a.Serialise(s); err != nil {
		t.Fatalf("Serialise: %v", err)
	}

	b, _ := newTestApu()
	if err := b.DeSerialise(s); err != nil {
		t.Fatalf("DeSerialise: %v", err)
	}
	if b.pulse1.Length.Value != wantLength {
		t.Fatalf("pulse1.Length.Value = %d, want %d", b.pulse1.Length.Value, wantLength)
	}
	if b.pulse1.Timer.Value != wantTimerVal {
		t.Fatalf("pulse1.Timer.Value = %d, want %d", b.pulse1.Timer.Value, wantTimerVal)
	}
	if b.pulse1.Sample() != a.pulse1.Sample() {
		t.Fatalf("restored pulse1.Sample() = %d, want %d", b.pulse1.Sample(), a.pulse1.Sample())
	}
}

func TestDMCStallCyclesDrainedOnce(t *testing.T) {
	a, _ := newTestApu()
	a.dmc.StallCycles = 12
	if got := a.TakeDMCStall(); got != 12 {
		t.Fatalf("TakeDMCStall() = %d, want 12", got)
	}
	if a.dmc.StallCycles != 0 {
		t.Fatalf("StallCycles should be drained to 0 after TakeDMCStall")
	}
}
