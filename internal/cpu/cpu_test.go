package cpu

import "testing"

// flatBus is a 64KB flat-memory bus used to drive the CPU in isolation,
// without a PPU/APU/mapper behind it.
type flatBus struct {
	mem [0x10000]uint8
}

func (b *flatBus) Read8(addr uint16) uint8       { return b.mem[addr] }
func (b *flatBus) Write8(addr uint16, val uint8) { b.mem[addr] = val }

func newTestCpu(prog []uint8) (*Cpu, *flatBus) {
	bus := &flatBus{}
	copy(bus.mem[0x0600:], prog)
	bus.mem[0xFFFC] = 0x00
	bus.mem[0xFFFD] = 0x06
	var c Cpu
	c.Init(bus, nil, nil, nil)
	return &c, bus
}

// runInstructions drains any in-flight cycles (including the 7-cycle reset
// sequence on first use), then fully executes n instructions one at a time.
func runInstructions(c *Cpu, n int) {
	for c.cyclesLeft > 0 {
		c.Tick()
	}
	for i := 0; i < n; i++ {
		c.Tick() // fetch/decode/execute happens on this cycle
		for c.cyclesLeft > 0 {
			c.Tick()
		}
	}
}

func TestLdaImmediate(t *testing.T) {
	c, _ := newTestCpu([]uint8{0xA9, 0xAA, 0x00})
	runInstructions(c, 1)
	if c.A != 0xAA {
		t.Fatalf("A = %#02x, want 0xAA", c.A)
	}
	if !c.P.Has(FlagN) || c.P.Has(FlagZ) {
		t.Fatalf("flags = %s, want N set, Z clear", c.P.String())
	}
}

func TestLdaZeroPage(t *testing.T) {
	c, bus := newTestCpu([]uint8{0xA5, 0xBB, 0x00})
	bus.mem[0xBB] = 0x77
	runInstructions(c, 1)
	if c.A != 0x77 {
		t.Fatalf("A = %#02x, want 0x77", c.A)
	}
}

func TestLdaAbsoluteXPageCross(t *testing.T) {
	c, bus := newTestCpu([]uint8{0xBD, 0xFE, 0xFF, 0x00})
	c.X = 0x0D
	bus.mem[0x000B] = 0x99
	runInstructions(c, 1)
	if c.A != 0x99 {
		t.Fatalf("A = %#02x, want 0x99", c.A)
	}
	if !c.pageCrossed {
		t.Fatalf("expected page-cross penalty for $FFFE+$0D")
	}
}

func TestStaIndirectX(t *testing.T) {
	c, bus := newTestCpu([]uint8{0x81, 0x21, 0x00})
	bus.mem[0x22] = 0x00
	bus.mem[0x23] = 0x01
	c.A = 0x0C
	c.X = 0x01
	runInstructions(c, 1)
	if got := bus.mem[0x0100]; got != 0x0C {
		t.Fatalf("mem[0x100] = %#02x, want 0x0C", got)
	}
}

func TestJmpIndirectPageWrapBug(t *testing.T) {
	// pointer at $01FF straddles a page: the real 6502 refetches the high
	// byte from $0100, not $0200.
	c, bus := newTestCpu([]uint8{0x6C, 0xFF, 0x01})
	bus.mem[0x01FF] = 0x00
	bus.mem[0x0100] = 0x06
	runInstructions(c, 1)
	if c.PC != 0x0600 {
		t.Fatalf("PC = %#04x, want 0x0600 (indirect JMP page-wrap bug)", c.PC)
	}
}

func TestBranchTakenAddsCycle(t *testing.T) {
	c, _ := newTestCpu([]uint8{0xA9, 0x51, 0x10, 0x03, 0xA9, 0x22, 0x00, 0xA9, 0x33})
	runInstructions(c, 1) // LDA #$51
	before := c.totalCycles
	runInstructions(c, 1) // BPL +3, taken (N clear)
	if c.PC != 0x0607 {
		t.Fatalf("PC = %#04x, want 0x0607", c.PC)
	}
	if c.totalCycles-before < 3 {
		t.Fatalf("branch-taken should cost at least 3 cycles, got %d", c.totalCycles-before)
	}
}

func TestJsrRts(t *testing.T) {
	c, _ := newTestCpu([]uint8{0x20, 0x04, 0x06, 0x00, 0xA9, 0x11, 0x60})
	runInstructions(c, 1) // JSR $0604
	if c.PC != 0x0604 {
		t.Fatalf("PC = %#04x, want 0x0604 after JSR", c.PC)
	}
	runInstructions(c, 1) // LDA #$11
	runInstructions(c, 1) // RTS
	if c.PC != 0x0603 {
		t.Fatalf("PC = %#04x, want 0x0603 after RTS", c.PC)
	}
	if c.A != 0x11 {
		t.Fatalf("A = %#02x, want 0x11", c.A)
	}
}

func TestAdcOverflowFlag(t *testing.T) {
	// 0x7F + 0x01 overflows into negative: signed 127 + 1 = -128
	c, _ := newTestCpu([]uint8{0xA9, 0x7F, 0x69, 0x01, 0x00})
	runInstructions(c, 1)
	runInstructions(c, 1)
	if c.A != 0x80 {
		t.Fatalf("A = %#02x, want 0x80", c.A)
	}
	if !c.P.Has(FlagV) {
		t.Fatalf("expected overflow flag set")
	}
}

func TestUnofficialLax(t *testing.T) {
	// LAX zero page ($A7): loads both A and X from the same byte.
	c, bus := newTestCpu([]uint8{0xA7, 0x10, 0x00})
	bus.mem[0x10] = 0x42
	runInstructions(c, 1)
	if c.A != 0x42 || c.X != 0x42 {
		t.Fatalf("A=%#02x X=%#02x, want both 0x42", c.A, c.X)
	}
}

func TestNmiServicedBetweenInstructions(t *testing.T) {
	c, bus := newTestCpu([]uint8{0xEA, 0xEA, 0xEA}) // NOP NOP NOP
	bus.mem[0xFFFA] = 0x00
	bus.mem[0xFFFB] = 0x08
	nmi := &stickyLine{}
	c.nmi = nmi
	nmi.Assert()
	runInstructions(c, 1)
	if c.PC != 0x0800 {
		t.Fatalf("PC = %#04x, want 0x0800 (NMI vector) after edge-triggered NMI", c.PC)
	}
}

func TestCliDelaysPendingIrqByOneInstruction(t *testing.T) {
	// CLI, NOP, NOP with IRQ asserted throughout: the IRQ that was already
	// pending during CLI must not fire right after it, only after the
	// instruction following CLI has also completed.
	c, bus := newTestCpu([]uint8{0x58, 0xEA, 0xEA, 0x00})
	bus.mem[0xFFFE] = 0x09
	bus.mem[0xFFFF] = 0x08
	irq := &stickyLine{}
	c.irq = irq
	irq.Assert()

	runInstructions(c, 1) // CLI
	if c.PC != 0x0601 {
		t.Fatalf("PC = %#04x, want 0x0601 after CLI", c.PC)
	}

	runInstructions(c, 1) // first NOP after CLI: IRQ must still be masked
	if c.PC != 0x0602 {
		t.Fatalf("PC = %#04x, want 0x0602 (IRQ should not fire right after CLI)", c.PC)
	}

	runInstructions(c, 1) // IRQ now fires instead of the second NOP
	if c.PC != 0x0809 {
		t.Fatalf("PC = %#04x, want 0x0809 (IRQ vector) one instruction after CLI", c.PC)
	}
}

func TestBrkHijackedByPendingNmiVectorsThroughNmi(t *testing.T) {
	c, bus := newTestCpu([]uint8{0x00}) // BRK
	bus.mem[0xFFFE] = 0x11
	bus.mem[0xFFFF] = 0x02 // IRQ/BRK vector, should NOT be taken
	bus.mem[0xFFFA] = 0x22
	bus.mem[0xFFFB] = 0x03 // NMI vector, should be taken instead
	nmi := &stickyLine{}
	c.nmi = nmi
	nmi.Assert()

	// let the edge-detector latch the NMI before BRK executes
	c.Tick()
	for c.cyclesLeft > 0 {
		c.Tick()
	}
	runInstructions(c, 1) // BRK

	if c.PC != 0x0322 {
		t.Fatalf("PC = %#04x, want 0x0322 (NMI vector hijacked BRK)", c.PC)
	}
	if c.nmiPending {
		t.Fatalf("pending NMI should be consumed by the BRK hijack, not serviced again")
	}
}

type stickyLine struct{ asserted bool }

func (s *stickyLine) Assert()        { s.asserted = true }
func (s *stickyLine) Clear()         { s.asserted = false }
func (s *stickyLine) Asserted() bool { return s.asserted }
