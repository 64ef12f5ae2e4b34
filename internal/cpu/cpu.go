package cpu

import (
	"github.com/tiagolobo-student/gones/internal/common"
)

// Bus is the narrow memory interface the CPU executes against; the console
// wires its shared Bus through this so the CPU never knows about PPU/APU
// register decoding directly.
type Bus interface {
	Read8(addr uint16) uint8
	Write8(addr uint16, val uint8)
}

// addrMode identifies how an instruction's operand is fetched.
type addrMode int

const (
	modeImplied addrMode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
	modeIndirectX
	modeIndirectY
	modeRelative
)

type instruction struct {
	name    string
	mode    addrMode
	cycles  uint8
	exec    func(c *Cpu, addr uint16, mode addrMode)
	illegal bool
}

// Cpu is a cycle-stepped Ricoh 2A03 core: every call to Tick performs the
// work of exactly one CPU cycle, so the console can interleave it with the
// PPU/APU at the 1:3 ratio spec.md requires without either side drifting.
type Cpu struct {
	Registers

	bus   Bus
	nmi   common.IiInterrupt
	irq   common.IiInterrupt
	halt  common.IiInterrupt // DMA/DMC cycle-stealing line

	totalCycles uint64

	// instruction-in-flight state, so Tick can suspend mid-instruction
	// between calls without re-entrant recursion
	opcode      uint8
	insn        instruction
	operandAddr uint16
	cyclesLeft  uint8
	pageCrossed bool

	nmiPending bool
	prevNmi    bool

	// irqPollMask is the I flag's value as it stood before the
	// in-flight/just-finished instruction's own effect on it, per
	// spec.md §4.3: the IRQ check that runs at the start of the next
	// instruction polls against this, not the live P register, so CLI
	// delays an already-pending IRQ by one instruction and SEI can't
	// mask one that was already in the pipe.
	irqPollMask bool

	Verbose bool
}

func (c *Cpu) Serialise(s common.Serialiser) error {
	return s.Serialise(c.A, c.X, c.Y, c.SP, c.PC, c.P.val, c.totalCycles, c.nmiPending, c.prevNmi, c.irqPollMask)
}
func (c *Cpu) DeSerialise(s common.Serialiser) error {
	return s.DeSerialise(&c.A, &c.X, &c.Y, &c.SP, &c.PC, &c.P.val, &c.totalCycles, &c.nmiPending, &c.prevNmi, &c.irqPollMask)
}

// Init wires the CPU to the shared bus and its two interrupt lines. nmi is
// asserted by the PPU at the start of vertical blank; irq is the OR of the
// APU frame sequencer, DMC channel, and any mapper IRQ counter (MMC3).
func (c *Cpu) Init(bus Bus, nmi, irq, halt common.IiInterrupt) {
	c.bus = bus
	c.nmi = nmi
	c.irq = irq
	c.halt = halt
	c.Reset()
}

// Reset reloads the registers through Registers.Init (SP = $FD, I flag
// set) and loads PC from $FFFC. SP is set to $FD on every call; it is not
// decremented by 3 from its current value.
func (c *Cpu) Reset() {
	c.Registers.Init()
	c.PC = c.read16(0xFFFC)
	c.cyclesLeft = 7
	c.totalCycles = 0
	c.opcode = 0
	c.insn = instruction{}
	c.irqPollMask = true
	c.nmiPending = false
	c.prevNmi = false
}

func (c *Cpu) read8(addr uint16) uint8  { return c.bus.Read8(addr) }
func (c *Cpu) write8(addr uint16, v uint8) { c.bus.Write8(addr, v) }
func (c *Cpu) read16(addr uint16) uint16 {
	lo := uint16(c.read8(addr))
	hi := uint16(c.read8(addr + 1))
	return lo | hi<<8
}

// read16bug reproduces the indirect-JMP page-wrap bug: if the low byte of
// the pointer is $FF, the high byte is fetched from the start of the same
// page rather than the next page.
func (c *Cpu) read16bug(addr uint16) uint16 {
	lo := uint16(c.read8(addr))
	hiAddr := (addr & 0xFF00) | uint16(uint8(addr)+1)
	hi := uint16(c.read8(hiAddr))
	return lo | hi<<8
}

func (c *Cpu) push8(v uint8) {
	c.write8(0x0100|uint16(c.SP), v)
	c.SP--
}
func (c *Cpu) pop8() uint8 {
	c.SP++
	return c.read8(0x0100 | uint16(c.SP))
}
func (c *Cpu) push16(v uint16) {
	c.push8(uint8(v >> 8))
	c.push8(uint8(v))
}
func (c *Cpu) pop16() uint16 {
	lo := uint16(c.pop8())
	hi := uint16(c.pop8())
	return lo | hi<<8
}

func pagesDiffer(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// Tick executes exactly one CPU clock cycle. When an instruction takes
// multiple cycles, the first cycle does all the work (fetch/decode/addr
// calc/execute) and the remaining cycles are spent idle, matching the
// teacher's cycle-accounting style while keeping bus timing exact for
// anything external (DMA, APU) stepped in lockstep.
func (c *Cpu) Tick() {
	c.totalCycles++

	if c.halt != nil && c.halt.Asserted() {
		return
	}

	// NMI is edge-triggered, so the line is watched every cycle rather
	// than only at instruction boundaries: an edge that arrives mid
	// instruction still has to be latched in time for opBRK to see it
	// and hijack its vector.
	nmiLine := c.nmi != nil && c.nmi.Asserted()
	if nmiLine && !c.prevNmi {
		c.nmiPending = true
	}
	c.prevNmi = nmiLine

	if c.cyclesLeft > 0 {
		c.cyclesLeft--
		return
	}

	if c.nmiPending {
		c.nmiPending = false
		if c.nmi != nil {
			c.nmi.Clear()
		}
		c.serviceInterrupt(0xFFFA, false)
		return
	}
	// Polled against irqPollMask, the I flag as it stood before the
	// previous instruction's own effect on it, not the live register.
	if c.irq != nil && c.irq.Asserted() && !c.irqPollMask {
		c.serviceInterrupt(0xFFFE, false)
		return
	}

	c.step()
}

func (c *Cpu) serviceInterrupt(vector uint16, fromBrk bool) {
	c.push16(c.PC)
	c.push8(c.P.PushValue(fromBrk))
	c.P.Set(FlagI)
	c.PC = c.read16(vector)
	c.cyclesLeft = 7
	c.irqPollMask = true
}

func (c *Cpu) fetch8() uint8 {
	v := c.read8(c.PC)
	c.PC++
	return v
}
func (c *Cpu) fetch16() uint16 {
	v := c.read16(c.PC)
	c.PC += 2
	return v
}

// step decodes and executes exactly one instruction, charging its base
// cycle count (plus any page-cross/branch-taken penalty) to cyclesLeft.
func (c *Cpu) step() {
	c.opcode = c.fetch8()
	insn := opcodeTable[c.opcode]
	c.insn = insn

	addr, extraCycle := c.resolveAddr(insn.mode)
	c.operandAddr = addr
	c.pageCrossed = extraCycle

	// Captured before exec runs: the poll that fires right after this
	// instruction has to see the I flag as CLI/SEI/PLP/RTI found it, not
	// the value any of those just wrote.
	c.irqPollMask = c.P.Has(FlagI)

	insn.exec(c, addr, insn.mode)

	cycles := insn.cycles
	if extraCycle {
		cycles++
	}
	if cycles > 0 {
		c.cyclesLeft += cycles - 1
	}
}

func (c *Cpu) resolveAddr(mode addrMode) (uint16, bool) {
	switch mode {
	case modeImplied, modeAccumulator:
		return 0, false
	case modeImmediate:
		addr := c.PC
		c.PC++
		return addr, false
	case modeZeroPage:
		return uint16(c.fetch8()), false
	case modeZeroPageX:
		return uint16(c.fetch8()+c.X) & 0xFF, false
	case modeZeroPageY:
		return uint16(c.fetch8()+c.Y) & 0xFF, false
	case modeAbsolute:
		return c.fetch16(), false
	case modeAbsoluteX:
		base := c.fetch16()
		addr := base + uint16(c.X)
		return addr, pagesDiffer(base, addr)
	case modeAbsoluteY:
		base := c.fetch16()
		addr := base + uint16(c.Y)
		return addr, pagesDiffer(base, addr)
	case modeIndirect:
		ptr := c.fetch16()
		return c.read16bug(ptr), false
	case modeIndirectX:
		base := c.fetch8()
		ptr := uint16(base+c.X) & 0xFF
		return c.read16bug(ptr), false
	case modeIndirectY:
		base := c.fetch8()
		addr := c.read16bug(uint16(base))
		full := addr + uint16(c.Y)
		return full, pagesDiffer(addr, full)
	case modeRelative:
		offset := uint16(int8(c.fetch8()))
		return c.PC + offset, false
	}
	return 0, false
}

func (c *Cpu) operand(addr uint16, mode addrMode) uint8 {
	if mode == modeAccumulator {
		return c.A
	}
	return c.read8(addr)
}

// rmwWrite performs the dummy-write-then-real-write pattern real
// read-modify-write instructions perform on the bus: the unmodified value
// is written back first, then the final result. Mappers that react to
// writes (MMC3's A12 wiring in particular) depend on seeing both.
func (c *Cpu) rmwWrite(addr uint16, mode addrMode, orig, result uint8) {
	if mode == modeAccumulator {
		c.A = result
		return
	}
	c.write8(addr, orig)
	c.write8(addr, result)
}

func (c *Cpu) setZN(v uint8) {
	c.P.SetIf(FlagZ, v == 0)
	c.P.SetIf(FlagN, v&0x80 != 0)
}

func (c *Cpu) branch(addr uint16, cond bool) {
	if !cond {
		return
	}
	if pagesDiffer(c.PC, addr) {
		c.cyclesLeft++
	}
	c.cyclesLeft++
	c.PC = addr
}

func (c *Cpu) compare(a, b uint8) {
	c.P.SetIf(FlagC, a >= b)
	c.setZN(a - b)
}

func (c *Cpu) addWithCarry(v uint8) {
	carry := uint16(0)
	if c.P.Has(FlagC) {
		carry = 1
	}
	sum := uint16(c.A) + uint16(v) + carry
	result := uint8(sum)
	c.P.SetIf(FlagC, sum > 0xFF)
	c.P.SetIf(FlagV, (c.A^v)&0x80 == 0 && (c.A^result)&0x80 != 0)
	c.A = result
	c.setZN(c.A)
}
