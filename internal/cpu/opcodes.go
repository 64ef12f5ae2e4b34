package cpu

// This file implements every documented 6502 opcode plus the unofficial
// opcodes games and test ROMs rely on (LAX, SAX, DCP, ISC, SLO, RLA, SRE,
// RRA, ANC, ALR, ARR, AXS, and the various NOP/KIL encodings). Unlike the
// documented set these were never in a datasheet; behaviour here follows
// the consensus decompositions (e.g. SLO = ASL then ORA) rather than any
// single reference implementation.

func opLDA(c *Cpu, addr uint16, mode addrMode) { c.A = c.operand(addr, mode); c.setZN(c.A) }
func opLDX(c *Cpu, addr uint16, mode addrMode) { c.X = c.operand(addr, mode); c.setZN(c.X) }
func opLDY(c *Cpu, addr uint16, mode addrMode) { c.Y = c.operand(addr, mode); c.setZN(c.Y) }
func opSTA(c *Cpu, addr uint16, mode addrMode) { c.write8(addr, c.A) }
func opSTX(c *Cpu, addr uint16, mode addrMode) { c.write8(addr, c.X) }
func opSTY(c *Cpu, addr uint16, mode addrMode) { c.write8(addr, c.Y) }

func opTAX(c *Cpu, addr uint16, mode addrMode) { c.X = c.A; c.setZN(c.X) }
func opTAY(c *Cpu, addr uint16, mode addrMode) { c.Y = c.A; c.setZN(c.Y) }
func opTXA(c *Cpu, addr uint16, mode addrMode) { c.A = c.X; c.setZN(c.A) }
func opTYA(c *Cpu, addr uint16, mode addrMode) { c.A = c.Y; c.setZN(c.A) }
func opTSX(c *Cpu, addr uint16, mode addrMode) { c.X = c.SP; c.setZN(c.X) }
func opTXS(c *Cpu, addr uint16, mode addrMode) { c.SP = c.X }

func opPHA(c *Cpu, addr uint16, mode addrMode) { c.push8(c.A) }
func opPHP(c *Cpu, addr uint16, mode addrMode) { c.push8(c.P.PushValue(true)) }
func opPLA(c *Cpu, addr uint16, mode addrMode) { c.A = c.pop8(); c.setZN(c.A) }
func opPLP(c *Cpu, addr uint16, mode addrMode) { c.P.Write(c.pop8()) }

func opAND(c *Cpu, addr uint16, mode addrMode) {
	c.A &= c.operand(addr, mode)
	c.setZN(c.A)
}
func opORA(c *Cpu, addr uint16, mode addrMode) {
	c.A |= c.operand(addr, mode)
	c.setZN(c.A)
}
func opEOR(c *Cpu, addr uint16, mode addrMode) {
	c.A ^= c.operand(addr, mode)
	c.setZN(c.A)
}
func opBIT(c *Cpu, addr uint16, mode addrMode) {
	v := c.operand(addr, mode)
	c.P.SetIf(FlagZ, c.A&v == 0)
	c.P.SetIf(FlagV, v&0x40 != 0)
	c.P.SetIf(FlagN, v&0x80 != 0)
}

func opADC(c *Cpu, addr uint16, mode addrMode) { c.addWithCarry(c.operand(addr, mode)) }
func opSBC(c *Cpu, addr uint16, mode addrMode) { c.addWithCarry(c.operand(addr, mode) ^ 0xFF) }

func opCMP(c *Cpu, addr uint16, mode addrMode) { c.compare(c.A, c.operand(addr, mode)) }
func opCPX(c *Cpu, addr uint16, mode addrMode) { c.compare(c.X, c.operand(addr, mode)) }
func opCPY(c *Cpu, addr uint16, mode addrMode) { c.compare(c.Y, c.operand(addr, mode)) }

func opINC(c *Cpu, addr uint16, mode addrMode) {
	v := c.operand(addr, mode) + 1
	c.rmwWrite(addr, mode, v-1, v)
	c.setZN(v)
}
func opDEC(c *Cpu, addr uint16, mode addrMode) {
	v := c.operand(addr, mode) - 1
	c.rmwWrite(addr, mode, v+1, v)
	c.setZN(v)
}
func opINX(c *Cpu, addr uint16, mode addrMode) { c.X++; c.setZN(c.X) }
func opINY(c *Cpu, addr uint16, mode addrMode) { c.Y++; c.setZN(c.Y) }
func opDEX(c *Cpu, addr uint16, mode addrMode) { c.X--; c.setZN(c.X) }
func opDEY(c *Cpu, addr uint16, mode addrMode) { c.Y--; c.setZN(c.Y) }

func aslVal(c *Cpu, v uint8) uint8 {
	c.P.SetIf(FlagC, v&0x80 != 0)
	return v << 1
}
func lsrVal(c *Cpu, v uint8) uint8 {
	c.P.SetIf(FlagC, v&0x01 != 0)
	return v >> 1
}
func rolVal(c *Cpu, v uint8) uint8 {
	carryIn := uint8(0)
	if c.P.Has(FlagC) {
		carryIn = 1
	}
	c.P.SetIf(FlagC, v&0x80 != 0)
	return v<<1 | carryIn
}
func rorVal(c *Cpu, v uint8) uint8 {
	carryIn := uint8(0)
	if c.P.Has(FlagC) {
		carryIn = 0x80
	}
	c.P.SetIf(FlagC, v&0x01 != 0)
	return v>>1 | carryIn
}

func opASL(c *Cpu, addr uint16, mode addrMode) {
	orig := c.operand(addr, mode)
	v := aslVal(c, orig)
	c.rmwWrite(addr, mode, orig, v)
	c.setZN(v)
}
func opLSR(c *Cpu, addr uint16, mode addrMode) {
	orig := c.operand(addr, mode)
	v := lsrVal(c, orig)
	c.rmwWrite(addr, mode, orig, v)
	c.setZN(v)
}
func opROL(c *Cpu, addr uint16, mode addrMode) {
	orig := c.operand(addr, mode)
	v := rolVal(c, orig)
	c.rmwWrite(addr, mode, orig, v)
	c.setZN(v)
}
func opROR(c *Cpu, addr uint16, mode addrMode) {
	orig := c.operand(addr, mode)
	v := rorVal(c, orig)
	c.rmwWrite(addr, mode, orig, v)
	c.setZN(v)
}

func opCLC(c *Cpu, addr uint16, mode addrMode) { c.P.Clr(FlagC) }
func opSEC(c *Cpu, addr uint16, mode addrMode) { c.P.Set(FlagC) }
func opCLI(c *Cpu, addr uint16, mode addrMode) { c.P.Clr(FlagI) }
func opSEI(c *Cpu, addr uint16, mode addrMode) { c.P.Set(FlagI) }
func opCLD(c *Cpu, addr uint16, mode addrMode) { c.P.Clr(FlagD) }
func opSED(c *Cpu, addr uint16, mode addrMode) { c.P.Set(FlagD) }
func opCLV(c *Cpu, addr uint16, mode addrMode) { c.P.Clr(FlagV) }

func opBCC(c *Cpu, addr uint16, mode addrMode) { c.branch(addr, !c.P.Has(FlagC)) }
func opBCS(c *Cpu, addr uint16, mode addrMode) { c.branch(addr, c.P.Has(FlagC)) }
func opBEQ(c *Cpu, addr uint16, mode addrMode) { c.branch(addr, c.P.Has(FlagZ)) }
func opBNE(c *Cpu, addr uint16, mode addrMode) { c.branch(addr, !c.P.Has(FlagZ)) }
func opBMI(c *Cpu, addr uint16, mode addrMode) { c.branch(addr, c.P.Has(FlagN)) }
func opBPL(c *Cpu, addr uint16, mode addrMode) { c.branch(addr, !c.P.Has(FlagN)) }
func opBVC(c *Cpu, addr uint16, mode addrMode) { c.branch(addr, !c.P.Has(FlagV)) }
func opBVS(c *Cpu, addr uint16, mode addrMode) { c.branch(addr, c.P.Has(FlagV)) }

func opJMP(c *Cpu, addr uint16, mode addrMode) { c.PC = addr }
func opJSR(c *Cpu, addr uint16, mode addrMode) {
	c.push16(c.PC - 1)
	c.PC = addr
}
func opRTS(c *Cpu, addr uint16, mode addrMode) { c.PC = c.pop16() + 1 }
func opRTI(c *Cpu, addr uint16, mode addrMode) {
	c.P.Write(c.pop8())
	c.PC = c.pop16()
}

// opBRK is a software interrupt, pushed and vectored exactly like a
// hardware IRQ except the B flag reads back set on the stacked copy. If
// an NMI edge is already latched when BRK executes, real hardware lets
// NMI hijack the vector fetch: BRK still pushes PC/P with B=1, but the
// PC loads from $FFFA instead of $FFFE, and that NMI is consumed rather
// than serviced again on the following instruction.
func opBRK(c *Cpu, addr uint16, mode addrMode) {
	c.PC++
	c.push16(c.PC)
	c.push8(c.P.PushValue(true))
	c.P.Set(FlagI)

	vector := uint16(0xFFFE)
	if c.nmiPending {
		vector = 0xFFFA
		c.nmiPending = false
		if c.nmi != nil {
			c.nmi.Clear()
		}
	}
	c.PC = c.read16(vector)
	c.irqPollMask = true
}
func opNOP(c *Cpu, addr uint16, mode addrMode) {}

// Unofficial opcodes.
func opLAX(c *Cpu, addr uint16, mode addrMode) {
	v := c.operand(addr, mode)
	c.A, c.X = v, v
	c.setZN(v)
}
func opSAX(c *Cpu, addr uint16, mode addrMode) { c.write8(addr, c.A&c.X) }
func opDCP(c *Cpu, addr uint16, mode addrMode) {
	v := c.operand(addr, mode) - 1
	c.rmwWrite(addr, mode, v+1, v)
	c.compare(c.A, v)
}
func opISC(c *Cpu, addr uint16, mode addrMode) {
	v := c.operand(addr, mode) + 1
	c.rmwWrite(addr, mode, v-1, v)
	c.addWithCarry(v ^ 0xFF)
}
func opSLO(c *Cpu, addr uint16, mode addrMode) {
	orig := c.operand(addr, mode)
	v := aslVal(c, orig)
	c.rmwWrite(addr, mode, orig, v)
	c.A |= v
	c.setZN(c.A)
}
func opRLA(c *Cpu, addr uint16, mode addrMode) {
	orig := c.operand(addr, mode)
	v := rolVal(c, orig)
	c.rmwWrite(addr, mode, orig, v)
	c.A &= v
	c.setZN(c.A)
}
func opSRE(c *Cpu, addr uint16, mode addrMode) {
	orig := c.operand(addr, mode)
	v := lsrVal(c, orig)
	c.rmwWrite(addr, mode, orig, v)
	c.A ^= v
	c.setZN(c.A)
}
func opRRA(c *Cpu, addr uint16, mode addrMode) {
	orig := c.operand(addr, mode)
	v := rorVal(c, orig)
	c.rmwWrite(addr, mode, orig, v)
	c.addWithCarry(v)
}
func opANC(c *Cpu, addr uint16, mode addrMode) {
	c.A &= c.operand(addr, mode)
	c.setZN(c.A)
	c.P.SetIf(FlagC, c.A&0x80 != 0)
}
func opALR(c *Cpu, addr uint16, mode addrMode) {
	c.A &= c.operand(addr, mode)
	c.A = lsrVal(c, c.A)
	c.setZN(c.A)
}
func opARR(c *Cpu, addr uint16, mode addrMode) {
	c.A &= c.operand(addr, mode)
	c.A = rorVal(c, c.A)
	c.setZN(c.A)
	c.P.SetIf(FlagC, c.A&0x40 != 0)
	c.P.SetIf(FlagV, (c.A>>6)&1^(c.A>>5)&1 != 0)
}
func opAXS(c *Cpu, addr uint16, mode addrMode) {
	v := c.operand(addr, mode)
	result := (c.A & c.X) - v
	c.P.SetIf(FlagC, uint16(c.A&c.X) >= uint16(v))
	c.X = result
	c.setZN(c.X)
}

type opcodeEntry struct {
	name   string
	mode   addrMode
	cycles uint8
	fn     func(c *Cpu, addr uint16, mode addrMode)
}

var opcodeTable [256]instruction

func def(op uint8, name string, mode addrMode, cycles uint8, fn func(c *Cpu, addr uint16, mode addrMode), illegal bool) {
	opcodeTable[op] = instruction{name: name, mode: mode, cycles: cycles, exec: fn, illegal: illegal}
}

func init() {
	for i := range opcodeTable {
		opcodeTable[i] = instruction{name: "KIL", mode: modeImplied, cycles: 2, exec: opNOP, illegal: true}
	}

	def(0xA9, "LDA", modeImmediate, 2, opLDA, false)
	def(0xA5, "LDA", modeZeroPage, 3, opLDA, false)
	def(0xB5, "LDA", modeZeroPageX, 4, opLDA, false)
	def(0xAD, "LDA", modeAbsolute, 4, opLDA, false)
	def(0xBD, "LDA", modeAbsoluteX, 4, opLDA, false)
	def(0xB9, "LDA", modeAbsoluteY, 4, opLDA, false)
	def(0xA1, "LDA", modeIndirectX, 6, opLDA, false)
	def(0xB1, "LDA", modeIndirectY, 5, opLDA, false)

	def(0xA2, "LDX", modeImmediate, 2, opLDX, false)
	def(0xA6, "LDX", modeZeroPage, 3, opLDX, false)
	def(0xB6, "LDX", modeZeroPageY, 4, opLDX, false)
	def(0xAE, "LDX", modeAbsolute, 4, opLDX, false)
	def(0xBE, "LDX", modeAbsoluteY, 4, opLDX, false)

	def(0xA0, "LDY", modeImmediate, 2, opLDY, false)
	def(0xA4, "LDY", modeZeroPage, 3, opLDY, false)
	def(0xB4, "LDY", modeZeroPageX, 4, opLDY, false)
	def(0xAC, "LDY", modeAbsolute, 4, opLDY, false)
	def(0xBC, "LDY", modeAbsoluteX, 4, opLDY, false)

	def(0x85, "STA", modeZeroPage, 3, opSTA, false)
	def(0x95, "STA", modeZeroPageX, 4, opSTA, false)
	def(0x8D, "STA", modeAbsolute, 4, opSTA, false)
	def(0x9D, "STA", modeAbsoluteX, 5, opSTA, false)
	def(0x99, "STA", modeAbsoluteY, 5, opSTA, false)
	def(0x81, "STA", modeIndirectX, 6, opSTA, false)
	def(0x91, "STA", modeIndirectY, 6, opSTA, false)

	def(0x86, "STX", modeZeroPage, 3, opSTX, false)
	def(0x96, "STX", modeZeroPageY, 4, opSTX, false)
	def(0x8E, "STX", modeAbsolute, 4, opSTX, false)

	def(0x84, "STY", modeZeroPage, 3, opSTY, false)
	def(0x94, "STY", modeZeroPageX, 4, opSTY, false)
	def(0x8C, "STY", modeAbsolute, 4, opSTY, false)

	def(0xAA, "TAX", modeImplied, 2, opTAX, false)
	def(0xA8, "TAY", modeImplied, 2, opTAY, false)
	def(0x8A, "TXA", modeImplied, 2, opTXA, false)
	def(0x98, "TYA", modeImplied, 2, opTYA, false)
	def(0xBA, "TSX", modeImplied, 2, opTSX, false)
	def(0x9A, "TXS", modeImplied, 2, opTXS, false)

	def(0x48, "PHA", modeImplied, 3, opPHA, false)
	def(0x08, "PHP", modeImplied, 3, opPHP, false)
	def(0x68, "PLA", modeImplied, 4, opPLA, false)
	def(0x28, "PLP", modeImplied, 4, opPLP, false)

	def(0x29, "AND", modeImmediate, 2, opAND, false)
	def(0x25, "AND", modeZeroPage, 3, opAND, false)
	def(0x35, "AND", modeZeroPageX, 4, opAND, false)
	def(0x2D, "AND", modeAbsolute, 4, opAND, false)
	def(0x3D, "AND", modeAbsoluteX, 4, opAND, false)
	def(0x39, "AND", modeAbsoluteY, 4, opAND, false)
	def(0x21, "AND", modeIndirectX, 6, opAND, false)
	def(0x31, "AND", modeIndirectY, 5, opAND, false)

	def(0x09, "ORA", modeImmediate, 2, opORA, false)
	def(0x05, "ORA", modeZeroPage, 3, opORA, false)
	def(0x15, "ORA", modeZeroPageX, 4, opORA, false)
	def(0x0D, "ORA", modeAbsolute, 4, opORA, false)
	def(0x1D, "ORA", modeAbsoluteX, 4, opORA, false)
	def(0x19, "ORA", modeAbsoluteY, 4, opORA, false)
	def(0x01, "ORA", modeIndirectX, 6, opORA, false)
	def(0x11, "ORA", modeIndirectY, 5, opORA, false)

	def(0x49, "EOR", modeImmediate, 2, opEOR, false)
	def(0x45, "EOR", modeZeroPage, 3, opEOR, false)
	def(0x55, "EOR", modeZeroPageX, 4, opEOR, false)
	def(0x4D, "EOR", modeAbsolute, 4, opEOR, false)
	def(0x5D, "EOR", modeAbsoluteX, 4, opEOR, false)
	def(0x59, "EOR", modeAbsoluteY, 4, opEOR, false)
	def(0x41, "EOR", modeIndirectX, 6, opEOR, false)
	def(0x51, "EOR", modeIndirectY, 5, opEOR, false)

	def(0x24, "BIT", modeZeroPage, 3, opBIT, false)
	def(0x2C, "BIT", modeAbsolute, 4, opBIT, false)

	def(0x69, "ADC", modeImmediate, 2, opADC, false)
	def(0x65, "ADC", modeZeroPage, 3, opADC, false)
	def(0x75, "ADC", modeZeroPageX, 4, opADC, false)
	def(0x6D, "ADC", modeAbsolute, 4, opADC, false)
	def(0x7D, "ADC", modeAbsoluteX, 4, opADC, false)
	def(0x79, "ADC", modeAbsoluteY, 4, opADC, false)
	def(0x61, "ADC", modeIndirectX, 6, opADC, false)
	def(0x71, "ADC", modeIndirectY, 5, opADC, false)

	def(0xE9, "SBC", modeImmediate, 2, opSBC, false)
	def(0xEB, "SBC", modeImmediate, 2, opSBC, true)
	def(0xE5, "SBC", modeZeroPage, 3, opSBC, false)
	def(0xF5, "SBC", modeZeroPageX, 4, opSBC, false)
	def(0xED, "SBC", modeAbsolute, 4, opSBC, false)
	def(0xFD, "SBC", modeAbsoluteX, 4, opSBC, false)
	def(0xF9, "SBC", modeAbsoluteY, 4, opSBC, false)
	def(0xE1, "SBC", modeIndirectX, 6, opSBC, false)
	def(0xF1, "SBC", modeIndirectY, 5, opSBC, false)

	def(0xC9, "CMP", modeImmediate, 2, opCMP, false)
	def(0xC5, "CMP", modeZeroPage, 3, opCMP, false)
	def(0xD5, "CMP", modeZeroPageX, 4, opCMP, false)
	def(0xCD, "CMP", modeAbsolute, 4, opCMP, false)
	def(0xDD, "CMP", modeAbsoluteX, 4, opCMP, false)
	def(0xD9, "CMP", modeAbsoluteY, 4, opCMP, false)
	def(0xC1, "CMP", modeIndirectX, 6, opCMP, false)
	def(0xD1, "CMP", modeIndirectY, 5, opCMP, false)

	def(0xE0, "CPX", modeImmediate, 2, opCPX, false)
	def(0xE4, "CPX", modeZeroPage, 3, opCPX, false)
	def(0xEC, "CPX", modeAbsolute, 4, opCPX, false)

	def(0xC0, "CPY", modeImmediate, 2, opCPY, false)
	def(0xC4, "CPY", modeZeroPage, 3, opCPY, false)
	def(0xCC, "CPY", modeAbsolute, 4, opCPY, false)

	def(0xE6, "INC", modeZeroPage, 5, opINC, false)
	def(0xF6, "INC", modeZeroPageX, 6, opINC, false)
	def(0xEE, "INC", modeAbsolute, 6, opINC, false)
	def(0xFE, "INC", modeAbsoluteX, 7, opINC, false)

	def(0xC6, "DEC", modeZeroPage, 5, opDEC, false)
	def(0xD6, "DEC", modeZeroPageX, 6, opDEC, false)
	def(0xCE, "DEC", modeAbsolute, 6, opDEC, false)
	def(0xDE, "DEC", modeAbsoluteX, 7, opDEC, false)

	def(0xE8, "INX", modeImplied, 2, opINX, false)
	def(0xC8, "INY", modeImplied, 2, opINY, false)
	def(0xCA, "DEX", modeImplied, 2, opDEX, false)
	def(0x88, "DEY", modeImplied, 2, opDEY, false)

	def(0x0A, "ASL", modeAccumulator, 2, opASL, false)
	def(0x06, "ASL", modeZeroPage, 5, opASL, false)
	def(0x16, "ASL", modeZeroPageX, 6, opASL, false)
	def(0x0E, "ASL", modeAbsolute, 6, opASL, false)
	def(0x1E, "ASL", modeAbsoluteX, 7, opASL, false)

	def(0x4A, "LSR", modeAccumulator, 2, opLSR, false)
	def(0x46, "LSR", modeZeroPage, 5, opLSR, false)
	def(0x56, "LSR", modeZeroPageX, 6, opLSR, false)
	def(0x4E, "LSR", modeAbsolute, 6, opLSR, false)
	def(0x5E, "LSR", modeAbsoluteX, 7, opLSR, false)

	def(0x2A, "ROL", modeAccumulator, 2, opROL, false)
	def(0x26, "ROL", modeZeroPage, 5, opROL, false)
	def(0x36, "ROL", modeZeroPageX, 6, opROL, false)
	def(0x2E, "ROL", modeAbsolute, 6, opROL, false)
	def(0x3E, "ROL", modeAbsoluteX, 7, opROL, false)

	def(0x6A, "ROR", modeAccumulator, 2, opROR, false)
	def(0x66, "ROR", modeZeroPage, 5, opROR, false)
	def(0x76, "ROR", modeZeroPageX, 6, opROR, false)
	def(0x6E, "ROR", modeAbsolute, 6, opROR, false)
	def(0x7E, "ROR", modeAbsoluteX, 7, opROR, false)

	def(0x18, "CLC", modeImplied, 2, opCLC, false)
	def(0x38, "SEC", modeImplied, 2, opSEC, false)
	def(0x58, "CLI", modeImplied, 2, opCLI, false)
	def(0x78, "SEI", modeImplied, 2, opSEI, false)
	def(0xD8, "CLD", modeImplied, 2, opCLD, false)
	def(0xF8, "SED", modeImplied, 2, opSED, false)
	def(0xB8, "CLV", modeImplied, 2, opCLV, false)

	def(0x90, "BCC", modeRelative, 2, opBCC, false)
	def(0xB0, "BCS", modeRelative, 2, opBCS, false)
	def(0xF0, "BEQ", modeRelative, 2, opBEQ, false)
	def(0xD0, "BNE", modeRelative, 2, opBNE, false)
	def(0x30, "BMI", modeRelative, 2, opBMI, false)
	def(0x10, "BPL", modeRelative, 2, opBPL, false)
	def(0x50, "BVC", modeRelative, 2, opBVC, false)
	def(0x70, "BVS", modeRelative, 2, opBVS, false)

	def(0x4C, "JMP", modeAbsolute, 3, opJMP, false)
	def(0x6C, "JMP", modeIndirect, 5, opJMP, false)
	def(0x20, "JSR", modeAbsolute, 6, opJSR, false)
	def(0x60, "RTS", modeImplied, 6, opRTS, false)
	def(0x40, "RTI", modeImplied, 6, opRTI, false)
	def(0x00, "BRK", modeImplied, 7, opBRK, false)
	def(0xEA, "NOP", modeImplied, 2, opNOP, false)

	// unofficial NOPs
	for _, op := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		def(op, "NOP", modeImplied, 2, opNOP, true)
	}
	for _, op := range []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		def(op, "NOP", modeImmediate, 2, opNOP, true)
	}
	for _, op := range []uint8{0x04, 0x44, 0x64} {
		def(op, "NOP", modeZeroPage, 3, opNOP, true)
	}
	for _, op := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		def(op, "NOP", modeZeroPageX, 4, opNOP, true)
	}
	def(0x0C, "NOP", modeAbsolute, 4, opNOP, true)
	for _, op := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		def(op, "NOP", modeAbsoluteX, 4, opNOP, true)
	}

	def(0xA7, "LAX", modeZeroPage, 3, opLAX, true)
	def(0xB7, "LAX", modeZeroPageY, 4, opLAX, true)
	def(0xAF, "LAX", modeAbsolute, 4, opLAX, true)
	def(0xBF, "LAX", modeAbsoluteY, 4, opLAX, true)
	def(0xA3, "LAX", modeIndirectX, 6, opLAX, true)
	def(0xB3, "LAX", modeIndirectY, 5, opLAX, true)

	def(0x87, "SAX", modeZeroPage, 3, opSAX, true)
	def(0x97, "SAX", modeZeroPageY, 4, opSAX, true)
	def(0x8F, "SAX", modeAbsolute, 4, opSAX, true)
	def(0x83, "SAX", modeIndirectX, 6, opSAX, true)

	def(0xC7, "DCP", modeZeroPage, 5, opDCP, true)
	def(0xD7, "DCP", modeZeroPageX, 6, opDCP, true)
	def(0xCF, "DCP", modeAbsolute, 6, opDCP, true)
	def(0xDF, "DCP", modeAbsoluteX, 7, opDCP, true)
	def(0xDB, "DCP", modeAbsoluteY, 7, opDCP, true)
	def(0xC3, "DCP", modeIndirectX, 8, opDCP, true)
	def(0xD3, "DCP", modeIndirectY, 8, opDCP, true)

	def(0xE7, "ISC", modeZeroPage, 5, opISC, true)
	def(0xF7, "ISC", modeZeroPageX, 6, opISC, true)
	def(0xEF, "ISC", modeAbsolute, 6, opISC, true)
	def(0xFF, "ISC", modeAbsoluteX, 7, opISC, true)
	def(0xFB, "ISC", modeAbsoluteY, 7, opISC, true)
	def(0xE3, "ISC", modeIndirectX, 8, opISC, true)
	def(0xF3, "ISC", modeIndirectY, 8, opISC, true)

	def(0x07, "SLO", modeZeroPage, 5, opSLO, true)
	def(0x17, "SLO", modeZeroPageX, 6, opSLO, true)
	def(0x0F, "SLO", modeAbsolute, 6, opSLO, true)
	def(0x1F, "SLO", modeAbsoluteX, 7, opSLO, true)
	def(0x1B, "SLO", modeAbsoluteY, 7, opSLO, true)
	def(0x03, "SLO", modeIndirectX, 8, opSLO, true)
	def(0x13, "SLO", modeIndirectY, 8, opSLO, true)

	def(0x27, "RLA", modeZeroPage, 5, opRLA, true)
	def(0x37, "RLA", modeZeroPageX, 6, opRLA, true)
	def(0x2F, "RLA", modeAbsolute, 6, opRLA, true)
	def(0x3F, "RLA", modeAbsoluteX, 7, opRLA, true)
	def(0x3B, "RLA", modeAbsoluteY, 7, opRLA, true)
	def(0x23, "RLA", modeIndirectX, 8, opRLA, true)
	def(0x33, "RLA", modeIndirectY, 8, opRLA, true)

	def(0x47, "SRE", modeZeroPage, 5, opSRE, true)
	def(0x57, "SRE", modeZeroPageX, 6, opSRE, true)
	def(0x4F, "SRE", modeAbsolute, 6, opSRE, true)
	def(0x5F, "SRE", modeAbsoluteX, 7, opSRE, true)
	def(0x5B, "SRE", modeAbsoluteY, 7, opSRE, true)
	def(0x43, "SRE", modeIndirectX, 8, opSRE, true)
	def(0x53, "SRE", modeIndirectY, 8, opSRE, true)

	def(0x67, "RRA", modeZeroPage, 5, opRRA, true)
	def(0x77, "RRA", modeZeroPageX, 6, opRRA, true)
	def(0x6F, "RRA", modeAbsolute, 6, opRRA, true)
	def(0x7F, "RRA", modeAbsoluteX, 7, opRRA, true)
	def(0x7B, "RRA", modeAbsoluteY, 7, opRRA, true)
	def(0x63, "RRA", modeIndirectX, 8, opRRA, true)
	def(0x73, "RRA", modeIndirectY, 8, opRRA, true)

	def(0x0B, "ANC", modeImmediate, 2, opANC, true)
	def(0x2B, "ANC", modeImmediate, 2, opANC, true)
	def(0x4B, "ALR", modeImmediate, 2, opALR, true)
	def(0x6B, "ARR", modeImmediate, 2, opARR, true)
	def(0xCB, "AXS", modeImmediate, 2, opAXS, true)
}
