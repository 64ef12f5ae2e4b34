package cpu

import "fmt"

// Status flag bit positions within the P register.
const (
	FlagC uint8 = 1 << 0
	FlagZ uint8 = 1 << 1
	FlagI uint8 = 1 << 2
	FlagD uint8 = 1 << 3
	FlagB uint8 = 1 << 4
	FlagU uint8 = 1 << 5
	FlagV uint8 = 1 << 6
	FlagN uint8 = 1 << 7
)

// psRegister is the 6502 status register; bit 5 always reads back set and
// bit 4 (the B flag) only ever exists in the byte pushed to the stack by a
// BRK/IRQ/NMI, never in the live register.
type psRegister struct {
	val uint8
}

func (p *psRegister) Set(flags uint8) {
	p.val |= flags
}
func (p *psRegister) Clr(flags uint8) {
	p.val &^= flags
}
func (p *psRegister) SetIf(flags uint8, cond bool) {
	if cond {
		p.Set(flags)
	} else {
		p.Clr(flags)
	}
}
func (p *psRegister) Has(flags uint8) bool {
	return p.val&flags == flags
}

// Write loads the full status byte, forcing bit 5 set and bit 4 clear to
// match how the flag lives in the live register versus on the stack.
func (p *psRegister) Write(val uint8) {
	p.val = (val | FlagU) &^ FlagB
}

// PushValue is the byte BRK/PHP push to the stack: bits 4 and 5 both set.
func (p *psRegister) PushValue(fromBrk bool) uint8 {
	v := p.val | FlagU
	if fromBrk {
		v |= FlagB
	}
	return v
}
func (p *psRegister) Read() uint8 {
	return p.val | FlagU
}

func (p psRegister) String() string {
	names := "czidb-vn"
	out := [8]byte{}
	for i := 0; i < 8; i++ {
		if p.val&(1<<uint(i)) != 0 {
			out[7-i] = names[i] - 'a' + 'A'
		} else {
			out[7-i] = names[i]
		}
	}
	return string(out[:])
}

// Registers holds the 6502's full visible register set.
type Registers struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16
	P       psRegister
}

func (r *Registers) Init() {
	r.A, r.X, r.Y = 0, 0, 0
	r.SP = 0xFD
	r.PC = 0
	r.P = psRegister{}
	r.P.Write(FlagI | FlagU)
}

func (r Registers) String() string {
	return fmt.Sprintf("A:%02X X:%02X Y:%02X P:%s SP:%02X", r.A, r.X, r.Y, r.P, r.SP)
}
