package mappers

import (
	"github.com/tiagolobo-student/gones/internal/common"
)

// Mapper is the interface every bank-switching/IRQ scheme implements; the
// Cartridge holds one of these and forwards all PRG/CHR accesses through
// it rather than knowing about bank-switching itself.
type Mapper interface {
	Read8(addr uint16) uint8
	Write8(addr uint16, val uint8)
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, val uint8)
	Mirroring() common.NameTableMirroring
	// Tick is called once per PPU dot so mappers with scanline counters
	// (MMC3) can watch the A12 line via the supplied Ppu accessor.
	Tick(a12High bool)
	IRQ() common.IiInterrupt
	Serialise(s common.Serialiser) error
	DeSerialise(s common.Serialiser) error
}

// baseMapper holds the PRG/CHR storage and mirroring state common to every
// mapper; concrete mappers embed it and only implement their own bank
// selection and register logic.
type baseMapper struct {
	prg      common.Rom
	chr      common.Rom
	chrIsRAM bool
	prgRAM   common.Ram

	mirroring common.NameTableMirroring
	irqLine   common.InterruptLine
}

func (b *baseMapper) Mirroring() common.NameTableMirroring { return b.mirroring }
func (b *baseMapper) IRQ() common.IiInterrupt              { return &b.irqLine }
func (b *baseMapper) Tick(a12High bool)                    {}

func (b *baseMapper) readPRGRAM(addr uint16) uint8 {
	if b.prgRAM.Size() == 0 {
		return 0
	}
	return b.prgRAM.Read8(addr - 0x6000)
}
func (b *baseMapper) writePRGRAM(addr uint16, val uint8) {
	if b.prgRAM.Size() == 0 {
		return
	}
	b.prgRAM.Write8(addr-0x6000, val)
}
func (b *baseMapper) readCHR(addr uint16) uint8 {
	return b.chr.Read8w(uint32(addr))
}
func (b *baseMapper) writeCHR(addr uint16, val uint8) {
	if b.chrIsRAM {
		b.chr.Write8w(uint32(addr), val)
	}
}
