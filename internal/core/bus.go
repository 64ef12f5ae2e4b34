package core

import (
	"github.com/tiagolobo-student/gones/internal/common"
	"github.com/tiagolobo-student/gones/internal/mappers"
)

// paletteRAM is the PPU's 32-byte palette memory; entries $10/$14/$18/$1C
// mirror $00/$04/$08/$0C, the documented background-color-shared-across-
// sprite-palette-0 quirk.
type paletteRAM struct {
	ram [32]byte
}

func (p *paletteRAM) index(addr uint16) uint16 {
	addr &= 0x1F
	if addr >= 0x10 && addr%4 == 0 {
		addr -= 0x10
	}
	return addr
}
func (p *paletteRAM) Read8(addr uint16) uint8      { return p.ram[p.index(addr)] }
func (p *paletteRAM) Write8(addr uint16, v uint8)  { p.ram[p.index(addr)] = v }
func (p *paletteRAM) Serialise(s common.Serialiser) error   { return s.Serialise(p.ram) }
func (p *paletteRAM) DeSerialise(s common.Serialiser) error { return s.DeSerialise(&p.ram) }

// sysBus wires the CPU's full 16-bit address space and the PPU's pattern
// table / nametable / palette window against RAM, the cartridge, and the
// PPU/APU/controller register blocks — the same 4-slot decoding pattern
// the teacher's bus.go uses, generalized to the full NES memory map
// rather than the teacher's narrower mapper set.
type sysBus struct {
	ram         common.Ram
	nametables  common.NameTables
	palette     paletteRAM
	cart        *mappers.Cartridge
	controllers common.Controllers
	dma         common.Dma

	ppuRegs interface {
		Read8(addr uint16) uint8
		Write8(addr uint16, val uint8)
	}
	apuRegs interface {
		Read8(addr uint16) uint8
		Write8(addr uint16, val uint8)
	}
}

func (b *sysBus) Read8(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.ram.Read8(addr % 0x0800)
	case addr < 0x4000:
		return b.ppuRegs.Read8(0x2000 + (addr-0x2000)%8)
	case addr == 0x4014:
		return 0
	case addr == 0x4015:
		return b.apuRegs.Read8(addr)
	case addr == 0x4016, addr == 0x4017:
		return b.controllers.Read8(addr)
	case addr < 0x4018:
		return b.apuRegs.Read8(addr)
	case addr < 0x4020:
		return 0 // APU/IO test-mode space, not implemented
	default:
		return b.cart.Read8(addr)
	}
}

func (b *sysBus) Write8(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		b.ram.Write8(addr%0x0800, val)
	case addr < 0x4000:
		b.ppuRegs.Write8(0x2000+(addr-0x2000)%8, val)
	case addr == 0x4014:
		b.dma.SetupTransfer(val)
	case addr == 0x4016:
		b.controllers.Write8(addr, val)
	case addr < 0x4018:
		b.apuRegs.Write8(addr, val)
	case addr < 0x4020:
		// APU/IO test-mode space, ignored
	default:
		b.cart.Write8(addr, val)
	}
}

// --- ppu.Bus: pattern table / nametable / palette window ---

func (b *sysBus) ReadCHR(addr uint16) uint8       { return b.cart.ReadCHR(addr) }
func (b *sysBus) WriteCHR(addr uint16, val uint8) { b.cart.WriteCHR(addr, val) }
func (b *sysBus) ReadNametable(addr uint16) uint8 { return b.nametables.Read8(addr) }
func (b *sysBus) WriteNametable(addr uint16, val uint8) {
	b.nametables.Write8(addr, val)
}
func (b *sysBus) ReadPalette(addr uint16) uint8       { return b.palette.Read8(addr) }
func (b *sysBus) WritePalette(addr uint16, val uint8) { b.palette.Write8(addr, val) }
