package mappers

import "github.com/tiagolobo-student/gones/internal/common"

// gxrom is mapper 66: like colorDreams but with the PRG/CHR select bits
// swapped in the register layout (CHR in the low nibble, PRG in bits 4-5).
type gxrom struct {
	baseMapper
	prgBank, chrBank uint8
}

func newGxROM(header iNESHeader, prgData, chrData []byte, chrIsRAM bool) *gxrom {
	return &gxrom{baseMapper: newBaseMapper(header, prgData, chrData, chrIsRAM)}
}

func (m *gxrom) Read8(addr uint16) uint8 {
	if addr < 0x8000 {
		if addr >= 0x6000 {
			return m.readPRGRAM(addr)
		}
		return 0
	}
	return m.prg.Read8w(uint32(m.prgBank)*32768 + uint32(addr-0x8000))
}
func (m *gxrom) Write8(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.writePRGRAM(addr, val)
		return
	}
	if addr < 0x8000 {
		return
	}
	m.chrBank = val & 0x0F
	m.prgBank = (val >> 4) & 0x03
}
func (m *gxrom) ReadCHR(addr uint16) uint8 {
	return m.chr.Read8w(uint32(m.chrBank)*8192 + uint32(addr))
}
func (m *gxrom) WriteCHR(addr uint16, val uint8) {
	if m.chrIsRAM {
		m.chr.Write8w(uint32(m.chrBank)*8192+uint32(addr), val)
	}
}

func (m *gxrom) Serialise(s common.Serialiser) error {
	if err := m.chr.Serialise(s); err != nil {
		return err
	}
	return s.Serialise(m.prgBank, m.chrBank)
}
func (m *gxrom) DeSerialise(s common.Serialiser) error {
	if err := m.chr.DeSerialise(s); err != nil {
		return err
	}
	return s.DeSerialise(&m.prgBank, &m.chrBank)
}
