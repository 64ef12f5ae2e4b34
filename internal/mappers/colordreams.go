package mappers

import "github.com/tiagolobo-student/gones/internal/common"

// colorDreams is mapper 11: one register packs both a 32KB PRG bank
// select (low 2 bits) and an 8KB CHR bank select (high nibble) into a
// single write anywhere in $8000-$FFFF.
type colorDreams struct {
	baseMapper
	prgBank, chrBank uint8
}

func newColorDreams(header iNESHeader, prgData, chrData []byte, chrIsRAM bool) *colorDreams {
	return &colorDreams{baseMapper: newBaseMapper(header, prgData, chrData, chrIsRAM)}
}

func (m *colorDreams) Read8(addr uint16) uint8 {
	if addr < 0x8000 {
		if addr >= 0x6000 {
			return m.readPRGRAM(addr)
		}
		return 0
	}
	return m.prg.Read8w(uint32(m.prgBank)*32768 + uint32(addr-0x8000))
}
func (m *colorDreams) Write8(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.writePRGRAM(addr, val)
		return
	}
	if addr < 0x8000 {
		return
	}
	m.prgBank = val & 0x03
	m.chrBank = (val >> 4) & 0x0F
}
func (m *colorDreams) ReadCHR(addr uint16) uint8 {
	return m.chr.Read8w(uint32(m.chrBank)*8192 + uint32(addr))
}
func (m *colorDreams) WriteCHR(addr uint16, val uint8) {
	if m.chrIsRAM {
		m.chr.Write8w(uint32(m.chrBank)*8192+uint32(addr), val)
	}
}

func (m *colorDreams) Serialise(s common.Serialiser) error {
	if err := m.chr.Serialise(s); err != nil {
		return err
	}
	return s.Serialise(m.prgBank, m.chrBank)
}
func (m *colorDreams) DeSerialise(s common.Serialiser) error {
	if err := m.chr.DeSerialise(s); err != nil {
		return err
	}
	return s.DeSerialise(&m.prgBank, &m.chrBank)
}
