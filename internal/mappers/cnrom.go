package mappers

import "github.com/tiagolobo-student/gones/internal/common"

// cnrom is mapper 3: fixed 16/32KB PRG, an 8-bit register at any
// $8000-$FFFF write selects one 8KB CHR bank. Many CNROM boards only wire
// the low 2 bits, so games that bus-conflict rely on undriven bits
// reading the value the CPU just wrote.
type cnrom struct {
	baseMapper
	chrBank uint8
}

func newCNROM(header iNESHeader, prgData, chrData []byte, chrIsRAM bool) *cnrom {
	return &cnrom{baseMapper: newBaseMapper(header, prgData, chrData, chrIsRAM)}
}

func (m *cnrom) Read8(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.readPRGRAM(addr)
	case addr >= 0x8000:
		off := uint32(addr-0x8000) % uint32(m.prg.Size())
		return m.prg.Read8w(off)
	}
	return 0
}
func (m *cnrom) Write8(addr uint16, val uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		m.writePRGRAM(addr, val)
	case addr >= 0x8000:
		m.chrBank = val & 0x03
	}
}
func (m *cnrom) ReadCHR(addr uint16) uint8 {
	return m.chr.Read8w(uint32(m.chrBank)*8192 + uint32(addr))
}
func (m *cnrom) WriteCHR(addr uint16, val uint8) {
	if m.chrIsRAM {
		m.chr.Write8w(uint32(m.chrBank)*8192+uint32(addr), val)
	}
}

func (m *cnrom) Serialise(s common.Serialiser) error {
	if err := m.chr.Serialise(s); err != nil {
		return err
	}
	if err := m.prgRAM.Serialise(s); err != nil {
		return err
	}
	return s.Serialise(m.chrBank)
}
func (m *cnrom) DeSerialise(s common.Serialiser) error {
	if err := m.chr.DeSerialise(s); err != nil {
		return err
	}
	if err := m.prgRAM.DeSerialise(s); err != nil {
		return err
	}
	return s.DeSerialise(&m.chrBank)
}
