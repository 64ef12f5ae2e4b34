package mappers

import "github.com/tiagolobo-student/gones/internal/common"

// nrom is mapper 0: no bank switching at all. 16KB PRG images are
// mirrored into both $8000-$BFFF and $C000-$FFFF.
type nrom struct {
	baseMapper
}

func newNROM(header iNESHeader, prgData, chrData []byte, chrIsRAM bool) *nrom {
	return &nrom{baseMapper: newBaseMapper(header, prgData, chrData, chrIsRAM)}
}

func (m *nrom) Read8(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.readPRGRAM(addr)
	case addr >= 0x8000:
		off := uint32(addr-0x8000) % uint32(m.prg.Size())
		return m.prg.Read8w(off)
	}
	return 0
}
func (m *nrom) Write8(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.writePRGRAM(addr, val)
	}
}
func (m *nrom) ReadCHR(addr uint16) uint8       { return m.readCHR(addr) }
func (m *nrom) WriteCHR(addr uint16, val uint8) { m.writeCHR(addr, val) }

func (m *nrom) Serialise(s common.Serialiser) error {
	if err := m.prg.Serialise(s); err != nil {
		return err
	}
	if err := m.chr.Serialise(s); err != nil {
		return err
	}
	return m.prgRAM.Serialise(s)
}
func (m *nrom) DeSerialise(s common.Serialiser) error {
	if err := m.prg.DeSerialise(s); err != nil {
		return err
	}
	if err := m.chr.DeSerialise(s); err != nil {
		return err
	}
	return m.prgRAM.DeSerialise(s)
}
