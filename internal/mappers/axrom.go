package mappers

import "github.com/tiagolobo-student/gones/internal/common"

// axrom is mapper 7: a single register selects a 32KB PRG bank and which
// of the two single-screen nametables is active; there is no hardware
// nametable RAM selection beyond that, so four-screen AxROM carts don't
// exist in practice.
type axrom struct {
	baseMapper
	bank uint8
}

func newAxROM(header iNESHeader, prgData, chrData []byte, chrIsRAM bool) *axrom {
	return &axrom{baseMapper: newBaseMapper(header, prgData, chrData, chrIsRAM)}
}

func (m *axrom) Read8(addr uint16) uint8 {
	if addr < 0x8000 {
		if addr >= 0x6000 {
			return m.readPRGRAM(addr)
		}
		return 0
	}
	return m.prg.Read8w(uint32(m.bank&0x07)*32768 + uint32(addr-0x8000))
}
func (m *axrom) Write8(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.writePRGRAM(addr, val)
		return
	}
	if addr < 0x8000 {
		return
	}
	m.bank = val & 0x07
	if val&0x10 != 0 {
		m.mirroring = common.SingleScreenUpper
	} else {
		m.mirroring = common.SingleScreenLower
	}
}
func (m *axrom) ReadCHR(addr uint16) uint8       { return m.readCHR(addr) }
func (m *axrom) WriteCHR(addr uint16, val uint8) { m.writeCHR(addr, val) }

func (m *axrom) Serialise(s common.Serialiser) error {
	if err := m.chr.Serialise(s); err != nil {
		return err
	}
	return s.Serialise(m.bank, m.mirroring)
}
func (m *axrom) DeSerialise(s common.Serialiser) error {
	if err := m.chr.DeSerialise(s); err != nil {
		return err
	}
	return s.DeSerialise(&m.bank, &m.mirroring)
}
