package mappers

import "github.com/tiagolobo-student/gones/internal/common"

// uxrom is mapper 2: a single 8-bit register at any $8000-$FFFF write
// selects the bank at $8000-$BFFF; $C000-$FFFF is fixed to the last bank.
// CHR is always RAM-backed (no CHR bank switching at all).
type uxrom struct {
	baseMapper
	bank    uint8
	lastBank uint32
}

func newUxROM(header iNESHeader, prgData, chrData []byte, chrIsRAM bool) *uxrom {
	m := &uxrom{baseMapper: newBaseMapper(header, prgData, chrData, chrIsRAM)}
	m.lastBank = uint32(len(prgData)/prgBankSize - 1)
	return m
}

func (m *uxrom) Read8(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.readPRGRAM(addr)
	case addr < 0xC000 && addr >= 0x8000:
		return m.prg.Read8w(uint32(m.bank)*prgBankSize + uint32(addr-0x8000))
	case addr >= 0xC000:
		return m.prg.Read8w(m.lastBank*prgBankSize + uint32(addr-0xC000))
	}
	return 0
}
func (m *uxrom) Write8(addr uint16, val uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		m.writePRGRAM(addr, val)
	case addr >= 0x8000:
		m.bank = val
	}
}
func (m *uxrom) ReadCHR(addr uint16) uint8       { return m.readCHR(addr) }
func (m *uxrom) WriteCHR(addr uint16, val uint8) { m.writeCHR(addr, val) }

func (m *uxrom) Serialise(s common.Serialiser) error {
	if err := m.chr.Serialise(s); err != nil {
		return err
	}
	if err := m.prgRAM.Serialise(s); err != nil {
		return err
	}
	return s.Serialise(m.bank)
}
func (m *uxrom) DeSerialise(s common.Serialiser) error {
	if err := m.chr.DeSerialise(s); err != nil {
		return err
	}
	if err := m.prgRAM.DeSerialise(s); err != nil {
		return err
	}
	return s.DeSerialise(&m.bank)
}
