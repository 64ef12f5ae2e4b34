package mappers

import "github.com/tiagolobo-student/gones/internal/common"

// mmc5 is mapper 5: only the core PRG/CHR bank-switching registers are
// implemented here (PRG mode 3's 8KB granularity, CHR mode 3's 1KB
// granularity) — extended attribute RAM, the split-screen mode, and the
// MMC5's own extra pulse channels are out of scope for this first pass.
type mmc5 struct {
	baseMapper

	prgMode uint8
	chrMode uint8
	prgBank [4]uint8
	chrBank [8]uint8

	prgBanks8k int
}

func newMMC5(header iNESHeader, prgData, chrData []byte, chrIsRAM bool) *mmc5 {
	m := &mmc5{baseMapper: newBaseMapper(header, prgData, chrData, chrIsRAM)}
	m.prgBanks8k = len(prgData) / 8192
	m.prgMode = 3
	m.prgBank[3] = uint8(m.prgBanks8k - 1)
	return m
}

func (m *mmc5) Write8(addr uint16, val uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		m.writePRGRAM(addr, val)
	case addr == 0x5100:
		m.prgMode = val & 0x03
	case addr == 0x5105:
		switch val & 0x03 {
		case 0:
			m.mirroring = common.SingleScreenLower
		case 1:
			m.mirroring = common.Vertical
		case 2:
			m.mirroring = common.Horizontal
		case 3:
			m.mirroring = common.SingleScreenUpper
		}
	case addr == 0x5106 || addr == 0x5107:
		// fill-mode / nametable-source registers, not modelled
	case addr >= 0x5113 && addr <= 0x5117:
		m.prgBank[addr-0x5114] = val & 0x7F
	case addr >= 0x5120 && addr <= 0x5127:
		m.chrBank[addr-0x5120] = val
	}
}

func (m *mmc5) Read8(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.readPRGRAM(addr)
	case addr >= 0x8000:
		bank := uint32(m.prgBank[(addr-0x8000)/0x2000])
		return m.prg.Read8w(bank*8192 + uint32(addr-0x8000)%8192)
	}
	return 0
}

func (m *mmc5) ReadCHR(addr uint16) uint8 {
	bank := uint32(m.chrBank[addr/1024])
	return m.chr.Read8w(bank*1024 + uint32(addr%1024))
}
func (m *mmc5) WriteCHR(addr uint16, val uint8) {
	if m.chrIsRAM {
		bank := uint32(m.chrBank[addr/1024])
		m.chr.Write8w(bank*1024+uint32(addr%1024), val)
	}
}

func (m *mmc5) Serialise(s common.Serialiser) error {
	if err := m.chr.Serialise(s); err != nil {
		return err
	}
	if err := m.prgRAM.Serialise(s); err != nil {
		return err
	}
	return s.Serialise(m.prgMode, m.chrMode, m.prgBank, m.chrBank, m.mirroring)
}
func (m *mmc5) DeSerialise(s common.Serialiser) error {
	if err := m.chr.DeSerialise(s); err != nil {
		return err
	}
	if err := m.prgRAM.DeSerialise(s); err != nil {
		return err
	}
	return s.DeSerialise(&m.prgMode, &m.chrMode, &m.prgBank, &m.chrBank, &m.mirroring)
}
