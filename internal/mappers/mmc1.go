package mappers

import "github.com/tiagolobo-student/gones/internal/common"

// mmc1 is mapper 1: a 5-bit serial shift register feeds four internal
// registers (control, CHR bank 0, CHR bank 1, PRG bank) one bit per CPU
// write; writing with bit 7 set resets the shift register and forces PRG
// mode 3 instead of committing a bit, which is the well-known "reset
// glitch" some carts rely on.
type mmc1 struct {
	baseMapper

	shift      uint8
	shiftCount uint8

	control uint8
	chrBank0, chrBank1 uint8
	prgBank            uint8

	prgBanks16k int
	chrBanks4k  int
}

func newMMC1(header iNESHeader, prgData, chrData []byte, chrIsRAM bool) *mmc1 {
	m := &mmc1{baseMapper: newBaseMapper(header, prgData, chrData, chrIsRAM)}
	m.control = 0x0C // power-on: PRG mode 3 (fix last bank), CHR mode 0
	m.prgBanks16k = len(prgData) / prgBankSize
	m.chrBanks4k = len(chrData) / 4096
	if m.chrBanks4k == 0 {
		m.chrBanks4k = 2
	}
	m.shift = 0
	return m
}

func (m *mmc1) Write8(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.writePRGRAM(addr, val)
		return
	}
	if addr < 0x8000 {
		return
	}

	if val&0x80 != 0 {
		m.shift = 0
		m.shiftCount = 0
		m.control |= 0x0C
		return
	}

	m.shift |= (val & 1) << m.shiftCount
	m.shiftCount++
	if m.shiftCount < 5 {
		return
	}

	reg := m.shift
	m.shift, m.shiftCount = 0, 0

	switch {
	case addr < 0xA000:
		m.control = reg
		switch reg & 0x03 {
		case 0, 1:
			m.mirroring = common.SingleScreenLower
		case 2:
			m.mirroring = common.Vertical
		case 3:
			m.mirroring = common.Horizontal
		}
	case addr < 0xC000:
		m.chrBank0 = reg
	case addr < 0xE000:
		m.chrBank1 = reg
	default:
		m.prgBank = reg & 0x0F
	}
}

func (m *mmc1) Read8(addr uint16) uint8 {
	if addr >= 0x6000 && addr < 0x8000 {
		return m.readPRGRAM(addr)
	}
	if addr < 0x8000 {
		return 0
	}

	prgMode := (m.control >> 2) & 0x03
	bank := uint32(0)
	switch prgMode {
	case 0, 1:
		// 32KB mode: ignore the low bit of the bank select
		bank32 := uint32(m.prgBank>>1) * 2
		off := uint32(addr - 0x8000)
		return m.prg.Read8w((bank32 * prgBankSize) + off)
	case 2:
		if addr < 0xC000 {
			return m.prg.Read8w(uint32(addr - 0x8000))
		}
		bank = uint32(m.prgBank)
		return m.prg.Read8w(bank*prgBankSize + uint32(addr-0xC000))
	default: // mode 3
		if addr < 0xC000 {
			bank = uint32(m.prgBank)
			return m.prg.Read8w(bank*prgBankSize + uint32(addr-0x8000))
		}
		last := uint32(m.prgBanks16k - 1)
		return m.prg.Read8w(last*prgBankSize + uint32(addr-0xC000))
	}
}

func (m *mmc1) ReadCHR(addr uint16) uint8 {
	return m.chr.Read8w(m.chrOffset(addr))
}
func (m *mmc1) WriteCHR(addr uint16, val uint8) {
	if m.chrIsRAM {
		m.chr.Write8w(m.chrOffset(addr), val)
	}
}

func (m *mmc1) chrOffset(addr uint16) uint32 {
	chrMode := (m.control >> 4) & 1
	if chrMode == 0 {
		bank := uint32(m.chrBank0 >> 1)
		return bank*8192 + uint32(addr)
	}
	if addr < 0x1000 {
		return uint32(m.chrBank0)*4096 + uint32(addr)
	}
	return uint32(m.chrBank1)*4096 + uint32(addr-0x1000)
}

func (m *mmc1) Serialise(s common.Serialiser) error {
	if err := m.chr.Serialise(s); err != nil {
		return err
	}
	if err := m.prgRAM.Serialise(s); err != nil {
		return err
	}
	return s.Serialise(m.shift, m.shiftCount, m.control, m.chrBank0, m.chrBank1, m.prgBank, m.mirroring)
}
func (m *mmc1) DeSerialise(s common.Serialiser) error {
	if err := m.chr.DeSerialise(s); err != nil {
		return err
	}
	if err := m.prgRAM.DeSerialise(s); err != nil {
		return err
	}
	return s.DeSerialise(&m.shift, &m.shiftCount, &m.control, &m.chrBank0, &m.chrBank1, &m.prgBank, &m.mirroring)
}
