package mappers

import "github.com/tiagolobo-student/gones/internal/common"

// mmc2 is mapper 9 (PxROM): PRG is a single switchable 8KB bank at $8000
// plus three fixed 8KB banks through $FFFF. CHR is split into two 4KB
// windows, each with two selectable banks that the PPU latches between
// based on which of two magic tile IDs ($FD/$FE) it just fetched — the
// mechanism Punch-Out!! uses to swap Mike Tyson's portrait mid-scanline.
type mmc2 struct {
	baseMapper

	prgBank uint8

	chrBank0FD, chrBank0FE uint8
	chrBank1FD, chrBank1FE uint8
	latch0, latch1         uint8 // 0 selects the FD bank, 1 the FE bank

	prgBanks8k int
}

func newMMC2(header iNESHeader, prgData, chrData []byte, chrIsRAM bool) *mmc2 {
	m := &mmc2{baseMapper: newBaseMapper(header, prgData, chrData, chrIsRAM)}
	m.prgBanks8k = len(prgData) / 8192
	return m
}

func (m *mmc2) Read8(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.readPRGRAM(addr)
	case addr >= 0x8000 && addr < 0xA000:
		return m.prg.Read8w(uint32(m.prgBank)*8192 + uint32(addr-0x8000))
	case addr >= 0xA000:
		// the top three 8KB banks are fixed to the cartridge's last 3
		fixedBank := uint32(m.prgBanks8k-3) + uint32((addr-0xA000)/8192)
		off := uint32(addr-0xA000) % 8192
		return m.prg.Read8w(fixedBank*8192 + off)
	}
	return 0
}

func (m *mmc2) Write8(addr uint16, val uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		m.writePRGRAM(addr, val)
	case addr >= 0xA000 && addr < 0xB000:
		m.prgBank = val & 0x0F
	case addr >= 0xB000 && addr < 0xC000:
		m.chrBank0FD = val & 0x1F
	case addr >= 0xC000 && addr < 0xD000:
		m.chrBank0FE = val & 0x1F
	case addr >= 0xD000 && addr < 0xE000:
		m.chrBank1FD = val & 0x1F
	case addr >= 0xE000 && addr < 0xF000:
		m.chrBank1FE = val & 0x1F
	case addr >= 0xF000:
		if val&1 != 0 {
			m.mirroring = common.Horizontal
		} else {
			m.mirroring = common.Vertical
		}
	}
}

func (m *mmc2) ReadCHR(addr uint16) uint8 {
	var bank uint8
	if addr < 0x1000 {
		if m.latch0 == 0 {
			bank = m.chrBank0FD
		} else {
			bank = m.chrBank0FE
		}
	} else {
		if m.latch1 == 0 {
			bank = m.chrBank1FD
		} else {
			bank = m.chrBank1FE
		}
	}
	v := m.chr.Read8w(uint32(bank)*4096 + uint32(addr%4096))
	m.updateLatch(addr)
	return v
}

// updateLatch reproduces the documented $0FD8/$0FE8 and $1FD8/$1FE8 tile
// fetch triggers: the PPU's own tile fetches flip the corresponding
// latch, not a CPU write.
func (m *mmc2) updateLatch(addr uint16) {
	switch {
	case addr == 0x0FD8:
		m.latch0 = 0
	case addr == 0x0FE8:
		m.latch0 = 1
	case addr >= 0x1FD8 && addr <= 0x1FDF:
		m.latch1 = 0
	case addr >= 0x1FE8 && addr <= 0x1FEF:
		m.latch1 = 1
	}
}

func (m *mmc2) WriteCHR(addr uint16, val uint8) {
	if m.chrIsRAM {
		m.chr.Write8w(uint32(addr), val)
	}
}

func (m *mmc2) Serialise(s common.Serialiser) error {
	if err := m.chr.Serialise(s); err != nil {
		return err
	}
	if err := m.prgRAM.Serialise(s); err != nil {
		return err
	}
	return s.Serialise(m.prgBank, m.chrBank0FD, m.chrBank0FE, m.chrBank1FD, m.chrBank1FE, m.latch0, m.latch1, m.mirroring)
}
func (m *mmc2) DeSerialise(s common.Serialiser) error {
	if err := m.chr.DeSerialise(s); err != nil {
		return err
	}
	if err := m.prgRAM.DeSerialise(s); err != nil {
		return err
	}
	return s.DeSerialise(&m.prgBank, &m.chrBank0FD, &m.chrBank0FE, &m.chrBank1FD, &m.chrBank1FE, &m.latch0, &m.latch1, &m.mirroring)
}
