package mappers

import "github.com/tiagolobo-student/gones/internal/common"

// mmc3 is mapper 4: 8 bank-select registers ($8000/$8001 pick which one
// the next write hits), split CHR addressing (2x2KB + 4x1KB, or the
// inverse depending on a mode bit), and a scanline counter fed by A12
// rising edges on the PPU bus rather than by CPU cycles — the teacher's
// stub left Tick() empty, so the countdown/reload/IRQ logic here is
// authored against the documented edge-filtered behaviour directly.
type mmc3 struct {
	baseMapper

	bankSelect uint8
	bankData   [8]uint8
	prgBanks8k int

	prgRAMProtect uint8

	irqLatch   uint8
	irqCounter uint8
	irqReload  bool
	irqEnabled bool

	a12Prev     bool
	a12LowCount int
}

func newMMC3(header iNESHeader, prgData, chrData []byte, chrIsRAM bool) *mmc3 {
	m := &mmc3{baseMapper: newBaseMapper(header, prgData, chrData, chrIsRAM)}
	m.prgBanks8k = len(prgData) / 8192
	return m
}

func (m *mmc3) Write8(addr uint16, val uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		m.writePRGRAM(addr, val)
	case addr >= 0x8000 && addr < 0xA000:
		if addr&1 == 0 {
			m.bankSelect = val
		} else {
			m.bankData[m.bankSelect&0x07] = val
		}
	case addr >= 0xA000 && addr < 0xC000:
		if addr&1 == 0 {
			if val&1 != 0 {
				m.mirroring = common.Horizontal
			} else {
				m.mirroring = common.Vertical
			}
		} else {
			m.prgRAMProtect = val
		}
	case addr >= 0xC000 && addr < 0xE000:
		if addr&1 == 0 {
			m.irqLatch = val
		} else {
			m.irqReload = true
		}
	case addr >= 0xE000:
		if addr&1 == 0 {
			m.irqEnabled = false
			m.irqLine.Clear()
		} else {
			m.irqEnabled = true
		}
	}
}

func (m *mmc3) prgModeFixedToC000() bool {
	return m.bankSelect&0x40 != 0
}
func (m *mmc3) chrModeInverted() bool {
	return m.bankSelect&0x80 != 0
}

func (m *mmc3) Read8(addr uint16) uint8 {
	if addr >= 0x6000 && addr < 0x8000 {
		return m.readPRGRAM(addr)
	}
	if addr < 0x8000 {
		return 0
	}

	last := uint32(m.prgBanks8k - 1)
	secondLast := uint32(m.prgBanks8k - 2)
	r6 := uint32(m.bankData[6] & 0x3F)
	r7 := uint32(m.bankData[7] & 0x3F)

	var bank uint32
	switch {
	case addr < 0xA000:
		if m.prgModeFixedToC000() {
			bank = secondLast
		} else {
			bank = r6
		}
		return m.prg.Read8w(bank*8192 + uint32(addr-0x8000))
	case addr < 0xC000:
		bank = r7
		return m.prg.Read8w(bank*8192 + uint32(addr-0xA000))
	case addr < 0xE000:
		if m.prgModeFixedToC000() {
			bank = r6
		} else {
			bank = secondLast
		}
		return m.prg.Read8w(bank*8192 + uint32(addr-0xC000))
	default:
		bank = last
		return m.prg.Read8w(bank*8192 + uint32(addr-0xE000))
	}
}

func (m *mmc3) chrOffset(addr uint16) uint32 {
	inverted := m.chrModeInverted()
	// logical layout before inversion: two 2KB banks (R0,R1) at
	// $0000-$0FFF, four 1KB banks (R2-R5) at $1000-$1FFF
	region := addr / 0x0400 // 0..7 within the 8KB pattern table space
	if inverted {
		region ^= 4
	}
	switch region {
	case 0, 1:
		bank := uint32(m.bankData[0] &^ 1)
		return bank*1024 + uint32(addr%2048)
	case 2, 3:
		bank := uint32(m.bankData[1] &^ 1)
		return bank*1024 + uint32(addr%2048)
	case 4:
		return uint32(m.bankData[2])*1024 + uint32(addr%1024)
	case 5:
		return uint32(m.bankData[3])*1024 + uint32(addr%1024)
	case 6:
		return uint32(m.bankData[4])*1024 + uint32(addr%1024)
	default:
		return uint32(m.bankData[5])*1024 + uint32(addr%1024)
	}
}

func (m *mmc3) ReadCHR(addr uint16) uint8 {
	return m.chr.Read8w(m.chrOffset(addr))
}
func (m *mmc3) WriteCHR(addr uint16, val uint8) {
	if m.chrIsRAM {
		m.chr.Write8w(m.chrOffset(addr), val)
	}
}

// Tick watches the PPU's A12 address line and clocks the scanline counter
// on a rising edge, but only once the line has read low for at least a
// few PPU dots first — this is the documented filter that keeps sprite
// fetches (which pulse A12 briefly) from miscounting as scanlines.
func (m *mmc3) Tick(a12High bool) {
	if !a12High {
		m.a12LowCount++
		m.a12Prev = false
		return
	}
	if !m.a12Prev && m.a12LowCount >= 8 {
		m.clockIRQCounter()
	}
	m.a12Prev = true
	m.a12LowCount = 0
}

func (m *mmc3) clockIRQCounter() {
	if m.irqCounter == 0 || m.irqReload {
		m.irqCounter = m.irqLatch
		m.irqReload = false
	} else {
		m.irqCounter--
	}
	if m.irqCounter == 0 && m.irqEnabled {
		m.irqLine.Assert()
	}
}

func (m *mmc3) Serialise(s common.Serialiser) error {
	if err := m.chr.Serialise(s); err != nil {
		return err
	}
	if err := m.prgRAM.Serialise(s); err != nil {
		return err
	}
	return s.Serialise(m.bankSelect, m.bankData, m.prgRAMProtect, m.irqLatch,
		m.irqCounter, m.irqReload, m.irqEnabled, m.mirroring)
}
func (m *mmc3) DeSerialise(s common.Serialiser) error {
	if err := m.chr.DeSerialise(s); err != nil {
		return err
	}
	if err := m.prgRAM.DeSerialise(s); err != nil {
		return err
	}
	return s.DeSerialise(&m.bankSelect, &m.bankData, &m.prgRAMProtect, &m.irqLatch,
		&m.irqCounter, &m.irqReload, &m.irqEnabled, &m.mirroring)
}
