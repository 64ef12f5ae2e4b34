package mappers

import (
	"testing"

	"github.com/tiagolobo-student/gones/internal/common"
)

// buildINES assembles a minimal iNES file in memory: a 16-byte header
// followed by prgBanks*16KB of PRG data and chrBanks*8KB of CHR data, each
// byte filled with a distinct marker so bank-selection tests can tell banks
// apart by content.
func buildINES(mapperNum uint8, prgBanks, chrBanks uint8, mirrorVertical bool) []byte {
	header := make([]byte, 16)
	header[0], header[1], header[2], header[3] = 'N', 'E', 'S', 0x1A
	header[4] = prgBanks
	header[5] = chrBanks
	if mirrorVertical {
		header[6] |= 0x01
	}
	header[6] |= (mapperNum & 0x0F) << 4
	header[7] = mapperNum & 0xF0

	data := header
	for b := uint8(0); b < prgBanks; b++ {
		bank := make([]byte, prgBankSize)
		for i := range bank {
			bank[i] = b
		}
		data = append(data, bank...)
	}
	for b := uint8(0); b < chrBanks; b++ {
		bank := make([]byte, chrBankSize)
		for i := range bank {
			bank[i] = 0x10 + b
		}
		data = append(data, bank...)
	}
	return data
}

func TestParseINESHeaderRejectsBadMagic(t *testing.T) {
	var raw [16]byte
	copy(raw[:], "BAD!")
	if _, err := parseINESHeader(raw); err == nil {
		t.Fatalf("expected an error for a non-iNES magic number")
	}
}

func TestParseINESHeaderMapperAssembly(t *testing.T) {
	var raw [16]byte
	copy(raw[:], []byte{'N', 'E', 'S', 0x1A})
	raw[4], raw[5] = 2, 1
	raw[6] = 0x10 // low nibble of mapper 1 in bits 4-7
	raw[7] = 0x00
	h, err := parseINESHeader(raw)
	if err != nil {
		t.Fatalf("parseINESHeader: %v", err)
	}
	if h.Mapper != 1 {
		t.Fatalf("Mapper = %d, want 1", h.Mapper)
	}
	if h.PRGBanks16k != 2 || h.CHRBanks8k != 1 {
		t.Fatalf("bank counts = %d/%d, want 2/1", h.PRGBanks16k, h.CHRBanks8k)
	}
}

func TestNewCartridgeRejectsTruncatedData(t *testing.T) {
	data := buildINES(0, 2, 1, false)
	truncated := data[:len(data)-100]
	if _, err := NewCartridge(truncated); err == nil {
		t.Fatalf("expected a LoadError for a truncated ROM image")
	}
}

func TestNROMMirrorsSinglePRGBankAcrossBothWindows(t *testing.T) {
	data := buildINES(0, 1, 1, false)
	cart, err := NewCartridge(data)
	if err != nil {
		t.Fatalf("NewCartridge: %v", err)
	}
	lo := cart.Read8(0x8000)
	hi := cart.Read8(0xC000)
	if lo != hi {
		t.Fatalf("NROM with one 16KB bank should mirror: $8000=%#02x $C000=%#02x", lo, hi)
	}
}

func TestNROMTwoBanksDoNotMirror(t *testing.T) {
	data := buildINES(0, 2, 1, false)
	cart, err := NewCartridge(data)
	if err != nil {
		t.Fatalf("NewCartridge: %v", err)
	}
	lo := cart.Read8(0x8000) // bank 0, filled with 0x00
	hi := cart.Read8(0xC000) // bank 1, filled with 0x01
	if lo == hi {
		t.Fatalf("expected distinct bank 0/1 content, got %#02x for both", lo)
	}
}

func TestFingerprintIsStableAcrossLoads(t *testing.T) {
	data := buildINES(0, 1, 1, false)
	c1, err := NewCartridge(data)
	if err != nil {
		t.Fatalf("NewCartridge: %v", err)
	}
	c2, err := NewCartridge(append([]byte(nil), data...))
	if err != nil {
		t.Fatalf("NewCartridge: %v", err)
	}
	if c1.Fingerprint() != c2.Fingerprint() {
		t.Fatalf("identical ROM images produced different fingerprints")
	}
}

func TestMMC1PrgBankSwitchMode3FixesLastBank(t *testing.T) {
	data := buildINES(1, 4, 1, false)
	cart, err := NewCartridge(data)
	if err != nil {
		t.Fatalf("NewCartridge: %v", err)
	}
	// power-on control (0x0C) is PRG mode 3: $C000-FFFF always shows the
	// last bank (bank 3, filled with 0x03) regardless of prgBank.
	if got := cart.Read8(0xC000); got != 0x03 {
		t.Fatalf("$C000 = %#02x, want 0x03 (last PRG bank fixed in mode 3)", got)
	}

	// select PRG bank 1 for the switchable $8000-$BFFF window: write the
	// 5-bit serial value 1 into the PRG-bank register ($E000-$FFFF).
	writeMMC1(cart, 0xE000, 1)
	if got := cart.Read8(0x8000); got != 0x01 {
		t.Fatalf("$8000 = %#02x, want 0x01 (switchable bank select)", got)
	}
}

func TestMMC1ControlWriteSelectsMirroring(t *testing.T) {
	data := buildINES(1, 2, 1, false)
	cart, err := NewCartridge(data)
	if err != nil {
		t.Fatalf("NewCartridge: %v", err)
	}
	writeMMC1(cart, 0x8000, 0x02) // control reg bits 0-1 = 2 -> vertical
	if cart.Mirroring() != common.Vertical {
		t.Fatalf("Mirroring() = %d, want common.Vertical", cart.Mirroring())
	}
}

func TestMMC3IrqFiresAfterCounterReloadsAndExhausts(t *testing.T) {
	data := buildINES(4, 4, 2, false)
	cart, err := NewCartridge(data)
	if err != nil {
		t.Fatalf("NewCartridge: %v", err)
	}
	cart.Write8(0xC000, 2) // IRQ latch = 2
	cart.Write8(0xC001, 0) // force reload on next clock
	cart.Write8(0xE001, 0) // enable IRQ

	tickA12 := func() {
		for i := 0; i < 8; i++ {
			cart.Tick(false)
		}
		cart.Tick(true)
	}
	tickA12() // reload: counter = latch (2)
	if cart.IRQ().Asserted() {
		t.Fatalf("IRQ should not assert immediately after reload to a nonzero latch")
	}
	tickA12() // counter: 2 -> 1
	if cart.IRQ().Asserted() {
		t.Fatalf("IRQ should not assert while counter is still nonzero")
	}
	tickA12() // counter: 1 -> 0, IRQ fires
	if !cart.IRQ().Asserted() {
		t.Fatalf("expected IRQ asserted once the scanline counter reaches 0")
	}
}

func TestMMC3IrqSuppressedWhenDisabled(t *testing.T) {
	data := buildINES(4, 4, 2, false)
	cart, err := NewCartridge(data)
	if err != nil {
		t.Fatalf("NewCartridge: %v", err)
	}
	cart.Write8(0xC000, 0) // latch = 0, so the very next reload already hits 0
	cart.Write8(0xC001, 0)
	cart.Write8(0xE000, 0) // IRQ disabled (the default, made explicit here)

	for i := 0; i < 8; i++ {
		cart.Tick(false)
	}
	cart.Tick(true)
	if cart.IRQ().Asserted() {
		t.Fatalf("IRQ must not assert while disabled, even when the counter hits 0")
	}
}

// writeMMC1 feeds a 5-bit value into MMC1's serial shift register one bit
// per write, least-significant bit first, landing on the given register
// address on the final (5th) write.
func writeMMC1(cart *Cartridge, addr uint16, val uint8) {
	for i := 0; i < 5; i++ {
		bit := (val >> i) & 1
		cart.Write8(addr, bit)
	}
}
