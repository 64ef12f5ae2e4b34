package ppu

import (
	"testing"

	"github.com/tiagolobo-student/gones/internal/common"
)

type stubBus struct {
	chr   [0x2000]uint8
	nt    [0x1000]uint8
	pal   [32]uint8
}

func (s *stubBus) ReadCHR(addr uint16) uint8        { return s.chr[addr%0x2000] }
func (s *stubBus) WriteCHR(addr uint16, val uint8)  { s.chr[addr%0x2000] = val }
func (s *stubBus) ReadNametable(addr uint16) uint8  { return s.nt[addr%0x1000] }
func (s *stubBus) WriteNametable(addr uint16, val uint8) { s.nt[addr%0x1000] = val }
func (s *stubBus) ReadPalette(addr uint16) uint8    { return s.pal[addr%32] }
func (s *stubBus) WritePalette(addr uint16, val uint8) { s.pal[addr%32] = val }

type stickyLine struct{ asserted bool }

func (s *stickyLine) Assert()        { s.asserted = true }
func (s *stickyLine) Clear()         { s.asserted = false }
func (s *stickyLine) Asserted() bool { return s.asserted }

func newTestPpu() (*Ppu, *stubBus, *stickyLine) {
	var p Ppu
	bus := &stubBus{}
	nmi := &stickyLine{}
	var fb common.Framebuffer
	p.Init(bus, nmi, &fb)
	return &p, bus, nmi
}

func TestVBlankSetAndNmiAssertedAtScanline241Dot1(t *testing.T) {
	p, _, nmi := newTestPpu()
	p.ctrl = ctrlNMIEnable
	for p.scanline != 241 || p.dot != 1 {
		p.Tick()
	}
	p.Tick() // process dot 1 itself
	if p.status&statusVBlank == 0 {
		t.Fatalf("expected VBlank flag set at scanline 241 dot 1")
	}
	if !nmi.Asserted() {
		t.Fatalf("expected NMI asserted at scanline 241 dot 1 with NMI-enable set")
	}
}

func TestVBlankNotAssertedWhenNmiDisabled(t *testing.T) {
	p, _, nmi := newTestPpu()
	p.ctrl = 0 // NMI-enable bit clear
	for p.scanline != 241 || p.dot != 1 {
		p.Tick()
	}
	p.Tick() // process dot 1 itself
	if nmi.Asserted() {
		t.Fatalf("NMI should not assert when ctrl's NMI-enable bit is clear")
	}
}

func TestReadStatusSuppressesVBlankAtRaceWindow(t *testing.T) {
	p, _, _ := newTestPpu()
	p.ctrl = ctrlNMIEnable
	for !(p.scanline == 241 && p.dot == 0) {
		p.Tick()
	}
	// reading exactly at dot 0 should observe VBlank still clear and
	// suppress the NMI this frame, per the documented race window
	v := p.readPPUStatus()
	if v&statusVBlank != 0 {
		t.Fatalf("status read at dot 0 should not observe VBlank yet")
	}
}

func TestFrameCountIncrements(t *testing.T) {
	p, _, _ := newTestPpu()
	start := p.FrameCount()
	for p.FrameCount() == start {
		p.Tick()
	}
	if p.FrameCount() != start+1 {
		t.Fatalf("FrameCount = %d, want %d", p.FrameCount(), start+1)
	}
}

func TestRegisterWriteReadRoundtrips(t *testing.T) {
	p, bus, _ := newTestPpu()
	bus.pal[0x05] = 0x2C
	p.Write8(0x2006, 0x3F) // addr high
	p.Write8(0x2006, 0x05) // addr low -> v = $3F05
	startV := p.v.val
	got := p.readPPUData() // palette reads are not buffered; returns immediately
	if got != 0x2C {
		t.Fatalf("readPPUData at palette addr = %#02x, want 0x2C", got)
	}
	if p.v.val != startV+1 {
		t.Fatalf("v = %#04x, want %#04x after one $2007 read", p.v.val, startV+1)
	}
}

func TestOamDmaWriteAutoIncrements(t *testing.T) {
	p, _, _ := newTestPpu()
	p.Write8(0x2003, 0x10) // OAMADDR = 0x10
	p.OAMDMAWrite(0xAB)
	if p.oam[0x10] != 0xAB {
		t.Fatalf("oam[0x10] = %#02x, want 0xAB", p.oam[0x10])
	}
	if p.oamAddr != 0x11 {
		t.Fatalf("oamAddr = %#02x, want 0x11 after auto-increment", p.oamAddr)
	}
}

func TestSpriteOverflowFlagSetPastEighthSprite(t *testing.T) {
	p, _, _ := newTestPpu()
	p.mask = maskShowBg | maskShowSprites
	// place 9 sprites all visible on scanline 10
	for i := 0; i < 9; i++ {
		p.oam[i*4+0] = 10 // y
		p.oam[i*4+1] = 0  // tile
		p.oam[i*4+2] = 0  // attr
		p.oam[i*4+3] = 0  // x
	}
	p.scanline = 10
	p.evalSprites()
	if p.status&statusSpriteOverflow == 0 {
		t.Fatalf("expected sprite overflow flag set with 9 sprites in range")
	}
	if p.spriteCount != 8 {
		t.Fatalf("spriteCount = %d, want 8 (hardware caps rendering at 8)", p.spriteCount)
	}
}

func TestSpriteLimitOverrideDisablesCap(t *testing.T) {
	p, _, _ := newTestPpu()
	p.mask = maskShowBg | maskShowSprites
	p.SpriteLimit = 64
	for i := 0; i < 9; i++ {
		p.oam[i*4+0] = 20
	}
	p.scanline = 20
	p.evalSprites()
	if p.status&statusSpriteOverflow != 0 {
		t.Fatalf("overflow flag should not set when SpriteLimit raises the cap above 9")
	}
}
