package core

import (
	"testing"

	"github.com/tiagolobo-student/gones/internal/common"
)

// buildNROM assembles a minimal mapper-0 iNES image: prgBanks*16KB of PRG
// ROM and one 8KB CHR bank, all zero-filled.
func buildNROM(prgBanks uint8) []byte {
	header := make([]byte, 16)
	header[0], header[1], header[2], header[3] = 'N', 'E', 'S', 0x1A
	header[4] = prgBanks
	header[5] = 1

	data := header
	for b := uint8(0); b < prgBanks; b++ {
		bank := make([]byte, 16384)
		data = append(data, bank...)
	}
	data = append(data, make([]byte, 8192)...)
	return data
}

func newTestConsole(t *testing.T) *Console {
	t.Helper()
	c := NewConsole()
	if err := c.LoadROM(buildNROM(2)); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	c.PowerOn()
	return c
}

func TestLoadROMRejectsGarbage(t *testing.T) {
	c := NewConsole()
	if err := c.LoadROM([]byte("not a rom")); err == nil {
		t.Fatalf("expected LoadROM to reject a non-iNES image")
	}
}

func TestRunFrameAdvancesFrameCount(t *testing.T) {
	c := newTestConsole(t)
	start := c.ppu.FrameCount()
	c.RunFrame()
	if c.ppu.FrameCount() != start+1 {
		t.Fatalf("FrameCount = %d, want %d after one RunFrame", c.ppu.FrameCount(), start+1)
	}
}

func TestStepAdvancesPpuThreeDotsPerCpuCycle(t *testing.T) {
	c := newTestConsole(t)
	startDot := c.ppu.Dot()
	c.Step()
	gotDot := c.ppu.Dot()
	// three PPU dots elapse per Step unless a scanline/frame boundary wrapped
	if (gotDot-startDot+341)%341 != 3 {
		t.Fatalf("PPU dot advanced by %d within one Step, want 3", (gotDot-startDot+341)%341)
	}
}

func TestSaveStateLoadStateRoundtripsRAM(t *testing.T) {
	c := newTestConsole(t)
	c.bus.ram.Write8(0x0010, 0x42)
	for i := 0; i < 10000; i++ {
		c.Step()
	}
	want := c.bus.ram.Read8(0x0010)

	state, err := c.SaveState()
	if err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	c2 := NewConsole()
	if err := c2.LoadROM(buildNROM(2)); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	c2.PowerOn()
	if err := c2.LoadState(state); err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if got := c2.bus.ram.Read8(0x0010); got != want {
		t.Fatalf("restored RAM[0x10] = %#02x, want %#02x", got, want)
	}
	if c2.ppu.FrameCount() != c.ppu.FrameCount() {
		t.Fatalf("restored FrameCount = %d, want %d", c2.ppu.FrameCount(), c.ppu.FrameCount())
	}
}

func TestLoadStateRejectsMismatchedCartridge(t *testing.T) {
	c := newTestConsole(t)
	state, err := c.SaveState()
	if err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	c2 := NewConsole()
	if err := c2.LoadROM(buildNROM(4)); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	c2.PowerOn()

	err = c2.LoadState(state)
	if err == nil {
		t.Fatalf("expected LoadState to reject a state captured against a different cartridge")
	}
	emuErr, ok := err.(*common.EmuError)
	if !ok {
		t.Fatalf("LoadState error is %T, want *common.EmuError", err)
	}
	if emuErr.Kind != common.StateErrorKind || emuErr.StateReason != common.StateCartridgeMismatch {
		t.Fatalf("got %s.%s, want state.CartridgeMismatch", emuErr.Kind, emuErr.StateReason)
	}
}

func TestPalRegionAveragesSixteenDotsOverFiveCycles(t *testing.T) {
	c := NewConsole(WithRegion(RegionPAL))
	if err := c.LoadROM(buildNROM(2)); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	c.PowerOn()

	var total int
	for i := 0; i < 5; i++ {
		before := c.ppu.Dot()
		c.Step()
		total += (c.ppu.Dot() - before + 341) % 341
	}
	if total != 16 {
		t.Fatalf("PAL advanced %d dots over 5 CPU cycles, want 16", total)
	}
}

func TestSetButtonsReachesController(t *testing.T) {
	c := newTestConsole(t)
	c.SetButtons(0, 0xFF)
	c.bus.controllers.Write8(0x4016, 1)
	c.bus.controllers.Write8(0x4016, 0)
	if got := c.bus.controllers.Read8(0x4016) & 1; got != 1 {
		t.Fatalf("first controller bit = %d, want 1 after SetButtons(0, 0xFF)", got)
	}
}
