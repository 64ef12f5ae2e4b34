package common

import (
	"bytes"
	"errors"
	"testing"
)

func TestControllerStrobeFreezeAndShiftOut(t *testing.T) {
	var c Controllers
	c.Init()
	c.SetButtons(0, 1<<BitA|1<<BitRight)

	c.Write8(0x4016, 1) // strobe high: continuous latch
	c.Write8(0x4016, 0) // strobe low: start shifting

	first := c.Read8(0x4016) & 1
	if first != 1 {
		t.Fatalf("first shifted bit = %d, want 1 (button A)", first)
	}
	// B, Select, Start, Up, Down, Left all clear
	for i := 0; i < 6; i++ {
		if got := c.Read8(0x4016) & 1; got != 0 {
			t.Fatalf("bit %d = %d, want 0", i+1, got)
		}
	}
	last := c.Read8(0x4016) & 1
	if last != 1 {
		t.Fatalf("8th shifted bit = %d, want 1 (button Right)", last)
	}
	// past the 8th shift, a real pad reads back 1
	if got := c.Read8(0x4016) & 1; got != 1 {
		t.Fatalf("9th read = %d, want 1 (open-bus/pad convention)", got)
	}
}

func TestControllerRestrobeResetsShiftPosition(t *testing.T) {
	var c Controllers
	c.Init()
	c.SetButtons(0, 1<<BitA)
	c.Write8(0x4016, 1)
	c.Write8(0x4016, 0)
	c.Read8(0x4016)
	c.Read8(0x4016)
	// re-strobe mid-shift should reset targetBit back to 0
	c.Write8(0x4016, 1)
	c.Write8(0x4016, 0)
	if got := c.Read8(0x4016) & 1; got != 1 {
		t.Fatalf("after re-strobe, first bit = %d, want 1 (button A again)", got)
	}
}

func TestNameTableHorizontalMirroringFoldsTopTwoTables(t *testing.T) {
	var nt NameTables
	nt.Init(Horizontal)
	nt.Write8(0x2000, 0xAA)
	if got := nt.Read8(0x2400); got != 0xAA {
		t.Fatalf("horizontal mirroring should fold $2400 onto $2000's table, got %#02x", got)
	}
	if got := nt.Read8(0x2800); got == 0xAA {
		t.Fatalf("$2800 should be a distinct physical table under horizontal mirroring")
	}
}

func TestNameTableVerticalMirroringFoldsLeftRightTables(t *testing.T) {
	var nt NameTables
	nt.Init(Vertical)
	nt.Write8(0x2000, 0x55)
	if got := nt.Read8(0x2800); got != 0x55 {
		t.Fatalf("vertical mirroring should fold $2800 onto $2000's table, got %#02x", got)
	}
}

func TestSerialiseRoundtripsPrimitives(t *testing.T) {
	var buf bytes.Buffer
	enc := NewSerialiser(&buf)
	if err := enc.Serialise(uint8(0x42), uint16(0xBEEF), true); err != nil {
		t.Fatalf("Serialise: %v", err)
	}

	dec := NewSerialiser(&buf)
	var a uint8
	var b uint16
	var c bool
	if err := dec.DeSerialise(&a, &b, &c); err != nil {
		t.Fatalf("DeSerialise: %v", err)
	}
	if a != 0x42 || b != 0xBEEF || c != true {
		t.Fatalf("roundtrip mismatch: a=%#02x b=%#04x c=%v", a, b, c)
	}
}

func TestSerialiseRoundtripsNestedSerialisable(t *testing.T) {
	var buf bytes.Buffer
	var nt NameTables
	nt.Init(Vertical)
	nt.Write8(0x2000, 0x77)

	enc := NewSerialiser(&buf)
	if err := enc.Serialise(&nt); err != nil {
		t.Fatalf("Serialise: %v", err)
	}

	var nt2 NameTables
	dec := NewSerialiser(&buf)
	if err := dec.DeSerialise(&nt2); err != nil {
		t.Fatalf("DeSerialise: %v", err)
	}
	if nt2.Read8(0x2000) != 0x77 {
		t.Fatalf("nametable contents did not survive a Serialise/DeSerialise roundtrip")
	}
	if nt2.Mirroring() != Vertical {
		t.Fatalf("mirroring mode did not survive roundtrip: got %d", nt2.Mirroring())
	}
}

func TestEmuErrorUnwrapAndKind(t *testing.T) {
	inner := errors.New("truncated")
	err := NewLoadError(LoadTruncated, "bad rom", inner)
	if !errors.Is(err, inner) {
		t.Fatalf("errors.Is should see through EmuError.Unwrap to the wrapped error")
	}
	if err.Kind != LoadErrorKind {
		t.Fatalf("Kind = %v, want LoadErrorKind", err.Kind)
	}
	if err.LoadReason != LoadTruncated {
		t.Fatalf("LoadReason = %v, want LoadTruncated", err.LoadReason)
	}
}

func TestDmaTransfersAllBytesToOAM(t *testing.T) {
	var mem [0x10000]uint8
	for i := range mem[0x0200:0x0300] {
		mem[0x0200+i] = uint8(i)
	}
	var oam [256]uint8
	var d Dma
	d.Init(func(val uint8) {
		oam[d.addr] = val
	})
	d.SetupTransfer(0x02)
	d.SetOddCycle(false)

	cpuRead := func(addr uint16) uint8 { return mem[addr] }
	for d.Active() {
		d.Exec(cpuRead)
	}
	for i := 0; i < 256; i++ {
		if oam[i] != uint8(i) {
			t.Fatalf("oam[%d] = %#02x, want %#02x", i, oam[i], uint8(i))
		}
	}
}

func TestInterruptLineAssertClearAsserted(t *testing.T) {
	var line InterruptLine
	if line.Asserted() {
		t.Fatalf("a fresh InterruptLine should start cleared")
	}
	line.Assert()
	if !line.Asserted() {
		t.Fatalf("expected Asserted() true after Assert()")
	}
	line.Clear()
	if line.Asserted() {
		t.Fatalf("expected Asserted() false after Clear()")
	}
}
