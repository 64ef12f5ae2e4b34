package common

import (
	"crypto/md5"
	"io"
	"os"
)

// Rom is a flat byte array addressed both by the narrow 16-bit CPU/PPU
// address space (Read8/Write8) and by the wider bank-relative offsets a
// mapper computes after bank switching (Read8w/Write8w).
type Rom struct {
	rom      []byte
	writable bool
}

func (r *Rom) Read8(addr uint16) uint8 {
	return r.rom[addr]
}
func (r *Rom) Read8w(addr uint32) uint8 {
	return r.rom[addr]
}

func (r *Rom) Read16(addr uint16) uint16 {
	return uint16(r.Read8(addr)) | uint16(r.Read8(addr+1))<<8
}
func (r *Rom) Write8(addr uint16, val uint8) {
	r.Write8w(uint32(addr), val)
}
func (r *Rom) Write8w(addr uint32, val uint8) {
	if !r.writable {
		panic("rom is not writable")
	}
	r.rom[addr] = val
}
func (r *Rom) Write16(addr uint16, val uint16) {
	r.Write8(addr, uint8(val&0xFF))
	r.Write8(addr+1, uint8((val&0xFF00)>>8))
}

func (r *Rom) Size() int {
	return len(r.rom)
}

func (r *Rom) Hash() [md5.Size]byte {
	return md5.Sum(r.rom)
}

func (r *Rom) Init(size int, writable bool) {
	r.rom = make([]byte, size)
	r.writable = writable
}
func (r *Rom) LoadFromFile(file *os.File) (int, error) {
	return io.ReadFull(file, r.rom)
}

// Load copies data into the backing array directly, regardless of the
// writable flag; used once at cartridge construction time to populate a
// PRG/CHR image loaded from the ROM file, as distinct from the mapper
// writes Write8/Write8w gate at runtime.
func (r *Rom) Load(data []byte) {
	copy(r.rom, data)
}

func (r *Rom) Serialise(s Serialiser) error {
	return s.Serialise(r.rom)
}
func (r *Rom) DeSerialise(s Serialiser) error {
	return s.DeSerialise(&r.rom)
}
