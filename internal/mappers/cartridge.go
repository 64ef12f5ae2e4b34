package mappers

import (
	"crypto/md5"
	"fmt"

	"github.com/tiagolobo-student/gones/internal/common"
)

const (
	prgBankSize = 16384
	chrBankSize = 8192
)

// Cartridge owns the loaded ROM image and the constructed Mapper, and is
// the single thing the console's Bus connects for the $4020-$FFFF CPU
// window and the PPU's pattern-table/nametable-mirroring window.
type Cartridge struct {
	mapper Mapper
	header iNESHeader
	prg    []byte
	fingerprint [md5.Size]byte
}

// NewCartridge parses a raw iNES/NES 2.0 image and constructs the mapper
// it names. An unrecognised mapper number or malformed header surfaces as
// a LoadError rather than a panic, per the host-facing error contract.
func NewCartridge(data []byte) (*Cartridge, error) {
	if len(data) < 16 {
		return nil, common.NewLoadError(common.LoadTruncated, "file too short to hold an iNES header", nil)
	}
	var raw [16]byte
	copy(raw[:], data[:16])
	header, err := parseINESHeader(raw)
	if err != nil {
		return nil, err
	}
	if header.PRGBanks16k == 0 {
		return nil, common.NewLoadError(common.LoadInconsistentHeader, "header declares zero PRG-ROM banks", nil)
	}

	offset := 16
	if header.Trainer {
		offset += 512
	}

	prgSize := int(header.PRGBanks16k) * prgBankSize
	if offset+prgSize > len(data) {
		return nil, common.NewLoadError(common.LoadTruncated, "truncated PRG ROM data", nil)
	}
	prgData := data[offset : offset+prgSize]
	offset += prgSize

	var chrData []byte
	chrIsRAM := header.CHRBanks8k == 0
	if chrIsRAM {
		size := header.CHRRAMSize
		if size == 0 {
			size = chrBankSize
		}
		chrData = make([]byte, size)
	} else {
		chrSize := int(header.CHRBanks8k) * chrBankSize
		if offset+chrSize > len(data) {
			return nil, common.NewLoadError(common.LoadTruncated, "truncated CHR ROM data", nil)
		}
		chrData = data[offset : offset+chrSize]
	}

	mapper, err := newMapper(header, prgData, chrData, chrIsRAM)
	if err != nil {
		return nil, err
	}

	hash := md5.New()
	hash.Write(prgData)
	hash.Write(chrData)
	var fingerprint [md5.Size]byte
	copy(fingerprint[:], hash.Sum(nil))

	return &Cartridge{
		mapper:      mapper,
		header:      header,
		prg:         prgData,
		fingerprint: fingerprint,
	}, nil
}

// Fingerprint identifies this cartridge's PRG∥CHR image for save-state
// cartridge-mismatch checks; MD5 rather than a cryptographic-strength hash
// since it's used only as a content key, never for integrity against
// tampering.
func (c *Cartridge) Fingerprint() [md5.Size]byte { return c.fingerprint }

func (c *Cartridge) Mapper() Mapper { return c.mapper }

func (c *Cartridge) Read8(addr uint16) uint8      { return c.mapper.Read8(addr) }
func (c *Cartridge) Write8(addr uint16, val uint8) { c.mapper.Write8(addr, val) }
func (c *Cartridge) ReadCHR(addr uint16) uint8      { return c.mapper.ReadCHR(addr) }
func (c *Cartridge) WriteCHR(addr uint16, val uint8) { c.mapper.WriteCHR(addr, val) }
func (c *Cartridge) Mirroring() common.NameTableMirroring { return c.mapper.Mirroring() }

// Tick lets mapper IRQ counters (MMC3's scanline counter) watch the PPU's
// A12 line; called once per PPU dot by the console.
func (c *Cartridge) Tick(a12High bool) { c.mapper.Tick(a12High) }

func (c *Cartridge) IRQ() common.IiInterrupt { return c.mapper.IRQ() }

func (c *Cartridge) Serialise(s common.Serialiser) error   { return c.mapper.Serialise(s) }
func (c *Cartridge) DeSerialise(s common.Serialiser) error { return c.mapper.DeSerialise(s) }

func newBaseMapper(header iNESHeader, prgData, chrData []byte, chrIsRAM bool) baseMapper {
	b := baseMapper{mirroring: header.Mirroring, chrIsRAM: chrIsRAM}
	b.prg.Init(len(prgData), false)
	b.prg.Load(prgData)

	b.chr.Init(len(chrData), chrIsRAM)
	b.chr.Load(chrData)

	ramSize := header.PRGRAMSize
	if ramSize == 0 {
		ramSize = 8192
	}
	b.prgRAM.Init(ramSize)
	return b
}

func newMapper(header iNESHeader, prgData, chrData []byte, chrIsRAM bool) (Mapper, error) {
	switch header.Mapper {
	case 0:
		return newNROM(header, prgData, chrData, chrIsRAM), nil
	case 1:
		return newMMC1(header, prgData, chrData, chrIsRAM), nil
	case 2:
		return newUxROM(header, prgData, chrData, chrIsRAM), nil
	case 3:
		return newCNROM(header, prgData, chrData, chrIsRAM), nil
	case 4:
		return newMMC3(header, prgData, chrData, chrIsRAM), nil
	case 5:
		return newMMC5(header, prgData, chrData, chrIsRAM), nil
	case 7:
		return newAxROM(header, prgData, chrData, chrIsRAM), nil
	case 9:
		return newMMC2(header, prgData, chrData, chrIsRAM), nil
	case 11:
		return newColorDreams(header, prgData, chrData, chrIsRAM), nil
	case 66:
		return newGxROM(header, prgData, chrData, chrIsRAM), nil
	default:
		return nil, common.NewLoadError(common.LoadUnsupportedMapper, fmt.Sprintf("unsupported mapper %d", header.Mapper), nil)
	}
}
