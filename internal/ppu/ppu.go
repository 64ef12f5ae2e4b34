package ppu

import (
	"github.com/tiagolobo-student/gones/internal/common"
)

// Bus is what the PPU needs from the cartridge/mapper: pattern table
// reads/writes (CHR ROM or CHR RAM) and nametable reads/writes, the latter
// already folded through the active mirroring mode.
type Bus interface {
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, val uint8)
	ReadNametable(addr uint16) uint8
	WriteNametable(addr uint16, val uint8)
	ReadPalette(addr uint16) uint8
	WritePalette(addr uint16, val uint8)
}

type oamSprite struct {
	y, tile, attr, x uint8
}

// Ppu is a dot-stepped Ricoh 2C02: Tick does the work of exactly one PPU
// dot, driven by the console at 3 dots per CPU cycle.
type Ppu struct {
	bus  Bus
	nmi  common.IiInterrupt
	fb   *common.Framebuffer

	ctrl   uint8
	mask   uint8
	status uint8

	v, t loopyRegister
	x    uint8 // fine X scroll
	w    bool  // write-toggle latch

	oam       [256]uint8
	oamAddr   uint8
	secOAM    [8]oamSprite
	spriteCount int

	// per-scanline sprite overflow evaluation state for the (n,m)
	// counter; unused at present: evalSprites keeps n and m in locals
	evalN, evalM int
	overflowDone bool

	bufferedData uint8 // $2007 read-buffer delay

	vblSuppressed bool // a $2002 read in the race window cancels this frame's VBlank

	scanline int
	dot      int
	frame    uint64
	oddFrame bool

	// background shift registers: a 16-bit pair of pattern bitplanes plus
	// a pair of 1-bit-per-pixel attribute planes, shifted one bit per dot
	bgPatternLo, bgPatternHi uint16
	bgAttrLo, bgAttrHi       uint16
	nextTileID, nextAttr     uint8
	nextPatternLo, nextPatternHi uint8

	// sprite shift registers for up to 8 sprites rendered this scanline
	spritePatternLo, spritePatternHi [8]uint8
	spriteX                          [8]uint8
	spriteAttr                       [8]uint8
	spriteIsZero                     [8]bool

	a12High bool

	SpriteLimit int // 0 = hardware-accurate 8; >8 disables the limit
}

func (p *Ppu) Serialise(s common.Serialiser) error {
	return s.Serialise(p.ctrl, p.mask, p.status, p.v.val, p.t.val, p.x, p.w,
		p.oam, p.oamAddr, p.bufferedData, p.scanline, p.dot, p.frame, p.oddFrame)
}
func (p *Ppu) DeSerialise(s common.Serialiser) error {
	return s.DeSerialise(&p.ctrl, &p.mask, &p.status, &p.v.val, &p.t.val, &p.x, &p.w,
		&p.oam, &p.oamAddr, &p.bufferedData, &p.scanline, &p.dot, &p.frame, &p.oddFrame)
}

func (p *Ppu) Init(bus Bus, nmi common.IiInterrupt, fb *common.Framebuffer) {
	p.bus = bus
	p.nmi = nmi
	p.fb = fb
	p.Reset()
}

func (p *Ppu) Reset() {
	p.ctrl, p.mask, p.status = 0, 0, 0
	p.v, p.t = loopyRegister{}, loopyRegister{}
	p.x, p.w = 0, false
	p.scanline, p.dot = 0, 0
	p.frame = 0
	p.oddFrame = false
	p.bufferedData = 0
}

// FrameCount returns the number of frames completed since power-on/reset.
func (p *Ppu) FrameCount() uint64 {
	return p.frame
}

// Dot returns the current horizontal dot position (0-340) within the
// current scanline.
func (p *Ppu) Dot() int {
	return p.dot
}

// A12OutputHigh reports whether the PPU address bus is currently fetching
// from the $1000-$1FFF pattern table half; MMC3's scanline IRQ counter
// clocks on this line's rising edge.
func (p *Ppu) A12OutputHigh() bool {
	return p.a12High
}

func (p *Ppu) renderingEnabled() bool {
	return p.mask&(maskShowBg|maskShowSprites) != 0
}

// Tick advances exactly one PPU dot: 341 dots per scanline, 262 scanlines
// per frame (0-239 visible, 240 post-render, 241-260 vblank, 261 pre-render).
func (p *Ppu) Tick() {
	if p.scanline >= 0 && p.scanline <= 239 {
		p.visibleScanline()
	} else if p.scanline == 241 && p.dot == 1 {
		if !p.vblSuppressed {
			p.status |= statusVBlank
			if p.ctrl&ctrlNMIEnable != 0 && p.nmi != nil {
				p.nmi.Assert()
			}
		}
		p.vblSuppressed = false
	} else if p.scanline == 261 {
		if p.dot == 1 {
			p.status &^= statusVBlank | statusSprite0Hit | statusSpriteOverflow
		}
		p.visibleScanline()
	}

	p.dot++
	if p.dot > 340 {
		p.dot = 0
		p.scanline++
		if p.scanline > 261 {
			p.scanline = 0
			p.frame++
			p.oddFrame = !p.oddFrame
			if p.fb != nil {
				p.fb.Present()
			}
			// the odd-frame skipped dot only happens when rendering is on
			if p.oddFrame && p.renderingEnabled() {
				p.dot = 1
			}
		}
	}
}

func (p *Ppu) visibleScanline() {
	if !p.renderingEnabled() {
		p.a12High = false
		return
	}

	switch {
	case p.dot == 0:
		// idle dot
	case p.dot >= 1 && p.dot <= 256:
		p.updateShifters()
		p.fetchCycle()
		if p.scanline >= 0 && p.scanline <= 239 {
			p.renderPixel()
		}
		if p.dot == 256 {
			p.v.incFineY()
		}
		if p.dot == 65 {
			p.evalSprites()
		}
	case p.dot == 257:
		p.loadBgShifters()
		p.v.copyHorizontal(&p.t)
		p.loadSprites()
	case p.dot >= 280 && p.dot <= 304 && p.scanline == 261:
		p.v.copyVertical(&p.t)
	case p.dot >= 321 && p.dot <= 336:
		p.updateShifters()
		p.fetchCycle()
	}

	p.a12High = p.dot >= 261 && p.dot <= 320 && p.ctrl&ctrlSprite8x16 == 0 && p.ctrl&ctrlSpritePattern != 0
}

func (p *Ppu) fetchCycle() {
	switch p.dot % 8 {
	case 1:
		p.loadBgShifters()
		ntAddr := 0x2000 | (p.v.val & 0x0FFF)
		p.nextTileID = p.bus.ReadNametable(ntAddr)
	case 3:
		attrAddr := 0x23C0 | (p.v.val & 0x0C00) | ((p.v.coarseY() >> 2) << 3) | (p.v.coarseX() >> 2)
		attr := p.bus.ReadNametable(attrAddr)
		shift := ((p.v.coarseY() & 0x02) << 1) | (p.v.coarseX() & 0x02)
		p.nextAttr = (attr >> shift) & 0x03
	case 5:
		base := uint16(0)
		if p.ctrl&ctrlBgPattern != 0 {
			base = 0x1000
		}
		addr := base + uint16(p.nextTileID)*16 + p.v.fineY()
		p.nextPatternLo = p.bus.ReadCHR(addr)
	case 7:
		base := uint16(0)
		if p.ctrl&ctrlBgPattern != 0 {
			base = 0x1000
		}
		addr := base + uint16(p.nextTileID)*16 + p.v.fineY() + 8
		p.nextPatternHi = p.bus.ReadCHR(addr)
	case 0:
		p.v.incCoarseX()
	}
}

func (p *Ppu) loadBgShifters() {
	p.bgPatternLo = (p.bgPatternLo &^ 0x00FF) | uint16(p.nextPatternLo)
	p.bgPatternHi = (p.bgPatternHi &^ 0x00FF) | uint16(p.nextPatternHi)
	lo, hi := uint16(0), uint16(0)
	if p.nextAttr&0x01 != 0 {
		lo = 0x00FF
	}
	if p.nextAttr&0x02 != 0 {
		hi = 0x00FF
	}
	p.bgAttrLo = (p.bgAttrLo &^ 0x00FF) | lo
	p.bgAttrHi = (p.bgAttrHi &^ 0x00FF) | hi
}

func (p *Ppu) updateShifters() {
	if p.mask&maskShowBg != 0 {
		p.bgPatternLo <<= 1
		p.bgPatternHi <<= 1
		p.bgAttrLo <<= 1
		p.bgAttrHi <<= 1
	}
	if p.mask&maskShowSprites != 0 && p.dot >= 1 && p.dot <= 256 {
		for i := 0; i < p.spriteCount; i++ {
			if p.spriteX[i] > 0 {
				p.spriteX[i]--
			} else {
				p.spritePatternLo[i] <<= 1
				p.spritePatternHi[i] <<= 1
			}
		}
	}
}

// evalSprites reproduces the documented hardware overflow bug: once 8
// sprites are found for the next scanline, evaluation keeps scanning OAM
// with a 5-entry stride that walks through the sprite's attribute bytes
// too (not just Y), so a false-positive overflow flag gets set depending
// on OAM's contents, and the scan can also skip entries incorrectly.
func (p *Ppu) evalSprites() {
	spriteHeight := 8
	if p.ctrl&ctrlSprite8x16 != 0 {
		spriteHeight = 16
	}

	limit := 8
	if p.SpriteLimit > 8 {
		limit = p.SpriteLimit
	}

	found := 0
	p.secOAM = [8]oamSprite{}
	for i := range p.secOAM {
		p.secOAM[i].y = 0xFF
	}

	n := 0
	m := 0
	for n < 64 {
		y := p.oam[n*4]
		inRange := p.scanline >= int(y) && p.scanline < int(y)+spriteHeight
		if found < limit {
			if inRange {
				if found < 8 {
					p.secOAM[found] = oamSprite{
						y:    y,
						tile: p.oam[n*4+1],
						attr: p.oam[n*4+2],
						x:    p.oam[n*4+3],
					}
				}
				found++
			}
			n++
			continue
		}
		// past the 8-sprite limit: the hardware reads byte m of sprite n
		// as a Y coordinate and, on a miss, increments both n and m (m
		// wrapping within 0-3) instead of resetting m to 0, which is the
		// root of the overflow bug
		y = p.oam[n*4+m]
		if p.scanline >= int(y) && p.scanline < int(y)+spriteHeight {
			p.status |= statusSpriteOverflow
			break
		}
		n++
		m = (m + 1) & 3
	}
	p.spriteCount = found
	if p.spriteCount > 8 {
		p.spriteCount = 8
	}
}

func (p *Ppu) loadSprites() {
	spriteHeight := 8
	if p.ctrl&ctrlSprite8x16 != 0 {
		spriteHeight = 16
	}
	for i := 0; i < p.spriteCount; i++ {
		s := p.secOAM[i]
		row := p.scanline - int(s.y)
		flipV := s.attr&0x80 != 0
		flipH := s.attr&0x40 != 0
		if flipV {
			row = spriteHeight - 1 - row
		}

		var addr uint16
		if spriteHeight == 16 {
			tile := uint16(s.tile &^ 1)
			bank := uint16(s.tile&1) * 0x1000
			half := uint16(0)
			if row >= 8 {
				half = 1
				row -= 8
			}
			addr = bank + (tile+half)*16 + uint16(row)
		} else {
			bank := uint16(0)
			if p.ctrl&ctrlSpritePattern != 0 {
				bank = 0x1000
			}
			addr = bank + uint16(s.tile)*16 + uint16(row)
		}

		lo := p.bus.ReadCHR(addr)
		hi := p.bus.ReadCHR(addr + 8)
		if flipH {
			lo = reverseBits(lo)
			hi = reverseBits(hi)
		}
		p.spritePatternLo[i] = lo
		p.spritePatternHi[i] = hi
		p.spriteX[i] = s.x
		p.spriteAttr[i] = s.attr
		p.spriteIsZero[i] = i == 0 && p.secOAM[0].y != 0xFF
	}
}

func reverseBits(b uint8) uint8 {
	b = (b&0xF0)>>4 | (b&0x0F)<<4
	b = (b&0xCC)>>2 | (b&0x33)<<2
	b = (b&0xAA)>>1 | (b&0x55)<<1
	return b
}

func (p *Ppu) renderPixel() {
	x := p.dot - 1
	bgPixel, bgPalette := uint8(0), uint8(0)
	if p.mask&maskShowBg != 0 && (x >= 8 || p.mask&maskShowBgLeft != 0) {
		shift := uint(15 - p.x)
		bit0 := uint8((p.bgPatternLo >> shift) & 1)
		bit1 := uint8((p.bgPatternHi >> shift) & 1)
		bgPixel = bit1<<1 | bit0
		a0 := uint8((p.bgAttrLo >> shift) & 1)
		a1 := uint8((p.bgAttrHi >> shift) & 1)
		bgPalette = a1<<1 | a0
	}

	spPixel, spPalette, spPriority, spZero := uint8(0), uint8(0), uint8(0), false
	if p.mask&maskShowSprites != 0 && (x >= 8 || p.mask&maskShowSpritesLeft != 0) {
		for i := 0; i < p.spriteCount; i++ {
			if p.spriteX[i] != 0 {
				continue
			}
			bit0 := (p.spritePatternLo[i] >> 7) & 1
			bit1 := (p.spritePatternHi[i] >> 7) & 1
			pix := bit1<<1 | bit0
			if pix == 0 {
				continue
			}
			spPixel = pix
			spPalette = p.spriteAttr[i]&0x03 + 4
			spPriority = (p.spriteAttr[i] >> 5) & 1
			spZero = p.spriteIsZero[i]
			break
		}
	}

	var finalPixel, finalPalette uint8
	switch {
	case bgPixel == 0 && spPixel == 0:
		finalPixel, finalPalette = 0, 0
	case bgPixel == 0 && spPixel != 0:
		finalPixel, finalPalette = spPixel, spPalette
	case bgPixel != 0 && spPixel == 0:
		finalPixel, finalPalette = bgPixel, bgPalette
	default:
		if spZero && x != 255 && p.mask&(maskShowBg|maskShowSprites) == (maskShowBg|maskShowSprites) {
			p.status |= statusSprite0Hit
		}
		if spPriority == 0 {
			finalPixel, finalPalette = spPixel, spPalette
		} else {
			finalPixel, finalPalette = bgPixel, bgPalette
		}
	}

	paletteAddr := uint16(0)
	if finalPixel != 0 {
		paletteAddr = uint16(finalPalette)*4 + uint16(finalPixel)
	}
	idx := p.bus.ReadPalette(paletteAddr)
	r, g, b := paletteRGB(idx)
	if p.fb != nil && p.scanline >= 0 && p.scanline < common.FrameHeight {
		p.fb.SetPixel(x, p.scanline, r, g, b)
	}
}

// --- CPU-facing register interface ($2000-$2007, mirrored to $3FFF) ---

func (p *Ppu) readPPUStatus() uint8 {
	v := p.status
	// reading status at dots 0-1 of scanline 241 observes the flag before
	// the hardware has actually set it and suppresses the NMI this frame
	if p.scanline == 241 && (p.dot == 0 || p.dot == 1) {
		v &^= statusVBlank
		p.vblSuppressed = true
		if p.nmi != nil {
			p.nmi.Clear()
		}
	}
	p.status &^= statusVBlank
	p.w = false
	return v
}

func (p *Ppu) writePPUCtrl(val uint8) {
	p.ctrl = val
	p.t.val = (p.t.val &^ loopyNametableMask) | (uint16(val&ctrlNametableMask) << 10)
}

func (p *Ppu) writePPUMask(val uint8) {
	p.mask = val
}

func (p *Ppu) writePPUScroll(val uint8) {
	if !p.w {
		p.x = val & 0x07
		p.t.setCoarseX(uint16(val >> 3))
	} else {
		p.t.setFineY(uint16(val & 0x07))
		p.t.setCoarseY(uint16(val >> 3))
	}
	p.w = !p.w
}

func (p *Ppu) writePPUAddr(val uint8) {
	if !p.w {
		p.t.val = (p.t.val & 0x00FF) | (uint16(val&0x3F) << 8)
	} else {
		p.t.val = (p.t.val &^ 0x00FF) | uint16(val)
		p.v = p.t
	}
	p.w = !p.w
}

func (p *Ppu) vramIncrement() uint16 {
	if p.ctrl&ctrlIncrement32 != 0 {
		return 32
	}
	return 1
}

func (p *Ppu) readPPUData() uint8 {
	addr := p.v.val & 0x3FFF
	var ret uint8
	if addr >= 0x3F00 {
		ret = p.bus.ReadPalette(addr & 0x1F)
		p.bufferedData = p.bus.ReadNametable(addr & 0x2FFF)
	} else {
		ret = p.bufferedData
		if addr < 0x2000 {
			p.bufferedData = p.bus.ReadCHR(addr)
		} else {
			p.bufferedData = p.bus.ReadNametable(addr)
		}
	}
	p.v.val += p.vramIncrement()
	return ret
}

func (p *Ppu) writePPUData(val uint8) {
	addr := p.v.val & 0x3FFF
	switch {
	case addr < 0x2000:
		p.bus.WriteCHR(addr, val)
	case addr < 0x3F00:
		p.bus.WriteNametable(addr, val)
	default:
		p.bus.WritePalette(addr&0x1F, val)
	}
	p.v.val += p.vramIncrement()
}

func (p *Ppu) readOAMData() uint8 {
	return p.oam[p.oamAddr]
}
func (p *Ppu) writeOAMData(val uint8) {
	p.oam[p.oamAddr] = val
	p.oamAddr++
}

// Read8 services the CPU-visible $2000-$2007 register window.
func (p *Ppu) Read8(addr uint16) uint8 {
	switch addr % 8 {
	case 2:
		return p.readPPUStatus()
	case 4:
		return p.readOAMData()
	case 7:
		return p.readPPUData()
	}
	return 0
}

func (p *Ppu) Write8(addr uint16, val uint8) {
	switch addr % 8 {
	case 0:
		p.writePPUCtrl(val)
	case 1:
		p.writePPUMask(val)
	case 3:
		p.oamAddr = val
	case 4:
		p.writeOAMData(val)
	case 5:
		p.writePPUScroll(val)
	case 6:
		p.writePPUAddr(val)
	case 7:
		p.writePPUData(val)
	}
}

// OAMDMAWrite is the destination the console's common.Dma writes into
// during an OAM DMA transfer, bypassing the $2004 oamAddr auto-increment
// quirks that only apply to CPU-initiated writes.
func (p *Ppu) OAMDMAWrite(val uint8) {
	p.oam[p.oamAddr] = val
	p.oamAddr++
}
