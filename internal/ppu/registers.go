package ppu

// loopyRegister packs the PPU's 15-bit v/t scroll state: coarse X (5),
// coarse Y (5), nametable select (2), fine Y (3). Reusing the same bit
// layout for both v and t is what makes the documented $2005/$2006
// increment/copy tricks fall out of simple masked assignments.
type loopyRegister struct {
	val uint16
}

const (
	loopyCoarseXMask  = 0x001F
	loopyCoarseYMask  = 0x03E0
	loopyNametableMask = 0x0C00
	loopyFineYMask    = 0x7000
)

func (l *loopyRegister) coarseX() uint16   { return l.val & loopyCoarseXMask }
func (l *loopyRegister) coarseY() uint16   { return (l.val & loopyCoarseYMask) >> 5 }
func (l *loopyRegister) nametable() uint16 { return (l.val & loopyNametableMask) >> 10 }
func (l *loopyRegister) fineY() uint16     { return (l.val & loopyFineYMask) >> 12 }

func (l *loopyRegister) setCoarseX(v uint16) {
	l.val = (l.val &^ loopyCoarseXMask) | (v & 0x1F)
}
func (l *loopyRegister) setCoarseY(v uint16) {
	l.val = (l.val &^ loopyCoarseYMask) | ((v & 0x1F) << 5)
}
func (l *loopyRegister) setFineY(v uint16) {
	l.val = (l.val &^ loopyFineYMask) | ((v & 0x7) << 12)
}

// incCoarseX implements the documented wraparound: at coarse X 31 the
// nametable select's horizontal bit flips instead of coarse X overflowing
// into coarse Y.
func (l *loopyRegister) incCoarseX() {
	if l.coarseX() == 31 {
		l.setCoarseX(0)
		l.val ^= 0x0400
	} else {
		l.setCoarseX(l.coarseX() + 1)
	}
}

// incFineY implements the documented wraparound through coarse Y 29 (the
// last row of nametable data) with a vertical nametable flip, and the
// well-known quirk that coarse Y 30/31 (attribute-table rows) just wrap
// to 0 without flipping the nametable bit if software ever parks v there.
func (l *loopyRegister) incFineY() {
	fy := l.fineY()
	if fy < 7 {
		l.setFineY(fy + 1)
		return
	}
	l.setFineY(0)
	cy := l.coarseY()
	switch cy {
	case 29:
		l.setCoarseY(0)
		l.val ^= 0x0800
	case 31:
		l.setCoarseY(0)
	default:
		l.setCoarseY(cy + 1)
	}
}

func (l *loopyRegister) copyHorizontal(src *loopyRegister) {
	l.val = (l.val &^ (loopyCoarseXMask | 0x0400)) | (src.val & (loopyCoarseXMask | 0x0400))
}
func (l *loopyRegister) copyVertical(src *loopyRegister) {
	mask := uint16(loopyCoarseYMask | loopyFineYMask | 0x0800)
	l.val = (l.val &^ mask) | (src.val & mask)
}

// PPUCTRL bits ($2000, write-only from the CPU's perspective).
const (
	ctrlNametableMask  = 0x03
	ctrlIncrement32    = 0x04
	ctrlSpritePattern  = 0x08
	ctrlBgPattern      = 0x10
	ctrlSprite8x16     = 0x20
	ctrlMasterSlave    = 0x40
	ctrlNMIEnable      = 0x80
)

// PPUMASK bits ($2001).
const (
	maskGreyscale       = 0x01
	maskShowBgLeft      = 0x02
	maskShowSpritesLeft = 0x04
	maskShowBg          = 0x08
	maskShowSprites     = 0x10
	maskEmphasizeRed    = 0x20
	maskEmphasizeGreen  = 0x40
	maskEmphasizeBlue   = 0x80
)

// PPUSTATUS bits ($2002).
const (
	statusSpriteOverflow = 0x20
	statusSprite0Hit     = 0x40
	statusVBlank         = 0x80
)
