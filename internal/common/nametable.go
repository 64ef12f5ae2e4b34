package common

// NameTableMirroring selects how the four logical 1KB nametables fold onto
// the PPU's physical 2KB of VRAM; cartridges without onboard nametable RAM
// pick one of these, and mappers with extra wiring can override it at
// runtime (MMC1 control writes, Ppu.A12OutputHigh-adjacent MMC3 wiring).
type NameTableMirroring uint8

const (
	Horizontal NameTableMirroring = iota
	Vertical
	SingleScreenLower
	SingleScreenUpper
	QuadScreen
)

// NameTables holds the PPU's 2KB of nametable RAM and folds the 4 logical
// $2000-$2FFF screens onto it according to the active mirroring mode.
type NameTables struct {
	ram       [2048]uint8
	mirroring NameTableMirroring
}

func (n *NameTables) Serialise(s Serialiser) error {
	return s.Serialise(n.ram, n.mirroring)
}
func (n *NameTables) DeSerialise(s Serialiser) error {
	return s.DeSerialise(&n.ram, &n.mirroring)
}

func (n *NameTables) Init(mirroring NameTableMirroring) {
	n.ram = [2048]uint8{}
	n.mirroring = mirroring
}

func (n *NameTables) SetMirroring(mirroring NameTableMirroring) {
	n.mirroring = mirroring
}
func (n *NameTables) Mirroring() NameTableMirroring {
	return n.mirroring
}

// decode folds a $2000-$2FFF PPU address into a 0-2047 offset into ram,
// per the active mirroring mode.
func (n *NameTables) decode(addr uint16) uint16 {
	addr = (addr - 0x2000) % 0x1000
	table := addr / 0x0400
	offset := addr % 0x0400

	var physical uint16
	switch n.mirroring {
	case Horizontal:
		physical = (table / 2) * 0x0400
	case Vertical:
		physical = (table % 2) * 0x0400
	case SingleScreenLower:
		physical = 0
	case SingleScreenUpper:
		physical = 0x0400
	case QuadScreen:
		physical = table * 0x0400
	}
	return (physical + offset) % uint16(len(n.ram))
}

func (n *NameTables) Read8(addr uint16) uint8 {
	return n.ram[n.decode(addr)]
}
func (n *NameTables) Write8(addr uint16, val uint8) {
	n.ram[n.decode(addr)] = val
}
