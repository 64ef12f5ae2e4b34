package common

// Dma drives the $4014 OAM DMA transfer: 256 bytes copied from a CPU page
// into PPU OAM over 513 or 514 CPU cycles, stealing the bus from the CPU
// for the duration. The odd/even alternation and the one-cycle dummy read
// before the first real read/write pair are both cycle-exact requirements.
type Dma struct {
	active bool
	page   uint8
	addr   uint8

	delay    bool
	readVal  uint8
	oddCycle bool
	writeNext bool

	writeOAM func(val uint8)
}

func (d *Dma) Serialise(s Serialiser) error {
	return s.Serialise(d.active, d.page, d.addr, d.delay, d.readVal, d.oddCycle, d.writeNext)
}
func (d *Dma) DeSerialise(s Serialiser) error {
	return s.DeSerialise(&d.active, &d.page, &d.addr, &d.delay, &d.readVal, &d.oddCycle, &d.writeNext)
}

func (d *Dma) Init(writeOAM func(val uint8)) {
	d.writeOAM = writeOAM
	d.Reset()
}
func (d *Dma) Reset() {
	d.active = false
	d.page = 0
	d.addr = 0
	d.delay = true
}

// Active reports whether a transfer is currently stealing CPU cycles.
func (d *Dma) Active() bool {
	return d.active
}

// SetOddCycle tracks CPU cycle parity so the transfer can insert the
// extra alignment cycle the hardware needs when DMA starts on an odd CPU
// cycle.
func (d *Dma) SetOddCycle(odd bool) {
	d.oddCycle = odd
}

// Exec advances the transfer by exactly one CPU cycle, reading on even
// steps and writing to OAM on odd steps once the initial dummy/alignment
// delay has elapsed. cpuRead performs the actual bus read at page:addr.
func (d *Dma) Exec(cpuRead func(addr uint16) uint8) {
	if !d.active {
		return
	}
	if d.delay {
		// one dummy cycle, plus one more if DMA began on an odd cycle
		d.delay = false
		if d.oddCycle {
			d.oddCycle = false
			d.delay = true
		}
		return
	}
	if !d.writeNext {
		d.readVal = cpuRead(uint16(d.page)<<8 | uint16(d.addr))
		d.writeNext = true
	} else {
		d.writeOAM(d.readVal)
		d.writeNext = false
		d.addr++
		if d.addr == 0 {
			d.active = false
		}
	}
}

// SetupTransfer handles a $4014 write: latches the source page and arms
// the transfer to begin on the following CPU cycle.
func (d *Dma) SetupTransfer(page uint8) {
	d.active = true
	d.page = page
	d.addr = 0
	d.delay = true
	d.writeNext = false
}

func (d *Dma) Read8(addr uint16) uint8 {
	return 0
}
func (d *Dma) Write8(addr uint16, val uint8) {
	if addr == 0x4014 {
		d.SetupTransfer(val)
	}
}
