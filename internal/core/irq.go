package core

import "github.com/tiagolobo-student/gones/internal/common"

// irqOR presents several independently-asserted IRQ sources (the APU
// frame sequencer + DMC channel, and a mapper's own counter) to the CPU
// as a single level-triggered line. Only the individual sources ever
// call Assert/Clear on themselves; the CPU only ever queries Asserted.
type irqOR struct {
	lines []common.IiInterrupt
}

func (o *irqOR) Assert() {}
func (o *irqOR) Clear()  {}
func (o *irqOR) Asserted() bool {
	for _, l := range o.lines {
		if l != nil && l.Asserted() {
			return true
		}
	}
	return false
}
