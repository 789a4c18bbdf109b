package bus

import (
	"log/slog"

	"github.com/corvid-labs/gbz80/addr"
	"github.com/corvid-labs/gbz80/bit"
)

// Serial is a minimal, non-networked stand-in for the link-port hardware.
// Serial-link networking is explicitly out of scope (spec.md §1 Non-goals);
// this only gives SB/SC well-defined register semantics and logs completed
// transfers, since nothing is ever connected to the other end of the cable
// a transfer always completes with 0xFF on SB (as if the peer were
// disconnected), matching real hardware's behavior with no link partner.
type Serial struct {
	sb, sc    byte
	active    bool
	countdown int
}

// NewSerial returns an idle Serial port.
func NewSerial() Serial {
	return Serial{}
}

func (s *Serial) Read(address uint16) byte {
	switch address {
	case addr.SB:
		return s.sb
	case addr.SC:
		return s.sc | 0x7E
	default:
		return 0xFF
	}
}

func (s *Serial) Write(address uint16, value byte) {
	switch address {
	case addr.SB:
		s.sb = value
	case addr.SC:
		s.sc = value
		s.maybeStart()
	}
}

func (s *Serial) maybeStart() {
	if s.active {
		return
	}
	// A transfer starts when bit 7 (start) and bit 0 (internal clock) of SC
	// are both set; without bit 0 the game is waiting on an external clock
	// that, with no link cable attached, never arrives.
	if !bit.IsSet(7, s.sc) || !bit.IsSet(0, s.sc) {
		return
	}
	slog.Debug("serial transfer started", "byte", s.sb)
	s.active = true
	s.countdown = 4096 // ~8 bit-periods at the DMG's internal serial clock
}

// Tick advances any in-flight transfer and reports whether it completed this
// call (the caller requests the Serial interrupt, matching Bus.Tick's
// uniform IRQ wiring for every device).
func (s *Serial) Tick(cycles int) bool {
	if !s.active {
		return false
	}
	s.countdown -= cycles
	if s.countdown > 0 {
		return false
	}
	s.sb = 0xFF // no peer attached, so the shifted-in byte is always 0xFF
	s.sc = bit.Reset(7, s.sc)
	s.active = false
	slog.Debug("serial transfer completed")
	return true
}
