package core

import "spislave/protocol"

// Shifter accumulates serial data bits into a 16-bit frame buffer while
// chip select is asserted.
//
// Capture is continuous rather than one-shot: the bit counter clears on
// every tick chip select is deasserted, so reasserting chip select is
// the only mechanism that segments frames. The counter is intentionally
// not clamped - if chip select stays low for more than 16 clock pulses
// the count keeps rising and the exactly-16 completion check fails until
// the next assertion window.
type Shifter struct {
	frame uint16
	count uint16
}

// Capture shifts one sampled bit into the least-significant position of
// the frame buffer and bumps the counter.
func (s *Shifter) Capture(bit bool) {
	s.frame <<= 1
	if bit {
		s.frame |= 1
	}
	s.count++
}

// Idle runs every tick chip select is deasserted. Only the counter
// clears; the frame buffer keeps its contents because it is consumed
// after deassertion, once a prior count already reached 16.
func (s *Shifter) Idle() { s.count = 0 }

// Complete reports whether the buffer holds exactly one full frame.
func (s *Shifter) Complete() bool { return s.count == protocol.FrameBits }

// Frame returns the raw shift register contents.
func (s *Shifter) Frame() uint16 { return s.frame }

// Count returns the number of bits captured in the current window.
func (s *Shifter) Count() uint16 { return s.count }

// Reset clears both the buffer and the counter.
func (s *Shifter) Reset() {
	s.frame = 0
	s.count = 0
}
