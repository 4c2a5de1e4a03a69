package core

// Handshake is the two-flag ready/processed ping-pong that gates exactly
// one decode per completed frame.
//
// Ready sets only when a frame completes while ready is low, so a frame
// completing before the previous one has been serviced is silently lost
// rather than double-decoded. After the decoder consumes a frame the
// pair self-clears over the following ticks: processed high drops ready,
// ready low then drops processed. The ready && !processed decode window
// is therefore open for exactly one tick per frame.
type Handshake struct {
	ready     bool
	processed bool
}

// Pending reports the single-tick window in which a completed frame
// awaits decoding.
func (h *Handshake) Pending() bool { return h.ready && !h.processed }

// Ready reports whether a completed frame is latched.
func (h *Handshake) Ready() bool { return h.ready }

// Processed reports whether the latched frame has been consumed.
func (h *Handshake) Processed() bool { return h.processed }

// Advance computes the next flag state from the current one. frameDone
// is the completion condition for this tick (chip-select deassertion
// edge with exactly 16 bits captured); consumed is true on the tick the
// decoder serviced the frame. Both flags update from the same snapshot,
// mirroring nonblocking register assignment.
func (h *Handshake) Advance(frameDone, consumed bool) {
	nextReady := h.ready
	nextProcessed := h.processed

	switch {
	case !h.ready && frameDone:
		nextReady = true
	case h.ready && h.processed:
		nextReady = false
	}

	switch {
	case consumed:
		nextProcessed = true
	case !h.ready && h.processed:
		nextProcessed = false
	}

	h.ready = nextReady
	h.processed = nextProcessed
}

// Reset clears both flags.
func (h *Handshake) Reset() {
	h.ready = false
	h.processed = false
}
