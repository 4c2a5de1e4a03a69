package core

import "testing"

func TestHandshakePingPong(t *testing.T) {
	var h Handshake

	if h.Pending() {
		t.Fatal("fresh handshake must not be pending")
	}

	// Frame completes: ready latches, decode window opens next tick.
	h.Advance(true, false)
	if !h.Ready() || h.Processed() {
		t.Fatalf("after completion: ready=%v processed=%v, want ready only", h.Ready(), h.Processed())
	}
	if !h.Pending() {
		t.Fatal("completed frame should be pending")
	}

	// Decoder consumes the frame.
	h.Advance(false, h.Pending())
	if !h.Ready() || !h.Processed() {
		t.Fatalf("after consume: ready=%v processed=%v, want both set", h.Ready(), h.Processed())
	}
	if h.Pending() {
		t.Fatal("consumed frame must not stay pending")
	}

	// Self-clear takes two further ticks: ready drops first, then
	// processed.
	h.Advance(false, false)
	if h.Ready() {
		t.Fatal("ready should clear once processed was observed")
	}
	h.Advance(false, false)
	if h.Ready() || h.Processed() {
		t.Fatalf("handshake did not return to idle: ready=%v processed=%v", h.Ready(), h.Processed())
	}
}

func TestHandshakePendingWindowIsOneTick(t *testing.T) {
	var h Handshake

	h.Advance(true, false)

	pendingTicks := 0
	for i := 0; i < 8; i++ {
		consumed := h.Pending()
		if consumed {
			pendingTicks++
		}
		h.Advance(false, consumed)
	}

	if pendingTicks != 1 {
		t.Errorf("decode window open for %d ticks, want exactly 1", pendingTicks)
	}
}

func TestHandshakeOverrunIgnored(t *testing.T) {
	var h Handshake

	h.Advance(true, false) // first frame latches

	// A second completion while the first is still in flight must not
	// retrigger the decode window.
	h.Advance(true, h.Pending()) // consume tick, new frame completes
	h.Advance(true, false)       // still completing while clearing

	decodes := 0
	for i := 0; i < 8; i++ {
		consumed := h.Pending()
		if consumed {
			decodes++
		}
		h.Advance(false, consumed)
	}

	if decodes != 0 {
		t.Errorf("overrun frames decoded %d times, want 0 (silently dropped)", decodes)
	}
	if h.Ready() || h.Processed() {
		t.Error("handshake must settle back to idle after an overrun")
	}
}

func TestHandshakeReset(t *testing.T) {
	var h Handshake

	h.Advance(true, false)
	h.Advance(false, true)
	h.Reset()

	if h.Ready() || h.Processed() || h.Pending() {
		t.Error("reset must clear both flags")
	}
}
