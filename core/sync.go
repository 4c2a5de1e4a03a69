// Input synchronization for the asynchronous SPI lines.
// Every externally driven pin is re-sampled through a fixed-depth
// pipeline in the processing clock domain; logic downstream of the
// pipeline only ever reads synchronized stages, never the raw pin.
package core

// SyncLine carries one asynchronous input through a two-flop
// synchronizer plus one extra tick of history.
//
// Stage layout after Shift(raw):
//
//	cur     - newest sample, potentially metastable, never read by logic
//	hist[0] - synchronized value
//	hist[1] - synchronized value one tick older
//
// Edge detection compares the two history stages. The data line is
// consumed from hist[1] so the sampled bit was stable at least one tick
// before the clock edge that captures it.
type SyncLine struct {
	cur  bool
	hist [2]bool
}

// Shift advances the pipeline by one tick, latching raw as the new
// metastable stage.
func (l *SyncLine) Shift(raw bool) {
	l.hist[1] = l.hist[0]
	l.hist[0] = l.cur
	l.cur = raw
}

// Value returns the synchronized level of the line.
func (l *SyncLine) Value() bool { return l.hist[0] }

// Prev returns the synchronized level one tick older than Value.
func (l *SyncLine) Prev() bool { return l.hist[1] }

// Rising reports a low-to-high transition between the two synchronized
// stages. The pulse is exactly one tick wide.
func (l *SyncLine) Rising() bool { return l.hist[0] && !l.hist[1] }

// Falling reports a high-to-low transition between the two synchronized
// stages.
func (l *SyncLine) Falling() bool { return !l.hist[0] && l.hist[1] }

// Reset clears every stage of the pipeline.
func (l *SyncLine) Reset() {
	l.cur = false
	l.hist[0] = false
	l.hist[1] = false
}
