// Package replay streams captured pin samples into a peripheral model
// and reports the register writes they decode. A capture stream is one
// byte per processing-clock tick in the protocol.Sample layout, read
// from a file or straight from a capture probe's serial port.
package replay

import (
	"bufio"
	"fmt"
	"io"

	"spislave/core"
	"spislave/protocol"
)

// WriteEvent records one register write observed during replay.
type WriteEvent struct {
	Tick uint64 // tick on which the register changed
	Addr uint8
	Name string
	Data uint8
}

// Runner ticks a peripheral per incoming sample and watches the
// register file for changes.
type Runner struct {
	dev  *core.Peripheral
	tick uint64
	prev core.RegisterFile
}

// New creates a runner driving dev.
func New(dev *core.Peripheral) *Runner {
	return &Runner{
		dev:  dev,
		prev: dev.Registers(),
	}
}

// Step applies one sample to the model. At most one register can change
// per tick, so the result is a single event or nil.
func (r *Runner) Step(s protocol.Sample) *WriteEvent {
	r.dev.TickSample(s)
	r.tick++

	cur := r.dev.Registers()
	if cur == r.prev {
		return nil
	}
	r.prev = cur

	frame := r.dev.LastFrame()
	name, _ := core.RegisterName(frame.Addr)
	return &WriteEvent{
		Tick: r.tick,
		Addr: frame.Addr,
		Name: name,
		Data: frame.Data,
	}
}

// Run consumes an entire capture stream, invoking onWrite for every
// register write decoded. It returns nil on EOF and wraps any sample
// decoding or read error with the stream offset it occurred at.
func (r *Runner) Run(src io.Reader, onWrite func(WriteEvent)) error {
	br := bufio.NewReader(src)
	for offset := uint64(0); ; offset++ {
		b, err := br.ReadByte()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("capture stream read at byte %d: %w", offset, err)
		}

		s, err := protocol.DecodeSample(b)
		if err != nil {
			return fmt.Errorf("capture stream byte %d (0x%02x): %w", offset, b, err)
		}

		if ev := r.Step(s); ev != nil && onWrite != nil {
			onWrite(*ev)
		}
	}
}

// Tick returns the number of samples applied so far.
func (r *Runner) Tick() uint64 { return r.tick }
