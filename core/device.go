// Package core is a cycle-accurate model of a synchronous SPI-slave
// write-only register peripheral: three asynchronous input lines are
// synchronized into the processing clock domain, serial bits are shifted
// into a 16-bit frame while chip select is asserted, and a completed
// frame is decoded into one of five memory-mapped 8-bit registers.
package core

import "spislave/protocol"

// Pins is the raw, asynchronous level of the three SPI input lines
// presented to the peripheral for one processing-clock tick.
type Pins struct {
	SCLK bool
	COPI bool
	NCS  bool // active low
}

// PinSample converts a capture-stream sample to raw pin levels.
func PinSample(s protocol.Sample) Pins {
	return Pins{SCLK: s.SCLK, COPI: s.COPI, NCS: s.NCS}
}

// Peripheral is the complete SPI-slave register peripheral. Data flows
// strictly one direction each tick:
//
//	raw pins -> synchronizer -> edge detect -> shifter -> handshake
//	         -> decoder -> register file
//
// The only feedback path is the handshake's processed flag clearing its
// ready flag.
type Peripheral struct {
	sclk SyncLine
	copi SyncLine
	ncs  SyncLine

	shifter Shifter
	hs      Handshake

	// decoded mirrors the last frame serviced by the decoder. It is a
	// diagnostic latch and plays no part in register-file correctness.
	decoded protocol.Frame

	regs RegisterFile
}

// New returns a peripheral in its reset state.
func New() *Peripheral {
	p := &Peripheral{}
	p.Reset()
	return p
}

// Reset forces every piece of state to zero: synchronizer pipelines,
// frame buffer, bit counter, handshake flags, the decoded-frame latch
// and all five registers. Reset takes priority over every other
// transition.
func (p *Peripheral) Reset() {
	p.sclk.Reset()
	p.copi.Reset()
	p.ncs.Reset()
	p.shifter.Reset()
	p.hs.Reset()
	p.decoded = protocol.Frame{}
	p.regs.Reset()
}

// Tick advances the model by one processing-clock cycle. Every stage
// evaluates against the snapshot left by the previous tick before any
// state commits, so there are no read-after-write hazards within a tick.
func (p *Peripheral) Tick(pins Pins) {
	// Signals visible to logic this tick, all derived from the
	// synchronizer stages committed on previous ticks.
	sclkRising := p.sclk.Rising()
	csRising := p.ncs.Rising() // deassertion edge, chip select is active low
	csActive := !p.ncs.Value()
	dataBit := p.copi.Prev()

	frameDone := csRising && p.shifter.Complete()
	consume := p.hs.Pending()

	// Decoder: exactly one dispatch per completed transaction, confined
	// to the single targeted register. Read frames and unknown
	// addresses fall through as no-ops.
	if consume {
		p.decoded = protocol.ParseFrame(p.shifter.Frame())
		if p.decoded.Write {
			p.regs.Write(p.decoded.Addr, p.decoded.Data)
		}
	}

	// Frame assembly: sample on serial-clock rising edges while chip
	// select is asserted, clear the counter whenever it is not.
	if csActive {
		if sclkRising {
			p.shifter.Capture(dataBit)
		}
	} else {
		p.shifter.Idle()
	}

	p.hs.Advance(frameDone, consume)

	// The synchronizer pipelines shift last; the new raw samples become
	// visible to logic on a later tick.
	p.sclk.Shift(pins.SCLK)
	p.copi.Shift(pins.COPI)
	p.ncs.Shift(pins.NCS)
}

// TickSample advances the model by one tick from a capture-stream
// sample.
func (p *Peripheral) TickSample(s protocol.Sample) {
	p.Tick(PinSample(s))
}

// Registers returns a snapshot of the five output registers.
func (p *Peripheral) Registers() RegisterFile { return p.regs }

// ReadRegister returns the current value of one register by address.
func (p *Peripheral) ReadRegister(addr uint8) (uint8, bool) {
	return p.regs.Read(addr)
}

// LastFrame returns the most recently decoded frame.
func (p *Peripheral) LastFrame() protocol.Frame { return p.decoded }

// Ready reports whether a completed frame is latched awaiting or
// finishing its decode handshake.
func (p *Peripheral) Ready() bool { return p.hs.Ready() }

// BitCount returns the number of bits captured in the current
// chip-select window.
func (p *Peripheral) BitCount() uint16 { return p.shifter.Count() }
