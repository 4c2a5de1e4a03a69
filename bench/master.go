package bench

import (
	"tinygo.org/x/drivers"

	"spislave/core"
	"spislave/protocol"
)

// Default master timing, in peripheral clock ticks.
const (
	DefaultHalfPeriod = 4 // SCLK half period
	DefaultSettle     = 8 // idle ticks after chip-select deassertion
)

// Master bit-bangs SPI mode-0 write frames into a peripheral model: the
// data line changes while the clock is low and the slave samples on the
// rising edge. Timing is expressed in peripheral clock ticks so the
// synchronizer latency is exercised the same way a real master clocking
// slower than the processing clock would.
//
// Master also implements the byte-level SPI interface from
// tinygo.org/x/drivers; received bytes are always zero because the
// slave has no response path.
type Master struct {
	HalfPeriod int // ticks per SCLK half period
	Settle     int // idle ticks after each chip-select window

	dev   *core.Peripheral
	pins  core.Pins
	ticks uint64
}

var _ drivers.SPI = (*Master)(nil)

// NewMaster creates a master wired to dev and clocks the bus at idle
// levels long enough for the input synchronizers to settle.
func NewMaster(dev *core.Peripheral) *Master {
	m := &Master{
		HalfPeriod: DefaultHalfPeriod,
		Settle:     DefaultSettle,
		dev:        dev,
		pins:       core.Pins{NCS: true},
	}
	m.clock(DefaultSettle)
	return m
}

// clock holds the current pin levels for n peripheral ticks.
func (m *Master) clock(n int) {
	for i := 0; i < n; i++ {
		m.dev.Tick(m.pins)
		m.ticks++
	}
}

// shiftBit presents one data bit during the clock-low half period and
// latches it with a rising edge.
func (m *Master) shiftBit(bit bool) {
	m.pins.SCLK = false
	m.pins.COPI = bit
	m.clock(m.HalfPeriod)
	m.pins.SCLK = true
	m.clock(m.HalfPeriod)
}

// endWindow returns the clock low, deasserts chip select and lets the
// handshake settle.
func (m *Master) endWindow() {
	m.pins.SCLK = false
	m.clock(m.HalfPeriod)
	m.pins.NCS = true
	m.pins.COPI = false
	m.clock(m.Settle)
}

// SendFrame drives one complete 16-bit transaction: chip select low,
// sixteen clocked bits MSB first, chip select high.
func (m *Master) SendFrame(f protocol.Frame) {
	bits := f.Bits()
	m.SendBits(bits[:])
}

// SendBits clocks an arbitrary bit sequence inside a single chip-select
// window. Sequences shorter or longer than 16 bits produce frames the
// slave discards, which is exactly what malformed-frame tests need.
func (m *Master) SendBits(bits []bool) {
	m.pins.NCS = false
	m.clock(m.HalfPeriod)
	for _, bit := range bits {
		m.shiftBit(bit)
	}
	m.endWindow()
}

// WriteRegister drives one write transaction for the given register.
func (m *Master) WriteRegister(addr, data uint8) {
	m.SendFrame(protocol.Frame{Write: true, Addr: addr, Data: data})
}

// PulseChipSelect asserts and deasserts chip select with no clock edges
// in between.
func (m *Master) PulseChipSelect() {
	m.SendBits(nil)
}

// Tx shifts all bytes of w inside one chip-select window, MSB first.
// Two bytes form one well-formed frame; any other length is clocked out
// faithfully and dropped by the slave's length check. r, if non-nil, is
// filled with zeros.
func (m *Master) Tx(w, r []byte) error {
	bits := make([]bool, 0, len(w)*8)
	for _, b := range w {
		for i := 7; i >= 0; i-- {
			bits = append(bits, b&(1<<i) != 0)
		}
	}
	m.SendBits(bits)

	for i := range r {
		r[i] = 0
	}
	return nil
}

// Transfer clocks a single byte in its own chip-select window. An
// 8-bit window never completes a frame, so the slave ignores it.
func (m *Master) Transfer(b byte) (byte, error) {
	if err := m.Tx([]byte{b}, nil); err != nil {
		return 0, err
	}
	return 0, nil
}

// Ticks returns the total number of peripheral ticks the master has
// driven.
func (m *Master) Ticks() uint64 { return m.ticks }
