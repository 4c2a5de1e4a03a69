package protocol

import "errors"

// ErrBadSample reports a sample byte with bits set outside the three
// defined pin positions.
var ErrBadSample = errors.New("sample byte has undefined bits set")

// Pin bit positions within a sample byte. The ordering matches the
// peripheral's physical input bus: bit 0 is the serial clock, bit 1 the
// serial data line, bit 2 the active-low chip select. The upper five
// bits are reserved and must be zero.
const (
	SampleSCLK = 1 << 0
	SampleCOPI = 1 << 1
	SampleNCS  = 1 << 2

	sampleReserved = 0xF8
)

// Sample is the raw level of the three SPI input lines for one
// processing-clock tick. Capture streams store one byte per tick.
type Sample struct {
	SCLK bool
	COPI bool
	NCS  bool // active low
}

// IdleSample is the bus at rest: clock and data low, chip select
// deasserted.
func IdleSample() Sample {
	return Sample{NCS: true}
}

// Encode packs the sample into its stream byte.
func (s Sample) Encode() byte {
	var b byte
	if s.SCLK {
		b |= SampleSCLK
	}
	if s.COPI {
		b |= SampleCOPI
	}
	if s.NCS {
		b |= SampleNCS
	}
	return b
}

// DecodeSample unpacks a stream byte. Bytes with reserved bits set are
// rejected so that framing slips in a capture stream surface early.
func DecodeSample(b byte) (Sample, error) {
	if b&sampleReserved != 0 {
		return Sample{}, ErrBadSample
	}
	return Sample{
		SCLK: b&SampleSCLK != 0,
		COPI: b&SampleCOPI != 0,
		NCS:  b&SampleNCS != 0,
	}, nil
}
