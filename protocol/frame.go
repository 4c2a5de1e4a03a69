// Package protocol defines the 16-bit wire format spoken by the SPI
// register peripheral: one frame per chip-select window, MSB first,
// a read/write bit followed by a 7-bit address and an 8-bit payload.
package protocol

// Frame layout constants
const (
	FrameBits = 16 // serial bits per complete frame

	rwShift   = 15
	addrShift = 8
	addrMask  = 0x7F
	dataMask  = 0xFF
)

// Frame is one decoded 16-bit transfer.
//
// Bit 15 selects write (1) or read (0); the peripheral has no response
// path, so read frames are accepted on the wire but act as no-ops.
type Frame struct {
	Write bool  // bit 15
	Addr  uint8 // bits 14:8, 7-bit register address
	Data  uint8 // bits 7:0, register payload
}

// ParseFrame splits a raw 16-bit shift register value into its fields.
func ParseFrame(raw uint16) Frame {
	return Frame{
		Write: raw>>rwShift != 0,
		Addr:  uint8(raw>>addrShift) & addrMask,
		Data:  uint8(raw & dataMask),
	}
}

// Pack assembles the raw 16-bit wire value for the frame.
func (f Frame) Pack() uint16 {
	raw := uint16(f.Addr&addrMask)<<addrShift | uint16(f.Data)
	if f.Write {
		raw |= 1 << rwShift
	}
	return raw
}

// Bits returns the frame as the bit sequence a master shifts out,
// most significant bit first.
func (f Frame) Bits() [FrameBits]bool {
	raw := f.Pack()
	var bits [FrameBits]bool
	for i := 0; i < FrameBits; i++ {
		bits[i] = raw&(1<<(FrameBits-1-i)) != 0
	}
	return bits
}

// String renders the frame in the same field order as the wire.
func (f Frame) String() string {
	rw := "read"
	if f.Write {
		rw = "write"
	}
	return rw + " addr=0x" + hexByte(f.Addr) + " data=0x" + hexByte(f.Data)
}

const hexDigits = "0123456789abcdef"

func hexByte(b uint8) string {
	return string([]byte{hexDigits[b>>4], hexDigits[b&0x0F]})
}
