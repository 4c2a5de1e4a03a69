//go:build rp2040

package rp2040

// PIO frame-capture backend
// Runs the same frame capture as the core model on RP2040 silicon: one
// PIO state machine shifts COPI on every SCLK rising edge while nCS is
// low and autopushes each completed 16-bit frame to the RX FIFO. The
// frames drain through the same decoder/register-file path as the host
// model. One known divergence: the FIFO has no length check, so a
// window longer than 16 bits still delivers its first 16 bits as a
// frame where the model discards the whole window.

import (
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"

	"spislave/core"
	"spislave/protocol"
)

// Pin layout relative to the state machine's input base:
//
//	base+0: COPI
//	base+1: SCLK
//	base+2: nCS
const (
	copiOffset = 0
	sclkOffset = 1
	ncsOffset  = 2
)

// buildCaptureProgram assembles the frame-capture program.
//
// Program flow:
//  1. Wait for nCS to go low (frame window opens)
//  2. Wait for SCLK rising edge
//  3. Shift one COPI bit in (autopush fires at 16 bits)
//  4. Wait for SCLK falling edge, loop to 2
//
// Only exact 16-bit frames ever reach the RX FIFO; the Go side restarts
// the state machine on nCS deassertion so leftover bits from a short or
// long window never bleed into the next frame. That restart is the
// hardware equivalent of the model clearing its bit counter while chip
// select is high.
func buildCaptureProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.WaitPin(false, ncsOffset).Encode(), // 0: wait 0 pin 2 (nCS low)
		// bit_loop:
		asm.WaitPin(true, sclkOffset).Encode(),  // 1: wait 1 pin 1 (SCLK rise)
		asm.In(rp2pio.InSrcPins, 1).Encode(),    // 2: in pins, 1 (sample COPI)
		asm.WaitPin(false, sclkOffset).Encode(), // 3: wait 0 pin 1 (SCLK fall)
		asm.Jmp(1, rp2pio.JmpAlways).Encode(),   // 4: jmp bit_loop
		// .wrap
	}
}

const captureProgramOrigin = 0 // jumps are absolute, load at offset 0

// CaptureBackend couples a PIO state machine to the shared register
// decoder.
type CaptureBackend struct {
	pio     *rp2pio.PIO
	sm      rp2pio.StateMachine
	basePin machine.Pin
	ncsPin  machine.Pin
	offset  uint8
	inFrame bool
	regs    core.RegisterFile
	decoded protocol.Frame
}

// NewCaptureBackend creates a backend on the given PIO block and state
// machine number.
func NewCaptureBackend(pioNum, smNum uint8) *CaptureBackend {
	pioHW := rp2pio.PIO0
	if pioNum != 0 {
		pioHW = rp2pio.PIO1
	}

	return &CaptureBackend{
		pio: pioHW,
		sm:  pioHW.StateMachine(smNum),
	}
}

// Init loads the capture program and starts the state machine. basePin
// is the COPI pin; SCLK and nCS must occupy the two pins above it.
func (b *CaptureBackend) Init(basePin uint8) error {
	b.basePin = machine.Pin(basePin)
	b.ncsPin = machine.Pin(basePin + ncsOffset)

	b.sm.TryClaim()

	program := buildCaptureProgram()
	offset, err := b.pio.AddProgram(program, captureProgramOrigin)
	if err != nil {
		return err
	}
	b.offset = offset

	for i := uint8(0); i < 3; i++ {
		machine.Pin(basePin + i).Configure(machine.PinConfig{Mode: b.pio.PinMode()})
	}

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetInPins(b.basePin)

	// Shift left so the first bit on the wire lands in the frame's MSB,
	// autopush once 16 bits have accumulated.
	cfg.SetInShift(false, true, protocol.FrameBits)

	cfg.SetWrap(offset+uint8(len(program))-1, offset)

	// Full speed clock - the program is edge driven, not timed.
	cfg.SetClkDivIntFrac(1, 0)

	b.sm.Init(offset, cfg)
	b.sm.SetEnabled(true)

	return nil
}

// Poll drains completed frames from the RX FIFO into the register file
// and resynchronizes the state machine at the end of each chip-select
// window. Call it from the main loop at least once per window.
func (b *CaptureBackend) Poll() {
	for b.sm.RxFIFOLevel() > 0 {
		raw := uint16(b.sm.RxGet())

		b.decoded = protocol.ParseFrame(raw)
		if b.decoded.Write {
			b.regs.Write(b.decoded.Addr, b.decoded.Data)
		}
	}

	csActive := !b.ncsPin.Get()
	if b.inFrame && !csActive {
		// Window closed: discard any partial shift so the next window
		// starts from a clean ISR, and rewind to the nCS wait. The
		// program is loaded at origin 0, so the jump target is
		// instruction 0.
		asm := rp2pio.AssemblerV0{SidesetBits: 0}
		b.sm.SetEnabled(false)
		b.sm.Restart()
		b.sm.Exec(asm.Jmp(captureProgramOrigin, rp2pio.JmpAlways).Encode())
		b.sm.SetEnabled(true)
	}
	b.inFrame = csActive
}

// Registers returns a snapshot of the register file.
func (b *CaptureBackend) Registers() core.RegisterFile { return b.regs }

// LastFrame returns the most recently decoded frame.
func (b *CaptureBackend) LastFrame() protocol.Frame { return b.decoded }
