package bench

import (
	"testing"

	"spislave/core"
	"spislave/protocol"
)

func TestQueueFiresInOrder(t *testing.T) {
	q := NewQueue(core.New())

	var order []int
	record := func(n int) func(pins *core.Pins) {
		return func(*core.Pins) { order = append(order, n) }
	}

	// Schedule out of order.
	q.At(30, record(3))
	q.At(10, record(1))
	q.At(20, record(2))
	q.At(10, record(11)) // same tick, after the first

	q.Run(40)

	want := []int{1, 11, 2, 3}
	if len(order) != len(want) {
		t.Fatalf("fired %d events, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("firing order %v, want %v", order, want)
		}
	}
	if q.Now() != 40 {
		t.Errorf("Now() = %d, want 40", q.Now())
	}
}

func TestQueueReschedule(t *testing.T) {
	q := NewQueue(core.New())

	// A free-running toggler: flip SCLK every 5 ticks, 4 times total.
	fires := 0
	q.Schedule(&Event{
		WakeTick: 5,
		Handler: func(e *Event, pins *core.Pins) uint8 {
			pins.SCLK = !pins.SCLK
			fires++
			if fires == 4 {
				return Done
			}
			e.WakeTick += 5
			return Reschedule
		},
	})

	q.Run(30)

	if fires != 4 {
		t.Errorf("toggler fired %d times, want 4", fires)
	}
	if q.Pins().SCLK {
		t.Error("an even number of toggles should leave SCLK low")
	}
}

func TestQueueScriptedTransaction(t *testing.T) {
	// Script a full write frame as absolute-tick pin events, the way a
	// captured waveform replays.
	dev := core.New()
	q := NewQueue(dev)

	const half = 4
	frame := protocol.Frame{Write: true, Addr: core.AddrPwmDutyCycle, Data: 0x9C}
	bits := frame.Bits()

	tick := uint64(8) // idle lead-in
	q.At(tick, func(pins *core.Pins) { pins.NCS = false })
	tick += half

	for i := range bits {
		bit := bits[i]
		q.At(tick, func(pins *core.Pins) {
			pins.SCLK = false
			pins.COPI = bit
		})
		tick += half
		q.At(tick, func(pins *core.Pins) { pins.SCLK = true })
		tick += half
	}

	q.At(tick, func(pins *core.Pins) { pins.SCLK = false })
	tick += half
	q.At(tick, func(pins *core.Pins) {
		pins.NCS = true
		pins.COPI = false
	})

	q.Run(tick + 16)

	want := core.RegisterFile{PwmDutyCycle: 0x9C}
	if dev.Registers() != want {
		t.Errorf("registers = %+v, want %+v", dev.Registers(), want)
	}
	if dev.LastFrame() != frame {
		t.Errorf("decoded frame = %+v, want %+v", dev.LastFrame(), frame)
	}
}
