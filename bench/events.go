// Package bench provides host-side stimulus for the peripheral model: a
// tick-based event queue for scripted pin waveforms and a bit-bang SPI
// master that drives complete transactions.
package bench

import "spislave/core"

// Event handler return values.
const (
	Done       = 0
	Reschedule = 1
)

// Event is a scheduled change to the simulated pin state.
type Event struct {
	WakeTick uint64
	Handler  func(*Event, *core.Pins) uint8
	Next     *Event
}

// Queue dispatches pin events against a simulated clock and ticks a
// peripheral once per tick with the resulting pin levels. Events due on
// the same tick fire in insertion order before the tick is applied.
type Queue struct {
	head *Event
	now  uint64
	pins core.Pins
	dev  *core.Peripheral
}

// NewQueue creates a queue driving dev, with the bus at idle levels.
func NewQueue(dev *core.Peripheral) *Queue {
	return &Queue{
		dev:  dev,
		pins: core.Pins{NCS: true},
	}
}

// Schedule adds an event to the queue in sorted wake order.
func (q *Queue) Schedule(e *Event) {
	if q.head == nil || e.WakeTick < q.head.WakeTick {
		e.Next = q.head
		q.head = e
		return
	}

	cur := q.head
	for cur.Next != nil && cur.Next.WakeTick <= e.WakeTick {
		cur = cur.Next
	}
	e.Next = cur.Next
	cur.Next = e
}

// At schedules a one-shot pin mutation at an absolute tick.
func (q *Queue) At(tick uint64, fn func(pins *core.Pins)) {
	q.Schedule(&Event{
		WakeTick: tick,
		Handler: func(_ *Event, pins *core.Pins) uint8 {
			fn(pins)
			return Done
		},
	})
}

// Run advances the simulation by the given number of ticks, firing due
// events and clocking the peripheral once per tick.
func (q *Queue) Run(ticks uint64) {
	for end := q.now + ticks; q.now < end; q.now++ {
		q.dispatch()
		q.dev.Tick(q.pins)
	}
}

// dispatch fires every event due at the current tick. A handler that
// returns Reschedule is reinserted at its updated WakeTick.
func (q *Queue) dispatch() {
	for q.head != nil && q.head.WakeTick <= q.now {
		e := q.head
		q.head = e.Next
		e.Next = nil

		if e.Handler(e, &q.pins) == Reschedule {
			q.Schedule(e)
		}
	}
}

// Now returns the current simulation tick.
func (q *Queue) Now() uint64 { return q.now }

// Pins returns the current simulated pin levels.
func (q *Queue) Pins() core.Pins { return q.pins }
