package cpu

import "time"

// TimerPeriod is the interval at which the delay and sound timers count down.
const TimerPeriod = time.Second / 60

// Timer converts elapsed wall-clock time into 60Hz ticks, independently
// of how many instructions run in between.
type Timer struct {
	now      func() time.Time
	lastTick time.Time
}

// NewTimer returns a Timer whose first tick is one period after now().
func NewTimer(now func() time.Time) *Timer {
	if now == nil {
		now = time.Now
	}
	return &Timer{now: now, lastTick: now()}
}

// Elapsed returns the number of whole periods since the previous tick and
// moves the tick reference forward by exactly that many periods, so the
// fractional remainder carries over and no period is counted twice.
func (t *Timer) Elapsed() int {
	since := t.now().Sub(t.lastTick)
	if since < TimerPeriod {
		return 0
	}
	ticks := int(since / TimerPeriod)
	t.lastTick = t.lastTick.Add(time.Duration(ticks) * TimerPeriod)
	return ticks
}

// Restart discards any partial period.
func (t *Timer) Restart() {
	t.lastTick = t.now()
}

// countDown decrements a timer register by ticks, stopping at zero.
func countDown(register byte, ticks int) byte {
	if ticks >= int(register) {
		return 0
	}
	return register - byte(ticks)
}
