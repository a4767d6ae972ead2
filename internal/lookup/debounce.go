package lookup

import (
	"sync/atomic"
	"time"
)

// DefaultDebounce is the quiet period before a keystroke triggers a lookup.
const DefaultDebounce = 400 * time.Millisecond

// Debouncer hands out monotonically increasing tags. The UI schedules a tick
// per keystroke carrying Next(); when the tick fires only a tag that is still
// Settled runs the lookup, so a burst of typing costs one request.
type Debouncer struct {
	latest atomic.Uint64
	delay  time.Duration
}

// NewDebouncer returns a Debouncer with the given quiet period; non-positive
// values use DefaultDebounce.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Delay is the configured quiet period.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Next supersedes every tag issued so far.
func (d *Debouncer) Next() uint64 {
	return d.latest.Add(1)
}

// Settled reports whether tag is still the most recent one.
func (d *Debouncer) Settled(tag uint64) bool {
	return tag != 0 && d.latest.Load() == tag
}

// Cancel invalidates any outstanding tag.
func (d *Debouncer) Cancel() {
	d.latest.Add(1)
}
