package tracker

import "time"

// pacer enforces the minimum interval between outbound requests using slot
// reservation: each call claims the next permissible timestamp before its
// request executes, so variable request duration cannot drift the schedule.
// Not safe for concurrent use; the client's queue mutex serializes access.
type pacer struct {
	clock       Clock
	interval    time.Duration
	nextAllowed time.Time
}

func newPacer(clock Clock, interval time.Duration) *pacer {
	return &pacer{clock: clock, interval: interval}
}

// reserve blocks until the next slot opens, then claims it.
func (p *pacer) reserve() {
	now := p.clock.Now()
	if wait := p.nextAllowed.Sub(now); wait > 0 {
		p.clock.Sleep(wait)
		now = p.clock.Now()
	}
	if now.After(p.nextAllowed) {
		p.nextAllowed = now.Add(p.interval)
	} else {
		p.nextAllowed = p.nextAllowed.Add(p.interval)
	}
}

// penalize sleeps for d and pushes the next slot out by the same amount, so
// calls queued behind a throttled one also respect the backoff.
func (p *pacer) penalize(d time.Duration) {
	p.nextAllowed = p.nextAllowed.Add(d)
	p.clock.Sleep(d)
}
