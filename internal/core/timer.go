package core

import "time"

// Pacer spaces events at a fixed rate. The caller supplies the clock so the
// pacing is testable.
type Pacer struct {
	interval time.Duration
	pending  time.Duration
	last     time.Time
	maxBurst int
}

// NewPacer returns a pacer firing perSecond times a second, never more than
// maxBurst at once. perSecond <= 0 disables it.
func NewPacer(perSecond, maxBurst int) *Pacer {
	if maxBurst < 1 {
		maxBurst = 1
	}
	p := &Pacer{maxBurst: maxBurst}
	p.SetRate(perSecond)
	return p
}

// SetRate changes the rate and drops any backlog.
func (p *Pacer) SetRate(perSecond int) {
	p.interval = 0
	if perSecond > 0 {
		p.interval = time.Second / time.Duration(perSecond)
	}
	p.Reset()
}

// Reset forgets elapsed time; the next Due starts a fresh interval.
func (p *Pacer) Reset() {
	p.pending = 0
	p.last = time.Time{}
}

// Due reports how many events fell due since the previous call.
func (p *Pacer) Due(now time.Time) int {
	if p.interval <= 0 {
		return 0
	}
	if p.last.IsZero() {
		p.last = now
		return 0
	}
	if now.After(p.last) {
		p.pending += now.Sub(p.last)
	}
	p.last = now
	n := int(p.pending / p.interval)
	if n > p.maxBurst {
		p.pending = 0
		return p.maxBurst
	}
	p.pending -= time.Duration(n) * p.interval
	return n
}
