// Package reminder periodically scans for due tasks.
package reminder

import (
	"context"
	"time"

	"github.com/runoshun/secbot/internal/domain"
)

// CheckFunc returns the notifications due now.
type CheckFunc func(ctx context.Context) []string

// NotifyFunc delivers a non-empty batch of notifications.
type NotifyFunc func(msgs []string)

// Poller calls a CheckFunc on a fixed interval and hands non-empty
// results to a NotifyFunc.
type Poller struct {
	check    CheckFunc
	notify   NotifyFunc
	activity domain.ActivityRecorder
	interval time.Duration
}

// Option configures a Poller.
type Option func(*Poller)

// WithActivity records the timer start in rec.
func WithActivity(rec domain.ActivityRecorder) Option {
	return func(p *Poller) {
		p.activity = rec
	}
}

// New creates a Poller. A non-positive interval uses the default.
func New(interval time.Duration, check CheckFunc, notify NotifyFunc, opts ...Option) *Poller {
	if interval <= 0 {
		interval = domain.DefaultReminderInterval
	}
	p := &Poller{
		check:    check,
		notify:   notify,
		interval: interval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Interval returns the scan interval.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Run scans every interval until ctx is done, then returns ctx.Err().
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	if p.activity != nil {
		p.activity.Record("Reminder timer started.")
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.Scan(ctx)
		}
	}
}

// Scan runs one check and notifies if anything is due.
func (p *Poller) Scan(ctx context.Context) {
	if msgs := p.check(ctx); len(msgs) > 0 {
		p.notify(msgs)
	}
}
