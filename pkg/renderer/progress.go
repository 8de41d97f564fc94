package renderer

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/sasha-s/go-deadlock"
	"golang.org/x/time/rate"
)

// Timer measures elapsed time since creation and since the last Reset
type Timer struct {
	mutex deadlock.Mutex
	now   func() time.Time
	start time.Time
	last  time.Time
}

// NewTimer starts a timer at the current time
func NewTimer() *Timer {
	return newTimerWithClock(time.Now)
}

func newTimerWithClock(now func() time.Time) *Timer {
	t := now()
	return &Timer{now: now, start: t, last: t}
}

// Elapsed returns the time since the timer was created
func (t *Timer) Elapsed() time.Duration {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.now().Sub(t.start)
}

// Delta returns the time since the last Reset
func (t *Timer) Delta() time.Duration {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.now().Sub(t.last)
}

// Reset restarts the delta measurement
func (t *Timer) Reset() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.last = t.now()
}

// Report logs elapsed and delta times with msg, then resets the delta
func (t *Timer) Report(logger zerolog.Logger, msg string) {
	t.mutex.Lock()
	now := t.now()
	elapsed, delta := now.Sub(t.start), now.Sub(t.last)
	t.last = now
	t.mutex.Unlock()

	logger.Info().
		Str("elapsed", formatSeconds(elapsed)).
		Str("delta", formatSeconds(delta)).
		Msg(msg)
}

func formatSeconds(d time.Duration) string {
	return d.Round(100 * time.Microsecond).String()
}

// Progress counts finished rows and logs at most once per interval.
// The last row is always logged.
type Progress struct {
	total   int
	done    atomic.Int64
	limiter *rate.Limiter
	timer   *Timer
	logger  zerolog.Logger
}

// NewProgress creates a progress reporter for total rows
func NewProgress(total int, interval time.Duration, timer *Timer, logger zerolog.Logger) *Progress {
	return &Progress{
		total:   total,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		timer:   timer,
		logger:  logger,
	}
}

// RowDone records a finished row. Safe for concurrent use.
func (p *Progress) RowDone() {
	done := int(p.done.Add(1))
	if done != p.total && !p.limiter.Allow() {
		return
	}

	p.logger.Info().
		Int("rows", done).
		Int("total", p.total).
		Float64("percent", 100*float64(done)/float64(p.total)).
		Dur("elapsed", p.timer.Elapsed()).
		Msg("Rendering")
}

// Done returns the number of finished rows
func (p *Progress) Done() int {
	return int(p.done.Load())
}
