package grid

import (
	"sync"
	"time"

	"github.com/five82/tablegrid/internal/clock"
)

// queue holds deferred calls until the owner's thread drains them.
type queue struct {
	mu    sync.Mutex
	calls []func()
}

func (q *queue) post(fn func()) {
	q.mu.Lock()
	q.calls = append(q.calls, fn)
	q.mu.Unlock()
}

// drain runs the queued calls, including calls queued while draining, and
// reports how many ran.
func (q *queue) drain() int {
	n := 0
	for {
		q.mu.Lock()
		calls := q.calls
		q.calls = nil
		q.mu.Unlock()
		if len(calls) == 0 {
			return n
		}
		for _, fn := range calls {
			fn()
			n++
		}
	}
}

func (q *queue) clear() {
	q.mu.Lock()
	q.calls = nil
	q.mu.Unlock()
}

// Throttle runs fn at most once per limit. The first call runs at once;
// later calls collapse into one trailing call that runs no sooner than
// limit after the previous run.
type Throttle struct {
	clock clock.Clock
	limit time.Duration
	fn    func()
	post  func(func())

	mu      sync.Mutex
	lastRan time.Time
	ran     bool
	timer   clock.Timer
	stopped bool
}

// NewThrottle returns a Throttle whose trailing calls are handed to post.
// A nil post runs them on the timer goroutine.
func NewThrottle(clk clock.Clock, limit time.Duration, post func(func()), fn func()) *Throttle {
	if post == nil {
		post = func(f func()) { f() }
	}
	return &Throttle{clock: clk, limit: limit, fn: fn, post: post}
}

func (t *Throttle) Call() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	if !t.ran {
		t.ran = true
		t.lastRan = t.clock.Now()
		t.mu.Unlock()
		t.fn()
		return
	}
	if t.timer != nil {
		t.timer.Stop()
	}
	wait := max(0, t.limit-t.clock.Now().Sub(t.lastRan))
	t.timer = t.clock.AfterFunc(wait, t.fire)
	t.mu.Unlock()
}

func (t *Throttle) fire() {
	t.mu.Lock()
	t.timer = nil
	if t.stopped || t.clock.Now().Sub(t.lastRan) < t.limit {
		t.mu.Unlock()
		return
	}
	t.lastRan = t.clock.Now()
	t.mu.Unlock()
	t.post(t.fn)
}

// Stop cancels a pending trailing call. Later calls are ignored.
func (t *Throttle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// Debounce runs fn once calls have stopped for delay.
type Debounce struct {
	clock clock.Clock
	delay time.Duration
	fn    func()
	post  func(func())

	mu      sync.Mutex
	timer   clock.Timer
	stopped bool
}

// NewDebounce returns a Debounce whose calls are handed to post. A nil
// post runs them on the timer goroutine.
func NewDebounce(clk clock.Clock, delay time.Duration, post func(func()), fn func()) *Debounce {
	if post == nil {
		post = func(f func()) { f() }
	}
	return &Debounce{clock: clk, delay: delay, fn: fn, post: post}
}

func (d *Debounce) Call() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.clock.AfterFunc(d.delay, d.fire)
}

func (d *Debounce) fire() {
	d.mu.Lock()
	d.timer = nil
	stopped := d.stopped
	d.mu.Unlock()
	if !stopped {
		d.post(d.fn)
	}
}

// Stop cancels a pending call. Later calls are ignored.
func (d *Debounce) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
