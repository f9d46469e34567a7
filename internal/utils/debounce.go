// Package utils holds small helpers shared by the hosts.
package utils

import (
	"sync"
	"time"
)

// Debouncer runs only the last of a burst of calls, once the burst has
// been quiet for the given duration.
type Debouncer struct {
	mutex sync.Mutex
	timer *time.Timer
	fired int
}

// Debounce schedules fn after duration, cancelling any pending call. fn
// runs on its own goroutine.
func (d *Debouncer) Debounce(duration time.Duration, fn func()) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(duration, func() {
		d.mutex.Lock()
		d.timer = nil
		d.fired++
		d.mutex.Unlock()
		fn()
	})
}

// Stop cancels a pending call. It reports whether one was pending.
func (d *Debouncer) Stop() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.timer == nil {
		return false
	}
	stopped := d.timer.Stop()
	d.timer = nil
	return stopped
}

// Fired returns how many scheduled calls have run.
func (d *Debouncer) Fired() int {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.fired
}
