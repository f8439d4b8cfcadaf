// SPDX-License-Identifier: EPL-2.0

package engine

import "sync"

// Dispatcher runs posted functions one at a time, in order, on its own
// goroutine. Engines use it to deliver events from audio callbacks
// without re-entering the caller or blocking the audio thread.
type Dispatcher struct {
	listeners *Listeners

	mtx    sync.Mutex
	queue  []func()
	closed bool
	wake   chan struct{}
	done   chan struct{}
}

func NewDispatcher(ls *Listeners) *Dispatcher {
	d := &Dispatcher{
		listeners: ls,
		wake:      make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
	go d.run()
	return d
}

// Post queues fn. It never blocks. Posts after Close are dropped.
func (d *Dispatcher) Post(fn func()) {
	d.mtx.Lock()
	if d.closed {
		d.mtx.Unlock()
		return
	}
	d.queue = append(d.queue, fn)
	d.mtx.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Emit queues delivery of e to the listeners.
func (d *Dispatcher) Emit(e Event) {
	d.Post(func() { d.listeners.Emit(e) })
}

// Close delivers what is already queued, then stops the goroutine.
// It must not be called from a posted function.
func (d *Dispatcher) Close() {
	d.mtx.Lock()
	if d.closed {
		d.mtx.Unlock()
		<-d.done
		return
	}
	d.closed = true
	d.mtx.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for range d.wake {
		for {
			d.mtx.Lock()
			if len(d.queue) == 0 {
				closed := d.closed
				d.mtx.Unlock()
				if closed {
					return
				}
				break
			}
			fn := d.queue[0]
			d.queue[0] = nil
			d.queue = d.queue[1:]
			d.mtx.Unlock()

			fn()
		}
	}
}
