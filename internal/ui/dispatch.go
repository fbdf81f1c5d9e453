package ui

import "sync"

// dispatcher delivers controller callbacks in the order they were posted,
// one at a time, on a worker goroutine. Update never blocks on the
// controller, and the controller may call back into the view.
type dispatcher struct {
	mu      sync.Mutex
	ctrl    Controller
	queue   []func(Controller)
	wake    chan struct{}
	done    chan struct{}
	started bool
	closing bool
}

func newDispatcher() *dispatcher {
	return &dispatcher{wake: make(chan struct{}, 1), done: make(chan struct{})}
}

func (d *dispatcher) setController(c Controller) {
	d.mu.Lock()
	d.ctrl = c
	d.mu.Unlock()
}

func (d *dispatcher) post(fn func(Controller)) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	if d.ctrl == nil {
		d.mu.Unlock()
		return
	}
	d.queue = append(d.queue, fn)
	if !d.started {
		d.started = true
		go d.loop(d.done)
	}
	d.mu.Unlock()
	d.signal()
}

func (d *dispatcher) signal() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *dispatcher) loop(done chan struct{}) {
	defer close(done)
	for {
		d.mu.Lock()
		batch := d.queue
		d.queue = nil
		ctrl := d.ctrl
		closing := d.closing
		d.mu.Unlock()

		for _, fn := range batch {
			fn(ctrl)
		}
		if len(batch) > 0 {
			continue
		}
		if closing {
			return
		}
		<-d.wake
	}
}

// drain waits until every posted callback has been delivered and stops the
// worker. Callbacks posted afterwards start a new one. It must not be
// called from a controller callback.
func (d *dispatcher) drain() {
	d.mu.Lock()
	if !d.started {
		d.mu.Unlock()
		return
	}
	d.closing = true
	done := d.done
	d.mu.Unlock()

	d.signal()
	<-done

	d.mu.Lock()
	d.closing = false
	d.started = false
	d.done = make(chan struct{})
	if len(d.queue) > 0 {
		d.started = true
		go d.loop(d.done)
	}
	d.mu.Unlock()
	if d.started {
		d.signal()
	}
}
