package store

import "sync"

// observable gives a store an explicit subscribe/notify signal. Listeners run
// after each state transition, outside the store's state lock; there is no
// dependency tracking, only notification-on-mutation.
type observable struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func()
}

// Subscribe registers fn to run after every state change. The returned
// function cancels the subscription.
func (o *observable) Subscribe(fn func()) func() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.listeners == nil {
		o.listeners = map[int]func(){}
	}
	id := o.nextID
	o.nextID++
	o.listeners[id] = fn
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.listeners, id)
	}
}

func (o *observable) notify() {
	o.mu.Lock()
	fns := make([]func(), 0, len(o.listeners))
	for _, fn := range o.listeners {
		fns = append(fns, fn)
	}
	o.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
