package boundary

import "sync"

// RuntimeFunc stands in for the native runtime: it receives a command
// and returns the reply body.
type RuntimeFunc func(kind string, body []byte) ([]byte, error)

// Loopback is an in-process transport. Commands are answered by a
// RuntimeFunc and broadcast events are injected with Emit. Replies and
// sink calls still run on a single dispatch goroutine, preserving the
// ordering guarantees of the websocket transport.
type Loopback struct {
	runtime RuntimeFunc
	sink    EventSink

	tasks chan func()
	done  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup
}

// NewLoopback creates a loopback transport. Either argument may be nil
// when the test exercises only one direction.
func NewLoopback(runtime RuntimeFunc, sink EventSink) *Loopback {
	l := &Loopback{
		runtime: runtime,
		sink:    sink,
		tasks:   make(chan func(), 64),
		done:    make(chan struct{}),
	}
	go func() {
		for {
			select {
			case fn := <-l.tasks:
				fn()
				l.wg.Done()
			case <-l.done:
				return
			}
		}
	}()
	return l
}

func (l *Loopback) dispatch(fn func()) {
	l.wg.Add(1)
	select {
	case l.tasks <- fn:
	case <-l.done:
		l.wg.Done()
	}
}

// Call implements Caller.
func (l *Loopback) Call(kind string, body any, reply ReplyFunc) error {
	raw, err := encodeBody(body)
	if err != nil {
		return err
	}
	if l.runtime == nil {
		return ErrNotConnected
	}
	l.dispatch(func() {
		out, rerr := l.runtime(kind, raw)
		reply(out, rerr)
	})
	return nil
}

// Notify implements Caller.
func (l *Loopback) Notify(kind string, body any) error {
	raw, err := encodeBody(body)
	if err != nil {
		return err
	}
	if l.runtime == nil {
		return ErrNotConnected
	}
	l.dispatch(func() { l.runtime(kind, raw) })
	return nil
}

// Emit injects a broadcast event frame, as the runtime would.
func (l *Loopback) Emit(kind string, body []byte) {
	if l.sink == nil {
		return
	}
	l.dispatch(func() { l.sink.HandleMessage(kind, body) })
}

// Drain blocks until every dispatched task has run.
func (l *Loopback) Drain() { l.wg.Wait() }

// Close stops the dispatch goroutine.
func (l *Loopback) Close() error {
	l.once.Do(func() { close(l.done) })
	return nil
}
