package logger

import "sync"

type state int

const (
	stateBuffering state = iota
	stateDraining
	stateLive
)

func (s state) String() string {
	switch s {
	case stateBuffering:
		return "buffering"
	case stateDraining:
		return "draining"
	}
	return "live"
}

// Dispatcher is usable before the persistent sink exists. Until Resolve is
// called, entries are either buffered in order or, with buffering disabled,
// written to the fallback sink. Resolve replays the buffer into the sink and
// then forwards every later entry directly.
type Dispatcher struct {
	mu        sync.Mutex
	state     state
	useBuffer bool
	buffer    []Entry
	sink      Sink
	fallback  Sink
}

func NewDispatcher(fallback Sink, useBuffer bool) *Dispatcher {
	return &Dispatcher{fallback: fallback, useBuffer: useBuffer}
}

func (d *Dispatcher) write(e Entry) {
	d.mu.Lock()
	switch {
	case d.state == stateLive:
		sink := d.sink
		d.mu.Unlock()
		sink.Write(e)
		return
	case d.state == stateDraining || d.useBuffer:
		d.buffer = append(d.buffer, e)
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()
	d.fallback.Write(e)
}

// Resolve hands the dispatcher its real sink. Entries logged while the
// buffer is being replayed are queued behind it, so order is preserved.
// Calling Resolve again only swaps the sink.
func (d *Dispatcher) Resolve(sink Sink) {
	d.mu.Lock()
	if d.state != stateBuffering {
		d.sink = sink
		d.mu.Unlock()
		return
	}
	d.state = stateDraining
	d.sink = sink
	for {
		pending := d.buffer
		d.buffer = nil
		if len(pending) == 0 {
			d.state = stateLive
			d.mu.Unlock()
			return
		}
		d.mu.Unlock()
		for _, e := range pending {
			sink.Write(e)
		}
		d.mu.Lock()
	}
}

func (d *Dispatcher) State() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.String()
}

func (d *Dispatcher) Buffered() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.buffer)
}

func (d *Dispatcher) Debug(msg string, params ...any) {
	d.write(Entry{Level: LevelDebug, Message: msg, Params: params})
}

func (d *Dispatcher) Verbose(msg string, params ...any) {
	d.write(Entry{Level: LevelVerbose, Message: msg, Params: params})
}

func (d *Dispatcher) Log(msg string, params ...any) {
	d.write(Entry{Level: LevelLog, Message: msg, Params: params})
}

func (d *Dispatcher) Warn(msg string, params ...any) {
	d.write(Entry{Level: LevelWarn, Message: msg, Params: params})
}

func (d *Dispatcher) Error(msg string, params ...any) {
	d.write(Entry{Level: LevelError, Message: msg, Params: params})
}

func (d *Dispatcher) Fatal(msg string, params ...any) {
	d.write(Entry{Level: LevelFatal, Message: msg, Params: params})
}
