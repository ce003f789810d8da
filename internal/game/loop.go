package game

import (
	"context"
	"time"
)

// Message is an input to the simulation. Only the dispatcher mutates State,
// so pointer moves and ticks never interleave.
type Message interface {
	isMessage()
}

// PointerMoved carries the pointer's offset from the top of the surface.
type PointerMoved struct {
	Y float64
}

type Tick struct{}

func (PointerMoved) isMessage() {}
func (Tick) isMessage()         {}

// Apply handles one message to completion. Only Tick produces events.
func (s *State) Apply(msg Message) Events {
	switch m := msg.(type) {
	case PointerMoved:
		s.MovePointer(m.Y)
	case Tick:
		return s.Update()
	}
	return 0
}

// FrameFunc runs after every tick on the loop goroutine. It must not keep
// the state pointer past its return.
type FrameFunc func(s *State, ev Events)

// Loop owns a State and serialises pointer messages and ticks onto a
// single goroutine.
type Loop struct {
	state    *State
	msgs     chan Message
	interval time.Duration
	frame    FrameFunc
}

func NewLoop(state *State, interval time.Duration, frame FrameFunc) *Loop {
	return &Loop{
		state:    state,
		msgs:     make(chan Message, 64),
		interval: interval,
		frame:    frame,
	}
}

// Send queues a message for the loop. It reports false when the queue is
// full and the message was dropped.
func (l *Loop) Send(msg Message) bool {
	select {
	case l.msgs <- msg:
		return true
	default:
		return false
	}
}

// Run dispatches until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-l.msgs:
			l.dispatch(msg)
		case <-ticker.C:
			l.dispatch(Tick{})
		}
	}
}

func (l *Loop) dispatch(msg Message) {
	ev := l.state.Apply(msg)
	if _, ok := msg.(Tick); ok && l.frame != nil {
		l.frame(l.state, ev)
	}
}
