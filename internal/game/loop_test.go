package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"pong/internal/net"
)

func TestApplyDispatchesMessages(t *testing.T) {
	s := newTestState(t)

	if ev := s.Apply(PointerMoved{Y: 60}); ev != 0 {
		t.Fatalf("pointer moves must not produce events, got %b", ev)
	}
	if s.Player.Y != 10 {
		t.Fatalf("expected player Y 10, got %v", s.Player.Y)
	}

	s.Apply(Tick{})
	if s.Tick != 1 {
		t.Fatalf("expected tick 1, got %d", s.Tick)
	}
}

func TestLoopSerialisesPointerAndTicks(t *testing.T) {
	s := newTestState(t)
	frames := make(chan net.SnapMessage, 4)

	// The ticker never fires; ticks are sent explicitly.
	loop := NewLoop(s, time.Hour, func(st *State, ev Events) {
		frames <- st.GetSnap()
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	if !loop.Send(PointerMoved{Y: 300}) {
		t.Fatal("pointer message dropped")
	}
	if !loop.Send(Tick{}) {
		t.Fatal("tick dropped")
	}

	select {
	case snap := <-frames:
		if snap.Tick != 1 {
			t.Errorf("expected tick 1, got %d", snap.Tick)
		}
		if snap.Player.Y != 250 {
			t.Errorf("expected player Y 250 in frame, got %v", snap.Player.Y)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for frame")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
	}
}

func TestLoopSendDropsWhenFull(t *testing.T) {
	loop := NewLoop(newTestState(t), time.Hour, nil)

	for i := 0; i < cap(loop.msgs); i++ {
		if !loop.Send(PointerMoved{Y: float64(i)}) {
			t.Fatalf("message %d dropped before queue was full", i)
		}
	}
	if loop.Send(Tick{}) {
		t.Fatal("expected send to report a drop on a full queue")
	}
}

func TestSnapRoundTrip(t *testing.T) {
	s := newTestState(t)
	s.MovePointer(120)
	s.Update()

	restored := FromSnap(s.Field, s.GetSnap())

	if restored.Ball.X != s.Ball.X || restored.Ball.Y != s.Ball.Y {
		t.Errorf("ball mismatch: got (%v, %v), want (%v, %v)", restored.Ball.X, restored.Ball.Y, s.Ball.X, s.Ball.Y)
	}
	if restored.Player != s.Player || restored.Opponent != s.Opponent {
		t.Errorf("paddle mismatch: got %+v %+v, want %+v %+v", restored.Player, restored.Opponent, s.Player, s.Opponent)
	}
	if restored.Tick != s.Tick {
		t.Errorf("tick mismatch: got %d, want %d", restored.Tick, s.Tick)
	}
}

func TestLoopRunReturnsDeadlineError(t *testing.T) {
	loop := NewLoop(newTestState(t), time.Millisecond, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := loop.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
	if errors.Is(err, context.Canceled) {
		t.Fatal("a deadline must not look like a plain cancel")
	}
}
