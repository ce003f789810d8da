package game

import "pong/internal/net"

func (s *State) FieldInfo() net.FieldInfo {
	return net.FieldInfo{
		W:            s.Field.W,
		H:            s.Field.H,
		PaddleWidth:  PaddleWidth,
		PaddleHeight: PaddleHeight,
		BallSize:     BallSize,
	}
}

// GetSnap captures what a remote surface needs to draw the current frame.
func (s *State) GetSnap() net.SnapMessage {
	return net.SnapMessage{
		Type:     "snap",
		Tick:     s.Tick,
		Ball:     net.Rect{X: s.Ball.X, Y: s.Ball.Y, W: BallSize, H: BallSize},
		Player:   paddleRect(s.Player),
		Opponent: paddleRect(s.Opponent),
	}
}

func paddleRect(p Paddle) net.Rect {
	return net.Rect{X: p.X, Y: p.Y, W: PaddleWidth, H: PaddleHeight}
}

// FromSnap rebuilds a drawable State from a snapshot. Velocities are not
// on the wire, so the result is only fit for rendering.
func FromSnap(field Field, snap net.SnapMessage) *State {
	return &State{
		Field:    field,
		Ball:     Ball{X: snap.Ball.X, Y: snap.Ball.Y},
		Player:   Paddle{X: snap.Player.X, Y: snap.Player.Y},
		Opponent: Paddle{X: snap.Opponent.X, Y: snap.Opponent.Y},
		Tick:     snap.Tick,
	}
}
