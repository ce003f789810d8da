package game

import "math"

// Events records which corrections fired during one Update.
type Events uint8

const (
	WallBounce Events = 1 << iota
	PlayerHit
	OpponentHit
	BallReset
)

func (e Events) Has(flag Events) bool {
	return e&flag != 0
}

// Update advances the simulation one tick. Checks run in a fixed order:
// walls, player paddle, opponent paddle, out of bounds, opponent AI. A ball
// may be corrected by a wall and a paddle in the same tick.
func (s *State) Update() Events {
	var ev Events
	b := &s.Ball

	b.X += b.VX
	b.Y += b.VY

	if bounceWalls(b, s.Field) {
		ev |= WallBounce
	}

	if hitsPlayer(*b, s.Player) {
		b.VX = -b.VX
		b.X = s.Player.X + PaddleWidth
		b.VY += spin(*b, s.Player)
		ev |= PlayerHit
	}

	if hitsOpponent(*b, s.Opponent) {
		b.VX = -b.VX
		b.X = s.Opponent.X - BallSize
		b.VY += spin(*b, s.Opponent)
		ev |= OpponentHit
	}

	if outOfBounds(*b, s.Field) {
		s.ResetBall()
		ev |= BallReset
	}

	s.trackBall()
	s.Tick++
	return ev
}

// trackBall moves the opponent toward the ball's centre without overshooting
// and never faster than PaddleSpeed.
func (s *State) trackBall() {
	target := s.Ball.Y + BallSize/2 - PaddleHeight/2
	diff := target - s.Opponent.Y
	step := math.Min(math.Abs(diff), PaddleSpeed)
	if diff < 0 {
		step = -step
	}
	s.Opponent.Y = s.clampPaddle(s.Opponent.Y + step)
}
