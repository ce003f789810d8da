package game

import (
	"math/rand"
	"time"
)

const (
	PaddleWidth  = 15.0
	PaddleHeight = 100.0
	PaddleMargin = 20.0
	PaddleSpeed  = 6.0 // opponent step cap per tick

	BallSize   = 16.0
	BallSpeedX = 5.0
	BallSpeedY = 3.0

	SpinFactor = 0.05
)

// Field is the play area. It is fixed once the game starts.
type Field struct {
	W, H float64
}

type Ball struct {
	X, Y   float64
	VX, VY float64
}

// Paddle X never changes after construction.
type Paddle struct {
	X, Y float64
}

// State is the whole simulation. It is owned by one goroutine at a time:
// whoever drives Apply (a Loop, an ebiten Game, a test).
type State struct {
	Field    Field
	Ball     Ball
	Player   Paddle
	Opponent Paddle
	Tick     uint32

	rng *rand.Rand
}

// NewState centres the ball and both paddles. A nil rng seeds one from the clock.
func NewState(field Field, rng *rand.Rand) *State {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	midY := field.H/2 - PaddleHeight/2
	s := &State{
		Field:    field,
		Player:   Paddle{X: PaddleMargin, Y: midY},
		Opponent: Paddle{X: field.W - PaddleMargin - PaddleWidth, Y: midY},
		rng:      rng,
	}
	s.ResetBall()
	return s
}

// ResetBall puts the ball back in the centre with a fresh random direction.
func (s *State) ResetBall() {
	s.Ball = Ball{
		X:  s.Field.W/2 - BallSize/2,
		Y:  s.Field.H/2 - BallSize/2,
		VX: BallSpeedX * s.randomSign(),
		VY: BallSpeedY * s.randomSign(),
	}
}

func (s *State) randomSign() float64 {
	if s.rng.Float64() > 0.5 {
		return 1
	}
	return -1
}

// MovePointer centres the player paddle on the pointer's vertical offset
// from the top of the surface.
func (s *State) MovePointer(y float64) {
	s.Player.Y = s.clampPaddle(y - PaddleHeight/2)
}

func (s *State) clampPaddle(y float64) float64 {
	return clamp(y, 0, s.Field.H-PaddleHeight)
}
