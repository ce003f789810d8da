package game

// Axis-aligned rectangle checks between the ball and the field or a paddle.

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// overlapsY reports whether the ball's vertical span touches the paddle's.
func overlapsY(b Ball, p Paddle) bool {
	return b.Y+BallSize >= p.Y && b.Y <= p.Y+PaddleHeight
}

// hitsPlayer: ball's left edge at or past the player paddle's right edge.
func hitsPlayer(b Ball, p Paddle) bool {
	return b.X <= p.X+PaddleWidth && overlapsY(b, p)
}

// hitsOpponent: ball's right edge at or past the opponent paddle's left edge.
func hitsOpponent(b Ball, p Paddle) bool {
	return b.X+BallSize >= p.X && overlapsY(b, p)
}

// spin is the vertical velocity added on contact, proportional to how far
// the ball's centre is from the paddle's centre. Not clamped.
func spin(b Ball, p Paddle) float64 {
	hitPos := (b.Y + BallSize/2) - (p.Y + PaddleHeight/2)
	return hitPos * SpinFactor
}

// bounceWalls flips VY and pins the ball to the wall it crossed.
func bounceWalls(b *Ball, f Field) bool {
	if b.Y > 0 && b.Y+BallSize < f.H {
		return false
	}
	b.VY = -b.VY
	if b.Y <= 0 {
		b.Y = 0
	} else {
		b.Y = f.H - BallSize
	}
	return true
}

func outOfBounds(b Ball, f Field) bool {
	return b.X < -BallSize || b.X > f.W+BallSize
}
