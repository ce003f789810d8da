package client

import (
	"image/color"

	"pong/internal/game"
)

const (
	DashLength = 10.0
	DashGap    = 15.0
)

var (
	Background   = color.RGBA{0, 0, 0, 255}
	DividerColor = color.RGBA{0xaa, 0xaa, 0xaa, 255}
	PaddleColor  = color.RGBA{0xff, 0xff, 0xff, 255}
	BallColor    = color.RGBA{0xff, 0xff, 0x33, 255}
)

// Canvas is a 2D drawing target in field units.
type Canvas interface {
	Clear()
	FillRect(x, y, w, h float32, c color.Color)
	StrokeLine(x0, y0, x1, y1, width float32, c color.Color)
}

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Draw paints one frame: clear, centre divider, paddles, ball. The state is
// only read.
func (r *Renderer) Draw(c Canvas, s *game.State) {
	c.Clear()

	r.drawDivider(c, float32(s.Field.W), float32(s.Field.H))

	c.FillRect(float32(s.Player.X), float32(s.Player.Y), game.PaddleWidth, game.PaddleHeight, PaddleColor)
	c.FillRect(float32(s.Opponent.X), float32(s.Opponent.Y), game.PaddleWidth, game.PaddleHeight, PaddleColor)

	c.FillRect(float32(s.Ball.X), float32(s.Ball.Y), game.BallSize, game.BallSize, BallColor)
}

// drawDivider strokes a dashed vertical line down the middle.
func (r *Renderer) drawDivider(c Canvas, w, h float32) {
	x := w / 2
	for y := float32(0); y < h; y += DashLength + DashGap {
		end := y + DashLength
		if end > h {
			end = h
		}
		c.StrokeLine(x, y, x, end, 1, DividerColor)
	}
}
