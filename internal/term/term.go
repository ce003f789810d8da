// Package term plays the game in a terminal. Field units are scaled onto the
// screen's cell grid; the mouse row drives the player paddle.
package term

import (
	"context"
	"errors"
	"image/color"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"pong/internal/client"
	"pong/internal/game"
)

// Canvas maps field coordinates onto a tcell screen.
type Canvas struct {
	Screen tcell.Screen
	Field  game.Field
}

func (c Canvas) scale() (sx, sy float64) {
	cols, rows := c.Screen.Size()
	return float64(cols) / c.Field.W, float64(rows) / c.Field.H
}

func (c Canvas) Clear() {
	c.Screen.Clear()
}

// FillRect paints every cell whose centre lies inside the rectangle, and
// at least one cell so small shapes never vanish.
func (c Canvas) FillRect(x, y, w, h float32, clr color.Color) {
	sx, sy := c.scale()
	style := tcell.StyleDefault.Background(tcell.FromImageColor(clr))

	x0 := int(math.Round(float64(x) * sx))
	y0 := int(math.Round(float64(y) * sy))
	x1 := int(math.Round(float64(x+w) * sx))
	y1 := int(math.Round(float64(y+h) * sy))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	for row := y0; row < y1; row++ {
		for col := x0; col < x1; col++ {
			c.Screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

// StrokeLine steps along the line one cell at a time. Width is ignored; a
// cell is the thinnest thing a terminal can draw.
func (c Canvas) StrokeLine(x0, y0, x1, y1, _ float32, clr color.Color) {
	sx, sy := c.scale()
	style := tcell.StyleDefault.Foreground(tcell.FromImageColor(clr))

	cx0, cy0 := float64(x0)*sx, float64(y0)*sy
	cx1, cy1 := float64(x1)*sx, float64(y1)*sy
	steps := int(math.Max(math.Abs(cx1-cx0), math.Abs(cy1-cy0)))

	glyph := '│'
	if math.Abs(cx1-cx0) > math.Abs(cy1-cy0) {
		glyph = '─'
	}

	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		col := int(cx0 + (cx1-cx0)*t)
		row := int(cy0 + (cy1-cy0)*t)
		c.Screen.SetContent(col, row, glyph, nil, style)
	}
}

// PointerY converts a mouse row to the vertical field offset of that row's
// centre.
func PointerY(row, rows int, field game.Field) float64 {
	if rows <= 0 {
		return 0
	}
	return (float64(row) + 0.5) * field.H / float64(rows)
}

// Run plays until ctx is cancelled or the user presses Esc, Ctrl-C or q.
func Run(ctx context.Context, screen tcell.Screen, state *game.State, interval time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	canvas := Canvas{Screen: screen, Field: state.Field}
	renderer := client.NewRenderer()

	loop := game.NewLoop(state, interval, func(s *game.State, _ game.Events) {
		renderer.Draw(canvas, s)
		screen.Show()
	})

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				// screen finalised
				cancel()
				return
			}
			if !handleEvent(ev, loop, screen, state.Field) {
				cancel()
				return
			}
		}
	}()

	err := loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// handleEvent reports false when the player asked to quit.
func handleEvent(ev tcell.Event, loop *game.Loop, screen tcell.Screen, field game.Field) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}

	case *tcell.EventMouse:
		_, row := ev.Position()
		_, rows := screen.Size()
		loop.Send(game.PointerMoved{Y: PointerY(row, rows, field)})

	case *tcell.EventResize:
		screen.Sync()
	}
	return true
}
