package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"pong/internal/client"
	"pong/internal/config"
	"pong/internal/game"
)

// ImageCanvas draws onto an ebiten image.
type ImageCanvas struct {
	Image *ebiten.Image
}

func (ic ImageCanvas) Clear() {
	ic.Image.Fill(client.Background)
}

func (ic ImageCanvas) FillRect(x, y, w, h float32, c color.Color) {
	vector.DrawFilledRect(ic.Image, x, y, w, h, c, false)
}

func (ic ImageCanvas) StrokeLine(x0, y0, x1, y1, width float32, c color.Color) {
	vector.StrokeLine(ic.Image, x0, y0, x1, y1, width, c, false)
}

var errServerClosed = errors.New("server closed the connection")

type Game struct {
	field     game.Field
	state     *game.State
	netClient *client.NetClient
	renderer  *client.Renderer
	lastY     int
	hasCursor bool
}

func NewGame(cfg config.Config) (*Game, error) {
	g := &Game{
		field:    cfg.Field(),
		renderer: client.NewRenderer(),
	}

	if cfg.Server != "" {
		nc, err := client.NewNetClient(cfg.Server, "Player")
		if err != nil {
			return nil, fmt.Errorf("failed to connect: %w", err)
		}
		g.netClient = nc
		return g, nil
	}

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}
	g.state = game.NewState(g.field, rng)
	return g, nil
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if y, ok := g.pointerMoved(); ok {
		if g.netClient != nil {
			g.netClient.SendPointer(float64(y))
		} else {
			g.state.Apply(game.PointerMoved{Y: float64(y)})
		}
	}

	if g.netClient == nil {
		g.state.Apply(game.Tick{})
		return nil
	}

	select {
	case <-g.netClient.Done():
		return errServerClosed
	default:
	}

	if welcome := g.netClient.GetWelcome(); welcome != nil {
		g.field = game.Field{W: welcome.Field.W, H: welcome.Field.H}
		log.Printf("Connected! GameID: %d, field %vx%v", welcome.GameID, welcome.Field.W, welcome.Field.H)
	}
	if snap := g.netClient.GetSnapshot(); snap != nil {
		g.state = game.FromSnap(g.field, *snap)
	}
	return nil
}

// pointerMoved reports the cursor row when it moved over the play surface.
func (g *Game) pointerMoved() (int, bool) {
	x, y := ebiten.CursorPosition()
	if x < 0 || y < 0 || float64(x) >= g.field.W || float64(y) >= g.field.H {
		return 0, false
	}
	if g.hasCursor && y == g.lastY {
		return 0, false
	}
	g.hasCursor = true
	g.lastY = y
	return y, true
}

func (g *Game) Draw(screen *ebiten.Image) {
	canvas := ImageCanvas{Image: screen}
	if g.state == nil {
		// Waiting for the server
		canvas.Clear()
		return
	}
	g.renderer.Draw(canvas, g.state)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.field.W), int(g.field.H)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	flag.StringVar(&cfg.Server, "server", cfg.Server, "websocket URL to play remotely, e.g. ws://localhost:8080/ws")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for local play (0 = clock)")
	flag.Parse()

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Pong")
	ebiten.SetTPS(cfg.TickRate)

	g, err := NewGame(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if g.netClient != nil {
		defer g.netClient.Close()
	}

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
