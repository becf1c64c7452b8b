package ebitenui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}

type game struct {
	board *Board
	cfg   RunConfig
}

func (g *game) Update() error { return g.board.Update() }

func (g *game) Draw(screen *ebiten.Image) {
	g.board.Draw(screen)
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()), 4, 4)
	}
}

func (g *game) Layout(_, _ int) (int, int) { return g.cfg.Width, g.cfg.Height }

// Run opens a window and runs the board until the window closes.
func Run(b *Board, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.Title == "" {
		cfg.Title = "dials"
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if err := ebiten.RunGame(&game{board: b, cfg: cfg}); err != nil {
		return fmt.Errorf("run board: %w", err)
	}
	return nil
}
