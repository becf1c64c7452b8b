// Command dialmixer shows a panel of knobs and faders in a window or in the
// terminal and logs every value change.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/phanxgames/dials/ebitenui"
)

// CLI defines the dialmixer command structure.
type CLI struct {
	Panel string `short:"p" type:"existingfile" help:"Panel YAML file (default: built-in demo panel)"`

	Window WindowCmd `cmd:"" default:"withargs" help:"Open the panel in a window"`
	Term   TermCmd   `cmd:"" help:"Show the panel in the terminal"`
}

// WindowCmd runs the Ebitengine frontend.
type WindowCmd struct {
	Width   int    `default:"640" help:"Window width"`
	Height  int    `default:"260" help:"Window height"`
	ShowFPS bool   `name:"fps" help:"Draw FPS and TPS"`
	Script  string `type:"existingfile" help:"JSON input script to replay"`
}

// Run executes the window command.
func (c *WindowCmd) Run(cli *CLI, cfg *Config) error {
	SetupLogger(cfg, os.Stderr)
	cfg.apply()

	panel, err := loadPanel(cli.Panel)
	if err != nil {
		return err
	}
	board, ctl, err := buildBoard(panel)
	if err != nil {
		return err
	}
	defer ctl.Destroy()
	board.ScreenshotDir = cfg.ScreenshotDir
	watch(ctl, slog.Default(), nil)

	if c.Script != "" {
		data, err := os.ReadFile(c.Script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := ebitenui.LoadScript(data)
		if err != nil {
			return err
		}
		board.SetScript(runner)
	}

	slog.Info("opening window", "controls", len(panel.Names()))
	return ebitenui.Run(board, ebitenui.RunConfig{
		Title:   "dialmixer",
		Width:   c.Width,
		Height:  c.Height,
		ShowFPS: c.ShowFPS,
	})
}

// TermCmd runs the terminal frontend.
type TermCmd struct{}

// Run executes the term command.
func (c *TermCmd) Run(cli *CLI, cfg *Config) error {
	var w io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		w = f
	}
	SetupLogger(cfg, w)
	cfg.apply()

	panel, err := loadPanel(cli.Panel)
	if err != nil {
		return err
	}
	model, ctl, err := buildTerm(panel)
	if err != nil {
		return err
	}
	defer ctl.Destroy()
	watch(ctl, slog.Default(), model.SetCaption)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("dialmixer"),
		kong.Description("Drag knobs and faders; Shift for coarse, Ctrl for fine."),
		kong.Bind(cfg),
	)
	err = ctx.Run(cli)
	ctx.FatalIfErrorf(err)
}
