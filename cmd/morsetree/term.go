package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/morsetree/term"
	"github.com/spf13/cobra"
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Grow the tree inside the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		tick, _ := cmd.Flags().GetDuration("tick")
		text, _ := cmd.Flags().GetString("text")

		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("init terminal: %w", err)
		}
		defer screen.Fini()

		a := newAutomaton()
		// The debug trace would scribble over the screen.
		a.SetDebugMode(false)
		a.EmitString(text)

		s := term.NewSession(screen, a, app.cfg.rootBranch())
		s.Tick = tick
		return s.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(termCmd)

	termCmd.Flags().Duration("tick", term.DefaultTick, "Interval between growth steps")
	termCmd.Flags().String("text", "", "Text to queue on start")
}
