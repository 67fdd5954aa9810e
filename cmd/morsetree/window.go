package main

import (
	"fmt"

	"github.com/phanxgames/morsetree/view"
	"github.com/spf13/cobra"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Open the interactive window",
	Long: `Opens an Ebitengine window. Type to grow the tree, hold Backspace to undo,
Enter resets, Up/Down change the branch angle.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, _ := cmd.Flags().GetString("text")
		hud, _ := cmd.Flags().GetBool("hud")

		a := newAutomaton()
		a.EmitString(text)

		rc := app.cfg.runConfig()
		rc.ShowHUD = hud
		g := view.NewGame(a, app.cfg.rootBranch(), rc)
		g.Shots.Errorf = func(format string, args ...any) {
			app.log.Warn(fmt.Sprintf(format, args...))
		}
		app.log.Info("window opened", "width", rc.Width, "height", rc.Height, "tps", rc.TPS)
		return view.Run(g)
	},
}

func init() {
	rootCmd.AddCommand(windowCmd)

	windowCmd.Flags().String("text", "", "Text to queue on start")
	windowCmd.Flags().Bool("hud", true, "Show the status overlay")

	// Make 'window' the default if no command is provided.
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return windowCmd.RunE(windowCmd, args)
	}
}
