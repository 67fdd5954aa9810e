package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phanxgames/morsetree"
	"github.com/phanxgames/morsetree/raster"
	"github.com/phanxgames/morsetree/view"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay <script.json>",
	Short: "Replay a JSON input script",
	Long: `Replays a script of type, undo, reset, wait, drain and screenshot steps.
Headless replays write each screenshot as a PNG rendered from the segment
list; with --window the script drives the interactive window instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir, _ := cmd.Flags().GetString("out-dir")
		window, _ := cmd.Flags().GetBool("window")
		maxFrames, _ := cmd.Flags().GetInt("max-frames")

		root := app.cfg.rootBranch()
		script, err := morsetree.LoadScriptFile(args[0], root)
		if err != nil {
			return err
		}
		a := newAutomaton()

		if window {
			rc := app.cfg.runConfig()
			rc.ScreenshotDir = outDir
			rc.ExitWhenDone = true
			g := view.NewGame(a, root, rc)
			g.AttachScript(script)
			return view.Run(g)
		}

		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", outDir, err)
		}
		opt := rasterOptions(cmd)
		var shotErrs []error
		script.OnScreenshot = func(label string) {
			path := filepath.Join(outDir, screenshotFile(label))
			if err := raster.WritePNG(path, raster.Render(a.Segments(), opt)); err != nil {
				shotErrs = append(shotErrs, err)
				return
			}
			app.log.Debug("screenshot", "path", path)
		}

		frames := script.Replay(a, maxFrames)
		if !script.Done() {
			return fmt.Errorf("replay: script not finished after %d frames", frames)
		}
		logGrowth(a, "replay", "script", args[0], "frames", frames)
		return errors.Join(shotErrs...)
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().String("out-dir", "screenshots", "Directory for screenshot PNGs")
	replayCmd.Flags().Bool("window", false, "Replay in the interactive window")
	replayCmd.Flags().Int("max-frames", 100000, "Abort after this many frames")
	addRasterFlags(replayCmd)
}

// screenshotFile maps a script label to a safe file name.
func screenshotFile(label string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, label)
	if name == "" {
		name = "screenshot"
	}
	return name + ".png"
}
