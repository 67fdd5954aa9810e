package main

import (
	"github.com/phanxgames/morsetree"
	"github.com/phanxgames/morsetree/raster"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Grow a tree from text and write it as PNG",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, _ := cmd.Flags().GetString("text")
		out, _ := cmd.Flags().GetString("out")
		opt := rasterOptions(cmd)

		a := newAutomaton()
		accepted := a.EmitString(text)
		steps := a.Drain(0)
		if err := raster.WritePNG(out, raster.Render(a.Segments(), opt)); err != nil {
			return err
		}
		logGrowth(a, "render", "out", out, "accepted", accepted, "steps", steps)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringP("text", "t", "", "Text to grow")
	renderCmd.Flags().StringP("out", "o", "tree.png", "Output PNG path")
	addRasterFlags(renderCmd)
}

func addRasterFlags(cmd *cobra.Command) {
	def := raster.DefaultOptions()
	cmd.Flags().Int("width", 0, "Image width (defaults to the window width)")
	cmd.Flags().Int("height", 0, "Image height (defaults to the window height)")
	cmd.Flags().Float64("margin", def.Margin, "Padding around the tree in pixels")
}

func rasterOptions(cmd *cobra.Command) raster.Options {
	opt := raster.DefaultOptions()
	opt.Width, opt.Height = app.cfg.Window.Width, app.cfg.Window.Height
	if w, _ := cmd.Flags().GetInt("width"); w > 0 {
		opt.Width = w
	}
	if h, _ := cmd.Flags().GetInt("height"); h > 0 {
		opt.Height = h
	}
	opt.Margin, _ = cmd.Flags().GetFloat64("margin")
	return opt
}

func logGrowth(a *morsetree.Automaton, msg string, kv ...any) {
	st := a.Stats()
	kv = append(kv,
		"segments", a.SegmentCount(),
		"tips", a.TipCount(),
		"committed", st.Committed,
		"rejected", st.Rejected,
		"discarded", st.Discarded,
	)
	app.log.Info(msg, kv...)
}

