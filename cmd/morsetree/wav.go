package main

import (
	"github.com/phanxgames/morsetree/sonify"
	"github.com/spf13/cobra"
)

var wavCmd = &cobra.Command{
	Use:   "wav",
	Short: "Write the Morse audio of text as WAV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, _ := cmd.Flags().GetString("text")
		out, _ := cmd.Flags().GetString("out")

		opt := app.cfg.Audio
		if cmd.Flags().Changed("wpm") {
			opt.WPM, _ = cmd.Flags().GetInt("wpm")
		}
		if cmd.Flags().Changed("freq") {
			opt.Frequency, _ = cmd.Flags().GetFloat64("freq")
		}
		if err := sonify.EncodeFile(out, text, opt); err != nil {
			return err
		}
		app.log.Info("wav", "out", out, "duration", sonify.Duration(text, opt), "wpm", opt.WPM)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(wavCmd)

	def := sonify.DefaultOptions()
	wavCmd.Flags().StringP("text", "t", "", "Text to key")
	wavCmd.Flags().StringP("out", "o", "tree.wav", "Output WAV path")
	wavCmd.Flags().Int("wpm", def.WPM, "Keying speed in words per minute")
	wavCmd.Flags().Float64("freq", def.Frequency, "Tone frequency in Hz")
}
