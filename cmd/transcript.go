package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/shoal-sh/shoal/core/record"
)

// transcriptCmd dumps what a recorded session displayed, without pacing.
var transcriptCmd = &cobra.Command{
	Use:   "transcript RECORDING",
	Short: "Dump a recorded shell session as plain text.",
	Long:  `Writes everything a recorded shell session displayed to stdout, all at once.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		fd, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()

		out := cmd.OutOrStdout()
		return record.ReplayCallback(fd, func(le *record.LogEvent) error {
			if le.EventType != record.EventTypeOutput {
				return nil
			}
			_, err := out.Write(le.Data)
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(transcriptCmd)
}
