package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shoal-sh/shoal/core/record"
)

var replayMaxSleep time.Duration

// replayCmd plays a recorded session back to the terminal.
var replayCmd = &cobra.Command{
	Use:   "replay RECORDING",
	Short: "Play a recorded shell session.",
	Long:  `Plays a recorded shell session back to the current terminal with its original pacing.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		fd, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()

		return record.Replay(fd, cmd.OutOrStdout(), record.MaxSleep(replayMaxSleep))
	},
}

func init() {
	replayCmd.Flags().DurationVar(&replayMaxSleep, "max-sleep", 3*time.Second, "clamp pauses between played events")
	rootCmd.AddCommand(replayCmd)
}
