package cmd

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/shoal-sh/shoal/core/config"
	"github.com/shoal-sh/shoal/core/record"
	"github.com/shoal-sh/shoal/core/shell"
)

var recordPath string

// runCmd starts the interactive shell.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive shell.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := config.Load(cfgPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// No config is fine, the shell runs with defaults.
			cfg = config.Default()
		case err != nil:
			return err
		}

		var stdin io.ReadCloser = os.Stdin
		var stdout, stderr io.Writer = os.Stdout, os.Stderr

		if recordPath != "" {
			fd, err := os.Create(recordPath)
			if err != nil {
				return err
			}
			defer fd.Close()

			recorder := record.NewRecorder(stdin, stdout, stderr, fd)
			stdin, stdout, stderr = recorder.Stdin, recorder.Stdout, recorder.Stderr
		}

		if cfg.Motd != "" {
			color.New(color.FgCyan).Fprintln(stdout, cfg.Motd)
		}

		var reader shell.LineReader
		if isatty.IsTerminal(os.Stdin.Fd()) {
			reader, err = shell.NewReadlineReader(stdin, stdout, stderr, cfg.HistoryFile)
			if err != nil {
				return err
			}
		} else {
			reader = shell.NewBufioReader(stdin, stdout)
		}
		defer reader.Close()

		prompt := cfg.Prompt
		if prompt == "" {
			prompt = shell.DefaultPrompt
		}

		env := shell.WithFallback(shell.OSEnviron(), map[string]string{
			shell.EnvPath: cfg.DefaultPath,
		})

		sh := shell.New(reader, stdout, stderr,
			shell.WithPrompt(prompt),
			shell.WithEnviron(env),
			shell.WithStdin(stdin),
			shell.WithDebug(cfg.Debug),
		)

		exitStatus = sh.Run()
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&recordPath, "record", "", "record the session to a log file")
	rootCmd.AddCommand(runCmd)
}
