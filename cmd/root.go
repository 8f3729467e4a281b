package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgPath string

// exitStatus is set by the run command so deferred cleanup still executes
// before the process terminates.
var exitStatus int

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "shoal",
	Short: "An interactive command shell",
	Long: `An interactive command shell with POSIX-style quoting, PATH lookup
and output redirection.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
	os.Exit(exitStatus)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
}
