package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"argot/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "argot",
	Short: "Argument spec compiler and parsing toolchain",
	Long:  `Argot binds and validates command lines against declarative argument specs`,
}

// main registers subcommands and persistent flags, then executes the
// root command. Execution errors exit with status 1; parse commands
// set their own exit codes for diagnostic failures.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}

func maxDiagnostics(cmd *cobra.Command) int {
	n, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil || n <= 0 {
		return 100
	}
	return n
}
