package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"birch/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "birch",
	Short: "Lossless source tree toolkit",
	Long: `birch parses source documents into lossless syntax trees, renders them
back byte for byte, and resolves per-node metadata such as positions`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(positionsCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-problems", 0, "maximum problems to show per file (0 uses the manifest setting)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
