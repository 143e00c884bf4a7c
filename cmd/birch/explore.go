package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"birch/internal/ui"
	"birch/meta"
)

var exploreCmd = &cobra.Command{
	Use:   "explore file.br",
	Short: "Browse a document tree interactively",
	Long: `Explore opens a full-screen browser over a document tree: move with j/k,
fold branches with enter, quit with q. Node rows carry the same position
ranges the positions command lists.`,
	Args: cobra.ExactArgs(1),
	RunE: runExplore,
}

func runExplore(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	if !isTerminal(os.Stdout) {
		return fmt.Errorf("explore needs a terminal; use %q for pipeable output", "birch tree")
	}

	doc, err := loadDocument(cmd, args[0])
	if err != nil {
		return err
	}
	table, err := meta.NewWrapper(doc.Tree).Resolve(meta.Position)
	if err != nil {
		return err
	}
	return ui.Run(doc.Path, doc.Tree, table)
}
