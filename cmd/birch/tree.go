package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"birch/internal/diagfmt"
	"birch/meta"
)

var treeCmd = &cobra.Command{
	Use:   "tree [flags] file.br",
	Short: "Print a document tree as an indented outline",
	Args:  cobra.ExactArgs(1),
	RunE:  runTree,
}

func init() {
	treeCmd.Flags().Bool("positions", true, "annotate nodes with their ranges")
}

func runTree(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	withPositions, err := cmd.Flags().GetBool("positions")
	if err != nil {
		return fmt.Errorf("failed to get positions flag: %w", err)
	}

	doc, err := loadDocument(cmd, args[0])
	if err != nil {
		return err
	}

	var table meta.Map
	if withPositions {
		table, err = meta.NewWrapper(doc.Tree).Resolve(meta.Position)
		if err != nil {
			return err
		}
	}

	opts, _, err := outputOptions(cmd, os.Stdout)
	if err != nil {
		return err
	}
	return diagfmt.FormatTree(os.Stdout, doc.Tree, table, opts)
}
