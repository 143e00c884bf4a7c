package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"birch/internal/diagfmt"
	"birch/meta"
)

var positionsCmd = &cobra.Command{
	Use:   "positions [flags] file.br",
	Short: "List node positions in the rendered output",
	Long: `Positions parses a source document, resolves a position provider over its
tree, and lists every node with the range the provider recorded for it.`,
	Args: cobra.ExactArgs(1),
	RunE: runPositions,
}

func init() {
	positionsCmd.Flags().String("provider", "syntactic", "position flavor (syntactic|inclusive|bytes)")
	positionsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

// providerByName maps the --provider flag to a metadata provider.
func providerByName(name string) (*meta.Provider, error) {
	switch name {
	case "syntactic":
		return meta.Position, nil
	case "inclusive":
		return meta.WhitespaceInclusivePosition, nil
	case "bytes":
		return meta.ByteSpan, nil
	default:
		return nil, fmt.Errorf("unknown provider %q (expected syntactic, inclusive, or bytes)", name)
	}
}

func runPositions(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	providerName, err := cmd.Flags().GetString("provider")
	if err != nil {
		return fmt.Errorf("failed to get provider flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	provider, err := providerByName(providerName)
	if err != nil {
		return err
	}

	doc, err := loadDocument(cmd, args[0])
	if err != nil {
		return err
	}
	table, err := meta.NewWrapper(doc.Tree).Resolve(provider)
	if err != nil {
		return err
	}

	switch format {
	case "pretty":
		opts, _, err := outputOptions(cmd, os.Stdout)
		if err != nil {
			return err
		}
		return diagfmt.FormatPositionsPretty(os.Stdout, doc.Tree, table, opts)
	case "json":
		return diagfmt.FormatPositionsJSON(os.Stdout, doc.Tree, table)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
