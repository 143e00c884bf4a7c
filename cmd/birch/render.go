package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"birch/render"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] file.br",
	Short: "Render a document back to its source bytes",
	Long: `Render parses a source document and prints the bytes its tree renders back
to, which match the input exactly. With --check nothing is printed; the
command only verifies the round trip.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().Bool("check", false, "verify the round trip instead of printing")
}

func runRender(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return fmt.Errorf("failed to get check flag: %w", err)
	}

	doc, err := loadDocument(cmd, args[0])
	if err != nil {
		return err
	}

	rendered, err := render.Bytes(doc.Tree)
	if err != nil {
		return err
	}

	if check {
		if !bytes.Equal(rendered, doc.Raw) {
			return fmt.Errorf("%s: rendered output differs from the source", doc.Path)
		}
		quiet, err := beQuiet(cmd)
		if err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d bytes round-trip clean\n", doc.Path, len(rendered))
		}
		return nil
	}

	_, err = cmd.OutOrStdout().Write(rendered)
	return err
}
