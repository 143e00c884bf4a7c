package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"birch/internal/config"
	"birch/internal/diagfmt"
	"birch/internal/driver"
)

type colorMode string

const (
	colorModeAuto colorMode = "auto"
	colorModeOn   colorMode = "on"
	colorModeOff  colorMode = "off"
)

func readColorMode(value string) (colorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorModeAuto, nil
	case "on":
		return colorModeOn, nil
	case "off":
		return colorModeOff, nil
	default:
		return "", fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

// useColor decides whether output to f should carry ANSI escapes.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	mode, err := readColorMode(value)
	if err != nil {
		return false, err
	}
	switch mode {
	case colorModeOn:
		return true, nil
	case colorModeOff:
		return false, nil
	default:
		return isTerminal(f), nil
	}
}

func beQuiet(cmd *cobra.Command) (bool, error) {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return false, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	return quiet, nil
}

// outputOptions assembles diagfmt options from the global flags and the
// workspace manifest. target is the stream the output goes to, so color
// detection looks at the right descriptor.
func outputOptions(cmd *cobra.Command, target *os.File) (diagfmt.Options, *config.Config, error) {
	cfg, _, err := config.LoadOrDefault(".")
	if err != nil {
		return diagfmt.Options{}, nil, err
	}
	colorOn, err := useColor(cmd, target)
	if err != nil {
		return diagfmt.Options{}, nil, err
	}
	maxProblems, err := cmd.Root().PersistentFlags().GetInt("max-problems")
	if err != nil {
		return diagfmt.Options{}, nil, fmt.Errorf("failed to get max-problems flag: %w", err)
	}
	if maxProblems <= 0 {
		maxProblems = cfg.Check.MaxProblems
	}
	return diagfmt.Options{Color: colorOn, MaxProblems: maxProblems}, cfg, nil
}

// loadDocument parses one file for an inspection command. Syntax problems go
// to stderr and fail the command.
func loadDocument(cmd *cobra.Command, path string) (*driver.Document, error) {
	doc, err := driver.Load(path)
	if err != nil {
		return nil, err
	}
	if len(doc.Errs) > 0 {
		opts, _, optErr := outputOptions(cmd, os.Stderr)
		if optErr != nil {
			return nil, optErr
		}
		diagfmt.FormatErrors(os.Stderr, doc.Path, doc.Text, doc.Errs, opts)
		return nil, fmt.Errorf("%s has syntax problems", path)
	}
	return doc, nil
}
