package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"birch/internal/diagfmt"
	"birch/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <path> [path...]",
	Short: "Check that source files parse and render back unchanged",
	Long: `Check parses every source file, verifies its tree renders back to the
exact input bytes, and resolves position metadata over it. Directories are
walked for files with the manifest's source extensions. Clean results are
cached by content digest, so an unchanged file is not reparsed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "parallel workers (0 uses the manifest setting or one per CPU)")
	checkCmd.Flags().Bool("no-cache", false, "recheck every file, ignoring the result cache")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	quiet, err := beQuiet(cmd)
	if err != nil {
		return err
	}

	opts, cfg, err := outputOptions(cmd, os.Stderr)
	if err != nil {
		return err
	}
	if jobs == 0 {
		jobs = cfg.Check.Jobs
	}

	var cache *driver.Cache
	if cfg.Cache.Enabled && !noCache {
		cache, err = openConfiguredCache(cfg.Cache.Dir)
		if err != nil && !quiet {
			// A broken cache degrades to rechecking, it never fails the run.
			fmt.Fprintf(os.Stderr, "warning: cache disabled: %v\n", err)
		}
	}

	results, err := driver.CheckPaths(cmd.Context(), args, driver.CheckOptions{
		Jobs:       jobs,
		Extensions: cfg.Source.Extensions,
		Cache:      cache,
	})
	if err != nil {
		return err
	}

	var clean, cached, problems int
	for _, res := range results {
		switch {
		case res.Err != nil:
			problems++
			fmt.Fprintf(os.Stderr, "%v\n", res.Err)
		case len(res.Errs) > 0:
			problems++
			diagfmt.FormatErrors(os.Stderr, res.Path, res.Text, res.Errs, opts)
		default:
			clean++
			if res.Cached {
				cached++
			}
		}
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "checked %d files: %d clean (%d cached), %d with problems\n",
			len(results), clean, cached, problems)
	}
	if problems > 0 {
		cmd.SilenceErrors = true
		return fmt.Errorf("%d of %d files have problems", problems, len(results))
	}
	return nil
}

func openConfiguredCache(dir string) (*driver.Cache, error) {
	if dir != "" {
		return driver.OpenCacheAt(dir)
	}
	return driver.OpenCache("birch")
}
