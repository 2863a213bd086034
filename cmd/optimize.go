package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/pagevault/pagevault/internal/activity"
	"github.com/pagevault/pagevault/internal/batch"
	"github.com/pagevault/pagevault/internal/clierr"
	"github.com/pagevault/pagevault/internal/filelock"
	"github.com/pagevault/pagevault/internal/output"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [dir]",
	Short: "Rename existing archive files onto synthesized names",
	Long: `Rescans the archive directory and renames files whose names predate the
current synthesis rules: legacy "(title) [URL] ..." names, emoji-laden
names, and names over the length budget. Prompts for confirmation in
interactive mode; use --dry-run to preview.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOptimize,
}

func init() {
	optimizeCmd.Flags().Bool("dry-run", false, "show planned renames without applying them")
	optimizeCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	optimizeCmd.Flags().String("pattern", "", "only consider files whose name matches this glob")
	optimizeCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "force":
			name = "yes"
		case "dryrun":
			name = "dry-run"
		}
		return pflag.NormalizedName(name)
	})
	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir := cfg.Dir()
	if len(args) == 1 {
		if dir, err = filepath.Abs(args[0]); err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}
	}

	archives, err := batch.Scan(dir, cfg.Filename.Extension)
	if err != nil {
		return err
	}

	pattern, _ := cmd.Flags().GetString("pattern")
	candidates, keep, err := splitByPattern(archives, pattern)
	if err != nil {
		return err
	}

	ops := batch.PlanRenames(newEngine(cfg), candidates, keep, cfg.Filename.Extension)
	format := outputFormat()

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun || len(ops) == 0 {
		return printPlan(ops, format)
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return clierr.New(clierr.ConfirmationReq,
				"cannot prompt for confirmation (not a terminal); use --yes")
		}
		printPlanHuman(ops, format)
		fmt.Fprintf(os.Stderr, "Apply %d rename(s)? [y/N] ", len(ops))
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(os.Stderr, "Canceled.")
			return nil
		}
	}

	// Hold the directory lock across the renames so concurrent runs cannot
	// interleave and double-rename.
	unlock, err := filelock.Lock(filepath.Join(dir, ".optimize.lock"))
	if err != nil {
		return clierr.Newf(clierr.DirectoryLocked, "locking %s: %v", dir, err)
	}
	defer func() { _ = unlock() }()

	applied, errs := batch.Apply(ops, func(op batch.RenameOp) {
		activity.Record(dir, activity.ActionRenamed, "", op.NewName, "renamed from "+op.OldName)
	})

	if format == output.FormatJSON {
		results := map[string]any{"planned": len(ops), "applied": applied}
		if len(errs) > 0 {
			msgs := make([]string, len(errs))
			for i, e := range errs {
				msgs[i] = e.Error()
			}
			results["errors"] = msgs
		}
		if err := output.JSON(os.Stdout, results); err != nil {
			return err
		}
	} else {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "Error: %v\n", e)
		}
		output.Messagef(os.Stdout, "Applied %d/%d rename(s)", applied, len(ops))
	}

	if len(errs) > 0 {
		return &clierr.SilentError{Code: 1}
	}
	return nil
}

// splitByPattern partitions archives into rename candidates and kept files.
// An empty pattern makes every file a candidate.
func splitByPattern(archives []batch.Archive, pattern string) (candidates, keep []batch.Archive, err error) {
	if pattern == "" {
		return archives, nil, nil
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, nil, clierr.Newf(clierr.InvalidInput, "invalid pattern %q", pattern)
	}
	for _, a := range archives {
		if ok, _ := filepath.Match(pattern, a.Name); ok {
			candidates = append(candidates, a)
		} else {
			keep = append(keep, a)
		}
	}
	return candidates, keep, nil
}

func printPlan(ops []batch.RenameOp, format output.Format) error {
	switch format {
	case output.FormatJSON:
		return output.JSON(os.Stdout, ops)
	case output.FormatCompact:
		output.RenameCompact(os.Stdout, ops)
	default:
		output.RenameTable(os.Stdout, ops)
	}
	return nil
}

func printPlanHuman(ops []batch.RenameOp, format output.Format) {
	if format == output.FormatCompact {
		output.RenameCompact(os.Stderr, ops)
		return
	}
	output.RenameTable(os.Stderr, ops)
}
