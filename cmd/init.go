package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pagevault/pagevault/internal/clierr"
	"github.com/pagevault/pagevault/internal/config"
	"github.com/pagevault/pagevault/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new archive",
	Long:  `Creates an archive directory with config.yml and an incoming/ subdirectory.`,
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	dir := flagDir
	if dir == "" {
		dir = config.DefaultDir
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	// Check if already initialized.
	if _, err := os.Stat(filepath.Join(absDir, config.ConfigFileName)); err == nil {
		return clierr.Newf(clierr.ConfigExists, "archive already initialized in %s", absDir).
			WithDetails(map[string]any{"dir": absDir})
	}

	cfg, err := config.Init(absDir)
	if err != nil {
		return err
	}

	format := outputFormat()
	if format == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{
			"status":   "initialized",
			"dir":      absDir,
			"config":   cfg.ConfigPath(),
			"incoming": cfg.IncomingPath(),
		})
	}

	output.Messagef(os.Stdout, "Initialized archive in %s", absDir)
	output.Messagef(os.Stdout, "  Config:   %s", cfg.ConfigPath())
	output.Messagef(os.Stdout, "  Incoming: %s", cfg.IncomingPath())
	return nil
}
