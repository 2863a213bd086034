package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pagevault/pagevault/internal/monitor"
	"github.com/pagevault/pagevault/internal/output"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Watch the incoming directory and file new captures",
	Long: `Watches the incoming directory and moves every new capture into the
archive under a synthesized filename. Runs until interrupted; use --once
for a single sweep.`,
	RunE: runMonitor,
}

func init() {
	monitorCmd.Flags().Bool("once", false, "sweep once and exit instead of watching")
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	m := &monitor.Monitor{
		Engine:      newEngine(cfg),
		ArchiveDir:  cfg.Dir(),
		IncomingDir: cfg.IncomingPath(),
		Ext:         cfg.Filename.Extension,
	}
	if outputFormat() != output.FormatJSON {
		m.OnMoved = func(oldPath, newName string) {
			output.Messagef(os.Stdout, "Filed %s -> %s", oldPath, newName)
		}
	}

	once, _ := cmd.Flags().GetBool("once")
	if once {
		moved, err := m.Sweep()
		if err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, map[string]int{"moved": moved})
		}
		output.Messagef(os.Stdout, "Filed %d capture(s)", moved)
		return nil
	}

	output.Messagef(os.Stderr, "Watching %s (ctrl+c to stop)", cfg.IncomingPath())
	return m.Run(cmd.Context(), func(err error) {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	})
}
