package cmd

import (
	"context"
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/time/rate"

	"github.com/pagevault/pagevault/internal/batch"
	"github.com/pagevault/pagevault/internal/capture"
	"github.com/pagevault/pagevault/internal/clierr"
	"github.com/pagevault/pagevault/internal/config"
	"github.com/pagevault/pagevault/internal/csvio"
	"github.com/pagevault/pagevault/internal/output"
	"github.com/pagevault/pagevault/internal/tui"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Capture pages into the archive",
}

var archiveURLsCmd = &cobra.Command{
	Use:   "urls <csv>",
	Short: "Archive every URL in a CSV file",
	Long: `Reads a CSV of URLs (column "url", optional "title" and "notes") and
captures each page into the archive. URLs already archived are skipped;
failures can be exported to a new CSV for a later retry run.`,
	Args: cobra.ExactArgs(1),
	RunE: runArchiveURLs,
}

var archiveSingleCmd = &cobra.Command{
	Use:   "single <url>",
	Short: "Archive one URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveSingle,
}

var archivePullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Fetch the capture container image",
	Long:  `Pulls the configured capture image so the first archive run does not pay the download cost.`,
	Args:  cobra.NoArgs,
	RunE:  runArchivePull,
}

func init() {
	archiveURLsCmd.Flags().String("export-failed", "", "write failed rows to this CSV")
	archiveURLsCmd.Flags().Bool("no-tui", false, "plain line output even on a terminal")
	archiveSingleCmd.Flags().String("cookies-file", "", "cookies file mounted into the capture container")
	archiveSingleCmd.Flags().String("title", "", "override the page title used for naming")
	archiveCmd.AddCommand(archiveURLsCmd)
	archiveCmd.AddCommand(archiveSingleCmd)
	archiveCmd.AddCommand(archivePullCmd)
	rootCmd.AddCommand(archiveCmd)
}

// newRunner wires a batch runner from the loaded config.
func newRunner(cfg *config.Config) *batch.Runner {
	client := capture.NewClient(cfg.Capture, cfg.CaptureTimeout(), nil)
	return &batch.Runner{
		Client:     client,
		Engine:     newEngine(cfg),
		Dir:        cfg.Dir(),
		Ext:        cfg.Filename.Extension,
		Limiter:    rate.NewLimiter(rate.Every(cfg.RequestInterval()), 1),
		MaxRetries: cfg.Capture.MaxRetries,
	}
}

func runArchiveURLs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	records, err := csvio.Load(args[0])
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return clierr.Newf(clierr.NothingToDo, "no URLs in %s", args[0])
	}

	runner := newRunner(cfg)
	if err := runner.Client.Ping(cmd.Context()); err != nil {
		return err
	}

	format := outputFormat()
	noTUI, _ := cmd.Flags().GetBool("no-tui")
	interactive := !noTUI && format == output.FormatTable && term.IsTerminal(int(os.Stdout.Fd()))

	var sum batch.Summary
	if interactive {
		sum, err = runWithProgressTUI(cmd.Context(), runner, records)
	} else {
		sum, err = runPlain(cmd.Context(), runner, records, format)
	}
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		if err := output.JSON(os.Stdout, sum); err != nil {
			return err
		}
	case output.FormatCompact:
		output.SummaryCompact(os.Stdout, sum)
	default:
		if !interactive {
			output.SummaryTable(os.Stdout, sum)
		}
	}

	if path, _ := cmd.Flags().GetString("export-failed"); path != "" && len(sum.Failures) > 0 {
		if err := csvio.Save(path, sum.Failures); err != nil {
			return err
		}
		output.Messagef(os.Stderr, "Wrote %d failed row(s) to %s", len(sum.Failures), path)
	}

	if sum.Failed > 0 {
		return &clierr.SilentError{Code: 1}
	}
	return nil
}

// runWithProgressTUI drives the batch through the interactive progress view.
// The runner goroutine is always joined before returning, so the summary is
// never read while it is still being written.
func runWithProgressTUI(ctx context.Context, runner *batch.Runner, records []csvio.Record, opts ...tea.ProgramOption) (batch.Summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := tui.NewProgress(len(records), cancel)
	p := tea.NewProgram(model, opts...)
	runner.OnEvent = func(ev batch.Event) {
		p.Send(tui.EventMsg(ev))
	}

	var sum batch.Summary
	var runErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		sum, runErr = runner.Run(ctx, records)
		p.Send(tui.DoneMsg{Summary: sum, Err: runErr})
	}()

	_, uiErr := p.Run()
	cancel() // stop the runner if the view exited mid-batch
	<-done

	if uiErr != nil {
		return sum, uiErr
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return sum, runErr
	}
	return sum, nil
}

// runPlain drives the batch with one output line per URL.
func runPlain(ctx context.Context, runner *batch.Runner, records []csvio.Record, format output.Format) (batch.Summary, error) {
	if format == output.FormatCompact {
		runner.OnEvent = func(ev batch.Event) { output.EventCompact(os.Stdout, ev) }
	} else if format == output.FormatTable {
		runner.OnEvent = func(ev batch.Event) { output.ResultLine(os.Stdout, ev) }
	}
	return runner.Run(ctx, records)
}

func runArchivePull(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client := capture.NewClient(cfg.Capture, 0, nil)
	if err := client.Ping(cmd.Context()); err != nil {
		return err
	}
	if err := client.PullImage(cmd.Context()); err != nil {
		return err
	}
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{"image": cfg.Capture.DockerImage, "status": "pulled"})
	}
	output.Messagef(os.Stdout, "Pulled %s", cfg.Capture.DockerImage)
	return nil
}

func runArchiveSingle(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	url := args[0]
	if err := csvio.ValidateURL(url); err != nil {
		return err
	}

	runner := newRunner(cfg)
	if cookies, _ := cmd.Flags().GetString("cookies-file"); cookies != "" {
		runner.Client = runner.Client.WithCookiesFile(cookies)
	}
	if err := runner.Client.Ping(cmd.Context()); err != nil {
		return err
	}

	var archivedAs string
	runner.OnEvent = func(ev batch.Event) {
		if ev.Status == batch.StatusArchived {
			archivedAs = ev.File
		}
	}

	title, _ := cmd.Flags().GetString("title")
	sum, err := runner.Run(cmd.Context(), []csvio.Record{{URL: url, Title: title}})
	if err != nil {
		return err
	}
	if sum.Failed > 0 {
		return clierr.Newf(clierr.CaptureFailed, "failed to archive %s", url)
	}

	format := outputFormat()
	if format == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"url":      url,
			"file":     archivedAs,
			"skipped":  sum.Skipped > 0,
			"archived": sum.Archived > 0,
		})
	}
	if sum.Skipped > 0 {
		output.Messagef(os.Stdout, "Already archived: %s", url)
		return nil
	}
	output.Messagef(os.Stdout, "Archived %s -> %s", url, archivedAs)
	return nil
}
