package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pagevault/pagevault/internal/clierr"
	"github.com/pagevault/pagevault/internal/csvio"
	"github.com/pagevault/pagevault/internal/output"
)

var csvCmd = &cobra.Command{
	Use:   "csv",
	Short: "Inspect and manipulate URL list CSVs",
}

var csvValidateCmd = &cobra.Command{
	Use:   "validate <csv>",
	Short: "Check every URL in a CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runCSVValidate,
}

var csvMergeCmd = &cobra.Command{
	Use:   "merge <csv> <csv> [csv...]",
	Short: "Merge URL lists, dropping duplicate URLs",
	Args:  cobra.MinimumNArgs(2), //nolint:mnd // at least two inputs to merge
	RunE:  runCSVMerge,
}

var csvFilterCmd = &cobra.Command{
	Use:   "filter <csv>",
	Short: "Keep only URLs from a given host",
	Args:  cobra.ExactArgs(1),
	RunE:  runCSVFilter,
}

func init() {
	csvMergeCmd.Flags().StringP("out", "o", "", "output file (defaults to stdout)")
	csvFilterCmd.Flags().String("host", "", "host to keep, e.g. x.com (required)")
	csvFilterCmd.Flags().StringP("out", "o", "", "output file (defaults to stdout)")
	_ = csvFilterCmd.MarkFlagRequired("host")
	csvCmd.AddCommand(csvValidateCmd)
	csvCmd.AddCommand(csvMergeCmd)
	csvCmd.AddCommand(csvFilterCmd)
	rootCmd.AddCommand(csvCmd)
}

func runCSVValidate(_ *cobra.Command, args []string) error {
	records, err := csvio.Load(args[0])
	if err != nil {
		return err
	}
	valid, invalid := csvio.Split(records)

	if outputFormat() == output.FormatJSON {
		bad := make([]string, len(invalid))
		for i, rec := range invalid {
			bad[i] = rec.URL
		}
		if err := output.JSON(os.Stdout, map[string]any{
			"total":   len(records),
			"valid":   len(valid),
			"invalid": bad,
		}); err != nil {
			return err
		}
	} else {
		for _, rec := range invalid {
			fmt.Fprintf(os.Stderr, "Invalid: %s\n", rec.URL)
		}
		output.Messagef(os.Stdout, "%d URL(s): %d valid, %d invalid", len(records), len(valid), len(invalid))
	}

	if len(invalid) > 0 {
		return &clierr.SilentError{Code: 1}
	}
	return nil
}

func runCSVMerge(cmd *cobra.Command, args []string) error {
	var merged []csvio.Record
	for _, path := range args {
		records, err := csvio.Load(path)
		if err != nil {
			return err
		}
		merged = csvio.Merge(merged, records)
	}
	return writeRecords(cmd, merged)
}

func runCSVFilter(cmd *cobra.Command, args []string) error {
	records, err := csvio.Load(args[0])
	if err != nil {
		return err
	}
	host, _ := cmd.Flags().GetString("host")
	return writeRecords(cmd, csvio.FilterHost(records, host))
}

// writeRecords sends records to --out when given, stdout otherwise.
func writeRecords(cmd *cobra.Command, records []csvio.Record) error {
	out, _ := cmd.Flags().GetString("out")
	if out != "" {
		if err := csvio.Save(out, records); err != nil {
			return err
		}
		output.Messagef(os.Stderr, "Wrote %d row(s) to %s", len(records), out)
		return nil
	}
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, records)
	}
	for _, rec := range records {
		fmt.Fprintln(os.Stdout, rec.URL)
	}
	return nil
}
