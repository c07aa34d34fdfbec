package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"jobindex/internal/emit"
	"jobindex/internal/indexer"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var outputFlag string
	var failFast bool
	var showTotals bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Classify every stored job document and emit index records",
		Long: `Scan walks the document store, derives a canonical status and execution
site for each job document, and writes one (workflow, status, site) record
with a unit value per document as JSON lines. Summing the records is left to
the downstream aggregation stage.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("fail-fast") {
				cfg.Scan.FailFast = failFast
			}
			output := cfg.Paths.OutputPath
			if cmd.Flags().Changed("output") {
				output = strings.TrimSpace(outputFlag)
			}

			sink, closeSink, toStdout, err := openOutput(output)
			if err != nil {
				return err
			}
			defer closeSink()

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			collector := emit.NewCollector()
			emitter := emit.Tee{emit.NewJSONLWriter(sink), collector}

			ix, err := indexer.New(cfg, store, emitter, logger)
			if err != nil {
				return err
			}
			summary, err := ix.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !toStdout {
				fmt.Fprintf(out, "Scanned %d documents: %d emitted, %d ignored, %d skipped\n",
					summary.Processed, summary.Emitted, summary.Ignored, summary.Skipped)
				if output != "" {
					fmt.Fprintf(out, "Records written to %s\n", output)
				}
				if showTotals {
					printTotals(out, collector)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Destination for emitted records (\"-\" for stdout)")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Abort on the first unclassifiable document")
	cmd.Flags().BoolVar(&showTotals, "totals", false, "Print per-key totals after the scan")
	return cmd
}

func openOutput(path string) (io.Writer, func(), bool, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, true, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, false, fmt.Errorf("open output %s: %w", path, err)
	}
	return file, func() { _ = file.Close() }, false, nil
}

func printTotals(out io.Writer, collector *emit.Collector) {
	totals := collector.Totals()
	if len(totals) == 0 {
		fmt.Fprintln(out, "No records emitted.")
		return
	}
	if !stdoutIsTerminal() {
		for _, rec := range totals {
			fmt.Fprintf(out, "%s\t%s\t%s\t%d\n", rec.Key.Workflow, rec.Key.Status, rec.Key.Site, rec.Value)
		}
		return
	}
	rows := make([][]string, 0, len(totals))
	for _, rec := range totals {
		rows = append(rows, []string{
			rec.Key.Workflow,
			statusLabel(rec.Key.Status),
			rec.Key.Site,
			strconv.Itoa(rec.Value),
		})
	}
	fmt.Fprintln(out, renderTable([]string{"Workflow", "Status", "Site", "Count"}, rows, 4))
}
