package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/alexanderjulianmartinez/data-checks/internal/config"
	"github.com/alexanderjulianmartinez/data-checks/internal/history"
	"github.com/alexanderjulianmartinez/data-checks/internal/runner"
	"github.com/alexanderjulianmartinez/data-checks/internal/source/mysql"
	"github.com/alexanderjulianmartinez/data-checks/pkg/checks"
	"github.com/alexanderjulianmartinez/data-checks/pkg/dataset"
	"github.com/alexanderjulianmartinez/data-checks/pkg/types"
)

var configPath string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the configured check suite",
	Long: `Load the suite configuration, materialize each dataset from its
source and evaluate the configured checks against it.`,
	RunE: runSuite,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&configPath, "config", "c", "",
		"Path to the suite configuration (required)")
	runCmd.MarkFlagRequired("config")
}

func runSuite(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	var hist history.Source
	if cfg.History != nil {
		hist = history.NewKafka(cfg.History.Brokers, cfg.History.Topic)
	}

	var insp *mysql.Inspector
	if cfg.Source.Type == "mysql" {
		insp, err = mysql.NewInspector(cfg.Source.DSN, cfg.Source.Schema)
		if err != nil {
			return err
		}
		defer insp.Close()
	}

	bar := progressbar.NewOptions(len(cfg.Datasets),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetDescription("[cyan][reset] Checking datasets..."),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)

	total := &runner.Report{}
	var totalRows int64
	for _, ds := range cfg.Datasets {
		bar.Add(1)

		rep := checkDataset(ctx, cfg, insp, hist, ds, &totalRows)
		total.Results = append(total.Results, rep.Results...)

		fmt.Printf("\nDataset: %s\n", ds.Name)
		for _, res := range rep.Results {
			fmt.Printf("[%s] %s: %s\n", res.Status, res.Check, res.Message)
		}
	}
	bar.Finish()

	failed, errs := total.Failed(), total.Errors()
	passed := len(total.Results) - failed - errs
	fmt.Printf("\nChecked %s rows across %d datasets: %d passed, %d failed, %d errors\n",
		humanize.Comma(totalRows), len(cfg.Datasets), passed, failed, errs)

	if !total.Ok() {
		return fmt.Errorf("%d of %d checks did not pass", failed+errs, len(total.Results))
	}
	return nil
}

// checkDataset materializes one dataset and evaluates its checks. Load and
// history failures do not abort the suite; they surface as ERROR rows.
func checkDataset(ctx context.Context, cfg *config.Config, insp *mysql.Inspector, hist history.Source, ds config.DatasetConfig, totalRows *int64) *runner.Report {
	tbl, err := loadDataset(ctx, cfg.Source, insp, ds)
	if err != nil {
		log.Errorf("dataset %s: %v", ds.Name, err)
		return errorReport(ds, fmt.Errorf("load dataset: %w", err))
	}
	*totalRows += int64(tbl.NumRows())
	log.Debugf("dataset %s: %d rows, %d columns", ds.Name, tbl.NumRows(), tbl.NumColumns())

	if insp != nil {
		if n, err := insp.FetchRowCount(ctx, ds.Name); err == nil && int(n) != tbl.NumRows() {
			log.Warnf("dataset %s: loaded %d rows but source reports %d", ds.Name, tbl.NumRows(), n)
		}
	}

	rep := &runner.Report{}
	var specs []runner.Spec
	for _, chk := range ds.Checks {
		spec, err := chk.Spec()
		if err != nil {
			rep.Results = append(rep.Results, errorRow(ds.Name, chk.Type, err))
			continue
		}
		if ra, ok := spec.(checks.RecordAnomalies); ok {
			if hist == nil {
				rep.Results = append(rep.Results, errorRow(ds.Name, chk.Type, errors.New("history source not configured")))
				continue
			}
			counts, err := hist.Fetch(ctx, ds.Name)
			if err != nil {
				rep.Results = append(rep.Results, errorRow(ds.Name, chk.Type, err))
				continue
			}
			log.Debugf("dataset %s: %d historical record counts", ds.Name, len(counts))
			current := float64(tbl.NumRows())
			ra.Counts = counts
			ra.CurrentCount = &current
			spec = ra
		}
		specs = append(specs, runner.Spec{Dataset: ds.Name, Check: spec})
	}

	run := runner.Run(checks.Consistency{}, tbl, specs)
	rep.Results = append(rep.Results, run.Results...)
	return rep
}

func loadDataset(ctx context.Context, src config.SourceConfig, insp *mysql.Inspector, ds config.DatasetConfig) (*dataset.Table, error) {
	switch src.Type {
	case "mysql":
		return insp.LoadTable(ctx, ds.Name)
	case "parquet":
		return dataset.ReadParquetFile(ctx, datasetPath(src, ds))
	default:
		return dataset.ReadCSVFile(datasetPath(src, ds))
	}
}

func datasetPath(src config.SourceConfig, ds config.DatasetConfig) string {
	if ds.Path != "" {
		return ds.Path
	}
	return src.Path
}

func errorReport(ds config.DatasetConfig, err error) *runner.Report {
	rep := &runner.Report{}
	for _, chk := range ds.Checks {
		rep.Results = append(rep.Results, errorRow(ds.Name, chk.Type, err))
	}
	return rep
}

func errorRow(name, check string, err error) types.CheckResult {
	return types.CheckResult{
		Dataset: name,
		Check:   check,
		Message: err.Error(),
		Status:  runner.StatusError,
	}
}
