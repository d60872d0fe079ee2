package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderjulianmartinez/data-checks/pkg/checks"
)

var checkHelp = map[checks.Kind]string{
	checks.KindUniqueIdentifiers:     "duplicate values in an identifier column (column)",
	checks.KindSchemaConsistency:     "expected columns missing from the dataset (expected_columns)",
	checks.KindNonNull:               "null values in the listed columns (columns)",
	checks.KindThreshold:             "values outside a fixed range (column, min, max)",
	checks.KindDynamicThreshold:      "values outside a tolerance band around a reference (column, reference, tolerance)",
	checks.KindVariance:              "sample variance above a ceiling (column, max_variance)",
	checks.KindRecordAnomalies:       "record count outside 3 standard deviations of history (lookback)",
	checks.KindNonZeroRecords:        "dataset has at least one record",
	checks.KindColumnNameConsistency: "historical columns missing from the dataset (historical_columns)",
}

var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "List the available checks",
	Long:  `Print the check catalog with the configuration parameters each check takes.`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, k := range checks.Kinds() {
			fmt.Printf("%-25s %s\n", k, checkHelp[k])
		}
	},
}

func init() {
	rootCmd.AddCommand(checksCmd)
}
