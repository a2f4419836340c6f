package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"diptab/pkg/dip"
)

// NewTableCommand builds the table from locally supplied readings and
// prints it to stdout, no daemon involved.
func NewTableCommand() *cobra.Command {
	var (
		records recordFlags
		mode    string
		start   float64
		end     float64
	)

	cmd := &cobra.Command{
		Use:     "table",
		Aliases: []string{"t"},
		Short:   "Generate a DIP table from calibration readings",
		Long: `Generate a dense lookup table, one value per 0.1 DIP increment, from
calibration readings supplied via --records or repeated --record flags.`,
		GroupID: gBasic,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf := loadConfig()

			m, err := resolveMode(mode, conf)
			if err != nil {
				return err
			}

			recs, err := records.load()
			if err != nil {
				return err
			}

			opts := dip.Options{
				Mode:         m,
				Density:      conf.Density(),
				DefaultSlope: conf.DefaultSlope(),
			}
			if cmd.Flags().Changed("start") {
				opts.Start = &start
			}
			if cmd.Flags().Changed("end") {
				opts.End = &end
			}

			t := dip.BuildTable(recs, opts)
			if len(t.Rows) == 0 {
				fmt.Println("No calibration readings supplied, nothing to tabulate.")
				return nil
			}

			printTable(os.Stdout, t)
			return nil
		},
	}

	records.addTo(cmd)
	f := cmd.Flags()
	f.StringVarP(&mode, "mode", "m", "", `table quantity, "kg" or "litre" (default from config)`)
	f.Float64Var(&start, "start", 0, "first integer DIP of the table (default: lowest calibrated DIP)")
	f.Float64Var(&end, "end", 0, "last DIP of the table (default: highest calibrated DIP)")

	return cmd
}
