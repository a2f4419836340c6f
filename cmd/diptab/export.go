package main

import (
	"fmt"
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"diptab/pkg/dip"
	"diptab/pkg/export"
)

// NewExportCommand writes a generated table to a file in one of the two
// field formats.
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "export",
		Aliases: []string{"e"},
		Short:   "Export a DIP table to CSV or PDF",
		GroupID: gBasic,
	}

	cmd.AddCommand(
		newExportCSVCommand(),
		newExportPDFCommand(),
	)

	return cmd
}

func newExportCSVCommand() *cobra.Command {
	var (
		records recordFlags
		mode    string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Export the table as a CSV file",
		RunE: func(_ *cobra.Command, _ []string) error {
			conf := loadConfig()

			m, err := resolveMode(mode, conf)
			if err != nil {
				return err
			}
			recs, err := records.load()
			if err != nil {
				return err
			}

			t := dip.BuildTable(recs, dip.Options{
				Mode:         m,
				Density:      conf.Density(),
				DefaultSlope: conf.DefaultSlope(),
			})

			if output == "" {
				output = fmt.Sprintf("output_%s.csv", m)
			}
			fp, err := os.Create(output)
			if err != nil {
				return pkgerrors.Wrapf(err, "failed to create %s", output)
			}
			defer func() {
				if err := fp.Close(); err != nil {
					logrus.Warnf("failed to close file %s", output)
				}
			}()

			if err := export.WriteCSV(fp, t); err != nil {
				return err
			}

			logrus.Infof("wrote %d rows to %s", len(t.Rows), output)
			return nil
		},
	}

	records.addTo(cmd)
	f := cmd.Flags()
	f.StringVarP(&mode, "mode", "m", "", `table quantity, "kg" or "litre" (default from config)`)
	f.StringVarP(&output, "output", "o", "", "output file path (default output_<mode>.csv)")

	return cmd
}

func newExportPDFCommand() *cobra.Command {
	var (
		records recordFlags
		mode    string
		output  string
		raw     bool
	)

	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Export the table as a printable PDF",
		RunE: func(_ *cobra.Command, _ []string) error {
			conf := loadConfig()

			m, err := resolveMode(mode, conf)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("DIP Table (%s)", m)
			if raw {
				// The raw sheet reports unconverted mass regardless of
				// the configured display mode.
				m = dip.ModeKG
				title = "DIP Table (raw KG)"
			}

			recs, err := records.load()
			if err != nil {
				return err
			}

			t := dip.BuildTable(recs, dip.Options{
				Mode:         m,
				Density:      conf.Density(),
				DefaultSlope: conf.DefaultSlope(),
			})

			if output == "" {
				if raw {
					output = "output_raw.pdf"
				} else {
					output = fmt.Sprintf("output_%s.pdf", m)
				}
			}
			fp, err := os.Create(output)
			if err != nil {
				return pkgerrors.Wrapf(err, "failed to create %s", output)
			}
			defer func() {
				if err := fp.Close(); err != nil {
					logrus.Warnf("failed to close file %s", output)
				}
			}()

			if err := export.WritePDF(fp, t, title); err != nil {
				return err
			}

			logrus.Infof("wrote %d rows to %s", len(t.Rows), output)
			return nil
		},
	}

	records.addTo(cmd)
	f := cmd.Flags()
	f.StringVarP(&mode, "mode", "m", "", `table quantity, "kg" or "litre" (default from config)`)
	f.StringVarP(&output, "output", "o", "", "output file path (default output_<mode>.pdf)")
	f.BoolVar(&raw, "raw", false, "export unconverted KG values regardless of mode")

	return cmd
}
