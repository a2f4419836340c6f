package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"diptab/pkg/client"
	"diptab/pkg/dip"
)

// NewRecordsCommand manages the calibration readings held by a running
// session daemon.
func NewRecordsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "records",
		Aliases: []string{"r"},
		Short:   "Manage calibration readings in the running session",
		GroupID: gAdvanced,
	}

	cmd.AddCommand(
		newRecordsAddCommand(),
		newRecordsListCommand(),
		newRecordsEditCommand(),
		newRecordsDeleteCommand(),
		newRecordsClearCommand(),
		newRecordsTableCommand(),
		newRecordsDownloadCommand(),
	)

	return cmd
}

func newRecordsAddCommand() *cobra.Command {
	var kg, dipText string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a calibration reading to the session",
		RunE: func(_ *cobra.Command, _ []string) error {
			r, err := client.NewClient(unixSocketPath).AddRecord(kg, dipText)
			if err != nil {
				return err
			}
			printRecord(-1, r)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&kg, "kg", "", "measured mass in KG")
	f.StringVar(&dipText, "dip", "", "dip-stick level")

	return cmd
}

func newRecordsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the session's calibration readings",
		RunE: func(_ *cobra.Command, _ []string) error {
			records, err := client.NewClient(unixSocketPath).GetRecords()
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("No calibration readings in the session.")
				return nil
			}

			fmt.Println(bold("%5s%12s%12s%12s", "#", "KG", "DIP", "DIP(MM)"))
			for i, r := range records {
				printRecord(i, r)
			}
			return nil
		},
	}
}

func newRecordsEditCommand() *cobra.Command {
	var kg, dipText string

	cmd := &cobra.Command{
		Use:   "edit [index]",
		Short: "Replace the reading at the given index",
		RunE: func(_ *cobra.Command, args []string) error {
			index, err := parseIntArg(args, "record index")
			if err != nil {
				return err
			}

			r, err := client.NewClient(unixSocketPath).UpdateRecord(index, kg, dipText)
			if err != nil {
				return err
			}
			printRecord(index, r)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&kg, "kg", "", "measured mass in KG")
	f.StringVar(&dipText, "dip", "", "dip-stick level")

	return cmd
}

func newRecordsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [index]",
		Aliases: []string{"rm"},
		Short:   "Delete the reading at the given index",
		RunE: func(_ *cobra.Command, args []string) error {
			index, err := parseIntArg(args, "record index")
			if err != nil {
				return err
			}
			return client.NewClient(unixSocketPath).DeleteRecord(index)
		},
	}
}

func newRecordsClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every reading in the session",
		RunE: func(_ *cobra.Command, _ []string) error {
			return client.NewClient(unixSocketPath).ClearRecords()
		},
	}
}

func newRecordsTableCommand() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the DIP table for the session's readings",
		RunE: func(_ *cobra.Command, _ []string) error {
			t, err := client.NewClient(unixSocketPath).GetTable(dip.Mode(mode))
			if err != nil {
				return err
			}
			if len(t.Rows) == 0 {
				fmt.Println("No calibration readings in the session, nothing to tabulate.")
				return nil
			}
			printTable(os.Stdout, *t)
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", `table quantity, "kg" or "litre" (default from daemon config)`)

	return cmd
}

func newRecordsDownloadCommand() *cobra.Command {
	var (
		mode   string
		format string
		output string
		raw    bool
	)

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download the session's table as CSV or PDF",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := client.NewClient(unixSocketPath)

			var data []byte
			var err error
			switch format {
			case "csv":
				data, err = c.GetCSV(dip.Mode(mode))
			case "pdf":
				data, err = c.GetPDF(dip.Mode(mode), raw)
			default:
				return fmt.Errorf(`format must be "csv" or "pdf", got %q`, format)
			}
			if err != nil {
				return err
			}

			if output == "" {
				output = "output." + format
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return err
			}

			fmt.Printf("Saved %d bytes to %s\n", len(data), output)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&mode, "mode", "m", "", `table quantity, "kg" or "litre" (default from daemon config)`)
	f.StringVarP(&format, "format", "f", "csv", `download format, "csv" or "pdf"`)
	f.StringVarP(&output, "output", "o", "", "output file path (default output.<format>)")
	f.BoolVar(&raw, "raw", false, "PDF only: unconverted KG values regardless of mode")

	return cmd
}

// printRecord prints one reading in the list layout. Pass -1 for index
// when the position is unknown.
func printRecord(index int, r dip.Record) {
	pos := ""
	if index >= 0 {
		pos = fmt.Sprintf("%d", index)
	}
	fmt.Printf("%5s%12.2f%12.2f%12.2f\n", pos, r.KG, r.DIP, r.DIPMM)
}
