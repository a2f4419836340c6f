package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"diptab/pkg/config"
	"diptab/pkg/dip"
)

func parseIntArg(args []string, valueName string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("invalid number of arguments")
	}

	value, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", valueName, err)
	}

	return value, nil
}

// loadConfig never fails the command: a broken config file is logged and
// the defaults carry on, same as an absent one.
func loadConfig() config.Config {
	conf, err := config.NewFile(configPath)
	if err != nil {
		logrus.Warnf("failed to load config, using defaults: %v", err)
		return config.NewFileFromConfig(nil, configPath)
	}
	return conf
}

func resolveMode(s string, conf config.Config) (dip.Mode, error) {
	if s == "" {
		return conf.DefaultMode(), nil
	}
	m := dip.Mode(s)
	if !m.Valid() {
		return "", fmt.Errorf("mode must be %q or %q, got %q", dip.ModeKG, dip.ModeLitre, s)
	}
	return m, nil
}

// recordFlags collect calibration readings from a CSV file, inline
// flags, or both.
type recordFlags struct {
	file   string
	inline []string
}

func (rf *recordFlags) addTo(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&rf.file, "records", "r", "", "CSV file of calibration readings (columns: kg,dip)")
	f.StringArrayVar(&rf.inline, "record", nil, `inline reading "kg=100,dip=2.0" (repeatable)`)
}

func (rf *recordFlags) load() ([]dip.Record, error) {
	var records []dip.Record

	if rf.file != "" {
		fromFile, err := readRecordsCSV(rf.file)
		if err != nil {
			return nil, err
		}
		records = append(records, fromFile...)
	}

	for _, s := range rf.inline {
		records = append(records, parseInlineRecord(s))
	}

	return records, nil
}

// readRecordsCSV reads "kg,dip" lines. A leading header row is skipped;
// any other malformed number degrades to 0, matching the entry form's
// lenient behavior.
func readRecordsCSV(path string) ([]dip.Record, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to open records file %s", path)
	}
	defer func() {
		if err := fp.Close(); err != nil {
			logrus.Warnf("failed to close file %s", path)
		}
	}()

	cr := csv.NewReader(fp)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var records []dip.Record
	line := 0
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "failed to read records file %s", path)
		}
		line++

		if len(fields) < 2 {
			logrus.Warnf("%s line %d: want 2 fields (kg,dip), got %d; skipping", path, line, len(fields))
			continue
		}
		if line == 1 && !looksNumeric(fields[0]) && !looksNumeric(fields[1]) {
			// Header row.
			continue
		}
		records = append(records, dip.NewRecord(fields[0], fields[1]))
	}

	return records, nil
}

func looksNumeric(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

// parseInlineRecord parses "kg=100,dip=2.0". Unknown keys are ignored
// and missing values degrade to 0.
func parseInlineRecord(s string) dip.Record {
	var kg, dipText string
	for _, part := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(strings.ToLower(k)) {
		case "kg":
			kg = v
		case "dip":
			dipText = v
		}
	}
	return dip.NewRecord(kg, dipText)
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}

// printTable renders the table for the terminal: bold headers, one
// 8-column cell per tenth.
func printTable(w io.Writer, t dip.Table) {
	header := make([]string, 0, len(t.Headers))
	for _, h := range t.Headers {
		header = append(header, fmt.Sprintf("%8s", h))
	}
	fmt.Fprintln(w, bold("%s", strings.Join(header, "")))

	for _, row := range t.Rows {
		fmt.Fprintf(w, "%8d", row.DIP)
		for _, cell := range row.Cells {
			fmt.Fprintf(w, "%8.2f", cell)
		}
		fmt.Fprintln(w)
	}
}
