package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"diptab/pkg/dip"
)

// NewConvertCommand is the one-off mass-to-volume calculator.
func NewConvertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "convert [kg]",
		Aliases: []string{"c"},
		Short:   "Convert a mass in KG to litres",
		Long: `Convert a mass in KG to litres using the configured milk density
(` + strconv.FormatFloat(dip.DefaultDensity, 'f', -1, 64) + ` KG/L unless overridden in the config file).`,
		GroupID: gBasic,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			conf := loadConfig()

			kg := dip.ParseDecimal(args[0])
			litres := dip.KGToLitresAt(kg, conf.Density())
			fmt.Printf("%.2f KG = %s litres\n", kg, bold("%.2f", litres))
			return nil
		},
	}

	return cmd
}
