package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"diptab/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print diptab version",
		RunE: func(_ *cobra.Command, _ []string) error {
			fmt.Printf("diptab version %s", version.Version)
			if version.GitCommit != "" {
				fmt.Printf(" (%s)", version.GitCommit)
			}
			fmt.Println()
			return nil
		},
	}
}
