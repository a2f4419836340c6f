package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"diptab/pkg/daemon"
	"diptab/pkg/version"
)

// NewServeCommand starts the calibration session daemon.
func NewServeCommand() *cobra.Command {
	var alwaysAllowNonRootAccess bool

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"s", "daemon"},
		Short:   "Run the calibration session daemon",
		Long: `Run the calibration session daemon: an in-memory record list behind an
HTTP API on a unix socket. Records live for the duration of the session
and are discarded on shutdown.`,
		GroupID: gAdvanced,
		RunE: func(_ *cobra.Command, _ []string) error {
			logrus.WithFields(logrus.Fields{
				"version":   version.Version,
				"gitCommit": version.GitCommit,
			}).Infof("diptab daemon starting")

			return daemon.Run(configPath, unixSocketPath, alwaysAllowNonRootAccess)
		},
	}

	cmd.Flags().BoolVar(&alwaysAllowNonRootAccess, "always-allow-non-root-access", false, "open the daemon socket to non-root users regardless of config")

	return cmd
}
