package config

import (
	"github.com/sirupsen/logrus"

	"diptab/pkg/dip"
)

type Config interface {
	Density() float64
	DefaultSlope() float64
	DefaultMode() dip.Mode
	AllowNonRootAccess() bool

	SetDensity(float64)
	SetDefaultSlope(float64)
	SetDefaultMode(dip.Mode)
	SetAllowNonRootAccess(bool)

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error

	LogrusFields() logrus.Fields
}
