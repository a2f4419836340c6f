package config

import (
	"io"
	"os"
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"diptab/pkg/dip"
	"diptab/pkg/utils/ptr"
)

var (
	defaultFileConfig = &RawFileConfig{
		Density:            ptr.To(dip.DefaultDensity),
		DefaultSlope:       ptr.To(dip.DefaultSlope),
		DefaultMode:        ptr.To(string(dip.ModeKG)),
		AllowNonRootAccess: ptr.To(false),
	}
)

var _ Config = &File{}

// File is a Config backed by a YAML file. Absent keys fall back to the
// package defaults, so an empty or missing file is a valid configuration.
type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = defaultFileConfig
	}

	return &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}
}

// RawFileConfig is the on-disk shape of the config file. Pointer fields
// distinguish "not set" from a zero value.
type RawFileConfig struct {
	Density            *float64 `yaml:"density,omitempty" json:"density,omitempty"`
	DefaultSlope       *float64 `yaml:"defaultSlope,omitempty" json:"defaultSlope,omitempty"`
	DefaultMode        *string  `yaml:"defaultMode,omitempty" json:"defaultMode,omitempty"`
	AllowNonRootAccess *bool    `yaml:"allowNonRootAccess,omitempty" json:"allowNonRootAccess,omitempty"`
}

func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	return &RawFileConfig{
		Density:            ptr.To(c.Density()),
		DefaultSlope:       ptr.To(c.DefaultSlope()),
		DefaultMode:        ptr.To(string(c.DefaultMode())),
		AllowNonRootAccess: ptr.To(c.AllowNonRootAccess()),
	}, nil
}

func (f *File) Density() float64 {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.Density != nil && *f.c.Density > 0 {
		return *f.c.Density
	}
	return *defaultFileConfig.Density
}

func (f *File) DefaultSlope() float64 {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.DefaultSlope != nil && *f.c.DefaultSlope != 0 {
		return *f.c.DefaultSlope
	}
	return *defaultFileConfig.DefaultSlope
}

func (f *File) DefaultMode() dip.Mode {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.DefaultMode != nil {
		if m := dip.Mode(*f.c.DefaultMode); m.Valid() {
			return m
		}
	}
	return dip.Mode(*defaultFileConfig.DefaultMode)
}

func (f *File) AllowNonRootAccess() bool {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.AllowNonRootAccess != nil {
		return *f.c.AllowNonRootAccess
	}
	return *defaultFileConfig.AllowNonRootAccess
}

func (f *File) SetDensity(v float64) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.Density = &v
}

func (f *File) SetDefaultSlope(v float64) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.DefaultSlope = &v
}

func (f *File) SetDefaultMode(m dip.Mode) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	s := string(m)
	f.c.DefaultMode = &s
}

func (f *File) SetAllowNonRootAccess(b bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.AllowNonRootAccess = &b
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		// If the file is empty, return the empty config.
		// Do not make f.c a nil.
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	err = yaml.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	b, err := yaml.Marshal(f.c)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to marshal config")
	}

	err = os.WriteFile(f.filepath, b, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to write file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	return logrus.Fields{
		"density":            f.Density(),
		"defaultSlope":       f.DefaultSlope(),
		"defaultMode":        f.DefaultMode(),
		"allowNonRootAccess": f.AllowNonRootAccess(),
	}
}
