// Package config resolves runtime settings from defaults, an optional
// .estimator.yaml file, ESTIMATOR_* environment variables and command-line
// flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/Ehphp/RequestEstimator-sub000/internal/scheduler"
)

const (
	// EnvPrefix is prepended to every environment override, e.g. ESTIMATOR_DB.
	EnvPrefix = "ESTIMATOR"
	// FileName is the config file name searched in . and $HOME (without extension).
	FileName = ".estimator"
)

// Keys shared by the config file, the environment and the root flags.
const (
	KeyConfig          = "config"
	KeyDB              = "db"
	KeyCatalog         = "catalog"
	KeyDevelopers      = "developers"
	KeyExcludeWeekends = "exclude-weekends"
	KeyPolicy          = "policy"
	KeyHolidays        = "holidays"
	KeySort            = "sort"
	KeyVerbose         = "verbose"
)

// Config is the resolved, unvalidated runtime configuration.
type Config struct {
	DBPath          string   `mapstructure:"db"`
	CatalogPath     string   `mapstructure:"catalog"`
	Developers      int      `mapstructure:"developers"`
	ExcludeWeekends bool     `mapstructure:"exclude-weekends"`
	Policy          string   `mapstructure:"policy"`
	Holidays        []string `mapstructure:"holidays"`
	SortKey         string   `mapstructure:"sort"`
	Verbose         bool     `mapstructure:"verbose"`
}

// DefaultDBPath returns ~/.estimator/estimator.db, or a relative path when
// the home directory is unknown.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".estimator", "estimator.db")
	}
	return filepath.Join(home, ".estimator", "estimator.db")
}

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyDB, DefaultDBPath())
	v.SetDefault(KeyCatalog, "")
	v.SetDefault(KeyDevelopers, 1)
	v.SetDefault(KeyExcludeWeekends, true)
	v.SetDefault(KeyPolicy, string(domain.PolicyNeutral))
	v.SetDefault(KeyHolidays, []string{})
	v.SetDefault(KeySort, string(domain.SortCreatedAsc))
	v.SetDefault(KeyVerbose, false)
	return v
}

// BindFlags lets explicitly set flags override file and environment values.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var errs []error
	flags.VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(f.Name, f); err != nil {
			errs = append(errs, fmt.Errorf("binding flag %s: %w", f.Name, err))
		}
	})
	return errors.Join(errs...)
}

// Load reads the config file (if any) and unmarshals every resolved value.
// A missing default config file is not an error; a missing explicit one is.
func Load(v *viper.Viper) (*Config, error) {
	if file := v.GetString(KeyConfig); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return &cfg, nil
}

// SchedulingPolicy parses the configured policy.
func (c *Config) SchedulingPolicy() (domain.SchedulingPolicy, error) {
	p, ok := domain.ParsePolicy(c.Policy)
	if !ok {
		return "", fmt.Errorf("policy %q must be neutral or priority_first", c.Policy)
	}
	return p, nil
}

// HolidayDates parses the configured holidays (YYYY-MM-DD). Blank entries
// are skipped.
func (c *Config) HolidayDates() ([]time.Time, error) {
	out := make([]time.Time, 0, len(c.Holidays))
	for _, h := range c.Holidays {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		d, err := time.Parse(scheduler.DateLayout, h)
		if err != nil {
			return nil, fmt.Errorf("holiday %q: invalid date format (expected YYYY-MM-DD)", h)
		}
		out = append(out, d)
	}
	return out, nil
}

// Validate checks values the projector and repositories cannot accept.
func (c *Config) Validate() error {
	var errs []error
	if c.DBPath == "" {
		errs = append(errs, fmt.Errorf("db path is required"))
	}
	if c.Developers < 1 {
		errs = append(errs, fmt.Errorf("developers must be at least 1, got %d", c.Developers))
	}
	if _, err := c.SchedulingPolicy(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.HolidayDates(); err != nil {
		errs = append(errs, err)
	}
	if !domain.ValidSortKeys[c.SortKey] {
		errs = append(errs, fmt.Errorf("sort %q is not a known sort key", c.SortKey))
	}
	return errors.Join(errs...)
}
