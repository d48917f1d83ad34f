// Package config holds the process-wide defaults consulted when Tables are constructed
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/internal/util"
	"github.com/go-sif/tabula/logging"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// Config holds the defaults a Table captures at construction time
type Config struct {
	Masked             bool                      // Masked gives every column of new Tables a mask
	UnitPolicy         tabula.UnitPolicy         // UnitPolicy decides how unit-bearing columns are stored
	IndexEngine        tabula.IndexEngine        // IndexEngine backs indexes created without an explicit engine
	MissingPolicy      tabula.MissingPolicy      // MissingPolicy decides how indexes treat missing keys
	MetaConflict       tabula.MetaConflictPolicy // MetaConflict resolves metadata conflicts in joins and stacks
	DefaultNameFormat  string                    // DefaultNameFormat names unnamed columns, e.g. "col%d"
	UniqueNameTemplate string                    // UniqueNameTemplate renames colliding columns, e.g. "{name}_{table}"
	TableNames         []string                  // TableNames label the inputs of joins and stacks in renamed columns
	LogLevel           string                    // LogLevel is the level name used when no logger is supplied
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Masked:             false,
		UnitPolicy:         tabula.AlwaysPlainColumn,
		IndexEngine:        tabula.SortedArrayEngine,
		MissingPolicy:      tabula.ExcludeMissing,
		MetaConflict:       tabula.FirstWins,
		DefaultNameFormat:  "col%d",
		UniqueNameTemplate: "{name}_{table}",
		TableNames:         []string{"1", "2"},
		LogLevel:           "warn",
	}
}

// Clone returns an independent copy of this Config
func (c *Config) Clone() *Config {
	res := *c
	res.TableNames = append([]string(nil), c.TableNames...)
	return &res
}

// Logger builds a stderr logger at this Config's level
func (c *Config) Logger() *slog.Logger {
	return logging.NewFromName(c.LogLevel)
}

// ColumnName produces the default name of the column at position i
func (c *Config) ColumnName(i int) string {
	return fmt.Sprintf(c.DefaultNameFormat, i)
}

// UniqueName renames a column of the named input table using UniqueNameTemplate
func (c *Config) UniqueName(name string, table string) string {
	return strings.NewReplacer("{name}", name, "{table}", table).Replace(c.UniqueNameTemplate)
}

var knownLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "warning": true, "error": true, "fatal": true,
}

// Validate checks every field of this Config, reporting all problems at once
func (c *Config) Validate() error {
	var errs *multierror.Error
	if !strings.Contains(c.DefaultNameFormat, "%d") {
		errs = multierror.Append(errs, fmt.Errorf("default name format %q must contain %%d", c.DefaultNameFormat))
	}
	if !strings.Contains(c.UniqueNameTemplate, "{name}") || !strings.Contains(c.UniqueNameTemplate, "{table}") {
		errs = multierror.Append(errs, fmt.Errorf("unique name template %q must contain {name} and {table}", c.UniqueNameTemplate))
	}
	if len(c.TableNames) < 2 {
		errs = multierror.Append(errs, fmt.Errorf("at least two table names are required, got %d", len(c.TableNames)))
	}
	seen := make(map[string]bool, len(c.TableNames))
	for _, name := range c.TableNames {
		if seen[name] {
			errs = multierror.Append(errs, fmt.Errorf("table name %q is repeated", name))
		}
		seen[name] = true
	}
	if !knownLevels[strings.ToLower(strings.TrimSpace(c.LogLevel))] {
		errs = multierror.Append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	if errs != nil {
		errs.ErrorFormat = util.FormatMultiError
	}
	return errs.ErrorOrNil()
}

// fileConfig is the YAML representation of a Config. Absent keys keep their defaults.
type fileConfig struct {
	Masked             *bool    `yaml:"masked"`
	UnitPolicy         string   `yaml:"unit_policy"`
	IndexEngine        string   `yaml:"index_engine"`
	MissingPolicy      string   `yaml:"missing_policy"`
	MetaConflict       string   `yaml:"meta_conflict"`
	DefaultNameFormat  string   `yaml:"default_name_format"`
	UniqueNameTemplate string   `yaml:"unique_name_template"`
	TableNames         []string `yaml:"table_names"`
	LogLevel           string   `yaml:"log_level"`
}

// Load reads a YAML document, applying it on top of Default
func Load(r io.Reader) (*Config, error) {
	var fc fileConfig
	if err := yaml.NewDecoder(r).Decode(&fc); err != nil && err != io.EOF {
		return nil, err
	}
	c := Default()
	var errs *multierror.Error
	if fc.Masked != nil {
		c.Masked = *fc.Masked
	}
	if fc.UnitPolicy != "" {
		p, err := tabula.ParseUnitPolicy(fc.UnitPolicy)
		errs = multierror.Append(errs, err)
		c.UnitPolicy = p
	}
	if fc.IndexEngine != "" {
		e, err := tabula.ParseIndexEngine(fc.IndexEngine)
		errs = multierror.Append(errs, err)
		c.IndexEngine = e
	}
	if fc.MissingPolicy != "" {
		p, err := tabula.ParseMissingPolicy(fc.MissingPolicy)
		errs = multierror.Append(errs, err)
		c.MissingPolicy = p
	}
	if fc.MetaConflict != "" {
		p, err := tabula.ParseMetaConflictPolicy(fc.MetaConflict)
		errs = multierror.Append(errs, err)
		c.MetaConflict = p
	}
	if fc.DefaultNameFormat != "" {
		c.DefaultNameFormat = fc.DefaultNameFormat
	}
	if fc.UniqueNameTemplate != "" {
		c.UniqueNameTemplate = fc.UniqueNameTemplate
	}
	if fc.TableNames != nil {
		c.TableNames = fc.TableNames
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	errs = multierror.Append(errs, c.Validate())
	errs.ErrorFormat = util.FormatMultiError
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return c, nil
}

// Marshal renders this Config as a YAML document accepted by Load
func (c *Config) Marshal() ([]byte, error) {
	masked := c.Masked
	return yaml.Marshal(&fileConfig{
		Masked:             &masked,
		UnitPolicy:         c.UnitPolicy.String(),
		IndexEngine:        c.IndexEngine.String(),
		MissingPolicy:      c.MissingPolicy.String(),
		MetaConflict:       c.MetaConflict.String(),
		DefaultNameFormat:  c.DefaultNameFormat,
		UniqueNameTemplate: c.UniqueNameTemplate,
		TableNames:         c.TableNames,
		LogLevel:           c.LogLevel,
	})
}

var (
	globalLock sync.RWMutex
	global     = Default()
)

// Global returns a copy of the process-wide configuration
func Global() *Config {
	globalLock.RLock()
	defer globalLock.RUnlock()
	return global.Clone()
}

// Init replaces the process-wide configuration
func Init(c *Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	globalLock.Lock()
	defer globalLock.Unlock()
	global = c.Clone()
	return nil
}

// Override applies fn to a copy of the process-wide configuration and installs
// the result, returning a function which restores the previous configuration
func Override(fn func(c *Config)) (restore func(), err error) {
	globalLock.Lock()
	defer globalLock.Unlock()
	previous := global
	next := previous.Clone()
	fn(next)
	if err := next.Validate(); err != nil {
		return nil, err
	}
	global = next
	return func() {
		globalLock.Lock()
		defer globalLock.Unlock()
		global = previous
	}, nil
}
