// Package table implements Table, an ordered collection of equal-length named
// columns with row views and self-maintaining indexes
package table

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/column"
	"github.com/go-sif/tabula/config"
	"github.com/go-sif/tabula/errors"
	"github.com/go-sif/tabula/schema"
	"github.com/gofrs/uuid"
)

// Options configure the construction of a Table
type Options struct {
	Names  []string       // Names of the columns, in order. Defaults to the columns' own names, then Config.DefaultNameFormat.
	Meta   tabula.Meta    // Meta is copied into the Table's metadata
	Masked bool           // Masked gives every regular column a mask, in addition to Config.Masked
	Config *config.Config // Config defaults to config.Global()
	Logger *slog.Logger   // Logger defaults to a logger at Config.LogLevel
}

// Table is an ordered mapping from column names to equal-length columns.
// A Table is not safe for concurrent mutation.
type Table struct {
	id         string
	schema     *schema.Schema
	rows       int
	meta       tabula.Meta
	masked     bool
	unitPolicy tabula.UnitPolicy
	conf       *config.Config
	logger     *slog.Logger
	indexes    []tabula.Index
	unwatch    map[*schema.Field]func()
	indexErr   error
	owner      *ownerToken
}

// ownerToken claims the columns stored in a Table
type ownerToken struct {
	table string
}

// newTable creates a Table with no columns
func newTable(opts Options) (*Table, error) {
	conf := opts.Config
	if conf == nil {
		conf = config.Global()
	} else {
		conf = conf.Clone()
	}
	logger := opts.Logger
	if logger == nil {
		logger = conf.Logger()
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	meta := opts.Meta.Clone()
	if meta == nil {
		meta = tabula.Meta{}
	}
	return &Table{
		id:         id.String(),
		owner:      &ownerToken{table: id.String()},
		schema:     schema.CreateSchema(),
		meta:       meta,
		masked:     opts.Masked || conf.Masked,
		unitPolicy: conf.UnitPolicy,
		conf:       conf,
		logger:     logger,
		unwatch:    make(map[*schema.Field]func()),
	}, nil
}

// derive creates an empty Table sharing this Table's configuration, with a copy of its metadata
func (t *Table) derive() (*Table, error) {
	res, err := newTable(Options{Meta: t.meta, Masked: t.masked, Config: t.conf, Logger: t.logger})
	if err != nil {
		return nil, err
	}
	res.unitPolicy = t.unitPolicy
	return res, nil
}

// New creates a Table from a list of columns. Each entry may be a Go slice, a
// *column.Column or a tabula.MixinColumn; columns are copied, never shared.
// Every column must have the same length, and names must be unique.
func New(cols []interface{}, opts Options) (*Table, error) {
	t, err := newTable(opts)
	if err != nil {
		return nil, err
	}
	if err := t.populate(cols, opts.Names); err != nil {
		return nil, err
	}
	return t, nil
}

// NewQTable creates a Table which prefers quantity mixins for unit-bearing columns
func NewQTable(cols []interface{}, opts Options) (*Table, error) {
	conf := opts.Config
	if conf == nil {
		conf = config.Global()
	}
	conf = conf.Clone()
	conf.UnitPolicy = tabula.PreferQuantityMixin
	opts.Config = conf
	return New(cols, opts)
}

func (t *Table) populate(cols []interface{}, names []string) error {
	if names != nil && len(names) != len(cols) {
		return errors.LengthMismatchError{Name: "names", Expected: len(cols), Actual: len(names)}
	}
	converted := make([]tabula.Column, len(cols))
	seen := make(map[string]bool, len(cols))
	for i, data := range cols {
		name := ""
		if names != nil {
			name = names[i]
		} else if c, ok := data.(tabula.Column); ok && c.Info().Name != "" {
			name = c.Info().Name
		} else {
			name = t.conf.ColumnName(i)
		}
		if seen[name] {
			return errors.DuplicateNameError{Name: name}
		}
		seen[name] = true
		col, err := t.toColumn(name, data)
		if err != nil {
			return err
		}
		if i > 0 && col.Len() != converted[0].Len() {
			return errors.LengthMismatchError{Name: name, Expected: converted[0].Len(), Actual: col.Len()}
		}
		converted[i] = col
	}
	for _, col := range converted {
		if _, err := t.store(t.schema.NumColumns(), col); err != nil {
			return err
		}
	}
	return nil
}

// ID uniquely identifies this Table
func (t *Table) ID() string {
	return t.id
}

// Len returns the number of rows in this Table
func (t *Table) Len() int {
	return t.rows
}

// NumColumns returns the number of columns in this Table
func (t *Table) NumColumns() int {
	return t.schema.NumColumns()
}

// ColumnNames returns the names of the columns, in order
func (t *Table) ColumnNames() []string {
	return t.schema.ColumnNames()
}

// HasColumn returns true iff this Table has a column with the given name
func (t *Table) HasColumn(name string) bool {
	return t.schema.HasColumn(name)
}

// Column returns the named column: a *column.Column for regular columns, or the
// native mixin object
func (t *Table) Column(name string) (tabula.Column, error) {
	field, err := t.schema.GetField(name)
	if err != nil {
		return nil, err
	}
	return field.Column(), nil
}

// Regular returns the named column if it is a regular column
func (t *Table) Regular(name string) (*column.Column, error) {
	field, err := t.schema.GetField(name)
	if err != nil {
		return nil, err
	}
	if field.Kind() != tabula.RegularKind {
		return nil, errors.UnsupportedOperationError{Name: name, Operation: "access as a regular column"}
	}
	return field.Regular(), nil
}

// Columns returns every column, in order
func (t *Table) Columns() []tabula.Column {
	fields := t.schema.Fields()
	cols := make([]tabula.Column, len(fields))
	for i, f := range fields {
		cols[i] = f.Column()
	}
	return cols
}

// Meta returns the free-form metadata of this Table. It may be modified in place.
func (t *Table) Meta() tabula.Meta {
	return t.meta
}

// Masked returns true iff new regular columns are given a mask
func (t *Table) Masked() bool {
	return t.masked
}

// UnitPolicy returns the policy consulted when unit-bearing columns are assigned
func (t *Table) UnitPolicy() tabula.UnitPolicy {
	return t.unitPolicy
}

// Config returns a copy of the configuration this Table captured at construction
func (t *Table) Config() *config.Config {
	return t.conf.Clone()
}

// Logger returns the logger used by this Table
func (t *Table) Logger() *slog.Logger {
	return t.logger
}

// String renders a short description of this Table
func (t *Table) String() string {
	parts := make([]string, 0, t.NumColumns())
	for _, f := range t.schema.Fields() {
		parts = append(parts, fmt.Sprintf("%s:%s", f.Name(), f.TypeName()))
	}
	return fmt.Sprintf("Table(len=%d)[%s]", t.rows, strings.Join(parts, " "))
}

func (t *Table) checkRow(i int) error {
	if i < 0 || i >= t.rows {
		return errors.RowOutOfRange("table", i, t.rows)
	}
	return nil
}
