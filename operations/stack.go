package operations

import (
	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/errors"
	"github.com/go-sif/tabula/internal/util"
	"github.com/go-sif/tabula/table"
	multierror "github.com/hashicorp/go-multierror"
)

// StackOptions configure VStack and HStack
type StackOptions struct {
	Options
	Type tabula.JoinType // Type is tabula.InnerJoin (default), tabula.OuterJoin or tabula.ExactJoin
}

func checkStackType(joinType tabula.JoinType) error {
	switch joinType {
	case tabula.InnerJoin, tabula.OuterJoin, tabula.ExactJoin:
		return nil
	}
	return errors.UnsupportedOperationError{Name: joinType.String(), Operation: "stacking"}
}

func tableMetas(tables []*table.Table) []tabula.Meta {
	metas := make([]tabula.Meta, len(tables))
	for i, t := range tables {
		metas[i] = t.Meta()
	}
	return metas
}

// VStack concatenates the rows of several Tables. InnerJoin keeps the columns
// common to every Table, OuterJoin keeps all columns and fills the gaps with
// missing values, and ExactJoin requires every Table to have the same columns.
// Columns of mixed integer and float types are promoted to float64.
func VStack(tables []*table.Table, opts StackOptions) (*table.Table, error) {
	if len(tables) == 0 {
		return table.New(nil, table.Options{Config: opts.Config, Logger: opts.Logger})
	}
	if err := checkStackType(opts.Type); err != nil {
		return nil, err
	}
	conf, logger := opts.resolve(tables[0])
	merger := &MetaMerger{Policy: conf.MetaConflict, Func: opts.MergeMeta, Logger: logger}

	var order []string
	counts := make(map[string]int)
	for _, t := range tables {
		for _, name := range t.ColumnNames() {
			if counts[name] == 0 {
				order = append(order, name)
			}
			counts[name]++
		}
	}
	var errs *multierror.Error
	var names []string
	for _, name := range order {
		switch {
		case counts[name] == len(tables) || opts.Type == tabula.OuterJoin:
			names = append(names, name)
		case opts.Type == tabula.ExactJoin:
			for _, t := range tables {
				if !t.HasColumn(name) {
					errs = multierror.Append(errs, errors.ColumnNotFound(name))
				}
			}
		}
	}

	lens := make([]int, len(tables))
	for i, t := range tables {
		lens[i] = t.Len()
	}
	cols := make([]interface{}, 0, len(names))
	for _, name := range names {
		s := &stacker{name: name, parts: make([]tabula.Column, len(tables)), lens: lens, merger: merger}
		for i, t := range tables {
			if col, err := t.Column(name); err == nil {
				s.parts[i] = col
			}
		}
		col, err := s.stack()
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		cols = append(cols, col)
	}
	if errs != nil {
		errs.ErrorFormat = util.FormatMultiError
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	meta, err := merger.Merge(tableMetas(tables)...)
	if err != nil {
		return nil, err
	}
	logger.Debug("stacked tables vertically", "type", opts.Type.String(), "tables", len(tables), "columns", len(names))
	return table.New(cols, table.Options{Names: names, Meta: meta, Masked: anyMasked(tables), Config: conf, Logger: logger})
}

// HStack places the columns of several Tables side by side. ExactJoin requires
// every Table to have the same length, InnerJoin truncates to the shortest Table,
// and OuterJoin pads shorter Tables with missing values. Column names appearing
// in more than one Table are renamed using Config.UniqueNameTemplate.
func HStack(tables []*table.Table, opts StackOptions) (*table.Table, error) {
	if len(tables) == 0 {
		return table.New(nil, table.Options{Config: opts.Config, Logger: opts.Logger})
	}
	if err := checkStackType(opts.Type); err != nil {
		return nil, err
	}
	conf, logger := opts.resolve(tables[0])

	n := tables[0].Len()
	for _, t := range tables[1:] {
		switch opts.Type {
		case tabula.ExactJoin:
			if t.Len() != n {
				return nil, errors.LengthMismatchError{Name: "table", Expected: n, Actual: t.Len()}
			}
		case tabula.InnerJoin:
			if t.Len() < n {
				n = t.Len()
			}
		case tabula.OuterJoin:
			if t.Len() > n {
				n = t.Len()
			}
		}
	}

	counts := make(map[string]int)
	for _, t := range tables {
		for _, name := range t.ColumnNames() {
			counts[name]++
		}
	}
	renames := newRenamer(conf, tables...)
	var names []string
	var cols []interface{}
	for i, t := range tables {
		for _, col := range t.Columns() {
			name := col.Info().Name
			var resized tabula.Column
			var err error
			if t.Len() >= n {
				resized, err = sliceColumn(col, 0, n)
			} else {
				rows := allRows(n)
				for j := t.Len(); j < n; j++ {
					rows[j] = -1
				}
				resized, err = takeColumn(col, rows)
			}
			if err != nil {
				return nil, err
			}
			if counts[name] > 1 {
				name = renames.rename(name, i)
			}
			names = append(names, name)
			cols = append(cols, resized)
		}
	}

	merger := &MetaMerger{Policy: conf.MetaConflict, Func: opts.MergeMeta, Logger: logger}
	meta, err := merger.Merge(tableMetas(tables)...)
	if err != nil {
		return nil, err
	}
	logger.Debug("stacked tables horizontally", "type", opts.Type.String(), "tables", len(tables), "rows", n)
	return table.New(cols, table.Options{Names: names, Meta: meta, Masked: anyMasked(tables), Config: conf, Logger: logger})
}
