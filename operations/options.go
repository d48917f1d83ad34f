// Package operations combines Tables: joins, stacking, unique and group-by
// reductions, along with the metadata merging they share
package operations

import (
	"log/slog"
	"strconv"

	"github.com/go-sif/tabula/config"
	"github.com/go-sif/tabula/table"
)

// Options configure an operation combining several Tables
type Options struct {
	Config    *config.Config // Config defaults to the configuration of the first input Table
	Logger    *slog.Logger   // Logger defaults to the logger of the first input Table
	MergeMeta MergeFunc      // MergeMeta, if set, resolves metadata conflicts instead of Config.MetaConflict
}

func (o Options) resolve(first *table.Table) (*config.Config, *slog.Logger) {
	conf, logger := o.Config, o.Logger
	if conf == nil {
		if first != nil {
			conf = first.Config()
		} else {
			conf = config.Global()
		}
	}
	if logger == nil {
		if first != nil && o.Config == nil {
			logger = first.Logger()
		} else {
			logger = conf.Logger()
		}
	}
	return conf, logger
}

// tableName labels the i-th input Table in renamed columns
func tableName(conf *config.Config, i int) string {
	if i < len(conf.TableNames) {
		return conf.TableNames[i]
	}
	return strconv.Itoa(i + 1)
}

// renamer picks names for colliding columns, avoiding every name of the input Tables
type renamer struct {
	conf  *config.Config
	taken map[string]bool
}

func newRenamer(conf *config.Config, tables ...*table.Table) *renamer {
	taken := make(map[string]bool)
	for _, t := range tables {
		for _, name := range t.ColumnNames() {
			taken[name] = true
		}
	}
	return &renamer{conf: conf, taken: taken}
}

// rename applies Config.UniqueNameTemplate for the i-th Table, then appends
// _2, _3... until the name is unused
func (r *renamer) rename(name string, i int) string {
	base := r.conf.UniqueName(name, tableName(r.conf, i))
	candidate := base
	for n := 2; r.taken[candidate]; n++ {
		candidate = base + "_" + strconv.Itoa(n)
	}
	r.taken[candidate] = true
	return candidate
}

func anyMasked(tables []*table.Table) bool {
	for _, t := range tables {
		if t.Masked() {
			return true
		}
	}
	return false
}
