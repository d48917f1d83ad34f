package table

import (
	"context"
	"strings"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/errors"
	"github.com/go-sif/tabula/index"
	"github.com/go-sif/tabula/schema"
)

// keySource serves the keys of an Index from a fixed list of fields
type keySource struct {
	fields []*schema.Field
	rows   int
}

func (k *keySource) Len() int {
	return k.rows
}

func (k *keySource) Key(row int) ([]interface{}, bool, error) {
	key := make([]interface{}, len(k.fields))
	missing := false
	for i, f := range k.fields {
		v, err := f.At(row)
		if err != nil {
			return nil, false, err
		}
		if tabula.IsMissing(v) {
			missing = true
		}
		key[i] = v
	}
	return key, missing, nil
}

// keys builds a keySource over the named columns. Fields in override replace
// the Table's own fields of the same name.
func (t *Table) keys(names []string, override map[string]*schema.Field, rows int) (*keySource, error) {
	fields := make([]*schema.Field, len(names))
	for i, name := range names {
		if f, ok := override[name]; ok {
			fields[i] = f
			continue
		}
		f, err := t.schema.GetField(name)
		if err != nil {
			return nil, err
		}
		fields[i] = f
	}
	return &keySource{fields: fields, rows: rows}, nil
}

func covers(idx tabula.Index, name string) bool {
	for _, c := range idx.Columns() {
		if c == name {
			return true
		}
	}
	return false
}

// AddIndex creates an Index over the named columns, using the configured engine and missing policy
func (t *Table) AddIndex(names ...string) (tabula.Index, error) {
	return t.AddIndexWith(t.conf.IndexEngine, t.conf.MissingPolicy, names...)
}

// AddIndexWith creates an Index over the named columns. At most one Index may exist per list of columns.
func (t *Table) AddIndexWith(engine tabula.IndexEngine, policy tabula.MissingPolicy, names ...string) (tabula.Index, error) {
	if existing, _ := t.Index(names...); existing != nil {
		return nil, errors.DuplicateNameError{Name: strings.Join(names, ","), What: "index"}
	}
	src, err := t.keys(names, nil, t.rows)
	if err != nil {
		return nil, err
	}
	idx, err := index.New(engine, names, policy)
	if err != nil {
		return nil, err
	}
	if err := idx.Build(src); err != nil {
		return nil, err
	}
	t.indexes = append(t.indexes, idx)
	t.logger.Debug("built index", "table", t.id, "columns", names, "engine", engine.String())
	return idx, nil
}

// Index returns the Index over exactly the named columns, in that order
func (t *Table) Index(names ...string) (tabula.Index, error) {
	for _, idx := range t.indexes {
		if index.SameColumns(idx.Columns(), names) {
			return idx, nil
		}
	}
	return nil, errors.NotFoundError{What: "index", Name: strings.Join(names, ","), Index: -1}
}

// Indexes returns every Index of this Table
func (t *Table) Indexes() []tabula.Index {
	return append([]tabula.Index(nil), t.indexes...)
}

// RemoveIndex drops the Index over exactly the named columns
func (t *Table) RemoveIndex(names ...string) error {
	for i, idx := range t.indexes {
		if index.SameColumns(idx.Columns(), names) {
			t.indexes = append(t.indexes[:i], t.indexes[i+1:]...)
			return nil
		}
	}
	return errors.NotFoundError{What: "index", Name: strings.Join(names, ","), Index: -1}
}

// Loc returns a new Table holding the rows whose indexed key equals key
func (t *Table) Loc(names []string, key ...interface{}) (*Table, error) {
	idx, err := t.Index(names...)
	if err != nil {
		return nil, err
	}
	rows, err := idx.Lookup(key...)
	if err != nil {
		return nil, err
	}
	return t.Take(rows)
}

// LocRange returns a new Table holding the rows whose indexed key lies in [lo, hi], in key order
func (t *Table) LocRange(names []string, lo, hi []interface{}) (*Table, error) {
	idx, err := t.Index(names...)
	if err != nil {
		return nil, err
	}
	rows, err := idx.Range(lo, hi)
	if err != nil {
		return nil, err
	}
	return t.Take(rows)
}

// columnChanged keeps indexes in sync with in-place changes to a column, including
// changes made through the column object itself
func (t *Table) columnChanged(field *schema.Field, row int) {
	name := field.Name()
	kept := t.indexes[:0]
	for _, idx := range t.indexes {
		if !covers(idx, name) {
			kept = append(kept, idx)
			continue
		}
		src, err := t.keys(idx.Columns(), nil, t.rows)
		if err == nil {
			if row < 0 {
				err = idx.Build(src)
			} else {
				err = idx.UpdateRow(row, src)
			}
		}
		if err != nil {
			// an index which cannot follow a change is dropped rather than left stale
			t.logger.Error("dropping index after failed update", "table", t.id, "columns", idx.Columns(), "error", err)
			if t.indexErr == nil {
				t.indexErr = err
			}
			continue
		}
		kept = append(kept, idx)
	}
	t.indexes = kept
}

// takeIndexErr returns and clears the first error raised while maintaining indexes
func (t *Table) takeIndexErr() error {
	err := t.indexErr
	t.indexErr = nil
	return err
}

// checkKeys verifies that the indexes covering the given columns can accept the
// key they would hold for row once values are written
func (t *Table) checkKeys(row int, values map[string]interface{}) error {
	for _, idx := range t.indexes {
		affected := false
		for name := range values {
			if covers(idx, name) {
				affected = true
				break
			}
		}
		if !affected {
			continue
		}
		key := make([]interface{}, 0, len(idx.Columns()))
		for _, name := range idx.Columns() {
			if v, ok := values[name]; ok {
				key = append(key, v)
				continue
			}
			f, err := t.schema.GetField(name)
			if err != nil {
				return err
			}
			v, err := f.At(row)
			if err != nil {
				return err
			}
			key = append(key, v)
		}
		if _, err := idx.Lookup(key...); err != nil {
			return err
		}
	}
	return nil
}

// rebuild rebuilds the given indexes concurrently
func (t *Table) rebuild(indexes []tabula.Index) error {
	if len(indexes) == 0 {
		return nil
	}
	jobs := make([]index.Job, 0, len(indexes))
	for _, idx := range indexes {
		src, err := t.keys(idx.Columns(), nil, t.rows)
		if err != nil {
			return err
		}
		jobs = append(jobs, index.Job{Index: idx, Source: src})
	}
	t.logger.Debug("rebuilding indexes", "table", t.id, "count", len(jobs))
	return index.BuildAll(context.Background(), jobs)
}

// copyIndexes gives res an equivalent of every index of t, built from res's own data
func (t *Table) copyIndexes(res *Table) error {
	for _, idx := range t.indexes {
		fresh, err := newIndexLike(idx)
		if err != nil {
			return err
		}
		res.indexes = append(res.indexes, fresh)
	}
	return res.rebuild(res.indexes)
}

func newIndexLike(idx tabula.Index) (tabula.Index, error) {
	return index.New(idx.Engine(), idx.Columns(), idx.MissingPolicy())
}

// prebuild verifies that the indexes over name can be rebuilt once field replaces it
func (t *Table) prebuild(name string, field *schema.Field) error {
	for _, idx := range t.indexes {
		if !covers(idx, name) {
			continue
		}
		src, err := t.keys(idx.Columns(), map[string]*schema.Field{name: field}, t.rows)
		if err != nil {
			return err
		}
		trial, err := newIndexLike(idx)
		if err != nil {
			return err
		}
		if err := trial.Build(src); err != nil {
			return err
		}
	}
	return nil
}
