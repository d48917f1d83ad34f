package operations

import (
	"log/slog"
	"reflect"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/errors"
	"github.com/go-sif/tabula/internal/util"
	multierror "github.com/hashicorp/go-multierror"
)

// MergeFunc resolves a conflict between two metadata values stored under the
// same (dotted) key. It returns the value to keep.
type MergeFunc func(key string, left, right interface{}) (interface{}, error)

// MetaMerger merges metadata from several sources. Nested maps are merged
// recursively, lists are concatenated, and other differing values are resolved
// by Func if set, or else by Policy.
type MetaMerger struct {
	Policy tabula.MetaConflictPolicy
	Func   MergeFunc
	Logger *slog.Logger
}

// Merge combines metas from first to last. It never modifies its inputs.
func (m *MetaMerger) Merge(metas ...tabula.Meta) (tabula.Meta, error) {
	var errs *multierror.Error
	res := tabula.Meta{}
	for _, meta := range metas {
		merged, err := m.mergeMap("", res, meta.Clone())
		errs = multierror.Append(errs, err)
		res = merged
	}
	if errs != nil {
		errs.ErrorFormat = util.FormatMultiError
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return res, nil
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch tv := v.(type) {
	case tabula.Meta:
		return tv, true
	case map[string]interface{}:
		return tv, true
	}
	return nil, false
}

func (m *MetaMerger) mergeMap(prefix string, left, right map[string]interface{}) (tabula.Meta, error) {
	var errs *multierror.Error
	res := make(tabula.Meta, len(left)+len(right))
	for k, v := range left {
		res[k] = v
	}
	for _, k := range tabula.Meta(right).Keys() {
		rv := right[k]
		lv, exists := res[k]
		if !exists {
			res[k] = rv
			continue
		}
		merged, err := m.mergeValue(prefix+k, lv, rv)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		res[k] = merged
	}
	return res, errs.ErrorOrNil()
}

func (m *MetaMerger) mergeValue(key string, left, right interface{}) (interface{}, error) {
	if lm, ok := asMap(left); ok {
		if rm, ok := asMap(right); ok {
			return m.mergeMap(key+".", lm, rm)
		}
	}
	if ll, ok := left.([]interface{}); ok {
		if rl, ok := right.([]interface{}); ok {
			return append(append([]interface{}(nil), ll...), rl...), nil
		}
	}
	if reflect.DeepEqual(left, right) {
		return left, nil
	}
	if m.Func != nil {
		return m.Func(key, left, right)
	}
	switch m.Policy {
	case tabula.LastWins:
		m.warn(key, left, right, "last")
		return right, nil
	case tabula.ErrorOnConflict:
		return nil, errors.MergeConflictError{Key: key, Left: left, Right: right}
	default:
		m.warn(key, left, right, "first")
		return left, nil
	}
}

func (m *MetaMerger) warn(key string, left, right interface{}, kept string) {
	if m.Logger == nil {
		return
	}
	m.Logger.Warn("metadata conflict", "key", key, "left", left, "right", right, "kept", kept)
}

// MergeMeta merges metas according to the configured conflict policy
func MergeMeta(opts Options, metas ...tabula.Meta) (tabula.Meta, error) {
	conf, logger := opts.resolve(nil)
	merger := &MetaMerger{Policy: conf.MetaConflict, Func: opts.MergeMeta, Logger: logger}
	return merger.Merge(metas...)
}
