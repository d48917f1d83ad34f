package tabula

// ChangeFunc is called after a column value changes in place. row is -1 when
// the whole column may have changed (e.g. a new mask was assigned).
type ChangeFunc func(row int)

// Watchers is a set of ChangeFuncs. The zero value is ready to use and
// copying a column must not copy its Watchers.
type Watchers struct {
	next int
	fns  map[int]ChangeFunc
}

// Watch registers fn, returning a function which unregisters it
func (w *Watchers) Watch(fn ChangeFunc) (unwatch func()) {
	if w.fns == nil {
		w.fns = make(map[int]ChangeFunc)
	}
	id := w.next
	w.next++
	w.fns[id] = fn
	return func() {
		delete(w.fns, id)
	}
}

// Notify calls every registered ChangeFunc
func (w *Watchers) Notify(row int) {
	for _, fn := range w.fns {
		fn(row)
	}
}

// Len returns the number of registered ChangeFuncs
func (w *Watchers) Len() int {
	return len(w.fns)
}
