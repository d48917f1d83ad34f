package tabula

// Owned is implemented by columns which a Table can claim. While claimed, a
// column rejects structural mutations (adding and removing values) unless
// they run inside Structural, so its length cannot drift from the row count
// of the Table holding it.
type Owned interface {
	Claim(owner interface{}) bool
	Release(owner interface{})
	Structural(owner interface{}, fn func() error) error
}

// Ownership implements Owned. The zero value is unclaimed. Copying a column
// must not copy its Ownership.
type Ownership struct {
	owner    interface{}
	unlocked bool
}

// Claim records owner as the holder of this column. It fails if another owner already holds it.
func (o *Ownership) Claim(owner interface{}) bool {
	if o.owner != nil && o.owner != owner {
		return false
	}
	o.owner = owner
	return true
}

// Release gives up ownership, if held by owner
func (o *Ownership) Release(owner interface{}) {
	if o.owner == owner {
		o.owner = nil
		o.unlocked = false
	}
}

// Structural runs fn with structural mutations permitted. Only the current
// owner unlocks the column; anyone else runs fn against a locked column.
func (o *Ownership) Structural(owner interface{}, fn func() error) error {
	if o.owner == nil || o.owner != owner {
		return fn()
	}
	o.unlocked = true
	defer func() { o.unlocked = false }()
	return fn()
}

// Resizable returns true iff structural mutations are currently permitted
func (o *Ownership) Resizable() bool {
	return o.owner == nil || o.unlocked
}
