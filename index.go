package tabula

// KeySource gives an Index access to the key of every row of the Table it covers
type KeySource interface {
	Len() int                                                 // Len returns the number of rows
	Key(row int) (key []interface{}, missing bool, err error) // Key returns the key of a row, and whether any component is missing
}

// An Index maps the values of one or more columns to the row positions holding them.
// Indexes are owned by a Table, which keeps them consistent with every committed mutation.
type Index interface {
	ID() string                                // ID uniquely identifies this Index
	Engine() IndexEngine                       // Engine returns the data structure backing this Index
	MissingPolicy() MissingPolicy              // MissingPolicy returns how rows with missing keys are treated
	Columns() []string                         // Columns returns the names of the indexed columns, in key order
	SetColumns(names []string)                 // SetColumns renames the indexed columns
	Len() int                                  // Len returns the number of indexed rows (including the missing bucket)
	Build(src KeySource) error                 // Build discards all entries and indexes every row of src
	Lookup(key ...interface{}) ([]int, error)  // Lookup returns the ascending positions of rows whose key equals key
	Range(lo, hi []interface{}) ([]int, error) // Range returns positions of rows with lo <= key <= hi, ordered by key then position. nil bounds are open.
	LookupMissing() []int                      // LookupMissing returns the positions in the missing bucket
	InsertRow(row int, src KeySource) error    // InsertRow shifts positions >= row up by one, then indexes row
	DeleteRow(row int)                         // DeleteRow forgets row and shifts positions > row down by one
	UpdateRow(row int, src KeySource) error    // UpdateRow re-indexes row after its key changed
	Positions() []int                          // Positions returns all non-missing positions, ordered by key then position
}
