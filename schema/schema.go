// Package schema implements the ordered mapping from column names to columns held by a Table
package schema

import (
	"fmt"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/errors"
)

// Schema is an ordered mapping from column names to Fields. It allows one to
// obtain columns by name, define new columns, remove columns, etc.
type Schema struct {
	schema map[string]*Field
}

// CreateSchema is a factory for Schemas
func CreateSchema() *Schema {
	return &Schema{
		schema: make(map[string]*Field),
	}
}

// Equals returns nil iff this and another Schema have the same column names,
// in the same order, with the same value types
func (s *Schema) Equals(otherSchema *Schema) error {
	if s.NumColumns() != otherSchema.NumColumns() {
		return fmt.Errorf("Schemas have unequal numbers of columns")
	}
	return s.ForEachColumn(func(name string, field *Field) error {
		otherField, err := otherSchema.GetField(name)
		if err != nil {
			return err
		}
		if field.Index() != otherField.Index() {
			return fmt.Errorf("Column %s indices do not match", name)
		}
		if field.TypeName() != otherField.TypeName() {
			return fmt.Errorf("Column %s types do not match", name)
		}
		return nil
	})
}

// Clone returns a copy of this Schema, with independent copies of every column
func (s *Schema) Clone() (*Schema, error) {
	newSchema := make(map[string]*Field)
	for k, v := range s.schema {
		field, err := v.Copy()
		if err != nil {
			return nil, err
		}
		field.idx = v.idx
		newSchema[k] = field
	}
	return &Schema{schema: newSchema}, nil
}

// NumColumns returns the number of columns in this Schema
func (s *Schema) NumColumns() int {
	return len(s.schema)
}

// GetField returns the Field stored under a name
func (s *Schema) GetField(colName string) (*Field, error) {
	field, ok := s.schema[colName]
	if !ok {
		return nil, errors.ColumnNotFound(colName)
	}
	return field, nil
}

// HasColumn returns true iff this schema contains a column with the given name
func (s *Schema) HasColumn(colName string) bool {
	_, ok := s.schema[colName]
	return ok
}

// CreateColumn appends a column to the Schema, under the name in its ColumnInfo
func (s *Schema) CreateColumn(col tabula.Column) (*Field, error) {
	return s.InsertColumn(len(s.schema), col)
}

// InsertColumn adds a column to the Schema at position pos, shifting later columns right
func (s *Schema) InsertColumn(pos int, col tabula.Column) (*Field, error) {
	colName := col.Info().Name
	if _, exists := s.schema[colName]; exists {
		return nil, errors.DuplicateNameError{Name: colName}
	}
	if pos < 0 || pos > len(s.schema) {
		return nil, errors.NotFoundError{What: "position", Name: colName, Index: pos, Length: len(s.schema)}
	}
	field, err := NewField(col)
	if err != nil {
		return nil, err
	}
	for _, f := range s.schema {
		if f.idx >= pos {
			f.idx++
		}
	}
	field.idx = pos
	s.schema[colName] = field
	return field, nil
}

// ReplaceColumn stores col under an existing name, at the same position.
// col is renamed to match. Returns the replaced Field.
func (s *Schema) ReplaceColumn(colName string, col tabula.Column) (replaced *Field, field *Field, err error) {
	replaced, err = s.GetField(colName)
	if err != nil {
		return nil, nil, err
	}
	field, err = NewField(col)
	if err != nil {
		return nil, nil, err
	}
	col.Info().Name = colName
	field.idx = replaced.idx
	s.schema[colName] = field
	return replaced, field, nil
}

// RenameColumn renames a column within the Schema, keeping its position
func (s *Schema) RenameColumn(oldName string, newName string) error {
	field, err := s.GetField(oldName)
	if err != nil {
		return err
	}
	if oldName == newName {
		return nil
	}
	if _, exists := s.schema[newName]; exists {
		return errors.DuplicateNameError{Name: newName}
	}
	field.Column().Info().Name = newName
	s.schema[newName] = field
	delete(s.schema, oldName)
	return nil
}

// RemoveColumn removes a column from the Schema, shifting later columns left
func (s *Schema) RemoveColumn(colName string) (*Field, error) {
	field, err := s.GetField(colName)
	if err != nil {
		return nil, err
	}
	delete(s.schema, colName)
	for _, f := range s.schema {
		if f.idx > field.idx {
			f.idx--
		}
	}
	field.idx = -1
	return field, nil
}

// ColumnNames returns the names in the schema, in index order
func (s *Schema) ColumnNames() []string {
	names := make([]string, len(s.schema))
	for k, v := range s.schema {
		names[v.Index()] = k
	}
	return names
}

// Fields returns the Fields in the schema, in index order
func (s *Schema) Fields() []*Field {
	fields := make([]*Field, len(s.schema))
	for _, v := range s.schema {
		fields[v.Index()] = v
	}
	return fields
}

// Reorder arranges the columns of this Schema in the given order, which must name every column exactly once
func (s *Schema) Reorder(names []string) error {
	if len(names) != len(s.schema) {
		return errors.LengthMismatchError{Name: "column order", Expected: len(s.schema), Actual: len(names)}
	}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if _, err := s.GetField(name); err != nil {
			return err
		}
		if seen[name] {
			return errors.DuplicateNameError{Name: name}
		}
		seen[name] = true
	}
	for i, name := range names {
		s.schema[name].idx = i
	}
	return nil
}

// ForEachColumn iterates over the columns in this Schema, in index order
func (s *Schema) ForEachColumn(fn func(name string, field *Field) error) error {
	for _, f := range s.Fields() {
		if err := fn(f.Name(), f); err != nil {
			return err
		}
	}
	return nil
}
