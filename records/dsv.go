package records

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/column"
	"github.com/go-sif/tabula/table"
)

// DSVConf configures a DSV Parser
type DSVConf struct {
	Columns     []ColumnDef // Columns, in file order. Path is ignored. Names default to the header row when Header is set.
	Header      bool        // Header reads column names from the first (non-skipped) line
	HeaderLines int         // The number of lines to ignore from the beginning of the data. Defaults to 0.
	Delimiter   rune        // The delimiter separating columns. Defaults to ,
	Comment     rune        // Lines beginning with the comment character are ignored. Cannot be equal to the Delimiter. Defaults to no comment character.
	NilValue    string      // A special string which represents missing values. The empty string is always missing.
}

// DSVParser produces Tables from delimiter-separated data
type DSVParser struct {
	conf DSVConf
}

// CreateDSVParser returns a new DSV Parser
func CreateDSVParser(conf DSVConf) *DSVParser {
	if conf.Delimiter == 0 {
		conf.Delimiter = ','
	}
	return &DSVParser{conf: conf}
}

// ParseDSV parses delimiter-separated data into a new Table
func ParseDSV(r io.Reader, conf DSVConf, opts table.Options) (*table.Table, error) {
	return CreateDSVParser(conf).Parse(r, opts)
}

// Parse reads every record of r, producing one row per record
func (p *DSVParser) Parse(r io.Reader, opts table.Options) (*table.Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = p.conf.Delimiter
	reader.Comment = p.conf.Comment

	// ignore header lines, if configured to do so. They may have any width.
	reader.FieldsPerRecord = -1
	for i := 0; i < p.conf.HeaderLines; i++ {
		_, err := reader.Read()
		if err != nil {
			return nil, err
		}
	}
	reader.FieldsPerRecord = len(p.conf.Columns)
	defs := append([]ColumnDef(nil), p.conf.Columns...)
	if p.conf.Header {
		header, err := reader.Read()
		if err != nil {
			return nil, err
		}
		if len(defs) == 0 {
			defs = make([]ColumnDef, len(header))
		}
		for i := range defs {
			if defs[i].Name == "" && i < len(header) {
				defs[i].Name = header[i]
			}
		}
	}
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 && len(records) > 0 {
		defs = make([]ColumnDef, len(records[0]))
	}

	cols := make([]interface{}, len(defs))
	for i, def := range defs {
		values := make([]interface{}, len(records))
		for row, record := range records {
			v, err := p.scanValue(def.Type, record[i])
			if err != nil {
				return nil, fmt.Errorf("Unable to parse column %d of record %d: %w", i, row, err)
			}
			values[row] = v
		}
		var col *column.Column
		if def.Type != nil {
			col, err = column.New(def.Name, def.Type, values)
		} else {
			col, err = column.FromSlice(def.Name, values)
		}
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}
	// unnamed columns fall back to the configured default names
	opts.Names = nil
	t, err := table.New(cols, opts)
	if err != nil {
		return nil, err
	}
	t.Logger().Debug("parsed DSV records", "rows", t.Len(), "columns", t.NumColumns())
	return t, nil
}

// scanValue parses a single field. Without a column type, integers, floats and
// booleans are recognised, and anything else is kept as a string.
func (p *DSVParser) scanValue(colType tabula.ColumnType, field string) (interface{}, error) {
	if len(field) == 0 || field == p.conf.NilValue {
		return tabula.Missing, nil
	}
	switch colType.(type) {
	case nil:
		if ival, err := strconv.ParseInt(field, 10, 64); err == nil {
			return ival, nil
		}
		if fval, err := strconv.ParseFloat(field, 64); err == nil {
			return fval, nil
		}
		if bval, err := strconv.ParseBool(field); err == nil {
			return bval, nil
		}
		return field, nil
	case *tabula.BoolColumnType:
		return strconv.ParseBool(field)
	case *tabula.Int8ColumnType, *tabula.Int16ColumnType, *tabula.Int32ColumnType, *tabula.Int64ColumnType:
		return strconv.ParseInt(field, 10, 64)
	case *tabula.Uint8ColumnType, *tabula.Uint16ColumnType, *tabula.Uint32ColumnType, *tabula.Uint64ColumnType:
		return strconv.ParseUint(field, 10, 64)
	case *tabula.Float32ColumnType, *tabula.Float64ColumnType:
		return strconv.ParseFloat(field, 64)
	}
	// strings, bytes and times are parsed by the column type itself
	return field, nil
}
