package records

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/column"
	"github.com/go-sif/tabula/table"
	"github.com/tidwall/gjson"
)

// ColumnDef describes a column extracted from each line of JSON
type ColumnDef struct {
	Name string            // Name of the resulting column
	Path string            // Path is a gjson path into each record. Defaults to Name.
	Type tabula.ColumnType // Type of the resulting column. Inferred from the values when nil.
}

func (c ColumnDef) path() string {
	if c.Path == "" {
		return c.Name
	}
	return c.Path
}

// ParserConf configures a JSONL Parser
type ParserConf struct {
	Columns       []ColumnDef // Columns to extract. Defaults to the top-level keys of every record, in order of appearance.
	HeaderLines   int         // The number of lines to ignore from the beginning of the data. Defaults to 0.
	Comment       rune        // Lines beginning with the comment character are ignored. Defaults to no comment character.
	MaxBufferSize int         // Maximum size in bytes of the buffer used to read lines
}

// Parser produces Tables from JSONL data
type Parser struct {
	conf ParserConf
}

// CreateParser returns a new JSONL Parser. Values within the JSON which do not
// correspond to a column are ignored, and absent or null values are missing.
func CreateParser(conf ParserConf) *Parser {
	if conf.MaxBufferSize == 0 {
		conf.MaxBufferSize = bufio.MaxScanTokenSize
	}
	return &Parser{conf: conf}
}

// ParseJSONL parses JSONL data into a new Table
func ParseJSONL(r io.Reader, conf ParserConf, opts table.Options) (*table.Table, error) {
	return CreateParser(conf).Parse(r, opts)
}

// Parse reads every line of r, producing one row per JSON record
func (p *Parser) Parse(r io.Reader, opts table.Options) (*table.Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), p.conf.MaxBufferSize)
	// ignore header lines, if configured to do so
	for i := 0; i < p.conf.HeaderLines; i++ {
		scanner.Scan()
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}
	var lines []gjson.Result
	lineNum := p.conf.HeaderLines
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || (p.conf.Comment != 0 && strings.HasPrefix(line, string(p.conf.Comment))) {
			continue
		}
		if !gjson.Valid(line) {
			return nil, fmt.Errorf("Unable to parse line %d as JSON:\n\t%s", lineNum, line)
		}
		lines = append(lines, gjson.Parse(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	defs := p.conf.Columns
	if len(defs) == 0 {
		defs = topLevelColumns(lines)
	}
	cols := make([]interface{}, len(defs))
	names := make([]string, len(defs))
	for i, def := range defs {
		values := make([]interface{}, len(lines))
		for row, record := range lines {
			values[row] = ToValue(record.Get(def.path()))
		}
		var col *column.Column
		var err error
		if def.Type != nil {
			col, err = column.New(def.Name, def.Type, values)
		} else {
			col, err = column.FromSlice(def.Name, values)
		}
		if err != nil {
			return nil, err
		}
		cols[i] = col
		names[i] = def.Name
	}
	opts.Names = names
	t, err := table.New(cols, opts)
	if err != nil {
		return nil, err
	}
	t.Logger().Debug("parsed JSONL records", "rows", t.Len(), "columns", t.NumColumns())
	return t, nil
}

// topLevelColumns lists the keys of every record in order of first appearance
func topLevelColumns(records []gjson.Result) []ColumnDef {
	var defs []ColumnDef
	seen := make(map[string]bool)
	for _, record := range records {
		record.ForEach(func(key, _ gjson.Result) bool {
			name := key.String()
			if !seen[name] {
				seen[name] = true
				defs = append(defs, ColumnDef{Name: name, Path: escapePath(name)})
			}
			return true
		})
	}
	return defs
}

// escapePath escapes the gjson path syntax in a literal key
func escapePath(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToValue converts a gjson value to the value stored in a column. Absent and
// null values are tabula.Missing, and integral numbers become int64.
func ToValue(res gjson.Result) interface{} {
	switch res.Type {
	case gjson.Null:
		return tabula.Missing
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.String:
		return res.Str
	case gjson.Number:
		if !strings.ContainsAny(res.Raw, ".eE") {
			if i := res.Int(); float64(i) == res.Num {
				return i
			}
		}
		return res.Num
	}
	return res.Value()
}
