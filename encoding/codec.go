// Package encoding writes and reads compressed snapshots of Tables
package encoding

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/column"
	"github.com/go-sif/tabula/errors"
	"github.com/go-sif/tabula/mixin"
	"github.com/go-sif/tabula/table"
)

func init() {
	gob.Register(time.Time{})
	gob.Register(map[string]interface{}{})
	gob.Register([]interface{}{})
}

// snapshot is the gob payload of an encoded Table
type snapshot struct {
	Rows       int
	Masked     bool
	UnitPolicy int
	Meta       []byte
	Columns    []columnRecord
	Indexes    []indexRecord
}

type columnRecord struct {
	Name        string
	Unit        string
	Format      string
	Description string
	Meta        []byte
	Mixin       bool
	Type        string // ColumnType name, or MixinType for mixins
	Values      []interface{}
	Mask        []bool
	Payload     []byte
}

type indexRecord struct {
	Columns []string
	Engine  int
	Policy  int
}

// Codec encodes Tables into compressed gob snapshots. Mixin columns are
// encoded by the MixinCodec registered for their MixinType.
type Codec struct {
	Compression Compression // Compression applies to snapshots written by Marshal. Unmarshal reads either.

	lock   sync.RWMutex
	mixins map[string]MixinCodec
}

// NewCodec creates a Codec which knows the mixin types of package mixin
func NewCodec() *Codec {
	c := &Codec{mixins: make(map[string]MixinCodec)}
	c.Register(mixin.TimeType, timeCodec{})
	c.Register(mixin.QuantityType, quantityCodec{})
	c.Register(mixin.CoordsType, coordsCodec{})
	return c
}

// Register sets the MixinCodec used for mixin columns of the given type
func (c *Codec) Register(mixinType string, mc MixinCodec) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.mixins[mixinType] = mc
}

func (c *Codec) mixinCodec(name string, mixinType string) (MixinCodec, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	mc, ok := c.mixins[mixinType]
	if !ok {
		return nil, errors.UnsupportedOperationError{Name: name, Operation: fmt.Sprintf("encoding of mixin type %s", mixinType)}
	}
	return mc, nil
}

func (c *Codec) encodeColumn(col tabula.Column) (columnRecord, error) {
	info := col.Info()
	meta, err := marshalMeta(info.Meta)
	if err != nil {
		return columnRecord{}, err
	}
	rec := columnRecord{
		Name:        info.Name,
		Unit:        string(info.Unit),
		Format:      info.Format,
		Description: info.Description,
		Meta:        meta,
	}
	switch tc := col.(type) {
	case *column.Column:
		rec.Type = tc.Type().Name()
		rec.Values = tc.Data()
		rec.Mask = tc.Mask()
	case tabula.MixinColumn:
		mc, err := c.mixinCodec(info.Name, tc.MixinType())
		if err != nil {
			return columnRecord{}, err
		}
		rec.Mixin = true
		rec.Type = tc.MixinType()
		if rec.Payload, err = mc.Encode(tc); err != nil {
			return columnRecord{}, err
		}
	default:
		return columnRecord{}, errors.UnsupportedOperationError{Name: info.Name, Operation: "encoding"}
	}
	return rec, nil
}

func (c *Codec) decodeColumn(rec columnRecord) (tabula.Column, error) {
	meta, err := unmarshalMeta(rec.Meta)
	if err != nil {
		return nil, err
	}
	info := tabula.ColumnInfo{
		Name:        rec.Name,
		Unit:        tabula.Unit(rec.Unit),
		Format:      rec.Format,
		Description: rec.Description,
		Meta:        meta,
	}
	var col tabula.Column
	if rec.Mixin {
		mc, err := c.mixinCodec(rec.Name, rec.Type)
		if err != nil {
			return nil, err
		}
		if col, err = mc.Decode(rec.Name, rec.Payload); err != nil {
			return nil, err
		}
	} else {
		colType, err := tabula.ColumnTypeByName(rec.Type)
		if err != nil {
			return nil, err
		}
		values := rec.Values
		if values == nil {
			values = []interface{}{}
		}
		if col, err = column.NewMasked(rec.Name, colType, values, rec.Mask); err != nil {
			return nil, err
		}
	}
	*col.Info() = info
	return col, nil
}

// Marshal writes a snapshot of t to w: its columns, masks, metadata and index definitions
func (c *Codec) Marshal(w io.Writer, t *table.Table) error {
	meta, err := marshalMeta(t.Meta())
	if err != nil {
		return err
	}
	snap := snapshot{
		Rows:       t.Len(),
		Masked:     t.Masked(),
		UnitPolicy: int(t.UnitPolicy()),
		Meta:       meta,
	}
	for _, col := range t.Columns() {
		rec, err := c.encodeColumn(col)
		if err != nil {
			return err
		}
		snap.Columns = append(snap.Columns, rec)
	}
	for _, idx := range t.Indexes() {
		snap.Indexes = append(snap.Indexes, indexRecord{
			Columns: idx.Columns(),
			Engine:  int(idx.Engine()),
			Policy:  int(idx.MissingPolicy()),
		})
	}
	compressor, err := c.Compression.compress(w)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(compressor).Encode(&snap); err != nil {
		compressor.Close()
		return err
	}
	if err := compressor.Close(); err != nil {
		return err
	}
	t.Logger().Debug("encoded table", "id", t.ID(), "rows", snap.Rows, "columns", len(snap.Columns), "compression", c.Compression.String())
	return nil
}

// Unmarshal reads a snapshot written by Marshal, rebuilding its indexes.
// opts.Names and opts.Meta are ignored.
func (c *Codec) Unmarshal(r io.Reader, opts table.Options) (*table.Table, error) {
	data, release, err := decompress(r)
	if err != nil {
		return nil, err
	}
	var snap snapshot
	err = gob.NewDecoder(data).Decode(&snap)
	release()
	if err != nil {
		return nil, err
	}
	meta, err := unmarshalMeta(snap.Meta)
	if err != nil {
		return nil, err
	}
	cols := make([]interface{}, len(snap.Columns))
	names := make([]string, len(snap.Columns))
	for i, rec := range snap.Columns {
		col, err := c.decodeColumn(rec)
		if err != nil {
			return nil, err
		}
		cols[i] = col
		names[i] = rec.Name
	}
	opts.Names = names
	opts.Meta = meta
	opts.Masked = opts.Masked || snap.Masked
	construct := table.New
	if tabula.UnitPolicy(snap.UnitPolicy) == tabula.PreferQuantityMixin {
		construct = table.NewQTable
	}
	t, err := construct(cols, opts)
	if err != nil {
		return nil, err
	}
	if len(cols) > 0 && t.Len() != snap.Rows {
		return nil, errors.LengthMismatchError{Name: "snapshot", Expected: snap.Rows, Actual: t.Len()}
	}
	for _, idx := range snap.Indexes {
		if _, err := t.AddIndexWith(tabula.IndexEngine(idx.Engine), tabula.MissingPolicy(idx.Policy), idx.Columns...); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// MarshalBytes returns a snapshot of t
func (c *Codec) MarshalBytes(t *table.Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Marshal(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBytes reads a snapshot produced by MarshalBytes
func (c *Codec) UnmarshalBytes(data []byte, opts table.Options) (*table.Table, error) {
	return c.Unmarshal(bytes.NewReader(data), opts)
}
