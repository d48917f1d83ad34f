package encoding

import (
	"bytes"
	"encoding/gob"
	"time"

	"github.com/go-sif/tabula"
	"github.com/go-sif/tabula/errors"
	"github.com/go-sif/tabula/mixin"
)

// MixinCodec serializes the values of one kind of mixin column. Column
// metadata is handled by the Codec.
type MixinCodec interface {
	Encode(col tabula.MixinColumn) ([]byte, error)
	Decode(name string, data []byte) (tabula.MixinColumn, error)
}

func gobEncode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func gobDecode(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

func maskOf(col tabula.Column) []bool {
	if m, ok := col.(tabula.Maskable); ok {
		return m.Mask()
	}
	return nil
}

type timePayload struct {
	Values []time.Time
	Mask   []bool
	Layout string
}

type timeCodec struct{}

func (timeCodec) Encode(col tabula.MixinColumn) ([]byte, error) {
	t, ok := col.(*mixin.Time)
	if !ok {
		return nil, errors.UnsupportedOperationError{Name: col.Info().Name, Operation: "time encoding"}
	}
	return gobEncode(timePayload{Values: t.Times(), Mask: t.Mask(), Layout: t.Layout()})
}

func (timeCodec) Decode(name string, data []byte) (tabula.MixinColumn, error) {
	var p timePayload
	if err := gobDecode(data, &p); err != nil {
		return nil, err
	}
	t, err := mixin.NewTimeMasked(name, p.Values, p.Mask)
	if err != nil {
		return nil, err
	}
	t.SetLayout(p.Layout)
	return t, nil
}

type quantityPayload struct {
	Values []float64
	Mask   []bool
}

type quantityCodec struct{}

func (quantityCodec) Encode(col tabula.MixinColumn) ([]byte, error) {
	q, ok := col.(*mixin.Quantity)
	if !ok {
		return nil, errors.UnsupportedOperationError{Name: col.Info().Name, Operation: "quantity encoding"}
	}
	return gobEncode(quantityPayload{Values: q.Values(), Mask: q.Mask()})
}

func (quantityCodec) Decode(name string, data []byte) (tabula.MixinColumn, error) {
	var p quantityPayload
	if err := gobDecode(data, &p); err != nil {
		return nil, err
	}
	return mixin.NewQuantityMasked(name, p.Values, tabula.NoUnit, p.Mask)
}

type coordsPayload struct {
	Frame    string
	Lon, Lat []float64
}

type coordsCodec struct{}

func (coordsCodec) Encode(col tabula.MixinColumn) ([]byte, error) {
	c, ok := col.(*mixin.Coords)
	if !ok {
		return nil, errors.UnsupportedOperationError{Name: col.Info().Name, Operation: "coords encoding"}
	}
	return gobEncode(coordsPayload{Frame: c.Frame(), Lon: c.Lon(), Lat: c.Lat()})
}

func (coordsCodec) Decode(name string, data []byte) (tabula.MixinColumn, error) {
	var p coordsPayload
	if err := gobDecode(data, &p); err != nil {
		return nil, err
	}
	return mixin.NewCoords(name, p.Frame, p.Lon, p.Lat)
}
