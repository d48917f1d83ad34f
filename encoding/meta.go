package encoding

import (
	"fmt"
	"time"

	"github.com/go-sif/tabula"
	proto "github.com/golang/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// plain converts metadata values to the JSON-like types structpb understands
func plain(v interface{}) interface{} {
	switch tv := v.(type) {
	case tabula.Meta:
		return plainMap(tv)
	case map[string]interface{}:
		return plainMap(tv)
	case []interface{}:
		out := make([]interface{}, len(tv))
		for i, e := range tv {
			out[i] = plain(e)
		}
		return out
	case time.Time:
		return tv.Format(time.RFC3339Nano)
	case tabula.Unit:
		return string(tv)
	case fmt.Stringer:
		return tv.String()
	}
	return v
}

func plainMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = plain(v)
	}
	return out
}

// toMeta converts decoded maps back into Metas
func toMeta(m map[string]interface{}) tabula.Meta {
	out := make(tabula.Meta, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]interface{}); ok {
			out[k] = toMeta(nested)
			continue
		}
		out[k] = v
	}
	return out
}

// marshalMeta serializes metadata as a protobuf Struct. Numbers are decoded as
// float64, and times as RFC 3339 strings.
func marshalMeta(meta tabula.Meta) ([]byte, error) {
	if len(meta) == 0 {
		return nil, nil
	}
	s, err := structpb.NewStruct(plainMap(meta))
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}

func unmarshalMeta(data []byte) (tabula.Meta, error) {
	if len(data) == 0 {
		return nil, nil
	}
	s := &structpb.Struct{}
	if err := proto.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return toMeta(s.AsMap()), nil
}
