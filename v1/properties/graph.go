package properties

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"
)

// Graph is the canonical property container exchanged between the object
// mapper and the transports: an ordered, case-insensitive, string-keyed
// map. Values are nil, wire scalars, wire arrays or nested *Graph; the
// graph itself never knows native Go types.
//
// Key order is the insertion order and the first-seen casing of a key is
// the one that survives; later writes through a differently-cased key
// replace the value in place. A Graph is not safe for concurrent
// mutation; concurrent reads are fine.
type Graph struct {
	keys []string
	vals map[string]any
}

// NewGraph returns an empty property graph.
func NewGraph() *Graph {
	return &Graph{vals: make(map[string]any)}
}

func foldKey(name string) string {
	return strings.ToLower(name)
}

// Len returns the number of properties in the graph.
func (g *Graph) Len() int {
	return len(g.keys)
}

// Set stores a property value. The lookup is case-insensitive: setting
// "Title" and then "title" keeps one entry, at its original position,
// under the first-seen spelling.
func (g *Graph) Set(name string, value any) {
	if g.vals == nil {
		g.vals = make(map[string]any)
	}
	folded := foldKey(name)
	if _, exists := g.vals[folded]; !exists {
		g.keys = append(g.keys, name)
	}
	g.vals[folded] = value
}

// Get returns the value stored under a name, case-insensitively. The
// second return value distinguishes a stored nil from an absent key.
func (g *Graph) Get(name string) (any, bool) {
	if g.vals == nil {
		return nil, false
	}
	v, ok := g.vals[foldKey(name)]
	return v, ok
}

// Delete removes a property and reports whether it was present.
func (g *Graph) Delete(name string) bool {
	folded := foldKey(name)
	if g.vals == nil {
		return false
	}
	if _, ok := g.vals[folded]; !ok {
		return false
	}
	delete(g.vals, folded)
	for i, k := range g.keys {
		if foldKey(k) == folded {
			g.keys = append(g.keys[:i], g.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the property names in insertion order, original casing.
func (g *Graph) Keys() []string {
	out := make([]string, len(g.keys))
	copy(out, g.keys)
	return out
}

// Range calls fn for every property in insertion order until fn returns
// false.
func (g *Graph) Range(fn func(name string, value any) bool) {
	for _, k := range g.keys {
		if !fn(k, g.vals[foldKey(k)]) {
			return
		}
	}
}

// AsMap flattens the graph into plain Go values: nested graphs become
// map[string]any, protobuf values are unwrapped, nulls become nil.
func (g *Graph) AsMap() map[string]any {
	out := make(map[string]any, len(g.keys))
	g.Range(func(name string, value any) bool {
		out[name] = decodeDynamic(value)
		return true
	})
	return out
}

// MarshalJSON encodes the graph as a JSON object in key order. Values
// must be JSON-encodable; nested graphs and protobuf values encode
// through their own marshallers.
func (g *Graph) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range g.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(g.vals[foldKey(k)])
		if err != nil {
			return nil, fmt.Errorf("properties: encoding %q: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving its document key order.
// Integral numbers decode as int64, everything else as float64; nested
// objects decode as nested graphs.
func (g *Graph) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return err
	}
	parsed, ok := v.(*Graph)
	if !ok {
		return fmt.Errorf("properties: expected JSON object, got %T", v)
	}
	*g = *parsed
	return nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewGraph()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("properties: unexpected object key %v", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			out := []any{}
			for dec.More() {
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				out = append(out, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return out, nil
		default:
			return nil, fmt.Errorf("properties: unexpected delimiter %v", t)
		}
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		return t.Float64()
	default:
		// string, bool or nil
		return tok, nil
	}
}

// GraphFromMap builds a graph from an already-decoded JSON object tree.
// Map iteration order is unrecoverable, so keys are ordered
// lexicographically; nested maps become nested graphs, including inside
// arrays.
func GraphFromMap(m map[string]any) *Graph {
	g := NewGraph()
	for _, k := range sortedKeys(m) {
		g.Set(k, graphify(m[k]))
	}
	return g
}

func graphify(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return GraphFromMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = graphify(e)
		}
		return out
	default:
		return v
	}
}

// GraphFromProto builds a graph from a protobuf struct. Keys are ordered
// lexicographically; leaves keep their *structpb.Value shape, which is
// what the gRPC decode path consumes.
func GraphFromProto(s *structpb.Struct) *Graph {
	g := NewGraph()
	fields := s.GetFields()
	for _, k := range sortedKeys(fields) {
		g.Set(k, fields[k])
	}
	return g
}

// ToProto assembles the graph into a protobuf struct. Leaves produced by
// a gRPC-encoded conversion are already *structpb.Value; plain Go values
// are wrapped, nested graphs recurse.
func (g *Graph) ToProto() (*structpb.Struct, error) {
	fields := make(map[string]*structpb.Value, len(g.keys))
	for _, k := range g.keys {
		v, err := protoValue(g.vals[foldKey(k)])
		if err != nil {
			return nil, fmt.Errorf("properties: encoding %q: %w", k, err)
		}
		fields[k] = v
	}
	return &structpb.Struct{Fields: fields}, nil
}

func protoValue(v any) (*structpb.Value, error) {
	switch t := v.(type) {
	case nil:
		return structpb.NewNullValue(), nil
	case *structpb.Value:
		return t, nil
	case *Graph:
		s, err := t.ToProto()
		if err != nil {
			return nil, err
		}
		return structpb.NewStructValue(s), nil
	case []any:
		values := make([]*structpb.Value, len(t))
		for i, e := range t {
			pv, err := protoValue(e)
			if err != nil {
				return nil, err
			}
			values[i] = pv
		}
		return structpb.NewListValue(&structpb.ListValue{Values: values}), nil
	case int64:
		return structpb.NewNumberValue(float64(t)), nil
	default:
		return structpb.NewValue(v)
	}
}
