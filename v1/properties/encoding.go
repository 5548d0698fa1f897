package properties

import (
	"encoding/json"
	"math"
	"sort"

	"google.golang.org/protobuf/types/known/structpb"
)

// Encoding selects the wire representation a conversion produces or
// consumes. Both encodings share the same semantic rules; only the value
// model differs.
type Encoding int

const (
	// EncodingREST is the JSON value model: wire values are the
	// loosely-typed Go values a JSON decode produces (nil, bool, string,
	// float64 or int64, []any, map[string]any or nested *Graph).
	EncodingREST Encoding = iota

	// EncodingGRPC is the Protobuf value model: every wire value is a
	// *structpb.Value tagged as null, number, string, bool, struct or
	// list. Numbers travel as float64, so integers beyond ±2^53 lose
	// precision on this path. That is a protocol constraint of the
	// encoding, not of the conversion layer; the REST path keeps int64
	// exact.
	EncodingGRPC
)

func (e Encoding) String() string {
	switch e {
	case EncodingREST:
		return "rest"
	case EncodingGRPC:
		return "grpc"
	default:
		return "unknown"
	}
}

// nullWire returns the encoding's null value.
func nullWire(enc Encoding) any {
	if enc == EncodingGRPC {
		return structpb.NewNullValue()
	}
	return nil
}

// isNullWire reports whether a wire value is the null of either encoding.
func isNullWire(w any) bool {
	if w == nil {
		return true
	}
	if v, ok := w.(*structpb.Value); ok {
		if v == nil {
			return true
		}
		_, isNull := v.GetKind().(*structpb.Value_NullValue)
		return isNull
	}
	return false
}

// The wireAs helpers read a wire scalar regardless of encoding. The value
// shapes of the two encodings are disjoint, so no encoding tag is needed
// on the decode side.

func wireAsString(w any) (string, bool) {
	switch v := w.(type) {
	case string:
		return v, true
	case *structpb.Value:
		if s, ok := v.GetKind().(*structpb.Value_StringValue); ok {
			return s.StringValue, true
		}
	}
	return "", false
}

// wireAsNumeric reads a wire numeric value. isInt reports whether the
// wire carried an exact integer; floats keep their full value in f.
func wireAsNumeric(w any) (i int64, f float64, isInt bool, ok bool) {
	switch v := w.(type) {
	case int:
		return int64(v), 0, true, true
	case int32:
		return int64(v), 0, true, true
	case int64:
		return v, 0, true, true
	case uint64:
		// Preserve the bit pattern; narrowing semantics take over later.
		return int64(v), 0, true, true
	case float32:
		return 0, float64(v), false, true
	case float64:
		return 0, v, false, true
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, 0, true, true
		}
		if x, err := v.Float64(); err == nil {
			return 0, x, false, true
		}
	case *structpb.Value:
		if n, isNum := v.GetKind().(*structpb.Value_NumberValue); isNum {
			return 0, n.NumberValue, false, true
		}
	}
	return 0, 0, false, false
}

// wireAsFloat reads any wire numeric as a float64.
func wireAsFloat(w any) (float64, bool) {
	i, f, isInt, ok := wireAsNumeric(w)
	if !ok {
		return 0, false
	}
	if isInt {
		return float64(i), true
	}
	return f, true
}

func wireAsBool(w any) (bool, bool) {
	switch v := w.(type) {
	case bool:
		return v, true
	case *structpb.Value:
		if b, ok := v.GetKind().(*structpb.Value_BoolValue); ok {
			return b.BoolValue, true
		}
	}
	return false, false
}

// wireAsList reads a wire array from either encoding. Elements keep their
// encoding-native shape (*structpb.Value for gRPC lists).
func wireAsList(w any) ([]any, bool) {
	switch v := w.(type) {
	case []any:
		return v, true
	case *structpb.ListValue:
		return listValues(v), true
	case *structpb.Value:
		if l, ok := v.GetKind().(*structpb.Value_ListValue); ok {
			return listValues(l.ListValue), true
		}
	}
	return nil, false
}

func listValues(l *structpb.ListValue) []any {
	out := make([]any, len(l.GetValues()))
	for i, v := range l.GetValues() {
		out[i] = v
	}
	return out
}

// wireAsGraph reads a wire object from either encoding.
func wireAsGraph(w any) (*Graph, bool) {
	switch v := w.(type) {
	case *Graph:
		return v, true
	case map[string]any:
		return GraphFromMap(v), true
	case *structpb.Struct:
		return GraphFromProto(v), true
	case *structpb.Value:
		if s, ok := v.GetKind().(*structpb.Value_StructValue); ok {
			return GraphFromProto(s.StructValue), true
		}
	}
	return nil, false
}

// truncateToInt64 applies the wire-float-to-integer rule: truncate toward
// zero. Floats outside the int64 range have no deterministic truncation
// and are rejected.
func truncateToInt64(f float64) (int64, bool) {
	t := math.Trunc(f)
	if math.IsNaN(t) || t < math.MinInt64 || t >= math.MaxInt64 {
		return 0, false
	}
	return int64(t), true
}

// decodeDynamic converts a wire value into a plain Go value without a
// declared target type (dictionary mode): null becomes nil, objects
// become map[string]any, lists become []any, numbers keep the shape the
// wire carried.
func decodeDynamic(w any) any {
	if isNullWire(w) {
		return nil
	}
	switch v := w.(type) {
	case *structpb.Value:
		switch k := v.GetKind().(type) {
		case *structpb.Value_StringValue:
			return k.StringValue
		case *structpb.Value_NumberValue:
			return k.NumberValue
		case *structpb.Value_BoolValue:
			return k.BoolValue
		case *structpb.Value_StructValue:
			return decodeDynamic(k.StructValue)
		case *structpb.Value_ListValue:
			return decodeDynamic(k.ListValue)
		}
		return nil
	case *structpb.Struct:
		out := make(map[string]any, len(v.GetFields()))
		for name, val := range v.GetFields() {
			out[name] = decodeDynamic(val)
		}
		return out
	case *structpb.ListValue:
		out := make([]any, len(v.GetValues()))
		for i, val := range v.GetValues() {
			out[i] = decodeDynamic(val)
		}
		return out
	case *Graph:
		out := make(map[string]any, v.Len())
		v.Range(func(name string, value any) bool {
			out[name] = decodeDynamic(value)
			return true
		})
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for name, val := range v {
			out[name] = decodeDynamic(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = decodeDynamic(val)
		}
		return out
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	default:
		return v
	}
}

// sortedKeys returns the keys of a map in lexicographic order. Inbound
// map iteration order is unrecoverable, so the deterministic choice is
// made here once for every caller.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
