package properties

import (
	"reflect"

	"github.com/quiverdb/quiver-go/v1/schema"

	"google.golang.org/protobuf/types/known/structpb"
)

// ── Converter contracts ──────────────────────────────────────────────────────

// Converter translates values of one logical data type between their
// native Go representation and a wire encoding. Implementations are
// stateless and immutable after construction; every method is safe for
// unbounded concurrent use and deterministic: the same input always
// produces the same output.
//
// The registry guarantees the calling convention: ToWire receives a
// non-nil, non-pointer native value; FromWire receives a non-null wire
// value and a non-pointer target type. Null handling and pointer
// wrapping happen in the conversion plumbing, so converters only deal
// with real values. FromWire returns a value of the target type or one
// convertible to it (named kinds are converted by the plumbing).
type Converter interface {
	// DataType is the scalar logical type this converter serves.
	DataType() schema.DataType

	// SupportsArray reports whether the array form of the data type
	// exists on the wire.
	SupportsArray() bool

	// NativeTypes is the closed set of Go types the converter accepts.
	// Pointer forms are derived by the registry and must not be listed.
	NativeTypes() []reflect.Type

	// ToWire converts a native value into its wire representation:
	// a JSON-ready Go value for EncodingREST, a *structpb.Value for
	// EncodingGRPC.
	ToWire(v any, enc Encoding) (any, error)

	// FromWire converts a wire value into a native value for the target
	// type.
	FromWire(w any, target reflect.Type, enc Encoding) (any, error)
}

// ArrayConverter is an optional upgrade for converters whose array
// conversion cannot be expressed elementwise. The plumbing falls back to
// elementwise mapping of the scalar conversion when a converter does not
// implement it; none of the built-in set needs to.
type ArrayConverter interface {
	Converter

	// ToWireArray converts a whole native slice or array.
	ToWireArray(v any, enc Encoding) (any, error)

	// FromWireArray converts a whole wire array into the target slice or
	// array type.
	FromWireArray(w any, target reflect.Type, enc Encoding) (any, error)
}

// ── Conversion plumbing ──────────────────────────────────────────────────────

// isNilValue reports whether a reflect value is a nil of a nullable kind.
func isNilValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
		return v.IsNil()
	default:
		return false
	}
}

// derefValue unwraps interfaces and pointers down to the concrete value.
// A nil anywhere on the way yields an invalid value.
func derefValue(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// convertToWire runs a scalar native-to-wire conversion. Pointers and
// interfaces are unwrapped first; nils are the caller's business.
func convertToWire(c Converter, v reflect.Value, enc Encoding) (any, error) {
	v = derefValue(v)
	if !v.IsValid() {
		return nil, convErr("", c.DataType(), nil, enc, "nil value")
	}
	return c.ToWire(v.Interface(), enc)
}

// convertFromWire runs a scalar wire-to-native conversion for a target
// type, handling nulls and pointer targets. A wire null yields a nil for
// pointer targets and fails for value targets; that failure is the one
// mandatory error of null handling.
func convertFromWire(c Converter, w any, target reflect.Type, enc Encoding) (reflect.Value, error) {
	if isNullWire(w) {
		if target.Kind() == reflect.Pointer || target.Kind() == reflect.Slice || target.Kind() == reflect.Map {
			return reflect.Zero(target), nil
		}
		return reflect.Value{}, convErr("", c.DataType(), target, enc, "null value for non-nullable target")
	}

	base := target
	pointer := false
	if base.Kind() == reflect.Pointer {
		base = base.Elem()
		pointer = true
	}

	got, err := c.FromWire(w, base, enc)
	if err != nil {
		return reflect.Value{}, err
	}

	rv := reflect.ValueOf(got)
	if !rv.Type().AssignableTo(base) {
		if !rv.Type().ConvertibleTo(base) {
			return reflect.Value{}, convErr("", c.DataType(), target, enc,
				"converter produced "+rv.Type().String())
		}
		rv = rv.Convert(base)
	}

	if pointer {
		p := reflect.New(base)
		p.Elem().Set(rv)
		rv = p
	}
	return rv, nil
}

// toWireArray converts a native slice or array elementwise, preserving
// order and length. Nil elements become wire nulls. Converters
// implementing ArrayConverter take over the whole conversion instead.
func toWireArray(c Converter, v reflect.Value, enc Encoding) (any, error) {
	if ac, ok := c.(ArrayConverter); ok {
		return ac.ToWireArray(v.Interface(), enc)
	}

	v = derefValue(v)
	n := v.Len()

	if enc == EncodingGRPC {
		values := make([]*structpb.Value, 0, n)
		for i := 0; i < n; i++ {
			w, err := elemToWire(c, v.Index(i), enc)
			if err != nil {
				return nil, err
			}
			pv, ok := w.(*structpb.Value)
			if !ok {
				return nil, convErr("", c.DataType(), v.Type(), enc,
					"converter produced a non-protobuf wire value")
			}
			values = append(values, pv)
		}
		return structpb.NewListValue(&structpb.ListValue{Values: values}), nil
	}

	out := make([]any, 0, n)
	for i := 0; i < n; i++ {
		w, err := elemToWire(c, v.Index(i), enc)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

func elemToWire(c Converter, ev reflect.Value, enc Encoding) (any, error) {
	ev = derefValue(ev)
	if !ev.IsValid() || isNilValue(ev) {
		return nullWire(enc), nil
	}
	return c.ToWire(ev.Interface(), enc)
}

// fromWireArray converts a wire array into the target slice or array
// type elementwise, preserving order and length.
func fromWireArray(c Converter, w any, target reflect.Type, enc Encoding) (reflect.Value, error) {
	if ac, ok := c.(ArrayConverter); ok {
		got, err := ac.FromWireArray(w, target, enc)
		if err != nil {
			return reflect.Value{}, err
		}
		rv := reflect.ValueOf(got)
		if !rv.Type().AssignableTo(target) {
			return reflect.Value{}, convErr("", c.DataType(), target, enc,
				"array converter produced "+rv.Type().String())
		}
		return rv, nil
	}

	elems, ok := wireAsList(w)
	if !ok {
		return reflect.Value{}, convErr("", c.DataType(), target, enc, "expected wire array")
	}

	switch target.Kind() {
	case reflect.Slice:
		out := reflect.MakeSlice(target, 0, len(elems))
		for _, we := range elems {
			ev, err := convertFromWire(c, we, target.Elem(), enc)
			if err != nil {
				return reflect.Value{}, err
			}
			out = reflect.Append(out, ev)
		}
		return out, nil
	case reflect.Array:
		if target.Len() != len(elems) {
			return reflect.Value{}, convErr("", c.DataType(), target, enc, "wire array length mismatch")
		}
		out := reflect.New(target).Elem()
		for i, we := range elems {
			ev, err := convertFromWire(c, we, target.Elem(), enc)
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(ev)
		}
		return out, nil
	default:
		return reflect.Value{}, convErr("", c.DataType(), target, enc, "target is not a slice or array")
	}
}
