package properties

import (
	"math"
	"reflect"

	"github.com/quiverdb/quiver-go/v1/schema"

	"google.golang.org/protobuf/types/known/structpb"
)

// intConverter serves the int data type for every Go integer kind.
// Narrowing follows two's-complement truncation: a wire value wider than
// the target keeps the target's low bits, never an error. Wire 300 into
// an int8 field is 44, and it re-serializes as 44.
type intConverter struct{}

func (intConverter) DataType() schema.DataType { return schema.DataTypeInt }

func (intConverter) SupportsArray() bool { return true }

func (intConverter) NativeTypes() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(int(0)), reflect.TypeOf(int8(0)), reflect.TypeOf(int16(0)),
		reflect.TypeOf(int32(0)), reflect.TypeOf(int64(0)),
		reflect.TypeOf(uint(0)), reflect.TypeOf(uint8(0)), reflect.TypeOf(uint16(0)),
		reflect.TypeOf(uint32(0)), reflect.TypeOf(uint64(0)),
	}
}

func (c intConverter) ToWire(v any, enc Encoding) (any, error) {
	rv := reflect.ValueOf(v)
	var i int64
	switch {
	case rv.CanInt():
		i = rv.Int()
	case rv.CanUint():
		u := rv.Uint()
		if u > math.MaxInt64 {
			if enc == EncodingGRPC {
				return structpb.NewNumberValue(float64(u)), nil
			}
			return u, nil
		}
		i = int64(u)
	default:
		return nil, convErr("", c.DataType(), rv.Type(), enc, "value is not an integer")
	}
	if enc == EncodingGRPC {
		// Numbers travel as float64 on this path; beyond ±2^53 the low
		// bits are gone before the server sees them.
		return structpb.NewNumberValue(float64(i)), nil
	}
	return i, nil
}

func (c intConverter) FromWire(w any, target reflect.Type, enc Encoding) (any, error) {
	i, f, isInt, ok := wireAsNumeric(w)
	if !ok {
		return nil, convErr("", c.DataType(), target, enc, "expected wire number")
	}
	if !isInt {
		t, ok := truncateToInt64(f)
		if !ok {
			return nil, convErr("", c.DataType(), target, enc, "value outside the integer range")
		}
		i = t
	}
	return narrowInt(i, target, c.DataType(), enc)
}

// narrowInt converts an int64 to the target's integer kind with
// two's-complement truncation.
func narrowInt(i int64, target reflect.Type, dt schema.DataType, enc Encoding) (any, error) {
	switch target.Kind() {
	case reflect.Int:
		return int(i), nil
	case reflect.Int8:
		return int8(i), nil
	case reflect.Int16:
		return int16(i), nil
	case reflect.Int32:
		return int32(i), nil
	case reflect.Int64:
		return i, nil
	case reflect.Uint:
		return uint(i), nil
	case reflect.Uint8:
		return uint8(i), nil
	case reflect.Uint16:
		return uint16(i), nil
	case reflect.Uint32:
		return uint32(i), nil
	case reflect.Uint64:
		return uint64(i), nil
	case reflect.Float32:
		return float32(i), nil
	case reflect.Float64:
		return float64(i), nil
	default:
		return nil, convErr("", dt, target, enc, "target is not a numeric kind")
	}
}

// numberConverter serves the number data type for floating-point kinds.
// Native integers widen to number when a property declares it; wire
// floats narrow into integer targets by truncation toward zero.
type numberConverter struct{}

func (numberConverter) DataType() schema.DataType { return schema.DataTypeNumber }

func (numberConverter) SupportsArray() bool { return true }

func (numberConverter) NativeTypes() []reflect.Type {
	return []reflect.Type{reflect.TypeOf(float32(0)), reflect.TypeOf(float64(0))}
}

func (c numberConverter) ToWire(v any, enc Encoding) (any, error) {
	rv := reflect.ValueOf(v)
	var f float64
	switch {
	case rv.CanFloat():
		f = rv.Float()
	case rv.CanInt():
		f = float64(rv.Int())
	case rv.CanUint():
		f = float64(rv.Uint())
	default:
		return nil, convErr("", c.DataType(), rv.Type(), enc, "value is not numeric")
	}
	if enc == EncodingGRPC {
		return structpb.NewNumberValue(f), nil
	}
	return f, nil
}

func (c numberConverter) FromWire(w any, target reflect.Type, enc Encoding) (any, error) {
	i, f, isInt, ok := wireAsNumeric(w)
	if !ok {
		return nil, convErr("", c.DataType(), target, enc, "expected wire number")
	}
	if isInt {
		f = float64(i)
	}
	switch target.Kind() {
	case reflect.Float64:
		return f, nil
	case reflect.Float32:
		return float32(f), nil
	default:
		if !isInt {
			t, ok := truncateToInt64(f)
			if !ok {
				return nil, convErr("", c.DataType(), target, enc, "value outside the integer range")
			}
			i = t
		}
		return narrowInt(i, target, c.DataType(), enc)
	}
}
