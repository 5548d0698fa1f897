package properties

import (
	"encoding"
	"reflect"

	"github.com/quiverdb/quiver-go/v1/schema"

	"google.golang.org/protobuf/types/known/structpb"
)

var (
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// textConverter serves the text data type. Besides plain strings it
// accepts any named string kind and any type implementing
// encoding.TextMarshaler, which is how enumerated types declare a wire
// name distinct from their Go value.
type textConverter struct{}

func (textConverter) DataType() schema.DataType { return schema.DataTypeText }

func (textConverter) SupportsArray() bool { return true }

func (textConverter) NativeTypes() []reflect.Type {
	return []reflect.Type{reflect.TypeOf("")}
}

func (c textConverter) ToWire(v any, enc Encoding) (any, error) {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case encoding.TextMarshaler:
		// Declared wire name wins over the default textual value.
		b, err := t.MarshalText()
		if err != nil {
			return nil, &ConversionError{
				DataType: c.DataType(),
				Native:   reflect.TypeOf(v),
				Encoding: enc,
				Reason:   "MarshalText failed",
				Err:      err,
			}
		}
		s = string(b)
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.String {
			return nil, convErr("", c.DataType(), reflect.TypeOf(v), enc, "value is not text")
		}
		s = rv.String()
	}
	if enc == EncodingGRPC {
		return structpb.NewStringValue(s), nil
	}
	return s, nil
}

func (c textConverter) FromWire(w any, target reflect.Type, enc Encoding) (any, error) {
	s, ok := wireAsString(w)
	if !ok {
		return nil, convErr("", c.DataType(), target, enc, "expected wire text")
	}
	if reflect.PointerTo(target).Implements(textUnmarshalerType) {
		p := reflect.New(target)
		if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return nil, &ConversionError{
				DataType: c.DataType(),
				Native:   target,
				Encoding: enc,
				Reason:   "UnmarshalText failed",
				Err:      err,
			}
		}
		return p.Elem().Interface(), nil
	}
	if target.Kind() != reflect.String {
		return nil, convErr("", c.DataType(), target, enc, "target is not a string kind")
	}
	return s, nil
}
