package properties

import (
	"reflect"

	"github.com/quiverdb/quiver-go/v1/schema"

	"google.golang.org/protobuf/types/known/structpb"
)

// booleanConverter serves the boolean data type.
type booleanConverter struct{}

func (booleanConverter) DataType() schema.DataType { return schema.DataTypeBoolean }

func (booleanConverter) SupportsArray() bool { return true }

func (booleanConverter) NativeTypes() []reflect.Type {
	return []reflect.Type{reflect.TypeOf(false)}
}

func (c booleanConverter) ToWire(v any, enc Encoding) (any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Bool {
		return nil, convErr("", c.DataType(), rv.Type(), enc, "value is not a boolean")
	}
	if enc == EncodingGRPC {
		return structpb.NewBoolValue(rv.Bool()), nil
	}
	return rv.Bool(), nil
}

func (c booleanConverter) FromWire(w any, target reflect.Type, enc Encoding) (any, error) {
	b, ok := wireAsBool(w)
	if !ok {
		return nil, convErr("", c.DataType(), target, enc, "expected wire boolean")
	}
	if target.Kind() != reflect.Bool {
		return nil, convErr("", c.DataType(), target, enc, "target is not a boolean kind")
	}
	return b, nil
}
