package properties

import (
	"reflect"

	"github.com/quiverdb/quiver-go/v1/schema"

	"google.golang.org/protobuf/types/known/structpb"
)

// objectConverter serves the object data type and is the resolution
// fallback for struct and string-keyed map types no other converter
// claims. It holds the registry's materializer, so nested fields recurse
// through the same resolution and caching as top-level objects.
type objectConverter struct {
	mat *materializer
}

func (*objectConverter) DataType() schema.DataType { return schema.DataTypeObject }

func (*objectConverter) SupportsArray() bool { return true }

func (*objectConverter) NativeTypes() []reflect.Type {
	return []reflect.Type{reflect.TypeOf(map[string]any(nil))}
}

func (c *objectConverter) ToWire(v any, enc Encoding) (any, error) {
	g, err := c.mat.marshalValue(v, enc, nil)
	if err != nil {
		return nil, err
	}
	if enc == EncodingGRPC {
		s, err := g.ToProto()
		if err != nil {
			return nil, err
		}
		return structpb.NewStructValue(s), nil
	}
	return g, nil
}

func (c *objectConverter) FromWire(w any, target reflect.Type, enc Encoding) (any, error) {
	g, ok := wireAsGraph(w)
	if !ok {
		return nil, convErr("", schema.DataTypeObject, target, enc, "expected wire object")
	}
	return c.mat.unmarshalValue(g, target, enc, nil)
}
