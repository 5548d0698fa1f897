package properties

import (
	"encoding/base64"
	"reflect"

	"github.com/quiverdb/quiver-go/v1/schema"

	"google.golang.org/protobuf/types/known/structpb"
)

var byteSliceType = reflect.TypeOf([]byte(nil))

// blobConverter serves the blob data type. The wire form is a standard
// base64 string in both encodings; blob has no array form.
type blobConverter struct{}

func (blobConverter) DataType() schema.DataType { return schema.DataTypeBlob }

func (blobConverter) SupportsArray() bool { return false }

func (blobConverter) NativeTypes() []reflect.Type {
	return []reflect.Type{byteSliceType}
}

func (c blobConverter) ToWire(v any, enc Encoding) (any, error) {
	var s string
	switch t := v.(type) {
	case []byte:
		s = base64.StdEncoding.EncodeToString(t)
	case string:
		// Already-encoded input is validated and re-emitted canonically.
		b, err := base64.StdEncoding.DecodeString(t)
		if err != nil {
			return nil, &ConversionError{
				DataType: c.DataType(),
				Native:   reflect.TypeOf(v),
				Encoding: enc,
				Reason:   "invalid base64",
				Err:      err,
			}
		}
		s = base64.StdEncoding.EncodeToString(b)
	default:
		return nil, convErr("", c.DataType(), reflect.TypeOf(v), enc, "value is not a byte slice")
	}
	if enc == EncodingGRPC {
		return structpb.NewStringValue(s), nil
	}
	return s, nil
}

func (c blobConverter) FromWire(w any, target reflect.Type, enc Encoding) (any, error) {
	s, ok := wireAsString(w)
	if !ok {
		return nil, convErr("", c.DataType(), target, enc, "expected wire base64 string")
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, &ConversionError{
			DataType: c.DataType(),
			Native:   target,
			Encoding: enc,
			Reason:   "invalid base64",
			Err:      err,
		}
	}
	switch {
	case target.Kind() == reflect.Slice && target.Elem().Kind() == reflect.Uint8:
		return b, nil
	case target.Kind() == reflect.String:
		return s, nil
	default:
		return nil, convErr("", c.DataType(), target, enc, "target is not a byte slice")
	}
}
