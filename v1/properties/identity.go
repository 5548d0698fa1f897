package properties

import (
	"reflect"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/quiverdb/quiver-go/v1/schema"

	"google.golang.org/protobuf/types/known/structpb"
)

var uuidType = reflect.TypeOf(uuid.UUID{})

// uuidConverter serves the uuid data type. The wire form is always the
// canonical hyphenated string; inputs in other accepted spellings are
// normalized through a parse.
type uuidConverter struct{}

func (uuidConverter) DataType() schema.DataType { return schema.DataTypeUUID }

func (uuidConverter) SupportsArray() bool { return true }

func (uuidConverter) NativeTypes() []reflect.Type {
	return []reflect.Type{uuidType, reflect.TypeOf(strfmt.UUID(""))}
}

func (c uuidConverter) ToWire(v any, enc Encoding) (any, error) {
	var u uuid.UUID
	switch t := v.(type) {
	case uuid.UUID:
		u = t
	case strfmt.UUID:
		parsed, err := uuid.Parse(string(t))
		if err != nil {
			return nil, &ConversionError{
				DataType: c.DataType(),
				Native:   reflect.TypeOf(v),
				Encoding: enc,
				Reason:   "invalid uuid",
				Err:      err,
			}
		}
		u = parsed
	case string:
		parsed, err := uuid.Parse(t)
		if err != nil {
			return nil, &ConversionError{
				DataType: c.DataType(),
				Native:   reflect.TypeOf(v),
				Encoding: enc,
				Reason:   "invalid uuid",
				Err:      err,
			}
		}
		u = parsed
	case [16]byte:
		u = uuid.UUID(t)
	default:
		return nil, convErr("", c.DataType(), reflect.TypeOf(v), enc, "value is not a uuid")
	}
	s := u.String()
	if enc == EncodingGRPC {
		return structpb.NewStringValue(s), nil
	}
	return s, nil
}

func (c uuidConverter) FromWire(w any, target reflect.Type, enc Encoding) (any, error) {
	s, ok := wireAsString(w)
	if !ok {
		return nil, convErr("", c.DataType(), target, enc, "expected wire uuid string")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return nil, &ConversionError{
			DataType: c.DataType(),
			Native:   target,
			Encoding: enc,
			Reason:   "invalid uuid",
			Err:      err,
		}
	}
	if target.Kind() == reflect.String {
		return u.String(), nil
	}
	if !uuidType.ConvertibleTo(target) {
		return nil, convErr("", c.DataType(), target, enc, "target is not a uuid type")
	}
	return u, nil
}
