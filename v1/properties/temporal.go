package properties

import (
	"reflect"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/quiverdb/quiver-go/v1/schema"

	"google.golang.org/protobuf/types/known/structpb"
)

var timeType = reflect.TypeOf(time.Time{})

// Accepted wire layouts, tried in order. Layouts without a zone parse as
// UTC, which is the rule for zoneless input.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// dateConverter serves the date data type. Dates normalize to UTC in both
// directions regardless of the zone a native value or wire string
// carried, so equal instants always compare equal after a round trip.
type dateConverter struct{}

func (dateConverter) DataType() schema.DataType { return schema.DataTypeDate }

func (dateConverter) SupportsArray() bool { return true }

func (dateConverter) NativeTypes() []reflect.Type {
	return []reflect.Type{timeType, reflect.TypeOf(strfmt.DateTime{})}
}

func (c dateConverter) ToWire(v any, enc Encoding) (any, error) {
	var t time.Time
	switch val := v.(type) {
	case time.Time:
		t = val
	case strfmt.DateTime:
		t = time.Time(val)
	default:
		rv := reflect.ValueOf(v)
		if !rv.Type().ConvertibleTo(timeType) {
			return nil, convErr("", c.DataType(), rv.Type(), enc, "value is not a time")
		}
		t = rv.Convert(timeType).Interface().(time.Time)
	}
	s := t.UTC().Format(time.RFC3339Nano)
	if enc == EncodingGRPC {
		return structpb.NewStringValue(s), nil
	}
	return s, nil
}

func (c dateConverter) FromWire(w any, target reflect.Type, enc Encoding) (any, error) {
	s, ok := wireAsString(w)
	if !ok {
		return nil, convErr("", c.DataType(), target, enc, "expected wire date string")
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, &ConversionError{
			DataType: c.DataType(),
			Native:   target,
			Encoding: enc,
			Reason:   "invalid date",
			Err:      err,
		}
	}
	if !timeType.ConvertibleTo(target) {
		return nil, convErr("", c.DataType(), target, enc, "target is not a time type")
	}
	return t, nil
}

func parseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
