package properties

import (
	"reflect"

	"github.com/quiverdb/quiver-go/v1/schema"

	"google.golang.org/protobuf/types/known/structpb"
)

var phoneType = reflect.TypeOf(schema.PhoneNumber{})

// phoneConverter serves the phoneNumber data type: a wire object with a
// fixed key set. Clients write input and defaultCountry; the parsed and
// formatted fields come back filled in by the server. No array form
// exists.
type phoneConverter struct{}

func (phoneConverter) DataType() schema.DataType { return schema.DataTypePhoneNumber }

func (phoneConverter) SupportsArray() bool { return false }

func (phoneConverter) NativeTypes() []reflect.Type {
	return []reflect.Type{phoneType}
}

func (c phoneConverter) ToWire(v any, enc Encoding) (any, error) {
	rv := reflect.ValueOf(v)
	if !rv.Type().ConvertibleTo(phoneType) {
		return nil, convErr("", c.DataType(), rv.Type(), enc, "value is not a phone number")
	}
	p := rv.Convert(phoneType).Interface().(schema.PhoneNumber)

	if enc == EncodingGRPC {
		return structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"input":                  structpb.NewStringValue(p.Input),
			"defaultCountry":         structpb.NewStringValue(p.DefaultCountry),
			"countryCode":            structpb.NewNumberValue(float64(p.CountryCode)),
			"national":               structpb.NewNumberValue(float64(p.National)),
			"internationalFormatted": structpb.NewStringValue(p.InternationalFormatted),
			"nationalFormatted":      structpb.NewStringValue(p.NationalFormatted),
			"valid":                  structpb.NewBoolValue(p.Valid),
		}}), nil
	}

	g := NewGraph()
	g.Set("input", p.Input)
	g.Set("defaultCountry", p.DefaultCountry)
	g.Set("countryCode", p.CountryCode)
	g.Set("national", p.National)
	g.Set("internationalFormatted", p.InternationalFormatted)
	g.Set("nationalFormatted", p.NationalFormatted)
	g.Set("valid", p.Valid)
	return g, nil
}

func (c phoneConverter) FromWire(w any, target reflect.Type, enc Encoding) (any, error) {
	g, ok := wireAsGraph(w)
	if !ok {
		return nil, convErr("", c.DataType(), target, enc, "expected wire object")
	}
	if !phoneType.ConvertibleTo(target) {
		return nil, convErr("", c.DataType(), target, enc, "target is not a phone number type")
	}

	p := schema.PhoneNumber{}
	if v, ok := g.Get("input"); ok {
		p.Input, _ = wireAsString(v)
	}
	if v, ok := g.Get("defaultCountry"); ok {
		p.DefaultCountry, _ = wireAsString(v)
	}
	if v, ok := g.Get("countryCode"); ok {
		if f, ok := wireAsFloat(v); ok && f >= 0 {
			p.CountryCode = uint64(f)
		}
	}
	if v, ok := g.Get("national"); ok {
		if f, ok := wireAsFloat(v); ok && f >= 0 {
			p.National = uint64(f)
		}
	}
	if v, ok := g.Get("internationalFormatted"); ok {
		p.InternationalFormatted, _ = wireAsString(v)
	}
	if v, ok := g.Get("nationalFormatted"); ok {
		p.NationalFormatted, _ = wireAsString(v)
	}
	if v, ok := g.Get("valid"); ok {
		p.Valid, _ = wireAsBool(v)
	}
	return p, nil
}
