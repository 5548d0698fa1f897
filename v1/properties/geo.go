package properties

import (
	"reflect"

	"github.com/quiverdb/quiver-go/v1/schema"

	"google.golang.org/protobuf/types/known/structpb"
)

var geoType = reflect.TypeOf(schema.GeoCoordinates{})

// geoConverter serves the geoCoordinates data type: a wire object with
// the fixed keys "latitude" and "longitude". No array form exists.
type geoConverter struct{}

func (geoConverter) DataType() schema.DataType { return schema.DataTypeGeoCoordinates }

func (geoConverter) SupportsArray() bool { return false }

func (geoConverter) NativeTypes() []reflect.Type {
	return []reflect.Type{geoType}
}

func (c geoConverter) ToWire(v any, enc Encoding) (any, error) {
	rv := reflect.ValueOf(v)
	if !rv.Type().ConvertibleTo(geoType) {
		return nil, convErr("", c.DataType(), rv.Type(), enc, "value is not a geo coordinate")
	}
	geo := rv.Convert(geoType).Interface().(schema.GeoCoordinates)

	if enc == EncodingGRPC {
		return structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"latitude":  structpb.NewNumberValue(float64(geo.Latitude)),
			"longitude": structpb.NewNumberValue(float64(geo.Longitude)),
		}}), nil
	}

	g := NewGraph()
	g.Set("latitude", float64(geo.Latitude))
	g.Set("longitude", float64(geo.Longitude))
	return g, nil
}

func (c geoConverter) FromWire(w any, target reflect.Type, enc Encoding) (any, error) {
	g, ok := wireAsGraph(w)
	if !ok {
		return nil, convErr("", c.DataType(), target, enc, "expected wire object")
	}
	if !geoType.ConvertibleTo(target) {
		return nil, convErr("", c.DataType(), target, enc, "target is not a geo coordinate type")
	}

	geo := schema.GeoCoordinates{}
	if v, ok := g.Get("latitude"); ok {
		if f, ok := wireAsFloat(v); ok {
			geo.Latitude = float32(f)
		}
	}
	if v, ok := g.Get("longitude"); ok {
		if f, ok := wireAsFloat(v); ok {
			geo.Longitude = float32(f)
		}
	}
	return geo, nil
}
