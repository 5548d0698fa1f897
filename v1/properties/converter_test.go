package properties

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/quiverdb/quiver-go/v1/schema"

	"google.golang.org/protobuf/types/known/structpb"
)

func TestIntConverterNarrowing(t *testing.T) {
	c := intConverter{}

	cases := []struct {
		name   string
		wire   any
		target reflect.Type
		want   any
	}{
		{"exact fit", int64(42), reflect.TypeOf(int64(0)), int64(42)},
		{"wraps into int8", int64(300), reflect.TypeOf(int8(0)), int8(44)},
		{"wraps into int16", int64(70000), reflect.TypeOf(int16(0)), int16(4464)},
		{"negative into uint8", int64(-1), reflect.TypeOf(uint8(0)), uint8(255)},
		{"float truncates toward zero", 3.99, reflect.TypeOf(int(0)), int(3)},
		{"negative float truncates toward zero", -3.99, reflect.TypeOf(int(0)), int(-3)},
		{"float then wraps", float64(300), reflect.TypeOf(int8(0)), int8(44)},
		{"int into float target", int64(7), reflect.TypeOf(float64(0)), float64(7)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.FromWire(tc.wire, tc.target, EncodingREST)
			if err != nil {
				t.Fatalf("FromWire failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %T %v, got %T %v", tc.want, tc.want, got, got)
			}
		})
	}
}

func TestIntConverterRejectsNonFiniteFloats(t *testing.T) {
	c := intConverter{}
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e300} {
		_, err := c.FromWire(bad, reflect.TypeOf(int64(0)), EncodingREST)
		if !IsConversionError(err) {
			t.Errorf("expected conversion error for %v, got %v", bad, err)
		}
	}
}

func TestIntConverterWireForms(t *testing.T) {
	c := intConverter{}

	w, err := c.ToWire(int(7), EncodingREST)
	if err != nil {
		t.Fatalf("ToWire REST failed: %v", err)
	}
	if w != int64(7) {
		t.Errorf("expected int64 7 on REST, got %T %v", w, w)
	}

	w, err = c.ToWire(int(7), EncodingGRPC)
	if err != nil {
		t.Fatalf("ToWire GRPC failed: %v", err)
	}
	pv, ok := w.(*structpb.Value)
	if !ok {
		t.Fatalf("expected *structpb.Value on GRPC, got %T", w)
	}
	if pv.GetNumberValue() != 7 {
		t.Errorf("expected number 7, got %v", pv.GetNumberValue())
	}
}

func TestNumberConverterWidensIntegers(t *testing.T) {
	c := numberConverter{}

	w, err := c.ToWire(int(3), EncodingREST)
	if err != nil {
		t.Fatalf("ToWire failed: %v", err)
	}
	if w != float64(3) {
		t.Errorf("expected float64 3, got %T %v", w, w)
	}
}

func TestNumberConverterFromWire(t *testing.T) {
	c := numberConverter{}

	got, err := c.FromWire(2.5, reflect.TypeOf(float32(0)), EncodingREST)
	if err != nil {
		t.Fatalf("FromWire failed: %v", err)
	}
	if got != float32(2.5) {
		t.Errorf("expected float32 2.5, got %T %v", got, got)
	}

	// Wire integers widen into float targets.
	got, err = c.FromWire(int64(4), reflect.TypeOf(float64(0)), EncodingREST)
	if err != nil {
		t.Fatalf("FromWire failed: %v", err)
	}
	if got != float64(4) {
		t.Errorf("expected float64 4, got %T %v", got, got)
	}

	// Integer targets truncate toward zero.
	got, err = c.FromWire(3.99, reflect.TypeOf(int32(0)), EncodingREST)
	if err != nil {
		t.Fatalf("FromWire failed: %v", err)
	}
	if got != int32(3) {
		t.Errorf("expected int32 3, got %T %v", got, got)
	}
}

func TestBooleanConverterWireForms(t *testing.T) {
	c := booleanConverter{}

	w, err := c.ToWire(true, EncodingREST)
	if err != nil || w != true {
		t.Fatalf("expected bare true on REST, got %v (%v)", w, err)
	}

	w, err = c.ToWire(true, EncodingGRPC)
	if err != nil {
		t.Fatalf("ToWire GRPC failed: %v", err)
	}
	pv, ok := w.(*structpb.Value)
	if !ok || !pv.GetBoolValue() {
		t.Fatalf("expected protobuf bool true, got %T %v", w, w)
	}

	got, err := c.FromWire(pv, reflect.TypeOf(false), EncodingGRPC)
	if err != nil || got != true {
		t.Fatalf("expected round trip true, got %v (%v)", got, err)
	}
}

func TestDateConverterNormalizesToUTC(t *testing.T) {
	c := dateConverter{}

	in := time.Date(2024, 1, 1, 1, 0, 0, 0, time.FixedZone("CET", 3600))
	w, err := c.ToWire(in, EncodingREST)
	if err != nil {
		t.Fatalf("ToWire failed: %v", err)
	}
	if w != "2024-01-01T00:00:00Z" {
		t.Errorf("expected UTC wire string, got %v", w)
	}
}

func TestDateConverterLayouts(t *testing.T) {
	c := dateConverter{}

	cases := []struct {
		name string
		in   string
		want time.Time
	}{
		{"rfc3339", "2024-01-01T15:04:05Z", time.Date(2024, 1, 1, 15, 4, 5, 0, time.UTC)},
		{"rfc3339 with offset", "2024-01-01T16:04:05+01:00", time.Date(2024, 1, 1, 15, 4, 5, 0, time.UTC)},
		{"zoneless", "2024-01-01T15:04:05.5", time.Date(2024, 1, 1, 15, 4, 5, 500000000, time.UTC)},
		{"date only", "2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.FromWire(tc.in, timeType, EncodingREST)
			if err != nil {
				t.Fatalf("FromWire failed: %v", err)
			}
			ts, ok := got.(time.Time)
			if !ok {
				t.Fatalf("expected time.Time, got %T", got)
			}
			if !ts.Equal(tc.want) {
				t.Errorf("expected %v, got %v", tc.want, ts)
			}
		})
	}

	_, err := c.FromWire("not-a-date", timeType, EncodingREST)
	if !IsConversionError(err) {
		t.Errorf("expected conversion error for junk input, got %v", err)
	}
}

func TestUUIDConverterCanonicalizes(t *testing.T) {
	c := uuidConverter{}

	w, err := c.ToWire("6BA7B810-9DAD-11D1-80B4-00C04FD430C8", EncodingREST)
	if err != nil {
		t.Fatalf("ToWire failed: %v", err)
	}
	if w != "6ba7b810-9dad-11d1-80b4-00c04fd430c8" {
		t.Errorf("expected canonical lowercase form, got %v", w)
	}

	got, err := c.FromWire("6ba7b810-9dad-11d1-80b4-00c04fd430c8", uuidType, EncodingREST)
	if err != nil {
		t.Fatalf("FromWire failed: %v", err)
	}
	u, ok := got.(uuid.UUID)
	if !ok {
		t.Fatalf("expected uuid.UUID, got %T", got)
	}
	if u.String() != "6ba7b810-9dad-11d1-80b4-00c04fd430c8" {
		t.Errorf("unexpected uuid %v", u)
	}

	_, err = c.ToWire("not-a-uuid", EncodingREST)
	if !IsConversionError(err) {
		t.Errorf("expected conversion error, got %v", err)
	}
}

func TestBlobConverterCanonicalBase64(t *testing.T) {
	c := blobConverter{}

	w, err := c.ToWire([]byte("hi"), EncodingREST)
	if err != nil {
		t.Fatalf("ToWire failed: %v", err)
	}
	if w != "aGk=" {
		t.Errorf("expected aGk=, got %v", w)
	}

	// String input is validated and re-emitted canonically.
	w, err = c.ToWire("aGk=", EncodingREST)
	if err != nil || w != "aGk=" {
		t.Fatalf("expected pass-through of valid base64, got %v (%v)", w, err)
	}
	if _, err := c.ToWire("!!!", EncodingREST); !IsConversionError(err) {
		t.Errorf("expected conversion error for invalid base64, got %v", err)
	}

	got, err := c.FromWire("aGk=", byteSliceType, EncodingREST)
	if err != nil {
		t.Fatalf("FromWire failed: %v", err)
	}
	if string(got.([]byte)) != "hi" {
		t.Errorf("expected decoded bytes, got %v", got)
	}

	got, err = c.FromWire("aGk=", reflect.TypeOf(""), EncodingREST)
	if err != nil || got != "aGk=" {
		t.Fatalf("expected string target to keep base64, got %v (%v)", got, err)
	}
}

func TestGeoConverterRoundTrip(t *testing.T) {
	c := geoConverter{}
	in := schema.GeoCoordinates{Latitude: 52.52, Longitude: 13.405}

	w, err := c.ToWire(in, EncodingREST)
	if err != nil {
		t.Fatalf("ToWire failed: %v", err)
	}
	g, ok := w.(*Graph)
	if !ok {
		t.Fatalf("expected *Graph wire object, got %T", w)
	}
	lat, _ := g.Get("latitude")
	if lat != float64(float32(52.52)) {
		t.Errorf("unexpected latitude %v", lat)
	}

	got, err := c.FromWire(g, geoType, EncodingREST)
	if err != nil {
		t.Fatalf("FromWire failed: %v", err)
	}
	if got != in {
		t.Errorf("expected %v, got %v", in, got)
	}
}

func TestGeoConverterGRPCWireForm(t *testing.T) {
	c := geoConverter{}
	in := schema.GeoCoordinates{Latitude: 1, Longitude: 2}

	w, err := c.ToWire(in, EncodingGRPC)
	if err != nil {
		t.Fatalf("ToWire failed: %v", err)
	}
	pv, ok := w.(*structpb.Value)
	if !ok {
		t.Fatalf("expected *structpb.Value, got %T", w)
	}
	fields := pv.GetStructValue().GetFields()
	if fields["latitude"].GetNumberValue() != 1 || fields["longitude"].GetNumberValue() != 2 {
		t.Errorf("unexpected struct fields %v", fields)
	}

	got, err := c.FromWire(pv, geoType, EncodingGRPC)
	if err != nil || got != in {
		t.Fatalf("expected round trip %v, got %v (%v)", in, got, err)
	}
}

func TestPhoneConverterRoundTrip(t *testing.T) {
	c := phoneConverter{}
	in := schema.PhoneNumber{
		Input:                  "020 1234567",
		DefaultCountry:         "nl",
		CountryCode:            31,
		National:               201234567,
		InternationalFormatted: "+31 20 1234567",
		NationalFormatted:      "020 1234567",
		Valid:                  true,
	}

	w, err := c.ToWire(in, EncodingREST)
	if err != nil {
		t.Fatalf("ToWire failed: %v", err)
	}
	g, ok := w.(*Graph)
	if !ok {
		t.Fatalf("expected *Graph wire object, got %T", w)
	}
	wantKeys := []string{
		"input", "defaultCountry", "countryCode", "national",
		"internationalFormatted", "nationalFormatted", "valid",
	}
	if !reflect.DeepEqual(g.Keys(), wantKeys) {
		t.Errorf("unexpected key set %v", g.Keys())
	}

	got, err := c.FromWire(g, phoneType, EncodingREST)
	if err != nil {
		t.Fatalf("FromWire failed: %v", err)
	}
	if got != in {
		t.Errorf("expected %+v, got %+v", in, got)
	}
}

func TestTextConverterNamedStringKinds(t *testing.T) {
	type category string
	c := textConverter{}

	w, err := c.ToWire(category("science"), EncodingREST)
	if err != nil || w != "science" {
		t.Fatalf("expected named string to serialize, got %v (%v)", w, err)
	}

	// The converter hands back a plain string; the calling plumbing
	// converts it into the named kind.
	rv, err := convertFromWire(c, "science", reflect.TypeOf(category("")), EncodingREST)
	if err != nil {
		t.Fatalf("convertFromWire failed: %v", err)
	}
	if rv.Interface() != category("science") {
		t.Errorf("expected category science, got %T %v", rv.Interface(), rv.Interface())
	}
}
