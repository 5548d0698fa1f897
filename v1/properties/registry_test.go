package properties

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/quiverdb/quiver-go/v1/schema"
)

// currencyAmount carries a custom wire representation in cents.
type currencyAmount struct {
	Cents int64
}

type currencyConverter struct{}

func (currencyConverter) DataType() schema.DataType { return schema.DataTypeInt }

func (currencyConverter) SupportsArray() bool { return true }

func (currencyConverter) NativeTypes() []reflect.Type {
	return []reflect.Type{reflect.TypeOf(currencyAmount{})}
}

func (currencyConverter) ToWire(v any, enc Encoding) (any, error) {
	return v.(currencyAmount).Cents, nil
}

func (currencyConverter) FromWire(w any, target reflect.Type, enc Encoding) (any, error) {
	i, _, _, ok := wireAsNumeric(w)
	if !ok {
		return nil, convErr("", schema.DataTypeInt, target, EncodingREST, "expected wire number")
	}
	return currencyAmount{Cents: i}, nil
}

func TestForDataType(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		dt schema.DataType
		ok bool
	}{
		{schema.DataTypeText, true},
		{schema.DataTypeInt, true},
		{schema.DataTypeNumber, true},
		{schema.DataTypeBoolean, true},
		{schema.DataTypeDate, true},
		{schema.DataTypeUUID, true},
		{schema.DataTypeBlob, true},
		{schema.DataTypeGeoCoordinates, true},
		{schema.DataTypePhoneNumber, true},
		{schema.DataTypeObject, true},
		{schema.DataTypeTextArray, true},
		{schema.DataTypeIntArray, true},
		{schema.DataTypeObjectArray, true},
		{schema.DataType("blob[]"), false},
		{schema.DataType("geoCoordinates[]"), false},
		{schema.DataType("decimal"), false},
	}
	for _, tc := range cases {
		t.Run(string(tc.dt), func(t *testing.T) {
			_, err := reg.ForDataType(tc.dt)
			if tc.ok && err != nil {
				t.Errorf("expected converter for %s, got %v", tc.dt, err)
			}
			if !tc.ok && !IsUnsupportedTypeError(err) {
				t.Errorf("expected unsupported type error for %s, got %v", tc.dt, err)
			}
		})
	}
}

func TestForTypeResolutionChain(t *testing.T) {
	reg := NewRegistry()

	type enum int
	type namedString string

	cases := []struct {
		name string
		typ  reflect.Type
		want schema.DataType
	}{
		{"string", reflect.TypeOf(""), schema.DataTypeText},
		{"named string kind", reflect.TypeOf(namedString("")), schema.DataTypeText},
		{"int", reflect.TypeOf(int(0)), schema.DataTypeInt},
		{"named int kind", reflect.TypeOf(enum(0)), schema.DataTypeInt},
		{"float64", reflect.TypeOf(float64(0)), schema.DataTypeNumber},
		{"bool", reflect.TypeOf(false), schema.DataTypeBoolean},
		{"time", reflect.TypeOf(time.Time{}), schema.DataTypeDate},
		{"uuid", reflect.TypeOf(uuid.UUID{}), schema.DataTypeUUID},
		{"byte slice is blob", reflect.TypeOf([]byte(nil)), schema.DataTypeBlob},
		{"geo", reflect.TypeOf(schema.GeoCoordinates{}), schema.DataTypeGeoCoordinates},
		{"phone", reflect.TypeOf(schema.PhoneNumber{}), schema.DataTypePhoneNumber},
		{"pointer unwraps", reflect.TypeOf((*string)(nil)), schema.DataTypeText},
		{"string slice", reflect.TypeOf([]string(nil)), schema.DataTypeTextArray},
		{"int array", reflect.TypeOf([3]int{}), schema.DataTypeIntArray},
		{"pointer element slice", reflect.TypeOf([]*int(nil)), schema.DataTypeIntArray},
		{"plain struct", reflect.TypeOf(struct{ X int }{}), schema.DataTypeObject},
		{"string keyed map", reflect.TypeOf(map[string]any(nil)), schema.DataTypeObject},
		{"struct slice", reflect.TypeOf([]struct{ X int }(nil)), schema.DataTypeObjectArray},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, dt, err := reg.ForType(tc.typ)
			if err != nil {
				t.Fatalf("expected resolution, got %v", err)
			}
			if dt != tc.want {
				t.Errorf("expected data type %s, got %s", tc.want, dt)
			}
		})
	}
}

func TestForTypeUnrepresentable(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name string
		typ  reflect.Type
	}{
		{"interface", reflect.TypeOf((*interface{ Foo() })(nil)).Elem()},
		{"channel", reflect.TypeOf(make(chan int))},
		{"func", reflect.TypeOf(func() {})},
		{"int keyed map", reflect.TypeOf(map[int]string(nil))},
		{"nested array", reflect.TypeOf([][]string(nil))},
		{"blob array", reflect.TypeOf([][]byte(nil))},
		{"geo array", reflect.TypeOf([]schema.GeoCoordinates(nil))},
		{"phone array", reflect.TypeOf([]schema.PhoneNumber(nil))},
		{"channel slice", reflect.TypeOf([]chan int(nil))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := reg.ForType(tc.typ)
			if !IsUnsupportedTypeError(err) {
				t.Errorf("expected unsupported type error, got %v", err)
			}
		})
	}
}

func TestForTypeTextMarshalerFallback(t *testing.T) {
	reg := NewRegistry()

	// weekday is declared in mapper_test.go and implements TextMarshaler
	// on an integer kind.
	_, dt, err := reg.ForType(reflect.TypeOf(weekday(0)))
	if err != nil {
		t.Fatalf("expected resolution, got %v", err)
	}
	if dt != schema.DataTypeText {
		t.Errorf("expected TextMarshaler to resolve as text, got %s", dt)
	}
}

func TestCustomConverterRegistration(t *testing.T) {
	reg := NewRegistry(WithConverter(currencyConverter{}))

	c, dt, err := reg.ForType(reflect.TypeOf(currencyAmount{}))
	if err != nil {
		t.Fatalf("expected resolution, got %v", err)
	}
	if dt != schema.DataTypeInt {
		t.Errorf("expected data type int, got %s", dt)
	}
	if _, ok := c.(currencyConverter); !ok {
		t.Errorf("expected custom converter to claim the native type, got %T", c)
	}

	// The custom converter replaced the built-in on the data type index.
	c, err = reg.ForDataType(schema.DataTypeInt)
	if err != nil {
		t.Fatalf("ForDataType failed: %v", err)
	}
	if _, ok := c.(currencyConverter); !ok {
		t.Errorf("expected custom converter on the tag index, got %T", c)
	}
}

func TestCustomConverterPointerVariant(t *testing.T) {
	reg := NewRegistry(WithConverter(currencyConverter{}))

	_, dt, err := reg.ForType(reflect.TypeOf((*currencyAmount)(nil)))
	if err != nil {
		t.Fatalf("expected pointer variant to resolve, got %v", err)
	}
	if dt != schema.DataTypeInt {
		t.Errorf("expected data type int, got %s", dt)
	}
}
