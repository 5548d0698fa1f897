package schema

import "strings"

// DataType identifies the logical type of a collection property. Logical
// types are the unit of conversion dispatch: the same DataType always maps
// to the same wire representation regardless of which Go type a caller
// used natively.
type DataType string

// Scalar data types.
const (
	DataTypeText           DataType = "text"
	DataTypeInt            DataType = "int"
	DataTypeNumber         DataType = "number"
	DataTypeBoolean        DataType = "boolean"
	DataTypeDate           DataType = "date"
	DataTypeUUID           DataType = "uuid"
	DataTypeBlob           DataType = "blob"
	DataTypeGeoCoordinates DataType = "geoCoordinates"
	DataTypePhoneNumber    DataType = "phoneNumber"
	DataTypeObject         DataType = "object"
)

// Array data types. Every scalar type except blob, geoCoordinates and
// phoneNumber has an array form.
const (
	DataTypeTextArray    DataType = "text[]"
	DataTypeIntArray     DataType = "int[]"
	DataTypeNumberArray  DataType = "number[]"
	DataTypeBooleanArray DataType = "boolean[]"
	DataTypeDateArray    DataType = "date[]"
	DataTypeUUIDArray    DataType = "uuid[]"
	DataTypeObjectArray  DataType = "object[]"
)

const arraySuffix = "[]"

// scalarTypes maps every scalar tag to whether an array form exists.
var scalarTypes = map[DataType]bool{
	DataTypeText:           true,
	DataTypeInt:            true,
	DataTypeNumber:         true,
	DataTypeBoolean:        true,
	DataTypeDate:           true,
	DataTypeUUID:           true,
	DataTypeBlob:           false,
	DataTypeGeoCoordinates: false,
	DataTypePhoneNumber:    false,
	DataTypeObject:         true,
}

// IsArray reports whether d is an array data type.
func (d DataType) IsArray() bool {
	return strings.HasSuffix(string(d), arraySuffix)
}

// Elem returns the element type of an array data type. For scalar data
// types Elem returns the type unchanged.
func (d DataType) Elem() DataType {
	return DataType(strings.TrimSuffix(string(d), arraySuffix))
}

// Array returns the array form of a scalar data type. The second return
// value is false when d is already an array type or when no array form
// exists (blob, geoCoordinates, phoneNumber).
func (d DataType) Array() (DataType, bool) {
	if d.IsArray() || !scalarTypes[d] {
		return d, false
	}
	return d + arraySuffix, true
}

// Valid reports whether d is one of the known data types.
func (d DataType) Valid() bool {
	elem, ok := scalarTypes[d.Elem()]
	if !ok {
		return false
	}
	if d.IsArray() {
		return elem
	}
	return true
}

// String returns the wire spelling of the data type.
func (d DataType) String() string {
	return string(d)
}

// GeoCoordinates is the native value for the geoCoordinates data type.
// On the wire it is an object with the fixed keys "latitude" and
// "longitude".
type GeoCoordinates struct {
	Latitude  float32 `json:"latitude"`
	Longitude float32 `json:"longitude"`
}

// PhoneNumber is the native value for the phoneNumber data type. Clients
// write Input and optionally DefaultCountry; the remaining fields are
// filled in by the server after parsing and come back on reads.
type PhoneNumber struct {
	// Input is the raw number as provided by the caller.
	Input string `json:"input"`

	// DefaultCountry is the ISO 3166-1 alpha-2 country code used to parse
	// numbers written without an international prefix.
	DefaultCountry string `json:"defaultCountry,omitempty"`

	CountryCode            uint64 `json:"countryCode,omitempty"`
	National               uint64 `json:"national,omitempty"`
	InternationalFormatted string `json:"internationalFormatted,omitempty"`
	NationalFormatted      string `json:"nationalFormatted,omitempty"`
	Valid                  bool   `json:"valid,omitempty"`
}
