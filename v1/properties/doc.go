// Package properties converts typed Go values to and from the property
// payloads of Quiver objects.
//
// The properties package is the data plane of the Quiver client: every
// object written to or read from the database carries a set of named
// properties, and this package translates between an application's Go
// structs and the two wire shapes those properties travel in. It offers
// a pluggable converter registry, reflection-based struct mapping with
// tag support, and an ordered, case-insensitive property graph as the
// intermediate representation.
//
// # Core Features
//
//   - Converters for every Quiver data type (text, int, number, boolean,
//     date, uuid, blob, geoCoordinates, phoneNumber, object) and their
//     array forms
//   - A Registry resolving converters by declared data type or by Go type,
//     with pointer, slice and named-type awareness
//   - A Mapper turning structs, maps and slices into property graphs and
//     back, driven by `quiver` struct tags or registered TypeSpecs
//   - Two wire encodings: JSON-shaped values for the REST API and
//     structpb values for the gRPC API
//   - An ordered, case-insensitive Graph type preserving property order
//     across JSON round trips
//   - Optional logging and operation observation hooks
//
// # Data Types
//
// Quiver declares property types with string tags from the schema
// package: "text", "int", "number", "boolean", "date", "uuid", "blob",
// "geoCoordinates", "phoneNumber", "object", plus "[]"-suffixed array
// forms for all but blob, geoCoordinates and phoneNumber.
//
// Go values map to those tags as follows:
//
//	string, fmt-stringable named types    → text
//	int, int8..int64, uint..uint64        → int
//	float32, float64                      → number
//	bool                                  → boolean
//	time.Time, strfmt.DateTime            → date
//	uuid.UUID, strfmt.UUID                → uuid
//	[]byte                                → blob
//	schema.GeoCoordinates                 → geoCoordinates
//	schema.PhoneNumber                    → phoneNumber
//	structs, map[string]any               → object
//
// # Basic Usage
//
//	import "github.com/quiverdb/quiver-go/v1/properties"
//
//	type Article struct {
//		Title     string    `quiver:"title,text"`
//		Count     int       `quiver:"count"`
//		Tags      []string  `quiver:"tags"`
//		Published time.Time `quiver:"published,date"`
//		Draft     bool      `quiver:"-"`
//	}
//
//	reg := properties.NewRegistry()
//	mapper := properties.NewMapper(reg)
//
//	graph, err := mapper.Marshal(Article{
//		Title:     "Go and vectors",
//		Count:     3,
//		Tags:      []string{"go", "vectors"},
//		Published: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
//	}, properties.EncodingREST)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// graph marshals to JSON in declaration order:
//	// {"title":"Go and vectors","count":3,"tags":["go","vectors"],...}
//
//	var back Article
//	if err := mapper.Unmarshal(graph, &back, properties.EncodingREST); err != nil {
//		log.Fatal(err)
//	}
//
// The tag format is `quiver:"name,datatype"`. The data type is optional;
// untagged fields and tags without a type fall back to inference from
// the Go type. A tag of "-" skips the field.
//
// # Custom Converters
//
// Applications with their own value types register converters at
// registry construction:
//
//	type moneyConverter struct{}
//
//	func (moneyConverter) DataType() schema.DataType     { return schema.DataTypeNumber }
//	func (moneyConverter) SupportsArray() bool           { return true }
//	func (moneyConverter) NativeTypes() []reflect.Type   { return []reflect.Type{reflect.TypeOf(Money{})} }
//	func (moneyConverter) ToWire(v any, enc properties.Encoding) (any, error)   { ... }
//	func (moneyConverter) FromWire(w any, t reflect.Type, enc properties.Encoding) (any, error) { ... }
//
//	reg := properties.NewRegistry(properties.WithConverter(moneyConverter{}))
//
// Custom converters are registered after the built-ins, so they win any
// overlap in data type or native type. Converters that also implement
// ArrayConverter take over whole-array conversion; otherwise arrays are
// converted element by element.
//
// # Class Declarations
//
// When a collection's schema is known, the mapper can honor its declared
// property types instead of inferring from Go types:
//
//	class := schema.NewClass("Article",
//		schema.WithProperty(schema.NewProperty("count", schema.DataTypeNumber)),
//	)
//	mapper := properties.NewMapper(reg, properties.WithClass(class))
//
// Declared types apply to the top-level properties of mapped objects;
// nested object properties keep using their own tags.
//
// # Null Handling
//
// Marshalling writes an explicit null for nil pointers, slices and maps,
// so a property's presence always mirrors the struct shape. Unmarshalling
// maps wire nulls to nil for pointer, slice and map targets and fails for
// value targets; properties absent from the wire leave the target's zero
// value in place. Unknown wire properties are ignored, which keeps old
// clients compatible with newer schemas.
//
// # FX Module Integration
//
// The package exposes an Fx module providing a default registry and
// mapper:
//
//	app := fx.New(
//	    logger.FXModule,
//	    properties.FXModule,
//	    // other modules...
//	)
//	app.Run()
//
// # Thread Safety
//
// The Registry is immutable after construction and safe for concurrent
// use. The Mapper and the underlying type metadata cache are safe for
// concurrent use; first-touch metadata extraction for a type is
// deduplicated across goroutines.
//
// # Testing
//
// Converters are stateless and can be exercised directly. For mapper
// tests, the observability package ships a GoMock Observer mock, and a
// hand-rolled recording observer works just as well.
//
// # Package Layout
//
//	properties/
//	├── graph.go         // Ordered, case-insensitive property graph
//	├── converter.go     // Converter and ArrayConverter contracts
//	├── registry.go      // Converter registration and resolution
//	├── mapper.go        // Struct/map mapping and TypeSpec cache
//	├── encoding.go      // Wire value helpers for REST and gRPC
//	├── text.go ...      // Built-in converters, one file per data type
//	├── errors.go        // Error taxonomy
//	└── fx_module.go     // Fx dependency injection module
//
// # Related Packages
//
//   - github.com/quiverdb/quiver-go/v1/schema: data type tags and
//     collection schema declarations
//   - github.com/quiverdb/quiver-go/v1/objects: object envelopes built
//     on top of property graphs
//   - github.com/quiverdb/quiver-go/v1/observability: operation
//     observation contract used by the Mapper
package properties
