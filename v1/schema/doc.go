// Package schema defines the logical type system and collection schema
// model of the Quiver protocol.
//
// # Overview
//
// Every collection property carries a logical [DataType] (text, int,
// number, boolean, date, uuid, blob, geoCoordinates, phoneNumber, object,
// plus array forms). The logical type, not the Go type a caller happens to
// use, decides how a value is represented on the wire. The conversion
// layer in v1/properties dispatches on these tags; this package only
// defines them and the schema structures that declare them.
//
// # Data Types
//
// Scalar tags have an array form for every type except blob,
// geoCoordinates and phoneNumber:
//
//	schema.DataTypeText.Array()     // "text[]", true
//	schema.DataTypeBlob.Array()     // "blob", false
//	schema.DataTypeDateArray.Elem() // "date"
//
// # Declaring A Collection
//
// Classes are built with functional options:
//
//	article := schema.NewClass("Article",
//	    schema.WithDescription("Published articles"),
//	    schema.WithProperty(schema.NewProperty("title", schema.DataTypeText)),
//	    schema.WithProperty(schema.NewProperty("tags", schema.DataTypeTextArray)),
//	    schema.WithProperty(schema.NewProperty("publishedAt", schema.DataTypeDate)),
//	    schema.WithProperty(schema.NewProperty("author", schema.DataTypeObject,
//	        schema.WithNestedProperties(
//	            schema.NewProperty("name", schema.DataTypeText),
//	            schema.NewProperty("verified", schema.DataTypeBoolean),
//	        ),
//	    )),
//	)
//
// A declared DataType always wins over type inference when the conversion
// layer serializes a property value.
//
// # Wire Format
//
// Class and Property marshal to the REST schema format: lowerCamelCase
// keys, the collection name under "class", and dataType spelled as a
// one-element string array.
//
// # Related Packages
//
//   - v1/properties: the conversion engine dispatching on these types
//   - v1/objects: the typed record layer using classes for declared types
package schema
