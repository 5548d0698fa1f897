package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Property describes one property of a collection class: its wire name,
// its logical data type and, for object-typed properties, the nested
// property definitions.
//
// A declared DataType always takes precedence over type inference when the
// conversion layer serializes a native value for this property.
type Property struct {
	// Name is the wire name of the property (lowerCamelCase).
	Name string `json:"name"`

	// DataType is the logical type of the property. On the wire it is
	// spelled as a one-element string array, which the custom JSON
	// methods below take care of.
	DataType DataType `json:"-"`

	// Description is an optional human-readable description.
	Description string `json:"description,omitempty"`

	// NestedProperties defines the shape of object and object[] typed
	// properties. Empty for scalar properties.
	NestedProperties []Property `json:"nestedProperties,omitempty"`

	// Tokenization selects the tokenization scheme for text properties.
	Tokenization string `json:"tokenization,omitempty"`

	// IndexFilterable and IndexSearchable toggle the server-side indexes
	// for this property. Nil leaves the server default in place.
	IndexFilterable *bool `json:"indexFilterable,omitempty"`
	IndexSearchable *bool `json:"indexSearchable,omitempty"`
}

// propertyAlias avoids recursing into the custom JSON methods.
type propertyAlias Property

type propertyJSON struct {
	propertyAlias
	DataType []string `json:"dataType"`
}

// MarshalJSON encodes the property with its data type spelled as a
// one-element string array, matching the REST schema format.
func (p Property) MarshalJSON() ([]byte, error) {
	return json.Marshal(propertyJSON{
		propertyAlias: propertyAlias(p),
		DataType:      []string{string(p.DataType)},
	})
}

// UnmarshalJSON decodes the REST schema format. Properties with an empty
// or missing dataType array are rejected.
func (p *Property) UnmarshalJSON(data []byte) error {
	var aux propertyJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.DataType) == 0 {
		return fmt.Errorf("schema: property %q has no dataType", aux.Name)
	}
	*p = Property(aux.propertyAlias)
	p.DataType = DataType(aux.DataType[0])
	return nil
}

// Class describes one collection: its name, its properties and the
// vectorizer module configured for it.
type Class struct {
	// Name is the collection name. The wire key is "class" for
	// compatibility with the REST schema endpoint.
	Name string `json:"class"`

	Description string     `json:"description,omitempty"`
	Properties  []Property `json:"properties,omitempty"`
	Vectorizer  string     `json:"vectorizer,omitempty"`
}

// Property looks up a property by name. The lookup is case-insensitive,
// using the same folding rule as the property graph, so schema-declared
// types resolve regardless of the casing a caller used.
func (c *Class) Property(name string) (*Property, bool) {
	for i := range c.Properties {
		if strings.EqualFold(c.Properties[i].Name, name) {
			return &c.Properties[i], true
		}
	}
	return nil, false
}
