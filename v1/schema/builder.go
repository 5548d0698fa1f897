package schema

// ClassOption customizes a Class during construction.
type ClassOption func(*Class)

// PropertyOption customizes a Property during construction.
type PropertyOption func(*Property)

// NewClass builds a collection class definition.
//
// Example:
//
//	article := schema.NewClass("Article",
//	    schema.WithDescription("Published articles"),
//	    schema.WithProperty(schema.NewProperty("title", schema.DataTypeText)),
//	    schema.WithProperty(schema.NewProperty("wordCount", schema.DataTypeInt)),
//	    schema.WithProperty(schema.NewProperty("publishedAt", schema.DataTypeDate)),
//	)
func NewClass(name string, opts ...ClassOption) *Class {
	c := &Class{Name: name}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithDescription sets the class description.
func WithDescription(description string) ClassOption {
	return func(c *Class) {
		c.Description = description
	}
}

// WithVectorizer sets the vectorizer module for the class.
func WithVectorizer(vectorizer string) ClassOption {
	return func(c *Class) {
		c.Vectorizer = vectorizer
	}
}

// WithProperty appends a property definition to the class.
func WithProperty(p Property) ClassOption {
	return func(c *Class) {
		c.Properties = append(c.Properties, p)
	}
}

// WithProperties appends several property definitions at once.
func WithProperties(ps ...Property) ClassOption {
	return func(c *Class) {
		c.Properties = append(c.Properties, ps...)
	}
}

// NewProperty builds a property definition.
func NewProperty(name string, dataType DataType, opts ...PropertyOption) Property {
	p := Property{Name: name, DataType: dataType}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// WithPropertyDescription sets the property description.
func WithPropertyDescription(description string) PropertyOption {
	return func(p *Property) {
		p.Description = description
	}
}

// WithNestedProperties defines the nested shape of an object or object[]
// typed property.
func WithNestedProperties(ps ...Property) PropertyOption {
	return func(p *Property) {
		p.NestedProperties = append(p.NestedProperties, ps...)
	}
}

// WithTokenization selects the tokenization scheme for a text property.
func WithTokenization(tokenization string) PropertyOption {
	return func(p *Property) {
		p.Tokenization = tokenization
	}
}

// WithIndexFilterable toggles the filterable index for the property.
func WithIndexFilterable(enabled bool) PropertyOption {
	return func(p *Property) {
		p.IndexFilterable = &enabled
	}
}

// WithIndexSearchable toggles the searchable index for the property.
func WithIndexSearchable(enabled bool) PropertyOption {
	return func(p *Property) {
		p.IndexSearchable = &enabled
	}
}
