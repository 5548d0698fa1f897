package properties

import (
	"reflect"

	"github.com/quiverdb/quiver-go/v1/logger"
	"github.com/quiverdb/quiver-go/v1/schema"
)

// ── Registry ─────────────────────────────────────────────────────────────────

// Registry owns the converter set and resolves which converter serves a
// data type tag or a native Go type. Both indices are built once during
// construction and never mutated afterwards, so every method is safe for
// unbounded concurrent use.
//
// There is no package-level default instance; construction is always
// explicit:
//
//	reg := properties.NewRegistry()
//	conv, err := reg.ForDataType(schema.DataTypeDate)
type Registry struct {
	byDataType map[schema.DataType]Converter
	byNative   map[reflect.Type]Converter
	object     *objectConverter
	mat        *materializer
	log        *logger.Logger
}

// RegistryOption customizes a Registry during construction.
type RegistryOption func(*registryConfig)

type registryConfig struct {
	converters []Converter
	log        *logger.Logger
}

// WithConverter registers an additional converter. A converter serving a
// data type already in the built-in set replaces it, including the
// native type index entries it claims.
func WithConverter(c Converter) RegistryOption {
	return func(cfg *registryConfig) {
		cfg.converters = append(cfg.converters, c)
	}
}

// WithRegistryLogger attaches a logger; the registry logs a debug
// summary of the converter set at construction.
func WithRegistryLogger(log *logger.Logger) RegistryOption {
	return func(cfg *registryConfig) {
		cfg.log = log
	}
}

// NewRegistry builds a registry with the built-in converter set: text,
// int, number, boolean, date, uuid, blob, geoCoordinates, phoneNumber
// and object, plus the array forms the protocol defines.
func NewRegistry(opts ...RegistryOption) *Registry {
	cfg := registryConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Registry{
		byDataType: make(map[schema.DataType]Converter),
		byNative:   make(map[reflect.Type]Converter),
		log:        cfg.log,
	}
	r.mat = newMaterializer(r)
	r.object = &objectConverter{mat: r.mat}

	builtins := []Converter{
		textConverter{},
		intConverter{},
		numberConverter{},
		booleanConverter{},
		dateConverter{},
		uuidConverter{},
		blobConverter{},
		geoConverter{},
		phoneConverter{},
		r.object,
	}
	for _, c := range builtins {
		r.register(c)
	}
	// Custom converters come last so they win index collisions.
	for _, c := range cfg.converters {
		r.register(c)
	}

	if r.log != nil {
		r.log.Debug("property converter registry built", nil, map[string]interface{}{
			"data_types":   len(r.byDataType),
			"native_types": len(r.byNative),
		})
	}
	return r
}

func (r *Registry) register(c Converter) {
	r.byDataType[c.DataType()] = c
	if c.SupportsArray() {
		if arrayTag, ok := c.DataType().Array(); ok {
			r.byDataType[arrayTag] = c
		}
	}
	for _, t := range c.NativeTypes() {
		r.byNative[t] = c
		r.byNative[reflect.PointerTo(t)] = c
	}
}

// ── Resolution ───────────────────────────────────────────────────────────────

// ForDataType returns the converter serving a data type tag. Array tags
// resolve to the same converter as their element tag. Unknown tags and
// array tags of non-arrayable types fail with an UnsupportedTypeError.
func (r *Registry) ForDataType(dt schema.DataType) (Converter, error) {
	if c, ok := r.byDataType[dt]; ok {
		return c, nil
	}
	return nil, &UnsupportedTypeError{DataType: dt}
}

// ForType resolves the converter for a native Go type and reports the
// data type tag the resolution implies. The chain is: exact native type,
// pointer unwrap, slice or array element, text-compatible kinds, then
// the object fallback for structs and string-keyed maps. Only types
// nothing can represent fail (interfaces without a value, channels,
// funcs).
func (r *Registry) ForType(t reflect.Type) (Converter, schema.DataType, error) {
	if c, ok := r.byNative[t]; ok {
		return c, c.DataType(), nil
	}

	switch t.Kind() {
	case reflect.Pointer:
		return r.ForType(t.Elem())

	case reflect.Slice, reflect.Array:
		c, elemTag, err := r.ForType(t.Elem())
		if err != nil {
			return nil, "", &UnsupportedTypeError{Type: t}
		}
		arrayTag, ok := elemTag.Array()
		if !ok {
			// Nested arrays and arrays of blob, geo or phone have no
			// wire form.
			return nil, "", &UnsupportedTypeError{Type: t}
		}
		return c, arrayTag, nil
	}

	// Enumerated types declare a wire name through TextMarshaler, named
	// kinds fall back to their underlying kind.
	if t.Implements(textMarshalerType) || reflect.PointerTo(t).Implements(textMarshalerType) {
		return r.byDataType[schema.DataTypeText], schema.DataTypeText, nil
	}
	switch t.Kind() {
	case reflect.String:
		return r.byDataType[schema.DataTypeText], schema.DataTypeText, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return r.byDataType[schema.DataTypeInt], schema.DataTypeInt, nil
	case reflect.Float32, reflect.Float64:
		return r.byDataType[schema.DataTypeNumber], schema.DataTypeNumber, nil
	case reflect.Bool:
		return r.byDataType[schema.DataTypeBoolean], schema.DataTypeBoolean, nil
	case reflect.Struct:
		return r.object, schema.DataTypeObject, nil
	case reflect.Map:
		if t.Key().Kind() == reflect.String {
			return r.object, schema.DataTypeObject, nil
		}
	}

	return nil, "", &UnsupportedTypeError{Type: t}
}
