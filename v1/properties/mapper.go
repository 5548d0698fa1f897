package properties

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"golang.org/x/sync/singleflight"

	"github.com/quiverdb/quiver-go/v1/logger"
	"github.com/quiverdb/quiver-go/v1/observability"
	"github.com/quiverdb/quiver-go/v1/schema"
)

// ── Type specs ───────────────────────────────────────────────────────────────

// FieldSpec describes one property of a mapped type: its wire name, an
// optional declared data type, the field's Go type and the accessor pair
// the mapper calls instead of touching struct internals itself.
type FieldSpec struct {
	// Name is the wire name of the property.
	Name string

	// DataType optionally declares the logical type. When set it beats
	// inference from the field's Go type.
	DataType schema.DataType

	// Type is the native Go type of the field.
	Type reflect.Type

	// Get reads the field from a pointer to the mapped type.
	Get func(v any) any

	// Set writes a converted native value of exactly Type into a pointer
	// to the mapped type. A nil Set makes the field read-only: it
	// serializes but is skipped on deserialization.
	Set func(v any, w any) error
}

// TypeSpec is the field table of one mapped type. Specs registered
// explicitly replace the reflection-derived table the mapper would
// otherwise compute.
type TypeSpec struct {
	// Type is the mapped struct type, without pointer.
	Type reflect.Type

	// Fields lists the properties in serialization order.
	Fields []FieldSpec
}

func (s *TypeSpec) validate() error {
	if s.Type == nil || s.Type.Kind() != reflect.Struct {
		return fmt.Errorf("properties: type spec needs a struct type, got %v", s.Type)
	}
	seen := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		if f.Name == "" || f.Type == nil || f.Get == nil {
			return fmt.Errorf("properties: field spec of %s needs name, type and getter", s.Type)
		}
		folded := foldKey(f.Name)
		if _, dup := seen[folded]; dup {
			return fmt.Errorf("properties: duplicate wire name %q in %s", f.Name, s.Type)
		}
		seen[folded] = struct{}{}
		if f.DataType != "" && !f.DataType.Valid() {
			return fmt.Errorf("properties: field %q of %s: %w", f.Name, s.Type,
				&UnsupportedTypeError{DataType: f.DataType})
		}
	}
	return nil
}

// ── Materializer ─────────────────────────────────────────────────────────────

// materializer walks objects: native values to graphs and back. It is
// shared by every mapper over one registry and carries the per-type
// metadata cache. The cache is insert-if-absent and read-mostly;
// concurrent first use of a type computes its spec exactly once and
// every caller observes the same table.
type materializer struct {
	reg   *Registry
	specs sync.Map // reflect.Type -> *TypeSpec
	group singleflight.Group
}

func newMaterializer(reg *Registry) *materializer {
	return &materializer{reg: reg}
}

func (m *materializer) register(spec TypeSpec) error {
	if err := spec.validate(); err != nil {
		return err
	}
	m.specs.Store(spec.Type, &spec)
	return nil
}

func (m *materializer) spec(t reflect.Type) (*TypeSpec, error) {
	if v, ok := m.specs.Load(t); ok {
		return v.(*TypeSpec), nil
	}
	v, err, _ := m.group.Do(t.PkgPath()+"|"+t.String(), func() (any, error) {
		if v, ok := m.specs.Load(t); ok {
			return v, nil
		}
		spec, err := specForType(t)
		if err != nil {
			return nil, err
		}
		actual, _ := m.specs.LoadOrStore(t, spec)
		if m.reg.log != nil {
			m.reg.log.Debug("computed type spec", nil, map[string]interface{}{
				"type":   t.String(),
				"fields": len(spec.Fields),
			})
		}
		return actual, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*TypeSpec), nil
}

var mapStringAnyType = reflect.TypeOf(map[string]any(nil))

// marshalValue serializes a struct, pointer to struct or map[string]any
// into a property graph. declared carries schema-declared data types for
// the top-level properties; nested objects rely on their own tags.
func (m *materializer) marshalValue(v any, enc Encoding, declared map[string]schema.DataType) (*Graph, error) {
	if v == nil {
		return nil, errors.New("properties: cannot marshal nil value")
	}
	rv := derefValue(reflect.ValueOf(v))
	if !rv.IsValid() {
		return nil, errors.New("properties: cannot marshal nil value")
	}
	switch rv.Kind() {
	case reflect.Struct:
		return m.marshalStruct(rv, enc, declared)
	case reflect.Map:
		return m.marshalMap(rv, enc, declared)
	default:
		return nil, &UnsupportedTypeError{Type: rv.Type()}
	}
}

func (m *materializer) marshalStruct(rv reflect.Value, enc Encoding, declared map[string]schema.DataType) (*Graph, error) {
	spec, err := m.spec(rv.Type())
	if err != nil {
		return nil, err
	}

	// Accessors take a pointer; copy once if the value is not
	// addressable.
	var ptr any
	if rv.CanAddr() {
		ptr = rv.Addr().Interface()
	} else {
		pv := reflect.New(rv.Type())
		pv.Elem().Set(rv)
		ptr = pv.Interface()
	}

	g := NewGraph()
	for _, f := range spec.Fields {
		raw := f.Get(ptr)
		val := reflect.ValueOf(raw)
		if raw == nil || isNilValue(val) {
			// Uniform null policy: nil natives become explicit wire
			// nulls, keys are never omitted.
			g.Set(f.Name, nullWire(enc))
			continue
		}
		w, err := m.marshalProperty(f.Name, fieldTag(f, declared), val, enc)
		if err != nil {
			return nil, err
		}
		g.Set(f.Name, w)
	}
	return g, nil
}

func (m *materializer) marshalMap(rv reflect.Value, enc Encoding, declared map[string]schema.DataType) (*Graph, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return nil, &UnsupportedTypeError{Type: rv.Type()}
	}

	keys := make([]string, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		keys = append(keys, iter.Key().String())
	}
	// Map iteration order is random; sort for a deterministic graph.
	sort.Strings(keys)

	g := NewGraph()
	for _, k := range keys {
		ev := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()))
		if isNilValue(ev) {
			g.Set(k, nullWire(enc))
			continue
		}
		w, err := m.marshalProperty(k, declared[foldKey(k)], derefValue(ev), enc)
		if err != nil {
			return nil, err
		}
		g.Set(k, w)
	}
	return g, nil
}

// marshalProperty converts one property value, resolving by declared tag
// first and by native type otherwise.
func (m *materializer) marshalProperty(name string, declared schema.DataType, val reflect.Value, enc Encoding) (any, error) {
	val = derefValue(val)
	if !val.IsValid() || isNilValue(val) {
		return nullWire(enc), nil
	}
	conv, tag, err := m.resolve(declared, val.Type())
	if err != nil {
		return nil, propertyErr(err, name)
	}
	var w any
	if tag.IsArray() {
		w, err = toWireArray(conv, val, enc)
	} else {
		w, err = convertToWire(conv, val, enc)
	}
	if err != nil {
		return nil, propertyErr(err, name)
	}
	return w, nil
}

// unmarshalValue builds a native value of the target type from a graph.
// The value is assembled in a fresh instance; a failed call never leaves
// a partially filled result behind.
func (m *materializer) unmarshalValue(g *Graph, target reflect.Type, enc Encoding, declared map[string]schema.DataType) (any, error) {
	switch {
	case target == mapStringAnyType:
		return g.AsMap(), nil
	case target.Kind() == reflect.Struct:
		return m.unmarshalStruct(g, target, enc, declared)
	case target.Kind() == reflect.Pointer && target.Elem().Kind() == reflect.Struct:
		v, err := m.unmarshalStruct(g, target.Elem(), enc, declared)
		if err != nil {
			return nil, err
		}
		p := reflect.New(target.Elem())
		p.Elem().Set(reflect.ValueOf(v))
		return p.Interface(), nil
	default:
		return nil, &UnsupportedTypeError{Type: target}
	}
}

func (m *materializer) unmarshalStruct(g *Graph, target reflect.Type, enc Encoding, declared map[string]schema.DataType) (any, error) {
	spec, err := m.spec(target)
	if err != nil {
		return nil, err
	}

	out := reflect.New(target)
	for _, f := range spec.Fields {
		w, present := g.Get(f.Name)
		if !present || f.Set == nil {
			// Absent properties keep the zero value; wire keys with no
			// matching field are ignored for schema evolution.
			continue
		}
		rv, err := m.unmarshalProperty(f.Name, fieldTag(f, declared), w, f.Type, enc)
		if err != nil {
			return nil, err
		}
		if err := f.Set(out.Interface(), rv.Interface()); err != nil {
			return nil, propertyErr(err, f.Name)
		}
	}
	return out.Elem().Interface(), nil
}

// unmarshalProperty converts one wire value for a target field type.
func (m *materializer) unmarshalProperty(name string, declared schema.DataType, w any, target reflect.Type, enc Encoding) (reflect.Value, error) {
	conv, tag, err := m.resolve(declared, target)
	if err != nil {
		return reflect.Value{}, propertyErr(err, name)
	}

	var rv reflect.Value
	if isNullWire(w) {
		switch target.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Map:
			return reflect.Zero(target), nil
		default:
			return reflect.Value{}, propertyErr(
				convErr("", tag, target, enc, "null value for non-nullable target"), name)
		}
	}
	if tag.IsArray() {
		rv, err = fromWireArray(conv, w, baseType(target), enc)
		if err == nil && target.Kind() == reflect.Pointer {
			p := reflect.New(baseType(target))
			p.Elem().Set(rv)
			rv = p
		}
	} else {
		rv, err = convertFromWire(conv, w, target, enc)
	}
	if err != nil {
		return reflect.Value{}, propertyErr(err, name)
	}
	return rv, nil
}

// resolve picks the converter: an explicitly declared data type wins
// over inference from the Go type.
func (m *materializer) resolve(declared schema.DataType, t reflect.Type) (Converter, schema.DataType, error) {
	if declared != "" {
		c, err := m.reg.ForDataType(declared)
		if err != nil {
			return nil, "", err
		}
		return c, declared, nil
	}
	return m.reg.ForType(t)
}

func fieldTag(f FieldSpec, declared map[string]schema.DataType) schema.DataType {
	if f.DataType != "" {
		return f.DataType
	}
	return declared[foldKey(f.Name)]
}

func baseType(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

// propertyErr names the property a failure belongs to. Conversion errors
// carry the name in their own field, everything else gets wrapped.
func propertyErr(err error, name string) error {
	var ce *ConversionError
	if errors.As(err, &ce) && ce.Property == "" {
		ce.Property = name
		return err
	}
	return fmt.Errorf("properties: property %q: %w", name, err)
}

// ── Reflection-derived specs ─────────────────────────────────────────────────

// specForType derives a field table for a plain struct type: exported
// fields, wire names from the quiver tag or the lowerCamelCase transform
// of the field name, declared data types from the tag's second element.
// Explicit registration through RegisterSpec replaces this convenience
// path entirely.
func specForType(t reflect.Type) (*TypeSpec, error) {
	if t.Kind() != reflect.Struct {
		return nil, &UnsupportedTypeError{Type: t}
	}

	spec := &TypeSpec{Type: t}
	seen := make(map[string]struct{})
	for _, f := range reflect.VisibleFields(t) {
		if f.PkgPath != "" {
			continue // unexported
		}
		name, dt, skip, err := parseFieldTag(f)
		if err != nil {
			return nil, fmt.Errorf("properties: field %s.%s: %w", t, f.Name, err)
		}
		if skip {
			continue
		}
		if f.Anonymous && f.Tag.Get("quiver") == "" {
			k := f.Type.Kind()
			if k == reflect.Struct || (k == reflect.Pointer && f.Type.Elem().Kind() == reflect.Struct) {
				// Untagged embedded structs contribute their promoted
				// fields, not themselves.
				continue
			}
		}
		folded := foldKey(name)
		if _, dup := seen[folded]; dup {
			return nil, fmt.Errorf("properties: duplicate wire name %q in %s", name, t)
		}
		seen[folded] = struct{}{}

		index := f.Index
		fieldType := f.Type
		spec.Fields = append(spec.Fields, FieldSpec{
			Name:     name,
			DataType: dt,
			Type:     fieldType,
			Get: func(v any) any {
				fv, ok := fieldByIndexRead(reflect.ValueOf(v).Elem(), index)
				if !ok {
					return nil
				}
				return fv.Interface()
			},
			Set: func(v any, w any) error {
				fv, err := fieldByIndexAlloc(reflect.ValueOf(v).Elem(), index)
				if err != nil {
					return err
				}
				fv.Set(reflect.ValueOf(w))
				return nil
			},
		})
	}
	return spec, nil
}

func parseFieldTag(f reflect.StructField) (name string, dt schema.DataType, skip bool, err error) {
	tag := f.Tag.Get("quiver")
	if tag == "-" {
		return "", "", true, nil
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = wireName(f.Name)
	}
	if len(parts) > 1 && parts[1] != "" {
		dt = schema.DataType(parts[1])
		if !dt.Valid() {
			return "", "", false, &UnsupportedTypeError{DataType: dt}
		}
	}
	return name, dt, false, nil
}

// wireName lowers the leading maximal upper-case run of a field name:
// Title -> title, ID -> id, URLPath -> urlPath. The transform is fixed;
// a quiver tag overrides it when a different wire name is needed.
func wireName(field string) string {
	runes := []rune(field)
	i := 0
	for i < len(runes) && unicode.IsUpper(runes[i]) {
		i++
	}
	if i > 1 && i < len(runes) && unicode.IsLower(runes[i]) {
		i--
	}
	for j := 0; j < i; j++ {
		runes[j] = unicode.ToLower(runes[j])
	}
	return string(runes)
}

// fieldByIndexRead walks an index path for reading. A nil embedded
// pointer on the path reads as absent.
func fieldByIndexRead(v reflect.Value, index []int) (reflect.Value, bool) {
	for n, i := range index {
		if n > 0 {
			if v.Kind() == reflect.Pointer {
				if v.IsNil() {
					return reflect.Value{}, false
				}
				v = v.Elem()
			}
		}
		v = v.Field(i)
	}
	return v, true
}

// fieldByIndexAlloc walks an index path for writing, allocating embedded
// pointers as needed.
func fieldByIndexAlloc(v reflect.Value, index []int) (reflect.Value, error) {
	for n, i := range index {
		if n > 0 {
			if v.Kind() == reflect.Pointer {
				if v.IsNil() {
					if !v.CanSet() {
						return reflect.Value{}, fmt.Errorf("properties: cannot allocate embedded %s", v.Type())
					}
					v.Set(reflect.New(v.Type().Elem()))
				}
				v = v.Elem()
			}
		}
		v = v.Field(i)
	}
	return v, nil
}

// ── Mapper ───────────────────────────────────────────────────────────────────

// Mapper is the public face of the object materializer: it turns native
// Go values into property graphs and back, for either wire encoding.
// Mappers over the same registry share converter resolution and the
// type spec cache; logger, observer and schema class are per-mapper.
//
// All operations are synchronous and CPU-bound. Nothing here retries,
// blocks or watches a context; failures surface immediately as errors.
type Mapper struct {
	reg      *Registry
	mat      *materializer
	log      *logger.Logger
	observer observability.Observer
	declared map[string]schema.DataType
}

// MapperOption customizes a Mapper during construction.
type MapperOption func(*Mapper)

// WithLogger attaches a logger for debug-level diagnostics.
func WithLogger(log *logger.Logger) MapperOption {
	return func(m *Mapper) {
		m.log = log
	}
}

// WithObserver attaches an operation observer; every Marshal and
// Unmarshal reports an observation.
func WithObserver(o observability.Observer) MapperOption {
	return func(m *Mapper) {
		m.observer = o
	}
}

// WithClass applies a collection class: its declared property data types
// override inference for the top-level properties of every mapped
// object.
func WithClass(class *schema.Class) MapperOption {
	return func(m *Mapper) {
		if class == nil {
			return
		}
		m.declared = make(map[string]schema.DataType, len(class.Properties))
		for _, p := range class.Properties {
			m.declared[foldKey(p.Name)] = p.DataType
		}
	}
}

// NewMapper builds a mapper over a registry.
func NewMapper(reg *Registry, opts ...MapperOption) *Mapper {
	m := &Mapper{reg: reg, mat: reg.mat}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RegisterSpec installs an explicit field table for a type, replacing
// the reflection-derived one. Specs are shared by every mapper over the
// same registry; register them before first use of the type.
func (m *Mapper) RegisterSpec(spec TypeSpec) error {
	return m.mat.register(spec)
}

// Marshal serializes a struct, pointer to struct or map[string]any into
// a property graph for the given encoding. Unconvertible values fail the
// whole call; nothing is silently skipped.
func (m *Mapper) Marshal(v any, enc Encoding) (*Graph, error) {
	start := time.Now()
	g, err := m.mat.marshalValue(v, enc, m.declared)
	m.observe("marshal", resourceName(v), enc, start, err, graphLen(g))
	if err != nil {
		m.logError("property marshal failed", err, v, enc)
		return nil, err
	}
	return g, nil
}

// Unmarshal fills out from a property graph. out must be a non-nil
// pointer to a struct or to a map[string]any. The target is only
// assigned when the whole graph converts; wire properties with no
// matching field are ignored.
func (m *Mapper) Unmarshal(g *Graph, out any, enc Encoding) error {
	start := time.Now()
	err := m.unmarshal(g, out, enc)
	m.observe("unmarshal", resourceName(out), enc, start, err, graphLen(g))
	if err != nil {
		m.logError("property unmarshal failed", err, out, enc)
	}
	return err
}

func (m *Mapper) unmarshal(g *Graph, out any, enc Encoding) error {
	if g == nil {
		return errors.New("properties: cannot unmarshal nil graph")
	}
	rv := reflect.ValueOf(out)
	if out == nil || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: need a non-nil pointer", ErrInvalidTarget)
	}
	target := rv.Elem().Type()
	if target.Kind() == reflect.Pointer {
		return fmt.Errorf("%w: pointer to pointer is not supported", ErrInvalidTarget)
	}
	got, err := m.mat.unmarshalValue(g, target, enc, m.declared)
	if err != nil {
		return err
	}
	rv.Elem().Set(reflect.ValueOf(got))
	return nil
}

// MarshalSlice serializes a slice or array of objects elementwise,
// preserving order and length. Nil elements become nil graphs.
func (m *Mapper) MarshalSlice(v any, enc Encoding) ([]*Graph, error) {
	start := time.Now()
	gs, err := m.marshalSlice(v, enc)
	m.observe("marshal_slice", resourceName(v), enc, start, err, int64(len(gs)))
	if err != nil {
		m.logError("property slice marshal failed", err, v, enc)
		return nil, err
	}
	return gs, nil
}

func (m *Mapper) marshalSlice(v any, enc Encoding) ([]*Graph, error) {
	if v == nil {
		return nil, errors.New("properties: cannot marshal nil value")
	}
	rv := derefValue(reflect.ValueOf(v))
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, &UnsupportedTypeError{Type: rv.Type()}
	}
	out := make([]*Graph, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		ev := derefValue(rv.Index(i))
		if !ev.IsValid() || isNilValue(ev) {
			continue // nil graph marks a null element
		}
		g, err := m.mat.marshalValue(ev.Interface(), enc, m.declared)
		if err != nil {
			return nil, elementErr(err, i)
		}
		out[i] = g
	}
	return out, nil
}

// UnmarshalSlice fills out, a pointer to a slice of structs, struct
// pointers or map[string]any, from a slice of graphs elementwise. Nil
// graphs become nil elements where the element type allows it.
func (m *Mapper) UnmarshalSlice(gs []*Graph, out any, enc Encoding) error {
	start := time.Now()
	err := m.unmarshalSlice(gs, out, enc)
	m.observe("unmarshal_slice", resourceName(out), enc, start, err, int64(len(gs)))
	if err != nil {
		m.logError("property slice unmarshal failed", err, out, enc)
	}
	return err
}

func (m *Mapper) unmarshalSlice(gs []*Graph, out any, enc Encoding) error {
	rv := reflect.ValueOf(out)
	if out == nil || rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("%w: need a non-nil pointer to a slice", ErrInvalidTarget)
	}
	elemType := rv.Elem().Type().Elem()
	result := reflect.MakeSlice(rv.Elem().Type(), 0, len(gs))
	for i, g := range gs {
		if g == nil {
			if elemType.Kind() != reflect.Pointer && elemType.Kind() != reflect.Map {
				return elementErr(convErr("", schema.DataTypeObject, elemType, enc,
					"null element for non-nullable element type"), i)
			}
			result = reflect.Append(result, reflect.Zero(elemType))
			continue
		}
		got, err := m.mat.unmarshalValue(g, elemType, enc, m.declared)
		if err != nil {
			return elementErr(err, i)
		}
		result = reflect.Append(result, reflect.ValueOf(got))
	}
	rv.Elem().Set(result)
	return nil
}

func elementErr(err error, i int) error {
	return fmt.Errorf("properties: element %d: %w", i, err)
}

func (m *Mapper) observe(op, resource string, enc Encoding, start time.Time, err error, size int64) {
	if m.observer == nil {
		return
	}
	m.observer.ObserveOperation(observability.OperationContext{
		Component: "properties",
		Operation: op,
		Resource:  resource,
		Duration:  time.Since(start),
		Error:     err,
		Size:      size,
		Metadata: map[string]interface{}{
			"encoding": enc.String(),
		},
	})
}

func (m *Mapper) logError(msg string, err error, v any, enc Encoding) {
	if m.log == nil {
		return
	}
	m.log.Debug(msg, err, map[string]interface{}{
		"type":     resourceName(v),
		"encoding": enc.String(),
	})
}

func resourceName(v any) string {
	if v == nil {
		return "nil"
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String()
}

func graphLen(g *Graph) int64 {
	if g == nil {
		return 0
	}
	return int64(g.Len())
}
