package objects

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/quiverdb/quiver-go/v1/logger"
	"github.com/quiverdb/quiver-go/v1/observability"
	"github.com/quiverdb/quiver-go/v1/properties"
)

// REST envelope keys for an object body.
const (
	keyID         = "id"
	keyClass      = "class"
	keyProperties = "properties"
	keyVector     = "vector"
	keyCreated    = "creationTimeUnix"
	keyUpdated    = "lastUpdateTimeUnix"
)

// envelopeKeys is the set of keys the codec understands. Anything else
// in an incoming body is ignored and reported at debug level.
var envelopeKeys = map[string]struct{}{
	keyID:         {},
	keyClass:      {},
	keyProperties: {},
	keyVector:     {},
	keyCreated:    {},
	keyUpdated:    {},
}

// Codec translates Objects to and from the two wire envelopes: the JSON
// body of the REST API and the structpb shape of the gRPC API. Property
// payloads go through the properties mapper the codec was built with.
//
// The context passed to codec operations is a trace carrier for
// observation only; the codec never blocks on it.
type Codec struct {
	mapper   *properties.Mapper
	log      *logger.Logger
	observer observability.Observer
}

// CodecOption customizes a Codec during construction.
type CodecOption func(*Codec)

// WithLogger attaches a logger for debug-level decode diagnostics.
func WithLogger(log *logger.Logger) CodecOption {
	return func(c *Codec) {
		c.log = log
	}
}

// WithObserver attaches an operation observer; every encode and decode
// reports an observation.
func WithObserver(o observability.Observer) CodecOption {
	return func(c *Codec) {
		c.observer = o
	}
}

// NewCodec builds a codec over a mapper.
func NewCodec(mapper *properties.Mapper, opts ...CodecOption) *Codec {
	c := &Codec{mapper: mapper}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mapper returns the properties mapper the codec converts with.
func (c *Codec) Mapper() *properties.Mapper {
	return c.mapper
}

// EncodeREST assembles the REST body for an object. The object's
// property graph must have been built with EncodingREST. Zero-value
// fields are omitted: a nil UUID leaves out "id" so the server assigns
// one, zero timestamps leave out the time keys.
func (c *Codec) EncodeREST(ctx context.Context, obj *Object) (body map[string]any, err error) {
	start := time.Now()
	defer func() {
		c.observeOperation(ctx, "encode_rest", collectionOf(obj), idOf(obj), start, err, int64(obj.PropertyCount()))
	}()

	if obj == nil {
		return nil, ErrNilObject
	}
	if obj.Collection == "" {
		return nil, ErrMissingCollection
	}

	body = map[string]any{
		keyClass: obj.Collection,
	}
	if obj.ID != uuid.Nil {
		body[keyID] = obj.ID.String()
	}
	if obj.Properties != nil {
		body[keyProperties] = obj.Properties
	}
	if len(obj.Vector) > 0 {
		body[keyVector] = obj.Vector
	}
	if !obj.CreationTime.IsZero() {
		body[keyCreated] = obj.CreationTime.UnixMilli()
	}
	if !obj.UpdateTime.IsZero() {
		body[keyUpdated] = obj.UpdateTime.UnixMilli()
	}
	return body, nil
}

// DecodeREST reads an object out of a decoded REST body. Properties
// arrive as a REST-encoded graph; absent fields leave their zero values.
// Unknown envelope keys are ignored.
func (c *Codec) DecodeREST(ctx context.Context, body map[string]any) (obj *Object, err error) {
	start := time.Now()
	defer func() {
		c.observeOperation(ctx, "decode_rest", collectionOf(obj), idOf(obj), start, err, int64(obj.PropertyCount()))
	}()

	if body == nil {
		return nil, fmt.Errorf("%w: nil body", ErrInvalidEnvelope)
	}

	obj = &Object{}
	if raw, ok := body[keyID]; ok {
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: id is %T, want string", ErrInvalidEnvelope, raw)
		}
		id, parseErr := uuid.Parse(s)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: id %q: %v", ErrInvalidEnvelope, s, parseErr)
		}
		obj.ID = id
	}
	if raw, ok := body[keyClass]; ok {
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: class is %T, want string", ErrInvalidEnvelope, raw)
		}
		obj.Collection = s
	}
	if raw, ok := body[keyProperties]; ok && raw != nil {
		switch t := raw.(type) {
		case *properties.Graph:
			obj.Properties = t
		case map[string]any:
			obj.Properties = properties.GraphFromMap(t)
		default:
			return nil, fmt.Errorf("%w: properties is %T, want object", ErrInvalidEnvelope, raw)
		}
	}
	if raw, ok := body[keyVector]; ok && raw != nil {
		vec, vecErr := decodeVector(raw)
		if vecErr != nil {
			return nil, vecErr
		}
		obj.Vector = vec
	}
	if raw, ok := body[keyCreated]; ok {
		ms, msErr := decodeUnixMilli(keyCreated, raw)
		if msErr != nil {
			return nil, msErr
		}
		obj.CreationTime = time.UnixMilli(ms).UTC()
	}
	if raw, ok := body[keyUpdated]; ok {
		ms, msErr := decodeUnixMilli(keyUpdated, raw)
		if msErr != nil {
			return nil, msErr
		}
		obj.UpdateTime = time.UnixMilli(ms).UTC()
	}

	c.logUnknownKeys(body)
	return obj, nil
}

// EncodeProto assembles the gRPC shape of an object as a structpb
// struct. The object's property graph must have been built with
// EncodingGRPC; REST-encoded graphs still convert, wrapped value by
// value.
func (c *Codec) EncodeProto(ctx context.Context, obj *Object) (msg *structpb.Struct, err error) {
	start := time.Now()
	defer func() {
		c.observeOperation(ctx, "encode_proto", collectionOf(obj), idOf(obj), start, err, int64(obj.PropertyCount()))
	}()

	if obj == nil {
		return nil, ErrNilObject
	}
	if obj.Collection == "" {
		return nil, ErrMissingCollection
	}

	fields := map[string]*structpb.Value{
		keyClass: structpb.NewStringValue(obj.Collection),
	}
	if obj.ID != uuid.Nil {
		fields[keyID] = structpb.NewStringValue(obj.ID.String())
	}
	if obj.Properties != nil {
		props, protoErr := obj.Properties.ToProto()
		if protoErr != nil {
			return nil, protoErr
		}
		fields[keyProperties] = structpb.NewStructValue(props)
	}
	if len(obj.Vector) > 0 {
		values := make([]*structpb.Value, len(obj.Vector))
		for i, f := range obj.Vector {
			values[i] = structpb.NewNumberValue(float64(f))
		}
		fields[keyVector] = structpb.NewListValue(&structpb.ListValue{Values: values})
	}
	if !obj.CreationTime.IsZero() {
		fields[keyCreated] = structpb.NewNumberValue(float64(obj.CreationTime.UnixMilli()))
	}
	if !obj.UpdateTime.IsZero() {
		fields[keyUpdated] = structpb.NewNumberValue(float64(obj.UpdateTime.UnixMilli()))
	}
	return &structpb.Struct{Fields: fields}, nil
}

// DecodeProto reads an object out of its gRPC shape. Properties arrive
// as a gRPC-encoded graph with structpb leaves.
func (c *Codec) DecodeProto(ctx context.Context, msg *structpb.Struct) (obj *Object, err error) {
	start := time.Now()
	defer func() {
		c.observeOperation(ctx, "decode_proto", collectionOf(obj), idOf(obj), start, err, int64(obj.PropertyCount()))
	}()

	if msg == nil {
		return nil, fmt.Errorf("%w: nil message", ErrInvalidEnvelope)
	}

	obj = &Object{}
	fields := msg.GetFields()
	if v, ok := fields[keyID]; ok {
		s := v.GetStringValue()
		if s == "" {
			return nil, fmt.Errorf("%w: id is %v, want string", ErrInvalidEnvelope, v.AsInterface())
		}
		id, parseErr := uuid.Parse(s)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: id %q: %v", ErrInvalidEnvelope, s, parseErr)
		}
		obj.ID = id
	}
	if v, ok := fields[keyClass]; ok {
		obj.Collection = v.GetStringValue()
	}
	if v, ok := fields[keyProperties]; ok {
		if s := v.GetStructValue(); s != nil {
			obj.Properties = properties.GraphFromProto(s)
		}
	}
	if v, ok := fields[keyVector]; ok {
		if l := v.GetListValue(); l != nil {
			vec := make([]float32, len(l.GetValues()))
			for i, e := range l.GetValues() {
				vec[i] = float32(e.GetNumberValue())
			}
			obj.Vector = vec
		}
	}
	if v, ok := fields[keyCreated]; ok {
		obj.CreationTime = time.UnixMilli(int64(v.GetNumberValue())).UTC()
	}
	if v, ok := fields[keyUpdated]; ok {
		obj.UpdateTime = time.UnixMilli(int64(v.GetNumberValue())).UTC()
	}

	for k := range fields {
		if _, known := envelopeKeys[k]; !known && c.log != nil {
			c.log.Debug("ignoring unknown envelope key", nil, map[string]interface{}{
				"key": k,
			})
		}
	}
	return obj, nil
}

// decodeVector accepts the shapes a vector arrives in after JSON
// decoding or in-process passthrough.
func decodeVector(raw any) ([]float32, error) {
	switch t := raw.(type) {
	case []float32:
		return t, nil
	case []float64:
		vec := make([]float32, len(t))
		for i, f := range t {
			vec[i] = float32(f)
		}
		return vec, nil
	case []any:
		vec := make([]float32, len(t))
		for i, e := range t {
			f, ok := numberAsFloat(e)
			if !ok {
				return nil, fmt.Errorf("%w: vector element %d is %T, want number", ErrInvalidEnvelope, i, e)
			}
			vec[i] = float32(f)
		}
		return vec, nil
	default:
		return nil, fmt.Errorf("%w: vector is %T, want array", ErrInvalidEnvelope, raw)
	}
}

// decodeUnixMilli accepts the numeric shapes a millisecond timestamp
// arrives in after JSON decoding.
func decodeUnixMilli(key string, raw any) (int64, error) {
	switch t := raw.(type) {
	case int64:
		return t, nil
	case float64:
		return int64(t), nil
	default:
		if f, ok := numberAsFloat(raw); ok {
			return int64(f), nil
		}
		return 0, fmt.Errorf("%w: %s is %T, want number", ErrInvalidEnvelope, key, raw)
	}
}

func numberAsFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// logUnknownKeys reports envelope keys the codec does not understand.
func (c *Codec) logUnknownKeys(body map[string]any) {
	if c.log == nil {
		return
	}
	for k := range body {
		if _, known := envelopeKeys[k]; !known {
			c.log.Debug("ignoring unknown envelope key", nil, map[string]interface{}{
				"key": k,
			})
		}
	}
}

func collectionOf(obj *Object) string {
	if obj == nil {
		return ""
	}
	return obj.Collection
}

func idOf(obj *Object) string {
	if obj == nil || obj.ID == uuid.Nil {
		return ""
	}
	return obj.ID.String()
}
