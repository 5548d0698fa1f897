package objects

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quiverdb/quiver-go/v1/properties"
)

// Build converts a typed value into an Object for a collection. The
// value's properties are marshalled with the codec's mapper for the
// given encoding. Pass uuid.Nil as the id to let the server assign one
// on write.
//
// Example:
//
//	obj, err := objects.Build(ctx, codec, "Article", uuid.New(), article, properties.EncodingREST)
func Build[T any](ctx context.Context, c *Codec, collection string, id uuid.UUID, v T, enc properties.Encoding) (obj *Object, err error) {
	start := time.Now()
	defer func() {
		c.observeOperation(ctx, "build", collection, idOf(obj), start, err, int64(obj.PropertyCount()))
	}()

	if collection == "" {
		return nil, ErrMissingCollection
	}
	g, err := c.mapper.Marshal(v, enc)
	if err != nil {
		return nil, fmt.Errorf("objects: collection %s: %w", collection, err)
	}
	return &Object{
		ID:         id,
		Collection: collection,
		Properties: g,
	}, nil
}

// BuildSlice converts a slice of typed values into Objects for a
// collection. All objects are built without an id; the server assigns
// them on write.
func BuildSlice[T any](ctx context.Context, c *Codec, collection string, vs []T, enc properties.Encoding) (objs []*Object, err error) {
	start := time.Now()
	defer func() {
		c.observeOperation(ctx, "build_slice", collection, "", start, err, int64(len(vs)))
	}()

	if collection == "" {
		return nil, ErrMissingCollection
	}
	graphs, err := c.mapper.MarshalSlice(vs, enc)
	if err != nil {
		return nil, fmt.Errorf("objects: collection %s: %w", collection, err)
	}
	objs = make([]*Object, len(graphs))
	for i, g := range graphs {
		objs[i] = &Object{
			Collection: collection,
			Properties: g,
		}
	}
	return objs, nil
}

// Hydrate converts an Object's properties back into a typed value. T
// must be a struct or a string-keyed map type, not a pointer. An object
// without properties hydrates to T's zero value. The vector is not
// injected; read it from the Object.
//
// Example:
//
//	article, err := objects.Hydrate[Article](ctx, codec, obj, properties.EncodingREST)
func Hydrate[T any](ctx context.Context, c *Codec, obj *Object, enc properties.Encoding) (v T, err error) {
	start := time.Now()
	defer func() {
		c.observeOperation(ctx, "hydrate", collectionOf(obj), idOf(obj), start, err, int64(obj.PropertyCount()))
	}()

	if obj == nil {
		return v, ErrNilObject
	}
	if obj.Properties == nil {
		return v, nil
	}
	if err = c.mapper.Unmarshal(obj.Properties, &v, enc); err != nil {
		return v, fmt.Errorf("objects: collection %s: %w", obj.Collection, err)
	}
	return v, nil
}

// HydrateSlice converts a slice of Objects into typed values, index for
// index. Nil objects and objects without properties hydrate to zero
// values.
func HydrateSlice[T any](ctx context.Context, c *Codec, objs []*Object, enc properties.Encoding) (vs []T, err error) {
	start := time.Now()
	defer func() {
		c.observeOperation(ctx, "hydrate_slice", "", "", start, err, int64(len(objs)))
	}()

	vs = make([]T, len(objs))
	for i, obj := range objs {
		if obj == nil || obj.Properties == nil {
			continue
		}
		if err = c.mapper.Unmarshal(obj.Properties, &vs[i], enc); err != nil {
			return nil, fmt.Errorf("objects: element %d: %w", i, err)
		}
	}
	return vs, nil
}
