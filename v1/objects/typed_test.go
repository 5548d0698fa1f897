package objects

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quiverdb/quiver-go/v1/properties"
)

type articleDoc struct {
	Title string   `quiver:"title"`
	Votes int      `quiver:"votes"`
	Tags  []string `quiver:"tags"`
}

func TestBuildAndHydrate(t *testing.T) {
	c := newTestCodec()
	ctx := context.Background()
	id := uuid.New()

	in := articleDoc{Title: "go", Votes: 3, Tags: []string{"a"}}
	obj, err := Build(ctx, c, "Article", id, in, properties.EncodingREST)
	require.NoError(t, err)

	assert.Equal(t, id, obj.ID)
	assert.Equal(t, "Article", obj.Collection)
	assert.Equal(t, 3, obj.PropertyCount())

	out, err := Hydrate[articleDoc](ctx, c, obj, properties.EncodingREST)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestBuildServerAssignedID(t *testing.T) {
	c := newTestCodec()
	ctx := context.Background()

	obj, err := Build(ctx, c, "Article", uuid.Nil, articleDoc{Title: "x"}, properties.EncodingREST)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, obj.ID)

	// An unassigned id never reaches the wire.
	body, err := c.EncodeREST(ctx, obj)
	require.NoError(t, err)
	_, present := body["id"]
	assert.False(t, present)
}

func TestBuildValidation(t *testing.T) {
	c := newTestCodec()
	ctx := context.Background()

	_, err := Build(ctx, c, "", uuid.Nil, articleDoc{}, properties.EncodingREST)
	require.ErrorIs(t, err, ErrMissingCollection)

	type broken struct {
		Ch chan int `quiver:"ch"`
	}
	_, err = Build(ctx, c, "Article", uuid.Nil, broken{Ch: make(chan int)}, properties.EncodingREST)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collection Article")
	assert.True(t, properties.IsUnsupportedTypeError(err))
}

func TestBuildSlice(t *testing.T) {
	c := newTestCodec()
	ctx := context.Background()

	in := []articleDoc{{Title: "a"}, {Title: "b"}}
	objs, err := BuildSlice(ctx, c, "Article", in, properties.EncodingREST)
	require.NoError(t, err)
	require.Len(t, objs, 2)

	for i, obj := range objs {
		assert.Equal(t, uuid.Nil, obj.ID)
		assert.Equal(t, "Article", obj.Collection)
		title, _ := obj.Properties.Get("title")
		assert.Equal(t, in[i].Title, title)
	}

	out, err := HydrateSlice[articleDoc](ctx, c, objs, properties.EncodingREST)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestBuildSliceValidation(t *testing.T) {
	c := newTestCodec()

	_, err := BuildSlice(context.Background(), c, "", []articleDoc{}, properties.EncodingREST)
	require.ErrorIs(t, err, ErrMissingCollection)
}

func TestHydrateNilAndEmpty(t *testing.T) {
	c := newTestCodec()
	ctx := context.Background()

	_, err := Hydrate[articleDoc](ctx, c, nil, properties.EncodingREST)
	require.ErrorIs(t, err, ErrNilObject)

	// No properties means the zero value, not an error.
	out, err := Hydrate[articleDoc](ctx, c, &Object{Collection: "Article"}, properties.EncodingREST)
	require.NoError(t, err)
	assert.Equal(t, articleDoc{}, out)
}

func TestHydrateError(t *testing.T) {
	c := newTestCodec()
	ctx := context.Background()

	graph := properties.NewGraph()
	graph.Set("votes", "not a number")
	obj := &Object{Collection: "Article", Properties: graph}

	_, err := Hydrate[articleDoc](ctx, c, obj, properties.EncodingREST)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collection Article")
	assert.True(t, properties.IsConversionError(err))
}

func TestHydrateIntoMap(t *testing.T) {
	c := newTestCodec()
	ctx := context.Background()

	obj, err := Build(ctx, c, "Article", uuid.Nil, articleDoc{Title: "go", Votes: 2}, properties.EncodingREST)
	require.NoError(t, err)

	out, err := Hydrate[map[string]any](ctx, c, obj, properties.EncodingREST)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "go", "votes": int64(2), "tags": nil}, out)
}

func TestHydrateSliceSkipsNilObjects(t *testing.T) {
	c := newTestCodec()
	ctx := context.Background()

	obj, err := Build(ctx, c, "Article", uuid.Nil, articleDoc{Title: "real"}, properties.EncodingREST)
	require.NoError(t, err)

	out, err := HydrateSlice[articleDoc](ctx, c, []*Object{nil, obj, {Collection: "Article"}}, properties.EncodingREST)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, articleDoc{}, out[0])
	assert.Equal(t, "real", out[1].Title)
	assert.Equal(t, articleDoc{}, out[2])
}

func TestHydrateSliceElementError(t *testing.T) {
	c := newTestCodec()
	ctx := context.Background()

	bad := properties.NewGraph()
	bad.Set("votes", "oops")

	objs := []*Object{
		{Collection: "Article", Properties: properties.NewGraph()},
		{Collection: "Article", Properties: bad},
	}
	_, err := HydrateSlice[articleDoc](ctx, c, objs, properties.EncodingREST)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "element 1")
}

func TestTypedObserverEmissions(t *testing.T) {
	obs := &recordingObserver{}
	mapper := properties.NewMapper(properties.NewRegistry())
	c := NewCodec(mapper, WithObserver(obs))
	ctx := context.Background()

	obj, err := Build(ctx, c, "Article", uuid.Nil, articleDoc{Title: "x"}, properties.EncodingREST)
	require.NoError(t, err)
	_, err = Hydrate[articleDoc](ctx, c, obj, properties.EncodingREST)
	require.NoError(t, err)

	ops := obs.GetOperations()
	require.Len(t, ops, 2)
	assert.Equal(t, "build", ops[0].Operation)
	assert.Equal(t, "Article", ops[0].Resource)
	assert.Equal(t, int64(3), ops[0].Size)
	assert.Equal(t, "hydrate", ops[1].Operation)
	assert.Equal(t, "Article", ops[1].Resource)
}
