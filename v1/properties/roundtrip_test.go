package properties

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quiverdb/quiver-go/v1/schema"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

type article struct {
	Title     string    `quiver:"title,text"`
	Count     *int      `quiver:"count"`
	Tags      []string  `quiver:"tags"`
	Published time.Time `quiver:"published,date"`
	Draft     bool      `quiver:"-"`
}

// inventoryItem touches every scalar data type plus two array forms.
type inventoryItem struct {
	Name     string                `quiver:"name"`
	Quantity int                   `quiver:"quantity"`
	Price    float64               `quiver:"price"`
	Active   bool                  `quiver:"active"`
	Added    time.Time             `quiver:"added"`
	Ref      uuid.UUID             `quiver:"ref"`
	Raw      []byte                `quiver:"raw"`
	Location schema.GeoCoordinates `quiver:"location"`
	Support  schema.PhoneNumber    `quiver:"support"`
	Tags     []string              `quiver:"tags"`
	Scores   []float64             `quiver:"scores"`
}

func testItem() inventoryItem {
	return inventoryItem{
		Name:     "widget",
		Quantity: 12,
		Price:    9.99,
		Active:   true,
		Added:    time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
		Ref:      uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
		Raw:      []byte{0x01, 0x02},
		Location: schema.GeoCoordinates{Latitude: 52.52, Longitude: 13.405},
		Support:  schema.PhoneNumber{Input: "+31201234567", Valid: true},
		Tags:     []string{"a", "b"},
		Scores:   []float64{0.5, 0.25},
	}
}

func requireItemEqual(t *testing.T, want, got inventoryItem) {
	t.Helper()
	require.True(t, got.Added.Equal(want.Added), "expected %v, got %v", want.Added, got.Added)
	got.Added = want.Added
	require.Equal(t, want, got)
}

func TestMarshalRESTProducesOrderedJSON(t *testing.T) {
	mapper := NewMapper(NewRegistry())

	graph, err := mapper.Marshal(article{
		Title:     "Go and vectors",
		Tags:      []string{"go", "vectors"},
		Published: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Draft:     true,
	}, EncodingREST)
	require.NoError(t, err)

	data, err := json.Marshal(graph)
	require.NoError(t, err)

	// Declaration order, explicit null for the nil pointer, no draft key.
	want := `{"title":"Go and vectors","count":null,"tags":["go","vectors"],"published":"2024-01-01T00:00:00Z"}`
	assert.Equal(t, want, string(data))
}

func TestRESTRoundTrip(t *testing.T) {
	mapper := NewMapper(NewRegistry())
	in := testItem()

	graph, err := mapper.Marshal(in, EncodingREST)
	require.NoError(t, err)

	var out inventoryItem
	require.NoError(t, mapper.Unmarshal(graph, &out, EncodingREST))
	requireItemEqual(t, in, out)
}

func TestRESTWireTrip(t *testing.T) {
	mapper := NewMapper(NewRegistry())
	in := testItem()

	graph, err := mapper.Marshal(in, EncodingREST)
	require.NoError(t, err)

	// Serialize to bytes and decode the way a response body comes back:
	// a plain JSON object tree.
	data, err := json.Marshal(graph)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))

	var out inventoryItem
	require.NoError(t, mapper.Unmarshal(GraphFromMap(body), &out, EncodingREST))
	requireItemEqual(t, in, out)
}

func TestGRPCRoundTrip(t *testing.T) {
	mapper := NewMapper(NewRegistry())
	in := testItem()

	graph, err := mapper.Marshal(in, EncodingGRPC)
	require.NoError(t, err)

	// Every leaf of a gRPC-encoded graph is a protobuf value, so the
	// graph assembles into a struct without re-encoding.
	graph.Range(func(name string, value any) bool {
		_, ok := value.(*structpb.Value)
		assert.True(t, ok, "leaf %q is %T, expected *structpb.Value", name, value)
		return true
	})

	s, err := graph.ToProto()
	require.NoError(t, err)

	// Clone to rule out shared state between the encoded and decoded
	// sides, as a real wire pass would.
	wire := proto.Clone(s).(*structpb.Struct)

	var out inventoryItem
	require.NoError(t, mapper.Unmarshal(GraphFromProto(wire), &out, EncodingGRPC))
	requireItemEqual(t, in, out)
}

func TestCrossEncodingEquivalence(t *testing.T) {
	mapper := NewMapper(NewRegistry())
	in := testItem()

	restGraph, err := mapper.Marshal(in, EncodingREST)
	require.NoError(t, err)
	grpcGraph, err := mapper.Marshal(in, EncodingGRPC)
	require.NoError(t, err)

	var fromREST, fromGRPC inventoryItem
	require.NoError(t, mapper.Unmarshal(restGraph, &fromREST, EncodingREST))
	require.NoError(t, mapper.Unmarshal(grpcGraph, &fromGRPC, EncodingGRPC))

	requireItemEqual(t, fromREST, fromGRPC)
}

func TestMarshalWritesExplicitNulls(t *testing.T) {
	type form struct {
		Name  string         `quiver:"name"`
		Score *int           `quiver:"score"`
		Tags  []string       `quiver:"tags"`
		Meta  map[string]any `quiver:"meta"`
	}
	mapper := NewMapper(NewRegistry())

	graph, err := mapper.Marshal(form{Name: "x"}, EncodingREST)
	require.NoError(t, err)

	for _, key := range []string{"score", "tags", "meta"} {
		v, present := graph.Get(key)
		require.True(t, present, "expected explicit null under %q", key)
		assert.Nil(t, v)
	}

	data, err := json.Marshal(graph)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"x","score":null,"tags":null,"meta":null}`, string(data))

	// On the gRPC side nulls are protobuf null values.
	graph, err = mapper.Marshal(form{Name: "x"}, EncodingGRPC)
	require.NoError(t, err)
	v, present := graph.Get("score")
	require.True(t, present)
	pv, ok := v.(*structpb.Value)
	require.True(t, ok, "expected *structpb.Value, got %T", v)
	assert.Equal(t, structpb.NullValue_NULL_VALUE, pv.GetNullValue())
}

func TestUnmarshalNullIntoNullableTargets(t *testing.T) {
	type form struct {
		Score *int     `quiver:"score"`
		Tags  []string `quiver:"tags"`
	}
	mapper := NewMapper(NewRegistry())

	graph := NewGraph()
	graph.Set("score", nil)
	graph.Set("tags", nil)

	out := form{Score: new(int), Tags: []string{"stale"}}
	require.NoError(t, mapper.Unmarshal(graph, &out, EncodingREST))
	assert.Nil(t, out.Score)
	assert.Nil(t, out.Tags)
}

func TestUnmarshalNullIntoValueTargetFails(t *testing.T) {
	type form struct {
		Count int `quiver:"count"`
	}
	mapper := NewMapper(NewRegistry())

	graph := NewGraph()
	graph.Set("count", nil)

	var out form
	err := mapper.Unmarshal(graph, &out, EncodingREST)
	require.Error(t, err)
	require.True(t, IsConversionError(err))

	var ce *ConversionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "count", ce.Property)
}

func TestUnmarshalAbsentKeepsZero(t *testing.T) {
	type form struct {
		Name  string `quiver:"name"`
		Count int    `quiver:"count"`
	}
	mapper := NewMapper(NewRegistry())

	graph := NewGraph()
	graph.Set("name", "present")

	// Absent is not null: the value field keeps its zero without error.
	var out form
	require.NoError(t, mapper.Unmarshal(graph, &out, EncodingREST))
	assert.Equal(t, "present", out.Name)
	assert.Equal(t, 0, out.Count)
}

func TestUnmarshalIgnoresUnknownKeys(t *testing.T) {
	type form struct {
		Name string `quiver:"name"`
	}
	mapper := NewMapper(NewRegistry())

	graph := NewGraph()
	graph.Set("name", "x")
	graph.Set("addedInV2", int64(1))
	graph.Set("alsoNew", "ignored")

	var out form
	require.NoError(t, mapper.Unmarshal(graph, &out, EncodingREST))
	assert.Equal(t, "x", out.Name)
}

func TestArrayLengths(t *testing.T) {
	type form struct {
		Tags []string `quiver:"tags"`
	}
	mapper := NewMapper(NewRegistry())

	for _, tags := range [][]string{{}, {"one"}, {"a", "b", "c", "d"}} {
		graph, err := mapper.Marshal(form{Tags: tags}, EncodingREST)
		require.NoError(t, err)

		// An empty slice stays an empty wire array, not a null.
		wire, present := graph.Get("tags")
		require.True(t, present)
		require.NotNil(t, wire)
		require.Len(t, wire.([]any), len(tags))

		var out form
		require.NoError(t, mapper.Unmarshal(graph, &out, EncodingREST))
		assert.Equal(t, tags, out.Tags)
	}
}

func TestArrayNullElements(t *testing.T) {
	type form struct {
		Scores []*int `quiver:"scores"`
	}
	one, three := 1, 3
	mapper := NewMapper(NewRegistry())

	graph, err := mapper.Marshal(form{Scores: []*int{&one, nil, &three}}, EncodingREST)
	require.NoError(t, err)

	wire, _ := graph.Get("scores")
	require.Equal(t, []any{int64(1), nil, int64(3)}, wire)

	var out form
	require.NoError(t, mapper.Unmarshal(graph, &out, EncodingREST))
	require.Len(t, out.Scores, 3)
	assert.Equal(t, 1, *out.Scores[0])
	assert.Nil(t, out.Scores[1])
	assert.Equal(t, 3, *out.Scores[2])

	// The same wire array cannot land in a slice of plain ints.
	var strict struct {
		Scores []int `quiver:"scores"`
	}
	err = mapper.Unmarshal(graph, &strict, EncodingREST)
	require.Error(t, err)
	assert.True(t, IsConversionError(err))
}

func TestNestedObjects(t *testing.T) {
	type authorInfo struct {
		Name string `quiver:"name"`
		Age  int    `quiver:"age"`
	}
	type post struct {
		Title   string       `quiver:"title"`
		Author  authorInfo   `quiver:"author"`
		Editors []authorInfo `quiver:"editors"`
	}
	mapper := NewMapper(NewRegistry())

	in := post{
		Title:   "nested",
		Author:  authorInfo{Name: "ada", Age: 36},
		Editors: []authorInfo{{Name: "grace", Age: 45}, {Name: "edsger", Age: 72}},
	}

	graph, err := mapper.Marshal(in, EncodingREST)
	require.NoError(t, err)

	// Nested objects are nested graphs on the REST path.
	author, _ := graph.Get("author")
	require.IsType(t, &Graph{}, author)

	data, err := json.Marshal(graph)
	require.NoError(t, err)
	want := `{"title":"nested","author":{"name":"ada","age":36},` +
		`"editors":[{"name":"grace","age":45},{"name":"edsger","age":72}]}`
	assert.Equal(t, want, string(data))

	var out post
	require.NoError(t, mapper.Unmarshal(graph, &out, EncodingREST))
	assert.Equal(t, in, out)

	// And the same shape survives the gRPC encoding.
	graph, err = mapper.Marshal(in, EncodingGRPC)
	require.NoError(t, err)
	var outGRPC post
	require.NoError(t, mapper.Unmarshal(graph, &outGRPC, EncodingGRPC))
	assert.Equal(t, in, outGRPC)
}

func TestNarrowingThroughMapper(t *testing.T) {
	type wide struct {
		N int64 `quiver:"n"`
	}
	type narrow struct {
		N int8 `quiver:"n"`
	}
	mapper := NewMapper(NewRegistry())

	graph, err := mapper.Marshal(wide{N: 300}, EncodingREST)
	require.NoError(t, err)

	var out narrow
	require.NoError(t, mapper.Unmarshal(graph, &out, EncodingREST))
	assert.Equal(t, int8(44), out.N)

	// The narrowed value re-serializes as what it became.
	graph, err = mapper.Marshal(out, EncodingREST)
	require.NoError(t, err)
	wire, _ := graph.Get("n")
	assert.Equal(t, int64(44), wire)
}

func TestDictionaryMode(t *testing.T) {
	mapper := NewMapper(NewRegistry())

	graph, err := mapper.Marshal(map[string]any{
		"zebra": "z",
		"apple": 3,
		"gone":  nil,
	}, EncodingREST)
	require.NoError(t, err)

	// Map input has no declaration order, keys are sorted.
	assert.Equal(t, []string{"apple", "gone", "zebra"}, graph.Keys())

	var out map[string]any
	require.NoError(t, mapper.Unmarshal(graph, &out, EncodingREST))
	assert.Equal(t, map[string]any{"apple": int64(3), "gone": nil, "zebra": "z"}, out)
}

func TestGRPCIntegerPrecisionBoundary(t *testing.T) {
	type form struct {
		N int64 `quiver:"n"`
	}
	mapper := NewMapper(NewRegistry())

	// Numbers travel as float64 on the gRPC path; past 2^53 the low bits
	// are lost before decoding.
	const beyond = int64(1<<53) + 1
	graph, err := mapper.Marshal(form{N: beyond}, EncodingGRPC)
	require.NoError(t, err)

	var out form
	require.NoError(t, mapper.Unmarshal(graph, &out, EncodingGRPC))
	assert.Equal(t, int64(1<<53), out.N)
}
