// Package objects provides the typed record layer of the Quiver client:
// the Object envelope that wraps a property graph with its identity,
// collection, vector and timestamps, and the Codec that moves Objects
// across the REST and gRPC wire shapes.
//
// # Core Features
//
//   - Object struct carrying id, collection, property graph, vector and
//     server timestamps
//   - Codec with EncodeREST/DecodeREST for the JSON body envelope and
//     EncodeProto/DecodeProto for the structpb shape
//   - Generic Build and Hydrate helpers bridging application structs and
//     Objects through the properties mapper
//   - Optional logging of unknown envelope keys and operation
//     observation with trace correlation
//
// # Basic Usage
//
//	import (
//	    "github.com/quiverdb/quiver-go/v1/objects"
//	    "github.com/quiverdb/quiver-go/v1/properties"
//	)
//
//	type Article struct {
//	    Title string   `quiver:"title"`
//	    Tags  []string `quiver:"tags"`
//	}
//
//	reg := properties.NewRegistry()
//	mapper := properties.NewMapper(reg)
//	codec := objects.NewCodec(mapper)
//
//	// Typed value → Object → REST body
//	obj, err := objects.Build(ctx, codec, "Article", uuid.New(), Article{
//	    Title: "Go and vectors",
//	    Tags:  []string{"go"},
//	}, properties.EncodingREST)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	obj.Vector = embedding
//
//	body, err := codec.EncodeREST(ctx, obj)
//	// body marshals to:
//	// {"class":"Article","id":"...","properties":{"title":...,"tags":[...]},"vector":[...]}
//
//	// REST body → Object → typed value
//	decoded, err := codec.DecodeREST(ctx, body)
//	article, err := objects.Hydrate[Article](ctx, codec, decoded, properties.EncodingREST)
//
// The gRPC path is symmetric: Build with properties.EncodingGRPC, then
// EncodeProto/DecodeProto.
//
// # Envelope
//
// The REST body uses the keys "id", "class", "properties", "vector",
// "creationTimeUnix" and "lastUpdateTimeUnix", with timestamps in Unix
// milliseconds. Zero-value fields are omitted on encode; unknown keys on
// decode are ignored and reported at debug level when a logger is
// attached.
//
// # Vectors
//
// Vectors stay on the Object. Hydrate never writes them into user
// structs, and Build never reads them out; set Object.Vector explicitly
// after building.
//
// # Context
//
// Codec operations take a context purely as a trace carrier for
// observation. They are CPU-bound and never block on the context.
//
// # FX Module Integration
//
//	app := fx.New(
//	    logger.FXModule,
//	    properties.FXModule,
//	    objects.FXModule,
//	)
//	app.Run()
//
// # Thread Safety
//
// The Codec is immutable after construction and safe for concurrent use.
// Objects themselves are plain data and follow the usual rules: do not
// mutate one concurrently.
//
// # Related Packages
//
//   - github.com/quiverdb/quiver-go/v1/properties: the conversion engine
//     and the Graph type carried in Object.Properties
//   - github.com/quiverdb/quiver-go/v1/schema: collection declarations
//   - github.com/quiverdb/quiver-go/v1/observability: operation
//     observation contract used by the Codec
package objects
