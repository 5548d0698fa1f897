package objects

import (
	"go.uber.org/fx"

	"github.com/quiverdb/quiver-go/v1/logger"
	"github.com/quiverdb/quiver-go/v1/observability"
	"github.com/quiverdb/quiver-go/v1/properties"
)

// FXModule is an fx.Module that provides the object codec. It expects a
// properties.Mapper in the container, which the properties FXModule
// provides.
//
// Usage:
//
//	app := fx.New(
//	    properties.FXModule,
//	    objects.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("objects",
	fx.Provide(
		NewCodecWithDI,
	),
)

// CodecParams groups the dependencies needed to create the codec.
type CodecParams struct {
	fx.In

	Mapper   *properties.Mapper
	Logger   *logger.Logger         `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewCodecWithDI creates the codec using dependency injection, wiring
// in the logger and observer when present.
func NewCodecWithDI(params CodecParams) *Codec {
	var opts []CodecOption
	if params.Logger != nil {
		opts = append(opts, WithLogger(params.Logger))
	}
	if params.Observer != nil {
		opts = append(opts, WithObserver(params.Observer))
	}
	return NewCodec(params.Mapper, opts...)
}
