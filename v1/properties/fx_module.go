package properties

import (
	"go.uber.org/fx"

	"github.com/quiverdb/quiver-go/v1/logger"
	"github.com/quiverdb/quiver-go/v1/observability"
)

// FXModule is an fx.Module that provides the converter registry and a
// default mapper. Both are registered with the Fx dependency injection
// framework, making them available to other components in the
// application.
//
// Usage:
//
//	app := fx.New(
//	    properties.FXModule,
//	    // other modules...
//	)
//
// A logger and an observability.Observer are picked up automatically
// when some other module provides them.
var FXModule = fx.Module("properties",
	fx.Provide(
		NewRegistryWithDI,
		NewMapperWithDI,
	),
)

// RegistryParams groups the dependencies needed to build the converter
// registry.
type RegistryParams struct {
	fx.In

	Logger *logger.Logger `optional:"true"`
}

// NewRegistryWithDI creates the converter registry using dependency
// injection. Applications that need custom converters should provide
// their own *Registry instead of relying on this constructor.
func NewRegistryWithDI(params RegistryParams) *Registry {
	var opts []RegistryOption
	if params.Logger != nil {
		opts = append(opts, WithRegistryLogger(params.Logger))
	}
	return NewRegistry(opts...)
}

// MapperParams groups the dependencies needed to build the default
// mapper.
type MapperParams struct {
	fx.In

	Registry *Registry
	Logger   *logger.Logger         `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewMapperWithDI creates a mapper over the injected registry, wiring
// in the logger and observer when present. Mappers bound to a specific
// collection class are built directly with NewMapper and WithClass.
func NewMapperWithDI(params MapperParams) *Mapper {
	var opts []MapperOption
	if params.Logger != nil {
		opts = append(opts, WithLogger(params.Logger))
	}
	if params.Observer != nil {
		opts = append(opts, WithObserver(params.Observer))
	}
	return NewMapper(params.Registry, opts...)
}
