package objects

import (
	"time"

	"github.com/google/uuid"

	"github.com/quiverdb/quiver-go/v1/properties"
)

// Object is one stored record of a Quiver collection: an identifier, the
// collection it belongs to, its converted property graph, an optional
// vector, and server-maintained timestamps.
//
// The property graph holds wire-shaped values for the encoding it was
// built with. Vectors live on the Object itself and are never injected
// into user structs; Hydrate returns the typed properties and leaves the
// vector here.
type Object struct {
	// ID is the object's UUID. The zero value means "not assigned yet";
	// encoding omits it so the server can generate one.
	ID uuid.UUID

	// Collection is the name of the collection (class) the object
	// belongs to.
	Collection string

	// Properties holds the object's converted properties. May be nil
	// for an object with no properties.
	Properties *properties.Graph

	// Vector is the object's embedding, if any.
	Vector []float32

	// CreationTime and UpdateTime are server-assigned timestamps. They
	// are zero for objects that have not been stored yet.
	CreationTime time.Time
	UpdateTime   time.Time
}

// PropertyCount returns the number of top-level properties, zero for a
// nil graph.
func (o *Object) PropertyCount() int {
	if o == nil || o.Properties == nil {
		return 0
	}
	return o.Properties.Len()
}
