package targeting

import (
	"github.com/zeusync/interact/internal/core/interact"
	"github.com/zeusync/interact/internal/core/physics"
)

// ColliderID is the stable identity of a collider surface.
type ColliderID uint64

// Hit is one candidate surface along the view ray.
type Hit struct {
	Collider ColliderID
	Distance float64
}

// RayTargetProvider casts a ray and returns every surface hit, nearest first.
// The returned slice is finite and owned by the caller.
type RayTargetProvider interface {
	Query(origin, direction physics.Vec3, maxDistance float64) []Hit
}

// Resolver maps a collider to the interactable exposed by it or by its nearest
// ancestor. Resolution is fixed when objects are registered, not recomputed per tick.
type Resolver interface {
	Resolve(id ColliderID) (interact.Interactable, bool)
}

// Named is implemented by interactables that can report a name for logs and events.
type Named interface {
	Name() string
}

func nameOf(i interact.Interactable) string {
	if n, ok := i.(Named); ok {
		return n.Name()
	}
	return "unnamed"
}
