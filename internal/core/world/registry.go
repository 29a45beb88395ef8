package world

import (
	"fmt"
	"sort"
	"sync"

	"github.com/zeusync/interact/internal/core/interact"
)

// Registered interactable kinds.
const (
	KindDoor        = "door"
	KindLightSwitch = "light_switch"
	KindKeyPickup   = "key_pickup"
	KindVehicle     = "vehicle"
	KindVehicleBay  = "vehicle_bay"
)

// Factory builds the interactable for obj from its scene spec.
type Factory func(b *Builder, obj *Object, spec InteractableSpec) (interact.Interactable, error)

// Registry maps interactable kinds to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry knows every built-in kind.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(KindDoor, buildDoor)
	r.Register(KindLightSwitch, buildLightSwitch)
	r.Register(KindKeyPickup, buildKeyPickup)
	r.Register(KindVehicle, buildVehicle)
	r.Register(KindVehicleBay, buildVehicleBay)
	return r
}

// Register adds or replaces the factory for kind.
func (r *Registry) Register(kind string, factory Factory) {
	r.mu.Lock()
	r.factories[kind] = factory
	r.mu.Unlock()
}

func (r *Registry) Kinds() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.factories))
	for k := range r.factories {
		out = append(out, k)
	}
	r.mu.RUnlock()
	sort.Strings(out)
	return out
}

func (r *Registry) New(b *Builder, obj *Object, spec InteractableSpec) (interact.Interactable, error) {
	r.mu.RLock()
	f := r.factories[spec.Kind]
	r.mu.RUnlock()
	if f == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, spec.Kind)
	}
	return f(b, obj, spec)
}
