// Package world holds the scene the interaction core runs against: the object
// hierarchy, collider identities, ray queries, scene loading and the per-tick driver.
package world

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/zeusync/interact/internal/core/interact"
	"github.com/zeusync/interact/internal/core/observability/log"
	"github.com/zeusync/interact/internal/core/targeting"
)

var (
	ErrDuplicateObject = errors.New("duplicate object")
	ErrUnknownObject   = errors.New("unknown object")
	ErrUnknownKind     = errors.New("unknown interactable kind")
	ErrInvalidScene    = errors.New("invalid scene")
)

// ColliderIDOf derives the stable collider identity of a named object.
func ColliderIDOf(name string) targeting.ColliderID {
	return targeting.ColliderID(xxhash.Sum64String(name))
}

var _ targeting.Resolver = (*World)(nil)

// World owns the objects and the collider-to-interactable resolution table. The table
// is rebuilt for the affected subtree whenever an object or interactable is registered.
type World struct {
	mu        sync.RWMutex
	log       log.Log
	byName    map[string]*Object
	order     []*Object
	colliders map[targeting.ColliderID]*Object
	attached  map[*Object]interact.Interactable
	resolved  map[targeting.ColliderID]interact.Interactable
}

func New(l log.Log) *World {
	if l == nil {
		l = log.NewNop()
	}
	return &World{
		log:       l.With(log.String("component", "world")),
		byName:    make(map[string]*Object),
		colliders: make(map[targeting.ColliderID]*Object),
		attached:  make(map[*Object]interact.Interactable),
		resolved:  make(map[targeting.ColliderID]interact.Interactable),
	}
}

// Add registers obj under the named parent, or as a root when parent is empty.
func (w *World) Add(obj *Object, parent string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if obj.name == "" {
		return fmt.Errorf("%w: object name is required", ErrInvalidScene)
	}
	if _, ok := w.byName[obj.name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateObject, obj.name)
	}
	var p *Object
	if parent != "" {
		var ok bool
		if p, ok = w.byName[parent]; !ok {
			return fmt.Errorf("%w: parent %s of %s", ErrUnknownObject, parent, obj.name)
		}
	}
	if obj.collider != nil {
		id := ColliderIDOf(obj.name)
		if other, ok := w.colliders[id]; ok {
			return fmt.Errorf("%w: collider id of %s clashes with %s", ErrDuplicateObject, obj.name, other.name)
		}
		w.colliders[id] = obj
	}
	if p != nil {
		p.addChild(obj)
	}
	w.byName[obj.name] = obj
	w.order = append(w.order, obj)
	w.resolveSubtree(obj)
	return nil
}

// Attach binds an interactable to the named object. Colliders on the object and its
// descendants resolve to it unless a nearer ancestor has its own interactable.
func (w *World) Attach(name string, target interact.Interactable) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	obj, ok := w.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownObject, name)
	}
	if _, taken := w.attached[obj]; taken {
		return fmt.Errorf("%w: %s already has an interactable", ErrDuplicateObject, name)
	}
	w.attached[obj] = target
	w.resolveSubtree(obj)
	w.log.Debug("interactable attached", log.String("object", name))
	return nil
}

// Resolve returns the interactable for a collider whose object is still in the scene.
func (w *World) Resolve(id targeting.ColliderID) (interact.Interactable, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	obj, ok := w.colliders[id]
	if !ok || !obj.ActiveInHierarchy() {
		return nil, false
	}
	target, ok := w.resolved[id]
	return target, ok
}

func (w *World) Object(name string) (*Object, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	obj, ok := w.byName[name]
	return obj, ok
}

// Objects returns every object in registration order.
func (w *World) Objects() []*Object {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]*Object(nil), w.order...)
}

// Interactable returns the interactable attached directly to the named object.
func (w *World) Interactable(name string) (interact.Interactable, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	obj, ok := w.byName[name]
	if !ok {
		return nil, false
	}
	target, ok := w.attached[obj]
	return target, ok
}

func (w *World) resolveSubtree(root *Object) {
	var walk func(o *Object)
	walk = func(o *Object) {
		if o.collider != nil {
			id := ColliderIDOf(o.name)
			if target := w.nearest(o); target != nil {
				w.resolved[id] = target
			} else {
				delete(w.resolved, id)
			}
		}
		for _, c := range o.children {
			walk(c)
		}
	}
	walk(root)
}

func (w *World) nearest(o *Object) interact.Interactable {
	for n := o; n != nil; n = n.parent {
		if target, ok := w.attached[n]; ok {
			return target
		}
	}
	return nil
}
