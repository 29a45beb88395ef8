package world

import (
	"math"
	"sort"

	"github.com/zeusync/interact/internal/core/physics"
	"github.com/zeusync/interact/internal/core/targeting"
)

var _ targeting.RayTargetProvider = (*World)(nil)

// Query returns every active collider the ray hits within maxDistance, nearest first.
func (w *World) Query(origin, direction physics.Vec3, maxDistance float64) []targeting.Hit {
	direction = direction.Normalize()
	if direction.Length() == 0 || maxDistance <= 0 {
		return nil
	}

	w.mu.RLock()
	var hits []targeting.Hit
	for id, obj := range w.colliders {
		if !obj.ActiveInHierarchy() {
			continue
		}
		if t, ok := raycastCollider(origin, direction, obj, maxDistance); ok {
			hits = append(hits, targeting.Hit{Collider: id, Distance: t})
		}
	}
	w.mu.RUnlock()

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance == hits[j].Distance {
			return hits[i].Collider < hits[j].Collider
		}
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

func raycastCollider(origin, direction physics.Vec3, obj *Object, maxDistance float64) (float64, bool) {
	c := obj.collider
	pose := obj.Pose()
	center := pose.Position.Add(toWorld(pose.Yaw, c.Offset))
	switch c.Shape {
	case ShapeSphere:
		return raycastSphere(origin, direction, center, c.Radius, maxDistance)
	case ShapeBox:
		o := toLocal(pose.Yaw, origin.Sub(center))
		d := toLocal(pose.Yaw, direction)
		half := physics.Vec3{X: math.Abs(c.Size.X) / 2, Y: math.Abs(c.Size.Y) / 2, Z: math.Abs(c.Size.Z) / 2}
		return raycastBox(o, d, half, maxDistance)
	default:
		return 0, false
	}
}

func raycastSphere(origin, direction, center physics.Vec3, radius, maxDistance float64) (float64, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 || t > maxDistance {
		return 0, false
	}
	return t, true
}

// raycastBox is a slab test against a box centred on the origin of its frame.
func raycastBox(origin, direction, half physics.Vec3, maxDistance float64) (float64, bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	axes := [3][3]float64{
		{origin.X, direction.X, half.X},
		{origin.Y, direction.Y, half.Y},
		{origin.Z, direction.Z, half.Z},
	}
	for _, a := range axes {
		o, d, h := a[0], a[1], a[2]
		if d == 0 {
			if o < -h || o > h {
				return 0, false
			}
			continue
		}
		t1 := (-h - o) / d
		t2 := (h - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	t := tmin
	if t < 0 {
		t = tmax
	}
	if t > maxDistance {
		return 0, false
	}
	return t, true
}
