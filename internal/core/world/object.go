package world

import (
	"github.com/google/uuid"

	"github.com/zeusync/interact/internal/core/physics"
)

type Shape string

const (
	ShapeSphere Shape = "sphere"
	ShapeBox    Shape = "box"
)

// Collider is a ray-pickable volume in the object's local frame. Boxes rotate
// with the object's yaw.
type Collider struct {
	Shape  Shape        `json:"shape" yaml:"shape"`
	Radius float64      `json:"radius,omitempty" yaml:"radius,omitempty"`
	Size   physics.Vec3 `json:"size,omitempty" yaml:"size,omitempty"`
	Offset physics.Vec3 `json:"offset,omitempty" yaml:"offset,omitempty"`
}

// Object is a node of the scene hierarchy. Its pose is local to its parent.
type Object struct {
	id       string
	name     string
	parent   *Object
	children []*Object

	local    physics.Pose
	collider *Collider

	active      bool
	destroyed   bool
	lit         bool
	highlighted bool
}

func NewObject(name string, local physics.Pose, collider *Collider) *Object {
	return &Object{
		id:       uuid.NewString(),
		name:     name,
		local:    local,
		collider: collider,
		active:   true,
	}
}

func (o *Object) ID() string              { return o.id }
func (o *Object) Name() string            { return o.name }
func (o *Object) Parent() *Object         { return o.parent }
func (o *Object) Collider() *Collider     { return o.collider }
func (o *Object) LocalPose() physics.Pose { return o.local }

func (o *Object) Children() []*Object {
	return append([]*Object(nil), o.children...)
}

func (o *Object) SetLocalPose(p physics.Pose) { o.local = p }

// Pose returns the world-space pose.
func (o *Object) Pose() physics.Pose {
	if o.parent == nil {
		return o.local
	}
	parent := o.parent.Pose()
	return physics.Pose{
		Position: parent.Position.Add(toWorld(parent.Yaw, o.local.Position)),
		Yaw:      parent.Yaw + o.local.Yaw,
	}
}

// SetPose places the object at a world-space pose.
func (o *Object) SetPose(p physics.Pose) {
	if o.parent == nil {
		o.local = p
		return
	}
	parent := o.parent.Pose()
	o.local = physics.Pose{
		Position: toLocal(parent.Yaw, p.Position.Sub(parent.Position)),
		Yaw:      p.Yaw - parent.Yaw,
	}
}

// Angle and SetAngle expose the local yaw, so an object can act as a door hinge.
func (o *Object) Angle() float64 { return o.local.Yaw }

func (o *Object) SetAngle(deg float64) { o.local.Yaw = deg }

func (o *Object) SetEnabled(on bool) { o.lit = on }

// Lit reports whether the object's light is on.
func (o *Object) Lit() bool { return o.lit }

func (o *Object) SetHighlighted(on bool) { o.highlighted = on }

func (o *Object) Highlighted() bool { return o.highlighted }

// Deactivate hides the object and its subtree from ray queries.
func (o *Object) Deactivate() { o.active = false }

func (o *Object) Activate() {
	if !o.destroyed {
		o.active = true
	}
}

// Destroy permanently removes the object and its subtree from the scene.
func (o *Object) Destroy() {
	o.destroyed = true
	o.active = false
	for _, c := range o.children {
		c.Destroy()
	}
}

func (o *Object) Destroyed() bool { return o.destroyed }

// ActiveInHierarchy is false when the object or any ancestor is inactive.
func (o *Object) ActiveInHierarchy() bool {
	for n := o; n != nil; n = n.parent {
		if !n.active || n.destroyed {
			return false
		}
	}
	return true
}

func (o *Object) addChild(c *Object) {
	c.parent = o
	o.children = append(o.children, c)
}

// toWorld rotates a local offset by yaw degrees about the up axis.
func toWorld(yaw float64, v physics.Vec3) physics.Vec3 {
	p := physics.Pose{Yaw: yaw}
	return p.Right().Scale(v.X).Add(physics.Vec3{Y: v.Y}).Add(p.Forward().Scale(v.Z))
}

func toLocal(yaw float64, v physics.Vec3) physics.Vec3 {
	p := physics.Pose{Yaw: yaw}
	return physics.Vec3{X: v.Dot(p.Right()), Y: v.Y, Z: v.Dot(p.Forward())}
}
