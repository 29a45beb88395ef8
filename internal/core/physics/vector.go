package physics

import "math"

// Lightweight spatial types shared by targeting, doors and vehicles.
// Y is up; yaw is measured in degrees around Y.

type Vec3 struct{ X, Y, Z float64 }

func (v Vec3) Add(o Vec3) Vec3         { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3         { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(k float64) Vec3    { return Vec3{v.X * k, v.Y * k, v.Z * k} }
func (v Vec3) Dot(o Vec3) float64      { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Length() float64         { return math.Sqrt(v.Dot(v)) }
func (v Vec3) Distance(o Vec3) float64 { return v.Sub(o).Length() }

// Normalize returns the unit vector, or the zero vector for a zero input.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Pose is a ground-plane placement: a position plus a heading.
type Pose struct {
	Position Vec3
	Yaw      float64
}

// Forward is the unit heading on the ground plane. Yaw 0 faces +Z.
func (p Pose) Forward() Vec3 {
	r := p.Yaw * math.Pi / 180
	return Vec3{X: math.Sin(r), Z: math.Cos(r)}
}

// Right is the local right axis on the ground plane. Yaw 0 gives +X.
func (p Pose) Right() Vec3 {
	r := p.Yaw * math.Pi / 180
	return Vec3{X: math.Cos(r), Z: -math.Sin(r)}
}

// Ray is a view ray; Direction is expected to be unit length.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) Vec3 { return r.Origin.Add(r.Direction.Scale(t)) }

// DirectionFromAngles builds a unit view direction from yaw and pitch in degrees.
func DirectionFromAngles(yaw, pitch float64) Vec3 {
	y := yaw * math.Pi / 180
	p := pitch * math.Pi / 180
	return Vec3{
		X: math.Sin(y) * math.Cos(p),
		Y: math.Sin(p),
		Z: math.Cos(y) * math.Cos(p),
	}
}
