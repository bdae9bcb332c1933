package value

import (
	"fmt"
	"math"
)

// Transform is a 2D transform: translation, uniform zoom and rotation in
// radians. The zero value has zoom 0; use Identity for a visible default.
type Transform struct {
	X, Y     float64
	Zoom     float64
	Rotation float64
}

func Identity() Transform {
	return Transform{Zoom: 1}
}

func (tr Transform) lanes() lanes {
	return lanes{tr.X, tr.Y, tr.Zoom, tr.Rotation}
}

func transformFromLanes(l lanes) Transform {
	return Transform{X: l[0], Y: l[1], Zoom: l[2], Rotation: l[3]}
}

func (tr Transform) Add(o Transform) Transform {
	return transformFromLanes(tr.lanes().add(o.lanes()))
}

func (tr Transform) Sub(o Transform) Transform {
	return transformFromLanes(tr.lanes().sub(o.lanes()))
}

// Scale multiplies every component. It is the vector-space scale used by
// the integrators, not the transform's Zoom.
func (tr Transform) Scale(f float64) Transform {
	return transformFromLanes(tr.lanes().scale(f))
}

// Lerp interpolates every component linearly. Rotation is not wrapped, so
// a turn of 3π/2 is played as 3π/2 and matches the spring path through Sub.
func (tr Transform) Lerp(target Transform, t float64) Transform {
	if t == 1 {
		return target
	}
	return transformFromLanes(tr.lanes().fma(target.lanes().sub(tr.lanes()), t))
}

func (tr Transform) Magnitude() float64 {
	return tr.lanes().norm()
}

func (tr Transform) Epsilon() float64 { return TransformEpsilon }

func (tr Transform) String() string {
	return fmt.Sprintf("T(%.2f, %.2f, s=%.3f, r=%.1f°)", tr.X, tr.Y, tr.Zoom, tr.Rotation*180/math.Pi)
}

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) scale(f float64) Vec3 { return Vec3{v.X * f, v.Y * f, v.Z * f} }
func (v Vec3) dot() float64         { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }

// Transform3D is a 3D transform with Euler rotation in radians.
type Transform3D struct {
	Position Vec3
	Size     Vec3
	Rotation Vec3
}

func Identity3D() Transform3D {
	return Transform3D{Size: Vec3{1, 1, 1}}
}

func (tr Transform3D) Add(o Transform3D) Transform3D {
	return Transform3D{tr.Position.add(o.Position), tr.Size.add(o.Size), tr.Rotation.add(o.Rotation)}
}

func (tr Transform3D) Sub(o Transform3D) Transform3D {
	return Transform3D{tr.Position.sub(o.Position), tr.Size.sub(o.Size), tr.Rotation.sub(o.Rotation)}
}

func (tr Transform3D) Scale(f float64) Transform3D {
	return Transform3D{tr.Position.scale(f), tr.Size.scale(f), tr.Rotation.scale(f)}
}

func (tr Transform3D) Lerp(target Transform3D, t float64) Transform3D {
	if t == 1 {
		return target
	}
	return tr.Add(target.Sub(tr).Scale(t))
}

func (tr Transform3D) Magnitude() float64 {
	return math.Sqrt(tr.Position.dot() + tr.Size.dot() + tr.Rotation.dot())
}

func (tr Transform3D) Epsilon() float64 { return TransformEpsilon }
