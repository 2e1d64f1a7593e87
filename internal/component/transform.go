// internal/component/transform.go
package component

import "github.com/go-gl/mathgl/mgl32"

// Transform - положение сущности в мире. Orientation в градусах по осям X, Y, Z.
type Transform struct {
	Origin      mgl32.Vec3
	Scale       mgl32.Vec3
	Orientation mgl32.Vec3
}

// Model строит матрицу T·Ry·Rx·Rz·S. extraYaw (радианы) добавляется к повороту по Y - для спрайтов.
func (t Transform) Model(extraYaw float32) mgl32.Mat4 {
	return mgl32.Translate3D(t.Origin.X(), t.Origin.Y(), t.Origin.Z()).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(t.Orientation.Y()) + extraYaw)).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(t.Orientation.X()))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(t.Orientation.Z()))).
		Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}
