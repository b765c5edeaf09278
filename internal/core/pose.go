package core

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"urdf2sem/internal/types"
)

// Pose is a rigid transform: rotate by Rotation, then translate by
// Translation. Rotation is kept at unit norm.
type Pose struct {
	Translation r3.Vec
	Rotation    quat.Number
}

func IdentityPose() Pose {
	return Pose{Rotation: quat.Number{Real: 1}}
}

// PoseFromOrigin converts a URDF origin. URDF rpy is fixed-axis X, Y, Z, so
// the rotation is Rz(yaw) * Ry(pitch) * Rx(roll).
func PoseFromOrigin(origin types.Origin) Pose {
	roll := quat.Number(r3.NewRotation(origin.RPY[0], r3.Vec{X: 1}))
	pitch := quat.Number(r3.NewRotation(origin.RPY[1], r3.Vec{Y: 1}))
	yaw := quat.Number(r3.NewRotation(origin.RPY[2], r3.Vec{Z: 1}))
	return Pose{
		Translation: r3.Vec{X: origin.XYZ[0], Y: origin.XYZ[1], Z: origin.XYZ[2]},
		Rotation:    normalize(quat.Mul(yaw, quat.Mul(pitch, roll))),
	}
}

// Mul returns p followed by q expressed in p's frame, the homogeneous
// product P * Q.
func (p Pose) Mul(q Pose) Pose {
	return Pose{
		Translation: r3.Add(p.Translation, rotate(p.Rotation, q.Translation)),
		Rotation:    normalize(quat.Mul(p.Rotation, q.Rotation)),
	}
}

func (p Pose) Inverse() Pose {
	inv := quat.Conj(p.Rotation)
	return Pose{
		Translation: r3.Scale(-1, rotate(inv, p.Translation)),
		Rotation:    inv,
	}
}

// Apply maps a point from the pose's child frame into its parent frame.
func (p Pose) Apply(v r3.Vec) r3.Vec {
	return r3.Add(p.Translation, rotate(p.Rotation, v))
}

// Transform returns translation and a scalar-first quaternion with w >= 0.
func (p Pose) Transform() types.Transform {
	q := normalize(p.Rotation)
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	return types.Transform{
		Translation: [3]float64{clean(p.Translation.X), clean(p.Translation.Y), clean(p.Translation.Z)},
		Quaternion:  [4]float64{clean(q.Real), clean(q.Imag), clean(q.Jmag), clean(q.Kmag)},
	}
}

func rotate(q quat.Number, v r3.Vec) r3.Vec {
	return r3.Rotation(q).Rotate(v)
}

func normalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/n, q)
}

// clean folds values within float noise of zero to +0 so formatted output
// never shows -0.000000.
func clean(v float64) float64 {
	if math.Abs(v) < 1e-12 {
		return 0
	}
	return v
}
