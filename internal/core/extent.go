package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"urdf2sem/internal/types"
)

// Extent is the axis-aligned size of a shape in its own frame: depth along
// x, width along y, height along z.
type Extent struct {
	Depth  float64
	Width  float64
	Height float64
}

// GeometryExtent measures primitive visual geometry. Meshes and degenerate
// primitives (any dimension <= 0) are not measured and report ok=false.
func GeometryExtent(geometry types.Geometry) (Extent, bool, error) {
	if degenerate(geometry) {
		return Extent{}, false, nil
	}
	var (
		solid sdf.SDF3
		err   error
	)
	switch geometry.Kind {
	case types.GeometryKindBox:
		solid, err = sdf.Box3D(v3.Vec{X: geometry.Size[0], Y: geometry.Size[1], Z: geometry.Size[2]}, 0)
	case types.GeometryKindCylinder:
		solid, err = sdf.Cylinder3D(geometry.Length, geometry.Radius, 0)
	case types.GeometryKindSphere:
		solid, err = sdf.Sphere3D(geometry.Radius)
	default:
		return Extent{}, false, nil
	}
	if err != nil {
		return Extent{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid %s geometry", geometry.Kind)).
			WithCause(err)
	}
	bb := solid.BoundingBox()
	return Extent{
		Depth:  bb.Max.X - bb.Min.X,
		Width:  bb.Max.Y - bb.Min.Y,
		Height: bb.Max.Z - bb.Min.Z,
	}, true, nil
}

func degenerate(geometry types.Geometry) bool {
	switch geometry.Kind {
	case types.GeometryKindBox:
		return geometry.Size[0] <= 0 || geometry.Size[1] <= 0 || geometry.Size[2] <= 0
	case types.GeometryKindCylinder:
		return geometry.Radius <= 0 || geometry.Length <= 0
	case types.GeometryKindSphere:
		return geometry.Radius <= 0
	default:
		return false
	}
}
