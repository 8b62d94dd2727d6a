package geometry

import (
	"errors"

	"github.com/MiNi89iOS/SkySnap-IFC-001/internal/domain/model"
)

// ErrDegenerateOrientation is returned when two orientation vectors are too
// close to parallel to span a placement frame.
var ErrDegenerateOrientation = errors.New("orientation vectors are nearly parallel")

// Coords reads an IfcCartesianPoint or IfcDirection into a Vec3. 2-D
// coordinates get z = 0.
func Coords(e *model.Entity) Vec3 {
	if e == nil {
		return Vec3{}
	}
	attr := "Coordinates"
	if e.IsA("IfcDirection") {
		attr = "DirectionRatios"
	}
	list, _ := model.AsList(e.Attr(attr))
	var v Vec3
	if len(list) > 0 {
		v.X, _ = model.AsFloat(list[0])
	}
	if len(list) > 1 {
		v.Y, _ = model.AsFloat(list[1])
	}
	if len(list) > 2 {
		v.Z, _ = model.AsFloat(list[2])
	}
	return v
}

// AxisPlacementMatrix builds the transform of one IfcAxis2Placement3D:
// z from Axis, x from RefDirection orthogonalized against z, y completing
// the right-handed frame, translation from Location. Missing axes default
// to the global directions.
func AxisPlacementMatrix(p *model.Entity) Mat4 {
	if p == nil {
		return Identity()
	}

	z := Vec3{0, 0, 1}
	if axis := p.RefEntity("Axis"); axis != nil {
		if n, err := Normalize(Coords(axis)); err == nil {
			z = n
		}
	}
	xRaw := Vec3{1, 0, 0}
	if ref := p.RefEntity("RefDirection"); ref != nil {
		if n, err := Normalize(Coords(ref)); err == nil {
			xRaw = n
		}
	}

	x, err := Normalize(xRaw.Sub(z.Scale(xRaw.Dot(z))))
	if err != nil {
		// RefDirection parallel to Axis: fall back to whichever global
		// axis is not parallel to z.
		alt := Vec3{1, 0, 0}
		if z.Cross(alt).Norm() < Eps {
			alt = Vec3{0, 1, 0}
		}
		x, _ = Normalize(alt.Sub(z.Scale(alt.Dot(z))))
	}
	y := z.Cross(x)

	loc := Coords(p.RefEntity("Location"))
	return Mat4{
		{x.X, y.X, z.X, loc.X},
		{x.Y, y.Y, z.Y, loc.Y},
		{x.Z, y.Z, z.Z, loc.Z},
		{0, 0, 0, 1},
	}
}

// PlacementMatrix composes the world transform of an IfcLocalPlacement by
// walking its PlacementRelTo chain to the root and multiplying the
// child-relative transforms outward-in. A nil placement is the implicit
// world frame.
func PlacementMatrix(placement *model.Entity) Mat4 {
	if placement == nil {
		return Identity()
	}
	local := AxisPlacementMatrix(placement.RefEntity("RelativePlacement"))
	parent := placement.RefEntity("PlacementRelTo")
	if parent == nil {
		return local
	}
	return PlacementMatrix(parent).Mul(local)
}

// WorldToLocal expresses a world-space point and two world-space direction
// vectors in the frame given by ref. Both directions are re-normalized; a
// near-parallel pair cannot span a placement frame and is rejected.
func WorldToLocal(ref Mat4, point, xWorld, zWorld Vec3) (Vec3, Vec3, Vec3, error) {
	inv, err := ref.Inverse()
	if err != nil {
		return Vec3{}, Vec3{}, Vec3{}, err
	}

	pLocal := inv.MulPoint(point)
	xLocal, err := Normalize(inv.MulDir(xWorld))
	if err != nil {
		return Vec3{}, Vec3{}, Vec3{}, err
	}
	zLocal, err := Normalize(inv.MulDir(zWorld))
	if err != nil {
		return Vec3{}, Vec3{}, Vec3{}, err
	}

	if dot := xLocal.Dot(zLocal); dot > 0.999 || dot < -0.999 {
		return Vec3{}, Vec3{}, Vec3{}, ErrDegenerateOrientation
	}
	return pLocal, xLocal, zLocal, nil
}
