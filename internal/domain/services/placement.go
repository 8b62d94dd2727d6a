// Package services holds the domain logic: placement solving on structural
// members, cross-model object-graph migration, relationship rewiring and
// owner-history harmonization.
package services

import (
	"errors"
	"fmt"

	"github.com/MiNi89iOS/SkySnap-IFC-001/internal/domain/geometry"
	"github.com/MiNi89iOS/SkySnap-IFC-001/internal/domain/model"
)

var (
	// ErrNoCandidate is returned when no member's axis crosses the
	// requested elevation.
	ErrNoCandidate = errors.New("no column axis crosses the requested elevation")

	// errNoAxis marks a member whose type carries no usable axis
	// representation. Recoverable per candidate: the member is skipped.
	errNoAxis = errors.New("no axis representation found")
)

// InvalidIndexError reports a candidate selection outside the valid range.
type InvalidIndexError struct {
	Index int
	Count int
}

func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("invalid leg index %d, valid range is 0..%d", e.Index, e.Count-1)
}

// Candidate is one member whose axis crosses the requested elevation,
// together with the derived insertion frame data.
type Candidate struct {
	Member         *model.Entity
	AxisStart      geometry.Vec3
	AxisEnd        geometry.Vec3
	Center         geometry.Vec3
	InsertionPoint geometry.Vec3
	Direction      geometry.Vec3
	RadialOffset   float64
}

// PlacementService locates attachment points on structural members.
type PlacementService struct{}

// NewPlacementService creates a new PlacementService.
func NewPlacementService() *PlacementService {
	return &PlacementService{}
}

// Solve scans every IfcColumn in the model, keeps the ones whose axis
// crosses the horizontal plane at targetHeight (in model units), and
// returns the candidate at the zero-based index. Candidates are ordered by
// ascending entity handle.
func (s *PlacementService) Solve(m *model.Model, targetHeight float64, index int) (*Candidate, error) {
	globalUp := geometry.Vec3{Z: 1}
	var candidates []*Candidate

	for _, column := range m.EntitiesOfType("IfcColumn") {
		start, end, err := axisEndpoints(m, column)
		if err != nil {
			continue
		}

		delta := end.Sub(start)
		// A horizontal axis has no well-defined intersection with a
		// horizontal elevation plane.
		if delta.Z < geometry.Eps && delta.Z > -geometry.Eps {
			continue
		}

		t := (targetHeight - start.Z) / delta.Z
		if t < 0 || t > 1 {
			continue
		}

		direction, err := geometry.Normalize(delta)
		if err != nil {
			continue
		}
		center := start.Add(delta.Scale(t))

		radial := globalUp.Cross(direction)
		if radial.Norm() < geometry.Eps {
			// Vertical axis: fall back to the world X axis.
			radial = geometry.Vec3{X: 1}.Cross(direction)
		}
		radial, err = geometry.Normalize(radial)
		if err != nil {
			continue
		}

		outer, inner := profileRadii(m, column)
		var offset float64
		switch {
		case outer > 0 && inner > 0 && inner < outer:
			// Tubular section: land on the mid-wall circle.
			offset = (outer + inner) / 2
		case outer > 0:
			offset = outer / 2
		}

		candidates = append(candidates, &Candidate{
			Member:         column,
			AxisStart:      start,
			AxisEnd:        end,
			Center:         center,
			InsertionPoint: center.Add(radial.Scale(offset)),
			Direction:      direction,
			RadialOffset:   offset,
		})
	}

	if len(candidates) == 0 {
		return nil, ErrNoCandidate
	}
	if index < 0 || index >= len(candidates) {
		return nil, &InvalidIndexError{Index: index, Count: len(candidates)}
	}
	return candidates[index], nil
}

// AssignedType resolves the member's type object through its inverse
// IfcRelDefinesByType relation, or nil when the member is untyped.
func AssignedType(m *model.Model, member *model.Entity) *model.Entity {
	for _, rel := range m.InverseReferences(member) {
		if !rel.IsA("IfcRelDefinesByType") {
			continue
		}
		return rel.RefEntity("RelatingType")
	}
	return nil
}

// axisEndpoints reads the first and last point of the member type's "Axis"
// representation curve.
func axisEndpoints(m *model.Model, member *model.Entity) (geometry.Vec3, geometry.Vec3, error) {
	memberType := AssignedType(m, member)
	if memberType == nil {
		return geometry.Vec3{}, geometry.Vec3{}, fmt.Errorf("#%d has no assigned type: %w", member.ID(), errNoAxis)
	}

	for _, rep := range typeRepresentations(memberType, "Axis") {
		items, _ := model.AsList(rep.Attr("Items"))
		if len(items) == 0 {
			continue
		}
		curve, ok := model.AsEntity(items[0])
		if !ok {
			continue
		}
		points := polycurvePoints(curve)
		if len(points) < 2 {
			continue
		}
		return points[0], points[len(points)-1], nil
	}
	return geometry.Vec3{}, geometry.Vec3{}, fmt.Errorf("#%d: %w", member.ID(), errNoAxis)
}

// profileRadii reads the outer and inner radius of the member type's swept
// "Body" profile. Radii of 0 mean no usable profile was found; the radial
// standoff is optional refinement, so this is a soft failure.
func profileRadii(m *model.Model, member *model.Entity) (outer, inner float64) {
	memberType := AssignedType(m, member)
	if memberType == nil {
		return 0, 0
	}

	var solid *model.Entity
	for _, rep := range typeRepresentations(memberType, "Body") {
		items, _ := model.AsList(rep.Attr("Items"))
		for _, item := range items {
			if e, ok := model.AsEntity(item); ok && e.IsA("IfcExtrudedAreaSolid") {
				solid = e
				break
			}
		}
		if solid != nil {
			break
		}
	}
	if solid == nil {
		return 0, 0
	}

	profile := solid.RefEntity("SweptArea")
	if profile == nil {
		return 0, 0
	}

	if outerCurve := profile.RefEntity("OuterCurve"); outerCurve != nil {
		outer = maxXYDistance(polycurvePoints(outerCurve))
	}
	if innerCurves := model.EntityList(profile.Attr("InnerCurves")); len(innerCurves) > 0 {
		inner = maxXYDistance(polycurvePoints(innerCurves[0]))
	}
	return outer, inner
}

// typeRepresentations yields the mapped representations of the type object
// matching the given representation identifier.
func typeRepresentations(typeObj *model.Entity, identifier string) []*model.Entity {
	var out []*model.Entity
	for _, repMap := range model.EntityList(typeObj.Attr("RepresentationMaps")) {
		rep := repMap.RefEntity("MappedRepresentation")
		if rep == nil {
			continue
		}
		if id, _ := model.AsString(rep.Attr("RepresentationIdentifier")); id == identifier {
			out = append(out, rep)
		}
	}
	return out
}

// polycurvePoints reads the point run of an IfcIndexedPolyCurve or
// IfcPolyline. 2-D points are lifted to z = 0.
func polycurvePoints(curve *model.Entity) []geometry.Vec3 {
	var out []geometry.Vec3
	switch {
	case curve.IsA("IfcIndexedPolyCurve"):
		pointList := curve.RefEntity("Points")
		if pointList == nil {
			return nil
		}
		coords, _ := model.AsList(pointList.Attr("CoordList"))
		for _, xyz := range coords {
			tuple, _ := model.AsList(xyz)
			out = append(out, tupleToVec(tuple))
		}
	case curve.IsA("IfcPolyline"):
		for _, point := range model.EntityList(curve.Attr("Points")) {
			tuple, _ := model.AsList(point.Attr("Coordinates"))
			out = append(out, tupleToVec(tuple))
		}
	}
	return out
}

func tupleToVec(tuple model.List) geometry.Vec3 {
	var v geometry.Vec3
	if len(tuple) > 0 {
		v.X, _ = model.AsFloat(tuple[0])
	}
	if len(tuple) > 1 {
		v.Y, _ = model.AsFloat(tuple[1])
	}
	if len(tuple) > 2 {
		v.Z, _ = model.AsFloat(tuple[2])
	}
	return v
}

func maxXYDistance(points []geometry.Vec3) float64 {
	var max float64
	for _, p := range points {
		if d := p.XYNorm(); d > max {
			max = d
		}
	}
	return max
}
