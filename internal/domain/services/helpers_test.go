package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MiNi89iOS/SkySnap-IFC-001/internal/domain/model"
)

// testIDGen returns a deterministic generator of well-formed 22-character
// global identifiers: 0Test00000000000000001, 0Test00000000000000002, ...
func testIDGen() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("0Test%017d", n)
	}
}

func newGUID() model.Str {
	return model.Str(model.NewGlobalID())
}

func mustEntity(t *testing.T, m *model.Model, typeName string, attrs ...model.Value) *model.Entity {
	t.Helper()
	e, err := m.NewEntity(typeName, attrs...)
	require.NoError(t, err)
	return e
}

// newOwnerHistory builds a full change-tracking chain: person, organization,
// person-and-organization, application and the history record itself.
func newOwnerHistory(t *testing.T, m *model.Model, family string) *model.Entity {
	t.Helper()
	person := mustEntity(t, m, "IfcPerson", model.Null{}, model.Str(family))
	org := mustEntity(t, m, "IfcOrganization", model.Null{}, model.Str(family+" sp. z o.o."))
	user := mustEntity(t, m, "IfcPersonAndOrganization", model.RefTo(person), model.RefTo(org))
	app := mustEntity(t, m, "IfcApplication",
		model.RefTo(org), model.Str("1.0"), model.Str(family+" Tools"), model.Str(strings.ToLower(family)))
	return mustEntity(t, m, "IfcOwnerHistory",
		model.RefTo(user), model.RefTo(app), model.Null{}, model.Enum("ADDED"),
		model.Null{}, model.Null{}, model.Null{}, model.Int(1700000000))
}

func coordTuple(x, y, z float64) model.List {
	return model.List{model.Real(x), model.Real(y), model.Real(z)}
}

// newAxisCurve builds an indexed polycurve over an inline 3-D point list.
func newAxisCurve(t *testing.T, m *model.Model, pts ...[3]float64) *model.Entity {
	t.Helper()
	var coords model.List
	for _, p := range pts {
		coords = append(coords, coordTuple(p[0], p[1], p[2]))
	}
	list := mustEntity(t, m, "IfcCartesianPointList3D", coords)
	return mustEntity(t, m, "IfcIndexedPolyCurve",
		model.RefTo(list), model.Null{}, model.Boolean(false))
}

// newRingPolyline builds a closed 2-D polyline whose farthest vertex sits at
// the given radius from the profile axis.
func newRingPolyline(t *testing.T, m *model.Model, radius float64) *model.Entity {
	t.Helper()
	var refs model.List
	for _, p := range [][2]float64{{radius, 0}, {0, radius}, {-radius, 0}, {0, -radius}} {
		point := mustEntity(t, m, "IfcCartesianPoint",
			model.List{model.Real(p[0]), model.Real(p[1])})
		refs = append(refs, model.RefTo(point))
	}
	return mustEntity(t, m, "IfcPolyline", refs)
}

// newColumnType builds a column type with an Axis representation over the
// given centerline and, when outer > 0, a Body swept solid whose profile has
// the given radii. inner <= 0 yields a solid section.
func newColumnType(t *testing.T, m *model.Model, history *model.Entity, axis [][3]float64, outer, inner float64) *model.Entity {
	t.Helper()
	axisRep := mustEntity(t, m, "IfcShapeRepresentation",
		model.Null{}, model.Str("Axis"), model.Str("Curve3D"),
		model.List{model.RefTo(newAxisCurve(t, m, axis...))})
	axisMap := mustEntity(t, m, "IfcRepresentationMap", model.Null{}, model.RefTo(axisRep))
	maps := model.List{model.RefTo(axisMap)}

	if outer > 0 {
		var profile *model.Entity
		if inner > 0 {
			profile = mustEntity(t, m, "IfcArbitraryProfileDefWithVoids",
				model.Enum("AREA"), model.Null{},
				model.RefTo(newRingPolyline(t, m, outer)),
				model.List{model.RefTo(newRingPolyline(t, m, inner))})
		} else {
			profile = mustEntity(t, m, "IfcArbitraryClosedProfileDef",
				model.Enum("AREA"), model.Null{},
				model.RefTo(newRingPolyline(t, m, outer)))
		}
		extrudeDir := mustEntity(t, m, "IfcDirection", coordTuple(0, 0, 1))
		solid := mustEntity(t, m, "IfcExtrudedAreaSolid",
			model.RefTo(profile), model.Null{}, model.RefTo(extrudeDir), model.Real(6))
		bodyRep := mustEntity(t, m, "IfcShapeRepresentation",
			model.Null{}, model.Str("Body"), model.Str("SweptSolid"),
			model.List{model.RefTo(solid)})
		bodyMap := mustEntity(t, m, "IfcRepresentationMap", model.Null{}, model.RefTo(bodyRep))
		maps = append(maps, model.RefTo(bodyMap))
	}

	return mustEntity(t, m, "IfcColumnType",
		newGUID(), model.RefTo(history), model.Str("LEG-TYPE"), model.Null{},
		model.Null{}, model.Null{}, maps, model.Null{}, model.Null{}, model.Enum("COLUMN"))
}

// newColumn builds a column and the type relation binding it to columnType.
func newColumn(t *testing.T, m *model.Model, history, columnType *model.Entity) *model.Entity {
	t.Helper()
	column := mustEntity(t, m, "IfcColumn",
		newGUID(), model.RefTo(history), model.Str("Leg"))
	mustEntity(t, m, "IfcRelDefinesByType",
		newGUID(), model.RefTo(history), model.Null{}, model.Null{},
		model.List{model.RefTo(column)}, model.RefTo(columnType))
	return column
}

// segmentFixture is a minimal mast segment model: one project in metres, one
// storey, one vertical tubular leg running from (0,0,0) to (0,0,6) with
// outer radius 0.2 and a solid section, contained in the storey.
type segmentFixture struct {
	m          *model.Model
	history    *model.Entity
	project    *model.Entity
	storey     *model.Entity
	column     *model.Entity
	columnType *model.Entity
}

func newSegmentFixture(t *testing.T) *segmentFixture {
	t.Helper()
	m := model.New(model.IFC4())
	history := newOwnerHistory(t, m, "Kowalski")

	metre := mustEntity(t, m, "IfcSIUnit",
		model.Null{}, model.Enum("LENGTHUNIT"), model.Null{}, model.Enum("METRE"))
	units := mustEntity(t, m, "IfcUnitAssignment", model.List{model.RefTo(metre)})
	project := mustEntity(t, m, "IfcProject",
		newGUID(), model.RefTo(history), model.Str("Mast"), model.Null{},
		model.Null{}, model.Null{}, model.Null{}, model.Null{}, model.RefTo(units))

	storey := mustEntity(t, m, "IfcBuildingStorey",
		newGUID(), model.RefTo(history), model.Str("Segment"))

	columnType := newColumnType(t, m, history, [][3]float64{{0, 0, 0}, {0, 0, 6}}, 0.2, 0)
	column := newColumn(t, m, history, columnType)
	mustEntity(t, m, "IfcRelContainedInSpatialStructure",
		newGUID(), model.RefTo(history), model.Null{}, model.Null{},
		model.List{model.RefTo(column)}, model.RefTo(storey))

	return &segmentFixture{
		m:          m,
		history:    history,
		project:    project,
		storey:     storey,
		column:     column,
		columnType: columnType,
	}
}

// antennaFixture is a donor library model: one communications appliance with
// its type, a property set on the occurrence and one material shared by two
// association relations, both inbound on the appliance.
type antennaFixture struct {
	m           *model.Model
	history     *model.Entity
	antenna     *model.Entity
	antennaType *model.Entity
	pset        *model.Entity
	material    *model.Entity
}

func newAntennaFixture(t *testing.T) *antennaFixture {
	t.Helper()
	m := model.New(model.IFC4())
	history := newOwnerHistory(t, m, "Nowak")

	antenna := mustEntity(t, m, "IfcCommunicationsAppliance",
		newGUID(), model.RefTo(history), model.Str("Panel antenna"), model.Null{},
		model.Null{}, model.Null{}, model.Null{}, model.Null{}, model.Enum("ANTENNA"))
	antennaType := mustEntity(t, m, "IfcCommunicationsApplianceType",
		newGUID(), model.RefTo(history), model.Str("Panel antenna type"), model.Null{},
		model.Null{}, model.Null{}, model.Null{}, model.Null{}, model.Null{}, model.Enum("ANTENNA"))
	mustEntity(t, m, "IfcRelDefinesByType",
		newGUID(), model.RefTo(history), model.Null{}, model.Null{},
		model.List{model.RefTo(antenna)}, model.RefTo(antennaType))

	gain := mustEntity(t, m, "IfcPropertySingleValue",
		model.Str("Gain"), model.Null{},
		model.Typed{Type: "IFCREAL", Inner: model.Real(17.5)}, model.Null{})
	pset := mustEntity(t, m, "IfcPropertySet",
		newGUID(), model.RefTo(history), model.Str("Pset_AntennaCommon"), model.Null{},
		model.List{model.RefTo(gain)})
	mustEntity(t, m, "IfcRelDefinesByProperties",
		newGUID(), model.RefTo(history), model.Null{}, model.Null{},
		model.List{model.RefTo(antenna)}, model.RefTo(pset))

	material := mustEntity(t, m, "IfcMaterial", model.Str("Aluminium"))
	mustEntity(t, m, "IfcRelAssociatesMaterial",
		newGUID(), model.RefTo(history), model.Null{}, model.Null{},
		model.List{model.RefTo(antenna)}, model.RefTo(material))
	mustEntity(t, m, "IfcRelAssociatesMaterial",
		newGUID(), model.RefTo(history), model.Null{}, model.Null{},
		model.List{model.RefTo(antennaType), model.RefTo(antenna)}, model.RefTo(material))

	return &antennaFixture{
		m:           m,
		history:     history,
		antenna:     antenna,
		antennaType: antennaType,
		pset:        pset,
		material:    material,
	}
}
