package handlers

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MiNi89iOS/SkySnap-IFC-001/internal/domain/model"
	"github.com/MiNi89iOS/SkySnap-IFC-001/internal/infrastructure/step"
)

func mustEntity(t *testing.T, m *model.Model, typeName string, attrs ...model.Value) *model.Entity {
	t.Helper()
	e, err := m.NewEntity(typeName, attrs...)
	require.NoError(t, err)
	return e
}

func newGUID() model.Str {
	return model.Str(model.NewGlobalID())
}

func newOwnerHistory(t *testing.T, m *model.Model, family string) *model.Entity {
	t.Helper()
	person := mustEntity(t, m, "IfcPerson", model.Null{}, model.Str(family))
	org := mustEntity(t, m, "IfcOrganization", model.Null{}, model.Str(family+" sp. z o.o."))
	user := mustEntity(t, m, "IfcPersonAndOrganization", model.RefTo(person), model.RefTo(org))
	app := mustEntity(t, m, "IfcApplication",
		model.RefTo(org), model.Str("1.0"), model.Str(family+" Tools"), model.Str("tools"))
	return mustEntity(t, m, "IfcOwnerHistory",
		model.RefTo(user), model.RefTo(app), model.Null{}, model.Enum("ADDED"),
		model.Null{}, model.Null{}, model.Null{}, model.Int(1700000000))
}

func coordTuple(x, y, z float64) model.List {
	return model.List{model.Real(x), model.Real(y), model.Real(z)}
}

// newSegmentModel builds a mast segment: project in metres, one storey and
// one vertical leg from (0,0,0) to (0,0,6) with outer radius 0.2, contained
// in the storey.
func newSegmentModel(t *testing.T) *model.Model {
	t.Helper()
	m := model.New(model.IFC4())
	history := newOwnerHistory(t, m, "Kowalski")

	metre := mustEntity(t, m, "IfcSIUnit",
		model.Null{}, model.Enum("LENGTHUNIT"), model.Null{}, model.Enum("METRE"))
	units := mustEntity(t, m, "IfcUnitAssignment", model.List{model.RefTo(metre)})
	mustEntity(t, m, "IfcProject",
		newGUID(), model.RefTo(history), model.Str("Mast"), model.Null{},
		model.Null{}, model.Null{}, model.Null{}, model.Null{}, model.RefTo(units))

	storey := mustEntity(t, m, "IfcBuildingStorey",
		newGUID(), model.RefTo(history), model.Str("Segment"))

	pointList := mustEntity(t, m, "IfcCartesianPointList3D",
		model.List{coordTuple(0, 0, 0), coordTuple(0, 0, 6)})
	axisCurve := mustEntity(t, m, "IfcIndexedPolyCurve",
		model.RefTo(pointList), model.Null{}, model.Boolean(false))
	axisRep := mustEntity(t, m, "IfcShapeRepresentation",
		model.Null{}, model.Str("Axis"), model.Str("Curve3D"), model.List{model.RefTo(axisCurve)})
	axisMap := mustEntity(t, m, "IfcRepresentationMap", model.Null{}, model.RefTo(axisRep))

	var ringRefs model.List
	for _, p := range [][2]float64{{0.2, 0}, {0, 0.2}, {-0.2, 0}, {0, -0.2}} {
		point := mustEntity(t, m, "IfcCartesianPoint",
			model.List{model.Real(p[0]), model.Real(p[1])})
		ringRefs = append(ringRefs, model.RefTo(point))
	}
	ring := mustEntity(t, m, "IfcPolyline", ringRefs)
	profile := mustEntity(t, m, "IfcArbitraryClosedProfileDef",
		model.Enum("AREA"), model.Null{}, model.RefTo(ring))
	extrudeDir := mustEntity(t, m, "IfcDirection", coordTuple(0, 0, 1))
	solid := mustEntity(t, m, "IfcExtrudedAreaSolid",
		model.RefTo(profile), model.Null{}, model.RefTo(extrudeDir), model.Real(6))
	bodyRep := mustEntity(t, m, "IfcShapeRepresentation",
		model.Null{}, model.Str("Body"), model.Str("SweptSolid"), model.List{model.RefTo(solid)})
	bodyMap := mustEntity(t, m, "IfcRepresentationMap", model.Null{}, model.RefTo(bodyRep))

	columnType := mustEntity(t, m, "IfcColumnType",
		newGUID(), model.RefTo(history), model.Str("LEG-TYPE"), model.Null{},
		model.Null{}, model.Null{}, model.List{model.RefTo(axisMap), model.RefTo(bodyMap)},
		model.Null{}, model.Null{}, model.Enum("COLUMN"))
	column := mustEntity(t, m, "IfcColumn",
		newGUID(), model.RefTo(history), model.Str("Leg"))
	mustEntity(t, m, "IfcRelDefinesByType",
		newGUID(), model.RefTo(history), model.Null{}, model.Null{},
		model.List{model.RefTo(column)}, model.RefTo(columnType))
	mustEntity(t, m, "IfcRelContainedInSpatialStructure",
		newGUID(), model.RefTo(history), model.Null{}, model.Null{},
		model.List{model.RefTo(column)}, model.RefTo(storey))

	return m
}

// newAntennaModel builds a donor library: one appliance predefined as
// ANTENNA with its type, a property set and a material association.
func newAntennaModel(t *testing.T) *model.Model {
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

	return m
}

// writeModel writes m into dir under name and returns the full path.
func writeModel(t *testing.T, m *model.Model, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, step.NewStore().Write(m, path))
	return path
}
