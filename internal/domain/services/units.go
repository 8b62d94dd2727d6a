package services

import "github.com/MiNi89iOS/SkySnap-IFC-001/internal/domain/model"

// siPrefixFactors maps IFC SI unit prefixes to their scale factor.
var siPrefixFactors = map[string]float64{
	"EXA":   1e18,
	"PETA":  1e15,
	"TERA":  1e12,
	"GIGA":  1e9,
	"MEGA":  1e6,
	"KILO":  1e3,
	"HECTO": 1e2,
	"DECA":  1e1,
	"DECI":  1e-1,
	"CENTI": 1e-2,
	"MILLI": 1e-3,
	"MICRO": 1e-6,
	"NANO":  1e-9,
	"PICO":  1e-12,
	"FEMTO": 1e-15,
	"ATTO":  1e-18,
}

// UnitScale returns the factor converting the model's length unit to
// metres, resolved from the project's unit assignment. Models without a
// resolvable length unit default to 1.
func UnitScale(m *model.Model) float64 {
	projects := m.EntitiesOfType("IfcProject")
	if len(projects) == 0 {
		return 1
	}
	assignment := projects[0].RefEntity("UnitsInContext")
	if assignment == nil {
		return 1
	}

	for _, unit := range model.EntityList(assignment.Attr("Units")) {
		unitType, _ := model.AsString(unit.Attr("UnitType"))
		if unitType != "LENGTHUNIT" {
			continue
		}
		return lengthUnitScale(unit)
	}
	return 1
}

func lengthUnitScale(unit *model.Entity) float64 {
	switch {
	case unit.IsA("IfcSIUnit"):
		scale := 1.0
		if prefix, ok := model.AsString(unit.Attr("Prefix")); ok {
			if f, known := siPrefixFactors[prefix]; known {
				scale = f
			}
		}
		return scale
	case unit.IsA("IfcConversionBasedUnit"):
		measure := unit.RefEntity("ConversionFactor")
		if measure == nil {
			return 1
		}
		factor, ok := model.AsFloat(measure.Attr("ValueComponent"))
		if !ok {
			return 1
		}
		base := 1.0
		if baseUnit := measure.RefEntity("UnitComponent"); baseUnit != nil {
			base = lengthUnitScale(baseUnit)
		}
		return factor * base
	}
	return 1
}
