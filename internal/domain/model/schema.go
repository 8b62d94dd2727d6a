package model

import "strings"

// TypeDef describes one entity type: its supertype link and the full,
// ordered attribute list (inherited attributes first).
type TypeDef struct {
	Name  string
	Super *TypeDef
	Attrs []string
}

// IsA reports whether the type is name or a subtype of name.
func (d *TypeDef) IsA(name string) bool {
	for t := d; t != nil; t = t.Super {
		if strings.EqualFold(t.Name, name) {
			return true
		}
	}
	return false
}

// Root reports whether entities of this type carry a GlobalId.
func (d *TypeDef) Root() bool {
	return d.IsA("IfcRoot")
}

// AttrIndex returns the position of the named attribute, or -1.
func (d *TypeDef) AttrIndex(name string) int {
	for i, a := range d.Attrs {
		if a == name {
			return i
		}
	}
	return -1
}

// Schema is a registry of entity type definitions, looked up
// case-insensitively (the exchange format uses upper-case names).
type Schema struct {
	name  string
	types map[string]*TypeDef
}

// Name returns the schema identifier, e.g. "IFC4".
func (s *Schema) Name() string {
	return s.name
}

// Lookup resolves a type name to its definition.
func (s *Schema) Lookup(name string) (*TypeDef, bool) {
	d, ok := s.types[strings.ToUpper(name)]
	return d, ok
}

type rawDef struct {
	name  string
	super string
	attrs []string
}

// ifc4Defs lists the IFC4 entity types this tool understands, with the
// attributes each type declares locally. Abstract supertypes are included
// so that subtype queries (IsA) and inherited attribute order resolve.
var ifc4Defs = []rawDef{
	{"IfcRoot", "", []string{"GlobalId", "OwnerHistory", "Name", "Description"}},
	{"IfcObjectDefinition", "IfcRoot", nil},
	{"IfcObject", "IfcObjectDefinition", []string{"ObjectType"}},
	{"IfcProduct", "IfcObject", []string{"ObjectPlacement", "Representation"}},
	{"IfcElement", "IfcProduct", []string{"Tag"}},
	{"IfcBuildingElement", "IfcElement", nil},
	{"IfcColumn", "IfcBuildingElement", []string{"PredefinedType"}},
	{"IfcColumnStandardCase", "IfcColumn", nil},
	{"IfcDistributionElement", "IfcElement", nil},
	{"IfcDistributionFlowElement", "IfcDistributionElement", nil},
	{"IfcFlowTerminal", "IfcDistributionFlowElement", nil},
	{"IfcCommunicationsAppliance", "IfcFlowTerminal", []string{"PredefinedType"}},
	{"IfcSpatialElement", "IfcProduct", []string{"LongName"}},
	{"IfcSpatialStructureElement", "IfcSpatialElement", []string{"CompositionType"}},
	{"IfcSite", "IfcSpatialStructureElement", []string{"RefLatitude", "RefLongitude", "RefElevation", "LandTitleNumber", "SiteAddress"}},
	{"IfcBuilding", "IfcSpatialStructureElement", []string{"ElevationOfRefHeight", "ElevationOfTerrain", "BuildingAddress"}},
	{"IfcBuildingStorey", "IfcSpatialStructureElement", []string{"Elevation"}},
	{"IfcContext", "IfcObjectDefinition", []string{"ObjectType", "LongName", "Phase", "RepresentationContexts", "UnitsInContext"}},
	{"IfcProject", "IfcContext", nil},

	{"IfcTypeObject", "IfcObjectDefinition", []string{"ApplicableOccurrence", "HasPropertySets"}},
	{"IfcTypeProduct", "IfcTypeObject", []string{"RepresentationMaps", "Tag"}},
	{"IfcElementType", "IfcTypeProduct", []string{"ElementType"}},
	{"IfcBuildingElementType", "IfcElementType", nil},
	{"IfcColumnType", "IfcBuildingElementType", []string{"PredefinedType"}},
	{"IfcDistributionElementType", "IfcElementType", nil},
	{"IfcDistributionFlowElementType", "IfcDistributionElementType", nil},
	{"IfcFlowTerminalType", "IfcDistributionFlowElementType", nil},
	{"IfcCommunicationsApplianceType", "IfcFlowTerminalType", []string{"PredefinedType"}},

	{"IfcRelationship", "IfcRoot", nil},
	{"IfcRelDefines", "IfcRelationship", nil},
	{"IfcRelDefinesByType", "IfcRelDefines", []string{"RelatedObjects", "RelatingType"}},
	{"IfcRelDefinesByProperties", "IfcRelDefines", []string{"RelatedObjects", "RelatingPropertyDefinition"}},
	{"IfcRelAssociates", "IfcRelationship", []string{"RelatedObjects"}},
	{"IfcRelAssociatesMaterial", "IfcRelAssociates", []string{"RelatingMaterial"}},
	{"IfcRelConnects", "IfcRelationship", nil},
	{"IfcRelContainedInSpatialStructure", "IfcRelConnects", []string{"RelatedElements", "RelatingStructure"}},
	{"IfcRelDecomposes", "IfcRelationship", nil},
	{"IfcRelAggregates", "IfcRelDecomposes", []string{"RelatingObject", "RelatedObjects"}},

	{"IfcOwnerHistory", "", []string{"OwningUser", "OwningApplication", "State", "ChangeAction", "LastModifiedDate", "LastModifyingUser", "LastModifyingApplication", "CreationDate"}},
	{"IfcPersonAndOrganization", "", []string{"ThePerson", "TheOrganization", "Roles"}},
	{"IfcPerson", "", []string{"Identification", "FamilyName", "GivenName", "MiddleNames", "PrefixTitles", "SuffixTitles", "Roles", "Addresses"}},
	{"IfcOrganization", "", []string{"Identification", "Name", "Description", "Roles", "Addresses"}},
	{"IfcApplication", "", []string{"ApplicationDeveloper", "Version", "ApplicationFullName", "ApplicationIdentifier"}},
	{"IfcActorRole", "", []string{"Role", "UserDefinedRole", "Description"}},

	{"IfcPropertyDefinition", "IfcRoot", nil},
	{"IfcPropertySetDefinition", "IfcPropertyDefinition", nil},
	{"IfcPropertySet", "IfcPropertySetDefinition", []string{"HasProperties"}},
	{"IfcProperty", "", []string{"Name", "Description"}},
	{"IfcSimpleProperty", "IfcProperty", nil},
	{"IfcPropertySingleValue", "IfcSimpleProperty", []string{"NominalValue", "Unit"}},

	{"IfcMaterialDefinition", "", nil},
	{"IfcMaterial", "IfcMaterialDefinition", []string{"Name", "Description", "Category"}},

	{"IfcRepresentationItem", "", nil},
	{"IfcGeometricRepresentationItem", "IfcRepresentationItem", nil},
	{"IfcPoint", "IfcGeometricRepresentationItem", nil},
	{"IfcCartesianPoint", "IfcPoint", []string{"Coordinates"}},
	{"IfcDirection", "IfcGeometricRepresentationItem", []string{"DirectionRatios"}},
	{"IfcPlacement", "IfcGeometricRepresentationItem", []string{"Location"}},
	{"IfcAxis2Placement3D", "IfcPlacement", []string{"Axis", "RefDirection"}},
	{"IfcObjectPlacement", "", nil},
	{"IfcLocalPlacement", "IfcObjectPlacement", []string{"PlacementRelTo", "RelativePlacement"}},
	{"IfcCurve", "IfcGeometricRepresentationItem", nil},
	{"IfcBoundedCurve", "IfcCurve", nil},
	{"IfcPolyline", "IfcBoundedCurve", []string{"Points"}},
	{"IfcIndexedPolyCurve", "IfcBoundedCurve", []string{"Points", "Segments", "SelfIntersect"}},
	{"IfcCartesianPointList", "IfcGeometricRepresentationItem", nil},
	{"IfcCartesianPointList2D", "IfcCartesianPointList", []string{"CoordList"}},
	{"IfcCartesianPointList3D", "IfcCartesianPointList", []string{"CoordList"}},
	{"IfcSolidModel", "IfcGeometricRepresentationItem", nil},
	{"IfcSweptAreaSolid", "IfcSolidModel", []string{"SweptArea", "Position"}},
	{"IfcExtrudedAreaSolid", "IfcSweptAreaSolid", []string{"ExtrudedDirection", "Depth"}},
	{"IfcProfileDef", "", []string{"ProfileType", "ProfileName"}},
	{"IfcArbitraryClosedProfileDef", "IfcProfileDef", []string{"OuterCurve"}},
	{"IfcArbitraryProfileDefWithVoids", "IfcArbitraryClosedProfileDef", []string{"InnerCurves"}},
	{"IfcParameterizedProfileDef", "IfcProfileDef", []string{"Position"}},
	{"IfcCircleProfileDef", "IfcParameterizedProfileDef", []string{"Radius"}},
	{"IfcCircleHollowProfileDef", "IfcCircleProfileDef", []string{"WallThickness"}},
	{"IfcRectangleProfileDef", "IfcParameterizedProfileDef", []string{"XDim", "YDim"}},
	{"IfcRepresentation", "", []string{"ContextOfItems", "RepresentationIdentifier", "RepresentationType", "Items"}},
	{"IfcShapeModel", "IfcRepresentation", nil},
	{"IfcShapeRepresentation", "IfcShapeModel", nil},
	{"IfcRepresentationMap", "", []string{"MappingOrigin", "MappedRepresentation"}},
	{"IfcProductRepresentation", "", []string{"Name", "Description", "Representations"}},
	{"IfcProductDefinitionShape", "IfcProductRepresentation", nil},
	{"IfcMappedItem", "IfcRepresentationItem", []string{"MappingSource", "MappingTarget"}},
	{"IfcCartesianTransformationOperator", "IfcGeometricRepresentationItem", []string{"Axis1", "Axis2", "LocalOrigin", "Scale"}},
	{"IfcCartesianTransformationOperator3D", "IfcCartesianTransformationOperator", []string{"Axis3"}},
	{"IfcRepresentationContext", "", []string{"ContextIdentifier", "ContextType"}},
	{"IfcGeometricRepresentationContext", "IfcRepresentationContext", []string{"CoordinateSpaceDimension", "Precision", "WorldCoordinateSystem", "TrueNorth"}},
	{"IfcGeometricRepresentationSubContext", "IfcGeometricRepresentationContext", []string{"ParentContext", "TargetScale", "TargetView", "UserDefinedTargetView"}},

	{"IfcUnitAssignment", "", []string{"Units"}},
	{"IfcNamedUnit", "", []string{"Dimensions", "UnitType"}},
	{"IfcSIUnit", "IfcNamedUnit", []string{"Prefix", "Name"}},
	{"IfcConversionBasedUnit", "IfcNamedUnit", []string{"Name", "ConversionFactor"}},
	{"IfcMeasureWithUnit", "", []string{"ValueComponent", "UnitComponent"}},
	{"IfcDimensionalExponents", "", []string{"LengthExponent", "MassExponent", "TimeExponent", "ElectricCurrentExponent", "ThermodynamicTemperatureExponent", "AmountOfSubstanceExponent", "LuminousIntensityExponent"}},
}

var ifc4 = buildSchema("IFC4", ifc4Defs)

// IFC4 returns the shared IFC4 schema registry.
func IFC4() *Schema {
	return ifc4
}

func buildSchema(name string, defs []rawDef) *Schema {
	s := &Schema{name: name, types: make(map[string]*TypeDef, len(defs))}
	for _, rd := range defs {
		s.types[strings.ToUpper(rd.name)] = &TypeDef{Name: rd.name}
	}
	// Second pass: resolve supertypes and flatten attribute lists. The def
	// slice is ordered supertype-first, so a parent's Attrs are complete by
	// the time a subtype reads them.
	for _, rd := range defs {
		d := s.types[strings.ToUpper(rd.name)]
		if rd.super != "" {
			super, ok := s.types[strings.ToUpper(rd.super)]
			if !ok {
				panic("schema: unknown supertype " + rd.super)
			}
			d.Super = super
			d.Attrs = append(d.Attrs, super.Attrs...)
		}
		d.Attrs = append(d.Attrs, rd.attrs...)
	}
	return s
}
