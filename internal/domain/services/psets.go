package services

import (
	"strings"

	"github.com/MiNi89iOS/SkySnap-IFC-001/internal/domain/model"
)

// PsetStats aggregates the usage of one property-set name across a model.
type PsetStats struct {
	Definitions      int
	AssignedItems    int
	EntityTypeCounts map[string]int
	PropertyNames    map[string]bool
}

// PsetInventory is the property-set usage summary of one model.
type PsetInventory struct {
	ByName          map[string]*PsetStats
	InstanceCount   int
	UnassignedCount int
}

const (
	noName          = "<NO_NAME>"
	unnamedProperty = "<UNNAMED_PROPERTY>"
)

// PsetService builds property-set inventories.
type PsetService struct{}

// NewPsetService creates a new PsetService.
func NewPsetService() *PsetService {
	return &PsetService{}
}

// Collect walks every property set, its occurrence assignments
// (IfcRelDefinesByProperties) and its type-level assignments
// (IfcTypeObject.HasPropertySets), grouping stats by set name.
func (s *PsetService) Collect(m *model.Model) *PsetInventory {
	inv := &PsetInventory{ByName: make(map[string]*PsetStats)}
	assigned := make(map[int]bool)
	defined := make(map[int]bool)

	for _, pset := range m.EntitiesOfType("IfcPropertySet") {
		defined[pset.ID()] = true
		stats := inv.stats(psetName(pset))
		stats.Definitions++

		for _, prop := range model.EntityList(pset.Attr("HasProperties")) {
			name, _ := model.AsString(prop.Attr("Name"))
			name = strings.TrimSpace(name)
			if name == "" {
				name = unnamedProperty
			}
			stats.PropertyNames[name] = true
		}
	}

	for _, rel := range m.EntitiesOfType("IfcRelDefinesByProperties") {
		definition := rel.RefEntity("RelatingPropertyDefinition")
		if definition == nil || !definition.IsA("IfcPropertySet") {
			continue
		}
		stats := inv.stats(psetName(definition))
		related := model.EntityList(rel.Attr("RelatedObjects"))
		stats.AssignedItems += len(related)
		for _, item := range related {
			stats.EntityTypeCounts[item.Type()]++
		}
		assigned[definition.ID()] = true
	}

	for _, typeObj := range m.EntitiesOfType("IfcTypeObject") {
		for _, definition := range model.EntityList(typeObj.Attr("HasPropertySets")) {
			if !definition.IsA("IfcPropertySet") {
				continue
			}
			stats := inv.stats(psetName(definition))
			stats.AssignedItems++
			stats.EntityTypeCounts[typeObj.Type()]++
			assigned[definition.ID()] = true
		}
	}

	inv.InstanceCount = len(defined)
	for id := range defined {
		if !assigned[id] {
			inv.UnassignedCount++
		}
	}
	return inv
}

func (inv *PsetInventory) stats(name string) *PsetStats {
	st := inv.ByName[name]
	if st == nil {
		st = &PsetStats{
			EntityTypeCounts: make(map[string]int),
			PropertyNames:    make(map[string]bool),
		}
		inv.ByName[name] = st
	}
	return st
}

func psetName(pset *model.Entity) string {
	name, _ := model.AsString(pset.Attr("Name"))
	name = strings.TrimSpace(name)
	if name == "" {
		return noName
	}
	return name
}
