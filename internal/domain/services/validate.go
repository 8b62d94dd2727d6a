package services

import (
	"fmt"

	"github.com/MiNi89iOS/SkySnap-IFC-001/internal/domain/model"
)

// Finding levels, from most to least severe.
const (
	LevelError   = "error"
	LevelWarning = "warning"
)

// Finding is one schema-conformance issue in a model.
type Finding struct {
	Level     string
	Type      string
	Attribute string
	Instance  int
	Message   string
}

// ValidationService performs the fixed schema-conformance checks on an
// opened model. Malformed files never get this far: they fail at open.
type ValidationService struct{}

// NewValidationService creates a new ValidationService.
func NewValidationService() *ValidationService {
	return &ValidationService{}
}

// Validate returns the model's findings in ascending handle order.
func (s *ValidationService) Validate(m *model.Model) []Finding {
	var findings []Finding
	seenGUIDs := make(map[string]int)

	for _, e := range m.All() {
		if !e.Def().Root() {
			continue
		}

		guid := e.GlobalID()
		if guid == "" {
			findings = append(findings, Finding{
				Level:     LevelError,
				Type:      e.Type(),
				Attribute: "GlobalId",
				Instance:  e.ID(),
				Message:   "root entity has no GlobalId",
			})
			continue
		}
		if !model.ValidGlobalID(guid) {
			findings = append(findings, Finding{
				Level:     LevelWarning,
				Type:      e.Type(),
				Attribute: "GlobalId",
				Instance:  e.ID(),
				Message:   fmt.Sprintf("GlobalId %q is not a valid 22-character identifier", guid),
			})
		}
		if prev, dup := seenGUIDs[guid]; dup {
			findings = append(findings, Finding{
				Level:     LevelError,
				Type:      e.Type(),
				Attribute: "GlobalId",
				Instance:  e.ID(),
				Message:   fmt.Sprintf("GlobalId duplicates #%d", prev),
			})
		} else {
			seenGUIDs[guid] = e.ID()
		}

		if e.IsA("IfcRelationship") {
			findings = append(findings, s.validateRelationship(e)...)
		}
	}

	if n := len(m.EntitiesOfType("IfcProject")); n != 1 {
		findings = append(findings, Finding{
			Level:   LevelWarning,
			Type:    "IfcProject",
			Message: fmt.Sprintf("model has %d IfcProject entities, expected exactly 1", n),
		})
	}
	return findings
}

// validateRelationship checks that a relationship entity actually relates
// something: empty related lists and null relating objects make the
// relation unreachable by inverse lookup and therefore dead.
func (s *ValidationService) validateRelationship(e *model.Entity) []Finding {
	var findings []Finding
	for _, attr := range []string{"RelatedObjects", "RelatedElements"} {
		if e.Def().AttrIndex(attr) < 0 {
			continue
		}
		if len(model.EntityList(e.Attr(attr))) == 0 {
			findings = append(findings, Finding{
				Level:     LevelWarning,
				Type:      e.Type(),
				Attribute: attr,
				Instance:  e.ID(),
				Message:   "relationship relates no objects",
			})
		}
	}
	for _, attr := range []string{"RelatingType", "RelatingPropertyDefinition", "RelatingMaterial", "RelatingStructure", "RelatingObject"} {
		if e.Def().AttrIndex(attr) < 0 {
			continue
		}
		if model.IsNull(e.Attr(attr)) {
			findings = append(findings, Finding{
				Level:     LevelError,
				Type:      e.Type(),
				Attribute: attr,
				Instance:  e.ID(),
				Message:   "relationship has no relating object",
			})
		}
	}
	return findings
}

// CountByLevel tallies findings per level.
func CountByLevel(findings []Finding) map[string]int {
	counts := make(map[string]int)
	for _, f := range findings {
		counts[f.Level]++
	}
	return counts
}
