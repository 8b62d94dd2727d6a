package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MiNi89iOS/SkySnap-IFC-001/internal/domain/model"
)

func findingsFor(findings []Finding, instance int) []Finding {
	var out []Finding
	for _, f := range findings {
		if f.Instance == instance {
			out = append(out, f)
		}
	}
	return out
}

func TestValidateCleanModel(t *testing.T) {
	fix := newSegmentFixture(t)
	assert.Empty(t, NewValidationService().Validate(fix.m))
}

func TestValidateMissingGlobalID(t *testing.T) {
	fix := newSegmentFixture(t)
	bare := mustEntity(t, fix.m, "IfcColumn")

	findings := findingsFor(NewValidationService().Validate(fix.m), bare.ID())
	require.Len(t, findings, 1)
	assert.Equal(t, LevelError, findings[0].Level)
	assert.Equal(t, "GlobalId", findings[0].Attribute)
	assert.Equal(t, "root entity has no GlobalId", findings[0].Message)
}

func TestValidateMalformedGlobalID(t *testing.T) {
	fix := newSegmentFixture(t)
	odd := mustEntity(t, fix.m, "IfcColumn",
		model.Str("not-a-valid-identifier!"), model.RefTo(fix.history))

	findings := findingsFor(NewValidationService().Validate(fix.m), odd.ID())
	require.Len(t, findings, 1)
	assert.Equal(t, LevelWarning, findings[0].Level)
	assert.Contains(t, findings[0].Message, "not a valid 22-character identifier")
}

func TestValidateDuplicateGlobalID(t *testing.T) {
	fix := newSegmentFixture(t)
	guid := newGUID()
	first := mustEntity(t, fix.m, "IfcColumn", guid, model.RefTo(fix.history))
	second := mustEntity(t, fix.m, "IfcColumn", guid, model.RefTo(fix.history))

	findings := findingsFor(NewValidationService().Validate(fix.m), second.ID())
	require.Len(t, findings, 1)
	assert.Equal(t, LevelError, findings[0].Level)
	assert.Equal(t, fmt.Sprintf("GlobalId duplicates #%d", first.ID()), findings[0].Message)
}

func TestValidateDeadRelationship(t *testing.T) {
	fix := newSegmentFixture(t)
	rel := mustEntity(t, fix.m, "IfcRelDefinesByType",
		newGUID(), model.RefTo(fix.history), model.Null{}, model.Null{},
		model.List{}, model.Null{})

	findings := findingsFor(NewValidationService().Validate(fix.m), rel.ID())
	require.Len(t, findings, 2)

	byAttr := make(map[string]Finding)
	for _, f := range findings {
		byAttr[f.Attribute] = f
	}
	assert.Equal(t, LevelWarning, byAttr["RelatedObjects"].Level)
	assert.Equal(t, "relationship relates no objects", byAttr["RelatedObjects"].Message)
	assert.Equal(t, LevelError, byAttr["RelatingType"].Level)
	assert.Equal(t, "relationship has no relating object", byAttr["RelatingType"].Message)
}

func TestValidateProjectCount(t *testing.T) {
	m := model.New(model.IFC4())
	history := newOwnerHistory(t, m, "Kowalski")
	mustEntity(t, m, "IfcBuildingStorey", newGUID(), model.RefTo(history))

	findings := NewValidationService().Validate(m)
	require.Len(t, findings, 1)
	assert.Equal(t, LevelWarning, findings[0].Level)
	assert.Equal(t, "IfcProject", findings[0].Type)
	assert.Contains(t, findings[0].Message, "0 IfcProject")
}

func TestValidateOrdering(t *testing.T) {
	fix := newSegmentFixture(t)
	low := mustEntity(t, fix.m, "IfcColumn")
	high := mustEntity(t, fix.m, "IfcColumn")

	findings := NewValidationService().Validate(fix.m)
	require.Len(t, findings, 2)
	assert.Equal(t, low.ID(), findings[0].Instance)
	assert.Equal(t, high.ID(), findings[1].Instance)
}

func TestCountByLevel(t *testing.T) {
	counts := CountByLevel([]Finding{
		{Level: LevelError},
		{Level: LevelWarning},
		{Level: LevelError},
	})
	assert.Equal(t, map[string]int{LevelError: 2, LevelWarning: 1}, counts)
}
