package handlers

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/MiNi89iOS/SkySnap-IFC-001/internal/domain/geometry"
	"github.com/MiNi89iOS/SkySnap-IFC-001/internal/domain/model"
	"github.com/MiNi89iOS/SkySnap-IFC-001/internal/domain/ports"
	"github.com/MiNi89iOS/SkySnap-IFC-001/internal/domain/services"
)

// InsertOptions configures one antenna insertion.
type InsertOptions struct {
	SegmentPath  string  // target model file
	AntennaPath  string  // donor model file
	OutputPath   string  // merged output file
	HeightMeters float64 // mounting elevation, must be > 0
	AzimuthDeg   float64 // counter-clockwise from the model +X axis
	LegIndex     int     // zero-based pick among elevation candidates
}

// InsertResult reports what was placed where.
type InsertResult struct {
	OutputPath     string
	ColumnHandle   int
	ColumnName     string
	InsertionPoint geometry.Vec3 // in model units
	HeightMeters   float64
	AzimuthDeg     float64
}

// InsertHandler runs the insertion pipeline: solve placement, migrate the
// donor entity graph, rewire its relationships, harmonize bookkeeping,
// write the output. Nothing is written unless every step succeeds.
type InsertHandler struct {
	store     ports.ModelStore
	placement *services.PlacementService
	newID     services.IDGenerator
}

// NewInsertHandler creates a new InsertHandler. A nil generator falls back
// to random IFC global identifiers.
func NewInsertHandler(store ports.ModelStore, placement *services.PlacementService, newID services.IDGenerator) *InsertHandler {
	return &InsertHandler{
		store:     store,
		placement: placement,
		newID:     newID,
	}
}

// HandleInsert performs one insertion.
func (h *InsertHandler) HandleInsert(opts InsertOptions) (*InsertResult, error) {
	if err := checkInsertPreconditions(opts); err != nil {
		return nil, err
	}

	segment, err := h.store.Open(opts.SegmentPath)
	if err != nil {
		return nil, preconditionf("opening segment model: %v", err)
	}
	antenna, err := h.store.Open(opts.AntennaPath)
	if err != nil {
		return nil, preconditionf("opening antenna model: %v", err)
	}

	// The height flag is metric; the placement math runs in model units.
	targetHeight := opts.HeightMeters / services.UnitScale(segment)

	candidate, err := h.placement.Solve(segment, targetHeight, opts.LegIndex)
	if err != nil {
		var badIndex *services.InvalidIndexError
		if errors.Is(err, services.ErrNoCandidate) || errors.As(err, &badIndex) {
			return nil, &PreconditionError{Msg: err.Error()}
		}
		return nil, fmt.Errorf("solving placement: %w", err)
	}

	container := containerOf(segment, candidate.Member)
	if container == nil {
		return nil, preconditionf("column #%d is not contained in a spatial structure", candidate.Member.ID())
	}

	sourceAntenna, err := findSourceAntenna(antenna)
	if err != nil {
		return nil, err
	}

	migrator := services.NewMigrator(h.newID)
	targetAntenna, err := migrator.Migrate(sourceAntenna, segment)
	if err != nil {
		return nil, fmt.Errorf("migrating antenna: %w", err)
	}

	targetHistory := services.FirstOwnerHistory(segment)
	if targetHistory != nil {
		_ = targetAntenna.SetAttr("OwnerHistory", model.RefTo(targetHistory))
	}

	if err := h.placeAntenna(segment, container, targetAntenna, candidate.InsertionPoint, opts.AzimuthDeg); err != nil {
		return nil, err
	}

	if err := services.CopyInverseRelations(antenna, segment, sourceAntenna, targetAntenna, migrator); err != nil {
		return nil, fmt.Errorf("rewiring relationships: %w", err)
	}
	if err := services.AttachToContainer(segment, container, targetAntenna); err != nil {
		return nil, fmt.Errorf("attaching to container: %w", err)
	}
	services.Harmonize(segment, migrator, targetHistory)

	if dir := filepath.Dir(opts.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := h.store.Write(segment, opts.OutputPath); err != nil {
		return nil, fmt.Errorf("writing output model: %w", err)
	}

	name, _ := model.AsString(candidate.Member.Attr("Name"))
	return &InsertResult{
		OutputPath:     opts.OutputPath,
		ColumnHandle:   candidate.Member.ID(),
		ColumnName:     name,
		InsertionPoint: candidate.InsertionPoint,
		HeightMeters:   opts.HeightMeters,
		AzimuthDeg:     opts.AzimuthDeg,
	}, nil
}

// placeAntenna expresses the world-space insertion point and azimuth
// orientation in the container's placement frame and hangs the antenna's
// local placement off it. No frame is ever expressed directly in world
// coordinates.
func (h *InsertHandler) placeAntenna(segment *model.Model, container, antenna *model.Entity, point geometry.Vec3, azimuthDeg float64) error {
	containerPlacement := container.RefEntity("ObjectPlacement")
	ref := geometry.PlacementMatrix(containerPlacement)

	azimuth := azimuthDeg * math.Pi / 180
	xWorld := geometry.Vec3{X: math.Cos(azimuth), Y: math.Sin(azimuth)}
	zWorld := geometry.Vec3{Z: 1}

	pLocal, xLocal, zLocal, err := geometry.WorldToLocal(ref, point, xWorld, zWorld)
	if err != nil {
		return fmt.Errorf("building antenna placement: %w", err)
	}

	location, err := segment.NewEntity("IfcCartesianPoint",
		model.List{model.Real(pLocal.X), model.Real(pLocal.Y), model.Real(pLocal.Z)})
	if err != nil {
		return err
	}
	axis, err := segment.NewEntity("IfcDirection",
		model.List{model.Real(zLocal.X), model.Real(zLocal.Y), model.Real(zLocal.Z)})
	if err != nil {
		return err
	}
	refDirection, err := segment.NewEntity("IfcDirection",
		model.List{model.Real(xLocal.X), model.Real(xLocal.Y), model.Real(xLocal.Z)})
	if err != nil {
		return err
	}
	axisPlacement, err := segment.NewEntity("IfcAxis2Placement3D",
		model.RefTo(location), model.RefTo(axis), model.RefTo(refDirection))
	if err != nil {
		return err
	}
	localPlacement, err := segment.NewEntity("IfcLocalPlacement",
		refValueOrNull(containerPlacement), model.RefTo(axisPlacement))
	if err != nil {
		return err
	}
	return antenna.SetAttr("ObjectPlacement", model.RefTo(localPlacement))
}

func checkInsertPreconditions(opts InsertOptions) error {
	if _, err := os.Stat(opts.SegmentPath); err != nil {
		return preconditionf("segment model not found: %s", opts.SegmentPath)
	}
	if _, err := os.Stat(opts.AntennaPath); err != nil {
		return preconditionf("antenna model not found: %s", opts.AntennaPath)
	}
	if opts.HeightMeters <= 0 {
		return preconditionf("height must be > 0, got %v", opts.HeightMeters)
	}
	return nil
}

// findSourceAntenna picks the donor entity: the first communications
// appliance predefined as ANTENNA, or failing that the first appliance at
// all.
func findSourceAntenna(antenna *model.Model) (*model.Entity, error) {
	appliances := antenna.EntitiesOfType("IfcCommunicationsAppliance")
	if len(appliances) == 0 {
		return nil, preconditionf("antenna model contains no IfcCommunicationsAppliance")
	}
	for _, appliance := range appliances {
		if predefined, _ := model.AsString(appliance.Attr("PredefinedType")); predefined == "ANTENNA" {
			return appliance, nil
		}
	}
	return appliances[0], nil
}

// containerOf resolves the spatial structure the element is contained in,
// via its inverse containment relation.
func containerOf(m *model.Model, element *model.Entity) *model.Entity {
	for _, rel := range m.InverseReferences(element) {
		if !rel.IsA("IfcRelContainedInSpatialStructure") {
			continue
		}
		for _, contained := range model.EntityList(rel.Attr("RelatedElements")) {
			if contained == element {
				return rel.RefEntity("RelatingStructure")
			}
		}
	}
	return nil
}

func refValueOrNull(e *model.Entity) model.Value {
	if e == nil {
		return model.Null{}
	}
	return model.RefTo(e)
}
