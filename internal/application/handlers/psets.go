package handlers

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MiNi89iOS/SkySnap-IFC-001/internal/domain/ports"
	"github.com/MiNi89iOS/SkySnap-IFC-001/internal/domain/services"
)

// PsetsOptions configures a property-set inventory run.
type PsetsOptions struct {
	Directory     string
	OutputDir     string
	Recursive     bool
	MaxProperties int
}

// FilePsetReport is the outcome for one file.
type FilePsetReport struct {
	Path       string
	ReportPath string
	OK         bool
	UniqueSets int
}

// PsetsSummary is the outcome of a whole run.
type PsetsSummary struct {
	Files  []FilePsetReport
	Failed int
}

// PsetsHandler writes a property-set inventory report for every IFC file
// in a directory.
type PsetsHandler struct {
	store ports.ModelStore
	psets *services.PsetService
}

// NewPsetsHandler creates a new PsetsHandler.
func NewPsetsHandler(store ports.ModelStore, psets *services.PsetService) *PsetsHandler {
	return &PsetsHandler{
		store: store,
		psets: psets,
	}
}

// HandlePsets runs the inventory over opts.Directory.
func (h *PsetsHandler) HandlePsets(opts PsetsOptions) (*PsetsSummary, error) {
	if opts.MaxProperties < 1 {
		return nil, preconditionf("max properties must be >= 1, got %d", opts.MaxProperties)
	}
	info, err := os.Stat(opts.Directory)
	if err != nil || !info.IsDir() {
		return nil, preconditionf("directory not found: %s", opts.Directory)
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	files, err := findIFCFiles(opts.Directory, opts.Recursive)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", opts.Directory, err)
	}
	if len(files) == 0 {
		return nil, preconditionf("no IFC files found in %s", opts.Directory)
	}

	summary := &PsetsSummary{}
	for _, path := range files {
		result := h.reportFile(path, opts)
		if !result.OK {
			summary.Failed++
		}
		summary.Files = append(summary.Files, result)
	}
	return summary, nil
}

func (h *PsetsHandler) reportFile(path string, opts PsetsOptions) FilePsetReport {
	reportPath := filepath.Join(opts.OutputDir, stem(path)+"_PROPERTYSETS.txt")
	result := FilePsetReport{Path: path, ReportPath: reportPath}

	m, err := h.store.Open(path)
	if err != nil {
		writeLines(reportPath, []string{
			"FILE: " + filepath.Base(path),
			fmt.Sprintf("open: FAIL (%v)", err),
		})
		return result
	}

	inventory := h.psets.Collect(m)
	lines := renderPsetReport(filepath.Base(path), m.Schema().Name(), inventory, opts.MaxProperties)
	writeLines(reportPath, lines)

	result.OK = true
	result.UniqueSets = len(inventory.ByName)
	return result
}

// renderPsetReport lays the inventory out in the fixed report format:
// header counters, then per-set blocks sorted case-insensitively by name.
func renderPsetReport(fileName, schema string, inv *services.PsetInventory, maxProperties int) []string {
	lines := []string{
		"FILE: " + fileName,
		"SCHEMA: " + schema,
		fmt.Sprintf("IFCPROPERTYSET_INSTANCES: %d", inv.InstanceCount),
		fmt.Sprintf("UNIQUE_PROPERTYSET_NAMES: %d", len(inv.ByName)),
		fmt.Sprintf("UNASSIGNED_IFCPROPERTYSET_INSTANCES: %d", inv.UnassignedCount),
		"",
		"PROPERTY_SETS:",
	}
	if len(inv.ByName) == 0 {
		return append(lines, "none")
	}

	names := make([]string, 0, len(inv.ByName))
	for name := range inv.ByName {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	for i, name := range names {
		stats := inv.ByName[name]
		lines = append(lines,
			fmt.Sprintf("%d. %s", i+1, name),
			fmt.Sprintf("   definitions: %d", stats.Definitions),
			fmt.Sprintf("   assigned_items: %d", stats.AssignedItems),
		)

		if len(stats.EntityTypeCounts) > 0 {
			lines = append(lines, "   entity_types: "+formatEntityTypes(stats.EntityTypeCounts))
		} else {
			lines = append(lines, "   entity_types: none")
		}

		properties := make([]string, 0, len(stats.PropertyNames))
		for prop := range stats.PropertyNames {
			properties = append(properties, prop)
		}
		if len(properties) == 0 {
			lines = append(lines, "   properties(0): none")
			continue
		}
		sort.Slice(properties, func(i, j int) bool {
			return strings.ToLower(properties[i]) < strings.ToLower(properties[j])
		})
		displayed := properties
		suffix := ""
		if len(properties) > maxProperties {
			displayed = properties[:maxProperties]
			suffix = fmt.Sprintf(" ... (+%d more)", len(properties)-maxProperties)
		}
		lines = append(lines, fmt.Sprintf("   properties(%d): %s%s",
			len(properties), strings.Join(displayed, ", "), suffix))
	}
	return lines
}

// formatEntityTypes orders type counters by descending count, then name.
func formatEntityTypes(counts map[string]int) string {
	type typeCount struct {
		name  string
		count int
	}
	ordered := make([]typeCount, 0, len(counts))
	for name, count := range counts {
		ordered = append(ordered, typeCount{name, count})
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].count != ordered[j].count {
			return ordered[i].count > ordered[j].count
		}
		return ordered[i].name < ordered[j].name
	})

	parts := make([]string, len(ordered))
	for i, tc := range ordered {
		parts[i] = fmt.Sprintf("%s:%d", tc.name, tc.count)
	}
	return strings.Join(parts, ", ")
}

func writeLines(path string, lines []string) {
	_ = os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644)
}
