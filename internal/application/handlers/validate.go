package handlers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MiNi89iOS/SkySnap-IFC-001/internal/domain/ports"
	"github.com/MiNi89iOS/SkySnap-IFC-001/internal/domain/services"
)

// ValidateOptions configures a directory validation run.
type ValidateOptions struct {
	Directory string
	Recursive bool
	MaxIssues int
}

// FileValidation is the outcome for one file.
type FileValidation struct {
	Path       string
	ReportPath string
	Invalid    bool // open failed or error-level findings present
}

// ValidateSummary is the outcome of a whole run.
type ValidateSummary struct {
	Files   []FileValidation
	Invalid int
}

// ValidateHandler validates every IFC file in a directory and writes a
// verification report next to each file.
type ValidateHandler struct {
	store     ports.ModelStore
	validator *services.ValidationService
	out       io.Writer
}

// NewValidateHandler creates a new ValidateHandler writing progress to out.
func NewValidateHandler(store ports.ModelStore, validator *services.ValidationService, out io.Writer) *ValidateHandler {
	return &ValidateHandler{
		store:     store,
		validator: validator,
		out:       out,
	}
}

// HandleValidate runs the validation over opts.Directory.
func (h *ValidateHandler) HandleValidate(opts ValidateOptions) (*ValidateSummary, error) {
	if opts.MaxIssues < 1 {
		return nil, preconditionf("max issues must be >= 1, got %d", opts.MaxIssues)
	}
	info, err := os.Stat(opts.Directory)
	if err != nil || !info.IsDir() {
		return nil, preconditionf("directory not found: %s", opts.Directory)
	}

	files, err := findIFCFiles(opts.Directory, opts.Recursive)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", opts.Directory, err)
	}
	if len(files) == 0 {
		return nil, preconditionf("no IFC files found in %s", opts.Directory)
	}

	summary := &ValidateSummary{}
	for _, path := range files {
		result := h.validateFile(path, opts.MaxIssues)
		if result.Invalid {
			summary.Invalid++
		}
		summary.Files = append(summary.Files, result)
	}
	return summary, nil
}

func (h *ValidateHandler) validateFile(path string, maxIssues int) FileValidation {
	name := filepath.Base(path)
	lines := []string{fmt.Sprintf("=== %s ===", name)}
	fmt.Fprintf(h.out, "\n=== %s ===\n", name)

	emit := func(line string) {
		fmt.Fprintln(h.out, line)
		lines = append(lines, line)
	}

	result := FileValidation{Path: path}
	m, err := h.store.Open(path)
	if err != nil {
		emit(fmt.Sprintf("open: FAIL (%v)", err))
		result.Invalid = true
		result.ReportPath = h.writeReport(path, lines)
		return result
	}
	emit(fmt.Sprintf("open: OK (schema=%s)", m.Schema().Name()))

	findings := h.validator.Validate(m)
	levels := services.CountByLevel(findings)
	emit(fmt.Sprintf("validate: OK (findings=%d, errors=%d, warnings=%d, by_level=%s)",
		len(findings), levels[services.LevelError], levels[services.LevelWarning], formatLevels(levels)))

	for i, finding := range findings {
		if i >= maxIssues {
			emit(fmt.Sprintf("- ... and %d more findings", len(findings)-maxIssues))
			break
		}
		emit("- " + formatFinding(finding))
	}

	result.Invalid = levels[services.LevelError] > 0
	result.ReportPath = h.writeReport(path, lines)
	return result
}

func (h *ValidateHandler) writeReport(path string, lines []string) string {
	reportPath := filepath.Join(filepath.Dir(path), stem(path)+"_VERIFICATION.txt")
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(reportPath, []byte(content), 0o644); err != nil {
		fmt.Fprintf(h.out, "warning: could not write report %s: %v\n", reportPath, err)
	}
	return reportPath
}

func formatFinding(f services.Finding) string {
	var extras []string
	if f.Type != "" {
		extras = append(extras, "type="+f.Type)
	}
	if f.Attribute != "" {
		extras = append(extras, "attribute="+f.Attribute)
	}
	if f.Instance != 0 {
		extras = append(extras, fmt.Sprintf("instance=#%d", f.Instance))
	}

	prefix := "[" + strings.ToUpper(f.Level) + "]"
	if len(extras) > 0 {
		prefix += " (" + strings.Join(extras, ", ") + ")"
	}
	return prefix + " " + f.Message
}

func formatLevels(levels map[string]int) string {
	keys := make([]string, 0, len(levels))
	for level := range levels {
		keys = append(keys, level)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, level := range keys {
		parts[i] = fmt.Sprintf("%s:%d", level, levels[level])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
