package scaffold

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/unqdlphn/web-app-starter/internal/project"
	"github.com/unqdlphn/web-app-starter/internal/store"
)

// Report summarizes the state of a project workspace.
type Report struct {
	Dir      string
	Healthy  bool
	Message  string
	Checks   []string
	Manifest *project.Manifest // nil when the manifest is missing or unreadable
}

// Inspect checks a project workspace and reports what is present and
// what is missing. It never mutates the workspace.
func (s *Scaffolder) Inspect(dir string) *Report {
	report := &Report{
		Dir:     dir,
		Healthy: true,
	}

	// Check 1: Manifest
	m, err := project.ReadManifest(dir)
	switch {
	case err == nil:
		report.Manifest = &m
		report.Checks = append(report.Checks, fmt.Sprintf("✓ Manifest: %s (created %s)", m.Name, humanize.Time(m.CreatedAt)))
	case errors.Is(err, fs.ErrNotExist):
		report.Healthy = false
		report.Message = "not a webstarter project (missing manifest)"
		report.Checks = append(report.Checks, fmt.Sprintf("✗ Manifest: %s not found", project.ManifestFile))
	default:
		// The manifest is there but cannot be read or decoded. That is
		// a broken workspace, not a foreign directory.
		report.Healthy = false
		report.Checks = append(report.Checks, fmt.Sprintf("✗ Manifest: %v", err))
	}

	// Check 2: Directory layout
	for _, d := range project.Dirs {
		info, err := os.Stat(filepath.Join(dir, d))
		if err != nil || !info.IsDir() {
			report.Healthy = false
			report.Checks = append(report.Checks, fmt.Sprintf("✗ Directory: %s/ missing", d))
			continue
		}
		report.Checks = append(report.Checks, fmt.Sprintf("✓ Directory: %s/", d))
	}

	// Check 3: Starter files
	for _, f := range project.StarterFiles() {
		if _, err := os.Stat(filepath.Join(dir, f.RelPath)); err != nil {
			report.Healthy = false
			report.Checks = append(report.Checks, fmt.Sprintf("✗ File: %s missing", f.RelPath))
			continue
		}
		report.Checks = append(report.Checks, fmt.Sprintf("✓ File: %s", f.RelPath))
	}

	// Check 4: Virtualenv
	if info, err := os.Stat(project.VenvPath(dir)); err == nil && info.IsDir() {
		report.Checks = append(report.Checks, fmt.Sprintf("✓ Virtualenv: %s/", project.VenvDir))
	} else {
		report.Checks = append(report.Checks, fmt.Sprintf("✗ Virtualenv: %s/ missing", project.VenvDir))
	}

	// Check 5: Git repository
	if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
		report.Checks = append(report.Checks, "✓ Git: repository initialized")
	} else {
		report.Checks = append(report.Checks, "✗ Git: not a repository")
	}

	// Check 6: Database
	s.inspectDatabase(dir, report)

	if report.Message == "" {
		if report.Healthy {
			report.Message = "project looks good"
		} else {
			report.Message = "project has failing checks"
		}
	}

	return report
}

func (s *Scaffolder) inspectDatabase(dir string, report *Report) {
	dbPath := project.DBPath(dir)

	exists, err := store.CheckExists(dbPath)
	if err != nil {
		report.Healthy = false
		report.Checks = append(report.Checks, fmt.Sprintf("✗ Database: %v", err))
		return
	}
	if !exists {
		report.Checks = append(report.Checks, fmt.Sprintf("✗ Database: %s missing", project.DBRelPath()))
		return
	}

	size, err := store.FileSize(dbPath)
	if err != nil {
		size = 0
	}

	st := s.OpenStore(dbPath)
	if err := st.Open(); err != nil {
		report.Healthy = false
		report.Checks = append(report.Checks, fmt.Sprintf("✗ Database: cannot open: %v", err))
		return
	}
	defer st.Close()

	state, err := st.CheckState()
	if err != nil {
		report.Healthy = false
		report.Checks = append(report.Checks, fmt.Sprintf("✗ Database: %v", err))
		return
	}

	line := fmt.Sprintf("✓ Database: %s (%s, %s)", project.DBRelPath(), humanize.Bytes(uint64(size)), state)
	if state != store.StateReady {
		report.Healthy = false
		line = fmt.Sprintf("✗ Database: %s (%s, %s)", project.DBRelPath(), humanize.Bytes(uint64(size)), state)
	} else if count, err := st.Count(store.PlaceholderTable); err == nil {
		line = fmt.Sprintf("✓ Database: %s (%s, %s rows)", project.DBRelPath(), humanize.Bytes(uint64(size)), humanize.Comma(count))
	}
	report.Checks = append(report.Checks, line)
}

// Print writes the report in the check-per-line format used by the
// status subcommand.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "Project status: %s\n\n", r.Dir)
	for _, check := range r.Checks {
		fmt.Fprintf(w, "  %s\n", check)
	}
	fmt.Fprintf(w, "\n%s\n", r.Message)
}
