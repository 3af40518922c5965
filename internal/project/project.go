// Package project defines the workspace contract: the directory layout,
// starter files, and manifest that `webstarter new` produces and the other
// commands read back.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	// ManifestFile marks a directory as a webstarter workspace.
	ManifestFile = ".webstarter.json"

	// DataDir holds the SQLite database file.
	DataDir = "data"

	// TemplatesDir holds the HTML templates the web app renders.
	TemplatesDir = "templates"

	// StaticDir holds stylesheets and other static assets.
	StaticDir = "static"

	// VenvDir is the virtual environment directory.
	VenvDir = ".venv"

	// DBFile is the database file name inside DataDir.
	DBFile = "database.db"

	// RequirementsFile lists the project dependencies.
	RequirementsFile = "requirements.txt"

	// AppFile is the web application entry point.
	AppFile = "app.py"

	// ViewerFile is the dataframe viewer entry point.
	ViewerFile = "streamlit_app.py"
)

// Dirs lists the workspace directories, in creation order.
var Dirs = []string{DataDir, TemplatesDir, StaticDir}

// StarterFile describes one generated file: where it lands in the workspace
// and which embedded template produces it.
type StarterFile struct {
	RelPath  string
	Template string
}

// StarterFiles returns the files `new` writes, in creation order.
func StarterFiles() []StarterFile {
	return []StarterFile{
		{RelPath: AppFile, Template: "app.py.tmpl"},
		{RelPath: ViewerFile, Template: "streamlit_app.py.tmpl"},
		{RelPath: RequirementsFile, Template: "requirements.txt.tmpl"},
		{RelPath: ".gitignore", Template: "gitignore.tmpl"},
		{RelPath: ".python-version", Template: "python-version.tmpl"},
		{RelPath: "README.md", Template: "readme.md.tmpl"},
		{RelPath: filepath.Join(TemplatesDir, "index.html"), Template: "index.html.tmpl"},
		{RelPath: filepath.Join(StaticDir, "style.css"), Template: "style.css.tmpl"},
	}
}

// DBPath returns the database file path for a workspace directory.
func DBPath(dir string) string {
	return filepath.Join(dir, DataDir, DBFile)
}

// DBRelPath is the database path relative to the workspace root, as it
// appears inside the generated Python sources.
func DBRelPath() string {
	return filepath.ToSlash(filepath.Join(DataDir, DBFile))
}

// IndexTemplatePath returns the path of the HTML template the placeholder
// route renders.
func IndexTemplatePath(dir string) string {
	return filepath.Join(dir, TemplatesDir, "index.html")
}

// StaticPath returns the static asset directory for a workspace.
func StaticPath(dir string) string {
	return filepath.Join(dir, StaticDir)
}

// VenvPath returns the virtual environment directory for a workspace.
func VenvPath(dir string) string {
	return filepath.Join(dir, VenvDir)
}

// VenvBin returns the path of an executable inside the virtual environment.
func VenvBin(dir, name string) string {
	sub := "bin"
	if runtime.GOOS == "windows" {
		sub = "Scripts"
	}
	return filepath.Join(VenvPath(dir), sub, name)
}

// ActivateScript returns the virtualenv activation script path relative
// to the workspace root.
func ActivateScript() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(VenvDir, "Scripts", "activate")
	}
	return filepath.Join(VenvDir, "bin", "activate")
}

// IsWorkspace reports whether dir carries a webstarter manifest.
func IsWorkspace(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ManifestFile))
	return err == nil && !info.IsDir()
}

// ValidateName rejects project names that would break paths or the
// generated starter sources. The name lands inside Python string
// literals and page titles, so only a conservative charset is allowed.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("project name is required")
	}
	if name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("project name %q must be a plain directory name", name)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '_' || r == '-':
		default:
			return fmt.Errorf("project name %q may only contain letters, digits, '.', '_' and '-'", name)
		}
	}
	return nil
}
