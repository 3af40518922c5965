// Package scaffold creates and inspects project workspaces. It drives
// the external python and git tools through a shell.Runner so runs can
// be stubbed in tests and previewed with dry-run.
package scaffold

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/unqdlphn/web-app-starter/internal/logger"
	"github.com/unqdlphn/web-app-starter/internal/project"
	"github.com/unqdlphn/web-app-starter/internal/shell"
	"github.com/unqdlphn/web-app-starter/internal/store"
	"github.com/unqdlphn/web-app-starter/internal/store/sqlite"
)

// Options controls what Run creates.
type Options struct {
	Name          string // project name, becomes the directory name
	Dir           string // parent directory the project is created under
	PythonBin     string // python interpreter used to create the virtualenv
	PythonVersion string // version recorded in .python-version
	Remote        string // git remote URL, added as origin when set
	Push          bool   // push the initial commit to origin
	SkipGit       bool
	SkipVenv      bool
	SkipDB        bool
	Force         bool // overwrite starter files in a non-empty directory
	DryRun        bool
}

// Scaffolder creates new project workspaces.
type Scaffolder struct {
	Runner  shell.Runner
	Log     logger.Logger
	Out     io.Writer // where progress is written (os.Stdout by default)
	Version string    // tool version recorded in the manifest

	// OpenStore returns the store used to create the project database.
	// Overridable in tests.
	OpenStore func(dbPath string) store.Store
}

// New creates a Scaffolder with the given runner. A nil logger falls
// back to the package default and a nil writer to os.Stdout.
func New(runner shell.Runner, log logger.Logger, out io.Writer, version string) *Scaffolder {
	if log == nil {
		log = logger.Default
	}
	if out == nil {
		out = os.Stdout
	}
	s := &Scaffolder{
		Runner:  runner,
		Log:     log,
		Out:     out,
		Version: version,
	}
	s.OpenStore = func(dbPath string) store.Store {
		return sqlite.New(dbPath, log)
	}
	return s
}

// Run creates the project workspace and returns its path.
func (s *Scaffolder) Run(ctx context.Context, opts Options) (string, error) {
	if err := project.ValidateName(opts.Name); err != nil {
		return "", err
	}

	dir := filepath.Join(opts.Dir, opts.Name)
	fmt.Fprintf(s.Out, "Creating project %s...\n", opts.Name)

	// Step 1: Claim the project directory
	if err := s.claimDirectory(dir, opts); err != nil {
		return "", fmt.Errorf("failed to claim project directory: %w", err)
	}

	// Step 2: Create the directory layout
	if err := s.createLayout(dir, opts); err != nil {
		return "", fmt.Errorf("failed to create project layout: %w", err)
	}

	// Step 3: Write the starter files
	if err := s.writeStarterFiles(dir, opts); err != nil {
		return "", fmt.Errorf("failed to write starter files: %w", err)
	}

	// Step 4: Write the project manifest
	if err := s.writeManifest(dir, opts); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}

	// Step 5: Create the virtualenv and install dependencies
	if !opts.SkipVenv {
		if err := s.createVenv(ctx, dir, opts); err != nil {
			return "", fmt.Errorf("failed to create virtualenv: %w", err)
		}
	}

	// Step 6: Create and seed the database
	if !opts.SkipDB {
		if err := s.createDatabase(dir, opts); err != nil {
			return "", fmt.Errorf("failed to create database: %w", err)
		}
	}

	// Step 7: Initialize the git repository
	if !opts.SkipGit {
		if err := s.initGit(ctx, dir, opts); err != nil {
			return "", fmt.Errorf("failed to initialize git repository: %w", err)
		}
	}

	fmt.Fprintf(s.Out, "\n✓ Project %s created at %s\n", opts.Name, dir)
	fmt.Fprintln(s.Out, "\nNext steps:")
	fmt.Fprintf(s.Out, "  cd %s\n", dir)
	if !opts.SkipVenv {
		activate := project.ActivateScript()
		if runtime.GOOS != "windows" {
			activate = "source " + activate
		}
		fmt.Fprintf(s.Out, "  %s\n", activate)
		fmt.Fprintln(s.Out, "  flask run")
	}

	return dir, nil
}

// claimDirectory makes sure the target directory is usable. An existing
// empty directory is fine; a non-empty one needs force.
func (s *Scaffolder) claimDirectory(dir string, opts Options) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s exists and is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	if len(entries) > 0 && !opts.Force {
		return fmt.Errorf("%s already exists and is not empty (use --force to scaffold anyway)", dir)
	}
	return nil
}

func (s *Scaffolder) createLayout(dir string, opts Options) error {
	fmt.Fprintln(s.Out, "Creating directory layout...")

	dirs := append([]string{dir}, projectSubdirs(dir)...)
	for _, d := range dirs {
		if opts.DryRun {
			fmt.Fprintf(s.Out, "  [dry-run] would create %s\n", d)
			continue
		}
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}

	fmt.Fprintln(s.Out, "  ✓ Directory layout created")
	return nil
}

func projectSubdirs(dir string) []string {
	subdirs := make([]string, len(project.Dirs))
	for i, d := range project.Dirs {
		subdirs[i] = filepath.Join(dir, d)
	}
	return subdirs
}

func (s *Scaffolder) writeStarterFiles(dir string, opts Options) error {
	fmt.Fprintln(s.Out, "Writing starter files...")

	params := project.Params{
		Name:          opts.Name,
		PythonVersion: opts.PythonVersion,
		DBRelPath:     project.DBRelPath(),
		TableName:     store.PlaceholderTable,
	}

	files := project.StarterFiles()
	for _, f := range files {
		content, err := project.Render(f.Template, params)
		if err != nil {
			return err
		}

		target := filepath.Join(dir, f.RelPath)
		if opts.DryRun {
			fmt.Fprintf(s.Out, "  [dry-run] would write %s\n", target)
			continue
		}

		if _, err := os.Stat(target); err == nil && !opts.Force {
			return fmt.Errorf("refusing to overwrite %s (use --force)", target)
		}
		if err := os.WriteFile(target, content, 0o644); err != nil {
			return err
		}
	}

	fmt.Fprintf(s.Out, "  ✓ Starter files written (%d files)\n", len(files))
	return nil
}

func (s *Scaffolder) writeManifest(dir string, opts Options) error {
	if opts.DryRun {
		fmt.Fprintf(s.Out, "  [dry-run] would write %s\n", filepath.Join(dir, project.ManifestFile))
		return nil
	}

	m := project.NewManifest(opts.Name, opts.PythonVersion, s.Version)
	if err := project.WriteManifest(dir, m); err != nil {
		return err
	}

	fmt.Fprintln(s.Out, "  ✓ Manifest written")
	return nil
}

func (s *Scaffolder) createVenv(ctx context.Context, dir string, opts Options) error {
	fmt.Fprintf(s.Out, "Creating virtualenv with %s...\n", opts.PythonBin)

	if _, err := s.Runner.LookPath(opts.PythonBin); err != nil {
		return fmt.Errorf("%s not found on PATH (install Python or pass --python): %w", opts.PythonBin, err)
	}

	if _, err := s.Runner.Run(ctx, dir, opts.PythonBin, "-m", "venv", project.VenvDir); err != nil {
		return err
	}
	fmt.Fprintf(s.Out, "  ✓ Virtualenv created (%s)\n", project.VenvDir)

	pip := project.VenvBin(dir, "pip")
	if _, err := s.Runner.Run(ctx, dir, pip, "install", "-r", project.RequirementsFile); err != nil {
		return err
	}
	fmt.Fprintln(s.Out, "  ✓ Dependencies installed")

	return nil
}

func (s *Scaffolder) createDatabase(dir string, opts Options) error {
	dbPath := project.DBPath(dir)
	fmt.Fprintf(s.Out, "Creating database %s...\n", project.DBRelPath())

	if opts.DryRun {
		fmt.Fprintf(s.Out, "  [dry-run] would create %s\n", dbPath)
		return nil
	}

	st := s.OpenStore(dbPath)
	if err := st.Open(); err != nil {
		return err
	}
	defer st.Close()

	if err := st.Migrate(); err != nil {
		return err
	}

	added, err := st.Seed()
	if err != nil {
		return err
	}

	fmt.Fprintf(s.Out, "  ✓ Database created and seeded (%d rows)\n", added)
	return nil
}

func (s *Scaffolder) initGit(ctx context.Context, dir string, opts Options) error {
	fmt.Fprintln(s.Out, "Initializing git repository...")

	if _, err := s.Runner.LookPath("git"); err != nil {
		return fmt.Errorf("git not found on PATH (install git or pass --skip-git): %w", err)
	}

	// Pin the initial branch name; a stock git init would pick whatever
	// init.defaultBranch says, and the push below targets main.
	steps := [][]string{
		{"init", "-b", "main"},
		{"add", "."},
		{"commit", "-m", "Initial commit"},
	}
	if opts.Remote != "" {
		steps = append(steps, []string{"remote", "add", "origin", opts.Remote})
	}
	if opts.Push {
		if opts.Remote == "" {
			return fmt.Errorf("cannot push without a remote (pass --remote)")
		}
		steps = append(steps, []string{"push", "-u", "origin", "main"})
	}

	for _, args := range steps {
		if _, err := s.Runner.Run(ctx, dir, "git", args...); err != nil {
			return err
		}
	}

	fmt.Fprintln(s.Out, "  ✓ Git repository initialized")
	return nil
}
