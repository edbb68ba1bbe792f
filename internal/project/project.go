// Package project drives the generation of a Python project: it resolves
// current tool versions, expands the resource manifest into write jobs and
// runs them into the target directory.
package project

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	verrors "github.com/JonSteinn/vspy/internal/errors"
	"github.com/JonSteinn/vspy/internal/fileio"
	"github.com/JonSteinn/vspy/internal/output"
	"github.com/JonSteinn/vspy/internal/pipeline"
	"github.com/JonSteinn/vspy/internal/render"
	"github.com/JonSteinn/vspy/internal/templates"
	"github.com/JonSteinn/vspy/internal/versions"
)

// Options configures a Project.
type Options struct {
	// Target is the directory the project is generated into. It must exist.
	Target string

	Metadata Metadata

	// Client performs version lookups. Required.
	Client versions.Client

	// Sources overrides the PyPI and python.org endpoints.
	Sources versions.Sources

	// Resources holds the manifest, dependency list and file resources.
	// Nil selects the embedded resources.
	Resources afero.Fs

	// Output is the filesystem Target lives on. Nil selects the OS filesystem.
	Output afero.Fs

	// Workers bounds concurrent write jobs. Zero means unbounded.
	Workers int
}

// Project generates one project into one target directory.
type Project struct {
	opts     Options
	ctx      *Context
	renderer *render.Renderer
	logger   *log.Logger

	mu      sync.Mutex
	state   State
	written []string
}

// New validates opts and returns a Project in the Initialized state.
func New(opts Options) (*Project, error) {
	if err := templates.ValidateProjectName(opts.Metadata.Name); err != nil {
		return nil, err
	}
	if opts.Target == "" {
		return nil, verrors.NewValidationError("target directory must be set", "", "target", "")
	}
	if opts.Client == nil {
		return nil, errors.New("project: a version client is required")
	}
	if opts.Resources == nil {
		opts.Resources = templates.ResourceFS()
	}
	if opts.Output == nil {
		opts.Output = afero.NewOsFs()
	}

	return &Project{
		opts:     opts,
		ctx:      NewContext(opts.Metadata),
		renderer: render.New(),
		logger:   output.ProjectLogger(opts.Metadata.Name),
		state:    Initialized,
	}, nil
}

// State returns the current lifecycle state.
func (p *Project) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Context returns the project context.
func (p *Project) Context() *Context {
	return p.ctx
}

func (p *Project) transition(to State) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := checkTransition(p.state, to); err != nil {
		return err
	}
	p.logger.Debug("state change", "from", p.state, "to", to)
	p.state = to
	return nil
}

func (p *Project) fail(err error) error {
	if terr := p.transition(Failed); terr != nil {
		return errors.Join(err, terr)
	}
	return err
}

// Start resolves versions and writes every file of the project. It returns
// after all lookups and write jobs have finished. Any error leaves the
// project Failed, possibly with some files written; see Run.
func (p *Project) Start(ctx context.Context) error {
	if err := p.transition(Resolving); err != nil {
		return err
	}
	if err := p.resolve(ctx); err != nil {
		return p.fail(err)
	}

	if err := p.transition(Writing); err != nil {
		return err
	}
	jobs, err := p.Jobs()
	if err != nil {
		return p.fail(err)
	}
	data, err := p.ctx.TemplateData()
	if err != nil {
		return p.fail(err)
	}

	scheduler := &pipeline.Scheduler{
		Source:      p.opts.Resources,
		Destination: p.opts.Output,
		Workers:     p.opts.Workers,
		Renderer:    p.renderer,
	}
	res, err := scheduler.Run(ctx, jobs, data)
	if err != nil {
		return p.fail(err)
	}

	written := make([]string, 0, len(res.Written))
	for _, dst := range res.Written {
		rel, err := filepath.Rel(p.opts.Target, dst)
		if err != nil {
			rel = dst
		}
		written = append(written, filepath.ToSlash(rel))
	}
	slices.Sort(written)

	p.mu.Lock()
	p.written = written
	p.mu.Unlock()

	p.logger.Info("project created", "files", len(written), "path", p.opts.Target)
	return p.transition(Done)
}

func (p *Project) resolve(ctx context.Context) error {
	packages, err := templates.LoadDependencies(p.opts.Resources, templates.DependenciesPath)
	if err != nil {
		return err
	}

	p.logger.Debug("fetching versions", "packages", len(packages))
	resolved, err := versions.FetchAll(ctx, p.opts.Client, packages, p.opts.Sources)
	if err != nil {
		return err
	}
	if len(resolved.PythonVersions) == 0 {
		return fmt.Errorf("%w: no active Python 3 releases listed", verrors.ErrNotFound)
	}

	pyVersions, err := versions.SortVersions(resolved.PythonVersions)
	if err != nil {
		return err
	}
	p.logger.Debug("versions resolved", "python", pyVersions)
	return p.ctx.Resolve(pyVersions, resolved.Dependencies)
}

// Jobs expands the manifest into write jobs rooted at the target directory.
// Templated destinations are rendered with the project name only. It fails
// with a *errors.StateError before versions are resolved.
func (p *Project) Jobs() ([]pipeline.WriteJob, error) {
	if !p.ctx.Resolved() {
		return nil, &verrors.StateError{From: p.State().String(), To: Writing.String()}
	}

	entries, err := templates.LoadManifest(p.opts.Resources, templates.ManifestPath)
	if err != nil {
		return nil, err
	}

	pathData := p.ctx.PathData()
	seen := make(map[string]string, len(entries))
	jobs := make([]pipeline.WriteJob, 0, len(entries))
	for _, e := range entries {
		dst := e.Dst
		if e.PathIsTemplate {
			if dst, err = p.renderer.Render(e.Dst, e.Dst, pathData); err != nil {
				return nil, err
			}
		}
		dst = path.Clean(dst)
		if !filepath.IsLocal(filepath.FromSlash(dst)) {
			return nil, fmt.Errorf("%w: %s resolves to %s, outside the target directory", verrors.ErrValidation, e.Dst, dst)
		}
		if prev, ok := seen[dst]; ok {
			return nil, fmt.Errorf("%w: %s and %s both write %s", verrors.ErrValidation, prev, e.Src, dst)
		}
		seen[dst] = e.Src

		jobs = append(jobs, pipeline.WriteJob{
			Source:      e.Src,
			Destination: filepath.Join(p.opts.Target, filepath.FromSlash(dst)),
			IsTemplate:  e.IsTemplate,
		})
	}
	return jobs, nil
}

// Cleanup removes everything inside the target directory and keeps the
// directory itself. Calling it again is a no-op.
func (p *Project) Cleanup() error {
	p.logger.Debug("cleaning target", "path", p.opts.Target)
	return fileio.CleanDir(p.opts.Output, p.opts.Target)
}

// Run calls Start and, if the project ends up Failed, cleans the target
// directory. Start has returned, and with it every lookup and write job,
// before Cleanup runs. A Start rejected by the state machine, such as a
// second Run, leaves the target untouched.
func (p *Project) Run(ctx context.Context) error {
	err := p.Start(ctx)
	if err == nil || p.State() != Failed {
		return err
	}
	if cerr := p.Cleanup(); cerr != nil {
		return errors.Join(err, fmt.Errorf("cleanup: %w", cerr))
	}
	return err
}

// Written returns the generated files relative to the target, sorted.
func (p *Project) Written() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.written)
}

// ValidateTarget checks that dir exists and is empty.
func ValidateTarget(fsys afero.Fs, dir string) error {
	exists, err := afero.DirExists(fsys, dir)
	if err != nil {
		return &verrors.IOError{Op: "stat", Path: dir, Err: err}
	}
	if !exists {
		return verrors.NewValidationError(
			"target directory does not exist", dir, "target",
			"create the directory first or pass --target",
		)
	}

	empty, err := fileio.IsEmptyDir(fsys, dir)
	if err != nil {
		return err
	}
	if !empty {
		return verrors.NewValidationError(
			"target directory is not empty", dir, "target",
			"vspy only generates into an empty directory",
		)
	}
	return nil
}
