package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	verrors "github.com/JonSteinn/vspy/internal/errors"
	"github.com/JonSteinn/vspy/internal/output"
	"github.com/JonSteinn/vspy/internal/project"
	"github.com/JonSteinn/vspy/internal/templates"
	"github.com/JonSteinn/vspy/internal/versions"
)

// outputFs is where projects are written. Tests swap it for a memory fs.
var outputFs afero.Fs = afero.NewOsFs()

func runCreate(cmd *cobra.Command, opts *rootOptions) error {
	if opts.cfgErr != nil {
		return withExitCode(fmt.Errorf("loading config: %w", opts.cfgErr), false)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stdout := cmd.OutOrStdout()

	target, err := filepath.Abs(opts.target)
	if err != nil {
		return withExitCode(fmt.Errorf("resolving target %s: %w", opts.target, err), false)
	}
	if err := project.ValidateTarget(outputFs, target); err != nil {
		fmt.Fprintln(stdout, "Target is either not a folder or nonempty.")
		return withExitCode(err, false)
	}

	meta, err := opts.collectMetadata(cmd, NewPrompter(cmd.InOrStdin(), stdout))
	if err != nil {
		return withExitCode(err, false)
	}

	pool := versions.NewPool(opts.cfg.PoolOptions())
	defer pool.Close()

	p, err := project.New(project.Options{
		Target:   target,
		Metadata: meta,
		Client:   pool,
		Sources:  opts.cfg.VersionSources(),
		Output:   outputFs,
		Workers:  opts.cfg.Workers,
	})
	if err != nil {
		return withExitCode(err, false)
	}

	fmt.Fprintf(stdout, "Creating project in %s\n", filepath.ToSlash(target))
	err = output.RunWithSpinner(ctx, p.Run,
		output.WithTitle("Fetching latest versions for dev dependencies..."),
		output.WithSpinner(!opts.verbose && output.IsTTY() && output.IsInteractive()),
	)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(stdout, "cancelled")
		output.Info("removed partial project", "target", target)
		return &verrors.ExitError{Code: ExitInterrupted, Err: err, Printed: true}
	}
	if err != nil {
		output.Error("project creation failed", "target", target, "state", p.State())
		return withExitCode(err, false)
	}

	fmt.Fprintln(stdout, output.FormatCheckmark(fmt.Sprintf("Created %s", output.StyleNoun.Render(meta.Name))))
	fmt.Fprintln(stdout, output.RenderSimpleTree(filepath.Base(target), p.Written()))
	if opts.verbose {
		fmt.Fprintln(stdout, output.RenderVersionTable(p.Context().Dependencies(), p.Context().PyVersions()))
	}
	return nil
}

// collectMetadata fills in project metadata from flags, prompting for
// anything missing. The name is always required; the optional fields are
// prompted unless --skip is set, with config values as defaults.
func (o *rootOptions) collectMetadata(cmd *cobra.Command, p *Prompter) (project.Metadata, error) {
	meta := project.Metadata{
		Name:        o.name,
		Author:      o.cfg.Author,
		Email:       o.cfg.Email,
		Repository:  o.cfg.Repository,
		Description: o.description,
		Keywords:    project.NormalizeKeywords(o.keywords),
	}

	if err := templates.ValidateProjectName(meta.Name); err != nil {
		if cmd.Flags().Changed("name") {
			fmt.Fprintln(p.out, "Name contains invalid characters")
		}
		name, err := p.AskName()
		if err != nil {
			return project.Metadata{}, err
		}
		meta.Name = name
	}

	optional := []struct {
		flag   string
		prompt string
		value  *string
		source string
	}{
		{"description", "Enter project description", &meta.Description, o.description},
		{"repository", "Enter repository", &meta.Repository, o.repository},
		{"author", "Enter author", &meta.Author, o.author},
		{"email", "Enter email", &meta.Email, o.email},
		{"keywords", "Enter keywords", &meta.Keywords, o.keywords},
	}

	pending := optional[:0]
	for _, f := range optional {
		if cmd.Flags().Changed(f.flag) {
			if f.flag == "keywords" {
				*f.value = project.NormalizeKeywords(f.source)
			} else {
				*f.value = f.source
			}
			continue
		}
		pending = append(pending, f)
	}

	if o.skip || len(pending) == 0 {
		return meta, nil
	}

	fmt.Fprintln(p.out, "Remaining fields can be empty")
	for _, f := range pending {
		answer, err := p.AskDefault(f.prompt, *f.value)
		if err != nil {
			return project.Metadata{}, err
		}
		if f.flag == "keywords" {
			answer = project.NormalizeKeywords(answer)
		}
		*f.value = answer
	}
	return meta, nil
}
