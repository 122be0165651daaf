package cli

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jwire-dev/jwire/internal/errors"
	"github.com/jwire-dev/jwire/internal/generator"
	"github.com/jwire-dev/jwire/internal/graph"
	"github.com/jwire-dev/jwire/internal/manifest"
	"github.com/jwire-dev/jwire/internal/models"
)

// Runner drives a whole generation session: scan manifests, parse and lower
// them, validate the binding graph, and write one source file per component.
type Runner struct {
	config      *Config
	diagnostics *Diagnostics
	scanner     *ManifestScanner
	parser      *manifest.Parser
	session     string
}

// NewRunner creates a runner for one invocation of the tool
func NewRunner(config *Config, diagnostics *Diagnostics) *Runner {
	return &Runner{
		config:      config,
		diagnostics: diagnostics,
		scanner:     NewManifestScanner(),
		parser:      manifest.NewParser(),
		session:     uuid.NewString(),
	}
}

// Run generates components for every manifest found under paths
func (r *Runner) Run(paths []string) error {
	r.diagnostics.Verbose("generation session %s", r.session)

	manifests, err := r.scanner.ScanManifests(paths)
	if err != nil {
		return err
	}
	if len(manifests) == 0 {
		return errors.New(errors.ValidationErrorCode, "no .jwire manifests found").
			WithSuggestion("pass a manifest file, a directory, or a pattern like ./...")
	}
	r.diagnostics.Info("found %d manifest(s)", len(manifests))

	merged, err := r.loadManifests(manifests)
	if err != nil {
		return err
	}

	bindingGraph, err := graph.NewGraph(merged.Bindings)
	if err != nil {
		return err
	}
	if err := bindingGraph.Validate(); err != nil {
		return err
	}
	r.diagnostics.Verbose("binding graph: %d binding(s), %d component(s)",
		bindingGraph.Size(), len(merged.Components))

	options := &models.CompilerOptions{NullChecks: r.config.NullChecks}
	generated, err := generator.New(options).Generate(merged, bindingGraph)
	if err != nil {
		return err
	}

	for _, comp := range generated {
		path, err := r.write(comp)
		if err != nil {
			return err
		}
		r.diagnostics.Success("generated %s", path)
	}
	return nil
}

// loadManifests parses and lowers every manifest into one merged manifest.
// A single builder is shared so type declarations are visible across files.
func (r *Runner) loadManifests(paths []string) (*manifest.Manifest, error) {
	builder := manifest.NewBuilder()
	merged := &manifest.Manifest{}

	for _, path := range paths {
		r.diagnostics.Verbose("parsing %s", path)
		file, err := r.parser.ParseFile(path)
		if err != nil {
			return nil, err
		}
		lowered, err := builder.Build(file, path)
		if err != nil {
			return nil, err
		}
		merged.Components = append(merged.Components, lowered.Components...)
		merged.Bindings = append(merged.Bindings, lowered.Bindings...)
	}
	return merged, nil
}

// write places one generated component in the output directory
func (r *Runner) write(comp *generator.GeneratedComponent) (string, error) {
	dir := r.config.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(errors.FileSystemErrorCode, err, "failed to create output directory %s", dir)
	}

	path := filepath.Join(dir, comp.FileName)
	if err := os.WriteFile(path, []byte(comp.Content), 0644); err != nil {
		return "", errors.Wrapf(errors.FileSystemErrorCode, err, "failed to write %s", path)
	}
	return path, nil
}
