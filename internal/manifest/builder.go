package manifest

import (
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/jwire-dev/jwire/internal/errors"
	"github.com/jwire-dev/jwire/internal/models"
)

// Manifest is the lowered form of one or more parsed manifest files
type Manifest struct {
	Components []*ComponentSpec
	Bindings   []*models.ProvisionBinding
}

// ComponentSpec describes one component to generate
type ComponentSpec struct {
	Name    string
	Package string
	Entries []EntrySpec
}

// EntrySpec is one entry-point accessor of a component
type EntrySpec struct {
	Name string
	Key  models.Key
}

type typeInfo struct {
	pkg      string
	internal bool
	params   []string
}

// Builder lowers parsed manifest files into binding descriptors
type Builder struct {
	types map[string]typeInfo
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{
		types: make(map[string]typeInfo),
	}
}

// Build lowers a parsed file into component specs and provision bindings.
// Type declarations are collected first so later declarations resolve
// visibility regardless of order.
func (b *Builder) Build(file *File, filename string) (*Manifest, error) {
	collected := errors.NewMultipleErrors()

	for _, decl := range file.Decls {
		if decl.Type == nil {
			continue
		}
		t := decl.Type
		if _, exists := b.types[t.Name]; exists {
			collected.Add(errors.Newf(errors.ValidationErrorCode,
				"type %s declared more than once", t.Name).
				WithLocation(location(filename, t.Pos)))
			continue
		}
		b.types[t.Name] = typeInfo{
			pkg:      t.Package,
			internal: t.Internal,
			params:   t.Params,
		}
	}

	manifest := &Manifest{}
	for _, decl := range file.Decls {
		switch {
		case decl.Component != nil:
			manifest.Components = append(manifest.Components, b.buildComponent(decl.Component))
		case decl.Module != nil:
			manifest.Bindings = append(manifest.Bindings, b.buildModule(decl.Module, filename)...)
		case decl.Inject != nil:
			manifest.Bindings = append(manifest.Bindings, b.buildInject(decl.Inject, filename))
		}
	}

	if !collected.IsEmpty() {
		return nil, collected
	}
	return manifest, nil
}

func (b *Builder) buildComponent(decl *ComponentDecl) *ComponentSpec {
	spec := &ComponentSpec{
		Name:    decl.Name,
		Package: decl.Package,
	}
	for _, entry := range decl.Entries {
		spec.Entries = append(spec.Entries, EntrySpec{
			Name: entry.Name,
			Key: models.Key{
				Type:      b.resolveType(entry.Type),
				Qualifier: entry.Qualifier,
			},
		})
	}
	return spec
}

func (b *Builder) buildModule(decl *ModuleDecl, filename string) []*models.ProvisionBinding {
	moduleType := b.namedType(decl.Name)
	var bindings []*models.ProvisionBinding

	for _, provides := range decl.Provides {
		module := moduleType
		binding := &models.ProvisionBinding{
			Key: models.Key{
				Type:      b.resolveType(provides.Type),
				Qualifier: provides.Qualifier,
			},
			Kind: models.ProvidesMethod,
			Element: &models.BoundElement{
				Kind:     models.MethodElement,
				Name:     provides.Name,
				Package:  moduleType.Package,
				Internal: moduleType.Internal,
			},
			Dependencies:           b.buildRequests(provides.Params),
			RequiresModuleInstance: !provides.Static,
			Module:                 &module,
			Nullable:               provides.Nullable,
			File:                   filename,
			Line:                   provides.Pos.Line,
		}
		bindings = append(bindings, binding)
	}
	return bindings
}

func (b *Builder) buildInject(decl *InjectDecl, filename string) *models.ProvisionBinding {
	keyType := b.resolveType(decl.Type)
	binding := &models.ProvisionBinding{
		Key:  models.Key{Type: keyType},
		Kind: models.ConstructorInjection,
		Element: &models.BoundElement{
			Kind:     models.ConstructorElement,
			Package:  keyType.Package,
			Internal: keyType.Internal,
		},
		Dependencies: b.buildRequests(decl.Params),
		File:         filename,
		Line:         decl.Pos.Line,
	}

	for _, site := range decl.Sites {
		switch {
		case site.Field != nil:
			binding.InjectionSites = append(binding.InjectionSites, models.InjectionSite{
				Kind: models.FieldInjectionSite,
				Name: site.Field.Name,
				Dependencies: []models.DependencyRequest{
					b.buildRequest(site.Field.Qualifier, site.Field.Type),
				},
			})
		case site.Method != nil:
			binding.InjectionSites = append(binding.InjectionSites, models.InjectionSite{
				Kind:         models.MethodInjectionSite,
				Name:         site.Method.Name,
				Dependencies: b.buildRequests(site.Method.Params),
			})
		}
	}
	return binding
}

func (b *Builder) buildRequests(params []*ParamDecl) []models.DependencyRequest {
	var requests []models.DependencyRequest
	for _, param := range params {
		requests = append(requests, b.buildRequest(param.Qualifier, param.Type))
	}
	return requests
}

// buildRequest maps Provider<X> and Lazy<X> parameter sugar onto the
// corresponding request kinds; everything else is an instance request.
func (b *Builder) buildRequest(qualifier string, expr *TypeExpr) models.DependencyRequest {
	kind := models.InstanceRequest
	target := expr
	if len(expr.Args) == 1 {
		switch expr.Name {
		case "Provider":
			kind = models.ProviderRequest
			target = expr.Args[0]
		case "Lazy":
			kind = models.LazyRequest
			target = expr.Args[0]
		}
	}
	return models.DependencyRequest{
		Kind: kind,
		Key: models.Key{
			Type:      b.resolveType(target),
			Qualifier: qualifier,
		},
	}
}

// resolveType attaches declared visibility to a type expression. Names
// without a type declaration default to exported types in the root package.
func (b *Builder) resolveType(expr *TypeExpr) models.TypeRef {
	ref := b.namedType(expr.Name)
	for _, arg := range expr.Args {
		ref.Args = append(ref.Args, b.resolveType(arg))
	}
	return ref
}

func (b *Builder) namedType(name string) models.TypeRef {
	info, ok := b.types[name]
	if !ok {
		return models.TypeRef{Name: name}
	}
	return models.TypeRef{
		Name:     name,
		Package:  info.pkg,
		Internal: info.internal,
	}
}

func location(filename string, pos lexer.Position) errors.SourceLocation {
	return errors.SourceLocation{
		File:   filename,
		Line:   pos.Line,
		Column: pos.Column,
	}
}
