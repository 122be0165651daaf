package generator

import (
	"fmt"
	"strings"

	"github.com/jwire-dev/jwire/internal/codegen"
	"github.com/jwire-dev/jwire/internal/component"
	"github.com/jwire-dev/jwire/internal/errors"
	"github.com/jwire-dev/jwire/internal/graph"
	"github.com/jwire-dev/jwire/internal/manifest"
	"github.com/jwire-dev/jwire/internal/models"
)

// GeneratedComponent is one assembled component source file
type GeneratedComponent struct {
	Name     string // component name from the manifest
	FileName string // suggested output file name
	Content  string // generated source content
}

// Generator assembles component source files from a binding graph
type Generator struct {
	options *models.CompilerOptions
}

// New creates a generator with the given compilation options
func New(options *models.CompilerOptions) *Generator {
	return &Generator{options: options}
}

// Generate assembles every component declared in the manifest
func (g *Generator) Generate(m *manifest.Manifest, bindingGraph *graph.Graph) ([]*GeneratedComponent, error) {
	var generated []*GeneratedComponent
	for _, spec := range m.Components {
		comp, err := g.GenerateComponent(spec, bindingGraph)
		if err != nil {
			return nil, err
		}
		generated = append(generated, comp)
	}
	return generated, nil
}

// GenerateComponent assembles one component: entry-point accessors whose
// bodies embed the binding expressions, plus the requirement fields, proxy
// methods, and members-injection helpers those expressions demanded.
func (g *Generator) GenerateComponent(spec *manifest.ComponentSpec, bindingGraph *graph.Graph) (*GeneratedComponent, error) {
	model := component.NewModel(spec.Name)
	resolver := graph.NewResolver(bindingGraph, g.options, model)

	data := &componentData{
		ClassName: "Generated" + spec.Name,
	}

	for _, entry := range spec.Entries {
		expr, err := resolver.InstanceExpression(entry.Key, spec.Package)
		if err != nil {
			return nil, errors.Wrapf(errors.GenerationErrorCode, err,
				"failed to generate entry point %s of component %s", entry.Name, spec.Name)
		}
		data.Accessors = append(data.Accessors, accessorData{
			ReturnType: expr.Type.String(),
			Name:       entry.Name,
			Body:       expr.Code,
		})
	}

	// Helper and provision-method bodies may demand further helpers,
	// provision methods, proxies, and requirement fields; keep draining the
	// model until it stops growing.
	helpersDone, methodsDone := 0, 0
	for helpersDone < len(model.Helpers()) || methodsDone < len(model.ProvisionMethods()) {
		for helpersDone < len(model.Helpers()) {
			entry := model.Helpers()[helpersDone]
			helpersDone++
			helper, err := g.buildHelper(entry, bindingGraph, resolver, spec.Package)
			if err != nil {
				return nil, err
			}
			data.Helpers = append(data.Helpers, helper)
		}
		for methodsDone < len(model.ProvisionMethods()) {
			entry := model.ProvisionMethods()[methodsDone]
			methodsDone++
			method, err := g.buildProvisionMethod(entry, resolver, spec.Package)
			if err != nil {
				return nil, err
			}
			data.Methods = append(data.Methods, method)
		}
	}

	for _, proxy := range model.Proxies() {
		data.Proxies = append(data.Proxies, g.buildProxy(proxy))
	}

	for _, req := range model.Requirements() {
		data.Requirements = append(data.Requirements, requirementData{
			Type:  req.Type.String(),
			Field: req.Field,
		})
	}
	data.CtorParams = requirementParams(data.Requirements)

	content, err := renderComponent(data)
	if err != nil {
		return nil, errors.Wrapf(errors.GenerationErrorCode, err,
			"failed to render component %s", spec.Name)
	}

	return &GeneratedComponent{
		Name:     spec.Name,
		FileName: data.ClassName + ".java",
		Content:  content,
	}, nil
}

// buildProvisionMethod renders one provision method; cycle-closing deferred
// requests call it instead of inlining the key's instance expression
func (g *Generator) buildProvisionMethod(entry component.ProvisionMethodEntry, resolver *graph.Resolver, pkg string) (accessorData, error) {
	expr, err := resolver.InstanceExpression(entry.Key, pkg)
	if err != nil {
		return accessorData{}, errors.Wrapf(errors.GenerationErrorCode, err,
			"failed to generate provision method %s", entry.Name)
	}
	return accessorData{
		ReturnType: expr.Type.String(),
		Name:       entry.Name,
		Body:       expr.Code,
	}, nil
}

// buildHelper renders the body of one members-injection helper
func (g *Generator) buildHelper(entry component.HelperEntry, bindingGraph *graph.Graph, resolver *graph.Resolver, pkg string) (helperData, error) {
	binding, ok := bindingGraph.Binding(entry.Key)
	if !ok {
		return helperData{}, errors.Newf(errors.InternalErrorCode,
			"members-injection helper created for %s, which has no binding", entry.Key)
	}

	paramType := entry.Key.Type.String()
	if entry.Key.Type.IsParameterized() {
		paramType = entry.Key.Type.RawString()
	}

	helper := helperData{
		ReturnType: entry.Method.ReturnType.String(),
		Name:       entry.Method.Name,
		ParamType:  paramType,
	}

	for _, site := range binding.InjectionSites {
		args := make([]codegen.Expression, 0, len(site.Dependencies))
		for _, request := range site.Dependencies {
			arg, err := resolver.ResolveArgument(request, pkg)
			if err != nil {
				return helperData{}, errors.Wrapf(errors.GenerationErrorCode, err,
					"failed to resolve injection site %s of %s", site.Name, entry.Key)
			}
			args = append(args, arg)
		}
		switch site.Kind {
		case models.FieldInjectionSite:
			if len(args) != 1 {
				return helperData{}, errors.Newf(errors.InternalErrorCode,
					"field injection site %s of %s carries %d dependencies", site.Name, entry.Key, len(args))
			}
			helper.Lines = append(helper.Lines,
				fmt.Sprintf("instance.%s = %s;", site.Name, args[0].Code))
		case models.MethodInjectionSite:
			helper.Lines = append(helper.Lines,
				fmt.Sprintf("instance.%s(%s);", site.Name, codegen.JoinArguments(args)))
		}
	}
	return helper, nil
}

// buildProxy renders one injection proxy method. The proxy takes the module
// instance first when one is required, then the binding's dependencies as
// plain parameters.
func (g *Generator) buildProxy(proxy component.ProxyEntry) proxyData {
	binding := proxy.Binding
	keyType := binding.Key.Type

	returnType := keyType.String()
	if keyType.IsParameterized() {
		returnType = keyType.RawString()
	}

	var params []string
	var callArgs []string
	if binding.RequiresModuleInstance && binding.Module != nil {
		params = append(params, fmt.Sprintf("%s module", binding.Module.String()))
	}
	for i, request := range binding.Dependencies {
		name := fmt.Sprintf("arg%d", i)
		params = append(params, fmt.Sprintf("%s %s", requestType(request).String(), name))
		callArgs = append(callArgs, name)
	}

	var body string
	switch binding.Element.Kind {
	case models.ConstructorElement:
		body = fmt.Sprintf("new %s(%s)", returnType, strings.Join(callArgs, ", "))
	default:
		qualifier := "module"
		if !binding.RequiresModuleInstance && binding.Module != nil {
			qualifier = binding.Module.String()
		}
		body = fmt.Sprintf("%s.%s(%s)", qualifier, binding.Element.Name, strings.Join(callArgs, ", "))
	}

	return proxyData{
		ReturnType: returnType,
		Name:       proxy.Name,
		Params:     strings.Join(params, ", "),
		Body:       body,
	}
}

// requestType is the declared parameter type for a dependency request
func requestType(request models.DependencyRequest) models.TypeRef {
	switch request.Kind {
	case models.ProviderRequest:
		return models.TypeRef{Name: "Provider", Args: []models.TypeRef{request.Key.Type}}
	case models.LazyRequest:
		return models.TypeRef{Name: "Lazy", Args: []models.TypeRef{request.Key.Type}}
	default:
		return request.Key.Type
	}
}

func requirementParams(requirements []requirementData) string {
	parts := make([]string, len(requirements))
	for i, req := range requirements {
		parts[i] = fmt.Sprintf("%s %s", req.Type, req.Field)
	}
	return strings.Join(parts, ", ")
}
