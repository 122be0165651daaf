package graph

import (
	"fmt"

	"github.com/jwire-dev/jwire/internal/codegen"
	"github.com/jwire-dev/jwire/internal/component"
	"github.com/jwire-dev/jwire/internal/errors"
	"github.com/jwire-dev/jwire/internal/models"
)

// Resolver satisfies codegen.ArgumentResolver by recursively composing the
// instance expression of the requested binding. Provider and Lazy requests
// wrap the deferred body in a lambda; when the request closes a dependency
// cycle the body is a call to the key's memoized provision method rather
// than the inlined expression.
type Resolver struct {
	graph     *Graph
	options   *models.CompilerOptions
	component *component.Model
	resolving map[string]bool // keys currently on the resolution stack
}

// NewResolver creates a resolver over the graph for one component's session
func NewResolver(g *Graph, options *models.CompilerOptions, model *component.Model) *Resolver {
	return &Resolver{
		graph:     g,
		options:   options,
		component: model,
		resolving: make(map[string]bool),
	}
}

// ResolveArgument composes the value expression for a dependency request in
// the requesting package
func (r *Resolver) ResolveArgument(request models.DependencyRequest, pkg string) (codegen.Expression, error) {
	switch request.Kind {
	case models.InstanceRequest:
		return r.InstanceExpression(request.Key, pkg)
	case models.ProviderRequest:
		body, typ, err := r.deferredBody(request.Key, pkg)
		if err != nil {
			return codegen.Expression{}, err
		}
		wrapped := models.TypeRef{Name: "Provider", Args: []models.TypeRef{typ}}
		return codegen.NewExpression(wrapped, fmt.Sprintf("() -> %s", body)), nil
	case models.LazyRequest:
		body, typ, err := r.deferredBody(request.Key, pkg)
		if err != nil {
			return codegen.Expression{}, err
		}
		wrapped := models.TypeRef{Name: "Lazy", Args: []models.TypeRef{typ}}
		return codegen.NewExpression(wrapped, fmt.Sprintf("lazyOf(() -> %s)", body)), nil
	default:
		return codegen.Expression{}, errors.Newf(errors.InternalErrorCode,
			"unexpected request kind %s for %s", request.Kind, request.Key)
	}
}

// deferredBody is the expression a Provider or Lazy lambda defers. A key
// already on the resolution stack defers to its provision method, so a
// cycle-closing request never inlines the expression it is part of.
func (r *Resolver) deferredBody(key models.Key, pkg string) (string, models.TypeRef, error) {
	if r.resolving[key.ID()] {
		return r.component.ProvisionMethod(key) + "()", key.Type, nil
	}
	expr, err := r.InstanceExpression(key, pkg)
	if err != nil {
		return "", models.TypeRef{}, err
	}
	return expr.Code, expr.Type, nil
}

// InstanceExpression composes the instance expression for the binding of key
func (r *Resolver) InstanceExpression(key models.Key, pkg string) (codegen.Expression, error) {
	binding, ok := r.graph.Binding(key)
	if !ok {
		return codegen.Expression{}, errors.Newf(errors.GraphErrorCode,
			"no binding for %s", key).
			WithSuggestion("declare an inject constructor or a module provider for the missing type")
	}

	id := key.ID()
	if r.resolving[id] {
		return codegen.Expression{}, errors.Newf(errors.InternalErrorCode,
			"instance dependency cycle at %s escaped graph validation", key)
	}
	r.resolving[id] = true
	defer delete(r.resolving, id)

	generator, err := codegen.NewSimpleMethodGenerator(r.options, binding, r, r.component, r.component)
	if err != nil {
		return codegen.Expression{}, err
	}
	return generator.InstanceExpression(models.InstanceRequest, pkg)
}
