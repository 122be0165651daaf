package graph

import (
	"github.com/jwire-dev/jwire/internal/errors"
	"github.com/jwire-dev/jwire/internal/models"
)

// Graph indexes provision bindings by key. Which binding satisfies a
// dependency is decided here, upstream of expression generation.
type Graph struct {
	bindings map[string]*models.ProvisionBinding
	order    []models.Key
}

// NewGraph builds a graph from bindings, rejecting duplicate keys
func NewGraph(bindings []*models.ProvisionBinding) (*Graph, error) {
	g := &Graph{
		bindings: make(map[string]*models.ProvisionBinding, len(bindings)),
	}
	collected := errors.NewMultipleErrors()

	for _, binding := range bindings {
		id := binding.Key.ID()
		if existing, ok := g.bindings[id]; ok {
			collected.Add(errors.Newf(errors.GraphErrorCode,
				"duplicate binding for %s (first declared at %s:%d)",
				binding.Key, existing.File, existing.Line).
				WithLocation(errors.SourceLocation{File: binding.File, Line: binding.Line}).
				WithSuggestion("remove one of the conflicting declarations or add a qualifier"))
			continue
		}
		g.bindings[id] = binding
		g.order = append(g.order, binding.Key)
	}

	if !collected.IsEmpty() {
		return nil, collected
	}
	return g, nil
}

// Binding returns the binding for key, if any
func (g *Graph) Binding(key models.Key) (*models.ProvisionBinding, bool) {
	binding, ok := g.bindings[key.ID()]
	return binding, ok
}

// Keys returns every binding key in declaration order
func (g *Graph) Keys() []models.Key {
	return append([]models.Key(nil), g.order...)
}

// Size returns the number of bindings in the graph
func (g *Graph) Size() int {
	return len(g.bindings)
}

// Validate checks that every dependency of every binding is satisfiable and
// that the graph carries no dependency cycles. Everything found is collected
// into a single error.
func (g *Graph) Validate() error {
	collected := errors.NewMultipleErrors()

	for _, key := range g.order {
		binding := g.bindings[key.ID()]
		for _, request := range g.allRequests(binding) {
			if _, ok := g.bindings[request.Key.ID()]; !ok {
				collected.Add(errors.Newf(errors.GraphErrorCode,
					"binding %s depends on %s, which has no binding", binding.Key, request.Key).
					WithLocation(errors.SourceLocation{File: binding.File, Line: binding.Line}).
					WithSuggestion("declare an inject constructor or a module provider for the missing type"))
			}
		}
	}

	if collected.IsEmpty() {
		g.detectCycles(collected)
	}

	if !collected.IsEmpty() {
		return collected
	}
	return nil
}

// allRequests returns the binding's constructor and injection-site requests
func (g *Graph) allRequests(binding *models.ProvisionBinding) []models.DependencyRequest {
	requests := append([]models.DependencyRequest(nil), binding.Dependencies...)
	for _, site := range binding.InjectionSites {
		requests = append(requests, site.Dependencies...)
	}
	return requests
}

// detectCycles reports instance-request cycles. Provider and Lazy requests
// break cycles since their expressions defer construction.
func (g *Graph) detectCycles(collected *errors.MultipleErrors) {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(g.bindings))

	var visit func(key models.Key, path []models.Key) bool
	visit = func(key models.Key, path []models.Key) bool {
		id := key.ID()
		switch state[id] {
		case done:
			return true
		case visiting:
			collected.Add(errors.Newf(errors.GraphErrorCode,
				"dependency cycle involving %s", formatCycle(append(path, key))).
				WithSuggestion("break the cycle with a Provider<> or Lazy<> request"))
			return false
		}
		state[id] = visiting
		binding := g.bindings[id]
		for _, request := range g.allRequests(binding) {
			if request.Kind != models.InstanceRequest {
				continue
			}
			if !visit(request.Key, append(path, key)) {
				break
			}
		}
		state[id] = done
		return true
	}

	for _, key := range g.order {
		visit(key, nil)
	}
}

func formatCycle(path []models.Key) string {
	out := ""
	for i, key := range path {
		if i > 0 {
			out += " -> "
		}
		out += key.String()
	}
	return out
}
