package codegen

import "github.com/jwire-dev/jwire/internal/models"

// ArgumentResolver composes the value expression for a dependency request in
// a requesting package. Implementations may recursively invoke other binding
// generators, including this package, for other bindings.
type ArgumentResolver interface {
	ResolveArgument(request models.DependencyRequest, pkg string) (Expression, error)
}

// RequirementResolver returns an expression referencing a component
// requirement, such as a module instance, in the requesting package.
type RequirementResolver interface {
	ResolveRequirement(requirement models.ComponentRequirement, pkg string) (Expression, error)
}

// HelperMethod is the handle to a memoized helper generated into the
// surrounding component.
type HelperMethod struct {
	Name       string
	ReturnType models.TypeRef
}

// ResolveFunc resolves a single dependency request into an expression
type ResolveFunc func(request models.DependencyRequest) (Expression, error)

// ComponentModel is the surrounding generated-component state a provision
// generator calls into: the injection-method routing policy, the memoized
// members-injection helpers, and the injection proxy methods.
type ComponentModel interface {
	// NeedsInjectionMethod reports whether the binding's bound element
	// cannot be invoked directly from pkg.
	NeedsInjectionMethod(binding *models.ProvisionBinding, pkg string) bool

	// MembersInjectionMethod returns the members-injection helper for key,
	// creating it on first use. Repeated calls for the same key return the
	// same helper.
	MembersInjectionMethod(key models.Key) HelperMethod

	// InvokeInjectionMethod renders a call to the binding's injection proxy.
	// moduleRef carries the module qualifier when the binding requires a
	// module instance, nil otherwise.
	InvokeInjectionMethod(binding *models.ProvisionBinding, resolve ResolveFunc, pkg string, moduleRef *Expression) (string, error)
}
