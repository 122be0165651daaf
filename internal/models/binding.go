package models

// BoundElement identifies the constructor or method a provision binding
// invokes, with the visibility information the routing policy needs.
type BoundElement struct {
	Kind     ElementKind
	Name     string // method name; empty for constructors
	Package  string // declaring package
	Internal bool   // package-private in the target source
}

// DependencyRequest is a reference to another binding needed as an argument
type DependencyRequest struct {
	Kind RequestKind
	Key  Key
}

// InjectionSiteKind represents the kind of post-construction injection target
type InjectionSiteKind int

const (
	FieldInjectionSite InjectionSiteKind = iota
	MethodInjectionSite
)

// InjectionSite is a field or method on the bound type requiring
// post-construction value assignment
type InjectionSite struct {
	Kind         InjectionSiteKind
	Name         string
	Dependencies []DependencyRequest // one for a field, the parameter list for a method
}

// ComponentRequirement is an external dependency the generated component
// must be supplied with, such as a module instance
type ComponentRequirement struct {
	Type TypeRef
}

// ModuleRequirement wraps a module type as a component requirement
func ModuleRequirement(module TypeRef) ComponentRequirement {
	return ComponentRequirement{Type: module}
}

// ProvisionBinding describes how to obtain one type of instance through a
// direct constructor or provider-method call
type ProvisionBinding struct {
	Key                    Key
	Kind                   BindingKind
	Element                *BoundElement // nil indicates an upstream construction defect
	Dependencies           []DependencyRequest
	FrameworkDeps          []DependencyRequest // must be empty for direct invocation
	RequiresModuleInstance bool
	Module                 *TypeRef // contributing module, nil for constructor bindings
	InjectionSites         []InjectionSite
	Nullable               bool // declared nullable, suppresses null checking

	// Source location for error reporting
	File string
	Line int
}

// ShouldCheckForNull derives the null-check flag from the compiler options
// and the binding's declared nullability
func (b *ProvisionBinding) ShouldCheckForNull(opts *CompilerOptions) bool {
	return opts != nil && opts.NullChecks && !b.Nullable
}

// CompilerOptions holds the generation policies shared by every binding
// generator in a session
type CompilerOptions struct {
	// NullChecks wraps provider-method invocations with a runtime
	// non-null assertion
	NullChecks bool
}
