package models

import "strings"

// BindingKind represents how a provision binding was declared
type BindingKind int

const (
	// ConstructorInjection is a binding declared by an injectable constructor
	ConstructorInjection BindingKind = iota
	// ProvidesMethod is a binding declared by a module provider method
	ProvidesMethod
)

// String returns the string representation of the binding kind
func (k BindingKind) String() string {
	switch k {
	case ConstructorInjection:
		return "ConstructorInjection"
	case ProvidesMethod:
		return "ProvidesMethod"
	default:
		return "UnknownBindingKind"
	}
}

// ElementKind represents the kind of element a binding invokes
type ElementKind int

const (
	ConstructorElement ElementKind = iota
	MethodElement
)

// String returns the string representation of the element kind
func (k ElementKind) String() string {
	switch k {
	case ConstructorElement:
		return "Constructor"
	case MethodElement:
		return "Method"
	default:
		return "UnknownElement"
	}
}

// RequestKind represents the form in which a dependency is requested
type RequestKind int

const (
	InstanceRequest RequestKind = iota
	ProviderRequest
	LazyRequest
)

// String returns the string representation of the request kind
func (k RequestKind) String() string {
	switch k {
	case InstanceRequest:
		return "Instance"
	case ProviderRequest:
		return "Provider"
	case LazyRequest:
		return "Lazy"
	default:
		return "UnknownRequest"
	}
}

// TypeRef is a reference to a named type in the emitted source, carrying the
// visibility information needed for accessibility decisions.
type TypeRef struct {
	Name     string    // simple type name, e.g. "Widget"
	Package  string    // declaring package, e.g. "app.store"
	Internal bool      // package-private in the target source
	Args     []TypeRef // type arguments, empty for non-generic types
}

// ObjectType is the universal top type of the emitted source.
var ObjectType = TypeRef{Name: "Object"}

// String renders the parameterized spelling, e.g. "Generic<T>"
func (t TypeRef) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, arg := range t.Args {
		parts[i] = arg.String()
	}
	return t.Name + "<" + strings.Join(parts, ", ") + ">"
}

// RawString renders the erased spelling without type arguments
func (t TypeRef) RawString() string {
	return t.Name
}

// IsParameterized returns true if the type carries type arguments
func (t TypeRef) IsParameterized() bool {
	return len(t.Args) > 0
}

// IsObject returns true if the type is the universal top type
func (t TypeRef) IsObject() bool {
	return t.Name == ObjectType.Name && len(t.Args) == 0
}

// AccessibleFrom reports whether the type can be referenced from pkg.
// A type is accessible when it is exported or declared in pkg, and every
// type argument is itself accessible.
func (t TypeRef) AccessibleFrom(pkg string) bool {
	if t.Internal && t.Package != pkg {
		return false
	}
	for _, arg := range t.Args {
		if !arg.AccessibleFrom(pkg) {
			return false
		}
	}
	return true
}

// Key identifies a binding: a type plus an optional qualifier
type Key struct {
	Type      TypeRef
	Qualifier string // optional qualifier name, empty for unqualified keys
}

// ID returns a stable map key for this binding key
func (k Key) ID() string {
	if k.Qualifier == "" {
		return k.Type.String()
	}
	return "@" + k.Qualifier + " " + k.Type.String()
}

// String returns a human-readable form of the key
func (k Key) String() string {
	return k.ID()
}
