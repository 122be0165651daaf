package codegen

import (
	"fmt"

	"github.com/jwire-dev/jwire/internal/errors"
	"github.com/jwire-dev/jwire/internal/models"
)

// SimpleMethodGenerator emits the expression that produces a provision
// binding's instance by invoking its constructor or provider method
// directly, without framework-level indirection.
type SimpleMethodGenerator struct {
	options      *models.CompilerOptions
	binding      *models.ProvisionBinding
	arguments    ArgumentResolver
	component    ComponentModel
	requirements RequirementResolver
}

// NewSimpleMethodGenerator creates a generator for one provision binding.
// Bindings with framework-style dependencies or without a bound element are
// defects in upstream graph construction and are rejected here.
func NewSimpleMethodGenerator(
	options *models.CompilerOptions,
	binding *models.ProvisionBinding,
	arguments ArgumentResolver,
	component ComponentModel,
	requirements RequirementResolver,
) (*SimpleMethodGenerator, error) {
	if len(binding.FrameworkDeps) != 0 {
		return nil, errors.Newf(errors.GraphErrorCode,
			"binding %s carries framework dependencies and cannot be invoked directly", binding.Key).
			WithLocation(bindingLocation(binding)).
			WithSuggestion("route this binding through a framework-instance generator instead")
	}
	if binding.Element == nil {
		return nil, errors.Newf(errors.GraphErrorCode,
			"binding %s has no bound element", binding.Key).
			WithLocation(bindingLocation(binding))
	}
	return &SimpleMethodGenerator{
		options:      options,
		binding:      binding,
		arguments:    arguments,
		component:    component,
		requirements: requirements,
	}, nil
}

// InstanceExpression returns the expression that produces this binding's
// instance when embedded in the given package. The result's static type is
// the binding's key type unless member injection widens it to Object.
func (g *SimpleMethodGenerator) InstanceExpression(requestKind models.RequestKind, pkg string) (Expression, error) {
	if g.component.NeedsInjectionMethod(g.binding, pkg) {
		return g.invokeInjectionMethod(pkg)
	}
	return g.invokeMethod(pkg)
}

// invokeMethod composes the direct constructor or provider-method call
func (g *SimpleMethodGenerator) invokeMethod(pkg string) (Expression, error) {
	args, err := g.resolveArguments(pkg)
	if err != nil {
		return Expression{}, err
	}

	var invocation string
	switch g.binding.Element.Kind {
	case models.ConstructorElement:
		invocation = fmt.Sprintf("new %s(%s)", g.constructorTypeName(pkg), JoinArguments(args))
	case models.MethodElement:
		qualifier, err := g.moduleQualifier(pkg)
		if err != nil {
			return Expression{}, err
		}
		invocation = g.maybeCheckForNull(
			fmt.Sprintf("%s.%s(%s)", qualifier, g.binding.Element.Name, JoinArguments(args)))
	default:
		return Expression{}, errors.Newf(errors.InternalErrorCode,
			"unexpected element kind %s for binding %s", g.binding.Element.Kind, g.binding.Key).
			WithLocation(bindingLocation(g.binding))
	}

	return g.injectMembers(invocation), nil
}

// invokeInjectionMethod routes the call through a generated proxy capable of
// invoking the bound element from any package
func (g *SimpleMethodGenerator) invokeInjectionMethod(pkg string) (Expression, error) {
	moduleRef, err := g.moduleReference(pkg)
	if err != nil {
		return Expression{}, err
	}
	resolve := func(request models.DependencyRequest) (Expression, error) {
		return g.arguments.ResolveArgument(request, pkg)
	}
	call, err := g.component.InvokeInjectionMethod(g.binding, resolve, pkg, moduleRef)
	if err != nil {
		return Expression{}, err
	}
	return g.injectMembers(g.maybeCheckForNull(call)), nil
}

// resolveArguments resolves each dependency request, in declared order, into
// an argument expression
func (g *SimpleMethodGenerator) resolveArguments(pkg string) ([]Expression, error) {
	args := make([]Expression, 0, len(g.binding.Dependencies))
	for _, request := range g.binding.Dependencies {
		arg, err := g.arguments.ResolveArgument(request, pkg)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

// constructorTypeName selects the parameterized type name when every type
// argument is accessible from pkg, and the raw type name otherwise, so the
// call site never references a type it cannot see.
func (g *SimpleMethodGenerator) constructorTypeName(pkg string) string {
	keyType := g.binding.Key.Type
	for _, arg := range keyType.Args {
		if !arg.AccessibleFrom(pkg) {
			return keyType.RawString()
		}
	}
	return keyType.String()
}

// moduleQualifier returns the qualifier fragment for a provider-method call:
// the resolved module-instance expression, or the module's static type name
// when no instance is required.
func (g *SimpleMethodGenerator) moduleQualifier(pkg string) (string, error) {
	ref, err := g.moduleReference(pkg)
	if err != nil {
		return "", err
	}
	if ref != nil {
		return ref.Code, nil
	}
	if g.binding.Module == nil {
		return "", errors.Newf(errors.GraphErrorCode,
			"method binding %s has no contributing module", g.binding.Key).
			WithLocation(bindingLocation(g.binding))
	}
	return g.binding.Module.String(), nil
}

// moduleReference resolves the module-instance expression when the binding
// requires one; nil means no instance is needed.
func (g *SimpleMethodGenerator) moduleReference(pkg string) (*Expression, error) {
	if !g.binding.RequiresModuleInstance || g.binding.Module == nil {
		return nil, nil
	}
	expr, err := g.requirements.ResolveRequirement(models.ModuleRequirement(*g.binding.Module), pkg)
	if err != nil {
		return nil, err
	}
	return &expr, nil
}

// maybeCheckForNull wraps provider-method invocations with the non-null
// assertion helper. Constructor-injection bindings are never wrapped since
// constructors cannot return null.
func (g *SimpleMethodGenerator) maybeCheckForNull(call string) string {
	if g.binding.Kind != models.ConstructorInjection && g.binding.ShouldCheckForNull(g.options) {
		return checkNotNullCall(call)
	}
	return call
}

// injectMembers chains the raw instance through the memoized
// members-injection helper when the binding declares injection sites
func (g *SimpleMethodGenerator) injectMembers(instance string) Expression {
	if len(g.binding.InjectionSites) == 0 {
		return NewExpression(g.binding.Key.Type, instance)
	}

	keyType := g.binding.Key.Type
	if keyType.IsParameterized() {
		// The helper signature for a parameterized key is declared with the
		// erased type; weak local inference in the emitted source cannot
		// carry the parameterized type across that boundary without the
		// explicit two-step cast.
		instance = fmt.Sprintf("(%s) (%s) %s", keyType.String(), keyType.RawString(), instance)
	}

	helper := g.component.MembersInjectionMethod(g.binding.Key)
	returnType := keyType
	if helper.ReturnType.IsObject() {
		returnType = models.ObjectType
	}
	return NewExpression(returnType, fmt.Sprintf("%s(%s)", helper.Name, instance))
}

func bindingLocation(binding *models.ProvisionBinding) errors.SourceLocation {
	return errors.SourceLocation{File: binding.File, Line: binding.Line}
}
