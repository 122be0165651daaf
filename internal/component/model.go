package component

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jwire-dev/jwire/internal/codegen"
	"github.com/jwire-dev/jwire/internal/models"
)

// Model owns the mutable state shared by every binding generator during one
// generation session: memoized members-injection helpers, injection proxy
// methods, and component requirement fields. Creation is check-then-create
// under a mutex so each key gets at most one helper regardless of how many
// requesting packages ask for it.
type Model struct {
	name string // component name, used in diagnostics

	mu           sync.Mutex
	helpers      map[string]codegen.HelperMethod
	helperOrder  []HelperEntry
	proxies      map[string]string
	proxyOrder   []ProxyEntry
	fields       map[string]string
	fieldOrder   []RequirementField
	methods      map[string]string
	methodOrder  []ProvisionMethodEntry
	helperCounts map[string]int
}

// HelperEntry records a created members-injection helper for emission
type HelperEntry struct {
	Key    models.Key
	Method codegen.HelperMethod
}

// ProxyEntry records a created injection proxy method for emission
type ProxyEntry struct {
	Name    string
	Binding *models.ProvisionBinding
}

// RequirementField records a component requirement field for emission
type RequirementField struct {
	Type  models.TypeRef
	Field string
}

// ProvisionMethodEntry records a created provision method for emission
type ProvisionMethodEntry struct {
	Key  models.Key
	Name string
}

// NewModel creates an empty component model
func NewModel(name string) *Model {
	return &Model{
		name:         name,
		helpers:      make(map[string]codegen.HelperMethod),
		proxies:      make(map[string]string),
		fields:       make(map[string]string),
		methods:      make(map[string]string),
		helperCounts: make(map[string]int),
	}
}

// Name returns the component name
func (m *Model) Name() string {
	return m.name
}

// NeedsInjectionMethod reports whether the binding's bound element cannot be
// invoked directly from pkg: a package-private element declared in another
// package needs a generated proxy.
func (m *Model) NeedsInjectionMethod(binding *models.ProvisionBinding, pkg string) bool {
	if binding.Element == nil {
		return false
	}
	return binding.Element.Internal && binding.Element.Package != pkg
}

// MembersInjectionMethod returns the members-injection helper for key,
// creating it on first use. The helper is declared with the erased type when
// the key is parameterized, so its return type widens to Object.
func (m *Model) MembersInjectionMethod(key models.Key) codegen.HelperMethod {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := key.ID()
	m.helperCounts[id]++
	if helper, ok := m.helpers[id]; ok {
		return helper
	}

	returnType := key.Type
	if key.Type.IsParameterized() {
		returnType = models.ObjectType
	}
	helper := codegen.HelperMethod{
		Name:       "inject" + key.Type.RawString(),
		ReturnType: returnType,
	}
	m.helpers[id] = helper
	m.helperOrder = append(m.helperOrder, HelperEntry{Key: key, Method: helper})
	return helper
}

// InvokeInjectionMethod renders a call to the binding's injection proxy,
// creating the proxy on first use. When the binding requires a module
// instance the module reference is passed as the leading argument.
func (m *Model) InvokeInjectionMethod(binding *models.ProvisionBinding, resolve codegen.ResolveFunc, pkg string, moduleRef *codegen.Expression) (string, error) {
	name := m.proxyMethod(binding)

	var args []string
	if moduleRef != nil {
		args = append(args, moduleRef.Code)
	}
	for _, request := range binding.Dependencies {
		arg, err := resolve(request)
		if err != nil {
			return "", err
		}
		args = append(args, arg.Code)
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", ")), nil
}

// ResolveRequirement returns the component field expression for a
// requirement, creating the field on first use. Implements
// codegen.RequirementResolver.
func (m *Model) ResolveRequirement(requirement models.ComponentRequirement, pkg string) (codegen.Expression, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := requirement.Type.String()
	if field, ok := m.fields[id]; ok {
		return codegen.NewExpression(requirement.Type, field), nil
	}

	field := lowerCamel(requirement.Type.RawString())
	m.fields[id] = field
	m.fieldOrder = append(m.fieldOrder, RequirementField{Type: requirement.Type, Field: field})
	return codegen.NewExpression(requirement.Type, field), nil
}

// ProvisionMethod returns the name of the component method producing key's
// instance, creating it on first use. Deferred requests that close a
// dependency cycle call this method instead of inlining the expression they
// are part of.
func (m *Model) ProvisionMethod(key models.Key) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := key.ID()
	if name, ok := m.methods[id]; ok {
		return name
	}
	name := "get" + upperCamel(key.Qualifier) + key.Type.RawString()
	m.methods[id] = name
	m.methodOrder = append(m.methodOrder, ProvisionMethodEntry{Key: key, Name: name})
	return name
}

// ProvisionMethods returns the created provision methods in creation order
func (m *Model) ProvisionMethods() []ProvisionMethodEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ProvisionMethodEntry(nil), m.methodOrder...)
}

// Helpers returns the created members-injection helpers in creation order
func (m *Model) Helpers() []HelperEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]HelperEntry(nil), m.helperOrder...)
}

// Proxies returns the created injection proxies in creation order
func (m *Model) Proxies() []ProxyEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ProxyEntry(nil), m.proxyOrder...)
}

// Requirements returns the component requirement fields in creation order
func (m *Model) Requirements() []RequirementField {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RequirementField(nil), m.fieldOrder...)
}

// HelperRequestCount returns how many times the helper for key was requested
func (m *Model) HelperRequestCount(key models.Key) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.helperCounts[key.ID()]
}

// proxyMethod returns the memoized proxy method name for a binding
func (m *Model) proxyMethod(binding *models.ProvisionBinding) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := binding.Key.ID()
	if name, ok := m.proxies[id]; ok {
		return name
	}

	var name string
	switch binding.Element.Kind {
	case models.ConstructorElement:
		name = "proxyNew" + binding.Key.Type.RawString()
	default:
		// The contributing module disambiguates provider methods that share
		// a name across modules.
		name = "proxy" + upperCamel(binding.Element.Name)
		if binding.Module != nil {
			name = "proxy" + binding.Module.RawString() + upperCamel(binding.Element.Name)
		}
	}
	m.proxies[id] = name
	m.proxyOrder = append(m.proxyOrder, ProxyEntry{Name: name, Binding: binding})
	return name
}

func lowerCamel(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func upperCamel(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
