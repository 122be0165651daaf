package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwire-dev/jwire/internal/component"
	"github.com/jwire-dev/jwire/internal/errors"
	"github.com/jwire-dev/jwire/internal/models"
)

func injectBinding(name string, deps ...models.DependencyRequest) *models.ProvisionBinding {
	return &models.ProvisionBinding{
		Key:          models.Key{Type: models.TypeRef{Name: name}},
		Kind:         models.ConstructorInjection,
		Element:      &models.BoundElement{Kind: models.ConstructorElement},
		Dependencies: deps,
	}
}

func instanceRequest(name string) models.DependencyRequest {
	return models.DependencyRequest{
		Kind: models.InstanceRequest,
		Key:  models.Key{Type: models.TypeRef{Name: name}},
	}
}

func TestNewGraph(t *testing.T) {
	t.Run("IndexesBindingsByKey", func(t *testing.T) {
		g, err := NewGraph([]*models.ProvisionBinding{
			injectBinding("Foo"),
			injectBinding("Bar"),
		})
		require.NoError(t, err)

		assert.Equal(t, 2, g.Size())
		_, ok := g.Binding(models.Key{Type: models.TypeRef{Name: "Foo"}})
		assert.True(t, ok)
	})

	t.Run("RejectsDuplicateKeys", func(t *testing.T) {
		_, err := NewGraph([]*models.ProvisionBinding{
			injectBinding("Foo"),
			injectBinding("Foo"),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate binding")
	})

	t.Run("QualifiedKeysDoNotCollide", func(t *testing.T) {
		qualified := injectBinding("Foo")
		qualified.Key.Qualifier = "Db"

		g, err := NewGraph([]*models.ProvisionBinding{
			injectBinding("Foo"),
			qualified,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, g.Size())
	})
}

func TestGraphValidate(t *testing.T) {
	t.Run("CompleteGraphIsValid", func(t *testing.T) {
		g, err := NewGraph([]*models.ProvisionBinding{
			injectBinding("Foo", instanceRequest("Bar")),
			injectBinding("Bar"),
		})
		require.NoError(t, err)
		assert.NoError(t, g.Validate())
	})

	t.Run("MissingDependencyReported", func(t *testing.T) {
		g, err := NewGraph([]*models.ProvisionBinding{
			injectBinding("Foo", instanceRequest("Missing")),
		})
		require.NoError(t, err)

		err = g.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Missing")
	})

	t.Run("MissingInjectionSiteDependencyReported", func(t *testing.T) {
		binding := injectBinding("Foo")
		binding.InjectionSites = []models.InjectionSite{
			{Kind: models.FieldInjectionSite, Name: "log", Dependencies: []models.DependencyRequest{instanceRequest("Logger")}},
		}
		g, err := NewGraph([]*models.ProvisionBinding{binding})
		require.NoError(t, err)

		err = g.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Logger")
	})

	t.Run("InstanceCycleDetected", func(t *testing.T) {
		g, err := NewGraph([]*models.ProvisionBinding{
			injectBinding("Foo", instanceRequest("Bar")),
			injectBinding("Bar", instanceRequest("Foo")),
		})
		require.NoError(t, err)

		err = g.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cycle")
	})

	t.Run("ProviderRequestBreaksCycle", func(t *testing.T) {
		g, err := NewGraph([]*models.ProvisionBinding{
			injectBinding("Foo", instanceRequest("Bar")),
			injectBinding("Bar", models.DependencyRequest{
				Kind: models.ProviderRequest,
				Key:  models.Key{Type: models.TypeRef{Name: "Foo"}},
			}),
		})
		require.NoError(t, err)
		require.NoError(t, g.Validate())

		// The accepted graph must also generate: the cycle-closing request
		// defers to a provision method instead of inlining forever.
		resolver := NewResolver(g, &models.CompilerOptions{}, component.NewModel("TestComponent"))
		expr, err := resolver.InstanceExpression(models.Key{Type: models.TypeRef{Name: "Foo"}}, "app")
		require.NoError(t, err)
		assert.Equal(t, "new Foo(new Bar(() -> getFoo()))", expr.Code)
	})

	t.Run("AllProblemsCollected", func(t *testing.T) {
		g, err := NewGraph([]*models.ProvisionBinding{
			injectBinding("Foo", instanceRequest("MissingOne")),
			injectBinding("Bar", instanceRequest("MissingTwo")),
		})
		require.NoError(t, err)

		err = g.Validate()
		require.Error(t, err)

		multi, ok := err.(*errors.MultipleErrors)
		require.True(t, ok)
		assert.Equal(t, 2, multi.Count())
	})
}

func TestResolver(t *testing.T) {
	options := &models.CompilerOptions{}

	newResolver := func(t *testing.T, bindings ...*models.ProvisionBinding) *Resolver {
		t.Helper()
		g, err := NewGraph(bindings)
		require.NoError(t, err)
		return NewResolver(g, options, component.NewModel("TestComponent"))
	}

	t.Run("RecursiveInstanceComposition", func(t *testing.T) {
		resolver := newResolver(t,
			injectBinding("Foo", instanceRequest("Bar")),
			injectBinding("Bar"),
		)

		expr, err := resolver.InstanceExpression(models.Key{Type: models.TypeRef{Name: "Foo"}}, "app")
		require.NoError(t, err)
		assert.Equal(t, "new Foo(new Bar())", expr.Code)
	})

	t.Run("ProviderRequestWrapsInLambda", func(t *testing.T) {
		resolver := newResolver(t, injectBinding("Bar"))

		expr, err := resolver.ResolveArgument(models.DependencyRequest{
			Kind: models.ProviderRequest,
			Key:  models.Key{Type: models.TypeRef{Name: "Bar"}},
		}, "app")
		require.NoError(t, err)

		assert.Equal(t, "() -> new Bar()", expr.Code)
		assert.Equal(t, "Provider<Bar>", expr.Type.String())
	})

	t.Run("LazyRequestWrapsInLazyOf", func(t *testing.T) {
		resolver := newResolver(t, injectBinding("Bar"))

		expr, err := resolver.ResolveArgument(models.DependencyRequest{
			Kind: models.LazyRequest,
			Key:  models.Key{Type: models.TypeRef{Name: "Bar"}},
		}, "app")
		require.NoError(t, err)

		assert.Equal(t, "lazyOf(() -> new Bar())", expr.Code)
		assert.Equal(t, "Lazy<Bar>", expr.Type.String())
	})

	t.Run("MissingBindingIsGraphError", func(t *testing.T) {
		resolver := newResolver(t)

		_, err := resolver.InstanceExpression(models.Key{Type: models.TypeRef{Name: "Missing"}}, "app")
		require.Error(t, err)

		var jerr errors.JwireError
		require.ErrorAs(t, err, &jerr)
		assert.Equal(t, errors.GraphErrorCode, jerr.ErrorCode())
	})

	t.Run("ModuleInstanceQualifier", func(t *testing.T) {
		moduleType := models.TypeRef{Name: "WidgetModule"}
		binding := &models.ProvisionBinding{
			Key:                    models.Key{Type: models.TypeRef{Name: "Widget"}},
			Kind:                   models.ProvidesMethod,
			Element:                &models.BoundElement{Kind: models.MethodElement, Name: "provideWidget"},
			RequiresModuleInstance: true,
			Module:                 &moduleType,
		}
		resolver := newResolver(t, binding)

		expr, err := resolver.InstanceExpression(binding.Key, "app")
		require.NoError(t, err)
		assert.Equal(t, "widgetModule.provideWidget()", expr.Code)
	})

	t.Run("SelfProviderCycleDefersToProvisionMethod", func(t *testing.T) {
		g, err := NewGraph([]*models.ProvisionBinding{
			injectBinding("Foo", models.DependencyRequest{
				Kind: models.ProviderRequest,
				Key:  models.Key{Type: models.TypeRef{Name: "Foo"}},
			}),
		})
		require.NoError(t, err)
		require.NoError(t, g.Validate())

		model := component.NewModel("TestComponent")
		resolver := NewResolver(g, options, model)

		expr, err := resolver.InstanceExpression(models.Key{Type: models.TypeRef{Name: "Foo"}}, "app")
		require.NoError(t, err)
		assert.Equal(t, "new Foo(() -> getFoo())", expr.Code)

		methods := model.ProvisionMethods()
		require.Len(t, methods, 1)
		assert.Equal(t, "getFoo", methods[0].Name)
	})

	t.Run("LazyCycleAcrossTwoBindings", func(t *testing.T) {
		g, err := NewGraph([]*models.ProvisionBinding{
			injectBinding("Foo", instanceRequest("Bar")),
			injectBinding("Bar", models.DependencyRequest{
				Kind: models.LazyRequest,
				Key:  models.Key{Type: models.TypeRef{Name: "Foo"}},
			}),
		})
		require.NoError(t, err)
		require.NoError(t, g.Validate())

		resolver := NewResolver(g, options, component.NewModel("TestComponent"))
		expr, err := resolver.InstanceExpression(models.Key{Type: models.TypeRef{Name: "Foo"}}, "app")
		require.NoError(t, err)
		assert.Equal(t, "new Foo(new Bar(lazyOf(() -> getFoo())))", expr.Code)
	})

	t.Run("UnvalidatedInstanceCycleIsInternalError", func(t *testing.T) {
		resolver := newResolver(t,
			injectBinding("Foo", instanceRequest("Bar")),
			injectBinding("Bar", instanceRequest("Foo")),
		)

		_, err := resolver.InstanceExpression(models.Key{Type: models.TypeRef{Name: "Foo"}}, "app")
		require.Error(t, err)

		var jerr errors.JwireError
		require.ErrorAs(t, err, &jerr)
		assert.Equal(t, errors.InternalErrorCode, jerr.ErrorCode())
	})

	t.Run("HelperSharedAcrossRequestingPackages", func(t *testing.T) {
		binding := injectBinding("Foo")
		binding.InjectionSites = []models.InjectionSite{
			{Kind: models.FieldInjectionSite, Name: "log", Dependencies: []models.DependencyRequest{instanceRequest("Logger")}},
		}
		g, err := NewGraph([]*models.ProvisionBinding{binding, injectBinding("Logger")})
		require.NoError(t, err)

		model := component.NewModel("TestComponent")
		resolver := NewResolver(g, options, model)

		key := models.Key{Type: models.TypeRef{Name: "Foo"}}
		packages := []string{"app", "app.store", "app.web"}
		for _, pkg := range packages {
			expr, err := resolver.InstanceExpression(key, pkg)
			require.NoError(t, err)
			assert.Equal(t, "injectFoo(new Foo())", expr.Code)
		}

		assert.Len(t, model.Helpers(), 1)
		assert.Equal(t, len(packages), model.HelperRequestCount(key))
	})
}
