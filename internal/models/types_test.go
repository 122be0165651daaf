package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeRefRendering(t *testing.T) {
	t.Run("SimpleType", func(t *testing.T) {
		ref := TypeRef{Name: "Widget"}
		assert.Equal(t, "Widget", ref.String())
		assert.Equal(t, "Widget", ref.RawString())
		assert.False(t, ref.IsParameterized())
	})

	t.Run("ParameterizedType", func(t *testing.T) {
		ref := TypeRef{Name: "Map", Args: []TypeRef{{Name: "Key"}, {Name: "Value"}}}
		assert.Equal(t, "Map<Key, Value>", ref.String())
		assert.Equal(t, "Map", ref.RawString())
		assert.True(t, ref.IsParameterized())
	})

	t.Run("NestedParameterizedType", func(t *testing.T) {
		ref := TypeRef{Name: "List", Args: []TypeRef{
			{Name: "Optional", Args: []TypeRef{{Name: "Widget"}}},
		}}
		assert.Equal(t, "List<Optional<Widget>>", ref.String())
	})
}

func TestTypeRefAccessibility(t *testing.T) {
	t.Run("ExportedTypeAccessibleEverywhere", func(t *testing.T) {
		ref := TypeRef{Name: "Widget", Package: "app.store"}
		assert.True(t, ref.AccessibleFrom("app"))
		assert.True(t, ref.AccessibleFrom("app.store"))
	})

	t.Run("InternalTypeOnlyAccessibleInOwnPackage", func(t *testing.T) {
		ref := TypeRef{Name: "Secret", Package: "app.hidden", Internal: true}
		assert.True(t, ref.AccessibleFrom("app.hidden"))
		assert.False(t, ref.AccessibleFrom("app"))
	})

	t.Run("InaccessibleArgumentMakesTypeInaccessible", func(t *testing.T) {
		ref := TypeRef{Name: "List", Args: []TypeRef{
			{Name: "Secret", Package: "app.hidden", Internal: true},
		}}
		assert.False(t, ref.AccessibleFrom("app"))
		assert.True(t, ref.AccessibleFrom("app.hidden"))
	})
}

func TestKeyID(t *testing.T) {
	t.Run("Unqualified", func(t *testing.T) {
		key := Key{Type: TypeRef{Name: "Widget"}}
		assert.Equal(t, "Widget", key.ID())
	})

	t.Run("Qualified", func(t *testing.T) {
		key := Key{Type: TypeRef{Name: "Store"}, Qualifier: "Db"}
		assert.Equal(t, "@Db Store", key.ID())
	})

	t.Run("QualifierDistinguishesKeys", func(t *testing.T) {
		plain := Key{Type: TypeRef{Name: "Store"}}
		qualified := Key{Type: TypeRef{Name: "Store"}, Qualifier: "Db"}
		assert.NotEqual(t, plain.ID(), qualified.ID())
	})
}

func TestShouldCheckForNull(t *testing.T) {
	binding := &ProvisionBinding{Kind: ProvidesMethod}

	assert.False(t, binding.ShouldCheckForNull(nil))
	assert.False(t, binding.ShouldCheckForNull(&CompilerOptions{}))
	assert.True(t, binding.ShouldCheckForNull(&CompilerOptions{NullChecks: true}))

	binding.Nullable = true
	assert.False(t, binding.ShouldCheckForNull(&CompilerOptions{NullChecks: true}))
}

func TestObjectType(t *testing.T) {
	assert.True(t, ObjectType.IsObject())
	assert.False(t, TypeRef{Name: "Widget"}.IsObject())
	assert.False(t, TypeRef{Name: "Object", Args: []TypeRef{{Name: "T"}}}.IsObject())
}
