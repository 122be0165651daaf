package codegen

import (
	"fmt"
	"strings"

	"github.com/jwire-dev/jwire/internal/models"
)

// Expression pairs a source fragment with the static type it is known to
// have at the point of emission. Expressions are immutable: every resolved
// argument, every qualifier, and every result is a fresh value.
type Expression struct {
	Type models.TypeRef
	Code string
}

// NewExpression creates an expression with the given static type and fragment
func NewExpression(typ models.TypeRef, code string) Expression {
	return Expression{Type: typ, Code: code}
}

// String returns the source fragment
func (e Expression) String() string {
	return e.Code
}

// JoinArguments renders resolved argument expressions as a comma-separated
// parameter list fragment
func JoinArguments(args []Expression) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.Code
	}
	return strings.Join(parts, ", ")
}

// checkNotNullCall wraps a provider-method invocation with the runtime
// non-null assertion helper
func checkNotNullCall(call string) string {
	return fmt.Sprintf("checkNotNull(%s)", call)
}
