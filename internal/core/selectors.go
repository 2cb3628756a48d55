package core

import "github.com/ryotapoi/pocascade/internal/rewrite"

// Structural locations rewritten per rename category and role.
// Node type names follow the tree-sitter JavaScript grammar; older grammar
// releases call a function expression "function".
var (
	// Class name inside the definer's own file.
	definerClassSelectors = []rewrite.Selector{
		{"variable_declarator"},
		{"function_expression|function"},
		{"member_expression", "member_expression"},
		{"return_statement"},
		{"assignment_expression"},
		{"export_statement"},
	}

	// Class name inside a referencing file.
	referencerClassSelectors = []rewrite.Selector{
		{"variable_declarator"},
		{"new_expression"},
	}

	// Instance name inside a referencing file.
	referencerInstanceSelectors = []rewrite.Selector{
		{"variable_declarator"},
		{"call_expression", "member_expression"},
	}

	// Instance name of mock data inside a referencing file. Mock data is read through
	// its properties (user.name) rather than called.
	mockDataInstanceSelectors = []rewrite.Selector{
		{"variable_declarator"},
		{"call_expression", "member_expression"},
		{"member_expression"},
	}
)

func instanceSelectors(k Kind) []rewrite.Selector {
	if k == KindMockData {
		return mockDataInstanceSelectors
	}
	return referencerInstanceSelectors
}
