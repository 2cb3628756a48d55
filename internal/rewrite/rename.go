package rewrite

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Category names the kind of identifier a Rename targets.
type Category string

const (
	ClassName    Category = "class name"
	InstanceName Category = "instance name"
)

// Selector is a chain of ancestor node types, outermost first, in the manner of a CSS
// child selector: each element is the direct parent of the next and the last element is
// the identifier's parent. An element may list alternatives separated by "|".
//
// Selector{"call_expression", "member_expression"} matches the object of a member
// expression that is itself the callee of a call: file.open().
type Selector []string

// Rename substitutes identifier Old with New at the locations named by Selectors.
type Rename struct {
	Category  Category
	Selectors []Selector
	Old       string
	New       string
}

// Rename applies op to src. Only identifier nodes are considered; an identifier is
// rewritten when at least one selector matches its ancestors. If Old does not occur
// the content is returned unchanged.
func (r *Rewriter) Rename(ctx context.Context, src []byte, op Rename) ([]byte, error) {
	if op.Old == "" || op.Old == op.New || !bytes.Contains(src, []byte(op.Old)) {
		return src, nil
	}
	if op.New == "" {
		return nil, fmt.Errorf("%s rename of %q: empty replacement", op.Category, op.Old)
	}

	tree, err := r.parse(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("%s rename of %q: %w", op.Category, op.Old, err)
	}
	defer tree.Close()

	var edits []edit
	for _, n := range captures(r.identifiers, tree.RootNode(), src, "name") {
		if n.Content(src) != op.Old {
			continue
		}
		if !matchesAny(n, op.Selectors) {
			continue
		}
		edits = append(edits, edit{start: n.StartByte(), end: n.EndByte(), text: op.New})
	}
	return applyEdits(src, edits), nil
}

func matchesAny(n *sitter.Node, selectors []Selector) bool {
	for _, s := range selectors {
		if s.matches(n) {
			return true
		}
	}
	return false
}

// matches walks up from n, one parent per selector element, innermost first.
func (s Selector) matches(n *sitter.Node) bool {
	if len(s) == 0 {
		return false
	}
	cur := n.Parent()
	for i := len(s) - 1; i >= 0; i-- {
		if cur == nil || !typeIn(cur.Type(), s[i]) {
			return false
		}
		cur = cur.Parent()
	}
	return true
}

func typeIn(nodeType, alternatives string) bool {
	for _, alt := range strings.Split(alternatives, "|") {
		if alt == nodeType {
			return true
		}
	}
	return false
}

// String renders the selector the way it is written in the selector tables.
func (s Selector) String() string {
	return strings.Join(s, " ")
}
