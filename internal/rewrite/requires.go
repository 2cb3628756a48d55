package rewrite

import (
	"context"
	"fmt"
)

// Require is a module path literal found in a require() call or in the source
// clause of an import/export statement.
type Require struct {
	Value string // literal without quotes
	Start uint32 // byte offset of the opening quote
	End   uint32 // byte offset just past the closing quote
}

// Requires lists the module path literals in src, in source order.
func (r *Rewriter) Requires(ctx context.Context, src []byte) ([]Require, error) {
	if len(src) == 0 {
		return nil, nil
	}
	tree, err := r.parse(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("require scan: %w", err)
	}
	defer tree.Close()

	var out []Require
	for _, n := range captures(r.requires, tree.RootNode(), src, "path") {
		start, end := n.StartByte(), n.EndByte()
		if end-start < 2 {
			continue
		}
		out = append(out, Require{
			Value: string(src[start+1 : end-1]),
			Start: start,
			End:   end,
		})
	}
	return out, nil
}

// RewriteRequires calls fn for every module path literal. When fn reports a change the
// literal is replaced, keeping its original quote character.
func (r *Rewriter) RewriteRequires(ctx context.Context, src []byte, fn func(value string) (string, bool)) ([]byte, error) {
	reqs, err := r.Requires(ctx, src)
	if err != nil {
		return nil, err
	}
	var edits []edit
	for _, req := range reqs {
		next, ok := fn(req.Value)
		if !ok || next == req.Value {
			continue
		}
		quote := string(src[req.Start])
		edits = append(edits, edit{start: req.Start, end: req.End, text: quote + next + quote})
	}
	return applyEdits(src, edits), nil
}
