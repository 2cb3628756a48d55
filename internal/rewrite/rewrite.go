// Package rewrite performs structural edits on JavaScript source using tree-sitter.
//
// Every edit is located through the syntax tree rather than by text search, so string
// literals, comments and property names that happen to match are never touched.
package rewrite

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

const (
	identifierQuery = `(identifier) @name`

	requireQuery = `
((call_expression
  function: (identifier) @fn
  arguments: (arguments (string) @path))
 (#eq? @fn "require"))
(import_statement source: (string) @path)
(export_statement source: (string) @path)
`

	commentQuery = `(comment) @comment`
)

// Rewriter holds the JavaScript grammar and its compiled queries.
// A Rewriter is safe for concurrent use: each call parses with its own parser.
type Rewriter struct {
	lang *sitter.Language

	once        sync.Once
	identifiers *sitter.Query
	requires    *sitter.Query
	comments    *sitter.Query
	err         error
}

// New returns a Rewriter for JavaScript sources.
func New() *Rewriter {
	return &Rewriter{lang: javascript.GetLanguage()}
}

func (r *Rewriter) compile() error {
	r.once.Do(func() {
		var err error
		if r.identifiers, err = sitter.NewQuery([]byte(identifierQuery), r.lang); err != nil {
			r.err = fmt.Errorf("compiling identifier query: %w", err)
			return
		}
		if r.requires, err = sitter.NewQuery([]byte(requireQuery), r.lang); err != nil {
			r.err = fmt.Errorf("compiling require query: %w", err)
			return
		}
		if r.comments, err = sitter.NewQuery([]byte(commentQuery), r.lang); err != nil {
			r.err = fmt.Errorf("compiling comment query: %w", err)
			return
		}
	})
	return r.err
}

// parse builds a syntax tree. The parser is not shared between goroutines.
func (r *Rewriter) parse(ctx context.Context, src []byte) (*sitter.Tree, error) {
	if err := r.compile(); err != nil {
		return nil, err
	}
	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(r.lang)
	return p.ParseCtx(ctx, nil, src)
}

// captures returns the nodes captured as name, in source order.
func captures(q *sitter.Query, root *sitter.Node, src []byte, name string) []*sitter.Node {
	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, root)

	var out []*sitter.Node
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		m = qc.FilterPredicates(m, src)
		for _, c := range m.Captures {
			if q.CaptureNameForId(c.Index) == name {
				out = append(out, c.Node)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartByte() < out[j].StartByte()
	})
	return out
}

// edit replaces src[start:end] with text.
type edit struct {
	start, end uint32
	text       string
}

// applyEdits returns src with all edits applied. Overlapping edits keep the first one.
// When there is nothing to apply, src itself is returned.
func applyEdits(src []byte, edits []edit) []byte {
	if len(edits) == 0 {
		return src
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].start < edits[j].start })

	var buf bytes.Buffer
	buf.Grow(len(src))
	var last uint32
	for _, e := range edits {
		if e.start < last {
			continue
		}
		buf.Write(src[last:e.start])
		buf.WriteString(e.text)
		last = e.end
	}
	buf.Write(src[last:])
	return buf.Bytes()
}
