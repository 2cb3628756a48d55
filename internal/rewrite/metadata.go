package rewrite

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Metadata is the JSON object embedded in the first JSON-bearing comment of a file.
type Metadata struct {
	JSON  string
	start uint32 // byte range of the JSON text inside the comment
	end   uint32
}

// Metadata returns the embedded metadata of src. ok is false when no comment holds a
// JSON object.
func (r *Rewriter) Metadata(ctx context.Context, src []byte) (md Metadata, ok bool, err error) {
	if len(src) == 0 {
		return Metadata{}, false, nil
	}
	tree, err := r.parse(ctx, src)
	if err != nil {
		return Metadata{}, false, fmt.Errorf("metadata scan: %w", err)
	}
	defer tree.Close()

	for _, n := range captures(r.comments, tree.RootNode(), src, "comment") {
		text := n.Content(src)
		body, offset := commentBody(text)
		trimmed := strings.TrimSpace(body)
		if !strings.HasPrefix(trimmed, "{") || !gjson.Valid(trimmed) {
			continue
		}
		lead := uint32(offset + strings.Index(body, trimmed))
		start := n.StartByte() + lead
		return Metadata{
			JSON:  trimmed,
			start: start,
			end:   start + uint32(len(trimmed)),
		}, true, nil
	}
	return Metadata{}, false, nil
}

// SetMetadata replaces the embedded metadata with fn's result. The comment delimiters and
// surrounding whitespace are preserved. src is returned unchanged when it has no metadata.
func (r *Rewriter) SetMetadata(ctx context.Context, src []byte, fn func(doc string) (string, error)) ([]byte, error) {
	md, ok, err := r.Metadata(ctx, src)
	if err != nil || !ok {
		return src, err
	}
	next, err := fn(md.JSON)
	if err != nil {
		return nil, err
	}
	if next == md.JSON {
		return src, nil
	}
	if !gjson.Valid(next) {
		return nil, fmt.Errorf("metadata rewrite produced invalid JSON")
	}
	return applyEdits(src, []edit{{start: md.start, end: md.end, text: next}}), nil
}

// commentBody strips comment delimiters and reports where the body starts in text.
func commentBody(text string) (string, int) {
	switch {
	case strings.HasPrefix(text, "/*"):
		return strings.TrimSuffix(text[2:], "*/"), 2
	case strings.HasPrefix(text, "//"):
		return text[2:], 2
	}
	return text, 0
}
