package query

import "fmt"

// Type is the kind of search input.
type Type string

// Search input types.
const (
	Image Type = "image"
	URL   Type = "url"
	Text  Type = "text"
)

// IsValid checks if the type is one of the supported values.
func (t Type) IsValid() bool {
	return t == Image || t == URL || t == Text
}

// Query is what the user searched with. Content holds raw text, a URL
// or a base64-encoded image depending on the type.
type Query struct {
	typ     Type
	content string
}

// New validates and creates a Query.
func New(typ Type, content string) (Query, error) {
	if typ == "" {
		return Query{}, fmt.Errorf("query type is required")
	}
	if content == "" {
		return Query{}, fmt.Errorf("query content is required")
	}
	if !typ.IsValid() {
		return Query{}, fmt.Errorf("unsupported query type %q", typ)
	}
	return Query{typ: typ, content: content}, nil
}

// Reconstruct restores a Query from storage without validation.
func Reconstruct(typ Type, content string) Query {
	return Query{typ: typ, content: content}
}

// Type returns the query type.
func (q Query) Type() Type { return q.typ }

// Content returns the query payload.
func (q Query) Content() string { return q.content }

// IsImage reports whether the query carries an image payload.
func (q Query) IsImage() bool { return q.typ == Image }

// WithContent returns a copy of the query with the content replaced.
func (q Query) WithContent(content string) Query {
	return Query{typ: q.typ, content: content}
}

// IsZero reports whether the query was never set.
func (q Query) IsZero() bool { return q.typ == "" && q.content == "" }
