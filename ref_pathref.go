package csvskema

import (
	"fmt"
	"strconv"
	"strings"
)

// PathRef builds JSON Pointer paths in a chain-safe way and creates Issues.
// Paths into a table are /<row>/<column>; paths into a single row are /<column>.
type PathRef interface {
	Index(i int) PathRef
	Pointer() string
	Issue(code, msg string, kv ...any) Issue
}

// Root returns the empty path ("/").
func Root() PathRef { return &pathRef{} }

// At parses an existing pointer such as "/2/1" into a PathRef.
func At(path string) PathRef {
	if path == "" || path == "/" {
		return Root()
	}
	// naive split on '/', ignoring first empty due to leading '/'
	parts := []string{}
	for _, p := range strings.Split(path, "/") {
		if p == "" {
			continue
		}
		parts = append(parts, p)
	}
	return &pathRef{parts: parts}
}

type pathRef struct {
	parts []string
}

func (p *pathRef) Index(i int) PathRef {
	return &pathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

func (p *pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

func (p *pathRef) Issue(code, msg string, kv ...any) Issue {
	var m map[string]any
	if len(kv) > 1 {
		m = make(map[string]any, len(kv)/2)
	}
	for i := 0; i+1 < len(kv); i += 2 {
		m[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return Issue{Path: p.Pointer(), Code: code, Message: msg, Params: m, Row: -1, Column: -1}
}

// Rebase prefixes every issue path with base. Issues produced at the element
// root ("/" or "") take the base path itself. Row and Column are left as-is.
func Rebase(base PathRef, iss Issues) Issues {
	out := make(Issues, 0, len(iss))
	prefix := base.Pointer()
	if prefix == "/" {
		prefix = ""
	}
	for _, it := range iss {
		p := it.Path
		switch {
		case p == "" || p == "/":
			p = base.Pointer()
		case p[0] == '/':
			p = prefix + p
		default:
			p = prefix + "/" + p
		}
		it.Path = p
		out = append(out, it)
	}
	return out
}
