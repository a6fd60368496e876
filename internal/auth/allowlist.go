// internal/auth/allowlist.go
//
// Declarative table of public routes that bypass token verification.
// A Pattern is a typed list of path segments, each either a literal or a
// named parameter (":idOrSlug"). Matching is exact: same segment count,
// literals equal, parameters non-empty.

package auth

import (
	"fmt"
	"strings"
)

type segmentKind uint8

const (
	literalSegment segmentKind = iota
	paramSegment
)

// Segment is one "/"-separated element of a Pattern.
type Segment struct {
	kind  segmentKind
	value string // literal text, or parameter name without ':'
}

// Literal reports whether s matches a fixed string.
func (s Segment) Literal() bool { return s.kind == literalSegment }

func (s Segment) String() string {
	if s.kind == paramSegment {
		return ":" + s.value
	}
	return s.value
}

func (s Segment) match(part string) bool {
	if s.kind == paramSegment {
		return part != ""
	}
	return part == s.value
}

// Pattern is a parsed route template such as "/api/recipes/:idOrSlug".
type Pattern []Segment

// ParsePattern parses an absolute route template. "/" parses to an empty Pattern.
func ParsePattern(tmpl string) (Pattern, error) {
	if !strings.HasPrefix(tmpl, "/") {
		return nil, fmt.Errorf("pattern %q must start with /", tmpl)
	}
	if tmpl == "/" {
		return Pattern{}, nil
	}
	parts := strings.Split(tmpl[1:], "/")
	p := make(Pattern, 0, len(parts))
	for _, part := range parts {
		switch {
		case part == "":
			return nil, fmt.Errorf("pattern %q has an empty segment", tmpl)
		case strings.HasPrefix(part, ":"):
			if len(part) == 1 {
				return nil, fmt.Errorf("pattern %q has an unnamed parameter", tmpl)
			}
			p = append(p, Segment{kind: paramSegment, value: part[1:]})
		default:
			p = append(p, Segment{kind: literalSegment, value: part})
		}
	}
	return p, nil
}

// MustPattern is ParsePattern for static tables; it panics on error.
func MustPattern(tmpl string) Pattern {
	p, err := ParsePattern(tmpl)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Pattern) String() string {
	if len(p) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, s := range p {
		sb.WriteByte('/')
		sb.WriteString(s.String())
	}
	return sb.String()
}

// Match reports whether the URL path satisfies p.
func (p Pattern) Match(path string) bool {
	if !strings.HasPrefix(path, "/") {
		return false
	}
	rest := path[1:]
	if rest == "" {
		return len(p) == 0
	}
	parts := strings.Split(rest, "/")
	if len(parts) != len(p) {
		return false
	}
	for i, s := range p {
		if !s.match(parts[i]) {
			return false
		}
	}
	return true
}

// Route is one allow-list entry.
type Route struct {
	Method  string
	Pattern Pattern
}

// Public builds a Route from a method and a template, panicking on a bad template.
func Public(method, tmpl string) Route {
	return Route{Method: strings.ToUpper(method), Pattern: MustPattern(tmpl)}
}

func (r Route) String() string { return r.Method + " " + r.Pattern.String() }

// AllowList is the set of routes exempt from token verification.
type AllowList []Route

// Allows reports whether method+path is on the list.
func (a AllowList) Allows(method, path string) bool {
	for _, r := range a {
		if r.Method == method && r.Pattern.Match(path) {
			return true
		}
	}
	return false
}
