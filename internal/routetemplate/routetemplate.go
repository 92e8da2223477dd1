// Package routetemplate implements the ":name" route template syntax used
// for endpoint URLs. Template parameters consume matching call parameters;
// anything left over becomes the query string.
//
// The syntax is deliberately small (named path segments only). If needs grow
// toward RFC 6570 territory, adopt a URI template library instead of
// extending this.
package routetemplate

import (
	"fmt"
	"net/url"
	"strings"
)

type segment struct {
	literal string
	param   string // non-empty for ":name" segments
}

// Template is a parsed route template.
type Template struct {
	raw      string
	segments []segment
}

// Parse parses a route template such as "/songs/:id". A bare ":" segment is
// an error. Trailing and embedded literal segments pass through untouched,
// so absolute base routes ("https://api.example.com/v1/songs/:id") work.
func Parse(raw string) (*Template, error) {
	t := &Template{raw: raw}
	for _, part := range strings.Split(raw, "/") {
		if strings.HasPrefix(part, ":") {
			name := part[1:]
			if name == "" {
				return nil, fmt.Errorf("route template %q: empty parameter name", raw)
			}
			t.segments = append(t.segments, segment{param: name})
			continue
		}
		t.segments = append(t.segments, segment{literal: part})
	}
	return t, nil
}

// Raw returns the template source string.
func (t *Template) Raw() string {
	return t.raw
}

// Vars returns the parameter names in template order.
func (t *Template) Vars() []string {
	var vars []string
	for _, seg := range t.segments {
		if seg.param != "" {
			vars = append(vars, seg.param)
		}
	}
	return vars
}

// Expand fills the template from params and returns the resulting URL.
// Parameters not consumed by a path segment are encoded as the query string.
// A parameter segment with no matching value is omitted, so "/songs/:id"
// expands to "/songs" when no id is given.
func (t *Template) Expand(params url.Values) string {
	remaining := make(url.Values, len(params))
	for k, v := range params {
		remaining[k] = v
	}

	parts := make([]string, 0, len(t.segments))
	for _, seg := range t.segments {
		if seg.param == "" {
			parts = append(parts, seg.literal)
			continue
		}
		v := remaining.Get(seg.param)
		remaining.Del(seg.param)
		if v == "" {
			continue
		}
		parts = append(parts, url.PathEscape(v))
	}

	u := strings.Join(parts, "/")
	if q := remaining.Encode(); q != "" {
		u += "?" + q
	}
	return u
}
