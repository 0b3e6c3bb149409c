package verb

import (
	"strings"
	"unicode"

	"verbtree/internal/errors"
)

// Kind tells how the text bound to a placeholder is turned into a value.
type Kind int

const (
	KindNone Kind = iota
	PathFromParent
	PathFromDirectory
	OtherPanelDirectory
)

var kindNames = map[Kind]string{
	KindNone:            "none",
	PathFromParent:      "path-from-parent",
	PathFromDirectory:   "path-from-directory",
	OtherPanelDirectory: "other-panel-directory",
}

func (k Kind) String() string {
	return kindNames[k]
}

// ParseKind parses the part after ':' in "{name:kind}".
func ParseKind(s string) (Kind, bool) {
	if s == "" {
		return KindNone, true
	}
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return KindNone, false
}

// Segment is either literal text or a placeholder.
type Segment struct {
	Literal string
	Name    string
	Kind    Kind
}

// IsPlaceholder reports whether the segment is a {name} slot.
func (s Segment) IsPlaceholder() bool {
	return s.Name != ""
}

// Bindings maps placeholder names to the text the user typed for them.
type Bindings map[string]string

// Pattern is a parsed template of literal text and placeholders.
type Pattern struct {
	source   string
	segments []Segment
}

// ParsePattern parses an invocation pattern. Placeholder names must be unique.
func ParsePattern(s string) (Pattern, error) {
	return parse(s, true)
}

// parseTemplate parses an execution template, where a placeholder may repeat.
func parseTemplate(s string) (Pattern, error) {
	return parse(s, false)
}

func parse(s string, unique bool) (Pattern, error) {
	p := Pattern{source: s}
	seen := make(map[string]bool)
	var lit strings.Builder
	rest := s
	for rest != "" {
		open := strings.IndexAny(rest, "{}")
		if open < 0 {
			lit.WriteString(rest)
			break
		}
		if rest[open] == '}' {
			return Pattern{}, errors.InvalidVerbf(s, "unbalanced '}'")
		}
		lit.WriteString(rest[:open])
		rest = rest[open+1:]

		end := strings.IndexAny(rest, "{}")
		if end < 0 || rest[end] == '{' {
			return Pattern{}, errors.InvalidVerbf(s, "unbalanced '{'")
		}
		seg, err := parsePlaceholder(s, rest[:end])
		if err != nil {
			return Pattern{}, err
		}
		if unique && seen[seg.Name] {
			return Pattern{}, errors.InvalidVerbf(s, "duplicate placeholder %q", seg.Name)
		}
		seen[seg.Name] = true
		if lit.Len() > 0 {
			p.segments = append(p.segments, Segment{Literal: lit.String()})
			lit.Reset()
		}
		p.segments = append(p.segments, seg)
		rest = rest[end+1:]
	}
	if lit.Len() > 0 {
		p.segments = append(p.segments, Segment{Literal: lit.String()})
	}
	return p, nil
}

func parsePlaceholder(source, body string) (Segment, error) {
	name, kindName, _ := strings.Cut(body, ":")
	if name == "" {
		return Segment{}, errors.InvalidVerbf(source, "empty placeholder name")
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return Segment{}, errors.InvalidVerbf(source, "invalid placeholder name %q", name)
		}
	}
	kind, ok := ParseKind(kindName)
	if !ok {
		return Segment{}, errors.InvalidVerbf(source, "unknown placeholder kind %q", kindName)
	}
	return Segment{Name: name, Kind: kind}, nil
}

func (p Pattern) String() string {
	return p.source
}

// Segments returns a copy of the parsed segments.
func (p Pattern) Segments() []Segment {
	return append([]Segment(nil), p.segments...)
}

// Placeholders returns the placeholder segments in order.
func (p Pattern) Placeholders() []Segment {
	var out []Segment
	for _, seg := range p.segments {
		if seg.IsPlaceholder() {
			out = append(out, seg)
		}
	}
	return out
}

// KindOf returns the declared kind of a placeholder.
func (p Pattern) KindOf(name string) (Kind, bool) {
	for _, seg := range p.segments {
		if seg.Name == name {
			return seg.Kind, true
		}
	}
	return KindNone, false
}

// Name is the first word of the pattern's leading literal: "copy" for
// "copy {newpath}". Empty when the pattern starts with a placeholder.
func (p Pattern) Name() string {
	if len(p.segments) == 0 || p.segments[0].IsPlaceholder() {
		return ""
	}
	fields := strings.Fields(p.segments[0].Literal)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Specificity counts the literal non-space characters; more literal text
// means a tighter pattern.
func (p Pattern) Specificity() int {
	n := 0
	for _, seg := range p.segments {
		for _, r := range seg.Literal {
			if !unicode.IsSpace(r) {
				n++
			}
		}
	}
	return n
}

// Match binds the placeholders of p against the typed text. Literals must
// match exactly. A placeholder followed by a literal stops at an occurrence
// of that literal; the last placeholder takes the rest of the text.
func (p Pattern) Match(text string) (Bindings, bool) {
	return matchAll(p.segments, text)
}

// MatchNamed matches text as if the pattern's name were replaced by name,
// which is how "cp ../d.txt" reaches "copy {newpath}" through its shortcut.
func (p Pattern) MatchNamed(name, text string) (Bindings, bool) {
	head := p.Name()
	if head == "" || name == "" {
		return nil, false
	}
	segs := p.Segments()
	lit := strings.TrimLeftFunc(segs[0].Literal, unicode.IsSpace)
	segs[0].Literal = name + strings.TrimPrefix(lit, head)
	return matchAll(segs, text)
}

// IsPrefix reports whether text could be the start of this pattern's name,
// for completion while the user is still typing.
func (p Pattern) IsPrefix(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" || strings.ContainsAny(text, " \t") {
		return false
	}
	return strings.HasPrefix(p.Name(), text)
}

func matchAll(segs []Segment, text string) (Bindings, bool) {
	b := make(Bindings)
	if !match(segs, strings.TrimSpace(text), b) {
		return nil, false
	}
	return b, true
}

func match(segs []Segment, text string, b Bindings) bool {
	if len(segs) == 0 {
		return text == ""
	}
	seg := segs[0]
	if !seg.IsPlaceholder() {
		if !strings.HasPrefix(text, seg.Literal) {
			return false
		}
		return match(segs[1:], text[len(seg.Literal):], b)
	}

	rest := segs[1:]
	if len(rest) == 0 {
		value := strings.TrimSpace(text)
		if value == "" {
			return false
		}
		b[seg.Name] = value
		return true
	}

	if rest[0].IsPlaceholder() {
		// two placeholders in a row are split at whitespace
		t := strings.TrimLeftFunc(text, unicode.IsSpace)
		i := strings.IndexFunc(t, unicode.IsSpace)
		if i <= 0 {
			return false
		}
		b[seg.Name] = t[:i]
		if match(rest, t[i:], b) {
			return true
		}
		delete(b, seg.Name)
		return false
	}

	anchor := rest[0].Literal
	for from := 0; from < len(text); {
		i := strings.Index(text[from:], anchor)
		if i < 0 {
			return false
		}
		cut := from + i
		if value := strings.TrimSpace(text[:cut]); value != "" {
			b[seg.Name] = value
			if match(rest, text[cut:], b) {
				return true
			}
			delete(b, seg.Name)
		}
		from = cut + 1
	}
	return false
}
