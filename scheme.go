package blueroute

import (
	"strconv"
	"strings"

	"github.com/sfi2k7/blueroute/conf"
)

// Tag names what a scheme token contributes to a route.
type Tag uint8

const (
	// TagNone marks entries that could not be decoded. They consume a
	// scheme position and nothing else.
	TagNone Tag = iota
	TagLang
	TagController
	TagArgs
	TagArg
)

var tagNames = [...]string{
	TagNone:       "",
	TagLang:       "lang",
	TagController: "controller",
	TagArgs:       "args",
	TagArg:        "arg",
}

// ParseTag maps a configured type name to its Tag. Unknown names yield TagNone.
func ParseTag(s string) Tag {
	for t, name := range tagNames {
		if name != "" && name == s {
			return Tag(t)
		}
	}
	return TagNone
}

func (t Tag) String() string {
	if int(t) < len(tagNames) && t != TagNone {
		return tagNames[t]
	}
	return "none"
}

type optional struct {
	s  string
	ok bool
}

func some(s string) optional { return optional{s: s, ok: true} }

// SchemeToken is one decoded url_schemes entry.
type SchemeToken struct {
	Tag Tag

	value    optional
	prefix   optional
	suffix   optional
	fallback optional
	count    int
	hasCount bool
	detailed bool
}

// TokenOption sets an optional field of a detailed token.
type TokenOption func(*SchemeToken)

// WithValue sets a literal that wins over the path segment.
func WithValue(v string) TokenOption {
	return func(t *SchemeToken) { t.value = some(v) }
}

// WithPrefix prepends p to a consumed segment.
func WithPrefix(p string) TokenOption {
	return func(t *SchemeToken) { t.prefix = some(p) }
}

// WithSuffix appends s to a consumed segment.
func WithSuffix(s string) TokenOption {
	return func(t *SchemeToken) { t.suffix = some(s) }
}

// WithDefault sets the value used when the path has run out.
func WithDefault(v string) TokenOption {
	return func(t *SchemeToken) { t.fallback = some(v) }
}

// WithCount bounds how many segments an args token takes.
func WithCount(n int) TokenOption {
	return func(t *SchemeToken) {
		t.count = n
		t.hasCount = true
	}
}

// Shorthand returns the bare form of a token, as written "lang" or "args".
func Shorthand(tag Tag) SchemeToken {
	return SchemeToken{Tag: tag}
}

// Detailed returns the object form of a token.
func Detailed(tag Tag, opts ...TokenOption) SchemeToken {
	t := SchemeToken{Tag: tag, detailed: true}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Value returns the configured literal.
func (t SchemeToken) Value() (string, bool) { return t.value.s, t.value.ok }

// Default returns the configured default_value.
func (t SchemeToken) Default() (string, bool) { return t.fallback.s, t.fallback.ok }

// Count returns the configured count.
func (t SchemeToken) Count() (int, bool) { return t.count, t.hasCount }

func (t SchemeToken) decorate(segment string) string {
	if !t.prefix.ok && !t.suffix.ok {
		return segment
	}
	return t.prefix.s + segment + t.suffix.s
}

func (t SchemeToken) String() string {
	if !t.detailed {
		return t.Tag.String()
	}

	var sb strings.Builder
	sb.WriteString("{type:")
	sb.WriteString(t.Tag.String())
	for _, f := range []struct {
		name string
		v    optional
	}{{"value", t.value}, {"prefix", t.prefix}, {"suffix", t.suffix}, {"default_value", t.fallback}} {
		if f.v.ok {
			sb.WriteString(" " + f.name + ":" + strconv.Quote(f.v.s))
		}
	}
	if t.hasCount {
		sb.WriteString(" count:" + strconv.Itoa(t.count))
	}
	sb.WriteString("}")
	return sb.String()
}

// SchemeTable is an ordered list of tokens. Tables are never modified after
// they are built and may be shared between requests.
type SchemeTable []SchemeToken

// DefaultSchemes is the table used when configuration supplies none:
// lang, {type: controller, default_value: index}, controller, args.
func DefaultSchemes() SchemeTable {
	return SchemeTable{
		Shorthand(TagLang),
		Detailed(TagController, WithDefault(DefaultController)),
		Shorthand(TagController),
		Shorthand(TagArgs),
	}
}

func (st SchemeTable) String() string {
	parts := make([]string, len(st))
	for i, t := range st {
		parts[i] = t.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// DecodeSchemes decodes a url_schemes array. It returns nil when n is not an
// array. Entries that are neither strings nor objects, objects without a
// string type and unknown type names all decode to TagNone tokens so that
// they keep their scheme position.
func DecodeSchemes(n *conf.Node) SchemeTable {
	if !n.IsArray() {
		return nil
	}

	items := n.Items()
	table := make(SchemeTable, 0, len(items))
	for _, item := range items {
		table = append(table, decodeToken(item))
	}
	return table
}

func decodeToken(n *conf.Node) SchemeToken {
	switch {
	case n.IsString():
		return Shorthand(ParseTag(n.String()))
	case !n.IsObject():
		return Shorthand(TagNone)
	}

	kind := n.Get("type")
	if !kind.IsString() {
		return Detailed(TagNone)
	}

	var opts []TokenOption
	for key, opt := range map[string]func(string) TokenOption{
		"value":         WithValue,
		"prefix":        WithPrefix,
		"suffix":        WithSuffix,
		"default_value": WithDefault,
	} {
		if v := n.Get(key); v.IsString() {
			opts = append(opts, opt(v.String()))
		}
	}
	if c, ok := n.Get("count").Int(); ok {
		opts = append(opts, WithCount(c))
	}

	return Detailed(ParseTag(kind.String()), opts...)
}
