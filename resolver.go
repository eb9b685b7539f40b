package blueroute

import "strings"

// ResolvedRoute is the outcome of routing one request.
type ResolvedRoute struct {
	lang       string
	controller string
	args       []string
}

// Lang returns the resolved language.
func (r ResolvedRoute) Lang() string { return r.lang }

// Controller returns the resolved controller, parts joined with "/".
func (r ResolvedRoute) Controller() string { return r.controller }

// Args returns a copy of the positional arguments.
func (r ResolvedRoute) Args() []string {
	args := make([]string, len(r.args))
	copy(args, r.args)
	return args
}

// toO renders the route for JSON output.
func (r ResolvedRoute) toO() O {
	return O{"lang": r.lang, "controller": r.controller, "args": r.Args()}
}

type resolution struct {
	cur        *Cursor
	lang       string
	controller string
	parts      []string
	args       []string
}

// Resolve walks the table of d against segments. It never fails: tokens
// that find no segment fall back to their default_value or do nothing.
func Resolve(d Defaults, segments []string) ResolvedRoute {
	res := &resolution{
		cur:        NewCursor(segments),
		lang:       d.Lang,
		controller: d.Controller,
		args:       []string{},
	}

	for _, token := range d.Schemes {
		res.apply(token)
		res.cur.AdvanceScheme()
	}

	if len(res.parts) > 0 {
		res.controller = strings.Join(res.parts, "/")
	}

	return ResolvedRoute{lang: res.lang, controller: res.controller, args: res.args}
}

// pick applies value > segment > default_value for single-segment tokens.
func (res *resolution) pick(t SchemeToken) (string, bool) {
	if t.value.ok {
		return t.value.s, true
	}
	if seg, ok := res.cur.Current(); ok {
		return t.decorate(seg), true
	}
	if t.fallback.ok {
		return t.fallback.s, true
	}
	return "", false
}

func (res *resolution) apply(t SchemeToken) {
	switch t.Tag {
	case TagLang:
		if s, ok := res.pick(t); ok {
			res.lang = s
		}
	case TagController:
		if s, ok := res.pick(t); ok {
			res.parts = append(res.parts, s)
		}
	case TagArg:
		if s, ok := res.pick(t); ok {
			res.args = append(res.args, s)
		}
	case TagArgs:
		if res.cur.Remaining() == 0 {
			return
		}
		if t.hasCount {
			res.args = append(res.args, res.cur.ConsumeSegments(t.count)...)
			return
		}
		res.args = append(res.args, res.cur.ConsumeAll()...)
	}
}
