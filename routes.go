package blueroute

import (
	"strings"

	"github.com/sfi2k7/blueroute/conf"
)

// Built-in defaults seeded into every request.
const (
	DefaultLang       = "en"
	DefaultController = "index"
)

// Defaults is the starting point of a resolution: the seeded lang and
// controller and the table to evaluate.
type Defaults struct {
	Lang       string
	Controller string
	Schemes    SchemeTable
}

// RouteOverride replaces the defaults for request paths starting with Prefix.
type RouteOverride struct {
	Prefix     string
	Lang       string
	Controller string
	// Schemes replaces the table wholesale when non-nil.
	Schemes SchemeTable

	hasLang       bool
	hasController bool
}

// WithLang returns a copy of o that sets default_lang.
func (o RouteOverride) WithLang(lang string) RouteOverride {
	o.Lang, o.hasLang = lang, true
	return o
}

// WithController returns a copy of o that sets default_controller.
func (o RouteOverride) WithController(controller string) RouteOverride {
	o.Controller, o.hasController = controller, true
	return o
}

// Matches reports whether o applies to target.
func (o RouteOverride) Matches(target string) bool {
	return strings.HasPrefix(requestURI(target), o.Prefix)
}

// RouteConfig is the decoded "router" configuration object.
type RouteConfig struct {
	// Schemes is the top-level url_schemes, nil when not configured.
	Schemes SchemeTable
	// Routes are kept in declaration order.
	Routes []RouteOverride
}

// LoadRouteConfig decodes the router object. A nil or non-object node yields
// an empty config, which resolves with the built-in defaults.
func LoadRouteConfig(router *conf.Node) RouteConfig {
	var rc RouteConfig
	if !router.IsObject() {
		return rc
	}

	rc.Schemes = DecodeSchemes(router.Get("url_schemes"))

	routes := router.Get("routes")
	for _, prefix := range routes.Keys() {
		route := routes.Get(prefix)
		if !route.IsObject() {
			continue
		}

		o := RouteOverride{Prefix: prefix, Schemes: DecodeSchemes(route.Get("url_schemes"))}
		if v := route.Get("default_lang"); v.IsString() {
			o = o.WithLang(v.String())
		}
		if v := route.Get("default_controller"); v.IsString() {
			o = o.WithController(v.String())
		}
		rc.Routes = append(rc.Routes, o)
	}

	return rc
}

// Effective returns the defaults for target. Every matching override is
// applied in declaration order, so the last match wins field by field.
func (rc RouteConfig) Effective(target string) Defaults {
	d := Defaults{Lang: DefaultLang, Controller: DefaultController, Schemes: rc.Schemes}

	for _, o := range rc.Routes {
		if !o.Matches(target) {
			continue
		}
		if o.hasLang {
			d.Lang = o.Lang
		}
		if o.hasController {
			d.Controller = o.Controller
		}
		if o.Schemes != nil {
			d.Schemes = o.Schemes
		}
	}

	if d.Schemes == nil {
		d.Schemes = defaultSchemes
	}
	return d
}

var defaultSchemes = DefaultSchemes()
