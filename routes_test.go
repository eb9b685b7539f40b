package blueroute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const routesDoc = `
router:
  routes:
    admin:
      default_controller: dashboard
      url_schemes: [controller, args]
    admin/pl:
      default_lang: pl
    api/:
      default_lang: xx
      url_schemes:
        - {type: controller, value: api}
        - controller
        - args
    broken: "not an object"
`

func TestLoadRouteConfig(t *testing.T) {
	rc := LoadRouteConfig(mustParse(t, routesDoc).Get("router"))

	assert.Nil(t, rc.Schemes)
	require.Len(t, rc.Routes, 3)
	assert.Equal(t, "admin", rc.Routes[0].Prefix)
	assert.Equal(t, "admin/pl", rc.Routes[1].Prefix)
	assert.Equal(t, "api/", rc.Routes[2].Prefix)
	assert.Len(t, rc.Routes[0].Schemes, 2)
	assert.Nil(t, rc.Routes[1].Schemes)
}

func TestEffectiveBuiltinDefaults(t *testing.T) {
	d := LoadRouteConfig(nil).Effective("/anything")

	assert.Equal(t, "en", d.Lang)
	assert.Equal(t, "index", d.Controller)
	assert.Equal(t, DefaultSchemes(), d.Schemes)
}

func TestEffectiveOverrides(t *testing.T) {
	rc := LoadRouteConfig(mustParse(t, routesDoc).Get("router"))

	d := rc.Effective("/admin/users")
	assert.Equal(t, "en", d.Lang)
	assert.Equal(t, "dashboard", d.Controller)
	assert.Equal(t, SchemeTable{Shorthand(TagController), Shorthand(TagArgs)}, d.Schemes)

	// both admin and admin/pl match; later fields win, earlier ones persist
	d = rc.Effective("/admin/pl/x")
	assert.Equal(t, "pl", d.Lang)
	assert.Equal(t, "dashboard", d.Controller)
	assert.Len(t, d.Schemes, 2)

	// prefixes are plain string prefixes
	d = rc.Effective("/administrator")
	assert.Equal(t, "dashboard", d.Controller)

	d = rc.Effective("/api")
	assert.Equal(t, "index", d.Controller)
	assert.Equal(t, DefaultSchemes(), d.Schemes)
}

func TestEffectiveLastMatchWins(t *testing.T) {
	rc := LoadRouteConfig(mustParse(t, `
routes:
  "": {default_lang: aa, url_schemes: [args]}
  a: {default_lang: bb}
  ab: {default_lang: cc, url_schemes: [lang]}
  a/: {default_lang: dd}
`))

	d := rc.Effective("/ab")
	assert.Equal(t, "cc", d.Lang)
	assert.Equal(t, SchemeTable{Shorthand(TagLang)}, d.Schemes)

	d = rc.Effective("/a/")
	assert.Equal(t, "dd", d.Lang)
	assert.Equal(t, SchemeTable{Shorthand(TagArgs)}, d.Schemes)

	d = rc.Effective("/z")
	assert.Equal(t, "aa", d.Lang)
}

func TestEffectiveTopLevelSchemes(t *testing.T) {
	rc := LoadRouteConfig(mustParse(t, `
url_schemes: [controller]
routes:
  v2: {url_schemes: [lang, controller]}
`))

	assert.Equal(t, SchemeTable{Shorthand(TagController)}, rc.Effective("/users").Schemes)
	assert.Equal(t, SchemeTable{Shorthand(TagLang), Shorthand(TagController)}, rc.Effective("/v2/users").Schemes)
	// loading does not leak overrides into the top-level table
	assert.Equal(t, SchemeTable{Shorthand(TagController)}, rc.Effective("/users").Schemes)
}

func TestEffectiveResolves(t *testing.T) {
	rc := LoadRouteConfig(mustParse(t, routesDoc).Get("router"))

	target := "/api/users/7?fields=name"
	r := Resolve(rc.Effective(target), Segments(target))
	assert.Equal(t, "xx", r.Lang())
	assert.Equal(t, "api/users", r.Controller())
	assert.Equal(t, []string{"7"}, r.Args())

	target = "/admin/users/7"
	r = Resolve(rc.Effective(target), Segments(target))
	assert.Equal(t, "en", r.Lang())
	assert.Equal(t, "admin", r.Controller())
	assert.Equal(t, []string{"users", "7"}, r.Args())
}

func TestRouteOverrideMatches(t *testing.T) {
	o := RouteOverride{Prefix: "shop"}
	assert.True(t, o.Matches("/shop/cart"))
	assert.True(t, o.Matches("shop"))
	assert.False(t, o.Matches("/sho"))
	assert.False(t, o.Matches("//shop"))
}
