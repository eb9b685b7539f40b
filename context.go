package blueroute

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Request is the raw input of one resolution, as the transport supplied it.
type Request struct {
	// Target is the request target: path plus optional ?query and #fragment.
	Target string
	Host   string
	Cookie string
	Body   string
}

// RequestFromHTTP materializes a Request from r. The body is read fully.
func RequestFromHTTP(r *http.Request) (Request, error) {
	req := Request{
		Target: r.RequestURI,
		Host:   r.Host,
		Cookie: r.Header.Get("Cookie"),
	}

	if req.Target == "" {
		req.Target = r.URL.RequestURI()
	}

	if r.Body != nil {
		bts, err := io.ReadAll(r.Body)
		if err != nil {
			return req, errors.Wrap(err, "read request body")
		}
		req.Body = string(bts)
	}

	return req, nil
}

// Context is the routing state of one request. It is not safe to share a
// Context between requests.
type Context struct {
	ResponseWriter http.ResponseWriter
	Request        *http.Request
	ID             string

	req      Request
	route    ResolvedRoute
	resolved bool
	cookies  *CookieJar
	store    *store
}

func newContext(req Request) *Context {
	return &Context{
		ID:    ID(),
		req:   req,
		store: newStore(),
		route: ResolvedRoute{lang: DefaultLang, controller: DefaultController, args: []string{}},
	}
}

func (c *Context) Set(k string, v interface{}) {
	c.store.Set(k, v)
}

func (c *Context) Get(k string) interface{} {
	v, _ := c.store.Get(k)
	return v
}

func (c *Context) Del(k string) {
	c.store.Del(k)
}

// Route returns the resolved route. Before resolution, or when a hook halted
// it, this is the seeded en/index route.
func (c *Context) Route() ResolvedRoute {
	return c.route
}

// Resolved reports whether the scheme table was evaluated.
func (c *Context) Resolved() bool {
	return c.resolved
}

func (c *Context) Lang() string {
	return c.route.lang
}

func (c *Context) Controller() string {
	return c.route.controller
}

func (c *Context) Args() []string {
	return c.route.Args()
}

// Arg returns the i-th argument, or "" when there are fewer.
func (c *Context) Arg(i int) string {
	if i < 0 || i >= len(c.route.args) {
		return ""
	}
	return c.route.args[i]
}

func (c *Context) Target() string {
	return c.req.Target
}

func (c *Context) Hostname() string {
	return c.req.Host
}

func (c *Context) Body() string {
	return c.req.Body
}

// Cookies parses the Cookie header on first use and keeps the jar for the
// rest of the request.
func (c *Context) Cookies() CookieJar {
	if c.cookies == nil {
		jar := ParseCookies(c.req.Cookie)
		c.cookies = &jar
	}
	return *c.cookies
}

func (c *Context) Cookie(name string) (string, bool) {
	return c.Cookies().Get(name)
}

func (c *Context) HasPrefix(prefix string) bool {
	return strings.HasPrefix(requestURI(c.req.Target), prefix)
}

func (c *Context) SetHeader(key string, value string) {
	c.ResponseWriter.Header().Set(key, value)
}

func (c *Context) Status(statusCode int) {
	c.ResponseWriter.WriteHeader(statusCode)
}

func (c *Context) String(str string) {
	fmt.Fprint(c.ResponseWriter, str)
}

func (c *Context) Json(data interface{}) (int, error) {
	jsoned, err := json.Marshal(data)
	if err != nil {
		return 0, err
	}

	c.ResponseWriter.Header().Set("content-type", "application/json")
	return c.ResponseWriter.Write(jsoned)
}

// Describe renders the route and cookies for inspection output.
func (c *Context) Describe() O {
	o := c.route.toO()
	o["id"] = c.ID
	o["host"] = c.req.Host
	o["resolved"] = c.resolved
	o["cookies"] = c.Cookies().All()
	return o
}

func ID() string {
	return strings.Replace(uuid.NewString(), "-", "", -1)
}
