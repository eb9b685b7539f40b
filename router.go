package blueroute

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sfi2k7/blueroute/conf"
)

// RouteMiddleware runs around resolution. A middleware added with Use that
// returns false stops resolution and the remaining Use middlewares. One added
// with Must that returns false stops the remaining Must middlewares.
type RouteMiddleware func(c *Context) bool

// RouteHandler receives every resolved request served over HTTP.
type RouteHandler func(c *Context)

type Router struct {
	mux             *httprouter.Router
	routes          RouteConfig
	middlewares     []RouteMiddleware
	mustmiddlewares []RouteMiddleware
	logger          *slog.Logger
	port            int
	cert            string
	key             string
	isDev           bool
	server          *http.Server
	stopOnInt       bool
	requestCount    uint64
	rqc             *reqcount
	statstoken      string
	statsendpoint   string
	prepare         sync.Once
}

type Config struct {
	r *Router
}

// Config gets the config for the router
func (r *Router) Config() *Config {
	return &Config{r: r}
}

// SetRoutes sets the decoded route configuration
func (c *Config) SetRoutes(rc RouteConfig) *Config {
	c.r.routes = rc
	return c
}

// LoadRoutes decodes the router object of a configuration tree
func (c *Config) LoadRoutes(router *conf.Node) *Config {
	return c.SetRoutes(LoadRouteConfig(router))
}

// SetLogger sets the logger used for request and server logs
func (c *Config) SetLogger(logger *slog.Logger) *Config {
	if logger != nil {
		c.r.logger = logger
	}
	return c
}

// SetDev sets the router to development mode, which logs every resolution
func (c *Config) SetDev(dev bool) *Config {
	c.r.isDev = dev
	return c
}

// SetStatsToken sets the token for the stats endpoint
func (c *Config) SetStatsToken(token string) *Config {
	c.r.statstoken = token
	return c
}

// SetStatsEndpoint sets the endpoint for the stats
// the endpoint must carry a :token parameter
func (c *Config) SetStatsEndpoint(endpoint string) *Config {
	c.r.statsendpoint = endpoint
	return c
}

// DisableStats disables the stats endpoint
func (c *Config) DisableStats() *Config {
	c.r.statsendpoint = ""
	return c
}

// SetPort sets the port for the server
func (c *Config) SetPort(port int) *Config {
	c.r.port = port
	return c
}

// StopOnInterrupt stops the server on interrupt signal
func (c *Config) StopOnInterrupt() *Config {
	c.r.stopOnInt = true
	return c
}

// UseSSL sets the server to use SSL
// cert and key are the paths to the certificate and key files
func (c *Config) UseSSL(cert, key string) *Config {
	c.r.cert = cert
	c.r.key = key
	return c
}

// Use adds a middleware that runs before resolution
func (r *Router) Use(fn RouteMiddleware) {
	r.middlewares = append(r.middlewares, fn)
}

func (r *Router) useFirst(fn RouteMiddleware) {
	r.middlewares = append([]RouteMiddleware{fn}, r.middlewares...)
}

// Must adds a middleware that runs after resolution, even when a Use
// middleware stopped it
func (r *Router) Must(fn RouteMiddleware) {
	r.mustmiddlewares = append(r.mustmiddlewares, fn)
}

func (r *Router) runMiddlewares(c *Context) bool {
	for _, middle := range r.middlewares {
		if !middle(c) {
			return false
		}
	}
	return true
}

func (r *Router) runMust(c *Context) {
	for _, middle := range r.mustmiddlewares {
		if !middle(c) {
			break
		}
	}
}

// Resolve routes one request. It is safe for concurrent use once the
// router is configured.
func (r *Router) Resolve(req Request) *Context {
	c := newContext(req)
	r.route(c)
	return c
}

func (r *Router) route(c *Context) {
	start := time.Now()

	if r.runMiddlewares(c) {
		target := c.req.Target
		c.route = Resolve(r.routes.Effective(target), Segments(target))
		c.resolved = true
	}

	r.runMust(c)

	r.rqc.Add(c.route.controller)
	atomic.AddUint64(&r.requestCount, 1)

	if r.isDev {
		r.logger.Info("route",
			"id", c.ID,
			"target", c.req.Target,
			"lang", c.route.lang,
			"controller", c.route.controller,
			"args", c.route.args,
			"resolved", c.resolved,
			"time", time.Since(start),
			"count", r.rqc.Get(c.route.controller),
			"total", atomic.LoadUint64(&r.requestCount),
		)
	}
}

// Handle serves every request that no mounted route matches: the request is
// resolved and, unless a Use middleware stopped it, passed to fn. The
// Context stays usable after fn returns, but its ResponseWriter does not.
func (r *Router) Handle(fn RouteHandler) {
	r.mux.NotFound = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		rq, err := RequestFromHTTP(req)
		if err != nil {
			r.logger.Warn("request rejected", "target", req.RequestURI, "error", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		c := newContext(rq)
		c.ResponseWriter = w
		c.Request = req

		r.route(c)

		if c.resolved {
			fn(c)
		}
	})
}

// Mount registers a handler for an exact method and path. Mounted routes are
// matched before scheme routing.
func (r *Router) Mount(method, path string, h http.Handler) {
	r.mux.Handler(method, path, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.prepare.Do(r.mountStats)
	r.mux.ServeHTTP(w, req)
}

func (r *Router) mountStats() {
	if len(r.statsendpoint) == 0 {
		return
	}

	r.mux.GET(r.statsendpoint, func(w http.ResponseWriter, req *http.Request, p httprouter.Params) {
		c := &Context{ResponseWriter: w, Request: req}

		token := p.ByName("token")
		if len(r.statstoken) > 0 && token != r.statstoken {
			c.Status(http.StatusForbidden)
			return
		}

		c.Json(O{
			"Total Requests":           atomic.LoadUint64(&r.requestCount),
			"RequestCountByController": r.rqc.Snapshot(),
		})
	})
}

// NewRouter creates a new router
// returns a new router
func NewRouter() *Router {
	router := &Router{
		port:          8080,
		mux:           httprouter.New(),
		logger:        slog.Default(),
		rqc:           &reqcount{r: make(map[string]uint64)},
		statstoken:    "blueroute",
		statsendpoint: "/__internal__/stats/:token",
	}

	// mounted routes must not claim method, case or trailing slash
	// variants of their paths; those go to scheme routing
	router.mux.HandleMethodNotAllowed = false
	router.mux.HandleOPTIONS = false
	router.mux.RedirectTrailingSlash = false
	router.mux.RedirectFixedPath = false

	return router
}

// StartServer starts the server
// returns an error if the server fails to start
func (r *Router) StartServer() error {
	r.prepare.Do(r.mountStats)

	r.server = &http.Server{
		Addr:    ":" + strconv.Itoa(r.port),
		Handler: r,
	}

	if r.stopOnInt {
		exitChan := make(chan os.Signal, 2)
		signal.Notify(exitChan, os.Interrupt, syscall.SIGTERM)

		go func() {
			<-exitChan
			r.logger.Info("shutting down")
			if err := r.StopServer(); err != nil {
				r.logger.Error("shutdown", "error", err)
			}
		}()
	}

	r.logger.Info("listening", "port", r.port, "tls", len(r.cert) > 0 && len(r.key) > 0)

	var err error
	if len(r.cert) > 0 && len(r.key) > 0 {
		err = r.server.ListenAndServeTLS(r.cert, r.key)
	} else {
		err = r.server.ListenAndServe()
	}

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return errors.Wrap(err, "serve")
}

// StopServer stops the server
// returns an error if the server fails to stop
func (r *Router) StopServer() error {
	if r.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	err := r.server.Shutdown(ctx)
	if err == nil {
		return nil
	}

	return r.server.Close()
}
