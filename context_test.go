package blueroute

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestRequestFromHTTP(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/fr/a?x=1", strings.NewReader("body"))
	req.Host = "shop.example"
	req.Header.Set("Cookie", "a=1")

	rq, err := RequestFromHTTP(req)
	require.NoError(t, err)
	assert.Equal(t, Request{Target: "/fr/a?x=1", Host: "shop.example", Cookie: "a=1", Body: "body"}, rq)
}

func TestRequestFromHTTPWithoutRequestURI(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "http://example.com/en/x?y=2", nil)
	require.NoError(t, err)

	rq, err := RequestFromHTTP(req)
	require.NoError(t, err)
	assert.Equal(t, "/en/x?y=2", rq.Target)
	assert.Equal(t, "", rq.Body)
}

func TestRequestFromHTTPBodyError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", failingReader{})

	_, err := RequestFromHTTP(req)
	assert.ErrorContains(t, err, "boom")
}

func TestContextCookiesCached(t *testing.T) {
	c := newContext(Request{Cookie: "a=1; b=2"})

	first := c.Cookies()
	c.req.Cookie = "a=changed"
	second := c.Cookies()
	assert.Equal(t, first.All(), second.All())

	_, ok := c.Cookie("c")
	assert.False(t, ok)
}

func TestContextSeededRoute(t *testing.T) {
	c := newContext(Request{Target: "/x"})
	assert.False(t, c.Resolved())
	assert.Equal(t, "en", c.Lang())
	assert.Equal(t, "index", c.Controller())
	assert.Empty(t, c.Args())
}

func TestContextStore(t *testing.T) {
	c := newContext(Request{})
	c.Set("b", 2)
	c.Set("a", 1)
	assert.Equal(t, 1, c.Get("a"))
	assert.Equal(t, []string{"a", "b"}, c.store.Keys())

	c.Del("a")
	assert.Nil(t, c.Get("a"))
	assert.Equal(t, 1, c.store.Len())
}

func TestContextDescribe(t *testing.T) {
	r := NewRouter()
	c := r.Resolve(Request{Target: "/pl/news/1", Host: "h", Cookie: "k=v"})

	d := c.Describe()
	assert.Equal(t, "pl", d["lang"])
	assert.Equal(t, "news", d["controller"])
	assert.Equal(t, []string{"1"}, d["args"])
	assert.Equal(t, "h", d["host"])
	assert.Equal(t, true, d["resolved"])
	assert.Equal(t, map[string]string{"k": "v"}, d["cookies"])
	assert.Equal(t, c.ID, d["id"])
}

func TestIDUnique(t *testing.T) {
	assert.NotEqual(t, ID(), ID())
	assert.Len(t, ID(), 32)
}
