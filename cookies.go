package blueroute

import (
	"sort"
	"strings"
)

// CookieJar holds the cookies of one request by name.
type CookieJar struct {
	m map[string]string
}

// ParseCookies parses a raw Cookie header. Pairs are separated by ';' and
// any spaces right after it; the first '=' splits name from value. A later
// name replaces an earlier one.
func ParseCookies(header string) CookieJar {
	jar := CookieJar{m: make(map[string]string)}

	var key, value strings.Builder
	inValue := false

	for i := 0; i < len(header); i++ {
		switch ch := header[i]; ch {
		case ';':
			jar.m[key.String()] = value.String()
			key.Reset()
			value.Reset()
			inValue = false

			for i+1 < len(header) && header[i+1] == ' ' {
				i++
			}
		case '=':
			inValue = true
		default:
			if inValue {
				value.WriteByte(ch)
			} else {
				key.WriteByte(ch)
			}
		}
	}

	if key.Len() > 0 {
		jar.m[key.String()] = value.String()
	}
	return jar
}

// Get returns the value of the named cookie.
func (j CookieJar) Get(name string) (string, bool) {
	v, ok := j.m[name]
	return v, ok
}

// All returns a copy of every cookie.
func (j CookieJar) All() map[string]string {
	all := make(map[string]string, len(j.m))
	for k, v := range j.m {
		all[k] = v
	}
	return all
}

// Names returns the cookie names sorted.
func (j CookieJar) Names() []string {
	names := make([]string, 0, len(j.m))
	for k := range j.m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of cookies.
func (j CookieJar) Len() int {
	return len(j.m)
}
