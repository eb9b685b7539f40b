// Package conf exposes a read-only configuration tree with type-checked
// accessors and ordered iteration. Trees are parsed from YAML, which also
// accepts JSON documents.
package conf

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	tagString = "!!str"
	tagInt    = "!!int"
)

// Node is one element of a configuration tree. A nil *Node is valid and
// behaves as an absent element: every predicate is false and every getter
// returns the zero value.
type Node struct {
	n *yaml.Node
}

// Parse reads a YAML or JSON document.
func Parse(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "conf: parse")
	}

	return wrap(&doc), nil
}

// Load reads and parses the file at path.
func Load(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "conf: read %s", path)
	}

	node, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "conf: %s", path)
	}
	return node, nil
}

func wrap(n *yaml.Node) *Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		case 0:
			return nil
		default:
			return &Node{n: n}
		}
	}
	return nil
}

// IsObject reports whether the node is a mapping.
func (c *Node) IsObject() bool {
	return c != nil && c.n.Kind == yaml.MappingNode
}

// IsArray reports whether the node is a sequence.
func (c *Node) IsArray() bool {
	return c != nil && c.n.Kind == yaml.SequenceNode
}

// IsString reports whether the node is a string scalar. Quoted numbers count
// as strings, bare ones do not.
func (c *Node) IsString() bool {
	return c != nil && c.n.Kind == yaml.ScalarNode && c.n.ShortTag() == tagString
}

// IsInt reports whether the node is an integer scalar.
func (c *Node) IsInt() bool {
	return c != nil && c.n.Kind == yaml.ScalarNode && c.n.ShortTag() == tagInt
}

// Get returns the value stored under key, or nil when the node is not an
// object or has no such key. On duplicate keys the last one wins.
func (c *Node) Get(key string) *Node {
	if !c.IsObject() {
		return nil
	}

	var found *Node
	for i := 0; i+1 < len(c.n.Content); i += 2 {
		if c.n.Content[i].Value == key {
			found = wrap(c.n.Content[i+1])
		}
	}
	return found
}

// Keys returns the object keys in declaration order.
func (c *Node) Keys() []string {
	if !c.IsObject() {
		return nil
	}

	keys := make([]string, 0, len(c.n.Content)/2)
	for i := 0; i+1 < len(c.n.Content); i += 2 {
		keys = append(keys, c.n.Content[i].Value)
	}
	return keys
}

// Items returns the array elements in order.
func (c *Node) Items() []*Node {
	if !c.IsArray() {
		return nil
	}

	items := make([]*Node, 0, len(c.n.Content))
	for _, item := range c.n.Content {
		items = append(items, wrap(item))
	}
	return items
}

// String returns the scalar value when the node is a string.
func (c *Node) String() string {
	if !c.IsString() {
		return ""
	}
	return c.n.Value
}

// Int returns the integer value and whether the node holds one.
func (c *Node) Int() (int, bool) {
	if !c.IsInt() {
		return 0, false
	}

	var i int
	if err := c.n.Decode(&i); err != nil {
		return 0, false
	}
	return i, true
}

// Len returns the number of object entries or array elements.
func (c *Node) Len() int {
	switch {
	case c.IsObject():
		return len(c.n.Content) / 2
	case c.IsArray():
		return len(c.n.Content)
	}
	return 0
}
