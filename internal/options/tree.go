package options

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrNotFound is returned when an option path has no value.
var ErrNotFound = errors.New("option not found")

// Size is a width/height pair (legacy "w,h").
type Size struct {
	Width  int
	Height int
}

// Rect is a rectangle (legacy "x,y,w,h").
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Color is a color in "#rrggbb" notation.
type Color string

// Reader is the read side of the hierarchical option store.
type Reader interface {
	Get(path string, def any) any
	Lookup(path string) (any, bool)
	ChildNames(parent string, direct, internalNodes bool) []string
	AllNames() []string
	MapKeys(base string) []string
	MapLookup(base, key string) (string, bool)
}

// Writer is a Reader that can also mutate the store.
type Writer interface {
	Reader
	Set(path string, value any)
	Remove(path string, recursive bool)
	MapPut(base, key string) string
}

type node struct {
	children map[string]*node
	value    any
	hasValue bool
}

func (n *node) child(name string) *node {
	if n.children == nil {
		return nil
	}
	return n.children[name]
}

func (n *node) empty() bool {
	return !n.hasValue && len(n.children) == 0
}

// sortedNames returns the child names of n in natural order.
func (n *node) sortedNames() []string {
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return naturalLess(names[i], names[j]) })
	return names
}

// Tree is an in-memory option store keyed by dot-separated paths.
// It is not safe for concurrent use.
type Tree struct {
	root *node
}

// NewTree returns an empty option tree.
func NewTree() *Tree {
	return &Tree{root: &node{}}
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, ".")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func (t *Tree) find(path string) *node {
	n := t.root
	for _, seg := range splitPath(path) {
		n = n.child(seg)
		if n == nil {
			return nil
		}
	}
	return n
}

// Get returns the value at path or def when unset.
func (t *Tree) Get(path string, def any) any {
	if v, ok := t.Lookup(path); ok {
		return v
	}
	return def
}

// Lookup returns the value at path and whether it is set.
func (t *Tree) Lookup(path string) (any, bool) {
	n := t.find(path)
	if n == nil || !n.hasValue {
		return nil, false
	}
	return n.value, true
}

// Set stores value at path, creating intermediate nodes.
func (t *Tree) Set(path string, value any) {
	segs := splitPath(path)
	if len(segs) == 0 {
		return
	}
	n := t.root
	for _, seg := range segs {
		next := n.child(seg)
		if next == nil {
			if n.children == nil {
				n.children = make(map[string]*node)
			}
			next = &node{}
			n.children[seg] = next
		}
		n = next
	}
	n.value = normalize(value)
	n.hasValue = true
}

// Remove clears the value at path. With recursive set the whole subtree
// below path is dropped as well; otherwise child options survive.
func (t *Tree) Remove(path string, recursive bool) {
	segs := splitPath(path)
	if len(segs) == 0 {
		if recursive {
			t.root = &node{}
		}
		return
	}

	trail := make([]*node, 0, len(segs)+1)
	n := t.root
	trail = append(trail, n)
	for _, seg := range segs {
		n = n.child(seg)
		if n == nil {
			return
		}
		trail = append(trail, n)
	}

	if recursive {
		n.children = nil
	}
	n.value = nil
	n.hasValue = false

	// prune empty ancestors
	for i := len(segs) - 1; i >= 0; i-- {
		if !trail[i+1].empty() {
			break
		}
		delete(trail[i].children, segs[i])
	}
}

// ChildNames lists option paths below parent. With direct set only the
// immediate children are returned; internalNodes includes paths that have
// children of their own, otherwise only paths holding a value are listed.
func (t *Tree) ChildNames(parent string, direct, internalNodes bool) []string {
	n := t.find(parent)
	if n == nil {
		return nil
	}
	var out []string
	collectNames(n, strings.Join(splitPath(parent), "."), direct, internalNodes, &out)
	return out
}

func collectNames(n *node, prefix string, direct, internalNodes bool, out *[]string) {
	for _, name := range n.sortedNames() {
		c := n.children[name]
		full := joinPath(prefix, name)
		if c.hasValue || (internalNodes && len(c.children) > 0) {
			*out = append(*out, full)
		}
		if !direct {
			collectNames(c, full, direct, internalNodes, out)
		}
	}
}

// AllNames returns every option path holding a value.
func (t *Tree) AllNames() []string {
	return t.ChildNames("", false, false)
}

// Snapshot returns a flat copy of every set option.
func (t *Tree) Snapshot() map[string]any {
	out := make(map[string]any)
	for _, name := range t.AllNames() {
		v, _ := t.Lookup(name)
		out[name] = v
	}
	return out
}

// MapPut returns the item path for key inside the map stored at base,
// creating a new "m<N>" entry when the key is not present yet.
func (t *Tree) MapPut(base, key string) string {
	if p, ok := t.MapLookup(base, key); ok {
		return p
	}
	next := 0
	for _, p := range t.ChildNames(base, true, true) {
		if idx, ok := mapIndex(p); ok && idx >= next {
			next = idx + 1
		}
	}
	p := joinPath(base, "m"+strconv.Itoa(next))
	t.Set(p+".key", key)
	return p
}

// MapLookup returns the item path for key inside the map stored at base.
func (t *Tree) MapLookup(base, key string) (string, bool) {
	for _, p := range t.ChildNames(base, true, true) {
		if _, ok := mapIndex(p); !ok {
			continue
		}
		if k, ok := t.Lookup(p + ".key"); ok && fmt.Sprint(k) == key {
			return p, true
		}
	}
	return "", false
}

// MapKeys lists the keys of the map stored at base.
func (t *Tree) MapKeys(base string) []string {
	var keys []string
	for _, p := range t.ChildNames(base, true, true) {
		if _, ok := mapIndex(p); !ok {
			continue
		}
		if k, ok := t.Lookup(p + ".key"); ok {
			keys = append(keys, fmt.Sprint(k))
		}
	}
	return keys
}

func mapIndex(path string) (int, bool) {
	name := path[strings.LastIndex(path, ".")+1:]
	if len(name) < 2 || name[0] != 'm' {
		return 0, false
	}
	idx, err := strconv.Atoi(name[1:])
	if err != nil {
		return 0, false
	}
	return idx, true
}

func normalize(v any) any {
	switch x := v.(type) {
	case int8:
		return int(x)
	case int16:
		return int(x)
	case int32:
		return int(x)
	case int64:
		return int(x)
	case uint:
		return int(x)
	case uint16:
		return int(x)
	case uint32:
		return int(x)
	case []string:
		out := make([]string, len(x))
		copy(out, x)
		return out
	case []byte:
		out := make([]byte, len(x))
		copy(out, x)
		return out
	}
	return v
}

// naturalLess orders "a2" before "a10".
func naturalLess(a, b string) bool {
	pa, na, oka := splitNumericSuffix(a)
	pb, nb, okb := splitNumericSuffix(b)
	if oka && okb && pa == pb && na != nb {
		return na < nb
	}
	return a < b
}

func splitNumericSuffix(s string) (string, int, bool) {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	if i == len(s) {
		return s, 0, false
	}
	n, err := strconv.Atoi(s[i:])
	if err != nil {
		return s, 0, false
	}
	return s[:i], n, true
}
