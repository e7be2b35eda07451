package options

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Store persists an option tree.
type Store interface {
	Load(t *Tree) error
	Save(t *Tree) error
	Close() error
}

const (
	tagSize  = "!size"
	tagRect  = "!rect"
	tagColor = "!color"
)

// YAMLStore keeps options in a flat YAML mapping of path -> value.
// Values that YAML cannot type on its own carry a local tag.
type YAMLStore struct {
	path string
}

// NewYAMLStore returns a store backed by the file at path.
func NewYAMLStore(path string) *YAMLStore {
	return &YAMLStore{path: path}
}

// Path returns the backing file.
func (s *YAMLStore) Path() string {
	return s.path
}

// Load merges the stored options into t. A missing file is an empty store.
func (s *YAMLStore) Load(t *Tree) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading options: %w", err)
	}
	return UnmarshalYAML(data, t)
}

// Save writes every option of t, replacing the file atomically.
func (s *YAMLStore) Save(t *Tree) error {
	data, err := MarshalYAML(t)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating options directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing options: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing options: %w", err)
	}
	return nil
}

// Close is a no-op for file stores.
func (s *YAMLStore) Close() error {
	return nil
}

// MarshalYAML renders t as a YAML document.
func MarshalYAML(t *Tree) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.DocumentNode}
	root := &yaml.Node{Kind: yaml.MappingNode}
	doc.Content = append(doc.Content, root)

	for _, name := range t.AllNames() {
		v, _ := t.Lookup(name)
		valNode, err := encodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("encoding option %q: %w", name, err)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: name, Tag: "!!str"},
			valNode,
		)
	}

	return yaml.Marshal(doc)
}

// UnmarshalYAML parses a document produced by MarshalYAML into t.
func UnmarshalYAML(data []byte, t *Tree) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing options: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("parsing options: expected mapping at top level")
	}
	for i := 0; i < len(root.Content)-1; i += 2 {
		keyNode := root.Content[i]
		v, err := decodeValue(root.Content[i+1])
		if err != nil {
			return fmt.Errorf("parsing option %q: %w", keyNode.Value, err)
		}
		t.Set(keyNode.Value, v)
	}
	return nil
}

func encodeValue(v any) (*yaml.Node, error) {
	switch x := v.(type) {
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(x)}, nil
	case int:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(x)}, nil
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: x}, nil
	case []string:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, s := range x {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s})
		}
		return seq, nil
	case []byte:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!binary", Value: base64.StdEncoding.EncodeToString(x)}, nil
	case Size:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagSize, Value: fmt.Sprintf("%d,%d", x.Width, x.Height)}, nil
	case Rect:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagRect, Value: fmt.Sprintf("%d,%d,%d,%d", x.X, x.Y, x.Width, x.Height)}, nil
	case Color:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagColor, Value: string(x)}, nil
	}
	return nil, fmt.Errorf("unsupported value type %T", v)
}

func decodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.SequenceNode:
		out := make([]string, 0, len(n.Content))
		for _, c := range n.Content {
			out = append(out, c.Value)
		}
		return out, nil
	case yaml.ScalarNode:
	default:
		return nil, fmt.Errorf("unexpected node kind %d", n.Kind)
	}

	switch n.ShortTag() {
	case "!!bool":
		return strconv.ParseBool(n.Value)
	case "!!int":
		return strconv.Atoi(n.Value)
	case "!!binary":
		return base64.StdEncoding.DecodeString(n.Value)
	case tagSize:
		nums, err := splitInts(n.Value, 2)
		if err != nil {
			return nil, err
		}
		return Size{Width: nums[0], Height: nums[1]}, nil
	case tagRect:
		nums, err := splitInts(n.Value, 4)
		if err != nil {
			return nil, err
		}
		return Rect{X: nums[0], Y: nums[1], Width: nums[2], Height: nums[3]}, nil
	case tagColor:
		return Color(n.Value), nil
	}
	return n.Value, nil
}

func splitInts(s string, want int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != want {
		return nil, fmt.Errorf("expected %d comma separated numbers, got %q", want, s)
	}
	out := make([]int, want)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", p, err)
		}
		out[i] = n
	}
	return out, nil
}
