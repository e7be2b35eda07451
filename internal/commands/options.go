package commands

import (
	"fmt"
	"strings"

	"github.com/ruminaider/psiconf/internal/config"
	"github.com/ruminaider/psiconf/internal/options"
	"github.com/ruminaider/psiconf/internal/profiles"
)

// GetOption returns the value stored at path in the profile's options.
func GetOption(roots profiles.Roots, profile string, store config.StoreConfig, path string) (any, error) {
	tree, err := LoadOptions(roots, profile, store)
	if err != nil {
		return nil, err
	}
	v, ok := tree.Lookup(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", options.ErrNotFound, path)
	}
	return v, nil
}

// DumpOptions renders every option at or below prefix as YAML. An empty
// prefix dumps the whole tree.
func DumpOptions(roots profiles.Roots, profile string, store config.StoreConfig, prefix string) ([]byte, error) {
	tree, err := LoadOptions(roots, profile, store)
	if err != nil {
		return nil, err
	}
	return options.MarshalYAML(Subtree(tree, prefix))
}

// Subtree copies the options at or below prefix into a new tree.
func Subtree(tree *options.Tree, prefix string) *options.Tree {
	out := options.NewTree()
	for _, name := range tree.AllNames() {
		if prefix != "" && name != prefix && !strings.HasPrefix(name, prefix+".") {
			continue
		}
		v, _ := tree.Lookup(name)
		out.Set(name, v)
	}
	return out
}

// FormatValue renders an option value on one line.
func FormatValue(v any) string {
	switch x := v.(type) {
	case []string:
		return "[" + strings.Join(x, ", ") + "]"
	case []byte:
		return fmt.Sprintf("<%d bytes>", len(x))
	case options.Size:
		return fmt.Sprintf("%dx%d", x.Width, x.Height)
	case options.Rect:
		return fmt.Sprintf("%d,%d %dx%d", x.X, x.Y, x.Width, x.Height)
	default:
		return fmt.Sprint(v)
	}
}
