package legacy

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ruminaider/psiconf/internal/options"
	"golang.org/x/image/colornames"
)

// Entry returns the text of child name and whether the child exists.
func Entry(e *Element, name string) (string, bool) {
	c := e.Child(name)
	if c == nil {
		return "", false
	}
	return c.Text(), true
}

// BoolEntry reads child name as a boolean; only the literal "true" is true.
func BoolEntry(e *Element, name string) (bool, bool) {
	s, ok := Entry(e, name)
	if !ok {
		return false, false
	}
	return s == "true", true
}

// NumEntry reads child name as an integer. Unparsable text reads as 0,
// which is how old releases treated it.
func NumEntry(e *Element, name string) (int, bool) {
	s, ok := Entry(e, name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, true
	}
	return n, true
}

// SizeEntry reads child name formatted as "w,h".
func SizeEntry(e *Element, name string) (options.Size, bool) {
	s, ok := Entry(e, name)
	if !ok {
		return options.Size{}, false
	}
	nums, ok := ints(s, 2)
	if !ok {
		return options.Size{}, false
	}
	return options.Size{Width: nums[0], Height: nums[1]}, true
}

// RectEntry reads child name formatted as "x,y,w,h".
func RectEntry(e *Element, name string) (options.Rect, bool) {
	s, ok := Entry(e, name)
	if !ok {
		return options.Rect{}, false
	}
	nums, ok := ints(s, 4)
	if !ok {
		return options.Rect{}, false
	}
	return options.Rect{X: nums[0], Y: nums[1], Width: nums[2], Height: nums[3]}, true
}

// ColorEntry reads child name as "#rgb" or "#rrggbb", normalized to
// lower-case "#rrggbb". Invalid colors read as absent.
func ColorEntry(e *Element, name string) (options.Color, bool) {
	s, ok := Entry(e, name)
	if !ok {
		return "", false
	}
	return ParseColor(s)
}

// ParseColor normalizes a legacy color to "#rrggbb". Accepted forms are
// #rgb, #rrggbb, #rrrgggbbb, #rrrrggggbbbb and SVG color names.
func ParseColor(s string) (options.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "#") {
		c, ok := colornames.Map[s]
		if !ok {
			return "", false
		}
		return options.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)), true
	}
	hex := s[1:]
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return "", false
		}
	}
	switch len(hex) {
	case 3:
		return options.Color("#" + string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})), true
	case 6:
		return options.Color(s), true
	case 9, 12:
		// Wider components keep their most significant byte.
		w := len(hex) / 3
		return options.Color("#" + hex[0:2] + hex[w:w+2] + hex[2*w:2*w+2]), true
	}
	return "", false
}

// StringList reads the <item> children of child name.
func StringList(e *Element, name string) ([]string, bool) {
	c := e.Child(name)
	if c == nil {
		return nil, false
	}
	list := []string{}
	for _, item := range c.Children {
		if item.Name == "item" {
			list = append(list, item.Text())
		}
	}
	return list, true
}

// BoolAttr reads attribute name as a boolean when present.
func BoolAttr(e *Element, name string) (bool, bool) {
	if !e.HasAttr(name) {
		return false, false
	}
	return e.Attr(name) == "true", true
}

// ReadBoolAttr overwrites *v when the attribute is present.
func ReadBoolAttr(e *Element, name string, v *bool) {
	if b, ok := BoolAttr(e, name); ok {
		*v = b
	}
}

// ReadEntry overwrites *v when the child is present.
func ReadEntry(e *Element, name string, v *string) {
	if s, ok := Entry(e, name); ok {
		*v = s
	}
}

// ReadBoolEntry overwrites *v when the child is present.
func ReadBoolEntry(e *Element, name string, v *bool) {
	if b, ok := BoolEntry(e, name); ok {
		*v = b
	}
}

// ReadNumEntry overwrites *v when the child is present.
func ReadNumEntry(e *Element, name string, v *int) {
	if n, ok := NumEntry(e, name); ok {
		*v = n
	}
}

func ints(s string, want int) ([]int, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != want {
		return nil, false
	}
	out := make([]int, want)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}
