package options

import (
	"strconv"
)

// TryGet returns the value at path when it is set and holds a T.
// Unlike Get it distinguishes "absent" from a zero value.
func TryGet[T any](r Reader, path string) (T, bool) {
	var zero T
	v, ok := r.Lookup(path)
	if !ok {
		return zero, false
	}
	tv, ok := v.(T)
	if !ok {
		return zero, false
	}
	return tv, true
}

// Bool reads a boolean option, accepting the textual forms older stores used.
func Bool(r Reader, path string, def bool) bool {
	v, ok := r.Lookup(path)
	if !ok {
		return def
	}
	switch x := v.(type) {
	case bool:
		return x
	case int:
		return x != 0
	case string:
		b, err := strconv.ParseBool(x)
		if err != nil {
			return def
		}
		return b
	}
	return def
}

// Int reads an integer option.
func Int(r Reader, path string, def int) int {
	v, ok := r.Lookup(path)
	if !ok {
		return def
	}
	switch x := v.(type) {
	case int:
		return x
	case bool:
		if x {
			return 1
		}
		return 0
	case string:
		n, err := strconv.Atoi(x)
		if err != nil {
			return def
		}
		return n
	}
	return def
}

// String reads a string option.
func String(r Reader, path string, def string) string {
	v, ok := r.Lookup(path)
	if !ok {
		return def
	}
	switch x := v.(type) {
	case string:
		return x
	case Color:
		return string(x)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	case []byte:
		return string(x)
	}
	return def
}

// StringList reads a string list option. A nil result means unset.
func StringList(r Reader, path string) []string {
	v, ok := r.Lookup(path)
	if !ok {
		return nil
	}
	switch x := v.(type) {
	case []string:
		out := make([]string, len(x))
		copy(out, x)
		return out
	case string:
		if x == "" {
			return []string{}
		}
		return []string{x}
	}
	return nil
}

// Bytes reads a binary option.
func Bytes(r Reader, path string) []byte {
	v, ok := r.Lookup(path)
	if !ok {
		return nil
	}
	switch x := v.(type) {
	case []byte:
		return x
	case string:
		return []byte(x)
	}
	return nil
}

// HasPrefix reports whether any set option lives under prefix.
func HasPrefix(r Reader, prefix string) bool {
	return len(r.ChildNames(prefix, false, false)) > 0
}
