package migration

import (
	"github.com/ruminaider/psiconf/internal/legacy"
	"github.com/ruminaider/psiconf/internal/options"
)

// migrateEntry copies child entry of el to option when the child exists and
// read accepts it. It reports whether anything was written.
func migrateEntry[T any](o options.Writer, el *legacy.Element, entry, option string, read func(*legacy.Element, string) (T, bool)) bool {
	if el == nil {
		return false
	}
	v, ok := read(el, entry)
	if !ok {
		return false
	}
	o.Set(option, v)
	return true
}

// MigrateBool copies a "true"/"false" entry.
func MigrateBool(o options.Writer, el *legacy.Element, entry, option string) bool {
	return migrateEntry(o, el, entry, option, legacy.BoolEntry)
}

// MigrateInt copies a numeric entry.
func MigrateInt(o options.Writer, el *legacy.Element, entry, option string) bool {
	return migrateEntry(o, el, entry, option, legacy.NumEntry)
}

// MigrateString copies a text entry verbatim.
func MigrateString(o options.Writer, el *legacy.Element, entry, option string) bool {
	return migrateEntry(o, el, entry, option, legacy.Entry)
}

// MigrateStringList copies the <item> children of entry.
func MigrateStringList(o options.Writer, el *legacy.Element, entry, option string) bool {
	return migrateEntry(o, el, entry, option, legacy.StringList)
}

// MigrateSize copies a "w,h" entry.
func MigrateSize(o options.Writer, el *legacy.Element, entry, option string) bool {
	return migrateEntry(o, el, entry, option, legacy.SizeEntry)
}

// MigrateColor copies a "#rrggbb" entry.
func MigrateColor(o options.Writer, el *legacy.Element, entry, option string) bool {
	return migrateEntry(o, el, entry, option, legacy.ColorEntry)
}

// MigrateRect copies an "x,y,w,h" entry.
func MigrateRect(o options.Writer, el *legacy.Element, entry, option string) bool {
	return migrateEntry(o, el, entry, option, legacy.RectEntry)
}
