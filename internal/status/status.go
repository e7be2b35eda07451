package status

import (
	"strconv"

	"github.com/ruminaider/psiconf/internal/legacy"
	"github.com/ruminaider/psiconf/internal/options"
)

// Type is a presence type.
type Type int

const (
	Offline Type = iota
	Online
	Away
	XA
	DND
	Invisible
	FFC
)

var typeNames = map[Type]string{
	Offline:   "offline",
	Online:    "online",
	Away:      "away",
	XA:        "xa",
	DND:       "dnd",
	Invisible: "invisible",
	FFC:       "chat",
}

// String returns the option-store spelling of t.
func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "online"
}

// ParseType maps a stored type name back to a Type. Unknown names are
// reported with ok=false and read as Online.
func ParseType(s string) (Type, bool) {
	for t, name := range typeNames {
		if name == s {
			return t, true
		}
	}
	return Online, false
}

// Available reports whether t is a connected presence.
func (t Type) Available() bool {
	return t != Offline
}

// Status is a presence with its message and priority.
type Status struct {
	Type     Type
	Message  string
	Priority int
}

// PresetsPath is the map holding status message presets.
const PresetsPath = "options.status.presets"

// Preset is a named, reusable status message.
type Preset struct {
	Name        string
	Message     string
	Type        Type
	Priority    int
	HasPriority bool
}

// PresetFromXML parses a legacy <preset name=".." status=".." priority="..">
// element. Elements that are not presets yield ok=false.
func PresetFromXML(e *legacy.Element) (Preset, bool) {
	if e == nil || e.Name != "preset" {
		return Preset{}, false
	}
	p := Preset{
		Name:    e.Attr("name"),
		Message: e.Text(),
		Type:    Away,
	}
	if e.HasAttr("status") {
		if t, ok := ParseType(e.Attr("status")); ok {
			p.Type = t
		}
	}
	if e.HasAttr("priority") {
		if n, err := strconv.Atoi(e.Attr("priority")); err == nil {
			p.Priority = n
			p.HasPriority = true
		}
	}
	return p, true
}

// ToOptions stores the preset under its name in the presets map.
func (p Preset) ToOptions(o options.Writer) {
	base := o.MapPut(PresetsPath, p.Name)
	o.Set(base+".message", p.Message)
	o.Set(base+".status", p.Type.String())
	o.Set(base+".force-priority", p.HasPriority)
	if p.HasPriority {
		o.Set(base+".priority", p.Priority)
	}
}

// PresetFromOptions reads the preset stored under name.
func PresetFromOptions(o options.Reader, name string) (Preset, bool) {
	base, ok := o.MapLookup(PresetsPath, name)
	if !ok {
		return Preset{}, false
	}
	t, _ := ParseType(options.String(o, base+".status", "away"))
	p := Preset{
		Name:        name,
		Message:     options.String(o, base+".message", ""),
		Type:        t,
		HasPriority: options.Bool(o, base+".force-priority", false),
	}
	if p.HasPriority {
		p.Priority = options.Int(o, base+".priority", 0)
	}
	return p, true
}
