package toolbar

import (
	"github.com/google/uuid"
	"github.com/ruminaider/psiconf/internal/legacy"
	"github.com/ruminaider/psiconf/internal/options"
)

// Dock is the legacy dock position numbering stored in options.
type Dock int

const (
	DockUnmanaged Dock = iota
	DockTornOff
	DockTop
	DockBottom
	DockRight
	DockLeft
	DockMinimized
)

var dockNames = map[string]Dock{
	"DockTop":       DockTop,
	"DockBottom":    DockBottom,
	"DockLeft":      DockLeft,
	"DockRight":     DockRight,
	"DockMinimized": DockMinimized,
	"DockTornOff":   DockTornOff,
	"DockUnmanaged": DockUnmanaged,
}

// OptionsPath is the map holding every toolbar.
const OptionsPath = "options.ui.contactlist.toolbars"

// Prefs describes one toolbar.
type Prefs struct {
	ID     string
	Name   string
	On     bool
	Locked bool
	Keys   []string
	Dock   Dock
	NL     bool
}

// New returns toolbar prefs with a fresh ID and default placement.
func New() Prefs {
	return Prefs{
		ID:   uuid.NewString(),
		Dock: DockTop,
		NL:   true,
	}
}

// FromXML reads one legacy toolbar record.
func FromXML(e *legacy.Element) Prefs {
	tb := New()

	legacy.ReadEntry(e, "name", &tb.Name)
	legacy.ReadBoolEntry(e, "on", &tb.On)
	legacy.ReadBoolEntry(e, "locked", &tb.Locked)
	if keys, ok := legacy.StringList(e, "keys"); ok {
		tb.Keys = keys
	}

	if pos := e.Child("position"); pos != nil {
		dock := DockTop
		if s, ok := legacy.Entry(pos, "dock"); ok {
			if d, known := dockNames[s]; known {
				dock = d
			}
		}
		tb.Dock = dock
		legacy.ReadBoolEntry(pos, "nl", &tb.NL)
	}

	return tb
}

// HasKey reports whether the toolbar carries action key.
func (p Prefs) HasKey(key string) bool {
	for _, k := range p.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// ToOptions stores p in the toolbar map keyed by its ID.
func (p Prefs) ToOptions(o options.Writer) {
	if p.ID == "" {
		panic("toolbar: storing toolbar without id")
	}
	base := o.MapPut(OptionsPath, p.ID)
	o.Set(base+".name", p.Name)
	o.Set(base+".visible", p.On)
	o.Set(base+".locked", p.Locked)
	o.Set(base+".dock.position", int(p.Dock))
	o.Set(base+".dock.nl", p.NL)
	keys := p.Keys
	if keys == nil {
		keys = []string{}
	}
	o.Set(base+".actions", keys)
}

// FromOptions reads the toolbar stored at base. Entries without an id or
// a name are not toolbars and yield ok=false.
func FromOptions(o options.Reader, base string) (Prefs, bool) {
	tb := Prefs{
		ID:   options.String(o, base+".key", ""),
		Name: options.String(o, base+".name", ""),
	}
	if tb.ID == "" || tb.Name == "" {
		return Prefs{}, false
	}
	tb.On = options.Bool(o, base+".visible", false)
	tb.Locked = options.Bool(o, base+".locked", false)
	tb.Dock = Dock(options.Int(o, base+".dock.position", int(DockTop)))
	tb.NL = options.Bool(o, base+".dock.nl", true)
	tb.Keys = options.StringList(o, base+".actions")
	return tb, true
}

// All reads every toolbar currently stored.
func All(o options.Reader) []Prefs {
	var out []Prefs
	for _, base := range o.ChildNames(OptionsPath, true, true) {
		if tb, ok := FromOptions(o, base); ok {
			out = append(out, tb)
		}
	}
	return out
}
