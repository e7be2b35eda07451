package proxy

import (
	"github.com/ruminaider/psiconf/internal/legacy"
	"github.com/ruminaider/psiconf/internal/options"
)

// OptionsPath is the subtree holding proxies, keyed by stable ID.
const OptionsPath = "proxies"

// Settings are the connection parameters of a proxy.
type Settings struct {
	Host    string
	Port    int
	URL     string
	UseAuth bool
	User    string
	Pass    string
}

// SettingsFromXML reads a legacy <proxySettings> element.
func SettingsFromXML(e *legacy.Element) Settings {
	var s Settings
	legacy.ReadEntry(e, "host", &s.Host)
	legacy.ReadNumEntry(e, "port", &s.Port)
	legacy.ReadEntry(e, "url", &s.URL)
	legacy.ReadBoolEntry(e, "useAuth", &s.UseAuth)
	legacy.ReadEntry(e, "user", &s.User)
	legacy.ReadEntry(e, "pass", &s.Pass)
	return s
}

// Item is a named proxy definition. ID stays empty until the migration
// assigns stable IDs to the merged list.
type Item struct {
	ID       string
	Name     string
	Type     string
	Settings Settings
}

// FromXML reads one entry of a standalone legacy <proxies> list.
// The numeric type "0" from older releases means http.
func FromXML(e *legacy.Element) Item {
	var p Item
	legacy.ReadEntry(e, "name", &p.Name)
	legacy.ReadEntry(e, "type", &p.Type)
	if p.Type == "0" {
		p.Type = "http"
	}
	if sets := e.Descendants("proxySettings"); len(sets) > 0 {
		p.Settings = SettingsFromXML(sets[0])
	}
	return p
}

// ToOptions stores p under proxies.<id>.
func (p Item) ToOptions(o options.Writer) {
	base := OptionsPath + "." + p.ID
	o.Set(base+".name", p.Name)
	o.Set(base+".type", p.Type)
	o.Set(base+".host", p.Settings.Host)
	o.Set(base+".port", p.Settings.Port)
	o.Set(base+".url", p.Settings.URL)
	o.Set(base+".useAuth", p.Settings.UseAuth)
	o.Set(base+".user", p.Settings.User)
	o.Set(base+".pass", p.Settings.Pass)
}

// FromOptions reads the proxy stored under proxies.<id>.
func FromOptions(o options.Reader, id string) Item {
	base := OptionsPath + "." + id
	return Item{
		ID:   id,
		Name: options.String(o, base+".name", ""),
		Type: options.String(o, base+".type", ""),
		Settings: Settings{
			Host:    options.String(o, base+".host", ""),
			Port:    options.Int(o, base+".port", 0),
			URL:     options.String(o, base+".url", ""),
			UseAuth: options.Bool(o, base+".useAuth", false),
			User:    options.String(o, base+".user", ""),
			Pass:    options.String(o, base+".pass", ""),
		},
	}
}

// IDs lists the stored proxy IDs.
func IDs(o options.Reader) []string {
	var ids []string
	for _, p := range o.ChildNames(OptionsPath, true, true) {
		ids = append(ids, p[len(OptionsPath)+1:])
	}
	return ids
}
