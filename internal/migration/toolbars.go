package migration

import (
	"strings"

	"github.com/ruminaider/psiconf/internal/legacy"
	"github.com/ruminaider/psiconf/internal/toolbar"
	"go.uber.org/zap"
)

// Releases whose event notifier was not a toolbar action yet.
var eventNotifierReleases = map[string]bool{
	"0.9":     true,
	"0.9-CVS": true,
}

const eventNotifierKey = "event_notifier"

type toolbarShape int

const (
	shapeUnknown toolbarShape = iota
	// <toolbar0><name>..</name>..</toolbar0>, one record per element.
	shapeFlat
	// <mainWin><toolbar>..</toolbar><toolbar>..</toolbar></mainWin>
	shapeGrouped
)

// detectToolbarShape classifies one child of <toolbars> and names the
// toolbar group it belongs to.
func detectToolbarShape(e *legacy.Element) (toolbarShape, string) {
	switch {
	case strings.HasPrefix(e.Name, "toolbar"):
		return shapeFlat, ToolbarGroup
	case strings.HasPrefix(e.Name, ToolbarGroup):
		return shapeGrouped, ToolbarGroup
	}
	return shapeUnknown, ""
}

func parseFlatToolbar(e *legacy.Element) []toolbar.Prefs {
	return []toolbar.Prefs{toolbar.FromXML(e)}
}

func parseGroupedToolbars(e *legacy.Element) []toolbar.Prefs {
	var out []toolbar.Prefs
	for _, c := range e.Children {
		if c.Name == "toolbar" {
			out = append(out, toolbar.FromXML(c))
		}
	}
	return out
}

func (m *Migrator) migrateToolbars(tbs *legacy.Element, res *Result) {
	cleared := map[string]bool{}
	for _, e := range tbs.Children {
		shape, group := detectToolbarShape(e)

		var parsed []toolbar.Prefs
		switch shape {
		case shapeFlat:
			parsed = parseFlatToolbar(e)
		case shapeGrouped:
			parsed = parseGroupedToolbars(e)
		default:
			m.log().Debug("skipping toolbar element", zap.String("element", e.Name))
			continue
		}

		// Toolbars found in the document replace any gathered earlier.
		if !cleared[group] {
			res.Late.Toolbars[group] = nil
			cleared[group] = true
		}
		res.Late.Toolbars[group] = append(res.Late.Toolbars[group], parsed...)
	}

	if !eventNotifierReleases[res.ProgVer] {
		return
	}
	for _, tb := range res.Late.Toolbars[ToolbarGroup] {
		if tb.HasKey(eventNotifierKey) {
			return
		}
	}
	tb := toolbar.New()
	tb.Name = "Event notifier"
	tb.On = false
	tb.Locked = true
	tb.Keys = []string{eventNotifierKey}
	tb.Dock = toolbar.DockBottom
	res.Late.Toolbars[ToolbarGroup] = append(res.Late.Toolbars[ToolbarGroup], tb)
}
