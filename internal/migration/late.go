package migration

import (
	"sort"
	"strconv"

	"github.com/ruminaider/psiconf/internal/options"
	"github.com/ruminaider/psiconf/internal/status"
	"github.com/ruminaider/psiconf/internal/toolbar"
	"go.uber.org/zap"
)

// Dependencies is the application state late migration needs.
type Dependencies struct {
	// PluginKeys are the toolbar action keys of the available plugins,
	// usually "<shortname>-plugin".
	PluginKeys []string
}

// PluginKeys turns plugin short names into toolbar action keys.
func PluginKeys(shortNames []string) []string {
	keys := make([]string, 0, len(shortNames))
	for _, n := range shortNames {
		keys = append(keys, n+"-plugin")
	}
	return keys
}

// Option prefixes whose presence means the deferred data was flushed by an
// earlier run.
var lateSentinels = []string{
	status.PresetsPath,
	"options.iconsets.service-status",
	"options.iconsets.custom-status",
}

const (
	centralToolbarOption   = "options.ui.chat.central-toolbar"
	disablePasteSendOption = "options.ui.chat.disable-paste-send"
	autohideFlagOption     = "options.contactlist.use-autohide"
	autohideIntervalOption = "options.contactlist.autohide-interval"
)

// LateReport tells what LateMigrate did.
type LateReport struct {
	ToolbarsRebuilt bool
	Flushed         bool
}

// LateMigrate applies the second migration phase. It is safe to call on
// every start: the toolbar rebuild runs only while the first toolbar is not
// the chat toolbar, and the deferred data is written only while none of
// it exists in the store.
func (m *Migrator) LateMigrate(late LateData, deps Dependencies) LateReport {
	o := m.Options
	var rep LateReport

	if options.String(o, toolbar.OptionsPath+".m0.name", "") != "Chat" {
		m.rebuildToolbars(deps)
		rep.ToolbarsRebuilt = true
	}

	for _, prefix := range lateSentinels {
		if options.HasPrefix(o, prefix) {
			m.log().Debug("late migration already applied", zap.String("sentinel", prefix))
			return rep
		}
	}

	services := sortedKeys(late.ServiceIconsets)
	for _, svc := range services {
		base := o.MapPut("options.iconsets.service-status", svc)
		o.Set(base+".iconset", late.ServiceIconsets[svc])
	}

	for i, re := range sortedKeys(late.CustomIconsets) {
		base := "options.iconsets.custom-status.a" + strconv.Itoa(i)
		o.Set(base+".regexp", re)
		o.Set(base+".iconset", late.CustomIconsets[re])
	}

	names := make([]string, 0, len(late.Presets))
	for name := range late.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		late.Presets[name].ToOptions(o)
	}

	for _, tb := range late.Toolbars[ToolbarGroup] {
		tb.ToOptions(o)
	}

	if options.Bool(o, autohideFlagOption, false) {
		o.Set(autohideIntervalOption, 0)
		o.Remove(autohideFlagOption, false)
	}

	rep.Flushed = true
	m.log().Info("late migration applied",
		zap.Int("presets", len(names)),
		zap.Int("service_iconsets", len(services)),
		zap.Int("custom_iconsets", len(late.CustomIconsets)),
		zap.Int("toolbars", len(late.Toolbars[ToolbarGroup])))
	return rep
}

// rebuildToolbars puts the chat and groupchat toolbars first and rewrites
// every stored toolbar locked.
func (m *Migrator) rebuildToolbars(deps Dependencies) {
	o := m.Options

	pasteSendDisabled := options.Bool(o, disablePasteSendOption, false)

	chat := toolbar.New()
	chat.Name = "Chat"
	chat.On = options.Bool(o, centralToolbarOption, false)
	chat.Keys = append([]string{"chat_clear", "chat_find", "chat_html_text", "chat_add_contact"}, deps.PluginKeys...)
	chat.Keys = append(chat.Keys, "spacer", "chat_icon", "chat_file", "chat_pgp",
		"chat_info", "chat_history", "chat_voice", "chat_active_contacts")
	o.Remove(centralToolbarOption, false)

	groupchat := toolbar.New()
	groupchat.Name = "Groupchat"
	groupchat.On = chat.On
	groupchat.Keys = append([]string{"gchat_clear", "gchat_find", "gchat_html_text", "gchat_configure"}, deps.PluginKeys...)
	groupchat.Keys = append(groupchat.Keys, "spacer", "gchat_icon")

	if pasteSendDisabled {
		chat.Keys = without(chat.Keys, "chat_ps")
		groupchat.Keys = without(groupchat.Keys, "gchat_ps")
	}
	o.Remove(disablePasteSendOption, false)

	all := append([]toolbar.Prefs{chat, groupchat}, toolbar.All(o)...)
	o.Remove(toolbar.OptionsPath, true)
	for _, tb := range all {
		tb.Locked = true
		tb.ToOptions(o)
	}
	m.log().Debug("toolbars rebuilt", zap.Int("count", len(all)))
}

func without(keys []string, drop string) []string {
	out := keys[:0:0]
	for _, k := range keys {
		if k != drop {
			out = append(out, k)
		}
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
