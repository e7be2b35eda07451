package migration

import (
	"github.com/ruminaider/psiconf/internal/legacy"
	"github.com/ruminaider/psiconf/internal/options"
	"github.com/ruminaider/psiconf/internal/status"
	"go.uber.org/zap"
)

type migrateFunc func(o options.Writer, el *legacy.Element, entry, option string) bool

// fieldMap is a legacy entry with the option it moves to.
type fieldMap struct {
	entry   string
	option  string
	migrate migrateFunc
}

func migrateFields(o options.Writer, el *legacy.Element, fields []fieldMap) {
	if el == nil {
		return
	}
	for _, f := range fields {
		f.migrate(o, el, f.entry, f.option)
	}
}

// section walks down the first children named path, returning nil as soon
// as one is missing.
func section(el *legacy.Element, path ...string) *legacy.Element {
	for _, name := range path {
		el = el.Child(name)
		if el == nil {
			return nil
		}
	}
	return el
}

var rosterFields = []fieldMap{
	{"useleft", "options.ui.contactlist.use-left-click", MigrateBool},
	{"singleclick", "options.ui.contactlist.use-single-click", MigrateBool},
	{"useTransportIconsForContacts", "options.ui.contactlist.use-transport-icons", MigrateBool},
}

var sortStyleFields = []fieldMap{
	{"contact", "options.ui.contactlist.contact-sort-style", MigrateString},
	{"group", "options.ui.contactlist.group-sort-style", MigrateString},
	{"account", "options.ui.contactlist.account-sort-style", MigrateString},
}

var miscFields = []fieldMap{
	{"alwaysOnTop", "options.ui.contactlist.always-on-top", MigrateBool},
	{"ignoreHeadline", "options.messages.ignore-headlines", MigrateBool},
	{"ignoreNonRoster", "options.messages.ignore-non-roster-contacts", MigrateBool},
	{"excludeGroupChatIgnore", "options.messages.exclude-muc-from-ignore", MigrateBool},
	{"scrollTo", "options.ui.contactlist.ensure-contact-visible-on-event", MigrateBool},
	{"useEmoticons", "options.ui.emoticons.use-emoticons", MigrateBool},
	{"alertOpenChats", "options.ui.chat.alert-for-already-open-chats", MigrateBool},
	{"raiseChatWindow", "options.ui.chat.raise-chat-windows-on-new-messages", MigrateBool},
	{"showSubjects", "options.ui.message.show-subjects", MigrateBool},
	{"showGroupCounts", "options.ui.contactlist.show-group-counts", MigrateBool},
	{"showCounter", "options.ui.message.show-character-count", MigrateBool},
	{"chatSays", "options.ui.chat.use-chat-says-style", MigrateBool},
	{"jidComplete", "options.ui.message.use-jid-auto-completion", MigrateBool},
	{"grabUrls", "options.ui.message.auto-grab-urls-from-clipboard", MigrateBool},
	{"smallChats", "options.ui.chat.use-small-chats", MigrateBool},
	{"chatLineEdit", "options.ui.chat.use-expanding-line-edit", MigrateBool},
	{"useTabs", "options.ui.tabs.use-tabs", MigrateBool},
	{"putTabsAtBottom", "options.ui.tabs.put-tabs-at-bottom", MigrateBool},
	{"autoRosterSize", "options.ui.contactlist.automatically-resize-roster", MigrateBool},
	{"autoRosterSizeGrowTop", "options.ui.contactlist.grow-roster-upwards", MigrateBool},
	{"autoResolveNicksOnAdd", "options.contactlist.resolve-nicks-on-contact-add", MigrateBool},
	{"messageEvents", "options.messages.send-composing-events", MigrateBool},
	{"inactiveEvents", "options.messages.send-inactivity-events", MigrateBool},
	{"lastPath", "options.ui.last-used-open-path", MigrateString},
	{"lastSavePath", "options.ui.last-used-save-path", MigrateString},
	{"autoCopy", "options.ui.automatically-copy-selected-text", MigrateBool},
	{"useCaps", "options.service-discovery.enable-entity-capabilities", MigrateBool},
	{"rc", "options.external-control.adhoc-remote-control.enable", MigrateBool},
}

var dockFields = []fieldMap{
	{"useDock", "options.ui.systemtray.enable", MigrateBool},
	{"dockDCstyle", "options.ui.systemtray.use-double-click", MigrateBool},
	{"dockHideMW", "options.contactlist.hide-on-start", MigrateBool},
	{"dockToolMW", "options.contactlist.use-toolwindow", MigrateBool},
}

var eventFields = []fieldMap{
	{"autoAuth", "options.subscriptions.automatically-allow-authorization", MigrateBool},
	{"notifyAuth", "options.ui.notifications.successful-subscription", MigrateBool},
}

var receiveFields = []fieldMap{
	{"popupMsgs", "options.ui.message.auto-popup", MigrateBool},
	{"popupChats", "options.ui.chat.auto-popup", MigrateBool},
	{"popupHeadlines", "options.ui.message.auto-popup-headlines", MigrateBool},
	{"popupFiles", "options.ui.file-transfer.auto-popup", MigrateBool},
	{"noAwayPopup", "options.ui.notifications.popup-dialogs.suppress-while-away", MigrateBool},
	{"noUnlistedPopup", "options.ui.notifications.popup-dialogs.suppress-when-not-on-roster", MigrateBool},
	{"raise", "options.ui.contactlist.raise-on-new-event", MigrateBool},
}

var presenceMiscFields = []fieldMap{
	{"askOnline", "options.status.ask-for-message-on-online", MigrateBool},
	{"askOffline", "options.status.ask-for-message-on-offline", MigrateBool},
	{"rosterAnim", "options.ui.contactlist.use-status-change-animation", MigrateBool},
	{"autoVCardOnLogin", "options.vcard.query-own-vcard-on-login", MigrateBool},
	{"xmlConsoleOnLogin", "options.xml-console.enable-at-login", MigrateBool},
}

var autoStatusFields = []fieldMap{
	{"away", "options.status.auto-away.away-after", MigrateInt},
	{"xa", "options.status.auto-away.not-availible-after", MigrateInt},
	{"offline", "options.status.auto-away.offline-after", MigrateInt},
	{"message", "options.status.auto-away.message", MigrateString},
}

var lookAndFeelFields = []fieldMap{
	{"newHeadings", "options.ui.look.contactlist.use-slim-group-headings", MigrateBool},
	{"outline-headings", "options.ui.look.contactlist.use-outlined-group-headings", MigrateBool},
	{"chat-opacity", "options.ui.chat.opacity", MigrateInt},
	{"roster-opacity", "options.ui.contactlist.opacity", MigrateInt},
}

var colorFields = []fieldMap{
	{"online", "options.ui.look.colors.contactlist.status.online", MigrateColor},
	{"listback", "options.ui.look.colors.contactlist.background", MigrateColor},
	{"away", "options.ui.look.colors.contactlist.status.away", MigrateColor},
	{"dnd", "options.ui.look.colors.contactlist.status.do-not-disturb", MigrateColor},
	{"offline", "options.ui.look.colors.contactlist.status.offline", MigrateColor},
	{"status", "options.ui.look.colors.contactlist.status-messages", MigrateColor},
	{"groupfore", "options.ui.look.colors.contactlist.grouping.header-foreground", MigrateColor},
	{"groupback", "options.ui.look.colors.contactlist.grouping.header-background", MigrateColor},
	{"profilefore", "options.ui.look.colors.contactlist.profile.header-foreground", MigrateColor},
	{"profileback", "options.ui.look.colors.contactlist.profile.header-background", MigrateColor},
	{"animfront", "options.ui.look.colors.contactlist.status-change-animation1", MigrateColor},
	{"animback", "options.ui.look.colors.contactlist.status-change-animation2", MigrateColor},
}

var fontFields = []fieldMap{
	{"roster", "options.ui.look.font.contactlist", MigrateString},
	{"message", "options.ui.look.font.message", MigrateString},
	{"chat", "options.ui.look.font.chat", MigrateString},
	{"popup", "options.ui.look.font.passive-popup", MigrateString},
}

var soundEventFields = []fieldMap{
	{"message", "options.ui.notifications.sounds.incoming-message", MigrateString},
	{"chat1", "options.ui.notifications.sounds.new-chat", MigrateString},
	{"chat2", "options.ui.notifications.sounds.chat-message", MigrateString},
	{"system", "options.ui.notifications.sounds.system-message", MigrateString},
	{"headline", "options.ui.notifications.sounds.incoming-headline", MigrateString},
	{"online", "options.ui.notifications.sounds.contact-online", MigrateString},
	{"offline", "options.ui.notifications.sounds.contact-offline", MigrateString},
	{"send", "options.ui.notifications.sounds.outgoing-chat", MigrateString},
	{"incoming_ft", "options.ui.notifications.sounds.incoming-file-transfer", MigrateString},
	{"ft_complete", "options.ui.notifications.sounds.completed-file-transfer", MigrateString},
}

var sizeFields = []fieldMap{
	{"eventdlg", "options.ui.message.size", MigrateSize},
	{"chatdlg", "options.ui.chat.size", MigrateSize},
	{"tabdlg", "options.ui.tabs.size", MigrateSize},
}

var groupChatFields = []fieldMap{
	{"nickcoloring", "options.ui.muc.use-nick-coloring", MigrateBool},
	{"highlighting", "options.ui.muc.use-highlighting", MigrateBool},
	{"highlightwords", "options.ui.muc.highlight-words", MigrateStringList},
	{"nickcolors", "options.ui.look.colors.muc.nick-colors", MigrateStringList},
}

var popupFields = []fieldMap{
	{"on", "options.ui.notifications.passive-popups.enabled", MigrateBool},
	{"online", "options.ui.notifications.passive-popups.status.online", MigrateBool},
	{"offline", "options.ui.notifications.passive-popups.status.offline", MigrateBool},
	{"statusChange", "options.ui.notifications.passive-popups.status.other-changes", MigrateBool},
	{"message", "options.ui.notifications.passive-popups.incoming-message", MigrateBool},
	{"chat", "options.ui.notifications.passive-popups.incoming-chat", MigrateBool},
	{"headline", "options.ui.notifications.passive-popups.incoming-headline", MigrateBool},
	{"file", "options.ui.notifications.passive-popups.incoming-file-transfer", MigrateBool},
	{"jidClip", "options.ui.notifications.passive-popups.maximum-jid-length", MigrateInt},
	{"statusClip", "options.ui.notifications.passive-popups.maximum-status-length", MigrateInt},
	{"textClip", "options.ui.notifications.passive-popups.maximum-text-length", MigrateInt},
	{"hideTime", "options.ui.notifications.passive-popups.duration", MigrateInt},
	{"borderColor", "options.ui.look.colors.passive-popup.border", MigrateColor},
}

var lockdownFields = []fieldMap{
	{"roster", "options.ui.contactlist.lockdown-roster", MigrateBool},
	{"services", "options.ui.contactlist.disable-service-discovery", MigrateBool},
}

var tipFields = []fieldMap{
	{"num", "options.ui.tip.number", MigrateInt},
	{"show", "options.ui.tip.show", MigrateBool},
}

var discoFields = []fieldMap{
	{"items", "options.ui.service-discovery.automatically-get-items", MigrateBool},
	{"info", "options.ui.service-discovery.automatically-get-info", MigrateBool},
}

var dataTransferFields = []fieldMap{
	{"port", "options.p2p.bytestreams.listen-port", MigrateInt},
	{"external", "options.p2p.bytestreams.external-address", MigrateString},
}

// Index tables of the enum-valued legacy entries.
var (
	deleteChatsAfter = []string{"instant", "hour", "day", "never"}
	alertStyles      = []string{"no", "blink", "animate"}
	incomingAs       = []string{"no", "message", "chat", "current-open"}
)

// Key sequences sending a chat message, with and without soft return.
var (
	sendKeysSoftReturn = []string{"Enter", "Return"}
	sendKeysCtrl       = []string{"Ctrl+Enter", "Ctrl+Return"}
)

func (m *Migrator) migratePreferences(p *legacy.Element, res *Result) {
	o := m.Options

	if general := p.Child("general"); general != nil {
		if roster := general.Child("roster"); roster != nil {
			migrateFields(o, roster, rosterFields)
			if hide, ok := legacy.BoolEntry(roster, "hideMenubar"); ok {
				o.Set("options.ui.contactlist.show-menubar", !hide)
			}
			if action, ok := legacy.NumEntry(roster, "defaultAction"); ok {
				msgType := "chat"
				if action == 0 {
					msgType = "message"
				}
				o.Set("options.messages.default-outgoing-message-type", msgType)
			}
			migrateFields(o, roster.Child("sortStyle"), sortStyleFields)
		}

		if misc := general.Child("misc"); misc != nil {
			m.migrateIndex(misc, "delChats", "options.ui.chat.delete-contents-after", deleteChatsAfter)
			migrateFields(o, misc, miscFields)
			if soft, ok := legacy.BoolEntry(misc, "chatSoftReturn"); ok {
				keys := sendKeysCtrl
				if soft {
					keys = sendKeysSoftReturn
				}
				o.Set("options.shortcuts.chat.send", keys)
			}
		}

		migrateFields(o, general.Child("dock"), dockFields)
	}

	if events := p.Child("events"); events != nil {
		m.migrateIndex(events, "alertstyle", "options.ui.notifications.alert-style", alertStyles)
		migrateFields(o, events, eventFields)
		if recv := events.Child("receive"); recv != nil {
			migrateFields(o, recv, receiveFields)
			m.migrateIndex(recv, "incomingAs", "options.messages.force-incoming-message-type", incomingAs)
		}
	}

	if pres := p.Child("presence"); pres != nil {
		migrateFields(o, pres.Child("misc"), presenceMiscFields)
		if auto := pres.Child("autostatus"); auto != nil {
			migrateUseFlag(o, auto, "away", "options.status.auto-away.use-away")
			migrateUseFlag(o, auto, "xa", "options.status.auto-away.use-not-availible")
			migrateUseFlag(o, auto, "offline", "options.status.auto-away.use-offline")
			migrateFields(o, auto, autoStatusFields)
		}
		if presets := pres.Child("statuspresets"); presets != nil {
			res.Late.Presets = map[string]status.Preset{}
			for _, e := range presets.Children {
				sp, ok := status.PresetFromXML(e)
				if !ok || sp.Name == "" {
					m.log().Debug("skipping status preset", zap.String("element", e.Name))
					continue
				}
				res.Late.Presets[sp.Name] = sp
			}
		}
	}

	if lnf := p.Child("lookandfeel"); lnf != nil {
		migrateFields(o, lnf, lookAndFeelFields)
		migrateFields(o, lnf.Child("colors"), colorFields)
		migrateFields(o, lnf.Child("fonts"), fontFields)
	}

	if sound := p.Child("sound"); sound != nil {
		m.migrateSound(sound)
	}

	migrateFields(o, p.Child("sizes"), sizeFields)

	if tbs := p.Child("toolbars"); tbs != nil {
		m.migrateToolbars(tbs, res)
	}

	migrateFields(o, p.Child("groupchat"), groupChatFields)

	if dock := p.Child("dock"); dock != nil && dock.HasAttr("bounce") {
		o.Set("options.ui.notifications.bounce-dock", dock.Attr("bounce"))
	}

	migrateFields(o, p.Child("popups"), popupFields)
	migrateFields(o, p.Child("lockdown"), lockdownFields)

	if iconset := p.Child("iconset"); iconset != nil {
		m.migrateIconsets(iconset, res)
	}

	migrateFields(o, p.Child("tipOfTheDay"), tipFields)
	migrateFields(o, p.Child("disco"), discoFields)
	migrateFields(o, p.Child("dt"), dataTransferFields)

	if accel := p.Child("globalAccel"); accel != nil {
		for _, c := range accel.Children {
			if c.Name != "command" || !c.HasAttr("type") {
				continue
			}
			shortcut := "toggle-visibility"
			if c.Attr("type") == "processNextEvent" {
				shortcut = "event"
			}
			o.Set("options.shortcuts.global."+shortcut, c.Text())
		}
	}

	if sticky := section(p, "advancedWidget", "sticky"); sticky != nil {
		if enabled, ok := legacy.BoolAttr(sticky, "enabled"); ok {
			o.Set("options.ui.sticky-windows.enabled", enabled)
		}
		MigrateInt(o, sticky, "offset", "options.ui.sticky-windows.offset")
		MigrateBool(o, sticky, "stickToWindows", "options.ui.sticky-windows.stick-to-windows")
	}
}

// migrateIndex translates a numeric legacy entry through names. Indices
// outside the table are logged and leave the option alone.
func (m *Migrator) migrateIndex(el *legacy.Element, entry, option string, names []string) {
	n, ok := legacy.NumEntry(el, entry)
	if !ok {
		return
	}
	if n < 0 || n >= len(names) {
		m.log().Warn("ignoring out of range legacy value",
			zap.String("entry", entry), zap.Int("value", n))
		return
	}
	m.Options.Set(option, names[n])
}

// migrateUseFlag copies the use="" attribute of an autostatus child.
func migrateUseFlag(o options.Writer, auto *legacy.Element, child, option string) {
	e := auto.Child(child)
	if use, ok := legacy.BoolAttr(e, "use"); ok {
		o.Set(option, use)
	}
}

func (m *Migrator) migrateSound(sound *legacy.Element) {
	o := m.Options

	// The player is detected automatically now. Keep the old setting only
	// when it names something other than the detected or historic default.
	if player, ok := legacy.Entry(sound, "player"); ok {
		detected := "play"
		if m.DetectPlayer != nil {
			detected = m.DetectPlayer()
		}
		if player == detected || player == "play" {
			player = ""
		}
		o.Set("options.ui.notifications.sounds.unix-sound-player", player)
	}

	MigrateBool(o, sound, "noawaysound", "options.ui.notifications.sounds.silent-while-away")
	if noGC, ok := legacy.BoolEntry(sound, "noGCSound"); ok {
		o.Set("options.ui.notifications.sounds.notify-every-muc-message", !noGC)
	}
	migrateFields(o, sound.Child("onevent"), soundEventFields)
}

func (m *Migrator) migrateIconsets(iconset *legacy.Element, res *Result) {
	o := m.Options
	MigrateString(o, iconset, "system", "options.iconsets.system")

	if roster := iconset.Child("roster"); roster != nil {
		MigrateString(o, roster, "default", "options.iconsets.status")

		if service := roster.Child("service"); service != nil {
			res.Late.ServiceIconsets = map[string]string{}
			for _, c := range service.Children {
				res.Late.ServiceIconsets[c.Attr("service")] = c.Attr("iconset")
			}
		}
		if custom := roster.Child("custom"); custom != nil {
			res.Late.CustomIconsets = map[string]string{}
			for _, c := range custom.Children {
				res.Late.CustomIconsets[c.Attr("regExp")] = c.Attr("iconset")
			}
		}
	}

	if emoticons := iconset.Child("emoticons"); emoticons != nil {
		list := []string{}
		for _, c := range emoticons.Children {
			if c.Name == "item" {
				list = append(list, c.Text())
			}
		}
		o.Set("options.iconsets.emoticons", list)
	}
}
