// Package migration translates a legacy XML configuration document into
// the option tree, in two phases: FromFile at load time and LateMigrate
// once plugins and toolbars are known.
package migration

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/ruminaider/psiconf/internal/account"
	"github.com/ruminaider/psiconf/internal/legacy"
	"github.com/ruminaider/psiconf/internal/options"
	"github.com/ruminaider/psiconf/internal/proxy"
	"github.com/ruminaider/psiconf/internal/status"
	"github.com/ruminaider/psiconf/internal/toolbar"
	"go.uber.org/zap"
)

var (
	// ErrParse means the legacy document could not be read or parsed.
	ErrParse = errors.New("legacy document unreadable")
	// ErrVersionMismatch means the document is not a supported legacy config.
	ErrVersionMismatch = errors.New("unsupported legacy document")
)

const (
	RootTag          = "psiconf"
	SupportedVersion = "1.0"

	// AccountsPath holds migrated accounts as accounts.a<n>.
	AccountsPath = "accounts"
)

// ToolbarGroup is the only toolbar window the legacy format knew about.
const ToolbarGroup = "mainWin"

// LateData is what FromFile gathers for LateMigrate.
type LateData struct {
	ServiceIconsets map[string]string
	CustomIconsets  map[string]string
	Presets         map[string]status.Preset
	Toolbars        map[string][]toolbar.Prefs
}

func newLateData() LateData {
	return LateData{
		ServiceIconsets: map[string]string{},
		CustomIconsets:  map[string]string{},
		Presets:         map[string]status.Preset{},
		Toolbars:        map[string][]toolbar.Prefs{},
	}
}

// Result is the outcome of a successful FromFile.
type Result struct {
	ProgVer  string
	Accounts []*account.Account
	Proxies  []proxy.Item
	Late     LateData
}

// Migrator writes migrated settings into Options.
type Migrator struct {
	Options options.Writer
	Logger  *zap.Logger

	// DetectPlayer names the sound player that would be picked
	// automatically. Legacy settings naming it are dropped.
	DetectPlayer func() string
}

// New returns a Migrator writing to o. A nil logger discards output.
func New(o options.Writer, logger *zap.Logger) *Migrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Migrator{
		Options:      o,
		Logger:       logger,
		DetectPlayer: DetectSoundPlayer,
	}
}

// DetectSoundPlayer picks aplay on ALSA systems and play elsewhere.
func DetectSoundPlayer() string {
	if _, err := os.Stat("/proc/asound"); err == nil {
		return "aplay"
	}
	return "play"
}

func (m *Migrator) log() *zap.Logger {
	if m.Logger == nil {
		return zap.NewNop()
	}
	return m.Logger
}

// FromFile migrates the legacy document at path. A missing, malformed or
// foreign document fails before any option is written.
func (m *Migrator) FromFile(path string) (*Result, error) {
	root, err := legacy.Load(path)
	if err != nil {
		m.log().Warn("legacy config unreadable", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	res, err := m.FromDocument(root)
	if err != nil {
		m.log().Warn("legacy config rejected", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	m.log().Info("legacy config migrated",
		zap.String("path", path),
		zap.String("progver", res.ProgVer),
		zap.Int("accounts", len(res.Accounts)),
		zap.Int("proxies", len(res.Proxies)))
	return res, nil
}

// FromDocument migrates an already parsed document rooted at root.
func (m *Migrator) FromDocument(root *legacy.Element) (*Result, error) {
	if root == nil || root.Name != RootTag {
		name := ""
		if root != nil {
			name = root.Name
		}
		return nil, fmt.Errorf("%w: root element %q", ErrVersionMismatch, name)
	}
	if v := root.Attr("version"); v != SupportedVersion {
		return nil, fmt.Errorf("%w: version %q", ErrVersionMismatch, v)
	}

	o := m.Options
	res := &Result{Late: newLateData()}
	legacy.ReadEntry(root, "progver", &res.ProgVer)

	MigrateStringList(o, root, "recentGCList", "options.muc.recent-joins.jids")
	MigrateStringList(o, root, "recentBrowseList", "options.ui.service-discovery.recent-jids")
	MigrateString(o, root, "lastStatusString", "options.status.last-message")
	MigrateBool(o, root, "useSound", "options.ui.notifications.sounds.enable")

	if accs := root.Child("accounts"); accs != nil {
		for _, e := range accs.Children {
			if e.Name != "account" {
				continue
			}
			res.Accounts = append(res.Accounts, account.FromXML(e))
		}
	}

	res.Proxies = m.collectProxies(root, res.Accounts)
	m.migrateContactListToggles(res.Accounts)

	if p := root.Child("preferences"); p != nil {
		m.migratePreferences(p, res)
	}

	return res, nil
}

// collectProxies merges inline account proxies and the standalone proxy
// list, assigns IDs a0..aN in final order and points accounts at them.
// Inline proxies come first because their count is only known after every
// account has been seen.
func (m *Migrator) collectProxies(root *legacy.Element, accounts []*account.Account) []proxy.Item {
	var items []proxy.Item
	for _, a := range accounts {
		if a.ProxyType <= 0 {
			continue
		}
		items = append(items, proxy.Item{
			Name: a.Name + " Proxy",
			Type: "http",
			Settings: proxy.Settings{
				Host:    a.ProxyHost,
				Port:    a.ProxyPort,
				UseAuth: a.ProxyUser != "",
				User:    a.ProxyUser,
				Pass:    a.ProxyPass,
			},
		})
		a.ProxyIndex = len(items)
	}

	if prox := root.Child("proxies"); prox != nil {
		for _, e := range prox.Descendants("proxy") {
			items = append(items, proxy.FromXML(e))
		}
	}

	for i := range items {
		items[i].ID = "a" + strconv.Itoa(i)
	}
	for _, a := range accounts {
		if a.ProxyIndex == 0 {
			continue
		}
		if a.ProxyIndex < 1 || a.ProxyIndex > len(items) {
			m.log().Warn("account refers to a missing proxy",
				zap.String("account", a.Name), zap.Int("proxy_index", a.ProxyIndex))
			a.ProxyID = ""
			continue
		}
		a.ProxyID = items[a.ProxyIndex-1].ID
	}
	return items
}

var contactListToggles = []struct {
	option string
	value  func(*account.Account) bool
}{
	{"options.ui.contactlist.show.offline-contacts", func(a *account.Account) bool { return a.ShowOffline }},
	{"options.ui.contactlist.show.away-contacts", func(a *account.Account) bool { return a.ShowAway }},
	{"options.ui.contactlist.show.hidden-contacts-group", func(a *account.Account) bool { return a.ShowHidden }},
	{"options.ui.contactlist.show.agent-contacts", func(a *account.Account) bool { return a.ShowAgents }},
	{"options.ui.contactlist.show.self-contact", func(a *account.Account) bool { return a.ShowSelf }},
}

// The contact list toggles used to be per account. Everything is shown
// unless the first enabled account says otherwise.
func (m *Migrator) migrateContactListToggles(accounts []*account.Account) {
	for _, t := range contactListToggles {
		m.Options.Set(t.option, true)
	}
	for _, a := range accounts {
		if !a.Enabled {
			continue
		}
		for _, t := range contactListToggles {
			m.Options.Set(t.option, t.value(a))
		}
		return
	}
}

// Save writes the migrated accounts and proxies into the option tree.
func (m *Migrator) Save(res *Result) {
	for i, a := range res.Accounts {
		a.OptionsBase = AccountsPath + ".a" + strconv.Itoa(i)
		a.ToOptions(m.Options, a.OptionsBase)
	}
	for _, p := range res.Proxies {
		p.ToOptions(m.Options)
	}
}
