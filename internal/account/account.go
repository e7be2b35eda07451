// Package account models a chat account as stored in the option tree and
// as found in legacy configuration documents.
package account

import (
	"github.com/google/uuid"
	"github.com/ruminaider/psiconf/internal/options"
	"github.com/ruminaider/psiconf/internal/status"
)

// SSLMode selects how the connection is encrypted.
type SSLMode int

const (
	SSLNo SSLMode = iota
	SSLYes
	SSLAuto
	SSLLegacy
)

// AllowPlain is the plain-text authentication policy.
type AllowPlain int

const (
	AllowPlainNever AllowPlain = iota
	AllowPlainAlways
	AllowPlainOverTLS
)

// Stored spellings. "over encryped" is misspelled in every existing store
// and must stay that way.
const (
	allowPlainNeverName   = "never"
	allowPlainAlwaysName  = "always"
	allowPlainOverTLSName = "over encryped"
)

// DefaultResource is the resource used when none is configured.
const DefaultResource = "Psi"

// DefaultPort is the client-to-server port.
const DefaultPort = 5222

// defaultSTUNHosts is the compiled-in STUN server list.
var defaultSTUNHosts = []string{
	"stun.jabber.ru:5249",
	"stun.habahaba.im",
	"stun.ekiga.net",
	"provserver.televolution.net",
	"stun1.voiceeclipse.net",
	"stun.callwithus.com",
	"stun.counterpath.net",
	"stun.endigovoip.com",
	"stun.ideasip.com",
	"stun.internetcalls.com",
	"stun.noc.ams-ix.net",
	"stun.phonepower.com",
	"stun.phoneserve.com",
	"stun.rnktel.com",
	"stun.softjoys.com",
	"stun.sipgate.net",
	"stun.sipgate.net:10000",
	"stun.stunprotocol.org",
	"stun.voipbuster.com",
	"stun.voxgratia.org",
}

// DefaultSTUNHosts returns a copy of the compiled-in STUN server list.
func DefaultSTUNHosts() []string {
	out := make([]string, len(defaultSTUNHosts))
	copy(out, defaultSTUNHosts)
	return out
}

// Account is one configured chat account.
type Account struct {
	ID   string
	Name string

	Enabled bool
	Auto    bool

	// Contact list visibility toggles; only legacy documents carry them.
	ShowOffline bool
	ShowAway    bool
	ShowHidden  bool
	ShowAgents  bool
	ShowSelf    bool

	KeepAlive               bool
	StreamManagement        bool
	Compress                bool
	RequireMutualAuth       bool
	LegacySSLProbe          bool
	Log                     bool
	Reconnect               bool
	ConnectAfterSleep       bool
	AutoSameStatus          bool
	IgnoreSSLWarnings       bool
	AutomaticResource       bool
	PriorityDependsOnStatus bool
	IgnoreGlobalActions     bool

	JID       string
	Pass      string
	StorePass bool
	UseHost   bool
	Host      string
	Port      int

	SSL           SSLMode
	AllowPlain    AllowPlain
	SecurityLevel int

	CustomAuth bool
	AuthID     string
	Realm      string

	StoreSaltedPassword bool
	SaltedPassword      string

	Resource string
	Priority int

	Roster      []RosterItem
	GroupState  map[string]GroupData
	KeyBindings KeyBindings

	PGPSecretKeyID string
	PGPPassPhrase  string

	// Inline proxy fields from legacy documents. ProxyIndex 0 means no
	// proxy, N >= 1 is the N-th entry of the migrated proxy list.
	ProxyIndex int
	ProxyType  int
	ProxyHost  string
	ProxyPort  int
	ProxyUser  string
	ProxyPass  string

	ProxyID string

	BytestreamsProxy string
	IBBOnly          bool

	STUNHosts []string
	STUNHost  string
	STUNUser  string
	STUNPass  string

	TLSOverrideCert   []byte
	TLSOverrideDomain string

	LastStatus             status.Status
	LastStatusWithPriority bool

	AlwaysVisibleContacts []string
	MUCBookmarks          []string

	OptionsBase string
}

// New returns an account holding every default.
func New() *Account {
	a := &Account{}
	a.Reset()
	return a
}

// Reset restores every field to its default and assigns a fresh ID.
func (a *Account) Reset() {
	*a = Account{
		ID:      "{" + uuid.NewString() + "}",
		Name:    "Default",
		Enabled: true,

		ShowOffline: true,
		ShowAway:    true,
		ShowAgents:  true,

		KeepAlive:               true,
		StreamManagement:        true,
		Log:                     true,
		AutoSameStatus:          true,
		AutomaticResource:       true,
		PriorityDependsOnStatus: true,

		Port:       DefaultPort,
		SSL:        SSLAuto,
		AllowPlain: AllowPlainOverTLS,

		Resource: DefaultResource,
		Priority: 5,

		GroupState:  map[string]GroupData{},
		KeyBindings: KeyBindings{},

		ProxyPort: 8080,

		STUNHosts: DefaultSTUNHosts(),
		STUNHost:  defaultSTUNHosts[0],

		LastStatus: status.Status{Type: status.Online},
	}
}

// DefaultPriority returns the priority to announce with s. When the
// priority depends on the status it comes from the global per-status
// defaults; offline presence never carries a meaningful priority.
func (a *Account) DefaultPriority(o options.Reader, s status.Status) int {
	if !a.PriorityDependsOnStatus {
		return a.Priority
	}
	if !s.Type.Available() {
		return 0
	}
	return options.Int(o, "options.status.default-priority."+s.Type.String(), 0)
}
