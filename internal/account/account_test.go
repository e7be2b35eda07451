package account_test

import (
	"testing"

	"github.com/ruminaider/psiconf/internal/account"
	"github.com/ruminaider/psiconf/internal/codec"
	"github.com/ruminaider/psiconf/internal/legacy"
	"github.com/ruminaider/psiconf/internal/options"
	"github.com/ruminaider/psiconf/internal/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, doc string) *legacy.Element {
	t.Helper()
	e, err := legacy.Parse([]byte(doc))
	require.NoError(t, err)
	return e
}

func TestNewDefaults(t *testing.T) {
	a := account.New()
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "Default", a.Name)
	assert.True(t, a.Enabled)
	assert.Equal(t, account.SSLAuto, a.SSL)
	assert.Equal(t, account.AllowPlainOverTLS, a.AllowPlain)
	assert.Equal(t, 5222, a.Port)
	assert.Equal(t, 5, a.Priority)
	assert.Equal(t, account.DefaultResource, a.Resource)
	assert.Len(t, a.STUNHosts, 20)
	assert.Equal(t, "stun.jabber.ru:5249", a.STUNHost)
	assert.Equal(t, status.Online, a.LastStatus.Type)

	assert.NotEqual(t, a.ID, account.New().ID)
}

func TestFromXMLJIDShapesAgree(t *testing.T) {
	jidForm := parse(t, `<account>
  <jid manual="true">alice@example.com</jid>
  <host>xmpp.example.com</host>
  <port>5223</port>
</account>`)
	vhostForm := parse(t, `<account>
  <username>alice</username>
  <vhost manual="true">example.com</vhost>
  <host>xmpp.example.com</host>
  <port>5223</port>
</account>`)

	a, b := account.FromXML(jidForm), account.FromXML(vhostForm)
	for _, acc := range []*account.Account{a, b} {
		assert.Equal(t, "alice@example.com", acc.JID)
		assert.Equal(t, "xmpp.example.com", acc.Host)
		assert.Equal(t, 5223, acc.Port)
		assert.True(t, acc.UseHost)
	}
}

func TestFromXMLWithoutVHostUsesHostAsDomain(t *testing.T) {
	a := account.FromXML(parse(t, `<account>
  <username>bob</username>
  <host>example.org</host>
  <port>5223</port>
</account>`))

	assert.Equal(t, "bob@example.org", a.JID)
	assert.Empty(t, a.Host)
	assert.Zero(t, a.Port)
	assert.False(t, a.UseHost)
}

func TestFromXMLUseHostOverridesManual(t *testing.T) {
	a := account.FromXML(parse(t, `<account><jid manual="true">c@d</jid><useHost>false</useHost></account>`))
	assert.False(t, a.UseHost)
}

func TestFromXMLSSLPrecedence(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want account.SSLMode
	}{
		{"no attribute means legacy", `<account/>`, account.SSLLegacy},
		{"attribute false keeps default", `<account ssl="false"/>`, account.SSLAuto},
		{"numeric entry wins", `<account ssl="true"><ssl>1</ssl></account>`, account.SSLYes},
		{"out of range entry ignored", `<account ssl="false"><ssl>9</ssl></account>`, account.SSLAuto},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, account.FromXML(parse(t, tt.doc)).SSL)
		})
	}
}

func TestFromXMLAllowPlainPrecedence(t *testing.T) {
	assert.Equal(t, account.AllowPlainNever, account.FromXML(parse(t, `<account/>`)).AllowPlain)
	assert.Equal(t, account.AllowPlainAlways, account.FromXML(parse(t, `<account plain="true"/>`)).AllowPlain)
	assert.Equal(t, account.AllowPlainOverTLS,
		account.FromXML(parse(t, `<account plain="true"><allow-plain>2</allow-plain></account>`)).AllowPlain)
}

func TestFromXMLFields(t *testing.T) {
	jid := "carol@example.net"
	doc := `<account enabled="false" auto="true" showOffline="false" showSelf="true" log="false">
  <id>{abc}</id>
  <name>Work</name>
  <jid>` + jid + `</jid>
  <password>` + codec.EncodePassword("s3cret", jid) + `</password>
  <custom-auth use="true"><authid>admin</authid><realm>corp</realm></custom-auth>
  <resource>Laptop</resource>
  <priority>7</priority>
  <roster>
    <item jid="dave@example.net" name="Dave" subscription="both"><group>Friends</group></item>
    <item jid="" subscription="both"/>
    <item jid="eve@example.net" subscription="bogus"/>
  </roster>
  <groupState>
    <group name="Friends" open="true" rank="2"/>
  </groupState>
  <proxyindex>1</proxyindex>
  <proxytype>1</proxytype>
  <proxyhost>gw</proxyhost>
  <proxyport>3128</proxyport>
  <proxyuser>u</proxyuser>
  <proxypass>` + codec.EncodePassword("pp", jid) + `</proxypass>
  <pgpkeybindings><item key="dave@example.net">ABCD</item></pgpkeybindings>
  <dtProxy>proxy.example.net</dtProxy>
</account>`

	a := account.FromXML(parse(t, doc))
	assert.Equal(t, "{abc}", a.ID)
	assert.Equal(t, "Work", a.Name)
	assert.False(t, a.Enabled)
	assert.True(t, a.Auto)
	assert.False(t, a.ShowOffline)
	assert.True(t, a.ShowAway)
	assert.True(t, a.ShowSelf)
	assert.False(t, a.Log)
	assert.Equal(t, "s3cret", a.Pass)
	assert.True(t, a.StorePass)
	assert.True(t, a.CustomAuth)
	assert.Equal(t, "admin", a.AuthID)
	assert.Equal(t, "corp", a.Realm)
	assert.Equal(t, "Laptop", a.Resource)
	assert.Equal(t, 7, a.Priority)
	require.Len(t, a.Roster, 1)
	assert.Equal(t, account.RosterItem{JID: "dave@example.net", Name: "Dave", Subscription: "both", Groups: []string{"Friends"}}, a.Roster[0])
	assert.Equal(t, map[string]account.GroupData{"Friends": {Open: true, Rank: 2}}, a.GroupState)
	assert.Equal(t, 1, a.ProxyIndex)
	assert.Equal(t, 1, a.ProxyType)
	assert.Equal(t, "gw", a.ProxyHost)
	assert.Equal(t, 3128, a.ProxyPort)
	assert.Equal(t, "u", a.ProxyUser)
	assert.Equal(t, "pp", a.ProxyPass)
	assert.Equal(t, account.KeyBindings{"dave@example.net": "ABCD"}, a.KeyBindings)
	assert.Equal(t, "proxy.example.net", a.BytestreamsProxy)
}

func TestFromXMLInlineProxyAttributes(t *testing.T) {
	a := account.FromXML(parse(t, `<account proxytype="1" proxyhost="h" proxyport="8080"><jid>a@b</jid></account>`))
	assert.Equal(t, 1, a.ProxyType)
	assert.Equal(t, "h", a.ProxyHost)
	assert.Equal(t, 8080, a.ProxyPort)
}

func populated() *account.Account {
	a := account.New()
	a.ID = "{fixed}"
	a.Name = "Home"
	a.JID = "alice@example.com"
	a.Pass = "hunter2"
	a.StorePass = true
	a.Auto = true
	a.Compress = true
	a.ConnectAfterSleep = true
	a.SSL = account.SSLLegacy
	a.AllowPlain = account.AllowPlainAlways
	a.SecurityLevel = 2
	a.PGPSecretKeyID = "0xDEADBEEF"
	a.PGPPassPhrase = "phrase"
	a.Roster = []account.RosterItem{
		{JID: "bob@example.com", Name: "Bob", Subscription: "both", Groups: []string{"Friends"}},
		{JID: "svc.example.com", Subscription: "to"},
	}
	a.GroupState = map[string]account.GroupData{
		"Friends": {Open: true, Rank: 1},
		"General": {Rank: 3},
	}
	a.KeyBindings = account.KeyBindings{"bob@example.com": "0xB0B"}
	a.ProxyID = "a0"
	a.STUNHosts = []string{"stun.example.com"}
	a.STUNHost = "stun.example.com"
	a.STUNUser = "u"
	a.TLSOverrideCert = []byte{0x30, 0x82}
	a.TLSOverrideDomain = "example.com"
	a.AlwaysVisibleContacts = []string{"bob@example.com"}
	a.MUCBookmarks = []string{"room@conference.example.com"}
	a.LastStatus = status.Status{Type: status.Away, Message: "lunch", Priority: 3}
	a.LastStatusWithPriority = true
	return a
}

func TestOptionsRoundTrip(t *testing.T) {
	const base = "accounts.a0"
	tr := options.NewTree()
	a := populated()
	a.OptionsBase = base
	a.GroupState["Stale"] = account.GroupData{Open: true}

	a.ToOptions(tr, base)
	b := account.FromOptions(tr, base)

	delete(a.GroupState, "Stale")
	assert.Equal(t, a, b)

	assert.Equal(t, "legacy", tr.Get(base+".ssl", ""))
	assert.Equal(t, "always", tr.Get(base+".allow-plain", ""))
	assert.Equal(t, codec.EncodePassword("hunter2", a.JID), tr.Get(base+".password", ""))
}

func TestToOptionsReplacesOldData(t *testing.T) {
	tr := options.NewTree()
	tr.Set("accounts.a0.leftover", true)

	populated().ToOptions(tr, "accounts.a0")

	_, ok := tr.Lookup("accounts.a0.leftover")
	assert.False(t, ok)
}

func TestToOptionsPrunesDeadGroups(t *testing.T) {
	tr := options.NewTree()
	a := populated()
	a.GroupState[account.AccountGroup(a.Name)] = account.GroupData{Open: true}
	a.GroupState["Agents/Transports"] = account.GroupData{}
	a.GroupState["Old"] = account.GroupData{}

	a.ToOptions(tr, "accounts.a0")

	keys := tr.MapKeys("accounts.a0.group-state")
	assert.ElementsMatch(t, []string{"Friends", "General", "Agents/Transports", `/\/Home\/\`}, keys)
	assert.Contains(t, a.GroupState, "Old", "receiver keeps its state")
}

func TestToOptionsPanicsOnUnknownEnum(t *testing.T) {
	a := populated()
	a.SSL = account.SSLMode(42)
	tr := options.NewTree()
	tr.Set("accounts.a0.name", "kept")

	assert.Panics(t, func() { a.ToOptions(tr, "accounts.a0") })
	assert.Equal(t, "kept", tr.Get("accounts.a0.name", ""))

	b := populated()
	b.AllowPlain = account.AllowPlain(-1)
	assert.Panics(t, func() { b.ToOptions(options.NewTree(), "accounts.a0") })
}

func TestFromOptionsPresenceGuarded(t *testing.T) {
	tr := options.NewTree()
	tr.Set("accounts.a0.name", "Minimal")
	tr.Set("accounts.a0.last-status", "dnd")

	a := account.FromOptions(tr, "accounts.a0")
	assert.Equal(t, "Minimal", a.Name)
	assert.True(t, a.PriorityDependsOnStatus)
	assert.True(t, a.AutoSameStatus)
	assert.Equal(t, status.Online, a.LastStatus.Type, "last status needs auto-same-status")
	assert.Len(t, a.STUNHosts, 20)
	assert.Equal(t, account.SSLYes, a.SSL)
	assert.Equal(t, account.AllowPlainNever, a.AllowPlain)
	assert.True(t, a.StreamManagement)
}

func TestFromOptionsStunHostWithoutList(t *testing.T) {
	tr := options.NewTree()
	tr.Set("accounts.a0.stun-host", "stun.other.org")

	a := account.FromOptions(tr, "accounts.a0")
	assert.Equal(t, "stun.other.org", a.STUNHost)
	assert.Len(t, a.STUNHosts, 20)
}

func TestDefaultPriority(t *testing.T) {
	tr := options.NewTree()
	tr.Set("options.status.default-priority.away", 2)

	a := account.New()
	a.Priority = 9

	assert.Equal(t, 2, a.DefaultPriority(tr, status.Status{Type: status.Away}))
	assert.Equal(t, 0, a.DefaultPriority(tr, status.Status{Type: status.Offline}))
	assert.Equal(t, 0, a.DefaultPriority(tr, status.Status{Type: status.DND}))

	a.PriorityDependsOnStatus = false
	assert.Equal(t, 9, a.DefaultPriority(tr, status.Status{Type: status.Away}))
}

func TestFromOptionsDerivesPriorityFromStatus(t *testing.T) {
	tr := options.NewTree()
	tr.Set("options.status.default-priority.xa", 4)
	tr.Set("accounts.a0.priority-depends-on-status", true)
	tr.Set("accounts.a0.auto-same-status", true)
	tr.Set("accounts.a0.last-status", "xa")
	tr.Set("accounts.a0.last-with-priority", false)

	a := account.FromOptions(tr, "accounts.a0")
	assert.Equal(t, status.Status{Type: status.XA, Priority: 4}, a.LastStatus)
}

func TestSaveLastStatus(t *testing.T) {
	tr := options.NewTree()
	a := account.New()
	a.OptionsBase = "accounts.a1"
	a.LastStatus = status.Status{Type: status.FFC, Message: "hi", Priority: 8}
	a.LastStatusWithPriority = true

	a.SaveLastStatus(tr, "")
	assert.Equal(t, "chat", tr.Get("accounts.a1.last-status", ""))
	assert.Equal(t, 8, tr.Get("accounts.a1.last-priority", 0))

	a.LastStatusWithPriority = false
	a.SaveLastStatus(tr, "")
	_, ok := tr.Lookup("accounts.a1.last-priority")
	assert.False(t, ok)
}

func TestValidJID(t *testing.T) {
	valid := []string{"a@b", "example.com", "a@b/res", "a@b/res/with/slash"}
	invalid := []string{"", "@b", "a@", "a@b@c", "a b@c", "a@b/"}
	for _, j := range valid {
		assert.True(t, account.ValidJID(j), j)
	}
	for _, j := range invalid {
		assert.False(t, account.ValidJID(j), j)
	}
}
