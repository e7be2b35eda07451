package account

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/ruminaider/psiconf/internal/codec"
	"github.com/ruminaider/psiconf/internal/options"
	"github.com/ruminaider/psiconf/internal/status"
)

var sslNames = map[SSLMode]string{
	SSLNo:     "no",
	SSLYes:    "yes",
	SSLAuto:   "auto",
	SSLLegacy: "legacy",
}

var allowPlainNames = map[AllowPlain]string{
	AllowPlainNever:   allowPlainNeverName,
	AllowPlainAlways:  allowPlainAlwaysName,
	AllowPlainOverTLS: allowPlainOverTLSName,
}

// String returns the stored spelling of m. It panics on values outside
// the enum, which can only come from a programming error.
func (m SSLMode) String() string {
	s, ok := sslNames[m]
	if !ok {
		panic(fmt.Sprintf("account: unknown ssl mode %d", int(m)))
	}
	return s
}

// String returns the stored spelling of p, panicking on unknown values.
func (p AllowPlain) String() string {
	s, ok := allowPlainNames[p]
	if !ok {
		panic(fmt.Sprintf("account: unknown allow-plain policy %d", int(p)))
	}
	return s
}

// parseSSL reads a stored ssl value. Unknown spellings mean "yes".
func parseSSL(s string) SSLMode {
	for m, name := range sslNames {
		if name == s {
			return m
		}
	}
	return SSLYes
}

// parseAllowPlain reads a stored allow-plain value. Unknown spellings mean
// "never".
func parseAllowPlain(s string) AllowPlain {
	for p, name := range allowPlainNames {
		if name == s {
			return p
		}
	}
	return AllowPlainNever
}

// FromOptions reads the account stored at base. Options added after the
// first option-tree release are only read when present, so stores written
// by older versions keep the defaults for them.
func FromOptions(o options.Reader, base string) *Account {
	a := New()
	a.OptionsBase = base

	present := map[string]bool{}
	for _, name := range o.ChildNames(base, true, true) {
		present[name] = true
	}
	has := func(key string) bool { return present[base+"."+key] }
	str := func(key string) string { return options.String(o, base+"."+key, "") }
	flag := func(key string, def bool) bool { return options.Bool(o, base+"."+key, def) }
	num := func(key string) int { return options.Int(o, base+"."+key, 0) }

	a.Enabled = flag("enabled", false)
	a.Auto = flag("auto", false)
	a.KeepAlive = flag("keep-alive", false)
	a.StreamManagement = flag("enable-sm", true)
	a.Compress = flag("compress", false)
	a.RequireMutualAuth = flag("require-mutual-auth", false)
	a.LegacySSLProbe = flag("legacy-ssl-probe", false)
	a.AutomaticResource = flag("automatic-resource", false)
	a.IgnoreGlobalActions = flag("ignore-global-actions", false)
	a.Log = flag("log", false)
	a.Reconnect = flag("reconn", false)
	a.IgnoreSSLWarnings = flag("ignore-SSL-warnings", false)
	if has("priority-depends-on-status") {
		a.PriorityDependsOnStatus = flag("priority-depends-on-status", false)
	}
	if has("connect-after-sleep") {
		a.ConnectAfterSleep = flag("connect-after-sleep", false)
	}

	if id := str("id"); id != "" {
		a.ID = id
	}
	a.Name = str("name")
	a.JID = str("jid")

	a.CustomAuth = flag("custom-auth.use", false)
	a.AuthID = str("custom-auth.authid")
	a.Realm = str("custom-auth.realm")

	a.StoreSaltedPassword = flag("scram.store-salted-password", false)
	a.SaltedPassword = str("scram.salted-password")

	if enc := str("password"); enc != "" {
		a.StorePass = true
		a.Pass = codec.DecodePassword(enc, a.JID)
	}

	a.UseHost = flag("use-host", false)
	a.SecurityLevel = num("security-level")
	a.SSL = parseSSL(str("ssl"))
	a.Host = str("host")
	a.Port = num("port")
	a.Resource = str("resource")
	a.Priority = num("priority")

	if has("auto-same-status") {
		a.AutoSameStatus = flag("auto-same-status", false)
		t, _ := status.ParseType(str("last-status"))
		a.LastStatus = status.Status{Type: t, Message: str("last-status-message")}
		a.LastStatusWithPriority = flag("last-with-priority", false)
		if a.LastStatusWithPriority {
			a.LastStatus.Priority = num("last-priority")
		} else {
			a.LastStatus.Priority = a.DefaultPriority(o, a.LastStatus)
		}
	}

	a.PGPSecretKeyID = str("pgp-secret-key-id")
	if a.PGPSecretKeyID != "" {
		if enc := str("pgp-pass-phrase"); enc != "" {
			a.PGPPassPhrase = codec.DecodePassword(enc, a.PGPSecretKeyID)
		}
	}

	a.AllowPlain = parseAllowPlain(str("allow-plain"))

	for _, rbase := range o.ChildNames(base+".roster-cache", true, true) {
		sub := options.String(o, rbase+".subscription", "")
		if !ValidSubscription(sub) {
			sub = SubscriptionNone
		}
		a.Roster = append(a.Roster, RosterItem{
			JID:          options.String(o, rbase+".jid", ""),
			Name:         options.String(o, rbase+".name", ""),
			Subscription: sub,
			Ask:          options.String(o, rbase+".ask", ""),
			Groups:       nonEmpty(options.StringList(o, rbase+".groups")),
		})
	}

	for _, group := range o.MapKeys(base + ".group-state") {
		gbase, _ := o.MapLookup(base+".group-state", group)
		a.GroupState[group] = GroupData{
			Open: options.Bool(o, gbase+".open", false),
			Rank: options.Int(o, gbase+".rank", 0),
		}
	}

	a.ProxyID = str("proxy-id")

	kbBase := base + ".pgp-key-bindings"
	for _, jid := range o.MapKeys(kbBase) {
		kb, _ := o.MapLookup(kbBase, jid)
		a.KeyBindings[jid] = options.String(o, kb+".key-id", "")
	}

	a.BytestreamsProxy = str("bytestreams-proxy")
	a.IBBOnly = flag("ibb-only", false)

	if has("stun-hosts") {
		a.STUNHosts = nonEmpty(options.StringList(o, base+".stun-hosts"))
		if has("stun-host") {
			a.STUNHost = str("stun-host")
		}
	} else if h := str("stun-host"); h != "" {
		a.STUNHost = h
	}
	if has("stun-username") {
		a.STUNUser = str("stun-username")
	}
	if has("stun-password") {
		a.STUNPass = str("stun-password")
	}

	if has("tls") {
		if cert := options.Bytes(o, base+".tls.override-certificate"); len(cert) > 0 {
			a.TLSOverrideCert = cert
		}
		a.TLSOverrideDomain = str("tls.override-domain")
	}

	a.AlwaysVisibleContacts = nonEmpty(options.StringList(o, base+".always-visible-contacts"))
	a.MUCBookmarks = nonEmpty(options.StringList(o, base+".muc-bookmarks"))

	return a
}

// ToOptions replaces everything stored at base with a. An empty base
// means the location the account was read from. Group states of groups
// that no longer exist are not written.
func (a *Account) ToOptions(o options.Writer, base string) {
	if base == "" {
		base = a.OptionsBase
	}
	if base == "" {
		panic("account: storing account without options base")
	}
	// Resolve the enums first so a bad value panics before the old data
	// is gone.
	ssl, allowPlain := a.SSL.String(), a.AllowPlain.String()

	o.Remove(base, true)
	set := func(key string, v any) { o.Set(base+"."+key, v) }

	set("enabled", a.Enabled)
	set("auto", a.Auto)
	set("keep-alive", a.KeepAlive)
	set("enable-sm", a.StreamManagement)
	set("compress", a.Compress)
	set("require-mutual-auth", a.RequireMutualAuth)
	set("legacy-ssl-probe", a.LegacySSLProbe)
	set("automatic-resource", a.AutomaticResource)
	set("priority-depends-on-status", a.PriorityDependsOnStatus)
	set("ignore-global-actions", a.IgnoreGlobalActions)
	set("log", a.Log)
	set("reconn", a.Reconnect)
	set("connect-after-sleep", a.ConnectAfterSleep)
	set("auto-same-status", a.AutoSameStatus)
	set("ignore-SSL-warnings", a.IgnoreSSLWarnings)

	set("id", a.ID)
	set("name", a.Name)
	set("jid", a.JID)

	set("custom-auth.use", a.CustomAuth)
	set("custom-auth.authid", a.AuthID)
	set("custom-auth.realm", a.Realm)

	set("scram.store-salted-password", a.StoreSaltedPassword)
	set("scram.salted-password", a.SaltedPassword)

	if a.StorePass {
		set("password", codec.EncodePassword(a.Pass, a.JID))
	} else {
		set("password", "")
	}
	set("use-host", a.UseHost)
	set("security-level", a.SecurityLevel)
	set("ssl", ssl)
	set("host", a.Host)
	set("port", a.Port)
	set("resource", a.Resource)
	set("priority", a.Priority)
	if a.PGPSecretKeyID != "" {
		set("pgp-secret-key-id", a.PGPSecretKeyID)
		set("pgp-pass-phrase", codec.EncodePassword(a.PGPPassPhrase, a.PGPSecretKeyID))
	} else {
		set("pgp-secret-key-id", "")
		set("pgp-pass-phrase", "")
	}
	set("allow-plain", allowPlain)

	for i, ri := range a.Roster {
		rbase := "roster-cache.a" + strconv.Itoa(i)
		set(rbase+".jid", ri.JID)
		set(rbase+".name", ri.Name)
		set(rbase+".subscription", ri.Subscription)
		set(rbase+".ask", ri.Ask)
		set(rbase+".groups", list(ri.Groups))
	}

	live := a.LiveGroupState()
	groups := make([]string, 0, len(live))
	for g := range live {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	for _, g := range groups {
		gbase := o.MapPut(base+".group-state", g)
		o.Set(gbase+".open", live[g].Open)
		o.Set(gbase+".rank", live[g].Rank)
	}

	set("proxy-id", a.ProxyID)

	jids := make([]string, 0, len(a.KeyBindings))
	for jid := range a.KeyBindings {
		jids = append(jids, jid)
	}
	sort.Strings(jids)
	for _, jid := range jids {
		kb := o.MapPut(base+".pgp-key-bindings", jid)
		o.Set(kb+".key-id", a.KeyBindings[jid])
	}

	set("bytestreams-proxy", a.BytestreamsProxy)
	set("ibb-only", a.IBBOnly)

	set("stun-hosts", list(a.STUNHosts))
	set("stun-host", a.STUNHost)
	set("stun-username", a.STUNUser)
	set("stun-password", a.STUNPass)

	cert := a.TLSOverrideCert
	if cert == nil {
		cert = []byte{}
	}
	set("tls.override-certificate", cert)
	set("tls.override-domain", a.TLSOverrideDomain)

	a.SaveLastStatus(o, base)

	set("always-visible-contacts", list(a.AlwaysVisibleContacts))
	set("muc-bookmarks", list(a.MUCBookmarks))
}

// SaveLastStatus stores the last announced presence at base, or at the
// account's own location when base is empty.
func (a *Account) SaveLastStatus(o options.Writer, base string) {
	if base == "" {
		base = a.OptionsBase
	}
	o.Set(base+".last-status", a.LastStatus.Type.String())
	o.Set(base+".last-status-message", a.LastStatus.Message)
	o.Set(base+".last-with-priority", a.LastStatusWithPriority)
	if a.LastStatusWithPriority {
		o.Set(base+".last-priority", a.LastStatus.Priority)
	} else {
		o.Remove(base+".last-priority", false)
	}
}

// LiveGroupState returns the group states worth remembering: those of the
// account pseudo-group, the built-in groups and every group a roster item
// belongs to.
func (a *Account) LiveGroupState() map[string]GroupData {
	keep := map[string]bool{
		AccountGroup(a.Name): true,
		GroupGeneral:         true,
		GroupAgents:          true,
	}
	for _, ri := range a.Roster {
		for _, g := range ri.Groups {
			keep[g] = true
		}
	}
	out := make(map[string]GroupData, len(a.GroupState))
	for g, gd := range a.GroupState {
		if keep[g] {
			out[g] = gd
		}
	}
	return out
}

func list(l []string) []string {
	if l == nil {
		return []string{}
	}
	return l
}

func nonEmpty(l []string) []string {
	if len(l) == 0 {
		return nil
	}
	return l
}
