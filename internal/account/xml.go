package account

import (
	"strconv"

	"github.com/ruminaider/psiconf/internal/codec"
	"github.com/ruminaider/psiconf/internal/legacy"
)

// boolAttrs maps legacy <account> attributes to the flags they set.
func (a *Account) boolAttrs() map[string]*bool {
	return map[string]*bool{
		"enabled":                    &a.Enabled,
		"auto":                       &a.Auto,
		"showOffline":                &a.ShowOffline,
		"showAway":                   &a.ShowAway,
		"showHidden":                 &a.ShowHidden,
		"showAgents":                 &a.ShowAgents,
		"showSelf":                   &a.ShowSelf,
		"keepAlive":                  &a.KeepAlive,
		"enableSM":                   &a.StreamManagement,
		"compress":                   &a.Compress,
		"require-mutual-auth":        &a.RequireMutualAuth,
		"legacy-ssl-probe":           &a.LegacySSLProbe,
		"log":                        &a.Log,
		"reconn":                     &a.Reconnect,
		"ignoreSSLWarnings":          &a.IgnoreSSLWarnings,
		"automatic-resource":         &a.AutomaticResource,
		"priority-depends-on-status": &a.PriorityDependsOnStatus,
		"ignore-global-actions":      &a.IgnoreGlobalActions,
	}
}

// FromXML builds an account from a legacy <account> element. Fields the
// element does not mention keep their defaults.
func FromXML(e *legacy.Element) *Account {
	a := New()

	legacy.ReadEntry(e, "id", &a.ID)
	legacy.ReadEntry(e, "name", &a.Name)
	for name, v := range a.boolAttrs() {
		legacy.ReadBoolAttr(e, name, v)
	}

	// The boolean "plain" predates the three-way allow-plain entry, which
	// wins when both are present. A missing attribute counts as false.
	plain := false
	legacy.ReadBoolAttr(e, "plain", &plain)
	if plain {
		a.AllowPlain = AllowPlainAlways
	} else {
		a.AllowPlain = AllowPlainNever
	}
	if n, ok := legacy.NumEntry(e, "allow-plain"); ok && n >= int(AllowPlainNever) && n <= int(AllowPlainOverTLS) {
		a.AllowPlain = AllowPlain(n)
	}

	// Same precedence for the boolean "ssl" attribute and the numeric ssl
	// entry. A missing attribute counts as true.
	ssl := true
	legacy.ReadBoolAttr(e, "ssl", &ssl)
	if ssl {
		a.SSL = SSLLegacy
	}
	legacy.ReadNumEntry(e, "security-level", &a.SecurityLevel)
	if n, ok := legacy.NumEntry(e, "ssl"); ok && n >= int(SSLNo) && n <= int(SSLLegacy) {
		a.SSL = SSLMode(n)
	}

	legacy.ReadEntry(e, "host", &a.Host)
	legacy.ReadNumEntry(e, "port", &a.Port)

	id := identity{Host: a.Host, Port: a.Port, Manual: a.UseHost}
	switch detectJIDShape(e) {
	case shapeJIDElement:
		id = parseJIDElement(e, id)
	case shapeUserVHost:
		id = parseUserVHost(e, id)
	}
	a.JID, a.Host, a.Port, a.UseHost = id.JID, id.Host, id.Port, id.Manual
	legacy.ReadBoolEntry(e, "useHost", &a.UseHost)

	if s, ok := legacy.Entry(e, "password"); ok {
		a.Pass = codec.DecodePassword(s, a.JID)
		a.StorePass = a.Pass != ""
	}

	if ca := e.Child("custom-auth"); ca != nil {
		legacy.ReadBoolAttr(ca, "use", &a.CustomAuth)
		legacy.ReadEntry(ca, "authid", &a.AuthID)
		legacy.ReadEntry(ca, "realm", &a.Realm)
	}

	legacy.ReadEntry(e, "resource", &a.Resource)
	legacy.ReadNumEntry(e, "priority", &a.Priority)
	legacy.ReadEntry(e, "pgpSecretKeyID", &a.PGPSecretKeyID)
	if a.PGPSecretKeyID != "" {
		if s, ok := legacy.Entry(e, "passphrase"); ok {
			a.PGPPassPhrase = codec.DecodePassword(s, a.PGPSecretKeyID)
		}
	}

	if r := e.Child("roster"); r != nil {
		for _, c := range r.Children {
			if item, ok := RosterItemFromXML(c); ok {
				a.Roster = append(a.Roster, item)
			}
		}
	}

	if gs := e.Child("groupState"); gs != nil {
		for _, c := range gs.Children {
			if c.Name != "group" {
				continue
			}
			name, gd := groupFromXML(c)
			a.GroupState[name] = gd
		}
	}

	readInlineNum(e, "proxyindex", &a.ProxyIndex)
	readInlineNum(e, "proxytype", &a.ProxyType)
	readInline(e, "proxyhost", &a.ProxyHost)
	readInlineNum(e, "proxyport", &a.ProxyPort)
	readInline(e, "proxyuser", &a.ProxyUser)
	var proxyPass string
	if readInline(e, "proxypass", &proxyPass) {
		a.ProxyPass = codec.DecodePassword(proxyPass, a.JID)
	}

	if kb := e.Child("pgpkeybindings"); kb != nil {
		a.KeyBindings = keyBindingsFromXML(kb)
	}

	legacy.ReadEntry(e, "dtProxy", &a.BytestreamsProxy)

	return a
}

// Inline proxy fields appear as child entries in most documents and as
// attributes in some hand-edited ones.
func readInline(e *legacy.Element, name string, v *string) bool {
	if s, ok := legacy.Entry(e, name); ok {
		*v = s
		return true
	}
	if e.HasAttr(name) {
		*v = e.Attr(name)
		return true
	}
	return false
}

func readInlineNum(e *legacy.Element, name string, v *int) {
	var s string
	if !readInline(e, name, &s) {
		return
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		n = 0
	}
	*v = n
}

// identity is the address part of an account: who it is and where it
// connects to.
type identity struct {
	JID    string
	Host   string
	Port   int
	Manual bool
}

type jidShape int

const (
	// <jid manual="true">user@example.com</jid>
	shapeJIDElement jidShape = iota
	// <username>user</username><vhost manual="true">example.com</vhost>
	shapeUserVHost
)

func detectJIDShape(e *legacy.Element) jidShape {
	if e.HasChild("jid") {
		return shapeJIDElement
	}
	return shapeUserVHost
}

func parseJIDElement(e *legacy.Element, id identity) identity {
	j := e.Child("jid")
	id.JID = j.Text()
	legacy.ReadBoolAttr(j, "manual", &id.Manual)
	return id
}

// In the oldest documents the host entry named the server and there was no
// vhost. Without an explicit vhost the host becomes the domain and the
// connection settings revert to automatic.
func parseUserVHost(e *legacy.Element, id identity) identity {
	user, _ := legacy.Entry(e, "username")

	var vhost string
	if v := e.Child("vhost"); v != nil {
		vhost = v.Text()
		legacy.ReadBoolAttr(v, "manual", &id.Manual)
	} else {
		id.Manual = false
		vhost = id.Host
		id.Host = ""
		id.Port = 0
	}

	id.JID = user + "@" + vhost
	return id
}
