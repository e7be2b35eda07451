package account

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/ruminaider/psiconf/internal/legacy"
)

// Subscription states of a roster item.
const (
	SubscriptionNone   = "none"
	SubscriptionTo     = "to"
	SubscriptionFrom   = "from"
	SubscriptionBoth   = "both"
	SubscriptionRemove = "remove"
)

// ValidSubscription reports whether s is a known subscription state.
func ValidSubscription(s string) bool {
	switch s {
	case SubscriptionNone, SubscriptionTo, SubscriptionFrom, SubscriptionBoth, SubscriptionRemove:
		return true
	}
	return false
}

// RosterItem is one cached contact list entry.
type RosterItem struct {
	JID          string
	Name         string
	Subscription string
	Ask          string
	Groups       []string
}

// RosterItemFromXML parses a legacy <item jid=".." name=".." subscription=".."
// ask=".."><group>..</group></item> element. Items with an invalid JID or an
// unknown subscription are rejected.
func RosterItemFromXML(e *legacy.Element) (RosterItem, bool) {
	if e == nil || e.Name != "item" {
		return RosterItem{}, false
	}
	jid := e.Attr("jid")
	if !ValidJID(jid) {
		return RosterItem{}, false
	}
	sub := e.Attr("subscription")
	if !ValidSubscription(sub) {
		return RosterItem{}, false
	}
	item := RosterItem{
		JID:          jid,
		Name:         e.Attr("name"),
		Subscription: sub,
		Ask:          e.Attr("ask"),
	}
	for _, c := range e.Children {
		if c.Name == "group" {
			item.Groups = append(item.Groups, c.Text())
		}
	}
	return item, true
}

// GroupData is the remembered expansion state and ordering of a group.
type GroupData struct {
	Open bool
	Rank int
}

// groupFromXML parses <group name=".." open="true" rank="3"/>.
func groupFromXML(e *legacy.Element) (string, GroupData) {
	rank, _ := strconv.Atoi(e.Attr("rank"))
	return e.Attr("name"), GroupData{
		Open: e.Attr("open") == "true",
		Rank: rank,
	}
}

// KeyBindings maps a contact JID to the OpenPGP key ID used for it.
type KeyBindings map[string]string

// keyBindingsFromXML reads <pgpkeybindings><item key="jid">keyid</item>...
func keyBindingsFromXML(e *legacy.Element) KeyBindings {
	kb := KeyBindings{}
	for _, c := range e.Children {
		if c.Name != "item" {
			continue
		}
		kb[c.Attr("key")] = c.Text()
	}
	return kb
}

// Names of the groups that exist without any roster item referring to them.
const (
	GroupGeneral = "General"
	GroupAgents  = "Agents/Transports"
)

// AccountGroup is the name of the pseudo-group holding the account itself.
func AccountGroup(name string) string {
	return "/\\/" + name + "\\/\\"
}

// ValidJID performs the structural checks needed to accept a JID from a
// legacy roster: a non-empty domain and no whitespace or stray separators.
func ValidJID(jid string) bool {
	if jid == "" {
		return false
	}
	bare := jid
	if i := strings.IndexByte(bare, '/'); i >= 0 {
		if i == len(bare)-1 {
			return false
		}
		bare = bare[:i]
	}
	domain := bare
	if i := strings.IndexByte(bare, '@'); i >= 0 {
		if i == 0 {
			return false
		}
		domain = bare[i+1:]
	}
	if domain == "" || strings.ContainsRune(domain, '@') {
		return false
	}
	for _, r := range bare {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return false
		}
	}
	return true
}
