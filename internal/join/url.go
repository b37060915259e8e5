package join

import (
	"encoding/base64"
	"net/url"
	"strings"

	"lfmeet/internal/model"
)

// DisplayName resolves the name attached to a join link.
//
// Guests with an organization render as "Name (Org)". Authenticated users
// are always just their name: their profile organization is never appended.
func DisplayName(id model.JoinIdentity) string {
	name := strings.TrimSpace(id.Name)
	if name == "" {
		return ""
	}
	org := strings.TrimSpace(id.Organization)
	if id.Guest && org != "" {
		return name + " (" + org + ")"
	}
	return name
}

// BuildURL decorates the provider join URL with identity parameters:
// uname carries the query-escaped display name, and un carries a base64
// encoding of its UTF-8 bytes (legacy provider compatibility parameter).
//
// An identity with no resolvable display name returns base unchanged, so a
// guest who has not typed a name yet gets a bare link.
//
// BuildURL is NOT idempotent: calling it on an already-decorated URL
// appends a second parameter pair. Callers invoke it exactly once per
// rendered link; that contract is verified by tests, not defended against.
func BuildURL(base string, id model.JoinIdentity) string {
	name := DisplayName(id)
	if name == "" {
		return base
	}

	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}

	encoded := base64.StdEncoding.EncodeToString([]byte(name))

	return base + sep +
		"uname=" + url.QueryEscape(name) +
		"&un=" + url.QueryEscape(encoded)
}
