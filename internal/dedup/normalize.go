// Package dedup finds probable duplicates of a company or contact before it
// is written to the record store.
package dedup

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/weppos/publicsuffix-go/publicsuffix"
)

var (
	urlPrefixPattern   = regexp.MustCompile(`^(?:https?://)?(?:www\.)?`)
	legalSuffixPattern = regexp.MustCompile(`\b(sp\.? ?z ?o\.? ?o\.?|s\.?a\.?|inc\.?|ltd\.?|gmbh)\b`)
	namePunctPattern   = regexp.MustCompile(`[.,"\-]`)
	spacesPattern      = regexp.MustCompile(`\s+`)
)

// NormalizeURL lowercases u and strips a leading scheme, a leading "www."
// and a single trailing slash. Applying it twice gives the same result.
func NormalizeURL(u string) string {
	if u == "" {
		return ""
	}
	u = strings.ToLower(u)
	u = urlPrefixPattern.ReplaceAllString(u, "")
	return strings.TrimSuffix(u, "/")
}

// NormalizePhone removes whitespace and hyphens.
func NormalizePhone(p string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, p)
}

// NormalizeCompanyName lowercases name, drops legal-entity suffixes such as
// "sp. z o.o.", "S.A.", "Inc." or "GmbH", strips . , " - and collapses
// whitespace.
func NormalizeCompanyName(name string) string {
	if name == "" {
		return ""
	}
	s := strings.ToLower(name)
	s = legalSuffixPattern.ReplaceAllString(s, "")
	s = namePunctPattern.ReplaceAllString(s, "")
	s = spacesPattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// EmailDomain returns the lowercased part after the "@" of an email
// address, or "" when there is none.
func EmailDomain(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) < 2 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(parts[1]))
}

// RegistrableDomain reduces a host to its registrable domain using the
// public suffix list ("mail.acme.co.uk" -> "acme.co.uk"). Hosts the list
// cannot parse are returned unchanged.
func RegistrableDomain(host string) string {
	host = NormalizeURL(strings.TrimSpace(host))
	if host == "" || !strings.Contains(host, ".") {
		return host
	}
	if i := strings.IndexAny(host, "/:"); i >= 0 {
		host = host[:i]
	}
	d, err := publicsuffix.Domain(host)
	if err != nil {
		return host
	}
	return d
}
