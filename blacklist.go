package festin

import "strings"

// SkipReason names the blacklist rule kind that rejected a domain.
type SkipReason string

// Blacklist rule kinds.
const (
	SkipTLD    SkipReason = "tld"
	SkipPrefix SkipReason = "prefix"
	SkipDomain SkipReason = "domain"
)

// Blacklist holds static rules for domains that are never worth probing.
// Rules are matched against the raw domain string without normalization.
type Blacklist struct {
	// TLDs are suffixes; a domain ending with any of them is skipped.
	TLDs []string

	// Prefixes reject domains starting with any of them.
	Prefixes []string

	// Domains reject exact matches.
	Domains []string
}

// Check returns the reason a domain must be skipped.
// The bool result is false if no rule matches. A nil Blacklist matches nothing.
func (b *Blacklist) Check(domain string) (SkipReason, bool) {
	if b == nil {
		return "", false
	}
	for _, tld := range b.TLDs {
		if strings.HasSuffix(domain, tld) {
			return SkipTLD, true
		}
	}
	for _, prefix := range b.Prefixes {
		if strings.HasPrefix(domain, prefix) {
			return SkipPrefix, true
		}
	}
	for _, d := range b.Domains {
		if domain == d {
			return SkipDomain, true
		}
	}
	return "", false
}

// DefaultBlacklist returns the built-in rules: large platforms whose links
// show up on nearly every page, government and military zones, and service
// endpoints that can never be bucket names.
func DefaultBlacklist() *Blacklist {
	return &Blacklist{
		TLDs: []string{
			".gov",
			".mil",
			"google.com",
			"gstatic.com",
			"googletagmanager.com",
			"google-analytics.com",
			"doubleclick.net",
			"facebook.com",
			"facebook.net",
			"fbcdn.net",
			"twitter.com",
			"twimg.com",
			"youtube.com",
			"ytimg.com",
			"linkedin.com",
			"instagram.com",
			"pinterest.com",
			"wikipedia.org",
			"w3.org",
			"schema.org",
			"apple.com",
			"microsoft.com",
			"github.com",
			"cloudflare.com",
			"gravatar.com",
		},
		Prefixes: []string{
			"localhost",
			"127.",
			"10.",
			"192.168.",
			"0.0.0.0",
			"[",
		},
		Domains: []string{
			"amazonaws.com",
			"s3.amazonaws.com",
			"aws.amazon.com",
			"console.aws.amazon.com",
			"fonts.googleapis.com",
			"ajax.googleapis.com",
		},
	}
}
