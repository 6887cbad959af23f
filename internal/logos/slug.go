// Package logos batch-resolves logo images for organization domains from a
// chain of favicon/logo providers and normalizes them to PNG files.
package logos

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	schemeRE   = regexp.MustCompile(`^https?://`)
	nonAlnumRE = regexp.MustCompile(`[^a-z0-9]+`)
)

// NormDomain reduces a URL or hostname to a bare domain: lowercase, no
// scheme, no www prefix, no path or query.
func NormDomain(raw string) string {
	u := strings.ToLower(strings.TrimSpace(raw))
	if u == "" {
		return ""
	}
	u = schemeRE.ReplaceAllString(u, "")
	u = strings.TrimPrefix(u, "www.")
	if i := strings.IndexByte(u, '/'); i >= 0 {
		u = u[:i]
	}
	if i := strings.IndexByte(u, '?'); i >= 0 {
		u = u[:i]
	}
	return u
}

// foldTransformer strips combining marks so accented names slugify to ASCII.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify lowercases, folds diacritics, collapses non-alphanumeric runs to
// hyphens and caps the result at 60 characters.
func Slugify(name string) string {
	if name == "" {
		name = "logo"
	}
	if folded, _, err := transform.String(foldTransformer, name); err == nil {
		name = folded
	}
	s := nonAlnumRE.ReplaceAllString(strings.ToLower(name), "-")
	s = strings.Trim(s, "-")
	if len(s) > 60 {
		s = s[:60]
	}
	return s
}

// DomainFilename converts a domain into the output file base name, dots
// replaced by hyphens: change.org -> change-org.
func DomainFilename(domain string) string {
	return strings.ReplaceAll(NormDomain(domain), ".", "-")
}
