package crawler

import (
	"net/url"
	"regexp"
	"strings"
)

// SubjectPathMarker is the fixed path segment identifying a subject
// page. Index pages link to many documents; only URLs containing this
// marker describe an individual subject's interests.
const SubjectPathMarker = "/financial-interests/"

// LinkFilter decides whether a discovered URL should be followed.
// It holds a domain allow-list and a compiled path pattern and carries
// no other state, so a single filter is safely shared across the
// spider's concurrent fetches.
type LinkFilter struct {
	// allowedDomains are the domains the crawl may touch. A URL is
	// admitted when its host equals an entry or is a subdomain of one.
	allowedDomains []string

	// pathPattern must match somewhere in the URL path for the link to
	// be followed.
	pathPattern *regexp.Regexp
}

// NewLinkFilter compiles a filter from a domain allow-list and a path
// regular expression.
func NewLinkFilter(allowedDomains []string, pathPattern string) (*LinkFilter, error) {
	re, err := regexp.Compile(pathPattern)
	if err != nil {
		return nil, err
	}

	domains := make([]string, 0, len(allowedDomains))
	for _, d := range allowedDomains {
		domains = append(domains, strings.ToLower(strings.TrimPrefix(d, ".")))
	}

	return &LinkFilter{
		allowedDomains: domains,
		pathPattern:    re,
	}, nil
}

// ShouldFollow reports whether the URL is on an allowed domain and its
// path matches the filter's pattern. Unparseable URLs are never
// followed.
func (f *LinkFilter) ShouldFollow(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return f.allowedDomain(u.Hostname()) && f.pathPattern.MatchString(u.Path)
}

// allowedDomain checks host membership in the allow-list, accepting
// subdomains ("www.parliament.uk" under "parliament.uk").
func (f *LinkFilter) allowedDomain(host string) bool {
	host = strings.ToLower(host)
	for _, domain := range f.allowedDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// IsSubjectPage reports whether a URL path contains the subject-page
// marker segment. This is the secondary predicate applied to links
// found on index pages.
func IsSubjectPage(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.Contains(u.Path, SubjectPathMarker)
}

// subjectIDPattern captures the opaque subject identifier from the
// canonical URL path segment following the marker.
var subjectIDPattern = regexp.MustCompile(`/financial-interests/([^/]+)`)

// SubjectID derives the opaque subject identifier from a subject-page
// URL. Returns the empty string when the URL does not carry one; the
// quality gate downstream treats such records as defective.
func SubjectID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	match := subjectIDPattern.FindStringSubmatch(u.Path)
	if match == nil {
		return ""
	}
	return strings.TrimSuffix(match[1], "/")
}
