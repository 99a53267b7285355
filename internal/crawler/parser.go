package crawler

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/registerwatch/registerscan/internal/extract"
	"github.com/registerwatch/registerscan/internal/model"
)

// contentRegionSelector designates the region of a register page that
// carries the actual content. Navigation, headers and footers live
// outside it and are never parsed.
const contentRegionSelector = "div.article-body"

// IndexLinks is the outcome of parsing one index document: subject
// pages to extract records from, and further index pages to walk.
type IndexLinks struct {
	// Subjects are resolved URLs satisfying the subject-page predicate.
	Subjects []string

	// Indexes are resolved URLs admitted by the link filter, typically
	// per-edition index pages linked from the register landing page.
	Indexes []string
}

// ParseIndex extracts candidate URLs from an index document. Anchors
// are taken from the content region only and resolved against the page
// URL; each is classified as a subject page, a further index page, or
// discarded.
//
// The result is a single forward pass over the document; re-parsing
// requires re-fetching, which the spider's visited set prevents.
func ParseIndex(doc *goquery.Document, base *url.URL, filter *LinkFilter) IndexLinks {
	var links IndexLinks
	doc.Find(contentRegionSelector + " a").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}
		switch {
		case IsSubjectPage(resolved):
			links.Subjects = append(links.Subjects, resolved)
		case filter.ShouldFollow(resolved):
			links.Indexes = append(links.Indexes, resolved)
		}
	})
	return links
}

// SubjectPage is the parsed form of one subject document: exactly one
// Subject and its Interest entries in document order.
type SubjectPage struct {
	Subject   *model.Subject
	Interests []model.Interest
}

// memberForPrefix is the boilerplate preceding the constituency name in
// the page subtitle ("Member for Exampleshire").
const memberForPrefix = "Member for"

// ParseSubjectPage turns a fetched subject document into records. The
// page URL supplies the subject identifier and source field; the
// sourceDocument label and scrape time are stamped onto every record.
//
// Returns ErrMissingIdentity when the page has no parseable name, in
// which case nothing should be emitted for the page.
func ParseSubjectPage(doc *goquery.Document, pageURL, sourceDocument string, scrapeDate time.Time) (*SubjectPage, error) {
	fullName := cleanText(doc.Find("h1").First().Text())
	if fullName == "" {
		return nil, ErrMissingIdentity
	}

	constituency := cleanText(doc.Find("h1 + p").First().Text())
	if strings.Contains(constituency, memberForPrefix) {
		constituency = strings.TrimSpace(strings.Replace(constituency, memberForPrefix, "", 1))
	}

	subject := &model.Subject{
		FullName:     fullName,
		Kind:         model.SubjectKindPolitician,
		ParliamentID: SubjectID(pageURL),
		Constituency: constituency,
		IsCurrentMP:  true,
		SourceURL:    pageURL,
		ScrapeDate:   scrapeDate,
	}

	entries := Segment(doc.Find(contentRegionSelector))

	interests := make([]model.Interest, 0, len(entries))
	for _, entry := range entries {
		interest := model.Interest{
			PersonName:     fullName,
			Type:           extract.Classify(entry.Category),
			Description:    entry.Body,
			SourceDocument: sourceDocument,
			SourceURL:      pageURL,
			ScrapeDate:     scrapeDate,
		}

		if money, ok := extract.Amount(entry.Body); ok {
			interest.Amount = &money.Amount
			interest.Currency = money.Currency
		}

		dates := extract.ExtractDates(entry.Body)
		interest.RegisteredDate = dates.Registered
		interest.StartDate = dates.Start

		interests = append(interests, interest)
	}

	return &SubjectPage{Subject: subject, Interests: interests}, nil
}

// resolveURL resolves a possibly relative href against the page URL.
// Non-navigational schemes and bare fragments resolve to nothing.
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || href == "#" ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") {
		return ""
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(u)
	resolved.Fragment = ""
	return resolved.String()
}

// innerWhitespace collapses runs of whitespace left behind by HTML
// pretty-printing.
var innerWhitespace = regexp.MustCompile(`\s\s+`)

// cleanText normalizes scraped element text: trims, collapses inner
// whitespace runs to single spaces.
func cleanText(s string) string {
	return innerWhitespace.ReplaceAllString(strings.TrimSpace(s), " ")
}

// nodeText returns the concatenated text content of an HTML node,
// normalized with cleanText.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return cleanText(b.String())
}
