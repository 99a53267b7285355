package crawler

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Entry is one category-tagged interest entry segmented out of a
// subject page: the most recent category heading, the entry's own
// heading, and its newline-joined paragraph body.
type Entry struct {
	// Category is the text of the last category heading seen before
	// this entry, or empty for entries preceding any category heading.
	// An unset category classifies as miscellaneous.
	Category string

	// Title is the entry heading's text.
	Title string

	// Body is the entry's paragraph text joined with newlines. Always
	// non-empty: entries with an empty aggregated body are dropped
	// during segmentation.
	Body string
}

// categoryHeadingPattern recognizes numbered category headings such as
// "1. Employment and earnings". Headings not matching it are entry
// titles.
var categoryHeadingPattern = regexp.MustCompile(`^\d+\.\s`)

// Segment partitions the content region's heading/paragraph sequence
// into entries. It walks h2 and h3 nodes in document order, carrying a
// single local "current category" value:
//
//   - a heading matching categoryHeadingPattern updates the current
//     category and produces no entry
//   - any other heading opens an entry whose body is the text of the
//     immediately following paragraph siblings, up to the next heading
//     of either level
//
// Segment is pure given the document: re-walking the same nodes yields
// the same entries.
func Segment(content *goquery.Selection) []Entry {
	var entries []Entry
	category := ""

	content.Find("h2, h3").Each(func(_ int, sel *goquery.Selection) {
		heading := sel.Get(0)
		text := nodeText(heading)

		if categoryHeadingPattern.MatchString(text) {
			category = text
			return
		}

		body := collectBody(heading)
		if body == "" {
			// EmptyEntry: silently dropped, not an error.
			return
		}

		entries = append(entries, Entry{
			Category: category,
			Title:    text,
			Body:     body,
		})
	})

	return entries
}

// collectBody joins the text of paragraph siblings following a heading,
// stopping at the next heading of either level. Non-paragraph elements
// in between (lists, dividers) are passed over without ending the
// entry, matching how the register interleaves markup.
func collectBody(heading *html.Node) string {
	var paragraphs []string

	for n := heading.NextSibling; n != nil; n = n.NextSibling {
		if n.Type != html.ElementNode {
			continue
		}
		if n.Data == "h2" || n.Data == "h3" {
			break
		}
		if n.Data != "p" {
			continue
		}
		if text := nodeText(n); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	return strings.TrimSpace(strings.Join(paragraphs, "\n"))
}
