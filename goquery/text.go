package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// collapse trims s and folds every whitespace run, newlines and
// non-breaking spaces included, into a single space.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// joinedText returns the text nodes under sel joined by single spaces, so
// adjacent block elements do not run together.
func joinedText(sel *goquery.Selection) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := collapse(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}

// zip calls fn for each label/value pair matched by position, stopping at
// the end of the shorter selection.
func zip(labels, values *goquery.Selection, fn func(label, value *goquery.Selection)) {
	n := min(labels.Length(), values.Length())
	for i := 0; i < n; i++ {
		fn(labels.Eq(i), values.Eq(i))
	}
}

// optional returns nil for an empty string.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
