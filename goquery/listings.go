// Package goquery implements extraction from structured HTML using CSS
// selection. It covers listing pages whose markup, unlike shortcode
// dumps, still carries the container and heading structure the theme
// rendered.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wpextract"
	"golang.org/x/net/html"
)

// Ensure Listings implements wpextract.Strategy at compile time.
var _ wpextract.Strategy = (*Listings)(nil)

// containerKeywords mark class attributes that suggest a business
// listing block.
var containerKeywords = []string{"dealer", "business", "listing", "directory", "card", "item"}

// maxSiblingWalk bounds how many siblings after a heading are collected
// when no listing containers exist.
const maxSiblingWalk = 10

// Listings extracts businesses from structured listing markup. It first
// looks for container elements whose classes suggest directory cards;
// when none exist it anchors on headings instead, treating each heading
// as a business name and the text of the following siblings, up to the
// next heading, as that business's contact block.
type Listings struct{}

// NewListings creates a new Listings strategy.
func NewListings() *Listings {
	return &Listings{}
}

// Name identifies the strategy in logs and source attribution.
func (s *Listings) Name() string {
	return wpextract.SourceHTMLListings
}

// Extract scans content markup for listing blocks.
func (s *Listings) Extract(content *wpextract.Content) []*wpextract.Business {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content.HTML))
	if err != nil {
		return nil
	}

	businesses := s.fromContainers(doc)
	if len(businesses) == 0 {
		businesses = s.fromHeadings(doc)
	}
	return businesses
}

// fromContainers builds one business per keyword-classed container, its
// first text line as the name and the rest absorbed as fields.
func (s *Listings) fromContainers(doc *goquery.Document) []*wpextract.Business {
	var businesses []*wpextract.Business
	doc.Find("div, article, section").Each(func(_ int, sel *goquery.Selection) {
		class, ok := sel.Attr("class")
		if !ok || !containsKeyword(class) {
			return
		}

		lines := textLines(sel.Text())
		if len(lines) < 2 {
			return
		}

		b := &wpextract.Business{
			Name:   lines[0],
			Source: wpextract.SourceHTMLListings,
		}
		for _, line := range lines[1:] {
			b.AbsorbLine(line)
		}
		businesses = append(businesses, b)
	})
	return businesses
}

// fromHeadings anchors businesses on heading elements, collecting the
// text of up to maxSiblingWalk following siblings and stopping at the
// next heading.
func (s *Listings) fromHeadings(doc *goquery.Document) []*wpextract.Business {
	var businesses []*wpextract.Business
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.Text())
		if len(strings.Fields(name)) < 2 || len(name) <= 5 {
			return
		}

		node := sel.Get(0)
		var block []string
		sib := node.NextSibling
		for i := 0; i < maxSiblingWalk && sib != nil; i++ {
			if isHeadingNode(sib) {
				break
			}
			if text := strings.TrimSpace(nodeText(sib)); text != "" {
				block = append(block, text)
			}
			sib = sib.NextSibling
		}
		if len(block) == 0 {
			return
		}

		b := &wpextract.Business{
			Name:   name,
			Source: wpextract.SourceHTMLListings,
		}
		for _, chunk := range block {
			for _, line := range textLines(chunk) {
				b.AbsorbLine(line)
			}
		}
		businesses = append(businesses, b)
	})
	return businesses
}

func containsKeyword(class string) bool {
	lower := strings.ToLower(class)
	for _, kw := range containerKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func isHeadingNode(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// nodeText returns the concatenated text of a node and its descendants.
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}

func textLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
