// Package render produces the three textual renderings of a page: raw
// stripped text, enhanced "pretty" text with a structured data appendix,
// and markdown. The pretty transformation un-jams fields that page
// builders concatenate onto one line, normalizes phone numbers, and
// scrubs leftover map shortcode noise.
package render

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/fwojciec/wpextract"
	"github.com/fwojciec/wpextract/normalize"
)

var (
	gmapTagPattern   = regexp.MustCompile(`(?i)\[nectar_gmap[^\]]*\]`)
	coordSpamPattern = regexp.MustCompile(`\d+\.\d+\s*\|\s*-?\d+\.\d+[^\n]*`)
	mapsURLPatterns  = []*regexp.Regexp{
		regexp.MustCompile(`https://[^\s]*google\.com/maps[^\s]*`),
		regexp.MustCompile(`https://maps\.app\.goo\.gl/[^\s]*`),
	}

	jammedWebsitePattern = regexp.MustCompile(`([^\n])(Website\s*\|)`)
	jammedPhonePattern   = regexp.MustCompile(`([^\n])(` + wpextract.PhonePattern.String() + `)`)
	zipBreakPattern      = regexp.MustCompile(`(\b\d{5}(?:-\d{4})?)([^\n])`)
)

const bannerWidth = 50

// Raw returns the minimal text rendering: the page title followed by the
// stripped markup.
func Raw(title, markup string) string {
	return withTitle(title, normalize.StripToText(markup))
}

// Pretty returns the enhanced text rendering with the entity list
// appended as pretty-printed JSON under a separator banner.
func Pretty(title, markup string, businesses []*wpextract.Business) string {
	return withTitle(title, prettyBody(markup, businesses))
}

// prettyBody builds the pretty rendering without the title line. The
// markdown renderer consumes this form directly.
func prettyBody(markup string, businesses []*wpextract.Business) string {
	text := normalize.CleanShortcodes(normalize.EnhanceToText(markup))
	text = scrubMapData(text)

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	// Break apart fields the builder jammed onto one line, and give ZIP
	// codes a line of their own.
	text = jammedWebsitePattern.ReplaceAllString(text, "$1\n$2")
	text = jammedPhonePattern.ReplaceAllString(text, "$1\n$2")
	text = zipBreakPattern.ReplaceAllString(text, "$1\n$2")

	text = wpextract.PhonePattern.ReplaceAllStringFunc(text, wpextract.NormalizePhone)
	text = collapseBlankLines(text)

	if len(businesses) > 0 {
		banner := strings.Repeat("=", bannerWidth)
		encoded, err := json.MarshalIndent(businesses, "", "  ")
		if err == nil {
			text += "\n\n" + banner + "\n"
			text += "🏢 STRUCTURED BUSINESS DATA (JSON):\n"
			text += banner + "\n"
			text += string(encoded)
		}
	}
	return text
}

// scrubMapData removes map shortcode leftovers: the gmap tag itself,
// coordinate list spam, and unwieldy mapping URLs.
func scrubMapData(text string) string {
	text = gmapTagPattern.ReplaceAllString(text, "")
	text = coordSpamPattern.ReplaceAllString(text, "")
	for _, p := range mapsURLPatterns {
		text = p.ReplaceAllString(text, "[Google Maps Link]")
	}
	return text
}

// collapseBlankLines trims trailing whitespace per line and limits
// consecutive blank lines to one.
func collapseBlankLines(text string) string {
	var out []string
	blanks := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			blanks++
			if blanks <= 1 {
				out = append(out, "")
			}
			continue
		}
		blanks = 0
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

func withTitle(title, body string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return strings.TrimSpace(body)
	}
	return strings.TrimSpace(title + "\n\n" + body)
}
