package extract

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/wpextract"
)

// Ensure Sections implements wpextract.Strategy at compile time.
var _ wpextract.Strategy = (*Sections)(nil)

var (
	sectionPattern = regexp.MustCompile(`(?is)\[vc_column_text[^\]]*\](.*?)\[/vc_column_text\]`)

	hrefPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)href="([^"]*)"`),
		regexp.MustCompile(`(?i)href='([^']*)'`),
		regexp.MustCompile(`(?i)href=([^\s>]+)`),
	}
	mapsHrefPattern = regexp.MustCompile(`(?i)href=["']([^"']*google\.com/maps[^"']*)["']`)
)

// sectionSkipWords mark column sections that label or link a field of
// the current business rather than starting a new one.
var sectionSkipWords = []string{"website", "email", "contact", "phone", "address", "http"}

// Sections extracts businesses from column shortcode sections walked in
// document order. Each section's first line decides its role: a field
// label, a phone number, an address block, coordinate noise, or the name
// of the next business. A bare "Website" label looks ahead into the
// following section's raw markup for the link target, since the builder
// puts the label and the anchor in separate columns. A trailing
// coordinate section is reconciled against the collected businesses as
// extra locations.
type Sections struct {
	attach wpextract.AttachOptions
}

// NewSections creates a new Sections strategy.
func NewSections() *Sections {
	return &Sections{attach: wpextract.DefaultAttachOptions()}
}

// Name identifies the strategy in logs and source attribution.
func (s *Sections) Name() string {
	return wpextract.SourceShortcodeScan
}

type columnSection struct {
	raw   string
	lines []string
}

// Extract walks the column sections of content markup.
func (s *Sections) Extract(content *wpextract.Content) []*wpextract.Business {
	sections := parseColumnSections(content.HTML)
	if len(sections) == 0 {
		return nil
	}

	var businesses []*wpextract.Business
	var current *wpextract.Business

	flush := func() {
		if current != nil {
			businesses = append(businesses, current)
			current = nil
		}
	}

	for i := 0; i < len(sections); i++ {
		sec := sections[i]
		if len(sec.lines) == 0 {
			continue
		}
		first := sec.lines[0]
		firstLower := strings.ToLower(first)

		if containsAny(firstLower, sectionSkipWords) {
			// A bare "Website" label points at the next section's anchor.
			if firstLower == "website" && current != nil && i+1 < len(sections) {
				if url := findWebsiteHref(sections[i+1].raw); url != "" {
					current.WebsiteURL = url
				}
				i++
			}
			continue
		}

		if wpextract.IsPhoneLine(first) {
			if current != nil {
				current.Phone = first
			}
			continue
		}

		if isAddressSection(sec.lines) {
			if current != nil {
				current.Address = strings.Join(sec.lines, ", ")
				if m := mapsHrefPattern.FindStringSubmatch(sec.raw); m != nil {
					current.AddressURL = m[1]
				}
			}
			continue
		}

		if wpextract.CoordPairPattern.MatchString(first) {
			continue
		}

		flush()
		name := first
		if len(sec.lines) > 1 && wpextract.IsNameContinuation(sec.lines[1]) {
			name += " " + sec.lines[1]
		}
		current = &wpextract.Business{
			Name:     name,
			Services: wpextract.ClassifyServices(name),
			Source:   wpextract.SourceShortcodeScan,
		}
	}
	flush()

	if len(businesses) == 0 {
		return nil
	}
	return wpextract.AttachLocations(businesses, coordinateCandidates(sections), s.attach)
}

func parseColumnSections(markup string) []columnSection {
	var sections []columnSection
	for _, m := range sectionPattern.FindAllStringSubmatch(markup, -1) {
		raw := m[1]
		clean := html.UnescapeString(tagStripPattern.ReplaceAllString(raw, ""))
		var lines []string
		for _, line := range strings.Split(clean, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		sections = append(sections, columnSection{raw: raw, lines: lines})
	}
	return sections
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// findWebsiteHref pulls the first anchor target out of raw markup,
// accepting only http(s) URLs that are not mapping-service links.
func findWebsiteHref(raw string) string {
	for _, p := range hrefPatterns {
		for _, m := range p.FindAllStringSubmatch(raw, -1) {
			url := m[1]
			if strings.HasPrefix(url, "http") && !strings.Contains(url, "google.com/maps") {
				return url
			}
		}
	}
	return ""
}

// isAddressSection reports whether a section's lines form an address
// block: a leading street line, or a state/ZIP pair on the first or
// second line.
func isAddressSection(lines []string) bool {
	if wpextract.IsStreetAddress(lines[0]) || wpextract.StateZipPattern.MatchString(lines[0]) {
		return true
	}
	return len(lines) > 1 && wpextract.StateZipPattern.MatchString(lines[1])
}

// coordinateCandidates parses the trailing coordinate section, if any,
// into name-plus-coordinates candidates for location reconciliation.
func coordinateCandidates(sections []columnSection) []*wpextract.Business {
	var raw string
	for _, sec := range sections {
		if wpextract.CoordPairPattern.MatchString(sec.raw) {
			raw = sec.raw
			break
		}
	}
	if raw == "" {
		return nil
	}

	var candidates []*wpextract.Business
	for _, line := range markerBreakPattern.Split(raw, -1) {
		parts := strings.Split(line, "|")
		if len(parts) < 3 {
			continue
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			continue
		}
		name := wpextract.CleanLabel(html.UnescapeString(tagStripPattern.ReplaceAllString(parts[2], "")))
		if name == "" {
			continue
		}
		candidates = append(candidates, &wpextract.Business{
			Name:        name,
			Coordinates: &wpextract.Coordinates{Latitude: lat, Longitude: lon},
			Source:      wpextract.SourceMapCoordinates,
		})
	}
	return candidates
}
