package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/wpextract"
)

// Ensure MapMarkers implements wpextract.Strategy at compile time.
var _ wpextract.Strategy = (*MapMarkers)(nil)

var (
	// Map shortcode payloads survive in two quoting forms depending on
	// whether entity decoding has run over the markup yet.
	entityQuotedMarkersPattern = regexp.MustCompile(`(?s)map_markers=&#8221;(.*?)&#8221;`)
	plainQuotedMarkersPattern  = regexp.MustCompile(`(?s)map_markers="(.*?)"`)

	markerBreakPattern = regexp.MustCompile(`(?i)<br\s*/?>\s*|\n`)
)

// enrichWindow bounds how much text following a marker label is probed
// for phone, website, email and address details.
const enrichWindow = 400

// MapMarkers extracts businesses from an embedded map shortcode's
// marker payload, a delimited list of "latitude | longitude | label"
// triples. Labels may carry encoded markup and line breaks; triples with
// unparsable coordinates are skipped without aborting the scan. Each
// surviving label is additionally matched back against the page text to
// pick up phone, website, email and address details listed near it.
type MapMarkers struct{}

// NewMapMarkers creates a new MapMarkers strategy.
func NewMapMarkers() *MapMarkers {
	return &MapMarkers{}
}

// Name identifies the strategy in logs and source attribution.
func (s *MapMarkers) Name() string {
	return wpextract.SourceMapCoordinates
}

// Extract scans content for a marker payload and returns one candidate
// per parsable triple. Pages without a map shortcode yield nil.
func (s *MapMarkers) Extract(content *wpextract.Content) []*wpextract.Business {
	payload := findMarkerPayload(content.HTML)
	if payload == "" {
		payload = findMarkerPayload(content.Text)
	}
	if payload == "" {
		return nil
	}

	var businesses []*wpextract.Business
	for _, triple := range wpextract.MarkerTriplePattern.FindAllStringSubmatch(payload, -1) {
		lat, err := strconv.ParseFloat(triple[1], 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(triple[2], 64)
		if err != nil {
			continue
		}

		parts := splitMarkerLabel(triple[3])
		if len(parts) == 0 {
			continue
		}
		name := parts[0]

		b := &wpextract.Business{
			Name:        name,
			Coordinates: &wpextract.Coordinates{Latitude: lat, Longitude: lon},
			AddressURL:  fmt.Sprintf("https://maps.google.com/?q=%s,%s", triple[1], triple[2]),
			Source:      wpextract.SourceMapCoordinates,
		}
		enrichFromParts(b, parts[1:])
		enrichFromText(b, content.Text)
		b.Services = wpextract.ClassifyServicesOrDefault(name + " " + strings.Join(parts[1:], " "))

		businesses = append(businesses, b)
	}
	return businesses
}

func findMarkerPayload(s string) string {
	if m := entityQuotedMarkersPattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	if m := plainQuotedMarkersPattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

// splitMarkerLabel breaks a marker label on <br> tags and newlines and
// cleans each fragment, dropping empties. The first surviving fragment
// is the business name.
func splitMarkerLabel(label string) []string {
	var parts []string
	for _, part := range markerBreakPattern.Split(label, -1) {
		if cleaned := wpextract.CleanLabel(part); cleaned != "" {
			parts = append(parts, cleaned)
		}
	}
	return parts
}

// enrichFromParts fills phone and address from the label's own trailing
// fragments.
func enrichFromParts(b *wpextract.Business, parts []string) {
	for _, part := range parts {
		switch {
		case wpextract.HasPhone(part):
			if b.Phone == "" {
				b.Phone = wpextract.FindPhone(part)
			}
		case wpextract.StreetPattern.MatchString(part):
			if b.Address == "" {
				b.Address = part
			}
		case wpextract.CityStateZipPattern.MatchString(part):
			if b.Address != "" {
				b.Address += ", " + part
			} else {
				b.Address = part
			}
		}
	}
}

// enrichFromText probes a bounded window of page text following the
// first occurrence of the business name for details the marker label
// itself lacks.
func enrichFromText(b *wpextract.Business, text string) {
	// Case folding can change byte length, so an offset found in the
	// lowered copy is not always valid in the original. Clamp before
	// slicing.
	idx := strings.Index(strings.ToLower(text), strings.ToLower(b.Name))
	if idx < 0 || idx >= len(text) {
		return
	}
	end := idx + len(b.Name) + enrichWindow
	if end > len(text) {
		end = len(text)
	}
	window := text[idx:end]

	if b.Phone == "" {
		b.Phone = wpextract.DashedPhonePattern.FindString(window)
	}
	if b.WebsiteURL == "" {
		if m := wpextract.WebsiteLinePattern.FindStringSubmatch(window); m != nil {
			b.WebsiteURL = m[1]
		}
	}
	if b.Email == "" {
		b.Email = wpextract.FindEmail(window)
	}
	if b.Address == "" {
		b.Address = wpextract.CityStateZipPattern.FindString(window)
	}
}
