package wpextract

import (
	"strconv"
	"strings"
)

// Extraction source tags. They identify which strategy produced a Business
// and are used only to order candidates during merging; they are not an
// authoritative statement about data quality.
const (
	SourceMapCoordinates = "map_coordinates"
	SourceTableFormat    = "table_format"
	SourceHTMLListings   = "html_listings"
	SourceShortcodeScan  = "shortcode_sections"
	SourceLineScan       = "line_scan"
)

// Coordinates is a latitude/longitude pair from embedded map data.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// String renders the pair in the "lat, lon" form used by extra locations
// and map links.
func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + ", " +
		strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}

// ExtraLocation is a secondary branch location attached to an existing
// business rather than promoted to its own record.
type ExtraLocation struct {
	Name        string `json:"name"`
	Coordinates string `json:"coordinates"`
}

// Business is a structured record describing one business, dealer or
// location recovered from unstructured page content. A Business is built
// transiently during a single page's extraction and never mutated after
// the merge step.
type Business struct {
	Name           string          `json:"name"`
	Address        string          `json:"address,omitempty"`
	AddressURL     string          `json:"address_url,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	WebsiteURL     string          `json:"website_url,omitempty"`
	Email          string          `json:"email,omitempty"`
	Services       []string        `json:"services,omitempty"`
	Coordinates    *Coordinates    `json:"coordinates,omitempty"`
	ExtraLocations []ExtraLocation `json:"extra_locations,omitempty"`
	OtherInfo      []string        `json:"other_info,omitempty"`
	Source         string          `json:"source,omitempty"`
}

// Validate returns an error if the business contains invalid fields.
func (b *Business) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return Errorf(EINVALID, "business name required")
	}
	return nil
}

// NormalizedName returns the case-folded, whitespace-normalized form of
// the business name used for dedup comparisons.
func (b *Business) NormalizedName() string {
	return NormalizeName(b.Name)
}

// AbsorbLine classifies one content line and stores it in the matching
// field: phone, address (street lines overwrite, state/ZIP lines append),
// services, or the other-info bucket.
func (b *Business) AbsorbLine(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	switch ClassifyLine(line) {
	case LinePhone:
		b.Phone = FindPhone(line)
	case LineStreetAddress:
		b.Address = line
	case LineStateZip:
		if b.Address != "" {
			b.Address += ", " + line
		} else {
			b.Address = line
		}
	case LineService:
		b.Services = append(b.Services, line)
	default:
		b.OtherInfo = append(b.OtherInfo, line)
	}
}

// ServiceList joins the service tags with " & " for textual rendering.
func (b *Business) ServiceList() string {
	return strings.Join(b.Services, " & ")
}

// NormalizeName lowercases a name and collapses internal whitespace so
// that cosmetic differences don't defeat duplicate detection.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// DefaultServiceTag is assigned when no service keyword matches; the
// directories this tool was built for are dock and lift dealer listings.
const DefaultServiceTag = "docks & lifts"

// ClassifyServices derives service category tags from keyword matches on
// a business name or surrounding context. The order of returned tags is
// fixed so renderings stay deterministic.
func ClassifyServices(text string) []string {
	lower := strings.ToLower(text)
	var services []string
	hasDock := strings.Contains(lower, "dock")
	hasLift := strings.Contains(lower, "lift")
	switch {
	case hasDock && hasLift:
		services = append(services, "docks & lifts")
	case hasDock:
		services = append(services, "docks")
	case hasLift:
		services = append(services, "lifts")
	}
	if strings.Contains(lower, "trailer") || strings.Contains(lower, "transport") {
		services = append(services, "trailers")
	}
	if strings.Contains(lower, "marine") {
		services = append(services, "marine")
	}
	if strings.Contains(lower, "auto") {
		services = append(services, "auto")
	}
	return services
}

// ClassifyServicesOrDefault is ClassifyServices with DefaultServiceTag as
// the fallback when no keyword matches.
func ClassifyServicesOrDefault(text string) []string {
	if services := ClassifyServices(text); len(services) > 0 {
		return services
	}
	return []string{DefaultServiceTag}
}
