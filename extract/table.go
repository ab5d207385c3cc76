package extract

import (
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/fwojciec/wpextract"
)

// Ensure TableRows implements wpextract.Strategy at compile time.
var _ wpextract.Strategy = (*TableRows)(nil)

var (
	rowPattern    = regexp.MustCompile(`(?is)\[vc_row_inner[^\]]*\](.*?)\[/vc_row_inner\]`)
	columnPattern = regexp.MustCompile(`(?is)\[vc_column_text\](.*?)\[/vc_column_text\]`)
)

// minRowLength filters out divider and spacer rows that carry no column
// content worth parsing.
const minRowLength = 100

// TableRows extracts businesses from tabular page-builder markup: row
// shortcode blocks holding one column shortcode per field. Rows that are
// too short, marked as dividers, or contain no phone-shaped token in any
// column are treated as layout or header rows and skipped.
type TableRows struct{}

// NewTableRows creates a new TableRows strategy.
func NewTableRows() *TableRows {
	return &TableRows{}
}

// Name identifies the strategy in logs and source attribution.
func (s *TableRows) Name() string {
	return wpextract.SourceTableFormat
}

// Extract returns one candidate per qualifying row: column 0 is the
// name, column 1 the address, column 2 the phone, and any further
// columns contribute service tags.
func (s *TableRows) Extract(content *wpextract.Content) []*wpextract.Business {
	var businesses []*wpextract.Business
	for _, row := range rowPattern.FindAllStringSubmatch(content.HTML, -1) {
		rowContent := row[1]
		if strings.Contains(rowContent, "divider") || len(strings.TrimSpace(rowContent)) < minRowLength {
			continue
		}

		var columns []string
		for _, col := range columnPattern.FindAllStringSubmatch(rowContent, -1) {
			if cleaned := cleanColumn(col[1]); cleaned != "" {
				columns = append(columns, cleaned)
			}
		}
		if len(columns) < 3 {
			continue
		}
		if !anyHasPhone(columns) {
			continue
		}

		b := &wpextract.Business{
			Name:    columns[0],
			Address: columns[1],
			Phone:   columns[2],
			Source:  wpextract.SourceTableFormat,
		}
		if b.Address != "" {
			b.AddressURL = "https://maps.google.com/?q=" + url.QueryEscape(b.Address)
		}
		b.Services = wpextract.ClassifyServicesOrDefault(strings.Join(columns[3:], " "))

		businesses = append(businesses, b)
	}
	return businesses
}

// cleanColumn strips markup from one column cell: tags removed, entities
// decoded, whitespace collapsed.
func cleanColumn(s string) string {
	s = html.UnescapeString(s)
	s = tagStripPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(collapsePattern.ReplaceAllString(s, " "))
}

var (
	tagStripPattern = regexp.MustCompile(`<[^>]+>`)
	collapsePattern = regexp.MustCompile(`\s+`)
)

func anyHasPhone(columns []string) bool {
	for _, col := range columns {
		if wpextract.HasPhone(col) {
			return true
		}
	}
	return false
}
