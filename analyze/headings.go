package analyze

import (
	"regexp"
	"strconv"
	"strings"
)

// headingMarkerPattern matches the "[Hn] text" lines the enhanced text
// transform emits for headings.
var headingMarkerPattern = regexp.MustCompile(`(?m)^\[H([1-6])\]\s*(.*)$`)

// Heading is one heading recovered from marked-up text.
type Heading struct {
	Level int
	Text  string
}

// HeadingReport describes the heading structure of one document.
type HeadingReport struct {
	Headings []Heading

	// Counts holds the number of headings per level, Counts[0] being H1.
	Counts [6]int

	Total int

	// ValidHierarchy is true when the document has exactly one H1 and the
	// used levels are contiguous (no H2 to H4 jumps).
	ValidHierarchy bool
}

// Headings builds a heading report from text carrying "[Hn]" markers.
func Headings(text string) *HeadingReport {
	report := &HeadingReport{}

	for _, m := range headingMarkerPattern.FindAllStringSubmatch(text, -1) {
		level, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		report.Headings = append(report.Headings, Heading{
			Level: level,
			Text:  strings.TrimSpace(m[2]),
		})
		report.Counts[level-1]++
		report.Total++
	}

	report.ValidHierarchy = validHierarchy(report.Counts)
	return report
}

// validHierarchy requires exactly one H1 and no skipped levels between
// the lowest and highest level in use.
func validHierarchy(counts [6]int) bool {
	if counts[0] != 1 {
		return false
	}
	lowest, highest := -1, -1
	for i, c := range counts {
		if c == 0 {
			continue
		}
		if lowest == -1 {
			lowest = i
		}
		highest = i
	}
	for i := lowest; i <= highest; i++ {
		if counts[i] == 0 {
			return false
		}
	}
	return true
}
