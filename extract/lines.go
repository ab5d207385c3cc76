package extract

import (
	"strings"

	"github.com/fwojciec/wpextract"
)

// Ensure Lines implements wpextract.Strategy at compile time.
var _ wpextract.Strategy = (*Lines)(nil)

// Lines extracts businesses from fully de-tagged text, one line at a
// time. An all-caps multi-word line that is neither a phone number nor a
// street address starts a new entity; subsequent lines fill its fields
// in declared precedence order until the next name line or end of input
// flushes the accumulator.
type Lines struct{}

// NewLines creates a new Lines strategy.
func NewLines() *Lines {
	return &Lines{}
}

// Name identifies the strategy in logs and source attribution.
func (s *Lines) Name() string {
	return wpextract.SourceLineScan
}

// Extract runs the sequential line classifier over content text.
func (s *Lines) Extract(content *wpextract.Content) []*wpextract.Business {
	var businesses []*wpextract.Business
	var current *wpextract.Business

	flush := func() {
		if current != nil {
			businesses = append(businesses, current)
			current = nil
		}
	}

	for _, line := range strings.Split(content.Text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if wpextract.IsNameLine(line) {
			flush()
			current = &wpextract.Business{
				Name:   line,
				Source: wpextract.SourceLineScan,
			}
			continue
		}
		if current == nil {
			continue
		}

		current.AbsorbLine(line)
	}
	flush()

	return businesses
}
