package extract

import (
	"github.com/fwojciec/wpextract"
)

// Pipeline runs the full extraction cascade for one page. The table and
// marker strategies are authoritative when either finds anything: table
// rows carry the most complete records so they seed the entity set, and
// marker candidates are reconciled into it as extra locations or new
// entities. When both come up empty the fallback strategies run in
// order and the first one to find anything wins.
type Pipeline struct {
	table    wpextract.Strategy
	markers  wpextract.Strategy
	fallback []wpextract.Strategy
	attach   wpextract.AttachOptions
}

// NewPipeline creates a Pipeline with the given fallback strategies,
// tried in order after the table and marker scans.
func NewPipeline(fallback ...wpextract.Strategy) *Pipeline {
	return &Pipeline{
		table:    NewTableRows(),
		markers:  NewMapMarkers(),
		fallback: fallback,
		attach:   wpextract.DefaultAttachOptions(),
	}
}

// Extract returns the merged, deduplicated entity set for one page. A
// page with no extractable structure yields an empty list, never an
// error.
func (p *Pipeline) Extract(content *wpextract.Content) []*wpextract.Business {
	table := p.table.Extract(content)
	markers := p.markers.Extract(content)

	if len(table) > 0 || len(markers) > 0 {
		merged := wpextract.MergeBusinesses(table)
		return wpextract.AttachLocations(merged, markers, p.attach)
	}

	return wpextract.MergeBusinesses(First(content, p.fallback...))
}
