// Package extract implements the business entity extraction cascade.
// Individual strategies scan page content for dealer-directory style
// records embedded in map shortcode payloads, tabular shortcode rows,
// structured listing blocks or free-form text lines. Strategies are
// independent: each returns zero or more candidates and never fails, so
// callers can run them in priority order and fall back or union as
// needed.
package extract

import (
	"github.com/fwojciec/wpextract"
)

// First runs strategies in order and returns the candidates of the first
// one that finds anything. A page that matches no strategy yields nil.
func First(content *wpextract.Content, strategies ...wpextract.Strategy) []*wpextract.Business {
	for _, s := range strategies {
		if found := s.Extract(content); len(found) > 0 {
			return found
		}
	}
	return nil
}

// All runs every strategy and returns the deduplicated union of their
// candidates, in strategy priority order.
func All(content *wpextract.Content, strategies ...wpextract.Strategy) []*wpextract.Business {
	var lists [][]*wpextract.Business
	for _, s := range strategies {
		lists = append(lists, s.Extract(content))
	}
	return wpextract.MergeBusinesses(lists...)
}
