package wpextract

import "strings"

// MergeBusinesses combines candidate lists in caller-supplied priority
// order, deduplicating by normalized name. The first record seen under a
// given name wins outright; later duplicates are discarded without
// field-level merging. The returned list never contains two entries whose
// names are equal under case/whitespace-insensitive comparison.
func MergeBusinesses(lists ...[]*Business) []*Business {
	var merged []*Business
	seen := make(map[string]bool)
	for _, list := range lists {
		for _, b := range list {
			key := b.NormalizedName()
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, b)
		}
	}
	return merged
}

// AttachOptions tunes the loose-containment matching used when
// reconciling coordinate-derived candidates against an existing entity
// set.
type AttachOptions struct {
	// MinTokenLen is the minimum length of a name token considered
	// significant for containment matching. Shorter tokens ("co", "llc")
	// produce too many false matches.
	MinTokenLen int
}

// DefaultAttachOptions returns the tuning used by the extraction
// pipeline.
func DefaultAttachOptions() AttachOptions {
	return AttachOptions{MinTokenLen: 4}
}

// AttachLocations reconciles candidates against an existing entity list.
// A candidate whose name matches an existing entity (exactly, by
// substring containment, or by sharing a significant name token) is
// attached to that entity as an extra location instead of becoming a
// duplicate top-level record. Candidates matching nothing are appended as
// new entities. The existing list is extended in place order; the
// returned list preserves the no-duplicate-names invariant.
func AttachLocations(existing []*Business, candidates []*Business, opts AttachOptions) []*Business {
	if opts.MinTokenLen <= 0 {
		opts.MinTokenLen = DefaultAttachOptions().MinTokenLen
	}
	result := existing
	for _, cand := range candidates {
		name := strings.TrimSpace(cand.Name)
		if name == "" {
			continue
		}
		if host := matchBusiness(result, name, opts.MinTokenLen); host != nil {
			if cand.Coordinates != nil && !sameBusiness(host, cand) {
				host.ExtraLocations = append(host.ExtraLocations, ExtraLocation{
					Name:        name,
					Coordinates: cand.Coordinates.String(),
				})
			}
			continue
		}
		result = append(result, cand)
	}
	return result
}

// matchBusiness finds an existing business that a candidate name belongs
// to: exact normalized match, substring containment either way, or a
// shared significant token.
func matchBusiness(existing []*Business, name string, minTokenLen int) *Business {
	norm := NormalizeName(name)
	for _, b := range existing {
		bNorm := b.NormalizedName()
		if bNorm == norm || strings.Contains(bNorm, norm) || strings.Contains(norm, bNorm) {
			return b
		}
	}
	for _, b := range existing {
		base := strings.NewReplacer("&", "", ",", "", "llc", "", "inc", "").Replace(b.NormalizedName())
		for _, token := range strings.Fields(base) {
			if len(token) >= minTokenLen && strings.Contains(norm, token) {
				return b
			}
		}
	}
	return nil
}

// sameBusiness reports whether the candidate carries no new location
// information relative to the host record.
func sameBusiness(host, cand *Business) bool {
	if host.Coordinates == nil || cand.Coordinates == nil {
		return false
	}
	return *host.Coordinates == *cand.Coordinates
}
