package services

import (
	"cmp"
	"slices"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/core/domain/model/mover"
)

// Match is a candidate mover together with its distance from the requested origin.
type Match struct {
	Mover      *mover.Mover
	DistanceKm float64
}

// MoverMatcher ranks candidate movers for an origin point.
//
// Candidates that are not eligible are dropped even if the caller already
// filtered them, so a stale read can never surface an unvetted mover.
//
// Example:
//
//	matcher := services.NewMoverMatcher()
//	matches, err := matcher.Match(origin, candidates, 5)
//	for _, m := range matches {
//	    fmt.Println(m.Mover.Name(), m.DistanceKm)
//	}
type MoverMatcher struct{}

func NewMoverMatcher() MoverMatcher {
	return MoverMatcher{}
}

// Match returns eligible candidates ordered by ascending distance, ties broken
// by mover id. limit <= 0 returns every eligible candidate. No candidates
// yields an empty, non-nil slice.
func (MoverMatcher) Match(origin kernel.Location, candidates []*mover.Mover, limit int) ([]Match, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(candidates))
	for _, m := range candidates {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if !m.IsEligible() {
			continue
		}

		distance, err := m.DistanceTo(origin)
		if err != nil {
			return nil, err
		}
		matches = append(matches, Match{Mover: m, DistanceKm: distance})
	}

	slices.SortFunc(matches, func(a, b Match) int {
		if c := cmp.Compare(a.DistanceKm, b.DistanceKm); c != 0 {
			return c
		}
		return a.Mover.ID().Compare(b.Mover.ID())
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}
