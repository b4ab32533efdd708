// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"github.com/pdiddy/bibcheck/pkg/types"
)

// pool holds the reference indices not yet assigned to a candidate, in
// input order. It is owned by a single Match call.
type pool []int

// remove deletes the entry at position pos, keeping order.
func (p pool) remove(pos int) pool {
	return append(p[:pos], p[pos+1:]...)
}

// Match pairs candidates with references by title. Candidates are processed
// in input order; each takes the unassigned reference with the highest
// TitleSimilarity (the first one on ties) when that score reaches threshold.
// A reference is assigned at most once. References left over are returned
// as unmatched. Records without a title are excluded up front.
//
// The assignment is greedy, not optimal: results depend on candidate order,
// which callers usually fix by sorting on title.
func Match(candidates, references []types.Record, threshold float64) types.MatchResult {
	var res types.MatchResult

	available := make(pool, 0, len(references))
	for i, ref := range references {
		if !ref.Has(types.FieldTitle) {
			res.ExcludedReferences = append(res.ExcludedReferences, ref)
			continue
		}
		available = append(available, i)
	}

	for ci, cand := range candidates {
		if !cand.Has(types.FieldTitle) {
			res.ExcludedCandidates = append(res.ExcludedCandidates, cand)
			continue
		}

		bestPos, bestScore := -1, -1.0
		for pos, ri := range available {
			score := TitleSimilarity(cand.Title(), references[ri].Title())
			if score > bestScore {
				bestPos, bestScore = pos, score
			}
		}

		if bestPos < 0 || bestScore < threshold {
			res.UnmatchedCandidates = append(res.UnmatchedCandidates, cand)
			continue
		}

		ri := available[bestPos]
		res.Matches = append(res.Matches, types.Match{
			Candidate:      cand,
			Reference:      references[ri],
			CandidateIndex: ci,
			ReferenceIndex: ri,
			Similarity:     bestScore,
		})
		available = available.remove(bestPos)
	}

	for _, ri := range available {
		res.UnmatchedReferences = append(res.UnmatchedReferences, references[ri])
	}
	return res
}
