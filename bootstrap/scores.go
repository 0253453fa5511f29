package bootstrap

import (
	"cmp"
	"slices"

	"github.com/poiesic/lexorient/core"
)

// ScoreMap accumulates per-term scores. Reads of unknown terms yield the
// Laplace default; entries are only ever added or incremented.
type ScoreMap struct {
	laplace float64
	scores  map[string]float64
	order   []string // insertion order
}

// NewScoreMap creates an empty map whose default score is laplace.
func NewScoreMap(laplace float64) *ScoreMap {
	return &ScoreMap{
		laplace: laplace,
		scores:  make(map[string]float64),
	}
}

// Laplace returns the default score.
func (s *ScoreMap) Laplace() float64 {
	return s.laplace
}

// Get returns the term's score, or the Laplace default if the term is absent.
// Get never inserts.
func (s *ScoreMap) Get(term string) float64 {
	if v, ok := s.scores[term]; ok {
		return v
	}
	return s.laplace
}

// Contains reports whether the term has an entry.
func (s *ScoreMap) Contains(term string) bool {
	_, ok := s.scores[term]
	return ok
}

// Len returns the number of entries.
func (s *ScoreMap) Len() int {
	return len(s.scores)
}

// Terms returns the keys in insertion order.
func (s *ScoreMap) Terms() []string {
	return slices.Clone(s.order)
}

// TermSet returns the keys as a set.
func (s *ScoreMap) TermSet() TermSet {
	set := make(TermSet, len(s.order))
	for _, term := range s.order {
		set[term] = struct{}{}
	}
	return set
}

// Ranked returns all entries ordered by score descending.
// Equal scores keep insertion order.
func (s *ScoreMap) Ranked() []core.ScoredTerm {
	ranked := make([]core.ScoredTerm, len(s.order))
	for i, term := range s.order {
		ranked[i] = core.ScoredTerm{Term: term, Score: s.scores[term]}
	}
	slices.SortStableFunc(ranked, func(a, b core.ScoredTerm) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return ranked
}

// Top returns the n highest-scoring entries.
func (s *ScoreMap) Top(n int) []core.ScoredTerm {
	ranked := s.Ranked()
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Snapshot returns a copy of the scores as a plain map.
func (s *ScoreMap) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(s.scores))
	for k, v := range s.scores {
		out[k] = v
	}
	return out
}

// set stores an explicit score, inserting the term if needed.
func (s *ScoreMap) set(term string, value float64) {
	if _, ok := s.scores[term]; !ok {
		s.order = append(s.order, term)
	}
	s.scores[term] = value
}

// add increments the term's score, starting from the Laplace default.
func (s *ScoreMap) add(term string, delta float64) {
	s.set(term, s.Get(term)+delta)
}

// TermSet is an unordered set of terms.
type TermSet map[string]struct{}

// Contains reports whether the term is in the set.
func (t TermSet) Contains(term string) bool {
	_, ok := t[term]
	return ok
}

// Sorted returns the members in lexical order.
func (t TermSet) Sorted() []string {
	out := make([]string, 0, len(t))
	for term := range t {
		out = append(out, term)
	}
	slices.Sort(out)
	return out
}
