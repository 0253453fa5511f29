package orientation

// DefaultNegativeSeeds is the negative seed set of Turney & Littman.
var DefaultNegativeSeeds = []string{"bad", "nasty", "poor", "negative", "unfortunate", "wrong", "inferior"}

// DefaultPositiveSeeds is the positive seed set of Turney & Littman.
var DefaultPositiveSeeds = []string{"good", "nice", "excellent", "positive", "fortunate", "correct", "superior"}

// Vocabulary reports term membership.
type Vocabulary interface {
	Has(term string) bool
}

// FilterSeeds keeps the seeds present in vocab, first occurrence order,
// duplicates removed. Seeds not in vocab are returned as dropped.
func FilterSeeds(seeds []string, vocab Vocabulary) (kept, dropped []string) {
	seen := make(map[string]bool, len(seeds))
	for _, s := range seeds {
		if seen[s] {
			continue
		}
		seen[s] = true
		if vocab.Has(s) {
			kept = append(kept, s)
		} else {
			dropped = append(dropped, s)
		}
	}
	return kept, dropped
}
