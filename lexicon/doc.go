// Package lexicon loads human affect ratings and scores rankings against them.
//
// The ratings are the Warriner et al. (2013) norms: one row per word with
// mean Valence, Arousal and Dominance. Evaluate correlates a semantic
// orientation ranking with one of those dimensions over the words the two
// share.
package lexicon
