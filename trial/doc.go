// Package trial runs one semantic orientation experiment end to end.
//
// An options file names two seed sets and a data matrix. The runner loads
// the matrix, reweights it with PPMI, optionally grows each seed set by
// bootstrap expansion, ranks the vocabulary by semantic orientation and
// correlates the ranking with the Warriner affect norms. The correlations
// and a free-text note are appended to the options file, so the file
// doubles as a log of every iteration of the experiment.
//
// Experiment settings that do not change between iterations live in a YAML
// Config.
package trial
