// Package bootstrap expands a seed word set over a nearest-neighbor relation.
//
// Starting from a handful of seed terms, each round queries the nearest
// neighbors of every term in the current frontier, credits each neighbor with
// a step-dependent weight, and stages the neighbors as the next round's
// frontier. After a fixed number of rounds the accumulated scores rank the
// discovered vocabulary by how often, and how early, it was reached.
//
// The Expander is synchronous and single-threaded. Scores live in a ScoreMap
// created fresh for every call to Expand; nothing is shared between runs.
//
// # Rounds
//
// Round 0 visits the seeds. Every later round visits the terms staged by the
// round before it, so each round is exactly one hop. A frontier larger than
// Params.FrontierCap is trimmed to its highest-scoring terms before the round
// starts. Terms absent from the vocabulary are skipped without error.
//
// # Cancellation
//
// The context is checked between rounds only, so a round's score updates are
// applied completely or not at all.
package bootstrap
