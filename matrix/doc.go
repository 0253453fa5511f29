// Package matrix provides the distributional matrix used by the expander and
// the semantic orientation scorer.
//
// A Matrix is a dense term-by-context table: rows are indexed by vocabulary
// term, columns by context feature. Matrices are read from CSV files (plain
// or gzip-compressed), reweighted with PPMI, and queried for nearest
// neighbors through a NeighborFinder.
//
// Matrices are immutable after construction and safe for concurrent reads.
package matrix
