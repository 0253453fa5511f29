// Package orientation ranks a vocabulary by semantic orientation.
//
// The score of a word is the summed distance from its row to every
// negative seed, minus the summed distance to every positive seed
// (Turney & Littman). Words nearest the negative seeds rank first. Rows are
// scored concurrently on a worker pool; the result does not depend on the
// pool size.
package orientation
